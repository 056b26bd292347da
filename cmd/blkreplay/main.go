// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Command blkreplay replays a reference node's on-disk block database in
// height order against a pluggable consumer.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/toole-brendan/blkreplay/consumers"
	"github.com/toole-brendan/blkreplay/replay"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "blkreplay: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		return err
	}
	setLogLevels(cfg.LogLevel)

	consumer, closer, err := buildConsumer(cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	driver, err := replay.New(replay.Config{
		DataDir:  cfg.DataDir,
		Coin:     cfg.Coin,
		Verify:   cfg.Verify,
		Range:    cfg.heightRange(),
		Consumer: consumer,
	})
	if err != nil {
		return err
	}

	return driver.Run()
}

// buildConsumer selects and wires the consumer named in cfg, returning an
// optional io.Closer for the consumer's output file, if one was opened.
func buildConsumer(cfg *config) (replay.Callback, *os.File, error) {
	switch cfg.Consumer {
	case "csv":
		out := os.Stdout
		var file *os.File
		if cfg.Output != "" {
			f, err := os.Create(cfg.Output)
			if err != nil {
				return nil, nil, fmt.Errorf("create csv output %s: %w", cfg.Output, err)
			}
			out = f
			file = f
		}
		dumper, err := consumers.NewCSVDumper(out)
		if err != nil {
			return nil, file, err
		}
		return dumper, file, nil

	case "stats":
		return consumers.NewStatsReducer(os.Stdout), nil, nil

	default:
		return nil, nil, fmt.Errorf("unknown consumer %q", cfg.Consumer)
	}
}
