// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/toole-brendan/blkreplay/chainindex"
)

const (
	defaultConfigFilename = "blkreplay.yaml"
	defaultLogFilename    = "blkreplay.log"
	defaultLogLevel       = "info"
)

// config mirrors the reference daemon's loadConfig shape: a go-flags
// struct whose fields double as the YAML overlay's keys, CLI flags
// always taking precedence over the file.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory holding index/ and blk*.dat"`
	Coin       string `short:"c" long:"coin" description:"Coin identifier: bitcoin, testnet3, signet" default:"bitcoin"`
	Consumer   string `long:"consumer" description:"Consumer to run: csv, stats" default:"stats"`
	Output     string `short:"o" long:"output" description:"Output file for the csv consumer (default stdout)"`
	Verify     bool   `long:"verify" description:"Verify merkle root, prev-hash linkage, and genesis hash"`
	Start      uint64 `long:"start" description:"First height to replay"`
	End        uint64 `long:"end" description:"Last height to replay (0 means open-ended)"`
	LogDir     string `long:"logdir" description:"Directory to write the rotating log file into"`
	LogLevel   string `long:"loglevel" description:"Log level: trace, debug, info, warn, error, critical" default:"info"`
}

// yamlOverlay is the subset of config fields the optional config file may
// set. CLI flags passed explicitly always win; this is loaded first and
// then flags.Parse is applied again on top of it, matching the
// file-then-flags layering most btcd-style daemons use.
type yamlOverlay struct {
	DataDir  string `yaml:"datadir"`
	Coin     string `yaml:"coin"`
	Consumer string `yaml:"consumer"`
	Output   string `yaml:"output"`
	Verify   bool   `yaml:"verify"`
	Start    uint64 `yaml:"start"`
	End      uint64 `yaml:"end"`
	LogDir   string `yaml:"logdir"`
	LogLevel string `yaml:"loglevel"`
}

func defaultConfig() config {
	return config{
		ConfigFile: defaultConfigFilename,
		Coin:       "bitcoin",
		Consumer:   "stats",
		LogLevel:   defaultLogLevel,
	}
}

// loadConfig parses command-line flags, optionally layering an earlier
// YAML config file underneath them, and validates the result into a
// replay.Config-ready shape.
func loadConfig() (*config, error) {
	cfg := defaultConfig()

	preParser := flags.NewParser(&cfg, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := preParser.Parse(); err != nil {
		return nil, err
	}

	if cfg.ConfigFile != "" {
		if data, err := os.ReadFile(cfg.ConfigFile); err == nil {
			var overlay yamlOverlay
			if err := yaml.Unmarshal(data, &overlay); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", cfg.ConfigFile, err)
			}
			applyOverlay(&cfg, overlay)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %s: %w", cfg.ConfigFile, err)
		}
	}

	// Re-parse flags so an explicit CLI value always overrides whatever
	// the file set.
	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	if cfg.DataDir == "" {
		return nil, fmt.Errorf("--datadir is required")
	}
	if cfg.LogDir == "" {
		cfg.LogDir = filepath.Dir(cfg.DataDir)
	}

	return &cfg, nil
}

// applyOverlay fills config fields from the YAML overlay. Most fields are
// filled only while they are still zero; Coin, Consumer and LogLevel are
// replaced whenever they still hold their default value. An explicit CLI
// flag is restored by the flag re-parse that follows.
func applyOverlay(cfg *config, o yamlOverlay) {
	if cfg.DataDir == "" {
		cfg.DataDir = o.DataDir
	}
	if o.Coin != "" && cfg.Coin == defaultConfig().Coin {
		cfg.Coin = o.Coin
	}
	if o.Consumer != "" && cfg.Consumer == defaultConfig().Consumer {
		cfg.Consumer = o.Consumer
	}
	if cfg.Output == "" {
		cfg.Output = o.Output
	}
	if !cfg.Verify {
		cfg.Verify = o.Verify
	}
	if cfg.Start == 0 {
		cfg.Start = o.Start
	}
	if cfg.End == 0 {
		cfg.End = o.End
	}
	if cfg.LogDir == "" {
		cfg.LogDir = o.LogDir
	}
	if o.LogLevel != "" && cfg.LogLevel == defaultLogLevel {
		cfg.LogLevel = o.LogLevel
	}
}

// heightRange converts the flat Start/End flags into a chainindex.Range,
// treating End == 0 as open-ended.
func (c *config) heightRange() chainindex.Range {
	r := chainindex.Range{Start: c.Start}
	if c.End != 0 {
		end := c.End
		r.End = &end
	}
	return r
}
