// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"

	"github.com/toole-brendan/blkreplay/blockfile"
	"github.com/toole-brendan/blkreplay/chainindex"
	"github.com/toole-brendan/blkreplay/chainstore"
	"github.com/toole-brendan/blkreplay/replay"
)

// logWriter implements io.Writer and writes marshalled log output to
// both standard out and a rotating log file, the same split btcd's own
// log.go performs.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if logRotator != nil {
		logRotator.Write(p)
	}
	return len(p), nil
}

var (
	logRotator *rotator.Rotator
	backendLog = btclog.NewBackend(logWriter{})

	blockfileLog  = backendLog.Logger("BLKF")
	chainindexLog = backendLog.Logger("CIDX")
	chainstoreLog = backendLog.Logger("CSTR")
	replayLog     = backendLog.Logger("RPLY")
)

func init() {
	blockfile.UseLogger(blockfileLog)
	chainindex.UseLogger(chainindexLog)
	chainstore.UseLogger(chainstoreLog)
	replay.UseLogger(replayLog)
}

// initLogRotator initializes the rolling file logger at logFile, rotating
// at 10 MiB with up to 3 old rolls kept, matching the reference daemon's
// log-rotation policy.
func initLogRotator(logFile string) error {
	logDir := filepath.Dir(logFile)
	if err := os.MkdirAll(logDir, 0o700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	logRotator = r
	return nil
}

// setLogLevels sets every subsystem's logger to level.
func setLogLevels(level string) {
	lvl, ok := btclog.LevelFromString(level)
	if !ok {
		lvl = btclog.LevelInfo
	}
	for _, logger := range []btclog.Logger{blockfileLog, chainindexLog, chainstoreLog, replayLog} {
		logger.SetLevel(lvl)
	}
}
