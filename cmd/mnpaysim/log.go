// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	"github.com/EXCCoin/mnpayd/mnpayments"
	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to both standard output
// and the log rotator.
type logWriter struct{}

func (logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	logRotator.Write(p)
	return len(p), nil
}

var (
	backendLog = slog.NewBackend(logWriter{})

	// logRotator is initialized in initLogRotator and is used to write
	// logs to disk alongside stdout.
	logRotator *rotator.Rotator

	mainLog = backendLog.Logger("MAIN")
	mnpLog  = backendLog.Logger("MNPY")
)

func init() {
	mnpayments.UseLogger(mnpLog)
}

// initLogRotator initializes the logging rotator to write logs to
// logFile and create roll files in the same directory.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return err
	}
	logRotator = r
	return nil
}

// setLogLevels sets every subsystem logger to the given level string
// (e.g. "trace", "debug", "info", "warn", "error", "critical", "off").
func setLogLevels(levelStr string) {
	level, ok := slog.LevelFromString(levelStr)
	if !ok {
		return
	}
	for _, l := range []slog.Logger{mainLog, mnpLog} {
		l.SetLevel(level)
	}
}
