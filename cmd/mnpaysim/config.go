// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"
)

const (
	defaultLogFilename = "mnpaysim.log"
	defaultLogLevel    = "info"
)

var defaultHomeDir = filepath.Join(os.TempDir(), "mnpaysim")

// config holds the runtime parameters for the simulation harness.
type config struct {
	LogDir          string `long:"logdir" description:"Directory to log output"`
	DebugLevel      string `long:"debuglevel" short:"d" description:"Logging level for all subsystems"`
	Masternodes     int    `long:"masternodes" short:"m" description:"Number of simulated masternodes" default:"30"`
	Tips            int    `long:"tips" short:"t" description:"Number of simulated tip advances to run" default:"200"`
	PeerCount       int    `long:"peers" short:"p" description:"Number of simulated remote peers" default:"8"`
	PayUpdatedNodes bool   `long:"payupdatednodes" description:"Simulate the pay-updated-nodes spork as active"`
}

// loadConfig parses command-line flags into a config, applying defaults
// and initializing logging as a side effect, the way a real node's config
// loader does.
func loadConfig() (*config, error) {
	cfg := config{
		LogDir:     defaultHomeDir,
		DebugLevel: defaultLogLevel,
	}

	parser := flags.NewParser(&cfg, flags.Default)
	if _, err := parser.Parse(); err != nil {
		return nil, err
	}

	logFile := filepath.Join(cfg.LogDir, defaultLogFilename)
	if err := initLogRotator(logFile); err != nil {
		return nil, err
	}
	setLogLevels(cfg.DebugLevel)

	return &cfg, nil
}
