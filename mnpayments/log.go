// Copyright (c) 2024 The EXCCoin developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpayments

import "github.com/decred/slog"

// log is the subsystem logger used throughout the package. It is disabled
// by default so importers that don't care about logging pay no cost; a
// caller wires up a real backend with UseLogger.
var log = slog.Disabled

// UseLogger sets the subsystem logger used by this package. Call with
// slog.Disabled to disable all logging from this subsystem.
func UseLogger(logger slog.Logger) {
	log = logger
}
