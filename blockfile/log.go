// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockfile

import "github.com/btcsuite/btclog"

// log is the package-level logger, disabled until UseLogger is called by
// the consumer of this package, matching the rest of the core's packages.
var log = btclog.Disabled

// DisableLog disables all library log output.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger sets the package-wide logger used to report on file pool
// activity: file registration, opens, and closes.
func UseLogger(logger btclog.Logger) {
	log = logger
}
