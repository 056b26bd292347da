// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainindex

import "github.com/btcsuite/btclog"

var log = btclog.Disabled

// DisableLog disables all library log output.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger sets the package-wide logger used while scanning the index
// KV store and trimming the height range.
func UseLogger(logger btclog.Logger) {
	log = logger
}
