// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package replay

import (
	"github.com/toole-brendan/blkreplay/blkerrors"
	"github.com/toole-brendan/blkreplay/chainindex"
)

// Config is the plain configuration record the CLI collaborator builds
// and hands to the core. It carries no behavior of its own; Validate and
// the coin-identifier lookup in New are the only checks performed before
// any I/O.
type Config struct {
	// DataDir is the directory holding index/ and the blk*.dat files.
	DataDir string

	// Coin selects the built-in coin profile (bitcoin, testnet3, signet).
	Coin string

	// Verify enables merkle/linkage/genesis verification of every block.
	Verify bool

	// Range trims replay to [Start, End]; End == nil means open-ended.
	Range chainindex.Range

	// Consumer receives the lifecycle callbacks.
	Consumer Callback
}

// Validate rejects a malformed configuration before any I/O happens,
// matching the config-error disposition of an inverted height range.
func (c Config) Validate() error {
	if c.Consumer == nil {
		return blkerrors.Config("no consumer configured")
	}
	return c.Range.Validate()
}
