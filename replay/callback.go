// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package replay

import "github.com/btcsuite/btcd/wire"

// Callback is the consumer contract a replay drives. Exactly four
// methods, closed over at replay start: OnStart fires once before any
// block, OnBlock fires once per height in strictly ascending order,
// OnComplete fires once after the last successful OnBlock, and
// ShowProgress is queried once to decide whether periodic progress lines
// are worth emitting for this consumer.
//
// A block passed to OnBlock must not be retained past the call; the
// driver does not guarantee its contents survive the return.
type Callback interface {
	OnStart(height uint64) error
	OnBlock(block *wire.MsgBlock, height uint64) error
	OnComplete(height uint64) error
	ShowProgress() bool
}
