// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wireblock decodes the canonical Bitcoin consensus wire format
// for block headers and full blocks. It offers no framing: the 4-byte
// magic and 4-byte length envelope that prefixes each record in a
// blk*.dat file is not parsed here; callers seek past it using the byte
// offset recorded by the chain index.
package wireblock

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// ReadHeader decodes a single block header from r, which must be
// positioned at the first byte of the header. Callers attach height
// context and the appropriate blkerrors.Kind; this package has neither.
func ReadHeader(r io.Reader) (*wire.BlockHeader, error) {
	var hdr wire.BlockHeader
	if err := hdr.Deserialize(r); err != nil {
		return nil, fmt.Errorf("decode block header: %w", err)
	}
	return &hdr, nil
}

// ReadBlock decodes a full block, including every transaction and any
// BIP-141 witness data, from r, which must be positioned at the first
// byte of the block.
func ReadBlock(r io.Reader) (*wire.MsgBlock, error) {
	var blk wire.MsgBlock
	if err := blk.Deserialize(r); err != nil {
		return nil, fmt.Errorf("decode block: %w", err)
	}
	return &blk, nil
}
