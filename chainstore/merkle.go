// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainstore

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// nextPowerOfTwo returns n rounded up to the next power of two, or n
// itself if it already is one.
func nextPowerOfTwo(n int) int {
	if n&(n-1) == 0 {
		return n
	}
	exp := 0
	for (1 << uint(exp)) < n {
		exp++
	}
	return 1 << uint(exp)
}

// hashMerkleBranches concatenates two node hashes and double-SHA256s the
// result.
func hashMerkleBranches(left, right *chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleHashH(buf[:])
}

// merkleRoot computes the merkle root over a block's transaction IDs
// using the standard odd-leaf duplication rule. It builds the plain
// txid tree only; this replay core never validates a witness commitment,
// so no witness-root variant is computed.
func merkleRoot(txs []*wire.MsgTx) chainhash.Hash {
	if len(txs) == 0 {
		return chainhash.Hash{}
	}

	nextPoT := nextPowerOfTwo(len(txs))
	arraySize := nextPoT*2 - 1
	nodes := make([]*chainhash.Hash, arraySize)

	for i, tx := range txs {
		h := btcutil.NewTx(tx).Hash()
		nodes[i] = h
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case nodes[i] == nil:
			nodes[offset] = nil
		case nodes[i+1] == nil:
			h := hashMerkleBranches(nodes[i], nodes[i])
			nodes[offset] = &h
		default:
			h := hashMerkleBranches(nodes[i], nodes[i+1])
			nodes[offset] = &h
		}
		offset++
	}

	return *nodes[arraySize-1]
}
