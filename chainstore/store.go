// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainstore is the façade that composes the chain index and the
// block-file pool, exposing height-addressed header/block lookups,
// optional cryptographic verification, and the eager file-close
// discipline that keeps the replay's open-descriptor count bounded.
package chainstore

import (
	"github.com/btcsuite/btcd/wire"

	"github.com/toole-brendan/blkreplay/blkerrors"
	"github.com/toole-brendan/blkreplay/blockfile"
	"github.com/toole-brendan/blkreplay/chainindex"
	"github.com/toole-brendan/blkreplay/coinparams"
)

// Store composes the chain index and the block-file pool for one coin's
// data directory. It owns both exclusively; there is no concurrent
// access from outside a single replay.
type Store struct {
	index  *chainindex.Index
	pool   *blockfile.Pool
	params *coinparams.Params
	verify bool
}

// Open loads the chain index from dataDir/index and registers every
// blk*.dat file directly under dataDir.
func Open(dataDir string, params *coinparams.Params, rng chainindex.Range, verify bool) (*Store, error) {
	idx, err := chainindex.Load(dataDir, rng)
	if err != nil {
		return nil, err
	}
	pool, err := blockfile.New(dataDir)
	if err != nil {
		return nil, blkerrors.Load(err, "open block-file pool at %s", dataDir)
	}
	return &Store{index: idx, pool: pool, params: params, verify: verify}, nil
}

// MaxHeight returns the trimmed maximum height the loaded index covers.
func (s *Store) MaxHeight() uint64 {
	return s.index.MaxHeight()
}

// GetHeader returns the header at height, or (nil, nil) once height
// exceeds MaxHeight().
func (s *Store) GetHeader(height uint64) (*wire.BlockHeader, error) {
	loc, ok := s.index.Get(height)
	if !ok {
		return nil, nil
	}
	hdr, err := s.pool.ReadHeader(loc.FileIndex, loc.DataOffset)
	if err != nil {
		return nil, blkerrors.Read(height, err, "read header")
	}
	return hdr, nil
}

// GetBlock returns the full block at height, or (nil, nil) once height
// exceeds MaxHeight(). After a successful read, if height is the highest
// height contained in its blk file, the file handle is closed. When
// verification is enabled, linkage (genesis hash or prev-hash) is
// checked before the merkle root, per the cheaper-check-first ordering.
func (s *Store) GetBlock(height uint64) (*wire.MsgBlock, error) {
	loc, ok := s.index.Get(height)
	if !ok {
		return nil, nil
	}

	blk, err := s.pool.ReadBlock(loc.FileIndex, loc.DataOffset)
	if err != nil {
		return nil, blkerrors.Read(height, err, "read block")
	}

	if maxH, ok := s.index.MaxHeightByFile(loc.FileIndex); ok && height == maxH {
		s.pool.Close(loc.FileIndex)
	}

	if s.verify {
		if err := s.verifyLinkageAndMerkle(blk, height); err != nil {
			return nil, err
		}
	}

	return blk, nil
}

// verifyLinkageAndMerkle checks chain linkage (genesis hash at height 0,
// prev-hash otherwise) before the merkle root, since linkage is cheaper
// to check and catches a misassembled chain before spending time walking
// every transaction.
func (s *Store) verifyLinkageAndMerkle(blk *wire.MsgBlock, height uint64) error {
	hash := blk.Header.BlockHash()

	if height == 0 {
		if !hash.IsEqual(&s.params.GenesisHash) {
			return blkerrors.Verify(height, "genesis block hash mismatch: expected %s, got %s",
				s.params.GenesisHash, hash)
		}
	} else {
		prevLoc, ok := s.index.Get(height - 1)
		if !ok {
			return blkerrors.Verify(height, "missing predecessor locator for height %d", height-1)
		}
		if !blk.Header.PrevBlock.IsEqual(&prevLoc.Hash) {
			return blkerrors.Verify(height, "prev-hash mismatch: block %s points at %s, expected %s",
				hash, blk.Header.PrevBlock, prevLoc.Hash)
		}
	}

	got := merkleRoot(blk.Transactions)
	if !got.IsEqual(&blk.Header.MerkleRoot) {
		return blkerrors.Verify(height, "merkle root mismatch: computed %s, header has %s",
			got, blk.Header.MerkleRoot)
	}

	return nil
}

// Close releases every open block-file handle. Safe to call after a
// replay aborts.
func (s *Store) Close() {
	s.pool.CloseAll()
}

// OpenHandles returns the number of blk files currently holding an open
// descriptor.
func (s *Store) OpenHandles() int {
	return s.pool.OpenHandles()
}
