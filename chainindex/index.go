// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package chainindex loads the reference node's block-index KV store and
// reconstructs a dense height → block-location map for the main chain,
// trimmed to a caller-supplied height range.
package chainindex

import (
	"path/filepath"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/toole-brendan/blkreplay/blkerrors"
)

// Status bits the reference node records per block. Only these two are
// interpreted; all others are ignored.
const (
	BlockValidChain uint64 = 0x04
	BlockHaveData   uint64 = 0x08
)

// blockIndexKeyPrefix is the leading byte ('b') that marks a key in the
// node's KV store as a block-index record.
const blockIndexKeyPrefix = 'b'

// BlockLocator records everything the core needs to find and verify one
// height's block, plus diagnostic metadata carried through from the
// index record.
type BlockLocator struct {
	Hash       chainhash.Hash
	FileIndex  uint32
	DataOffset int64

	// Diagnostics only; not used by the core's control flow.
	Version uint64
	Height  uint64
	Status  uint64
	TxCount uint64
}

// Range is an inclusive height range. A nil End means "up to the highest
// known height"; Start == 0 means "from the genesis block".
type Range struct {
	Start uint64
	End   *uint64
}

// Validate rejects a range whose bounds are inverted. This is a
// config-error: it is caught before any I/O happens.
func (r Range) Validate() error {
	if r.End != nil && r.Start > *r.End {
		return blkerrors.Config("start height %d is greater than end height %d", r.Start, *r.End)
	}
	return nil
}

func satSub1(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return n - 1
}

// Index is the loaded, trimmed, read-only chain index.
type Index struct {
	lowerBound uint64 // trimmed min height retained (start-1, saturating)
	maxHeight  uint64 // trimmed max height
	locators   []*BlockLocator
	maxByFile  map[uint32]uint64
}

// Load opens dataDir/index as a LevelDB-compatible KV store, scans every
// key, keeps the main-chain records (status & (BlockValidChain|
// BlockHaveData) != 0), and trims to the requested range. The trim's
// lower bound is biased down by one so the predecessor of rng.Start is
// retained for prev-hash verification.
func Load(dataDir string, rng Range) (*Index, error) {
	if err := rng.Validate(); err != nil {
		return nil, err
	}

	indexDir := filepath.Join(dataDir, "index")
	log.Infof("reading index from %s", indexDir)

	db, err := leveldb.OpenFile(indexDir, &opt.Options{ReadOnly: true, ErrorIfMissing: true})
	if err != nil {
		return nil, blkerrors.Load(err, "open index store at %s", indexDir)
	}
	defer db.Close()

	// Build the full, untrimmed main-chain map first: max_height_by_file
	// must be derived from every record, not just the ones surviving the
	// trim (a file's highest-contained height can exceed the replay's
	// configured end).
	full := make(map[uint64]*BlockLocator, 1<<20)
	maxByFile := make(map[uint32]uint64)
	var maxKnownHeight uint64
	sawAny := false

	iter := db.NewIterator(nil, nil)
	defer iter.Release()
	for iter.Next() {
		key := iter.Key()
		if len(key) == 0 || key[0] != blockIndexKeyPrefix {
			continue
		}
		if len(key) != 33 {
			continue
		}

		rec, err := decodeRecord(key[1:33], iter.Value())
		if err != nil {
			return nil, blkerrors.Load(err, "decode index record")
		}
		if rec.Status&(BlockValidChain|BlockHaveData) == 0 {
			continue
		}

		full[rec.Height] = rec
		if cur, ok := maxByFile[rec.FileIndex]; !ok || rec.Height > cur {
			maxByFile[rec.FileIndex] = rec.Height
		}
		if !sawAny || rec.Height > maxKnownHeight {
			maxKnownHeight = rec.Height
		}
		sawAny = true
	}
	if err := iter.Error(); err != nil {
		return nil, blkerrors.Load(err, "scan index store")
	}
	if !sawAny {
		return nil, blkerrors.Load(nil, "index store contains no main-chain records")
	}

	maxHeight := maxKnownHeight
	if rng.End != nil && *rng.End < maxKnownHeight {
		maxHeight = *rng.End
	}
	lowerBound := satSub1(rng.Start)

	log.Infof("trimming block index from height %d to %d", lowerBound, maxHeight)

	size := maxHeight - lowerBound + 1
	locators := make([]*BlockLocator, size)
	for h, rec := range full {
		if h < lowerBound || h > maxHeight {
			continue
		}
		locators[h-lowerBound] = rec
	}

	log.Infof("loaded chain index with %d heights (main chain had %d records)", size, len(full))

	return &Index{
		lowerBound: lowerBound,
		maxHeight:  maxHeight,
		locators:   locators,
		maxByFile:  maxByFile,
	}, nil
}

// Get returns the locator for height, or (nil, false) if height falls
// outside the loaded range or was never populated (a gap, which a
// conforming on-disk index should never produce).
func (idx *Index) Get(height uint64) (*BlockLocator, bool) {
	if height < idx.lowerBound || height > idx.maxHeight {
		return nil, false
	}
	rec := idx.locators[height-idx.lowerBound]
	return rec, rec != nil
}

// MaxHeight returns the trimmed maximum height.
func (idx *Index) MaxHeight() uint64 {
	return idx.maxHeight
}

// MaxHeightByFile returns the highest height whose block lives in
// fileIndex, across the full (untrimmed) main chain.
func (idx *Index) MaxHeightByFile(fileIndex uint32) (uint64, bool) {
	h, ok := idx.maxByFile[fileIndex]
	return h, ok
}

func decodeRecord(hashKey []byte, value []byte) (*BlockLocator, error) {
	var hash chainhash.Hash
	copy(hash[:], hashKey)

	r := newByteReader(value)

	version, err := decodeVarint(r)
	if err != nil {
		return nil, err
	}
	height, err := decodeVarint(r)
	if err != nil {
		return nil, err
	}
	status, err := decodeVarint(r)
	if err != nil {
		return nil, err
	}
	txCount, err := decodeVarint(r)
	if err != nil {
		return nil, err
	}
	fileIndex, err := decodeVarint(r)
	if err != nil {
		return nil, err
	}
	dataOffset, err := decodeVarint(r)
	if err != nil {
		return nil, err
	}

	return &BlockLocator{
		Hash:       hash,
		FileIndex:  uint32(fileIndex),
		DataOffset: int64(dataOffset),
		Version:    version,
		Height:     height,
		Status:     status,
		TxCount:    txCount,
	}, nil
}
