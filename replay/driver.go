// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package replay drives the height-ordered walk over a chain store,
// dispatching lifecycle callbacks to a single consumer and emitting
// periodic throughput telemetry.
package replay

import (
	"time"

	"github.com/toole-brendan/blkreplay/blkerrors"
	"github.com/toole-brendan/blkreplay/chainstore"
	"github.com/toole-brendan/blkreplay/coinparams"
)

// progressWindow is the fixed measurement interval for throughput
// telemetry, matching the reference implementation's worker stats.
const progressWindow = 10 * time.Second

// Driver owns the single monotonically increasing cursor for one replay
// run. It is not reusable across runs.
type Driver struct {
	store    *chainstore.Store
	consumer Callback

	curHeight uint64
}

// New validates cfg, opens the chain store, and returns a Driver
// positioned at the trimmed start height. No callback fires until Run is
// called.
func New(cfg Config) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	params, err := coinparams.FromCoin(cfg.Coin)
	if err != nil {
		return nil, err
	}

	store, err := chainstore.Open(cfg.DataDir, params, cfg.Range, cfg.Verify)
	if err != nil {
		return nil, err
	}

	return &Driver{
		store:     store,
		consumer:  cfg.Consumer,
		curHeight: cfg.Range.Start,
	}, nil
}

func satSub1(n uint64) uint64 {
	if n == 0 {
		return 0
	}
	return n - 1
}

// Run executes the replay protocol exactly as specified: OnStart, then a
// loop of get-block/OnBlock/progress/increment until the store reports no
// more blocks, then OnComplete. A consumer error, or any fatal chain
// store error, aborts the run and skips OnComplete. Close is always
// called on the store before Run returns.
func (d *Driver) Run() error {
	defer d.store.Close()

	if err := d.consumer.OnStart(d.curHeight); err != nil {
		return blkerrors.Consumer(d.curHeight, err)
	}

	showProgress := d.consumer.ShowProgress()
	startedAt := time.Now()
	lastLog := startedAt
	lastHeight := d.curHeight

	for {
		blk, err := d.store.GetBlock(d.curHeight)
		if err != nil {
			return err
		}
		if blk == nil {
			break
		}

		if err := d.consumer.OnBlock(blk, d.curHeight); err != nil {
			return blkerrors.Consumer(d.curHeight, err)
		}

		log.Tracef("replayed block %d (%d tx)", d.curHeight, len(blk.Transactions))

		if showProgress {
			if now := time.Now(); now.Sub(lastLog) >= progressWindow {
				elapsed := now.Sub(lastLog).Seconds()
				rate := float64(d.curHeight-lastHeight) / elapsed
				log.Infof("height %d, remaining %d, %.1f blocks/sec",
					d.curHeight, d.remaining(), rate)
				lastLog = now
				lastHeight = d.curHeight
			}
		}

		d.curHeight++
	}

	final := satSub1(d.curHeight)
	if err := d.consumer.OnComplete(final); err != nil {
		return blkerrors.Consumer(final, err)
	}

	log.Infof("replay complete at height %d", final)
	return nil
}

func (d *Driver) remaining() uint64 {
	max := d.store.MaxHeight()
	if d.curHeight > max {
		return 0
	}
	return max - d.curHeight
}
