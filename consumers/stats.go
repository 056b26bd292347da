// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consumers

import (
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"

	"github.com/toole-brendan/blkreplay/replay"
)

// StatsReducer accumulates running totals across a replay and reports a
// summary on completion: block count, total transactions, total subsidy
// issued, and the largest block size seen.
type StatsReducer struct {
	out io.Writer

	blocks       uint64
	transactions uint64
	subsidy      int64
	largestSize  int
	largestAt    uint64
}

// NewStatsReducer reports its summary to out when OnComplete fires.
func NewStatsReducer(out io.Writer) *StatsReducer {
	return &StatsReducer{out: out}
}

func (s *StatsReducer) OnStart(height uint64) error {
	return nil
}

func (s *StatsReducer) OnBlock(block *wire.MsgBlock, height uint64) error {
	s.blocks++
	s.transactions += uint64(len(block.Transactions))
	s.subsidy += replay.BlockReward(height)

	if size := block.SerializeSize(); size > s.largestSize {
		s.largestSize = size
		s.largestAt = height
	}
	return nil
}

func (s *StatsReducer) OnComplete(height uint64) error {
	_, err := fmt.Fprintf(s.out,
		"blocks=%d transactions=%d subsidy_issued=%.8f largest_block=%d bytes (height %d)\n",
		s.blocks, s.transactions, float64(s.subsidy)*1e-8, s.largestSize, s.largestAt)
	return err
}

func (s *StatsReducer) ShowProgress() bool { return false }
