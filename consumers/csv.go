// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package consumers holds reference replay.Callback implementations. They
// are collaborators, not part of the core's public contract, but exist to
// exercise it end to end.
package consumers

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// CSVDumper writes one row per block to an underlying writer: height,
// hash, time, transaction count, total output value. Grounded on the
// reference implementation's unspentcsvdump/opreturn callbacks, which
// both stream one CSV row per observed item to a buffered writer.
type CSVDumper struct {
	w   *csv.Writer
	out io.Writer
}

// NewCSVDumper wraps w and writes the column header immediately.
func NewCSVDumper(w io.Writer) (*CSVDumper, error) {
	d := &CSVDumper{w: csv.NewWriter(w), out: w}
	if err := d.w.Write([]string{"height", "hash", "time", "tx_count", "total_output_value"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	return d, nil
}

func (d *CSVDumper) OnStart(height uint64) error {
	return nil
}

func (d *CSVDumper) OnBlock(block *wire.MsgBlock, height uint64) error {
	var total int64
	for _, tx := range block.Transactions {
		for _, out := range tx.TxOut {
			total += out.Value
		}
	}

	row := []string{
		fmt.Sprintf("%d", height),
		block.BlockHash().String(),
		fmt.Sprintf("%d", block.Header.Timestamp.Unix()),
		fmt.Sprintf("%d", len(block.Transactions)),
		fmt.Sprintf("%d", total),
	}
	if err := d.w.Write(row); err != nil {
		return fmt.Errorf("write csv row for height %d: %w", height, err)
	}
	return nil
}

func (d *CSVDumper) OnComplete(height uint64) error {
	d.w.Flush()
	return d.w.Error()
}

func (d *CSVDumper) ShowProgress() bool { return true }
