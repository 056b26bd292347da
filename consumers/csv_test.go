// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consumers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func sampleBlock(value int64) *wire.MsgBlock {
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0xffffffff}})
	tx.AddTxOut(&wire.TxOut{Value: value, PkScript: []byte{0x51}})

	blk := wire.NewMsgBlock(&wire.BlockHeader{
		Version:   1,
		Timestamp: time.Unix(1231006505, 0),
		Bits:      0x1d00ffff,
	})
	blk.AddTransaction(tx)
	return blk
}

func TestCSVDumperWritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	d, err := NewCSVDumper(&buf)
	require.NoError(t, err)

	require.NoError(t, d.OnStart(0))
	require.NoError(t, d.OnBlock(sampleBlock(5000000000), 0))
	require.NoError(t, d.OnBlock(sampleBlock(1000000000), 1))
	require.NoError(t, d.OnComplete(1))

	out := buf.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "height,hash,time,tx_count,total_output_value", lines[0])
	require.Contains(t, lines[1], "5000000000")
	require.Contains(t, lines[2], "1000000000")
}

func TestCSVDumperShowsProgress(t *testing.T) {
	var buf bytes.Buffer
	d, err := NewCSVDumper(&buf)
	require.NoError(t, err)
	require.True(t, d.ShowProgress())
}
