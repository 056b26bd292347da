// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package genesis

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/blkreplay/coinparams"
)

func TestMainNetGenesisMatchesKnownHash(t *testing.T) {
	blk := MainNetGenesisBlock()
	hash := GenesisHash(blk)
	require.True(t, hash.IsEqual(&coinparams.MainNetParams.GenesisHash))

	require.Len(t, blk.Transactions, 1)
	require.EqualValues(t, 1231006505, blk.Header.Timestamp.Unix())
	require.EqualValues(t, 0x1d00ffff, blk.Header.Bits)
	require.EqualValues(t, 2083236893, blk.Header.Nonce)

	size := blk.SerializeSize()
	require.Equal(t, 285, size)
}

func TestTestNet3GenesisMatchesKnownHash(t *testing.T) {
	hash := GenesisHash(TestNet3GenesisBlock())
	require.True(t, hash.IsEqual(&coinparams.TestNet3Params.GenesisHash))
}

func TestSigNetGenesisMatchesKnownHash(t *testing.T) {
	hash := GenesisHash(SigNetGenesisBlock())
	require.True(t, hash.IsEqual(&coinparams.SigNetParams.GenesisHash))
}

func TestGenesisCoinbaseHasNoPremineValue(t *testing.T) {
	tx := CoinbaseTx()
	require.Len(t, tx.TxOut, 1)
	require.EqualValues(t, 50*100000000, tx.TxOut[0].Value)
}
