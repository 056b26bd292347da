// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package genesis builds the well-known genesis blocks for Bitcoin
// mainnet, testnet3, and signet, for use as test fixtures. It exists so
// chainstore and replay tests can exercise verification (merkle root,
// genesis-hash match) against real, independently reproducible block
// bytes instead of an embedded binary corpus.
package genesis

import (
	"encoding/hex"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// All three networks' genesis blocks share the identical coinbase
// transaction the reference implementation mined on 2009-01-03; only the
// header's timestamp, bits, and nonce differ per network.
const (
	genesisScriptSigHex = "04ffff001d0104455468652054696d65732030332f4a616e2f32303039204368616e63656c6c6f72206f6e206272696e6b206f66207365636f6e64206261696c6f757420666f722062616e6b73"
	genesisPkScriptHex  = "4104678afdb0fe5548271967f1a67130b7105cd6a828e03909a67962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5fac"
)

func mustHexDecode(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

// CoinbaseTx builds the shared genesis coinbase transaction: one input
// with a null previous outpoint carrying the 1/3/2009 Times headline, one
// 50 BTC output to the well-known genesis pay-to-pubkey script.
func CoinbaseTx() *wire.MsgTx {
	return &wire.MsgTx{
		Version: 1,
		TxIn: []*wire.TxIn{{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: mustHexDecode(genesisScriptSigHex),
			Sequence:        0xffffffff,
		}},
		TxOut: []*wire.TxOut{{
			Value:    50 * 100000000,
			PkScript: mustHexDecode(genesisPkScriptHex),
		}},
		LockTime: 0,
	}
}

// CreateGenesisBlock assembles a genesis block from the shared coinbase
// transaction and the per-network header fields that vary: version,
// timestamp, difficulty bits, and nonce.
func CreateGenesisBlock(version int32, timestamp time.Time, bits, nonce uint32) *wire.MsgBlock {
	coinbase := CoinbaseTx()
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    version,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: coinbase.TxHash(),
			Timestamp:  timestamp,
			Bits:       bits,
			Nonce:      nonce,
		},
		Transactions: []*wire.MsgTx{coinbase},
	}
}

// MainNetGenesisBlock returns Bitcoin mainnet's genesis block. Its hash is
// 000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f.
func MainNetGenesisBlock() *wire.MsgBlock {
	return CreateGenesisBlock(1, time.Unix(1231006505, 0), 0x1d00ffff, 2083236893)
}

// TestNet3GenesisBlock returns Bitcoin testnet3's genesis block. Its hash
// is 000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943.
func TestNet3GenesisBlock() *wire.MsgBlock {
	return CreateGenesisBlock(1, time.Unix(1296688602, 0), 0x1d00ffff, 414098458)
}

// SigNetGenesisBlock returns Bitcoin signet's (default public signet)
// genesis block. Its hash is
// 00000008819873e925422c1ff0f99f7cc9bbb232af63a077a480a3633bee1ef6.
func SigNetGenesisBlock() *wire.MsgBlock {
	return CreateGenesisBlock(1, time.Unix(1598918400, 0), 0x1e0377ae, 52613770)
}

// GenesisHash hashes a genesis block's header.
func GenesisHash(block *wire.MsgBlock) chainhash.Hash {
	return block.Header.BlockHash()
}
