// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package coinparams holds the small, immutable set of per-network
// parameters the core needs to locate a node's data directory and to
// validate a chain's genesis block. It intentionally carries none of a
// full node's consensus parameters (difficulty limits, deployments,
// checkpoints); those belong to a validating node, not a replay tool.
package coinparams

import (
	"path/filepath"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/toole-brendan/blkreplay/blkerrors"
)

// Params is the CoinProfile tuple: a read-only record built once at
// startup and never mutated.
type Params struct {
	// Name is a human-readable identifier for the network.
	Name string

	// Net carries the block-file framing magic (the 4-byte
	// little-endian value each blk*.dat frame is prefixed with).
	Net wire.BitcoinNet

	// AddressVersion is the base58 address-version byte for the
	// network. Kept for diagnostics; the core never encodes addresses.
	AddressVersion byte

	// GenesisHash is the expected hash of the height-0 block, used by
	// chainstore's verification step.
	GenesisHash chainhash.Hash

	// DefaultDataDir is the data directory the reference node uses for
	// this network, relative to the user's home directory.
	DefaultDataDir string
}

func mustHash(s string) chainhash.Hash {
	h, err := chainhash.NewHashFromStr(s)
	if err != nil {
		panic(err)
	}
	return *h
}

// MainNetParams is the Bitcoin mainnet profile.
var MainNetParams = Params{
	Name:           "Bitcoin",
	Net:            wire.MainNet,
	AddressVersion: 0x00,
	GenesisHash:    mustHash("000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"),
	DefaultDataDir: filepath.Join(".bitcoin", "blocks"),
}

// TestNet3Params is the Bitcoin testnet3 profile.
var TestNet3Params = Params{
	Name:           "TestNet3",
	Net:            wire.TestNet3,
	AddressVersion: 0x6f,
	GenesisHash:    mustHash("000000000933ea01ad0ee984209779baaec3ced90fa3f408719526f8d77f4943"),
	DefaultDataDir: filepath.Join(".bitcoin", "testnet3"),
}

// SigNetParams is the Bitcoin signet profile. The reference node ships no
// fixed magic for custom signet challenges; the default public signet
// magic is used here since the core only reads a node's own data
// directory and never validates peer handshakes.
var SigNetParams = Params{
	Name:           "Signet",
	Net:            wire.BitcoinNet(0x40cf030a),
	AddressVersion: 0x6f,
	GenesisHash:    mustHash("00000008819873e925422c1ff0f99f7cc9bbb232af63a077a480a3633bee1ef6"),
	DefaultDataDir: filepath.Join(".bitcoin", "signet"),
}

// FromCoin maps a coin identifier string to a built-in profile. Unknown
// identifiers are a config-error: this is a mistake the caller can fix
// without touching disk.
func FromCoin(name string) (*Params, error) {
	switch name {
	case "bitcoin":
		p := MainNetParams
		return &p, nil
	case "testnet3":
		p := TestNet3Params
		return &p, nil
	case "signet":
		p := SigNetParams
		return &p, nil
	default:
		return nil, blkerrors.Config("unknown coin identifier %q", name)
	}
}
