// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package replay

// baseSubsidy is the block 0 reward in satoshis, 50 BTC.
const baseSubsidy int64 = 50 * 100000000

// subsidyHalvingInterval is the number of blocks between subsidy halvings.
const subsidyHalvingInterval = 210000

// BlockReward returns the base block subsidy at height, following the
// standard halving schedule reward(h) = 50e8 >> (h / 210000). It carries
// no coin-specific override; every coin profile in this repo shares the
// same schedule.
func BlockReward(height uint64) int64 {
	halvings := height / subsidyHalvingInterval
	if halvings >= 64 {
		return 0
	}
	return baseSubsidy >> halvings
}
