// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainindex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVarintCorners(t *testing.T) {
	got, err := decodeVarint(newByteReader([]byte{0x80, 0x00}))
	require.NoError(t, err)
	require.EqualValues(t, 128, got)

	got, err = decodeVarint(newByteReader([]byte{0xFF, 0x7F}))
	require.NoError(t, err)
	require.EqualValues(t, 16511, got)
}

func TestVarintRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64Range(0, 1<<63-1).Draw(t, "n")
		encoded := encodeVarint(n)
		got, err := decodeVarint(newByteReader(encoded))
		require.NoError(t, err)
		require.Equal(t, n, got)
	})
}

func TestVarintEncodeMatchesSpecExamples(t *testing.T) {
	require.True(t, bytes.Equal([]byte{0x80, 0x00}, encodeVarint(128)))
	require.True(t, bytes.Equal([]byte{0xFF, 0x7F}, encodeVarint(16511)))
}

func TestVarintTruncatedStream(t *testing.T) {
	_, err := decodeVarint(newByteReader([]byte{0x80}))
	require.Error(t, err)
}
