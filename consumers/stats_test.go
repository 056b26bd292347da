// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package consumers

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatsReducerAccumulatesAcrossBlocks(t *testing.T) {
	var buf bytes.Buffer
	s := NewStatsReducer(&buf)

	require.NoError(t, s.OnStart(0))
	require.NoError(t, s.OnBlock(sampleBlock(5000000000), 0))
	require.NoError(t, s.OnBlock(sampleBlock(2500000000), 210000))
	require.NoError(t, s.OnComplete(210000))

	require.EqualValues(t, 2, s.blocks)
	require.EqualValues(t, 2, s.transactions)
	require.EqualValues(t, 5000000000+2500000000, s.subsidy)
	require.Contains(t, buf.String(), "blocks=2")
	require.False(t, s.ShowProgress())
}
