// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockfile

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseBlkIndex(t *testing.T) {
	cases := []struct {
		name  string
		want  uint64
		match bool
	}{
		{"blk00000.dat", 0, true},
		{"blk6.dat", 6, true},
		{"blk1202.dat", 1202, true},
		{"blk13412451.dat", 13412451, true},
		{"blkindex.dat", 0, false},
		{"invalid.dat", 0, false},
		{"blk.dat", 0, false},
		{"blk12.txt", 0, false},
	}
	for _, c := range cases {
		got, ok := ParseBlkIndex(c.name, "blk", ".dat")
		require.Equal(t, c.match, ok, "match mismatch for %s: %s", c.name, spew.Sdump(c))
		if c.match {
			require.Equal(t, c.want, got, c.name)
		}
	}
}

// TestParseBlkIndexRoundTrip checks the round-trip property:
// ParseBlkIndex("blk" + decimal(n) + ".dat", "blk", ".dat") == (n, true)
// for every representable n.
func TestParseBlkIndexRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64().Draw(t, "n")
		name := "blk" + itoa(n) + ".dat"
		got, ok := ParseBlkIndex(name, "blk", ".dat")
		require.True(t, ok)
		require.Equal(t, n, got)
	})
}

func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

func TestPoolLazyOpenAndClose(t *testing.T) {
	dir := t.TempDir()

	payload := bytes.Repeat([]byte{0xAB}, 40)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blk00000.dat"), payload, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "blkindex.dat"), []byte("ignored"), 0o644))

	pool, err := New(dir)
	require.NoError(t, err)
	require.Len(t, pool.files, 1)

	e := pool.files[0]
	require.Nil(t, e.reader, "handle must not be opened until first read")

	_, err = pool.ReadHeader(0, 0)
	require.Error(t, err, "40 bytes aren't a valid 80-byte header")
	require.NotNil(t, e.reader, "first access must have opened the handle")

	pool.Close(0)
	require.Nil(t, e.reader)

	// Closing twice, or closing an unknown index, must not panic.
	pool.Close(0)
	pool.Close(999)
}

func TestPoolNoFilesFound(t *testing.T) {
	dir := t.TempDir()
	_, err := New(dir)
	require.Error(t, err)
}

func TestPoolSymlinkResolved(t *testing.T) {
	dir := t.TempDir()
	real := filepath.Join(dir, "real.dat")
	require.NoError(t, os.WriteFile(real, []byte("data"), 0o644))

	link := filepath.Join(dir, "blk00001.dat")
	if err := os.Symlink(real, link); err != nil {
		t.Skipf("symlinks unsupported in this environment: %v", err)
	}

	pool, err := New(dir)
	require.NoError(t, err)
	e, ok := pool.files[1]
	require.True(t, ok)
	require.Equal(t, real, e.path)
}
