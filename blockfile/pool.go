// Copyright (c) 2025 The blkreplay developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package blockfile manages the set of append-only blk?????.dat files a
// reference node writes blocks into. It opens file handles lazily, seeks
// to a caller-supplied offset, decodes using wireblock, and closes
// handles on demand so a long replay never needs more than a handful of
// descriptors open at once.
package blockfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/wire"

	"github.com/toole-brendan/blkreplay/wireblock"
)

const (
	blkPrefix = "blk"
	blkExt    = ".dat"
)

// entry tracks one blk file: its resolved path, its size, and an
// optional open, buffered handle. The pool exclusively owns every entry;
// a handle is mutable-borrowed for the duration of a single read and
// there is no concurrent access.
type entry struct {
	path   string
	size   int64
	reader *bufio.Reader
	file   *os.File
}

// Pool owns every registered blk file for one data directory.
type Pool struct {
	files map[uint32]*entry
}

// New scans dir for blk<digits>.dat entries, resolving symlinks and
// stat'ing each target for its size. Files that don't match the pattern
// (including non-numeric names like blkindex.dat) are silently ignored.
// New fails if no file in dir matches.
func New(dir string) (*Pool, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read blk directory %s: %w", dir, err)
	}

	files := make(map[uint32]*entry, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		index, ok := ParseBlkIndex(name, blkPrefix, blkExt)
		if !ok {
			continue
		}

		path := filepath.Join(dir, name)
		resolved, err := resolvePath(path)
		if err != nil {
			log.Warnf("unable to resolve %s: %v", path, err)
			continue
		}

		info, err := os.Stat(resolved)
		if err != nil {
			log.Warnf("unable to stat %s: %v", resolved, err)
			continue
		}
		if info.IsDir() {
			continue
		}

		log.Tracef("registering %s (index=%d, size=%d)", resolved, index, info.Size())
		files[uint32(index)] = &entry{path: resolved, size: info.Size()}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no blk*.dat files found in %s", dir)
	}

	log.Infof("registered %d blk files from %s", len(files), dir)
	return &Pool{files: files}, nil
}

// resolvePath resolves path if it is a symlink, returning path itself
// otherwise.
func resolvePath(path string) (string, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return path, nil
	}
	return filepath.EvalSymlinks(path)
}

// ParseBlkIndex extracts the numeric index from a blk file name of the
// form "<prefix><digits><ext>". It returns false for any name that
// doesn't match exactly, including a non-numeric body like
// "blkindex.dat".
func ParseBlkIndex(fileName, prefix, ext string) (uint64, bool) {
	if !strings.HasPrefix(fileName, prefix) || !strings.HasSuffix(fileName, ext) {
		return 0, false
	}
	body := fileName[len(prefix) : len(fileName)-len(ext)]
	if body == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(body, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *Pool) open(index uint32) (*entry, error) {
	e, ok := p.files[index]
	if !ok {
		return nil, fmt.Errorf("no such blk file: index %d", index)
	}
	if e.reader == nil {
		log.Debugf("opening %s", e.path)
		f, err := os.Open(e.path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", e.path, err)
		}
		e.file = f
		e.reader = bufio.NewReader(f)
	}
	return e, nil
}

func (p *Pool) seek(e *entry, offset int64) error {
	if _, err := e.file.Seek(offset, 0); err != nil {
		return err
	}
	e.reader.Reset(e.file)
	return nil
}

// ReadHeader opens fileIndex if needed, seeks to offset, and decodes a
// block header.
func (p *Pool) ReadHeader(fileIndex uint32, offset int64) (*wire.BlockHeader, error) {
	e, err := p.open(fileIndex)
	if err != nil {
		return nil, err
	}
	if err := p.seek(e, offset); err != nil {
		return nil, fmt.Errorf("seek %s to %d: %w", e.path, offset, err)
	}
	return wireblock.ReadHeader(e.reader)
}

// ReadBlock opens fileIndex if needed, seeks to offset, and decodes a
// full block.
func (p *Pool) ReadBlock(fileIndex uint32, offset int64) (*wire.MsgBlock, error) {
	e, err := p.open(fileIndex)
	if err != nil {
		return nil, err
	}
	if err := p.seek(e, offset); err != nil {
		return nil, fmt.Errorf("seek %s to %d: %w", e.path, offset, err)
	}
	return wireblock.ReadBlock(e.reader)
}

// Close drops the buffered handle for fileIndex, if one is open. It is a
// no-op for an unknown or already-closed index.
func (p *Pool) Close(fileIndex uint32) {
	e, ok := p.files[fileIndex]
	if !ok || e.reader == nil {
		return
	}
	log.Debugf("closing %s", e.path)
	e.file.Close()
	e.reader = nil
	e.file = nil
}

// CloseAll closes every open handle. Useful for an orderly shutdown when
// a replay aborts mid-stream.
func (p *Pool) CloseAll() {
	for idx := range p.files {
		p.Close(idx)
	}
}

// OpenHandles returns the number of blk files currently holding an open
// descriptor. A monotonic replay should never see this exceed 1.
func (p *Pool) OpenHandles() int {
	n := 0
	for _, e := range p.files {
		if e.reader != nil {
			n++
		}
	}
	return n
}
