package models

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Attachment is the binary payload selected for transfer. Open may be called
// more than once; every call starts from the first byte.
type Attachment interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// LocalFile is an attachment backed by a file on disk.
type LocalFile struct {
	Path string
	Size int64
}

// NewLocalFile checks that path names a regular file and returns it as an
// attachment.
func NewLocalFile(path string) (*LocalFile, error) {
	st, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if !st.Mode().IsRegular() {
		return nil, fmt.Errorf("%s is not a regular file", path)
	}
	return &LocalFile{Path: path, Size: st.Size()}, nil
}

func (f *LocalFile) Name() string { return filepath.Base(f.Path) }

func (f *LocalFile) Open() (io.ReadCloser, error) { return os.Open(f.Path) }

// MemoryFile is an attachment held in memory.
type MemoryFile struct {
	FileName string
	Data     []byte
}

func (f *MemoryFile) Name() string { return f.FileName }

func (f *MemoryFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.Data)), nil
}
