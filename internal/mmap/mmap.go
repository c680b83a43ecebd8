// Package mmap provides read-only memory mapping of local files.
//
// Mapped files back genome-scale sequences without loading them into the Go
// heap; the kernel pages data in on demand.
package mmap

import (
	"errors"
	"io"
	"os"
)

// AccessPattern hints to the kernel how the mapping will be accessed.
type AccessPattern int

const (
	// AccessDefault applies no specific advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a front-to-back scan, the common case for
	// sliding-window passes over a sequence.
	AccessSequential
	// AccessRandom expects scattered reads, e.g. offset lookups from a
	// partition index.
	AccessRandom
)

// ErrClosed is returned when accessing a closed mapping.
var ErrClosed = errors.New("mmap: mapping is closed")

// File is a read-only memory-mapped file.
type File struct {
	data []byte
	f    *os.File
}

// Open maps the file at path into memory as read-only.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	size := fi.Size()
	if size == 0 {
		return &File{data: nil, f: f}, nil
	}
	if size < 0 {
		_ = f.Close()
		return nil, errors.New("mmap: negative file size")
	}

	data, err := mmap(f, int(size))
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &File{data: data, f: f}, nil
}

// Bytes returns the mapped data. The slice is valid until Close.
func (m *File) Bytes() []byte {
	return m.data
}

// Len returns the size of the mapping in bytes.
func (m *File) Len() int {
	return len(m.data)
}

// Advise passes an access-pattern hint to the kernel. Advisory only; errors
// from unsupported platforms are suppressed.
func (m *File) Advise(pattern AccessPattern) error {
	if m.data == nil {
		return nil
	}
	return madvise(m.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (m *File) ReadAt(p []byte, off int64) (n int, err error) {
	if m.data == nil {
		return 0, io.EOF
	}
	if off < 0 || off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n = copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the memory and closes the underlying file. Idempotent.
func (m *File) Close() error {
	if m == nil {
		return nil
	}
	var err error
	if m.data != nil {
		err = munmap(m.data)
		m.data = nil
	}
	if m.f != nil {
		if closeErr := m.f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		m.f = nil
	}
	return err
}
