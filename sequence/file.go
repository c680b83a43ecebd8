package sequence

import (
	"github.com/hupe1980/seqmin/internal/mmap"
)

// File is a Sequence backed by a memory-mapped local file. The file content
// is interpreted as raw symbols, one byte each, with no record structure;
// use the fasta package for FASTA-formatted input.
//
// The mapping is read-only and paged in by the kernel, so genome-scale files
// can be scanned without holding them in the Go heap.
type File struct {
	m    *mmap.File
	data []byte
}

// OpenFile maps the file at path as a Sequence. The mapping is advised for
// sequential access, matching the engine's front-to-back scan pattern.
func OpenFile(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)
	return &File{m: m, data: m.Bytes()}, nil
}

// At returns the symbol at index i.
func (f *File) At(i int) byte { return f.data[i] }

// Len returns the number of symbols.
func (f *File) Len() int { return len(f.data) }

// Bytes exposes the mapped data. The slice is valid until Close.
func (f *File) Bytes() []byte { return f.data }

// Close unmaps the file. The Sequence must not be used afterwards.
func (f *File) Close() error {
	f.data = nil
	return f.m.Close()
}
