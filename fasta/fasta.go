// Package fasta streams sequence records from FASTA formatted input.
//
// Records are yielded one at a time so that multi-gigabyte inputs never
// have to be resident in full. Wrapped sequence lines are concatenated,
// the record ID is the first whitespace-delimited token of the header.
package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
)

// Record is a single parsed FASTA entry.
type Record struct {
	// ID is the first whitespace-delimited token of the header line,
	// without the leading '>'.
	ID string
	// Description is the remainder of the header line after the ID,
	// empty when the header carries only an ID.
	Description string
	// Seq holds the sequence with line wrapping and trailing whitespace
	// removed. The slice is owned by the caller.
	Seq []byte
}

// ErrMissingHeader indicates sequence data before the first '>' header.
type ErrMissingHeader struct {
	Line int
}

func (e *ErrMissingHeader) Error() string {
	return fmt.Sprintf("fasta: sequence data before first header at line %d", e.Line)
}

// maxLineSize bounds a single input line. Some tools emit an entire
// chromosome as one line, so this is generous.
const maxLineSize = 64 * 1024 * 1024

// Records returns an iterator over the FASTA records in r.
//
// Iteration stops at the first malformed input or read error, which is
// yielded with a zero Record. Breaking out of the loop early is safe and
// leaves r at an unspecified position.
func Records(r io.Reader) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), maxLineSize)

		var (
			cur     Record
			open    bool
			lineNum int
		)

		for sc.Scan() {
			lineNum++
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			if line[0] == ';' { // legacy comment lines
				continue
			}
			if line[0] == '>' {
				if open {
					if !yield(cur, nil) {
						return
					}
				}
				cur = parseHeader(line[1:])
				open = true
				continue
			}
			if !open {
				yield(Record{}, &ErrMissingHeader{Line: lineNum})
				return
			}
			cur.Seq = append(cur.Seq, line...)
		}
		if err := sc.Err(); err != nil {
			yield(Record{}, fmt.Errorf("fasta: scan failed: %w", err))
			return
		}
		if open {
			yield(cur, nil)
		}
	}
}

// ReadAll collects every record in r into a slice. Intended for small
// inputs and tests; use Records for streaming.
func ReadAll(r io.Reader) ([]Record, error) {
	var out []Record
	for rec, err := range Records(r) {
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func parseHeader(hdr []byte) Record {
	hdr = bytes.TrimSpace(hdr)
	if i := bytes.IndexAny(hdr, " \t"); i >= 0 {
		return Record{
			ID:          string(hdr[:i]),
			Description: string(bytes.TrimSpace(hdr[i+1:])),
		}
	}
	return Record{ID: string(hdr)}
}
