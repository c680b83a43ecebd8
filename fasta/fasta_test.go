package fasta

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `>chr1 assembly GRCh38
ACGTACGT
ACGT
>chr2
TTTT

GGGG
; an old-style comment
>empty
`

func TestRecords(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, recs, 3)

	assert.Equal(t, "chr1", recs[0].ID)
	assert.Equal(t, "assembly GRCh38", recs[0].Description)
	assert.Equal(t, []byte("ACGTACGTACGT"), recs[0].Seq)

	assert.Equal(t, "chr2", recs[1].ID)
	assert.Empty(t, recs[1].Description)
	assert.Equal(t, []byte("TTTTGGGG"), recs[1].Seq)

	assert.Equal(t, "empty", recs[2].ID)
	assert.Empty(t, recs[2].Seq)
}

func TestRecordsCRLF(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(">a\r\nACGT\r\nACGT\r\n"))
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []byte("ACGTACGT"), recs[0].Seq)
}

func TestRecordsMissingHeader(t *testing.T) {
	_, err := ReadAll(strings.NewReader("ACGT\n>a\nACGT\n"))
	var mh *ErrMissingHeader
	require.ErrorAs(t, err, &mh)
	assert.Equal(t, 1, mh.Line)
}

func TestRecordsEmptyInput(t *testing.T) {
	recs, err := ReadAll(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRecordsEarlyBreak(t *testing.T) {
	var n int
	for _, err := range Records(strings.NewReader(sample)) {
		require.NoError(t, err)
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	plain := []byte(sample)

	writeFile := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, gw.Close())

	var zst bytes.Buffer
	zw, err := zstd.NewWriter(&zst)
	require.NoError(t, err)
	_, err = zw.Write(plain)
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	cases := []struct {
		name string
		path string
	}{
		{name: "Plain", path: writeFile("in.fa", plain)},
		// Extension is irrelevant, detection is by magic bytes.
		{name: "Gzip", path: writeFile("in.fa.bin", gz.Bytes())},
		{name: "Zstd", path: writeFile("in.fa.zst", zst.Bytes())},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rc, err := Open(tc.path)
			require.NoError(t, err)
			defer rc.Close()

			recs, err := ReadAll(rc)
			require.NoError(t, err)
			require.Len(t, recs, 3)
			assert.Equal(t, []byte("ACGTACGTACGT"), recs[0].Seq)
		})
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.fa"))
	assert.Error(t, err)
}
