package partition

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Snapshot layout (all integers little-endian):
//
//	magic "SMIN" (4) | version uint16 | codec uint8 | reserved uint8 |
//	payloadLen uint64 | payloadCRC uint32 | payload bytes
//
// The CRC covers the payload as stored (i.e. after compression), so
// corruption is detected before decompression output is trusted. The
// payload, once decompressed, is:
//
//	k uint32 | l uint32 | alphabetLen uint32 | alphabet symbols |
//	numKeys uint64 | repeated: key uint64 | bitmapLen uint64 | bitmap
//
// Keys are stored in increasing order; bitmaps use the portable Roaring
// serialization.

const (
	snapshotMagic   = "SMIN"
	snapshotVersion = 1
	headerSize      = 4 + 2 + 1 + 1 + 8 + 4
)

// Codec selects the snapshot payload compression.
type Codec uint8

const (
	// CodecNone stores the payload uncompressed.
	CodecNone Codec = iota
	// CodecZstd compresses with zstandard, the default. Best ratio on the
	// highly repetitive bitmap payloads.
	CodecZstd
	// CodecLZ4 compresses with LZ4, trading ratio for speed.
	CodecLZ4
)

func (c Codec) String() string {
	switch c {
	case CodecNone:
		return "none"
	case CodecZstd:
		return "zstd"
	case CodecLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("codec(%d)", uint8(c))
	}
}

// ErrBadMagic indicates data that is not a partition index snapshot.
var ErrBadMagic = errors.New("partition: bad snapshot magic")

// ErrUnsupportedVersion indicates a snapshot written by an incompatible
// format version.
type ErrUnsupportedVersion struct {
	Version uint16
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("partition: unsupported snapshot version %d", e.Version)
}

// ErrUnknownCodec indicates a snapshot compressed with an unknown codec.
type ErrUnknownCodec struct {
	Codec Codec
}

func (e *ErrUnknownCodec) Error() string {
	return fmt.Sprintf("partition: unknown snapshot codec %d", uint8(e.Codec))
}

// Write serializes the index to w using the given codec.
func Write(w io.Writer, idx *Index, codec Codec) error {
	payload, err := encodePayload(idx)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	cw := NewChecksumWriter(&buf)
	if err := compressTo(cw, payload, codec); err != nil {
		return err
	}

	hdr := make([]byte, headerSize)
	copy(hdr[0:4], snapshotMagic)
	binary.LittleEndian.PutUint16(hdr[4:6], snapshotVersion)
	hdr[6] = byte(codec)
	binary.LittleEndian.PutUint64(hdr[8:16], uint64(buf.Len()))
	binary.LittleEndian.PutUint32(hdr[16:20], cw.Sum())

	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("failed to write snapshot header: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write snapshot payload: %w", err)
	}
	return nil
}

// Read deserializes an index written by Write. The payload checksum is
// verified before the decoded index is returned.
func Read(r io.Reader) (*Index, error) {
	hdr := make([]byte, headerSize)
	if _, err := io.ReadFull(r, hdr); err != nil {
		return nil, fmt.Errorf("failed to read snapshot header: %w", err)
	}
	if string(hdr[0:4]) != snapshotMagic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(hdr[4:6]); v != snapshotVersion {
		return nil, &ErrUnsupportedVersion{Version: v}
	}
	codec := Codec(hdr[6])
	payloadLen := binary.LittleEndian.Uint64(hdr[8:16])
	crc := binary.LittleEndian.Uint32(hdr[16:20])

	cr := NewChecksumReader(io.LimitReader(r, int64(payloadLen)))
	payload, err := decompressAll(cr, codec)
	if err != nil {
		return nil, err
	}
	// Account for compressed bytes the decompressor did not need to pull.
	if _, err := io.Copy(io.Discard, cr); err != nil {
		return nil, err
	}
	if err := cr.Verify(crc); err != nil {
		return nil, err
	}

	return decodePayload(payload)
}

func compressTo(w io.Writer, payload []byte, codec Codec) error {
	switch codec {
	case CodecNone:
		_, err := w.Write(payload)
		return err
	case CodecZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("failed to create zstd writer: %w", err)
		}
		if _, err := zw.Write(payload); err != nil {
			_ = zw.Close()
			return err
		}
		return zw.Close()
	case CodecLZ4:
		lw := lz4.NewWriter(w)
		if _, err := lw.Write(payload); err != nil {
			_ = lw.Close()
			return err
		}
		return lw.Close()
	default:
		return &ErrUnknownCodec{Codec: codec}
	}
}

func decompressAll(r io.Reader, codec Codec) ([]byte, error) {
	switch codec {
	case CodecNone:
		return io.ReadAll(r)
	case CodecZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd reader: %w", err)
		}
		defer zr.Close()
		return io.ReadAll(zr)
	case CodecLZ4:
		return io.ReadAll(lz4.NewReader(r))
	default:
		return nil, &ErrUnknownCodec{Codec: codec}
	}
}

func encodePayload(idx *Index) ([]byte, error) {
	var buf bytes.Buffer

	var u32 [4]byte
	var u64 [8]byte
	put32 := func(v uint32) {
		binary.LittleEndian.PutUint32(u32[:], v)
		buf.Write(u32[:])
	}
	put64 := func(v uint64) {
		binary.LittleEndian.PutUint64(u64[:], v)
		buf.Write(u64[:])
	}

	cfg := idx.Config()
	put32(uint32(cfg.K))
	put32(uint32(cfg.L))
	put32(uint32(len(cfg.Alphabet)))
	buf.Write(cfg.Alphabet)

	keys := idx.Keys()
	put64(uint64(len(keys)))
	var bm bytes.Buffer
	for _, key := range keys {
		bm.Reset()
		if _, err := idx.parts[key].WriteTo(&bm); err != nil {
			return nil, fmt.Errorf("failed to serialize bitmap for key %d: %w", key, err)
		}
		put64(key)
		put64(uint64(bm.Len()))
		buf.Write(bm.Bytes())
	}
	return buf.Bytes(), nil
}

var errTruncatedPayload = errors.New("partition: truncated snapshot payload")

func decodePayload(payload []byte) (*Index, error) {
	pos := 0
	take := func(n int) ([]byte, error) {
		if pos+n > len(payload) {
			return nil, errTruncatedPayload
		}
		b := payload[pos : pos+n]
		pos += n
		return b, nil
	}
	get32 := func() (uint32, error) {
		b, err := take(4)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint32(b), nil
	}
	get64 := func() (uint64, error) {
		b, err := take(8)
		if err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b), nil
	}

	k, err := get32()
	if err != nil {
		return nil, err
	}
	l, err := get32()
	if err != nil {
		return nil, err
	}
	alphaLen, err := get32()
	if err != nil {
		return nil, err
	}
	symbols, err := take(int(alphaLen))
	if err != nil {
		return nil, err
	}

	idx := NewIndex(Config{
		K:        int(k),
		L:        int(l),
		Alphabet: append([]byte(nil), symbols...),
	})

	numKeys, err := get64()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < numKeys; i++ {
		key, err := get64()
		if err != nil {
			return nil, err
		}
		bmLen, err := get64()
		if err != nil {
			return nil, err
		}
		raw, err := take(int(bmLen))
		if err != nil {
			return nil, err
		}
		bm := roaring64.New()
		if _, err := bm.ReadFrom(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("failed to deserialize bitmap for key %d: %w", key, err)
		}
		idx.parts[key] = bm
	}
	return idx, nil
}
