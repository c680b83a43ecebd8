package partition

import (
	"bytes"
	"context"

	"github.com/hupe1980/seqmin/blobstore"
)

// Save writes an index snapshot to the named blob. The blob becomes visible
// atomically on successful return, so a concurrent Load sees either the old
// snapshot or the new one, never a partial write.
func Save(ctx context.Context, store blobstore.BlobStore, name string, idx *Index, codec Codec) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := Write(w, idx, codec); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// Load reads an index snapshot from the named blob, verifying its checksum.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*Index, error) {
	data, err := blobstore.ReadAll(ctx, store, name)
	if err != nil {
		return nil, err
	}
	return Read(bytes.NewReader(data))
}
