package sequence

import (
	"fmt"
	"io"

	"github.com/hupe1980/seqmin/blobstore"
)

// FromBlob adapts a stored blob to the Sequence interface.
//
// Mappable blobs (the local backend) are scanned zero-copy straight off the
// mapping. Anything else is materialized into memory, which for remote
// backends means one bulk read instead of a ranged GET per symbol. The
// caller keeps ownership of the blob and must close it after the last scan.
func FromBlob(blob blobstore.Blob) (Sequence, error) {
	if m, ok := blob.(blobstore.Mappable); ok {
		data, err := m.Bytes()
		if err != nil {
			return nil, err
		}
		return Bytes(data), nil
	}

	data := make([]byte, blob.Size())
	if _, err := blob.ReadAt(data, 0); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to materialize blob: %w", err)
	}
	return Bytes(data), nil
}
