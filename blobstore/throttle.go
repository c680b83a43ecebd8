package blobstore

import (
	"context"

	"github.com/hupe1980/seqmin/resource"
)

// Throttle wraps a Blob so every read is admitted by the controller's IO
// limiter first. ctx bounds the waits; a canceled context fails subsequent
// reads. A nil controller returns the blob unchanged.
func Throttle(ctx context.Context, b Blob, ctrl *resource.Controller) Blob {
	if ctrl == nil {
		return b
	}
	return &throttledBlob{ctx: ctx, b: b, ctrl: ctrl}
}

type throttledBlob struct {
	ctx  context.Context
	b    Blob
	ctrl *resource.Controller
}

func (t *throttledBlob) ReadAt(p []byte, off int64) (int, error) {
	if err := t.ctrl.AcquireIO(t.ctx, len(p)); err != nil {
		return 0, err
	}
	return t.b.ReadAt(p, off)
}

func (t *throttledBlob) Close() error {
	return t.b.Close()
}

func (t *throttledBlob) Size() int64 {
	return t.b.Size()
}
