// Package resource bounds the resources a binning run may consume:
// concurrent scan workers, bytes of sequence data held in memory, and
// blob-read throughput.
package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Config holds resource limits.
type Config struct {
	// MaxScanWorkers is the maximum number of concurrent scan goroutines
	// across all binning runs sharing this controller. If 0, defaults to 1.
	MaxScanWorkers int64

	// MemoryLimitBytes is the hard limit for tracked sequence memory
	// (e.g. blobs materialized into the heap). If 0, usage is only tracked.
	MemoryLimitBytes int64

	// IOLimitBytesPerSec caps blob-read throughput. If 0, unlimited.
	IOLimitBytesPerSec int64
}

// Controller manages shared resources. A nil *Controller is valid and
// enforces nothing, so callers can thread one through unconditionally.
type Controller struct {
	cfg Config

	scanSem *semaphore.Weighted

	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	ioLimiter *rate.Limiter
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxScanWorkers <= 0 {
		cfg.MaxScanWorkers = 1
	}

	c := &Controller{
		cfg:     cfg,
		scanSem: semaphore.NewWeighted(cfg.MaxScanWorkers),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}
	if cfg.IOLimitBytesPerSec > 0 {
		c.ioLimiter = rate.NewLimiter(rate.Limit(cfg.IOLimitBytesPerSec), int(cfg.IOLimitBytesPerSec))
	}

	return c
}

// AcquireScan reserves a scan worker slot, blocking until one is free or
// ctx is canceled.
func (c *Controller) AcquireScan(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.scanSem.Acquire(ctx, 1)
}

// TryAcquireScan reserves a scan worker slot without blocking.
func (c *Controller) TryAcquireScan() bool {
	if c == nil {
		return true
	}
	return c.scanSem.TryAcquire(1)
}

// ReleaseScan releases a scan worker slot.
func (c *Controller) ReleaseScan() {
	if c == nil {
		return
	}
	c.scanSem.Release(1)
}

// AcquireMemory reserves tracked memory. With a hard limit configured this
// blocks until enough is available or ctx is canceled.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil || bytes <= 0 {
		return nil
	}
	if c.memSem != nil {
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}
	c.memUsed.Add(bytes)
	return nil
}

// ReleaseMemory releases tracked memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil || bytes <= 0 {
		return
	}
	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the currently tracked memory in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireIO waits until the IO limit admits the given number of bytes.
func (c *Controller) AcquireIO(ctx context.Context, bytes int) error {
	if c == nil || c.ioLimiter == nil || bytes <= 0 {
		return nil
	}
	// WaitN caps the burst; split oversized requests.
	burst := c.ioLimiter.Burst()
	for bytes > 0 {
		n := bytes
		if n > burst {
			n = burst
		}
		if err := c.ioLimiter.WaitN(ctx, n); err != nil {
			return err
		}
		bytes -= n
	}
	return nil
}
