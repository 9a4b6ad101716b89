package binkit

import (
	"github.com/hupe1980/binkit/internal/resource"
)

// Budget caps the bytes mapped by all files sharing it and throttles their
// prefetch IO. A nil *Budget imposes no limits.
type Budget struct {
	rc *resource.Controller
}

// NewBudget creates a Budget. memoryLimit caps the total mapped bytes and
// ioBytesPerSec the prefetch throughput; zero disables either limit.
func NewBudget(memoryLimit, ioBytesPerSec int64) *Budget {
	return &Budget{
		rc: resource.NewController(resource.Config{
			MemoryLimitBytes:   memoryLimit,
			IOLimitBytesPerSec: ioBytesPerSec,
		}),
	}
}

// MemoryUsage returns the bytes currently mapped under this budget.
func (b *Budget) MemoryUsage() int64 {
	if b == nil {
		return 0
	}
	return b.rc.MemoryUsage()
}

// MemoryLimit returns the configured memory cap, or 0 if unlimited.
func (b *Budget) MemoryLimit() int64 {
	if b == nil {
		return 0
	}
	return b.rc.MemoryLimit()
}

func (b *Budget) controller() *resource.Controller {
	if b == nil {
		return nil
	}
	return b.rc
}
