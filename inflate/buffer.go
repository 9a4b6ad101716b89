package inflate

import (
	"sync/atomic"

	"github.com/hupe1980/binkit/mmap"
)

// Buffer holds decompressed bytes in memory. It satisfies cursor.Source and
// behaves like a closed region once closed.
type Buffer struct {
	data   []byte
	format Format
	closed atomic.Bool
}

// NewBuffer wraps already decompressed data.
func NewBuffer(data []byte, format Format) *Buffer {
	return &Buffer{data: data, format: format}
}

// Data returns the decompressed bytes, or mmap.ErrClosed after Close.
func (b *Buffer) Data() ([]byte, error) {
	if b.closed.Load() {
		return nil, mmap.ErrClosed
	}
	return b.data, nil
}

func (b *Buffer) Len() int64 {
	return int64(len(b.data))
}

// Format reports the format the data was decompressed from.
func (b *Buffer) Format() Format {
	return b.format
}

// Close releases the buffer. It is idempotent.
func (b *Buffer) Close() error {
	if b.closed.Swap(true) {
		return nil
	}
	b.data = nil
	return nil
}
