package binkit

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/binkit/cache"
	"github.com/hupe1980/binkit/cursor"
	"github.com/hupe1980/binkit/inflate"
	"github.com/hupe1980/binkit/mmap"
)

// File is an opened binary file: a mapped region, or the decompressed
// contents of a compressed file when WithDecompression is set.
//
// A File is safe for concurrent use. Cursors handed out by a File are not;
// duplicate them per goroutine. Every cursor and view fails with ErrClosed
// once the File is closed.
type File struct {
	path   string
	region *mmap.Region
	src    inflate.Source
	format inflate.Format
	size   int64

	fingerprint *cache.Value[uint64]

	logger  *Logger
	metrics MetricsCollector
	closed  atomic.Bool
}

// Open maps the file at path for reading.
func Open(path string, optFns ...Option) (*File, error) {
	o := applyOptions(optFns)
	ctx := context.Background()
	start := time.Now()

	f, err := open(path, &o)
	if err != nil {
		err = translateError(err)
		o.metricsCollector.RecordOpen(0, time.Since(start), err)
		o.logger.LogOpen(ctx, path, 0, err)
		return nil, err
	}

	o.metricsCollector.RecordOpen(f.size, time.Since(start), nil)
	f.logger.LogOpen(ctx, path, f.size, nil)
	return f, nil
}

func open(path string, o *options) (*File, error) {
	region, err := mmap.Open(path, o.mapOptions()...)
	if err != nil {
		return nil, err
	}

	f := &File{
		path:    path,
		region:  region,
		src:     region,
		format:  inflate.None,
		metrics: o.metricsCollector,
	}

	if o.decompress {
		src, err := inflate.OpenRegion(region, inflate.WithLimit(o.decompressLimit))
		if err != nil {
			_ = region.Close()
			return nil, err
		}
		if buf, ok := src.(*inflate.Buffer); ok {
			// The decoded copy no longer needs the mapping.
			if err := region.Close(); err != nil {
				_ = buf.Close()
				return nil, err
			}
			f.region = nil
			f.src = buf
			f.format = buf.Format()
		}
	}

	f.size = f.src.Len()
	f.logger = o.logger.WithPath(path).WithFormat(f.format.String())
	f.fingerprint = cache.NewValue(f.computeFingerprint)
	return f, nil
}

// Path returns the path the file was opened from.
func (f *File) Path() string {
	return f.path
}

// Len returns the number of readable bytes: the file size, or the
// decompressed size for compressed files.
func (f *File) Len() int64 {
	return f.size
}

// Format reports the compression format the contents were decoded from.
func (f *File) Format() inflate.Format {
	return f.format
}

// Mapped reports whether reads are served directly from a memory mapping.
func (f *File) Mapped() bool {
	return f.region != nil
}

var _ cursor.Source = (*File)(nil)

// Data returns the file contents. The slice must not be modified and must
// not be used after Close.
func (f *File) Data() ([]byte, error) {
	data, err := f.src.Data()
	return data, translateError(err)
}

// Cursor returns a new cursor at position 0.
func (f *File) Cursor() (*cursor.Reader, error) {
	return cursor.NewReader(f)
}

// CursorAt returns a new cursor at pos.
func (f *File) CursorAt(pos int64) (*cursor.Reader, error) {
	r, err := f.Cursor()
	if err != nil {
		return nil, err
	}
	if err := r.SetPosition(pos); err != nil {
		return nil, translateError(err)
	}
	return r, nil
}

// View returns a source covering n bytes at off. Cursors over the view
// are bounded to it.
func (f *File) View(off, n int64) (cursor.Source, error) {
	if f.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || n < 0 || off > f.size || n > f.size-off {
		return nil, fmt.Errorf("%w: view %d bytes at %d, len=%d", ErrOutOfBounds, n, off, f.size)
	}
	return &section{src: f, off: off, n: n}, nil
}

// Fingerprint returns the xxhash of the contents. It is computed once.
func (f *File) Fingerprint() (uint64, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	sum, err := f.fingerprint.Get()
	if err != nil {
		return 0, translateError(err)
	}
	return sum, nil
}

func (f *File) computeFingerprint() (uint64, error) {
	var (
		sum uint64
		err error
	)
	if f.region != nil {
		sum, err = f.region.Fingerprint()
	} else {
		var data []byte
		if data, err = f.src.Data(); err == nil {
			sum = xxhash.Sum64(data)
		}
	}
	f.logger.LogFingerprint(context.Background(), f.path, sum, err)
	return sum, err
}

// Prefetch faults the mapping into memory. It returns the bytes covered.
// Decompressed files are already in memory and report 0.
func (f *File) Prefetch(ctx context.Context) (int64, error) {
	if f.closed.Load() {
		return 0, ErrClosed
	}
	if f.region == nil {
		return 0, nil
	}

	start := time.Now()
	n, err := f.region.Prefetch(ctx)
	err = translateError(err)
	f.metrics.RecordPrefetch(n, time.Since(start), err)
	f.logger.LogPrefetch(ctx, f.path, n, err)
	return n, err
}

// Close releases the mapping or buffer. It is idempotent.
func (f *File) Close() error {
	if f.closed.Swap(true) {
		return nil
	}

	start := time.Now()
	err := f.src.Close()
	f.metrics.RecordClose(f.size, time.Since(start), err)
	f.logger.LogClose(context.Background(), f.path, err)
	return err
}

// section is a bounded window over a File.
type section struct {
	src    cursor.Source
	off, n int64
}

func (s *section) Data() ([]byte, error) {
	data, err := s.src.Data()
	if err != nil {
		return nil, err
	}
	return data[s.off : s.off+s.n], nil
}
