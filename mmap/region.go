package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/binkit/cache"
	"github.com/hupe1980/binkit/internal/conv"
	"github.com/hupe1980/binkit/internal/fs"
	"github.com/hupe1980/binkit/internal/resource"
)

// Region is a read-only memory mapping of a whole file.
// It owns the file handle and the mapping and releases both on Close.
type Region struct {
	path string
	size int64
	data []byte

	file fs.File
	m    *mapping // nil for an empty file
	rc   *resource.Controller

	closed atomic.Bool

	fingerprint *cache.Value[uint64]
}

// Open maps the file at path into memory as read-only.
//
// The file must exist and be readable; the errors for a missing file or a
// permission problem are the *os.PathError values returned by the open call.
func Open(path string, opts ...Option) (*Region, error) {
	o := options{fs: fs.Default}
	for _, opt := range opts {
		opt(&o)
	}

	f, err := o.fs.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, err
	}

	r, err := newRegion(path, f, &o)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return r, nil
}

// newRegion maps an open file. On failure it releases whatever it acquired
// itself; closing f is left to the caller.
func newRegion(path string, f fs.File, o *options) (*Region, error) {
	fi, err := f.Stat()
	if err != nil {
		return nil, &Error{Op: "stat", Path: path, Err: err}
	}

	size := fi.Size()
	if size < 0 {
		return nil, &Error{Op: "stat", Path: path, Err: ErrInvalidSize}
	}
	n, err := conv.Int64ToInt(size)
	if err != nil {
		return nil, &Error{Op: "stat", Path: path, Err: errors.Join(ErrInvalidSize, err)}
	}

	r := &Region{
		path: path,
		size: size,
		file: f,
		rc:   o.rc,
	}
	r.fingerprint = cache.NewValue(r.computeFingerprint)

	if size == 0 {
		return r, nil
	}

	if err := o.rc.AcquireMemory(size); err != nil {
		return nil, &Error{Op: "reserve", Path: path, Err: err}
	}

	m, err := osMap(f, n)
	if err != nil {
		o.rc.ReleaseMemory(size)
		return nil, &Error{Op: "map", Path: path, Err: err}
	}

	if o.access != AccessDefault {
		if err := osAdvise(m.data, o.access); err != nil {
			_ = m.release()
			o.rc.ReleaseMemory(size)
			return nil, &Error{Op: "advise", Path: path, Err: err}
		}
	}

	r.m = m
	r.data = m.data

	return r, nil
}

// Close unmaps the view, closes the mapping and the file, and returns the
// mapped size to the resource controller. It is idempotent.
func (r *Region) Close() error {
	if r.closed.Swap(true) {
		return nil
	}

	var errs []error
	if r.m != nil {
		if err := r.m.release(); err != nil {
			errs = append(errs, &Error{Op: "unmap", Path: r.path, Err: err})
		}
	}
	if err := r.file.Close(); err != nil {
		errs = append(errs, &Error{Op: "close", Path: r.path, Err: err})
	}
	if r.m != nil {
		r.rc.ReleaseMemory(r.size)
	}

	return errors.Join(errs...)
}

// Closed reports whether Close has been called.
func (r *Region) Closed() bool {
	return r.closed.Load()
}

// Data returns the mapped bytes, or ErrClosed after Close.
// The slice must be treated as read-only and must not be used after Close.
func (r *Region) Data() ([]byte, error) {
	if r.closed.Load() {
		return nil, ErrClosed
	}
	return r.data, nil
}

// Bytes returns the mapped bytes, or nil after Close.
func (r *Region) Bytes() []byte {
	if r.closed.Load() {
		return nil
	}
	return r.data
}

// Len returns the size of the file at open time.
func (r *Region) Len() int64 {
	return r.size
}

// Path returns the path the region was opened from.
func (r *Region) Path() string {
	return r.path
}

// Advise provides hints to the kernel about how the memory will be accessed.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.closed.Load() {
		return ErrClosed
	}
	if r.data == nil {
		return nil
	}
	return osAdvise(r.data, pattern)
}

// ReadAt implements io.ReaderAt.
func (r *Region) ReadAt(p []byte, off int64) (n int, err error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n = copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Fingerprint returns the xxhash64 of the file contents. The hash is computed
// on first use and memoized for the region's lifetime.
func (r *Region) Fingerprint() (uint64, error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	return r.fingerprint.Get()
}

func (r *Region) computeFingerprint() (uint64, error) {
	data, err := r.Data()
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(data), nil
}
