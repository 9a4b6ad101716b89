package inflate

import (
	"fmt"

	"github.com/hupe1980/binkit/mmap"
)

// Source is a closable byte source. Both *mmap.Region and *Buffer satisfy it.
type Source interface {
	Data() ([]byte, error)
	Len() int64
	Close() error
}

var (
	_ Source = (*mmap.Region)(nil)
	_ Source = (*Buffer)(nil)
)

type options struct {
	limit   int64
	mapOpts []mmap.Option
}

// Option configures Open and OpenRegion.
type Option func(*options)

// WithLimit caps the decompressed size. Zero means no cap.
func WithLimit(n int64) Option {
	return func(o *options) {
		o.limit = n
	}
}

// WithMapOptions passes options through to mmap.Open.
func WithMapOptions(opts ...mmap.Option) Option {
	return func(o *options) {
		o.mapOpts = append(o.mapOpts, opts...)
	}
}

// Open maps path and decompresses it if it carries a known magic number.
// For uncompressed files the mapped region itself is returned. For
// compressed files the mapping is closed once the data is decoded.
func Open(path string, opts ...Option) (Source, error) {
	o := applyOptions(opts)

	region, err := mmap.Open(path, o.mapOpts...)
	if err != nil {
		return nil, err
	}

	src, err := openRegion(region, o)
	if err != nil {
		_ = region.Close()
		return nil, err
	}
	if src != Source(region) {
		if err := region.Close(); err != nil {
			_ = src.Close()
			return nil, err
		}
	}
	return src, nil
}

// OpenRegion decompresses region if needed. It returns region unchanged when
// the data is not compressed. The caller keeps ownership of region.
func OpenRegion(region *mmap.Region, opts ...Option) (Source, error) {
	return openRegion(region, applyOptions(opts))
}

func openRegion(region *mmap.Region, o *options) (Source, error) {
	data, err := region.Data()
	if err != nil {
		return nil, err
	}

	f := Detect(data)
	if f == None {
		return region, nil
	}

	out, err := Decode(f, data, o.limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", region.Path(), err)
	}
	return NewBuffer(out, f), nil
}

func applyOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
