package mmap

import (
	"github.com/hupe1980/binkit/internal/fs"
	"github.com/hupe1980/binkit/internal/resource"
)

type options struct {
	fs     fs.FileSystem
	rc     *resource.Controller
	access AccessPattern
}

// Option configures Open.
type Option func(*options)

// WithFileSystem sets the file system used to open the file.
// If nil is passed, fs.Default is used.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys == nil {
			fsys = fs.Default
		}
		o.fs = fsys
	}
}

// WithResourceController charges the mapped size against rc's memory limit
// and throttles Prefetch with rc's IO limit.
func WithResourceController(rc *resource.Controller) Option {
	return func(o *options) {
		o.rc = rc
	}
}

// WithAccessPattern applies an access hint right after mapping.
func WithAccessPattern(p AccessPattern) Option {
	return func(o *options) {
		o.access = p
	}
}
