//go:build unix

package mmap

import (
	"github.com/hupe1980/binkit/internal/fs"
	"golang.org/x/sys/unix"
)

func osMap(f fs.File, size int) (*mapping, error) {
	// Fd() returns uintptr; a bad descriptor maps to -1 and fails with EBADF.
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}

	return &mapping{
		data:      data,
		unmapView: func() error { return unix.Munmap(data) },
	}, nil
}

func osAdvise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}

	var advice int
	switch pattern {
	case AccessSequential:
		advice = unix.MADV_SEQUENTIAL
	case AccessRandom:
		advice = unix.MADV_RANDOM
	case AccessWillNeed:
		advice = unix.MADV_WILLNEED
	case AccessDontNeed:
		advice = unix.MADV_DONTNEED
	default:
		advice = unix.MADV_NORMAL
	}

	// Views are not page-aligned in general and madvise rejects those with
	// EINVAL. The hint is advisory, so that case succeeds silently.
	err := unix.Madvise(data, advice)
	if err == unix.EINVAL {
		return nil
	}
	return err
}
