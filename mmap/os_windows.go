//go:build windows

package mmap

import (
	"unsafe"

	"github.com/hupe1980/binkit/internal/fs"
	"golang.org/x/sys/windows"
)

func osMap(f fs.File, size int) (*mapping, error) {
	// PAGE_READONLY mapping object over the whole file.
	h, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, 0, 0, nil)
	if err != nil {
		return nil, err
	}

	addr, err := windows.MapViewOfFile(h, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		_ = windows.CloseHandle(h)
		return nil, err
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	return &mapping{
		data: data,
		// addr is captured here; reconstructing it from the slice after the
		// region is closed would be unsafe.
		unmapView:   func() error { return windows.UnmapViewOfFile(addr) },
		closeHandle: func() error { return windows.CloseHandle(h) },
	}, nil
}

func osAdvise(data []byte, pattern AccessPattern) error {
	// Windows does not have a direct equivalent to madvise.
	_ = data
	_ = pattern
	return nil
}
