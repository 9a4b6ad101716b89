// Package mmap maps files read-only into memory for zero-copy parsing.
//
// # Overview
//
// A Region maps an entire file at open time and exposes its contents as a
// byte slice that stays valid until Close. Binary parsers read directly from
// the mapping through a cursor instead of copying through kernel buffers.
//
// # Usage
//
//	r, err := mmap.Open("image.pdb")
//	if err != nil { ... }
//	defer r.Close()
//
//	// Zero-copy access to file contents
//	data, err := r.Data()
//
//	// A bounded view into a specific section
//	section, _ := r.View(offset, size)
//
//	// Provide kernel hints for access patterns
//	r.Advise(mmap.AccessRandom)
//
// # Lifetime
//
// Open acquires, in order: the file handle, the mapped-memory budget, the
// mapping and its view. If any step fails, everything acquired before it is
// released before the error is returned. Close releases in reverse order and
// is idempotent.
//
// Every accessor checks the closed state: Data reports ErrClosed and Bytes
// returns nil once the region is closed, so cursors built on a Region fail
// cleanly instead of touching unmapped memory. Slices obtained before Close
// must not be used afterwards.
//
// A zero-length file opens successfully with Len() == 0 and no mapping.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with madvise(2) for access hints
//   - Windows: CreateFileMapping/MapViewOfFile (access hints are a no-op)
//
// # Thread Safety
//
// Region and View are safe for concurrent read access. Closing a region while
// other goroutines still read from it is the caller's responsibility to avoid.
package mmap
