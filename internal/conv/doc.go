// Package conv provides checked integer conversions for sizes and offsets.
//
// These functions perform bounds checking to prevent overflow when a file size
// or a cursor offset crosses between Go's platform-dependent int and the
// fixed-width int64 used for positions.
//
// Use cases:
//   - Converting a file size from os.FileInfo into a mapping length
//   - Advancing a cursor position by an untrusted relative offset
//
// For conversions that are provably safe by domain constraints (e.g., slice
// lengths into int64), use direct type casts instead to avoid overhead.
package conv
