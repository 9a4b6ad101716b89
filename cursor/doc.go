// Package cursor defines the binary cursor used by format parsers and a
// bounds-checked implementation over in-memory bytes.
//
// A Cursor is a movable read position over a byte source. Reads advance the
// position by the width read; Duplicate returns an independent cursor at the
// same position so that separate goroutines can parse disjoint parts of the
// same mapped file without coordination.
//
// # Byte order
//
// All multi-byte integers are little-endian ([ByteOrder]).
//
// # Failure policy
//
// A read, Move or SetPosition that would leave [0, Len] fails with an error
// wrapping ErrOutOfBounds and leaves the position unchanged. String reads
// that reach Len without a terminator fail with ErrUnterminated, also
// without moving. Reads through a closed source return the source's error
// (mmap.ErrClosed for a closed region).
//
// # Usage
//
//	r, err := cursor.NewReader(region)
//	if err != nil { ... }
//	count, _ := r.ReadUint32()
//	name, _ := r.ReadCString()
//
//	// Parse the sections in parallel, one duplicate per offset.
//	err = cursor.Fanout(ctx, r, offsets, 4, func(ctx context.Context, c cursor.Cursor) error {
//	    return parseSection(c)
//	})
package cursor
