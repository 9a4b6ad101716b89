package cursor

import (
	"encoding/binary"
	"errors"
)

// ByteOrder is the byte order of every multi-byte read.
var ByteOrder = binary.LittleEndian

var (
	// ErrOutOfBounds is returned when a read or move would leave [0, Len].
	ErrOutOfBounds = errors.New("cursor: out of bounds")
	// ErrUnterminated is returned when no string terminator occurs before Len.
	ErrUnterminated = errors.New("cursor: unterminated string")
)

// Source provides the bytes a cursor reads.
// Data must return the same bytes on every call until it starts failing.
type Source interface {
	Data() ([]byte, error)
}

// Bytes is a Source over an in-memory slice.
type Bytes []byte

// Data implements Source.
func (b Bytes) Data() ([]byte, error) { return b, nil }

// Cursor is a position-tracking reader over a byte source.
type Cursor interface {
	// Position returns the current offset.
	Position() int64
	// SetPosition moves to an absolute offset in [0, Len].
	SetPosition(pos int64) error
	// Len returns the length of the underlying bytes.
	Len() int64
	// Remaining returns Len - Position.
	Remaining() int64

	ReadUint8() (uint8, error)
	ReadInt8() (int8, error)
	ReadUint16() (uint16, error)
	ReadInt16() (int16, error)
	ReadUint32() (uint32, error)
	ReadInt32() (int32, error)
	ReadUint64() (uint64, error)
	ReadInt64() (int64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)

	// ReadCString reads bytes up to a zero byte and advances past it.
	ReadCString() (string, error)
	// ReadCStringWide reads UTF-16LE code units up to a zero unit and
	// advances past it.
	ReadCStringWide() (string, error)

	// Move advances the position by n bytes (n may be negative).
	Move(n int64) error
	// ReadBytes copies len(dst) bytes into dst.
	ReadBytes(dst []byte) error

	// Duplicate returns an independent cursor over the same source at the
	// current position.
	Duplicate() Cursor
}
