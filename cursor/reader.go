package cursor

import (
	"bytes"
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/hupe1980/binkit/internal/conv"
)

// Reader is a Cursor over a Source.
// A Reader is not safe for concurrent use; use Duplicate to hand a cursor to
// another goroutine.
type Reader struct {
	src    Source
	length int64
	pos    int64
}

var _ Cursor = (*Reader)(nil)

// NewReader creates a Reader at position 0. The length is fixed to the
// length of the source's bytes at this call.
func NewReader(src Source) (*Reader, error) {
	data, err := src.Data()
	if err != nil {
		return nil, err
	}
	return &Reader{src: src, length: int64(len(data))}, nil
}

// Source returns the underlying source.
func (r *Reader) Source() Source {
	return r.src
}

func (r *Reader) Position() int64 {
	return r.pos
}

func (r *Reader) SetPosition(pos int64) error {
	if pos < 0 || pos > r.length {
		return fmt.Errorf("%w: seek to %d, len=%d", ErrOutOfBounds, pos, r.length)
	}
	r.pos = pos
	return nil
}

func (r *Reader) Len() int64 {
	return r.length
}

func (r *Reader) Remaining() int64 {
	return r.length - r.pos
}

// Move advances the position by n bytes. A negative n moves backwards.
func (r *Reader) Move(n int64) error {
	target, err := conv.AddInt64(r.pos, n)
	if err != nil || target < 0 || target > r.length {
		return fmt.Errorf("%w: move %d at %d, len=%d", ErrOutOfBounds, n, r.pos, r.length)
	}
	r.pos = target
	return nil
}

// peek returns the next n bytes without advancing.
func (r *Reader) peek(n int64) ([]byte, error) {
	data, err := r.src.Data()
	if err != nil {
		return nil, err
	}
	if n < 0 || n > r.length-r.pos {
		return nil, fmt.Errorf("%w: read %d bytes at %d, len=%d", ErrOutOfBounds, n, r.pos, r.length)
	}
	return data[r.pos : r.pos+n], nil
}

// Next returns the next n bytes as a subslice of the source and advances.
// The slice aliases the source and must not be modified or used after the
// source is closed.
func (r *Reader) Next(n int) ([]byte, error) {
	b, err := r.peek(int64(n))
	if err != nil {
		return nil, err
	}
	r.pos += int64(n)
	return b, nil
}

func (r *Reader) ReadBytes(dst []byte) error {
	b, err := r.Next(len(dst))
	if err != nil {
		return err
	}
	copy(dst, b)
	return nil
}

func (r *Reader) ReadUint8() (uint8, error) {
	b, err := r.Next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *Reader) ReadInt8() (int8, error) {
	v, err := r.ReadUint8()
	return int8(v), err
}

func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.Next(2)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint16(b), nil
}

func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.Next(4)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(b), nil
}

func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.Next(8)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint64(b), nil
}

func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadFloat32 reads an IEEE 754 single-precision value.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	return math.Float32frombits(v), err
}

// ReadFloat64 reads an IEEE 754 double-precision value.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	return math.Float64frombits(v), err
}

// PeekUint32 reads a uint32 without advancing. Parsers use it to test
// magic numbers and tags.
func (r *Reader) PeekUint32() (uint32, error) {
	b, err := r.peek(4)
	if err != nil {
		return 0, err
	}
	return ByteOrder.Uint32(b), nil
}

func (r *Reader) ReadCString() (string, error) {
	rest, err := r.peek(r.length - r.pos)
	if err != nil {
		return "", err
	}
	i := bytes.IndexByte(rest, 0)
	if i < 0 {
		return "", fmt.Errorf("%w: at %d, len=%d", ErrUnterminated, r.pos, r.length)
	}
	s := string(rest[:i])
	r.pos += int64(i) + 1
	return s, nil
}

func (r *Reader) ReadCStringWide() (string, error) {
	rest, err := r.peek(r.length - r.pos)
	if err != nil {
		return "", err
	}
	for i := 0; i+1 < len(rest); i += 2 {
		if rest[i] != 0 || rest[i+1] != 0 {
			continue
		}
		units := make([]uint16, i/2)
		for j := range units {
			units[j] = ByteOrder.Uint16(rest[2*j:])
		}
		r.pos += int64(i) + 2
		return string(utf16.Decode(units)), nil
	}
	return "", fmt.Errorf("%w: wide string at %d, len=%d", ErrUnterminated, r.pos, r.length)
}

func (r *Reader) Duplicate() Cursor {
	return r.Clone()
}

// Clone is Duplicate with a concrete result type.
func (r *Reader) Clone() *Reader {
	d := *r
	return &d
}
