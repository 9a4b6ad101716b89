package testutil

import (
	"encoding/binary"
	"math/rand"
	"os"
	"path/filepath"
	"testing"
)

// WriteFile writes data to a new file named name inside t.TempDir and
// returns its path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}

// Pattern returns n deterministic pseudo-random bytes for seed.
func Pattern(seed int64, n int) []byte {
	b := make([]byte, n)
	r := rand.New(rand.NewSource(seed))
	_, _ = r.Read(b)
	return b
}

// Builder assembles little-endian binary fixtures.
type Builder struct {
	buf []byte
}

// U8 appends a byte.
func (b *Builder) U8(v uint8) *Builder {
	b.buf = append(b.buf, v)
	return b
}

// U16 appends a little-endian uint16.
func (b *Builder) U16(v uint16) *Builder {
	b.buf = binary.LittleEndian.AppendUint16(b.buf, v)
	return b
}

// U32 appends a little-endian uint32.
func (b *Builder) U32(v uint32) *Builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

// U64 appends a little-endian uint64.
func (b *Builder) U64(v uint64) *Builder {
	b.buf = binary.LittleEndian.AppendUint64(b.buf, v)
	return b
}

// CString appends s followed by a zero byte.
func (b *Builder) CString(s string) *Builder {
	b.buf = append(b.buf, s...)
	b.buf = append(b.buf, 0)
	return b
}

// WString appends UTF-16 code units followed by a zero unit.
func (b *Builder) WString(units ...uint16) *Builder {
	for _, u := range units {
		b.U16(u)
	}
	return b.U16(0)
}

// Raw appends p unchanged.
func (b *Builder) Raw(p []byte) *Builder {
	b.buf = append(b.buf, p...)
	return b
}

// Bytes returns the assembled fixture.
func (b *Builder) Bytes() []byte {
	return b.buf
}
