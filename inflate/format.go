package inflate

import "bytes"

// Format identifies a compression container.
type Format uint8

const (
	// None means the data is not compressed.
	None Format = iota
	// Zstd is a zstandard frame.
	Zstd
	// LZ4 is an lz4 frame (not a raw lz4 block).
	LZ4
	// Gzip is a gzip member.
	Gzip
	// S2 is an s2 or snappy framed stream.
	S2
)

var (
	magicZstd   = []byte{0x28, 0xB5, 0x2F, 0xFD}
	magicLZ4    = []byte{0x04, 0x22, 0x4D, 0x18}
	magicGzip   = []byte{0x1F, 0x8B}
	magicSnappy = []byte("\xff\x06\x00\x00sNaPpY")
	magicS2     = []byte("\xff\x06\x00\x00S2sTwO")
)

// Detect reports the format of b from its leading bytes.
func Detect(b []byte) Format {
	switch {
	case bytes.HasPrefix(b, magicZstd):
		return Zstd
	case bytes.HasPrefix(b, magicLZ4):
		return LZ4
	case bytes.HasPrefix(b, magicGzip):
		return Gzip
	case bytes.HasPrefix(b, magicSnappy), bytes.HasPrefix(b, magicS2):
		return S2
	default:
		return None
	}
}

func (f Format) String() string {
	switch f {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case LZ4:
		return "lz4"
	case Gzip:
		return "gzip"
	case S2:
		return "s2"
	default:
		return "unknown"
	}
}
