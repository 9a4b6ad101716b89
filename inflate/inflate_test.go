package inflate

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hupe1980/binkit/cursor"
	"github.com/hupe1980/binkit/mmap"
	"github.com/hupe1980/binkit/testutil"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compress(t *testing.T, f Format, data []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	var w io.WriteCloser
	switch f {
	case Zstd:
		enc, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		w = enc
	case LZ4:
		w = lz4.NewWriter(&buf)
	case Gzip:
		w = gzip.NewWriter(&buf)
	case S2:
		w = s2.NewWriter(&buf)
	default:
		t.Fatalf("no encoder for %s", f)
	}

	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want Format
	}{
		{"empty", nil, None},
		{"plain", []byte("hello world"), None},
		{"zstd", []byte{0x28, 0xB5, 0x2F, 0xFD, 0x00}, Zstd},
		{"lz4", []byte{0x04, 0x22, 0x4D, 0x18, 0x64}, LZ4},
		{"gzip", []byte{0x1F, 0x8B, 0x08}, Gzip},
		{"snappy", []byte("\xff\x06\x00\x00sNaPpY"), S2},
		{"s2", []byte("\xff\x06\x00\x00S2sTwO"), S2},
		{"short gzip", []byte{0x1F}, None},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.in))
		})
	}
}

func TestFormat_String(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "zstd", Zstd.String())
	assert.Equal(t, "lz4", LZ4.String())
	assert.Equal(t, "gzip", Gzip.String())
	assert.Equal(t, "s2", S2.String())
	assert.Equal(t, "unknown", Format(99).String())
}

func TestOpen_Compressed(t *testing.T) {
	var b testutil.Builder
	b.U32(42).CString("payload").Raw(testutil.Pattern(1, 4096))
	plain := b.Bytes()

	for _, f := range []Format{Zstd, LZ4, Gzip, S2} {
		t.Run(f.String(), func(t *testing.T) {
			path := testutil.WriteFile(t, "data."+f.String(), compress(t, f, plain))

			src, err := Open(path)
			require.NoError(t, err)
			defer src.Close()

			buf, ok := src.(*Buffer)
			require.True(t, ok)
			assert.Equal(t, f, buf.Format())
			assert.Equal(t, int64(len(plain)), buf.Len())

			data, err := buf.Data()
			require.NoError(t, err)
			if diff := cmp.Diff(plain, data); diff != "" {
				t.Errorf("decoded mismatch (-want +got):\n%s", diff)
			}

			r, err := cursor.NewReader(src)
			require.NoError(t, err)
			v, err := r.ReadUint32()
			require.NoError(t, err)
			assert.Equal(t, uint32(42), v)
			s, err := r.ReadCString()
			require.NoError(t, err)
			assert.Equal(t, "payload", s)
		})
	}
}

func TestOpen_SnappyCompatStream(t *testing.T) {
	plain := testutil.Pattern(2, 1000)

	var buf bytes.Buffer
	w := s2.NewWriter(&buf, s2.WriterSnappyCompat())
	_, err := w.Write(plain)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.Equal(t, S2, Detect(buf.Bytes()))

	src, err := Open(testutil.WriteFile(t, "data.sz", buf.Bytes()))
	require.NoError(t, err)
	defer src.Close()

	data, err := src.Data()
	require.NoError(t, err)
	assert.Equal(t, plain, data)
}

func TestOpen_Uncompressed(t *testing.T) {
	plain := []byte("not compressed at all")
	path := testutil.WriteFile(t, "plain.bin", plain)

	src, err := Open(path)
	require.NoError(t, err)
	defer src.Close()

	region, ok := src.(*mmap.Region)
	require.True(t, ok)
	assert.Equal(t, path, region.Path())

	data, err := src.Data()
	require.NoError(t, err)
	assert.Equal(t, plain, data)
}

func TestOpen_Empty(t *testing.T) {
	src, err := Open(testutil.WriteFile(t, "empty.bin", nil))
	require.NoError(t, err)
	defer src.Close()

	assert.Zero(t, src.Len())
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpen_Corrupt(t *testing.T) {
	for _, f := range []Format{Zstd, LZ4, Gzip, S2} {
		t.Run(f.String(), func(t *testing.T) {
			full := compress(t, f, testutil.Pattern(3, 2048))
			truncated := full[:len(full)/2]

			_, err := Open(testutil.WriteFile(t, "bad."+f.String(), truncated))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad."+f.String())
		})
	}
}

func TestOpen_Limit(t *testing.T) {
	plain := testutil.Pattern(4, 10_000)
	path := testutil.WriteFile(t, "big.zst", compress(t, Zstd, plain))

	_, err := Open(path, WithLimit(1000))
	assert.ErrorIs(t, err, ErrTooLarge)

	src, err := Open(path, WithLimit(int64(len(plain))))
	require.NoError(t, err)
	assert.Equal(t, int64(len(plain)), src.Len())
	require.NoError(t, src.Close())
}

func TestOpenRegion_KeepsOwnership(t *testing.T) {
	plain := testutil.Pattern(5, 512)
	path := testutil.WriteFile(t, "owned.gz", compress(t, Gzip, plain))

	region, err := mmap.Open(path)
	require.NoError(t, err)
	defer region.Close()

	src, err := OpenRegion(region)
	require.NoError(t, err)
	require.NoError(t, src.Close())

	// The region is still usable by its owner.
	assert.False(t, region.Closed())
	_, err = region.Data()
	assert.NoError(t, err)

	require.NoError(t, region.Close())
	_, err = OpenRegion(region)
	assert.ErrorIs(t, err, mmap.ErrClosed)
}

func TestBuffer_Close(t *testing.T) {
	b := NewBuffer([]byte{1, 2, 3}, Zstd)
	r, err := cursor.NewReader(b)
	require.NoError(t, err)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	_, err = b.Data()
	assert.ErrorIs(t, err, mmap.ErrClosed)
	_, err = r.ReadUint8()
	assert.ErrorIs(t, err, mmap.ErrClosed)
}

func TestDecode(t *testing.T) {
	plain := []byte("abcabcabcabc")

	out, err := Decode(None, plain, 0)
	require.NoError(t, err)
	assert.Equal(t, plain, out)

	_, err = Decode(None, plain, 4)
	assert.ErrorIs(t, err, ErrTooLarge)

	_, err = Decode(Format(42), plain, 0)
	assert.ErrorIs(t, err, ErrUnsupported)

	// Pooled decoders are reused across calls.
	enc := compress(t, Zstd, plain)
	for range 3 {
		out, err := Decode(Zstd, enc, 0)
		require.NoError(t, err)
		assert.Equal(t, plain, out)
	}
	enc = compress(t, LZ4, plain)
	for range 3 {
		out, err := Decode(LZ4, enc, 0)
		require.NoError(t, err)
		assert.Equal(t, plain, out)
	}
}
