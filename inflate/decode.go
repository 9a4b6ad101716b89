package inflate

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var (
	// ErrTooLarge is returned when the decompressed size exceeds the limit.
	ErrTooLarge = errors.New("inflate: decompressed data exceeds limit")
	// ErrUnsupported is returned for a format with no decoder.
	ErrUnsupported = errors.New("inflate: unsupported format")
)

var (
	zstdDecoderPool sync.Pool
	lz4ReaderPool   sync.Pool
)

func getZstdDecoder(r io.Reader) (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		dec := v.(*zstd.Decoder)
		if err := dec.Reset(r); err != nil {
			return nil, err
		}
		return dec, nil
	}
	return zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
}

func putZstdDecoder(dec *zstd.Decoder) {
	// Drop the reference to the source before pooling.
	_ = dec.Reset(nil)
	zstdDecoderPool.Put(dec)
}

func getLZ4Reader(r io.Reader) *lz4.Reader {
	if v := lz4ReaderPool.Get(); v != nil {
		lr := v.(*lz4.Reader)
		lr.Reset(r)
		return lr
	}
	return lz4.NewReader(r)
}

func putLZ4Reader(lr *lz4.Reader) {
	lr.Reset(nil)
	lz4ReaderPool.Put(lr)
}

// Decode decompresses src in format f. A limit > 0 caps the decompressed
// size; ErrTooLarge is returned past it. None returns a copy of src.
func Decode(f Format, src []byte, limit int64) ([]byte, error) {
	in := bytes.NewReader(src)

	switch f {
	case None:
		if limit > 0 && int64(len(src)) > limit {
			return nil, ErrTooLarge
		}
		return bytes.Clone(src), nil
	case Zstd:
		dec, err := getZstdDecoder(in)
		if err != nil {
			return nil, fmt.Errorf("inflate: zstd: %w", err)
		}
		defer putZstdDecoder(dec)
		return readAll(f, dec, limit)
	case LZ4:
		lr := getLZ4Reader(in)
		defer putLZ4Reader(lr)
		return readAll(f, lr, limit)
	case Gzip:
		gr, err := gzip.NewReader(in)
		if err != nil {
			return nil, fmt.Errorf("inflate: gzip: %w", err)
		}
		defer gr.Close()
		return readAll(f, gr, limit)
	case S2:
		return readAll(f, s2.NewReader(in), limit)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupported, f)
	}
}

func readAll(f Format, r io.Reader, limit int64) ([]byte, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("inflate: %s: %w", f, err)
	}
	if limit > 0 && int64(len(out)) > limit {
		return nil, fmt.Errorf("%w: %s output over %d bytes", ErrTooLarge, f, limit)
	}
	return out, nil
}
