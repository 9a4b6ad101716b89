package binkit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"

	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/binkit/cache"
	"github.com/hupe1980/binkit/cursor"
	"github.com/hupe1980/binkit/inflate"
	"github.com/hupe1980/binkit/internal/fs"
	"github.com/hupe1980/binkit/mmap"
	"github.com/hupe1980/binkit/testutil"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// header is a small fixture format: u32 count, then count records of
// {u32 id, cstring name}.
func header(names ...string) []byte {
	var b testutil.Builder
	b.U32(uint32(len(names)))
	for i, n := range names {
		b.U32(uint32(i + 100)).CString(n)
	}
	return b.Bytes()
}

func TestOpen_Mapped(t *testing.T) {
	data := header("alpha", "beta")
	path := testutil.WriteFile(t, "mapped.bin", data)

	f, err := Open(path)
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, f.Mapped())
	assert.Equal(t, inflate.None, f.Format())
	assert.Equal(t, int64(len(data)), f.Len())
	assert.Equal(t, path, f.Path())

	c, err := f.Cursor()
	require.NoError(t, err)
	n, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), n)

	id, err := c.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(100), id)
	name, err := c.ReadCString()
	require.NoError(t, err)
	assert.Equal(t, "alpha", name)

	c2, err := f.CursorAt(c.Position())
	require.NoError(t, err)
	id, err = c2.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(101), id)
}

func TestOpen_Decompressed(t *testing.T) {
	data := header("zeta")

	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(data)
	require.NoError(t, err)
	require.NoError(t, enc.Close())
	path := testutil.WriteFile(t, "packed.zst", buf.Bytes())

	// Without decompression the raw bytes are mapped.
	raw, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), raw.Len())
	require.NoError(t, raw.Close())

	f, err := Open(path, WithDecompression(0))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, f.Mapped())
	assert.Equal(t, inflate.Zstd, f.Format())
	assert.Equal(t, int64(len(data)), f.Len())

	got, err := f.Data()
	require.NoError(t, err)
	assert.Equal(t, data, got)

	sum, err := f.Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, xxhash.Sum64(data), sum)

	n, err := f.Prefetch(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestOpen_DecompressionLimit(t *testing.T) {
	var buf bytes.Buffer
	enc, err := zstd.NewWriter(&buf)
	require.NoError(t, err)
	_, err = enc.Write(testutil.Pattern(1, 4096))
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	_, err = Open(testutil.WriteFile(t, "big.zst", buf.Bytes()), WithDecompression(100))
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.ErrorIs(t, err, inflate.ErrTooLarge)
}

func TestOpen_NotFound(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	_, err := Open(filepath.Join(t.TempDir(), "nope.bin"), WithMetricsCollector(metrics))
	assert.ErrorIs(t, err, ErrNotFound)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.OpenCount)
	assert.Equal(t, int64(1), stats.OpenErrors)
}

func TestOpen_ConstructionFailureReleasesHandle(t *testing.T) {
	path := testutil.WriteFile(t, "fault.bin", []byte{1, 2, 3, 4})

	faulty := fs.NewFaultyFS(fs.Default)
	faulty.AddRule("fault.bin", fs.Fault{BadFd: true})
	budget := NewBudget(0, 0)

	_, err := Open(path, withFileSystem(faulty), WithBudget(budget))
	require.Error(t, err)

	var merr *mmap.Error
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "map", merr.Op)
	assert.Zero(t, faulty.OpenFiles())
	assert.Zero(t, budget.MemoryUsage())
}

func TestOpen_Budget(t *testing.T) {
	a := testutil.WriteFile(t, "a.bin", testutil.Pattern(1, 600))
	b := testutil.WriteFile(t, "b.bin", testutil.Pattern(2, 600))
	budget := NewBudget(1000, 0)
	assert.Equal(t, int64(1000), budget.MemoryLimit())

	fa, err := Open(a, WithBudget(budget))
	require.NoError(t, err)
	assert.Equal(t, int64(600), budget.MemoryUsage())

	_, err = Open(b, WithBudget(budget))
	assert.ErrorIs(t, err, ErrBudgetExceeded)

	require.NoError(t, fa.Close())
	assert.Zero(t, budget.MemoryUsage())

	fb, err := Open(b, WithBudget(budget))
	require.NoError(t, err)
	require.NoError(t, fb.Close())

	var nilBudget *Budget
	assert.Zero(t, nilBudget.MemoryUsage())
	assert.Zero(t, nilBudget.MemoryLimit())
}

func TestFile_CursorAtOutOfBounds(t *testing.T) {
	f, err := Open(testutil.WriteFile(t, "small.bin", []byte{1, 2}))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.CursorAt(3)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorIs(t, err, cursor.ErrOutOfBounds)
}

func TestFile_View(t *testing.T) {
	data := header("one", "two")
	f, err := Open(testutil.WriteFile(t, "view.bin", data))
	require.NoError(t, err)
	defer f.Close()

	v, err := f.View(4, 8)
	require.NoError(t, err)
	got, err := v.Data()
	require.NoError(t, err)
	assert.Equal(t, data[4:12], got)

	r, err := cursor.NewReader(v)
	require.NoError(t, err)
	assert.Equal(t, int64(8), r.Len())
	id, err := r.ReadUint32()
	require.NoError(t, err)
	assert.Equal(t, uint32(100), id)

	_, err = f.View(int64(len(data)), 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	_, err = f.View(-1, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	empty, err := f.View(int64(len(data)), 0)
	require.NoError(t, err)
	got, err = empty.Data()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFile_Close(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	f, err := Open(testutil.WriteFile(t, "close.bin", header("x")), WithMetricsCollector(metrics))
	require.NoError(t, err)

	c, err := f.Cursor()
	require.NoError(t, err)
	v, err := f.View(0, 4)
	require.NoError(t, err)

	require.NoError(t, f.Close())
	require.NoError(t, f.Close())

	_, err = c.ReadUint32()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, err, mmap.ErrClosed)

	_, err = v.Data()
	assert.ErrorIs(t, err, ErrClosed)

	_, err = f.Cursor()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.View(0, 1)
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.Fingerprint()
	assert.ErrorIs(t, err, ErrClosed)
	_, err = f.Prefetch(context.Background())
	assert.ErrorIs(t, err, ErrClosed)

	stats := metrics.GetStats()
	assert.Equal(t, int64(1), stats.CloseCount)
	assert.Zero(t, stats.LiveBytes)
}

func TestFile_FingerprintOnce(t *testing.T) {
	data := testutil.Pattern(9, 8192)
	f, err := Open(testutil.WriteFile(t, "fp.bin", data))
	require.NoError(t, err)
	defer f.Close()

	var wg sync.WaitGroup
	sums := make([]uint64, 16)
	for i := range sums {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sums[i], _ = f.Fingerprint()
		}()
	}
	wg.Wait()

	for _, s := range sums {
		assert.Equal(t, xxhash.Sum64(data), s)
	}
	assert.Equal(t, int64(1), f.fingerprint.Stats().Populations)
}

func TestFile_Prefetch(t *testing.T) {
	data := testutil.Pattern(3, 3*4096+7)
	metrics := &BasicMetricsCollector{}
	f, err := Open(testutil.WriteFile(t, "pf.bin", data),
		WithMetricsCollector(metrics),
		WithBudget(NewBudget(0, 1<<30)),
		WithAccessPattern(mmap.AccessSequential),
	)
	require.NoError(t, err)
	defer f.Close()

	n, err := f.Prefetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)
	assert.Equal(t, int64(len(data)), metrics.GetStats().PrefetchBytes)
}

func TestFile_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	path := testutil.WriteFile(t, "log.bin", []byte{1, 2, 3})
	f, err := Open(path, WithLogger(logger))
	require.NoError(t, err)
	_, err = f.Fingerprint()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	out := buf.String()
	assert.Contains(t, out, `"msg":"file opened"`)
	assert.Contains(t, out, `"msg":"fingerprint computed"`)
	assert.Contains(t, out, `"msg":"file closed"`)
	assert.Contains(t, out, `"format":"none"`)
	assert.Contains(t, out, path)
}

func TestFile_KeyedRecords(t *testing.T) {
	data := header("a", "bb", "ccc")
	f, err := Open(testutil.WriteFile(t, "records.bin", data))
	require.NoError(t, err)
	defer f.Close()

	type record struct {
		ID   uint32
		Name string
	}

	records := cache.NewKeyed(func(off int64) (record, error) {
		c, err := f.CursorAt(off)
		if err != nil {
			return record{}, err
		}
		id, err := c.ReadUint32()
		if err != nil {
			return record{}, err
		}
		name, err := c.ReadCString()
		return record{ID: id, Name: name}, err
	})

	rec, err := records.Get(4)
	require.NoError(t, err)
	assert.Equal(t, record{ID: 100, Name: "a"}, rec)

	_, err = records.Get(int64(len(data)) + 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.Equal(t, 1, records.Len())

	require.NoError(t, f.Close())
	records.Clear()
	_, err = records.Get(4)
	assert.True(t, errors.Is(err, ErrClosed))
}
