// Command binkit-dump maps a binary file and decodes values from it.
//
// Usage:
//
//	binkit-dump [flags] FILE
//	binkit-dump --offset 0x3c --read u32,u16,cstr image.bin
//	binkit-dump --decompress --fingerprint archive.bin.zst
//	binkit-dump --offset 512 --count 64 --extract header.bin image.bin
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/hupe1980/binkit"
	"github.com/hupe1980/binkit/cursor"
	"github.com/natefinch/atomic"

	flag "github.com/spf13/pflag"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

type dumpOptions struct {
	path        string
	offset      int64
	reads       []string
	extract     string
	count       int64
	decompress  bool
	fingerprint bool
	jsonLog     bool
	verbose     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	opts, code := parseFlags(out, errOut, args)
	if code >= 0 {
		return code
	}

	logger := newLogger(errOut, opts)

	openOpts := []binkit.Option{binkit.WithLogger(logger)}
	if opts.decompress {
		openOpts = append(openOpts, binkit.WithDecompression(0))
	}

	f, err := binkit.Open(opts.path, openOpts...)
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return exitError
	}
	defer f.Close()

	fmt.Fprintf(out, "file: %s\nsize: %d\nformat: %s\n", f.Path(), f.Len(), f.Format())

	if opts.fingerprint {
		sum, err := f.Fingerprint()
		if err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return exitError
		}
		fmt.Fprintf(out, "xxhash: %016x\n", sum)
	}

	if len(opts.reads) > 0 {
		if err := dumpValues(out, f, opts.offset, opts.reads); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return exitError
		}
	}

	if opts.extract != "" {
		if err := extract(f, opts.offset, opts.count, opts.extract); err != nil {
			fmt.Fprintln(errOut, "error:", err)
			return exitError
		}
		fmt.Fprintf(out, "extracted %d bytes to %s\n", opts.count, opts.extract)
	}

	return exitOK
}

// parseFlags returns a negative code when the command should proceed.
func parseFlags(out, errOut io.Writer, args []string) (dumpOptions, int) {
	flagSet := flag.NewFlagSet("binkit-dump", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	offset := flagSet.StringP("offset", "o", "0", "Start position (decimal or 0x-prefixed hex)")
	reads := flagSet.StringSliceP("read", "r", nil, "Values to decode: u8,i8,u16,i16,u32,i32,u64,i64,f32,f64,cstr,wstr")
	extractPath := flagSet.String("extract", "", "Write --count bytes at --offset to this file")
	count := flagSet.Int64P("count", "n", 0, "Number of bytes to extract")
	decompress := flagSet.BoolP("decompress", "d", false, "Decode zstd, lz4, gzip and s2 input")
	fingerprint := flagSet.Bool("fingerprint", false, "Print the xxhash of the contents")
	jsonLog := flagSet.Bool("json-log", false, "Log as JSON")
	verbose := flagSet.BoolP("verbose", "v", false, "Enable debug logging")
	help := flagSet.BoolP("help", "h", false, "Show help")

	if err := flagSet.Parse(args); err != nil {
		fmt.Fprintln(errOut, "error:", err)
		return dumpOptions{}, exitUsage
	}

	if *help {
		fmt.Fprintln(out, "Usage: binkit-dump [flags] FILE")
		fmt.Fprintln(out)
		fmt.Fprint(out, flagSet.FlagUsages())
		return dumpOptions{}, exitOK
	}

	if flagSet.NArg() != 1 {
		fmt.Fprintln(errOut, "error: expected exactly one FILE argument")
		return dumpOptions{}, exitUsage
	}

	off, err := strconv.ParseInt(*offset, 0, 64)
	if err != nil || off < 0 {
		fmt.Fprintln(errOut, "error: invalid --offset:", *offset)
		return dumpOptions{}, exitUsage
	}

	if flagSet.Changed("extract") && *count <= 0 {
		fmt.Fprintln(errOut, "error: --extract requires a positive --count")
		return dumpOptions{}, exitUsage
	}

	for _, r := range *reads {
		if _, ok := readers[r]; !ok {
			fmt.Fprintln(errOut, "error: unknown --read type:", r)
			return dumpOptions{}, exitUsage
		}
	}

	return dumpOptions{
		path:        flagSet.Arg(0),
		offset:      off,
		reads:       *reads,
		extract:     *extractPath,
		count:       *count,
		decompress:  *decompress,
		fingerprint: *fingerprint,
		jsonLog:     *jsonLog,
		verbose:     *verbose,
	}, -1
}

func newLogger(w io.Writer, opts dumpOptions) *binkit.Logger {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	ho := &slog.HandlerOptions{Level: level}
	if opts.jsonLog {
		return binkit.NewLogger(slog.NewJSONHandler(w, ho))
	}
	return binkit.NewLogger(slog.NewTextHandler(w, ho))
}

var readers = map[string]func(c cursor.Cursor) (string, error){
	"u8":   format(cursor.Cursor.ReadUint8),
	"i8":   format(cursor.Cursor.ReadInt8),
	"u16":  format(cursor.Cursor.ReadUint16),
	"i16":  format(cursor.Cursor.ReadInt16),
	"u32":  format(cursor.Cursor.ReadUint32),
	"i32":  format(cursor.Cursor.ReadInt32),
	"u64":  format(cursor.Cursor.ReadUint64),
	"i64":  format(cursor.Cursor.ReadInt64),
	"f32":  format(cursor.Cursor.ReadFloat32),
	"f64":  format(cursor.Cursor.ReadFloat64),
	"cstr": quoted(cursor.Cursor.ReadCString),
	"wstr": quoted(cursor.Cursor.ReadCStringWide),
}

func format[T any](read func(cursor.Cursor) (T, error)) func(cursor.Cursor) (string, error) {
	return func(c cursor.Cursor) (string, error) {
		v, err := read(c)
		if err != nil {
			return "", err
		}
		return fmt.Sprint(v), nil
	}
}

func quoted(read func(cursor.Cursor) (string, error)) func(cursor.Cursor) (string, error) {
	return func(c cursor.Cursor) (string, error) {
		s, err := read(c)
		if err != nil {
			return "", err
		}
		return strconv.Quote(s), nil
	}
}

func dumpValues(out io.Writer, f *binkit.File, offset int64, kinds []string) error {
	c, err := f.CursorAt(offset)
	if err != nil {
		return err
	}
	for _, kind := range kinds {
		pos := c.Position()
		v, err := readers[kind](c)
		if err != nil {
			return fmt.Errorf("%s at 0x%x: %w", kind, pos, err)
		}
		fmt.Fprintf(out, "0x%08x  %-4s  %s\n", pos, kind, v)
	}
	return nil
}

func extract(f *binkit.File, offset, count int64, path string) error {
	v, err := f.View(offset, count)
	if err != nil {
		return err
	}
	data, err := v.Data()
	if err != nil {
		return err
	}
	return atomic.WriteFile(path, bytes.NewReader(data))
}
