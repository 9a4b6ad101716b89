package fs

import (
	"errors"
	"os"
	"strings"
	"sync"
)

// ErrInjected is the error returned by a Fault with no explicit Err.
var ErrInjected = errors.New("injected fault error")

// Fault defines specific failure behavior.
type Fault struct {
	FailOnOpen  bool
	FailOnStat  bool
	FailOnClose bool
	// BadFd makes Fd return an invalid descriptor so that mapping fails.
	BadFd bool
	// Size overrides the size reported by Stat when non-zero.
	Size int64
	Err  error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyFS is a FileSystem wrapper that can inject errors.
type FaultyFS struct {
	FS    FileSystem
	mu    sync.Mutex
	rules map[string]Fault // Filename pattern -> Fault

	open   int
	opened int
	closed int
}

// NewFaultyFS creates a new FaultyFS wrapping the provided FS (or Default if nil).
func NewFaultyFS(fs FileSystem) *FaultyFS {
	if fs == nil {
		fs = Default
	}
	return &FaultyFS{
		FS:    fs,
		rules: make(map[string]Fault),
	}
}

// AddRule adds a fault injection rule for a specific file pattern.
func (f *FaultyFS) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// OpenFiles returns the number of files opened through f and not yet closed.
func (f *FaultyFS) OpenFiles() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.open
}

// Counts returns the total number of successful opens and closes.
func (f *FaultyFS) Counts() (opened, closed int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opened, f.closed
}

func (f *FaultyFS) match(name string) Fault {
	f.mu.Lock()
	defer f.mu.Unlock()
	var fault Fault
	for pattern, rule := range f.rules {
		if strings.Contains(name, pattern) {
			fault = rule
		}
	}
	return fault
}

func (f *FaultyFS) OpenFile(name string, flag int, perm os.FileMode) (File, error) {
	fault := f.match(name)
	if fault.FailOnOpen {
		return nil, &os.PathError{Op: "open", Path: name, Err: fault.err()}
	}

	file, err := f.FS.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.open++
	f.opened++
	f.mu.Unlock()

	return &faultyFile{File: file, fs: f, fault: fault}, nil
}

func (f *FaultyFS) Stat(name string) (os.FileInfo, error) {
	if fault := f.match(name); fault.FailOnStat {
		return nil, &os.PathError{Op: "stat", Path: name, Err: fault.err()}
	}
	return f.FS.Stat(name)
}

type faultyFile struct {
	File
	fs     *FaultyFS
	fault  Fault
	closed bool
}

func (ff *faultyFile) Stat() (os.FileInfo, error) {
	if ff.fault.FailOnStat {
		return nil, ff.fault.err()
	}
	fi, err := ff.File.Stat()
	if err != nil || ff.fault.Size == 0 {
		return fi, err
	}
	return sizedInfo{FileInfo: fi, size: ff.fault.Size}, nil
}

func (ff *faultyFile) Fd() uintptr {
	if ff.fault.BadFd {
		return ^uintptr(0)
	}
	return ff.File.Fd()
}

func (ff *faultyFile) Close() error {
	if !ff.closed {
		ff.closed = true
		ff.fs.mu.Lock()
		ff.fs.open--
		ff.fs.closed++
		ff.fs.mu.Unlock()
	}

	err := ff.File.Close()
	if ff.fault.FailOnClose {
		return ff.fault.err()
	}
	return err
}

type sizedInfo struct {
	os.FileInfo
	size int64
}

func (s sizedInfo) Size() int64 { return s.size }
