// Package fs provides the file-system seam used when opening mapped regions.
//
// The package defines two key interfaces:
//
//   - [File]: an open file that can be stat'ed, read and handed to mmap via Fd
//   - [FileSystem]: opens files and stats paths
//
// # Implementations
//
//   - [LocalFS]: Production implementation using standard os package
//   - [FaultyFS]: Test utility for fault injection (simulate open, stat, close
//     and mapping failures) that also tracks how many handles are still open
//
// # Usage
//
// Production code should use fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDONLY, 0)
//
// Tests can inject [FaultyFS] to verify that a failed construction releases
// every handle it acquired:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("segment.bin", fs.Fault{FailOnStat: true})
//	// inject ffs into the component under test, then
//	// assert ffs.OpenFiles() == 0
//
// # Design Notes
//
// This package does NOT include context.Context parameters. Opening and
// stat'ing a local file is fast and non-interruptible at the syscall level.
package fs
