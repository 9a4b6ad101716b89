package binkit

import (
	"errors"
	"fmt"
	iofs "io/fs"

	"github.com/hupe1980/binkit/cursor"
	"github.com/hupe1980/binkit/inflate"
	"github.com/hupe1980/binkit/internal/resource"
	"github.com/hupe1980/binkit/mmap"
)

var (
	// ErrClosed is returned when a file or one of its cursors is used after Close.
	ErrClosed = errors.New("binkit: file closed")

	// ErrOutOfBounds is returned when a read, seek or view falls outside the data.
	ErrOutOfBounds = errors.New("binkit: out of bounds")

	// ErrNotFound is returned when the file does not exist.
	ErrNotFound = errors.New("binkit: not found")

	// ErrBudgetExceeded is returned when mapping a file would exceed the budget.
	ErrBudgetExceeded = errors.New("binkit: memory budget exceeded")

	// ErrTooLarge is returned when decompressed data exceeds the configured limit.
	ErrTooLarge = errors.New("binkit: decompressed data too large")
)

// translateError maps package errors onto the root sentinels. The original
// error stays in the chain.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, mmap.ErrClosed):
		return fmt.Errorf("%w: %w", ErrClosed, err)
	case errors.Is(err, cursor.ErrOutOfBounds),
		errors.Is(err, cursor.ErrUnterminated),
		errors.Is(err, mmap.ErrOutOfBounds),
		errors.Is(err, mmap.ErrInvalidOffset):
		return fmt.Errorf("%w: %w", ErrOutOfBounds, err)
	case errors.Is(err, iofs.ErrNotExist):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	case errors.Is(err, resource.ErrMemoryLimitExceeded):
		return fmt.Errorf("%w: %w", ErrBudgetExceeded, err)
	case errors.Is(err, inflate.ErrTooLarge):
		return fmt.Errorf("%w: %w", ErrTooLarge, err)
	}

	return err
}
