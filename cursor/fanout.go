package cursor

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Fanout runs fn once per position on a duplicate of c moved to that
// position, with at most limit calls in flight (limit <= 0 means no limit).
// c itself is not moved. The context passed to fn is canceled as soon as one
// call fails; Fanout returns the first error.
func Fanout(ctx context.Context, c Cursor, positions []int64, limit int, fn func(ctx context.Context, c Cursor) error) error {
	dups := make([]Cursor, len(positions))
	for i, pos := range positions {
		d := c.Duplicate()
		if err := d.SetPosition(pos); err != nil {
			return err
		}
		dups[i] = d
	}

	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for _, d := range dups {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(gctx, d)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	// gctx is always canceled once Wait returns; only the caller's context
	// tells whether the loop stopped early.
	return ctx.Err()
}
