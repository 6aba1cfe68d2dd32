package core

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"raycaster/internal/mathutil"
)

// Band is a half-open index range [Start, End).
type Band struct {
	Start, End int
}

// SplitBands divides n items into at most parts contiguous, disjoint bands
// that together cover [0, n). Earlier bands take the remainder.
func SplitBands(n, parts int) []Band {
	if n <= 0 {
		return nil
	}
	parts = mathutil.IntClamp(parts, 1, n)

	bands := make([]Band, 0, parts)
	size, extra := n/parts, n%parts
	start := 0
	for i := 0; i < parts; i++ {
		end := start + size
		if i < extra {
			end++
		}
		bands = append(bands, Band{Start: start, End: end})
		start = end
	}
	return bands
}

// ParallelBands runs fn once per band of [0, n), at most limit at a time.
// A limit of zero or less means one per CPU. The first error cancels the
// context handed to the remaining bands and is returned.
func ParallelBands(ctx context.Context, n, limit int, fn func(ctx context.Context, b Band) error) error {
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, b := range SplitBands(n, limit) {
		b := b
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, b)
		})
	}
	return g.Wait()
}
