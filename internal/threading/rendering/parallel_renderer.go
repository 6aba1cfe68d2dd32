package rendering

import (
	"context"
	"sync"

	"raycaster/internal/mathutil"
	"raycaster/internal/threading/core"
)

// ParallelRenderer spreads per-column work of a frame across worker
// goroutines. Each column index is handled by exactly one goroutine, so
// callers may write results into a slice indexed by column without locking.
type ParallelRenderer struct {
	workerPool *core.WorkerPool
}

// NewParallelRenderer creates a parallel renderer with the given worker
// count; zero or less uses one worker per CPU.
func NewParallelRenderer(workers int) *ParallelRenderer {
	pool := core.NewWorkerPool(workers)
	pool.Start()
	return &ParallelRenderer{workerPool: pool}
}

// GetNumWorkers returns the number of worker goroutines.
func (pr *ParallelRenderer) GetNumWorkers() int {
	return pr.workerPool.GetNumWorkers()
}

// RenderRaycast calls castFunc once for every ray index in [0, numRays) and
// returns when all calls have finished. It fails with core.ErrPoolStopped
// once the renderer has been stopped.
func (pr *ParallelRenderer) RenderRaycast(numRays int, castFunc func(rayIndex int)) error {
	if pr.workerPool.Stopped() {
		return core.ErrPoolStopped
	}

	// Very small workloads: process inline to avoid synchronization overhead
	if numRays <= 8 || pr.workerPool.GetNumWorkers() == 1 {
		for rayIndex := 0; rayIndex < numRays; rayIndex++ {
			castFunc(rayIndex)
		}
		return nil
	}

	batchSize := mathutil.IntClamp(numRays/pr.workerPool.GetNumWorkers(), 4, 32)

	var wg sync.WaitGroup
	for i := 0; i < numRays; i += batchSize {
		start := i
		end := mathutil.IntMin(i+batchSize, numRays)

		wg.Add(1)
		err := pr.workerPool.Submit(func() {
			defer wg.Done()
			for rayIndex := start; rayIndex < end; rayIndex++ {
				castFunc(rayIndex)
			}
		})
		if err != nil {
			wg.Done()
			wg.Wait()
			return err
		}
	}
	wg.Wait()
	return nil
}

// PaintColumns hands disjoint column bands covering [0, numColumns) to
// paint, one goroutine per band, bounded by the worker count.
func (pr *ParallelRenderer) PaintColumns(ctx context.Context, numColumns int, paint func(start, end int) error) error {
	if pr.workerPool.Stopped() {
		return core.ErrPoolStopped
	}
	return core.ParallelBands(ctx, numColumns, pr.workerPool.GetNumWorkers(), func(_ context.Context, b core.Band) error {
		return paint(b.Start, b.End)
	})
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	pr.workerPool.Stop()
}

// Stopped reports whether Stop has been called.
func (pr *ParallelRenderer) Stopped() bool {
	return pr.workerPool.Stopped()
}
