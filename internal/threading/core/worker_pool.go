package core

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// ErrPoolStopped is returned for work handed to a pool after Stop.
var ErrPoolStopped = errors.New("worker pool stopped")

// WorkerPool manages a pool of worker goroutines for parallel processing
type WorkerPool struct {
	numWorkers int
	jobQueue   chan func()
	wg         sync.WaitGroup
	quit       chan struct{}
	stopOnce   sync.Once
}

// NewWorkerPool creates a new worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	return &WorkerPool{
		numWorkers: numWorkers,
		jobQueue:   make(chan func(), numWorkers*2),
		quit:       make(chan struct{}),
	}
}

// Start initializes and starts all worker goroutines
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.numWorkers; i++ {
		go wp.worker()
	}
}

func (wp *WorkerPool) worker() {
	for {
		select {
		case job := <-wp.jobQueue:
			job()
			wp.wg.Done()
		case <-wp.quit:
			return
		}
	}
}

// Submit adds a job to the worker queue. After Stop the job is dropped and
// ErrPoolStopped returned. Stop must not run concurrently with Submit.
func (wp *WorkerPool) Submit(job func()) error {
	if wp.Stopped() {
		return ErrPoolStopped
	}
	wp.wg.Add(1)
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.quit:
		wp.wg.Done()
		return ErrPoolStopped
	}
}

// Wait waits for all currently queued jobs to complete
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

// Stop shuts down the worker pool. Safe to call more than once.
func (wp *WorkerPool) Stop() {
	wp.stopOnce.Do(func() { close(wp.quit) })
}

// Stopped reports whether Stop has been called.
func (wp *WorkerPool) Stopped() bool {
	select {
	case <-wp.quit:
		return true
	default:
		return false
	}
}

// ParallelFor executes fn for every index in [start, end) across the pool.
func (wp *WorkerPool) ParallelFor(start, end int, fn func(int)) error {
	return wp.ParallelForWithContext(context.Background(), start, end, fn)
}

// ParallelForWithContext is ParallelFor with cancellation checked between
// iterations.
func (wp *WorkerPool) ParallelForWithContext(ctx context.Context, start, end int, fn func(int)) error {
	if start >= end {
		return nil
	}

	totalWork := end - start
	chunkSize := max(1, totalWork/wp.numWorkers)

	var wg sync.WaitGroup
	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := min(i+chunkSize, end)
		wg.Add(1)
		err := wp.Submit(func() {
			defer wg.Done()
			for j := chunkStart; j < chunkEnd; j++ {
				select {
				case <-ctx.Done():
					return
				default:
					fn(j)
				}
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

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}
