package rendering

import (
	"raycaster/internal/threading/core"
)

// inlineColumnLimit is the column count below which dispatch overhead
// outweighs parallel work
const inlineColumnLimit = 8

// ParallelRenderer fans independent screen columns out to a worker pool.
// A nil pool or a single worker renders inline on the calling goroutine.
type ParallelRenderer struct {
	workerPool *core.WorkerPool
}

// NewParallelRenderer creates a renderer with the given worker count.
// workers == 0 sizes the pool to the CPU count; 1 or less otherwise never
// starts goroutines.
func NewParallelRenderer(workers int) *ParallelRenderer {
	if workers == 0 {
		return &ParallelRenderer{workerPool: core.CreateDefaultWorkerPool()}
	}
	if workers <= 1 {
		return &ParallelRenderer{}
	}
	pool := core.NewWorkerPool(workers)
	pool.Start()
	return &ParallelRenderer{workerPool: pool}
}

// Workers reports how many goroutines render columns
func (pr *ParallelRenderer) Workers() int {
	if pr.workerPool == nil {
		return 1
	}
	return pr.workerPool.GetNumWorkers()
}

// RenderColumns calls columnFunc once for every column in [0, numColumns) and
// returns after all calls finished. columnFunc must only touch state owned by
// its column.
func (pr *ParallelRenderer) RenderColumns(numColumns int, columnFunc func(column int)) {
	// Very small workloads: process inline to avoid synchronization overhead
	if pr.workerPool == nil || numColumns <= inlineColumnLimit {
		for column := 0; column < numColumns; column++ {
			columnFunc(column)
		}
		return
	}

	pr.workerPool.ParallelFor(0, numColumns, columnFunc)
}

// Stop shuts down the parallel renderer
func (pr *ParallelRenderer) Stop() {
	if pr.workerPool != nil {
		pr.workerPool.Stop()
	}
}
