package renderer

import (
	"runtime"
	"sync"
)

// RowTask is a band of image rows [StartRow, EndRow) processed by one worker
type RowTask struct {
	TaskID   int
	StartRow int
	EndRow   int
}

// RowResult contains the result from processing a band of rows
type RowResult struct {
	TaskID     int
	HitPixels  int
	MissPixels int
}

// RowFunc processes one band. Bands never overlap, so implementations may
// write to their own rows of a shared buffer without locking.
type RowFunc func(task RowTask) RowResult

// WorkerPool manages parallel row processing
type WorkerPool struct {
	taskQueue   chan RowTask
	resultQueue chan RowResult
	workers     []*Worker
	numWorkers  int
	wg          sync.WaitGroup
}

// Worker handles individual row tasks
type Worker struct {
	ID          int
	process     RowFunc
	taskQueue   chan RowTask
	resultQueue chan RowResult
}

// NewWorkerPool creates a worker pool with the specified number of workers.
// maxTasks sizes the queues so submitting every task before draining results
// never blocks.
func NewWorkerPool(numWorkers, maxTasks int, process RowFunc) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	wp := &WorkerPool{
		taskQueue:   make(chan RowTask, maxTasks),
		resultQueue: make(chan RowResult, maxTasks),
		numWorkers:  numWorkers,
	}

	for i := 0; i < numWorkers; i++ {
		wp.workers = append(wp.workers, &Worker{
			ID:          i,
			process:     process,
			taskQueue:   wp.taskQueue,
			resultQueue: wp.resultQueue,
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(&wp.wg)
	}
}

// Stop closes the task queue, waits for workers to finish and closes the
// result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask submits a row task to the worker pool
func (wp *WorkerPool) SubmitTask(task RowTask) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed result
func (wp *WorkerPool) GetResult() (RowResult, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop
func (w *Worker) run(wg *sync.WaitGroup) {
	defer wg.Done()

	for task := range w.taskQueue {
		w.resultQueue <- w.process(task)
	}
}

// SplitRows partitions height rows into bands of at most rowsPerTask rows
func SplitRows(height, rowsPerTask int) []RowTask {
	if rowsPerTask <= 0 {
		rowsPerTask = 1
	}

	tasks := make([]RowTask, 0, (height+rowsPerTask-1)/rowsPerTask)
	for start := 0; start < height; start += rowsPerTask {
		tasks = append(tasks, RowTask{
			TaskID:   len(tasks),
			StartRow: start,
			EndRow:   min(start+rowsPerTask, height),
		})
	}
	return tasks
}

// runRows processes every band on a fresh pool and returns the results
// ordered by task id
func runRows(numWorkers int, tasks []RowTask, process RowFunc) ([]RowResult, int) {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	pool := NewWorkerPool(max(1, min(numWorkers, len(tasks))), len(tasks), process)
	pool.Start()
	for _, task := range tasks {
		pool.SubmitTask(task)
	}
	pool.Stop()

	results := make([]RowResult, len(tasks))
	for {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		results[result.TaskID] = result
	}
	return results, pool.GetNumWorkers()
}
