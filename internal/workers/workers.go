// Package workers tracks background goroutines so tests and shutdown
// can wait for in-flight work (session revocation, analytics) to drain.
package workers

import "sync"

var Global = NewWorker()

type Worker struct {
	wg sync.WaitGroup
}

func NewWorker() *Worker {
	return &Worker{}
}

// Go runs fn on its own goroutine and tracks it until completion.
func (w *Worker) Go(fn func()) {
	w.wg.Add(1)

	go func() {
		defer w.wg.Done()
		fn()
	}()
}

// Wait blocks until every tracked goroutine has finished.
func (w *Worker) Wait() {
	w.wg.Wait()
}
