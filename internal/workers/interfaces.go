// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface and a Workers aggregate that starts and
// stops several workers in a unified way, plus the mail dispatcher that
// delivers notifications off the request path.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Run starts the worker's execution and must not block: implementations
// spawn their goroutines and return. The goroutines stop when ctx is
// cancelled or Stop is called. Stop blocks until all of them have exited.
//
// Example implementation:
//
//	type MyWorker struct{ wg sync.WaitGroup }
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    w.wg.Add(1)
//	    go func() { defer w.wg.Done(); <-ctx.Done() }()
//	}
//
//	func (w *MyWorker) Stop() { w.wg.Wait() }
type Worker interface {
	Run(ctx context.Context)
	Stop()
}
