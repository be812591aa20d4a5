package worker

import (
	"runtime"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/oomph-ac/fpinertia/oerror"
)

var queue = make(chan func(), runtime.NumCPU())

func init() {
	for i := 0; i < runtime.NumCPU(); i++ {
		go worker()
	}
}

func worker() {
	for f := range queue {
		run(f)
	}
}

// run calls f, reporting a panic instead of losing the worker to it.
func run(f func()) {
	defer func() {
		if err := recover(); err != nil {
			hub := sentry.CurrentHub().Clone()
			hub.Recover(oerror.New("worker job panicked: %v", err))
			hub.Flush(time.Second * 5)
		}
	}()
	f()
}

// Submit queues f to run off the caller's goroutine. To be used for file IO and other work
// that must not stall a frame. Submit blocks only when every worker is busy and the queue is full.
func Submit(f func()) {
	queue <- f
}
