// Command synca-demo exercises a handful of the package's primitives end to
// end: a thread pool, a strand, a timer-backed timeout, and a channel.
//
// Run with: go run ./cmd/synca-demo
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gridem/synca"
)

func main() {
	os.Exit(run())
}

func run() int {
	pool := synca.NewThreadPool(4, synca.WithThreadPoolName("workers"))
	defer func() {
		pool.Stop()
		pool.Join()
	}()
	synca.SchedulerTag[synca.DefaultTag]().Attach(pool)

	timers := synca.NewTimerService()
	synca.ServiceTag[synca.TimeoutTag]().Attach(timers)

	strand := synca.NewStrand(pool, synca.WithStrandName("accumulator"))
	ch := synca.NewChannel[int]()

	code := 0
	finished := make(chan struct{})

	// The demo body runs as a journey of its own, since Waiter.Wait (like
	// every suspending primitive in this package) must be called from
	// inside a running coroutine, not from main's own goroutine.
	synca.Go(func() {
		defer close(finished)
		defer func() {
			if r := recover(); r != nil {
				if _, ok := r.(*synca.EventException); ok {
					fmt.Fprintf(os.Stderr, "demo: expected event: %v\n", r)
					code = 1
					return
				}
				fmt.Fprintf(os.Stderr, "demo: unexpected error: %v\n", r)
				code = 2
			}
		}()

		done := synca.NewWaiter()

		done.Go(func() {
			total := 0
			synca.Teleport(strand)
			for i := 1; i <= 5; i++ {
				ch.Put(i)
			}
			ch.Close()

			t := synca.NewTimeout(500 * time.Millisecond)
			defer t.Close()

			for v, ok := ch.Get(); ok; v, ok = ch.Get() {
				total += v
			}
			fmt.Printf("sum: %d\n", total)
		})

		done.Wait()
	})

	<-finished
	synca.WaitForAllJourneys()
	return code
}
