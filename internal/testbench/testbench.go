// Package testbench drives single-owner FIFO queues through timed push/pop
// workloads. The queues under test are single-threaded by contract, so
// unlike a producer/consumer harness everything runs on one goroutine; the
// workload shape, not scheduling, is the variable being measured.
package testbench

import (
	"time"

	"github.com/quevin/flatqueue/internal/queue"
)

// Config describes one repeating burst pattern: each cycle pushes PushBurst
// elements and then pops PopBurst. PushBurst > PopBurst grows the queue over
// time, PushBurst < PopBurst drains toward empty, equal bursts hold the
// occupancy around Prefill.
type Config struct {
	Name      string
	PushBurst int
	PopBurst  int
	// Prefill is the number of elements pushed before timing starts.
	Prefill int
}

// Result reports what one timed run actually did.
type Result struct {
	Pushes  int64
	Pops    int64
	Elapsed time.Duration
	// FinalCap is the queue's backing capacity after the run drained it;
	// it exposes how much storage the workload left behind.
	FinalCap int
}

// deadlineCheckEvery bounds how often the clock is read; a time.Now per
// operation would dominate the fast queues being measured.
const deadlineCheckEvery = 1024

// RunTimedWorkload runs cfg against q for roughly the given duration, then
// drains the queue so every pushed element is popped exactly once. The value
// generator receives a running element index.
func RunTimedWorkload[T any, Q queue.FIFO[T]](
	q Q,
	cfg Config,
	duration time.Duration,
	valueGenerator func(int) T,
) Result {
	var pushes, pops int64

	for i := 0; i < cfg.Prefill; i++ {
		q.Push(valueGenerator(int(pushes)))
		pushes++
	}

	start := time.Now()
	deadline := start.Add(duration)
	sinceCheck := 0

	for {
		for i := 0; i < cfg.PushBurst; i++ {
			q.Push(valueGenerator(int(pushes)))
			pushes++
		}
		for i := 0; i < cfg.PopBurst; i++ {
			if _, ok := q.Pop(); !ok {
				break
			}
			pops++
		}

		sinceCheck += cfg.PushBurst + cfg.PopBurst
		if sinceCheck >= deadlineCheckEvery {
			sinceCheck = 0
			if !time.Now().Before(deadline) {
				break
			}
		}
	}

	for {
		if _, ok := q.Pop(); !ok {
			break
		}
		pops++
	}

	return Result{
		Pushes:   pushes,
		Pops:     pops,
		Elapsed:  time.Since(start),
		FinalCap: q.Cap(),
	}
}
