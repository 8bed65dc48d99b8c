// internal/core/op/executor.go
package op

import (
	"time"

	"github.com/QuantumPickleJar/Stationeers-IC10-Extended/internal/logger"
)

// Executor serializes edit requests and advances them without starving
// the host's frame budget. Ordering is strict FIFO: the front operation
// runs to its terminal state before the next is considered, though its
// steps may be spread across many ticks.
type Executor struct {
	editor EditorInterface
	clock  Clock
	budget time.Duration
	queue  []Operation
}

// NewExecutor creates an executor with the given per-tick budget.
func NewExecutor(editor EditorInterface, clock Clock, budget time.Duration) *Executor {
	if clock == nil {
		clock = SystemClock()
	}
	if budget <= 0 {
		budget = 4 * time.Millisecond
	}
	return &Executor{
		editor: editor,
		clock:  clock,
		budget: budget,
	}
}

// Enqueue adds an operation for deferred execution across future ticks.
func (x *Executor) Enqueue(o Operation) {
	x.queue = append(x.queue, o)
	logger.DebugTagf("op", "Enqueued %s (pending=%d)", o.Name(), len(x.queue))
}

// Pending returns the number of queued operations, counting the
// partially advanced front operation.
func (x *Executor) Pending() int { return len(x.queue) }

// RunImmediate advances an operation in a tight loop until terminal,
// bypassing the time budget. Callers should prefer Enqueue except when
// a synchronous result is required before further composition.
func (x *Executor) RunImmediate(o Operation) error {
	for {
		r, err := x.advance(o)
		if err != nil {
			return err
		}
		if r == Done {
			return nil
		}
	}
}

// Tick drains the queue head-first, repeatedly advancing the front
// operation until either it terminates or the cumulative elapsed time
// exceeds the per-slice budget. Partial progress stays in the front
// operation's state and resumes next tick.
func (x *Executor) Tick() error {
	if len(x.queue) == 0 {
		return nil
	}
	start := x.clock.Now()
	var firstErr error

	for len(x.queue) > 0 {
		front := x.queue[0]
		r, err := x.advance(front)
		if err != nil {
			// A failed operation is terminal; surface the first error
			// but keep the queue moving.
			x.queue = x.queue[1:]
			logger.Errorf("Executor: %s failed: %v", front.Name(), err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if r == Done {
			x.queue = x.queue[1:]
			logger.DebugTagf("op", "Completed %s (pending=%d)", front.Name(), len(x.queue))
		}
		if x.clock.Now().Sub(start) >= x.budget {
			break
		}
	}
	return firstErr
}

// advance performs exactly one state transition of o.
func (x *Executor) advance(o Operation) (Result, error) {
	r, err := step(o, x.editor)
	if err != nil {
		return Done, err
	}
	return r, nil
}
