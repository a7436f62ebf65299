// Package batch runs sequential bulk operations with an injectable pacing
// policy between calls.
package batch

import (
	"context"
	"fmt"
	"time"
)

// Pacer paces sequential calls against an external rate limit.
type Pacer interface {
	Pause(ctx context.Context)
}

// FixedDelay pauses for a constant duration between calls.
type FixedDelay struct {
	Delay time.Duration
}

// Pause waits for the configured delay or until the context is cancelled.
func (p FixedDelay) Pause(ctx context.Context) {
	t := time.NewTimer(p.Delay)
	defer t.Stop()

	select {
	case <-t.C:
	case <-ctx.Done():
	}
}

// None never pauses.
type None struct{}

func (None) Pause(context.Context) {}

// Result is the outcome of a single item in a batch.
type Result struct {
	ID  string
	Err error
}

// Tally aggregates a finished batch.
type Tally struct {
	Total     int
	Succeeded int
	Results   []Result
}

// Failed returns the results that carried an error.
func (t Tally) Failed() []Result {
	var failed []Result
	for _, r := range t.Results {
		if r.Err != nil {
			failed = append(failed, r)
		}
	}

	return failed
}

// Summary renders the tally as "N out of M".
func (t Tally) Summary() string {
	return fmt.Sprintf("%d out of %d", t.Succeeded, t.Total)
}

// Process runs fn over ids strictly sequentially, pausing between consecutive
// calls. A failing item is recorded and skipped; the batch always runs to
// completion. onItem, when non-nil, is invoked before each item with its index
// and the total.
func Process(ctx context.Context, ids []string, pacer Pacer, onItem func(i, n int), fn func(id string) error) Tally {
	tally := Tally{
		Total:   len(ids),
		Results: make([]Result, 0, len(ids)),
	}

	for i, id := range ids {
		if onItem != nil {
			onItem(i, len(ids))
		}

		err := fn(id)
		if err == nil {
			tally.Succeeded++
		}
		tally.Results = append(tally.Results, Result{ID: id, Err: err})

		if i < len(ids)-1 {
			pacer.Pause(ctx)
		}
	}

	return tally
}
