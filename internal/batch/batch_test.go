package batch_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/meyannis/mcpgmail/internal/batch"
)

func TestProcessContinuesPastFailures(t *testing.T) {
	errBoom := errors.New("boom")

	var calls []string
	tally := batch.Process(context.Background(), []string{"a", "b", "c"}, batch.None{}, nil, func(id string) error {
		calls = append(calls, id)
		if id == "b" {
			return errBoom
		}
		return nil
	})

	assert.Equal(t, []string{"a", "b", "c"}, calls)
	assert.Equal(t, 3, tally.Total)
	assert.Equal(t, 2, tally.Succeeded)
	assert.Equal(t, "2 out of 3", tally.Summary())

	failed := tally.Failed()
	assert.Len(t, failed, 1)
	assert.Equal(t, "b", failed[0].ID)
	assert.ErrorIs(t, failed[0].Err, errBoom)
}

func TestProcessReportsProgress(t *testing.T) {
	var seen [][2]int
	batch.Process(context.Background(), []string{"x", "y"}, batch.None{}, func(i, n int) {
		seen = append(seen, [2]int{i, n})
	}, func(string) error { return nil })

	assert.Equal(t, [][2]int{{0, 2}, {1, 2}}, seen)
}

func TestProcessEmpty(t *testing.T) {
	tally := batch.Process(context.Background(), nil, batch.None{}, nil, func(string) error {
		t.Fatal("fn must not be called")
		return nil
	})

	assert.Equal(t, 0, tally.Total)
	assert.Equal(t, "0 out of 0", tally.Summary())
}

func TestFixedDelayHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	batch.FixedDelay{Delay: time.Minute}.Pause(ctx)
	assert.Less(t, time.Since(start), time.Second)
}
