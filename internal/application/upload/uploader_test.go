package upload_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digipos/sellthru-api/internal/application/upload"
	"github.com/digipos/sellthru-api/internal/domain"
)

func records(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func noSleep(time.Duration) {}

func TestRun_SplitsIntoFixedBatches(t *testing.T) {
	u := upload.New[int](upload.Policy{BatchSize: 500}, nil).WithSleep(noSleep)

	var sizes []int
	var progress []upload.Progress
	err := u.Run(context.Background(), records(1200),
		func(_ context.Context, batch []int) error {
			sizes = append(sizes, len(batch))
			return nil
		},
		func(p upload.Progress) { progress = append(progress, p) })

	require.NoError(t, err)
	assert.Equal(t, []int{500, 500, 200}, sizes)

	require.Len(t, progress, 3)
	assert.Equal(t, upload.Progress{Processed: 500, Total: 1200, Percent: 42}, progress[0])
	assert.Equal(t, upload.Progress{Processed: 1000, Total: 1200, Percent: 83}, progress[1])
	assert.Equal(t, upload.Progress{Processed: 1200, Total: 1200, Percent: 100}, progress[2])
}

func TestRun_RecordOrderPreservedAcrossBatches(t *testing.T) {
	u := upload.New[int](upload.Policy{BatchSize: 4}, nil).WithSleep(noSleep)

	var got []int
	err := u.Run(context.Background(), records(10),
		func(_ context.Context, batch []int) error {
			got = append(got, batch...)
			return nil
		}, nil)

	require.NoError(t, err)
	assert.Equal(t, records(10), got)
}

func TestRun_RetriesThenSucceeds(t *testing.T) {
	u := upload.New[int](upload.Policy{BatchSize: 10, MaxAttempts: 3, RetryDelay: 2 * time.Second}, nil)

	var slept []time.Duration
	u.WithSleep(func(d time.Duration) { slept = append(slept, d) })

	attempts := 0
	err := u.Run(context.Background(), records(5),
		func(_ context.Context, _ []int) error {
			attempts++
			if attempts < 3 {
				return errors.New("connection reset")
			}
			return nil
		}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, slept, "a fixed delay separates the attempts")
}

func TestRun_AbortsAfterMaxAttempts(t *testing.T) {
	u := upload.New[int](upload.Policy{BatchSize: 2, MaxAttempts: 3}, nil).WithSleep(noSleep)

	calls := 0
	var progress []upload.Progress
	err := u.Run(context.Background(), records(6),
		func(_ context.Context, batch []int) error {
			calls++
			if batch[0] == 2 { // second batch always fails
				return errors.New("boom")
			}
			return nil
		},
		func(p upload.Progress) { progress = append(progress, p) })

	require.ErrorIs(t, err, domain.ErrBatchSendFailed)
	assert.Equal(t, 4, calls, "one success plus three failed attempts, then no further batches")
	require.Len(t, progress, 1, "the committed batch stays reported; nothing past the failure")
	assert.Equal(t, 2, progress[0].Processed)
}

func TestRun_ThrottlesBetweenBatchesOnly(t *testing.T) {
	u := upload.New[int](upload.Policy{BatchSize: 2, BatchDelay: 500 * time.Millisecond}, nil)

	var slept []time.Duration
	u.WithSleep(func(d time.Duration) { slept = append(slept, d) })

	err := u.Run(context.Background(), records(6),
		func(_ context.Context, _ []int) error { return nil }, nil)

	require.NoError(t, err)
	// Three batches, two gaps; no sleep after the last one.
	assert.Equal(t, []time.Duration{500 * time.Millisecond, 500 * time.Millisecond}, slept)
}

func TestRun_EmptyInputIsANoop(t *testing.T) {
	u := upload.New[int](upload.Policy{}, nil).WithSleep(noSleep)

	called := false
	err := u.Run(context.Background(), nil,
		func(_ context.Context, _ []int) error {
			called = true
			return nil
		}, nil)

	require.NoError(t, err)
	assert.False(t, called)
}

func TestNew_ZeroPolicyFallsBackToDefaults(t *testing.T) {
	u := upload.New[int](upload.Policy{}, nil).WithSleep(noSleep)

	var sizes []int
	err := u.Run(context.Background(), records(501),
		func(_ context.Context, batch []int) error {
			sizes = append(sizes, len(batch))
			return nil
		}, nil)

	require.NoError(t, err)
	assert.Equal(t, []int{500, 1}, sizes)
}
