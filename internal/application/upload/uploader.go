// Package upload persists ingested record sets in fixed-size batches with a
// bounded retry per batch.
//
// The design is deliberately at-least-once: when a batch exhausts its
// attempts the whole upload aborts, but batches already sent stay committed
// and visible. There is no compensating rollback.
package upload

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/digipos/sellthru-api/internal/domain"
	"github.com/digipos/sellthru-api/pkg/logger"
)

// Policy is the bounded-retry configuration: fixed batch size, a maximum
// number of attempts per batch with a fixed delay between attempts, and a
// throttle delay between consecutive batches.
type Policy struct {
	BatchSize   int
	MaxAttempts int
	RetryDelay  time.Duration
	BatchDelay  time.Duration
}

// DefaultPolicy mirrors the production dashboard: 500 records per batch,
// 3 attempts with 2s between them, 500ms between batches.
var DefaultPolicy = Policy{
	BatchSize:   500,
	MaxAttempts: 3,
	RetryDelay:  2 * time.Second,
	BatchDelay:  500 * time.Millisecond,
}

// Progress is reported after every committed batch. Percent is rounded.
type Progress struct {
	Processed int
	Total     int
	Percent   int
}

// ProgressFunc receives cumulative progress. May be nil.
type ProgressFunc func(Progress)

// SleepFunc injects the clock so tests can observe the delays.
type SleepFunc func(time.Duration)

// Uploader sends batches of T strictly sequentially. Invocations are not
// interleaved; callers hold a processing flag while a run is in flight.
type Uploader[T any] struct {
	policy Policy
	sleep  SleepFunc
	log    *logger.Logger
}

// New builds an uploader. A zero-valued field of p falls back to
// DefaultPolicy's value.
func New[T any](p Policy, log *logger.Logger) *Uploader[T] {
	if p.BatchSize <= 0 {
		p.BatchSize = DefaultPolicy.BatchSize
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = DefaultPolicy.MaxAttempts
	}
	if p.RetryDelay <= 0 {
		p.RetryDelay = DefaultPolicy.RetryDelay
	}
	if p.BatchDelay <= 0 {
		p.BatchDelay = DefaultPolicy.BatchDelay
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Uploader[T]{policy: p, sleep: time.Sleep, log: log}
}

// WithSleep replaces the clock (tests).
func (u *Uploader[T]) WithSleep(sleep SleepFunc) *Uploader[T] {
	u.sleep = sleep
	return u
}

// Run sends records in order. Every rejection from send is treated the same
// regardless of cause; after the last failed attempt the run aborts with
// domain.ErrBatchSendFailed and already-sent batches remain committed.
func (u *Uploader[T]) Run(ctx context.Context, records []T, send func(context.Context, []T) error, progress ProgressFunc) error {
	total := len(records)
	if total == 0 {
		return nil
	}

	processed := 0
	for start := 0; start < total; start += u.policy.BatchSize {
		end := start + u.policy.BatchSize
		if end > total {
			end = total
		}
		batch := records[start:end]

		if err := u.sendWithRetry(ctx, batch, send); err != nil {
			return err
		}

		processed += len(batch)
		if progress != nil {
			percent := int(math.Round(float64(processed) / float64(total) * 100))
			progress(Progress{Processed: processed, Total: total, Percent: percent})
		}
		u.log.Debug().Int("processed", processed).Int("total", total).Msg("batch committed")

		if end < total {
			u.sleep(u.policy.BatchDelay)
		}
	}
	return nil
}

func (u *Uploader[T]) sendWithRetry(ctx context.Context, batch []T, send func(context.Context, []T) error) error {
	var lastErr error
	for attempt := 1; attempt <= u.policy.MaxAttempts; attempt++ {
		lastErr = send(ctx, batch)
		if lastErr == nil {
			return nil
		}
		u.log.Warn().Err(lastErr).Int("attempt", attempt).Msg("batch send failed")
		if attempt < u.policy.MaxAttempts {
			u.sleep(u.policy.RetryDelay)
		}
	}
	return fmt.Errorf("%w: %d attempts: %v", domain.ErrBatchSendFailed, u.policy.MaxAttempts, lastErr)
}
