// Package notify delivers operator-facing registration notifications
// out of band. Delivery failures never propagate to the submission
// response path: the dispatcher retries with backoff and logs terminal
// failures.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"github.com/simoncdt/vericoupon/internal/model"
)

// Sender delivers one rendered notification.
type Sender interface {
	Send(ctx context.Context, reg *model.Registration) error
}

// Dispatcher queues registrations and delivers them from a background
// worker with bounded per-message retry.
type Dispatcher struct {
	sender     Sender
	queue      chan *model.Registration
	maxRetries int
	// initialInterval seeds the exponential backoff; overridable in tests.
	initialInterval time.Duration

	wg sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with a bounded queue. queueSize and
// maxRetries fall back to sane minimums when non-positive.
func NewDispatcher(sender Sender, queueSize, maxRetries int) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Dispatcher{
		sender:          sender,
		queue:           make(chan *model.Registration, queueSize),
		maxRetries:      maxRetries,
		initialInterval: 500 * time.Millisecond,
	}
}

// Start launches the delivery worker. The worker runs until Shutdown
// closes the queue.
func (d *Dispatcher) Start(ctx context.Context) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for reg := range d.queue {
			d.deliver(ctx, reg)
		}
	}()
}

// Enqueue hands a registration to the worker. It never blocks: when the
// queue is full the notification is dropped with an error log, keeping
// the submission path unaffected.
func (d *Dispatcher) Enqueue(reg *model.Registration) {
	select {
	case d.queue <- reg:
	default:
		log.Error().
			Str("registration_id", reg.ID).
			Msg("notification queue full, dropping notification")
	}
}

// Shutdown closes the queue and waits for in-flight deliveries to drain,
// up to the context deadline.
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	close(d.queue)

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// deliver sends one notification with exponential backoff. A terminal
// failure is logged and swallowed.
func (d *Dispatcher) deliver(ctx context.Context, reg *model.Registration) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = d.initialInterval

	attempt := 0
	err := backoff.Retry(func() error {
		attempt++
		return d.sender.Send(ctx, reg)
	}, backoff.WithContext(backoff.WithMaxRetries(policy, uint64(d.maxRetries)), ctx))

	if err != nil {
		log.Error().
			Err(err).
			Str("registration_id", reg.ID).
			Int("attempts", attempt).
			Msg("notification delivery failed")
		return
	}

	log.Info().
		Str("registration_id", reg.ID).
		Int("attempts", attempt).
		Msg("notification delivered")
}
