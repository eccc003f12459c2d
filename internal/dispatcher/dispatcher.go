package dispatcher

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/meki101/mekitech.co.ke/internal/model"
)

var (
	ErrNoHealthy = errors.New("no healthy providers")
	ErrNoAcquire = errors.New("provider not acquired")
)

// Dispatcher spreads notifications round-robin over the healthy providers.
type Dispatcher struct {
	providers         []Provider
	roundRobinCounter atomic.Uint64
	maxAttempts       int
}

func NewDispatcher(provs []Provider, maxAttempts int) *Dispatcher {
	if maxAttempts < 1 {
		maxAttempts = 3
	}

	return &Dispatcher{providers: provs, maxAttempts: maxAttempts}
}

func (d *Dispatcher) selectProvider() (Provider, error) {
	healthy := make([]Provider, 0, len(d.providers))
	for _, p := range d.providers {
		if p.Ready() {
			healthy = append(healthy, p)
		}
	}

	if len(healthy) == 0 {
		return nil, ErrNoHealthy
	}

	x := d.roundRobinCounter.Add(1)
	idx := int((x - 1) % uint64(len(healthy)))

	return healthy[idx], nil
}

func (d *Dispatcher) tryOnce(ctx context.Context, env model.InquiryEnvelope) error {
	p, err := d.selectProvider()
	if err != nil {
		return err
	}

	if !p.Acquire() {
		return ErrNoAcquire
	}

	return p.Notify(ctx, env)
}

// Notify tries up to maxAttempts providers and returns the last error.
func (d *Dispatcher) Notify(ctx context.Context, env model.InquiryEnvelope) error {
	var last error
	for i := 0; i < d.maxAttempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := d.tryOnce(ctx, env)
		if err == nil {
			return nil
		}
		last = err
		if errors.Is(err, ErrNoHealthy) {
			break
		}
	}

	return last
}
