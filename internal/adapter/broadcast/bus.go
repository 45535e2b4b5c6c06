package broadcast

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"weather-notify/internal/domain/model"
	"weather-notify/internal/domain/ports"
)

// Bus delivers envelopes synchronously to the registered receivers that accept
// their action.
type Bus struct {
	mu        sync.RWMutex
	receivers []ports.Receiver
	logger    ports.Logger
}

var _ ports.Broadcaster = (*Bus)(nil)

// NewBus creates a Bus with the given receivers already registered.
func NewBus(logger ports.Logger, receivers ...ports.Receiver) *Bus {
	b := &Bus{logger: logger}
	for _, r := range receivers {
		b.Register(r)
	}
	return b
}

// Register adds a receiver. Nil receivers are skipped.
func (b *Bus) Register(r ports.Receiver) {
	if r == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.receivers = append(b.receivers, r)
}

// Len returns the number of registered receivers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.receivers)
}

// Send delivers env to each matching receiver in registration order. A failing
// receiver does not stop delivery to the rest; all failures are joined.
func (b *Bus) Send(ctx context.Context, env *model.Envelope) error {
	b.mu.RLock()
	receivers := make([]ports.Receiver, len(b.receivers))
	copy(receivers, b.receivers)
	b.mu.RUnlock()

	var errs []error
	for i, r := range receivers {
		if !accepts(r, env) {
			continue
		}
		if err := r.Receive(ctx, env); err != nil {
			if b.logger != nil {
				b.logger.Error(ctx, "receiver failed", "receiver", i, "error", err)
			}
			errs = append(errs, fmt.Errorf("receiver %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

func accepts(r ports.Receiver, env *model.Envelope) bool {
	actions := r.Actions()
	if len(actions) == 0 {
		return true
	}
	if env == nil {
		return false
	}
	for _, action := range actions {
		if action == env.Action {
			return true
		}
	}
	return false
}
