package ports

import (
	"context"

	"weather-notify/internal/domain/model"
)

// Receiver handles broadcast envelopes.
type Receiver interface {
	// Actions lists the envelope actions the receiver accepts. An empty list
	// accepts every envelope.
	Actions() []string
	Receive(ctx context.Context, env *model.Envelope) error
}

// Broadcaster delivers envelopes to registered receivers.
type Broadcaster interface {
	Send(ctx context.Context, env *model.Envelope) error
}
