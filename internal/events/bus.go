package events

import "context"

// Bus moves published messages toward the hub. The in-process bus is
// the single-instance default; the Redis bus lets several instances
// share one live feed.
type Bus interface {
	Publish(ctx context.Context, msg Message) error
	StartForwarder(ctx context.Context, onMsg func(msg Message)) error
	Close() error
}

type memoryBus struct {
	onMsg func(msg Message)
}

// NewMemoryBus returns a Bus that hands messages straight to the
// forwarder callback.
func NewMemoryBus() Bus {
	return &memoryBus{}
}

func (b *memoryBus) Publish(_ context.Context, msg Message) error {
	if b.onMsg != nil {
		b.onMsg(msg)
	}
	return nil
}

func (b *memoryBus) StartForwarder(_ context.Context, onMsg func(msg Message)) error {
	b.onMsg = onMsg
	return nil
}

func (b *memoryBus) Close() error { return nil }
