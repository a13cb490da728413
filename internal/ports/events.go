package ports

import "context"

// Message is one raw event received from the command layer's bus.
type Message struct {
	Topic   string
	Payload []byte
}

// EventConsumer pulls command-executed events published by the bot gateway.
type EventConsumer interface {
	Poll(ctx context.Context, max int) ([]Message, error)
	Close() error
}
