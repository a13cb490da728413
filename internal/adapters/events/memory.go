package events

import (
	"context"
	"sync"

	"github.com/FlashGalatine/xivdyetools-state-service/internal/ports"
)

// MemoryConsumer is an in-process EventConsumer used by tests and local runs.
type MemoryConsumer struct {
	mu       sync.Mutex
	messages []ports.Message
}

func NewMemoryConsumer() *MemoryConsumer {
	return &MemoryConsumer{messages: []ports.Message{}}
}

func (c *MemoryConsumer) Seed(messages []ports.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, messages...)
}

func (c *MemoryConsumer) Poll(_ context.Context, max int) ([]ports.Message, error) {
	if max <= 0 {
		max = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.messages) == 0 {
		return nil, nil
	}
	if max > len(c.messages) {
		max = len(c.messages)
	}
	out := c.messages[:max]
	c.messages = c.messages[max:]
	return out, nil
}

func (c *MemoryConsumer) Close() error { return nil }
