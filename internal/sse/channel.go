package sse

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/chaizz/lumen-Park/internal/model"
)

var ErrChannelClosed = errors.New("channel closed")

// Channel is an unbounded FIFO of payloads owned by one stream connection.
// Enqueue never blocks, so the registry can publish while holding no lock
// that a reader waits on.
type Channel struct {
	id        string
	recipient string

	mu     sync.Mutex
	queue  []model.Payload
	closed bool
	ready  chan struct{}
	done   chan struct{}
}

func newChannel(id, recipient string) *Channel {
	return &Channel{
		id:        id,
		recipient: recipient,
		ready:     make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
}

func (c *Channel) ID() string { return c.id }

func (c *Channel) Recipient() string { return c.recipient }

// enqueue appends p and reports whether it was accepted.
func (c *Channel) enqueue(p model.Payload) bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.queue = append(c.queue, p)
	c.mu.Unlock()

	select {
	case c.ready <- struct{}{}:
	default:
	}
	return true
}

func (c *Channel) pop() (model.Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.queue) == 0 {
		return model.Payload{}, false
	}
	p := c.queue[0]
	c.queue[0] = model.Payload{}
	c.queue = c.queue[1:]
	if len(c.queue) > 0 {
		select {
		case c.ready <- struct{}{}:
		default:
		}
	}
	return p, true
}

// Next waits up to wait for the next payload. It returns ok=false on timeout,
// ctx.Err() on cancellation and ErrChannelClosed once the channel is torn down.
// Payloads queued before a close are dropped.
func (c *Channel) Next(ctx context.Context, wait time.Duration) (model.Payload, bool, error) {
	if p, ok := c.pop(); ok {
		return p, true, nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return model.Payload{}, false, ctx.Err()
		case <-c.done:
			return model.Payload{}, false, ErrChannelClosed
		case <-timer.C:
			return model.Payload{}, false, nil
		case <-c.ready:
			if p, ok := c.pop(); ok {
				return p, true, nil
			}
		}
	}
}

// Len returns the number of queued payloads.
func (c *Channel) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

func (c *Channel) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.queue = nil
	close(c.done)
}
