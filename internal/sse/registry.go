package sse

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chaizz/lumen-Park/internal/metrics"
	"github.com/chaizz/lumen-Park/internal/model"
)

var ErrRegistryClosed = errors.New("registry closed")

// Registry maps recipients to their open stream channels.
//
// Channels live in an arena keyed by connection id; byRecipient is a
// secondary index so that removal never compares channel identities.
// All map mutation happens under mu, and Publish only holds mu long enough
// to snapshot the recipient's channels.
type Registry struct {
	mu          sync.Mutex
	channels    map[string]*Channel
	byRecipient map[string]map[string]struct{}
	closed      bool

	metrics *metrics.Metrics
	log     *zap.Logger
}

func NewRegistry(m *metrics.Metrics, logger *zap.Logger) *Registry {
	return &Registry{
		channels:    make(map[string]*Channel),
		byRecipient: make(map[string]map[string]struct{}),
		metrics:     m,
		log:         logger,
	}
}

// Connect registers a new channel for recipient.
func (r *Registry) Connect(recipient string) (*Channel, error) {
	ch := newChannel(uuid.NewString(), recipient)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrRegistryClosed
	}
	r.channels[ch.id] = ch
	ids := r.byRecipient[recipient]
	if ids == nil {
		ids = make(map[string]struct{})
		r.byRecipient[recipient] = ids
	}
	ids[ch.id] = struct{}{}
	r.observeLocked()
	return ch, nil
}

// Disconnect removes ch and drops the recipient entry once it has no channels.
// It is safe to call more than once.
func (r *Registry) Disconnect(ch *Channel) {
	r.mu.Lock()
	if _, ok := r.channels[ch.id]; ok {
		delete(r.channels, ch.id)
		if ids := r.byRecipient[ch.recipient]; ids != nil {
			delete(ids, ch.id)
			if len(ids) == 0 {
				delete(r.byRecipient, ch.recipient)
			}
		}
		r.observeLocked()
	}
	r.mu.Unlock()

	ch.close()
}

// Publish fans payload out to every open channel of recipient and returns how
// many accepted it. With no open channel the payload is dropped.
func (r *Registry) Publish(recipient string, payload model.Payload) int {
	r.mu.Lock()
	ids := r.byRecipient[recipient]
	targets := make([]*Channel, 0, len(ids))
	for id := range ids {
		targets = append(targets, r.channels[id])
	}
	r.mu.Unlock()

	if len(targets) == 0 {
		r.metrics.Dropped.Inc()
		return 0
	}

	delivered := 0
	for _, ch := range targets {
		// a channel closed by a concurrent Disconnect refuses the payload
		if ch.enqueue(payload) {
			delivered++
		}
	}
	r.metrics.Delivered.Add(float64(delivered))
	return delivered
}

// Connections returns the number of open channels for recipient.
func (r *Registry) Connections(recipient string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byRecipient[recipient])
}

// Recipients returns the number of recipients with at least one open channel.
func (r *Registry) Recipients() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byRecipient)
}

// Close tears down every channel. Sessions blocked in Next observe
// ErrChannelClosed and deregister themselves.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	open := make([]*Channel, 0, len(r.channels))
	for _, ch := range r.channels {
		open = append(open, ch)
	}
	r.channels = make(map[string]*Channel)
	r.byRecipient = make(map[string]map[string]struct{})
	r.observeLocked()
	r.mu.Unlock()

	for _, ch := range open {
		ch.close()
	}
	r.log.Info("connection registry closed", zap.Int("channels", len(open)))
}

func (r *Registry) observeLocked() {
	r.metrics.OpenStreams.Set(float64(len(r.channels)))
	r.metrics.Recipients.Set(float64(len(r.byRecipient)))
}
