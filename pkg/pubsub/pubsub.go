// Package pubsub implements fan-out of updates to a dynamic set of
// subscribers.
package pubsub

import (
	"log/slog"
	"sync"
)

// Publisher sends each published update to all subscribed channels.
type Publisher[T any] struct {
	subscribers map[chan T]struct{}
	logger      *slog.Logger
	lock        sync.RWMutex
}

// New returns a Publisher for updates of type T.
func New[T any](logger *slog.Logger) *Publisher[T] {
	return &Publisher[T]{
		subscribers: make(map[chan T]struct{}),
		logger:      logger,
	}
}

// Subscribe returns a channel on which the caller will receive all
// subsequent updates. The caller must drain the channel, or it will block
// all other subscribers.
func (p *Publisher[T]) Subscribe() chan T {
	p.lock.Lock()
	defer p.lock.Unlock()
	ch := make(chan T)
	p.subscribers[ch] = struct{}{}
	p.logger.Debug("subscribed", slog.Int("subscribers", len(p.subscribers)))
	return ch
}

// Unsubscribe stops updates to the channel. The channel is not closed.
func (p *Publisher[T]) Unsubscribe(ch chan T) {
	p.lock.Lock()
	defer p.lock.Unlock()
	delete(p.subscribers, ch)
	p.logger.Debug("unsubscribed", slog.Int("subscribers", len(p.subscribers)))
}

// Publish sends the update to all current subscribers.
func (p *Publisher[T]) Publish(update T) {
	p.lock.RLock()
	defer p.lock.RUnlock()
	for ch := range p.subscribers {
		ch <- update
	}
}

// Subscribers returns the number of current subscribers.
func (p *Publisher[T]) Subscribers() int {
	p.lock.RLock()
	defer p.lock.RUnlock()
	return len(p.subscribers)
}
