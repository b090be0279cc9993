// Package settings holds the user preferences that screens react to while
// running, and the stream that carries changes to them.
package settings

import (
	"context"
	"sync"
)

// DefaultItemsPerPage is the page size used until settings say otherwise
const DefaultItemsPerPage = 10

// UserSettings are the per-user display preferences
type UserSettings struct {
	ItemsPerPage int `mapstructure:"itemsPerPage"`
}

// Default returns the settings used when nothing is configured
func Default() UserSettings {
	return UserSettings{ItemsPerPage: DefaultItemsPerPage}
}

// Normalize replaces invalid values with defaults
func (s UserSettings) Normalize() UserSettings {
	if s.ItemsPerPage <= 0 {
		s.ItemsPerPage = DefaultItemsPerPage
	}
	return s
}

// Stream is a source of settings updates. Subscribe returns a channel that
// first receives the current value and then every published change. The
// channel is closed once ctx is done.
type Stream interface {
	Subscribe(ctx context.Context) <-chan UserSettings
}

// Broadcaster fans settings out to every live subscriber. Only the latest
// value is kept for a slow subscriber.
type Broadcaster struct {
	mu      sync.Mutex
	current UserSettings
	subs    map[int]chan UserSettings
	nextID  int
}

// NewBroadcaster creates a broadcaster seeded with initial
func NewBroadcaster(initial UserSettings) *Broadcaster {
	return &Broadcaster{
		current: initial.Normalize(),
		subs:    make(map[int]chan UserSettings),
	}
}

// Current returns the last published settings
func (b *Broadcaster) Current() UserSettings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Subscribe implements Stream
func (b *Broadcaster) Subscribe(ctx context.Context) <-chan UserSettings {
	ch := make(chan UserSettings, 1)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	ch <- b.current
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(b.subs, id)
		close(ch)
		b.mu.Unlock()
	}()

	return ch
}

// Publish stores s and delivers it to every subscriber
func (b *Broadcaster) Publish(s UserSettings) {
	s = s.Normalize()

	b.mu.Lock()
	defer b.mu.Unlock()
	b.current = s
	for _, ch := range b.subs {
		// drop a stale pending value so the subscriber sees the newest one
		select {
		case <-ch:
		default:
		}
		ch <- s
	}
}

// Subscribers returns the number of live subscriptions
func (b *Broadcaster) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
