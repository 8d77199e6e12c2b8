package sqlite

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mmynk/tipsplit/internal/models"
)

var errStoreClosed = errors.New("store is closed")

// broker fans write notifications out to collection watchers.
// Each subscriber owns a 1-slot signal channel so bursts of writes
// coalesce into a single re-read.
type broker struct {
	mu     sync.Mutex
	subs   map[string]map[chan struct{}]struct{}
	done   chan struct{}
	closed bool
}

func newBroker() *broker {
	return &broker{
		subs: make(map[string]map[chan struct{}]struct{}),
		done: make(chan struct{}),
	}
}

func (b *broker) subscribe(collection string) (chan struct{}, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, nil, errStoreClosed
	}

	signal := make(chan struct{}, 1)
	if b.subs[collection] == nil {
		b.subs[collection] = make(map[chan struct{}]struct{})
	}
	b.subs[collection][signal] = struct{}{}

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[collection], signal)
		if len(b.subs[collection]) == 0 {
			delete(b.subs, collection)
		}
	}
	return signal, unsubscribe, nil
}

func (b *broker) notify(collection string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for signal := range b.subs[collection] {
		select {
		case signal <- struct{}{}:
		default:
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	close(b.done)
}

// Watch streams snapshots of a collection: the current contents first, then
// a fresh snapshot after writes. The channel is closed when ctx is done or
// the store is closed.
func (s *SQLiteStore) Watch(ctx context.Context, collection string) (<-chan []models.Document, error) {
	signal, unsubscribe, err := s.watches.subscribe(collection)
	if err != nil {
		return nil, err
	}

	out := make(chan []models.Document)
	go func() {
		defer close(out)
		defer unsubscribe()

		for {
			docs, err := s.ListAll(ctx, collection)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("Watch snapshot failed", "collection", collection, "error", err)
			} else {
				select {
				case out <- docs:
				case <-ctx.Done():
					return
				case <-s.watches.done:
					return
				}
			}

			select {
			case <-signal:
			case <-ctx.Done():
				return
			case <-s.watches.done:
				return
			}
		}
	}()

	return out, nil
}
