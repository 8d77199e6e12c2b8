package loader

import (
	"context"

	"github.com/mmynk/tipsplit/internal/models"
	"github.com/mmynk/tipsplit/internal/observability"
	"github.com/mmynk/tipsplit/internal/storage"
)

// Subscribe streams a decoded Result for every snapshot of the collection.
// It waits for the session like Load does and fails with ErrUnauthenticated
// when there is no user. The channel is closed once ctx is done.
//
// Subscribe is independent of Load: it does not change the loader state.
func (l *Loader[T]) Subscribe(ctx context.Context) (<-chan Result[T], error) {
	watcher, ok := l.store.(storage.DocumentWatcher)
	if !ok {
		return nil, ErrWatchUnsupported
	}

	sess, err := l.sessions.Await(ctx)
	if err != nil {
		return nil, err
	}
	if !sess.Authenticated() {
		return nil, ErrUnauthenticated
	}

	snapshots, err := watcher.Watch(ctx, l.collection)
	if err != nil {
		return nil, &FetchError{Collection: l.collection, Err: err}
	}

	out := make(chan Result[T])
	go func() {
		defer close(out)
		for docs := range snapshots {
			result := l.decodeSnapshot(docs)
			select {
			case out <- result:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (l *Loader[T]) decodeSnapshot(docs []models.Document) Result[T] {
	entities, skipped := DecodeAll(l.collection, docs, l.decode)
	observability.RecordDecodeFailures(l.collection, len(skipped))
	return Result[T]{State: Ready, Entities: entities, Skipped: skipped}
}
