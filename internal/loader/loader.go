package loader

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/tipsplit/internal/observability"
	"github.com/mmynk/tipsplit/internal/session"
	"github.com/mmynk/tipsplit/internal/storage"
)

// Loader reads one collection for one authenticated session.
// It is safe for concurrent use. All callers share the single read, and the
// first caller's ctx governs it: if that ctx is canceled, every caller gets
// the Canceled result. Build one Loader per request (one per mount).
type Loader[T any] struct {
	collection string
	decode     DecodeFunc[T]
	sessions   session.Provider
	store      storage.DocumentReader
	logger     *slog.Logger

	once   sync.Once
	mu     sync.Mutex
	state  State
	result Result[T]
}

// New creates a Loader for collection. A nil logger uses slog.Default().
func New[T any](collection string, decode DecodeFunc[T], sessions session.Provider, store storage.DocumentReader, logger *slog.Logger) *Loader[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader[T]{
		collection: collection,
		decode:     decode,
		sessions:   sessions,
		store:      store,
		logger:     logger.With("collection", collection),
		state:      Init,
	}
}

// Collection returns the name of the collection this loader reads.
func (l *Loader[T]) Collection() string {
	return l.collection
}

// State returns the current state.
func (l *Loader[T]) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Load runs the loader to a terminal state and returns its result.
// Only the first call does any work; later calls return the same result.
// Canceling ctx while waiting or fetching ends the loader in Canceled and
// the read result, if any, is discarded. Only the ctx of the call that
// starts the read matters; later callers just wait for its result.
func (l *Loader[T]) Load(ctx context.Context) Result[T] {
	l.once.Do(func() {
		l.finish(l.run(ctx))
	})

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result
}

func (l *Loader[T]) run(ctx context.Context) Result[T] {
	l.setState(WaitingForAuth)

	sess, err := l.sessions.Await(ctx)
	if err != nil {
		return Result[T]{State: Canceled, Err: err}
	}
	if !sess.Authenticated() {
		l.logger.Debug("No authenticated user, skipping read")
		return Result[T]{State: Unauthenticated}
	}

	l.setState(Fetching)

	ctx, span := observability.Tracer().Start(ctx, "loader.Load",
		trace.WithAttributes(attribute.String("collection", l.collection)))
	defer span.End()

	start := time.Now()
	docs, err := l.store.ListAll(ctx, l.collection)
	if ctxErr := ctx.Err(); ctxErr != nil {
		span.SetStatus(codes.Error, "canceled")
		return Result[T]{State: Canceled, Err: ctxErr}
	}
	if err != nil {
		observability.RecordCollectionRead(l.collection, observability.OutcomeFailed, time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		l.logger.Error("Collection read failed", "user_id", sess.User.UserID, "error", err)
		return Result[T]{
			State:    Ready,
			Entities: []T{},
			Err:      &FetchError{Collection: l.collection, Err: err},
		}
	}
	observability.RecordCollectionRead(l.collection, observability.OutcomeOK, time.Since(start))

	entities, skipped := DecodeAll(l.collection, docs, l.decode)
	observability.RecordDecodeFailures(l.collection, len(skipped))
	span.SetAttributes(
		attribute.Int("documents", len(docs)),
		attribute.Int("skipped", len(skipped)),
	)
	if len(skipped) > 0 {
		l.logger.Warn("Skipped malformed documents",
			"skipped", len(skipped),
			"total", len(docs),
			"first_error", skipped[0].Error(),
		)
	}

	l.logger.Debug("Collection loaded", "count", len(entities))
	return Result[T]{State: Ready, Entities: entities, Skipped: skipped}
}

func (l *Loader[T]) setState(state State) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = state
}

func (l *Loader[T]) finish(result Result[T]) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = result.State
	l.result = result
}
