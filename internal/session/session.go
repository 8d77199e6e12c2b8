// Package session models the identity of the current actor and its
// resolving/resolved lifecycle.
//
// Loaders never read a global session: a Provider is injected at
// construction and awaited before any read is issued.
package session

import (
	"context"
	"sync"
)

// Identity is an authenticated user.
type Identity struct {
	UserID string
	Email  string
}

// Session is a resolved session. User is nil when nobody is signed in.
type Session struct {
	User *Identity
}

// Authenticated reports whether the session has a user.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Provider exposes the current session.
type Provider interface {
	// Current returns the session and whether it has resolved yet.
	Current() (Session, bool)

	// Await blocks until the session resolves or ctx is done.
	Await(ctx context.Context) (Session, error)
}

// Static is a Provider that is resolved from the start.
type Static struct {
	session Session
}

// NewStatic returns a resolved provider. A nil identity means "no user".
func NewStatic(user *Identity) *Static {
	return &Static{session: Session{User: user}}
}

// Current implements Provider.
func (s *Static) Current() (Session, bool) {
	return s.session, true
}

// Await implements Provider. It never blocks.
func (s *Static) Await(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return Session{}, err
	}
	return s.session, nil
}

// Pending is a Provider that resolves exactly once, when Resolve is called.
type Pending struct {
	once     sync.Once
	resolved chan struct{}

	mu      sync.RWMutex
	session Session
}

// NewPending returns an unresolved provider.
func NewPending() *Pending {
	return &Pending{resolved: make(chan struct{})}
}

// Resolve settles the session. Later calls are ignored.
func (p *Pending) Resolve(user *Identity) {
	p.once.Do(func() {
		p.mu.Lock()
		p.session = Session{User: user}
		p.mu.Unlock()
		close(p.resolved)
	})
}

// Current implements Provider.
func (p *Pending) Current() (Session, bool) {
	select {
	case <-p.resolved:
		p.mu.RLock()
		defer p.mu.RUnlock()
		return p.session, true
	default:
		return Session{}, false
	}
}

// Await implements Provider.
func (p *Pending) Await(ctx context.Context) (Session, error) {
	select {
	case <-p.resolved:
		p.mu.RLock()
		defer p.mu.RUnlock()
		return p.session, nil
	case <-ctx.Done():
		return Session{}, ctx.Err()
	}
}

// contextKey is a custom type for context keys to avoid collisions.
type contextKey struct{}

// WithIdentity stores the authenticated identity in ctx.
func WithIdentity(ctx context.Context, user *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// IdentityFromContext returns the identity stored by WithIdentity, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	user, _ := ctx.Value(contextKey{}).(*Identity)
	return user
}

// FromContext returns a resolved provider for the identity in ctx.
// Requests are authenticated before handlers run, so the session is always
// resolved by the time a handler asks.
func FromContext(ctx context.Context) *Static {
	return NewStatic(IdentityFromContext(ctx))
}
