package loader

// State is the presentation state of a Loader.
type State int

const (
	Init State = iota
	WaitingForAuth
	Unauthenticated
	Fetching
	Ready
	Canceled
)

func (s State) String() string {
	switch s {
	case Init:
		return "init"
	case WaitingForAuth:
		return "waiting_for_auth"
	case Unauthenticated:
		return "unauthenticated"
	case Fetching:
		return "fetching"
	case Ready:
		return "ready"
	case Canceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions can happen.
func (s State) Terminal() bool {
	return s == Unauthenticated || s == Ready || s == Canceled
}

// Result is what a Loader hands to its caller once it stops.
type Result[T any] struct {
	State State

	// Entities are the decoded documents in store order. Never nil in Ready.
	Entities []T

	// Skipped lists documents that failed to decode. They are left out of
	// Entities; the rest of the collection is still returned.
	Skipped []*DecodeError

	// Err is a *FetchError when the read failed, or the context error when
	// the load was canceled.
	Err error
}

// Failed reports whether the read itself failed.
func (r Result[T]) Failed() bool {
	return r.Err != nil
}
