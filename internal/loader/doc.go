// Package loader implements the authenticated collection-sync pattern used by
// every settings screen: wait for the session to resolve, read one
// collection once, decode the documents into typed entities and hand the
// list to a manager.
//
// A Loader moves through these states:
//
//	Init -> WaitingForAuth -> Unauthenticated            (no user, terminal)
//	                       -> Fetching -> Ready          (terminal)
//	any non-terminal state -> Canceled                   (ctx done, terminal)
//
// There is no way back to Fetching: a fresh read needs a fresh Loader.
// Read failures do not escape as errors. They end in Ready with an empty
// list and a *FetchError in the Result so the caller can tell "no data"
// apart from "fetch failed".
package loader
