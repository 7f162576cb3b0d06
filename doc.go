// Package aurum is the Go client for the aurum gold storefront backend. It
// provides an authenticated request dispatcher with transparent single-flight
// token refresh, a pluggable persistent token store, session lifecycle events,
// and typed resource services for gold prices, items, and orders.
//
// The package is designed for concurrent callers: Client methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// aurum is the public surface. It exposes [Client], [Builder], [Config],
// [Envelope], [Response], and value types (Session, Item, Order, events,
// metrics). Event buffering and metric storage live under internal/ and are
// re-exported as aliases where callers need them. Token persistence lives in
// the tokenstore sub-package so it can be substituted in tests.
//
// # What this package must NOT do
//
//   - Interpret access or refresh tokens. They are opaque credentials; expiry
//     is discovered only through a 401 from the backend.
//   - Retry a dispatched request more than once. A 401 triggers at most one
//     refresh and one resend, regardless of the second attempt's outcome.
//   - Perform navigation or any other UI-side effect. Session teardown is
//     signalled through [EventSessionTerminated]; the hosting application
//     reacts to it.
//
// # Concurrency contract
//
// Refresh is single-flight: when several in-flight dispatches observe a 401 at
// overlapping times, exactly one refresh call reaches the backend and every
// waiter shares its outcome. The token store only ever observes whole,
// consistent session updates.
package aurum
