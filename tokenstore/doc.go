// Package tokenstore provides persistent key/value storage for the client's
// session credentials and profile fields.
//
// # Persisted fields
//
// A session is stored as exactly six fields: token, refresh, role, email,
// username, createdAt. [Store.Clear] removes all of them as one operation; a
// concurrent reader never observes a partially cleared session.
//
// # Architecture boundaries
//
// This package owns the [Store] interface, the [Session] model, and the Redis
// and in-memory implementations. It does NOT decide when a session is created
// or destroyed — that responsibility belongs to the aurum Client.
//
// # What this package must NOT do
//
//   - Import aurum or any sibling package (no upward imports).
//   - Interpret token contents or perform network calls to the backend.
//   - Write a session in which an access token exists without its refresh
//     token, or the reverse.
package tokenstore
