// Package store holds the live in-memory collections behind each dashboard
// page. Every store wraps its seeded record slice with a mutex and applies
// the pure operations from internal/collection, so a mutation is always a
// whole-slice replacement under the lock — readers that already took a
// snapshot keep a consistent view.
//
// Mutating methods report whether they changed anything; the HTTP layer
// uses that to decide between a success notification and a silent no-op.
// There is no persistence: a process restart resets every store to its
// seed.
package store

// snapshot returns a defensive copy of a record slice so callers can never
// observe a later in-place replacement.
func snapshot[T any](c []T) []T {
	out := make([]T, len(c))
	copy(out, c)
	return out
}
