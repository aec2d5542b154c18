// Package collection implements the generic in-memory record collection
// operations shared by every list-oriented page of the DBOptima dashboard:
// alerts, database connections, index recommendations, reports, and team
// members all flow through the same search / transition / remove / append
// contract.
//
// # Immutability
//
// Every operation treats the input slice as read-only and returns a fresh
// slice; callers that hold the previous value keep a consistent view. Record
// order is always preserved — insertion order is display order.
//
// # No-op on miss
//
// An identifier that does not resolve to any record is defined behavior, not
// an error: the dashboard only ever offers actions on records it currently
// renders, so a miss means the record was already removed. All mutating
// operations report whether they changed anything so the caller can decide
// whether to surface a notification.
package collection

import "strings"

// Record is implemented by every entity held in a dashboard collection.
type Record interface {
	// Key returns the record's unique identifier.
	Key() string
}

// Statused is a Record whose lifecycle status can be rewritten. WithStatus
// must return a copy with only the status field changed.
type Statused[T any, S comparable] interface {
	Record
	CurrentStatus() S
	WithStatus(S) T
}

// Rules is the closed set of legal status transitions for one entity type,
// keyed by source status. A status with no entry is terminal.
type Rules[S comparable] map[S][]S

// Allows reports whether the transition from → to is legal.
func (r Rules[S]) Allows(from, to S) bool {
	for _, s := range r[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition out of s is defined.
func (r Rules[S]) Terminal(s S) bool { return len(r[s]) == 0 }

// Search returns the records whose searchable fields contain query as a
// case-insensitive substring, preserving relative order. An empty query
// returns the input unchanged. fields maps a record to its entity-specific
// searchable text fields (e.g. title, description, database label for
// alerts).
func Search[T Record](c []T, query string, fields func(T) []string) []T {
	if query == "" {
		return c
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(c))
	for _, rec := range c {
		for _, f := range fields(rec) {
			if strings.Contains(strings.ToLower(f), q) {
				out = append(out, rec)
				break
			}
		}
	}
	return out
}

// Transition returns a copy of c in which the record with the given id has
// its status replaced by next, provided the transition is legal under rules.
// Records in a terminal status, illegal transitions, and unknown ids all
// leave the collection unchanged. The second return value reports whether a
// record was rewritten.
func Transition[T Statused[T, S], S comparable](c []T, id string, next S, rules Rules[S]) ([]T, bool) {
	changed := false
	out := make([]T, len(c))
	for i, rec := range c {
		if rec.Key() == id && rules.Allows(rec.CurrentStatus(), next) {
			out[i] = rec.WithStatus(next)
			changed = true
			continue
		}
		out[i] = rec
	}
	return out, changed
}

// BulkTransition applies Transition semantics to every record satisfying
// match; all other records pass through unchanged. It returns the new
// collection and the number of records rewritten.
func BulkTransition[T Statused[T, S], S comparable](c []T, match func(T) bool, next S, rules Rules[S]) ([]T, int) {
	n := 0
	out := make([]T, len(c))
	for i, rec := range c {
		if match(rec) && rules.Allows(rec.CurrentStatus(), next) {
			out[i] = rec.WithStatus(next)
			n++
			continue
		}
		out[i] = rec
	}
	return out, n
}

// Remove returns a copy of c without the record whose Key equals id, and
// reports whether a record was removed.
func Remove[T Record](c []T, id string) ([]T, bool) {
	out := make([]T, 0, len(c))
	removed := false
	for _, rec := range c {
		if rec.Key() == id {
			removed = true
			continue
		}
		out = append(out, rec)
	}
	return out, removed
}

// Append returns a copy of c with rec added at the end.
func Append[T Record](c []T, rec T) []T {
	out := make([]T, 0, len(c)+1)
	out = append(out, c...)
	return append(out, rec)
}

// Aggregate derives per-class counts from the collection; a pure read-side
// projection used for the stat cards on every page.
func Aggregate[T Record, K comparable](c []T, classify func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, rec := range c {
		counts[classify(rec)]++
	}
	return counts
}

// Count returns the number of records satisfying match.
func Count[T Record](c []T, match func(T) bool) int {
	n := 0
	for _, rec := range c {
		if match(rec) {
			n++
		}
	}
	return n
}

// Find returns the record with the given id, or the zero value and false.
func Find[T Record](c []T, id string) (T, bool) {
	for _, rec := range c {
		if rec.Key() == id {
			return rec, true
		}
	}
	var zero T
	return zero, false
}
