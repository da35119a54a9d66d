// Package cache stores finished plans so that repeated requests skip the
// embedding, selection and summary calls.
//
// Plans are keyed by the normalized query text and the clamped result
// count. Redis is the shared backend; Noop is used when no cache address is
// configured. Loader collapses concurrent misses for the same key into a
// single planning call.
package cache
