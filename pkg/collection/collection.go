// Package collection provides generic helpers for slices, used when shaping
// API payloads and diffing banner product sets.
//
//	names := collection.Map(products, func(p models.Product) string { return p.Name })
//	missing := collection.Difference(requested, found)
package collection

// Map transforms each element of s using fn. A nil s maps to an empty,
// non-nil slice so JSON payloads render [] instead of null.
func Map[T, R any](s []T, fn func(T) R) []R {
	out := make([]R, len(s))
	for i, v := range s {
		out[i] = fn(v)
	}
	return out
}

// Filter returns the elements of s for which fn returns true.
func Filter[T any](s []T, fn func(T) bool) []T {
	out := make([]T, 0, len(s))
	for _, v := range s {
		if fn(v) {
			out = append(out, v)
		}
	}
	return out
}

// Unique returns s without duplicates, keeping first occurrences in order.
func Unique[T comparable](s []T) []T {
	seen := make(map[T]struct{}, len(s))
	out := make([]T, 0, len(s))
	for _, v := range s {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			out = append(out, v)
		}
	}
	return out
}

// Difference returns the elements of a that are not in b.
func Difference[T comparable](a, b []T) []T {
	drop := make(map[T]struct{}, len(b))
	for _, v := range b {
		drop[v] = struct{}{}
	}
	return Filter(a, func(v T) bool {
		_, ok := drop[v]
		return !ok
	})
}

// Reduce folds s into a single value starting from initial.
func Reduce[T, R any](s []T, initial R, fn func(carry R, item T) R) R {
	carry := initial
	for _, v := range s {
		carry = fn(carry, v)
	}
	return carry
}
