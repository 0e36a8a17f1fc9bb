// Package rc implements reference-counted handles to heap allocations.
//
// The Go runtime reclaims memory, so the count kept by a Handle is not used for
// freeing. It records how many owners an allocation has been handed to, and
// gates in-place mutation: an allocation whose count is 1 has never been
// shared, and can be initialized in place by its only owner.
//
// Counts never decrease, since Go has no hook that runs when a copy of a
// handle goes out of scope. The count covers only owners recorded with Clone:
// copying a Handle value by assignment shares the allocation without counting.
// A count of 1 proves unique ownership only as long as every copy that is
// kept goes through Clone.
//
// Handles are not safe for concurrent use: cloning the same handle from
// several goroutines races on the count.
package rc

import (
	"errors"
	"fmt"
)

// ErrNotUnique is returned by GetMut when the handle has more than one owner.
var ErrNotUnique = errors.New("allocation not uniquely owned")

// ErrNilHandle is returned by GetMut when called on a nil Handle.
var ErrNilHandle = errors.New("nil handle")

type box[T any] struct {
	count int
	value T
}

// Handle is a shared ownership handle to a value of type T. The zero value is
// a nil handle that refers to no allocation.
type Handle[T any] struct {
	b *box[T]
}

// New allocates v on the heap and returns the only handle to it.
func New[T any](v T) Handle[T] {
	return Handle[T]{&box[T]{count: 1, value: v}}
}

// IsNil returns whether the handle refers to no allocation.
func (h Handle[T]) IsNil() bool { return h.b == nil }

// Clone returns a handle to the same allocation and records the additional
// owner. Cloning a nil handle returns a nil handle.
func (h Handle[T]) Clone() Handle[T] {
	if h.b != nil {
		h.b.count++
	}
	return h
}

// Count returns the number of owners recorded for the allocation, or 0 for a
// nil handle.
func (h Handle[T]) Count() int {
	if h.b == nil {
		return 0
	}
	return h.b.count
}

// Load returns a pointer to the payload for reading. The payload must not be
// written through the returned pointer; use UniquePayload or GetMut for that.
// It returns nil for a nil handle.
func (h Handle[T]) Load() *T {
	if h.b == nil {
		return nil
	}
	return &h.b.value
}

// Token is an opaque identity of an allocation. Tokens are comparable: two
// tokens are equal iff they were obtained from handles to the same allocation.
// The zero Token identifies no allocation.
type Token struct {
	p any
}

// Token returns the identity of the allocation h refers to.
func (h Handle[T]) Token() Token {
	if h.b == nil {
		return Token{}
	}
	return Token{h.b}
}

// IsZero returns whether the token identifies no allocation.
func (t Token) IsZero() bool { return t.p == nil }

// UniquePayload returns a mutable pointer to the payload of h without checking
// ownership.
//
// The caller must guarantee that h is the only handle to the allocation and
// that no other code can reach it, and must not write through the returned
// pointer once the handle has been stored anywhere other code can read it.
// None of this is checked; see GetMut for a checked variant.
func UniquePayload[T any](h Handle[T]) *T {
	return &h.b.value
}

// GetMut returns a mutable pointer to the payload of h if h is the only handle
// ever made to the allocation. Otherwise it returns an error wrapping
// ErrNotUnique, or ErrNilHandle if h is nil.
func GetMut[T any](h Handle[T]) (*T, error) {
	if h.b == nil {
		return nil, ErrNilHandle
	}
	if h.b.count != 1 {
		return nil, fmt.Errorf("%w: %d owners", ErrNotUnique, h.b.count)
	}
	return &h.b.value, nil
}
