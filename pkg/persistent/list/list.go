// Package list implements persistent list.
//
// A List is either empty or a shared handle to a node, which holds one element
// and the rest of the list. Lists are immutable: operations that derive a new
// list leave their operands unchanged, and the new list shares as many nodes
// with its operands as it can. Sharing is invisible to Equal, but visible to
// Same.
//
// Lists are not safe for concurrent use; see package rc.
package list

import (
	"fmt"
	"strings"

	"github.com/xiaq/plist/pkg/rc"
)

// List is a persistent singly-linked list. The zero value is an empty list.
type List[T any] struct {
	h rc.Handle[node[T]]
}

type node[T any] struct {
	elem T
	next List[T]
	// Number of elements in the list starting at this node.
	count int
}

// Token is an opaque identity of the first node of a list, for use as a map
// key. Two lists have equal tokens iff they are Same.
type Token = rc.Token

// Empty returns an empty list.
func Empty[T any]() List[T] { return List[T]{} }

// Singleton returns a list with one element.
func Singleton[T any](elem T) List[T] {
	return List[T]{rc.New(node[T]{elem: elem, count: 1})}
}

// Of returns a list of the given elements. The first element becomes the head.
func Of[T any](elems ...T) List[T] {
	var l List[T]
	for i := len(elems) - 1; i >= 0; i-- {
		l = l.IntoCons(elems[i])
	}
	return l
}

// FromSlice is like Of, but takes a slice.
func FromSlice[T any](elems []T) List[T] { return Of(elems...) }

// IsEmpty returns whether the list is empty.
func (l List[T]) IsEmpty() bool { return l.h.IsNil() }

// Len returns the number of elements in the list.
func (l List[T]) Len() int {
	if l.h.IsNil() {
		return 0
	}
	return l.h.Load().count
}

// Head returns the first element of the list. The second return value is false
// if the list is empty.
func (l List[T]) Head() (T, bool) {
	if l.h.IsNil() {
		var zero T
		return zero, false
	}
	return l.h.Load().elem, true
}

// Tail returns the list after the first element, without recording a new
// owner of it. The result should only be used for reading; use IntoTail to
// keep it as part of another list. The second return value is false if the
// list is empty.
func (l List[T]) Tail() (List[T], bool) {
	if l.h.IsNil() {
		return List[T]{}, false
	}
	return l.h.Load().next, true
}

// IntoTail is like Tail, but records the caller as a new owner of the tail.
func (l List[T]) IntoTail() (List[T], bool) {
	if l.h.IsNil() {
		return List[T]{}, false
	}
	return l.h.Load().next.clone(), true
}

func (l List[T]) clone() List[T] { return List[T]{l.h.Clone()} }

// Cons returns a new list with elem in front of l. The receiver remains usable
// and becomes shared by the new list.
func (l List[T]) Cons(elem T) List[T] {
	return l.clone().IntoCons(elem)
}

// IntoCons is like Cons, but takes over the receiver's ownership of its first
// node instead of recording a new owner. The receiver must not be used
// afterwards. It must be a list the caller owns, such as the result of
// IntoTail; a borrowed view returned by Tail must be passed to Cons instead.
func (l List[T]) IntoCons(elem T) List[T] {
	return List[T]{rc.New(node[T]{elem, l, l.Len() + 1})}
}

// Same returns whether the two lists are the same allocation: either both are
// empty, or their first nodes are identical. Two lists built independently
// from the same elements are Equal but not Same.
func (l List[T]) Same(other List[T]) bool {
	return l.h.Token() == other.h.Token()
}

// Token returns the identity of the list's first node. The empty list has the
// zero Token.
func (l List[T]) Token() Token { return l.h.Token() }

// Iterator returns an iterator over the list.
func (l List[T]) Iterator() *Iterator[T] { return &Iterator[T]{l} }

// Iterator is an iterator over list elements. It can be used like this:
//
//	for it := l.Iterator(); it.HasElem(); it.Next() {
//	    elem := it.Elem()
//	    // do something with elem...
//	}
type Iterator[T any] struct {
	rest List[T]
}

// Elem returns the element at the current position.
func (it *Iterator[T]) Elem() T { return it.rest.h.Load().elem }

// HasElem returns whether the iterator is pointing to an element.
func (it *Iterator[T]) HasElem() bool { return !it.rest.h.IsNil() }

// Next moves the iterator to the next position.
func (it *Iterator[T]) Next() { it.rest = it.rest.h.Load().next }

// Slice returns the elements of the list in a new slice.
func (l List[T]) Slice() []T {
	s := make([]T, 0, l.Len())
	for it := l.Iterator(); it.HasElem(); it.Next() {
		s = append(s, it.Elem())
	}
	return s
}

// String returns the elements formatted like a slice, such as "[1 2 3]".
func (l List[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for it := l.Iterator(); it.HasElem(); it.Next() {
		if !it.rest.Same(l) {
			sb.WriteByte(' ')
		}
		fmt.Fprint(&sb, it.Elem())
	}
	sb.WriteByte(']')
	return sb.String()
}
