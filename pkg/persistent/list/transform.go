package list

import "github.com/xiaq/plist/pkg/rc"

// MapRecursive returns a list of f applied to each element of l, in the
// original order.
//
// It descends to the end of the list and conses the results on the way back,
// using stack space proportional to the length of l. It is unsuitable for long
// lists; use Map instead. Elements are passed to f from last to first.
func MapRecursive[T, U any](l List[T], f func(T) U) List[U] {
	if l.IsEmpty() {
		return List[U]{}
	}
	n := l.h.Load()
	// Nobody else sees the intermediate list, so it's safe to use IntoCons.
	return MapRecursive(n.next, f).IntoCons(f(n.elem))
}

// Map returns a list of f applied to each element of l, in the original order.
// It produces the same list as MapRecursive, but uses a constant amount of
// stack space. Elements are passed to f from first to last, each exactly once.
func Map[T, U any](l List[T], f func(T) U) List[U] {
	var b builder[U]
	for it := l.Iterator(); it.HasElem(); it.Next() {
		b.push(f(it.Elem()), it.rest.Len())
	}
	return b.finish(List[U]{})
}

// Append returns a list of the elements of l followed by the elements of
// other. Elements of l are copied by assignment.
//
// The result shares all nodes of other: walking past the elements from l
// yields a list that is Same as other. Nodes of l are copied, so l is left
// unchanged. If l is empty, the result is other itself.
func (l List[T]) Append(other List[T]) List[T] {
	return AppendFunc(l, other, func(x T) T { return x })
}

// AppendFunc is like (List).Append, but copies each element of l with clone.
func AppendFunc[T any](l, other List[T], clone func(T) T) List[T] {
	var b builder[T]
	n := other.Len()
	for it := l.Iterator(); it.HasElem(); it.Next() {
		b.push(clone(it.Elem()), it.rest.Len()+n)
	}
	return b.finish(other.clone())
}

// builder builds a list from front to back. Each node is allocated with an
// empty next and patched in place once the following node is allocated.
//
// All the nodes are reachable only from the builder until finish returns, and
// the handle of each node has exactly one owner, the node before it, when its
// payload is written. Any value that may panic, like the result of a callback,
// must be computed before push is called; a builder abandoned halfway leaves
// nothing reachable.
type builder[T any] struct {
	first List[T]
	last  *node[T]
}

func (b *builder[T]) push(elem T, count int) {
	h := rc.New(node[T]{elem: elem, count: count})
	// Take the raw view before h is stored anywhere.
	p := rc.UniquePayload(h)
	if b.last == nil {
		b.first = List[T]{h}
	} else {
		b.last.next = List[T]{h}
	}
	b.last = p
}

// finish links tail after the last pushed node and returns the built list. It
// takes over the caller's ownership of tail. If nothing has been pushed, it
// returns tail.
func (b *builder[T]) finish(tail List[T]) List[T] {
	if b.last == nil {
		return tail
	}
	b.last.next = tail
	b.last = nil
	return b.first
}
