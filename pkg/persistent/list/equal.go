package list

import "github.com/xiaq/plist/pkg/persistent/hash"

// Equal returns whether two lists have the same length and pairwise equal
// elements, regardless of how their nodes are shared.
func Equal[T comparable](a, b List[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal, but compares elements with eq.
func EqualFunc[T any](a, b List[T], eq func(T, T) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	for ia, ib := a.Iterator(), b.Iterator(); ia.HasElem(); ia.Next() {
		if !eq(ia.Elem(), ib.Elem()) {
			return false
		}
		ib.Next()
	}
	return true
}

// Hash returns a hash of the elements of l, combining the hash of each element
// computed with elemHash. Lists that are Equal have the same hash if elemHash
// is consistent with the equality of elements.
func Hash[T any](l List[T], elemHash func(T) uint32) uint32 {
	h := hash.DJBInit
	for it := l.Iterator(); it.HasElem(); it.Next() {
		h = hash.DJBCombine(h, elemHash(it.Elem()))
	}
	return h
}

// CommonSuffix returns the longest suffix that a and b share by identity, that
// is, their first common node. Lists built independently share no nodes even
// if they are Equal; their common suffix is empty. Like Tail, the result does
// not record a new owner.
func CommonSuffix[T any](a, b List[T]) List[T] {
	for a.Len() > b.Len() {
		a, _ = a.Tail()
	}
	for b.Len() > a.Len() {
		b, _ = b.Tail()
	}
	// Two lists with a common node have the same length from that node on.
	for !a.Same(b) {
		a, _ = a.Tail()
		b, _ = b.Tail()
	}
	return a
}
