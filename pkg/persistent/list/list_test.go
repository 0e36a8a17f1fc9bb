package list

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// [0, 1, 2]
func list012() List[int] {
	return Empty[int]().IntoCons(2).IntoCons(1).IntoCons(0)
}

// [3, 4, 5]
func list345() List[int] {
	return Empty[int]().IntoCons(5).IntoCons(4).IntoCons(3)
}

func list012345() List[int] {
	return Empty[int]().
		IntoCons(5).IntoCons(4).IntoCons(3).IntoCons(2).IntoCons(1).IntoCons(0)
}

func mustTail[T any](t *testing.T, l List[T]) List[T] {
	t.Helper()
	tail, ok := l.IntoTail()
	if !ok {
		t.Fatalf("IntoTail of empty list")
	}
	return tail
}

func TestEmpty(t *testing.T) {
	for _, l := range []List[int]{Empty[int](), {}, Of[int]()} {
		if !l.IsEmpty() {
			t.Errorf("IsEmpty() = false for %v", l)
		}
		if l.Len() != 0 {
			t.Errorf("Len() = %d, want 0", l.Len())
		}
		if _, ok := l.Head(); ok {
			t.Errorf("Head() of empty list reports present")
		}
		if _, ok := l.Tail(); ok {
			t.Errorf("Tail() of empty list reports present")
		}
		if _, ok := l.IntoTail(); ok {
			t.Errorf("IntoTail() of empty list reports present")
		}
		if !l.Same(Empty[int]()) {
			t.Errorf("empty list not Same as another empty list")
		}
	}
}

func TestSingleton(t *testing.T) {
	l := Singleton("foo")
	if head, ok := l.Head(); !ok || head != "foo" {
		t.Errorf("Head() = (%q, %v), want (\"foo\", true)", head, ok)
	}
	tail, ok := l.Tail()
	if !ok || !tail.IsEmpty() {
		t.Errorf("Tail() = (%v, %v), want ([], true)", tail, ok)
	}
	if l.Len() != 1 {
		t.Errorf("Len() = %d, want 1", l.Len())
	}
}

func TestOf(t *testing.T) {
	l := Of(1, 2, 3, 4, 5)
	if head, _ := l.Head(); head != 1 {
		t.Errorf("Head() = %d, want 1", head)
	}
	tail, _ := l.Tail()
	if head, _ := tail.Head(); head != 2 {
		t.Errorf("second element = %d, want 2", head)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, l.Slice()); diff != "" {
		t.Errorf("Slice() (-want +got):\n%s", diff)
	}
	if !Equal(Of(0, 1, 2), list012()) {
		t.Errorf("Of(0, 1, 2) not equal to list built with IntoCons")
	}
	if !Equal(FromSlice([]int{3, 4, 5}), list345()) {
		t.Errorf("FromSlice([3 4 5]) not equal to list built with IntoCons")
	}
}

func TestLen(t *testing.T) {
	l := list012()
	for want := 3; want >= 0; want-- {
		if got := l.Len(); got != want {
			t.Errorf("Len() = %d, want %d", got, want)
		}
		l, _ = l.Tail()
	}
}

func TestCons_SharesReceiver(t *testing.T) {
	l := list012()
	x := l.Cons(100)
	y := l.Cons(200)

	if diff := cmp.Diff([]int{0, 1, 2}, l.Slice()); diff != "" {
		t.Errorf("receiver changed after Cons (-want +got):\n%s", diff)
	}
	// l, x and y all own the first node of l.
	if got := l.h.Count(); got != 3 {
		t.Errorf("owners of receiver = %d, want 3", got)
	}
	if !mustTail(t, x).Same(l) || !mustTail(t, y).Same(l) {
		t.Errorf("tails of consed lists not Same as receiver")
	}
	if x.Same(y) {
		t.Errorf("two consed lists are Same")
	}
	if head, _ := x.Head(); head != 100 {
		t.Errorf("x.Head() = %d, want 100", head)
	}
	if head, _ := y.Head(); head != 200 {
		t.Errorf("y.Head() = %d, want 200", head)
	}
	// Each IntoTail above recorded one more owner.
	if got := l.h.Count(); got != 5 {
		t.Errorf("owners of receiver after IntoTail = %d, want 5", got)
	}
}

func TestIntoCons_DoesNotRecordOwner(t *testing.T) {
	l := Singleton(1).IntoCons(0)
	tail, _ := l.Tail()
	if got := tail.h.Count(); got != 1 {
		t.Errorf("owners of tail = %d, want 1", got)
	}
}

func TestCons_OnBorrowedTail_RecordsOwner(t *testing.T) {
	l := list012()
	borrowed, _ := l.Tail()
	x := borrowed.Cons(9)
	if got := borrowed.h.Count(); got != 2 {
		t.Errorf("owners of tail shared by l and x = %d, want 2", got)
	}
	if !mustTail(t, x).Same(borrowed) {
		t.Errorf("tail of consed list not Same as borrowed tail")
	}
}

func TestIntoTail_RecordsOwner(t *testing.T) {
	l := list012()
	tail, _ := l.IntoTail()
	if got := tail.h.Count(); got != 2 {
		t.Errorf("owners of tail = %d, want 2", got)
	}
	borrowed, _ := l.Tail()
	if !borrowed.Same(tail) {
		t.Errorf("Tail and IntoTail return different lists")
	}
}

func TestEqual(t *testing.T) {
	shared := Of(1, 2)
	tests := []struct {
		name string
		a, b List[int]
		want bool
	}{
		{"both empty", Empty[int](), Empty[int](), true},
		{"empty and non-empty", Empty[int](), Of(1), false},
		{"non-empty and empty", Of(1), Empty[int](), false},
		{"independently built", list012(), list012(), true},
		{"different elements", list012(), list345(), false},
		{"prefix", Of(0, 1), list012(), false},
		{"longer", list012345(), list012(), false},
		{"shared suffix, same head", shared.Cons(7), shared.Cons(7), true},
		{"shared suffix, different head", shared.Cons(7), shared.Cons(8), false},
		{"tail of built list", mustTail(t, list012()), Of(1, 2), true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := Equal(test.a, test.b); got != test.want {
				t.Errorf("Equal(%v, %v) = %v, want %v", test.a, test.b, got, test.want)
			}
		})
	}
}

func TestEqualFunc(t *testing.T) {
	a := Of("a", "B")
	b := Of("A", "b")
	if !EqualFunc(a, b, strings.EqualFold) {
		t.Errorf("EqualFunc with case folding = false, want true")
	}
	if EqualFunc(a, b, func(x, y string) bool { return x == y }) {
		t.Errorf("EqualFunc with == = true, want false")
	}
}

func TestEqualButNotSame(t *testing.T) {
	l1 := list012()
	l2 := list012()
	if !Equal(l1, l2) {
		t.Errorf("independently built lists not Equal")
	}
	if l1.Same(l2) {
		t.Errorf("independently built lists are Same")
	}
}

func TestSameAsItself(t *testing.T) {
	l := list012()
	if !l.Same(l) {
		t.Errorf("list not Same as itself")
	}
	copied := l
	if !copied.Same(l) {
		t.Errorf("copy of list value not Same as original")
	}
	if l.Same(Empty[int]()) || Empty[int]().Same(l) {
		t.Errorf("non-empty list Same as empty list")
	}
}

func TestToken(t *testing.T) {
	l := list012()
	if l.Token() != l.Token() {
		t.Errorf("Token() not stable")
	}
	if l.Token() == list012().Token() {
		t.Errorf("independently built lists have equal tokens")
	}
	if !Empty[int]().Token().IsZero() {
		t.Errorf("Token() of empty list not zero")
	}
}

func TestIterator(t *testing.T) {
	var got []int
	for it := list345().Iterator(); it.HasElem(); it.Next() {
		got = append(got, it.Elem())
	}
	if diff := cmp.Diff([]int{3, 4, 5}, got); diff != "" {
		t.Errorf("iterated elements (-want +got):\n%s", diff)
	}
	if Empty[int]().Iterator().HasElem() {
		t.Errorf("iterator over empty list has element")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		l    List[string]
		want string
	}{
		{Empty[string](), "[]"},
		{Of("a"), "[a]"},
		{Of("a", "b", "c"), "[a b c]"},
		{Of("", "x"), "[ x]"},
	}
	for _, test := range tests {
		if got := test.l.String(); got != test.want {
			t.Errorf("String() = %q, want %q", got, test.want)
		}
	}
}
