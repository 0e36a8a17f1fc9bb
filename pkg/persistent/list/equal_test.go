package list

import (
	"testing"

	"github.com/xiaq/plist/pkg/persistent/hash"
)

func TestHash(t *testing.T) {
	if Hash(list012(), hash.Int) != Hash(Of(0, 1, 2), hash.Int) {
		t.Errorf("Equal lists have different hashes")
	}
	if Hash(list012(), hash.Int) == Hash(list345(), hash.Int) {
		t.Errorf("lists [0 1 2] and [3 4 5] have the same hash")
	}
	if got := Hash(Empty[int](), hash.Int); got != hash.DJBInit {
		t.Errorf("hash of empty list = %d, want %d", got, hash.DJBInit)
	}
	want := hash.DJB(hash.String("a"), hash.String("b"))
	if got := Hash(Of("a", "b"), hash.String); got != want {
		t.Errorf("Hash([a b]) = %d, want %d", got, want)
	}
}

func TestCommonSuffix(t *testing.T) {
	shared := Of(8, 9)
	a := shared.Cons(2).Cons(1)
	b := shared.Cons(7)
	tests := []struct {
		name string
		a, b List[int]
		want List[int]
	}{
		{"shared tail", a, b, shared},
		{"shared tail, swapped", b, a, shared},
		{"one is suffix of the other", a, shared, shared},
		{"same list", a, a, a},
		{"equal but independent", Of(8, 9), Of(8, 9), Empty[int]()},
		{"append shares second operand", list012().Append(shared), b, shared},
		{"empty", a, Empty[int](), Empty[int]()},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := CommonSuffix(test.a, test.b); !got.Same(test.want) {
				t.Errorf("CommonSuffix(%v, %v) = %v, want %v", test.a, test.b, got, test.want)
			}
		})
	}
}
