package hash

import "testing"

func TestDJB(t *testing.T) {
	if got := DJB(); got != DJBInit {
		t.Errorf("DJB() = %d, want %d", got, DJBInit)
	}
	if got, want := DJB(1, 2), (DJBInit*33+1)*33+2; got != want {
		t.Errorf("DJB(1, 2) = %d, want %d", got, want)
	}
}

func TestString(t *testing.T) {
	if String("ab") != DJB('a', 'b') {
		t.Errorf("String(\"ab\") != DJB('a', 'b')")
	}
	if String("ab") == String("ba") {
		t.Errorf("String(\"ab\") == String(\"ba\")")
	}
}

func TestInt(t *testing.T) {
	if Int(42) != UInt64(42) {
		t.Errorf("Int(42) != UInt64(42)")
	}
	if Int(-1) != UInt64(^uint64(0)) {
		t.Errorf("Int(-1) != UInt64(max)")
	}
}
