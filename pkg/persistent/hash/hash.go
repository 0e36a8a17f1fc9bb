// Package hash contains hash functions for list elements, and DJB combinators
// for hashing sequences of them.
package hash

// DJBInit is the hash of an empty sequence.
const DJBInit uint32 = 5381

// DJBCombine folds the hash h of one more element into acc.
func DJBCombine(acc, h uint32) uint32 {
	return mul33(acc) + h
}

// DJB hashes a sequence of element hashes.
func DJB(hs ...uint32) uint32 {
	acc := DJBInit
	for _, h := range hs {
		acc = DJBCombine(acc, h)
	}
	return acc
}

// UInt64 folds the two halves of u.
func UInt64(u uint64) uint32 {
	return mul33(uint32(u>>32)) + uint32(u&0xffffffff)
}

// Int hashes an int by its 64-bit two's complement representation.
func Int(i int) uint32 {
	return UInt64(uint64(i))
}

// String hashes the bytes of s.
func String(s string) uint32 {
	h := DJBInit
	for i := 0; i < len(s); i++ {
		h = DJBCombine(h, uint32(s[i]))
	}
	return h
}

func mul33(u uint32) uint32 {
	return u<<5 + u
}
