package core

import "math/bits"

// IsPowerOfTwo reports whether n is a positive power of two.
//
//	8 -> true  (1000 & 0111 = 0000)
//	7 -> false (0111 & 0110 = 0110)
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n) for a power of two n, or -1 otherwise.
func Log2(n int) int {
	if !IsPowerOfTwo(n) {
		return -1
	}

	return bits.TrailingZeros(uint(n))
}
