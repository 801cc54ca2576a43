package bitstream

import (
	mathbits "math/bits"
)

// log2ceil returns ceil(log2(x)) for x >= 1, treating x == 0 as 1 (a
// domain of a single possibility needs zero bits, i.e. log2ceil(1) == 0).
func log2ceil(x uint64) int {
	if x <= 1 {
		return 0
	}
	return mathbits.Len64(x - 1)
}
