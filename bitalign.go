package bitstream

import "github.com/chronos-tachyon/assert"

// naturalLevel returns the level m (>=1) that NaturalTable with bit-align
// k would assign to v, without constructing a table.
func naturalLevel(v uint64, k int) int {
	m := 1
	base := uint64(0)
	size := uint64(1) << uint(k-1)
	for v-base >= size {
		base += size
		m++
		size = uint64(1) << uint(m*(k-1))
	}
	return m
}

// integerLevel returns the level m (>=1) that IntegerTable with bit-align
// k would assign to v.
func integerLevel(v int64, k int) int {
	u := v
	if u < 0 {
		u = -u - 1
	}
	m := 1
	base := uint64(0)
	half := uint64(1) << uint(k-2)
	for uint64(u)-base >= half {
		base += half
		m++
		half = uint64(1) << uint(m*(k-1)-1)
	}
	return m
}

// bitAlignUpperBound returns ceil(log2(maxAbs)) + 1, the largest k the
// tuners try (§4.3). For some inputs, such as a maximum that is a power of
// two, a k above this bound would still place that maximum at a lower
// level; such k are not tried.
func bitAlignUpperBound(maxAbs uint64) int {
	return log2ceil(maxAbs) + 1
}

// ChooseNaturalBitAlign searches k in [2, k_max] for the value that
// minimizes the total encoded length of freq under NaturalTable, breaking
// ties toward the smaller k (component I).
func ChooseNaturalBitAlign(freq map[uint64]int) int {
	assert.Assertf(len(freq) > 0, "bit-align tuner: frequency map must not be empty")

	var maxV uint64
	for v := range freq {
		if v > maxV {
			maxV = v
		}
	}

	kMax := bitAlignUpperBound(maxV)
	if kMax < 2 {
		kMax = 2
	}

	bestK := 2
	var bestCost uint64
	for k := 2; k <= kMax; k++ {
		var cost uint64
		for v, n := range freq {
			m := naturalLevel(v, k)
			cost += uint64(k) * uint64(m) * uint64(n)
		}
		if k == 2 || cost < bestCost {
			bestCost = cost
			bestK = k
		}
	}

	return bestK
}

// ChooseIntegerBitAlign is ChooseNaturalBitAlign's counterpart for signed
// values under IntegerTable.
func ChooseIntegerBitAlign(freq map[int64]int) int {
	assert.Assertf(len(freq) > 0, "bit-align tuner: frequency map must not be empty")

	var maxAbs uint64
	for v := range freq {
		u := v
		if u < 0 {
			u = -u - 1
		}
		if a := uint64(u); a > maxAbs {
			maxAbs = a
		}
	}

	kMax := bitAlignUpperBound(maxAbs)
	if kMax < 2 {
		kMax = 2
	}

	bestK := 2
	var bestCost uint64
	for k := 2; k <= kMax; k++ {
		var cost uint64
		for v, n := range freq {
			m := integerLevel(v, k)
			cost += uint64(k) * uint64(m) * uint64(n)
		}
		if k == 2 || cost < bestCost {
			bestCost = cost
			bestK = k
		}
	}

	return bestK
}
