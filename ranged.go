package bitstream

import "github.com/chronos-tachyon/assert"

// RangedTable is the uniform prefix code over a closed interval [min, max]
// of int64 values (component B). Every value in range costs either
// floor(log2(n)) or ceil(log2(n)) bits, where n = max-min+1; the shorter
// codes are assigned to the first "short" values so that no bit pattern is
// wasted.
type RangedTable struct {
	min, max int64
	maxBits  int
	limit    int64 // number of values assigned the shorter (maxBits-1)-bit code
}

// NewRangedTable builds the ranged code for [min, max]. It panics if
// max < min, which is a programmer error rather than bad input data.
func NewRangedTable(min, max int64) *RangedTable {
	assert.Assertf(max >= min, "ranged table: min %d must be <= max %d", min, max)

	possibilities := max - min + 1
	maxBits := 0
	for possibilities > (int64(1) << uint(maxBits)) {
		maxBits++
	}
	limit := (int64(1) << uint(maxBits)) - possibilities

	return &RangedTable{min: min, max: max, maxBits: maxBits, limit: limit}
}

// Min returns the inclusive lower bound of the range.
func (t *RangedTable) Min() int64 { return t.min }

// Max returns the inclusive upper bound of the range.
func (t *RangedTable) Max() int64 { return t.max }

func (t *RangedTable) Count(bits int) int {
	switch bits {
	case t.maxBits:
		return int(t.max - t.min + 1 - t.limit)
	case t.maxBits - 1:
		return int(t.limit)
	default:
		return 0
	}
}

func (t *RangedTable) Symbol(bits, index int) int64 {
	switch bits {
	case t.maxBits:
		return int64(index) + t.limit + t.min
	case t.maxBits - 1:
		return int64(index) + t.min
	default:
		panic("bitstream: RangedTable.Symbol called with a bit length outside the table")
	}
}

func (t *RangedTable) Locate(v int64) (bits, index int, ok bool) {
	if v < t.min || v > t.max {
		return 0, 0, false
	}
	u := v - t.min
	if u < t.limit {
		return t.maxBits - 1, int(u), true
	}
	return t.maxBits, int(u - t.limit), true
}

var (
	_ Table[int64]       = (*RangedTable)(nil)
	_ LookupTable[int64] = (*RangedTable)(nil)
)
