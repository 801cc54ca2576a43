package bitstream

import "github.com/chronos-tachyon/assert"

// IntegerTable is the infinite prefix code for signed integers,
// parameterized by a bit-align k >= 2 (component D). It has the same
// level structure as NaturalTable, but each level's symbols split evenly
// between a non-negative half and a negative half, each half in ascending
// numeric order. For k=4 the first level is, in index order:
// 0, 1, 2, 3, -4, -3, -2, -1.
type IntegerTable struct {
	k int
}

// NewIntegerTable builds the bit-aligned integer code with the given
// bit-align. It panics if k < 2.
func NewIntegerTable(k int) *IntegerTable {
	assert.Assertf(k >= 2, "bit-aligned integer table: k must be >= 2, got %d", k)
	return &IntegerTable{k: k}
}

// BitAlign returns the k this table was constructed with.
func (t *IntegerTable) BitAlign() int { return t.k }

func (t *IntegerTable) isValidLevel(level int) bool {
	return level > 0 && level%t.k == 0
}

func (t *IntegerTable) sizeAtLevel(level int) uint64 {
	return uint64(1) << uint((level/t.k)*(t.k-1))
}

// positiveBase and negativeBase mirror the original library's per-level
// base computation exactly (see original_source IntegerNumberHuffmanTable):
// each level's base is the sum of a strided set of power-of-two terms
// rather than a simple linear recurrence in the level index.
func (t *IntegerTable) positiveBase(level int) int64 {
	var base int64
	exp := ((level-1)/t.k)*(t.k-1) - 1
	for exp >= 0 {
		base += int64(1) << uint(exp)
		exp -= t.k - 1
	}
	return base
}

func (t *IntegerTable) negativeBase(level int) int64 {
	var base int64
	exp := (level/t.k)*(t.k-1) - 1
	for exp >= 0 {
		base -= int64(1) << uint(exp)
		exp -= t.k - 1
	}
	return base
}

func (t *IntegerTable) Count(bits int) int {
	if !t.isValidLevel(bits) {
		return 0
	}
	return int(t.sizeAtLevel(bits))
}

func (t *IntegerTable) Symbol(bits, index int) int64 {
	if !t.isValidLevel(bits) {
		panic("bitstream: IntegerTable.Symbol called with a bit length outside the table")
	}
	half := int(t.sizeAtLevel(bits) / 2)
	if index < half {
		return t.positiveBase(bits) + int64(index)
	}
	return t.negativeBase(bits) + int64(index-half)
}

func (t *IntegerTable) Locate(v int64) (bits, index int, ok bool) {
	for m := 1; ; m++ {
		level := m * t.k
		half := int64(t.sizeAtLevel(level) / 2)

		pos := t.positiveBase(level)
		if v >= pos && v < pos+half {
			return level, int(v - pos), true
		}

		neg := t.negativeBase(level)
		if v >= neg && v < neg+half {
			return level, int(half + (v - neg)), true
		}
	}
}

var (
	_ Table[int64]       = (*IntegerTable)(nil)
	_ LookupTable[int64] = (*IntegerTable)(nil)
)
