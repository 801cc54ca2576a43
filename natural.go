package bitstream

import "github.com/chronos-tachyon/assert"

// NaturalTable is the infinite prefix code for non-negative integers,
// parameterized by a bit-align k >= 2 (component C). Code lengths grow in
// multiples of k: level m (m >= 1) has bit length m*k and holds
// 2^(m*(k-1)) consecutive values. Interpreted bit by bit, a codeword is
// (m-1) one-bits, then a zero bit, then m*(k-1) payload bits giving the
// offset from the level's base value — so smaller numbers cost fewer bits
// and the "extend" decision costs exactly one bit per level.
//
// For k=4 the first level covers 0..7:
//
//	0000 -> 0   0100 -> 4
//	0001 -> 1   0101 -> 5
//	0010 -> 2   0110 -> 6
//	0011 -> 3   0111 -> 7
//
// and the second level, entered via a leading 1, covers 8..71:
//
//	10000000 -> 8
//	...
//	10111111 -> 71
type NaturalTable struct {
	k int
}

// NewNaturalTable builds the bit-aligned natural code with the given
// bit-align. It panics if k < 2.
func NewNaturalTable(k int) *NaturalTable {
	assert.Assertf(k >= 2, "bit-aligned natural table: k must be >= 2, got %d", k)
	return &NaturalTable{k: k}
}

// BitAlign returns the k this table was constructed with.
func (t *NaturalTable) BitAlign() int { return t.k }

// levelOf returns the level m for the given bit length, or 0 if bits is
// not a positive multiple of k.
func (t *NaturalTable) levelOf(bits int) int {
	if bits <= 0 || bits%t.k != 0 {
		return 0
	}
	return bits / t.k
}

func (t *NaturalTable) sizeAtLevel(m int) uint64 {
	return uint64(1) << uint(m*(t.k-1))
}

func (t *NaturalTable) baseAtLevel(m int) uint64 {
	var base uint64
	for j := 1; j < m; j++ {
		base += t.sizeAtLevel(j)
	}
	return base
}

func (t *NaturalTable) Count(bits int) int {
	m := t.levelOf(bits)
	if m == 0 {
		return 0
	}
	return int(t.sizeAtLevel(m))
}

func (t *NaturalTable) Symbol(bits, index int) uint64 {
	m := t.levelOf(bits)
	if m == 0 {
		panic("bitstream: NaturalTable.Symbol called with a bit length outside the table")
	}
	return t.baseAtLevel(m) + uint64(index)
}

func (t *NaturalTable) Locate(v uint64) (bits, index int, ok bool) {
	m := 1
	base := uint64(0)
	size := t.sizeAtLevel(1)
	for v-base >= size {
		base += size
		m++
		size = t.sizeAtLevel(m)
	}
	return m * t.k, int(v - base), true
}

var (
	_ Table[uint64]       = (*NaturalTable)(nil)
	_ LookupTable[uint64] = (*NaturalTable)(nil)
)
