package bitstream

import (
	"container/heap"
	"encoding/binary"
	"math"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/chronos-tachyon/assert"
)

// DefinedTable is the canonical Huffman code built from an explicit
// frequency table (component E). Unlike RangedTable, NaturalTable, and
// IntegerTable, whose layouts come from a formula, DefinedTable computes
// its layout once, at construction time, from per-symbol frequencies,
// using the same two-pass approach as the teacher package's canonical
// Huffman encoder: a min-heap merge to find each symbol's code length,
// then a stable partition by length to assign in-level positions. Once
// built, it is just another LookupTable and uses the shared
// WriteSymbol/ReadSymbol from table.go like every other table in this
// package.
//
// Construction is deterministic given (freq, less), independent of Go's
// randomized map iteration order: every tie in the frequency merge is
// broken by less, which must impose a strict total order over the
// symbols present in freq.
type DefinedTable[S comparable] struct {
	bySymbol map[S]definedEntry
	byLevel  [][]S
}

type definedEntry struct {
	bits, index int
}

// NewDefinedTable builds a canonical Huffman table from freq. freq must
// not be empty: a table with no symbols could never be exhaustive (§3
// forbids non-exhaustive defined tables at construction time), and
// WriteDefinedTable has no way to signal it short of spinning until the
// level-count doubling overflows. A single symbol gets the zero-bit code.
func NewDefinedTable[S comparable](freq map[S]int, less func(a, b S) bool) *DefinedTable[S] {
	assert.Assertf(len(freq) > 0, "defined table: freq must not be empty")

	symbols := make([]S, 0, len(freq))
	for s := range freq {
		symbols = append(symbols, s)
	}
	sort.Slice(symbols, func(i, j int) bool { return less(symbols[i], symbols[j]) })

	sizes := computeCodeSizes(symbols, freq)
	return newDefinedTableFromSizes(symbols, sizes)
}

// newDefinedTableFromSizes assigns in-level positions by a single scan
// over symbols in their already-sorted (less) order: each bucket's
// internal order therefore matches the global order, reproducing the
// "(size, symbol) ascending" canonical sort without a second sort.
func newDefinedTableFromSizes[S comparable](symbols []S, sizes []int) *DefinedTable[S] {
	maxBits := 0
	for _, b := range sizes {
		if b > maxBits {
			maxBits = b
		}
	}

	byLevel := make([][]S, maxBits+1)
	bySymbol := make(map[S]definedEntry, len(symbols))

	for i, s := range symbols {
		bits := sizes[i]
		index := len(byLevel[bits])
		byLevel[bits] = append(byLevel[bits], s)
		bySymbol[s] = definedEntry{bits: bits, index: index}
	}

	return &DefinedTable[S]{bySymbol: bySymbol, byLevel: byLevel}
}

// computeCodeSizes runs the canonical-Huffman first pass: build a
// min-heap over (symbol index, frequency), repeatedly merge the two
// least-frequent nodes into a synthetic parent, then walk the resulting
// tree to read off each natural symbol's depth. This mirrors the
// teacher package's firstPass almost line for line, generalized from its
// int32 Symbol type to a generic index into the caller's sorted slice so
// that ties are broken by the caller's less rather than by symbol value.
func computeCodeSizes[S comparable](symbols []S, freq map[S]int) []int {
	n := len(symbols)
	sizes := make([]int, n)

	// A table with exactly one symbol is exhaustive at zero bits (there
	// is nothing else it could mean), matching DefinedHuffmanTable's
	// treatment of a singleton root with no synthetic parent. Two
	// symbols always form one parent with both leaves at depth one.
	if n == 1 {
		return sizes
	}
	if n == 2 {
		sizes[0], sizes[1] = 1, 1
		return sizes
	}

	nodes := make([]definedNode, n)
	for i, s := range symbols {
		nodes[i] = definedNode{idx: int32(i), freq: uint64(freq[s])}
	}

	h := definedHeap{list: nodes}
	heap.Init(&h)

	children := make(map[int32][2]int32, n-1)
	nextSynthetic := int32(math.MinInt32)

	for h.Len() > 1 {
		a := heap.Pop(&h).(definedNode)
		b := heap.Pop(&h).(definedNode)

		freqSum := a.freq + b.freq
		if freqSum < a.freq {
			freqSum = math.MaxUint64
		}

		children[nextSynthetic] = [2]int32{a.idx, b.idx}
		heap.Push(&h, definedNode{idx: nextSynthetic, freq: freqSum})
		nextSynthetic++
	}
	root := heap.Pop(&h).(definedNode)

	type stackItem struct {
		idx int32
		x   int
	}
	stack := []stackItem{{idx: root.idx}}

	processChild := func(depth int, child int32) {
		if child < 0 {
			stack = append(stack, stackItem{idx: child})
			return
		}
		sizes[child] = depth
	}

	for len(stack) != 0 {
		depth := len(stack)
		top := &stack[depth-1]
		x := top.x
		top.x++
		switch x {
		case 0:
			pair := children[top.idx]
			processChild(depth, pair[0])
		case 1:
			pair := children[top.idx]
			processChild(depth, pair[1])
		case 2:
			stack = stack[:depth-1]
		}
	}

	return sizes
}

type definedNode struct {
	idx  int32
	freq uint64
}

type definedHeap struct {
	list []definedNode
}

func (h *definedHeap) Len() int { return len(h.list) }

func (h *definedHeap) Swap(i, j int) { h.list[i], h.list[j] = h.list[j], h.list[i] }

func (h *definedHeap) Less(i, j int) bool {
	a, b := h.list[i], h.list[j]
	if a.freq != b.freq {
		return a.freq < b.freq
	}
	return uint32(a.idx) < uint32(b.idx)
}

func (h *definedHeap) Push(x any) { h.list = append(h.list, x.(definedNode)) }

func (h *definedHeap) Pop() any {
	last := len(h.list) - 1
	x := h.list[last]
	h.list = h.list[:last]
	return x
}

var _ heap.Interface = (*definedHeap)(nil)

// Count implements Table.
func (t *DefinedTable[S]) Count(bits int) int {
	if bits < 0 || bits >= len(t.byLevel) {
		return 0
	}
	return len(t.byLevel[bits])
}

// Symbol implements Table.
func (t *DefinedTable[S]) Symbol(bits, index int) S {
	return t.byLevel[bits][index]
}

// Locate implements LookupTable.
func (t *DefinedTable[S]) Locate(sym S) (bits, index int, ok bool) {
	e, ok := t.bySymbol[sym]
	return e.bits, e.index, ok
}

// Len returns the number of distinct symbols in the table.
func (t *DefinedTable[S]) Len() int { return len(t.bySymbol) }

// MaxBits returns the longest code length in the table, or 0 if the
// table has no symbols or only the zero-bit symbol.
func (t *DefinedTable[S]) MaxBits() int {
	if len(t.byLevel) == 0 {
		return 0
	}
	return len(t.byLevel) - 1
}

var (
	_ Table[int]       = (*DefinedTable[int])(nil)
	_ LookupTable[int] = (*DefinedTable[int])(nil)
)

// WriteDefinedTable writes a self-describing encoding of t: the sequence
// of per-level symbol counts, each written as a ranged code over the
// number of codepoints still available at that level (so the terminal
// levels cost nothing once the table is exhausted), followed by the
// symbols themselves in canonical order, via writeSymbol. If diffWrite is
// non-nil it is used for every symbol after the first in each level
// (given the previous symbol in that level), which can compress better
// when a level's symbols are naturally ordered (e.g. numerically).
func WriteDefinedTable[S comparable](w *Writer, t *DefinedTable[S], writeSymbol func(*Writer, S) error, diffWrite func(*Writer, S, S) error) error {
	bits := 0
	max := 1
	for max > 0 {
		levelLength := t.Count(bits)
		lengthTable := NewRangedTable(0, int64(max))
		if err := WriteSymbol(w, lengthTable, int64(levelLength)); err != nil {
			return err
		}
		max -= levelLength
		max <<= 1
		bits++
	}

	for level := 0; level < len(t.byLevel); level++ {
		symbols := t.byLevel[level]
		if len(symbols) == 0 {
			continue
		}
		if err := writeSymbol(w, symbols[0]); err != nil {
			return err
		}
		previous := symbols[0]
		for _, sym := range symbols[1:] {
			if diffWrite != nil {
				if err := diffWrite(w, previous, sym); err != nil {
					return err
				}
			} else if err := writeSymbol(w, sym); err != nil {
				return err
			}
			previous = sym
		}
	}

	return nil
}

// maxDefinedTableBits bounds how many levels ReadDefinedTable will
// accept before giving up on a stream that never reaches exhaustion
// (max doubles every non-terminal level, so a corrupt stream claiming 0
// symbols at every level would otherwise spin until int overflow).
const maxDefinedTableBits = 56

// ReadDefinedTable is the inverse of WriteDefinedTable.
func ReadDefinedTable[S comparable](r *Reader, readSymbol func(*Reader) (S, error), diffRead func(*Reader, S) (S, error)) (*DefinedTable[S], error) {
	var levelLengths []int
	max := 1
	for max > 0 {
		if len(levelLengths) >= maxDefinedTableBits {
			return nil, ErrNonExhaustiveTable
		}
		lengthTable := NewRangedTable(0, int64(max))
		n, err := ReadSymbol(r, lengthTable)
		if err != nil {
			return nil, err
		}
		levelLengths = append(levelLengths, int(n))
		max -= int(n)
		max <<= 1
	}

	byLevel := make([][]S, len(levelLengths))
	bySymbol := make(map[S]definedEntry)

	for bits, levelLength := range levelLengths {
		if levelLength == 0 {
			continue
		}
		level := make([]S, 0, levelLength)

		first, err := readSymbol(r)
		if err != nil {
			return nil, err
		}
		level = append(level, first)
		bySymbol[first] = definedEntry{bits: bits, index: 0}

		previous := first
		for i := 1; i < levelLength; i++ {
			var sym S
			if diffRead != nil {
				sym, err = diffRead(r, previous)
			} else {
				sym, err = readSymbol(r)
			}
			if err != nil {
				return nil, err
			}
			bySymbol[sym] = definedEntry{bits: bits, index: i}
			level = append(level, sym)
			previous = sym
		}

		byLevel[bits] = level
	}

	return &DefinedTable[S]{bySymbol: bySymbol, byLevel: byLevel}, nil
}

// Hash returns a digest of t's canonical layout, given a function that
// reduces a symbol to a stable byte representation (e.g. binary.Write on
// a fixed-width struct, or []byte(s) for a string symbol). Two tables
// built from the same frequency map and less (on any machine, regardless
// of map iteration order) hash identically; a table with the same
// symbols at different bit lengths hashes differently, since each
// level's boundary is folded into the digest.
func (t *DefinedTable[S]) Hash(encodeSymbol func(S) []byte) uint64 {
	digest := xxhash.New()
	var lenBuf [8]byte
	for _, level := range t.byLevel {
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(level)))
		_, _ = digest.Write(lenBuf[:])
		for _, sym := range level {
			b := encodeSymbol(sym)
			binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(b)))
			_, _ = digest.Write(lenBuf[:])
			_, _ = digest.Write(b)
		}
	}
	return digest.Sum64()
}
