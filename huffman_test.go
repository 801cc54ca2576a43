package bitstream

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func lessRune(a, b rune) bool { return a < b }

func TestDefinedTableCanonicalSizes(t *testing.T) {
	// From the classic canonical-Huffman example: 6 symbols with
	// frequencies 5,9,12,13,16,45 produce code lengths 4,4,3,3,3,1
	// (see the teacher package's own encoder_test.go for the same
	// frequencies), in ascending-symbol order once ties are broken.
	freq := map[rune]int{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45}
	table := NewDefinedTable(freq, lessRune)

	require.Equal(t, 6, table.Len())

	bitsOf := func(r rune) int {
		bits, _, ok := table.Locate(r)
		require.True(t, ok)
		return bits
	}

	require.Equal(t, 1, bitsOf('f'))
	require.ElementsMatch(t, []int{3, 3, 3}, []int{bitsOf('c'), bitsOf('d'), bitsOf('e')})
	require.ElementsMatch(t, []int{4, 4}, []int{bitsOf('a'), bitsOf('b')})
}

func TestDefinedTableDeterministicRegardlessOfInsertionOrder(t *testing.T) {
	freqA := map[rune]int{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45}
	freqB := map[rune]int{'f': 45, 'e': 16, 'd': 13, 'c': 12, 'b': 9, 'a': 5}

	tableA := NewDefinedTable(freqA, lessRune)
	tableB := NewDefinedTable(freqB, lessRune)

	for r := range freqA {
		wantBits, wantIndex, ok := tableA.Locate(r)
		require.True(t, ok)
		gotBits, gotIndex, ok := tableB.Locate(r)
		require.True(t, ok)
		require.Equal(t, wantBits, gotBits)
		require.Equal(t, wantIndex, gotIndex)
	}
}

func TestDefinedTableSingle(t *testing.T) {
	single := NewDefinedTable(map[rune]int{'x': 1}, lessRune)
	require.Equal(t, 1, single.Count(0))
	require.EqualValues(t, 'x', single.Symbol(0, 0))
}

func TestNewDefinedTablePanicsOnEmptyFreq(t *testing.T) {
	require.Panics(t, func() {
		NewDefinedTable(map[rune]int{}, lessRune)
	})
}

func TestDefinedTableWireRoundTrip(t *testing.T) {
	freq := map[rune]int{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45}
	table := NewDefinedTable(freq, lessRune)

	message := []rune("aabbccddeeffffffffabcdef")
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, r := range message {
		require.NoError(t, WriteSymbol(w, table, r))
	}
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	for _, want := range message {
		got, err := ReadSymbol(r, table)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

func TestWriteReadDefinedTable(t *testing.T) {
	freq := map[rune]int{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45}
	table := NewDefinedTable(freq, lessRune)

	writeRune := func(w *Writer, r rune) error { return WriteSymbol(w, NewRangedTable(0, 0x10FFFF), int64(r)) }
	readRune := func(r *Reader) (rune, error) {
		v, err := ReadSymbol(r, NewRangedTable(0, 0x10FFFF))
		return rune(v), err
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, WriteDefinedTable(w, table, writeRune, nil))
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	got, err := ReadDefinedTable(r, readRune, nil)
	require.NoError(t, err)

	require.Equal(t, table.Len(), got.Len())
	for sym := range freq {
		wantBits, wantIndex, ok := table.Locate(sym)
		require.True(t, ok)
		gotBits, gotIndex, ok := got.Locate(sym)
		require.True(t, ok)
		require.Equal(t, wantBits, gotBits)
		require.Equal(t, wantIndex, gotIndex)
	}
}

func TestWriteReadDefinedTableWithDiffCallbacks(t *testing.T) {
	// Symbols drawn from an ordered domain (int64) land within each level
	// in ascending order (newDefinedTableFromSizes preserves the caller's
	// less order per level), so consecutive symbols in the same level are
	// always strictly increasing — exactly the shape WriteMap/WriteSet's
	// diff-key callbacks are built for, and the wire-format symmetry
	// spec's Testable Property #8 (differential table-symbol encoding)
	// depends on.
	freq := map[int64]int{10: 5, 20: 9, 30: 12, 40: 13, 50: 16, 60: 45}
	less := func(a, b int64) bool { return a < b }
	table := NewDefinedTable(freq, less)

	natural := NewNaturalTable(4)
	integer := NewIntegerTable(4)
	writeSymbol := func(w *Writer, v int64) error { return WriteSymbol(w, integer, v) }
	readSymbol := func(r *Reader) (int64, error) { return ReadSymbol(r, integer) }
	diffWrite := func(w *Writer, previous, v int64) error {
		return WriteSymbol(w, natural, uint64(v-previous-1))
	}
	diffRead := func(r *Reader, previous int64) (int64, error) {
		delta, err := ReadSymbol(r, natural)
		return previous + int64(delta) + 1, err
	}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, WriteDefinedTable(w, table, writeSymbol, diffWrite))
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	got, err := ReadDefinedTable(r, readSymbol, diffRead)
	require.NoError(t, err)

	require.Equal(t, table.Len(), got.Len())
	for sym := range freq {
		wantBits, wantIndex, ok := table.Locate(sym)
		require.True(t, ok)
		gotBits, gotIndex, ok := got.Locate(sym)
		require.True(t, ok)
		require.Equal(t, wantBits, gotBits)
		require.Equal(t, wantIndex, gotIndex)
	}
}

func TestDefinedTableHashStable(t *testing.T) {
	freqA := map[rune]int{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45}
	freqB := map[rune]int{'f': 45, 'e': 16, 'd': 13, 'c': 12, 'b': 9, 'a': 5}

	encode := func(r rune) []byte { return []byte(string(r)) }

	tableA := NewDefinedTable(freqA, lessRune)
	tableB := NewDefinedTable(freqB, lessRune)
	require.Equal(t, tableA.Hash(encode), tableB.Hash(encode))

	tableC := NewDefinedTable(map[rune]int{'a': 45, 'b': 16, 'c': 13, 'd': 12, 'e': 9, 'f': 5}, lessRune)
	require.NotEqual(t, tableA.Hash(encode), tableC.Hash(encode))
}
