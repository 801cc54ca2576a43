package bitstream

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func int64Writer(w *Writer, v int64) error {
	return WriteSymbol(w, NewIntegerTable(4), v)
}

func int64Reader(r *Reader) (int64, error) {
	return ReadSymbol(r, NewIntegerTable(4))
}

func TestWriteReadList(t *testing.T) {
	length := NaturalLengthWriter(NewNaturalTable(4))
	lengthR := NaturalLengthReader(NewNaturalTable(4))

	list := []int64{1, -2, 3, -4, 1000}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, WriteList(w, length, int64Writer, list))
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	got, err := ReadList(r, lengthR, int64Reader)
	require.NoError(t, err)
	require.Equal(t, list, got)
}

func TestWriteReadMapWithDiffKeys(t *testing.T) {
	length := NaturalLengthWriter(NewNaturalTable(4))
	lengthR := NaturalLengthReader(NewNaturalTable(4))
	natural := NewNaturalTable(4)
	integer := NewIntegerTable(4)

	less := func(a, b int64) bool { return a < b }
	writeKey := func(w *Writer, k int64) error { return WriteSymbol(w, integer, k) }
	readKey := func(r *Reader) (int64, error) { return ReadSymbol(r, integer) }
	diffWriteKey := func(w *Writer, previous, k int64) error { return WriteSymbol(w, natural, uint64(k-previous-1)) }
	diffReadKey := func(r *Reader, previous int64) (int64, error) {
		delta, err := ReadSymbol(r, natural)
		return previous + int64(delta) + 1, err
	}

	m := map[int64]string{-5: "neg5", 0: "zero", 7: "seven", 100: "hundred"}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, WriteMap(w, length, writeKey, diffWriteKey, less, WriteString, m))
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	got, err := ReadMap(r, lengthR, readKey, diffReadKey, ReadString)
	require.NoError(t, err)
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("decoded map mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteReadSet(t *testing.T) {
	length := NaturalLengthWriter(NewNaturalTable(4))
	lengthR := NaturalLengthReader(NewNaturalTable(4))
	less := func(a, b int64) bool { return a < b }

	set := map[int64]struct{}{-3: {}, 0: {}, 42: {}}

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, WriteSet(w, length, int64Writer, nil, less, set))
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	got, err := ReadSet(r, lengthR, int64Reader, nil)
	require.NoError(t, err)
	require.Equal(t, set, got)
}

func TestHuffmanLengthWriterReader(t *testing.T) {
	freq := map[int64]int{0: 10, 1: 5, 2: 3, 3: 1}
	table := NewDefinedTable(freq, func(a, b int64) bool { return a < b })

	length := HuffmanLengthWriter(table)
	lengthR := HuffmanLengthReader(table)

	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, WriteList(w, length, int64Writer, []int64{1, 2}))
	require.NoError(t, w.Close())

	r := NewReader(&buf)
	got, err := ReadList(r, lengthR, int64Reader)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, got)
}
