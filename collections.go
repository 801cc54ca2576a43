package bitstream

import "sort"

// LengthWriter encodes a non-negative collection length. Collections in
// this package take one as a parameter rather than hard-coding a single
// length code, so the caller can pick whatever fits the expected size
// distribution: NaturalLengthWriter for unbounded collections,
// HuffmanLengthWriter when the length distribution is known in advance
// (component G).
type LengthWriter func(*Writer, int) error

// LengthReader is the read-side counterpart of LengthWriter.
type LengthReader func(*Reader) (int, error)

// NaturalLengthWriter encodes a length with a bit-aligned natural-number
// table, suitable when collection sizes have no known upper bound.
func NaturalLengthWriter(t *NaturalTable) LengthWriter {
	return func(w *Writer, n int) error { return WriteSymbol(w, t, uint64(n)) }
}

// NaturalLengthReader is the read-side counterpart of NaturalLengthWriter.
func NaturalLengthReader(t *NaturalTable) LengthReader {
	return func(r *Reader) (int, error) {
		v, err := ReadSymbol(r, t)
		return int(v), err
	}
}

// HuffmanLengthWriter encodes a length against an arbitrary lookup
// table, e.g. a DefinedTable[int64] tuned to an observed length
// distribution (mirrors the original library's HuffmanTableLengthEncoder).
func HuffmanLengthWriter(t LookupTable[int64]) LengthWriter {
	return func(w *Writer, n int) error { return WriteSymbol(w, t, int64(n)) }
}

// HuffmanLengthReader is the read-side counterpart of HuffmanLengthWriter.
func HuffmanLengthReader(t Table[int64]) LengthReader {
	return func(r *Reader) (int, error) {
		v, err := ReadSymbol(r, t)
		return int(v), err
	}
}

// WriteList writes length, then every element of list in order.
func WriteList[T any](w *Writer, length LengthWriter, writeElem func(*Writer, T) error, list []T) error {
	if err := length(w, len(list)); err != nil {
		return err
	}
	for _, elem := range list {
		if err := writeElem(w, elem); err != nil {
			return err
		}
	}
	return nil
}

// ReadList is the inverse of WriteList.
func ReadList[T any](r *Reader, length LengthReader, readElem func(*Reader) (T, error)) ([]T, error) {
	n, err := length(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrInvalidArgument
	}

	list := make([]T, n)
	for i := range list {
		v, err := readElem(r)
		if err != nil {
			return nil, err
		}
		list[i] = v
	}
	return list, nil
}

// WriteMap writes m's size, then its keys in ascending order (per less),
// then, interleaved with each key, its value. If diffKey is non-nil it
// encodes every key after the first as a function of the previous key
// (e.g. a ranged code over the keys still possible given the ascending
// order), which can compress far better than encoding each key from
// scratch; diffKey is never called for the first key.
func WriteMap[K comparable, V any](
	w *Writer,
	length LengthWriter,
	writeKey func(*Writer, K) error,
	diffKey func(*Writer, K, K) error,
	less func(a, b K) bool,
	writeValue func(*Writer, V) error,
	m map[K]V,
) error {
	keys := sortedKeys(m, less)

	if err := length(w, len(keys)); err != nil {
		return err
	}

	var previous K
	for i, key := range keys {
		if i == 0 || diffKey == nil {
			if err := writeKey(w, key); err != nil {
				return err
			}
		} else if err := diffKey(w, previous, key); err != nil {
			return err
		}
		previous = key

		if err := writeValue(w, m[key]); err != nil {
			return err
		}
	}
	return nil
}

// ReadMap is the inverse of WriteMap.
func ReadMap[K comparable, V any](
	r *Reader,
	length LengthReader,
	readKey func(*Reader) (K, error),
	diffKey func(*Reader, K) (K, error),
	readValue func(*Reader) (V, error),
) (map[K]V, error) {
	n, err := length(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, ErrInvalidArgument
	}

	m := make(map[K]V, n)
	var previous K
	for i := 0; i < n; i++ {
		var key K
		if i == 0 || diffKey == nil {
			key, err = readKey(r)
		} else {
			key, err = diffKey(r, previous)
		}
		if err != nil {
			return nil, err
		}
		previous = key

		value, err := readValue(r)
		if err != nil {
			return nil, err
		}
		m[key] = value
	}
	return m, nil
}

// WriteSet writes a set (a map[T]struct{}) the same way WriteMap writes
// a map's keys: ascending order per less, with an optional diff code.
func WriteSet[T comparable](
	w *Writer,
	length LengthWriter,
	writeElem func(*Writer, T) error,
	diffElem func(*Writer, T, T) error,
	less func(a, b T) bool,
	set map[T]struct{},
) error {
	return WriteMap(w, length, writeElem, diffElem, less, func(*Writer, struct{}) error { return nil }, set)
}

// ReadSet is the inverse of WriteSet.
func ReadSet[T comparable](
	r *Reader,
	length LengthReader,
	readElem func(*Reader) (T, error),
	diffElem func(*Reader, T) (T, error),
) (map[T]struct{}, error) {
	return ReadMap(r, length, readElem, diffElem, func(*Reader) (struct{}, error) { return struct{}{}, nil })
}

func sortedKeys[K comparable, V any](m map[K]V, less func(a, b K) bool) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	return keys
}
