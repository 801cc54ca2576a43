package bitstream

// WriteString writes s as its rune length followed by each rune, all as
// bit-aligned natural numbers with k=8 (7 payload bits plus one
// continuation bit per group) — the same grouping the original library
// uses for writeNaturalNumber/writeString, so a plain ASCII rune costs a
// single byte on the wire.
func WriteString(w *Writer, s string) error {
	natural := NewNaturalTable(8)
	runes := []rune(s)

	if err := WriteSymbol(w, natural, uint64(len(runes))); err != nil {
		return err
	}
	for _, r := range runes {
		if err := WriteSymbol(w, natural, uint64(r)); err != nil {
			return err
		}
	}
	return nil
}

// ReadString is the inverse of WriteString.
func ReadString(r *Reader) (string, error) {
	natural := NewNaturalTable(8)

	n, err := ReadSymbol(r, natural)
	if err != nil {
		return "", err
	}

	runes := make([]rune, n)
	for i := range runes {
		v, err := ReadSymbol(r, natural)
		if err != nil {
			return "", err
		}
		runes[i] = rune(v)
	}
	return string(runes), nil
}

// WriteStringFromAlphabet writes a string known to contain only runes
// from alphabet, as a natural-coded length followed by a ranged code
// over each rune's position in alphabet. Far cheaper than WriteString
// when the alphabet is small and fixed ahead of time (e.g. lowercase
// ASCII), since every rune then costs at most ceil(log2(len(alphabet)))
// bits instead of a natural-number code over all of Unicode.
func WriteStringFromAlphabet(w *Writer, alphabet []rune, s string) error {
	position := make(map[rune]int64, len(alphabet))
	for i, r := range alphabet {
		position[r] = int64(i)
	}

	natural := NewNaturalTable(8)
	table := NewRangedTable(0, int64(len(alphabet)-1))
	runes := []rune(s)

	if err := WriteSymbol(w, natural, uint64(len(runes))); err != nil {
		return err
	}
	for _, r := range runes {
		idx, ok := position[r]
		if !ok {
			return ErrInvalidArgument
		}
		if err := WriteSymbol(w, table, idx); err != nil {
			return err
		}
	}
	return nil
}

// ReadStringFromAlphabet is the inverse of WriteStringFromAlphabet.
func ReadStringFromAlphabet(r *Reader, alphabet []rune) (string, error) {
	natural := NewNaturalTable(8)
	table := NewRangedTable(0, int64(len(alphabet)-1))

	n, err := ReadSymbol(r, natural)
	if err != nil {
		return "", err
	}

	runes := make([]rune, n)
	for i := range runes {
		idx, err := ReadSymbol(r, table)
		if err != nil {
			return "", err
		}
		if idx < 0 || int(idx) >= len(alphabet) {
			return "", ErrInvalidArgument
		}
		runes[i] = alphabet[idx]
	}
	return string(runes), nil
}

// WriteNullableInt64 writes a presence bit, then, if v is non-nil, v
// coded against t (mirrors NullableIntegerEncoder).
func WriteNullableInt64(w *Writer, t *IntegerTable, v *int64) error {
	if v == nil {
		return w.WriteBit(false)
	}
	if err := w.WriteBit(true); err != nil {
		return err
	}
	return WriteSymbol(w, t, *v)
}

// ReadNullableInt64 is the inverse of WriteNullableInt64.
func ReadNullableInt64(r *Reader, t *IntegerTable) (*int64, error) {
	present, err := r.ReadBit()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	v, err := ReadSymbol(r, t)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// LessNullableInt64 orders nil before every non-nil value and otherwise
// compares numerically — the ordering WriteMap/WriteSet must use when
// keyed by *int64 and paired with WriteDiffNullableInt64/
// ReadDiffNullableInt64.
func LessNullableInt64(a, b *int64) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return *a < *b
}

// WriteDiffNullableInt64 returns a WriteMap/WriteSet diffKey callback for
// *int64 keys sorted by LessNullableInt64. Since nil always sorts first,
// previous is nil only when the very first key in the collection was
// itself nil; the callback then falls back to encoding v from scratch.
// Otherwise v is known to be strictly greater than previous, so the gap
// minus one is written as a natural number.
func WriteDiffNullableInt64(natural *NaturalTable, integer *IntegerTable) func(*Writer, *int64, *int64) error {
	return func(w *Writer, previous, v *int64) error {
		if previous == nil {
			return WriteSymbol(w, integer, *v)
		}
		return WriteSymbol(w, natural, uint64(*v-*previous-1))
	}
}

// ReadDiffNullableInt64 is the inverse of WriteDiffNullableInt64.
func ReadDiffNullableInt64(natural *NaturalTable, integer *IntegerTable) func(*Reader, *int64) (*int64, error) {
	return func(r *Reader, previous *int64) (*int64, error) {
		if previous == nil {
			v, err := ReadSymbol(r, integer)
			if err != nil {
				return nil, err
			}
			return &v, nil
		}
		delta, err := ReadSymbol(r, natural)
		if err != nil {
			return nil, err
		}
		v := *previous + int64(delta) + 1
		return &v, nil
	}
}
