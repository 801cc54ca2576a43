package bitstream

import "github.com/chronos-tachyon/assert"

// WriteRangedIntegerSet encodes a strictly ascending, duplicate-free set
// of int64 values drawn from [min, max] (component H). lengthTable
// encodes the set's size; each element is then encoded with a
// RangedTable whose bounds follow the elements already consumed — the
// lower bound moves past the previous element, and the upper bound is max
// minus the number of elements still to come after this one (so it rises
// by one with each element written), leaving room for those later
// elements in what remains of the range.
//
// elems must already be sorted ascending with no duplicates; this
// function does not re-derive that order, matching the original
// RangedIntegerSetEncoder it is grounded on.
func WriteRangedIntegerSet(w *Writer, lengthTable LookupTable[int64], min, max int64, elems []int64) error {
	assert.Assertf(max >= min, "ranged integer set: min %d must be <= max %d", min, max)

	length := int64(len(elems))
	if length < 0 || length > max-min+1 {
		return ErrInvalidArgument
	}

	if err := WriteSymbol(w, lengthTable, length); err != nil {
		return err
	}

	for i, v := range elems {
		lo := min
		if i > 0 {
			lo = elems[i-1] + 1
		}
		hi := max - length + int64(i) + 1
		if err := WriteSymbol(w, NewRangedTable(lo, hi), v); err != nil {
			return err
		}
	}
	return nil
}

// ReadRangedIntegerSet is the inverse of WriteRangedIntegerSet.
func ReadRangedIntegerSet(r *Reader, lengthTable Table[int64], min, max int64) ([]int64, error) {
	assert.Assertf(max >= min, "ranged integer set: min %d must be <= max %d", min, max)

	length, err := ReadSymbol(r, lengthTable)
	if err != nil {
		return nil, err
	}
	if length < 0 || length > max-min+1 {
		return nil, ErrInvalidArgument
	}

	elems := make([]int64, length)
	for i := range elems {
		lo := min
		if i > 0 {
			lo = elems[i-1] + 1
		}
		hi := max - length + int64(i) + 1
		v, err := ReadSymbol(r, NewRangedTable(lo, hi))
		if err != nil {
			return nil, err
		}
		elems[i] = v
	}
	return elems, nil
}
