package bitstream

import "errors"

// Sentinel errors returned by this package. Callers should compare against
// these with errors.Is rather than matching on message text.
var (
	// ErrInvalidArgument is returned when a value falls outside a table's
	// domain, when a length is negative or too large, or when a stream
	// operation is asked to do something the format forbids.
	ErrInvalidArgument = errors.New("bitstream: invalid argument")

	// ErrStreamClosed is returned by any operation attempted on a Writer
	// or Reader after Close has already been called on it.
	ErrStreamClosed = errors.New("bitstream: stream closed")

	// ErrPrematureEnd is returned by a Reader when it needs another bit
	// but the underlying source has been exhausted.
	ErrPrematureEnd = errors.New("bitstream: premature end of stream")

	// ErrUnknownSymbol is returned when asked to encode a symbol that is
	// absent from the given table.
	ErrUnknownSymbol = errors.New("bitstream: symbol not present in table")

	// ErrNonExhaustiveTable is returned by ReadDefinedTable when the
	// encoded level counts do not tile the full binary tree (Kraft sum 1)
	// within maxDefinedTableBits levels.
	ErrNonExhaustiveTable = errors.New("bitstream: non-exhaustive Huffman table")
)
