// Package bitstream implements bit-granular serialization of structured
// data: booleans, bounded and unbounded integers, Huffman-coded symbols,
// and ordered collections packed into an octet stream with no unit rounded
// to a byte boundary.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Canonical_Huffman_code>
//
//     <https://en.wikipedia.org/wiki/Golomb_coding>
//
package bitstream
