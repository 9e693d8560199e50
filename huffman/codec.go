package huffman

import (
	"errors"
	"fmt"

	"github.com/seif/huffrz/bitstream"
)

var (
	// ErrUnknownSymbol is returned when encoding meets an input symbol
	// the code table has no code for. This cannot happen when the table
	// was derived from the same input's frequencies.
	ErrUnknownSymbol = errors.New("huffman: symbol has no code")

	// ErrDeadEnd is returned when a decoded bit selects a missing child,
	// meaning the bitstream does not match the tree.
	ErrDeadEnd = errors.New("huffman: tree walk hit a dead end")
)

// Encode appends the code for each symbol of data to w.
func Encode(data []byte, ct *CodeTable, w *bitstream.Writer) error {
	for i, b := range data {
		c, ok := ct.Code(b)
		if !ok {
			return fmt.Errorf("%w: 0x%02x at offset %d", ErrUnknownSymbol, b, i)
		}
		if err := w.WriteCode(c.Bits, c.Len); err != nil {
			return err
		}
	}
	return nil
}

// Decode walks the tree bit by bit, starting over at the root after each
// emitted symbol, until exactly count symbols have been produced.
// Running out of meaningful bits before that surfaces as
// bitstream.ErrExhausted.
func Decode(root *Node, r *bitstream.Reader, count uint64) ([]byte, error) {
	if root == nil {
		if count == 0 {
			return []byte{}, nil
		}
		return nil, ErrEmptyTable
	}

	out := make([]byte, 0, count)
	for uint64(len(out)) < count {
		n := root
		for !n.Leaf() {
			bit, err := r.ReadBit()
			if err != nil {
				return nil, fmt.Errorf("decoded %d of %d symbols: %w", len(out), count, err)
			}
			if bit {
				n = n.Right
			} else {
				n = n.Left
			}
			if n == nil {
				return nil, fmt.Errorf("%w after %d symbols", ErrDeadEnd, len(out))
			}
		}
		out = append(out, n.Sym)
	}
	return out, nil
}
