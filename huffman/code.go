package huffman

import "errors"

// ErrCodeTooLong is returned when a tree assigns some symbol a code
// longer than 64 bits. Only adversarial frequency tables can produce
// such trees.
var ErrCodeTooLong = errors.New("huffman: code longer than 64 bits")

// Code is the bit pattern assigned to one symbol: the root-to-leaf path
// in the low Len bits, with the first branch decision in the most
// significant of them.
type Code struct {
	Bits uint64
	Len  uint8
}

// CodeTable maps each symbol to its prefix code. The prefix property
// holds by construction: codes correspond to distinct leaves, and no
// leaf is an ancestor of another.
type CodeTable struct {
	codes [256]Code
}

// Code returns the code for sym and whether one is assigned.
func (ct *CodeTable) Code(sym byte) (Code, bool) {
	c := ct.codes[sym]
	return c, c.Len != 0
}

// DeriveCodes walks the tree depth-first, appending 0 for a left edge
// and 1 for a right edge, and records the accumulated path at each leaf.
func DeriveCodes(root *Node) (*CodeTable, error) {
	if root == nil {
		return nil, ErrEmptyTable
	}
	ct := &CodeTable{}
	if err := derive(root, 0, 0, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

func derive(n *Node, bits uint64, depth uint8, ct *CodeTable) error {
	if n.Leaf() {
		if depth == 0 {
			// A bare leaf root never comes out of Build, but a caller-made
			// tree could have one. Its symbol still needs a 1-bit code.
			depth = 1
		}
		ct.codes[n.Sym] = Code{Bits: bits, Len: depth}
		return nil
	}
	if depth >= 64 {
		return ErrCodeTooLong
	}
	if n.Left != nil {
		if err := derive(n.Left, bits<<1, depth+1, ct); err != nil {
			return err
		}
	}
	if n.Right != nil {
		if err := derive(n.Right, bits<<1|1, depth+1, ct); err != nil {
			return err
		}
	}
	return nil
}
