package huffman

// FreqTable counts occurrences of each byte symbol in an input. The zero
// value is an empty table ready for use.
type FreqTable struct {
	counts   [256]uint64
	total    uint64
	distinct int
}

// Count builds a frequency table from data in a single pass.
func Count(data []byte) *FreqTable {
	t := &FreqTable{}
	for _, b := range data {
		t.Add(b, 1)
	}
	return t
}

// Add raises the count of sym by n.
func (t *FreqTable) Add(sym byte, n uint64) {
	if n == 0 {
		return
	}
	if t.counts[sym] == 0 {
		t.distinct++
	}
	t.counts[sym] += n
	t.total += n
}

// Get returns the count recorded for sym, zero if absent.
func (t *FreqTable) Get(sym byte) uint64 { return t.counts[sym] }

// Total is the sum of all counts, equal to the length of the counted input.
func (t *FreqTable) Total() uint64 { return t.total }

// Distinct is the number of symbols with a non-zero count.
func (t *FreqTable) Distinct() int { return t.distinct }

// Symbols returns the symbols with non-zero counts in ascending order.
func (t *FreqTable) Symbols() []byte {
	syms := make([]byte, 0, t.distinct)
	for i := 0; i < 256; i++ {
		if t.counts[i] > 0 {
			syms = append(syms, byte(i))
		}
	}
	return syms
}
