package huffman

import (
	"errors"
	"testing"
)

// isPrefix reports whether a is a prefix of b.
func isPrefix(a, b Code) bool {
	if a.Len > b.Len {
		return false
	}
	return b.Bits>>(b.Len-a.Len) == a.Bits
}

func TestPrefixProperty(t *testing.T) {
	inputs := []string{
		"aabbbcccc",
		"the quick brown fox jumps over the lazy dog",
		"mississippi",
		"abcdefghijklmnopqrstuvwxyz",
		"aaaaaaaaab",
		"\x00\x01\x02\xfe\xff\xff\xff",
	}

	for _, input := range inputs {
		codes := mustCodes(t, input)

		var assigned []struct {
			sym  byte
			code Code
		}
		for sym := 0; sym < 256; sym++ {
			if code, ok := codes.Code(byte(sym)); ok {
				assigned = append(assigned, struct {
					sym  byte
					code Code
				}{byte(sym), code})
			}
		}

		for i := 0; i < len(assigned); i++ {
			for j := 0; j < len(assigned); j++ {
				if i == j {
					continue
				}
				if isPrefix(assigned[i].code, assigned[j].code) {
					t.Errorf("input %q: code of 0x%02x is a prefix of code of 0x%02x",
						input, assigned[i].sym, assigned[j].sym)
				}
			}
		}
	}
}

func TestCodeLookupMissing(t *testing.T) {
	codes := mustCodes(t, "aaa")
	if _, ok := codes.Code('z'); ok {
		t.Error("expected no code for symbol absent from the input")
	}
}

func TestDeriveCodesNilRoot(t *testing.T) {
	if _, err := DeriveCodes(nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("expected ErrEmptyTable, got %v", err)
	}
}

func TestDeriveCodesTooDeep(t *testing.T) {
	// A degenerate left-leaning chain 70 internal nodes tall.
	leaf := &Node{Sym: 'x', Freq: 1}
	root := leaf
	for i := 0; i < 70; i++ {
		root = &Node{Freq: root.Freq + 1, Left: root, Right: &Node{Sym: byte(i), Freq: 1}}
	}
	if _, err := DeriveCodes(root); !errors.Is(err, ErrCodeTooLong) {
		t.Errorf("expected ErrCodeTooLong, got %v", err)
	}
}

func TestFreqTableInvariants(t *testing.T) {
	input := []byte("abracadabra")
	table := Count(input)

	if table.Total() != uint64(len(input)) {
		t.Errorf("expected total %d, got %d", len(input), table.Total())
	}
	if got := table.Distinct(); got != 5 {
		t.Errorf("expected 5 distinct symbols, got %d", got)
	}
	if got := table.Get('a'); got != 5 {
		t.Errorf("expected count 5 for 'a', got %d", got)
	}
	if got := table.Get('z'); got != 0 {
		t.Errorf("expected count 0 for 'z', got %d", got)
	}

	syms := table.Symbols()
	want := []byte{'a', 'b', 'c', 'd', 'r'}
	if len(syms) != len(want) {
		t.Fatalf("expected symbols %q, got %q", want, syms)
	}
	for i := range want {
		if syms[i] != want[i] {
			t.Errorf("symbol %d: expected %q, got %q", i, want[i], syms[i])
		}
	}
}
