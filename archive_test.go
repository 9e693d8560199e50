package huffrz

import (
	"bytes"
	"errors"
	"testing"

	"github.com/seif/huffrz/huffman"
)

func mustCompress(t *testing.T, data []byte, opts ...Option) []byte {
	t.Helper()
	archive, err := Compress(data, opts...)
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	return archive
}

// checksumOffset locates the checksum field for an archive of data.
func checksumOffset(data []byte) int {
	// magic(4) + version(2) + flags(1) + symCount(8) + entryCount(2)
	// followed by 9 bytes per distinct symbol.
	return 17 + 9*huffman.Count(data).Distinct()
}

func TestArchiveReadBackFields(t *testing.T) {
	input := []byte("aabbbcccc")
	raw := mustCompress(t, input)

	a := &Archive{}
	n, err := a.ReadFrom(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if n != int64(len(raw)) {
		t.Errorf("ReadFrom consumed %d of %d bytes", n, len(raw))
	}
	if a.SymbolCount != uint64(len(input)) {
		t.Errorf("expected symbol count %d, got %d", len(input), a.SymbolCount)
	}
	if got := a.Freqs.Get('c'); got != 4 {
		t.Errorf("expected frequency 4 for 'c', got %d", got)
	}
	if !a.HasChecksum {
		t.Error("expected checksum flag set by default")
	}
	// 2*2 + 3*2 + 4*1 = 14 payload bits: two bytes, six trailing.
	if len(a.Payload) != 2 || a.TrailingBits != 6 {
		t.Errorf("expected 2 payload bytes with 6 trailing bits, got %d/%d",
			len(a.Payload), a.TrailingBits)
	}

	out, err := a.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Errorf("expected %q, got %q", input, out)
	}
}

func TestArchiveBadMagic(t *testing.T) {
	raw := mustCompress(t, []byte("hello"))
	raw[0] ^= 0xFF
	if _, err := Decompress(raw); !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("expected ErrCorruptArchive, got %v", err)
	}
}

func TestArchiveBadVersion(t *testing.T) {
	raw := mustCompress(t, []byte("hello"))
	raw[4] = 0xFF
	if _, err := Decompress(raw); !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("expected ErrCorruptArchive, got %v", err)
	}
}

func TestArchiveUnknownFlags(t *testing.T) {
	raw := mustCompress(t, []byte("hello"))
	raw[6] |= 0x80
	if _, err := Decompress(raw); !errors.Is(err, ErrCorruptArchive) {
		t.Errorf("expected ErrCorruptArchive, got %v", err)
	}
}

func TestArchiveTruncationNeverSucceeds(t *testing.T) {
	input := []byte("the quick brown fox jumps over the lazy dog")
	raw := mustCompress(t, input)

	for cut := 0; cut < len(raw); cut++ {
		if _, err := Decompress(raw[:cut]); err == nil {
			t.Errorf("truncation to %d of %d bytes decoded successfully", cut, len(raw))
		}
	}
}

func TestArchiveChecksumMismatch(t *testing.T) {
	input := []byte("hello hello hello")
	raw := mustCompress(t, input)

	raw[checksumOffset(input)] ^= 0x01
	if _, err := Decompress(raw); !errors.Is(err, ErrChecksumMismatch) {
		t.Errorf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestArchiveEmptyInputShape(t *testing.T) {
	raw := mustCompress(t, nil)

	a := &Archive{}
	if _, err := a.ReadFrom(bytes.NewReader(raw)); err != nil {
		t.Fatalf("ReadFrom failed: %v", err)
	}
	if a.SymbolCount != 0 || a.Freqs.Distinct() != 0 {
		t.Errorf("expected empty archive, got %d symbols, %d entries",
			a.SymbolCount, a.Freqs.Distinct())
	}
	if len(a.Payload) != 0 || a.TrailingBits != 0 {
		t.Errorf("expected no payload, got %d bytes with %d trailing bits",
			len(a.Payload), a.TrailingBits)
	}

	out, err := a.Decode()
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestArchiveValidateRejectsInconsistency(t *testing.T) {
	freqs := huffman.Count([]byte("aab"))

	tests := []struct {
		name    string
		archive Archive
	}{
		{"missing table", Archive{SymbolCount: 3}},
		{"wrong sum", Archive{SymbolCount: 5, Freqs: freqs, Payload: []byte{0xA0}, TrailingBits: 4}},
		{"missing payload", Archive{SymbolCount: 3, Freqs: freqs}},
		{"zero trailing", Archive{SymbolCount: 3, Freqs: freqs, Payload: []byte{0xA0}}},
		{"trailing out of range", Archive{SymbolCount: 3, Freqs: freqs, Payload: []byte{0xA0}, TrailingBits: 9}},
		{"too few payload bits", Archive{SymbolCount: 3, Freqs: freqs, Payload: []byte{0xA0}, TrailingBits: 2}},
		{"payload on empty input", Archive{Freqs: &huffman.FreqTable{}, Payload: []byte{0xA0}, TrailingBits: 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if _, err := tt.archive.WriteTo(&buf); !errors.Is(err, ErrCorruptArchive) {
				t.Errorf("expected ErrCorruptArchive, got %v", err)
			}
		})
	}
}
