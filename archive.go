package huffrz

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/seif/huffrz/huffman"
)

const (
	archiveVersion = uint16(1)

	flagChecksum = uint8(1 << 0)

	maxPayloadBytes = 1 << 30 // 1 GiB
)

var archiveMagic = [4]byte{'R', 'Z', 'A', 'R'}

var (
	// ErrCorruptArchive indicates an archive that cannot be parsed or
	// whose fields are inconsistent with each other.
	ErrCorruptArchive = errors.New("huffrz: corrupt archive")

	// ErrChecksumMismatch indicates a payload that decoded cleanly but
	// does not hash to the checksum recorded at compression time.
	ErrChecksumMismatch = errors.New("huffrz: checksum mismatch")
)

// Archive is the persisted form of one compressed input: the frequency
// table needed to rebuild the coding tree, the original symbol count,
// and the bit-packed payload with its trailing-bit count.
//
// Wire format (little-endian):
//
//	magic      [4]byte  "RZAR"
//	version    uint16
//	flags      uint8    bit 0: checksum present
//	symCount   uint64   original input length in symbols
//	entryCount uint16   distinct symbols (0 iff symCount is 0)
//	entries    entryCount x { sym uint8, count uint64 }  ascending sym
//	checksum   uint64   xxhash64 of the original input, if flagged
//	trailing   uint8    meaningful bits in the final payload byte
//	payloadLen uint32
//	payload    payloadLen bytes
type Archive struct {
	SymbolCount  uint64
	Freqs        *huffman.FreqTable
	HasChecksum  bool
	Checksum     uint64
	TrailingBits uint8
	Payload      []byte
}

func corruptf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorruptArchive, fmt.Sprintf(format, args...))
}

// validate checks the structural invariants every archive must hold,
// whether freshly encoded or parsed from untrusted bytes.
func (a *Archive) validate() error {
	if a.Freqs == nil {
		return corruptf("missing frequency table")
	}
	if a.Freqs.Total() != a.SymbolCount {
		return corruptf("frequency sum %d does not match symbol count %d", a.Freqs.Total(), a.SymbolCount)
	}
	if len(a.Payload) > maxPayloadBytes {
		return corruptf("payload too large: %d bytes", len(a.Payload))
	}
	if a.TrailingBits > 8 {
		return corruptf("trailing bit count out of range: %d", a.TrailingBits)
	}

	if a.SymbolCount == 0 {
		if len(a.Payload) != 0 || a.TrailingBits != 0 {
			return corruptf("empty input with non-empty payload")
		}
		return nil
	}

	if len(a.Payload) == 0 {
		return corruptf("missing payload for %d symbols", a.SymbolCount)
	}
	if a.TrailingBits == 0 {
		return corruptf("trailing bit count 0 with non-empty payload")
	}
	// Every symbol occupies at least one bit, so the payload bounds the
	// symbol count a decoder can be asked to emit.
	bits := uint64(len(a.Payload)-1)*8 + uint64(a.TrailingBits)
	if bits < a.SymbolCount {
		return corruptf("payload holds %d bits for %d symbols", bits, a.SymbolCount)
	}
	return nil
}

// WriteTo serializes the archive in the wire format above.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	if err := a.validate(); err != nil {
		return 0, err
	}

	var total int64
	put := func(v interface{}) error {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
		total += int64(binary.Size(v))
		return nil
	}

	flags := uint8(0)
	if a.HasChecksum {
		flags |= flagChecksum
	}

	syms := a.Freqs.Symbols()
	header := []interface{}{archiveMagic, archiveVersion, flags, a.SymbolCount, uint16(len(syms))}
	for _, v := range header {
		if err := put(v); err != nil {
			return total, err
		}
	}
	for _, sym := range syms {
		if err := put(sym); err != nil {
			return total, err
		}
		if err := put(a.Freqs.Get(sym)); err != nil {
			return total, err
		}
	}
	if a.HasChecksum {
		if err := put(a.Checksum); err != nil {
			return total, err
		}
	}
	if err := put(a.TrailingBits); err != nil {
		return total, err
	}
	if err := put(uint32(len(a.Payload))); err != nil {
		return total, err
	}

	n, err := w.Write(a.Payload)
	total += int64(n)
	if err != nil {
		return total, err
	}
	if n != len(a.Payload) {
		return total, io.ErrShortWrite
	}
	return total, nil
}

// ReadFrom parses an archive from r, validating every field. Partial or
// inconsistent input is reported as ErrCorruptArchive.
func (a *Archive) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	get := func(v interface{}, what string) error {
		if err := binary.Read(r, binary.LittleEndian, v); err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return corruptf("reading %s: %v", what, err)
		}
		total += int64(binary.Size(v))
		return nil
	}

	var magic [4]byte
	if err := get(&magic, "magic"); err != nil {
		return total, err
	}
	if magic != archiveMagic {
		return total, corruptf("bad magic %q", magic[:])
	}

	var version uint16
	if err := get(&version, "version"); err != nil {
		return total, err
	}
	if version != archiveVersion {
		return total, corruptf("unsupported version %d", version)
	}

	var flags uint8
	if err := get(&flags, "flags"); err != nil {
		return total, err
	}
	if flags&^flagChecksum != 0 {
		return total, corruptf("unknown flags 0x%02x", flags)
	}

	var symCount uint64
	if err := get(&symCount, "symbol count"); err != nil {
		return total, err
	}

	var entryCount uint16
	if err := get(&entryCount, "entry count"); err != nil {
		return total, err
	}
	if entryCount > 256 {
		return total, corruptf("entry count out of range: %d", entryCount)
	}

	freqs := &huffman.FreqTable{}
	prev := -1
	for i := 0; i < int(entryCount); i++ {
		var sym uint8
		var count uint64
		if err := get(&sym, "entry symbol"); err != nil {
			return total, err
		}
		if err := get(&count, "entry frequency"); err != nil {
			return total, err
		}
		if int(sym) <= prev {
			return total, corruptf("frequency entries out of order at symbol 0x%02x", sym)
		}
		if count == 0 {
			return total, corruptf("zero frequency for symbol 0x%02x", sym)
		}
		prev = int(sym)
		freqs.Add(sym, count)
	}

	var checksum uint64
	hasChecksum := flags&flagChecksum != 0
	if hasChecksum {
		if err := get(&checksum, "checksum"); err != nil {
			return total, err
		}
	}

	var trailing uint8
	if err := get(&trailing, "trailing bit count"); err != nil {
		return total, err
	}

	var payloadLen uint32
	if err := get(&payloadLen, "payload length"); err != nil {
		return total, err
	}
	if payloadLen > maxPayloadBytes {
		return total, corruptf("payload too large: %d bytes", payloadLen)
	}

	payload := make([]byte, payloadLen)
	n, err := io.ReadFull(r, payload)
	total += int64(n)
	if err != nil {
		return total, corruptf("reading payload: %v", err)
	}

	a.SymbolCount = symCount
	a.Freqs = freqs
	a.HasChecksum = hasChecksum
	a.Checksum = checksum
	a.TrailingBits = trailing
	a.Payload = payload
	return total, a.validate()
}
