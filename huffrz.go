// Package huffrz compresses byte streams with a Huffman prefix code into
// self-describing .rz archives and restores them exactly.
//
// An archive carries the frequency table of the original input, so the
// decoder rebuilds the identical coding tree (same deterministic
// tie-break) and walks it bit by bit over the packed payload.
package huffrz

import (
	"bytes"
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/seif/huffrz/bitstream"
	"github.com/seif/huffrz/huffman"
)

// Config holds configuration for compression.
type Config struct {
	NoChecksum bool // omit the xxhash64 integrity check from archives
}

// Option is a functional option for configuring compression.
type Option func(*Config)

// WithoutChecksum drops the payload checksum from produced archives,
// saving eight header bytes at the cost of weaker corruption detection.
func WithoutChecksum() Option {
	return func(c *Config) {
		c.NoChecksum = true
	}
}

// Compress encodes data into a .rz archive. Empty input yields a valid
// archive that decompresses to empty output.
func Compress(data []byte, opts ...Option) ([]byte, error) {
	a, err := NewArchive(data, opts...)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := a.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewArchive builds the in-memory archive for data without serializing it.
func NewArchive(data []byte, opts ...Option) (*Archive, error) {
	var cfg Config
	for _, opt := range opts {
		opt(&cfg)
	}

	a := &Archive{
		SymbolCount: uint64(len(data)),
		Freqs:       huffman.Count(data),
	}
	if !cfg.NoChecksum {
		a.HasChecksum = true
		a.Checksum = xxhash.Sum64(data)
	}
	if len(data) == 0 {
		return a, nil
	}

	root, err := huffman.Build(a.Freqs)
	if err != nil {
		return nil, err
	}
	codes, err := huffman.DeriveCodes(root)
	if err != nil {
		return nil, err
	}

	w := bitstream.NewWriter()
	if err := huffman.Encode(data, codes, w); err != nil {
		return nil, err
	}
	payload, trailing, err := w.Finish()
	if err != nil {
		return nil, err
	}
	a.Payload = payload
	a.TrailingBits = trailing
	return a, nil
}

// Decompress parses an archive produced by Compress and restores the
// original bytes exactly. Corrupted or truncated input is rejected,
// never silently decoded into wrong output.
func Decompress(data []byte) ([]byte, error) {
	a := &Archive{}
	if _, err := a.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return a.Decode()
}

// Decode recovers the original input from a parsed archive.
func (a *Archive) Decode() ([]byte, error) {
	if err := a.validate(); err != nil {
		return nil, err
	}

	if a.SymbolCount == 0 {
		if a.HasChecksum && a.Checksum != xxhash.Sum64(nil) {
			return nil, ErrChecksumMismatch
		}
		return []byte{}, nil
	}

	root, err := huffman.Build(a.Freqs)
	if err != nil {
		return nil, err
	}
	r, err := bitstream.NewReader(a.Payload, a.TrailingBits)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	out, err := huffman.Decode(root, r, a.SymbolCount)
	if err != nil {
		return nil, err
	}
	if left := r.Remaining(); left != 0 {
		return nil, corruptf("%d payload bits left after %d symbols", left, a.SymbolCount)
	}
	if a.HasChecksum && a.Checksum != xxhash.Sum64(out) {
		return nil, ErrChecksumMismatch
	}
	return out, nil
}
