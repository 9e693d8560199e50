// Package bitstream packs and unpacks MSB-first bit sequences into byte
// buffers, tracking how many bits of the final byte are meaningful.
package bitstream

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/icza/bitio"
)

// ErrExhausted is returned when a read goes past the meaningful bits of
// the payload. Padding bits are never served as data.
var ErrExhausted = errors.New("bitstream: exhausted")

// Writer appends bit sequences to an in-memory buffer. The zero-padded
// final byte and its meaningful-bit count are produced by Finish.
type Writer struct {
	buf  bytes.Buffer
	bw   *bitio.Writer
	bits uint64
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	w := &Writer{}
	w.bw = bitio.NewWriter(&w.buf)
	return w
}

// WriteCode appends the low n bits of code, most significant first.
func (w *Writer) WriteCode(code uint64, n uint8) error {
	if n == 0 || n > 64 {
		return fmt.Errorf("bitstream: code length out of range: %d", n)
	}
	if err := w.bw.WriteBits(code, n); err != nil {
		return err
	}
	w.bits += uint64(n)
	return nil
}

// BitCount reports the number of bits written so far.
func (w *Writer) BitCount() uint64 { return w.bits }

// Finish flushes the partial final byte, zero-padded on the low side,
// and reports how many bits of that byte are meaningful (1..8, or 0 for
// an empty stream). The Writer must not be used afterwards.
func (w *Writer) Finish() (data []byte, trailing uint8, err error) {
	if err := w.bw.Close(); err != nil {
		return nil, 0, err
	}
	trailing = uint8(w.bits % 8)
	if trailing == 0 && w.bits > 0 {
		trailing = 8
	}
	return w.buf.Bytes(), trailing, nil
}

// Reader yields the meaningful bits of a packed payload one at a time.
type Reader struct {
	br        *bitio.Reader
	remaining uint64
}

// NewReader wraps data whose final byte holds trailing meaningful bits.
// trailing must be 0 for an empty payload and 1..8 otherwise.
func NewReader(data []byte, trailing uint8) (*Reader, error) {
	if trailing > 8 {
		return nil, fmt.Errorf("bitstream: trailing bit count out of range: %d", trailing)
	}
	if len(data) == 0 {
		if trailing != 0 {
			return nil, fmt.Errorf("bitstream: trailing bit count %d with empty payload", trailing)
		}
		return &Reader{br: bitio.NewReader(bytes.NewReader(nil))}, nil
	}
	if trailing == 0 {
		return nil, fmt.Errorf("bitstream: trailing bit count 0 with %d payload bytes", len(data))
	}
	return &Reader{
		br:        bitio.NewReader(bytes.NewReader(data)),
		remaining: uint64(len(data)-1)*8 + uint64(trailing),
	}, nil
}

// ReadBit returns the next meaningful bit, or ErrExhausted once all
// meaningful bits have been consumed.
func (r *Reader) ReadBit() (bool, error) {
	if r.remaining == 0 {
		return false, ErrExhausted
	}
	bit, err := r.br.ReadBool()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrExhausted, err)
	}
	r.remaining--
	return bit, nil
}

// Remaining reports how many meaningful bits are left unread.
func (r *Reader) Remaining() uint64 { return r.remaining }
