package common

import (
	"encoding/binary"
	"io"
)

// Reader provides marker-aware reading over raw JPEG byte data.
type Reader struct {
	r   io.Reader
	buf [2]byte
}

// NewReader wraps r for marker and segment reading.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	_, err := io.ReadFull(r.r, r.buf[:1])
	if err != nil {
		return 0, err
	}
	return r.buf[0], nil
}

// ReadUint16 reads a 16-bit big-endian value.
func (r *Reader) ReadUint16() (uint16, error) {
	_, err := io.ReadFull(r.r, r.buf[:2])
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(r.buf[:2]), nil
}

// ReadMarker reads the next marker, skipping any 0xFF padding bytes and
// rejecting a stuffed 0x00 (an escaped 0xFF inside entropy-coded data).
func (r *Reader) ReadMarker() (uint16, error) {
	b, err := r.ReadByte()
	if err != nil {
		return 0, err
	}
	if b != 0xFF {
		return 0, ErrInvalidMarker
	}

	for {
		b, err = r.ReadByte()
		if err != nil {
			return 0, err
		}
		if b != 0xFF {
			break
		}
	}

	if b == 0x00 {
		return 0, ErrInvalidMarker
	}

	return uint16(0xFF00) | uint16(b), nil
}

// ReadSegment reads a length-prefixed segment and returns its payload
// (the two length bytes are consumed but not included).
func (r *Reader) ReadSegment() ([]byte, error) {
	length, err := r.ReadUint16()
	if err != nil {
		return nil, err
	}
	if length < 2 {
		return nil, ErrInvalidData
	}

	data := make([]byte, length-2)
	if _, err := io.ReadFull(r.r, data); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadFull reads exactly len(buf) bytes into buf.
func (r *Reader) ReadFull(buf []byte) error {
	_, err := io.ReadFull(r.r, buf)
	return err
}

// Skip discards n bytes.
func (r *Reader) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	_, err := io.CopyN(io.Discard, r.r, int64(n))
	return err
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.r.Read(p)
}
