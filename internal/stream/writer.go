package stream

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer is an append-only little-endian byte buffer builder.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// NewWriterSize returns an empty Writer with pre-reserved capacity.
func NewWriterSize(capacity int) *Writer {
	return &Writer{buf: make([]byte, 0, capacity)}
}

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// WriteByte appends a single byte. Satisfies io.ByteWriter.
func (w *Writer) WriteByte(b byte) error {
	w.buf = append(w.buf, b)
	return nil
}

// WriteZeros appends n zero bytes.
func (w *Writer) WriteZeros(n int) {
	for i := 0; i < n; i++ {
		w.buf = append(w.buf, 0)
	}
}

// WriteInt16 appends a little-endian signed 16-bit integer.
func (w *Writer) WriteInt16(v int16) { w.WriteUint16(uint16(v)) }

// WriteUint16 appends a little-endian unsigned 16-bit integer.
func (w *Writer) WriteUint16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt32 appends a little-endian signed 32-bit integer.
func (w *Writer) WriteInt32(v int32) { w.WriteUint32(uint32(v)) }

// WriteUint32 appends a little-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteInt64 appends a little-endian signed 64-bit integer.
func (w *Writer) WriteInt64(v int64) { w.WriteUint64(uint64(v)) }

// WriteUint64 appends a little-endian unsigned 64-bit integer.
func (w *Writer) WriteUint64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

// WriteFloat32 appends a little-endian IEEE-754 single-precision float.
func (w *Writer) WriteFloat32(v float32) { w.WriteUint32(math.Float32bits(v)) }

// WriteFloat64 appends a little-endian IEEE-754 double-precision float.
func (w *Writer) WriteFloat64(v float64) { w.WriteUint64(math.Float64bits(v)) }

// WriteNTString appends a length-prefixed (u32), null-terminated string.
// An empty string writes only a zero length. The format's NT-strings are
// ASCII only: WriteNTString rejects any string containing a non-ASCII
// rune rather than silently passing it through as multi-byte UTF-8 or
// truncating it, since either would desync the declared length from what
// a reader expecting ASCII would reconstruct.
func (w *Writer) WriteNTString(s string) error {
	if s == "" {
		w.WriteUint32(0)
		return nil
	}
	if err := ValidateASCII(s); err != nil {
		return err
	}
	enc := []byte(s)
	w.WriteUint32(uint32(len(enc) + 1))
	w.WriteBytes(enc)
	w.buf = append(w.buf, 0)
	return nil
}

// ValidateASCII reports an error if s contains any byte outside the
// 7-bit ASCII range. Callers that need to fail before writing anything
// (rather than mid-write) can call this ahead of WriteNTString.
func ValidateASCII(s string) error {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return fmt.Errorf("non-ASCII byte 0x%02x in NT-string %q", s[i], s)
		}
	}
	return nil
}

// NTStringByteSize returns the number of bytes s occupies when written as
// an NT-string: 4 for empty, else 4 + len(s) + 1.
func NTStringByteSize(s string) int {
	if s == "" {
		return 4
	}
	return 4 + len(s) + 1
}
