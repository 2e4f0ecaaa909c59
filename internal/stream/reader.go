// Package stream provides a little-endian reader/writer over an in-memory
// byte buffer, plus the length-prefixed null-terminated string encoding
// used throughout the property codec.
package stream

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/ark-tools/arkprofile/internal/utils"
)

// Reader is a random-access, bounds-checked cursor over a byte slice.
type Reader struct {
	data []byte
	pos  int
}

// NewReader wraps data for sequential, seekable reads. The slice is not
// copied; callers must not mutate it while the Reader is in use.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Tell returns the current read offset.
func (r *Reader) Tell() int64 { return int64(r.pos) }

// Seek repositions the cursor to an absolute offset. It does not validate
// the offset against the buffer length; the next read will fail if it does.
func (r *Reader) Seek(offset int64) { r.pos = int(offset) }

// Len returns the total number of bytes in the underlying buffer.
func (r *Reader) Len() int64 { return int64(len(r.data)) }

// Remaining returns the number of unread bytes from the current position.
func (r *Reader) Remaining() int64 { return int64(len(r.data) - r.pos) }

func (r *Reader) require(n int) error {
	if r.pos < 0 || n < 0 || r.pos+n > len(r.data) {
		have := len(r.data) - r.pos
		return utils.WrapOffset("read past end of buffer", int64(r.pos),
			fmt.Errorf("need %d bytes, have %d", n, have))
	}
	return nil
}

// ReadBytes reads n raw bytes. The returned slice aliases the Reader's
// backing array and must be copied by the caller before the buffer is
// reused or mutated.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if err := r.require(n); err != nil {
		return nil, err
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadByte reads a single byte.
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// ReadInt16 reads a little-endian signed 16-bit integer.
func (r *Reader) ReadInt16() (int16, error) {
	v, err := r.ReadUint16()
	return int16(v), err
}

// ReadUint16 reads a little-endian unsigned 16-bit integer.
func (r *Reader) ReadUint16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadInt32 reads a little-endian signed 32-bit integer.
func (r *Reader) ReadInt32() (int32, error) {
	v, err := r.ReadUint32()
	return int32(v), err
}

// ReadUint32 reads a little-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadInt64 reads a little-endian signed 64-bit integer.
func (r *Reader) ReadInt64() (int64, error) {
	v, err := r.ReadUint64()
	return int64(v), err
}

// ReadUint64 reads a little-endian unsigned 64-bit integer.
func (r *Reader) ReadUint64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadFloat32 reads a little-endian IEEE-754 single-precision float.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.ReadUint32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// ReadFloat64 reads a little-endian IEEE-754 double-precision float.
func (r *Reader) ReadFloat64() (float64, error) {
	v, err := r.ReadUint64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(v), nil
}

// ReadNTString reads a length-prefixed (u32), null-terminated string. A
// zero length yields "". Bytes outside 7-bit ASCII are replaced with
// the Unicode replacement rune, mirroring the source tool's
// decode(errors='replace') behavior.
func (r *Reader) ReadNTString() (string, error) {
	length, err := r.ReadUint32()
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", nil
	}
	if int64(length) > r.Remaining()+1 {
		return "", utils.WrapOffset("NT-string length exceeds remaining bytes", r.Tell(),
			fmt.Errorf("declared length %d", length))
	}
	raw, err := r.ReadBytes(int(length) - 1)
	if err != nil {
		return "", err
	}
	if _, err := r.ReadByte(); err != nil { // null terminator
		return "", err
	}
	return decodeASCIIReplace(raw), nil
}

func decodeASCIIReplace(b []byte) string {
	out := make([]rune, len(b))
	for i, c := range b {
		if c < 0x80 {
			out[i] = rune(c)
		} else {
			out[i] = utf8.RuneError
		}
	}
	return string(out)
}
