package stream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadWriteRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteInt16(-5)
	w.WriteUint16(40000)
	w.WriteInt32(-123456)
	w.WriteUint32(4000000000)
	w.WriteInt64(-123456789012)
	w.WriteUint64(12345678901234)
	w.WriteFloat32(3.5)
	w.WriteFloat64(2.71828)
	w.WriteByte(0xAB) //nolint:errcheck
	w.WriteNTString("")
	w.WriteNTString("Hello")

	r := NewReader(w.Bytes())

	i16, err := r.ReadInt16()
	require.NoError(t, err)
	require.Equal(t, int16(-5), i16)

	u16, err := r.ReadUint16()
	require.NoError(t, err)
	require.Equal(t, uint16(40000), u16)

	i32, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-123456), i32)

	u32, err := r.ReadUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(4000000000), u32)

	i64, err := r.ReadInt64()
	require.NoError(t, err)
	require.Equal(t, int64(-123456789012), i64)

	u64, err := r.ReadUint64()
	require.NoError(t, err)
	require.Equal(t, uint64(12345678901234), u64)

	f32, err := r.ReadFloat32()
	require.NoError(t, err)
	require.Equal(t, float32(3.5), f32)

	f64, err := r.ReadFloat64()
	require.NoError(t, err)
	require.Equal(t, 2.71828, f64)

	b, err := r.ReadByte()
	require.NoError(t, err)
	require.Equal(t, byte(0xAB), b)

	s1, err := r.ReadNTString()
	require.NoError(t, err)
	require.Equal(t, "", s1)

	s2, err := r.ReadNTString()
	require.NoError(t, err)
	require.Equal(t, "Hello", s2)

	require.Equal(t, r.Tell(), r.Len())
}

func TestNTStringByteSize(t *testing.T) {
	require.Equal(t, 4, NTStringByteSize(""))
	require.Equal(t, 4+5+1, NTStringByteSize("Hello"))
}

func TestReadPastEndFails(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	_, err := r.ReadBytes(4)
	require.Error(t, err)
}

func TestReadNTStringLengthOverflowFails(t *testing.T) {
	w := NewWriter()
	w.WriteUint32(1000) // declared length far exceeds remaining bytes
	w.WriteBytes([]byte("short"))

	r := NewReader(w.Bytes())
	_, err := r.ReadNTString()
	require.Error(t, err)
}

func TestWriteNTStringRejectsNonASCII(t *testing.T) {
	w := NewWriter()
	err := w.WriteNTString("Stève")
	require.Error(t, err)
}

func TestValidateASCII(t *testing.T) {
	require.NoError(t, ValidateASCII("plain ascii"))
	require.Error(t, ValidateASCII("café"))
}

func TestSeekTell(t *testing.T) {
	r := NewReader(make([]byte, 16))
	r.Seek(8)
	require.Equal(t, int64(8), r.Tell())
	require.Equal(t, int64(8), r.Remaining())
}
