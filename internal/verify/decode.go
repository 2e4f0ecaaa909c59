package verify

import "encoding/binary"

func readInt32(data []byte, pos int) (int32, bool) {
	if pos+4 > len(data) {
		return 0, false
	}
	return int32(binary.LittleEndian.Uint32(data[pos : pos+4])), true
}

// readNTString mirrors stream.Reader.ReadNTString's shape but operates
// directly on a byte slice and offset, independent of internal/stream.
func readNTString(data []byte, pos int) (string, int, bool) {
	if pos+4 > len(data) {
		return "", pos, false
	}
	length, _ := readInt32(data, pos)
	pos += 4
	if length == 0 {
		return "", pos, true
	}
	if length < 0 || pos+int(length) > len(data) {
		return "", pos, false
	}
	s := decodeASCIIReplace(data[pos : pos+int(length)-1])
	pos += int(length)
	return s, pos, true
}

func decodeASCIIReplace(b []byte) string {
	out := make([]rune, len(b))
	for i, c := range b {
		if c < 0x80 {
			out[i] = rune(c)
		} else {
			out[i] = 0xFFFD
		}
	}
	return string(out)
}

// recognizedPropertyTypes mirrors original_source's own name validation,
// so an unreadable or garbage type string stops the walk at this property
// rather than being misinterpreted as the generic Simple shape.
var recognizedPropertyTypes = map[string]bool{
	"StructProperty": true, "ArrayProperty": true, "MapProperty": true,
	"SetProperty": true, "BoolProperty": true, "IntProperty": true,
	"UInt32Property": true, "FloatProperty": true, "DoubleProperty": true,
	"Int64Property": true, "UInt64Property": true, "Int16Property": true,
	"UInt16Property": true, "ByteProperty": true, "StrProperty": true,
	"NameProperty": true, "ObjectProperty": true, "SoftObjectProperty": true,
}

// readPair reads a (name, type) pair the same way the primary parser does,
// with one extra guard the primary parser doesn't need: a name longer than
// 200 bytes, containing non-printable-ASCII characters, or paired with an
// unrecognized type string is treated as "not a property" rather than
// something to blindly trust, since this walker has no tree to fall back
// on if it misreads the shape.
func readPair(data []byte, pos, end int) (name, propType string, newPos int, ok bool) {
	if pos+4 > end {
		return "", "", pos, false
	}
	n, p, rok := readNTString(data, pos)
	if !rok {
		return "", "", pos, false
	}
	if n == "None" {
		return n, "", p, true
	}
	if len(n) > 200 || !isPrintableASCII(n) {
		return "", "", pos, false
	}
	if p+4 > end {
		return "", "", pos, false
	}
	t, p2, rok := readNTString(data, p)
	if !rok || !recognizedPropertyTypes[t] {
		return "", "", pos, false
	}
	return n, t, p2, true
}

func isPrintableASCII(s string) bool {
	for _, c := range s {
		if c < 32 || c >= 127 {
			return false
		}
	}
	return true
}
