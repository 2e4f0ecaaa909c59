package verify

import "fmt"

// fixedTypeSizes gives the expected on-disk byte width of a fixed-width
// primitive type, used to cross-check both Simple property declared sizes
// and fixed-width array element totals. Declared independently of
// internal/proptree's own table so a bug in one table cannot mask the
// other's mistake.
var fixedTypeSizes = map[string]int{
	"IntProperty": 4, "UInt32Property": 4, "FloatProperty": 4,
	"DoubleProperty": 8, "Int64Property": 8, "UInt64Property": 8,
	"Int16Property": 2, "UInt16Property": 2, "ByteProperty": 1, "BoolProperty": 1,
}

func (w *walker) verifyStruct(name string, pos, depth int) int {
	if _, ok := readInt32(w.data, pos); !ok { // flag1
		return len(w.data)
	}
	pos += 4
	structName, pos, ok := readNTString(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4 // flag2
	if _, pos2, ok := readNTString(w.data, pos); ok {
		pos = pos2
	} else {
		return len(w.data)
	}
	pos += 4 // index
	dsz, ok2 := readInt32(w.data, pos)
	if !ok2 {
		return len(w.data)
	}
	pos += 4
	if pos >= len(w.data) {
		return len(w.data)
	}
	pos += 1 // tag

	expectedEnd := pos + int(dsz)
	w.log(depth, fmt.Sprintf("Struct %s (%s) declared_size=%d [%d..%d)", name, structName, dsz, pos, expectedEnd))
	if expectedEnd > len(w.data) {
		w.error(depth, fmt.Sprintf("%s (%s): size %d overflows file", name, structName, dsz))
		return min(expectedEnd, len(w.data))
	}
	w.verifyProperties(pos, expectedEnd, depth+1)
	return expectedEnd
}

func (w *walker) verifyArray(name string, pos, depth int) int {
	pos += 4 // flag
	childType, pos, ok := readNTString(w.data, pos)
	if !ok {
		return len(w.data)
	}
	if childType == "StructProperty" {
		pos += 4
		if _, p2, ok := readNTString(w.data, pos); ok {
			pos = p2
		} else {
			return len(w.data)
		}
		pos += 4
		if _, p2, ok := readNTString(w.data, pos); ok {
			pos = p2
		} else {
			return len(w.data)
		}
	}
	pos += 4 // index
	dsz, ok := readInt32(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4
	if pos >= len(w.data) {
		return len(w.data)
	}
	pos += 1 // tag
	length, ok := readInt32(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4

	elemDataSize := int(dsz) - 4
	expectedEnd := pos + elemDataSize
	w.log(depth, fmt.Sprintf("Array %s [%s] declared_size=%d length=%d", name, childType, dsz, length))
	if expectedEnd > len(w.data) {
		w.error(depth, fmt.Sprintf("%s: size %d overflows file", name, dsz))
		return min(expectedEnd, len(w.data))
	}
	if dsz < 4 {
		w.error(depth, fmt.Sprintf("%s: size %d < 4", name, dsz))
		return pos
	}

	if childType == "StructProperty" && length > 0 {
		ep := pos
		for i := int32(0); i < length; i++ {
			if i > 0 && ep+4 <= expectedEnd {
				if v, ok := readInt32(w.data, ep); ok && v == 0 {
					ep += 4
				}
			}
			ep = w.verifyProperties(ep, expectedEnd, depth+1)
			if ep > expectedEnd {
				w.error(depth, fmt.Sprintf("%s[%d]: overran array boundary", name, i))
				break
			}
		}
	} else if width, ok := fixedTypeSizes[childType]; ok && length > 0 {
		expectedBytes := int(length) * width
		if expectedBytes != elemDataSize {
			w.error(depth, fmt.Sprintf("%s: %d×%s = %d bytes, declared %d", name, length, childType, expectedBytes, elemDataSize))
		}
	}
	return expectedEnd
}

func (w *walker) verifyMap(name string, pos, depth int) int {
	pos += 4 // flag_k
	_, pos, ok := readNTString(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4 // flag_v
	valType, pos, ok := readNTString(w.data, pos)
	if !ok {
		return len(w.data)
	}
	keyType := "" // key type was consumed above but not retained; matches original's unused capture
	pos += 4       // index
	dsz, ok := readInt32(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4
	if pos >= len(w.data) {
		return len(w.data)
	}
	pos += 1 // tag

	expectedEnd := pos + int(dsz)
	w.log(depth, fmt.Sprintf("Map %s [%s->%s] size=%d", name, keyType, valType, dsz))
	if expectedEnd > len(w.data) {
		w.error(depth, fmt.Sprintf("%s: size %d overflows file", name, dsz))
		return min(expectedEnd, len(w.data))
	}
	return expectedEnd
}

func (w *walker) verifySet(name string, pos, depth int) int {
	pos += 4 // flag
	elemType, pos, ok := readNTString(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4 // index
	dsz, ok := readInt32(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4
	if pos >= len(w.data) {
		return len(w.data)
	}
	pos += 1 // tag

	expectedEnd := pos + int(dsz)
	w.log(depth, fmt.Sprintf("Set %s [%s] size=%d", name, elemType, dsz))
	if expectedEnd > len(w.data) {
		w.error(depth, fmt.Sprintf("%s: size %d overflows file", name, dsz))
		return min(expectedEnd, len(w.data))
	}
	return expectedEnd
}

func (w *walker) verifyBool(name string, pos, depth int) int {
	pos += 4 // index
	sz, ok := readInt32(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4
	if pos >= len(w.data) {
		return len(w.data)
	}
	val := w.data[pos]
	pos += 1
	if sz != 0 {
		w.error(depth, fmt.Sprintf("BoolProperty %s: size should be 0, got %d", name, sz))
	}
	w.log(depth, fmt.Sprintf("Bool %s = %d", name, val))
	return pos
}

func (w *walker) verifySimple(name, ptype string, pos, depth int) int {
	pos += 4 // index
	dsz, ok := readInt32(w.data, pos)
	if !ok {
		return len(w.data)
	}
	pos += 4
	if pos >= len(w.data) {
		return len(w.data)
	}
	tag := w.data[pos]
	pos += 1
	if tag != 0 {
		pos += 4 // extra
	}

	expectedEnd := pos + int(dsz)
	w.log(depth, fmt.Sprintf("%s %s size=%d", ptype, name, dsz))
	if dsz < 0 {
		w.error(depth, fmt.Sprintf("%s (%s): negative size %d", name, ptype, dsz))
		return pos
	}
	if expectedEnd > len(w.data) {
		w.error(depth, fmt.Sprintf("%s (%s): size %d overflows file", name, ptype, dsz))
		return min(expectedEnd, len(w.data))
	}
	if want, ok := fixedTypeSizes[ptype]; ok && ptype != "ByteProperty" && ptype != "BoolProperty" && int(dsz) != want {
		w.error(depth, fmt.Sprintf("%s (%s): expected size %d, got %d", name, ptype, want, dsz))
	}
	return expectedEnd
}
