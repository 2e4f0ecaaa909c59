package proptree

import (
	"encoding/binary"
	"fmt"

	"github.com/ark-tools/arkprofile/internal/stream"
)

// ParseSet reads a sequence of tagged properties from r until a "None"
// terminator is read or endOffset is reached (endOffset == -1 means
// read until "None" only, used at the top level). A property that fails
// to parse stops the walk and seeks r to endOffset when one is known, so
// the caller's own bookkeeping (sizes, parent cursors) stays consistent —
// mirroring parse_asa_properties' own graceful-stop behavior.
func ParseSet(r *stream.Reader, endOffset int64) *Set {
	set := NewSet()
	for {
		if endOffset >= 0 && r.Tell() >= endOffset {
			return set
		}
		name, propType, ok := readPair(r)
		if !ok {
			if endOffset >= 0 {
				r.Seek(endOffset)
			}
			return set
		}
		if name == "None" {
			return set
		}

		entry, err := parseEntry(r, propType)
		if err != nil {
			if endOffset >= 0 {
				r.Seek(endOffset)
			}
			return set
		}
		set.Add(name, entry)
	}
}

// readPair reads a (name, type) pair. When name == "None" the type string
// is not present and is not read, matching the wire format's terminator
// shape.
func readPair(r *stream.Reader) (name string, propType string, ok bool) {
	n, err := r.ReadNTString()
	if err != nil {
		return "", "", false
	}
	if n == "None" {
		return n, "", true
	}
	t, err := r.ReadNTString()
	if err != nil {
		return "", "", false
	}
	return n, t, true
}

func parseEntry(r *stream.Reader, propType string) (Entry, error) {
	switch propType {
	case "StructProperty":
		return parseStruct(r)
	case "ArrayProperty":
		return parseArray(r)
	case "MapProperty":
		return parseMap(r)
	case "SetProperty":
		return parseSetProp(r)
	case "BoolProperty":
		return parseBool(r)
	default:
		return parseSimple(r, propType)
	}
}

func parseStruct(r *stream.Reader) (*StructEntry, error) {
	if _, err := r.ReadInt32(); err != nil { // flag1
		return nil, err
	}
	structName, err := r.ReadNTString()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadInt32(); err != nil { // flag2
		return nil, err
	}
	pkg, err := r.ReadNTString()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	dataStart := r.Tell()
	expectedEnd := dataStart + int64(size)
	inner := ParseSet(r, expectedEnd)

	e := &StructEntry{
		Index:      index,
		Tag:        tag,
		StructName: structName,
		Package:    pkg,
		Size:       size,
	}

	if inner.Len() == 0 && size > 0 {
		r.Seek(dataStart)
		raw, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		e.Raw = append([]byte(nil), raw...)
	} else {
		e.Data = inner
	}

	if r.Tell() != expectedEnd {
		r.Seek(expectedEnd)
	}
	return e, nil
}

func parseArray(r *stream.Reader) (*ArrayEntry, error) {
	if _, err := r.ReadInt32(); err != nil { // flag
		return nil, err
	}
	childType, err := r.ReadNTString()
	if err != nil {
		return nil, err
	}
	var structName, pkg string
	if childType == "StructProperty" {
		if _, err := r.ReadInt32(); err != nil {
			return nil, err
		}
		if structName, err = r.ReadNTString(); err != nil {
			return nil, err
		}
		if _, err := r.ReadInt32(); err != nil {
			return nil, err
		}
		if pkg, err = r.ReadNTString(); err != nil {
			return nil, err
		}
	}
	index, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}

	dataStart := r.Tell()
	dataEnd := dataStart + int64(size) - 4 // size includes the length int32

	e := &ArrayEntry{
		Index:      index,
		Tag:        tag,
		ChildType:  childType,
		StructName: structName,
		Package:    pkg,
		Size:       size,
		Length:     length,
	}

	if err := readArrayElements(r, e, dataEnd); err != nil {
		return nil, err
	}
	if r.Tell() != dataEnd {
		r.Seek(dataEnd)
	}
	return e, nil
}

func readArrayElements(r *stream.Reader, e *ArrayEntry, dataEnd int64) error {
	if e.Length == 0 {
		return nil
	}

	if e.ChildType == "StructProperty" {
		var hasSep *bool
		structs := make([]*Set, 0, e.Length)
		for i := int32(0); i < e.Length; i++ {
			if i > 0 {
				peekPos := r.Tell()
				peekVal, err := r.ReadInt32()
				if err != nil {
					break
				}
				switch {
				case hasSep == nil:
					v := peekVal == 0
					hasSep = &v
					if !v {
						r.Seek(peekPos)
					}
				case *hasSep:
					// already consumed the zero separator
				default:
					r.Seek(peekPos)
				}
			}
			structs = append(structs, ParseSet(r, dataEnd))
		}
		if hasSep != nil {
			e.HasSeparator = *hasSep
		}
		e.Structs = structs
		return nil
	}

	if width, ok := fixedWidths[e.ChildType]; ok {
		values := make([]any, 0, e.Length)
		for i := int32(0); i < e.Length; i++ {
			v, err := readFixedWidth(r, e.ChildType, width)
			if err != nil {
				return nil // short read: leave the array with no decoded elements; parseArray seeks to dataEnd
			}
			values = append(values, v)
		}
		e.Values = values
		return nil
	}

	if e.ChildType == "StrProperty" || e.ChildType == "NameProperty" {
		values := make([]any, 0, e.Length)
		for i := int32(0); i < e.Length; i++ {
			s, err := r.ReadNTString()
			if err != nil {
				return nil
			}
			values = append(values, s)
		}
		e.Values = values
		return nil
	}

	if e.ChildType == "ObjectProperty" {
		values := make([]any, 0, e.Length)
		for i := int32(0); i < e.Length; i++ {
			if _, err := r.ReadInt32(); err != nil { // prefix, always 1
				return nil
			}
			s, err := r.ReadNTString()
			if err != nil {
				return nil
			}
			values = append(values, s)
		}
		e.Values = values
		return nil
	}

	if e.ChildType == "SoftObjectProperty" {
		values := make([]any, 0, e.Length)
		for i := int32(0); i < e.Length; i++ {
			sp, err := readSoftObjectPath(r)
			if err != nil {
				break
			}
			values = append(values, sp)
		}
		if int64(len(values)) < int64(e.Length) {
			r.Seek(dataEnd)
		}
		e.Values = values
		return nil
	}

	remaining := dataEnd - r.Tell()
	if remaining > 0 {
		raw, err := r.ReadBytes(int(remaining))
		if err != nil {
			return err
		}
		e.Opaque = append([]byte(nil), raw...)
	}
	return nil
}

func readFixedWidth(r *stream.Reader, childType string, width int) (any, error) {
	switch childType {
	case "IntProperty":
		return r.ReadInt32()
	case "UInt32Property":
		return r.ReadUint32()
	case "FloatProperty":
		return r.ReadFloat32()
	case "DoubleProperty":
		return r.ReadFloat64()
	case "Int64Property":
		return r.ReadInt64()
	case "UInt64Property":
		return r.ReadUint64()
	case "Int16Property":
		return r.ReadInt16()
	case "UInt16Property":
		return r.ReadUint16()
	case "ByteProperty", "BoolProperty":
		return r.ReadByte()
	default:
		return nil, fmt.Errorf("unhandled fixed-width type %q (width %d)", childType, width)
	}
}

func readSoftObjectPath(r *stream.Reader) (SoftObjectPath, error) {
	pkg, err := r.ReadNTString()
	if err != nil {
		return SoftObjectPath{}, err
	}
	asset, err := r.ReadNTString()
	if err != nil {
		return SoftObjectPath{}, err
	}
	sub, err := r.ReadNTString()
	if err != nil {
		return SoftObjectPath{}, err
	}
	return SoftObjectPath{Package: pkg, Asset: asset, SubPath: sub}, nil
}

func parseMap(r *stream.Reader) (*MapEntry, error) {
	if _, err := r.ReadInt32(); err != nil { // flag_k
		return nil, err
	}
	keyType, err := r.ReadNTString()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadInt32(); err != nil { // flag_v
		return nil, err
	}
	valType, err := r.ReadNTString()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	raw, err := r.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	return &MapEntry{
		Index:   index,
		Tag:     tag,
		KeyType: keyType,
		ValType: valType,
		Size:    size,
		Raw:     append([]byte(nil), raw...),
	}, nil
}

func parseSetProp(r *stream.Reader) (*SetEntry, error) {
	if _, err := r.ReadInt32(); err != nil { // flag
		return nil, err
	}
	elemType, err := r.ReadNTString()
	if err != nil {
		return nil, err
	}
	index, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}

	bodyStart := r.Tell()

	if elemType == "NameProperty" {
		if names, ok := tryParseNameList(r, bodyStart, int64(size)); ok {
			return &SetEntry{
				Index:      index,
				Tag:        tag,
				ElemType:   elemType,
				Size:       size,
				IsNameList: true,
				Names:      names,
			}, nil
		}
		r.Seek(bodyStart)
	}

	raw, err := r.ReadBytes(int(size))
	if err != nil {
		return nil, err
	}
	return &SetEntry{
		Index:    index,
		Tag:      tag,
		ElemType: elemType,
		Size:     size,
		Raw:      append([]byte(nil), raw...),
	}, nil
}

// tryParseNameList attempts the zero-header/count/NTString-list shape a
// NameProperty SetProperty body takes. On any failure it returns ok=false
// and leaves the reader position unspecified; the caller re-seeks to
// bodyStart before falling back to a raw read.
func tryParseNameList(r *stream.Reader, bodyStart, size int64) (names []string, ok bool) {
	if size < 8 {
		return nil, false
	}
	if _, err := r.ReadInt32(); err != nil { // always 0
		return nil, false
	}
	count, err := r.ReadInt32()
	if err != nil || count < 0 {
		return nil, false
	}
	out := make([]string, 0, count)
	for i := int32(0); i < count; i++ {
		s, err := r.ReadNTString()
		if err != nil {
			return nil, false
		}
		out = append(out, s)
	}
	if r.Tell() > bodyStart+size {
		return nil, false
	}
	return out, true
}

func parseBool(r *stream.Reader) (*BoolEntry, error) {
	index, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	if _, err := r.ReadInt32(); err != nil { // size, always 0
		return nil, err
	}
	val, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	return &BoolEntry{Index: index, Value: val}, nil
}

func parseSimple(r *stream.Reader, propType string) (*SimpleEntry, error) {
	index, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	size, err := r.ReadInt32()
	if err != nil {
		return nil, err
	}
	tag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	var extra *int32
	if tag != 0 {
		v, err := r.ReadInt32()
		if err != nil {
			return nil, err
		}
		extra = &v
	}

	value, err := readSimpleValue(r, propType, size)
	if err != nil {
		return nil, err
	}

	return &SimpleEntry{
		Index:    index,
		Tag:      tag,
		Extra:    extra,
		PropType: propType,
		Value:    value,
		Size:     size,
	}, nil
}

func readSimpleValue(r *stream.Reader, propType string, size int32) (any, error) {
	switch propType {
	case "IntProperty":
		return r.ReadInt32()
	case "UInt32Property":
		return r.ReadUint32()
	case "FloatProperty":
		return r.ReadFloat32()
	case "DoubleProperty":
		return r.ReadFloat64()
	case "Int64Property":
		return r.ReadInt64()
	case "UInt64Property":
		return r.ReadUint64()
	case "Int16Property":
		return r.ReadInt16()
	case "UInt16Property":
		return r.ReadUint16()
	case "StrProperty", "NameProperty":
		if size > 0 {
			return r.ReadNTString()
		}
		return "", nil
	case "ByteProperty":
		switch {
		case size == 1:
			return r.ReadByte()
		case size > 0:
			raw, err := r.ReadBytes(int(size))
			if err != nil {
				return nil, err
			}
			return append([]byte(nil), raw...), nil
		default:
			return byte(0), nil
		}
	case "ObjectProperty":
		raw, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		return classifyObjectRef(raw), nil
	case "SoftObjectProperty":
		sp, err := readSoftObjectPath(r)
		if err != nil {
			return nil, err
		}
		return sp, nil
	default:
		raw, err := r.ReadBytes(int(size))
		if err != nil {
			return nil, err
		}
		return append([]byte(nil), raw...), nil
	}
}

// classifyObjectRef decodes an ObjectProperty's raw value bytes into one
// of the five shapes the format uses, keyed purely on declared size and
// byte content — there is no separate discriminator field on disk.
func classifyObjectRef(raw []byte) ObjectRef {
	switch {
	case len(raw) == 4 && raw[0] == 0xff && raw[1] == 0xff && raw[2] == 0xff && raw[3] == 0xff:
		return ObjectRef{Kind: ObjectRefNull}
	case len(raw) == 8 && raw[0] == 0 && raw[1] == 0 && raw[2] == 0 && raw[3] == 0 &&
		raw[4] == 0xff && raw[5] == 0xff && raw[6] == 0xff && raw[7] == 0xff:
		return ObjectRef{Kind: ObjectRefIndexedNull}
	case len(raw) == 4:
		return ObjectRef{Kind: ObjectRefIndexOnly, Index: int32(binary.LittleEndian.Uint32(raw))}
	case len(raw) >= 8:
		flag := int32(binary.LittleEndian.Uint32(raw[0:4]))
		slen := int32(binary.LittleEndian.Uint32(raw[4:8]))
		if flag >= 0 && slen > 0 && int64(slen) < int64(len(raw)) && int64(8+slen) <= int64(len(raw)) {
			pathBytes := raw[8 : 8+slen-1]
			return ObjectRef{Kind: ObjectRefPath, Path: string(pathBytes)}
		}
		return ObjectRef{Kind: ObjectRefOpaque, Raw: append([]byte(nil), raw...)}
	default:
		return ObjectRef{Kind: ObjectRefOpaque, Raw: append([]byte(nil), raw...)}
	}
}
