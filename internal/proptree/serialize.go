package proptree

import (
	"github.com/ark-tools/arkprofile/internal/stream"
)

// noneBytes is the precomputed encoding of the NTString "None", used both
// as a struct terminator and as a size check when deciding whether a
// struct's inner properties fit its originally declared size.
var noneBytes = []byte{0x05, 0x00, 0x00, 0x00, 'N', 'o', 'n', 'e', 0x00}

// Serialize writes every (name, entry) pair in set to w, in on-disk order,
// followed by a "None" terminator when withNone is true.
func Serialize(w *stream.Writer, set *Set, withNone bool) {
	for _, ne := range set.All() {
		writeEntry(w, ne.Name, ne.Entry)
	}
	if withNone {
		w.WriteNTString("None") //nolint:errcheck
	}
}

func writePair(w *stream.Writer, name, propType string) {
	w.WriteNTString(name) //nolint:errcheck
	w.WriteNTString(propType) //nolint:errcheck
}

func writeEntry(w *stream.Writer, name string, e Entry) {
	switch v := e.(type) {
	case *StructEntry:
		writeStruct(w, name, v)
	case *ArrayEntry:
		writeArray(w, name, v)
	case *MapEntry:
		writeMapEntry(w, name, v)
	case *SetEntry:
		writeSetEntry(w, name, v)
	case *BoolEntry:
		writeBool(w, name, v)
	case *SimpleEntry:
		writeSimple(w, name, v)
	}
}

func writeStruct(w *stream.Writer, name string, e *StructEntry) {
	writePair(w, name, "StructProperty")

	inner := structBody(e)

	w.WriteInt32(1) // flag1
	w.WriteNTString(e.StructName) //nolint:errcheck
	w.WriteInt32(1) // flag2
	w.WriteNTString(e.Package) //nolint:errcheck
	w.WriteInt32(e.Index)
	w.WriteInt32(int32(len(inner)))
	w.WriteByte(e.Tag) //nolint:errcheck
	w.WriteBytes(inner)
}

// structBody renders a struct's inner bytes, choosing between replaying a
// captured raw blob and re-serializing a parsed property set. When
// re-serializing, it reproduces the zero-pad-vs-terminator trade-off the
// original encoder makes based on the struct's originally declared size:
// oversized content falls back to zero-padding with no terminator (padding
// a "None" in would overflow the slot), undersized content pads out to the
// declared size after the terminator, and a struct with no declared size
// simply gets content+terminator with no further padding.
func structBody(e *StructEntry) []byte {
	if e.Data == nil && e.Raw != nil {
		return e.Raw
	}
	data := e.Data
	if data == nil {
		data = NewSet()
	}

	inner := stream.NewWriter()
	Serialize(inner, data, false)
	noNone := inner.Bytes()

	orig := int(e.Size)
	switch {
	case orig > 0 && len(noNone)+len(noneBytes) > orig:
		out := append([]byte(nil), noNone...)
		if pad := orig - len(noNone); pad > 0 {
			out = append(out, make([]byte, pad)...)
		}
		return out
	case orig > 0:
		withTerm := append(append([]byte(nil), noNone...), noneBytes...)
		if len(withTerm) <= orig {
			withTerm = append(withTerm, make([]byte, orig-len(withTerm))...)
		}
		return withTerm
	default:
		return append(append([]byte(nil), noNone...), noneBytes...)
	}
}

func writeArray(w *stream.Writer, name string, e *ArrayEntry) {
	writePair(w, name, "ArrayProperty")

	length := e.ElementCount()
	elemBytes := arrayElementBytes(e)
	computedSize := 4 + len(elemBytes) // 4 for the length int32
	origSize := int(e.Size)
	dataSize := computedSize
	if origSize > 0 && origSize > computedSize {
		dataSize = origSize
	}

	w.WriteInt32(1) // flag
	w.WriteNTString(e.ChildType) //nolint:errcheck
	if e.ChildType == "StructProperty" {
		w.WriteInt32(1) // flag2
		w.WriteNTString(e.StructName) //nolint:errcheck
		w.WriteInt32(1) // flag3
		w.WriteNTString(e.Package) //nolint:errcheck
	}
	w.WriteInt32(e.Index)
	w.WriteInt32(int32(dataSize))
	w.WriteByte(e.Tag) //nolint:errcheck
	w.WriteInt32(length)
	w.WriteBytes(elemBytes)
	if pad := (dataSize - 4) - len(elemBytes); pad > 0 {
		w.WriteZeros(pad)
	}
}

func arrayElementBytes(e *ArrayEntry) []byte {
	w := stream.NewWriter()

	if e.ChildType == "StructProperty" {
		for i, s := range e.Structs {
			if i > 0 && e.HasSeparator {
				w.WriteInt32(0)
			}
			Serialize(w, s, true)
		}
		return w.Bytes()
	}

	if width, ok := fixedWidths[e.ChildType]; ok {
		for _, v := range e.Values {
			writeFixedWidth(w, e.ChildType, width, v)
		}
		return w.Bytes()
	}

	switch e.ChildType {
	case "StrProperty", "NameProperty":
		for _, v := range e.Values {
			w.WriteNTString(v.(string)) //nolint:errcheck
		}
	case "ObjectProperty":
		for _, v := range e.Values {
			w.WriteInt32(1) // prefix
			w.WriteNTString(v.(string)) //nolint:errcheck
		}
	case "SoftObjectProperty":
		for _, v := range e.Values {
			writeSoftObjectPath(w, v.(SoftObjectPath))
		}
	default:
		w.WriteBytes(e.Opaque)
	}
	return w.Bytes()
}

func writeFixedWidth(w *stream.Writer, childType string, width int, v any) {
	_ = width
	switch childType {
	case "IntProperty":
		w.WriteInt32(v.(int32))
	case "UInt32Property":
		w.WriteUint32(v.(uint32))
	case "FloatProperty":
		w.WriteFloat32(v.(float32))
	case "DoubleProperty":
		w.WriteFloat64(v.(float64))
	case "Int64Property":
		w.WriteInt64(v.(int64))
	case "UInt64Property":
		w.WriteUint64(v.(uint64))
	case "Int16Property":
		w.WriteInt16(v.(int16))
	case "UInt16Property":
		w.WriteUint16(v.(uint16))
	case "ByteProperty", "BoolProperty":
		w.WriteByte(v.(byte)) //nolint:errcheck
	}
}

func writeSoftObjectPath(w *stream.Writer, sp SoftObjectPath) {
	w.WriteNTString(sp.Package) //nolint:errcheck
	w.WriteNTString(sp.Asset) //nolint:errcheck
	w.WriteNTString(sp.SubPath) //nolint:errcheck
}

func writeMapEntry(w *stream.Writer, name string, e *MapEntry) {
	writePair(w, name, "MapProperty")
	w.WriteInt32(1) // flag_k
	w.WriteNTString(e.KeyType) //nolint:errcheck
	w.WriteInt32(1) // flag_v
	w.WriteNTString(e.ValType) //nolint:errcheck
	w.WriteInt32(e.Index)
	w.WriteInt32(int32(len(e.Raw)))
	w.WriteByte(e.Tag) //nolint:errcheck
	w.WriteBytes(e.Raw)
}

func writeSetEntry(w *stream.Writer, name string, e *SetEntry) {
	writePair(w, name, "SetProperty")
	w.WriteInt32(1) // flag
	w.WriteNTString(e.ElemType) //nolint:errcheck
	w.WriteInt32(e.Index)

	if e.IsNameList {
		body := stream.NewWriter()
		body.WriteInt32(0) // zero header
		body.WriteInt32(int32(len(e.Names)))
		for _, n := range e.Names {
			body.WriteNTString(n) //nolint:errcheck
		}
		w.WriteInt32(int32(body.Len()))
		w.WriteByte(e.Tag) //nolint:errcheck
		w.WriteBytes(body.Bytes())
		return
	}

	w.WriteInt32(int32(len(e.Raw)))
	w.WriteByte(e.Tag) //nolint:errcheck
	w.WriteBytes(e.Raw)
}

func writeBool(w *stream.Writer, name string, e *BoolEntry) {
	writePair(w, name, "BoolProperty")
	w.WriteInt32(e.Index)
	w.WriteInt32(0) // size, always 0
	w.WriteByte(e.Value) //nolint:errcheck
}

func writeSimple(w *stream.Writer, name string, e *SimpleEntry) {
	writePair(w, name, e.PropType)
	size := computeValueSize(e)
	w.WriteInt32(e.Index)
	w.WriteInt32(size)
	w.WriteByte(e.Tag) //nolint:errcheck
	if e.Tag != 0 {
		extra := int32(0)
		if e.Extra != nil {
			extra = *e.Extra
		}
		w.WriteInt32(extra)
	}
	writeSimpleValue(w, e, size)
}

// computeValueSize returns the declared size a Simple entry's value
// should occupy. For StrProperty/NameProperty an empty (unset) value
// falls back to the entry's originally declared size rather than zero,
// reproducing the source tool's own fallback for that case.
func computeValueSize(e *SimpleEntry) int32 {
	if w, ok := simpleFixedWidths[e.PropType]; ok {
		return int32(w)
	}
	switch e.PropType {
	case "StrProperty", "NameProperty":
		s, _ := e.Value.(string)
		if s == "" {
			return e.Size
		}
		return int32(stream.NTStringByteSize(s))
	case "ByteProperty":
		switch v := e.Value.(type) {
		case byte:
			return 1
		case []byte:
			return int32(len(v))
		default:
			return 1
		}
	case "ObjectProperty":
		ref, ok := e.Value.(ObjectRef)
		if !ok {
			return e.Size
		}
		switch ref.Kind {
		case ObjectRefNull:
			if e.Size == 8 {
				return 8
			}
			return 4
		case ObjectRefIndexedNull:
			return 8
		case ObjectRefIndexOnly:
			return 4
		case ObjectRefPath:
			return int32(4 + 4 + len(ref.Path) + 1)
		default:
			return int32(len(ref.Raw))
		}
	case "SoftObjectProperty":
		sp, ok := e.Value.(SoftObjectPath)
		if !ok {
			return e.Size
		}
		return int32(stream.NTStringByteSize(sp.Package) +
			stream.NTStringByteSize(sp.Asset) +
			stream.NTStringByteSize(sp.SubPath))
	default:
		return e.Size
	}
}

func writeSimpleValue(w *stream.Writer, e *SimpleEntry, size int32) {
	switch e.PropType {
	case "IntProperty":
		w.WriteInt32(e.Value.(int32))
	case "UInt32Property":
		w.WriteUint32(e.Value.(uint32))
	case "FloatProperty":
		w.WriteFloat32(e.Value.(float32))
	case "DoubleProperty":
		w.WriteFloat64(e.Value.(float64))
	case "Int64Property":
		w.WriteInt64(e.Value.(int64))
	case "UInt64Property":
		w.WriteUint64(e.Value.(uint64))
	case "Int16Property":
		w.WriteInt16(e.Value.(int16))
	case "UInt16Property":
		w.WriteUint16(e.Value.(uint16))
	case "StrProperty", "NameProperty":
		if size > 0 {
			s, _ := e.Value.(string)
			w.WriteNTString(s) //nolint:errcheck
		}
	case "ByteProperty":
		switch v := e.Value.(type) {
		case byte:
			w.WriteByte(v) //nolint:errcheck
		case []byte:
			w.WriteBytes(v)
		}
	case "ObjectProperty":
		writeObjectRef(w, e.Value, size)
	case "SoftObjectProperty":
		if sp, ok := e.Value.(SoftObjectPath); ok {
			writeSoftObjectPath(w, sp)
		}
	default:
		if b, ok := e.Value.([]byte); ok {
			w.WriteBytes(b)
		}
	}
}

func writeObjectRef(w *stream.Writer, value any, size int32) {
	ref, ok := value.(ObjectRef)
	if !ok {
		return
	}
	switch ref.Kind {
	case ObjectRefNull:
		if size == 8 {
			w.WriteBytes([]byte{0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff})
		} else {
			w.WriteBytes([]byte{0xff, 0xff, 0xff, 0xff})
		}
	case ObjectRefIndexedNull:
		w.WriteBytes([]byte{0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff})
	case ObjectRefIndexOnly:
		w.WriteInt32(ref.Index)
	case ObjectRefPath:
		w.WriteInt32(1) // flag
		pathBytes := []byte(ref.Path)
		w.WriteInt32(int32(len(pathBytes) + 1))
		w.WriteBytes(pathBytes)
		w.WriteByte(0) //nolint:errcheck
	case ObjectRefOpaque:
		w.WriteBytes(ref.Raw)
	}
}
