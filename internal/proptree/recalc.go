package proptree

import "github.com/ark-tools/arkprofile/internal/stream"

// Recalculate walks set post-order and rewrites every declared _size and
// length field to match what Serialize will actually produce. Serialize
// computes the sizes and lengths it emits from the current content (a
// previously declared struct or array size serves only as a padding
// target) but never writes them back into the tree, so Recalculate is what
// keeps the in-memory fields in step with the bytes written.
func Recalculate(set *Set) {
	for _, ne := range set.All() {
		recalcEntry(ne.Entry)
	}
}

func recalcEntry(e Entry) {
	switch v := e.(type) {
	case *StructEntry:
		recalcStruct(v)
	case *ArrayEntry:
		recalcArray(v)
	case *MapEntry:
		v.Size = int32(len(v.Raw))
	case *SetEntry:
		recalcSet(v)
	case *BoolEntry:
		// size is always 0; nothing to recompute
	case *SimpleEntry:
		v.Size = computeValueSize(v)
	}
}

func recalcStruct(e *StructEntry) {
	if e.Data == nil {
		return // raw-blob struct: size already matches len(Raw)
	}
	Recalculate(e.Data)
	e.Size = int32(len(structBody(e)))
}

func recalcArray(e *ArrayEntry) {
	if e.ChildType == "StructProperty" {
		for _, s := range e.Structs {
			Recalculate(s)
		}
	}
	e.Length = e.ElementCount()
	elemBytes := arrayElementBytes(e)
	computed := int32(4 + len(elemBytes))
	if e.Size > 0 && e.Size > computed {
		// preserve trailing padding already declared
	} else {
		e.Size = computed
	}
}

func recalcSet(e *SetEntry) {
	if !e.IsNameList {
		return // raw payload: size already matches len(Raw)
	}
	body := stream.NewWriter()
	body.WriteInt32(0)
	body.WriteInt32(int32(len(e.Names)))
	for _, n := range e.Names {
		body.WriteNTString(n) //nolint:errcheck
	}
	e.Size = int32(body.Len())
}
