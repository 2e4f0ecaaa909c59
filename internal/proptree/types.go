// Package proptree implements the recursive parser and serializer for
// UE5 tagged properties: the property-tree codec at the heart of the
// arkprofile format.
package proptree

// EntryKind discriminates the six property entry shapes of the format.
type EntryKind int

const (
	KindStruct EntryKind = iota
	KindArray
	KindMap
	KindSet
	KindBool
	KindSimple
)

// Entry is the tagged-variant interface every property entry shape
// implements. Kind() names the shape; the codec's own parser, serializer
// and size recalculator dispatch with type switches on the concrete types.
type Entry interface {
	Kind() EntryKind
}

// StructEntry is a StructProperty: a nested property set, or — when the
// body could not be parsed as properties (Vector, Rotator, Quat, ...) —
// an opaque byte blob captured verbatim.
type StructEntry struct {
	Index      int32
	Tag        byte
	StructName string
	Package    string
	Size       int32 // declared data_size
	Data       *Set  // nested property set; nil when Raw holds the body
	Raw        []byte
}

func (*StructEntry) Kind() EntryKind { return KindStruct }

// ArrayEntry is an ArrayProperty. At most one of Structs, Values, or
// Opaque holds elements, selected by ChildType; a zero-length array may
// have none of them set.
type ArrayEntry struct {
	Index        int32
	Tag          byte
	ChildType    string
	StructName   string // only meaningful when ChildType == "StructProperty"
	Package      string
	Size         int32
	Length       int32
	HasSeparator bool

	Structs []*Set // ChildType == "StructProperty"
	Values  []any  // fixed-width / string / object / soft-object elements
	Opaque  []byte // ChildType not otherwise recognized
}

func (*ArrayEntry) Kind() EntryKind { return KindArray }

// ElementCount returns the element count the serializer and size
// recalculator should declare for this array. For Structs/Values arrays
// it is the live slice length; for an Opaque (unrecognized child type)
// array there is no discrete element list, so the originally parsed
// Length is preserved rather than recomputed.
func (a *ArrayEntry) ElementCount() int32 {
	switch {
	case a.Structs != nil:
		return int32(len(a.Structs))
	case a.Values != nil:
		return int32(len(a.Values))
	default:
		return a.Length
	}
}

// MapEntry is a MapProperty. Its payload is not interpreted (Non-goal
// per spec): it round-trips as an opaque byte slice.
type MapEntry struct {
	Index   int32
	Tag     byte
	KeyType string
	ValType string
	Size    int32
	Raw     []byte
}

func (*MapEntry) Kind() EntryKind { return KindMap }

// SetEntry is a SetProperty. NameProperty sets whose payload parses as a
// name list are exposed structurally (IsNameList); everything else
// round-trips as an opaque byte slice.
type SetEntry struct {
	Index      int32
	Tag        byte
	ElemType   string
	Size       int32
	IsNameList bool
	Names      []string
	Raw        []byte
}

func (*SetEntry) Kind() EntryKind { return KindSet }

// BoolEntry is a BoolProperty. Its declared size is always 0; the value
// lives in the tag byte slot.
type BoolEntry struct {
	Index int32
	Value byte
}

func (*BoolEntry) Kind() EntryKind { return KindBool }

// SimpleEntry covers every primitive property type: ints, floats,
// strings, object references, and soft object paths.
type SimpleEntry struct {
	Index    int32
	Tag      byte
	Extra    *int32 // present only when Tag != 0
	PropType string
	Value    any
	Size     int32 // declared size; used as a fallback when recomputing
}

func (*SimpleEntry) Kind() EntryKind { return KindSimple }

// ObjectRefKind discriminates the five shapes an ObjectProperty value
// can take.
type ObjectRefKind int

const (
	ObjectRefNull ObjectRefKind = iota
	ObjectRefIndexedNull
	ObjectRefIndexOnly
	ObjectRefPath
	ObjectRefOpaque
)

// ObjectRef is the value of an ObjectProperty, classified by declared
// size and content per spec.
type ObjectRef struct {
	Kind  ObjectRefKind
	Index int32  // ObjectRefIndexOnly
	Path  string // ObjectRefPath
	Raw   []byte // ObjectRefOpaque
}

// SoftObjectPath is UE5's FSoftObjectPath: a three-string asset reference.
type SoftObjectPath struct {
	Package string
	Asset   string
	SubPath string
}
