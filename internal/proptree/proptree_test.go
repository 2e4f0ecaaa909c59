package proptree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ark-tools/arkprofile/internal/stream"
)

func TestRoundTripSimpleIntProperty(t *testing.T) {
	w := stream.NewWriter()
	w.WriteNTString("ClubArkTokens")
	w.WriteNTString("IntProperty")
	w.WriteInt32(0)  // index
	w.WriteInt32(4)  // size
	w.WriteByte(0)   //nolint:errcheck // tag
	w.WriteInt32(42) // value
	w.WriteNTString("None")

	r := stream.NewReader(w.Bytes())
	set := ParseSet(r, -1)

	require.Equal(t, []string{"ClubArkTokens"}, set.Names())
	entry, ok := set.First("ClubArkTokens")
	require.True(t, ok)
	si := entry.(*SimpleEntry)
	require.Equal(t, int32(42), si.Value)

	out := stream.NewWriter()
	Serialize(out, set, true)
	require.Equal(t, w.Bytes(), out.Bytes())
}

func TestRoundTripBoolProperty(t *testing.T) {
	w := stream.NewWriter()
	w.WriteNTString("IsFemale")
	w.WriteNTString("BoolProperty")
	w.WriteInt32(0)
	w.WriteInt32(0)
	w.WriteByte(1) //nolint:errcheck
	w.WriteNTString("None")

	r := stream.NewReader(w.Bytes())
	set := ParseSet(r, -1)

	entry, ok := set.First("IsFemale")
	require.True(t, ok)
	b := entry.(*BoolEntry)
	require.Equal(t, byte(1), b.Value)

	out := stream.NewWriter()
	Serialize(out, set, true)
	require.Equal(t, w.Bytes(), out.Bytes())
}

func TestRoundTripStructWithNestedProperties(t *testing.T) {
	inner := stream.NewWriter()
	inner.WriteNTString("ClubArkTokens")
	inner.WriteNTString("IntProperty")
	inner.WriteInt32(0)
	inner.WriteInt32(4)
	inner.WriteByte(0) //nolint:errcheck
	inner.WriteInt32(7)
	inner.WriteNTString("None")
	innerBytes := inner.Bytes()

	w := stream.NewWriter()
	w.WriteNTString("MyArkData")
	w.WriteNTString("StructProperty")
	w.WriteInt32(1) // flag1
	w.WriteNTString("ArkInventoryData")
	w.WriteInt32(1) // flag2
	w.WriteNTString("/Script/ShooterGame")
	w.WriteInt32(0) // index
	w.WriteInt32(int32(len(innerBytes)))
	w.WriteByte(0) //nolint:errcheck
	w.WriteBytes(innerBytes)
	w.WriteNTString("None")

	r := stream.NewReader(w.Bytes())
	set := ParseSet(r, -1)

	entry, ok := set.First("MyArkData")
	require.True(t, ok)
	st := entry.(*StructEntry)
	require.Equal(t, "ArkInventoryData", st.StructName)
	require.NotNil(t, st.Data)
	nested, ok := st.Data.First("ClubArkTokens")
	require.True(t, ok)
	require.Equal(t, int32(7), nested.(*SimpleEntry).Value)

	out := stream.NewWriter()
	Serialize(out, set, true)
	require.Equal(t, w.Bytes(), out.Bytes())
}

func TestRoundTripStructRawBlobPreserved(t *testing.T) {
	raw := []byte{0x00, 0x00, 0x80, 0x3f, 0x00, 0x00, 0x00, 0x40, 0x00, 0x00, 0x40, 0x40} // Vector-like

	w := stream.NewWriter()
	w.WriteNTString("Location")
	w.WriteNTString("StructProperty")
	w.WriteInt32(1)
	w.WriteNTString("Vector")
	w.WriteInt32(1)
	w.WriteNTString("/Script/CoreUObject")
	w.WriteInt32(0)
	w.WriteInt32(int32(len(raw)))
	w.WriteByte(0) //nolint:errcheck
	w.WriteBytes(raw)
	w.WriteNTString("None")

	r := stream.NewReader(w.Bytes())
	set := ParseSet(r, -1)

	entry, ok := set.First("Location")
	require.True(t, ok)
	st := entry.(*StructEntry)
	require.Nil(t, st.Data)
	require.Equal(t, raw, st.Raw)

	out := stream.NewWriter()
	Serialize(out, set, true)
	require.Equal(t, w.Bytes(), out.Bytes())
}

func TestRoundTripArrayOfInts(t *testing.T) {
	w := stream.NewWriter()
	w.WriteNTString("PersistentItemUnlocks")
	w.WriteNTString("ArrayProperty")
	w.WriteInt32(1) // flag
	w.WriteNTString("IntProperty")
	w.WriteInt32(0)  // index
	w.WriteInt32(16) // size = 4(length) + 3*4(elements)
	w.WriteByte(0)   //nolint:errcheck
	w.WriteInt32(3)  // length
	w.WriteInt32(1)
	w.WriteInt32(2)
	w.WriteInt32(3)
	w.WriteNTString("None")

	r := stream.NewReader(w.Bytes())
	set := ParseSet(r, -1)

	entry, ok := set.First("PersistentItemUnlocks")
	require.True(t, ok)
	arr := entry.(*ArrayEntry)
	require.Equal(t, int32(3), arr.Length)
	require.Equal(t, []any{int32(1), int32(2), int32(3)}, arr.Values)

	out := stream.NewWriter()
	Serialize(out, set, true)
	require.Equal(t, w.Bytes(), out.Bytes())
}

func TestRoundTripArrayOfStructsWithSeparators(t *testing.T) {
	elem := func(v int32) []byte {
		e := stream.NewWriter()
		e.WriteNTString("Amount")
		e.WriteNTString("IntProperty")
		e.WriteInt32(0)
		e.WriteInt32(4)
		e.WriteByte(0) //nolint:errcheck
		e.WriteInt32(v)
		e.WriteNTString("None")
		return e.Bytes()
	}
	elem1 := elem(10)
	elem2 := elem(20)

	body := stream.NewWriter()
	body.WriteBytes(elem1)
	body.WriteInt32(0) // separator
	body.WriteBytes(elem2)

	w := stream.NewWriter()
	w.WriteNTString("ArkItems")
	w.WriteNTString("ArrayProperty")
	w.WriteInt32(1)
	w.WriteNTString("StructProperty")
	w.WriteInt32(1)
	w.WriteNTString("ArkTributeItem")
	w.WriteInt32(1)
	w.WriteNTString("/Script/ShooterGame")
	w.WriteInt32(0)
	w.WriteInt32(int32(4 + body.Len()))
	w.WriteByte(0) //nolint:errcheck
	w.WriteInt32(2)
	w.WriteBytes(body.Bytes())
	w.WriteNTString("None")

	r := stream.NewReader(w.Bytes())
	set := ParseSet(r, -1)

	entry, ok := set.First("ArkItems")
	require.True(t, ok)
	arr := entry.(*ArrayEntry)
	require.True(t, arr.HasSeparator)
	require.Len(t, arr.Structs, 2)
	first, _ := arr.Structs[0].First("Amount")
	require.Equal(t, int32(10), first.(*SimpleEntry).Value)

	out := stream.NewWriter()
	Serialize(out, set, true)
	require.Equal(t, w.Bytes(), out.Bytes())
}

func TestObjectRefClassification(t *testing.T) {
	require.Equal(t, ObjectRefNull, classifyObjectRef([]byte{0xff, 0xff, 0xff, 0xff}).Kind)
	require.Equal(t, ObjectRefIndexedNull,
		classifyObjectRef([]byte{0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}).Kind)
	require.Equal(t, ObjectRefIndexOnly, classifyObjectRef([]byte{5, 0, 0, 0}).Kind)

	path := "/Game/Maps/TheIsland"
	raw := stream.NewWriter()
	raw.WriteInt32(1)
	raw.WriteInt32(int32(len(path) + 1))
	raw.WriteBytes([]byte(path))
	raw.WriteByte(0) //nolint:errcheck
	ref := classifyObjectRef(raw.Bytes())
	require.Equal(t, ObjectRefPath, ref.Kind)
	require.Equal(t, path, ref.Path)
}

func TestArrayElementCountPreservesOpaqueLength(t *testing.T) {
	arr := &ArrayEntry{ChildType: "UnknownFutureProperty", Length: 9, Opaque: []byte{1, 2, 3}}
	require.Equal(t, int32(9), arr.ElementCount())
}

func TestRecalculateUpdatesIntSize(t *testing.T) {
	set := NewSet()
	set.Add("ClubArkTokens", &SimpleEntry{PropType: "IntProperty", Value: int32(3), Size: 999})
	Recalculate(set)
	entry, _ := set.First("ClubArkTokens")
	require.Equal(t, int32(4), entry.(*SimpleEntry).Size)
}

func TestRecalculateGrowsArrayWhenContentGrows(t *testing.T) {
	arr := &ArrayEntry{
		ChildType: "IntProperty",
		Size:      8, // stale: originally 1 element
		Values:    []any{int32(1), int32(2), int32(3)},
	}
	set := NewSet()
	set.Add("PersistentItemUnlocks", arr)
	Recalculate(set)
	require.Equal(t, int32(3), arr.Length)
	require.Equal(t, int32(16), arr.Size) // 4 + 3*4
}

func TestRoundTripMultiByteBytePropertyValue(t *testing.T) {
	raw := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02}

	w := stream.NewWriter()
	w.WriteNTString("SaveGameVersion")
	w.WriteNTString("ByteProperty")
	w.WriteInt32(0)
	w.WriteInt32(int32(len(raw)))
	w.WriteByte(0) //nolint:errcheck
	w.WriteBytes(raw)
	w.WriteNTString("None")

	r := stream.NewReader(w.Bytes())
	set := ParseSet(r, -1)

	entry, ok := set.First("SaveGameVersion")
	require.True(t, ok)
	si := entry.(*SimpleEntry)
	require.Equal(t, raw, si.Value)
	require.Equal(t, int32(len(raw)), si.Size)

	out := stream.NewWriter()
	Serialize(out, set, true)
	require.Equal(t, w.Bytes(), out.Bytes())
}

func TestRecalculatePreservesMultiByteBytePropertySize(t *testing.T) {
	set := NewSet()
	set.Add("SaveGameVersion", &SimpleEntry{
		PropType: "ByteProperty",
		Value:    []byte{1, 2, 3, 4, 5},
		Size:     999, // stale
	})
	Recalculate(set)
	entry, _ := set.First("SaveGameVersion")
	// Must recompute from the actual byte slice length, never collapse to
	// the array-element fixed width of 1.
	require.Equal(t, int32(5), entry.(*SimpleEntry).Size)
}

func TestRecalculatePreservesPaddingWhenContentShrinks(t *testing.T) {
	arr := &ArrayEntry{
		ChildType: "IntProperty",
		Size:      100, // large declared size from original file padding
		Values:    []any{int32(1)},
	}
	set := NewSet()
	set.Add("PersistentItemUnlocks", arr)
	Recalculate(set)
	require.Equal(t, int32(1), arr.Length)
	require.Equal(t, int32(100), arr.Size)
}
