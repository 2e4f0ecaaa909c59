package document

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ark-tools/arkprofile/internal/proptree"
)

func TestRoundTripSimpleEntry(t *testing.T) {
	set := proptree.NewSet()
	set.Add("ClubArkTokens", &proptree.SimpleEntry{PropType: "IntProperty", Value: int32(42), Size: 4})

	doc := ToDocument(set)
	back, err := FromDocument(doc)
	require.NoError(t, err)

	entry, ok := back.First("ClubArkTokens")
	require.True(t, ok)
	require.Equal(t, int32(42), entry.(*proptree.SimpleEntry).Value)
}

func TestRoundTripThroughJSON(t *testing.T) {
	set := proptree.NewSet()
	set.Add("ClubArkTokens", &proptree.SimpleEntry{PropType: "IntProperty", Value: int32(42), Size: 4})
	set.Add("PlayerName", &proptree.SimpleEntry{PropType: "StrProperty", Value: "Steve", Size: 10})

	doc := ToDocument(set)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	back, err := FromDocument(decoded)
	require.NoError(t, err)

	tokens, ok := back.First("ClubArkTokens")
	require.True(t, ok)
	require.Equal(t, int32(42), tokens.(*proptree.SimpleEntry).Value)

	name, ok := back.First("PlayerName")
	require.True(t, ok)
	require.Equal(t, "Steve", name.(*proptree.SimpleEntry).Value)
}

func TestNonFiniteFloatTaggedThroughJSON(t *testing.T) {
	set := proptree.NewSet()
	set.Add("Ratio", &proptree.SimpleEntry{PropType: "FloatProperty", Value: float32(math.Inf(1)), Size: 4})

	doc := ToDocument(set)
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.Contains(t, string(raw), "__special_float__")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	back, err := FromDocument(decoded)
	require.NoError(t, err)
	entry, ok := back.First("Ratio")
	require.True(t, ok)
	v := entry.(*proptree.SimpleEntry).Value.(float32)
	require.True(t, math.IsInf(float64(v), 1))
}

func TestDuplicateNamesBecomeList(t *testing.T) {
	set := proptree.NewSet()
	set.Add("Tag", &proptree.SimpleEntry{PropType: "StrProperty", Value: "a", Size: 6})
	set.Add("Tag", &proptree.SimpleEntry{PropType: "StrProperty", Value: "b", Size: 6})

	doc := ToDocument(set)
	list, ok := doc["Tag"].([]any)
	require.True(t, ok)
	require.Len(t, list, 2)

	back, err := FromDocument(doc)
	require.NoError(t, err)
	require.Len(t, back.Entries("Tag"), 2)
}

func TestRoundTripObjectRefPath(t *testing.T) {
	set := proptree.NewSet()
	set.Add("Owner", &proptree.SimpleEntry{
		PropType: "ObjectProperty",
		Value:    proptree.ObjectRef{Kind: proptree.ObjectRefPath, Path: "/Game/Dinos/Rex"},
		Size:     20,
	})

	doc := ToDocument(set)
	back, err := FromDocument(doc)
	require.NoError(t, err)
	entry, _ := back.First("Owner")
	ref := entry.(*proptree.SimpleEntry).Value.(proptree.ObjectRef)
	require.Equal(t, proptree.ObjectRefPath, ref.Kind)
	require.Equal(t, "/Game/Dinos/Rex", ref.Path)
}

func TestRoundTripStructRawBlob(t *testing.T) {
	set := proptree.NewSet()
	set.Add("Location", &proptree.StructEntry{
		StructName: "Vector",
		Package:    "/Script/CoreUObject",
		Raw:        []byte{1, 2, 3, 4},
		Size:       4,
	})

	doc := ToDocument(set)
	back, err := FromDocument(doc)
	require.NoError(t, err)
	entry, _ := back.First("Location")
	st := entry.(*proptree.StructEntry)
	require.Equal(t, []byte{1, 2, 3, 4}, st.Raw)
	require.Nil(t, st.Data)
}
