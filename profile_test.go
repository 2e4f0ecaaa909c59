package arkprofile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ark-tools/arkprofile/internal/proptree"
)

func buildSampleProfile() *Profile {
	p := New()
	p.env.Name = "Steve"
	p.env.MapName = "TheIsland_WP"
	p.env.Trailing = make([]byte, 20)

	arkData := proptree.NewSet()
	arkData.Add("ClubArkTokens", &proptree.SimpleEntry{PropType: "IntProperty", Value: int32(12)})
	items := &proptree.ArrayEntry{
		ChildType: "IntProperty",
		Values:    []any{int32(1), int32(2)},
	}
	arkData.Add("ArkItems", items)

	root := proptree.NewSet()
	root.Add("MyArkData", &proptree.StructEntry{
		StructName: "ArkInventoryData",
		Package:    "/Script/ShooterGame",
		Data:       arkData,
	})
	root.Add("SavedFavoritesVersion", &proptree.SimpleEntry{PropType: "IntProperty", Value: int32(3)})
	p.env.Properties = root
	return p
}

func TestSaveLoadRoundTrip(t *testing.T) {
	p := buildSampleProfile()
	data, err := p.Save()
	require.NoError(t, err)

	loaded, err := Load(data)
	require.NoError(t, err)
	require.Equal(t, "Steve", loaded.Name())
	require.Equal(t, "TheIsland_WP", loaded.MapName())
	require.Equal(t, int32(12), loaded.ClubArkTokens())
	require.Equal(t, int32(2), loaded.ArkItems().ElementCount())
	require.Equal(t, int32(3), loaded.SavedFavoritesVersion())
}

func TestToDocumentFromDocumentRoundTrip(t *testing.T) {
	p := buildSampleProfile()
	_, err := p.Save() // ensure sizes are populated before converting to a document
	require.NoError(t, err)

	doc := p.ToDocument()
	raw, err := json.Marshal(doc)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	back, err := FromDocument(decoded)
	require.NoError(t, err)
	require.Equal(t, "Steve", back.Name())
	require.Equal(t, int32(12), back.ClubArkTokens())
}

func TestMissingConvenienceFieldsReturnZeroValues(t *testing.T) {
	p := New()
	require.Equal(t, int32(0), p.ClubArkTokens())
	require.Equal(t, int32(0), p.ArkItems().ElementCount())
	require.Equal(t, int32(0), p.SavedFavoritesVersion())
}
