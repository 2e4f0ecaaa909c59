package envelope

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ark-tools/arkprofile/internal/proptree"
)

func buildSampleBytes() ([]byte, error) {
	e := New()
	e.HeaderV1 = 10
	e.HeaderV2 = 20
	e.HeaderV3 = 30
	e.FileType = "ArkPlayerLocalData"
	e.Name = "Steve"
	e.Controller = "Controller_0"
	e.MapName = "TheIsland_WP"
	e.MapPath = "/Game/Maps/TheIsland/TheIsland_WP"
	e.HeaderSize = 0
	e.Trailing = append([]byte(nil), defaultTrailing...)

	set := proptree.NewSet()
	set.Add("ClubArkTokens", &proptree.SimpleEntry{PropType: "IntProperty", Value: int32(5)})
	e.Properties = set
	proptree.Recalculate(e.Properties)

	return Write(e)
}

func TestReadWriteRoundTrip(t *testing.T) {
	data, err := buildSampleBytes()
	require.NoError(t, err)

	e, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, int32(1), e.Version)
	require.Equal(t, "Steve", e.Name)
	require.Equal(t, "TheIsland_WP", e.MapName)

	entry, ok := e.Properties.First("ClubArkTokens")
	require.True(t, ok)
	require.Equal(t, int32(5), entry.(*proptree.SimpleEntry).Value)

	out, err := Write(e)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestReadRejectsUnsupportedVersion(t *testing.T) {
	data, err := buildSampleBytes()
	require.NoError(t, err)
	// version field sits right after header_v1/v2/v3 (three int32s = bytes 0..12)
	data[12] = 2

	_, err = Read(data)
	require.Error(t, err)
	var verr *VersionError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, int32(2), verr.Got)
}

func TestWriteRejectsNonASCIIHeaderField(t *testing.T) {
	e := New()
	e.Name = "Stève" // non-ASCII, e.g. from a document edited with an accented player name

	_, err := Write(e)
	require.Error(t, err)
	var encErr *EncodingError
	require.ErrorAs(t, err, &encErr)
	require.Equal(t, "name", encErr.Field)
}

func TestReadPreservesArbitraryTrailingLength(t *testing.T) {
	e := New()
	e.Trailing = []byte{0xde, 0xad, 0xbe, 0xef, 0x01}
	data, err := Write(e)
	require.NoError(t, err)

	got, err := Read(data)
	require.NoError(t, err)
	require.Equal(t, e.Trailing, got.Trailing)
}
