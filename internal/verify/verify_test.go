package verify

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ark-tools/arkprofile/internal/envelope"
	"github.com/ark-tools/arkprofile/internal/proptree"
)

func buildValidFile(t *testing.T) []byte {
	t.Helper()
	e := envelope.New()
	e.Name = "Steve"
	e.MapName = "TheIsland_WP"
	e.Trailing = make([]byte, 20)

	set := proptree.NewSet()
	set.Add("ClubArkTokens", &proptree.SimpleEntry{PropType: "IntProperty", Value: int32(7)})
	set.Add("PlayerName", &proptree.SimpleEntry{PropType: "StrProperty", Value: "Steve"})
	e.Properties = set
	proptree.Recalculate(e.Properties)

	data, err := envelope.Write(e)
	require.NoError(t, err)
	return data
}

func TestWalkCleanFileReportsNoErrors(t *testing.T) {
	data := buildValidFile(t)
	res, err := Walk(data, nil)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.Equal(t, 2, res.PropertiesChecked)
}

func TestWalkDetectsSimpleSizeMismatch(t *testing.T) {
	e := envelope.New()
	e.Trailing = make([]byte, 20)
	set := proptree.NewSet()
	entry := &proptree.SimpleEntry{PropType: "IntProperty", Value: int32(7), Size: 4}
	set.Add("ClubArkTokens", entry)
	e.Properties = set
	data, err := envelope.Write(e) // no Recalculate: Write still emits the IntProperty size (4) computed from the value
	require.NoError(t, err)

	// Manually corrupt the declared size of the one property to something
	// wrong. Locate it by finding the IntProperty type string, then its
	// following index+size header.
	marker := []byte("IntProperty")
	idx := bytes.Index(data, marker)
	require.True(t, idx >= 0)
	sizeOffset := idx + len(marker) + 1 + 4 // null terminator of type string + index int32
	// Overwrite declared size (currently 4) with 99.
	data[sizeOffset] = 99
	data[sizeOffset+1] = 0
	data[sizeOffset+2] = 0
	data[sizeOffset+3] = 0

	res, err := Walk(data, nil)
	require.NoError(t, err)
	require.False(t, res.OK())
}

func TestWalkTracesWhenSinkProvided(t *testing.T) {
	data := buildValidFile(t)
	var buf bytes.Buffer
	res, err := Walk(data, &buf)
	require.NoError(t, err)
	require.True(t, res.OK())
	require.NotEmpty(t, buf.String())
}
