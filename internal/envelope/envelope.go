// Package envelope reads and writes the fixed header and trailing byte
// region that wrap an arkprofile's property section, gluing the byte
// stream (internal/stream) to the property codec (internal/proptree).
package envelope

import (
	"fmt"

	"github.com/ark-tools/arkprofile/internal/proptree"
	"github.com/ark-tools/arkprofile/internal/stream"
	"github.com/ark-tools/arkprofile/internal/utils"
)

// supportedVersion is the only envelope version this codec understands.
const supportedVersion = 1

// defaultTrailing is emitted when an Envelope built from scratch (e.g. via
// the document mapper) carries no captured trailing bytes: a zero i32
// followed by a 16-byte zero GUID, the common shape spec.md §3 documents.
var defaultTrailing = make([]byte, 20)

// VersionError reports an envelope whose version field is not the one
// byte layout this codec understands.
type VersionError struct {
	Got int32
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported envelope version %d (expected %d)", e.Got, supportedVersion)
}

// EncodingError reports a fixed header field that cannot be written as an
// ASCII NT-string (spec §7: writing is fatal rather than lossy here, since
// these fields round-trip through the document/JSON boundary and can
// arrive back containing arbitrary text).
type EncodingError struct {
	Field string
	Cause error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("envelope field %s: %v", e.Field, e.Cause)
}

func (e *EncodingError) Unwrap() error {
	return e.Cause
}

// Envelope holds every fixed header field plus the parsed property tree
// and the raw trailing byte region that follows it.
type Envelope struct {
	HeaderV1   int32
	HeaderV2   int32
	HeaderV3   int32
	Version    int32
	GUID       [16]byte
	FileType   string
	Name       string
	Controller string
	GameMode   string
	MapName    string
	MapPath    string
	HeaderSize int32

	Properties *proptree.Set
	Trailing   []byte
}

// Read parses a complete in-memory file buffer into an Envelope.
func Read(data []byte) (*Envelope, error) {
	r := stream.NewReader(data)

	e := &Envelope{}
	var err error
	if e.HeaderV1, err = r.ReadInt32(); err != nil {
		return nil, utils.WrapError("read header_v1", err)
	}
	if e.HeaderV2, err = r.ReadInt32(); err != nil {
		return nil, utils.WrapError("read header_v2", err)
	}
	if e.HeaderV3, err = r.ReadInt32(); err != nil {
		return nil, utils.WrapError("read header_v3", err)
	}
	if e.Version, err = r.ReadInt32(); err != nil {
		return nil, utils.WrapError("read version", err)
	}
	if e.Version != supportedVersion {
		return nil, &VersionError{Got: e.Version}
	}

	guidBytes, err := r.ReadBytes(16)
	if err != nil {
		return nil, utils.WrapError("read guid", err)
	}
	copy(e.GUID[:], guidBytes)

	if e.FileType, err = r.ReadNTString(); err != nil {
		return nil, utils.WrapError("read file_type", err)
	}
	if _, err = r.ReadInt32(); err != nil { // always 0
		return nil, utils.WrapError("read header pad(0)", err)
	}
	if _, err = r.ReadInt32(); err != nil { // always 5
		return nil, utils.WrapError("read header pad(5)", err)
	}
	if e.Name, err = r.ReadNTString(); err != nil {
		return nil, utils.WrapError("read name", err)
	}
	if e.Controller, err = r.ReadNTString(); err != nil {
		return nil, utils.WrapError("read controller", err)
	}
	if e.GameMode, err = r.ReadNTString(); err != nil {
		return nil, utils.WrapError("read game_mode", err)
	}
	if e.MapName, err = r.ReadNTString(); err != nil {
		return nil, utils.WrapError("read map_name", err)
	}
	if e.MapPath, err = r.ReadNTString(); err != nil {
		return nil, utils.WrapError("read map_path", err)
	}
	if _, err = r.ReadBytes(12); err != nil { // 12 zero bytes
		return nil, utils.WrapError("read header zero block", err)
	}
	if e.HeaderSize, err = r.ReadInt32(); err != nil {
		return nil, utils.WrapError("read header_size", err)
	}
	if _, err = r.ReadInt32(); err != nil { // always 0
		return nil, utils.WrapError("read header tail pad", err)
	}
	if _, err = r.ReadByte(); err != nil { // separator byte
		return nil, utils.WrapError("read header separator", err)
	}

	e.Properties = proptree.ParseSet(r, -1)

	if pos := r.Tell(); pos < r.Len() {
		trailing, err := r.ReadBytes(int(r.Len() - pos))
		if err != nil {
			return nil, utils.WrapError("read trailing bytes", err)
		}
		e.Trailing = append([]byte(nil), trailing...)
	}

	return e, nil
}

// headerFields names, in write order, every fixed NT-string field that
// must validate as pure ASCII before Write commits anything to the
// output buffer.
func (e *Envelope) headerFields() []struct {
	name  string
	value string
} {
	return []struct {
		name  string
		value string
	}{
		{"file_type", e.FileType},
		{"name", e.Name},
		{"controller", e.Controller},
		{"game_mode", e.GameMode},
		{"map_name", e.MapName},
		{"map_path", e.MapPath},
	}
}

// Write serializes the envelope — header, property section, trailing
// bytes — to a fresh byte slice. The property sizes it writes are computed
// from the current content; Write does not update the size and length
// fields stored in e.Properties (proptree.Recalculate does that).
// It fails fatally, returning an *EncodingError, if any fixed header
// field cannot be written as ASCII.
func Write(e *Envelope) ([]byte, error) {
	for _, f := range e.headerFields() {
		if err := stream.ValidateASCII(f.value); err != nil {
			return nil, &EncodingError{Field: f.name, Cause: err}
		}
	}

	w := stream.NewWriterSize(4096)

	w.WriteInt32(e.HeaderV1)
	w.WriteInt32(e.HeaderV2)
	w.WriteInt32(e.HeaderV3)
	w.WriteInt32(supportedVersion)
	w.WriteBytes(e.GUID[:])
	w.WriteNTString(e.FileType)     //nolint:errcheck // validated above
	w.WriteInt32(0)
	w.WriteInt32(5)
	w.WriteNTString(e.Name)       //nolint:errcheck // validated above
	w.WriteNTString(e.Controller) //nolint:errcheck // validated above
	w.WriteNTString(e.GameMode)   //nolint:errcheck // validated above
	w.WriteNTString(e.MapName)    //nolint:errcheck // validated above
	w.WriteNTString(e.MapPath)    //nolint:errcheck // validated above
	w.WriteZeros(12)
	w.WriteInt32(e.HeaderSize)
	w.WriteInt32(0)
	w.WriteByte(0) //nolint:errcheck // header separator

	if e.Properties != nil {
		proptree.Serialize(w, e.Properties, true)
	} else {
		w.WriteNTString("None") //nolint:errcheck
	}

	if e.Trailing != nil {
		w.WriteBytes(e.Trailing)
	} else {
		w.WriteBytes(defaultTrailing)
	}

	return w.Bytes(), nil
}

// New returns an Envelope with default header field values — version 1,
// zero GUID, "PersistentLevel" game mode — and an empty property set,
// suitable as a starting point for FromDocument-built profiles.
func New() *Envelope {
	return &Envelope{
		Version:    supportedVersion,
		GameMode:   "PersistentLevel",
		Properties: proptree.NewSet(),
	}
}
