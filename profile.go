// Package arkprofile reads, edits, and writes Ark: Survival Ascended's
// PlayerLocalData.arkprofile files: a UE5 tagged-property binary format
// carrying a player's local inventory, tamed-dino uploads, achievements,
// and explorer-note progress.
package arkprofile

import (
	"github.com/ark-tools/arkprofile/internal/document"
	"github.com/ark-tools/arkprofile/internal/envelope"
	"github.com/ark-tools/arkprofile/internal/proptree"
)

// Profile is a loaded (or freshly built) arkprofile file: header fields
// plus the full property tree.
type Profile struct {
	env *envelope.Envelope
}

// Load parses a complete .arkprofile file buffer.
func Load(data []byte) (*Profile, error) {
	e, err := envelope.Read(data)
	if err != nil {
		return nil, err
	}
	return &Profile{env: e}, nil
}

// New returns an empty Profile with default header values, suitable as a
// starting point for FromDocument.
func New() *Profile {
	return &Profile{env: envelope.New()}
}

// Save recalculates every declared size and length field, then
// serializes the profile back to bytes. It fails if a fixed header field
// cannot be written as ASCII (see envelope.EncodingError).
func (p *Profile) Save() ([]byte, error) {
	proptree.Recalculate(p.env.Properties)
	return envelope.Write(p.env)
}

// ToDocument converts the full profile — header and property tree — into
// a JSON-compatible document.
func (p *Profile) ToDocument() map[string]any {
	return map[string]any{
		"header": p.headerDocument(),
		"data":   document.ToDocument(p.env.Properties),
	}
}

// FromDocument rebuilds a Profile from a document produced by ToDocument.
func FromDocument(doc map[string]any) (*Profile, error) {
	p := New()
	if h, ok := doc["header"].(map[string]any); ok {
		p.loadHeaderDocument(h)
	}
	data, _ := doc["data"].(map[string]any)
	set, err := document.FromDocument(data)
	if err != nil {
		return nil, err
	}
	p.env.Properties = set
	return p, nil
}

// Header field accessors.

func (p *Profile) Name() string       { return p.env.Name }
func (p *Profile) Controller() string { return p.env.Controller }
func (p *Profile) GameMode() string   { return p.env.GameMode }
func (p *Profile) MapName() string    { return p.env.MapName }
func (p *Profile) MapPath() string    { return p.env.MapPath }

// Properties returns the root property set for direct navigation.
func (p *Profile) Properties() *proptree.Set { return p.env.Properties }
