package arkprofile

import "encoding/hex"

func (p *Profile) headerDocument() map[string]any {
	e := p.env
	return map[string]any{
		"file_type":     e.FileType,
		"name":          e.Name,
		"controller":    e.Controller,
		"game_mode":     e.GameMode,
		"map_name":      e.MapName,
		"map_path":      e.MapPath,
		"version":       e.Version,
		"guid":          hex.EncodeToString(e.GUID[:]),
		"header_v1":     e.HeaderV1,
		"header_v2":     e.HeaderV2,
		"header_v3":     e.HeaderV3,
		"header_size":   e.HeaderSize,
		"trailing_data": hex.EncodeToString(e.Trailing),
	}
}

func (p *Profile) loadHeaderDocument(h map[string]any) {
	e := p.env
	e.FileType = strField(h, "file_type")
	e.Name = strField(h, "name")
	e.Controller = strField(h, "controller")
	if gm := strField(h, "game_mode"); gm != "" {
		e.GameMode = gm
	}
	e.MapName = strField(h, "map_name")
	e.MapPath = strField(h, "map_path")
	e.HeaderV1 = int32Field(h, "header_v1")
	e.HeaderV2 = int32Field(h, "header_v2")
	e.HeaderV3 = int32Field(h, "header_v3")
	e.HeaderSize = int32Field(h, "header_size")

	if guidHex := strField(h, "guid"); guidHex != "" {
		if b, err := hex.DecodeString(guidHex); err == nil && len(b) == 16 {
			copy(e.GUID[:], b)
		}
	}
	if trailingHex := strField(h, "trailing_data"); trailingHex != "" {
		if b, err := hex.DecodeString(trailingHex); err == nil {
			e.Trailing = b
		}
	}
}

func strField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func int32Field(m map[string]any, key string) int32 {
	switch v := m[key].(type) {
	case int32:
		return v
	case float64:
		return int32(v)
	default:
		return 0
	}
}
