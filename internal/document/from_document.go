package document

import (
	"encoding/hex"
	"fmt"

	"github.com/ark-tools/arkprofile/internal/proptree"
)

// FromDocument reconstructs a property set from a document produced by
// ToDocument (or an equivalent JSON-decoded map, where numbers arrive as
// float64 — every numeric accessor below tolerates both forms).
func FromDocument(doc map[string]any) (*proptree.Set, error) {
	set := proptree.NewSet()
	for name, v := range doc {
		switch t := v.(type) {
		case []any:
			for _, item := range t {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, malformed(name, fmt.Errorf("expected object in indexed list, got %T", item))
				}
				e, err := entryFromDocument(m)
				if err != nil {
					return nil, malformed(name, err)
				}
				set.Add(name, e)
			}
		case map[string]any:
			e, err := entryFromDocument(t)
			if err != nil {
				return nil, malformed(name, err)
			}
			set.Add(name, e)
		default:
			return nil, malformed(name, fmt.Errorf("expected object or list, got %T", v))
		}
	}
	return set, nil
}

func entryFromDocument(m map[string]any) (proptree.Entry, error) {
	ptype, ok := str(m["_type"])
	if !ok {
		return nil, fmt.Errorf("missing _type")
	}

	switch ptype {
	case "StructProperty":
		return structFromDocument(m)
	case "ArrayProperty":
		return arrayFromDocument(m)
	case "MapProperty":
		return mapFromDocument(m)
	case "SetProperty":
		return setFromDocument(m)
	case "BoolProperty":
		return boolFromDocument(m)
	default:
		return simpleFromDocument(m, ptype)
	}
}

func structFromDocument(m map[string]any) (*proptree.StructEntry, error) {
	e := &proptree.StructEntry{
		StructName: mustStr(m["_struct"]),
		Package:    mustStr(m["_package"]),
		Index:      mustInt32(m["_index"]),
		Size:       mustInt32(m["_size"]),
		Tag:        mustByte(m["_tag"]),
	}
	if data, ok := m["data"].(map[string]any); ok {
		inner, err := FromDocument(data)
		if err != nil {
			return nil, err
		}
		e.Data = inner
		return e, nil
	}
	raw, ok := str(m["raw"])
	if !ok {
		return nil, fmt.Errorf("struct entry has neither data nor raw")
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode struct raw: %w", err)
	}
	e.Raw = b
	return e, nil
}

func arrayFromDocument(m map[string]any) (*proptree.ArrayEntry, error) {
	e := &proptree.ArrayEntry{
		ChildType:    mustStr(m["_child_type"]),
		StructName:   mustStr(m["_struct"]),
		Package:      mustStr(m["_package"]),
		Index:        mustInt32(m["_index"]),
		Size:         mustInt32(m["_size"]),
		Tag:          mustByte(m["_tag"]),
		Length:       mustInt32(m["length"]),
		HasSeparator: boolOf(m["_has_sep"]),
	}

	value := m["value"]
	switch e.ChildType {
	case "StructProperty":
		list, ok := value.([]any)
		if !ok {
			return nil, fmt.Errorf("struct array value must be a list")
		}
		e.Structs = make([]*proptree.Set, len(list))
		for i, item := range list {
			im, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("struct array element %d: expected object", i)
			}
			inner, err := FromDocument(im)
			if err != nil {
				return nil, err
			}
			e.Structs[i] = inner
		}
	default:
		if list, ok := value.([]any); ok {
			vals := make([]any, len(list))
			for i, item := range list {
				v, err := arrayElementFromDocument(e.ChildType, item)
				if err != nil {
					return nil, fmt.Errorf("array element %d: %w", i, err)
				}
				vals[i] = v
			}
			e.Values = vals
			break
		}
		raw, ok := str(value)
		if !ok {
			return nil, fmt.Errorf("array value must be a list or hex string")
		}
		b, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("decode array opaque value: %w", err)
		}
		e.Opaque = b
	}
	return e, nil
}

func mapFromDocument(m map[string]any) (*proptree.MapEntry, error) {
	raw, ok := str(m["raw"])
	if !ok {
		return nil, fmt.Errorf("map entry missing raw")
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode map raw: %w", err)
	}
	return &proptree.MapEntry{
		KeyType: mustStr(m["_key_type"]),
		ValType: mustStr(m["_val_type"]),
		Index:   mustInt32(m["_index"]),
		Size:    mustInt32(m["_size"]),
		Tag:     mustByte(m["_tag"]),
		Raw:     b,
	}, nil
}

func setFromDocument(m map[string]any) (*proptree.SetEntry, error) {
	e := &proptree.SetEntry{
		ElemType: mustStr(m["_elem_type"]),
		Index:    mustInt32(m["_index"]),
		Size:     mustInt32(m["_size"]),
		Tag:      mustByte(m["_tag"]),
	}
	if list, ok := m["value"].([]any); ok {
		names := make([]string, len(list))
		for i, v := range list {
			s, ok := str(v)
			if !ok {
				return nil, fmt.Errorf("set name %d is not a string", i)
			}
			names[i] = s
		}
		e.IsNameList = true
		e.Names = names
		return e, nil
	}
	raw, ok := str(m["raw"])
	if !ok {
		return nil, fmt.Errorf("set entry has neither value nor raw")
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decode set raw: %w", err)
	}
	e.Raw = b
	return e, nil
}

func boolFromDocument(m map[string]any) (*proptree.BoolEntry, error) {
	return &proptree.BoolEntry{
		Index: mustInt32(m["_index"]),
		Value: mustByte(m["value"]),
	}, nil
}

func simpleFromDocument(m map[string]any, ptype string) (*proptree.SimpleEntry, error) {
	value, err := valueFromDocument(ptype, m["value"])
	if err != nil {
		return nil, fmt.Errorf("property value: %w", err)
	}
	e := &proptree.SimpleEntry{
		Index:    mustInt32(m["_index"]),
		Tag:      mustByte(m["_tag"]),
		PropType: ptype,
		Value:    value,
		Size:     mustInt32(m["_size"]),
	}
	if x, ok := m["_extra"]; ok {
		v := mustInt32(x)
		e.Extra = &v
	}
	return e, nil
}

// arrayElementFromDocument decodes one element of an ArrayProperty's value
// list. This differs from valueFromDocument for ObjectProperty: inside an
// array, ASA always serializes each element as a bare NTString (prefix 1 +
// name), never the Null/IndexOnly/Path-classified ObjectRef shape that a
// top-level ObjectProperty value uses. It also handles BoolProperty
// elements, which are single bytes and have no case in valueFromDocument.
func arrayElementFromDocument(childType string, v any) (any, error) {
	if childType == "ObjectProperty" {
		s, ok := str(v)
		if !ok {
			return nil, fmt.Errorf("object array element must be a string")
		}
		return s, nil
	}
	if childType == "BoolProperty" {
		return mustByte(v), nil
	}
	return valueFromDocument(childType, v)
}

// valueFromDocument decodes a single property value of propType from its
// document representation.
func valueFromDocument(propType string, v any) (any, error) {
	switch propType {
	case "IntProperty":
		return mustInt32(v), nil
	case "UInt32Property":
		return uint32(mustInt64(v)), nil
	case "FloatProperty":
		return float32FromDocument(v)
	case "DoubleProperty":
		return float64FromDocument(v)
	case "Int64Property":
		return mustInt64(v), nil
	case "UInt64Property":
		return uint64(mustInt64(v)), nil
	case "Int16Property":
		return int16(mustInt32(v)), nil
	case "UInt16Property":
		return uint16(mustInt32(v)), nil
	case "StrProperty", "NameProperty":
		s, _ := str(v)
		return s, nil
	case "ByteProperty":
		switch t := v.(type) {
		case string:
			b, err := hex.DecodeString(t)
			if err == nil && len(b) > 1 {
				return b, nil
			}
			return mustByte(v), nil
		default:
			return mustByte(v), nil
		}
	case "ObjectProperty":
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("object ref must be an object")
		}
		return objectRefFromDocument(m)
	case "SoftObjectProperty":
		m, ok := v.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("soft object path must be an object")
		}
		return proptree.SoftObjectPath{
			Package: mustStr(m["package"]),
			Asset:   mustStr(m["asset"]),
			SubPath: mustStr(m["sub_path"]),
		}, nil
	default:
		raw, ok := str(v)
		if !ok {
			return nil, fmt.Errorf("expected hex string for opaque value, got %T", v)
		}
		b, err := hex.DecodeString(raw)
		if err != nil {
			return nil, fmt.Errorf("decode opaque value: %w", err)
		}
		return b, nil
	}
}

func objectRefFromDocument(m map[string]any) (proptree.ObjectRef, error) {
	kind, _ := str(m["_ref_kind"])
	switch kind {
	case "null":
		return proptree.ObjectRef{Kind: proptree.ObjectRefNull}, nil
	case "indexed_null":
		return proptree.ObjectRef{Kind: proptree.ObjectRefIndexedNull}, nil
	case "index":
		return proptree.ObjectRef{Kind: proptree.ObjectRefIndexOnly, Index: mustInt32(m["index"])}, nil
	case "path":
		return proptree.ObjectRef{Kind: proptree.ObjectRefPath, Path: mustStr(m["path"])}, nil
	case "opaque":
		raw, _ := str(m["raw"])
		b, err := hex.DecodeString(raw)
		if err != nil {
			return proptree.ObjectRef{}, fmt.Errorf("decode object ref raw: %w", err)
		}
		return proptree.ObjectRef{Kind: proptree.ObjectRefOpaque, Raw: b}, nil
	default:
		return proptree.ObjectRef{}, fmt.Errorf("unknown _ref_kind %q", kind)
	}
}

func float32FromDocument(v any) (float32, error) {
	if m, ok := v.(map[string]any); ok {
		raw, _ := str(m[specialFloatKey])
		b, err := hex.DecodeString(raw)
		if err != nil || len(b) != 4 {
			return 0, fmt.Errorf("malformed __special_float__")
		}
		bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		return float32FromBits(bits), nil
	}
	return float32(mustFloat64(v)), nil
}

func float64FromDocument(v any) (float64, error) {
	if m, ok := v.(map[string]any); ok {
		raw, _ := str(m[specialFloatKey])
		b, err := hex.DecodeString(raw)
		if err != nil || len(b) != 8 {
			return 0, fmt.Errorf("malformed __special_float__")
		}
		var bits uint64
		for i := 0; i < 8; i++ {
			bits |= uint64(b[i]) << (8 * i)
		}
		return float64FromBits(bits), nil
	}
	return mustFloat64(v), nil
}
