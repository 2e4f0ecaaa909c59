// Package document converts between a parsed property tree
// (*proptree.Set) and a language-neutral, JSON-compatible document: plain
// maps, slices, strings, numbers and bools. Byte slices become lowercase
// hex strings; non-finite floats become a tagged object so they survive a
// JSON round-trip (JSON itself cannot represent NaN/Inf).
package document

import (
	"encoding/hex"
	"fmt"
	"math"

	"github.com/ark-tools/arkprofile/internal/proptree"
)

// MalformedError reports a document that cannot be mapped back onto a
// property tree: a missing required key or a value of the wrong shape. An
// unrecognized "_type" tag is not itself an error: such an entry is read
// as a simple property whose value must be a hex string.
type MalformedError struct {
	Context string
	Cause   error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed document: %s: %v", e.Context, e.Cause)
}

func (e *MalformedError) Unwrap() error { return e.Cause }

func malformed(context string, cause error) error {
	return &MalformedError{Context: context, Cause: cause}
}

// specialFloatKey is the document key a non-finite float is tagged under,
// carrying the IEEE-754 double's exact bit pattern as hex.
const specialFloatKey = "__special_float__"

// ToDocument converts a property set into a document: a name -> entry (or
// list of entries, for duplicate names) mapping in on-disk name order.
func ToDocument(set *proptree.Set) map[string]any {
	out := make(map[string]any, set.Len())
	for _, name := range set.Names() {
		entries := set.Entries(name)
		if len(entries) == 1 {
			out[name] = entryToDocument(entries[0])
			continue
		}
		list := make([]any, len(entries))
		for i, e := range entries {
			list[i] = entryToDocument(e)
		}
		out[name] = list
	}
	return out
}

func entryToDocument(e proptree.Entry) map[string]any {
	switch v := e.(type) {
	case *proptree.StructEntry:
		m := map[string]any{
			"_type":   "StructProperty",
			"_struct": v.StructName,
			"_package": v.Package,
			"_index":  v.Index,
			"_size":   v.Size,
			"_tag":    v.Tag,
		}
		if v.Data != nil {
			m["data"] = ToDocument(v.Data)
		} else {
			m["raw"] = hex.EncodeToString(v.Raw)
		}
		return m
	case *proptree.ArrayEntry:
		m := map[string]any{
			"_type":       "ArrayProperty",
			"_child_type": v.ChildType,
			"_struct":     v.StructName,
			"_package":    v.Package,
			"_index":      v.Index,
			"_size":       v.Size,
			"_tag":        v.Tag,
			"_has_sep":    v.HasSeparator,
			"length":      v.Length,
		}
		switch {
		case v.Structs != nil || v.ChildType == "StructProperty":
			list := make([]any, len(v.Structs))
			for i, s := range v.Structs {
				list[i] = ToDocument(s)
			}
			m["value"] = list
		case v.Values != nil:
			list := make([]any, len(v.Values))
			for i, val := range v.Values {
				list[i] = valueToDocument(val)
			}
			m["value"] = list
		default:
			m["value"] = hex.EncodeToString(v.Opaque)
		}
		return m
	case *proptree.MapEntry:
		return map[string]any{
			"_type":     "MapProperty",
			"_key_type": v.KeyType,
			"_val_type": v.ValType,
			"_index":    v.Index,
			"_size":     v.Size,
			"_tag":      v.Tag,
			"raw":       hex.EncodeToString(v.Raw),
		}
	case *proptree.SetEntry:
		m := map[string]any{
			"_type":      "SetProperty",
			"_elem_type": v.ElemType,
			"_index":     v.Index,
			"_size":      v.Size,
			"_tag":       v.Tag,
		}
		if v.IsNameList {
			names := make([]any, len(v.Names))
			for i, n := range v.Names {
				names[i] = n
			}
			m["value"] = names
		} else {
			m["raw"] = hex.EncodeToString(v.Raw)
		}
		return m
	case *proptree.BoolEntry:
		return map[string]any{
			"_type":  "BoolProperty",
			"_index": v.Index,
			"_size":  int32(0),
			"value":  v.Value,
		}
	case *proptree.SimpleEntry:
		m := map[string]any{
			"_type":  v.PropType,
			"_index": v.Index,
			"_size":  v.Size,
			"_tag":   v.Tag,
			"value":  valueToDocument(v.Value),
		}
		if v.Extra != nil {
			m["_extra"] = *v.Extra
		}
		return m
	default:
		panic(fmt.Sprintf("document: unhandled entry type %T", e))
	}
}

func valueToDocument(v any) any {
	switch t := v.(type) {
	case []byte:
		return hex.EncodeToString(t)
	case float32:
		return float32ToDocument(t)
	case float64:
		return float64ToDocument(t)
	case proptree.ObjectRef:
		return objectRefToDocument(t)
	case proptree.SoftObjectPath:
		return softObjectPathToDocument(t)
	default:
		return v
	}
}

func float32ToDocument(f float32) any {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		var b [4]byte
		bits := math.Float32bits(f)
		b[0], b[1], b[2], b[3] = byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24)
		return map[string]any{specialFloatKey: hex.EncodeToString(b[:])}
	}
	return f
}

func float64ToDocument(f float64) any {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		var b [8]byte
		bits := math.Float64bits(f)
		for i := 0; i < 8; i++ {
			b[i] = byte(bits >> (8 * i))
		}
		return map[string]any{specialFloatKey: hex.EncodeToString(b[:])}
	}
	return f
}

func objectRefToDocument(ref proptree.ObjectRef) map[string]any {
	switch ref.Kind {
	case proptree.ObjectRefNull:
		return map[string]any{"_ref_kind": "null"}
	case proptree.ObjectRefIndexedNull:
		return map[string]any{"_ref_kind": "indexed_null"}
	case proptree.ObjectRefIndexOnly:
		return map[string]any{"_ref_kind": "index", "index": ref.Index}
	case proptree.ObjectRefPath:
		return map[string]any{"_ref_kind": "path", "path": ref.Path}
	default:
		return map[string]any{"_ref_kind": "opaque", "raw": hex.EncodeToString(ref.Raw)}
	}
}

func softObjectPathToDocument(sp proptree.SoftObjectPath) map[string]any {
	return map[string]any{
		"package":  sp.Package,
		"asset":    sp.Asset,
		"sub_path": sp.SubPath,
	}
}
