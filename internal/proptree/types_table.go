package proptree

// RecognizedPropertyTypes is the fixed set of type_name strings the
// format defines (spec §6). Names outside this set still parse via the
// generic Simple path with a raw-bytes value fallback — UE5 may emit
// property types this codec has never seen, and the generic header
// shape (index, size, tag[, extra]) is common to all of them.
var RecognizedPropertyTypes = map[string]bool{
	"StructProperty":     true,
	"ArrayProperty":      true,
	"MapProperty":        true,
	"SetProperty":        true,
	"BoolProperty":       true,
	"IntProperty":        true,
	"UInt32Property":     true,
	"FloatProperty":      true,
	"DoubleProperty":     true,
	"Int64Property":      true,
	"UInt64Property":     true,
	"Int16Property":      true,
	"UInt16Property":     true,
	"ByteProperty":       true,
	"StrProperty":        true,
	"NameProperty":       true,
	"ObjectProperty":     true,
	"SoftObjectProperty": true,
}

// fixedWidths gives the on-disk element width, in bytes, of a fixed-width
// primitive type when used as an array element.
var fixedWidths = map[string]int{
	"IntProperty":    4,
	"UInt32Property": 4,
	"FloatProperty":  4,
	"DoubleProperty": 8,
	"Int64Property":  8,
	"UInt64Property": 8,
	"Int16Property":  2,
	"UInt16Property": 2,
	"ByteProperty":   1,
	"BoolProperty":   1,
}

// simpleFixedWidths gives the on-disk width of fixed-width Simple
// property values. This deliberately excludes ByteProperty: as an array
// element it is always one byte, but a top-level ByteProperty value can
// carry an arbitrary-length raw byte slice (spec §4.B), so its size must
// go through computeValueSize's explicit ByteProperty case instead of
// this fast path. asa.py's own _compute_value_size makes the same
// exclusion for the same reason.
var simpleFixedWidths = map[string]int{
	"IntProperty":    4,
	"UInt32Property": 4,
	"FloatProperty":  4,
	"DoubleProperty": 8,
	"Int64Property":  8,
	"UInt64Property": 8,
	"Int16Property":  2,
	"UInt16Property": 2,
}
