// Package verify implements an independent, non-tree-building diagnostic
// walker over a raw arkprofile byte buffer. It never constructs the
// property tree that internal/proptree builds; it only re-derives offsets
// and cross-checks declared sizes against what the format's own shape
// implies, so a bug in the primary parser cannot hide a byte-layout
// mistake from verification.
package verify

import (
	"fmt"
	"io"
)

// Result is the outcome of a Walk.
type Result struct {
	PropertiesChecked int
	Errors            []string
}

// OK reports whether the walk found zero errors.
func (r Result) OK() bool { return len(r.Errors) == 0 }

type walker struct {
	data  []byte
	trace io.Writer
	res   Result
}

// Walk re-derives the property section boundaries by replaying the fixed
// header layout, then verifies every property's declared size against the
// bytes actually available, without building a property tree. trace, if
// non-nil, receives one indented line per property visited — passing nil
// disables tracing entirely (no per-call overhead beyond the check itself).
func Walk(data []byte, trace io.Writer) (Result, error) {
	w := &walker{data: data, trace: trace}

	start, err := findPropertyStart(data)
	if err != nil {
		return w.res, err
	}

	end := w.verifyProperties(start, len(data), 0)

	remaining := len(data) - end
	if remaining > 0 && remaining != 20 {
		w.error(0, fmt.Sprintf("unexpected trailing data: %d bytes at offset %d", remaining, end))
	}

	return w.res, nil
}

// findPropertyStart replays the fixed header fields to locate the byte
// offset where the property section begins, without using internal/stream
// or internal/envelope — verification must stay independent of the
// primary read path.
func findPropertyStart(data []byte) (int, error) {
	pos := 12 // header_v1, v2, v3
	if pos+4 > len(data) {
		return 0, fmt.Errorf("file too short for version field")
	}
	pos += 4 // version
	pos += 16 // guid
	var ok bool
	if _, pos, ok = readNTString(data, pos); !ok {
		return 0, fmt.Errorf("malformed file_type string")
	}
	pos += 8 // two int32s (0, 5)
	if _, pos, ok = readNTString(data, pos); !ok { // name
		return 0, fmt.Errorf("malformed name string")
	}
	if _, pos, ok = readNTString(data, pos); !ok { // controller
		return 0, fmt.Errorf("malformed controller string")
	}
	if _, pos, ok = readNTString(data, pos); !ok { // game_mode
		return 0, fmt.Errorf("malformed game_mode string")
	}
	if _, pos, ok = readNTString(data, pos); !ok { // map_name
		return 0, fmt.Errorf("malformed map_name string")
	}
	if _, pos, ok = readNTString(data, pos); !ok { // map_path
		return 0, fmt.Errorf("malformed map_path string")
	}
	pos += 12 // zero block
	pos += 4  // header_size
	pos += 4  // always 0
	pos += 1  // ASA separator byte
	if pos > len(data) {
		return 0, fmt.Errorf("header overruns file")
	}
	return pos, nil
}

func (w *walker) log(depth int, msg string) {
	if w.trace == nil {
		return
	}
	fmt.Fprintf(w.trace, "%s%s\n", indent(depth), msg)
}

func (w *walker) error(depth int, msg string) {
	w.res.Errors = append(w.res.Errors, fmt.Sprintf("%sERROR: %s", indent(depth), msg))
}

func indent(depth int) string {
	b := make([]byte, depth*2)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}

func (w *walker) verifyProperties(start, end, depth int) int {
	pos := start
	for pos < end {
		name, ptype, newPos, ok := readPair(w.data, pos, end)
		if !ok {
			return pos
		}
		pos = newPos
		if name == "None" {
			break
		}
		w.res.PropertiesChecked++
		switch ptype {
		case "StructProperty":
			pos = w.verifyStruct(name, pos, depth)
		case "ArrayProperty":
			pos = w.verifyArray(name, pos, depth)
		case "MapProperty":
			pos = w.verifyMap(name, pos, depth)
		case "SetProperty":
			pos = w.verifySet(name, pos, depth)
		case "BoolProperty":
			pos = w.verifyBool(name, pos, depth)
		default:
			pos = w.verifySimple(name, ptype, pos, depth)
		}
	}
	return pos
}
