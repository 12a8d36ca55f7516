package domain

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// NodeType names a UI primitive. The vocabulary is open: exporters treat
// unknown types as opaque labels.
type NodeType string

const (
	NodeTypeNavbar NodeType = "Navbar"
	NodeTypeTabs   NodeType = "Tabs"
	NodeTypeCard   NodeType = "Card"
	NodeTypeList   NodeType = "List"
	NodeTypeForm   NodeType = "Form"
	NodeTypeButton NodeType = "Button"
	NodeTypeText   NodeType = "Text"
	NodeTypeImage  NodeType = "Image"
	NodeTypeHero   NodeType = "Hero"
)

// Palette is the set of primitives the studio offers for drag and drop.
var Palette = []NodeType{
	NodeTypeNavbar,
	NodeTypeTabs,
	NodeTypeCard,
	NodeTypeList,
	NodeTypeForm,
	NodeTypeButton,
	NodeTypeText,
	NodeTypeImage,
	NodeTypeHero,
}

type Node struct {
	ID    string         `json:"id" yaml:"id"`
	Type  NodeType       `json:"type" yaml:"type"`
	Props map[string]any `json:"props,omitempty" yaml:"props,omitempty"`
}

// DisplayTitle returns props.title when it is present and truthy, the way
// a JavaScript template would read it. Empty strings, false, zero, NaN and
// nil count as absent; lists and maps are always present.
func (n Node) DisplayTitle() (string, bool) {
	v, ok := n.Props["title"]
	if !ok || !truthy(v) {
		return "", false
	}
	return jsString(v), true
}

func truthy(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() > 0
	case reflect.Bool:
		return rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// jsString formats v like JavaScript's String(v): lists join their items
// with commas and maps print as [object Object].
func jsString(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return jsNumber(rv.Float())
	case reflect.Slice, reflect.Array:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = jsString(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	case reflect.Map, reflect.Struct:
		return "[object Object]"
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
		return jsString(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

func jsNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	case math.Abs(f) >= 1e21 || (f != 0 && math.Abs(f) < 1e-6):
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (n Node) clone() Node {
	out := Node{ID: n.ID, Type: n.Type}
	if n.Props != nil {
		out.Props = cloneMap(n.Props)
	}
	return out
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
