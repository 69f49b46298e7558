// File: internal/tree/node.go
package tree

import "encoding/json"

// Well-known property names.
const (
	PropWidth    = "width"
	PropHeight   = "height"
	PropStyle    = "style"
	PropChildren = "children"
)

// Props is the loose property bag carried by a Node. Values are whatever the
// upstream parser produced (usually strings), nested style maps, and children.
type Props map[string]any

// Node is a single element in a markup tree.
type Node struct {
	Type  string `json:"type,omitempty"`
	Props Props  `json:"props,omitempty"`
}

// Kind classifies a value found where a node or child list may appear.
type Kind int

const (
	KindAbsent   Kind = iota // nil, nil pointer or nil map
	KindElement              // *Node, Node or map[string]any
	KindSequence             // []any, []*Node, []Node, []map[string]any
	KindScalar               // strings, numbers and booleans
	KindUnknown              // anything else; left untouched
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindElement:
		return "element"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// KindOf classifies v.
func KindOf(v any) Kind {
	switch x := v.(type) {
	case nil:
		return KindAbsent
	case *Node:
		if x == nil {
			return KindAbsent
		}
		return KindElement
	case map[string]any:
		if x == nil {
			return KindAbsent
		}
		return KindElement
	case Props:
		// A bare property map is not a node; it has no tag and no props key.
		return KindUnknown
	case Node:
		return KindElement
	case []any, []*Node, []Node, []map[string]any:
		return KindSequence
	case string, bool, json.Number,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return KindScalar
	default:
		return KindUnknown
	}
}

// element extracts the tag and property map of an element value. The returned
// map aliases the node's own storage so writes land in place. ok is false when
// v is not an element.
func element(v any) (tag string, props map[string]any, ok bool) {
	switch x := v.(type) {
	case *Node:
		if x == nil {
			return "", nil, false
		}
		return x.Type, x.Props, true
	case Node:
		return x.Type, x.Props, true
	case map[string]any:
		if x == nil {
			return "", nil, false
		}
		tag, _ = x["type"].(string)
		return tag, asMap(x["props"]), true
	}
	return "", nil, false
}

// asMap returns v as a mutable string-keyed map, or nil.
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case Props:
		return m
	}
	return nil
}
