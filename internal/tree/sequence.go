// File: internal/tree/sequence.go
package tree

// cloneSequence returns a shallow copy of a supported sequence. The copy has the
// same concrete slice type, length and order; entries are shared. Values that
// are not a supported sequence are returned as-is.
func cloneSequence(seq any) any {
	if sequenceLen(seq) == 0 {
		return seq
	}
	switch s := seq.(type) {
	case []any:
		out := make([]any, len(s))
		copy(out, s)
		return out
	case []*Node:
		out := make([]*Node, len(s))
		copy(out, s)
		return out
	case []Node:
		out := make([]Node, len(s))
		copy(out, s)
		return out
	case []map[string]any:
		out := make([]map[string]any, len(s))
		copy(out, s)
		return out
	}
	return seq
}

func sequenceLen(seq any) int {
	switch s := seq.(type) {
	case []any:
		return len(s)
	case []*Node:
		return len(s)
	case []Node:
		return len(s)
	case []map[string]any:
		return len(s)
	}
	return 0
}

func sequenceAt(seq any, i int) any {
	switch s := seq.(type) {
	case []any:
		return s[i]
	case []*Node:
		return s[i]
	case []Node:
		return s[i]
	case []map[string]any:
		return s[i]
	}
	return nil
}
