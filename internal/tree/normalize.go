// File: internal/tree/normalize.go
package tree

import (
	"github.com/xkilldash9x/dimnorm/internal/dimension"
)

// DefaultImageTags are the element kinds whose width/height attributes are
// coerced. Style dimensions are coerced on every element regardless.
var DefaultImageTags = []string{"img", "svg", "image"}

// Stats summarizes a single normalization run.
type Stats struct {
	Visited int // elements visited
	Coerced int // dimension fields rewritten to a number
	Kept    int // dimension fields left as they were
}

// Normalizer rewrites dimension fields in node trees. A Normalizer holds no
// per-run state and is safe for concurrent use on disjoint trees.
type Normalizer struct {
	imageTags map[string]struct{}
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithImageTags replaces the set of tags whose attribute dimensions are coerced.
func WithImageTags(tags ...string) Option {
	return func(n *Normalizer) {
		n.imageTags = make(map[string]struct{}, len(tags))
		for _, t := range tags {
			n.imageTags[t] = struct{}{}
		}
	}
}

// New creates a Normalizer. Without options it uses DefaultImageTags.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{}
	WithImageTags(DefaultImageTags...)(n)
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var defaultNormalizer = New()

// Normalize rewrites width/height attributes of image-like elements and
// style.width/style.height of every element to numbers where safe.
//
// root may be a single node, a sequence of nodes, or nil. Nodes are mutated in
// place; a sequence root yields a new slice of the same length and order. nil
// is returned unchanged.
func Normalize(root any) any {
	out, _ := defaultNormalizer.Run(root)
	return out
}

// FixDimensions coerces the dimension fields of one property map using the
// default image tag set. It is a no-op when props is nil.
func FixDimensions(props map[string]any, tag string) {
	var st Stats
	defaultNormalizer.fix(props, tag, &st)
}

// Run normalizes root and reports what it did. See Normalize.
func (n *Normalizer) Run(root any) (any, Stats) {
	var st Stats
	switch KindOf(root) {
	case KindElement:
		n.walk(root, &st)
		return root, st
	case KindSequence:
		out := n.walkSequence(root, &st)
		return out, st
	default:
		return root, st
	}
}

// fix applies the coercion to the attribute and style dimensions of props.
func (n *Normalizer) fix(props map[string]any, tag string, st *Stats) {
	if props == nil {
		return
	}
	if _, ok := n.imageTags[tag]; ok {
		coerceField(props, PropWidth, st)
		coerceField(props, PropHeight, st)
	}
	if style := asMap(props[PropStyle]); style != nil {
		coerceField(style, PropWidth, st)
		coerceField(style, PropHeight, st)
	}
}

func coerceField(m map[string]any, key string, st *Stats) {
	v, ok := m[key]
	if !ok {
		return
	}
	out := dimension.Coerce(v)
	if !dimension.IsNumber(v) && dimension.IsNumber(out) {
		st.Coerced++
	} else {
		st.Kept++
	}
	m[key] = out
}

// walk visits every element reachable from root in depth-first pre-order. It
// keeps its own stack so deeply nested input cannot exhaust the goroutine
// stack. Each element is fixed before any of its children are visited.
func (n *Normalizer) walk(root any, st *Stats) {
	stack := []any{root}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		tag, props, ok := element(v)
		if !ok {
			continue
		}
		st.Visited++
		n.fix(props, tag, st)
		if props == nil {
			continue
		}

		children, ok := props[PropChildren]
		if !ok {
			continue
		}
		switch KindOf(children) {
		case KindSequence:
			fresh := cloneSequence(children)
			props[PropChildren] = fresh
			// Push in reverse so the first child is visited first.
			for i := sequenceLen(fresh) - 1; i >= 0; i-- {
				if c := sequenceAt(fresh, i); KindOf(c) == KindElement {
					stack = append(stack, c)
				}
			}
		case KindElement:
			stack = append(stack, children)
		case KindAbsent, KindScalar, KindUnknown:
		}
	}
}

// walkSequence normalizes each element of a sequence root and returns a new
// slice of the same type, length and order.
func (n *Normalizer) walkSequence(seq any, st *Stats) any {
	fresh := cloneSequence(seq)
	for i := 0; i < sequenceLen(fresh); i++ {
		n.walk(sequenceAt(fresh, i), st)
	}
	return fresh
}
