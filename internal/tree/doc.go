// Package tree normalizes dimension fields in generic markup trees before they
// are handed to a renderer that only accepts numeric widths and heights.
//
// A tree is built from Node values (or the equivalent map[string]any shape
// produced by decoding JSON). Each node has a tag and a property map; the
// "children" property holds a single node, a sequence of nodes, a scalar, or
// nothing. Normalize walks the tree depth-first and, for every element:
//
//   - coerces the width and height attributes when the tag is image-like
//     (img, svg, image by default);
//   - coerces style.width and style.height regardless of tag.
//
// Coercion follows dimension.Coerce: numeric strings and "<n>px" become
// float64, while percentages, "auto" and unparseable text are kept verbatim.
// The walk never adds, removes or reorders nodes and never fails.
package tree
