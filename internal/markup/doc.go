// Package markup builds node trees from JSON, HTML and XML/SVG documents and
// writes normalized trees back out as JSON.
//
// The trees use the shapes understood by package tree: *tree.Node for parsed
// markup and map[string]any / []any for generic JSON. Attribute values are
// left as strings; normalizing them is the tree package's job.
package markup
