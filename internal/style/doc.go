// Package style resolves the visual and box properties of weft nodes.
//
// Sheets are named, ordered rule lists kept in a [Registry]. A node attaches
// sheets by name and they apply to it and its descendants. [Cascade.Resolve]
// walks the ancestor chain, matches every rule of every attached sheet and
// picks one declaration per property: highest specificity first, then the
// deeper sheet, then the later rule. Values are parsed only once they win,
// and a value that cannot be parsed falls back to the inherited or default
// value instead of failing the frame.
package style
