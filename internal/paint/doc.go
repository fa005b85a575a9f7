// Package paint holds the display list a frame hands to its renderer.
//
// A List is an ordered run of drawing items, each tagged with the id of
// the node that produced it. Lists are immutable once a frame commits and
// have a deterministic binary encoding, so two frames built from the same
// state encode to the same bytes.
package paint
