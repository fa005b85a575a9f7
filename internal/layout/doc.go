// Package layout implements the single-pass flex solver used by weft.
//
// Layout is solved from the top down: a parent sizes and positions its
// children while it is being visited, so a node's final size never depends
// on the size of its descendants. Children with a [Stretch] size on the
// parent's main axis share the remaining free space in proportion to their
// weights. When a weighted share violates a child's min or max bound the
// child is frozen at that bound and the space it gave up or consumed is
// redistributed among the remaining stretch siblings (see [Calculate]).
//
// Types are re-exported through the root weft package for public use.
package layout
