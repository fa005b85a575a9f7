// Package reactive implements the dependency graph behind weft's reactive
// values.
//
// Sources (cells and memo outputs) are read by computations. While a
// computation runs, a [Tracker] records every source it reads together with
// the generation it saw. Committing the tracker replaces the computation's
// edge set wholesale, so branches that stopped reading a source stop
// depending on it.
//
// Writes are serialized through a single lock on the [Graph]. A write first
// computes the transitive closure of dependent computations, then publishes
// the value, bumps the source generation and merges the closure into the
// pending set. Nothing is executed inline: the frame scheduler drains the
// pending set with [Graph.TakePending].
//
// Values are published through atomic pointers, so reads never take the
// lock and never observe a value older than the last completed write.
package reactive
