// Package ldbstore implements a CFR strategy profile that keeps all
// per-infoset accumulators on disk in a LevelDB database, rather than
// in memory.
//
// It is substantially slower than the in-memory cfr.PolicyTable but
// uses a constant amount of memory, so it can train games whose
// information-set tables do not fit in RAM.
package ldbstore
