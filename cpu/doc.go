// Package cpu implements a cycle-accurate, resumable MC68000 execution engine.
//
// Every instruction is decoded once, through a table built on first use, into
// an Instruction descriptor. A descriptor references short micro-op programs
// held in a shared Store: one program per addressing mode, size and role for
// operand access, and one per timing shape for the operation itself.
//
// The engine walks those programs one micro-op at a time. Each micro-op costs
// a fixed number of half-cycles, plus whatever delay the attached Bus reports.
// RunFor consumes a time budget and suspends between micro-ops, so a host may
// slice time arbitrarily finely without changing the sequence of bus
// transactions the processor issues.
//
// Exceptions (reset, bus and address errors, trace, interrupts, traps) are
// resolved by a fixed priority order and processed by the same micro-op
// machinery, building the 68000 stack frames on the attached bus.
package cpu
