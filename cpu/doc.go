// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package cpu implements the scalar/vector processor and assembler of the
// sparse matrix multiply simulator.
//
// The CPU consists of a program counter, thirty-two 64-bit scalar registers
// (x0-x31, with x0 hardwired to zero), thirty-two vector registers of VLEN
// lanes (v0-v31), an active vector length (vl), and a flat word-addressed
// memory. Cycles and vector memory accesses are counted as it runs.
//
// The assembler reads a RISC-V flavoured assembly language with labels,
// equates, macros, and compile-time expression evaluation. Its statements
// are decoded into typed instructions before execution.
package cpu
