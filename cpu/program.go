// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
	"slices"
	"strings"
)

// Word is the machine word of registers, vector lanes and memory cells.
type Word = int64

// OperandKind classifies an assembled operand.
type OperandKind int

const (
	OPERAND_IMMEDIATE = OperandKind(0) // Decimal or 0b binary integer.
	OPERAND_MEMORY    = OperandKind(1) // offset(register)
	OPERAND_IDENT     = OperandKind(2) // Register or label name.
)

// Operand is a single classified operand of a statement.
type Operand struct {
	Kind  OperandKind
	Value Word   // Immediate value, or memory offset.
	Reg   int    // Memory base register.
	Text  string // Source text of the operand.
}

// Statement is one assembled instruction line, prior to decode.
type Statement struct {
	LineNo   int       // 1-based source line.
	Index    int       // Instruction index in the program.
	Words    []string  // Source words, after equate substitution.
	Mnemonic string    // Operation mnemonic.
	Operands []Operand // Classified operands.
}

// String returns the statement as normalized assembly text.
func (stmt Statement) String() string {
	texts := make([]string, len(stmt.Operands))
	for n, operand := range stmt.Operands {
		texts[n] = operand.Text
	}
	if len(texts) == 0 {
		return stmt.Mnemonic
	}
	return stmt.Mnemonic + " " + strings.Join(texts, ", ")
}

// Labels maps label names to the index of the instruction that follows them.
type Labels map[string]int

// Program is the output of the assembler.
type Program struct {
	Statements []Statement
	Labels     Labels
}

// Debug returns the statement at an instruction index, or nil if the
// index is outside of the program.
func (prog *Program) Debug(pc int) (stmt *Statement) {
	if pc < 0 || pc >= len(prog.Statements) {
		return
	}
	stmt = &prog.Statements[pc]
	return
}

// Decode converts every statement into a typed instruction.
func (prog *Program) Decode() (code []Instruction, err error) {
	code = make([]Instruction, 0, len(prog.Statements))
	for pc, stmt := range prog.Statements {
		var inst Instruction
		inst, err = Decode(stmt)
		if err != nil {
			err = ErrDecode{Pc: pc, Err: err}
			code = nil
			return
		}
		code = append(code, inst)
	}
	return
}

// String returns a listing of the program and its labels.
func (prog *Program) String() string {
	var sb strings.Builder

	for pc, stmt := range prog.Statements {
		fmt.Fprintf(&sb, "%-4d: %v\n", pc, stmt)
	}

	names := make([]string, 0, len(prog.Labels))
	for name := range prog.Labels {
		names = append(names, name)
	}
	slices.SortFunc(names, func(a, b string) int {
		if c := prog.Labels[a] - prog.Labels[b]; c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	for _, name := range names {
		fmt.Fprintf(&sb, "%v: %d\n", name, prog.Labels[name])
	}

	return sb.String()
}
