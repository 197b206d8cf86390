// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"

	"github.com/ezrec/spmmsim/translate"
)

var f = translate.From

var (
	// Execution errors
	ErrOperandKind = errors.New(f("operand kind"))
	ErrSlideShift  = errors.New(f("slide shift negative"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelEquate     = errors.New(f("label and .equ share a name"))
	ErrMacroSyntax     = errors.New(f(".macro syntax"))
	ErrMacroNesting    = errors.New(f(".macro in .macro prohibited"))
	ErrMacroDuplicate  = errors.New(f(".macro duplicated"))
	ErrMacroLonely     = errors.New(f(".macro without .endm"))
	ErrMacroLonelyEndm = errors.New(f(".endm without .macro"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
)

type ErrRegisterUnknown string

func (er ErrRegisterUnknown) Error() string {
	return f("register '%v' not found", string(er))
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label '%v' not found", string(el))
}

type ErrOpcodeUnknown string

func (eo ErrOpcodeUnknown) Error() string {
	return f("instruction '%v' not recognized", string(eo))
}

// ErrOperandCount reports an instruction with the wrong number of operands.
type ErrOperandCount struct {
	Op   Op
	Want int
	Got  int
}

func (err ErrOperandCount) Error() string {
	return f("%v expects %d operands, got %d", err.Op, err.Want, err.Got)
}

// ErrMemoryBounds reports a vector transfer outside of memory.
type ErrMemoryBounds struct {
	Address Word
	Length  int
}

func (err ErrMemoryBounds) Error() string {
	return f("memory access [%d, %d) out of bounds", err.Address, err.Address+Word(err.Length))
}

// ErrLaneBounds reports a scatter index outside of the vector register.
type ErrLaneBounds struct {
	Lane  int
	Index Word
}

func (err ErrLaneBounds) Error() string {
	return f("lane %d index %d out of bounds", err.Lane, err.Index)
}

// ErrExecute locates a failing instruction by program counter.
type ErrExecute struct {
	Pc          int
	Instruction Instruction
}

func (err ErrExecute) Error() string {
	return f("pc %d: %v", err.Pc, err.Instruction)
}

// ErrDecode locates a statement that could not be decoded.
type ErrDecode struct {
	Pc  int
	Err error
}

func (err ErrDecode) Error() string {
	return f("pc %d: %v", err.Pc, err.Err)
}

func (err ErrDecode) Unwrap() error {
	return err.Err
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

type ErrMacro struct {
	Macro string
	Line  int
	Err   error
}

func (err ErrMacro) Error() string {
	return f("macro %v line %v %v", err.Macro, err.Line, err.Err.Error())
}

func (err ErrMacro) Unwrap() error {
	return err.Err
}
