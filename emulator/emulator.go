// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"io"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/samber/lo"

	"github.com/ezrec/spmmsim/cpu"
	"github.com/ezrec/spmmsim/csr"
	"github.com/ezrec/spmmsim/internal"
	"github.com/ezrec/spmmsim/matrix"
)

// Register layout set up by the matrix loaders.
const (
	REG_A_COLS = 17 // Columns of A.
	REG_A_ROWS = 18 // Rows of A.
	REG_C_END  = 19 // Result write cursor, then end of the result.

	REG_A_ROW_PTR = 20 // CSR array base addresses.
	REG_A_COL_IDX = 21
	REG_A_VAL     = 22
	REG_B_ROW_PTR = 23
	REG_B_COL_IDX = 24
	REG_B_VAL     = 25

	REG_A_ROW_PTR_LEN = 26 // CSR array lengths.
	REG_A_COL_IDX_LEN = 27
	REG_A_VAL_LEN     = 28
	REG_B_ROW_PTR_LEN = 29
	REG_B_COL_IDX_LEN = 30
	REG_B_VAL_LEN     = 31

	REG_A_DENSE = 30 // Dense A base address.
	REG_B_DENSE = 31 // Dense B base address.
)

var _emulator_defines = func() map[string]string {
	defines := map[string]string{}
	for name, reg := range map[string]int{
		"A_COLS":        REG_A_COLS,
		"A_ROWS":        REG_A_ROWS,
		"C_END":         REG_C_END,
		"A_ROW_PTR":     REG_A_ROW_PTR,
		"A_COL_IDX":     REG_A_COL_IDX,
		"A_VAL":         REG_A_VAL,
		"B_ROW_PTR":     REG_B_ROW_PTR,
		"B_COL_IDX":     REG_B_COL_IDX,
		"B_VAL":         REG_B_VAL,
		"A_ROW_PTR_LEN": REG_A_ROW_PTR_LEN,
		"A_COL_IDX_LEN": REG_A_COL_IDX_LEN,
		"A_VAL_LEN":     REG_A_VAL_LEN,
		"B_ROW_PTR_LEN": REG_B_ROW_PTR_LEN,
		"B_COL_IDX_LEN": REG_B_COL_IDX_LEN,
		"B_VAL_LEN":     REG_B_VAL_LEN,
		"A_DENSE":       REG_A_DENSE,
		"B_DENSE":       REG_B_DENSE,
	} {
		defines[name] = fmt.Sprintf("x%d", reg)
	}
	return defines
}()

// Emulator state. CPU + program + loaded matrices.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.

	NumElements int // Element count of the result matrix.
	ResultCols  int // Column count of the result matrix.

	code []cpu.Instruction
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Assemble parses program text, with the emulator defines predefined,
// and loads the resulting program.
func (emu *Emulator) Assemble(input io.Reader) (err error) {
	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	prog, err := asm.Parse(input)
	if err != nil {
		return
	}

	err = emu.Load(prog)
	return
}

// Load decodes a program for execution.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	code, err := prog.Decode()
	if err != nil {
		lineno := 0
		var decode cpu.ErrDecode
		if errors.As(err, &decode) {
			if stmt := prog.Debug(decode.Pc); stmt != nil {
				lineno = stmt.LineNo
			}
		}
		err = &ErrRuntime{LineNo: lineno, Err: err}
		return
	}

	emu.Program = prog
	emu.code = code

	return
}

// Reset the CPU state and forget any loaded matrices.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.NumElements = 0
	emu.ResultCols = 0
}

// shape checks that a x b is a valid product.
func shape(a, b matrix.Dense) (err error) {
	err = a.Validate()
	if err != nil {
		return
	}
	err = b.Validate()
	if err != nil {
		return
	}
	if a.Cols() != b.Rows() {
		err = ErrShape{ACols: a.Cols(), BRows: b.Rows()}
	}
	return
}

// place copies data into memory at address, returning the next free address.
func (emu *Emulator) place(address int, data []int64) (next int, err error) {
	next = address + len(data)
	if next > cpu.MEMORY_SIZE {
		err = ErrMemoryFull
		return
	}
	copy(emu.Cpu.Memory[address:next], data)
	return
}

// finish records the matrix shapes and the result cursor.
func (emu *Emulator) finish(a, b matrix.Dense, cursor int) (err error) {
	emu.NumElements = a.Rows() * b.Cols()
	emu.ResultCols = b.Cols()
	if cursor+emu.NumElements > cpu.MEMORY_SIZE {
		err = ErrMemoryFull
		return
	}

	rf := &emu.Cpu.Register
	rf[REG_A_COLS] = cpu.Word(a.Cols())
	rf[REG_A_ROWS] = cpu.Word(a.Rows())
	rf[REG_C_END] = cpu.Word(cursor)

	if emu.Verbose {
		log.Printf("emulator: %dx%d * %dx%d, result at %d", a.Rows(), a.Cols(), b.Rows(), b.Cols(), cursor)
	}

	return
}

// LoadCSR encodes a and the transpose of b in compressed-row form, and
// places the six arrays in memory from address 0. Base addresses are
// set in x20..x25, and the array lengths in x26..x31.
func (emu *Emulator) LoadCSR(a, b matrix.Dense) (err error) {
	err = shape(a, b)
	if err != nil {
		return
	}

	ea := csr.Encode(a)
	eb := csr.Encode(b.Transpose())

	aa, ba := ea.Arrays(), eb.Arrays()
	arrays := append(aa[:], ba[:]...)

	rf := &emu.Cpu.Register
	address := 0
	for n, data := range arrays {
		rf[REG_A_ROW_PTR+n] = cpu.Word(address)
		rf[REG_A_ROW_PTR_LEN+n] = cpu.Word(len(data))
		address, err = emu.place(address, data)
		if err != nil {
			return
		}
	}

	err = emu.finish(a, b, address)
	return
}

// LoadDense places a and then b in memory in row-major order from
// address 0, with their base addresses in x30 and x31.
func (emu *Emulator) LoadDense(a, b matrix.Dense) (err error) {
	err = shape(a, b)
	if err != nil {
		return
	}

	rf := &emu.Cpu.Register

	rf[REG_A_DENSE] = 0
	address, err := emu.place(0, a.Flatten())
	if err != nil {
		return
	}

	rf[REG_B_DENSE] = cpu.Word(address)
	address, err = emu.place(address, b.Flatten())
	if err != nil {
		return
	}

	err = emu.finish(a, b, address)
	return
}

// LineNo returns the current line number for the executing statement.
func (emu *Emulator) LineNo() int {
	stmt := emu.Program.Debug(emu.Cpu.Pc)
	if stmt == nil {
		return 0
	}

	return stmt.LineNo
}

// Tick performs a single instruction of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Err: err}
		}
	}()

	done, err = emu.Cpu.Tick(emu.code, emu.Program.Labels)

	return
}

// Run ticks the emulator until the program halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Result returns the result matrix, read from the memory that ends at the
// address in x19.
func (emu *Emulator) Result() (m matrix.Dense, err error) {
	end := emu.Cpu.Register[REG_C_END]
	if end < cpu.Word(emu.NumElements) || end > cpu.MEMORY_SIZE {
		err = cpu.ErrMemoryBounds{Address: end - cpu.Word(emu.NumElements), Length: emu.NumElements}
		return
	}
	start := end - cpu.Word(emu.NumElements)

	m = matrix.Dense{}
	if emu.NumElements == 0 || emu.ResultCols == 0 {
		return
	}

	m = lo.Chunk(slices.Clone(emu.Cpu.Memory[start:end]), emu.ResultCols)

	return
}
