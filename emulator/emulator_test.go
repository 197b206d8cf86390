// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"maps"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/spmmsim/cpu"
	"github.com/ezrec/spmmsim/matrix"
)

// denseKernel multiplies A by its transpose, one word at a time.
var denseKernel = []string{
	"addi t0, x0, 1",
	"vsetvl t0, t0 ; vl = 1",
	"add a2, A_ROWS, x0 ; columns of B",
	"addi s0, x0, 0",
	"row:",
	"beq s0, A_ROWS, done",
	"addi s1, x0, 0",
	"col:",
	"beq s1, a2, next",
	"addi a0, x0, 0",
	"addi a1, x0, 0",
	"inner:",
	"beq a0, A_COLS, store",
	"mul t1, s0, A_COLS",
	"add t1, t1, a0",
	"add t1, t1, A_DENSE",
	"vlw v1, 0(t1)",
	"vmv.x.s t2, v1",
	"mul a3, a0, a2",
	"add a3, a3, s1",
	"add a3, a3, B_DENSE",
	"vlw v2, 0(a3)",
	"vmv.x.s a4, v2",
	"mul a4, t2, a4",
	"add a1, a1, a4",
	"addi a0, a0, 1",
	"j inner",
	"store:",
	"vmv.s.x v3, a1",
	"vsw v3, 0, C_END",
	"addi C_END, C_END, 1",
	"addi s1, s1, 1",
	"j col",
	"next:",
	"addi s0, s0, 1",
	"j row",
	"done:",
}

func multiply(a, b matrix.Dense) (c matrix.Dense) {
	c = make(matrix.Dense, a.Rows())
	for i := range c {
		c[i] = make([]int64, b.Cols())
		for j := range c[i] {
			for k := range a.Cols() {
				c[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return
}

func assemble(t *testing.T, emu *Emulator, program []string) {
	err := emu.Assemble(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)
}

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Equal(0, emu.LineNo())

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	defines := maps.Collect(emu.Defines())

	assert.Equal("x17", defines["A_COLS"])
	assert.Equal("x18", defines["A_ROWS"])
	assert.Equal("x19", defines["C_END"])
	assert.Equal("x20", defines["A_ROW_PTR"])
	assert.Equal("x25", defines["B_VAL"])
	assert.Equal("x26", defines["A_ROW_PTR_LEN"])
	assert.Equal("x31", defines["B_VAL_LEN"])
	assert.Equal("x30", defines["A_DENSE"])
	assert.Equal("x31", defines["B_DENSE"])
	assert.Equal("128", defines["VLEN"])
	assert.Equal("1024", defines["MEMORY_SIZE"])
	assert.Equal(19, len(defines))
}

func TestEmulatorLoadCSR(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	a := matrix.Example()

	// B = A, so the B arrays hold the compressed rows of A transposed.
	err := emu.LoadCSR(a, a)
	require.NoError(t, err)

	mem := emu.Cpu.Memory[:]
	assert.Equal([]cpu.Word{0, 2, 2, 5, 7}, mem[0:5])
	assert.Equal([]cpu.Word{0, 1, 0, 1, 2, 2, 3}, mem[5:12])
	assert.Equal([]cpu.Word{3, 2, 4, 5, 1, 3, 2}, mem[12:19])
	assert.Equal([]cpu.Word{0, 2, 4, 6, 7}, mem[19:24])
	assert.Equal([]cpu.Word{0, 2, 0, 2, 2, 3, 3}, mem[24:31])
	assert.Equal([]cpu.Word{3, 4, 2, 5, 1, 3, 2}, mem[31:38])
	assert.Equal(cpu.Word(0), mem[38])

	rf := emu.Cpu.Register
	assert.Equal([]cpu.Word{0, 5, 12, 19, 24, 31}, rf[REG_A_ROW_PTR:REG_B_VAL+1])
	assert.Equal([]cpu.Word{5, 7, 7, 5, 7, 7}, rf[REG_A_ROW_PTR_LEN:REG_B_VAL_LEN+1])
	assert.Equal(cpu.Word(4), rf[REG_A_COLS])
	assert.Equal(cpu.Word(4), rf[REG_A_ROWS])
	assert.Equal(cpu.Word(38), rf[REG_C_END])
	assert.Equal(16, emu.NumElements)
	assert.Equal(4, emu.ResultCols)

	// B = At places the compressed rows of A twice.
	emu = NewEmulator()
	require.NoError(t, emu.LoadCSR(a, a.Transpose()))
	assert.Equal(emu.Cpu.Memory[0:19], emu.Cpu.Memory[19:38])
}

func TestEmulatorLoadCSRShape(t *testing.T) {
	assert := assert.New(t)

	a := matrix.Dense{
		{1, 0, 2},
		{0, 3, 0},
	}
	b := matrix.Dense{
		{1, 0},
		{0, 0},
		{0, 4},
	}

	emu := NewEmulator()
	err := emu.LoadCSR(a, b)
	require.NoError(t, err)

	rf := emu.Cpu.Register
	assert.Equal(cpu.Word(3), rf[REG_A_COLS])
	assert.Equal(cpu.Word(2), rf[REG_A_ROWS])
	assert.Equal(4, emu.NumElements)
	assert.Equal(2, emu.ResultCols)

	// A: rowptr [0 2 3], colidx [0 2 1], values [1 2 3]
	// Bt: rowptr [0 1 2], colidx [0 2], values [1 4]
	assert.Equal([]cpu.Word{3, 3, 3, 3, 2, 2}, rf[REG_A_ROW_PTR_LEN:REG_B_VAL_LEN+1])
	assert.Equal([]cpu.Word{0, 1, 2}, emu.Cpu.Memory[9:12])
	assert.Equal([]cpu.Word{0, 2, 1, 4}, emu.Cpu.Memory[12:16])
	assert.Equal(cpu.Word(16), rf[REG_C_END])
}

func TestEmulatorLoadErrors(t *testing.T) {
	assert := assert.New(t)

	wide := matrix.Dense{make([]int64, 600)}
	tall := wide.Transpose()

	table := [](struct {
		name string
		a, b matrix.Dense
		err  error
	}){
		{"shape", matrix.Dense{{1, 2, 3}}, matrix.Dense{{1, 2, 3}}, ErrShape{ACols: 3, BRows: 1}},
		{"empty", matrix.Dense{}, matrix.Example(), matrix.ErrEmpty},
		{"ragged", matrix.Example(), matrix.Dense{{1}, {2, 3}, {4}, {5}}, matrix.ErrRagged},
	}

	for _, entry := range table {
		emu := NewEmulator()
		assert.ErrorIs(emu.LoadCSR(entry.a, entry.b), entry.err, entry.name)
		assert.ErrorIs(emu.LoadDense(entry.a, entry.b), entry.err, entry.name)
	}

	// All zero matrices fit in CSR form, but not in dense form.
	emu := NewEmulator()
	assert.NoError(emu.LoadCSR(wide, tall))
	assert.ErrorIs(emu.LoadDense(wide, tall), ErrMemoryFull)

	// The result must fit after the inputs.
	column := make(matrix.Dense, 40)
	for i := range column {
		column[i] = []int64{1}
	}
	emu = NewEmulator()
	assert.ErrorIs(emu.LoadCSR(column, column.Transpose()), ErrMemoryFull)
}

func TestEmulatorLoadDense(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	a := matrix.Example()
	b := a.Transpose()

	err := emu.LoadDense(a, b)
	require.NoError(t, err)

	rf := emu.Cpu.Register
	assert.Equal(cpu.Word(0), rf[REG_A_DENSE])
	assert.Equal(cpu.Word(16), rf[REG_B_DENSE])
	assert.Equal(cpu.Word(32), rf[REG_C_END])
	assert.Equal(a.Flatten(), emu.Cpu.Memory[0:16])
	assert.Equal(b.Flatten(), emu.Cpu.Memory[16:32])
	assert.Equal(16, emu.NumElements)
}

func TestEmulatorDenseKernel(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		a    matrix.Dense
	}){
		{"example", matrix.Example()},
		{"wide", matrix.Dense{{1, 2, 3}, {-4, 5, 6}}},
		{"single", matrix.Dense{{7}}},
	}

	for _, entry := range table {
		a := entry.a
		b := a.Transpose()

		emu := NewEmulator()
		emu.Reset()
		require.NoError(t, emu.LoadDense(a, b), entry.name)
		assemble(t, emu, denseKernel)

		err := emu.Run()
		require.NoError(t, err, entry.name)

		result, err := emu.Result()
		assert.NoError(err, entry.name)
		assert.Equal(multiply(a, b), result, entry.name)

		rows, inner := a.Rows(), a.Cols()
		assert.Equal(rows*rows*(inner*2+1), emu.Cpu.MemAccesses, entry.name)
		assert.Equal(cpu.Word(0), emu.Cpu.Register[0], entry.name)
		assert.True(emu.Cpu.Halted(emu.code), entry.name)
	}
}

func TestEmulatorSparseSum(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"vsetvl t0, A_VAL_LEN",
		"vlw v1, 0(x22)",
		"addi t1, x0, 1",
		"loop:",
		"beq t0, x0, done",
		"vmv.x.s t2, v1",
		"add a0, a0, t2",
		"vslideup.vx v1, v1, t1",
		"addi t0, t0, -1",
		"j loop",
		"done:",
		"vmv.s.x v2, a0",
		"addi t3, x0, 1",
		"vsetvl t3, t3",
		"vsw v2, 0, C_END",
		"addi C_END, C_END, 1",
	}

	emu := NewEmulator()
	a := matrix.Example()
	require.NoError(t, emu.LoadCSR(a, a))
	assemble(t, emu, program)

	err := emu.Run()
	require.NoError(t, err)

	assert.Equal(cpu.Word(20), emu.Cpu.Memory[38])
	assert.Equal(cpu.Word(39), emu.Cpu.Register[REG_C_END])
	assert.Equal(8, emu.Cpu.MemAccesses)
	assert.Equal(3+7*6+1+5, emu.Cpu.Cycles)
}

func TestEmulatorErrors(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := emu.Assemble(strings.NewReader("addi x1, x0, 1\n\naddi x2, x0\n"))
	assert.ErrorIs(err, cpu.ErrOperandCount{Op: cpu.OP_ADDI, Want: 3, Got: 2})

	var runtime *ErrRuntime
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(3, runtime.LineNo)
	}

	err = emu.Assemble(strings.NewReader("addi x1, x0, 1\nbad:\nbad:\n"))
	var syntax *cpu.ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(3, syntax.LineNo)
	}
	assert.ErrorIs(err, cpu.ErrLabelDuplicate)

	err = emu.Assemble(strings.NewReader("j VLEN\nVLEN:\n"))
	assert.ErrorIs(err, cpu.ErrLabelEquate)

	err = emu.Assemble(strings.NewReader("C_END:\n"))
	assert.ErrorIs(err, cpu.ErrLabelEquate)

	emu = NewEmulator()
	assemble(t, emu, []string{
		"addi x1, x0, 1",
		"; nothing",
		"j nowhere",
	})
	err = emu.Run()
	assert.ErrorIs(err, cpu.ErrLabelMissing("nowhere"))
	if assert.True(errors.As(err, &runtime)) {
		assert.Equal(3, runtime.LineNo)
	}
	assert.Equal(1, emu.Cpu.Pc)
	assert.Equal(3, emu.LineNo())
}

func TestEmulatorResult(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	result, err := emu.Result()
	assert.NoError(err)
	assert.Equal(matrix.Dense{}, result)

	emu.NumElements = 4
	emu.ResultCols = 2
	emu.Cpu.Register[REG_C_END] = 2
	_, err = emu.Result()
	assert.ErrorIs(err, cpu.ErrMemoryBounds{Address: -2, Length: 4})

	emu.Cpu.Register[REG_C_END] = math.MinInt64
	_, err = emu.Result()
	assert.ErrorAs(err, &cpu.ErrMemoryBounds{})

	copy(emu.Cpu.Memory[10:], []cpu.Word{1, 2, 3, 4})
	emu.Cpu.Register[REG_C_END] = 14
	result, err = emu.Result()
	assert.NoError(err)
	assert.Equal(matrix.Dense{{1, 2}, {3, 4}}, result)

	// The result is a copy.
	result[0][0] = 99
	assert.Equal(cpu.Word(1), emu.Cpu.Memory[10])
}

func TestEmulatorReport(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	a := matrix.Example()
	require.NoError(t, emu.LoadDense(a, a.Transpose()))
	assemble(t, emu, denseKernel)
	require.NoError(t, emu.Run())

	var sb strings.Builder
	err := emu.Report(&sb)
	assert.NoError(err)

	text := sb.String()
	assert.Contains(text, "pc: 31\n")
	assert.Contains(text, "vl: 1\n")
	assert.Contains(text, "vrf:\n [v0] = ")
	assert.Contains(text, "mem:\n    0:     3     2     0     0")
	assert.Contains(text, "  112: ")
	assert.Contains(text, "result:\n     13     0    22     0\n")
	assert.Contains(text, "memory accesses.\n")
	assert.NotContains(text, "  128: ")
}

func TestEmulatorReset(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	a := matrix.Example()
	require.NoError(t, emu.LoadCSR(a, a.Transpose()))

	emu.Reset()
	assert.Equal(0, emu.NumElements)
	assert.Equal(0, emu.ResultCols)
	assert.Equal(cpu.Word(0), emu.Cpu.Register[REG_C_END])
	assert.Equal(cpu.Word(0), emu.Cpu.Memory[1])
}
