// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgram_Debug(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseLines([]string{
		"addi x1, x0, 16",
		"; comment",
		"addi x2, x0, 32",
		"add x3, x1, x2",
	})
	require.NoError(t, err)

	stmt := prog.Debug(0)
	if assert.NotNil(stmt) {
		assert.Equal(1, stmt.LineNo)
		assert.Equal(0, stmt.Index)
	}

	stmt = prog.Debug(1)
	if assert.NotNil(stmt) {
		assert.Equal(3, stmt.LineNo)
		assert.Equal(1, stmt.Index)
	}

	stmt = prog.Debug(2)
	if assert.NotNil(stmt) {
		assert.Equal(4, stmt.LineNo)
		assert.Equal("add", stmt.Mnemonic)
	}
}

func TestProgram_Debug_NotFound(t *testing.T) {
	assert := assert.New(t)

	prog := &Program{
		Statements: []Statement{
			{LineNo: 1, Index: 0, Words: []string{"vconfig"}, Mnemonic: "vconfig"},
		},
	}

	assert.Nil(prog.Debug(10))
	assert.Nil(prog.Debug(1))
	assert.Nil(prog.Debug(-1))
}

func TestProgram_Decode(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseLines([]string{
		"vconfig",
		"loop:",
		"vlw v1, 0(a0)",
		"beq x1, x0, loop",
	})
	require.NoError(t, err)

	code, err := prog.Decode()
	assert.NoError(err)
	assert.Equal([]Instruction{
		VConfig{},
		VMem{Code: OP_VLW, V: 1, Offset: 0, Base: 10},
		Branch{Rs1: 1, Rs2: 0, Label: "loop"},
	}, code)
}

func TestProgram_Decode_Error(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseLines([]string{
		"vconfig",
		"addi x1, x0, 1",
		"vfoo v1, v2",
	})
	require.NoError(t, err)

	code, err := prog.Decode()
	assert.Nil(code)
	assert.ErrorIs(err, ErrOpcodeUnknown("vfoo"))

	var decode ErrDecode
	if assert.True(errors.As(err, &decode)) {
		assert.Equal(2, decode.Pc)
		assert.Equal(3, prog.Debug(decode.Pc).LineNo)
	}
}

func TestProgram_String(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	prog, err := asm.ParseLines([]string{
		"start:",
		"addi   x1,  x0,   5 ; five",
		"loop:",
		"again:",
		"beq x1, x0, start",
		"end:",
	})
	require.NoError(t, err)

	expected := "" +
		"0   : addi x1, x0, 5\n" +
		"1   : beq x1, x0, start\n" +
		"start: 0\n" +
		"again: 1\n" +
		"loop: 1\n" +
		"end: 2\n"

	assert.Equal(expected, prog.String())
}
