// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// decoder reads typed operands out of a statement.
type decoder struct {
	stmt Statement
	op   Op
}

// count checks the operand count.
func (dc *decoder) count(want int) (err error) {
	if got := len(dc.stmt.Operands); got != want {
		err = ErrOperandCount{Op: dc.op, Want: want, Got: got}
	}
	return
}

// reg resolves operand n as a register name.
func (dc *decoder) reg(n int) (index int, err error) {
	operand := dc.stmt.Operands[n]
	if operand.Kind != OPERAND_IDENT {
		err = ErrOperandKind
		return
	}
	return Register(operand.Text)
}

// imm reads operand n as an immediate.
func (dc *decoder) imm(n int) (value Word, err error) {
	operand := dc.stmt.Operands[n]
	if operand.Kind != OPERAND_IMMEDIATE {
		err = ErrOperandKind
		return
	}
	value = operand.Value
	return
}

// label reads operand n as a label name.
func (dc *decoder) label(n int) (name string, err error) {
	operand := dc.stmt.Operands[n]
	if operand.Kind != OPERAND_IDENT || !labelPattern.MatchString(operand.Text) {
		err = ErrOperandKind
		return
	}
	name = operand.Text
	return
}

// regs resolves all operands as register names.
func (dc *decoder) regs(want int) (index []int, err error) {
	err = dc.count(want)
	if err != nil {
		return
	}
	index = make([]int, want)
	for n := range want {
		index[n], err = dc.reg(n)
		if err != nil {
			return
		}
	}
	return
}

// memory reads a vector load/store address, either as 'v, offset(base)'
// or as 'v, offset, base'.
func (dc *decoder) memory() (inst VMem, err error) {
	inst.Code = dc.op

	switch len(dc.stmt.Operands) {
	case 2:
		operand := dc.stmt.Operands[1]
		if operand.Kind != OPERAND_MEMORY {
			err = ErrOperandKind
			return
		}
		inst.Offset = operand.Value
		inst.Base = operand.Reg
	case 3:
		inst.Offset, err = dc.imm(1)
		if err != nil {
			return
		}
		inst.Base, err = dc.reg(2)
		if err != nil {
			return
		}
	default:
		err = ErrOperandCount{Op: dc.op, Want: 2, Got: len(dc.stmt.Operands)}
		return
	}

	inst.V, err = dc.reg(0)
	return
}

// Decode converts a statement into a typed instruction, checking the
// opcode, the operand count and the operand kinds.
func Decode(stmt Statement) (inst Instruction, err error) {
	op, ok := LookupOp(stmt.Mnemonic)
	if !ok {
		err = ErrOpcodeUnknown(stmt.Mnemonic)
		return
	}

	dc := &decoder{stmt: stmt, op: op}

	var r []int

	switch op {
	case OP_ADDI:
		err = dc.count(3)
		if err != nil {
			return
		}
		var in AddImm
		in.Rd, err = dc.reg(0)
		if err != nil {
			return
		}
		in.Rs, err = dc.reg(1)
		if err != nil {
			return
		}
		in.Imm, err = dc.imm(2)
		if err != nil {
			return
		}
		inst = in
	case OP_ADD, OP_SUB, OP_MUL:
		r, err = dc.regs(3)
		if err != nil {
			return
		}
		inst = Arith{Code: op, Rd: r[0], Rs1: r[1], Rs2: r[2]}
	case OP_J:
		err = dc.count(1)
		if err != nil {
			return
		}
		var in Jump
		in.Label, err = dc.label(0)
		if err != nil {
			return
		}
		inst = in
	case OP_BEQ:
		err = dc.count(3)
		if err != nil {
			return
		}
		var in Branch
		in.Rs1, err = dc.reg(0)
		if err != nil {
			return
		}
		in.Rs2, err = dc.reg(1)
		if err != nil {
			return
		}
		in.Label, err = dc.label(2)
		if err != nil {
			return
		}
		inst = in
	case OP_VCONFIG:
		err = dc.count(0)
		if err != nil {
			return
		}
		inst = VConfig{}
	case OP_VSETVL:
		r, err = dc.regs(2)
		if err != nil {
			return
		}
		inst = VSetVl{Rd: r[0], Rs: r[1]}
	case OP_VLW, OP_VSW:
		inst, err = dc.memory()
		if err != nil {
			inst = nil
			return
		}
	case OP_VMV_X_S, OP_VMV_S_X, OP_VMV_V_X, OP_VMV_V_V:
		r, err = dc.regs(2)
		if err != nil {
			return
		}
		inst = VMove{Code: op, Dst: r[0], Src: r[1]}
	case OP_VADD_VV:
		r, err = dc.regs(3)
		if err != nil {
			return
		}
		inst = VAdd{Vd: r[0], Vs1: r[1], Vs2: r[2]}
	case OP_VMUL_VX, OP_VSLIDEUP_VX, OP_VSLIDEDOWN_VX:
		r, err = dc.regs(3)
		if err != nil {
			return
		}
		inst = VScalar{Code: op, Vd: r[0], Vs: r[1], Rs: r[2]}
	case OP_VINDEXMV:
		r, err = dc.regs(3)
		if err != nil {
			return
		}
		inst = VIndexMv{Vd: r[0], Vs: r[1], Vidx: r[2]}
	default:
		err = ErrOpcodeUnknown(stmt.Mnemonic)
	}

	return
}
