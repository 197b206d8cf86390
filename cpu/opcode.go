// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

// Op is an operation code of the instruction set.
type Op int

//go:generate go tool stringer -linecomment -type=Op
const (
	OP_ADDI          = Op(0)  // addi
	OP_ADD           = Op(1)  // add
	OP_SUB           = Op(2)  // sub
	OP_MUL           = Op(3)  // mul
	OP_J             = Op(4)  // j
	OP_BEQ           = Op(5)  // beq
	OP_VCONFIG       = Op(6)  // vconfig
	OP_VSETVL        = Op(7)  // vsetvl
	OP_VLW           = Op(8)  // vlw
	OP_VSW           = Op(9)  // vsw
	OP_VMV_X_S       = Op(10) // vmv.x.s
	OP_VMV_S_X       = Op(11) // vmv.s.x
	OP_VMV_V_X       = Op(12) // vmv.v.x
	OP_VMV_V_V       = Op(13) // vmv.v.v
	OP_VADD_VV       = Op(14) // vadd.vv
	OP_VMUL_VX       = Op(15) // vmul.vx
	OP_VSLIDEUP_VX   = Op(16) // vslideup.vx
	OP_VSLIDEDOWN_VX = Op(17) // vslidedown.vx
	OP_VINDEXMV      = Op(18) // vindexmv

	op_count = 19
)

// opMap maps mnemonics to operation codes.
var opMap = func() map[string]Op {
	ops := make(map[string]Op, op_count)
	for op := range Op(op_count) {
		ops[op.String()] = op
	}
	return ops
}()

// LookupOp returns the operation code for a mnemonic.
func LookupOp(mnemonic string) (op Op, ok bool) {
	op, ok = opMap[mnemonic]
	return
}
