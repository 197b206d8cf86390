// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"fmt"
)

// Instruction is a decoded instruction, carrying exactly the typed
// operands its operation requires.
type Instruction interface {
	fmt.Stringer
	Op() Op

	instruction()
}

// AddImm is 'addi rd, rs, imm'.
type AddImm struct {
	Rd  int
	Rs  int
	Imm Word
}

// Arith is a register-register scalar operation: add, sub or mul.
type Arith struct {
	Code Op
	Rd   int
	Rs1  int
	Rs2  int
}

// Jump is 'j label'.
type Jump struct {
	Label string
}

// Branch is 'beq rs1, rs2, label'.
type Branch struct {
	Rs1   int
	Rs2   int
	Label string
}

// VConfig is 'vconfig'.
type VConfig struct{}

// VSetVl is 'vsetvl rd, rs'.
type VSetVl struct {
	Rd int
	Rs int
}

// VMem is a vector load (vlw) or store (vsw) of vl words at Base+Offset.
type VMem struct {
	Code   Op
	V      int
	Offset Word
	Base   int
}

// VMove is one of the vmv.* moves between scalar and vector registers.
type VMove struct {
	Code Op
	Dst  int
	Src  int
}

// VAdd is 'vadd.vv vd, vs1, vs2'.
type VAdd struct {
	Vd  int
	Vs1 int
	Vs2 int
}

// VScalar is a vector-scalar operation: vmul.vx, vslideup.vx or vslidedown.vx.
type VScalar struct {
	Code Op
	Vd   int
	Vs   int
	Rs   int
}

// VIndexMv is 'vindexmv vd, vs, vidx'.
type VIndexMv struct {
	Vd   int
	Vs   int
	Vidx int
}

func (AddImm) instruction()   {}
func (Arith) instruction()    {}
func (Jump) instruction()     {}
func (Branch) instruction()   {}
func (VConfig) instruction()  {}
func (VSetVl) instruction()   {}
func (VMem) instruction()     {}
func (VMove) instruction()    {}
func (VAdd) instruction()     {}
func (VScalar) instruction()  {}
func (VIndexMv) instruction() {}

func (AddImm) Op() Op     { return OP_ADDI }
func (in Arith) Op() Op   { return in.Code }
func (Jump) Op() Op       { return OP_J }
func (Branch) Op() Op     { return OP_BEQ }
func (VConfig) Op() Op    { return OP_VCONFIG }
func (VSetVl) Op() Op     { return OP_VSETVL }
func (in VMem) Op() Op    { return in.Code }
func (in VMove) Op() Op   { return in.Code }
func (VAdd) Op() Op       { return OP_VADD_VV }
func (in VScalar) Op() Op { return in.Code }
func (VIndexMv) Op() Op   { return OP_VINDEXMV }

func (in AddImm) String() string {
	return fmt.Sprintf("%v x%d, x%d, %d", in.Op(), in.Rd, in.Rs, in.Imm)
}

func (in Arith) String() string {
	return fmt.Sprintf("%v x%d, x%d, x%d", in.Op(), in.Rd, in.Rs1, in.Rs2)
}

func (in Jump) String() string {
	return fmt.Sprintf("%v %v", in.Op(), in.Label)
}

func (in Branch) String() string {
	return fmt.Sprintf("%v x%d, x%d, %v", in.Op(), in.Rs1, in.Rs2, in.Label)
}

func (in VConfig) String() string {
	return in.Op().String()
}

func (in VSetVl) String() string {
	return fmt.Sprintf("%v x%d, x%d", in.Op(), in.Rd, in.Rs)
}

func (in VMem) String() string {
	return fmt.Sprintf("%v v%d, %d(x%d)", in.Op(), in.V, in.Offset, in.Base)
}

func (in VMove) String() string {
	var dst, src byte = 'v', 'v'
	switch in.Code {
	case OP_VMV_X_S:
		dst = 'x'
	case OP_VMV_S_X, OP_VMV_V_X:
		src = 'x'
	}
	return fmt.Sprintf("%v %c%d, %c%d", in.Op(), dst, in.Dst, src, in.Src)
}

func (in VAdd) String() string {
	return fmt.Sprintf("%v v%d, v%d, v%d", in.Op(), in.Vd, in.Vs1, in.Vs2)
}

func (in VScalar) String() string {
	return fmt.Sprintf("%v v%d, v%d, x%d", in.Op(), in.Vd, in.Vs, in.Rs)
}

func (in VIndexMv) String() string {
	return fmt.Sprintf("%v v%d, v%d, v%d", in.Op(), in.Vd, in.Vs, in.Vidx)
}
