// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"strconv"
	"strings"
)

const (
	VLEN        = 128  // Lanes per vector register.
	MEMORY_SIZE = 1024 // Words of memory.
)

var _cpu_defines = map[string]string{
	"VLEN":        strconv.Itoa(VLEN),
	"MEMORY_SIZE": strconv.Itoa(MEMORY_SIZE),
}

// Cpu is the simulation context for the scalar core and its vector unit.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	// LegacySlideUp reproduces the reference vslideup.vx, which leaves
	// lane vl-shift untouched instead of zero-filling it.
	LegacySlideUp bool

	Pc       int                        // Program counter (instruction index).
	Register [REGISTER_COUNT]Word       // Scalar register file.
	Vector   [REGISTER_COUNT][VLEN]Word // Vector register file.
	Vl       int                        // Active vector length.
	Memory   [MEMORY_SIZE]Word          // Flat word-addressed memory.

	Cycles      int // Instructions retired.
	MemAccesses int // Vector lanes transferred to or from memory.
}

// NewCpu creates a new CPU with all state zeroed.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers, vector registers and memory.
// - Zeros the program counter, vector length and statistics counters.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	clear(cpu.Vector[:])
	clear(cpu.Memory[:])
	cpu.Pc = 0
	cpu.Vl = 0
	cpu.Cycles = 0
	cpu.MemAccesses = 0
}

// String returns the current scalar CPU state as a string.
func (cpu *Cpu) String() (text string) {
	var sb strings.Builder

	fmt.Fprintf(&sb, "pc: %v\n", cpu.Pc)
	fmt.Fprintf(&sb, "vl: %v\n", cpu.Vl)
	sb.WriteString("rf:\n")
	for n, value := range cpu.Register {
		fmt.Fprintf(&sb, "%5s = %-8d", fmt.Sprintf("[x%d]", n), value)
		if (n+1)%8 == 0 {
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Halted returns true once the program counter has left the program.
func (cpu *Cpu) Halted(code []Instruction) bool {
	return cpu.Pc < 0 || cpu.Pc >= len(code)
}

// Tick executes the instruction at the program counter.
func (cpu *Cpu) Tick(code []Instruction, labels Labels) (done bool, err error) {
	if cpu.Halted(code) {
		done = true
		return
	}

	err = cpu.Execute(code[cpu.Pc], labels)

	return
}

// Run executes instructions until the program counter leaves the program.
func (cpu *Cpu) Run(code []Instruction, labels Labels) (err error) {
	for done := false; !done; {
		done, err = cpu.Tick(code, labels)
		if err != nil {
			return
		}
	}

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(inst Instruction, labels Labels) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrExecute{Pc: cpu.Pc, Instruction: inst}, err)
		}
	}()
	if cpu.Verbose {
		log.Printf("%03d: %v", cpu.Pc, inst)
	}

	next_pc := cpu.Pc + 1

	rf := &cpu.Register
	vrf := &cpu.Vector

	switch in := inst.(type) {
	case AddImm:
		rf[in.Rd] = rf[in.Rs] + in.Imm
	case Arith:
		a, b := rf[in.Rs1], rf[in.Rs2]
		switch in.Code {
		case OP_ADD:
			rf[in.Rd] = a + b
		case OP_SUB:
			rf[in.Rd] = a - b
		case OP_MUL:
			rf[in.Rd] = a * b
		default:
			err = ErrOpcodeUnknown(in.Code.String())
			return
		}
	case Jump:
		next_pc, err = labels.target(in.Label)
		if err != nil {
			return
		}
	case Branch:
		if rf[in.Rs1] == rf[in.Rs2] {
			next_pc, err = labels.target(in.Label)
			if err != nil {
				return
			}
		}
	case VConfig:
		cpu.Vl = VLEN
	case VSetVl:
		cpu.Vl = int(min(max(rf[in.Rs], 0), VLEN))
		rf[in.Rd] = Word(cpu.Vl)
	case VMem:
		var address Word
		address, err = cpu.effective(rf[in.Base], in.Offset)
		if err != nil {
			return
		}
		switch in.Code {
		case OP_VLW:
			err = cpu.vectorLoad(in.V, address)
		case OP_VSW:
			err = cpu.vectorStore(in.V, address)
		default:
			err = ErrOpcodeUnknown(in.Code.String())
		}
		if err != nil {
			return
		}
	case VMove:
		switch in.Code {
		case OP_VMV_X_S:
			rf[in.Dst] = vrf[in.Src][0]
		case OP_VMV_S_X:
			vrf[in.Dst][0] = rf[in.Src]
		case OP_VMV_V_X:
			value := rf[in.Src]
			for n := range cpu.Vl {
				vrf[in.Dst][n] = value
			}
		case OP_VMV_V_V:
			copy(vrf[in.Dst][:cpu.Vl], vrf[in.Src][:cpu.Vl])
		default:
			err = ErrOpcodeUnknown(in.Code.String())
			return
		}
	case VAdd:
		// Full width: not limited by vl.
		for n := range VLEN {
			vrf[in.Vd][n] = vrf[in.Vs1][n] + vrf[in.Vs2][n]
		}
	case VScalar:
		scalar := rf[in.Rs]
		switch in.Code {
		case OP_VMUL_VX:
			for n := range cpu.Vl {
				vrf[in.Vd][n] = vrf[in.Vs][n] * scalar
			}
		case OP_VSLIDEUP_VX:
			err = cpu.slideUp(in.Vd, in.Vs, scalar)
		case OP_VSLIDEDOWN_VX:
			err = cpu.slideDown(in.Vd, in.Vs, scalar)
		default:
			err = ErrOpcodeUnknown(in.Code.String())
		}
		if err != nil {
			return
		}
	case VIndexMv:
		err = cpu.indexMove(in.Vd, in.Vs, in.Vidx)
		if err != nil {
			return
		}
	default:
		err = ErrOpcodeUnknown(fmt.Sprintf("%v", inst))
		return
	}

	cpu.Pc = next_pc
	cpu.Cycles += 1

	// x0 is hardwired to zero.
	cpu.Register[0] = 0

	return
}

// target resolves a branch target.
func (labels Labels) target(label string) (pc int, err error) {
	pc, ok := labels[label]
	if !ok {
		err = ErrLabelMissing(label)
	}
	return
}
