// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/ezrec/spmmsim/cpu"
)

const (
	REPORT_VECTORS = 10  // Vector registers shown.
	REPORT_LANES   = 16  // Lanes shown per vector register.
	REPORT_MEMORY  = 128 // Memory words shown.
	REPORT_STRIDE  = 16  // Memory words per row.
)

// row formats a slice of words with fixed width columns.
func row(words []cpu.Word) string {
	return strings.Join(lo.Map(words, func(w cpu.Word, _ int) string {
		return fmt.Sprintf("%5d", w)
	}), " ")
}

// Report writes the machine state, result matrix and metrics.
func (emu *Emulator) Report(w io.Writer) (err error) {
	var sb strings.Builder

	sb.WriteString(emu.Cpu.String())

	sb.WriteString("vrf:\n")
	for n := range REPORT_VECTORS {
		fmt.Fprintf(&sb, "%5s = %v\n", fmt.Sprintf("[v%d]", n), row(emu.Cpu.Vector[n][:REPORT_LANES]))
	}

	sb.WriteString("mem:\n")
	for n, words := range lo.Chunk(emu.Cpu.Memory[:REPORT_MEMORY], REPORT_STRIDE) {
		fmt.Fprintf(&sb, "%5d: %v\n", n*REPORT_STRIDE, row(words))
	}

	result, rerr := emu.Result()
	if rerr != nil {
		fmt.Fprintf(&sb, "result: %v\n", rerr)
	} else {
		sb.WriteString("result:\n")
		for _, words := range result {
			fmt.Fprintf(&sb, "  %v\n", row(words))
		}
	}

	fmt.Fprintf(&sb, "Completed in %d cycles, %d memory accesses.\n", emu.Cpu.Cycles, emu.Cpu.MemAccesses)

	_, err = io.WriteString(w, sb.String())
	return
}
