// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"math"
)

// vectorLoad copies vl words of memory starting at address into lanes
// [0, vl) of register v.
func (cpu *Cpu) vectorLoad(v int, address Word) (err error) {
	lo, hi, err := cpu.span(address)
	if err != nil {
		return
	}

	copy(cpu.Vector[v][:cpu.Vl], cpu.Memory[lo:hi])
	cpu.MemAccesses += cpu.Vl

	return
}

// vectorStore copies lanes [0, vl) of register v to memory at address.
func (cpu *Cpu) vectorStore(v int, address Word) (err error) {
	lo, hi, err := cpu.span(address)
	if err != nil {
		return
	}

	copy(cpu.Memory[lo:hi], cpu.Vector[v][:cpu.Vl])
	cpu.MemAccesses += cpu.Vl

	return
}

// effective adds a memory offset to a base address, rejecting sums that
// overflow a Word.
func (cpu *Cpu) effective(base, offset Word) (address Word, err error) {
	if (offset > 0 && base > math.MaxInt64-offset) || (offset < 0 && base < math.MinInt64-offset) {
		err = ErrMemoryBounds{Address: base, Length: cpu.Vl}
		return
	}

	address = base + offset
	return
}

// span returns the memory range of a vl-word transfer.
func (cpu *Cpu) span(address Word) (lo, hi int, err error) {
	if address < 0 || address > MEMORY_SIZE-Word(cpu.Vl) {
		err = ErrMemoryBounds{Address: address, Length: cpu.Vl}
		return
	}

	lo = int(address)
	hi = lo + cpu.Vl
	return
}

// shiftOf clamps a slide amount to the active vector length.
func (cpu *Cpu) shiftOf(amount Word) (shift int, err error) {
	if amount < 0 {
		err = ErrSlideShift
		return
	}

	shift = int(min(amount, Word(cpu.Vl)))
	return
}

// slideUp moves lanes [shift, vl) of vs down to [0, vl-shift) of vd, and
// zero-fills lanes [vl-shift, vl) of vd.
func (cpu *Cpu) slideUp(vd, vs int, amount Word) (err error) {
	shift, err := cpu.shiftOf(amount)
	if err != nil {
		return
	}

	vl := cpu.Vl
	dst := cpu.Vector[vd][:vl]
	copy(dst[:vl-shift], cpu.Vector[vs][shift:vl])

	fill := vl - shift
	if cpu.LegacySlideUp {
		fill++
	}
	if fill < vl {
		clear(dst[fill:])
	}

	return
}

// slideDown moves lanes [0, vl-shift) of vs up to [shift, vl) of vd, and
// zero-fills lanes [0, shift) of vd.
func (cpu *Cpu) slideDown(vd, vs int, amount Word) (err error) {
	shift, err := cpu.shiftOf(amount)
	if err != nil {
		return
	}

	vl := cpu.Vl
	dst := cpu.Vector[vd][:vl]
	copy(dst[shift:], cpu.Vector[vs][:vl-shift])
	clear(dst[:shift])

	return
}

// indexMove scatters lanes [0, vl) of vs into vd at the lane indexes held
// in vidx. Every index is checked before any lane is written, and the
// indexes are read before vd is modified, so vd may be vidx.
func (cpu *Cpu) indexMove(vd, vs, vidx int) (err error) {
	vl := cpu.Vl

	var index [VLEN]Word
	copy(index[:vl], cpu.Vector[vidx][:vl])

	for n, lane := range index[:vl] {
		if lane < 0 || lane >= VLEN {
			err = ErrLaneBounds{Lane: n, Index: lane}
			return
		}
	}

	src := cpu.Vector[vs]
	for n, lane := range index[:vl] {
		cpu.Vector[vd][lane] = src[n]
	}

	return
}
