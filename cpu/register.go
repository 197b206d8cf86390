// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"strconv"
)

// REGISTER_COUNT is the size of both the scalar and the vector register files.
const REGISTER_COUNT = 32

// abiName holds the calling-convention names of the scalar registers.
var abiName = [REGISTER_COUNT]string{
	"zero", "ra", "sp", "gp", "tp", "t0", "t1", "t2",
	"s0", "s1", "a0", "a1", "a2", "a3", "a4", "a5",
	"a6", "a7", "s2", "s3", "s4", "s5", "s6", "s7",
	"s8", "s9", "s10", "s11", "t3", "t4", "t5", "t6",
}

var abiIndex = func() map[string]int {
	index := make(map[string]int, len(abiName))
	for n, name := range abiName {
		index[name] = n
	}
	return index
}()

// Register resolves a register name to its index.
//
// Accepted forms are the ABI names (zero, ra, sp, ..., t6) and the raw
// forms x0..x31 and v0..v31.
func Register(name string) (index int, err error) {
	index, ok := abiIndex[name]
	if ok {
		return
	}

	if len(name) >= 2 && (name[0] == 'x' || name[0] == 'v') {
		digits := name[1:]
		if isDigits(digits) {
			var value int
			value, err = strconv.Atoi(digits)
			if err == nil && value < REGISTER_COUNT {
				index = value
				return
			}
		}
	}

	index = -1
	err = ErrRegisterUnknown(name)
	return
}

// RegisterName returns the ABI name of a scalar register index.
func RegisterName(index int) string {
	if index < 0 || index >= REGISTER_COUNT {
		return "?"
	}
	return abiName[index]
}

func isDigits(word string) bool {
	if len(word) == 0 {
		return false
	}
	for _, c := range word {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
