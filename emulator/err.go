// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"

	"github.com/ezrec/spmmsim/translate"
)

var f = translate.From

var (
	ErrMemoryFull = errors.New(f("matrices do not fit in memory"))
)

// ErrShape reports matrices that cannot be multiplied.
type ErrShape struct {
	ACols int
	BRows int
}

func (err ErrShape) Error() string {
	return f("A has %d columns, B has %d rows", err.ACols, err.BRows)
}

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int
	Err    error
}

func (err *ErrRuntime) Error() string {
	return f("line %d %v", err.LineNo, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
