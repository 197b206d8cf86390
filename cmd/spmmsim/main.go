// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ezrec/spmmsim/emulator"
	"github.com/ezrec/spmmsim/matrix"
)

// loadMatrix loads a matrix file, or returns the fallback if no path is given.
func loadMatrix(path string, fallback matrix.Dense) matrix.Dense {
	if len(path) == 0 {
		return fallback
	}

	m, err := matrix.Load(path)
	if err != nil {
		log.Fatalf("%v: %v", path, err)
	}

	return m
}

// defaultB returns the B matrix used when none is given. The CSR loader
// encodes the transpose of B, so B = A places the compressed rows of At;
// the dense loader places B as given, so B = At.
func defaultB(a matrix.Dense, dense bool) matrix.Dense {
	if dense {
		return a.Transpose()
	}
	return a
}

func main() {
	var compile string
	var matrixA string
	var matrixB string
	var dense bool
	var legacy bool
	var listing bool
	var verbose bool

	flag.StringVar(&compile, "c", "", "assembly file to run")
	flag.StringVar(&matrixA, "a", "", "A matrix (.csv, .json or .parquet), default is the example matrix")
	flag.StringVar(&matrixB, "b", "", "B matrix (.csv, .json or .parquet), default is A for CSR and the transpose of A for -dense")
	flag.BoolVar(&dense, "dense", false, "Load matrices in dense form instead of CSR")
	flag.BoolVar(&legacy, "legacy-slideup", false, "Reference vslideup.vx fill boundary")
	flag.BoolVar(&listing, "l", false, "Print the program listing and labels")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) == 0 {
		log.Fatalf("%v: -c <file> is required", os.Args[0])
	}

	a := loadMatrix(matrixA, matrix.Example())
	b := loadMatrix(matrixB, defaultB(a, dense))

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Reset()
	emu.Cpu.LegacySlideUp = legacy

	var err error
	if dense {
		err = emu.LoadDense(a, b)
	} else {
		err = emu.LoadCSR(a, b)
	}
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	inf, err := os.Open(compile)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}
	defer inf.Close()

	err = emu.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", compile, err)
	}

	if listing {
		fmt.Print(emu.Program.String())
	}

	err = emu.Run()
	if err != nil {
		emu.Report(os.Stderr)
		log.Fatalf("%v: %v", compile, err)
	}

	err = emu.Report(os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}
