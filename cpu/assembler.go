// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Macro represents a macro definition in the assembly language.
type Macro struct {
	LineNo int      // Line number of the macro definition.
	Args   []string // Arguments for the macro.
	Lines  []string // Lines of macro text to expand.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

var (
	labelPattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_]*$`)
	binaryPattern  = regexp.MustCompile(`^0b([01]+)$`)
	decimalPattern = regexp.MustCompile(`^-?[0-9]+$`)
	memoryPattern  = regexp.MustCompile(`^([0-9]+)\((.*)\)$`)
	parenPattern   = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass macro assembler for the vector instruction set.
type Assembler struct {
	Verbose    bool        // If set, verbosely logs the assembler actions.
	Statements []Statement // List of assembled statements.

	predefine map[string]string   // Predefines
	Labels    Labels              // Map of labels to instruction indexes.
	Equate    map[string]string   // Map of equates.
	Macro     map[string](*Macro) // Map of macros.

	expansions int // Count of macro expansions, for '@' local labels.
}

// Predefine defines a new equate or redefines an existing equate,
// applied at the start of every Parse.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the integer value of a word in any Go integer syntax.
func valueOf(word string) (value Word, err error) {
	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// classify determines the kind of a single operand word.
func classify(word string) (operand Operand, err error) {
	operand.Text = word

	switch {
	case decimalPattern.MatchString(word):
		operand.Kind = OPERAND_IMMEDIATE
		operand.Value, err = strconv.ParseInt(word, 10, 64)
		if err != nil {
			err = ErrParseNumber(word)
		}
	case binaryPattern.MatchString(word):
		operand.Kind = OPERAND_IMMEDIATE
		operand.Value, err = strconv.ParseInt(word[2:], 2, 64)
		if err != nil {
			err = ErrParseNumber(word)
		}
	case memoryPattern.MatchString(word):
		match := memoryPattern.FindStringSubmatch(word)
		operand.Kind = OPERAND_MEMORY
		operand.Value, err = strconv.ParseInt(match[1], 10, 64)
		if err != nil {
			err = ErrParseNumber(match[1])
			return
		}
		operand.Reg, err = Register(match[2])
		if err != nil {
			err = fmt.Errorf("%w: %w", ErrRegisterInvalid, err)
		}
	default:
		operand.Kind = OPERAND_IDENT
	}

	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value Word, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v Word
		v, err = valueOf(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or something else.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt64(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value, ok = st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// parseLine parses a single comment-free line, adding statements, labels,
// equates or expanding macros.
func (asm *Assembler) parseLine(line string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations
	line = parenPattern.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return strconv.FormatInt(value, 10)
	})
	if err != nil {
		return
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return
	}

	// label:
	if strings.HasSuffix(line, ":") {
		label := strings.TrimSpace(line[:len(line)-1])
		if !labelPattern.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Labels[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		_, ok = asm.Equate[label]
		if ok {
			err = ErrLabelEquate
			return
		}
		asm.Labels[label] = len(asm.Statements)
		return
	}

	var words []string
	for _, word := range strings.Fields(line) {
		word = strings.TrimRight(word, ",")
		if len(word) > 0 {
			words = append(words, word)
		}
	}

	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		_, ok = asm.Labels[words[1]]
		if ok {
			err = ErrLabelEquate
			return
		}
		asm.Equate[words[1]] = normalize(words[2])
		return
	}

	for n := 1; n < len(words); n++ {
		equate, ok := asm.Equate[words[n]]
		if ok {
			words[n] = equate
		}
	}

	// .macro processing
	macro, ok := asm.Macro[words[0]]
	if ok {
		return asm.expand(words[0], macro, words[1:])
	}

	stmt := Statement{
		LineNo:   lineno,
		Index:    len(asm.Statements),
		Words:    words,
		Mnemonic: words[0],
	}
	for _, word := range words[1:] {
		var operand Operand
		operand, err = classify(word)
		if err != nil {
			return
		}
		stmt.Operands = append(stmt.Operands, operand)
	}

	asm.Statements = append(asm.Statements, stmt)

	return
}

// normalize rewrites integer equate values in decimal, so they classify
// as immediates when substituted.
func normalize(value string) string {
	v, err := valueOf(value)
	if err != nil {
		return value
	}
	return strconv.FormatInt(v, 10)
}

// expand expands a macro invocation.
func (asm *Assembler) expand(name string, macro *Macro, args []string) (err error) {
	if len(args) != len(macro.Args) {
		err = ErrMacroSyntax
		return
	}

	asm.expansions++
	local := fmt.Sprintf("%v_%v_", name, asm.expansions)

	// Turn args into equs
	old_equate := maps.Clone(asm.Equate)
	for n, arg := range macro.Args {
		asm.Equate[arg] = normalize(args[n])
	}
	defer func() { asm.Equate = old_equate }()

	for n, line := range macro.Lines {
		lineno := macro.LineNo + n

		line = strings.ReplaceAll(line, "@", local)
		err = asm.parseLine(line, lineno)
		if err != nil {
			err = &ErrMacro{Macro: name, Line: lineno, Err: err}
			return
		}
	}

	return
}

// ParseLines parses an ordered sequence of source lines.
func (asm *Assembler) ParseLines(lines []string) (prog *Program, err error) {
	return asm.Parse(strings.NewReader(strings.Join(lines, "\n")))
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {

	scanner := bufio.NewScanner(input)

	var line string
	var lineno int
	var macro *Macro

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Labels = make(Labels)
	asm.Statements = nil
	asm.expansions = 0
	asm.Macro = make(map[string](*Macro))
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = normalize(val)
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line, _, _ = strings.Cut(text, ";")
		line = strings.TrimSpace(line)
		words := strings.Fields(line)

		// .macro NAME arg...
		if len(words) > 0 && words[0] == ".macro" {
			if macro != nil {
				err = ErrMacroNesting
				return
			}
			if len(words) < 2 || !labelPattern.MatchString(words[1]) {
				err = ErrMacroSyntax
				return
			}
			_, ok := asm.Macro[words[1]]
			if ok {
				err = ErrMacroDuplicate
				return
			}
			macro = &Macro{
				LineNo: lineno + 1,
			}
			if len(words) > 2 {
				macro.Args = words[2:]
			}
			asm.Macro[words[1]] = macro
			continue
		}

		if len(words) > 0 && words[0] == ".endm" {
			if macro == nil {
				err = ErrMacroLonelyEndm
				return
			}
			macro = nil
			continue
		}

		if macro != nil {
			macro.Lines = append(macro.Lines, line)
			continue
		}

		err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	if macro != nil {
		err = ErrMacroLonely
		return
	}

	prog = &Program{
		Statements: asm.Statements,
		Labels:     maps.Clone(asm.Labels),
	}

	return
}
