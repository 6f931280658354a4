package machine

import (
	"bufio"
	"io"
	"log"
	"math/big"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"gopkg.in/yaml.v3"
)

// Program is an ordered FRACTRAN fraction list. The order is semantically
// significant; it defines the priority of the step scan. A Program is built
// once at setup and never mutated during execution.
type Program struct {
	Name      string     // Optional program name.
	Fractions []Fraction // Ordered fraction list.
	Start     *big.Int   // Default starting value, may be nil.
	MaxSteps  int        // Default step budget, 0 if unset.
}

// NewProgram builds a Program from numerator/denominator pairs.
func NewProgram(pairs ...[2]int64) (prog *Program, err error) {
	prog = &Program{}

	for _, pair := range pairs {
		var frac Fraction
		frac, err = NewFraction(pair[0], pair[1])
		if err != nil {
			prog = nil
			return
		}
		prog.Fractions = append(prog.Fractions, frac)
	}

	return
}

// Label returns the single-letter label of the fraction at index n,
// assigned by position: A, B, C, ...
func (prog *Program) Label(n int) string {
	return string(rune('A' + n))
}

// String renders the program as its space-separated fraction list.
func (prog *Program) String() string {
	fracs := make([]string, 0, len(prog.Fractions))
	for _, frac := range prog.Fractions {
		fracs = append(fracs, frac.String())
	}

	return strings.Join(fracs, " ")
}

// Parser is a single pass parser for FRACTRAN program text.
//
// The format is fractions as 'num/den' tokens separated by whitespace, one
// or many per line. A bare integer token means n/1. '#' starts a comment.
// '.equ NAME value' defines an equate; values anywhere may be decimal
// integers, equate names, or $(expr) Starlark expressions evaluated over the
// equates defined so far.
type Parser struct {
	Verbose bool             // If set, verbosely logs the parser actions.
	Equate  map[string]int64 // Map of equates.
}

// Parse parses an input stream into a Program.
func (par *Parser) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			prog = nil
		}
	}()

	par.Equate = map[string]int64{}

	prog = &Program{}
	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if par.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		text_comment := strings.Split(text, "#")
		line = strings.TrimSpace(text_comment[0])

		words := strings.Fields(line)
		if len(words) == 0 {
			continue
		}

		// .equ NAME value
		if words[0] == ".equ" {
			if len(words) != 3 {
				err = ErrEquateSyntax
				return
			}
			_, ok := par.Equate[words[1]]
			if ok {
				err = ErrEquateDuplicate
				return
			}
			var value int64
			value, err = par.valueOf(words[2])
			if err != nil {
				return
			}
			par.Equate[words[1]] = value
			continue
		}

		for _, word := range words {
			var frac Fraction
			frac, err = par.parseFraction(word)
			if err != nil {
				return
			}
			prog.Fractions = append(prog.Fractions, frac)
		}
	}

	err = scanner.Err()

	return
}

// parseFraction parses a single 'num/den' token.
func (par *Parser) parseFraction(word string) (frac Fraction, err error) {
	num_word, den_word := splitFraction(word)

	var num, den int64
	num, err = par.valueOf(num_word)
	if err != nil {
		return
	}

	den = 1
	if len(den_word) != 0 {
		den, err = par.valueOf(den_word)
		if err != nil {
			return
		}
	}

	return NewFraction(num, den)
}

// splitFraction splits a token at its first top-level '/', so that division
// inside a $(...) expression is left intact.
func splitFraction(word string) (num, den string) {
	depth := 0
	for n, c := range word {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		case '/':
			if depth == 0 {
				return word[:n], word[n+1:]
			}
		}
	}

	return word, ""
}

// valueOf returns the value of a single word.
func (par *Parser) valueOf(word string) (value int64, err error) {
	if strings.HasPrefix(word, "$(") && strings.HasSuffix(word, ")") {
		return par.evalExpression(word[2 : len(word)-1])
	}

	value, ok := par.Equate[word]
	if ok {
		return
	}

	value, err = strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}

	return
}

// evalExpression evaluates a $(...) expression with Starlark, with all
// current equates predeclared.
func (par *Parser) evalExpression(expr string) (value int64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, equ := range par.Equate {
		pred[key] = starlark.MakeInt64(equ)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
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

// programFile is the on-disk YAML program description.
type programFile struct {
	Name      string   `yaml:"name"`
	Fractions []string `yaml:"fractions"`
	Start     string   `yaml:"start"`
	MaxSteps  int      `yaml:"max_steps"`
}

// LoadProgram reads a YAML program description:
//
//	name: PRIMEGAME
//	fractions: [17/91, 78/85, ...]
//	start: 2
//	max_steps: 100
//
// The fraction strings pass through the text parser, so equate-free $(expr)
// values are permitted. 'start' is decimal text to allow values beyond the
// machine word size.
func LoadProgram(input io.Reader) (prog *Program, err error) {
	var file programFile
	err = yaml.NewDecoder(input).Decode(&file)
	if err != nil {
		return
	}

	par := &Parser{}
	prog, err = par.Parse(strings.NewReader(strings.Join(file.Fractions, "\n")))
	if err != nil {
		return
	}

	prog.Name = file.Name
	prog.MaxSteps = file.MaxSteps
	if len(file.Start) != 0 {
		start, ok := new(big.Int).SetString(file.Start, 10)
		if !ok || start.Sign() <= 0 {
			err = ErrStartInvalid
			prog = nil
			return
		}
		prog.Start = start
	}

	return
}
