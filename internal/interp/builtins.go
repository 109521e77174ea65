package interp

import (
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/go-basic/internal/errors"
)

// functionNames lists every intrinsic. NOT is deliberately a function,
// NOT(x), rather than a prefix operator; it does not appear in the
// expression grammar.
var functionNames = []string{
	"SIN", "COS", "TAN", "ATN", "ABS", "INT", "SQR", "SGN", "EXP", "LOG",
	"RND", "LEN", "VAL", "ASC", "TAB", "NOT", "FRE", "POS", "INSTR",
	"STR$", "CHR$", "LEFT$", "RIGHT$", "MID$",
}

// isFunctionName reports whether the identifier at the cursor is an
// intrinsic. Names ending in '$' match exactly; the rest use the keyword
// terminator rule so a variable named LENGTH is not mistaken for LEN.
func isFunctionName(sc *scanner) bool {
	for _, name := range functionNames {
		if name[len(name)-1] == '$' {
			if hasDollarName(sc, name) {
				return true
			}
		} else if sc.hasKeyword(name) {
			return true
		}
	}
	return false
}

func hasDollarName(sc *scanner, name string) bool {
	for i := 0; i < len(name); i++ {
		if upper(sc.peekAt(i)) != name[i] {
			return false
		}
	}
	return true
}

// evalFunction parses and applies one intrinsic call. All functions share
// the same entry: identifier, '(', first argument, then a comma-separated
// tail for the multi-argument string functions, then ')'.
func (i *Interpreter) evalFunction(sc *scanner) (Value, error) {
	name := strings.ToUpper(sc.readIdentifier())
	sc.skipSpaces()
	if sc.peek() != '(' {
		return nil, errors.New(errors.SyntaxError, "function requires '('")
	}
	sc.advance(1)

	arg, err := i.evalExpr(sc)
	if err != nil {
		return nil, err
	}

	switch name {
	case "LEFT$":
		return i.builtinLeft(sc, arg)
	case "RIGHT$":
		return i.builtinRight(sc, arg)
	case "MID$":
		return i.builtinMid(sc, arg)
	case "INSTR":
		return i.builtinInstr(sc, arg)
	}

	sc.skipSpaces()
	if sc.peek() != ')' {
		return nil, errors.New(errors.SyntaxError, "missing ')'")
	}
	sc.advance(1)

	switch name {
	case "SIN":
		return numericFunc(arg, math.Sin)
	case "COS":
		return numericFunc(arg, math.Cos)
	case "TAN":
		return numericFunc(arg, math.Tan)
	case "ATN":
		return numericFunc(arg, math.Atan)
	case "ABS":
		return numericFunc(arg, math.Abs)
	case "INT":
		return numericFunc(arg, math.Floor)
	case "SQR":
		return numericFunc(arg, math.Sqrt)
	case "EXP":
		return numericFunc(arg, math.Exp)
	case "LOG":
		return numericFunc(arg, math.Log)
	case "SGN":
		return numericFunc(arg, func(n float64) float64 {
			switch {
			case n > 0:
				return 1
			case n < 0:
				return -1
			}
			return 0
		})
	case "NOT":
		return numericFunc(arg, func(n float64) float64 {
			return float64(^int(n))
		})
	case "RND":
		return i.builtinRnd(arg)
	case "LEN":
		s, err := toString(arg)
		if err != nil {
			return nil, err
		}
		return numberVal(float64(len(s))), nil
	case "VAL":
		s, err := toString(arg)
		if err != nil {
			return nil, err
		}
		return numberVal(parseLoose(s)), nil
	case "STR$":
		n, err := toNumber(arg)
		if err != nil {
			return nil, err
		}
		return stringVal(numberVal(n).String()), nil
	case "CHR$":
		n, err := toNumber(arg)
		if err != nil {
			return nil, err
		}
		return stringVal(string([]byte{byte(int(n) & 0xff)})), nil
	case "ASC":
		s, err := toString(arg)
		if err != nil {
			return nil, err
		}
		if s == "" {
			return numberVal(0), nil
		}
		return numberVal(float64(s[0])), nil
	case "FRE":
		// argument parses but is ignored
		return numberVal(32768), nil
	case "POS":
		return numberVal(float64(i.printCol + 1)), nil
	case "TAB":
		return i.builtinTab(arg)
	}
	return nil, errors.New(errors.SyntaxError, "unknown function")
}

func numericFunc(arg Value, f func(float64) float64) (Value, error) {
	n, err := toNumber(arg)
	if err != nil {
		return nil, err
	}
	return numberVal(f(n)), nil
}

// builtinRnd returns uniform [0,1). A negative argument reseeds the
// generator with the argument's magnitude first, making runs reproducible.
func (i *Interpreter) builtinRnd(arg Value) (Value, error) {
	n, err := toNumber(arg)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		i.rng = rand.New(rand.NewSource(int64(-n)))
	}
	return numberVal(i.rng.Float64()), nil
}

// builtinTab moves the print cursor to column n mod PrintWidth, emitting a
// newline first when the cursor is already past it. It yields an empty
// string so PRINT TAB(10); "X" composes.
func (i *Interpreter) builtinTab(arg Value) (Value, error) {
	n, err := toNumber(arg)
	if err != nil {
		return nil, err
	}
	target := int(n) % PrintWidth
	if target < 0 {
		target += PrintWidth
	}
	if target < i.printCol {
		i.writeByte('\n')
	}
	for i.printCol < target {
		i.writeByte(' ')
	}
	return stringVal(""), nil
}
