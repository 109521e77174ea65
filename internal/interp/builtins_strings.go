package interp

import (
	"strings"

	"github.com/cwbudde/go-basic/internal/errors"
)

// The multi-argument string intrinsics arrive here with the first argument
// already evaluated and the cursor just past it; each consumes its comma
// tail and the closing paren.

// builtinLeft implements LEFT$(s, n): the leftmost n characters.
func (i *Interpreter) builtinLeft(sc *scanner, arg Value) (Value, error) {
	s, err := toString(arg)
	if err != nil {
		return nil, err
	}
	n, err := i.commaArgNum(sc, "LEFT$ requires two arguments")
	if err != nil {
		return nil, err
	}
	if err := closeParen(sc); err != nil {
		return nil, err
	}

	ln := int(n)
	if ln < 0 {
		ln = 0
	}
	if ln > len(s) {
		ln = len(s)
	}
	return stringVal(s[:ln]), nil
}

// builtinRight implements RIGHT$(s, n): the rightmost n characters.
func (i *Interpreter) builtinRight(sc *scanner, arg Value) (Value, error) {
	s, err := toString(arg)
	if err != nil {
		return nil, err
	}
	n, err := i.commaArgNum(sc, "RIGHT$ requires two arguments")
	if err != nil {
		return nil, err
	}
	if err := closeParen(sc); err != nil {
		return nil, err
	}

	ln := int(n)
	if ln < 0 {
		ln = 0
	}
	if ln > len(s) {
		ln = len(s)
	}
	return stringVal(s[len(s)-ln:]), nil
}

// builtinMid implements MID$(s, start [, n]) with 1-based start; a missing
// length means the rest of the string.
func (i *Interpreter) builtinMid(sc *scanner, arg Value) (Value, error) {
	s, err := toString(arg)
	if err != nil {
		return nil, err
	}
	startF, err := i.commaArgNum(sc, "MID$ requires at least two arguments")
	if err != nil {
		return nil, err
	}

	ln := len(s)
	sc.skipSpaces()
	if sc.peek() == ',' {
		sc.advance(1)
		lenVal, err := i.evalExpr(sc)
		if err != nil {
			return nil, err
		}
		n, err := toNumber(lenVal)
		if err != nil {
			return nil, err
		}
		ln = int(n)
	}
	if err := closeParen(sc); err != nil {
		return nil, err
	}

	start := int(startF)
	if start < 1 {
		start = 1
	}
	start--
	if start >= len(s) {
		return stringVal(""), nil
	}
	if ln < 0 {
		ln = 0
	}
	if start+ln > len(s) {
		ln = len(s) - start
	}
	return stringVal(s[start : start+ln]), nil
}

// builtinInstr implements INSTR(haystack, needle): the 1-based position of
// needle, or 0 when absent.
func (i *Interpreter) builtinInstr(sc *scanner, arg Value) (Value, error) {
	haystack, err := toString(arg)
	if err != nil {
		return nil, err
	}

	sc.skipSpaces()
	if sc.peek() != ',' {
		return nil, errors.New(errors.SyntaxError, "INSTR requires two arguments")
	}
	sc.advance(1)
	needleVal, err := i.evalExpr(sc)
	if err != nil {
		return nil, err
	}
	needle, err := toString(needleVal)
	if err != nil {
		return nil, err
	}
	if err := closeParen(sc); err != nil {
		return nil, err
	}

	if idx := strings.Index(haystack, needle); idx >= 0 {
		return numberVal(float64(idx + 1)), nil
	}
	return numberVal(0), nil
}

// commaArgNum consumes ", <numeric expr>" or fails with msg.
func (i *Interpreter) commaArgNum(sc *scanner, msg string) (float64, error) {
	sc.skipSpaces()
	if sc.peek() != ',' {
		return 0, errors.New(errors.SyntaxError, msg)
	}
	sc.advance(1)
	v, err := i.evalExpr(sc)
	if err != nil {
		return 0, err
	}
	return toNumber(v)
}

func closeParen(sc *scanner) error {
	sc.skipSpaces()
	if sc.peek() != ')' {
		return errors.New(errors.SyntaxError, "missing ')'")
	}
	sc.advance(1)
	return nil
}
