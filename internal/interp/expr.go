package interp

import (
	"math"
	"strings"

	"github.com/cwbudde/go-basic/internal/errors"
)

// Expression grammar, lowest to highest precedence:
//
//	or      := and ( "OR" and )*
//	and     := compare ( "AND" compare )*
//	compare := sum ( ("="|"<>"|"<="|">="|"<"|">") sum )?
//	sum     := term ( ("+"|"-") term )*
//	term    := power ( ("*"|"/") power )*
//	power   := factor ( "^" power )?
//	factor  := number | string | "(" or ")" | ("+"|"-") power
//	         | identifier [ "(" or ")" ]
//	         | function "(" or { "," or } ")"
//
// Comparisons yield -1 for true and 0 for false; with all bits set on true,
// AND and OR double as logical and bitwise operators.

// evalExpr evaluates a full expression at the cursor.
func (i *Interpreter) evalExpr(sc *scanner) (Value, error) {
	return i.evalOr(sc)
}

func (i *Interpreter) evalOr(sc *scanner) (Value, error) {
	left, err := i.evalAnd(sc)
	if err != nil {
		return nil, err
	}
	for {
		sc.skipSpaces()
		if !sc.matchKeyword("OR") {
			return left, nil
		}
		right, err := i.evalAnd(sc)
		if err != nil {
			return nil, err
		}
		ln, err := toNumber(left)
		if err != nil {
			return nil, err
		}
		rn, err := toNumber(right)
		if err != nil {
			return nil, err
		}
		left = numberVal(float64(int(ln) | int(rn)))
	}
}

func (i *Interpreter) evalAnd(sc *scanner) (Value, error) {
	left, err := i.evalCompare(sc)
	if err != nil {
		return nil, err
	}
	for {
		sc.skipSpaces()
		if !sc.matchKeyword("AND") {
			return left, nil
		}
		right, err := i.evalCompare(sc)
		if err != nil {
			return nil, err
		}
		ln, err := toNumber(left)
		if err != nil {
			return nil, err
		}
		rn, err := toNumber(right)
		if err != nil {
			return nil, err
		}
		left = numberVal(float64(int(ln) & int(rn)))
	}
}

func (i *Interpreter) evalCompare(sc *scanner) (Value, error) {
	left, err := i.evalSum(sc)
	if err != nil {
		return nil, err
	}

	sc.skipSpaces()
	var op string
	c1, c2 := sc.peek(), sc.peekAt(1)
	switch {
	case c1 == '<' && c2 == '>':
		op = "<>"
	case c1 == '<' && c2 == '=':
		op = "<="
	case c1 == '>' && c2 == '=':
		op = ">="
	case c1 == '<':
		op = "<"
	case c1 == '>':
		op = ">"
	case c1 == '=':
		op = "="
	default:
		return left, nil
	}
	sc.advance(len(op))

	right, err := i.evalSum(sc)
	if err != nil {
		return nil, err
	}
	return compareValues(op, left, right)
}

// compareValues applies a relational operator. If either operand is a
// string, both must be; strings compare byte-wise lexicographic.
func compareValues(op string, left, right Value) (Value, error) {
	_, lstr := left.(*StringValue)
	_, rstr := right.(*StringValue)

	var cmp int
	if lstr || rstr {
		ls, err := toString(left)
		if err != nil {
			return nil, err
		}
		rs, err := toString(right)
		if err != nil {
			return nil, err
		}
		cmp = strings.Compare(ls, rs)
	} else {
		ln := left.(*NumberValue).Value
		rn := right.(*NumberValue).Value
		switch {
		case ln < rn:
			cmp = -1
		case ln > rn:
			cmp = 1
		}
	}

	var truth bool
	switch op {
	case "=":
		truth = cmp == 0
	case "<>":
		truth = cmp != 0
	case "<":
		truth = cmp < 0
	case ">":
		truth = cmp > 0
	case "<=":
		truth = cmp <= 0
	case ">=":
		truth = cmp >= 0
	}
	if truth {
		return numberVal(-1), nil
	}
	return numberVal(0), nil
}

func (i *Interpreter) evalSum(sc *scanner) (Value, error) {
	sc.skipSpaces()
	left, err := i.evalTerm(sc)
	if err != nil {
		return nil, err
	}
	for {
		sc.skipSpaces()
		op := sc.peek()
		if op != '+' && op != '-' {
			return left, nil
		}
		sc.advance(1)
		right, err := i.evalTerm(sc)
		if err != nil {
			return nil, err
		}

		if op == '+' {
			_, lstr := left.(*StringValue)
			_, rstr := right.(*StringValue)
			if lstr || rstr {
				ls, err := toString(left)
				if err != nil {
					return nil, err
				}
				rs, err := toString(right)
				if err != nil {
					return nil, err
				}
				left = stringVal(ls + rs)
				continue
			}
		}

		ln, err := toNumber(left)
		if err != nil {
			return nil, err
		}
		rn, err := toNumber(right)
		if err != nil {
			return nil, err
		}
		if op == '+' {
			left = numberVal(ln + rn)
		} else {
			left = numberVal(ln - rn)
		}
	}
}

func (i *Interpreter) evalTerm(sc *scanner) (Value, error) {
	sc.skipSpaces()
	left, err := i.evalPower(sc)
	if err != nil {
		return nil, err
	}
	for {
		sc.skipSpaces()
		op := sc.peek()
		if op != '*' && op != '/' {
			return left, nil
		}
		sc.advance(1)
		right, err := i.evalPower(sc)
		if err != nil {
			return nil, err
		}
		ln, err := toNumber(left)
		if err != nil {
			return nil, err
		}
		rn, err := toNumber(right)
		if err != nil {
			return nil, err
		}
		if op == '*' {
			left = numberVal(ln * rn)
		} else {
			left = numberVal(ln / rn)
		}
	}
}

func (i *Interpreter) evalPower(sc *scanner) (Value, error) {
	sc.skipSpaces()
	left, err := i.evalFactor(sc)
	if err != nil {
		return nil, err
	}
	sc.skipSpaces()
	if sc.peek() != '^' {
		return left, nil
	}
	sc.advance(1)
	right, err := i.evalPower(sc)
	if err != nil {
		return nil, err
	}
	ln, err := toNumber(left)
	if err != nil {
		return nil, err
	}
	rn, err := toNumber(right)
	if err != nil {
		return nil, err
	}
	return numberVal(math.Pow(ln, rn)), nil
}

func (i *Interpreter) evalFactor(sc *scanner) (Value, error) {
	sc.skipSpaces()

	switch {
	case sc.peek() == '(':
		sc.advance(1)
		v, err := i.evalExpr(sc)
		if err != nil {
			return nil, err
		}
		sc.skipSpaces()
		if sc.peek() != ')' {
			return nil, errors.New(errors.SyntaxError, "missing ')'")
		}
		sc.advance(1)
		return v, nil

	case sc.peek() == '"':
		return i.readStringLiteral(sc)

	case isAlpha(sc.peek()):
		if isFunctionName(sc) {
			return i.evalFunction(sc)
		}
		ref, err := i.varReference(sc)
		if err != nil {
			return nil, err
		}
		return ref.load(), nil

	case sc.peek() == '+' || sc.peek() == '-':
		// Unary sign binds below '^', so -2^2 is -(2^2).
		neg := sc.peek() == '-'
		sc.advance(1)
		inner, err := i.evalPower(sc)
		if err != nil {
			return nil, err
		}
		n, err := toNumber(inner)
		if err != nil {
			return nil, err
		}
		if neg {
			n = -n
		}
		return numberVal(n), nil
	}

	if v, ok := sc.parseNumberLiteral(); ok {
		return numberVal(v), nil
	}
	return nil, errors.New(errors.SyntaxError, "syntax error in expression")
}

// readStringLiteral consumes a double-quoted literal, clamping the value to
// MaxStrLen while still consuming the full source text.
func (i *Interpreter) readStringLiteral(sc *scanner) (Value, error) {
	sc.advance(1)
	var b strings.Builder
	for !sc.eol() && sc.peek() != '"' {
		if b.Len() < MaxStrLen {
			b.WriteByte(sc.peek())
		}
		sc.advance(1)
	}
	if sc.peek() != '"' {
		return nil, errors.New(errors.SyntaxError, "unterminated string")
	}
	sc.advance(1)
	return stringVal(b.String()), nil
}

// evalCondition evaluates an expression for truthiness: non-zero numbers
// and non-empty strings are true.
func (i *Interpreter) evalCondition(sc *scanner) (bool, error) {
	v, err := i.evalExpr(sc)
	if err != nil {
		return false, err
	}
	if s, ok := v.(*StringValue); ok {
		return len(s.Value) > 0, nil
	}
	return v.(*NumberValue).Value != 0, nil
}

// varReference parses an identifier plus optional array subscript and
// resolves the storage cell, creating or growing buckets as needed.
func (i *Interpreter) varReference(sc *scanner) (varRef, error) {
	sc.skipSpaces()
	if !isAlpha(sc.peek()) {
		return varRef{}, errors.New(errors.SyntaxError, "expected variable")
	}

	name := sc.readIdentifier()
	n1, n2, isString := splitName(name)

	sc.skipSpaces()
	if sc.peek() != '(' {
		v, err := i.vars.findOrCreate(n1, n2, isString, false, 0)
		if err != nil {
			return varRef{}, err
		}
		return varRef{v: v, idx: -1}, nil
	}

	sc.advance(1)
	idxVal, err := i.evalExpr(sc)
	if err != nil {
		return varRef{}, err
	}
	n, err := toNumber(idxVal)
	if err != nil {
		return varRef{}, err
	}
	sc.skipSpaces()
	if sc.peek() != ')' {
		return varRef{}, errors.New(errors.SyntaxError, "missing ')'")
	}
	sc.advance(1)

	idx := arrayIndex(n)
	if n < 0 || idx < 0 {
		return varRef{}, errors.New(errors.RangeError, "negative array index")
	}

	size := idx + 1
	if size < DefaultArraySize {
		size = DefaultArraySize
	}
	v, err := i.vars.findOrCreate(n1, n2, isString, true, size)
	if err != nil {
		return varRef{}, err
	}
	return varRef{v: v, idx: idx}, nil
}
