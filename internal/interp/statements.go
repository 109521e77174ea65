package interp

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/cwbudde/go-basic/internal/errors"
)

// stmtPrint handles PRINT (and its '?' alias). ';' joins items with no
// separation, ',' advances to the next 10-column tab stop, and a trailing
// ';' or ',' suppresses the final newline.
func (i *Interpreter) stmtPrint(sc *scanner) error {
	newline := true
	for {
		sc.skipSpaces()
		if sc.eol() || sc.peek() == ':' {
			break
		}

		v, err := i.evalExpr(sc)
		if err != nil {
			return err
		}
		i.printValue(v)

		sc.skipSpaces()
		switch sc.peek() {
		case ';':
			newline = false
			sc.advance(1)
		case ',':
			newline = false
			next := ((i.printCol / 10) + 1) * 10
			for i.printCol < next {
				i.writeByte(' ')
			}
			sc.advance(1)
		default:
			newline = true
		}
		if newline {
			break
		}
	}

	if newline {
		i.writeByte('\n')
	}
	i.flush()
	return nil
}

// printValue emits a value through the column-tracked writer so ',' zones,
// TAB and line wrap stay coherent.
func (i *Interpreter) printValue(v Value) {
	i.writeText(v.String())
}

// writeText emits s byte by byte, wrapping at PrintWidth and resetting the
// column on newlines.
func (i *Interpreter) writeText(s string) {
	for j := 0; j < len(s); j++ {
		i.writeByte(s[j])
	}
}

func (i *Interpreter) writeByte(c byte) {
	if c == '\n' {
		io.WriteString(i.out, "\n")
		i.printCol = 0
		return
	}
	i.out.Write([]byte{c})
	i.printCol++
	if i.printCol >= PrintWidth {
		io.WriteString(i.out, "\n")
		i.printCol = 0
	}
}

// stmtInput reads one line per listed variable. An optional leading string
// literal is printed once as a prompt; every read is prefixed with "? ".
// Numeric variables use lenient conversion: trailing junk is ignored.
func (i *Interpreter) stmtInput(sc *scanner) error {
	prompt := ""
	sc.skipSpaces()
	if sc.peek() == '"' {
		v, err := i.readStringLiteral(sc)
		if err != nil {
			return err
		}
		prompt = v.String()
		sc.skipSpaces()
		if sc.peek() == ';' || sc.peek() == ',' {
			sc.advance(1)
		}
	}

	firstPrompt := true
	for {
		sc.skipSpaces()
		if sc.eol() || sc.peek() == ':' {
			break
		}
		if !isAlpha(sc.peek()) {
			return errors.New(errors.SyntaxError, "expected variable in INPUT")
		}

		ref, err := i.varReference(sc)
		if err != nil {
			return err
		}

		if prompt != "" && firstPrompt {
			fmt.Fprint(i.out, prompt)
		}
		fmt.Fprint(i.out, "? ")
		i.flush()

		line, err := i.in.ReadString('\n')
		if line == "" && err != nil {
			return errors.New(errors.IOError, "unexpected end of input")
		}
		line = strings.TrimRight(line, "\r\n")

		if ref.v.isString {
			ref.store(stringVal(line))
		} else {
			ref.store(numberVal(parseLoose(line)))
		}

		sc.skipSpaces()
		if sc.peek() == ',' {
			sc.advance(1)
			firstPrompt = false
			continue
		}
		break
	}
	return nil
}

// stmtLet handles both explicit LET and the implicit assignment form. The
// right side must match the variable's string flag; there is no implicit
// conversion in either direction.
func (i *Interpreter) stmtLet(sc *scanner) error {
	ref, err := i.varReference(sc)
	if err != nil {
		return err
	}

	sc.skipSpaces()
	if sc.peek() != '=' {
		return errors.New(errors.SyntaxError, "expected '='")
	}
	sc.advance(1)

	rhs, err := i.evalExpr(sc)
	if err != nil {
		return err
	}
	if ref.v.isString {
		if _, err := toString(rhs); err != nil {
			return err
		}
	} else {
		if _, err := toNumber(rhs); err != nil {
			return err
		}
	}
	ref.store(rhs)
	return nil
}

func (i *Interpreter) stmtGoto(sc *scanner) error {
	sc.skipSpaces()
	target := sc.readLineNumber()
	return i.jumpTo(target)
}

// jumpTo transfers control to the start of the numbered line.
func (i *Interpreter) jumpTo(target int) error {
	idx := i.prog.FindIndex(target)
	if idx < 0 {
		return errors.New(errors.BadLineRef, "target line not found")
	}
	i.cur = idx
	i.pos = -1
	i.transferred = true
	return nil
}

func (i *Interpreter) stmtGosub(sc *scanner) error {
	if len(i.gosub) >= MaxGosub {
		return errors.New(errors.StackOverflow, "GOSUB stack overflow")
	}
	sc.skipSpaces()
	target := sc.readLineNumber()

	// the return position is the byte just past the target number, so a
	// trailing statement on the GOSUB line runs after RETURN
	i.gosub = append(i.gosub, gosubFrame{line: i.cur, pos: sc.pos})
	return i.jumpTo(target)
}

func (i *Interpreter) stmtReturn(_ *scanner) error {
	if len(i.gosub) == 0 {
		return errors.New(errors.StackUnderflow, "RETURN without GOSUB")
	}
	frame := i.gosub[len(i.gosub)-1]
	i.gosub = i.gosub[:len(i.gosub)-1]
	i.cur = frame.line
	i.pos = frame.pos
	i.resumed = true
	return nil
}

// stmtIf evaluates the condition and either jumps (bare line number after
// THEN) or leaves the cursor on the inline statement for the driver to
// execute. A false condition discards the whole remainder of the line,
// including anything after ':'.
func (i *Interpreter) stmtIf(sc *scanner) error {
	cond, err := i.evalCondition(sc)
	if err != nil {
		return err
	}
	sc.skipSpaces()
	if !sc.matchKeyword("THEN") {
		return errors.New(errors.SyntaxError, "missing THEN")
	}
	sc.skipSpaces()

	if !cond {
		sc.skipRest()
		return nil
	}
	if isDigit(sc.peek()) {
		return i.jumpTo(sc.readLineNumber())
	}
	return nil
}

func (i *Interpreter) stmtFor(sc *scanner) error {
	if len(i.fors) >= MaxFor {
		return errors.New(errors.StackOverflow, "FOR stack overflow")
	}

	ref, err := i.varReference(sc)
	if err != nil {
		return err
	}
	if ref.isArrayCell() {
		return errors.New(errors.TypeMismatch, "FOR variable must be scalar")
	}
	if ref.v.isString {
		return errors.New(errors.TypeMismatch, "FOR variable must be numeric")
	}

	sc.skipSpaces()
	if sc.peek() != '=' {
		return errors.New(errors.SyntaxError, "expected '=' in FOR")
	}
	sc.advance(1)

	start, err := i.evalNumExpr(sc)
	if err != nil {
		return err
	}
	sc.skipSpaces()
	if !sc.matchKeyword("TO") {
		return errors.New(errors.SyntaxError, "expected TO in FOR")
	}
	end, err := i.evalNumExpr(sc)
	if err != nil {
		return err
	}

	step := 1.0
	sc.skipSpaces()
	if sc.matchKeyword("STEP") {
		step, err = i.evalNumExpr(sc)
		if err != nil {
			return err
		}
	}

	ref.store(numberVal(start))
	i.fors = append(i.fors, forFrame{
		name1: ref.v.name1,
		name2: ref.v.name2,
		end:   end,
		step:  step,
		line:  i.cur,
		pos:   sc.pos, // resume just past the FOR clause
	})
	return nil
}

// stmtNext finds the topmost frame matching the named variable (or the
// innermost frame when no name is given), discarding any frames above it.
// The loop continues while step >= 0 keeps v <= end, or step < 0 keeps
// v >= end; termination leaves the variable at its overshot value.
func (i *Interpreter) stmtNext(sc *scanner) error {
	sc.skipSpaces()
	name := ""
	if isAlpha(sc.peek()) {
		name = sc.readIdentifier()
	}
	n1, n2, _ := splitName(name)

	match := -1
	for j := len(i.fors) - 1; j >= 0; j-- {
		if name == "" || (i.fors[j].name1 == n1 && i.fors[j].name2 == n2) {
			match = j
			break
		}
	}
	if match < 0 {
		return errors.New(errors.StackUnderflow, "NEXT without FOR")
	}
	i.fors = i.fors[:match+1]
	frame := &i.fors[match]

	v, err := i.vars.findOrCreate(frame.name1, frame.name2, false, false, 0)
	if err != nil {
		return err
	}
	n, err := toNumber(v.scalar)
	if err != nil {
		return err
	}
	n += frame.step
	v.scalar = numberVal(n)

	if (frame.step >= 0 && n <= frame.end) || (frame.step < 0 && n >= frame.end) {
		i.cur = frame.line
		i.pos = frame.pos
		i.resumed = true
		return nil
	}
	i.fors = i.fors[:match]
	return nil
}

// stmtDim allocates arrays of size+1 cells for a comma-separated list of
// name(size) declarations.
func (i *Interpreter) stmtDim(sc *scanner) error {
	for {
		sc.skipSpaces()
		if !isAlpha(sc.peek()) {
			return errors.New(errors.SyntaxError, "expected array name")
		}
		name := sc.readIdentifier()
		n1, n2, isString := splitName(name)

		sc.skipSpaces()
		if sc.peek() != '(' {
			return errors.New(errors.SyntaxError, "DIM requires size")
		}
		sc.advance(1)

		n, err := i.evalNumExpr(sc)
		if err != nil {
			return err
		}
		size := int(n) + 1
		if size <= 0 {
			return errors.New(errors.RangeError, "invalid array size")
		}
		if err := closeParen(sc); err != nil {
			return err
		}

		if _, err := i.vars.findOrCreate(n1, n2, isString, true, size); err != nil {
			return err
		}

		sc.skipSpaces()
		if sc.peek() == ',' {
			sc.advance(1)
			continue
		}
		return nil
	}
}

// stmtSleep suspends for the argument's count of sixtieths of a second.
// Both SLEEP n and SLEEP (n) are accepted; non-positive counts are a no-op.
func (i *Interpreter) stmtSleep(sc *scanner) error {
	sc.skipSpaces()
	var ticks float64
	var err error
	if sc.peek() == '(' {
		sc.advance(1)
		ticks, err = i.evalNumExpr(sc)
		if err != nil {
			return err
		}
		if err := closeParen(sc); err != nil {
			return err
		}
	} else {
		ticks, err = i.evalNumExpr(sc)
		if err != nil {
			return err
		}
	}

	if ticks > 0 {
		i.clock.Sleep(time.Duration(ticks * float64(time.Second) / 60))
	}
	return nil
}

// evalNumExpr evaluates an expression that must be numeric.
func (i *Interpreter) evalNumExpr(sc *scanner) (float64, error) {
	v, err := i.evalExpr(sc)
	if err != nil {
		return 0, err
	}
	return toNumber(v)
}
