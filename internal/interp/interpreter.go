package interp

import (
	"bufio"
	"io"
	"math/rand"

	"github.com/cwbudde/go-basic/internal/errors"
	"github.com/cwbudde/go-basic/internal/program"
	"github.com/cwbudde/go-basic/pkg/platform"
)

// gosubFrame records where a GOSUB came from: the line table index and the
// byte offset just past the target number, so RETURN resumes mid-line.
type gosubFrame struct {
	line int
	pos  int
}

// forFrame records one active FOR loop. The resume position is the byte
// offset immediately after the FOR clause; NEXT jumps back to it while the
// loop continues.
type forFrame struct {
	name1 byte
	name2 byte
	end   float64
	step  float64
	line  int
	pos   int
}

// Interpreter executes a loaded program. It owns standard input and output
// exclusively for the duration of the run.
type Interpreter struct {
	prog  *program.Program
	vars  varTable
	gosub []gosubFrame
	fors  []forFrame

	// program counter: line table index plus byte offset into that line's
	// text; pos < 0 means "start of line"
	cur int
	pos int

	// transferred is set by GOTO-style jumps (pos reset to start of line);
	// the driver skips the separator scan for those. resumed is set by
	// RETURN and NEXT, which restore a mid-line offset that the separator
	// scan must then run against -- that is what lets a statement trailing
	// a GOSUB or a single-line FOR loop execute after the jump back.
	transferred bool
	resumed     bool

	halted   bool
	printCol int

	rng   *rand.Rand
	out   io.Writer
	in    *bufio.Reader
	clock platform.Clock
}

// New creates an interpreter for prog writing program output to out.
// Input defaults to empty and the clock to the host clock; see SetInput
// and SetClock.
func New(prog *program.Program, out io.Writer) *Interpreter {
	return &Interpreter{
		prog:  prog,
		out:   out,
		in:    bufio.NewReader(emptyReader{}),
		rng:   rand.New(rand.NewSource(1)),
		clock: platform.System(),
	}
}

// SetInput directs INPUT statements to read from r.
func (i *Interpreter) SetInput(r io.Reader) {
	i.in = bufio.NewReader(r)
}

// SetClock substitutes the clock behind SLEEP.
func (i *Interpreter) SetClock(c platform.Clock) {
	i.clock = c
}

type emptyReader struct{}

func (emptyReader) Read([]byte) (int, error) {
	return 0, io.EOF
}

// Run executes the program from its first line until END/STOP, falling off
// the last line, or a fatal error. Errors are reported with the number of
// the line being executed.
func (i *Interpreter) Run() error {
	i.halted = false
	i.cur = 0
	i.pos = -1
	i.printCol = 0

	for !i.halted && i.cur >= 0 && i.cur < i.prog.Len() {
		line := i.prog.Line(i.cur)
		if i.pos < 0 {
			i.pos = 0
		}

		sc := &scanner{text: line.Text, pos: i.pos}
		sc.skipSpaces()
		if sc.eol() {
			i.cur++
			i.pos = -1
			continue
		}

		if err := i.executeStatement(sc); err != nil {
			i.flush()
			return errors.WithLine(err, line.Number)
		}
		if i.halted {
			break
		}
		if i.transferred {
			i.transferred = false
			continue
		}
		if i.resumed {
			i.resumed = false
		} else {
			i.pos = sc.pos
		}

		// Separator scan over the current line (which RETURN or NEXT may
		// just have changed) at the current offset.
		cont := &scanner{text: i.prog.Line(i.cur).Text, pos: i.pos}
		cont.skipSpaces()
		if cont.peek() == ':' {
			cont.advance(1)
			i.pos = cont.pos
			continue
		}
		if cont.eol() {
			i.cur++
			i.pos = -1
			continue
		}

		// Not a separator and not end of line: re-enter the line at the
		// cursor. This is how IF ... THEN <stmt> executes its target.
		i.pos = cont.pos
	}

	i.flush()
	return nil
}

// executeStatement dispatches on the statement keyword at the cursor.
func (i *Interpreter) executeStatement(sc *scanner) error {
	sc.skipSpaces()
	if sc.eol() {
		return nil
	}

	switch {
	case sc.hasKeyword("REM") || sc.peek() == '\'':
		sc.skipRest()
		return nil
	case sc.matchKeyword("PRINT"):
		return i.stmtPrint(sc)
	case sc.peek() == '?':
		sc.advance(1)
		return i.stmtPrint(sc)
	case sc.matchKeyword("INPUT"):
		return i.stmtInput(sc)
	case sc.matchKeyword("LET"):
		return i.stmtLet(sc)
	case sc.matchKeyword("GOTO"):
		return i.stmtGoto(sc)
	case sc.matchKeyword("GOSUB"):
		return i.stmtGosub(sc)
	case sc.matchKeyword("RETURN"):
		return i.stmtReturn(sc)
	case sc.matchKeyword("IF"):
		return i.stmtIf(sc)
	case sc.matchKeyword("FOR"):
		return i.stmtFor(sc)
	case sc.matchKeyword("NEXT"):
		return i.stmtNext(sc)
	case sc.matchKeyword("DIM"):
		return i.stmtDim(sc)
	case sc.matchKeyword("SLEEP"):
		return i.stmtSleep(sc)
	case sc.matchKeyword("END") || sc.matchKeyword("STOP"):
		i.halted = true
		sc.skipRest()
		return nil
	case isAlpha(sc.peek()):
		// implicit LET
		return i.stmtLet(sc)
	}
	return errors.New(errors.SyntaxError, "unknown statement")
}

type flusher interface {
	Flush() error
}

func (i *Interpreter) flush() {
	if f, ok := i.out.(flusher); ok {
		f.Flush()
	}
}
