package program

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/go-basic/internal/errors"
)

func parse(t *testing.T, src string) *Program {
	t.Helper()
	p, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return p
}

func TestLinesSortedAscending(t *testing.T) {
	p := parse(t, "30 PRINT 3\n10 PRINT 1\n20 PRINT 2\n")
	if p.Len() != 3 {
		t.Fatalf("len = %d", p.Len())
	}
	for i, want := range []int{10, 20, 30} {
		if got := p.Line(i).Number; got != want {
			t.Errorf("line[%d].Number = %d, want %d", i, got, want)
		}
	}
}

func TestDuplicateNumbersReplace(t *testing.T) {
	p := parse(t, "10 PRINT 1\n10 PRINT 2\n")
	if p.Len() != 1 {
		t.Fatalf("len = %d", p.Len())
	}
	if got := p.Line(0).Text; got != "PRINT 2" {
		t.Errorf("text = %q", got)
	}
}

func TestBlankLinesSkipped(t *testing.T) {
	p := parse(t, "\n10 PRINT 1\n   \n\t\n20 PRINT 2\n")
	if p.Len() != 2 {
		t.Errorf("len = %d", p.Len())
	}
}

func TestLeadingWhitespaceAndBody(t *testing.T) {
	p := parse(t, "   10    PRINT 1\n")
	if got := p.Line(0).Text; got != "PRINT 1" {
		t.Errorf("text = %q", got)
	}
}

func TestBOMOnFirstLine(t *testing.T) {
	p := parse(t, "\ufeff10 PRINT 1\n20 PRINT 2\n")
	if p.Len() != 2 || p.Line(0).Number != 10 {
		t.Errorf("BOM not stripped: %+v", p.lines)
	}
}

func TestLineNumberBounds(t *testing.T) {
	p := parse(t, "0 PRINT 0\n65535 PRINT 1\n")
	if p.Len() != 2 || p.Line(0).Number != 0 || p.Line(1).Number != 65535 {
		t.Errorf("bounds not accepted: %+v", p.lines)
	}

	_, err := Parse(strings.NewReader("65536 PRINT 1\n"))
	if errors.CodeOf(err) != errors.RangeError {
		t.Errorf("65536 accepted: %v", err)
	}
}

func TestMissingLineNumber(t *testing.T) {
	_, err := Parse(strings.NewReader("PRINT 1\n"))
	if errors.CodeOf(err) != errors.SyntaxError {
		t.Errorf("got %v", err)
	}
}

func TestLineTooLong(t *testing.T) {
	src := "10 PRINT \"" + strings.Repeat("A", MaxLineLen) + "\"\n"
	_, err := Parse(strings.NewReader(src))
	if errors.CodeOf(err) != errors.ResourceExhausted {
		t.Errorf("got %v", err)
	}
}

func TestProgramTooLarge(t *testing.T) {
	var sb strings.Builder
	for i := 0; i <= MaxLines; i++ {
		fmt.Fprintf(&sb, "%d REM\n", i*10)
	}
	_, err := Parse(strings.NewReader(sb.String()))
	if errors.CodeOf(err) != errors.ResourceExhausted {
		t.Errorf("got %v", err)
	}
}

func TestEmptyProgram(t *testing.T) {
	p := parse(t, "")
	if p.Len() != 0 {
		t.Errorf("len = %d", p.Len())
	}
	if idx := p.FindIndex(10); idx != -1 {
		t.Errorf("FindIndex on empty program = %d", idx)
	}
}

func TestFindIndex(t *testing.T) {
	p := parse(t, "10 A\n20 B\n30 C\n40 D\n50 E\n")
	for i, num := range []int{10, 20, 30, 40, 50} {
		if got := p.FindIndex(num); got != i {
			t.Errorf("FindIndex(%d) = %d, want %d", num, got, i)
		}
	}
	if got := p.FindIndex(25); got != -1 {
		t.Errorf("FindIndex(25) = %d", got)
	}
}

func TestFindIndexCacheHitsRepeatedLookups(t *testing.T) {
	p := parse(t, "10 A\n20 B\n30 C\n")
	first := p.FindIndex(20)
	for i := 0; i < 100; i++ {
		if got := p.FindIndex(20); got != first {
			t.Fatalf("cached lookup diverged: %d vs %d", got, first)
		}
	}
	// a different number must not be served from the stale slot
	if got := p.FindIndex(30); got != 2 {
		t.Errorf("FindIndex(30) = %d", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prog.bas")
	if err := os.WriteFile(path, []byte("10 PRINT 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Len() != 1 {
		t.Errorf("len = %d", p.Len())
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.bas"))
	if errors.CodeOf(err) != errors.IOError {
		t.Errorf("got %v", err)
	}
}

func TestCRLFLineEndings(t *testing.T) {
	p := parse(t, "10 PRINT 1\r\n20 PRINT 2\r\n")
	if p.Len() != 2 || p.Line(1).Text != "PRINT 2" {
		t.Errorf("CRLF not handled: %+v", p.lines)
	}
}
