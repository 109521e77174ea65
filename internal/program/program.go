// Package program stores a BASIC program as a table of numbered lines,
// sorted ascending by line number after loading. Lookups use binary search
// with a one-slot cache for tight GOTO loops.
package program

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cwbudde/go-basic/internal/errors"
)

// Capacity limits for loaded programs.
const (
	MaxLines      = 1024
	MaxLineLen    = 256
	MaxLineNumber = 65535
)

// Line is one numbered program line. Text holds the body after the line
// number, with leading whitespace stripped.
type Line struct {
	Number int
	Text   string
}

// Program is the sorted line table. The zero value is an empty program.
type Program struct {
	lines []Line

	// one-slot lookup cache; must be reset if lines ever change
	lastNum int
	lastIdx int
}

// New returns an empty program.
func New() *Program {
	return &Program{lastNum: -1, lastIdx: -1}
}

// Load reads a program from a file.
func Load(path string) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.New(errors.IOError, "cannot open %s", path)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads numbered lines from r. Blank lines are skipped, duplicate line
// numbers replace the earlier text, and the result is sorted by line number.
func Parse(r io.Reader) (*Program, error) {
	p := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 4096), 64*1024)

	first := true
	for sc.Scan() {
		raw := strings.TrimRight(sc.Text(), "\r")
		body := strings.TrimLeft(raw, " \t")
		if first {
			body = strings.TrimLeft(strings.TrimPrefix(body, "\ufeff"), " \t")
			first = false
		}
		if body == "" {
			continue
		}
		if body[0] < '0' || body[0] > '9' {
			return nil, errors.New(errors.SyntaxError, "line missing number: %s", raw)
		}

		number := 0
		i := 0
		for i < len(body) && body[i] >= '0' && body[i] <= '9' {
			number = number*10 + int(body[i]-'0')
			if number > MaxLineNumber {
				return nil, errors.New(errors.RangeError, "line number out of range: %s", raw)
			}
			i++
		}

		text := strings.TrimLeft(body[i:], " \t")
		if len(text) > MaxLineLen {
			return nil, errors.New(errors.ResourceExhausted, "line %d too long (max %d chars)", number, MaxLineLen)
		}

		if err := p.add(number, text); err != nil {
			return nil, err
		}
	}
	if err := sc.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, errors.New(errors.ResourceExhausted, "line too long (max %d chars)", MaxLineLen)
		}
		return nil, errors.New(errors.IOError, "read error: %v", err)
	}

	sort.Slice(p.lines, func(a, b int) bool {
		return p.lines[a].Number < p.lines[b].Number
	})
	p.lastNum, p.lastIdx = -1, -1
	return p, nil
}

// add appends a line, replacing any earlier line with the same number.
func (p *Program) add(number int, text string) error {
	for i := range p.lines {
		if p.lines[i].Number == number {
			p.lines[i].Text = text
			return nil
		}
	}
	if len(p.lines) >= MaxLines {
		return errors.New(errors.ResourceExhausted, "program too large (max %d lines)", MaxLines)
	}
	p.lines = append(p.lines, Line{Number: number, Text: text})
	return nil
}

// Len returns the number of stored lines.
func (p *Program) Len() int {
	return len(p.lines)
}

// Line returns the line at table index i.
func (p *Program) Line(i int) Line {
	return p.lines[i]
}

// FindIndex returns the table index of the line with the given number, or -1
// if no such line exists.
func (p *Program) FindIndex(number int) int {
	if number == p.lastNum && p.lastIdx >= 0 && p.lastIdx < len(p.lines) {
		return p.lastIdx
	}

	low, high := 0, len(p.lines)-1
	for low <= high {
		mid := (low + high) / 2
		switch {
		case p.lines[mid].Number == number:
			p.lastNum, p.lastIdx = number, mid
			return mid
		case p.lines[mid].Number < number:
			low = mid + 1
		default:
			high = mid - 1
		}
	}
	return -1
}
