package interp

import (
	"strings"
	"testing"
)

func TestInputNumeric(t *testing.T) {
	src := "10 INPUT N\n20 PRINT N * 2\n"
	out := testRunWithInput(t, src, "21\n")
	if out != "? 42\n" {
		t.Errorf("got %q", out)
	}
}

func TestInputString(t *testing.T) {
	src := "10 INPUT A$\n20 PRINT \"HELLO \" + A$\n"
	out := testRunWithInput(t, src, "WORLD\n")
	if out != "? HELLO WORLD\n" {
		t.Errorf("got %q", out)
	}
}

func TestInputPromptPrintedOnce(t *testing.T) {
	src := "10 INPUT \"NAME AND AGE\"; A$, N\n20 PRINT A$; N\n"
	out := testRunWithInput(t, src, "BOB\n9\n")
	if out != "NAME AND AGE? ? BOB9\n" {
		t.Errorf("got %q", out)
	}
}

func TestInputLenientNumericConversion(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"trailing junk", "12abc\n", "? 12\n"},
		{"no digits", "hello\n", "? 0\n"},
		{"negative", "-3.5\n", "? -3.5\n"},
		{"empty line", "\n", "? 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := testRunWithInput(t, "10 INPUT N\n20 PRINT N\n", tt.input)
			if out != tt.expected {
				t.Errorf("got %q, want %q", out, tt.expected)
			}
		})
	}
}

func TestInputEndOfInput(t *testing.T) {
	src := "10 INPUT N\n"
	_, err := testTryRun(t, src, "")
	if err == nil || !strings.Contains(err.Error(), "unexpected end of input") {
		t.Errorf("got %v", err)
	}
}

func TestInputIntoArrayCell(t *testing.T) {
	src := "10 DIM A(3)\n20 INPUT A(2)\n30 PRINT A(2)\n"
	out := testRunWithInput(t, src, "7\n")
	if out != "? 7\n" {
		t.Errorf("got %q", out)
	}
}
