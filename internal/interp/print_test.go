package interp

import (
	"strings"
	"testing"
)

func TestPrintSeparators(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			"semicolon joins",
			"10 PRINT 1; 2; 3\n",
			"123\n",
		},
		{
			"comma advances to tab stop",
			"10 PRINT 1, 2\n",
			"1         2\n",
		},
		{
			"trailing semicolon suppresses newline",
			"10 PRINT \"A\";\n20 PRINT \"B\"\n",
			"AB\n",
		},
		{
			"trailing comma suppresses newline",
			"10 PRINT \"A\",\n20 PRINT \"B\"\n",
			"A         B\n",
		},
		{
			"bare print emits newline",
			"10 PRINT\n",
			"\n",
		},
		{
			"string and number mix",
			"10 PRINT \"N=\"; 42\n",
			"N=42\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if out := testRun(t, tt.src); out != tt.expected {
				t.Errorf("got %q, want %q", out, tt.expected)
			}
		})
	}
}

func TestCommaPastTabStop(t *testing.T) {
	// Twelve characters put the cursor past the first tab stop; the comma
	// advances to the next one at column 20.
	src := "10 PRINT \"ABCDEFGHIJKL\", \"X\"\n"
	if out := testRun(t, src); out != "ABCDEFGHIJKL        X\n" {
		t.Errorf("got %q", out)
	}
}

func TestPrintWrapsAtWidth(t *testing.T) {
	src := "10 A$ = \"ABCDEFGHIJ\"\n" +
		"20 B$ = A$ + A$ + A$ + A$ + A$ + A$ + A$ + A$\n" + // 80 chars
		"30 PRINT B$; \"Z\"\n"
	out := testRun(t, src)
	want := strings.Repeat("ABCDEFGHIJ", 8) + "\nZ\n"
	if out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}

func TestNumberFormatting(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"1", "1"},
		{"-1", "-1"},
		{"0.5", "0.5"},
		{"1/3", "0.3333333333333333"},
		{"1e21", "1e+21"},
		{"123456", "123456"},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			if got := evalInProgram(t, tt.expr); got != tt.expected {
				t.Errorf("%s printed as %s, want %s", tt.expr, got, tt.expected)
			}
		})
	}
}
