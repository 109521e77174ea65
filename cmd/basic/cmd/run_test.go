package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.bas")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunFileCleanHalt(t *testing.T) {
	path := writeProgram(t, "10 PRINT \"HELLO\"\n20 END\n")

	var out, errw bytes.Buffer
	if err := runFile(path, strings.NewReader(""), &out, &errw); err != nil {
		t.Fatalf("runFile: %v (stderr: %s)", err, errw.String())
	}
	if out.String() != "HELLO\n" {
		t.Errorf("stdout = %q", out.String())
	}
	if errw.Len() != 0 {
		t.Errorf("stderr = %q", errw.String())
	}
}

func TestRunFileRuntimeError(t *testing.T) {
	path := writeProgram(t, "10 GOTO 99\n")

	var out, errw bytes.Buffer
	err := runFile(path, strings.NewReader(""), &out, &errw)
	if err == nil {
		t.Fatal("expected error return")
	}
	if got := errw.String(); got != "Error at line 10: target line not found\n" {
		t.Errorf("stderr = %q", got)
	}
}

func TestRunFileLoadError(t *testing.T) {
	path := writeProgram(t, "PRINT 1\n")

	var out, errw bytes.Buffer
	err := runFile(path, strings.NewReader(""), &out, &errw)
	if err == nil {
		t.Fatal("expected error return")
	}
	if !strings.Contains(errw.String(), "line missing number") {
		t.Errorf("stderr = %q", errw.String())
	}
}

func TestRunFileMissing(t *testing.T) {
	var out, errw bytes.Buffer
	err := runFile(filepath.Join(t.TempDir(), "missing.bas"), strings.NewReader(""), &out, &errw)
	if err == nil {
		t.Fatal("expected error return")
	}
	if !strings.Contains(errw.String(), "cannot open") {
		t.Errorf("stderr = %q", errw.String())
	}
}

func TestRunFileReadsStdin(t *testing.T) {
	path := writeProgram(t, "10 INPUT N\n20 PRINT N + 1\n")

	var out, errw bytes.Buffer
	if err := runFile(path, strings.NewReader("41\n"), &out, &errw); err != nil {
		t.Fatalf("runFile: %v", err)
	}
	if out.String() != "? 42\n" {
		t.Errorf("stdout = %q", out.String())
	}
}

func TestOutputFlushedBeforeError(t *testing.T) {
	path := writeProgram(t, "10 PRINT \"PARTIAL\"\n20 RETURN\n")

	var out, errw bytes.Buffer
	if err := runFile(path, strings.NewReader(""), &out, &errw); err == nil {
		t.Fatal("expected error return")
	}
	if out.String() != "PARTIAL\n" {
		t.Errorf("stdout = %q", out.String())
	}
}
