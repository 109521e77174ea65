package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cwbudde/go-basic/internal/errors"
	"github.com/cwbudde/go-basic/internal/interp"
	"github.com/cwbudde/go-basic/internal/program"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var evalSrc string

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a BASIC program file or inline source",
	Long: `Execute a BASIC program from a file or from inline source.

Examples:
  # Run a program file
  basic run program.bas

  # Evaluate inline source (numbered lines are separated by newlines,
  # statements within a line by ':')
  basic run -e '10 PRINT "HELLO"'`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalSrc, "eval", "e", "", "run inline source instead of reading from file")
}

func runScript(_ *cobra.Command, args []string) error {
	if evalSrc != "" {
		prog, err := program.Parse(strings.NewReader(evalSrc))
		if err != nil {
			reportError(os.Stderr, err)
			return fmt.Errorf("load failed")
		}
		return execute(prog, os.Stdin, os.Stdout, os.Stderr)
	}
	if len(args) != 1 {
		return fmt.Errorf("either provide a file path or use -e flag for inline source")
	}
	return runFile(args[0], os.Stdin, os.Stdout, os.Stderr)
}

// runFile loads and executes one program file, reporting load and runtime
// errors to errw. The returned error only signals the non-zero exit.
func runFile(path string, in io.Reader, out, errw io.Writer) error {
	prog, err := program.Load(path)
	if err != nil {
		reportError(errw, err)
		return fmt.Errorf("load failed")
	}
	return execute(prog, in, out, errw)
}

func execute(prog *program.Program, in io.Reader, out, errw io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	ip := interp.New(prog, w)
	ip.SetInput(in)
	if err := ip.Run(); err != nil {
		reportError(errw, err)
		return fmt.Errorf("execution failed")
	}
	return nil
}

// reportError formats err the way the interpreter contract requires
// ("Error at line <n>: <message>"), with ANSI highlighting when errw is a
// terminal.
func reportError(errw io.Writer, err error) {
	color := false
	if f, ok := errw.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	if e, ok := err.(*errors.Error); ok {
		fmt.Fprintln(errw, e.Format(color))
		return
	}
	fmt.Fprintf(errw, "Error: %v\n", err)
}
