package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "basic [program.bas]",
	Short: "Line-numbered BASIC interpreter",
	Long: `go-basic is a Go implementation of the classic line-numbered BASIC
dialect (Microsoft/Commodore v2 lineage): programs are files of numbered
lines, each holding one or more ':'-separated statements, executed by
branching on line numbers.

Supported statements: PRINT (and ?), INPUT, LET (explicit and implicit),
IF/THEN, GOTO, GOSUB/RETURN, FOR/NEXT/STEP, DIM, REM (and '), SLEEP,
END/STOP. Intrinsics cover the usual math, string and terminal functions
(SIN..LOG, RND, LEN, VAL, STR$, CHR$, ASC, LEFT$, RIGHT$, MID$, INSTR,
TAB, POS, FRE, NOT).

Running a program file directly:
  basic fibonacci.bas`,
	Version:      Version,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runFile(args[0], os.Stdin, os.Stdout, os.Stderr)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))
}
