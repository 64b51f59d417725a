package cmd

import (
	"fmt"
	"os"

	"github.com/qbcompile/qbc/internal/runtime"
	"github.com/qbcompile/qbc/pkg/qbc"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Compile and run a QBasic source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	source := readSource(filename)

	result, err := qbc.Compile(source, qbc.Options{SourceFileName: filename})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	}

	env := runtime.NewStdEnv(os.Stdin, os.Stdout)
	interp := runtime.NewInterpreter(env)
	if err := interp.RunModule(result.Module); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("execution failed")
	}
	return nil
}
