package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/qbcompile/qbc/internal/codegen"
	"github.com/qbcompile/qbc/pkg/qbc"
	"github.com/spf13/cobra"
)

var (
	outputFile    string
	disassemble   bool
	bundleRuntime string
)

var compileCmd = &cobra.Command{
	Use:   "compile [file]",
	Short: "Compile a QBasic file to its flat, label-addressed form",
	Long: `Compile lexes, parses, semantically analyzes, and lowers a QBasic program,
then writes a textual disassembly of the compiled module to stdout or a
named output file.

Examples:
  qbc compile program.bas
  qbc compile program.bas -o program.qbo
  qbc compile program.bas --disassemble
  qbc compile program.bas --bundle runtime.bundle`,
	Args: cobra.ExactArgs(1),
	RunE: compileScript,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVar(&disassemble, "disassemble", false, "print the disassembled compiled module")
	compileCmd.Flags().StringVar(&bundleRuntime, "bundle", "", "prepend this pre-built runtime bundle and a shebang to the output")
}

// compileScript implements the compiler's external CLI surface (spec.md
// §6): it writes the compiled module to stdout or a named output, and
// supports a bundling flag that concatenates a pre-built runtime bundle
// with the compiled code and prepends an executable shebang.
func compileScript(_ *cobra.Command, args []string) error {
	filename := args[0]
	source := readSource(filename)

	result, err := qbc.Compile(source, qbc.Options{SourceFileName: filename})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return fmt.Errorf("compilation failed")
	}

	text := codegen.Disassemble(result.Module)

	var out strings.Builder
	if bundleRuntime != "" {
		bundle, err := os.ReadFile(bundleRuntime)
		if err != nil {
			return fmt.Errorf("failed to read runtime bundle %s: %w", bundleRuntime, err)
		}
		out.WriteString("#!/usr/bin/env qbc-run\n")
		out.Write(bundle)
		out.WriteString("\n")
	}
	out.WriteString(text)

	if disassemble {
		fmt.Fprint(os.Stderr, text)
	}

	if outputFile == "" {
		fmt.Print(out.String())
		return nil
	}

	if err := os.WriteFile(outputFile, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
	}
	fmt.Printf("Compiled %s -> %s\n", filename, outputFile)
	return nil
}
