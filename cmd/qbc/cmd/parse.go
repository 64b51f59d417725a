package cmd

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/lexer"
	"github.com/qbcompile/qbc/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a QBasic source file and report any parse errors",
	Args:  cobra.ExactArgs(1),
	RunE:  parseFile,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func parseFile(_ *cobra.Command, args []string) error {
	source := readSource(args[0])
	p := parser.New(lexer.New(source))
	mod := p.ParseModule()

	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	fmt.Printf("parsed OK: %d top-level statement(s), %d function(s)\n", len(mod.Stmts), len(mod.Procs))
	return nil
}
