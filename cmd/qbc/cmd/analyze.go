package cmd

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/lexer"
	"github.com/qbcompile/qbc/internal/parser"
	"github.com/qbcompile/qbc/internal/semantic"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Parse and semantically analyze a QBasic source file",
	Args:  cobra.ExactArgs(1),
	RunE:  analyzeFile,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func analyzeFile(_ *cobra.Command, args []string) error {
	source := readSource(args[0])
	p := parser.New(lexer.New(source))
	mod := p.ParseModule()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e.Error())
		}
		return fmt.Errorf("parsing failed with %d error(s)", len(errs))
	}

	analyzer := semantic.New()
	if errs := analyzer.Analyze(mod); len(errs) > 0 {
		for _, e := range errs {
			fmt.Println(e.Error())
		}
		return fmt.Errorf("semantic analysis failed with %d error(s)", len(errs))
	}

	fmt.Println("analyzed OK")
	return nil
}
