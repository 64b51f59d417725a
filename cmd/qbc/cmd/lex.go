package cmd

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/lexer"
	"github.com/qbcompile/qbc/internal/token"
	"github.com/spf13/cobra"
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a QBasic source file and print the token stream",
	Args:  cobra.ExactArgs(1),
	RunE:  lexFile,
}

func init() {
	rootCmd.AddCommand(lexCmd)
}

func lexFile(_ *cobra.Command, args []string) error {
	source := readSource(args[0])
	l := lexer.New(source)

	for {
		tok := l.NextToken()
		fmt.Printf("%4d:%-3d %-16s %q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
		if tok.Type == token.EOF {
			break
		}
	}

	if errs := l.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Printf("LexError: %s at line %d, col %d\n", e.Message, e.Pos.Line, e.Pos.Column)
		}
		return fmt.Errorf("lexing failed with %d error(s)", len(errs))
	}
	return nil
}
