package lexer

import (
	"testing"

	"github.com/qbcompile/qbc/internal/token"
)

func TestNextTokenBasic(t *testing.T) {
	input := `LET x% = 10 + 20
PRINT x%`

	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.LET, "LET"},
		{token.IDENTIFIER, "x%"},
		{token.EQ, "="},
		{token.NUMERIC_LITERAL, "10"},
		{token.ADD, "+"},
		{token.NUMERIC_LITERAL, "20"},
		{token.NEWLINE, "\n"},
		{token.PRINT, "PRINT"},
		{token.IDENTIFIER, "x%"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d]: type wrong, expected=%s got=%s (literal=%q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d]: literal wrong, expected=%q got=%q", i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `<> <= >= < > = + - * / \ ^`
	tests := []token.Type{
		token.NE, token.LTE, token.GTE, token.LT, token.GT, token.EQ,
		token.ADD, token.SUB, token.MUL, token.DIV, token.INTDIV, token.EXP,
		token.EOF,
	}
	l := New(input)
	for i, want := range tests {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("tests[%d]: expected=%s got=%s", i, want, tok.Type)
		}
	}
}

func TestKeywordsFoldCaseInsensitive(t *testing.T) {
	input := `If iF IF`
	l := New(input)
	for i := 0; i < 3; i++ {
		tok := l.NextToken()
		if tok.Type != token.IF {
			t.Fatalf("token %d: expected IF, got %s (literal %q)", i, tok.Type, tok.Literal)
		}
	}
}

func TestCommentSkippedToEOL(t *testing.T) {
	input := "PRINT 1 ' this is a comment\nPRINT 2"
	l := New(input)

	want := []token.Type{token.PRINT, token.NUMERIC_LITERAL, token.NEWLINE, token.PRINT, token.NUMERIC_LITERAL, token.EOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("tests[%d]: expected=%s got=%s", i, w, tok.Type)
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`PRINT "HELLO, WORLD"`)
	l.NextToken() // PRINT
	tok := l.NextToken()
	if tok.Type != token.STRING_LITERAL {
		t.Fatalf("expected STRING_LITERAL, got %s", tok.Type)
	}
	if tok.Literal != "HELLO, WORLD" {
		t.Fatalf("expected literal %q, got %q", "HELLO, WORLD", tok.Literal)
	}
}
