package lexer

import (
	"testing"

	"github.com/qbcompile/qbc/internal/token"
)

func TestUnterminatedStringReportsError(t *testing.T) {
	l := New(`PRINT "HELLO`)
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d: %v", len(errs), errs)
	}
	if errs[0].Message != "unterminated string literal" {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestIllegalCharacterReportsError(t *testing.T) {
	l := New("x = 1 @ 2")
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if errs[0].Message != "illegal character: @" {
		t.Fatalf("unexpected message: %q", errs[0].Message)
	}
}

func TestNoErrorsOnCleanSource(t *testing.T) {
	l := New("LET x = 1\nPRINT x\n")
	for {
		tok := l.NextToken()
		if tok.Type == token.EOF {
			break
		}
	}
	if len(l.Errors()) != 0 {
		t.Fatalf("expected no errors, got %v", l.Errors())
	}
}
