// Package parser builds an *ast.Module from a token stream, using a Pratt
// parser for expressions (prefix/infix function tables keyed by token.Type,
// precedence climbing) and recursive descent for statements, the same
// architecture as the teacher's parser, rebuilt over QBasic's own grammar
// and precedence ladder (spec.md §4.2).
package parser

import (
	"fmt"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/lexer"
	"github.com/qbcompile/qbc/internal/qerrors"
	"github.com/qbcompile/qbc/internal/token"
)

// Precedence levels, low to high, per spec.md §4.2:
// OR < AND < NOT < relational < +- < */ < \ < MOD < unary- < ^ < primary.
const (
	LOWEST int = iota
	OR_PREC
	AND_PREC
	NOT_PREC
	REL_PREC
	ADD_PREC
	MUL_PREC
	INTDIV_PREC
	MOD_PREC
	UNARY_PREC
	EXP_PREC
)

var precedences = map[token.Type]int{
	token.OR:     OR_PREC,
	token.AND:    AND_PREC,
	token.EQ:     REL_PREC,
	token.NE:     REL_PREC,
	token.LT:     REL_PREC,
	token.LTE:    REL_PREC,
	token.GT:     REL_PREC,
	token.GTE:    REL_PREC,
	token.ADD:    ADD_PREC,
	token.SUB:    ADD_PREC,
	token.MUL:    MUL_PREC,
	token.DIV:    MUL_PREC,
	token.INTDIV: INTDIV_PREC,
	token.MOD:    MOD_PREC,
	token.EXP:    EXP_PREC,
}

type (
	prefixParseFn func() ast.Expr
	infixParseFn  func(ast.Expr) ast.Expr
)

// Parser consumes a Lexer's token stream and produces an *ast.Module.
type Parser struct {
	l *lexer.Lexer

	cur  token.Token
	peek token.Token

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn

	errors []*qerrors.Error
}

// New constructs a Parser reading from l and primes the two-token lookahead.
func New(l *lexer.Lexer) *Parser {
	p := &Parser{l: l}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENTIFIER:      p.parseIdentifierOrCall,
		token.NUMERIC_LITERAL: p.parseNumericLiteral,
		token.STRING_LITERAL:  p.parseStringLiteral,
		token.SUB:             p.parseUnaryMinus,
		token.NOT:             p.parseNot,
		token.LPAREN:          p.parseGroupedExpr,
		token.LBOUND:          p.parseBuiltinCall,
		token.UBOUND:          p.parseBuiltinCall,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.ADD:    p.parseBinaryExpr,
		token.SUB:    p.parseBinaryExpr,
		token.MUL:    p.parseBinaryExpr,
		token.DIV:    p.parseBinaryExpr,
		token.INTDIV: p.parseBinaryExpr,
		token.MOD:    p.parseBinaryExpr,
		token.AND:    p.parseBinaryExpr,
		token.OR:     p.parseBinaryExpr,
		token.EQ:     p.parseBinaryExpr,
		token.NE:     p.parseBinaryExpr,
		token.LT:     p.parseBinaryExpr,
		token.LTE:    p.parseBinaryExpr,
		token.GT:     p.parseBinaryExpr,
		token.GTE:    p.parseBinaryExpr,
		token.EXP:    p.parseExpExpr,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all parse errors accumulated so far.
func (p *Parser) Errors() []*qerrors.Error { return p.errors }

func (p *Parser) errorf(pos token.Position, format string, args ...any) {
	p.errors = append(p.errors, qerrors.New(qerrors.KindParse, pos, format, args...))
}

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) expectPeek(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.errorf(p.peek.Pos, "expected %s, got %s (%q)", t, p.peek.Type, p.peek.Literal)
	return false
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return LOWEST
}

// parseExpression is the Pratt loop: parse one prefix-headed operand, then
// keep folding in infix operators whose precedence exceeds the floor we
// were called with.
func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.errorf(p.cur.Pos, "unexpected token %s (%q) in expression", p.cur.Type, p.cur.Literal)
		return ast.NewLiteral(p.cur.Pos, float64(0))
	}
	left := prefix()

	for !p.peekIs(token.NEWLINE) && !p.peekIs(token.EOF) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseNumericLiteral() ast.Expr {
	tok := p.cur
	var f float64
	if _, err := fmt.Sscanf(tok.Literal, "%g", &f); err != nil {
		p.errorf(tok.Pos, "invalid numeric literal %q", tok.Literal)
	}
	return ast.NewLiteral(tok.Pos, f)
}

func (p *Parser) parseStringLiteral() ast.Expr {
	return ast.NewLiteral(p.cur.Pos, p.cur.Literal)
}

// parseIdentifierOrCall handles the shared grammar production for a bare
// variable reference, a function call, and an array index expression: all
// three are `IDENTIFIER` optionally followed by a parenthesised argument
// list, disambiguated later by the semantic analyzer (spec.md §4.3 step 3).
func (p *Parser) parseIdentifierOrCall() ast.Expr {
	tok := p.cur
	name := tok.Literal
	if !p.peekIs(token.LPAREN) {
		return ast.NewVarRef(tok.Pos, name)
	}
	p.nextToken() // consume LPAREN
	args := p.parseExprList(token.RPAREN)
	return ast.NewFnCall(tok.Pos, name, args)
}

// parseBuiltinCall handles LBOUND/UBOUND, which the lexer folds into
// dedicated keyword tokens rather than IDENTIFIER.
func (p *Parser) parseBuiltinCall() ast.Expr {
	tok := p.cur
	name := tok.Literal
	if !p.expectPeek(token.LPAREN) {
		return ast.NewFnCall(tok.Pos, name, nil)
	}
	p.nextToken()
	args := p.parseExprList(token.RPAREN)
	return ast.NewFnCall(tok.Pos, name, args)
}

// parseExprList parses a comma-separated expression list; p.cur is expected
// to be sitting on the first token of the list (or the end delimiter for an
// empty list) on entry, and ends with p.cur on end.
func (p *Parser) parseExprList(end token.Type) []ast.Expr {
	var list []ast.Expr
	if p.curIs(end) {
		return list
	}
	list = append(list, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}
	if !p.expectPeek(end) {
		return list
	}
	return list
}

func (p *Parser) parseUnaryMinus() ast.Expr {
	tok := p.cur
	p.nextToken()
	operand := p.parseExpression(UNARY_PREC)
	return ast.NewUnaryOp(tok.Pos, ast.UnaryNeg, operand)
}

func (p *Parser) parseNot() ast.Expr {
	tok := p.cur
	p.nextToken()
	operand := p.parseExpression(NOT_PREC)
	return ast.NewUnaryOp(tok.Pos, ast.UnaryNot, operand)
}

func (p *Parser) parseGroupedExpr() ast.Expr {
	tok := p.cur
	p.nextToken()
	inner := p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN)
	return ast.NewUnaryOp(tok.Pos, ast.UnaryParens, inner)
}

var binOps = map[token.Type]ast.BinaryOperator{
	token.ADD:    ast.BinAdd,
	token.SUB:    ast.BinSub,
	token.MUL:    ast.BinMul,
	token.DIV:    ast.BinDiv,
	token.INTDIV: ast.BinIntDiv,
	token.MOD:    ast.BinMod,
	token.AND:    ast.BinAnd,
	token.OR:     ast.BinOr,
	token.EQ:     ast.BinEq,
	token.NE:     ast.BinNe,
	token.LT:     ast.BinLt,
	token.LTE:    ast.BinLte,
	token.GT:     ast.BinGt,
	token.GTE:    ast.BinGte,
}

// parseBinaryExpr parses every left-associative binary operator: the right
// operand is parsed at the operator's own precedence, so a further operator
// at the same level is left for the outer loop to fold in left-to-right.
func (p *Parser) parseBinaryExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	op := binOps[tok.Type]
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	return ast.NewBinaryOp(tok.Pos, op, left, right)
}

// parseExpExpr parses `^`, which is right-associative: the right operand is
// parsed one precedence level down so a further `^` nests on the right
// (a^b^c = a^(b^c)).
func (p *Parser) parseExpExpr(left ast.Expr) ast.Expr {
	tok := p.cur
	p.nextToken()
	right := p.parseExpression(EXP_PREC - 1)
	return ast.NewBinaryOp(tok.Pos, ast.BinExp, left, right)
}
