package parser

import (
	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/token"
)

// ParseModule parses the entire token stream into an *ast.Module: a
// sequence of top-level FUNCTION declarations and statements (spec.md §3
// "Module").
func (p *Parser) ParseModule() *ast.Module {
	mod := &ast.Module{}

	p.skipSeparators()
	for !p.curIs(token.EOF) {
		if p.curIs(token.FUNCTION) {
			mod.Procs = append(mod.Procs, p.parseFnProc())
		} else {
			if stmt := p.parseStatement(); stmt != nil {
				mod.Stmts = append(mod.Stmts, stmt)
			}
		}
		p.skipSeparators()
	}
	return mod
}

// skipSeparators consumes any run of NEWLINE/COLON tokens (blank lines,
// trailing separators) sitting at the current position.
func (p *Parser) skipSeparators() {
	for p.curIs(token.NEWLINE) || p.curIs(token.COLON) {
		p.nextToken()
	}
}

// blockEnders is the set of keyword tokens that stop a statement-list
// parse without being consumed; the caller recognises and consumes them.
func (p *Parser) atBlockEnd(enders ...token.Type) bool {
	for _, t := range enders {
		if p.curIs(t) {
			return true
		}
	}
	return p.curIs(token.EOF)
}

// parseStmtList parses statements, separated by NEWLINE/COLON, until the
// current token matches one of enders (not consumed) or EOF.
func (p *Parser) parseStmtList(enders ...token.Type) []ast.Stmt {
	var stmts []ast.Stmt
	p.skipSeparators()
	for !p.atBlockEnd(enders...) {
		if stmt := p.parseStatement(); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.curIs(token.NEWLINE) || p.curIs(token.COLON) {
			p.skipSeparators()
			continue
		}
		if p.atBlockEnd(enders...) {
			break
		}
		p.nextToken()
	}
	return stmts
}

// parseStatement parses exactly one statement, leaving p.cur on its final
// token (the caller advances past the trailing separator).
func (p *Parser) parseStatement() ast.Stmt {
	switch p.cur.Type {
	case token.IDENTIFIER:
		if p.peekIs(token.COLON) {
			return p.parseLabel()
		}
		return p.parseAssign()
	case token.LET:
		p.nextToken()
		return p.parseAssign()
	case token.PRINT:
		return p.parsePrint()
	case token.INPUT:
		return p.parseInput()
	case token.IF:
		return p.parseIf()
	case token.DO:
		return p.parseDoLoop()
	case token.FOR:
		return p.parseFor()
	case token.NEXT:
		return p.parseNext()
	case token.EXIT:
		return p.parseExit()
	case token.GOTO:
		return p.parseGoto()
	case token.GOSUB:
		return p.parseGosub()
	case token.RETURN:
		return p.parseReturn()
	case token.END:
		return p.parseEnd()
	case token.DIM:
		return p.parseDim()
	default:
		p.errorf(p.cur.Pos, "unexpected token %s (%q) at start of statement", p.cur.Type, p.cur.Literal)
		p.nextToken()
		return nil
	}
}

func (p *Parser) parseLabel() ast.Stmt {
	tok := p.cur
	name := tok.Literal
	p.nextToken() // consume IDENTIFIER
	p.nextToken() // consume COLON
	return ast.NewLabel(tok.Pos, name)
}

// parseAssign parses `target = value`, where target is a VarRef or an
// array-index FnCall (spec.md §4.4 "Assignment").
func (p *Parser) parseAssign() ast.Stmt {
	tok := p.cur
	target := p.parseExpression(LOWEST)
	if !p.expectPeek(token.EQ) {
		return nil
	}
	p.nextToken()
	value := p.parseExpression(LOWEST)
	return ast.NewAssign(tok.Pos, target, value)
}

// parsePrint parses `PRINT [item (; | , | item)*]`.
func (p *Parser) parsePrint() ast.Stmt {
	tok := p.cur
	var items []ast.PrintItem
	if p.peekIs(token.NEWLINE) || p.peekIs(token.COLON) || p.peekIs(token.EOF) {
		p.nextToken()
		return ast.NewPrint(tok.Pos, items)
	}
	p.nextToken()
	items = append(items, ast.PrintItem{Kind: ast.PrintValue, Expr: p.parseExpression(LOWEST)})
	for p.peekIs(token.COMMA) || p.peekIs(token.SEMICOLON) {
		if p.peekIs(token.COMMA) {
			p.nextToken()
			items = append(items, ast.PrintItem{Kind: ast.PrintComma})
		} else {
			p.nextToken()
			items = append(items, ast.PrintItem{Kind: ast.PrintSemicolon})
		}
		if p.peekIs(token.NEWLINE) || p.peekIs(token.COLON) || p.peekIs(token.EOF) {
			break
		}
		p.nextToken()
		items = append(items, ast.PrintItem{Kind: ast.PrintValue, Expr: p.parseExpression(LOWEST)})
	}
	return ast.NewPrint(tok.Pos, items)
}

// parseInput parses `INPUT ["prompt";] target[, target...]`.
func (p *Parser) parseInput() ast.Stmt {
	tok := p.cur
	prompt := ""
	p.nextToken()
	if p.curIs(token.STRING_LITERAL) && (p.peekIs(token.SEMICOLON) || p.peekIs(token.COMMA)) {
		prompt = p.cur.Literal
		p.nextToken() // consume the separator after the prompt
		p.nextToken()
	}
	var targets []ast.Expr
	targets = append(targets, p.parseExpression(LOWEST))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		targets = append(targets, p.parseExpression(LOWEST))
	}
	return ast.NewInput(tok.Pos, prompt, targets)
}

// parseIf parses both the single-line and multi-line IF forms, which share
// one AST shape (spec.md §4.2).
func (p *Parser) parseIf() ast.Stmt {
	tok := p.cur
	var arms []ast.IfArm
	var elseStmts []ast.Stmt

	cond := p.parseIfCondition()
	if !p.expectPeek(token.THEN) {
		return nil
	}

	if p.peekIs(token.NEWLINE) {
		// Multi-line form.
		p.nextToken()
		stmts := p.parseStmtList(token.ELSEIF, token.ELSE, token.END)
		arms = append(arms, ast.IfArm{Cond: cond, Stmts: stmts})

		for p.curIs(token.ELSEIF) {
			elifCond := p.parseIfCondition()
			if !p.expectPeek(token.THEN) {
				return nil
			}
			p.nextToken()
			elifStmts := p.parseStmtList(token.ELSEIF, token.ELSE, token.END)
			arms = append(arms, ast.IfArm{Cond: elifCond, Stmts: elifStmts})
		}

		if p.curIs(token.ELSE) {
			p.nextToken()
			elseStmts = p.parseStmtList(token.END)
		}

		if p.curIs(token.END) {
			p.nextToken() // consume END
			if p.curIs(token.IF) {
				p.nextToken() // consume IF
			} else {
				p.errorf(p.cur.Pos, "expected IF after END, got %s", p.cur.Type)
			}
		}
		// p.cur is now positioned after END IF; the enclosing statement-list
		// loop handles the trailing separator from here.
		return ast.NewIf(tok.Pos, arms, elseStmts)
	}

	// Single-line form: `IF c THEN s1 : s2 [ELSE s3 : s4]`.
	p.nextToken()
	var thenStmts []ast.Stmt
	for !p.curIs(token.ELSE) && !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) {
		if stmt := p.parseStatement(); stmt != nil {
			thenStmts = append(thenStmts, stmt)
		}
		if p.curIs(token.COLON) {
			p.nextToken()
			continue
		}
		break
	}
	arms = append(arms, ast.IfArm{Cond: cond, Stmts: thenStmts})

	if p.curIs(token.ELSE) {
		p.nextToken()
		for !p.curIs(token.NEWLINE) && !p.curIs(token.EOF) {
			if stmt := p.parseStatement(); stmt != nil {
				elseStmts = append(elseStmts, stmt)
			}
			if p.curIs(token.COLON) {
				p.nextToken()
				continue
			}
			break
		}
	}
	return ast.NewIf(tok.Pos, arms, elseStmts)
}

// parseIfCondition parses the condition expression following IF/ELSEIF;
// p.cur is the IF/ELSEIF token on entry.
func (p *Parser) parseIfCondition() ast.Expr {
	p.nextToken()
	return p.parseExpression(LOWEST)
}

// parseDoLoop parses `DO [WHILE|UNTIL cond] ... LOOP [WHILE|UNTIL cond]`.
func (p *Parser) parseDoLoop() ast.Stmt {
	tok := p.cur
	p.nextToken() // consume DO

	if p.curIs(token.WHILE) || p.curIs(token.UNTIL) {
		negated := p.curIs(token.UNTIL)
		p.nextToken()
		cond := p.parseExpression(LOWEST)
		p.nextToken()
		stmts := p.parseStmtList(token.LOOP)
		if p.curIs(token.LOOP) {
			p.nextToken()
		}
		return ast.NewCondLoop(tok.Pos, ast.CondBeforeStmts, negated, cond, stmts)
	}

	stmts := p.parseStmtList(token.LOOP)
	if !p.curIs(token.LOOP) {
		p.errorf(p.cur.Pos, "expected LOOP, got %s", p.cur.Type)
		return ast.NewUncondLoop(tok.Pos, stmts)
	}
	if p.peekIs(token.WHILE) || p.peekIs(token.UNTIL) {
		negated := p.peekIs(token.UNTIL)
		p.nextToken() // consume WHILE/UNTIL
		p.nextToken()
		cond := p.parseExpression(LOWEST)
		return ast.NewCondLoop(tok.Pos, ast.CondAfterStmts, negated, cond, stmts)
	}
	return ast.NewUncondLoop(tok.Pos, stmts)
}

// parseFor parses `FOR counter = start TO end [STEP step] ... NEXT [...]`.
// The NEXT is consumed by the enclosing statement-list loop as its own
// statement, not nested here, so that `NEXT i, j` can close multiple FORs
// in one token (spec.md §4.4).
func (p *Parser) parseFor() ast.Stmt {
	tok := p.cur
	if !p.expectPeek(token.IDENTIFIER) {
		return nil
	}
	counter := p.cur.Literal
	if !p.expectPeek(token.EQ) {
		return nil
	}
	p.nextToken()
	start := p.parseExpression(LOWEST)
	if !p.expectPeek(token.TO) {
		return nil
	}
	p.nextToken()
	end := p.parseExpression(LOWEST)

	var step ast.Expr
	if p.peekIs(token.STEP) {
		p.nextToken()
		p.nextToken()
		step = p.parseExpression(LOWEST)
	}

	p.nextToken()
	stmts := p.parseStmtList(token.NEXT)
	return ast.NewFor(tok.Pos, counter, start, end, step, stmts)
}

// parseNext parses `NEXT [counter[, counter...]]`.
func (p *Parser) parseNext() ast.Stmt {
	tok := p.cur
	var counters []string
	if p.peekIs(token.IDENTIFIER) {
		p.nextToken()
		counters = append(counters, p.cur.Literal)
		for p.peekIs(token.COMMA) {
			p.nextToken()
			if !p.expectPeek(token.IDENTIFIER) {
				break
			}
			counters = append(counters, p.cur.Literal)
		}
	}
	return ast.NewNext(tok.Pos, counters)
}

// parseExit parses `EXIT FOR` or `EXIT DO`.
func (p *Parser) parseExit() ast.Stmt {
	tok := p.cur
	p.nextToken()
	switch p.cur.Type {
	case token.FOR:
		return ast.NewExitFor(tok.Pos)
	case token.DO:
		return ast.NewExitLoop(tok.Pos)
	default:
		p.errorf(p.cur.Pos, "expected FOR or DO after EXIT, got %s", p.cur.Type)
		return nil
	}
}

func (p *Parser) parseGoto() ast.Stmt {
	tok := p.cur
	if !p.expectPeek(token.IDENTIFIER) {
		return nil
	}
	return ast.NewGoto(tok.Pos, p.cur.Literal)
}

func (p *Parser) parseGosub() ast.Stmt {
	tok := p.cur
	if !p.expectPeek(token.IDENTIFIER) {
		return nil
	}
	return ast.NewGosub(tok.Pos, p.cur.Literal)
}

// parseReturn parses `RETURN [label]`.
func (p *Parser) parseReturn() ast.Stmt {
	tok := p.cur
	label := ""
	if p.peekIs(token.IDENTIFIER) {
		p.nextToken()
		label = p.cur.Literal
	}
	return ast.NewReturn(tok.Pos, label)
}

func (p *Parser) parseEnd() ast.Stmt {
	tok := p.cur
	// A bare `END` is the program-terminating statement. `END IF` and
	// `END FUNCTION` are recognised and consumed by their own block
	// parsers before control ever reaches here as a standalone statement.
	return ast.NewEnd(tok.Pos)
}

// parseDim parses `DIM name(bounds...) [AS type]`.
func (p *Parser) parseDim() ast.Stmt {
	tok := p.cur
	if !p.expectPeek(token.IDENTIFIER) {
		return nil
	}
	name := p.cur.Literal

	var bounds []ast.DimBound
	if p.peekIs(token.LPAREN) {
		p.nextToken() // consume LPAREN
		p.nextToken()
		bounds = p.parseDimBounds()
	}

	asType := ""
	if p.peekIs(token.AS) {
		p.nextToken()
		p.nextToken()
		asType = p.cur.Literal
	}

	return ast.NewDim(tok.Pos, name, bounds, asType)
}

// parseDimBounds parses a comma-separated list of `[lower TO] upper` bound
// expressions; p.cur sits on the first token of the list on entry and ends
// on RPAREN.
func (p *Parser) parseDimBounds() []ast.DimBound {
	var bounds []ast.DimBound
	bounds = append(bounds, p.parseOneDimBound())
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		bounds = append(bounds, p.parseOneDimBound())
	}
	p.expectPeek(token.RPAREN)
	return bounds
}

func (p *Parser) parseOneDimBound() ast.DimBound {
	first := p.parseExpression(LOWEST)
	if p.peekIs(token.TO) {
		p.nextToken()
		p.nextToken()
		upper := p.parseExpression(LOWEST)
		return ast.DimBound{Lower: first, Upper: upper}
	}
	return ast.DimBound{Lower: nil, Upper: first}
}

// parseFnProc parses `FUNCTION name(params) [AS type] ... END FUNCTION`
// (spec.md §4.3 step 1; SUB procedures are a Non-goal).
func (p *Parser) parseFnProc() *ast.FnProc {
	tok := p.cur
	if !p.expectPeek(token.IDENTIFIER) {
		return &ast.FnProc{Loc: tok.Pos}
	}
	name := p.cur.Literal

	var params []string
	if p.peekIs(token.LPAREN) {
		p.nextToken()
		for !p.peekIs(token.RPAREN) && !p.peekIs(token.EOF) {
			if !p.expectPeek(token.IDENTIFIER) {
				break
			}
			params = append(params, p.cur.Literal)
			if p.peekIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.expectPeek(token.RPAREN)
	}

	if p.peekIs(token.AS) {
		p.nextToken()
		p.nextToken() // consume the type keyword; the analyzer derives the
		// return type from the function name's sigil per spec.md §4.3 step 1,
		// so an explicit AS clause here is accepted but not separately stored.
	}

	p.nextToken()
	stmts := p.parseStmtList(token.END)
	if p.curIs(token.END) {
		p.nextToken()
		if p.curIs(token.FUNCTION) {
			p.nextToken()
		} else {
			p.errorf(p.cur.Pos, "expected FUNCTION after END, got %s", p.cur.Type)
		}
	}

	return &ast.FnProc{Name: name, Params: params, Stmts: stmts, Loc: tok.Pos}
}
