package codegen

import (
	"fmt"
	"strings"

	"github.com/qbcompile/qbc/internal/ast"
	"github.com/qbcompile/qbc/internal/runtime"
	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// genStmts lowers a statement list into scope's flat stream in source
// order. Nested constructs (If arms, loop/FOR bodies) are not given their
// own genScope: everything lands in the same one flat list belonging to
// the enclosing proc or module, matching spec.md §3's "one compiled
// statement list per proc/module".
func (g *Generator) genStmts(stmts []ast.Stmt, scope *genScope) {
	for _, stmt := range stmts {
		g.genStmt(stmt, scope)
	}
}

func (g *Generator) genStmt(stmt ast.Stmt, scope *genScope) {
	switch s := stmt.(type) {
	case *ast.Label:
		if scope.emitLabel(s.Name) {
			g.errorf(s.Loc, "label %q already defined", s.Name)
		}
	case *ast.Assign:
		g.genAssign(s, scope)
	case *ast.Goto:
		dest := s.Label
		scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
			return runtime.GotoDirective(dest), nil
		})
	case *ast.If:
		g.genIf(s, scope)
	case *ast.CondLoop:
		g.genCondLoop(s, scope)
	case *ast.UncondLoop:
		g.genUncondLoop(s, scope)
	case *ast.ExitLoop:
		g.genExitLoop(s, scope)
	case *ast.For:
		g.genFor(s, scope)
	case *ast.Next:
		g.genNext(s, scope)
	case *ast.ExitFor:
		g.genExitFor(s, scope)
	case *ast.Gosub:
		dest := s.DestLabel
		scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
			return runtime.GosubDirective(dest), nil
		})
	case *ast.Return:
		dest := s.DestLabel
		scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
			return runtime.ReturnDirective(dest), nil
		})
	case *ast.End:
		scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
			return runtime.EndDirective(), nil
		})
	case *ast.Print:
		g.genPrint(s, scope)
	case *ast.Input:
		g.genInput(s, scope)
	case *ast.Dim:
		g.genDim(s, scope)
	default:
		g.errorf(stmt.Pos(), "codegen: unhandled statement node")
	}
}

// genAssignSetter returns a closure that stores a value into target's
// storage location, shared by Assign and INPUT target binding.
func (g *Generator) genAssignSetter(target ast.Expr) func(ctx *runtime.Context, v runtime.Value) error {
	switch t := target.(type) {
	case *ast.VarRef:
		sym := t.Symbol
		return func(ctx *runtime.Context, v runtime.Value) error {
			setSymbol(ctx, sym, coerceToKind(v, elementaryKind(sym.Type)))
			return nil
		}
	case *ast.FnCall:
		sym := t.Symbol
		argFns := g.genExprs(t.Args)
		pos := t.Pos()
		elemKind := types.Single
		if sym != nil && sym.Type.Elem != nil {
			elemKind = sym.Type.Elem.Kind
		}
		return func(ctx *runtime.Context, v runtime.Value) error {
			arrVal := getSymbol(ctx, sym)
			if arrVal.Arr == nil {
				return runtimeErr(pos, "array %q is not dimensioned", t.Name)
			}
			idx, err := evalIndices(ctx, argFns, pos)
			if err != nil {
				return err
			}
			return arrVal.Arr.Set(pos, idx, coerceToKind(v, elemKind))
		}
	default:
		pos := target.Pos()
		return func(ctx *runtime.Context, v runtime.Value) error {
			return runtimeErr(pos, "codegen: unassignable target")
		}
	}
}

// genAssign implements spec.md §4.4's Assignment rule: evaluate the RHS,
// store into the LHS's storage location.
func (g *Generator) genAssign(s *ast.Assign, scope *genScope) {
	valueFn := g.genExpr(s.Value)
	setter := g.genAssignSetter(s.Target)
	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		v, err := valueFn(ctx)
		if err != nil {
			return runtime.Directive{}, err
		}
		if err := setter(ctx, v); err != nil {
			return runtime.Directive{}, err
		}
		return runtime.NoDirective, nil
	})
}

// genIf implements spec.md §4.4's IF lowering: one label per arm boundary
// (`_elifN`, optional `_else`, mandatory `_endif`), a conditional goto to
// the next boundary when an arm's condition is false, then the arm's body,
// then an unconditional goto to `_endif` (omitted on the last arm when
// there is no else).
func (g *Generator) genIf(s *ast.If, scope *genScope) {
	endLabel := scope.newLabel("_endif")

	for i, arm := range s.Arms {
		isLastArm := i == len(s.Arms)-1 && len(s.ElseStmts) == 0
		nextLabel := endLabel
		if !isLastArm {
			nextLabel = scope.newLabel(fmt.Sprintf("_elif%d", i+1))
		}

		condFn := g.genExpr(arm.Cond)
		dest := nextLabel
		scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
			v, err := condFn(ctx)
			if err != nil {
				return runtime.Directive{}, err
			}
			if !isTruthy(v) {
				return runtime.GotoDirective(dest), nil
			}
			return runtime.NoDirective, nil
		})

		g.genStmts(arm.Stmts, scope)

		if !isLastArm {
			scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
				return runtime.GotoDirective(endLabel), nil
			})
			scope.emitLabel(nextLabel)
		}
	}

	if len(s.ElseStmts) > 0 {
		g.genStmts(s.ElseStmts, scope)
	}

	scope.emitLabel(endLabel)
}

// genCondLoop implements spec.md §4.4's Conditional loop lowering:
// `loopStart` / [guard if CondBeforeStmts] / stmts / [guard if
// CondAfterStmts] / goto loopStart / `loopEnd`. `WHILE c` exits when !c;
// `UNTIL c` exits when c (s.Negated).
func (g *Generator) genCondLoop(s *ast.CondLoop, scope *genScope) {
	startLabel := scope.newLabel("_loopStart")
	endLabel := scope.newLabel("_loopEnd")
	condFn := g.genExpr(s.Cond)
	negated := s.Negated

	guard := func(ctx *runtime.Context) (runtime.Directive, error) {
		v, err := condFn(ctx)
		if err != nil {
			return runtime.Directive{}, err
		}
		exits := isTruthy(v)
		if !negated {
			exits = !exits
		}
		if exits {
			return runtime.GotoDirective(endLabel), nil
		}
		return runtime.NoDirective, nil
	}

	scope.pushLoop(endLabel)
	scope.emitLabel(startLabel)

	if s.Structure == ast.CondBeforeStmts {
		scope.emit(s.Loc, guard)
		g.genStmts(s.Stmts, scope)
	} else {
		g.genStmts(s.Stmts, scope)
		scope.emit(s.Loc, guard)
	}

	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		return runtime.GotoDirective(startLabel), nil
	})
	scope.emitLabel(endLabel)
	scope.popLoop()
}

// genUncondLoop implements spec.md §4.4's bare `DO / LOOP`: `loopStart` /
// stmts / goto loopStart / `loopEnd`, exited only via EXIT DO.
func (g *Generator) genUncondLoop(s *ast.UncondLoop, scope *genScope) {
	startLabel := scope.newLabel("_loopStart")
	endLabel := scope.newLabel("_loopEnd")

	scope.pushLoop(endLabel)
	scope.emitLabel(startLabel)
	g.genStmts(s.Stmts, scope)
	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		return runtime.GotoDirective(startLabel), nil
	})
	scope.emitLabel(endLabel)
	scope.popLoop()
}

// genExitLoop implements EXIT DO: goto the innermost open loop's loopEnd.
func (g *Generator) genExitLoop(s *ast.ExitLoop, scope *genScope) {
	frame, ok := scope.currentLoop()
	if !ok {
		g.errorf(s.Loc, "EXIT DO outside of a DO/LOOP")
		return
	}
	dest := frame.endLabel
	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		return runtime.GotoDirective(dest), nil
	})
}

// genFor implements spec.md §4.4's FOR/NEXT lowering's open half: the
// initialisation statement (`i := a`, temps `step := s or 1`, `end := b`
// named off the label stem), the guard statement, and pushing the FOR
// frame. The closing half (increment, goto loopStart, loopEnd, temp
// release) happens at the matching NEXT (genNext), since NEXT is parsed as
// a sibling statement rather than nested inside this For's own Stmts
// (spec.md §4.4 "at NEXT... free the temps").
func (g *Generator) genFor(s *ast.For, scope *genScope) {
	if s.CounterSymbol == nil {
		g.errorf(s.Loc, "FOR %q has no resolved counter symbol", s.Counter)
		return
	}

	startFn := g.genExpr(s.Start)
	endFn := g.genExpr(s.End)
	var stepFn evalFn
	if s.Step != nil {
		stepFn = g.genExpr(s.Step)
	}

	sym := s.CounterSymbol
	counterKind := elementaryKind(sym.Type)
	stem := scope.newLabel("")
	endKey := stem + "_forEnd"
	stepKey := stem + "_forStep"
	startLabel := stem + "_forStart"
	endLabel := stem + "_forDone"

	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		startV, err := startFn(ctx)
		if err != nil {
			return runtime.Directive{}, err
		}
		endV, err := endFn(ctx)
		if err != nil {
			return runtime.Directive{}, err
		}
		var stepV runtime.Value
		if stepFn != nil {
			stepV, err = stepFn(ctx)
			if err != nil {
				return runtime.Directive{}, err
			}
		} else {
			stepV = runtime.Num(counterKind, 1)
		}
		ctx.Locals[endKey] = coerceToKind(endV, counterKind)
		ctx.Locals[stepKey] = coerceToKind(stepV, counterKind)
		setSymbol(ctx, sym, coerceToKind(startV, counterKind))
		return runtime.NoDirective, nil
	})

	scope.emitLabel(startLabel)
	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		counter := getSymbol(ctx, sym)
		end := ctx.Locals[endKey]
		step := ctx.Locals[stepKey]
		shouldExit := (step.Num >= 0 && counter.Num > end.Num) || (step.Num < 0 && counter.Num < end.Num)
		if shouldExit {
			return runtime.GotoDirective(endLabel), nil
		}
		return runtime.NoDirective, nil
	})

	scope.pushFor(forFrame{
		counterKey:  strings.ToLower(s.Counter),
		counterSym:  sym,
		counterKind: counterKind,
		startLabel:  startLabel,
		endLabel:    endLabel,
		stepKey:     stepKey,
		endKey:      endKey,
	})

	g.genStmts(s.Stmts, scope)
}

// genNext implements the closing half of FOR/NEXT lowering: for each named
// counter (or one, for a bare NEXT), pop the innermost open FOR frame,
// verify a named counter's textual form matches, emit the increment and
// goto loopStart, then loopEnd, then release the temps.
func (g *Generator) genNext(s *ast.Next, scope *genScope) {
	n := len(s.Counters)
	if n == 0 {
		n = 1
	}
	for i := 0; i < n; i++ {
		frame, ok := scope.currentFor()
		if !ok {
			g.errorf(s.Loc, "NEXT with no matching open FOR")
			return
		}
		if i < len(s.Counters) && strings.ToLower(s.Counters[i]) != frame.counterKey {
			g.errorf(s.Loc, "NEXT counter %q does not match its FOR counter", s.Counters[i])
		}
		scope.popFor()
		g.closeFor(s.Loc, scope, frame)
	}
}

func (g *Generator) closeFor(pos token.Position, scope *genScope, frame forFrame) {
	sym := frame.counterSym
	kind := frame.counterKind
	stepKey := frame.stepKey
	endKey := frame.endKey
	startLabel := frame.startLabel

	scope.emit(pos, func(ctx *runtime.Context) (runtime.Directive, error) {
		counter := getSymbol(ctx, sym)
		step := ctx.Locals[stepKey]
		setSymbol(ctx, sym, coerceToKind(runtime.Num(kind, counter.Num+step.Num), kind))
		return runtime.GotoDirective(startLabel), nil
	})
	scope.emitLabel(frame.endLabel)
	scope.emit(pos, func(ctx *runtime.Context) (runtime.Directive, error) {
		delete(ctx.Locals, stepKey)
		delete(ctx.Locals, endKey)
		return runtime.NoDirective, nil
	})
}

// genExitFor implements EXIT FOR: goto the innermost open FOR's endLabel.
func (g *Generator) genExitFor(s *ast.ExitFor, scope *genScope) {
	frame, ok := scope.currentFor()
	if !ok {
		g.errorf(s.Loc, "EXIT FOR outside of a FOR/NEXT")
		return
	}
	dest := frame.endLabel
	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		return runtime.GotoDirective(dest), nil
	})
}

// genPrint implements spec.md §4.4's PRINT lowering: one statement whose
// run invokes the runtime print with an ordered list of tagged args.
func (g *Generator) genPrint(s *ast.Print, scope *genScope) {
	type argGen struct {
		kind runtime.PrintArgKind
		fn   evalFn
	}
	gens := make([]argGen, len(s.Args))
	for i, item := range s.Args {
		switch item.Kind {
		case ast.PrintComma:
			gens[i] = argGen{kind: runtime.ArgComma}
		case ast.PrintSemicolon:
			gens[i] = argGen{kind: runtime.ArgSemicolon}
		case ast.PrintValue:
			gens[i] = argGen{kind: runtime.ArgValue, fn: g.genExpr(item.Expr)}
		}
	}

	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		args := make([]runtime.PrintArg, len(gens))
		for i, gn := range gens {
			if gn.kind == runtime.ArgValue {
				v, err := gn.fn(ctx)
				if err != nil {
					return runtime.Directive{}, err
				}
				args[i] = runtime.PrintArg{Kind: runtime.ArgValue, Value: v}
			} else {
				args[i] = runtime.PrintArg{Kind: gn.kind}
			}
		}
		ctx.Env.Print(args)
		return runtime.NoDirective, nil
	})
}

// genInput implements spec.md §4.4/§4.5's INPUT lowering: writes the
// prompt, reads and coerces one value per target via runtime.Env.Input,
// then stores each into its target's storage location.
func (g *Generator) genInput(s *ast.Input, scope *genScope) {
	setters := make([]func(ctx *runtime.Context, v runtime.Value) error, len(s.Targets))
	kinds := make([]types.Kind, len(s.Targets))
	for i, target := range s.Targets {
		setters[i] = g.genAssignSetter(target)
		if t := target.GetType(); t != nil {
			kinds[i] = t.Kind
		} else {
			kinds[i] = types.Single
		}
	}
	prompt := s.Prompt

	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		values, err := ctx.Env.Input(prompt, kinds)
		if err != nil {
			return runtime.Directive{}, err
		}
		for i, v := range values {
			if err := setters[i](ctx, v); err != nil {
				return runtime.Directive{}, err
			}
		}
		return runtime.NoDirective, nil
	})
}

// genDim implements spec.md §4.5's array-object creation: `DIM x(a TO b,
// c TO d)` creates a typed array; bare `DIM x(n)` is `0 TO n`. Bound
// expressions are re-evaluated here (rather than read off the analyzer's
// placeholder types.Dim, see semantic.Analyzer.analyzeDim's doc comment)
// so non-constant bounds work. A Dim-declared array's symbol is always
// symtab.Var (never Arg), so it is always stored in ctx.Locals.
func (g *Generator) genDim(s *ast.Dim, scope *genScope) {
	type boundGen struct {
		lower evalFn // nil means implicit 0
		upper evalFn
	}
	bounds := make([]boundGen, len(s.Bounds))
	for i, b := range s.Bounds {
		bg := boundGen{upper: g.genExpr(b.Upper)}
		if b.Lower != nil {
			bg.lower = g.genExpr(b.Lower)
		}
		bounds[i] = bg
	}

	elemKind := dimElemKind(s)
	key := strings.ToLower(s.Name)

	scope.emit(s.Loc, func(ctx *runtime.Context) (runtime.Directive, error) {
		dims := make([]types.Dim, len(bounds))
		for i, bg := range bounds {
			lower := 0
			if bg.lower != nil {
				lv, err := bg.lower(ctx)
				if err != nil {
					return runtime.Directive{}, err
				}
				lower = int(lv.Num)
			}
			uv, err := bg.upper(ctx)
			if err != nil {
				return runtime.Directive{}, err
			}
			dims[i] = types.Dim{Lower: lower, Upper: int(uv.Num)}
		}
		ctx.Locals[key] = runtime.ArrValue(runtime.NewArray(elemKind, dims))
		return runtime.NoDirective, nil
	})
}

// dimElemKind mirrors semantic.sigilFor+types.KindFromName's mapping from a
// DIM statement's `AS <type>` keyword (or its name's trailing sigil) to an
// elementary Kind; duplicated here because semantic.sigilFor is
// unexported and codegen has no other way to recover this decision (see
// DESIGN.md).
func dimElemKind(s *ast.Dim) types.Kind {
	if s.AsType == "" {
		return types.KindFromName(s.Name)
	}
	switch strings.ToUpper(s.AsType) {
	case "INTEGER":
		return types.Integer
	case "LONG":
		return types.Long
	case "SINGLE":
		return types.Single
	case "DOUBLE":
		return types.Double
	case "STRING":
		return types.String
	default:
		return types.Single
	}
}
