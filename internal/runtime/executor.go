package runtime

import (
	"strings"

	"github.com/qbcompile/qbc/internal/token"
	"github.com/qbcompile/qbc/internal/types"
)

// DirectiveKind tags the control-flow instruction a Runnable's Run may
// return (spec.md §3 "ExecutionDirective").
type DirectiveKind int

const (
	DirNone DirectiveKind = iota // fall through to the next statement
	DirGoto
	DirGosub
	DirReturn
	DirEnd
)

// Directive is the value a compiled statement's Run function returns to
// tell the executor what to do next.
type Directive struct {
	Kind      DirectiveKind
	DestLabel string // meaningful for Goto/Gosub, and Return when non-empty
}

var NoDirective = Directive{Kind: DirNone}

func GotoDirective(label string) Directive  { return Directive{Kind: DirGoto, DestLabel: label} }
func GosubDirective(label string) Directive { return Directive{Kind: DirGosub, DestLabel: label} }
func ReturnDirective(label string) Directive {
	return Directive{Kind: DirReturn, DestLabel: label}
}
func EndDirective() Directive { return Directive{Kind: DirEnd} }

// Runnable is one non-label compiled statement.
type Runnable struct {
	Loc token.Position
	Run func(ctx *Context) (Directive, error)
}

// CompiledStmt is the flat, label-addressed instruction stream's element
// type: exactly one of Label or Runnable is non-nil (spec.md §3).
type CompiledStmt struct {
	Label    string
	Runnable *Runnable
}

// CompiledProc is a FUNCTION lowered to its own flat statement list.
type CompiledProc struct {
	Name       string
	ParamNames []string
	Stmts      []CompiledStmt
}

// Module is the output of code generation (spec.md §3 "Compiled module").
type Module struct {
	SourceFileName string
	Stmts          []CompiledStmt
	Procs          []CompiledProc
}

// Context is threaded through every Runnable.Run call and every expression
// evaluation: the host Env, the storage locations spec.md §4.4's
// Assignment rule names directly (`localVars[name]`, `params[name]`,
// `globalVars[name]`), and the proc table so a FnCall expression can
// invoke a user FUNCTION mid-evaluation.
type Context struct {
	Env        Env
	Locals     map[string]Value
	Params     map[string]Value
	Globals    map[string]Value
	Procs      map[string]*CompiledProc
	GosubStack []int
}

// NewContext constructs a Context sharing globals and the proc table
// (module-level, invocation-spanning state) with fresh Locals/Params.
func NewContext(env Env, globals map[string]Value, procs map[string]*CompiledProc) *Context {
	return &Context{
		Env:     env,
		Locals:  make(map[string]Value),
		Params:  make(map[string]Value),
		Globals: globals,
		Procs:   procs,
	}
}

// Call invokes a user FUNCTION by name, binding args positionally and
// returning the value left in its implicit same-named return variable.
// Used by generated FnCall-expression closures (codegen's expression
// evaluator), not by the statement executor directly.
func (ctx *Context) Call(pos token.Position, name string, args []Value) (Value, error) {
	proc, ok := ctx.Procs[strings.ToLower(name)]
	if !ok {
		return Value{}, runtimeErr(pos, "undefined function %q", name)
	}
	child := NewContext(ctx.Env, ctx.Globals, ctx.Procs)
	for i, pname := range proc.ParamNames {
		if i < len(args) {
			child.Params[strings.ToLower(pname)] = args[i]
		}
	}
	if _, err := Exec(proc.Stmts, child); err != nil {
		return Value{}, err
	}
	if v, ok := child.Locals[strings.ToLower(proc.Name)]; ok {
		return v, nil
	}
	return Zero(types.Single), nil
}

// labelIndex builds a label-name → statement-index map for one statement
// list, used by the executor to resolve Goto/Gosub/Return targets.
func labelIndex(stmts []CompiledStmt) map[string]int {
	idx := make(map[string]int, len(stmts))
	for i, s := range stmts {
		if s.Label != "" {
			idx[s.Label] = i
		}
	}
	return idx
}

// Exec walks one flat statement list, following Goto/Gosub/Return within
// it (spec.md §5). Gosub/Return only make sense within a single list's own
// label space (spec.md §3 invariants: "exists in the compiled statement
// list of the enclosing proc or module"), so Exec never jumps between a
// module's top-level list and a proc's own list.
func Exec(stmts []CompiledStmt, ctx *Context) (Directive, error) {
	labels := labelIndex(stmts)
	pc := 0
	for pc < len(stmts) {
		if ctx.Env.StopRequested() {
			return EndDirective(), nil
		}
		stmt := stmts[pc]
		if stmt.Runnable == nil {
			pc++
			continue
		}
		directive, err := stmt.Runnable.Run(ctx)
		if err != nil {
			return Directive{}, err
		}
		switch directive.Kind {
		case DirNone:
			pc++
		case DirGoto:
			idx, ok := labels[directive.DestLabel]
			if !ok {
				return Directive{}, runtimeErr(stmt.Runnable.Loc, "GOTO target %q not found", directive.DestLabel)
			}
			pc = idx
		case DirGosub:
			idx, ok := labels[directive.DestLabel]
			if !ok {
				return Directive{}, runtimeErr(stmt.Runnable.Loc, "GOSUB target %q not found", directive.DestLabel)
			}
			ctx.GosubStack = append(ctx.GosubStack, pc+1)
			pc = idx
		case DirReturn:
			if directive.DestLabel != "" {
				idx, ok := labels[directive.DestLabel]
				if !ok {
					return Directive{}, runtimeErr(stmt.Runnable.Loc, "RETURN target %q not found", directive.DestLabel)
				}
				pc = idx
				break
			}
			if len(ctx.GosubStack) == 0 {
				return Directive{}, runtimeErr(stmt.Runnable.Loc, "RETURN with no matching GOSUB")
			}
			pc = ctx.GosubStack[len(ctx.GosubStack)-1]
			ctx.GosubStack = ctx.GosubStack[:len(ctx.GosubStack)-1]
		case DirEnd:
			return EndDirective(), nil
		}
	}
	return NoDirective, nil
}

// Interpreter is the host-facing entry point for running a compiled
// module to completion (spec.md §5).
type Interpreter struct {
	Env Env
}

func NewInterpreter(env Env) *Interpreter {
	return &Interpreter{Env: env}
}

// RunModule executes mod's top-level statement list.
func (in *Interpreter) RunModule(mod *Module) error {
	procs := make(map[string]*CompiledProc, len(mod.Procs))
	for i := range mod.Procs {
		procs[strings.ToLower(mod.Procs[i].Name)] = &mod.Procs[i]
	}
	globals := make(map[string]Value)
	ctx := NewContext(in.Env, globals, procs)
	_, err := Exec(mod.Stmts, ctx)
	return err
}
