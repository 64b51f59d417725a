package runtime

import (
	"bytes"
	"strings"
	"testing"
)

func runnableAt(run func(ctx *Context) (Directive, error)) CompiledStmt {
	return CompiledStmt{Runnable: &Runnable{Run: run}}
}

func TestExecFollowsGoto(t *testing.T) {
	var trace []string
	stmts := []CompiledStmt{
		runnableAt(func(ctx *Context) (Directive, error) {
			trace = append(trace, "first")
			return GotoDirective("target"), nil
		}),
		runnableAt(func(ctx *Context) (Directive, error) {
			trace = append(trace, "skipped")
			return NoDirective, nil
		}),
		{Label: "target"},
		runnableAt(func(ctx *Context) (Directive, error) {
			trace = append(trace, "target")
			return NoDirective, nil
		}),
	}
	env := NewStdEnv(strings.NewReader(""), &bytes.Buffer{})
	ctx := NewContext(env, map[string]Value{}, map[string]*CompiledProc{})
	if _, err := Exec(stmts, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(trace, ",") != "first,target" {
		t.Fatalf("unexpected trace: %v", trace)
	}
}

func TestExecGosubReturnsToCaller(t *testing.T) {
	var trace []string
	stmts := []CompiledStmt{
		runnableAt(func(ctx *Context) (Directive, error) {
			trace = append(trace, "call")
			return GosubDirective("sub"), nil
		}),
		runnableAt(func(ctx *Context) (Directive, error) {
			trace = append(trace, "after")
			return NoDirective, nil
		}),
		{Label: "sub"},
		runnableAt(func(ctx *Context) (Directive, error) {
			trace = append(trace, "in-sub")
			return ReturnDirective(""), nil
		}),
	}
	env := NewStdEnv(strings.NewReader(""), &bytes.Buffer{})
	ctx := NewContext(env, map[string]Value{}, map[string]*CompiledProc{})
	if _, err := Exec(stmts, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(trace, ",") != "call,in-sub,after" {
		t.Fatalf("unexpected trace: %v", trace)
	}
}

func TestExecReturnWithNoGosubErrors(t *testing.T) {
	stmts := []CompiledStmt{
		runnableAt(func(ctx *Context) (Directive, error) {
			return ReturnDirective(""), nil
		}),
	}
	env := NewStdEnv(strings.NewReader(""), &bytes.Buffer{})
	ctx := NewContext(env, map[string]Value{}, map[string]*CompiledProc{})
	if _, err := Exec(stmts, ctx); err == nil {
		t.Fatal("expected an error for RETURN with no matching GOSUB")
	}
}

func TestExecEndStopsExecution(t *testing.T) {
	ran := false
	stmts := []CompiledStmt{
		runnableAt(func(ctx *Context) (Directive, error) {
			return EndDirective(), nil
		}),
		runnableAt(func(ctx *Context) (Directive, error) {
			ran = true
			return NoDirective, nil
		}),
	}
	env := NewStdEnv(strings.NewReader(""), &bytes.Buffer{})
	ctx := NewContext(env, map[string]Value{}, map[string]*CompiledProc{})
	if _, err := Exec(stmts, ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ran {
		t.Fatal("expected execution to stop at END")
	}
}

func TestExecUnknownGotoTargetErrors(t *testing.T) {
	stmts := []CompiledStmt{
		runnableAt(func(ctx *Context) (Directive, error) {
			return GotoDirective("nowhere"), nil
		}),
	}
	env := NewStdEnv(strings.NewReader(""), &bytes.Buffer{})
	ctx := NewContext(env, map[string]Value{}, map[string]*CompiledProc{})
	if _, err := Exec(stmts, ctx); err == nil {
		t.Fatal("expected an error for an unresolved GOTO target")
	}
}
