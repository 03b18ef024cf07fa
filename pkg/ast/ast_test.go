package ast

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cbc-lang/cbc/pkg/source"
	"github.com/cbc-lang/cbc/pkg/types"
)

func loc(line, col int) source.Location {
	return source.NewLocation("t.cb", line, col)
}

func TestIsExpr(t *testing.T) {
	tbl := types.NewILP32()
	v := NewVariable(loc(1, 1), "v", tbl.SignedInt(), nil)
	exprs := []*Node{
		NewIntLit(loc(1, 1), "int", 0),
		NewVarRef(loc(1, 1), v),
		NewAssign(loc(1, 1), NewVarRef(loc(1, 1), v), NewIntLit(loc(1, 2), "int", 1)),
		NewCast(tbl.SignedInt(), NewIntLit(loc(1, 1), "int", 0)),
	}
	for _, e := range exprs {
		if !e.IsExpr() {
			t.Errorf("%s must be an expression", e.Kind)
		}
	}
	stmts := []*Node{
		NewBlock(loc(1, 1), nil, nil),
		NewReturn(loc(1, 1), nil),
		NewBreak(loc(1, 1)),
		NewLabel(loc(1, 1), "l", NewBreak(loc(1, 1))),
	}
	for _, s := range stmts {
		if s.IsExpr() {
			t.Errorf("%s must not be an expression", s.Kind)
		}
	}
}

func TestIsParameter(t *testing.T) {
	tbl := types.NewILP32()
	p := NewParameter(loc(1, 1), "p", tbl.SignedInt())
	v := NewVariable(loc(1, 1), "v", tbl.SignedInt(), nil)
	if !NewVarRef(loc(2, 1), p).IsParameter() {
		t.Error("reference to a parameter must report IsParameter")
	}
	if NewVarRef(loc(2, 1), v).IsParameter() {
		t.Error("reference to a local must not report IsParameter")
	}
	if NewIntLit(loc(2, 1), "int", 0).IsParameter() {
		t.Error("a literal is never a parameter")
	}
}

func TestFunctionType(t *testing.T) {
	tbl := types.NewILP32()
	p := NewParameter(loc(1, 7), "x", tbl.SignedInt())
	f := NewFunction(loc(1, 1), "f", tbl.SignedChar(), []*Variable{p}, true, nil)
	ft := f.Type()
	if !ft.IsFunction() || !ft.Return.IsSameType(tbl.SignedChar()) || !ft.Variadic {
		t.Fatalf("function type = %s", ft)
	}
	if !ft.AcceptsArgc(1) || !ft.AcceptsArgc(5) || ft.AcceptsArgc(0) {
		t.Error("variadic arity must accept >= 1 argument")
	}

	call := NewFuncall(loc(2, 1), NewFuncRef(loc(2, 1), f), []*Node{NewIntLit(loc(2, 3), "int", 1)})
	if got := call.FunctionType(); !got.IsSameType(ft) {
		t.Errorf("FunctionType = %s, want %s", got, ft)
	}
	if call.NumArgs() != 1 {
		t.Errorf("NumArgs = %d, want 1", call.NumArgs())
	}
}

func TestReplaceArgs(t *testing.T) {
	tbl := types.NewILP32()
	f := NewFunction(loc(1, 1), "f", tbl.SignedInt(), nil, true, nil)
	call := NewFuncall(loc(2, 1), NewFuncRef(loc(2, 1), f), []*Node{NewIntLit(loc(2, 3), "int", 1)})
	repl := []*Node{NewIntLit(loc(2, 3), "int", 2), NewIntLit(loc(2, 6), "int", 3)}
	call.ReplaceArgs(repl)
	got := call.Arguments()
	if len(got) != 2 || got[0] != repl[0] || got[1] != repl[1] {
		t.Error("ReplaceArgs must swap the argument list atomically")
	}
}

func TestDumpDeterministic(t *testing.T) {
	tbl := types.NewILP32()
	c := NewVariable(loc(1, 1), "c", tbl.SignedChar(), NewIntLit(loc(1, 10), "int", 0))
	i := NewVariable(loc(3, 5), "i", tbl.SignedInt(), nil)
	assign := NewAssign(loc(4, 5), NewVarRef(loc(4, 3), i), NewIntLit(loc(4, 7), "int", 1))
	f := NewFunction(loc(3, 1), "f", tbl.VoidType(), nil, false,
		NewBlock(loc(3, 9), []*Variable{i}, []*Node{assign, NewReturn(loc(5, 3), nil)}))
	unit := &AST{Vars: []*Variable{c}, Funcs: []*Function{f}}

	first := DumpString(unit)
	second := DumpString(unit)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("dump not deterministic (-first +second):\n%s", diff)
	}
	for _, want := range []string{"(defvar c char", "(defun f void()", "(assign", "(ref i", "(return"} {
		if !strings.Contains(first, want) {
			t.Errorf("dump missing %q:\n%s", want, first)
		}
	}
}

func TestDataRewrite(t *testing.T) {
	tbl := types.NewILP32()
	v := NewVariable(loc(1, 1), "v", tbl.SignedInt(), nil)
	rhs := NewIntLit(loc(2, 5), "int", 1)
	assign := NewAssign(loc(2, 3), NewVarRef(loc(2, 1), v), rhs)

	d := assign.Data.(AssignNode)
	d.RHS = NewCast(tbl.SignedInt(), rhs)
	assign.Data = d

	if got := assign.Data.(AssignNode).RHS; got.Kind != Cast {
		t.Error("child slot rewrite must stick")
	}
}
