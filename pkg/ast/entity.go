package ast

import (
	"github.com/cbc-lang/cbc/pkg/source"
	"github.com/cbc-lang/cbc/pkg/types"
)

// Variable is a defined variable or a function parameter. Init is the
// optional initializer expression; the checker rewrites the slot when it
// inserts the declaration-time implicit cast.
type Variable struct {
	Name        string
	Loc         source.Location
	Type        *types.Type
	Init        *Node
	IsParameter bool
}

// NewVariable builds a defined variable.
func NewVariable(loc source.Location, name string, typ *types.Type, init *Node) *Variable {
	return &Variable{Name: name, Loc: loc, Type: typ, Init: init}
}

// NewParameter builds a function parameter.
func NewParameter(loc source.Location, name string, typ *types.Type) *Variable {
	return &Variable{Name: name, Loc: loc, Type: typ, IsParameter: true}
}

func (v *Variable) HasInitializer() bool { return v.Init != nil }

// Function is a defined function with its body.
type Function struct {
	Name     string
	Loc      source.Location
	Return   *types.Type
	Params   []*Variable
	Variadic bool
	Body     *Node
}

func NewFunction(loc source.Location, name string, ret *types.Type, params []*Variable, variadic bool, body *Node) *Function {
	return &Function{Name: name, Loc: loc, Return: ret, Params: params, Variadic: variadic, Body: body}
}

// Type builds the function's type value.
func (f *Function) Type() *types.Type {
	params := make([]*types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type
	}
	return types.NewFunction(f.Return, params, f.Variadic)
}

func (f *Function) IsVoid() bool { return f.Return.IsVoid() }

// AST is one translation unit after parsing and resolution: its
// module-level variables and defined functions.
type AST struct {
	Vars  []*Variable
	Funcs []*Function
}
