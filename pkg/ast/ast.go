// Package ast defines the abstract syntax tree the semantic passes
// validate and rewrite.
package ast

import (
	"fmt"

	"github.com/cbc-lang/cbc/pkg/source"
	"github.com/cbc-lang/cbc/pkg/types"
)

// NodeKind defines the kind of a node in the AST.
type NodeKind int

// Node kinds enum. Expression kinds come first; IsExpr depends on the
// ordering.
const (
	// Expressions
	IntLit NodeKind = iota
	StrLit
	VarRef
	FuncRef
	Binary
	LogicalAnd
	LogicalOr
	Unary
	Prefix
	Suffix
	Assign
	OpAssign
	Cond
	Funcall
	Aref
	Member
	PtrMember
	Deref
	Addr
	Cast
	SizeofType

	// Statements
	Block
	If
	While
	DoWhile
	For
	Switch
	CaseClause
	Return
	Break
	Continue
	Goto
	Label
)

var kindNames = [...]string{
	"IntLit", "StrLit", "VarRef", "FuncRef", "Binary", "LogicalAnd", "LogicalOr",
	"Unary", "Prefix", "Suffix", "Assign", "OpAssign", "Cond", "Funcall",
	"Aref", "Member", "PtrMember", "Deref", "Addr", "Cast", "SizeofType",
	"Block", "If", "While", "DoWhile", "For", "Switch", "CaseClause",
	"Return", "Break", "Continue", "Goto", "Label",
}

func (k NodeKind) String() string { return kindNames[k] }

// Node represents a node in the AST. Typ is filled by the resolver for
// leaf and structural expressions and by the type checker for the rest;
// child slots inside Data are rewritten in place by the checker when it
// materializes implicit conversions.
type Node struct {
	Kind NodeKind
	Loc  source.Location
	Typ  *types.Type
	Data interface{}
}

// IsExpr reports whether the node is an expression.
func (n *Node) IsExpr() bool { return n.Kind <= SizeofType }

// IsParameter reports whether the node is a reference to a function
// parameter. Parameters stay assignable and incrementable even when their
// declared type is an array, because arrays decay to pointers in
// parameter positions.
func (n *Node) IsParameter() bool {
	if n.Kind != VarRef {
		return false
	}
	return n.Data.(VarRefNode).Var.IsParameter
}

// BinOp identifies a binary operator. Typing decisions are driven by this
// enumerated kind; String returns the source spelling for diagnostics.
type BinOp int

const (
	OpAdd BinOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLShift
	OpRShift
	OpEq
	OpNeq
	OpLt
	OpLtEq
	OpGt
	OpGtEq
)

var binOpNames = [...]string{
	"+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>",
	"==", "!=", "<", "<=", ">", ">=",
}

func (op BinOp) String() string { return binOpNames[op] }

// UnaryOp identifies a simple unary operator.
type UnaryOp int

const (
	OpUnaryPlus UnaryOp = iota
	OpUnaryMinus
	OpBitNot
	OpNot
)

var unaryOpNames = [...]string{"+", "-", "~", "!"}

func (op UnaryOp) String() string { return unaryOpNames[op] }

// IncDecOp identifies an increment or decrement operator.
type IncDecOp int

const (
	OpInc IncDecOp = iota
	OpDec
)

func (op IncDecOp) String() string {
	if op == OpDec {
		return "--"
	}
	return "++"
}

// --- Node Data Structs ---

type IntLitNode struct {
	Ref   types.Ref
	Value int64
}
type StrLitNode struct{ Value string }
type VarRefNode struct{ Var *Variable }
type FuncRefNode struct{ Fn *Function }
type BinaryNode struct {
	Op          BinOp
	Left, Right *Node
}
type LogicalNode struct{ Left, Right *Node }
type UnaryNode struct {
	Op   UnaryOp
	Expr *Node
}

// IncDecNode backs both Prefix and Suffix kinds. OpType is set by the
// checker when integral promotion widens the computation type, and Amount
// is the step: 1 for integers, the base-type size for pointers.
type IncDecNode struct {
	Op     IncDecOp
	Expr   *Node
	OpType *types.Type
	Amount int64
}
type AssignNode struct{ LHS, RHS *Node }

// OpAssignNode is "LHS op= RHS". In the integer regime the checker casts
// only the RHS to the operation type; the LHS keeps its concrete type, so
// IR generation must accept a mixed-type op-assign.
type OpAssignNode struct {
	Op       BinOp
	LHS, RHS *Node
}
type CondNode struct{ CondExpr, Then, Else *Node }
type FuncallNode struct {
	Callee *Node
	Args   []*Node
}
type ArefNode struct{ Expr, Index *Node }
type MemberNode struct {
	Expr *Node
	Name string
}
type PtrMemberNode struct {
	Expr *Node
	Name string
}
type DerefNode struct{ Expr *Node }
type AddrNode struct{ Expr *Node }

// CastNode's target type is the node's Typ slot.
type CastNode struct{ Expr *Node }
type SizeofTypeNode struct{ Operand *types.Type }

type BlockNode struct {
	Vars  []*Variable
	Stmts []*Node
}
type IfNode struct{ CondExpr, Then, Else *Node }
type WhileNode struct{ CondExpr, Body *Node }
type DoWhileNode struct{ Body, CondExpr *Node }
type ForNode struct{ Init, CondExpr, Incr, Body *Node }
type SwitchNode struct {
	CondExpr *Node
	Cases    []*Node
}
type CaseClauseNode struct {
	Values    []*Node
	Body      *Node
	IsDefault bool
}
type ReturnNode struct{ Expr *Node }
type BreakNode struct{}
type ContinueNode struct{}
type GotoNode struct{ LabelName string }
type LabelNode struct {
	Name string
	Stmt *Node
}

// --- Node Constructors ---

func newNode(loc source.Location, kind NodeKind, data interface{}) *Node {
	return &Node{Kind: kind, Loc: loc, Data: data}
}

func NewIntLit(loc source.Location, ref types.Ref, value int64) *Node {
	return newNode(loc, IntLit, IntLitNode{Ref: ref, Value: value})
}
func NewStrLit(loc source.Location, value string) *Node {
	return newNode(loc, StrLit, StrLitNode{Value: value})
}

// NewVarRef builds a reference to v, typed with v's declared type the way
// the resolver leaves it.
func NewVarRef(loc source.Location, v *Variable) *Node {
	n := newNode(loc, VarRef, VarRefNode{Var: v})
	n.Typ = v.Type
	return n
}
// NewFuncRef builds a function designator, typed with the function's
// own type.
func NewFuncRef(loc source.Location, fn *Function) *Node {
	n := newNode(loc, FuncRef, FuncRefNode{Fn: fn})
	n.Typ = fn.Type()
	return n
}
func NewBinary(loc source.Location, op BinOp, left, right *Node) *Node {
	return newNode(loc, Binary, BinaryNode{Op: op, Left: left, Right: right})
}
func NewLogicalAnd(loc source.Location, left, right *Node) *Node {
	return newNode(loc, LogicalAnd, LogicalNode{Left: left, Right: right})
}
func NewLogicalOr(loc source.Location, left, right *Node) *Node {
	return newNode(loc, LogicalOr, LogicalNode{Left: left, Right: right})
}
func NewUnary(loc source.Location, op UnaryOp, expr *Node) *Node {
	return newNode(loc, Unary, UnaryNode{Op: op, Expr: expr})
}
func NewPrefix(loc source.Location, op IncDecOp, expr *Node) *Node {
	return newNode(loc, Prefix, IncDecNode{Op: op, Expr: expr})
}
func NewSuffix(loc source.Location, op IncDecOp, expr *Node) *Node {
	return newNode(loc, Suffix, IncDecNode{Op: op, Expr: expr})
}
func NewAssign(loc source.Location, lhs, rhs *Node) *Node {
	return newNode(loc, Assign, AssignNode{LHS: lhs, RHS: rhs})
}
func NewOpAssign(loc source.Location, op BinOp, lhs, rhs *Node) *Node {
	return newNode(loc, OpAssign, OpAssignNode{Op: op, LHS: lhs, RHS: rhs})
}
func NewCond(loc source.Location, cond, then, els *Node) *Node {
	return newNode(loc, Cond, CondNode{CondExpr: cond, Then: then, Else: els})
}
func NewFuncall(loc source.Location, callee *Node, args []*Node) *Node {
	return newNode(loc, Funcall, FuncallNode{Callee: callee, Args: args})
}
func NewAref(loc source.Location, expr, index *Node) *Node {
	return newNode(loc, Aref, ArefNode{Expr: expr, Index: index})
}
func NewMember(loc source.Location, expr *Node, name string) *Node {
	return newNode(loc, Member, MemberNode{Expr: expr, Name: name})
}
func NewPtrMember(loc source.Location, expr *Node, name string) *Node {
	return newNode(loc, PtrMember, PtrMemberNode{Expr: expr, Name: name})
}
func NewDeref(loc source.Location, expr *Node) *Node {
	return newNode(loc, Deref, DerefNode{Expr: expr})
}
func NewAddr(loc source.Location, expr *Node) *Node {
	return newNode(loc, Addr, AddrNode{Expr: expr})
}

// NewCast builds a cast of expr to target, at expr's own location.
func NewCast(target *types.Type, expr *Node) *Node {
	n := newNode(expr.Loc, Cast, CastNode{Expr: expr})
	n.Typ = target
	return n
}
func NewSizeofType(loc source.Location, operand *types.Type) *Node {
	return newNode(loc, SizeofType, SizeofTypeNode{Operand: operand})
}

func NewBlock(loc source.Location, vars []*Variable, stmts []*Node) *Node {
	return newNode(loc, Block, BlockNode{Vars: vars, Stmts: stmts})
}
func NewIf(loc source.Location, cond, then, els *Node) *Node {
	return newNode(loc, If, IfNode{CondExpr: cond, Then: then, Else: els})
}
func NewWhile(loc source.Location, cond, body *Node) *Node {
	return newNode(loc, While, WhileNode{CondExpr: cond, Body: body})
}
func NewDoWhile(loc source.Location, body, cond *Node) *Node {
	return newNode(loc, DoWhile, DoWhileNode{Body: body, CondExpr: cond})
}
func NewFor(loc source.Location, init, cond, incr, body *Node) *Node {
	return newNode(loc, For, ForNode{Init: init, CondExpr: cond, Incr: incr, Body: body})
}
func NewSwitch(loc source.Location, cond *Node, cases []*Node) *Node {
	return newNode(loc, Switch, SwitchNode{CondExpr: cond, Cases: cases})
}
func NewCaseClause(loc source.Location, values []*Node, body *Node) *Node {
	return newNode(loc, CaseClause, CaseClauseNode{Values: values, Body: body, IsDefault: values == nil})
}
func NewReturn(loc source.Location, expr *Node) *Node {
	return newNode(loc, Return, ReturnNode{Expr: expr})
}
func NewBreak(loc source.Location) *Node    { return newNode(loc, Break, BreakNode{}) }
func NewContinue(loc source.Location) *Node { return newNode(loc, Continue, ContinueNode{}) }
func NewGoto(loc source.Location, label string) *Node {
	return newNode(loc, Goto, GotoNode{LabelName: label})
}
func NewLabel(loc source.Location, name string, stmt *Node) *Node {
	return newNode(loc, Label, LabelNode{Name: name, Stmt: stmt})
}

// FunctionType returns the called function's type. The resolver has
// already typed the callee as a function or a pointer to one.
func (n *Node) FunctionType() *types.Type {
	d := n.Data.(FuncallNode)
	t := d.Callee.Typ
	if t.IsPointer() {
		t = t.BaseType()
	}
	if !t.IsFunction() {
		panic(fmt.Sprintf("callee is not a function: %s", t))
	}
	return t
}

// NumArgs returns the call's argument count.
func (n *Node) NumArgs() int { return len(n.Data.(FuncallNode).Args) }

// Arguments returns the call's argument slice.
func (n *Node) Arguments() []*Node { return n.Data.(FuncallNode).Args }

// ReplaceArgs swaps in a rewritten argument list atomically.
func (n *Node) ReplaceArgs(args []*Node) {
	d := n.Data.(FuncallNode)
	d.Args = args
	n.Data = d
}
