// Package typeChecker implements the semantic type-checking pass: it
// validates every type-bearing construct, makes the implicit conversions
// the language mandates explicit by splicing cast nodes into the tree,
// and annotates pointer arithmetic with base-size scaling.
package typeChecker

import (
	"errors"
	"fmt"

	"github.com/cbc-lang/cbc/pkg/ast"
	"github.com/cbc-lang/cbc/pkg/source"
	"github.com/cbc-lang/cbc/pkg/types"
	"github.com/cbc-lang/cbc/pkg/util"
)

// ErrCompileFailed is returned by Check when any error-severity
// diagnostic was recorded during the pass.
var ErrCompileFailed = errors.New("compile failed.")

type TypeChecker struct {
	table       *types.Table
	errs        *util.ErrorHandler
	currentFunc *ast.Function
}

func NewTypeChecker(table *types.Table, errs *util.ErrorHandler) *TypeChecker {
	return &TypeChecker{table: table, errs: errs}
}

// Check validates and rewrites the whole unit: every module-level
// variable, then every function. Diagnostics are emitted as they are
// found; the traversal continues past recoverable errors so a single run
// surfaces as many as possible.
func (tc *TypeChecker) Check(a *ast.AST) error {
	for _, v := range a.Vars {
		tc.checkVariable(v)
	}
	for _, f := range a.Funcs {
		tc.checkReturnType(f)
		tc.checkParamTypes(f)
		prev := tc.currentFunc
		tc.currentFunc = f
		tc.checkStmt(f.Body)
		tc.currentFunc = prev
	}
	if tc.errs.ErrorOccurred() {
		return ErrCompileFailed
	}
	return nil
}

func (tc *TypeChecker) checkReturnType(f *ast.Function) {
	if tc.isInvalidReturnType(f.Return) {
		tc.error(f.Loc, "returns invalid type: %s", f.Return)
	}
}

func (tc *TypeChecker) checkParamTypes(f *ast.Function) {
	for _, param := range f.Params {
		if tc.isInvalidParameterType(param.Type) {
			tc.error(param.Loc, "invalid parameter type: %s", param.Type)
		}
	}
}

func (tc *TypeChecker) checkVariable(v *ast.Variable) {
	if tc.isInvalidVariableType(v.Type) {
		tc.error(v.Loc, "invalid variable type")
		return
	}
	if v.HasInitializer() {
		if tc.isInvalidLHSType(v.Type) {
			tc.error(v.Loc, "invalid LHS type: %s", v.Type)
			return
		}
		tc.checkExpr(v.Init)
		v.Init = tc.implicitCast(v.Type, v.Init)
	}
}

//
// Statements
//

func (tc *TypeChecker) checkStmt(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.Block:
		d := n.Data.(ast.BlockNode)
		for _, v := range d.Vars {
			tc.checkVariable(v)
		}
		for _, s := range d.Stmts {
			if s.IsExpr() {
				if t := tc.statementType(s); t != nil && tc.isInvalidStatementType(t) {
					tc.error(s.Loc, "invalid statement type: %s", t)
					continue
				}
			}
			tc.checkStmt(s)
		}
	case ast.If:
		d := n.Data.(ast.IfNode)
		tc.checkExpr(d.CondExpr)
		tc.checkStmt(d.Then)
		tc.checkStmt(d.Else)
		tc.checkCond(d.CondExpr)
	case ast.While:
		d := n.Data.(ast.WhileNode)
		tc.checkExpr(d.CondExpr)
		tc.checkStmt(d.Body)
		tc.checkCond(d.CondExpr)
	case ast.DoWhile:
		d := n.Data.(ast.DoWhileNode)
		tc.checkStmt(d.Body)
		tc.checkExpr(d.CondExpr)
		tc.checkCond(d.CondExpr)
	case ast.For:
		d := n.Data.(ast.ForNode)
		tc.checkExpr(d.Init)
		tc.checkExpr(d.CondExpr)
		tc.checkExpr(d.Incr)
		tc.checkStmt(d.Body)
		tc.checkCond(d.CondExpr)
	case ast.Switch:
		d := n.Data.(ast.SwitchNode)
		tc.checkExpr(d.CondExpr)
		for _, clause := range d.Cases {
			tc.checkStmt(clause)
		}
		tc.mustBeInteger(d.CondExpr, "condition expression")
	case ast.CaseClause:
		d := n.Data.(ast.CaseClauseNode)
		for _, v := range d.Values {
			tc.checkExpr(v)
		}
		tc.checkStmt(d.Body)
	case ast.Return:
		tc.checkReturn(n)
	case ast.Label:
		tc.checkStmt(n.Data.(ast.LabelNode).Stmt)
	case ast.Break, ast.Continue, ast.Goto:
	default:
		if n.IsExpr() {
			tc.checkExpr(n)
		}
	}
}

// statementType derives the type a bare expression statement would have
// before its subtree is visited, the way lazily-typed nodes expose it: an
// assignment has its LHS's type, a call its return type. Nil means the
// type is not statically known yet; the visit will fill it in.
func (tc *TypeChecker) statementType(n *ast.Node) *types.Type {
	if n.Typ != nil {
		return n.Typ
	}
	switch d := n.Data.(type) {
	case ast.AssignNode:
		return tc.statementType(d.LHS)
	case ast.OpAssignNode:
		return tc.statementType(d.LHS)
	case ast.BinaryNode:
		return tc.statementType(d.Left)
	case ast.LogicalNode:
		return tc.statementType(d.Left)
	case ast.UnaryNode:
		return tc.statementType(d.Expr)
	case ast.IncDecNode:
		return tc.statementType(d.Expr)
	case ast.CondNode:
		return tc.statementType(d.Then)
	case ast.FuncallNode:
		return n.FunctionType().Return
	}
	return nil
}

func (tc *TypeChecker) checkCond(cond *ast.Node) {
	tc.mustBeScalar(cond, "condition expression")
}

func (tc *TypeChecker) checkReturn(n *ast.Node) {
	d := n.Data.(ast.ReturnNode)
	tc.checkExpr(d.Expr)
	if tc.currentFunc.IsVoid() {
		if d.Expr != nil {
			tc.error(n.Loc, "returning value from void function")
		}
		return
	}
	// non-void function
	if d.Expr == nil {
		tc.error(n.Loc, "missing return value")
		return
	}
	if d.Expr.Typ != nil && d.Expr.Typ.IsVoid() {
		tc.error(n.Loc, "returning void")
		return
	}
	d.Expr = tc.implicitCast(tc.currentFunc.Return, d.Expr)
	n.Data = d
}

//
// Expressions
//

// checkExpr validates the subtree rooted at n, children first, computes
// n's type, and rewrites child slots when the conversion rules call for
// it. A nil type after an error means the error was already reported;
// downstream checks treat it as already-diagnosed and stay quiet.
func (tc *TypeChecker) checkExpr(n *ast.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case ast.IntLit, ast.StrLit, ast.VarRef, ast.FuncRef, ast.SizeofType:
		// Leaves; typed by the resolver.
	case ast.Assign:
		tc.checkAssign(n)
	case ast.OpAssign:
		tc.checkOpAssign(n)
	case ast.Cond:
		tc.checkCondExpr(n)
	case ast.Binary:
		tc.checkBinary(n)
	case ast.LogicalAnd, ast.LogicalOr:
		d := n.Data.(ast.LogicalNode)
		tc.checkExpr(d.Left)
		tc.checkExpr(d.Right)
		if t := tc.expectsComparableScalars(n); t != nil {
			n.Typ = t
		}
	case ast.Unary:
		d := n.Data.(ast.UnaryNode)
		tc.checkExpr(d.Expr)
		if d.Op == ast.OpNot {
			tc.mustBeScalar(d.Expr, d.Op.String())
		} else {
			tc.mustBeInteger(d.Expr, d.Op.String())
		}
		n.Typ = d.Expr.Typ
	case ast.Prefix, ast.Suffix:
		d := n.Data.(ast.IncDecNode)
		tc.checkExpr(d.Expr)
		tc.expectsScalarLHS(n)
		n.Typ = d.Expr.Typ
	case ast.Funcall:
		tc.checkFuncall(n)
	case ast.Aref:
		d := n.Data.(ast.ArefNode)
		tc.checkExpr(d.Expr)
		tc.checkExpr(d.Index)
		tc.mustBeInteger(d.Index, "[]")
		if n.Typ == nil && d.Expr.Typ != nil && d.Expr.Typ.IsDereferable() {
			n.Typ = d.Expr.Typ.BaseType()
		}
	case ast.Member:
		d := n.Data.(ast.MemberNode)
		tc.checkExpr(d.Expr)
		if n.Typ == nil && d.Expr.Typ != nil && d.Expr.Typ.IsCompositeType() {
			if m := d.Expr.Typ.Member(d.Name); m != nil {
				n.Typ = m.Type
			}
		}
	case ast.PtrMember:
		d := n.Data.(ast.PtrMemberNode)
		tc.checkExpr(d.Expr)
		if n.Typ == nil && d.Expr.Typ != nil && d.Expr.Typ.IsPointer() && d.Expr.Typ.BaseType().IsCompositeType() {
			if m := d.Expr.Typ.BaseType().Member(d.Name); m != nil {
				n.Typ = m.Type
			}
		}
	case ast.Deref:
		d := n.Data.(ast.DerefNode)
		tc.checkExpr(d.Expr)
		if n.Typ == nil && d.Expr.Typ != nil && d.Expr.Typ.IsDereferable() {
			n.Typ = d.Expr.Typ.BaseType()
		}
	case ast.Addr:
		d := n.Data.(ast.AddrNode)
		tc.checkExpr(d.Expr)
		if n.Typ == nil && d.Expr.Typ != nil {
			n.Typ = tc.table.PointerTo(d.Expr.Typ)
		}
	case ast.Cast:
		d := n.Data.(ast.CastNode)
		tc.checkExpr(d.Expr)
		if d.Expr.Typ != nil && !d.Expr.Typ.IsCastableTo(n.Typ) {
			tc.invalidCastError(n, d.Expr.Typ, n.Typ)
		}
	default:
		panic(fmt.Sprintf("checkExpr called for non-expression node: %s", n.Kind))
	}
}

//
// Assignment Expressions
//

func (tc *TypeChecker) checkAssign(n *ast.Node) {
	d := n.Data.(ast.AssignNode)
	tc.checkExpr(d.LHS)
	tc.checkExpr(d.RHS)
	n.Typ = d.LHS.Typ
	if !tc.checkLHS(d.LHS) {
		return
	}
	if !tc.checkRHS(d.RHS) {
		return
	}
	d.RHS = tc.implicitCast(d.LHS.Typ, d.RHS)
	n.Data = d
}

func (tc *TypeChecker) checkOpAssign(n *ast.Node) {
	d := n.Data.(ast.OpAssignNode)
	tc.checkExpr(d.LHS)
	tc.checkExpr(d.RHS)
	n.Typ = d.LHS.Typ
	if !tc.checkLHS(d.LHS) {
		return
	}
	if !tc.checkRHS(d.RHS) {
		return
	}
	if (d.Op == ast.OpAdd || d.Op == ast.OpSub) && d.LHS.Typ.IsPointer() {
		// Pointer-arithmetic regime: scale the integer side.
		if !tc.mustBeInteger(d.RHS, d.Op.String()) {
			return
		}
		d.RHS = tc.multiplyPtrBaseSize(d.RHS, d.LHS)
		n.Data = d
		return
	}
	if !tc.mustBeInteger(d.LHS, d.Op.String()) {
		return
	}
	if !tc.mustBeInteger(d.RHS, d.Op.String()) {
		return
	}
	l := tc.integralPromotion(d.LHS.Typ)
	r := tc.integralPromotion(d.RHS.Typ)
	opType := tc.usualArithmeticConversion(l, r)
	if !opType.IsCompatible(l) && !tc.isSafeIntegerCast(d.RHS, opType) {
		tc.warn(n.Loc, "incompatible implicit cast from %s to %s", opType, l)
	}
	if !r.IsSameType(opType) {
		// The LHS keeps its concrete type; only the RHS is cast to the
		// computation type.
		d.RHS = ast.NewCast(opType, d.RHS)
		n.Data = d
	}
}

// checkLHS admits assignment targets. A parameter is always assignable
// regardless of its stored type: array parameters have decayed to
// pointers.
func (tc *TypeChecker) checkLHS(lhs *ast.Node) bool {
	if lhs.IsParameter() {
		return true
	}
	if lhs.Typ == nil {
		return false
	}
	if tc.isInvalidLHSType(lhs.Typ) {
		tc.error(lhs.Loc, "invalid LHS expression type: %s", lhs.Typ)
		return false
	}
	return true
}

func (tc *TypeChecker) checkRHS(rhs *ast.Node) bool {
	if rhs.Typ == nil {
		return false
	}
	if tc.isInvalidRHSType(rhs.Typ) {
		tc.error(rhs.Loc, "invalid RHS expression type: %s", rhs.Typ)
		return false
	}
	return true
}

//
// Expressions
//

func (tc *TypeChecker) checkCondExpr(n *ast.Node) {
	d := n.Data.(ast.CondNode)
	tc.checkExpr(d.CondExpr)
	tc.checkExpr(d.Then)
	tc.checkExpr(d.Else)
	tc.checkCond(d.CondExpr)
	t, e := d.Then.Typ, d.Else.Typ
	if t == nil || e == nil {
		n.Typ = t
		return
	}
	switch {
	case t.IsSameType(e):
		// no cast
	case t.IsCompatible(e): // insert cast on then-branch
		d.Then = ast.NewCast(e, d.Then)
		n.Data = d
		t = e
	case e.IsCompatible(t): // insert cast on else-branch
		d.Else = ast.NewCast(t, d.Else)
		n.Data = d
	default:
		// Reported at the then-branch, not the conditional itself;
		// diagnostic positions are stable across releases.
		tc.invalidCastError(d.Then, e, t)
	}
	n.Typ = t
}

func (tc *TypeChecker) checkBinary(n *ast.Node) {
	d := n.Data.(ast.BinaryNode)
	tc.checkExpr(d.Left)
	tc.checkExpr(d.Right)
	var t *types.Type
	switch d.Op {
	case ast.OpAdd, ast.OpSub:
		t = tc.expectsSameIntegerOrPointerDiff(n)
	case ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpBitAnd, ast.OpBitOr,
		ast.OpBitXor, ast.OpLShift, ast.OpRShift:
		t = tc.expectsSameInteger(n)
	case ast.OpEq, ast.OpNeq, ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		t = tc.expectsComparableScalars(n)
	default:
		panic(fmt.Sprintf("unknown binary operator: %s", d.Op))
	}
	if t != nil {
		n.Typ = t
	}
}

// For + and -, only the following operand shapes are valid:
//
//   - integer + integer
//   - pointer + integer
//   - integer + pointer
//   - integer - integer
//   - pointer - integer
func (tc *TypeChecker) expectsSameIntegerOrPointerDiff(n *ast.Node) *types.Type {
	d := n.Data.(ast.BinaryNode)
	op := d.Op.String()
	left, right := d.Left, d.Right
	if left.Typ != nil && left.Typ.IsDereferable() {
		if left.Typ.BaseType().IsVoid() {
			tc.wrongTypeError(left, op)
			return nil
		}
		if !tc.mustBeInteger(right, op) {
			return nil
		}
		tc.setRight(n, tc.multiplyPtrBaseSize(right, left))
		return left.Typ
	}
	if right.Typ != nil && right.Typ.IsDereferable() {
		if d.Op == ast.OpSub {
			tc.error(n.Loc, "invalid operation integer-pointer")
			return nil
		}
		if right.Typ.BaseType().IsVoid() {
			tc.wrongTypeError(right, op)
			return nil
		}
		if !tc.mustBeInteger(left, op) {
			return nil
		}
		tc.setLeft(n, tc.multiplyPtrBaseSize(left, right))
		return right.Typ
	}
	return tc.expectsSameInteger(n)
}

// +, -, *, /, %, &, |, ^, <<, >>
func (tc *TypeChecker) expectsSameInteger(n *ast.Node) *types.Type {
	d := n.Data.(ast.BinaryNode)
	if !tc.mustBeInteger(d.Left, d.Op.String()) {
		return nil
	}
	if !tc.mustBeInteger(d.Right, d.Op.String()) {
		return nil
	}
	return tc.arithmeticImplicitCast(n)
}

// ==, !=, >, >=, <, <=, &&, ||
func (tc *TypeChecker) expectsComparableScalars(n *ast.Node) *types.Type {
	left, right := tc.operands(n)
	op := tc.opSymbol(n)
	if !tc.mustBeScalar(left, op) {
		return nil
	}
	if !tc.mustBeScalar(right, op) {
		return nil
	}
	if left.Typ.IsDereferable() {
		tc.setRight(n, tc.forcePointerType(left, right))
		return left.Typ
	}
	if right.Typ.IsDereferable() {
		tc.setLeft(n, tc.forcePointerType(right, left))
		return right.Typ
	}
	return tc.arithmeticImplicitCast(n)
}

// forcePointerType casts the slave node to the master's pointer type.
func (tc *TypeChecker) forcePointerType(master, slave *ast.Node) *ast.Node {
	if master.Typ.IsCompatible(slave.Typ) {
		// needs no cast
		return slave
	}
	tc.warn(slave.Loc, "incompatible implicit cast from %s to %s", slave.Typ, master.Typ)
	return ast.NewCast(master.Typ, slave)
}

// arithmeticImplicitCast applies the usual arithmetic conversion to a
// binary operation, wrapping either operand in a cast to the common type
// when it does not already have it.
func (tc *TypeChecker) arithmeticImplicitCast(n *ast.Node) *types.Type {
	left, right := tc.operands(n)
	l := tc.integralPromotion(left.Typ)
	r := tc.integralPromotion(right.Typ)
	target := tc.usualArithmeticConversion(l, r)
	if !left.Typ.IsSameType(target) {
		tc.setLeft(n, ast.NewCast(target, left))
	}
	if !right.Typ.IsSameType(target) {
		tc.setRight(n, ast.NewCast(target, right))
	}
	return target
}

// expectsScalarLHS types ++x, --x, x++, x--.
func (tc *TypeChecker) expectsScalarLHS(n *ast.Node) {
	d := n.Data.(ast.IncDecNode)
	op := d.Op.String()
	switch {
	case d.Expr.IsParameter():
		// Parameters are always scalar: arrays have decayed.
	case d.Expr.Typ == nil:
		return
	case d.Expr.Typ.IsArray():
		// Cannot modify a non-parameter array.
		tc.wrongTypeError(d.Expr, op)
		return
	default:
		if !tc.mustBeScalar(d.Expr, op) {
			return
		}
	}
	switch {
	case d.Expr.Typ.IsInteger():
		opType := tc.integralPromotion(d.Expr.Typ)
		if !d.Expr.Typ.IsSameType(opType) {
			d.OpType = opType
		}
		d.Amount = 1
		n.Data = d
	case d.Expr.Typ.IsDereferable():
		if d.Expr.Typ.BaseType().IsVoid() {
			// Cannot increment/decrement a void pointer.
			tc.wrongTypeError(d.Expr, op)
			return
		}
		d.Amount = d.Expr.Typ.BaseType().Size()
		n.Data = d
	case d.Expr.IsParameter():
		// A parameter with an inadmissible stored type; reported at its
		// declaration already.
	default:
		panic("must not happen")
	}
}

// checkFuncall checks that the argument count matches the prototype and
// that each mandatory argument is an admissible RHS, converted to its
// parameter's type. Variadic extras pass through unchanged.
func (tc *TypeChecker) checkFuncall(n *ast.Node) {
	d := n.Data.(ast.FuncallNode)
	tc.checkExpr(d.Callee)
	for _, arg := range d.Args {
		tc.checkExpr(arg)
	}
	ftype := n.FunctionType()
	n.Typ = ftype.Return
	if !ftype.AcceptsArgc(n.NumArgs()) {
		tc.error(n.Loc, "wrong number of argments: %d", n.NumArgs())
		return
	}
	// Check types of mandatory parameters only.
	newArgs := make([]*ast.Node, 0, len(d.Args))
	for i, param := range ftype.Params {
		arg := d.Args[i]
		if tc.checkRHS(arg) {
			arg = tc.implicitCast(param, arg)
		}
		newArgs = append(newArgs, arg)
	}
	newArgs = append(newArgs, d.Args[len(ftype.Params):]...)
	n.ReplaceArgs(newArgs)
}

//
// Utilities
//

// implicitCast converts expr to targetType, materializing the conversion
// as a cast node. Applied to return expressions, assignment RHSes,
// initializers, and call arguments.
func (tc *TypeChecker) implicitCast(targetType *types.Type, expr *ast.Node) *ast.Node {
	if expr == nil || expr.Typ == nil {
		return expr
	}
	if expr.Typ.IsSameType(targetType) {
		return expr
	}
	if expr.Typ.IsCastableTo(targetType) {
		if !expr.Typ.IsCompatible(targetType) && !tc.isSafeIntegerCast(expr, targetType) {
			tc.warn(expr.Loc, "incompatible implicit cast from %s to %s", expr.Typ, targetType)
		}
		return ast.NewCast(targetType, expr)
	}
	tc.invalidCastError(expr, expr.Typ, targetType)
	return expr
}

// isSafeIntegerCast allows the implicit narrowing of an integer literal
// whose value fits the target's domain, so that
//
//	char c = 0;
//
// stays warning-free: "0" has type int, but (char)0 loses nothing.
func (tc *TypeChecker) isSafeIntegerCast(n *ast.Node, t *types.Type) bool {
	if !t.IsInteger() {
		return false
	}
	if n.Kind != ast.IntLit {
		return false
	}
	return t.IsInDomain(n.Data.(ast.IntLitNode).Value)
}

// multiplyPtrBaseSize rewrites the integer operand of pointer arithmetic
// into (promoted operand) * sizeof(base).
func (tc *TypeChecker) multiplyPtrBaseSize(expr, ptr *ast.Node) *ast.Node {
	n := ast.NewBinary(expr.Loc, ast.OpMul, tc.integralPromotedExpr(expr), tc.ptrBaseSize(ptr))
	n.Typ = tc.table.PtrDiffType()
	return n
}

func (tc *TypeChecker) integralPromotedExpr(expr *ast.Node) *ast.Node {
	t := tc.integralPromotion(expr.Typ)
	if t.IsSameType(expr.Typ) {
		return expr
	}
	return ast.NewCast(t, expr)
}

func (tc *TypeChecker) ptrBaseSize(ptr *ast.Node) *ast.Node {
	return tc.integerLiteral(ptr.Loc, tc.table.PtrDiffTypeRef(), ptr.Typ.BaseType().Size())
}

// integerLiteral builds an integer literal whose type is bound through
// the type table, so it is fully typed at creation.
func (tc *TypeChecker) integerLiteral(loc source.Location, ref types.Ref, value int64) *ast.Node {
	n := ast.NewIntLit(loc, ref, value)
	n.Typ = tc.table.Get(ref)
	return n
}

// integralPromotion widens an integer narrower than int to signed int.
// Integers only.
func (tc *TypeChecker) integralPromotion(t *types.Type) *types.Type {
	if !t.IsInteger() {
		panic(fmt.Sprintf("integralPromotion for %s", t))
	}
	intType := tc.table.SignedInt()
	if t.Size() < intType.Size() {
		return intType
	}
	return t
}

// usualArithmeticConversion computes the common type of two integrally
// promoted operands (sizes >= sizeof(int)), ILP32 semantics.
func (tc *TypeChecker) usualArithmeticConversion(l, r *types.Type) *types.Type {
	sInt := tc.table.SignedInt()
	uInt := tc.table.UnsignedInt()
	sLong := tc.table.SignedLong()
	uLong := tc.table.UnsignedLong()
	switch {
	case (l.IsSameType(uInt) && r.IsSameType(sLong)) ||
		(r.IsSameType(uInt) && l.IsSameType(sLong)):
		return uLong
	case l.IsSameType(uLong) || r.IsSameType(uLong):
		return uLong
	case l.IsSameType(sLong) || r.IsSameType(sLong):
		return sLong
	case l.IsSameType(uInt) || r.IsSameType(uInt):
		return uInt
	default:
		return sInt
	}
}

func (tc *TypeChecker) isInvalidStatementType(t *types.Type) bool {
	return t.IsStruct() || t.IsUnion()
}

func (tc *TypeChecker) isInvalidReturnType(t *types.Type) bool {
	return t.IsStruct() || t.IsUnion() || t.IsArray()
}

func (tc *TypeChecker) isInvalidParameterType(t *types.Type) bool {
	return t.IsStruct() || t.IsUnion() || t.IsVoid() || t.IsIncompleteArray()
}

func (tc *TypeChecker) isInvalidVariableType(t *types.Type) bool {
	return t.IsVoid() || (t.IsArray() && !t.IsAllocatedArray())
}

func (tc *TypeChecker) isInvalidLHSType(t *types.Type) bool {
	// Arrays are admissible only as parameters, where they have decayed.
	return t.IsStruct() || t.IsUnion() || t.IsVoid() || t.IsArray()
}

func (tc *TypeChecker) isInvalidRHSType(t *types.Type) bool {
	return t.IsStruct() || t.IsUnion() || t.IsVoid()
}

// mustBeInteger reports a wrong-operand error unless expr is an integer.
// An untyped expr has already been diagnosed; stay quiet.
func (tc *TypeChecker) mustBeInteger(expr *ast.Node, op string) bool {
	if expr == nil || expr.Typ == nil {
		return false
	}
	if !expr.Typ.IsInteger() {
		tc.wrongTypeError(expr, op)
		return false
	}
	return true
}

func (tc *TypeChecker) mustBeScalar(expr *ast.Node, op string) bool {
	if expr == nil || expr.Typ == nil {
		return false
	}
	if !expr.Typ.IsScalar() {
		tc.wrongTypeError(expr, op)
		return false
	}
	return true
}

// operands returns the two children of a Binary or Logical node.
func (tc *TypeChecker) operands(n *ast.Node) (*ast.Node, *ast.Node) {
	switch d := n.Data.(type) {
	case ast.BinaryNode:
		return d.Left, d.Right
	case ast.LogicalNode:
		return d.Left, d.Right
	}
	panic(fmt.Sprintf("operands called for %s node", n.Kind))
}

func (tc *TypeChecker) opSymbol(n *ast.Node) string {
	switch n.Kind {
	case ast.LogicalAnd:
		return "&&"
	case ast.LogicalOr:
		return "||"
	}
	return n.Data.(ast.BinaryNode).Op.String()
}

func (tc *TypeChecker) setLeft(n *ast.Node, e *ast.Node) {
	switch d := n.Data.(type) {
	case ast.BinaryNode:
		d.Left = e
		n.Data = d
	case ast.LogicalNode:
		d.Left = e
		n.Data = d
	}
}

func (tc *TypeChecker) setRight(n *ast.Node, e *ast.Node) {
	switch d := n.Data.(type) {
	case ast.BinaryNode:
		d.Right = e
		n.Data = d
	case ast.LogicalNode:
		d.Right = e
		n.Data = d
	}
}

func (tc *TypeChecker) invalidCastError(n *ast.Node, from, to *types.Type) {
	tc.error(n.Loc, "invalid cast from %s to %s", from, to)
}

func (tc *TypeChecker) wrongTypeError(expr *ast.Node, op string) {
	tc.error(expr.Loc, "wrong operand type for %s: %s", op, expr.Typ)
}

func (tc *TypeChecker) warn(loc source.Location, format string, args ...interface{}) {
	tc.errs.Warn(loc, format, args...)
}

func (tc *TypeChecker) error(loc source.Location, format string, args ...interface{}) {
	tc.errs.Error(loc, format, args...)
}
