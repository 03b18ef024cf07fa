package ast

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a deterministic rendering of the unit: every node with its
// kind, location-free structure, and computed type. Tests fingerprint
// this to assert the pass is stable under re-running.
func (a *AST) Dump(w io.Writer) {
	d := dumper{w: w}
	for _, v := range a.Vars {
		d.dumpVariable(v)
	}
	for _, f := range a.Funcs {
		d.printf("(defun %s %s", f.Name, f.Type())
		d.indent++
		for _, p := range f.Params {
			d.printf("(param %s %s)", p.Name, p.Type)
		}
		d.dumpNode(f.Body)
		d.indent--
		d.printf(")")
	}
}

// DumpString renders the unit to a string.
func DumpString(a *AST) string {
	var sb strings.Builder
	a.Dump(&sb)
	return sb.String()
}

type dumper struct {
	w      io.Writer
	indent int
}

func (d *dumper) printf(format string, args ...interface{}) {
	fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", d.indent), fmt.Sprintf(format, args...))
}

func (d *dumper) dumpVariable(v *Variable) {
	if v.Init == nil {
		d.printf("(defvar %s %s)", v.Name, v.Type)
		return
	}
	d.printf("(defvar %s %s", v.Name, v.Type)
	d.indent++
	d.dumpNode(v.Init)
	d.indent--
	d.printf(")")
}

func (d *dumper) dumpNode(n *Node) {
	if n == nil {
		d.printf("(nil)")
		return
	}
	typ := "<untyped>"
	if n.Typ != nil {
		typ = n.Typ.String()
	}
	open := func(label string, children ...*Node) {
		if n.IsExpr() {
			d.printf("(%s :type %s", label, typ)
		} else {
			d.printf("(%s", label)
		}
		d.indent++
		for _, c := range children {
			d.dumpNode(c)
		}
		d.indent--
		d.printf(")")
	}
	switch data := n.Data.(type) {
	case IntLitNode:
		d.printf("(intlit %d :type %s)", data.Value, typ)
	case StrLitNode:
		d.printf("(strlit %q :type %s)", data.Value, typ)
	case VarRefNode:
		d.printf("(ref %s :type %s)", data.Var.Name, typ)
	case FuncRefNode:
		d.printf("(funcref %s :type %s)", data.Fn.Name, typ)
	case BinaryNode:
		open(fmt.Sprintf("binary %q", data.Op.String()), data.Left, data.Right)
	case LogicalNode:
		label := "and"
		if n.Kind == LogicalOr {
			label = "or"
		}
		open(label, data.Left, data.Right)
	case UnaryNode:
		open(fmt.Sprintf("unary %q", data.Op.String()), data.Expr)
	case IncDecNode:
		label := "prefix"
		if n.Kind == Suffix {
			label = "suffix"
		}
		opType := "-"
		if data.OpType != nil {
			opType = data.OpType.String()
		}
		open(fmt.Sprintf("%s %q :optype %s :amount %d", label, data.Op.String(), opType, data.Amount), data.Expr)
	case AssignNode:
		open("assign", data.LHS, data.RHS)
	case OpAssignNode:
		open(fmt.Sprintf("opassign %q", data.Op.String()), data.LHS, data.RHS)
	case CondNode:
		open("cond", data.CondExpr, data.Then, data.Else)
	case FuncallNode:
		open("funcall", append([]*Node{data.Callee}, data.Args...)...)
	case ArefNode:
		open("aref", data.Expr, data.Index)
	case MemberNode:
		open(fmt.Sprintf("member %s", data.Name), data.Expr)
	case PtrMemberNode:
		open(fmt.Sprintf("ptrmember %s", data.Name), data.Expr)
	case DerefNode:
		open("deref", data.Expr)
	case AddrNode:
		open("addr", data.Expr)
	case CastNode:
		open("cast", data.Expr)
	case SizeofTypeNode:
		d.printf("(sizeof %s :type %s)", data.Operand, typ)
	case BlockNode:
		d.printf("(block")
		d.indent++
		for _, v := range data.Vars {
			d.dumpVariable(v)
		}
		for _, s := range data.Stmts {
			d.dumpNode(s)
		}
		d.indent--
		d.printf(")")
	case IfNode:
		open("if", data.CondExpr, data.Then, data.Else)
	case WhileNode:
		open("while", data.CondExpr, data.Body)
	case DoWhileNode:
		open("dowhile", data.Body, data.CondExpr)
	case ForNode:
		open("for", data.Init, data.CondExpr, data.Incr, data.Body)
	case SwitchNode:
		open("switch", append([]*Node{data.CondExpr}, data.Cases...)...)
	case CaseClauseNode:
		if data.IsDefault {
			open("default", data.Body)
		} else {
			open("case", append(append([]*Node{}, data.Values...), data.Body)...)
		}
	case ReturnNode:
		open("return", data.Expr)
	case BreakNode:
		d.printf("(break)")
	case ContinueNode:
		d.printf("(continue)")
	case GotoNode:
		d.printf("(goto %s)", data.LabelName)
	case LabelNode:
		open(fmt.Sprintf("label %s", data.Name), data.Stmt)
	default:
		panic(fmt.Sprintf("unknown node kind: %s", n.Kind))
	}
}
