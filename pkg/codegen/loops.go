package codegen

import (
	"github.com/Kashinulala/j2py/pkg/ast"
	"github.com/Kashinulala/j2py/pkg/token"
)

// RangeLoop describes a counted for-loop header that maps onto a bounded
// range iteration. Bound is exclusive once BoundAdd is applied.
type RangeLoop struct {
	Var      string
	Start    *ast.Node
	Bound    *ast.Node
	BoundAdd int   // +1 for <=, -1 for >=
	Step     int64 // signed, never zero
}

// MatchRange recognizes the counted pattern over a traditional for-loop
// header: `var = start` init, `var <op> bound` condition with a relational
// op, and a `var++`, `var--`, `var += k` or `var -= k` update, all over the
// same variable. It reports false when any clause deviates; the caller then
// falls back to the pre-test loop form.
func MatchRange(init, cond, update *ast.Node) (RangeLoop, bool) {
	var rl RangeLoop

	varName, start, ok := matchInit(init)
	if !ok {
		return rl, false
	}
	op, bound, ok := matchCond(cond, varName)
	if !ok {
		return rl, false
	}
	step, ok := matchUpdate(update, varName)
	if !ok {
		return rl, false
	}

	// The condition direction and the update direction must agree.
	switch op {
	case token.Lt, token.Lte:
		if step <= 0 {
			return rl, false
		}
	case token.Gt, token.Gte:
		if step >= 0 {
			return rl, false
		}
	}

	rl = RangeLoop{Var: varName, Start: start, Bound: bound, Step: step}
	if op == token.Lte {
		rl.BoundAdd = 1
	}
	if op == token.Gte {
		rl.BoundAdd = -1
	}
	return rl, true
}

func matchInit(init *ast.Node) (string, *ast.Node, bool) {
	if init == nil {
		return "", nil, false
	}
	switch init.Kind {
	case ast.LocalVarDecl:
		d := init.Data.(ast.LocalVarDeclNode)
		if len(d.Declarators) != 1 {
			return "", nil, false
		}
		decl := d.Declarators[0].Data.(ast.DeclaratorNode)
		if decl.Init == nil {
			return "", nil, false
		}
		return decl.Name, decl.Init, true
	case ast.ExprStmt:
		expr := init.Data.(ast.ExprStmtNode).Expr
		if expr == nil || expr.Kind != ast.Assign {
			return "", nil, false
		}
		a := expr.Data.(ast.AssignNode)
		if a.Op != token.Eq || a.Target.Kind != ast.Ident {
			return "", nil, false
		}
		return a.Target.Data.(ast.IdentNode).Name, a.Value, true
	}
	return "", nil, false
}

func matchCond(cond *ast.Node, varName string) (token.Type, *ast.Node, bool) {
	if cond == nil || cond.Kind != ast.Binary {
		return token.EOF, nil, false
	}
	d := cond.Data.(ast.BinaryNode)
	switch d.Op {
	case token.Lt, token.Lte, token.Gt, token.Gte:
	default:
		return token.EOF, nil, false
	}
	if d.Left.Kind != ast.Ident || d.Left.Data.(ast.IdentNode).Name != varName {
		return token.EOF, nil, false
	}
	return d.Op, d.Right, true
}

func matchUpdate(update *ast.Node, varName string) (int64, bool) {
	if update == nil {
		return 0, false
	}
	switch update.Kind {
	case ast.Unary:
		d := update.Data.(ast.UnaryNode)
		return incDecStep(d.Op, d.Operand, varName)
	case ast.Postfix:
		d := update.Data.(ast.PostfixNode)
		return incDecStep(d.Op, d.Operand, varName)
	case ast.Assign:
		d := update.Data.(ast.AssignNode)
		if d.Target.Kind != ast.Ident || d.Target.Data.(ast.IdentNode).Name != varName {
			return 0, false
		}
		if d.Value.Kind != ast.IntLit {
			return 0, false
		}
		k := d.Value.Data.(ast.IntLitNode).Value
		switch d.Op {
		case token.PlusEq:
			return k, k != 0
		case token.MinusEq:
			return -k, k != 0
		}
	}
	return 0, false
}

func incDecStep(op token.Type, operand *ast.Node, varName string) (int64, bool) {
	if operand.Kind != ast.Ident || operand.Data.(ast.IdentNode).Name != varName {
		return 0, false
	}
	switch op {
	case token.Inc:
		return 1, true
	case token.Dec:
		return -1, true
	}
	return 0, false
}
