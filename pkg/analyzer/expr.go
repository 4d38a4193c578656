package analyzer

import (
	"fmt"
	"strings"

	"github.com/Kashinulala/j2py/pkg/ast"
	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/scope"
	"github.com/Kashinulala/j2py/pkg/token"
	"github.com/Kashinulala/j2py/pkg/types"
)

// exprType computes the type of an expression and reports any violations
// found along the way. It returns types.Unknown for anything it cannot
// resolve, so one unresolved name does not cascade.
func (a *Analyzer) exprType(node *ast.Node) string {
	if node == nil {
		return types.Unknown
	}
	switch node.Kind {
	case ast.IntLit:
		return "int"
	case ast.FloatLit:
		if node.Data.(ast.FloatLitNode).IsFloat {
			return "float"
		}
		return "double"
	case ast.CharLit:
		return "char"
	case ast.StringLit:
		return "String"
	case ast.BoolLit:
		return "boolean"
	case ast.NullLit:
		return "null"
	case ast.Ident:
		return a.identType(node)
	case ast.Assign:
		return a.assignType(node)
	case ast.Binary:
		return a.binaryType(node)
	case ast.Unary:
		return a.unaryType(node)
	case ast.Postfix:
		return a.postfixType(node)
	case ast.Call:
		return a.callType(node)
	case ast.FieldAccess:
		return a.fieldAccessType(node)
	case ast.Index:
		return a.indexType(node)
	case ast.NewObject:
		return a.newObjectType(node)
	case ast.NewArray:
		return a.newArrayType(node)
	case ast.Paren:
		return a.exprType(node.Data.(ast.ParenNode).Inner)
	}
	return types.Unknown
}

func (a *Analyzer) identType(node *ast.Node) string {
	name := node.Data.(ast.IdentNode).Name
	sym := a.scopes.Lookup(name)
	if sym == nil {
		a.bag.Errorf(node.Tok, "variable '%s' is not declared", name)
		return types.Unknown
	}
	return sym.Type
}

// resolveQuiet resolves an identifier without reporting a missing symbol.
// Receivers of qualified accesses go through here: System.out.println and
// friends live outside the symbol table.
func (a *Analyzer) resolveQuiet(node *ast.Node) *scope.Symbol {
	if node == nil || node.Kind != ast.Ident {
		return nil
	}
	return a.scopes.Lookup(node.Data.(ast.IdentNode).Name)
}

func (a *Analyzer) assignType(node *ast.Node) string {
	d := node.Data.(ast.AssignNode)
	valueType := a.exprType(d.Value)

	switch d.Target.Kind {
	case ast.Ident:
		name := d.Target.Data.(ast.IdentNode).Name
		sym := a.scopes.Lookup(name)
		if sym == nil {
			a.bag.Errorf(d.Target.Tok, "variable '%s' is not declared", name)
			return types.Unknown
		}
		if sym.Final && sym.Initialized {
			a.bag.Errorf(node.Tok, "final variable '%s' cannot be reassigned", name)
		}
		a.checkAssignValue(node.Tok, d, valueType, sym.Type)
		sym.Initialized = true
		return sym.Type
	case ast.FieldAccess, ast.Index:
		targetType := a.exprType(d.Target)
		a.checkAssignValue(node.Tok, d, valueType, targetType)
		return targetType
	default:
		a.bag.Errorf(d.Target.Tok, "invalid assignment target")
		return types.Unknown
	}
}

func (a *Analyzer) checkAssignValue(tok token.Token, d ast.AssignNode, valueType, targetType string) {
	if d.Op != token.Eq {
		// Compound assignment requires a numeric target, except += which
		// also concatenates strings.
		if targetType != types.Unknown && !types.IsNumeric(targetType) &&
			!(d.Op == token.PlusEq && types.IsString(targetType)) {
			a.bag.Errorf(tok, "operator '%s' cannot be applied to type %s",
				token.OpText(d.Op), displayType(targetType))
			return
		}
	}
	if isIntLiteral(d.Value) && types.IsNumeric(targetType) {
		a.checkLiteralBounds(d.Value, targetType)
		return
	}
	if !types.Compatible(valueType, targetType) {
		a.bag.Errorf(tok, "incompatible types: %s cannot be converted to %s",
			displayType(valueType), displayType(targetType))
		return
	}
	if losesPrecision(valueType, targetType) && a.cfg.IsWarningEnabled(config.WarnPrecision) {
		a.bag.Warnf(tok, "implicit conversion from %s to %s may lose precision",
			valueType, targetType)
	}
}

func (a *Analyzer) binaryType(node *ast.Node) string {
	d := node.Data.(ast.BinaryNode)
	lt := a.exprType(d.Left)
	rt := a.exprType(d.Right)

	switch d.Op {
	case token.AndAnd, token.OrOr:
		if (lt != types.Unknown && !types.IsBoolean(lt)) ||
			(rt != types.Unknown && !types.IsBoolean(rt)) {
			a.bag.Errorf(node.Tok, "operator '%s' requires boolean operands, found %s and %s",
				token.OpText(d.Op), displayType(lt), displayType(rt))
		}
		return "boolean"
	case token.EqEq, token.Neq:
		if !types.Compatible(lt, rt) && !types.Compatible(rt, lt) {
			a.bag.Errorf(node.Tok, "incomparable types: %s and %s",
				displayType(lt), displayType(rt))
		}
		return "boolean"
	case token.Lt, token.Lte, token.Gt, token.Gte:
		if (lt != types.Unknown && !types.IsNumeric(lt)) ||
			(rt != types.Unknown && !types.IsNumeric(rt)) {
			a.bag.Errorf(node.Tok, "operator '%s' requires numeric operands, found %s and %s",
				token.OpText(d.Op), displayType(lt), displayType(rt))
		}
		return "boolean"
	case token.Plus:
		// Concatenation wins as soon as either side is a string.
		if types.IsString(lt) || types.IsString(rt) {
			return "String"
		}
		if lt == types.Unknown || rt == types.Unknown {
			return types.Unknown
		}
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			return types.Promote(lt, rt)
		}
		a.bag.Errorf(node.Tok, "operator '+' cannot be applied to %s and %s",
			displayType(lt), displayType(rt))
		return types.Unknown
	case token.Minus, token.Star, token.Slash, token.Rem:
		if lt == types.Unknown || rt == types.Unknown {
			return types.Unknown
		}
		if types.IsNumeric(lt) && types.IsNumeric(rt) {
			return types.Promote(lt, rt)
		}
		a.bag.Errorf(node.Tok, "operator '%s' requires numeric operands, found %s and %s",
			token.OpText(d.Op), displayType(lt), displayType(rt))
		return types.Unknown
	}
	return types.Unknown
}

func (a *Analyzer) unaryType(node *ast.Node) string {
	d := node.Data.(ast.UnaryNode)
	switch d.Op {
	case token.Not:
		t := a.exprType(d.Operand)
		if t != types.Unknown && !types.IsBoolean(t) {
			a.bag.Errorf(node.Tok, "operator '!' requires a boolean operand, found %s", displayType(t))
		}
		return "boolean"
	case token.Plus, token.Minus:
		t := a.exprType(d.Operand)
		if t != types.Unknown && !types.IsNumeric(t) {
			a.bag.Errorf(node.Tok, "operator '%s' requires a numeric operand, found %s",
				token.OpText(d.Op), displayType(t))
		}
		return t
	case token.Inc, token.Dec:
		// Value position: the generator renders these as statements, so they
		// are rejected anywhere a value is expected.
		a.bag.Errorf(node.Tok, "operator '%s' cannot be used inside an expression", token.OpText(d.Op))
		return a.checkIncDec(node.Tok, d.Op, d.Operand)
	}
	return types.Unknown
}

func (a *Analyzer) postfixType(node *ast.Node) string {
	d := node.Data.(ast.PostfixNode)
	a.bag.Errorf(node.Tok, "operator '%s' cannot be used inside an expression", token.OpText(d.Op))
	return a.checkIncDec(node.Tok, d.Op, d.Operand)
}

// checkIncDec validates ++ and -- in either position: the operand must be a
// declared, non-final, numeric variable.
func (a *Analyzer) checkIncDec(tok token.Token, op token.Type, operand *ast.Node) string {
	if operand.Kind != ast.Ident {
		a.bag.Errorf(tok, "operator '%s' requires a variable operand", token.OpText(op))
		a.exprType(operand)
		return types.Unknown
	}
	name := operand.Data.(ast.IdentNode).Name
	sym := a.scopes.Lookup(name)
	if sym == nil {
		a.bag.Errorf(operand.Tok, "variable '%s' is not declared", name)
		return types.Unknown
	}
	if sym.Final {
		a.bag.Errorf(tok, "operator '%s' cannot be applied to final variable '%s'",
			token.OpText(op), name)
	}
	if sym.Type != types.Unknown && !types.IsNumeric(sym.Type) {
		a.bag.Errorf(tok, "operator '%s' requires a numeric operand, found %s",
			token.OpText(op), displayType(sym.Type))
	}
	return sym.Type
}

func (a *Analyzer) callType(node *ast.Node) string {
	d := node.Data.(ast.CallNode)
	// The callee's receiver chain is resolved leniently; library namespaces
	// such as System.out are not in the symbol table.
	a.resolveCalleeQuiet(d.Callee)
	for _, arg := range d.Args {
		a.exprType(arg)
	}
	return types.Unknown
}

// resolveCalleeQuiet walks a callee expression without reporting unresolved
// bare identifiers, but still type-checks any nested argument expressions.
func (a *Analyzer) resolveCalleeQuiet(callee *ast.Node) {
	if callee == nil {
		return
	}
	switch callee.Kind {
	case ast.Ident:
		a.resolveQuiet(callee)
	case ast.FieldAccess:
		a.resolveCalleeQuiet(callee.Data.(ast.FieldAccessNode).Recv)
	default:
		a.exprType(callee)
	}
}

func (a *Analyzer) fieldAccessType(node *ast.Node) string {
	d := node.Data.(ast.FieldAccessNode)
	var recvType string
	if d.Recv.Kind == ast.Ident {
		if sym := a.resolveQuiet(d.Recv); sym != nil {
			recvType = sym.Type
		}
	} else {
		recvType = a.exprType(d.Recv)
	}
	if types.IsArray(recvType) && d.Name == "length" {
		return "int"
	}
	return types.Unknown
}

func (a *Analyzer) indexType(node *ast.Node) string {
	d := node.Data.(ast.IndexNode)
	arrType := a.exprType(d.Array)
	a.checkIntegralIndex(d.Idx, "array index")
	if types.IsArray(arrType) {
		return types.ElementType(arrType)
	}
	return types.Unknown
}

func (a *Analyzer) checkIntegralIndex(expr *ast.Node, what string) {
	t := a.exprType(expr)
	if t == types.Unknown {
		return
	}
	switch strings.ToLower(t) {
	case "byte", "short", "char", "int":
		return
	}
	a.bag.Errorf(expr.Tok, "%s must be an integer, found %s", what, displayType(t))
}

func (a *Analyzer) newObjectType(node *ast.Node) string {
	d := node.Data.(ast.NewObjectNode)
	base := types.Erase(d.TypeName)
	if !a.scopes.IsKnownType(base) {
		a.bag.Errorf(node.Tok, "unknown type '%s'", base)
	}
	for _, arg := range d.Args {
		a.exprType(arg)
	}
	return d.TypeName
}

func (a *Analyzer) newArrayType(node *ast.Node) string {
	d := node.Data.(ast.NewArrayNode)
	base := types.Erase(d.ElemType)
	if !a.scopes.IsKnownType(base) {
		a.bag.Errorf(node.Tok, "unknown type '%s'", base)
	}
	for _, dim := range d.Dims {
		a.checkIntegralIndex(dim, "array dimension")
	}
	return d.ElemType + strings.Repeat("[]", len(d.Dims))
}

// isConstExpr reports whether an expression qualifies as a constant
// expression for case-label purposes: literals, final initialized
// variables, and operator combinations thereof.
func (a *Analyzer) isConstExpr(node *ast.Node) bool {
	if node == nil {
		return false
	}
	switch node.Kind {
	case ast.IntLit, ast.FloatLit, ast.CharLit, ast.StringLit, ast.BoolLit:
		return true
	case ast.Ident:
		sym := a.resolveQuiet(node)
		return sym != nil && sym.Final && sym.Initialized
	case ast.Unary:
		d := node.Data.(ast.UnaryNode)
		switch d.Op {
		case token.Plus, token.Minus, token.Not:
			return a.isConstExpr(d.Operand)
		}
		return false
	case ast.Binary:
		d := node.Data.(ast.BinaryNode)
		return a.isConstExpr(d.Left) && a.isConstExpr(d.Right)
	case ast.Paren:
		return a.isConstExpr(node.Data.(ast.ParenNode).Inner)
	}
	return false
}

// constKey folds a constant expression into a comparable key for duplicate
// detection. Integer and char values share one keyspace so 'a' and 97
// collide, as they should.
func (a *Analyzer) constKey(node *ast.Node) (string, bool) {
	v, ok := a.constInt(node)
	if ok {
		return fmt.Sprintf("i:%d", v), true
	}
	if node != nil && node.Kind == ast.StringLit {
		return "s:" + node.Data.(ast.StringLitNode).Value, true
	}
	return "", false
}

func (a *Analyzer) constInt(node *ast.Node) (int64, bool) {
	if node == nil {
		return 0, false
	}
	switch node.Kind {
	case ast.IntLit:
		return node.Data.(ast.IntLitNode).Value, true
	case ast.CharLit:
		return int64(node.Data.(ast.CharLitNode).Value), true
	case ast.Ident:
		sym := a.resolveQuiet(node)
		if sym == nil {
			return 0, false
		}
		key, ok := a.consts[sym]
		if !ok || !strings.HasPrefix(key, "i:") {
			return 0, false
		}
		var v int64
		if _, err := fmt.Sscanf(key, "i:%d", &v); err != nil {
			return 0, false
		}
		return v, true
	case ast.Unary:
		d := node.Data.(ast.UnaryNode)
		v, ok := a.constInt(d.Operand)
		if !ok {
			return 0, false
		}
		switch d.Op {
		case token.Minus:
			return -v, true
		case token.Plus:
			return v, true
		}
		return 0, false
	case ast.Binary:
		d := node.Data.(ast.BinaryNode)
		lv, lok := a.constInt(d.Left)
		rv, rok := a.constInt(d.Right)
		if !lok || !rok {
			return 0, false
		}
		switch d.Op {
		case token.Plus:
			return lv + rv, true
		case token.Minus:
			return lv - rv, true
		case token.Star:
			return lv * rv, true
		case token.Slash:
			if rv == 0 {
				return 0, false
			}
			return lv / rv, true
		case token.Rem:
			if rv == 0 {
				return 0, false
			}
			return lv % rv, true
		}
		return 0, false
	case ast.Paren:
		return a.constInt(node.Data.(ast.ParenNode).Inner)
	}
	return 0, false
}
