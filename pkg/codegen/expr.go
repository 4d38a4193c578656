package codegen

import (
	"strings"

	"github.com/Kashinulala/j2py/pkg/ast"
	"github.com/Kashinulala/j2py/pkg/token"
	"github.com/Kashinulala/j2py/pkg/types"
)

// exprText renders an expression as target-language text. Increment and
// decrement render in their statement form; the analyzer confines them to
// statement and loop-update position.
func (g *Generator) exprText(node *ast.Node) string {
	if node == nil {
		return ""
	}
	switch node.Kind {
	case ast.IntLit:
		return strings.TrimRight(node.Data.(ast.IntLitNode).Text, "lL")
	case ast.FloatLit:
		return strings.TrimRight(node.Data.(ast.FloatLitNode).Text, "fFdD")
	case ast.CharLit:
		return "'" + node.Data.(ast.CharLitNode).Text + "'"
	case ast.StringLit:
		return `"` + node.Data.(ast.StringLitNode).Value + `"`
	case ast.BoolLit:
		if node.Data.(ast.BoolLitNode).Value {
			return "True"
		}
		return "False"
	case ast.NullLit:
		return "None"
	case ast.Ident:
		return node.Data.(ast.IdentNode).Name
	case ast.Assign:
		d := node.Data.(ast.AssignNode)
		return g.exprText(d.Target) + " " + token.OpText(d.Op) + " " + g.exprText(d.Value)
	case ast.Binary:
		d := node.Data.(ast.BinaryNode)
		return g.exprText(d.Left) + " " + binaryOpText(d.Op) + " " + g.exprText(d.Right)
	case ast.Unary:
		d := node.Data.(ast.UnaryNode)
		switch d.Op {
		case token.Not:
			return "not " + g.exprText(d.Operand)
		case token.Inc:
			return g.exprText(d.Operand) + " += 1"
		case token.Dec:
			return g.exprText(d.Operand) + " -= 1"
		}
		return token.OpText(d.Op) + g.exprText(d.Operand)
	case ast.Postfix:
		d := node.Data.(ast.PostfixNode)
		if d.Op == token.Inc {
			return g.exprText(d.Operand) + " += 1"
		}
		return g.exprText(d.Operand) + " -= 1"
	case ast.Call:
		return g.callText(node)
	case ast.FieldAccess:
		d := node.Data.(ast.FieldAccessNode)
		if d.Name == "length" {
			return "len(" + g.exprText(d.Recv) + ")"
		}
		return g.exprText(d.Recv) + "." + d.Name
	case ast.Index:
		d := node.Data.(ast.IndexNode)
		return g.exprText(d.Array) + "[" + g.exprText(d.Idx) + "]"
	case ast.NewObject:
		return g.newObjectText(node)
	case ast.NewArray:
		return g.newArrayText(node)
	case ast.Paren:
		return "(" + g.exprText(node.Data.(ast.ParenNode).Inner) + ")"
	}
	return ""
}

func binaryOpText(op token.Type) string {
	switch op {
	case token.AndAnd:
		return "and"
	case token.OrOr:
		return "or"
	}
	return token.OpText(op)
}

// callText maps the common container and string method idioms onto the
// target's native forms; everything else emits as a plain call.
func (g *Generator) callText(node *ast.Node) string {
	d := node.Data.(ast.CallNode)
	args := make([]string, len(d.Args))
	for i, arg := range d.Args {
		args[i] = g.exprText(arg)
	}

	if d.Callee.Kind == ast.FieldAccess {
		fa := d.Callee.Data.(ast.FieldAccessNode)
		recv := g.exprText(fa.Recv)
		switch fa.Name {
		case "size", "length":
			if len(args) == 0 {
				return "len(" + recv + ")"
			}
		case "add":
			if len(args) == 1 {
				return recv + ".append(" + args[0] + ")"
			}
		case "get", "charAt":
			if len(args) == 1 {
				return recv + "[" + args[0] + "]"
			}
		case "put":
			if len(args) == 2 {
				return recv + "[" + args[0] + "] = " + args[1]
			}
		case "equals":
			if len(args) == 1 {
				return recv + " == " + args[0]
			}
		}
	}
	return g.exprText(d.Callee) + "(" + strings.Join(args, ", ") + ")"
}

func (g *Generator) newObjectText(node *ast.Node) string {
	d := node.Data.(ast.NewObjectNode)
	switch strings.ToLower(types.Erase(d.TypeName)) {
	case "arraylist", "linkedlist", "list":
		return "[]"
	case "hashmap", "map":
		return "{}"
	case "hashset", "set":
		return "set()"
	}
	args := make([]string, len(d.Args))
	for i, arg := range d.Args {
		args[i] = g.exprText(arg)
	}
	return types.Erase(d.TypeName) + "(" + strings.Join(args, ", ") + ")"
}

// newArrayText builds nested sequence literals, innermost dimension first.
func (g *Generator) newArrayText(node *ast.Node) string {
	d := node.Data.(ast.NewArrayNode)
	out := defaultValue(d.ElemType)
	for i := len(d.Dims) - 1; i >= 0; i-- {
		dim := g.exprText(d.Dims[i])
		if i == len(d.Dims)-1 {
			out = "[" + out + "] * (" + dim + ")"
		} else {
			out = "[" + out + " for _ in range(" + dim + ")]"
		}
	}
	return out
}
