// Package ast defines the types used to represent the Abstract Syntax Tree
// of the accepted Java subset. The tree is built once by the parser and is
// never mutated by the analysis or generation passes.
package ast

import (
	"github.com/Kashinulala/j2py/pkg/token"
)

// NodeKind defines the kind of a node in the AST
type NodeKind int

// Node kinds enum
const (
	// Expressions
	IntLit NodeKind = iota
	FloatLit
	CharLit
	StringLit
	BoolLit
	NullLit
	Ident
	Assign
	Binary
	Unary
	Postfix
	Call
	FieldAccess
	Index
	NewObject
	NewArray
	Paren

	// Statements and declarations
	CompilationUnit
	ImportDecl
	ClassDecl
	FieldDecl
	MethodDecl
	Param
	LocalVarDecl
	Declarator
	Block
	If
	While
	DoWhile
	For
	ForEach
	Switch
	CaseGroup
	CaseLabel
	Return
	Break
	Continue
	ExprStmt
)

// Node represents a node in the Abstract Syntax Tree
type Node struct {
	Kind NodeKind
	Tok  token.Token
	Data interface{}
}

// Modifiers carries the member modifier set attached to a declaration.
type Modifiers struct {
	Public    bool
	Private   bool
	Protected bool
	Static    bool
	Final     bool
}

// --- Node Data Structs ---

type IntLitNode struct{ Value int64; Text string }
type FloatLitNode struct{ Value float64; Text string; IsFloat bool }
type CharLitNode struct{ Value rune; Text string }
type StringLitNode struct{ Value string }
type BoolLitNode struct{ Value bool }
type NullLitNode struct{}
type IdentNode struct{ Name string }
type AssignNode struct{ Op token.Type; Target, Value *Node }
type BinaryNode struct{ Op token.Type; Left, Right *Node }
type UnaryNode struct{ Op token.Type; Operand *Node }
type PostfixNode struct{ Op token.Type; Operand *Node }
type CallNode struct{ Callee *Node; Args []*Node }
type FieldAccessNode struct{ Recv *Node; Name string }
type IndexNode struct{ Array, Idx *Node }
type NewObjectNode struct{ TypeName string; Args []*Node }
type NewArrayNode struct{ ElemType string; Dims []*Node }
type ParenNode struct{ Inner *Node }

type CompilationUnitNode struct {
	Imports []*Node
	Classes []*Node
}
type ImportDeclNode struct{ Path string }
type ClassDeclNode struct {
	Mods    Modifiers
	Name    string
	Members []*Node
}
type FieldDeclNode struct {
	Mods        Modifiers
	TypeName    string
	Declarators []*Node
}
type MethodDeclNode struct {
	Mods       Modifiers
	ReturnType string
	Name       string
	Params     []*Node
	Body       *Node
}
type ParamNode struct {
	TypeName string
	Name     string
}
type LocalVarDeclNode struct {
	Final       bool
	TypeName    string
	Declarators []*Node
}
type DeclaratorNode struct {
	Name string
	Init *Node
}
type BlockNode struct{ Stmts []*Node }
type IfNode struct{ Cond, Then, Else *Node }
type WhileNode struct{ Cond, Body *Node }
type DoWhileNode struct{ Body, Cond *Node }
type ForNode struct {
	Init   *Node // LocalVarDecl or ExprStmt, may be nil
	Cond   *Node // expression, may be nil
	Update *Node // expression, may be nil
	Body   *Node
}
type ForEachNode struct {
	TypeName string
	VarName  string
	Iterable *Node
	Body     *Node
}
type SwitchNode struct {
	Selector *Node
	Groups   []*Node // CaseGroup nodes in source order
}
type CaseGroupNode struct {
	Labels []*Node // CaseLabel nodes
	Stmts  []*Node
}
type CaseLabelNode struct {
	Expr      *Node // nil for default
	IsDefault bool
}
type ReturnNode struct{ Expr *Node }
type BreakNode struct{ Label string }
type ContinueNode struct{ Label string }
type ExprStmtNode struct{ Expr *Node }

// --- Node Constructors ---

func newNode(tok token.Token, kind NodeKind, data interface{}) *Node {
	return &Node{Kind: kind, Tok: tok, Data: data}
}

func NewIntLit(tok token.Token, value int64, text string) *Node {
	return newNode(tok, IntLit, IntLitNode{Value: value, Text: text})
}
func NewFloatLit(tok token.Token, value float64, text string, isFloat bool) *Node {
	return newNode(tok, FloatLit, FloatLitNode{Value: value, Text: text, IsFloat: isFloat})
}
func NewCharLit(tok token.Token, value rune, text string) *Node {
	return newNode(tok, CharLit, CharLitNode{Value: value, Text: text})
}
func NewStringLit(tok token.Token, value string) *Node {
	return newNode(tok, StringLit, StringLitNode{Value: value})
}
func NewBoolLit(tok token.Token, value bool) *Node {
	return newNode(tok, BoolLit, BoolLitNode{Value: value})
}
func NewNullLit(tok token.Token) *Node {
	return newNode(tok, NullLit, NullLitNode{})
}
func NewIdent(tok token.Token, name string) *Node {
	return newNode(tok, Ident, IdentNode{Name: name})
}
func NewAssign(tok token.Token, op token.Type, target, value *Node) *Node {
	return newNode(tok, Assign, AssignNode{Op: op, Target: target, Value: value})
}
func NewBinary(tok token.Token, op token.Type, left, right *Node) *Node {
	return newNode(tok, Binary, BinaryNode{Op: op, Left: left, Right: right})
}
func NewUnary(tok token.Token, op token.Type, operand *Node) *Node {
	return newNode(tok, Unary, UnaryNode{Op: op, Operand: operand})
}
func NewPostfix(tok token.Token, op token.Type, operand *Node) *Node {
	return newNode(tok, Postfix, PostfixNode{Op: op, Operand: operand})
}
func NewCall(tok token.Token, callee *Node, args []*Node) *Node {
	return newNode(tok, Call, CallNode{Callee: callee, Args: args})
}
func NewFieldAccess(tok token.Token, recv *Node, name string) *Node {
	return newNode(tok, FieldAccess, FieldAccessNode{Recv: recv, Name: name})
}
func NewIndex(tok token.Token, array, idx *Node) *Node {
	return newNode(tok, Index, IndexNode{Array: array, Idx: idx})
}
func NewNewObject(tok token.Token, typeName string, args []*Node) *Node {
	return newNode(tok, NewObject, NewObjectNode{TypeName: typeName, Args: args})
}
func NewNewArray(tok token.Token, elemType string, dims []*Node) *Node {
	return newNode(tok, NewArray, NewArrayNode{ElemType: elemType, Dims: dims})
}
func NewParen(tok token.Token, inner *Node) *Node {
	return newNode(tok, Paren, ParenNode{Inner: inner})
}

func NewCompilationUnit(tok token.Token, imports, classes []*Node) *Node {
	return newNode(tok, CompilationUnit, CompilationUnitNode{Imports: imports, Classes: classes})
}
func NewImportDecl(tok token.Token, path string) *Node {
	return newNode(tok, ImportDecl, ImportDeclNode{Path: path})
}
func NewClassDecl(tok token.Token, mods Modifiers, name string, members []*Node) *Node {
	return newNode(tok, ClassDecl, ClassDeclNode{Mods: mods, Name: name, Members: members})
}
func NewFieldDecl(tok token.Token, mods Modifiers, typeName string, declarators []*Node) *Node {
	return newNode(tok, FieldDecl, FieldDeclNode{Mods: mods, TypeName: typeName, Declarators: declarators})
}
func NewMethodDecl(tok token.Token, mods Modifiers, returnType, name string, params []*Node, body *Node) *Node {
	return newNode(tok, MethodDecl, MethodDeclNode{
		Mods: mods, ReturnType: returnType, Name: name, Params: params, Body: body,
	})
}
func NewParam(tok token.Token, typeName, name string) *Node {
	return newNode(tok, Param, ParamNode{TypeName: typeName, Name: name})
}
func NewLocalVarDecl(tok token.Token, final bool, typeName string, declarators []*Node) *Node {
	return newNode(tok, LocalVarDecl, LocalVarDeclNode{Final: final, TypeName: typeName, Declarators: declarators})
}
func NewDeclarator(tok token.Token, name string, init *Node) *Node {
	return newNode(tok, Declarator, DeclaratorNode{Name: name, Init: init})
}
func NewBlock(tok token.Token, stmts []*Node) *Node {
	return newNode(tok, Block, BlockNode{Stmts: stmts})
}
func NewIf(tok token.Token, cond, then, els *Node) *Node {
	return newNode(tok, If, IfNode{Cond: cond, Then: then, Else: els})
}
func NewWhile(tok token.Token, cond, body *Node) *Node {
	return newNode(tok, While, WhileNode{Cond: cond, Body: body})
}
func NewDoWhile(tok token.Token, body, cond *Node) *Node {
	return newNode(tok, DoWhile, DoWhileNode{Body: body, Cond: cond})
}
func NewFor(tok token.Token, init, cond, update, body *Node) *Node {
	return newNode(tok, For, ForNode{Init: init, Cond: cond, Update: update, Body: body})
}
func NewForEach(tok token.Token, typeName, varName string, iterable, body *Node) *Node {
	return newNode(tok, ForEach, ForEachNode{TypeName: typeName, VarName: varName, Iterable: iterable, Body: body})
}
func NewSwitch(tok token.Token, selector *Node, groups []*Node) *Node {
	return newNode(tok, Switch, SwitchNode{Selector: selector, Groups: groups})
}
func NewCaseGroup(tok token.Token, labels, stmts []*Node) *Node {
	return newNode(tok, CaseGroup, CaseGroupNode{Labels: labels, Stmts: stmts})
}
func NewCaseLabel(tok token.Token, expr *Node, isDefault bool) *Node {
	return newNode(tok, CaseLabel, CaseLabelNode{Expr: expr, IsDefault: isDefault})
}
func NewReturn(tok token.Token, expr *Node) *Node {
	return newNode(tok, Return, ReturnNode{Expr: expr})
}
func NewBreak(tok token.Token, label string) *Node {
	return newNode(tok, Break, BreakNode{Label: label})
}
func NewContinue(tok token.Token, label string) *Node {
	return newNode(tok, Continue, ContinueNode{Label: label})
}
func NewExprStmt(tok token.Token, expr *Node) *Node {
	return newNode(tok, ExprStmt, ExprStmtNode{Expr: expr})
}
