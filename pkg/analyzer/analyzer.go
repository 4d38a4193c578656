// Package analyzer implements the semantic-analysis pass: it builds scoped
// symbol information for the tree, type-checks every statement and
// expression, and accumulates diagnostics. One Analyzer instance serves
// exactly one translation call.
package analyzer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/Kashinulala/j2py/pkg/ast"
	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/diag"
	"github.com/Kashinulala/j2py/pkg/scope"
	"github.com/Kashinulala/j2py/pkg/token"
	"github.com/Kashinulala/j2py/pkg/types"
)

type ctxKind int

const (
	ctxLoop ctxKind = iota
	ctxSwitch
)

type Analyzer struct {
	scopes        *scope.Table
	bag           *diag.Bag
	cfg           *config.Config
	contexts      []ctxKind
	currentMethod *ast.MethodDeclNode
	classCount    int
	consts        map[*scope.Symbol]string
	snapshot      map[string]string
}

func NewAnalyzer(cfg *config.Config, bag *diag.Bag) *Analyzer {
	return &Analyzer{
		scopes:   scope.NewTable(),
		bag:      bag,
		cfg:      cfg,
		consts:   make(map[*scope.Symbol]string),
		snapshot: make(map[string]string),
	}
}

// Analyze walks the whole compilation unit. Diagnostics end up in the bag
// passed to NewAnalyzer; the walk itself never aborts.
func (a *Analyzer) Analyze(root *ast.Node) {
	if root == nil || root.Kind != ast.CompilationUnit {
		return
	}
	d := root.Data.(ast.CompilationUnitNode)
	for _, cls := range d.Classes {
		a.classCount++
		if a.classCount > 1 {
			a.bag.Errorf(cls.Tok, "only one top-level class is permitted per compilation unit")
		}
		a.analyzeClass(cls)
	}
}

// TypeSnapshot returns the declared type of every symbol seen during
// analysis, keyed by name. The generator consults it for default values.
func (a *Analyzer) TypeSnapshot() map[string]string {
	return a.snapshot
}

func (a *Analyzer) pushContext(k ctxKind) { a.contexts = append(a.contexts, k) }
func (a *Analyzer) popContext()           { a.contexts = a.contexts[:len(a.contexts)-1] }

// declare wraps the scope table and converts a duplicate-declaration
// condition into a diagnostic, keeping the walk going.
func (a *Analyzer) declare(tok token.Token, name, typeName string, final, static bool) *scope.Symbol {
	sym, err := a.scopes.Declare(name, typeName, final, static)
	if err != nil {
		var dup *scope.DuplicateError
		if errors.As(err, &dup) {
			a.bag.Errorf(tok, "'%s' is already declared in this scope", name)
		} else {
			a.bag.Errorf(tok, "%s", err.Error())
		}
		return nil
	}
	a.snapshot[name] = typeName
	return sym
}

func (a *Analyzer) analyzeClass(node *ast.Node) {
	d := node.Data.(ast.ClassDeclNode)

	if d.Name != "" && !unicode.IsUpper([]rune(d.Name)[0]) {
		if a.cfg.IsFeatureEnabled(config.FeatStrict) {
			if a.cfg.IsWarningEnabled(config.WarnNaming) {
				a.bag.Warnf(node.Tok, "class name '%s' should start with an uppercase letter", d.Name)
			}
		} else {
			a.bag.Errorf(node.Tok, "class name '%s' must start with an uppercase letter", d.Name)
		}
	}

	a.scopes.DeclareType(d.Name)
	a.scopes.Enter(d.Name)
	defer a.scopes.Exit()

	// Fields are declared up front so methods can reference them regardless
	// of their position in the class body.
	hasEntry := false
	for _, member := range d.Members {
		if member.Kind == ast.FieldDecl {
			a.declareField(member)
		}
	}
	for _, member := range d.Members {
		switch member.Kind {
		case ast.FieldDecl:
			a.checkFieldInits(member)
		case ast.MethodDecl:
			md := member.Data.(ast.MethodDeclNode)
			if md.Name == "main" {
				hasEntry = true
			}
			a.analyzeMethod(member)
		}
	}
	if !hasEntry {
		a.bag.Errorf(node.Tok, "class '%s' has no entry method 'main'", d.Name)
	}
}

func (a *Analyzer) declareField(node *ast.Node) {
	d := node.Data.(ast.FieldDeclNode)
	for _, declNode := range d.Declarators {
		decl := declNode.Data.(ast.DeclaratorNode)
		a.declare(declNode.Tok, decl.Name, d.TypeName, d.Mods.Final, d.Mods.Static)
	}
}

func (a *Analyzer) checkFieldInits(node *ast.Node) {
	d := node.Data.(ast.FieldDeclNode)
	for _, declNode := range d.Declarators {
		decl := declNode.Data.(ast.DeclaratorNode)
		sym := a.scopes.Lookup(decl.Name)
		if decl.Init == nil {
			continue
		}
		a.checkInitializer(declNode, decl.Init, d.TypeName, sym)
	}
}

// checkInitializer validates an initializer expression against the declared
// type and flips the symbol to initialized.
func (a *Analyzer) checkInitializer(declNode *ast.Node, init *ast.Node, typeName string, sym *scope.Symbol) {
	initType := a.exprType(init)
	if isIntLiteral(init) && types.IsNumeric(typeName) {
		// An integer literal narrows implicitly when it fits the target.
		a.checkLiteralBounds(init, typeName)
	} else if !types.Compatible(initType, typeName) {
		a.bag.Errorf(declNode.Tok, "incompatible types: %s cannot be converted to %s",
			displayType(initType), typeName)
	} else if losesPrecision(initType, typeName) && a.cfg.IsWarningEnabled(config.WarnPrecision) {
		a.bag.Warnf(declNode.Tok, "implicit conversion from %s to %s may lose precision",
			initType, typeName)
	}
	if sym == nil {
		return
	}
	sym.Initialized = true
	if sym.Final {
		if key, ok := a.constKey(init); ok {
			a.consts[sym] = key
		}
	}
}

func isIntLiteral(expr *ast.Node) bool {
	return expr != nil && expr.Kind == ast.IntLit
}

// checkLiteralBounds reports integer literals that are out of range for the
// declared integral type.
func (a *Analyzer) checkLiteralBounds(expr *ast.Node, typeName string) {
	if !isIntLiteral(expr) {
		return
	}
	lit := expr.Data.(ast.IntLitNode)
	if !types.FitsIn(typeName, lit.Value) {
		a.bag.Errorf(expr.Tok, "integer literal %d is out of range for type %s", lit.Value, typeName)
	}
}

func (a *Analyzer) analyzeMethod(node *ast.Node) {
	d := node.Data.(ast.MethodDeclNode)
	if d.Name == "main" {
		a.checkEntryMethod(node, d)
	}

	a.scopes.Enter(d.Name)
	defer a.scopes.Exit()

	for _, paramNode := range d.Params {
		pd := paramNode.Data.(ast.ParamNode)
		if sym := a.declare(paramNode.Tok, pd.Name, pd.TypeName, false, false); sym != nil {
			sym.Initialized = true
		}
	}

	prev := a.currentMethod
	a.currentMethod = &d
	defer func() { a.currentMethod = prev }()

	if d.Body != nil {
		// Method body statements live directly in the method scope.
		for _, stmt := range d.Body.Data.(ast.BlockNode).Stmts {
			a.analyzeStmt(stmt)
		}
	}
}

// checkEntryMethod enforces the canonical entry signature:
// public static void main(String[] args).
func (a *Analyzer) checkEntryMethod(node *ast.Node, d ast.MethodDeclNode) {
	if !d.Mods.Public || !d.Mods.Static {
		a.bag.Errorf(node.Tok, "entry method 'main' must be declared public static")
	}
	if d.ReturnType != "void" {
		a.bag.Errorf(node.Tok, "entry method 'main' must return void, not %s", d.ReturnType)
	}
	if len(d.Params) != 1 {
		a.bag.Errorf(node.Tok, "entry method 'main' must have exactly one parameter of type String[]")
		return
	}
	pd := d.Params[0].Data.(ast.ParamNode)
	if pd.TypeName != "String[]" {
		a.bag.Errorf(d.Params[0].Tok, "entry method parameter must be of type String[], not %s", pd.TypeName)
	}
	if pd.Name != "args" && a.cfg.IsWarningEnabled(config.WarnEntryParamName) {
		a.bag.Warnf(d.Params[0].Tok, "entry method parameter is conventionally named 'args', not '%s'", pd.Name)
	}
}

func (a *Analyzer) analyzeStmt(node *ast.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.Block:
		label := fmt.Sprintf("block_%d_%d", node.Tok.Line, node.Tok.Column)
		a.scopes.Enter(label)
		for _, stmt := range node.Data.(ast.BlockNode).Stmts {
			a.analyzeStmt(stmt)
		}
		a.scopes.Exit()
	case ast.LocalVarDecl:
		a.analyzeLocalVarDecl(node)
	case ast.If:
		d := node.Data.(ast.IfNode)
		a.checkCondition(d.Cond)
		a.analyzeStmt(d.Then)
		a.analyzeStmt(d.Else)
	case ast.While:
		d := node.Data.(ast.WhileNode)
		a.checkCondition(d.Cond)
		a.pushContext(ctxLoop)
		a.analyzeStmt(d.Body)
		a.popContext()
	case ast.DoWhile:
		d := node.Data.(ast.DoWhileNode)
		a.pushContext(ctxLoop)
		a.analyzeStmt(d.Body)
		a.popContext()
		a.checkCondition(d.Cond)
	case ast.For:
		a.analyzeFor(node)
	case ast.ForEach:
		a.analyzeForEach(node)
	case ast.Switch:
		a.analyzeSwitch(node)
	case ast.Return:
		a.analyzeReturn(node)
	case ast.Break:
		d := node.Data.(ast.BreakNode)
		if len(a.contexts) == 0 {
			a.bag.Errorf(node.Tok, "'break' must be used inside a loop or switch")
		}
		a.checkStatementLabel(node.Tok, d.Label)
	case ast.Continue:
		d := node.Data.(ast.ContinueNode)
		if len(a.contexts) == 0 || a.contexts[len(a.contexts)-1] != ctxLoop {
			a.bag.Errorf(node.Tok, "'continue' must be used inside a loop")
		}
		a.checkStatementLabel(node.Tok, d.Label)
	case ast.ExprStmt:
		a.analyzeStmtExpr(node.Data.(ast.ExprStmtNode).Expr)
	}
}

// analyzeStmtExpr checks an expression in statement or loop-update position,
// the only positions where increment and decrement are accepted.
func (a *Analyzer) analyzeStmtExpr(expr *ast.Node) {
	if expr == nil {
		return
	}
	switch expr.Kind {
	case ast.Unary:
		d := expr.Data.(ast.UnaryNode)
		if d.Op == token.Inc || d.Op == token.Dec {
			a.checkIncDec(expr.Tok, d.Op, d.Operand)
			return
		}
	case ast.Postfix:
		d := expr.Data.(ast.PostfixNode)
		a.checkIncDec(expr.Tok, d.Op, d.Operand)
		return
	case ast.Assign, ast.Call, ast.NewObject:
		a.exprType(expr)
		return
	}
	a.exprType(expr)
	if a.cfg.IsWarningEnabled(config.WarnExtra) {
		a.bag.Warnf(expr.Tok, "expression statement has no effect")
	}
}

func (a *Analyzer) checkStatementLabel(tok token.Token, label string) {
	if label == "" {
		return
	}
	if a.scopes.Lookup(label) == nil {
		a.bag.Errorf(tok, "label '%s' is not declared", label)
	}
}

func (a *Analyzer) analyzeLocalVarDecl(node *ast.Node) {
	d := node.Data.(ast.LocalVarDeclNode)
	for _, declNode := range d.Declarators {
		decl := declNode.Data.(ast.DeclaratorNode)
		sym := a.declare(declNode.Tok, decl.Name, d.TypeName, d.Final, false)
		if decl.Init != nil {
			a.checkInitializer(declNode, decl.Init, d.TypeName, sym)
		}
	}
}

func (a *Analyzer) checkCondition(cond *ast.Node) {
	if cond == nil {
		return
	}
	t := a.exprType(cond)
	if t != types.Unknown && !types.IsBoolean(t) {
		a.bag.Errorf(cond.Tok, "condition must be of type boolean, found %s", displayType(t))
	}
}

func (a *Analyzer) analyzeFor(node *ast.Node) {
	d := node.Data.(ast.ForNode)
	label := fmt.Sprintf("for_loop_%d_%d", node.Tok.Line, node.Tok.Column)
	a.scopes.Enter(label)
	defer a.scopes.Exit()

	a.analyzeStmt(d.Init)
	a.checkCondition(d.Cond)
	a.analyzeStmtExpr(d.Update)
	a.pushContext(ctxLoop)
	a.analyzeStmt(d.Body)
	a.popContext()
}

func (a *Analyzer) analyzeForEach(node *ast.Node) {
	d := node.Data.(ast.ForEachNode)
	label := fmt.Sprintf("for_loop_%d_%d", node.Tok.Line, node.Tok.Column)
	a.scopes.Enter(label)
	defer a.scopes.Exit()

	iterType := a.exprType(d.Iterable)
	if iterType != types.Unknown && !types.IsCollectionType(iterType) {
		a.bag.Errorf(d.Iterable.Tok, "for-each requires an array or collection type, found %s", displayType(iterType))
	}
	elemType := types.ElementType(iterType)
	if elemType != types.Unknown && !types.Compatible(elemType, d.TypeName) &&
		a.cfg.IsWarningEnabled(config.WarnElementType) {
		a.bag.Warnf(node.Tok, "loop variable type %s does not match element type %s", d.TypeName, elemType)
	}
	if sym := a.declare(node.Tok, d.VarName, d.TypeName, false, false); sym != nil {
		sym.Initialized = true
	}

	a.pushContext(ctxLoop)
	a.analyzeStmt(d.Body)
	a.popContext()
}

var switchSelectorTypes = map[string]bool{
	"int": true, "char": true, "byte": true, "short": true, "string": true,
}

func (a *Analyzer) analyzeSwitch(node *ast.Node) {
	d := node.Data.(ast.SwitchNode)
	selType := a.exprType(d.Selector)
	if selType != types.Unknown && !switchSelectorTypes[strings.ToLower(selType)] {
		a.bag.Errorf(d.Selector.Tok, "switch selector must be int, char, byte, short or String, found %s",
			displayType(selType))
	}

	label := fmt.Sprintf("switch_%d_%d", node.Tok.Line, node.Tok.Column)
	a.scopes.Enter(label)
	a.pushContext(ctxSwitch)
	defer func() {
		a.popContext()
		a.scopes.Exit()
	}()

	defaultSeen := false
	seenValues := make(map[string]bool)
	for _, groupNode := range d.Groups {
		group := groupNode.Data.(ast.CaseGroupNode)
		for _, labelNode := range group.Labels {
			cl := labelNode.Data.(ast.CaseLabelNode)
			if cl.IsDefault {
				if defaultSeen {
					a.bag.Errorf(labelNode.Tok, "duplicate 'default' label in switch")
				}
				defaultSeen = true
				continue
			}
			caseType := a.exprType(cl.Expr)
			if selType != types.Unknown && caseType != types.Unknown &&
				!types.Compatible(caseType, selType) {
				a.bag.Errorf(labelNode.Tok, "case label type %s is incompatible with selector type %s",
					displayType(caseType), displayType(selType))
			}
			if !a.isConstExpr(cl.Expr) {
				a.bag.Errorf(labelNode.Tok, "case label must be a constant expression")
				continue
			}
			if key, ok := a.constKey(cl.Expr); ok {
				if seenValues[key] {
					a.bag.Errorf(labelNode.Tok, "duplicate case label")
				}
				seenValues[key] = true
			}
		}
		for _, stmt := range group.Stmts {
			a.analyzeStmt(stmt)
		}
	}
}

func (a *Analyzer) analyzeReturn(node *ast.Node) {
	d := node.Data.(ast.ReturnNode)
	if a.currentMethod == nil {
		return
	}
	retType := a.currentMethod.ReturnType
	if d.Expr == nil {
		if retType != "void" {
			a.bag.Errorf(node.Tok, "missing return value in method returning %s", retType)
		}
		return
	}
	if retType == "void" {
		a.bag.Errorf(node.Tok, "cannot return a value from a method returning void")
		a.exprType(d.Expr)
		return
	}
	exprType := a.exprType(d.Expr)
	if !types.Compatible(exprType, retType) {
		a.bag.Errorf(node.Tok, "incompatible types: %s cannot be converted to %s",
			displayType(exprType), retType)
	}
}

// losesPrecision reports the implicit widenings that cannot represent every
// source value exactly: int or long into float, and long into double.
func losesPrecision(from, to string) bool {
	f := strings.ToLower(from)
	switch strings.ToLower(to) {
	case "float":
		return f == "int" || f == "long"
	case "double":
		return f == "long"
	}
	return false
}

// displayType renders a computed type for a message; the unresolved type
// never reaches messages because checks treat it as compatible.
func displayType(t string) string {
	if t == types.Unknown {
		return "<unknown>"
	}
	return t
}
