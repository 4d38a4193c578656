// Package codegen implements the second pass: syntax-directed emission of
// target source text from the analyzed tree. It runs only when analysis
// produced zero errors and never re-validates what the analyzer checked.
package codegen

import (
	"fmt"
	"strings"

	"github.com/Kashinulala/j2py/pkg/ast"
	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/types"
)

type Generator struct {
	buf       strings.Builder
	indent    int
	cfg       *config.Config
	declared  map[string]string // name -> declared type, from the analyzer
	switchSeq int
	entryName string

	// suppressBreak is set while emitting a case branch: the if/elif rewrite
	// has no loop for a switch-level break to leave.
	suppressBreak bool
}

// NewGenerator returns a generator for one translation call. typeInfo is the
// analyzer's snapshot of declared types, consulted for default values.
func NewGenerator(cfg *config.Config, typeInfo map[string]string) *Generator {
	if typeInfo == nil {
		typeInfo = make(map[string]string)
	}
	return &Generator{cfg: cfg, declared: typeInfo}
}

// Generate emits the whole compilation unit and returns the final text,
// post-processed unless the fix-up stage is disabled.
func (g *Generator) Generate(root *ast.Node) string {
	if root != nil && root.Kind == ast.CompilationUnit {
		d := root.Data.(ast.CompilationUnitNode)
		for _, cls := range d.Classes {
			g.genClass(cls)
		}
	}
	if g.entryName != "" && g.cfg.IsFeatureEnabled(config.FeatEntryCall) {
		g.writeLine("")
		g.writeLine(g.entryName + "([])")
	}
	out := g.buf.String()
	if g.cfg.IsFeatureEnabled(config.FeatPostProcess) {
		out = Postprocess(out)
	}
	return out
}

func (g *Generator) writeLine(s string) {
	if s == "" {
		g.buf.WriteByte('\n')
		return
	}
	g.buf.WriteString(strings.Repeat(" ", g.indent*g.cfg.IndentWidth))
	g.buf.WriteString(s)
	g.buf.WriteByte('\n')
}

// genClass flattens the class: fields become module-level assignments,
// methods become module-level functions.
func (g *Generator) genClass(node *ast.Node) {
	d := node.Data.(ast.ClassDeclNode)
	for _, member := range d.Members {
		switch member.Kind {
		case ast.FieldDecl:
			g.genFieldDecl(member)
		case ast.MethodDecl:
			g.genMethodDecl(member)
		}
	}
}

func (g *Generator) genFieldDecl(node *ast.Node) {
	d := node.Data.(ast.FieldDeclNode)
	for _, declNode := range d.Declarators {
		decl := declNode.Data.(ast.DeclaratorNode)
		g.writeLine(decl.Name + " = " + g.initText(decl.Init, d.TypeName))
	}
}

func (g *Generator) genMethodDecl(node *ast.Node) {
	d := node.Data.(ast.MethodDeclNode)
	if d.Name == "main" {
		g.entryName = "main"
	}
	names := make([]string, len(d.Params))
	for i, p := range d.Params {
		names[i] = p.Data.(ast.ParamNode).Name
	}
	if g.buf.Len() > 0 {
		g.writeLine("")
	}
	g.writeLine(fmt.Sprintf("def %s(%s):", d.Name, strings.Join(names, ", ")))
	g.genBody(d.Body)
}

// genBody emits a statement as an indented suite, inserting pass when the
// statement produced no lines.
func (g *Generator) genBody(stmt *ast.Node) {
	g.indent++
	before := g.buf.Len()
	g.genStmt(stmt)
	if g.buf.Len() == before {
		g.writeLine("pass")
	}
	g.indent--
}

// genLoopBody emits a loop suite. Breaks inside bind to this loop, so any
// case-branch suppression in effect ends here.
func (g *Generator) genLoopBody(stmt *ast.Node) {
	prev := g.suppressBreak
	g.suppressBreak = false
	g.genBody(stmt)
	g.suppressBreak = prev
}

func (g *Generator) genStmt(node *ast.Node) {
	if node == nil {
		return
	}
	switch node.Kind {
	case ast.Block:
		for _, stmt := range node.Data.(ast.BlockNode).Stmts {
			g.genStmt(stmt)
		}
	case ast.LocalVarDecl:
		d := node.Data.(ast.LocalVarDeclNode)
		for _, declNode := range d.Declarators {
			decl := declNode.Data.(ast.DeclaratorNode)
			g.writeLine(decl.Name + " = " + g.initText(decl.Init, d.TypeName))
		}
	case ast.If:
		g.genIf(node, "if")
	case ast.While:
		d := node.Data.(ast.WhileNode)
		g.writeLine("while " + g.exprText(d.Cond) + ":")
		g.genLoopBody(d.Body)
	case ast.DoWhile:
		d := node.Data.(ast.DoWhileNode)
		g.writeLine("while True:")
		g.indent++
		prev := g.suppressBreak
		g.suppressBreak = false
		before := g.buf.Len()
		g.genStmt(d.Body)
		g.suppressBreak = prev
		if g.buf.Len() == before {
			g.writeLine("pass")
		}
		g.writeLine("if not (" + g.exprText(d.Cond) + "):")
		g.indent++
		g.writeLine("break")
		g.indent--
		g.indent--
	case ast.For:
		g.genFor(node)
	case ast.ForEach:
		d := node.Data.(ast.ForEachNode)
		g.writeLine("for " + d.VarName + " in " + g.exprText(d.Iterable) + ":")
		g.genLoopBody(d.Body)
	case ast.Switch:
		g.genSwitch(node)
	case ast.Return:
		d := node.Data.(ast.ReturnNode)
		if d.Expr == nil {
			g.writeLine("return")
		} else {
			g.writeLine("return " + g.exprText(d.Expr))
		}
	case ast.Break:
		if g.suppressBreak {
			return
		}
		g.writeLine("break")
	case ast.Continue:
		g.writeLine("continue")
	case ast.ExprStmt:
		d := node.Data.(ast.ExprStmtNode)
		if d.Expr != nil {
			g.writeLine(g.exprText(d.Expr))
		}
	}
}

func (g *Generator) genIf(node *ast.Node, keyword string) {
	d := node.Data.(ast.IfNode)
	g.writeLine(keyword + " " + g.exprText(d.Cond) + ":")
	g.genBody(d.Then)
	if d.Else == nil {
		return
	}
	if d.Else.Kind == ast.If {
		g.genIf(d.Else, "elif")
		return
	}
	g.writeLine("else:")
	g.genBody(d.Else)
}

// genFor emits the range form when the loop header matches the counted
// pattern, otherwise the always-correct pre-test fallback.
func (g *Generator) genFor(node *ast.Node) {
	d := node.Data.(ast.ForNode)
	if rl, ok := MatchRange(d.Init, d.Cond, d.Update); ok {
		g.writeLine("for " + rl.Var + " in " + g.rangeText(rl) + ":")
		g.genLoopBody(d.Body)
		return
	}

	if d.Init != nil {
		g.genStmt(d.Init)
	}
	if d.Cond != nil {
		g.writeLine("while " + g.exprText(d.Cond) + ":")
	} else {
		g.writeLine("while True:")
	}
	g.indent++
	prev := g.suppressBreak
	g.suppressBreak = false
	before := g.buf.Len()
	g.genStmt(d.Body)
	g.suppressBreak = prev
	if d.Update != nil {
		g.writeLine(g.exprText(d.Update))
	}
	if g.buf.Len() == before {
		g.writeLine("pass")
	}
	g.indent--
}

func (g *Generator) rangeText(rl RangeLoop) string {
	start := g.exprText(rl.Start)
	stop := g.exprText(rl.Bound)
	stop = adjustBound(stop, rl.BoundAdd)
	if rl.Step == 1 {
		if start == "0" {
			return "range(" + stop + ")"
		}
		return "range(" + start + ", " + stop + ")"
	}
	return fmt.Sprintf("range(%s, %s, %d)", start, stop, rl.Step)
}

// adjustBound folds the inclusive-bound correction into a literal when it
// can, and appends the arithmetic otherwise.
func adjustBound(stop string, add int) string {
	if add == 0 {
		return stop
	}
	var v int
	if _, err := fmt.Sscanf(stop, "%d", &v); err == nil && fmt.Sprintf("%d", v) == stop {
		return fmt.Sprintf("%d", v+add)
	}
	if add > 0 {
		return stop + " + 1"
	}
	return stop + " - 1"
}

// genSwitch rewrites the switch as a selector temporary plus an if/elif
// chain. Switch-level breaks are dropped at any depth of a case branch;
// breaks under a nested loop keep their meaning. Default groups contribute
// no branch.
func (g *Generator) genSwitch(node *ast.Node) {
	d := node.Data.(ast.SwitchNode)
	tmp := g.switchTemp()
	g.writeLine(tmp + " = " + g.exprText(d.Selector))

	keyword := "if"
	for _, groupNode := range d.Groups {
		group := groupNode.Data.(ast.CaseGroupNode)
		var conds []string
		for _, labelNode := range group.Labels {
			cl := labelNode.Data.(ast.CaseLabelNode)
			if cl.IsDefault {
				continue
			}
			conds = append(conds, tmp+" == "+g.exprText(cl.Expr))
		}
		if len(conds) == 0 {
			continue
		}
		g.writeLine(keyword + " " + strings.Join(conds, " or ") + ":")
		g.indent++
		before := g.buf.Len()
		prev := g.suppressBreak
		g.suppressBreak = true
		for _, stmt := range group.Stmts {
			g.genStmt(stmt)
		}
		g.suppressBreak = prev
		if g.buf.Len() == before {
			g.writeLine("pass")
		}
		g.indent--
		keyword = "elif"
	}
}

// switchTemp picks the next selector temporary, skipping any name the
// analyzer saw declared in the source.
func (g *Generator) switchTemp() string {
	for {
		g.switchSeq++
		tmp := fmt.Sprintf("_switch_%d", g.switchSeq)
		if _, taken := g.declared[tmp]; !taken {
			return tmp
		}
	}
}

func (g *Generator) initText(init *ast.Node, typeName string) string {
	if init != nil {
		return g.exprText(init)
	}
	return defaultValue(typeName)
}

// defaultValue picks the target-language initial value for a declared type.
func defaultValue(typeName string) string {
	if types.IsArray(typeName) {
		return "[]"
	}
	switch strings.ToLower(types.Erase(typeName)) {
	case "byte", "short", "int", "long":
		return "0"
	case "char":
		return "''"
	case "float", "double":
		return "0.0"
	case "boolean":
		return "False"
	case "string":
		return `""`
	case "arraylist", "linkedlist", "list":
		return "[]"
	case "hashmap", "map":
		return "{}"
	case "hashset", "set":
		return "set()"
	}
	return "None"
}
