package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kashinulala/j2py/pkg/ast"
	"github.com/Kashinulala/j2py/pkg/diag"
	"github.com/Kashinulala/j2py/pkg/lexer"
	"github.com/Kashinulala/j2py/pkg/token"
)

func parse(t *testing.T, source string) (*ast.Node, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag()
	toks := lexer.NewLexer(source, bag).Tokenize()
	require.False(t, bag.HasErrors(), "lexing %q", source)
	return NewParser(toks, bag).ParseCompilationUnit(), bag
}

// parseStmts wraps source statements in a minimal class and returns the
// entry method's body statements.
func parseStmts(t *testing.T, stmts string) ([]*ast.Node, *diag.Bag) {
	t.Helper()
	src := "public class T { public static void main(String[] args) { " + stmts + " } }"
	root, bag := parse(t, src)
	require.Len(t, root.Data.(ast.CompilationUnitNode).Classes, 1)
	cls := root.Data.(ast.CompilationUnitNode).Classes[0]
	method := cls.Data.(ast.ClassDeclNode).Members[0]
	body := method.Data.(ast.MethodDeclNode).Body
	return body.Data.(ast.BlockNode).Stmts, bag
}

func TestClassAndMethodShape(t *testing.T) {
	root, bag := parse(t, `
import java.util.ArrayList;

public class Main {
    private static int count = 0;

    public static void main(String[] args) {
    }
}`)
	require.False(t, bag.HasErrors())
	d := root.Data.(ast.CompilationUnitNode)
	require.Len(t, d.Imports, 1)
	assert.Equal(t, "java.util.ArrayList", d.Imports[0].Data.(ast.ImportDeclNode).Path)
	require.Len(t, d.Classes, 1)

	cls := d.Classes[0].Data.(ast.ClassDeclNode)
	assert.Equal(t, "Main", cls.Name)
	assert.True(t, cls.Mods.Public)
	require.Len(t, cls.Members, 2)

	field := cls.Members[0].Data.(ast.FieldDeclNode)
	assert.Equal(t, "int", field.TypeName)
	assert.True(t, field.Mods.Private)
	assert.True(t, field.Mods.Static)

	method := cls.Members[1].Data.(ast.MethodDeclNode)
	assert.Equal(t, "main", method.Name)
	assert.Equal(t, "void", method.ReturnType)
	require.Len(t, method.Params, 1)
	assert.Equal(t, "String[]", method.Params[0].Data.(ast.ParamNode).TypeName)
	assert.Equal(t, "args", method.Params[0].Data.(ast.ParamNode).Name)
}

func TestDeclarationVsExpression(t *testing.T) {
	stmts, bag := parseStmts(t, "int x = 1; x = 2; ArrayList<Integer> l = new ArrayList<Integer>(); x.y = 3;")
	require.False(t, bag.HasErrors())
	require.Len(t, stmts, 4)
	assert.Equal(t, ast.LocalVarDecl, stmts[0].Kind)
	assert.Equal(t, ast.ExprStmt, stmts[1].Kind)
	assert.Equal(t, ast.LocalVarDecl, stmts[2].Kind)
	assert.Equal(t, "ArrayList<Integer>", stmts[2].Data.(ast.LocalVarDeclNode).TypeName)
	assert.Equal(t, ast.ExprStmt, stmts[3].Kind)
}

func TestOperatorPrecedence(t *testing.T) {
	stmts, bag := parseStmts(t, "boolean b = 1 + 2 * 3 < 10 && true;")
	require.False(t, bag.HasErrors())
	decl := stmts[0].Data.(ast.LocalVarDeclNode)
	init := decl.Declarators[0].Data.(ast.DeclaratorNode).Init

	// (((1 + (2 * 3)) < 10) && true)
	and := init.Data.(ast.BinaryNode)
	assert.Equal(t, token.AndAnd, and.Op)
	lt := and.Left.Data.(ast.BinaryNode)
	assert.Equal(t, token.Lt, lt.Op)
	plus := lt.Left.Data.(ast.BinaryNode)
	assert.Equal(t, token.Plus, plus.Op)
	mul := plus.Right.Data.(ast.BinaryNode)
	assert.Equal(t, token.Star, mul.Op)
}

func TestTraditionalFor(t *testing.T) {
	stmts, bag := parseStmts(t, "for (int i = 0; i < 5; i++) { }")
	require.False(t, bag.HasErrors())
	require.Len(t, stmts, 1)
	require.Equal(t, ast.For, stmts[0].Kind)
	d := stmts[0].Data.(ast.ForNode)
	assert.Equal(t, ast.LocalVarDecl, d.Init.Kind)
	assert.Equal(t, ast.Binary, d.Cond.Kind)
	assert.Equal(t, ast.Postfix, d.Update.Kind)
}

func TestEnhancedFor(t *testing.T) {
	stmts, bag := parseStmts(t, "for (Integer n : nums) { }")
	require.False(t, bag.HasErrors())
	require.Equal(t, ast.ForEach, stmts[0].Kind)
	d := stmts[0].Data.(ast.ForEachNode)
	assert.Equal(t, "Integer", d.TypeName)
	assert.Equal(t, "n", d.VarName)
	assert.Equal(t, ast.Ident, d.Iterable.Kind)
}

func TestForWithEmptyClauses(t *testing.T) {
	stmts, bag := parseStmts(t, "for (;;) { break; }")
	require.False(t, bag.HasErrors())
	d := stmts[0].Data.(ast.ForNode)
	assert.Nil(t, d.Init)
	assert.Nil(t, d.Cond)
	assert.Nil(t, d.Update)
}

func TestSwitchGroups(t *testing.T) {
	stmts, bag := parseStmts(t, `switch (x) {
        case 1:
        case 2:
            y = 1;
            break;
        default:
            y = 2;
    }`)
	require.False(t, bag.HasErrors())
	require.Equal(t, ast.Switch, stmts[0].Kind)
	d := stmts[0].Data.(ast.SwitchNode)
	require.Len(t, d.Groups, 2)

	first := d.Groups[0].Data.(ast.CaseGroupNode)
	require.Len(t, first.Labels, 2)
	assert.False(t, first.Labels[0].Data.(ast.CaseLabelNode).IsDefault)
	assert.Len(t, first.Stmts, 2)

	second := d.Groups[1].Data.(ast.CaseGroupNode)
	require.Len(t, second.Labels, 1)
	assert.True(t, second.Labels[0].Data.(ast.CaseLabelNode).IsDefault)
}

func TestDoWhile(t *testing.T) {
	stmts, bag := parseStmts(t, "do { x--; } while (x > 0);")
	require.False(t, bag.HasErrors())
	require.Equal(t, ast.DoWhile, stmts[0].Kind)
	d := stmts[0].Data.(ast.DoWhileNode)
	assert.Equal(t, ast.Binary, d.Cond.Kind)
}

func TestCreators(t *testing.T) {
	stmts, bag := parseStmts(t, "int[] a = new int[10]; Object o = new Object();")
	require.False(t, bag.HasErrors())

	arr := stmts[0].Data.(ast.LocalVarDeclNode).Declarators[0].Data.(ast.DeclaratorNode).Init
	require.Equal(t, ast.NewArray, arr.Kind)
	assert.Equal(t, "int", arr.Data.(ast.NewArrayNode).ElemType)
	require.Len(t, arr.Data.(ast.NewArrayNode).Dims, 1)

	obj := stmts[1].Data.(ast.LocalVarDeclNode).Declarators[0].Data.(ast.DeclaratorNode).Init
	require.Equal(t, ast.NewObject, obj.Kind)
	assert.Equal(t, "Object", obj.Data.(ast.NewObjectNode).TypeName)
}

func TestQualifiedCall(t *testing.T) {
	stmts, bag := parseStmts(t, "System.out.println(x);")
	require.False(t, bag.HasErrors())
	call := stmts[0].Data.(ast.ExprStmtNode).Expr
	require.Equal(t, ast.Call, call.Kind)
	callee := call.Data.(ast.CallNode).Callee
	require.Equal(t, ast.FieldAccess, callee.Kind)
	assert.Equal(t, "println", callee.Data.(ast.FieldAccessNode).Name)
}

func TestSyntaxErrorRecovery(t *testing.T) {
	src := "public class T { public static void main(String[] args) { int x = ; int y = 2; } }"
	bag := diag.NewBag()
	toks := lexer.NewLexer(src, bag).Tokenize()
	NewParser(toks, bag).ParseCompilationUnit()
	assert.True(t, bag.HasErrors(), "the malformed initializer is reported")
}
