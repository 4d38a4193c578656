// Package parser builds the syntax tree for the accepted Java subset. Syntax
// errors are collected as diagnostics; the parser synchronizes at statement
// boundaries so one malformed statement does not hide the rest of the file.
package parser

import (
	"strconv"
	"strings"

	"github.com/Kashinulala/j2py/pkg/ast"
	"github.com/Kashinulala/j2py/pkg/diag"
	"github.com/Kashinulala/j2py/pkg/token"
)

// Parser holds the state for the parsing process
type Parser struct {
	tokens   []token.Token
	pos      int
	current  token.Token
	previous token.Token
	bag      *diag.Bag
}

// NewParser creates and initializes a new Parser from a token stream
func NewParser(tokens []token.Token, bag *diag.Bag) *Parser {
	p := &Parser{tokens: tokens, bag: bag}
	if len(tokens) > 0 {
		p.current = p.tokens[0]
	}
	return p
}

// Parser helpers

func (p *Parser) advance() {
	if p.pos < len(p.tokens) {
		p.previous = p.current
		p.pos++
		if p.pos < len(p.tokens) {
			p.current = p.tokens[p.pos]
		}
	}
}

func (p *Parser) peek() token.Token {
	if p.pos+1 < len(p.tokens) {
		return p.tokens[p.pos+1]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) peekAt(offset int) token.Token {
	if p.pos+offset < len(p.tokens) {
		return p.tokens[p.pos+offset]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *Parser) check(tokType token.Type) bool {
	return p.current.Type == tokType
}

func (p *Parser) match(tokType token.Type) bool {
	if !p.check(tokType) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) expect(tokType token.Type, message string) bool {
	if p.check(tokType) {
		p.advance()
		return true
	}
	p.bag.Errorf(p.current, "%s", message)
	return false
}

// synchronize skips forward to the next statement boundary after an error.
func (p *Parser) synchronize() {
	for !p.check(token.EOF) {
		if p.previous.Type == token.Semi {
			return
		}
		switch p.current.Type {
		case token.Class, token.If, token.While, token.Do, token.For,
			token.Switch, token.Return, token.Break, token.Continue, token.RBrace:
			return
		}
		p.advance()
	}
}

// mark/reset support the bounded lookahead needed to distinguish enhanced
// for-loops and declarations from expressions.
func (p *Parser) mark() (int, token.Token, token.Token) {
	return p.pos, p.current, p.previous
}

func (p *Parser) reset(pos int, current, previous token.Token) {
	p.pos, p.current, p.previous = pos, current, previous
}

// ParseCompilationUnit parses imports followed by class declarations.
func (p *Parser) ParseCompilationUnit() *ast.Node {
	startTok := p.current
	var imports, classes []*ast.Node

	for p.check(token.Import) {
		imports = append(imports, p.parseImport())
	}
	for !p.check(token.EOF) {
		cls := p.parseClassDecl()
		if cls == nil {
			p.synchronize()
			p.advance()
			continue
		}
		classes = append(classes, cls)
	}
	return ast.NewCompilationUnit(startTok, imports, classes)
}

func (p *Parser) parseImport() *ast.Node {
	tok := p.current
	p.expect(token.Import, "expected 'import'")
	var sb strings.Builder
	for {
		if p.check(token.Ident) {
			sb.WriteString(p.current.Value)
			p.advance()
		} else if p.match(token.Star) {
			sb.WriteString("*")
		} else {
			p.bag.Errorf(p.current, "expected name in import declaration")
			break
		}
		if p.match(token.Dot) {
			sb.WriteString(".")
			continue
		}
		break
	}
	p.expect(token.Semi, "expected ';' after import declaration")
	return ast.NewImportDecl(tok, sb.String())
}

func (p *Parser) parseModifiers() ast.Modifiers {
	var mods ast.Modifiers
	for token.IsModifier(p.current.Type) {
		switch p.current.Type {
		case token.Public:
			mods.Public = true
		case token.Private:
			mods.Private = true
		case token.Protected:
			mods.Protected = true
		case token.Static:
			mods.Static = true
		case token.Final:
			mods.Final = true
		}
		p.advance()
	}
	return mods
}

func (p *Parser) parseClassDecl() *ast.Node {
	mods := p.parseModifiers()
	if !p.expect(token.Class, "expected 'class' declaration") {
		return nil
	}
	nameTok := p.current
	if !p.expect(token.Ident, "expected class name") {
		return nil
	}
	if !p.expect(token.LBrace, "expected '{' after class name") {
		return nil
	}
	var members []*ast.Node
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		member := p.parseMember()
		if member == nil {
			p.synchronize()
			if p.check(token.EOF) {
				break
			}
			if !p.check(token.RBrace) && p.previous.Type != token.Semi {
				p.advance()
			}
			continue
		}
		members = append(members, member)
	}
	p.expect(token.RBrace, "expected '}' to close class body")
	return ast.NewClassDecl(nameTok, mods, nameTok.Value, members)
}

// parseMember parses a field or method declaration.
func (p *Parser) parseMember() *ast.Node {
	tok := p.current
	mods := p.parseModifiers()

	typeName, ok := p.parseTypeName(true)
	if !ok {
		p.bag.Errorf(p.current, "expected member type")
		return nil
	}
	nameTok := p.current
	if !p.expect(token.Ident, "expected member name") {
		return nil
	}

	if p.check(token.LParen) {
		return p.parseMethodRest(tok, mods, typeName, nameTok)
	}

	declarators := p.parseDeclarators(nameTok)
	p.expect(token.Semi, "expected ';' after field declaration")
	return ast.NewFieldDecl(tok, mods, typeName, declarators)
}

func (p *Parser) parseMethodRest(tok token.Token, mods ast.Modifiers, returnType string, nameTok token.Token) *ast.Node {
	p.expect(token.LParen, "expected '(' after method name")
	var params []*ast.Node
	if !p.check(token.RParen) {
		for {
			ptok := p.current
			ptype, ok := p.parseTypeName(false)
			if !ok {
				p.bag.Errorf(p.current, "expected parameter type")
				break
			}
			pname := p.current
			if !p.expect(token.Ident, "expected parameter name") {
				break
			}
			params = append(params, ast.NewParam(ptok, ptype, pname.Value))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RParen, "expected ')' after parameter list")
	body := p.parseBlock()
	return ast.NewMethodDecl(tok, mods, returnType, nameTok.Value, params, body)
}

// parseTypeName consumes a type: primitive keyword or identifier, optional
// generic argument text, optional '[]' suffix. The textual form is kept as
// the declared type throughout.
func (p *Parser) parseTypeName(allowVoid bool) (string, bool) {
	var sb strings.Builder
	switch {
	case token.IsPrimitiveType(p.current.Type):
		sb.WriteString(token.TypeStrings[p.current.Type])
		p.advance()
	case allowVoid && p.check(token.Void):
		p.advance()
		return "void", true
	case p.check(token.Ident):
		sb.WriteString(p.current.Value)
		p.advance()
		if p.check(token.Lt) {
			sb.WriteString(p.parseGenericArgs())
		}
	default:
		return "", false
	}
	for p.check(token.LBracket) && p.peek().Type == token.RBracket {
		p.advance()
		p.advance()
		sb.WriteString("[]")
	}
	return sb.String(), true
}

// parseGenericArgs consumes a balanced '<...>' run and returns its text.
func (p *Parser) parseGenericArgs() string {
	var sb strings.Builder
	depth := 0
	for !p.check(token.EOF) {
		switch p.current.Type {
		case token.Lt:
			depth++
			sb.WriteString("<")
		case token.Gt:
			depth--
			sb.WriteString(">")
		case token.Ident:
			sb.WriteString(p.current.Value)
		case token.Comma:
			sb.WriteString(",")
		case token.Dot:
			sb.WriteString(".")
		default:
			if kw, ok := token.TypeStrings[p.current.Type]; ok {
				sb.WriteString(kw)
			}
		}
		p.advance()
		if depth == 0 {
			break
		}
	}
	return sb.String()
}

func (p *Parser) parseDeclarators(first token.Token) []*ast.Node {
	declarators := []*ast.Node{p.parseDeclaratorRest(first)}
	for p.match(token.Comma) {
		nameTok := p.current
		if !p.expect(token.Ident, "expected variable name") {
			break
		}
		declarators = append(declarators, p.parseDeclaratorRest(nameTok))
	}
	return declarators
}

func (p *Parser) parseDeclaratorRest(nameTok token.Token) *ast.Node {
	var init *ast.Node
	if p.match(token.Eq) {
		init = p.parseExpression()
	}
	return ast.NewDeclarator(nameTok, nameTok.Value, init)
}

// --- Statements ---

func (p *Parser) parseBlock() *ast.Node {
	tok := p.current
	if !p.expect(token.LBrace, "expected '{'") {
		return ast.NewBlock(tok, nil)
	}
	var stmts []*ast.Node
	for !p.check(token.RBrace) && !p.check(token.EOF) {
		stmt := p.parseStatement()
		if stmt == nil {
			p.synchronize()
			if !p.check(token.RBrace) && !p.check(token.EOF) && p.previous.Type != token.Semi {
				p.advance()
			}
			continue
		}
		stmts = append(stmts, stmt)
	}
	p.expect(token.RBrace, "expected '}' to close block")
	return ast.NewBlock(tok, stmts)
}

func (p *Parser) parseStatement() *ast.Node {
	switch p.current.Type {
	case token.LBrace:
		return p.parseBlock()
	case token.If:
		return p.parseIf()
	case token.While:
		return p.parseWhile()
	case token.Do:
		return p.parseDoWhile()
	case token.For:
		return p.parseFor()
	case token.Switch:
		return p.parseSwitch()
	case token.Return:
		return p.parseReturn()
	case token.Break:
		tok := p.current
		p.advance()
		label := ""
		if p.check(token.Ident) {
			label = p.current.Value
			p.advance()
		}
		p.expect(token.Semi, "expected ';' after 'break'")
		return ast.NewBreak(tok, label)
	case token.Continue:
		tok := p.current
		p.advance()
		label := ""
		if p.check(token.Ident) {
			label = p.current.Value
			p.advance()
		}
		p.expect(token.Semi, "expected ';' after 'continue'")
		return ast.NewContinue(tok, label)
	case token.Semi:
		tok := p.current
		p.advance()
		return ast.NewExprStmt(tok, nil)
	}

	if p.startsLocalVarDecl() {
		decl := p.parseLocalVarDecl()
		p.expect(token.Semi, "expected ';' after variable declaration")
		return decl
	}

	tok := p.current
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	p.expect(token.Semi, "expected ';' after expression")
	return ast.NewExprStmt(tok, expr)
}

// startsLocalVarDecl decides, with bounded lookahead, whether the upcoming
// tokens are a declaration rather than an expression statement.
func (p *Parser) startsLocalVarDecl() bool {
	idx := 0
	if p.current.Type == token.Final {
		idx = 1
	}
	first := p.peekAt(idx)
	if token.IsPrimitiveType(first.Type) {
		return true
	}
	if p.current.Type == token.Final {
		return true
	}
	if first.Type != token.Ident {
		return false
	}
	second := p.peekAt(idx + 1)
	switch second.Type {
	case token.Ident:
		return true // ClassName name
	case token.LBracket:
		return p.peekAt(idx+2).Type == token.RBracket // ClassName[] name
	case token.Lt:
		// ClassName<...> name: scan past the balanced generic run
		depth := 0
		for off := idx + 1; off < idx+16; off++ {
			switch p.peekAt(off).Type {
			case token.Lt:
				depth++
			case token.Gt:
				depth--
				if depth == 0 {
					return p.peekAt(off+1).Type == token.Ident
				}
			case token.Semi, token.EOF:
				return false
			}
		}
	}
	return false
}

func (p *Parser) parseLocalVarDecl() *ast.Node {
	tok := p.current
	final := p.match(token.Final)
	typeName, ok := p.parseTypeName(false)
	if !ok {
		p.bag.Errorf(p.current, "expected type in variable declaration")
		return nil
	}
	nameTok := p.current
	if !p.expect(token.Ident, "expected variable name") {
		return nil
	}
	declarators := p.parseDeclarators(nameTok)
	return ast.NewLocalVarDecl(tok, final, typeName, declarators)
}

func (p *Parser) parseIf() *ast.Node {
	tok := p.current
	p.advance()
	p.expect(token.LParen, "expected '(' after 'if'")
	cond := p.parseExpression()
	p.expect(token.RParen, "expected ')' after condition")
	then := p.parseStatement()
	var els *ast.Node
	if p.match(token.Else) {
		els = p.parseStatement()
	}
	return ast.NewIf(tok, cond, then, els)
}

func (p *Parser) parseWhile() *ast.Node {
	tok := p.current
	p.advance()
	p.expect(token.LParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.expect(token.RParen, "expected ')' after condition")
	body := p.parseStatement()
	return ast.NewWhile(tok, cond, body)
}

func (p *Parser) parseDoWhile() *ast.Node {
	tok := p.current
	p.advance()
	body := p.parseStatement()
	p.expect(token.While, "expected 'while' after do-while body")
	p.expect(token.LParen, "expected '(' after 'while'")
	cond := p.parseExpression()
	p.expect(token.RParen, "expected ')' after condition")
	p.expect(token.Semi, "expected ';' after do-while")
	return ast.NewDoWhile(tok, body, cond)
}

func (p *Parser) parseFor() *ast.Node {
	tok := p.current
	p.advance()
	p.expect(token.LParen, "expected '(' after 'for'")

	// Enhanced form: for (Type name : iterable)
	pos, cur, prev := p.mark()
	if typeName, ok := p.parseTypeName(false); ok && p.check(token.Ident) && p.peek().Type == token.Colon {
		varName := p.current.Value
		p.advance()
		p.advance() // ':'
		iterable := p.parseExpression()
		p.expect(token.RParen, "expected ')' after for-each header")
		body := p.parseStatement()
		return ast.NewForEach(tok, typeName, varName, iterable, body)
	}
	p.reset(pos, cur, prev)

	var init *ast.Node
	if !p.check(token.Semi) {
		if p.startsLocalVarDecl() {
			init = p.parseLocalVarDecl()
		} else {
			exprTok := p.current
			init = ast.NewExprStmt(exprTok, p.parseExpression())
		}
	}
	p.expect(token.Semi, "expected ';' after for-loop initializer")

	var cond *ast.Node
	if !p.check(token.Semi) {
		cond = p.parseExpression()
	}
	p.expect(token.Semi, "expected ';' after for-loop condition")

	var update *ast.Node
	if !p.check(token.RParen) {
		update = p.parseExpression()
	}
	p.expect(token.RParen, "expected ')' after for-loop header")
	body := p.parseStatement()
	return ast.NewFor(tok, init, cond, update, body)
}

func (p *Parser) parseSwitch() *ast.Node {
	tok := p.current
	p.advance()
	p.expect(token.LParen, "expected '(' after 'switch'")
	selector := p.parseExpression()
	p.expect(token.RParen, "expected ')' after switch selector")
	p.expect(token.LBrace, "expected '{' to open switch body")

	var groups []*ast.Node
	for p.check(token.Case) || p.check(token.Default) {
		groupTok := p.current
		var labels []*ast.Node
		for p.check(token.Case) || p.check(token.Default) {
			labelTok := p.current
			if p.match(token.Case) {
				expr := p.parseExpression()
				p.expect(token.Colon, "expected ':' after case label")
				labels = append(labels, ast.NewCaseLabel(labelTok, expr, false))
			} else {
				p.advance()
				p.expect(token.Colon, "expected ':' after 'default'")
				labels = append(labels, ast.NewCaseLabel(labelTok, nil, true))
			}
		}
		var stmts []*ast.Node
		for !p.check(token.Case) && !p.check(token.Default) && !p.check(token.RBrace) && !p.check(token.EOF) {
			stmt := p.parseStatement()
			if stmt == nil {
				p.synchronize()
				continue
			}
			stmts = append(stmts, stmt)
		}
		groups = append(groups, ast.NewCaseGroup(groupTok, labels, stmts))
	}
	p.expect(token.RBrace, "expected '}' to close switch body")
	return ast.NewSwitch(tok, selector, groups)
}

func (p *Parser) parseReturn() *ast.Node {
	tok := p.current
	p.advance()
	var expr *ast.Node
	if !p.check(token.Semi) {
		expr = p.parseExpression()
	}
	p.expect(token.Semi, "expected ';' after return statement")
	return ast.NewReturn(tok, expr)
}

// --- Expressions ---

func getBinaryOpPrecedence(op token.Type) int {
	switch op {
	case token.Star, token.Slash, token.Rem:
		return 6
	case token.Plus, token.Minus:
		return 5
	case token.Lt, token.Gt, token.Lte, token.Gte:
		return 4
	case token.EqEq, token.Neq:
		return 3
	case token.AndAnd:
		return 2
	case token.OrOr:
		return 1
	default:
		return -1
	}
}

func isAssignOp(op token.Type) bool {
	switch op {
	case token.Eq, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq, token.RemEq:
		return true
	}
	return false
}

func (p *Parser) parseExpression() *ast.Node {
	return p.parseAssignment()
}

func (p *Parser) parseAssignment() *ast.Node {
	left := p.parseBinary(1)
	if left == nil {
		return nil
	}
	if isAssignOp(p.current.Type) {
		opTok := p.current
		p.advance()
		value := p.parseAssignment()
		return ast.NewAssign(opTok, opTok.Type, left, value)
	}
	return left
}

func (p *Parser) parseBinary(minPrec int) *ast.Node {
	left := p.parseUnary()
	for {
		prec := getBinaryOpPrecedence(p.current.Type)
		if prec < minPrec {
			return left
		}
		opTok := p.current
		p.advance()
		right := p.parseBinary(prec + 1)
		left = ast.NewBinary(opTok, opTok.Type, left, right)
	}
}

func (p *Parser) parseUnary() *ast.Node {
	tok := p.current
	switch tok.Type {
	case token.Not, token.Plus, token.Minus, token.Inc, token.Dec:
		p.advance()
		operand := p.parseUnary()
		return ast.NewUnary(tok, tok.Type, operand)
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() *ast.Node {
	expr := p.parsePrimary()
	for {
		tok := p.current
		if p.match(token.Dot) {
			nameTok := p.current
			if !p.expect(token.Ident, "expected member name after '.'") {
				return expr
			}
			expr = ast.NewFieldAccess(tok, expr, nameTok.Value)
		} else if p.check(token.LParen) {
			p.advance()
			var args []*ast.Node
			if !p.check(token.RParen) {
				for {
					args = append(args, p.parseExpression())
					if !p.match(token.Comma) {
						break
					}
				}
			}
			p.expect(token.RParen, "expected ')' after arguments")
			expr = ast.NewCall(tok, expr, args)
		} else if p.match(token.LBracket) {
			index := p.parseExpression()
			p.expect(token.RBracket, "expected ']' after array index")
			expr = ast.NewIndex(tok, expr, index)
		} else if p.check(token.Inc) || p.check(token.Dec) {
			opTok := p.current
			p.advance()
			expr = ast.NewPostfix(opTok, opTok.Type, expr)
		} else {
			return expr
		}
	}
}

func (p *Parser) parsePrimary() *ast.Node {
	tok := p.current
	switch tok.Type {
	case token.IntLit:
		p.advance()
		text := strings.TrimRight(tok.Value, "lL")
		val, _ := strconv.ParseInt(text, 10, 64)
		return ast.NewIntLit(tok, val, tok.Value)
	case token.FloatLit:
		p.advance()
		isFloat := strings.HasSuffix(tok.Value, "f") || strings.HasSuffix(tok.Value, "F")
		text := strings.TrimRight(tok.Value, "fFdD")
		val, _ := strconv.ParseFloat(text, 64)
		return ast.NewFloatLit(tok, val, tok.Value, isFloat)
	case token.CharLit:
		p.advance()
		r := decodeCharLiteral(tok.Value)
		return ast.NewCharLit(tok, r, tok.Value)
	case token.StringLit:
		p.advance()
		return ast.NewStringLit(tok, tok.Value)
	case token.True:
		p.advance()
		return ast.NewBoolLit(tok, true)
	case token.False:
		p.advance()
		return ast.NewBoolLit(tok, false)
	case token.Null:
		p.advance()
		return ast.NewNullLit(tok)
	case token.Ident:
		p.advance()
		return ast.NewIdent(tok, tok.Value)
	case token.New:
		return p.parseCreator()
	case token.LParen:
		p.advance()
		expr := p.parseExpression()
		p.expect(token.RParen, "expected ')' after expression")
		return ast.NewParen(tok, expr)
	}
	p.bag.Errorf(tok, "expected an expression")
	p.advance()
	return nil
}

func (p *Parser) parseCreator() *ast.Node {
	tok := p.current
	p.advance() // 'new'

	var typeName string
	if token.IsPrimitiveType(p.current.Type) {
		typeName = token.TypeStrings[p.current.Type]
		p.advance()
	} else if p.check(token.Ident) {
		typeName = p.current.Value
		p.advance()
		if p.check(token.Lt) {
			typeName += p.parseGenericArgs()
		}
	} else {
		p.bag.Errorf(p.current, "expected type name after 'new'")
		return nil
	}

	if p.check(token.LBracket) {
		var dims []*ast.Node
		for p.match(token.LBracket) {
			if p.check(token.RBracket) {
				p.advance()
				continue
			}
			dims = append(dims, p.parseExpression())
			p.expect(token.RBracket, "expected ']' after array dimension")
		}
		return ast.NewNewArray(tok, typeName, dims)
	}

	p.expect(token.LParen, "expected '(' in object creation")
	var args []*ast.Node
	if !p.check(token.RParen) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RParen, "expected ')' after constructor arguments")
	return ast.NewNewObject(tok, typeName, args)
}

func decodeCharLiteral(text string) rune {
	runes := []rune(text)
	if len(runes) == 0 {
		return 0
	}
	if runes[0] == '\\' && len(runes) > 1 {
		switch runes[1] {
		case 'n':
			return '\n'
		case 't':
			return '\t'
		case 'r':
			return '\r'
		case '0':
			return 0
		case '\\':
			return '\\'
		case '\'':
			return '\''
		}
		return runes[1]
	}
	return runes[0]
}
