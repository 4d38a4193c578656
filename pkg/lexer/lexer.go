package lexer

import (
	"strings"
	"unicode"

	"github.com/Kashinulala/j2py/pkg/diag"
	"github.com/Kashinulala/j2py/pkg/token"
)

type Lexer struct {
	source []rune
	pos    int
	line   int
	column int
	bag    *diag.Bag
}

func NewLexer(source string, bag *diag.Bag) *Lexer {
	return &Lexer{source: []rune(source), line: 1, column: 1, bag: bag}
}

// Tokenize scans the whole input and returns the token stream, terminated by
// an EOF token. Lexical errors are reported to the bag and scanning resumes
// at the next character.
func (l *Lexer) Tokenize() []token.Token {
	var tokens []token.Token
	for {
		tok := l.next()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) next() token.Token {
	for {
		l.skipWhitespaceAndComments()
		startPos, startCol, startLine := l.pos, l.column, l.line

		if l.isAtEnd() {
			return l.makeToken(token.EOF, "", startPos, startCol, startLine)
		}

		ch := l.peek()
		if unicode.IsLetter(ch) || ch == '_' || ch == '$' {
			l.advance()
			return l.identifierOrKeyword(startPos, startCol, startLine)
		}
		if unicode.IsDigit(ch) {
			return l.numberLiteral(startPos, startCol, startLine)
		}

		l.advance()
		switch ch {
		case '(':
			return l.makeToken(token.LParen, "", startPos, startCol, startLine)
		case ')':
			return l.makeToken(token.RParen, "", startPos, startCol, startLine)
		case '{':
			return l.makeToken(token.LBrace, "", startPos, startCol, startLine)
		case '}':
			return l.makeToken(token.RBrace, "", startPos, startCol, startLine)
		case '[':
			return l.makeToken(token.LBracket, "", startPos, startCol, startLine)
		case ']':
			return l.makeToken(token.RBracket, "", startPos, startCol, startLine)
		case ';':
			return l.makeToken(token.Semi, "", startPos, startCol, startLine)
		case ',':
			return l.makeToken(token.Comma, "", startPos, startCol, startLine)
		case ':':
			return l.makeToken(token.Colon, "", startPos, startCol, startLine)
		case '.':
			return l.makeToken(token.Dot, "", startPos, startCol, startLine)
		case '!':
			return l.matchThen('=', token.Neq, token.Not, startPos, startCol, startLine)
		case '%':
			return l.matchThen('=', token.RemEq, token.Rem, startPos, startCol, startLine)
		case '*':
			return l.matchThen('=', token.StarEq, token.Star, startPos, startCol, startLine)
		case '/':
			return l.matchThen('=', token.SlashEq, token.Slash, startPos, startCol, startLine)
		case '=':
			return l.matchThen('=', token.EqEq, token.Eq, startPos, startCol, startLine)
		case '<':
			return l.matchThen('=', token.Lte, token.Lt, startPos, startCol, startLine)
		case '>':
			return l.matchThen('=', token.Gte, token.Gt, startPos, startCol, startLine)
		case '+':
			if l.match('+') {
				return l.makeToken(token.Inc, "", startPos, startCol, startLine)
			}
			return l.matchThen('=', token.PlusEq, token.Plus, startPos, startCol, startLine)
		case '-':
			if l.match('-') {
				return l.makeToken(token.Dec, "", startPos, startCol, startLine)
			}
			return l.matchThen('=', token.MinusEq, token.Minus, startPos, startCol, startLine)
		case '&':
			if l.match('&') {
				return l.makeToken(token.AndAnd, "", startPos, startCol, startLine)
			}
		case '|':
			if l.match('|') {
				return l.makeToken(token.OrOr, "", startPos, startCol, startLine)
			}
		case '"':
			return l.stringLiteral(startPos, startCol, startLine)
		case '\'':
			return l.charLiteral(startPos, startCol, startLine)
		}

		l.bag.Errorf(l.makeToken(token.EOF, "", startPos, startCol, startLine),
			"unexpected character '%c'", ch)
	}
}

func (l *Lexer) peek() rune {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.source) {
		return 0
	}
	return l.source[l.pos+1]
}

func (l *Lexer) advance() rune {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	return ch
}

func (l *Lexer) match(expected rune) bool {
	if l.isAtEnd() || l.source[l.pos] != expected {
		return false
	}
	l.advance()
	return true
}

func (l *Lexer) matchThen(expected rune, ifMatch, ifNot token.Type, startPos, startCol, startLine int) token.Token {
	if l.match(expected) {
		return l.makeToken(ifMatch, "", startPos, startCol, startLine)
	}
	return l.makeToken(ifNot, "", startPos, startCol, startLine)
}

func (l *Lexer) isAtEnd() bool { return l.pos >= len(l.source) }

func (l *Lexer) makeToken(tokType token.Type, value string, startPos, startCol, startLine int) token.Token {
	return token.Token{
		Type: tokType, Value: value,
		Line: startLine, Column: startCol, Len: l.pos - startPos,
	}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.peek() {
		case ' ', '\t', '\n', '\r':
			l.advance()
		case '/':
			if l.peekNext() == '/' {
				for !l.isAtEnd() && l.peek() != '\n' {
					l.advance()
				}
			} else if l.peekNext() == '*' {
				l.advance()
				l.advance()
				for !l.isAtEnd() && !(l.peek() == '*' && l.peekNext() == '/') {
					l.advance()
				}
				l.advance()
				l.advance()
			} else {
				return
			}
		default:
			return
		}
	}
}

func (l *Lexer) identifierOrKeyword(startPos, startCol, startLine int) token.Token {
	for unicode.IsLetter(l.peek()) || unicode.IsDigit(l.peek()) || l.peek() == '_' || l.peek() == '$' {
		l.advance()
	}
	text := string(l.source[startPos:l.pos])
	if kw, ok := token.KeywordMap[text]; ok {
		return l.makeToken(kw, text, startPos, startCol, startLine)
	}
	return l.makeToken(token.Ident, text, startPos, startCol, startLine)
}

func (l *Lexer) numberLiteral(startPos, startCol, startLine int) token.Token {
	for unicode.IsDigit(l.peek()) {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' && unicode.IsDigit(l.peekNext()) {
		isFloat = true
		l.advance()
		for unicode.IsDigit(l.peek()) {
			l.advance()
		}
	}
	// Type suffixes are kept in the token text; the parser interprets them.
	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		l.advance()
	}
	text := string(l.source[startPos:l.pos])
	if isFloat {
		return l.makeToken(token.FloatLit, text, startPos, startCol, startLine)
	}
	return l.makeToken(token.IntLit, text, startPos, startCol, startLine)
}

func (l *Lexer) stringLiteral(startPos, startCol, startLine int) token.Token {
	var sb strings.Builder
	for !l.isAtEnd() && l.peek() != '"' {
		ch := l.advance()
		if ch == '\\' && !l.isAtEnd() {
			sb.WriteRune('\\')
			sb.WriteRune(l.advance())
			continue
		}
		if ch == '\n' {
			l.bag.Errorf(l.makeToken(token.EOF, "", startPos, startCol, startLine),
				"unterminated string literal")
			return l.makeToken(token.StringLit, sb.String(), startPos, startCol, startLine)
		}
		sb.WriteRune(ch)
	}
	if l.isAtEnd() {
		l.bag.Errorf(l.makeToken(token.EOF, "", startPos, startCol, startLine),
			"unterminated string literal")
	} else {
		l.advance() // closing quote
	}
	return l.makeToken(token.StringLit, sb.String(), startPos, startCol, startLine)
}

func (l *Lexer) charLiteral(startPos, startCol, startLine int) token.Token {
	var sb strings.Builder
	for !l.isAtEnd() && l.peek() != '\'' {
		ch := l.advance()
		if ch == '\\' && !l.isAtEnd() {
			sb.WriteRune('\\')
			sb.WriteRune(l.advance())
			continue
		}
		sb.WriteRune(ch)
	}
	if l.isAtEnd() {
		l.bag.Errorf(l.makeToken(token.EOF, "", startPos, startCol, startLine),
			"unterminated character literal")
	} else {
		l.advance() // closing quote
	}
	return l.makeToken(token.CharLit, sb.String(), startPos, startCol, startLine)
}
