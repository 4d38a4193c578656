package token

type Type int

const (
	EOF Type = iota
	Ident
	IntLit
	FloatLit
	CharLit
	StringLit

	// Keywords
	Class
	Public
	Private
	Protected
	Static
	Final
	Void
	If
	Else
	While
	Do
	For
	Switch
	Case
	Default
	Break
	Continue
	Return
	New
	Import
	True
	False
	Null
	Byte
	Short
	Int
	Long
	Float
	Double
	Char
	Boolean

	// Punctuation
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Semi
	Comma
	Colon
	Dot

	// Operators
	Eq
	PlusEq
	MinusEq
	StarEq
	SlashEq
	RemEq
	Plus
	Minus
	Star
	Slash
	Rem
	EqEq
	Neq
	Lt
	Gt
	Lte
	Gte
	AndAnd
	OrOr
	Not
	Inc
	Dec
)

var KeywordMap = map[string]Type{
	"class":     Class,
	"public":    Public,
	"private":   Private,
	"protected": Protected,
	"static":    Static,
	"final":     Final,
	"void":      Void,
	"if":        If,
	"else":      Else,
	"while":     While,
	"do":        Do,
	"for":       For,
	"switch":    Switch,
	"case":      Case,
	"default":   Default,
	"break":     Break,
	"continue":  Continue,
	"return":    Return,
	"new":       New,
	"import":    Import,
	"true":      True,
	"false":     False,
	"null":      Null,
	"byte":      Byte,
	"short":     Short,
	"int":       Int,
	"long":      Long,
	"float":     Float,
	"double":    Double,
	"char":      Char,
	"boolean":   Boolean,
}

// Reverse mapping from Type to the keyword string
var TypeStrings = make(map[Type]string)

func init() {
	for str, typ := range KeywordMap {
		TypeStrings[typ] = str
	}
}

type Token struct {
	Type   Type
	Value  string
	Line   int
	Column int
	Len    int
}

// OpText returns the source spelling of an operator token type. The generator
// leans on this when a statement has to be re-emitted in its original shape.
func OpText(t Type) string {
	switch t {
	case Eq:
		return "="
	case PlusEq:
		return "+="
	case MinusEq:
		return "-="
	case StarEq:
		return "*="
	case SlashEq:
		return "/="
	case RemEq:
		return "%="
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Rem:
		return "%"
	case EqEq:
		return "=="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	case Lte:
		return "<="
	case Gte:
		return ">="
	case AndAnd:
		return "&&"
	case OrOr:
		return "||"
	case Not:
		return "!"
	case Inc:
		return "++"
	case Dec:
		return "--"
	}
	return ""
}

// IsPrimitiveType reports whether t is one of the primitive type keywords.
func IsPrimitiveType(t Type) bool {
	switch t {
	case Byte, Short, Int, Long, Float, Double, Char, Boolean:
		return true
	}
	return false
}

// IsModifier reports whether t is a member modifier keyword.
func IsModifier(t Type) bool {
	switch t {
	case Public, Private, Protected, Static, Final:
		return true
	}
	return false
}
