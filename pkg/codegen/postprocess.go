package codegen

import (
	"github.com/dlclark/regexp2"
)

// The fix-up stage runs over the generated text, not the tree. The patterns
// are line-agnostic and can misfire on nested expressions that contain
// literal commas or quotes; that is a known limitation of the stage, which
// is why it can be switched off.
var (
	printlnRe = regexp2.MustCompile(`System\.out\.println\((.*?)\)`, regexp2.None)
	printRe   = regexp2.MustCompile(`System\.out\.print\((.*?)\)`, regexp2.None)

	// `"lit" + expr` needs an explicit conversion on the non-string side.
	// The lookahead keeps already-wrapped operands from being wrapped twice,
	// and string literals on the right concatenate natively.
	concatRe = regexp2.MustCompile(
		`("(?:[^"\\]|\\.)*")\s*\+\s*(?!str\()(?!")([A-Za-z_][A-Za-z0-9_]*(?:\([^()]*\)|\[[^\]]*\])?)`,
		regexp2.None)
)

// Postprocess applies the textual substitutions: print-call idioms become
// the target's print forms, and string-literal concatenation wraps its
// right operand in a to-string conversion.
func Postprocess(text string) string {
	text = replaceAll(concatRe, text, `$1 + str($2)`)
	text = replaceAll(printlnRe, text, `print($1)`)
	text = replaceAll(printRe, text, `print($1, end="")`)
	return text
}

func replaceAll(re *regexp2.Regexp, text, replacement string) string {
	out, err := re.Replace(text, replacement, -1, -1)
	if err != nil {
		// Replacement over an already-matched pattern cannot fail in
		// practice; keep the text untouched if it ever does.
		return text
	}
	return out
}
