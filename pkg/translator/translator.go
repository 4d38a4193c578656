// Package translator wires the passes into one entry point: source text in,
// generated text or diagnostics out. Every call builds fresh lexer, parser,
// analyzer and generator instances, so concurrent callers never share state.
package translator

import (
	"github.com/Kashinulala/j2py/pkg/analyzer"
	"github.com/Kashinulala/j2py/pkg/codegen"
	"github.com/Kashinulala/j2py/pkg/config"
	"github.com/Kashinulala/j2py/pkg/diag"
	"github.com/Kashinulala/j2py/pkg/lexer"
	"github.com/Kashinulala/j2py/pkg/parser"
)

// Result carries the outcome of one translation call. Code is empty
// whenever Diagnostics contains at least one error.
type Result struct {
	Code        string
	Diagnostics *diag.Bag
}

// Translate runs the full pipeline over source. A nil cfg uses the
// defaults.
func Translate(source string, cfg *config.Config) *Result {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	bag := diag.NewBag()

	toks := lexer.NewLexer(source, bag).Tokenize()
	if bag.HasErrors() {
		return &Result{Diagnostics: bag}
	}

	root := parser.NewParser(toks, bag).ParseCompilationUnit()
	if bag.HasErrors() {
		return &Result{Diagnostics: bag}
	}

	an := analyzer.NewAnalyzer(cfg, bag)
	an.Analyze(root)
	if bag.HasErrors() {
		return &Result{Diagnostics: bag}
	}

	code := codegen.NewGenerator(cfg, an.TypeSnapshot()).Generate(root)
	return &Result{Code: code, Diagnostics: bag}
}
