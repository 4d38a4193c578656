// Package diag holds the diagnostics produced by a translation run. Every
// error or warning carries the source position it was reported at; the bag
// keeps errors and warnings in the order they were produced.
package diag

import (
	"fmt"

	"github.com/Kashinulala/j2py/pkg/token"
)

type Severity int

const (
	SevError Severity = iota
	SevWarning
)

func (s Severity) String() string {
	switch s {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	}
	return "unknown"
}

type Diagnostic struct {
	Line     int      `json:"line"`
	Column   int      `json:"column"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s: %s", d.Line, d.Column, d.Severity, d.Message)
}

// Bag accumulates diagnostics for a single translation run. One bag per run;
// nothing here is shared between concurrent translations.
type Bag struct {
	errors   []Diagnostic
	warnings []Diagnostic
}

func NewBag() *Bag {
	return &Bag{}
}

func (b *Bag) Errorf(tok token.Token, format string, args ...interface{}) {
	b.errors = append(b.errors, Diagnostic{
		Line: tok.Line, Column: tok.Column,
		Message: fmt.Sprintf(format, args...), Severity: SevError,
	})
}

func (b *Bag) Warnf(tok token.Token, format string, args ...interface{}) {
	b.warnings = append(b.warnings, Diagnostic{
		Line: tok.Line, Column: tok.Column,
		Message: fmt.Sprintf(format, args...), Severity: SevWarning,
	})
}

func (b *Bag) HasErrors() bool { return len(b.errors) > 0 }

func (b *Bag) Errors() []Diagnostic   { return b.errors }
func (b *Bag) Warnings() []Diagnostic { return b.warnings }

// All returns errors followed by warnings, each in report order.
func (b *Bag) All() []Diagnostic {
	out := make([]Diagnostic, 0, len(b.errors)+len(b.warnings))
	out = append(out, b.errors...)
	out = append(out, b.warnings...)
	return out
}

// Merge appends the contents of other, preserving order within each severity.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	b.errors = append(b.errors, other.errors...)
	b.warnings = append(b.warnings, other.warnings...)
}
