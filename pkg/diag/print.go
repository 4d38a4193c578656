package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
)

// Fprint writes diagnostics in compiler style: "file:line:col: error: msg",
// followed by the offending source line and a caret when source is available.
func Fprint(w io.Writer, filename string, source string, diags []Diagnostic, colorize bool) {
	lines := strings.Split(source, "\n")
	for _, d := range diags {
		label := d.Severity.String() + ":"
		if colorize {
			if d.Severity == SevError {
				label = errColor.Sprint(label)
			} else {
				label = warnColor.Sprint(label)
			}
		}
		fmt.Fprintf(w, "%s:%d:%d: %s %s\n", filename, d.Line, d.Column, label, d.Message)
		if d.Line >= 1 && d.Line <= len(lines) {
			src := lines[d.Line-1]
			fmt.Fprintf(w, "  %s\n", src)
			if d.Column >= 1 && d.Column <= len(src)+1 {
				fmt.Fprintf(w, "  %s^\n", strings.Repeat(" ", d.Column-1))
			}
		}
	}
}
