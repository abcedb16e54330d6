package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	infoColor    = color.New(color.FgCyan)
	warningColor = color.New(color.FgYellow, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Render writes the bag's diagnostics in a human-readable form, one
// per line, sorted and deduplicated. Color honors the package-level
// color.NoColor setting.
func Render(w io.Writer, b *Bag) {
	b.Dedup()
	b.Sort()
	for _, d := range b.Items() {
		label := d.Severity.String()
		switch d.Severity {
		case SevWarning:
			label = warningColor.Sprint(label)
		case SevError:
			label = errorColor.Sprint(label)
		default:
			label = infoColor.Sprint(label)
		}
		loc := d.Module
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", d.Module, d.Line)
		}
		fmt.Fprintf(w, "%s %s [%s]: %s\n", label, loc, d.Code, d.Message)
	}
}
