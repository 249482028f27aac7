package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mehditeymorian/lrutil/internal/diagnostics"
)

// PrettyOptions configures terminal output.
type PrettyOptions struct {
	NoColor bool
}

// WritePretty prints diagnostics for a terminal. Multi-line messages, such
// as an error followed by its expected-token clause, are indented under
// the header line.
func WritePretty(w io.Writer, diags []diagnostics.Diagnostic, opts PrettyOptions) error {
	header := color.New(color.FgRed, color.Bold)
	location := color.New(color.FgCyan)
	hint := color.New(color.FgYellow)
	if opts.NoColor {
		header.DisableColor()
		location.DisableColor()
		hint.DisableColor()
	}

	for _, d := range diags {
		lines := strings.Split(d.Message, "\n")
		if _, err := fmt.Fprintf(w, "%s %s %s\n",
			header.Sprint("ERROR "+d.Code),
			location.Sprintf("%s:%d:%d", d.File, d.Line, d.Column),
			lines[0]); err != nil {
			return err
		}
		for _, line := range lines[1:] {
			if _, err := fmt.Fprintf(w, "  %s\n", line); err != nil {
				return err
			}
		}
		if d.Dropped > 0 {
			if _, err := fmt.Fprintf(w, "  recovered: dropped %d token(s)\n", d.Dropped); err != nil {
				return err
			}
		}
		if d.Hint != "" {
			if _, err := fmt.Fprintf(w, "  %s %s\n", hint.Sprint("hint:"), d.Hint); err != nil {
				return err
			}
		}
	}
	return nil
}
