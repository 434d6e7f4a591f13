package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"fullpub/internal/diag"
	"fullpub/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan, color.Bold)
	noteColor = color.New(color.Faint)
)

// Pretty renders diagnostics in a human-readable form. The bag should
// be sorted beforehand. For each diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//
// followed by the source line with a ^~~~ underline over the span, and
// notes in the same layout when enabled.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d, opts)
		writeSnippet(w, fs, d.Primary)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				loc := formatLocation(fs, n.Span, opts.PathMode)
				label := "note"
				if opts.Color {
					label = noteColor.Sprint(label)
				}
				fmt.Fprintf(w, "%s: %s: %s\n", loc, label, n.Msg)
				writeSnippet(w, fs, n.Span)
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, d diag.Diagnostic, opts PrettyOpts) {
	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		c := severityColor(d.Severity)
		sev = c.Sprint(sev)
		code = c.Sprint(code)
	}
	fmt.Fprintf(w, "%s: %s %s: %s\n", formatLocation(fs, d.Primary, opts.PathMode), sev, code, d.Message)
}

// writeSnippet prints the first source line of the span with an
// underline. Spans past the buffer (or in empty files) print nothing.
func writeSnippet(w io.Writer, fs *source.FileSet, sp source.Span) {
	start, _ := fs.Resolve(sp)
	file := fs.Get(sp.File)
	line := file.GetLine(start.Line)
	if line == "" && start.Col > 1 {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)
	fmt.Fprintf(w, "  %s\n", underline(line, start.Col, sp.Len()))
}

// underline builds the ^~~~ marker aligned under the span's column.
// Tabs in the prefix are copied so the marker lines up under tabbed
// indentation.
func underline(line string, col, spanLen uint32) string {
	var b strings.Builder

	prefixEnd := int(col) - 1
	if prefixEnd > len(line) {
		prefixEnd = len(line)
	}
	for _, r := range line[:prefixEnd] {
		if r == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
		}
	}

	covered := int(spanLen)
	if rest := len(line) - prefixEnd; covered > rest {
		covered = rest
	}
	width := 1
	if covered > 1 {
		width = runewidth.StringWidth(line[prefixEnd : prefixEnd+covered])
	}

	b.WriteByte('^')
	if width > 1 {
		b.WriteString(strings.Repeat("~", width-1))
	}
	return b.String()
}

func formatLocation(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
