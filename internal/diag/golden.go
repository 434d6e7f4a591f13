package diag

import (
	"fmt"
	"sort"
	"strings"

	"fullpub/internal/source"
)

type goldenDiagnostic struct {
	Severity string
	Code     string
	Path     string
	Line     uint32
	Column   uint32
	Message  string
}

// FormatShortDiagnostics renders diagnostics one per line in a stable
// order, suitable for golden files and CLI short output.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	rendered := make([]goldenDiagnostic, 0, len(diags))
	for _, d := range diags {
		start, _ := fs.Resolve(d.Primary)
		file := fs.Get(d.Primary.File)
		rendered = append(rendered, goldenDiagnostic{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Path:     file.FormatPath("relative", fs.BaseDir()),
			Line:     start.Line,
			Column:   start.Col,
			Message:  d.Message,
		})
		if includeNotes {
			for _, n := range d.Notes {
				nStart, _ := fs.Resolve(n.Span)
				nFile := fs.Get(n.Span.File)
				rendered = append(rendered, goldenDiagnostic{
					Severity: "NOTE",
					Code:     d.Code.ID(),
					Path:     nFile.FormatPath("relative", fs.BaseDir()),
					Line:     nStart.Line,
					Column:   nStart.Col,
					Message:  n.Msg,
				})
			}
		}
	}

	sort.SliceStable(rendered, func(i, j int) bool {
		di, dj := rendered[i], rendered[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Column != dj.Column {
			return di.Column < dj.Column
		}
		if di.Severity != dj.Severity {
			return di.Severity < dj.Severity
		}
		return di.Code < dj.Code
	})

	var sb strings.Builder
	for _, g := range rendered {
		fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", g.Path, g.Line, g.Column, g.Severity, g.Code, g.Message)
	}
	return sb.String()
}
