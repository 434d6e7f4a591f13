// Package edit applies text edits produced by the rewrite to file
// buffers. Edits are applied right to left against original byte
// offsets, so spans never need shifting, with OldText guards and
// overlap detection catching anything a buggy producer could emit.
package edit

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"fullpub/internal/diag"
	"fullpub/internal/source"
)

// ErrNoEdits is returned when there is nothing to apply.
var ErrNoEdits = errors.New("no edits to apply")

// Apply returns a fresh buffer with the edits applied to the file's
// content. The input file and edits are not modified.
func Apply(file *source.File, edits []diag.TextEdit) ([]byte, error) {
	if len(edits) == 0 {
		return nil, ErrNoEdits
	}

	sorted := make([]diag.TextEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Span.Start == sorted[j].Span.Start {
			return sorted[i].Span.End > sorted[j].Span.End
		}
		return sorted[i].Span.Start > sorted[j].Span.Start
	})

	for i := 0; i+1 < len(sorted); i++ {
		if spansConflict(sorted[i+1], sorted[i]) {
			return nil, fmt.Errorf("edit: conflicting edits at %s and %s",
				sorted[i+1].Span.String(), sorted[i].Span.String())
		}
	}

	working := append([]byte(nil), file.Content...)
	for _, e := range sorted {
		if e.Span.File != file.ID {
			return nil, fmt.Errorf("edit: edit targets file %d, buffer is file %d", e.Span.File, file.ID)
		}
		start, end := int(e.Span.Start), int(e.Span.End)
		if end < start || end > len(working) {
			return nil, fmt.Errorf("edit: span %s out of range", e.Span.String())
		}
		if e.OldText != "" && string(working[start:end]) != e.OldText {
			return nil, fmt.Errorf("edit: text at %s does not match expected content", e.Span.String())
		}
		suffix := append([]byte(nil), working[end:]...)
		working = append(append(working[:start], []byte(e.NewText)...), suffix...)
	}
	return working, nil
}

// WriteFile applies the edits and writes the result back to the file's
// path, preserving its mode. Virtual files cannot be written.
func WriteFile(fs *source.FileSet, fileID source.FileID, edits []diag.TextEdit) error {
	file := fs.Get(fileID)
	if file.Flags&source.FileVirtual != 0 {
		return fmt.Errorf("edit: %s is a virtual file", file.Path)
	}

	buf, err := Apply(file, edits)
	if err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(file.Path); statErr == nil {
		mode = info.Mode()
	}
	if err := os.WriteFile(file.Path, buf, mode); err != nil {
		return fmt.Errorf("write %s: %w", file.Path, err)
	}
	return nil
}

// spansConflict reports whether two edits' spans overlap. Spans are
// half-open [Start, End). Two zero-length inserts never conflict; a
// zero-length insert conflicts with a replacement covering its position.
func spansConflict(a, b diag.TextEdit) bool {
	aStart, aEnd := a.Span.Start, a.Span.End
	bStart, bEnd := b.Span.Start, b.Span.End

	if aStart == aEnd && bStart == bEnd {
		return false
	}
	if aStart == aEnd {
		return bStart <= aStart && aStart < bEnd
	}
	if bStart == bEnd {
		return aStart <= bStart && bStart < aEnd
	}
	return aStart < bEnd && bStart < aEnd
}
