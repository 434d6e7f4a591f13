package driver

import (
	"fmt"

	"fortio.org/safecast"

	"fullpub/internal/ast"
	"fullpub/internal/diag"
	"fullpub/internal/edit"
	"fullpub/internal/lexer"
	"fullpub/internal/parser"
	"fullpub/internal/rewrite"
	"fullpub/internal/source"
)

// FileResult is the outcome of expanding one declaration file.
type FileResult struct {
	Path    string
	FileID  source.FileID
	Bag     *diag.Bag
	Output  []byte // full rewritten buffer, nil when nothing changed
	Changed bool
	Cached  bool
}

// ExpandFile runs lex, parse, and rewrite over one loaded file. The
// file is not written; callers decide what to do with the buffer.
func ExpandFile(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics int) FileResult {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	result := FileResult{
		Path:   file.Path,
		FileID: fileID,
		Bag:    bag,
	}

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}

	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{})
	parsed := parser.ParseFile(lx, builder, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  reporter,
	})
	if bag.HasErrors() {
		return result
	}

	exp := rewrite.New(builder, file, reporter)
	edits, ok := exp.ExpandFile(parsed.File)
	if !ok || len(edits) == 0 {
		return result
	}

	out, applyErr := edit.Apply(file, edits)
	if applyErr != nil {
		bag.Add(diag.NewError(diag.UnknownCode, source.Span{File: fileID},
			"failed to apply edits: "+applyErr.Error()))
		return result
	}

	result.Output = out
	result.Changed = true
	return result
}
