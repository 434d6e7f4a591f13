package lexer

import (
	"fullpub/internal/diag"
	"fullpub/internal/source"
)

type Options struct {
	// Reporter may be nil; a NopReporter is substituted and lexing
	// continues either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
}
