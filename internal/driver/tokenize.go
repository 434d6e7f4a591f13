package driver

import (
	"fullpub/internal/diag"
	"fullpub/internal/lexer"
	"fullpub/internal/source"
	"fullpub/internal/token"
)

// Tokenize lexes one loaded file into its full token stream, EOF
// included. Used by the tokenize debug command.
func Tokenize(fileSet *source.FileSet, fileID source.FileID, maxDiagnostics int) ([]token.Token, *diag.Bag) {
	file := fileSet.Get(fileID)
	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return tokens, bag
}
