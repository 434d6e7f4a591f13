package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fullpub/internal/source"
	"fullpub/internal/token"
)

// TokenOutput is one token in the tokenize command's JSON output.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Class   string      `json:"class"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

// tokenClass buckets a token for display: its kind string already
// carries the detail, the class is the coarse grouping.
func tokenClass(tok token.Token) string {
	switch {
	case tok.IsKeyword():
		return "keyword"
	case tok.IsLiteral():
		return "literal"
	case tok.IsIdent():
		return "ident"
	default:
		return "punct"
	}
}

// FormatTokensPretty writes a human-readable token dump.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		startPos, endPos := fs.Resolve(tok.Span)

		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		// keywords and punctuation repeat their kind string as text
		if tok.Text != "" && (tok.IsIdent() || tok.IsLiteral()) {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d",
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as JSON.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var output []TokenOutput

	for _, tok := range tokens {
		var leading []string
		for _, trivia := range tok.Leading {
			leading = append(leading, trivia.Kind.String())
		}

		output = append(output, TokenOutput{
			Kind:    tok.Kind.String(),
			Class:   tokenClass(tok),
			Text:    tok.Text,
			Span:    tok.Span,
			Leading: leading,
		})

		if tok.Kind == token.EOF {
			break
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
