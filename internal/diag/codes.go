package diag

import (
	"fmt"
)

type Code uint16

const (
	// UnknownCode is the fallback for unclassified failures.
	UnknownCode Code = 0

	// Lexical
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Syntactic
	SynUnexpectedToken   Code = 2001
	SynUnclosedDelimiter Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectBody        Code = 2004
	SynExpectColon       Code = 2005
	SynExpectSemicolon   Code = 2006
	SynAttributeArgs     Code = 2007
	SynDuplicateField    Code = 2008

	// Rewrite
	RwUnsupportedShape        Code = 3001
	RwMalformedMarker         Code = 3002
	RwDuplicateMarker         Code = 3003
	RwUnresolvedExclusionPath Code = 3004

	// Input/output
	IOLoadFileError  Code = 4001
	IOWriteFileError Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:                 "unknown error",
	LexUnknownChar:              "unknown character",
	LexUnterminatedString:       "unterminated string literal",
	LexUnterminatedBlockComment: "unterminated block comment",
	LexBadNumber:                "malformed numeric literal",
	SynUnexpectedToken:          "unexpected token",
	SynUnclosedDelimiter:        "unclosed delimiter",
	SynExpectIdentifier:         "expected identifier",
	SynExpectBody:               "expected declaration body",
	SynExpectColon:              "expected ':'",
	SynExpectSemicolon:          "expected ';'",
	SynAttributeArgs:            "malformed attribute arguments",
	SynDuplicateField:           "duplicate field",
	RwUnsupportedShape:          "item shape is not supported by the rewrite",
	RwMalformedMarker:           "malformed exclusion marker",
	RwDuplicateMarker:           "duplicate exclusion marker",
	RwUnresolvedExclusionPath:   "exclusion path does not resolve",
	IOLoadFileError:             "failed to load file",
	IOWriteFileError:            "failed to write file",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RW%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
