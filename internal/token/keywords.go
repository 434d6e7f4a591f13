package token

var keywords = map[string]Kind{
	"struct": KwStruct,
	"enum":   KwEnum,
	"union":  KwUnion,
	"impl":   KwImpl,
	"mod":    KwMod,
	"fn":     KwFn,
	"const":  KwConst,
	"type":   KwType,
	"let":    KwLet,
	"static": KwStatic,
	"import": KwImport,
	"as":     KwAs,
	"pub":    KwPub,
	"true":   KwTrue,
	"false":  KwFalse,
}

// LookupKeyword returns the keyword kind for an identifier, if any.
// Keywords are case-sensitive; only lowercase forms are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
