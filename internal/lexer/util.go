package lexer

import (
	"unicode"
	"unicode/utf8"
)

// peekRune decodes the rune at the cursor without advancing.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf { // ASCII fast path
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:])
	return r, sz
}

// bumpRune advances the cursor by one rune.
func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz <= 0 {
		sz = 1
	}
	lx.cursor.Off += uint32(sz)
}

func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || (b >= '0' && b <= '9')
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r)
}

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return isDec(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
