// Package rewrite implements the fullpub expansion: items annotated
// @fullpub have every member visibility slot flipped to pub, except
// members opted out with an @fullpub(exclude) marker. The result is a
// list of text edits against the original byte buffer, so untouched
// syntax survives byte-for-byte. Any failure is terminal for the
// annotated item: diagnostics are reported and no edits are returned.
package rewrite
