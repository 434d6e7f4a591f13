// Package token defines lexical token kinds and trivia for declaration files.
// Invariants:
//   - Token.Text is the exact source text of the token (no trimming).
//   - Token.Span matches Text exactly (Start..End).
//   - Attributes are lexed as '@' (Kind: At) + Ident; no per-attribute token kinds.
//   - Comments and whitespace never appear in the main token stream; they are
//     attached to the following token as leading Trivia.
package token
