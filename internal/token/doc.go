// Package token defines lexical token kinds for the language.
// Invariants:
//   - Token.Text is a slice of the original line (no copies, no case folding).
//   - Token.Range matches Text exactly on a single line.
//   - Keywords are recognised case-insensitively; Text keeps the source casing.
//   - Missing is never produced by the scanner, only synthesised by the parser.
package token
