package token

import (
	"sbasic/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind  Kind
	Text  string
	Range source.Range
}

// IsMissing reports whether the token was synthesised during recovery.
func (t Token) IsMissing() bool { return t.Kind == Missing }

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Identifier }

// MissingAt synthesises a recovery token at r.
func MissingAt(r source.Range) Token {
	return Token{Kind: Missing, Range: r}
}

// IsUnterminatedString reports a string literal that ran into the end of its line.
func (t Token) IsUnterminatedString() bool {
	return t.Kind == StringLiteral && (len(t.Text) < 2 || t.Text[len(t.Text)-1] != '"')
}
