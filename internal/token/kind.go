package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Missing marks a token synthesised during error recovery.
	Missing Kind = iota
	// Unrecognized is a character the scanner could not classify.
	Unrecognized
	// Comment is a ' comment running to the end of the line.
	Comment

	// Identifier represents a name.
	Identifier
	// NumberLiteral represents digits with an optional fractional part.
	NumberLiteral
	// StringLiteral represents a double-quoted string, possibly unterminated.
	StringLiteral

	KwIf       // If
	KwThen     // Then
	KwElse     // Else
	KwElseIf   // ElseIf
	KwEndIf    // EndIf
	KwFor      // For
	KwTo       // To
	KwStep     // Step
	KwEndFor   // EndFor
	KwGoTo     // GoTo
	KwWhile    // While
	KwEndWhile // EndWhile
	KwSub      // Sub
	KwEndSub   // EndSub
	KwOr       // Or
	KwAnd      // And

	Dot                // .
	Comma              // ,
	Colon              // :
	LeftParen          // (
	RightParen         // )
	LeftSquareBracket  // [
	RightSquareBracket // ]
	Equal              // =
	NotEqual           // <>
	LessThan           // <
	GreaterThan        // >
	LessThanOrEqual    // <=
	GreaterThanOrEqual // >=
	Plus               // +
	Minus              // -
	Multiply           // *
	Divide             // /

	kindCount
)

// IsKeyword reports whether k is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwIf && k <= KwAnd
}

// IsTrivia reports whether tokens of kind k are dropped before command parsing.
func (k Kind) IsTrivia() bool {
	return k == Comment || k == Unrecognized
}
