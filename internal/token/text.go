package token

import "fmt"

// kindText is the one table of display strings for token kinds. Diagnostics
// that name a kind (and command kinds, through their leading keyword) use it.
var kindText = [kindCount]string{
	Missing:            "missing token",
	Unrecognized:       "unrecognized token",
	Comment:            "comment",
	Identifier:         "identifier",
	NumberLiteral:      "number",
	StringLiteral:      "string",
	KwIf:               "If",
	KwThen:             "Then",
	KwElse:             "Else",
	KwElseIf:           "ElseIf",
	KwEndIf:            "EndIf",
	KwFor:              "For",
	KwTo:               "To",
	KwStep:             "Step",
	KwEndFor:           "EndFor",
	KwGoTo:             "GoTo",
	KwWhile:            "While",
	KwEndWhile:         "EndWhile",
	KwSub:              "Sub",
	KwEndSub:           "EndSub",
	KwOr:               "Or",
	KwAnd:              "And",
	Dot:                ".",
	Comma:              ",",
	Colon:              ":",
	LeftParen:          "(",
	RightParen:         ")",
	LeftSquareBracket:  "[",
	RightSquareBracket: "]",
	Equal:              "=",
	NotEqual:           "<>",
	LessThan:           "<",
	GreaterThan:        ">",
	LessThanOrEqual:    "<=",
	GreaterThanOrEqual: ">=",
	Plus:               "+",
	Minus:              "-",
	Multiply:           "*",
	Divide:             "/",
}

var kindNames = [kindCount]string{
	Missing:            "Missing",
	Unrecognized:       "Unrecognized",
	Comment:            "Comment",
	Identifier:         "Identifier",
	NumberLiteral:      "NumberLiteral",
	StringLiteral:      "StringLiteral",
	Dot:                "Dot",
	Comma:              "Comma",
	Colon:              "Colon",
	LeftParen:          "LeftParen",
	RightParen:         "RightParen",
	LeftSquareBracket:  "LeftSquareBracket",
	RightSquareBracket: "RightSquareBracket",
	Equal:              "Equal",
	NotEqual:           "NotEqual",
	LessThan:           "LessThan",
	GreaterThan:        "GreaterThan",
	LessThanOrEqual:    "LessThanOrEqual",
	GreaterThanOrEqual: "GreaterThanOrEqual",
	Plus:               "Plus",
	Minus:              "Minus",
	Multiply:           "Multiply",
	Divide:             "Divide",
}

// Text returns the display string used when a diagnostic names the kind.
func (k Kind) Text() string {
	if k >= kindCount {
		panic(fmt.Sprintf("token: unknown kind %d", k))
	}
	return kindText[k]
}

// String returns the stable identifier of the kind used in dumps.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", k)
	}
	if k.IsKeyword() {
		return kindText[k]
	}
	return kindNames[k]
}
