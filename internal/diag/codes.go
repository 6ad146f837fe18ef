package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	UnrecognizedCharacter     Code = 1001
	UnterminatedStringLiteral Code = 1002

	// Разбор команд (одна строка)
	UnexpectedTokenExpectingExpression Code = 2001
	UnexpectedTokenExpectingToken      Code = 2002
	UnexpectedTokenExpectingEOL        Code = 2003
	UnexpectedEOLExpectingExpression   Code = 2004
	UnexpectedEOLExpectingToken        Code = 2005

	// Разбор блоков
	UnexpectedCommandExpectingCommand       Code = 2101
	UnexpectedEOFExpectingCommand           Code = 2102
	CannotDefineASubInsideAnotherSub        Code = 2103
	CannotHaveCommandWithoutPreviousCommand Code = 2104

	// Связывание
	TwoSubModulesWithTheSameName   Code = 3001
	LabelDoesNotExist              Code = 3002
	InvalidExpressionStatement     Code = 3003
	UnsupportedArrayBaseExpression Code = 3004
	UnsupportedCallBaseExpression  Code = 3005
	UnexpectedArgumentsCount       Code = 3006
	PropertyHasNoSetter            Code = 3007
	UnsupportedDotBaseExpression   Code = 3008
	LibraryMemberNotFound          Code = 3009
	ValueIsNotANumber              Code = 3010
	ValueIsNotAssignable           Code = 3011
	UnexpectedVoidExpectingValue   Code = 3012
)

// codeNames holds the stable names used as template keys and in dumps.
var codeNames = map[Code]string{
	UnknownCode:                             "Unknown",
	UnrecognizedCharacter:                   "UnrecognizedCharacter",
	UnterminatedStringLiteral:               "UnterminatedStringLiteral",
	UnexpectedTokenExpectingExpression:      "UnexpectedToken_ExpectingExpression",
	UnexpectedTokenExpectingToken:           "UnexpectedToken_ExpectingToken",
	UnexpectedTokenExpectingEOL:             "UnexpectedToken_ExpectingEOL",
	UnexpectedEOLExpectingExpression:        "UnexpectedEOL_ExpectingExpression",
	UnexpectedEOLExpectingToken:             "UnexpectedEOL_ExpectingToken",
	UnexpectedCommandExpectingCommand:       "UnexpectedCommand_ExpectingCommand",
	UnexpectedEOFExpectingCommand:           "UnexpectedEOF_ExpectingCommand",
	CannotDefineASubInsideAnotherSub:        "CannotDefineASubInsideAnotherSub",
	CannotHaveCommandWithoutPreviousCommand: "CannotHaveCommandWithoutPreviousCommand",
	TwoSubModulesWithTheSameName:            "TwoSubModulesWithTheSameName",
	LabelDoesNotExist:                       "LabelDoesNotExist",
	InvalidExpressionStatement:              "InvalidExpressionStatement",
	UnsupportedArrayBaseExpression:          "UnsupportedArrayBaseExpression",
	UnsupportedCallBaseExpression:           "UnsupportedCallBaseExpression",
	UnexpectedArgumentsCount:                "UnexpectedArgumentsCount",
	PropertyHasNoSetter:                     "PropertyHasNoSetter",
	UnsupportedDotBaseExpression:            "UnsupportedDotBaseExpression",
	LibraryMemberNotFound:                   "LibraryMemberNotFound",
	ValueIsNotANumber:                       "ValueIsNotANumber",
	ValueIsNotAssignable:                    "ValueIsNotAssignable",
	UnexpectedVoidExpectingValue:            "UnexpectedVoid_ExpectingValue",
}

// Codes returns every known code except UnknownCode, in numeric order.
func Codes() []Code {
	return []Code{
		UnrecognizedCharacter, UnterminatedStringLiteral,
		UnexpectedTokenExpectingExpression, UnexpectedTokenExpectingToken, UnexpectedTokenExpectingEOL,
		UnexpectedEOLExpectingExpression, UnexpectedEOLExpectingToken,
		UnexpectedCommandExpectingCommand, UnexpectedEOFExpectingCommand,
		CannotDefineASubInsideAnotherSub, CannotHaveCommandWithoutPreviousCommand,
		TwoSubModulesWithTheSameName, LabelDoesNotExist, InvalidExpressionStatement,
		UnsupportedArrayBaseExpression, UnsupportedCallBaseExpression, UnexpectedArgumentsCount,
		PropertyHasNoSetter, UnsupportedDotBaseExpression, LibraryMemberNotFound,
		ValueIsNotANumber, ValueIsNotAssignable, UnexpectedVoidExpectingValue,
	}
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	}
	return "E0000"
}

// Name returns the stable name of the code, e.g. "LabelDoesNotExist".
func (c Code) Name() string {
	name, ok := codeNames[c]
	if !ok {
		return codeNames[UnknownCode]
	}
	return name
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Name())
}

// CodeByName resolves a stable name back to its code.
func CodeByName(name string) (Code, bool) {
	for c, n := range codeNames {
		if n == name && c != UnknownCode {
			return c, true
		}
	}
	return UnknownCode, false
}
