package parser

import (
	"sbasic/internal/token"
)

// binaryPrecedence перечисляет бинарные операторы от слабейшего к сильнейшему.
// Каждый оператор занимает свой уровень; все левоассоциативны.
var binaryPrecedence = [...]token.Kind{
	token.KwOr,
	token.KwAnd,
	token.Equal,
	token.NotEqual,
	token.LessThan,
	token.GreaterThan,
	token.LessThanOrEqual,
	token.GreaterThanOrEqual,
	token.Plus,
	token.Minus,
	token.Multiply,
	token.Divide,
}
