package token

import "strings"

var keywords = map[string]Kind{
	"if":       KwIf,
	"then":     KwThen,
	"else":     KwElse,
	"elseif":   KwElseIf,
	"endif":    KwEndIf,
	"for":      KwFor,
	"to":       KwTo,
	"step":     KwStep,
	"endfor":   KwEndFor,
	"goto":     KwGoTo,
	"while":    KwWhile,
	"endwhile": KwEndWhile,
	"sub":      KwSub,
	"endsub":   KwEndSub,
	"or":       KwOr,
	"and":      KwAnd,
}

// LookupKeyword returns the keyword kind for ident, ignoring case.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[strings.ToLower(ident)]
	return k, ok
}
