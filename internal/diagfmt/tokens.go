package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"sbasic/internal/source"
	"sbasic/internal/token"
)

type TokenOutput struct {
	Kind     string `json:"kind"`
	Text     string `json:"text,omitempty"`
	Line     uint32 `json:"line"`
	StartCol uint32 `json:"start_col"`
	EndCol   uint32 `json:"end_col"`
}

// FormatTokensPretty выводит токены в человекочитаемом формате
func FormatTokensPretty(w io.Writer, tokens []token.Token) error {
	for i, tok := range tokens {
		start, end := source.Resolve(tok.Range)
		if _, err := fmt.Fprintf(w, "%3d: %-18s %-24q at %d:%d-%d\n", i+1, tok.Kind.String(), tok.Text, start.Line, start.Col, end.Col); err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	output := make([]TokenOutput, 0, len(tokens))
	for _, tok := range tokens {
		start, end := source.Resolve(tok.Range)
		output = append(output, TokenOutput{
			Kind:     tok.Kind.String(),
			Text:     tok.Text,
			Line:     start.Line,
			StartCol: start.Col,
			EndCol:   end.Col,
		})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
