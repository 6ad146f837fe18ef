package diag

import (
	"strings"

	"sbasic/internal/source"
)

// FormatGolden renders diagnostics one per line in discovery order:
//
//	SEM3006 1:1-23 UnexpectedArgumentsCount("1", "0")
//
// Positions are 1-based. The format carries no localized text so it stays
// stable for golden comparisons.
func FormatGolden(items []Diagnostic) string {
	if len(items) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, d := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		start, end := source.Resolve(d.Range)
		sb.WriteString(d.Code.ID())
		sb.WriteByte(' ')
		sb.WriteString(formatUint(start.Line))
		sb.WriteByte(':')
		sb.WriteString(formatUint(start.Col))
		sb.WriteByte('-')
		sb.WriteString(formatUint(end.Col))
		sb.WriteByte(' ')
		sb.WriteString(d.Code.Name())
		sb.WriteByte('(')
		for j, a := range d.Args {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(quote(a))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

func formatUint(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
