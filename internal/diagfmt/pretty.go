package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"sbasic/internal/diag"
	"sbasic/internal/source"
)

const tabWidth = 4

type palette struct {
	err, warning, info *color.Color
	path, gutter, caret *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warning: mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		path:    mk(color.Bold),
		gutter:  mk(color.FgBlue),
		caret:   mk(color.FgRed, color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warning
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ под диапазоном.
func Pretty(w io.Writer, units []Unit, opts PrettyOpts) error {
	cat := catalogOrDefault(opts.Catalog)
	pal := newPalette(opts.Color)
	var sb strings.Builder
	for _, u := range units {
		path := FormatPath(u.Path, opts.PathMode, opts.BaseDir)
		for _, d := range u.Diagnostics {
			start, _ := source.Resolve(d.Range)
			sb.WriteString(pal.path.Sprintf("%s:%d:%d:", path, start.Line, start.Col))
			sb.WriteByte(' ')
			sb.WriteString(pal.severity(d.Severity).Sprintf("%s %s", strings.ToUpper(cat.Severity(d.Severity)), d.Code.ID()))
			sb.WriteString(": ")
			sb.WriteString(cat.Render(d))
			sb.WriteByte('\n')
			writeSnippet(&sb, u, d.Range, opts.Context, pal)
		}
		if u.Dropped > 0 {
			fmt.Fprintf(&sb, "%s: %d more diagnostics not shown\n", path, u.Dropped)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSnippet(sb *strings.Builder, u Unit, r source.Range, context int, pal palette) {
	if r.Line < 0 || r.Line >= len(u.Lines) {
		return
	}
	first := max(r.Line-max(context, 0), 0)
	numWidth := len(fmt.Sprint(r.Line + 1))
	for n := first; n <= r.Line; n++ {
		sb.WriteString(pal.gutter.Sprintf("%*d | ", numWidth, n+1))
		sb.WriteString(expandTabs(u.line(n)))
		sb.WriteByte('\n')
	}
	pad, width := caretSpan(u.line(r.Line), r)
	sb.WriteString(pal.gutter.Sprintf("%*s | ", numWidth, ""))
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(pal.caret.Sprint("^" + strings.Repeat("~", width-1)))
	sb.WriteByte('\n')
}

// caretSpan переводит байтовые колонки в экранные: широкие руны занимают две клетки.
func caretSpan(line string, r source.Range) (pad, width int) {
	start := min(max(r.Start, 0), len(line))
	end := min(max(r.End, start), len(line))
	pad = runewidth.StringWidth(expandTabs(line[:start]))
	width = runewidth.StringWidth(expandTabs(line[start:end]))
	return pad, max(width, 1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// Short prints one line per diagnostic: path:line:col: severity CODE: message.
func Short(w io.Writer, units []Unit, opts PrettyOpts) error {
	cat := catalogOrDefault(opts.Catalog)
	var sb strings.Builder
	for _, u := range units {
		path := FormatPath(u.Path, opts.PathMode, opts.BaseDir)
		for _, d := range u.Diagnostics {
			start, _ := source.Resolve(d.Range)
			fmt.Fprintf(&sb, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, cat.Severity(d.Severity), d.Code.ID(), cat.Render(d))
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// Write dispatches on format.
func Write(w io.Writer, format Format, units []Unit, pretty PrettyOpts, jsonOpts JSONOpts) error {
	switch format {
	case FormatPretty, "":
		return Pretty(w, units, pretty)
	case FormatShort:
		return Short(w, units, pretty)
	case FormatJSON:
		return JSON(w, units, jsonOpts)
	case FormatMsgpack:
		return Msgpack(w, units, jsonOpts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}
