package diagfmt

import (
	"encoding/json"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"sbasic/internal/source"
)

// LocationJSON представляет местоположение в файле; позиции 1-based.
type LocationJSON struct {
	File     string `json:"file" msgpack:"file"`
	Line     uint32 `json:"line" msgpack:"line"`
	StartCol uint32 `json:"start_col" msgpack:"start_col"`
	EndCol   uint32 `json:"end_col" msgpack:"end_col"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity" msgpack:"severity"`
	Code     string       `json:"code" msgpack:"code"`
	Name     string       `json:"name" msgpack:"name"`
	Message  string       `json:"message" msgpack:"message"`
	Args     []string     `json:"args,omitempty" msgpack:"args,omitempty"`
	Location LocationJSON `json:"location" msgpack:"location"`
}

// DiagnosticsOutput представляет корневую структуру вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" msgpack:"diagnostics"`
	Count       int              `json:"count" msgpack:"count"`
	Dropped     int              `json:"dropped,omitempty" msgpack:"dropped,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
// Severity and message are rendered through the catalog; code and name stay
// stable for tools.
func BuildDiagnosticsOutput(units []Unit, opts JSONOpts) DiagnosticsOutput {
	cat := catalogOrDefault(opts.Catalog)
	total := countDiagnostics(units)
	if opts.Max > 0 && opts.Max < total {
		total = opts.Max
	}
	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, total)}
	for _, u := range units {
		out.Dropped += u.Dropped
		path := FormatPath(u.Path, opts.PathMode, opts.BaseDir)
		for _, d := range u.Diagnostics {
			if len(out.Diagnostics) == total {
				out.Dropped++
				continue
			}
			start, end := source.Resolve(d.Range)
			out.Diagnostics = append(out.Diagnostics, DiagnosticJSON{
				Severity: d.Severity.String(),
				Code:     d.Code.ID(),
				Name:     d.Code.Name(),
				Message:  cat.Render(d),
				Args:     d.Args,
				Location: LocationJSON{
					File:     path,
					Line:     start.Line,
					StartCol: start.Col,
					EndCol:   end.Col,
				},
			})
		}
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON форматирует диагностики в JSON.
func JSON(w io.Writer, units []Unit, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(units, opts))
}

// Msgpack writes the same document as JSON, msgpack encoded.
func Msgpack(w io.Writer, units []Unit, opts JSONOpts) error {
	return msgpack.NewEncoder(w).Encode(BuildDiagnosticsOutput(units, opts))
}
