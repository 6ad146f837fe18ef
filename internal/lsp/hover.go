package lsp

import (
	"encoding/json"
	"strings"

	"sbasic/internal/library"
	"sbasic/internal/token"
)

func (s *Server) handleHover(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, buildHover(snap, s.libs, params.Position))
}

// buildHover describes the identifier under the cursor: a library, a library
// member (from the registry) or a submodule.
func buildHover(snap *snapshot, libs *library.Registry, pos position) *hover {
	idx := snap.tokenAt(pos)
	tok, ok := snap.token(idx)
	if !ok || tok.Kind != token.Identifier {
		return nil
	}

	var text string
	if lib, ok := qualifier(snap, idx, libs); ok {
		text = memberDoc(lib, tok.Text)
	} else if lib, ok := libs.Library(tok.Text); ok {
		text = libraryDoc(lib)
	} else if subDefinition(snap, tok.Text) != nil && !isQualified(snap, idx) {
		text = "```sbasic\nSub " + tok.Text + "\n```"
	}
	if text == "" {
		return nil
	}
	r := snap.lspRange(tok.Range)
	return &hover{
		Contents: markupContent{Kind: "markdown", Value: text},
		Range:    &r,
	}
}

// qualifier returns the library of a "Lib.member" access ending at token idx.
func qualifier(snap *snapshot, idx int, libs *library.Registry) (*library.Library, bool) {
	if !isQualified(snap, idx) {
		return nil, false
	}
	base, _ := snap.token(idx - 2)
	return libs.Library(base.Text)
}

func isQualified(snap *snapshot, idx int) bool {
	dot, okDot := snap.token(idx - 1)
	base, okBase := snap.token(idx - 2)
	cur, _ := snap.token(idx)
	return okDot && okBase && dot.Kind == token.Dot && base.Kind == token.Identifier &&
		dot.Range.Line == cur.Range.Line && base.Range.Line == cur.Range.Line
}

func libraryDoc(lib *library.Library) string {
	var sb strings.Builder
	sb.WriteString("**" + lib.Name + "**")
	if lib.Description != "" {
		sb.WriteString("\n\n" + lib.Description)
	}
	return sb.String()
}

func memberDoc(lib *library.Library, name string) string {
	if m, ok := lib.Method(name); ok {
		var sb strings.Builder
		sb.WriteString("```sbasic\n" + lib.Name + "." + m.Signature() + "\n```")
		if m.Description != "" {
			sb.WriteString("\n\n" + m.Description)
		}
		if m.ReturnsValue {
			sb.WriteString("\n\nReturns a value.")
		}
		return sb.String()
	}
	if p, ok := lib.Property(name); ok {
		var sb strings.Builder
		sb.WriteString("```sbasic\n" + lib.Name + "." + p.Name + "\n```")
		if p.Description != "" {
			sb.WriteString("\n\n" + p.Description)
		}
		sb.WriteString("\n\n" + accessNote(p))
		return sb.String()
	}
	return ""
}

func accessNote(p *library.Property) string {
	switch {
	case p.HasGetter && p.HasSetter:
		return "Read/write property."
	case p.HasSetter:
		return "Write-only property."
	default:
		return "Read-only property."
	}
}
