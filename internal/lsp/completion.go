package lsp

import (
	"encoding/json"
	"strings"

	"sbasic/internal/library"
	"sbasic/internal/token"
)

func (s *Server) handleCompletion(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil {
		return s.sendResponse(msg.ID, completionList{Items: []completionItem{}})
	}
	return s.sendResponse(msg.ID, buildCompletion(snap, s.libs, params.Position))
}

// buildCompletion offers library members after "Lib." and otherwise library
// names, submodules and keywords matching the word before the cursor.
func buildCompletion(snap *snapshot, libs *library.Registry, pos position) completionList {
	line := int(pos.Line)
	col := byteColumn(snap.line(line), pos.Character)

	// последний токен строки, закончившийся до курсора
	last := -1
	for i, tok := range snap.comp.Tokens {
		if tok.Range.Line > line || (tok.Range.Line == line && tok.Range.End > col) {
			break
		}
		if tok.Range.Line == line {
			last = i
		}
	}

	prefix := ""
	dotIdx := -1
	if tok, ok := snap.token(last); ok {
		switch {
		case tok.Kind == token.Dot && tok.Range.End == col:
			dotIdx = last
		case tok.Kind == token.Identifier && tok.Range.End == col:
			prefix = tok.Text
			if prev, ok := snap.token(last - 1); ok && prev.Kind == token.Dot && prev.Range.Line == line && prev.Range.End == tok.Range.Start {
				dotIdx = last - 1
			}
		}
	}

	if dotIdx >= 0 {
		base, ok := snap.token(dotIdx - 1)
		if !ok || base.Kind != token.Identifier || base.Range.Line != line {
			return completionList{Items: []completionItem{}}
		}
		lib, ok := libs.Library(base.Text)
		if !ok {
			return completionList{Items: []completionItem{}}
		}
		return completionList{Items: memberItems(lib, prefix)}
	}
	return completionList{Items: topLevelItems(snap, libs, prefix)}
}

func memberItems(lib *library.Library, prefix string) []completionItem {
	items := make([]completionItem, 0, len(lib.Methods)+len(lib.Properties))
	for _, name := range lib.MethodNames() {
		if !hasPrefixFold(name, prefix) {
			continue
		}
		m, _ := lib.Method(name)
		items = append(items, completionItem{
			Label:         name,
			Kind:          completionKindMethod,
			Detail:        lib.Name + "." + m.Signature(),
			Documentation: docOrNil(m.Description),
		})
	}
	for _, name := range lib.PropertyNames() {
		if !hasPrefixFold(name, prefix) {
			continue
		}
		p, _ := lib.Property(name)
		items = append(items, completionItem{
			Label:         name,
			Kind:          completionKindProperty,
			Detail:        accessNote(p),
			Documentation: docOrNil(p.Description),
		})
	}
	return items
}

var completionKeywords = []token.Kind{
	token.KwIf, token.KwThen, token.KwElse, token.KwElseIf, token.KwEndIf,
	token.KwFor, token.KwTo, token.KwStep, token.KwEndFor,
	token.KwWhile, token.KwEndWhile, token.KwGoTo,
	token.KwSub, token.KwEndSub, token.KwAnd, token.KwOr,
}

func topLevelItems(snap *snapshot, libs *library.Registry, prefix string) []completionItem {
	items := make([]completionItem, 0, 32)
	for _, name := range libs.Names() {
		if !hasPrefixFold(name, prefix) {
			continue
		}
		lib, _ := libs.Library(name)
		items = append(items, completionItem{Label: name, Kind: completionKindModule, Documentation: docOrNil(lib.Description)})
	}
	if snap.comp.ParseTree != nil {
		seen := make(map[string]bool)
		for _, sub := range snap.comp.ParseTree.SubModules {
			name := subName(sub)
			if name == "" || seen[name] || !hasPrefixFold(name, prefix) {
				continue
			}
			seen[name] = true
			items = append(items, completionItem{Label: name, Kind: completionKindFunction, Detail: "Sub " + name})
		}
	}
	for _, kw := range completionKeywords {
		if hasPrefixFold(kw.String(), prefix) {
			items = append(items, completionItem{Label: kw.String(), Kind: completionKindKeyword})
		}
	}
	return items
}

func hasPrefixFold(name, prefix string) bool {
	return len(name) >= len(prefix) && strings.EqualFold(name[:len(prefix)], prefix)
}

func docOrNil(text string) *markupContent {
	if text == "" {
		return nil
	}
	return &markupContent{Kind: "markdown", Value: text}
}
