package lsp

import (
	"encoding/json"

	"sbasic/internal/ast"
	"sbasic/internal/token"
)

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params textDocumentPositionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil {
		return s.sendResponse(msg.ID, nil)
	}
	target := findDefinition(snap, params.Position)
	if target == nil {
		return s.sendResponse(msg.ID, nil)
	}
	return s.sendResponse(msg.ID, location{
		URI:   canonicalURI(params.TextDocument.URI),
		Range: snap.lspRange(target.Range),
	})
}

// findDefinition resolves a GoTo target to its label in the same module, or
// a submodule call to the Sub that defines it.
func findDefinition(snap *snapshot, pos position) *token.Token {
	idx := snap.tokenAt(pos)
	tok, ok := snap.token(idx)
	if !ok || tok.Kind != token.Identifier {
		return nil
	}
	module := -1
	var gotoModule *int
	for i, cmd := range snap.comp.Commands {
		switch cmd.Kind {
		case ast.CommandSub:
			module = i
		case ast.CommandEndSub:
			module = -1
		case ast.CommandGoTo:
			data := cmd.Data.(ast.GoToData)
			if data.Label.Range == tok.Range {
				m := module
				gotoModule = &m
			}
		}
	}
	if gotoModule != nil {
		return labelDefinition(snap, *gotoModule, tok.Text)
	}
	if isQualified(snap, idx) {
		return nil
	}
	return subDefinition(snap, tok.Text)
}

// labelDefinition ищет метку внутри модуля, открытого командой Sub с индексом module
// (-1: главный модуль).
func labelDefinition(snap *snapshot, module int, name string) *token.Token {
	current := -1
	for i, cmd := range snap.comp.Commands {
		switch cmd.Kind {
		case ast.CommandSub:
			current = i
		case ast.CommandEndSub:
			current = -1
		case ast.CommandLabel:
			data := cmd.Data.(ast.LabelData)
			if current == module && data.Identifier.Text == name {
				tok := data.Identifier
				return &tok
			}
		}
	}
	return nil
}

// subDefinition returns the name token of the last Sub called name.
func subDefinition(snap *snapshot, name string) *token.Token {
	if snap.comp.ParseTree == nil {
		return nil
	}
	var found *token.Token
	for _, sub := range snap.comp.ParseTree.SubModules {
		head, ok := sub.Head().Data.(ast.SubData)
		if ok && head.Name.Text == name && !head.Name.IsMissing() {
			tok := head.Name
			found = &tok
		}
	}
	return found
}
