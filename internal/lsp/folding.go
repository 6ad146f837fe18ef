package lsp

import (
	"encoding/json"

	"sbasic/internal/ast"
)

func (s *Server) handleFoldingRange(msg *rpcMessage) error {
	var params foldingRangeParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.sendError(msg.ID, codeInvalidParams, "invalid params")
	}
	snap := s.snapshotFor(params.TextDocument.URI)
	if snap == nil || snap.comp.ParseTree == nil {
		return s.sendResponse(msg.ID, []foldingRange{})
	}
	return s.sendResponse(msg.ID, buildFoldingRanges(snap.comp.ParseTree))
}

// buildFoldingRanges folds every block whose closing command is present.
func buildFoldingRanges(tree *ast.ParseTree) []foldingRange {
	out := make([]foldingRange, 0, 8)
	var walk func(stmts []*ast.Stmt)
	fold := func(open, end *ast.Command) {
		if end == nil || end.Kind == ast.CommandMissing || end.Range.Line <= open.Range.Line {
			return
		}
		out = append(out, foldingRange{
			StartLine: safeUint32(open.Range.Line),
			EndLine:   safeUint32(end.Range.Line),
			Kind:      "region",
		})
	}
	walk = func(stmts []*ast.Stmt) {
		for _, st := range stmts {
			switch data := st.Data.(type) {
			case ast.SubModuleData:
				fold(data.Sub, data.EndSub)
				walk(data.Statements)
			case ast.IfStmtData:
				fold(data.IfPart.Command, data.EndIf)
				walk(data.IfPart.Statements)
				for _, part := range data.ElseIfParts {
					walk(part.Statements)
				}
				if data.ElsePart != nil {
					walk(data.ElsePart.Statements)
				}
			case ast.WhileStmtData:
				fold(data.While, data.EndWhile)
				walk(data.Statements)
			case ast.ForStmtData:
				fold(data.For, data.EndFor)
				walk(data.Statements)
			case ast.CommandStmtData:
			default:
				panic("lsp: unexpected statement payload")
			}
		}
	}
	walk(tree.MainModule)
	walk(tree.SubModules)
	return out
}

func subName(sub *ast.Stmt) string {
	data, ok := sub.Data.(ast.SubModuleData)
	if !ok {
		return ""
	}
	return data.Name()
}
