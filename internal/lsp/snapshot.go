package lsp

import (
	"sbasic/internal/driver"
	"sbasic/internal/source"
	"sbasic/internal/token"
)

// snapshot is the compilation of one document version.
type snapshot struct {
	seq     uint64
	version int
	lines   []string
	comp    *driver.Compilation
}

func (snap *snapshot) line(n int) string {
	if n < 0 || n >= len(snap.lines) {
		return ""
	}
	return snap.lines[n]
}

// tokenAt returns the index of the token covering pos, or -1. A cursor just
// past an identifier still selects it.
func (snap *snapshot) tokenAt(pos position) int {
	line := int(pos.Line)
	col := byteColumn(snap.line(line), pos.Character)
	candidate := -1
	for i, tok := range snap.comp.Tokens {
		if tok.Range.Line < line {
			continue
		}
		if tok.Range.Line > line {
			break
		}
		if tok.Range.Start <= col && col < tok.Range.End {
			return i
		}
		if col == tok.Range.End && tok.Kind == token.Identifier {
			candidate = i
		}
	}
	return candidate
}

func (snap *snapshot) token(i int) (token.Token, bool) {
	if i < 0 || i >= len(snap.comp.Tokens) {
		return token.Token{}, false
	}
	return snap.comp.Tokens[i], true
}

func (snap *snapshot) lspRange(r source.Range) lspRange {
	return rangeToLSP(snap.lines, r)
}

// compile runs the full pipeline over text. Each call owns its diagnostics.
func (s *Server) compile(text string) *driver.Compilation {
	return driver.Compile(text, driver.Options{
		MaxDiagnostics: s.maxDiagnostics,
		Libraries:      s.libs,
		Tracer:         s.tracer,
	})
}

// snapshotFor returns a compilation of the current text of uri, compiling on
// demand when the last published one is stale. Nil for unknown documents.
func (s *Server) snapshotFor(uri string) *snapshot {
	uri = canonicalURI(uri)
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if snap, ok := s.snapshots[uri]; ok && snap.seq == doc.seq {
		s.mu.Unlock()
		return snap
	}
	text, seq, version := doc.text, doc.seq, doc.version
	s.mu.Unlock()

	snap := &snapshot{seq: seq, version: version, lines: source.SplitLines(text), comp: s.compile(text)}
	s.storeSnapshot(uri, snap)
	return snap
}

// storeSnapshot keeps snap unless a newer one is already stored.
func (s *Server) storeSnapshot(uri string, snap *snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, open := s.docs[uri]; !open {
		return
	}
	if prev, ok := s.snapshots[uri]; ok && prev.seq >= snap.seq {
		return
	}
	s.snapshots[uri] = snap
}
