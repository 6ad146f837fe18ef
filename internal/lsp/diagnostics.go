package lsp

import (
	"time"

	"sbasic/internal/diag"
	"sbasic/internal/source"
	"sbasic/internal/trace"
)

// scheduleDiagnostics restarts the debounce timer of uri.
func (s *Server) scheduleDiagnostics(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	if !ok || s.shutdownRequested {
		return
	}
	seq := doc.seq
	if t, ok := s.timers[uri]; ok {
		t.Stop()
	}
	s.timers[uri] = time.AfterFunc(s.debounce, func() {
		s.runDiagnostics(uri, seq)
	})
}

// runDiagnostics compiles the document as of seq and publishes the result.
// It gives up when a newer edit arrived in the meantime.
func (s *Server) runDiagnostics(uri string, seq uint64) {
	defer func() {
		if r := recover(); r != nil {
			s.reportPanic("diagnostics "+uri, r)
		}
	}()
	if s.baseCtx.Err() != nil {
		return
	}
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok || doc.seq != seq {
		s.mu.Unlock()
		return
	}
	text, version := doc.text, doc.version
	s.mu.Unlock()

	span := trace.Begin(s.tracer, trace.ScopeDriver, "lsp_diagnostics", 0).WithExtra("uri", uri)
	snap := &snapshot{seq: seq, version: version, lines: source.SplitLines(text), comp: s.compile(text)}
	s.storeSnapshot(uri, snap)
	list := s.convertDiagnostics(snap)
	span.End("")

	s.mu.Lock()
	current, open := s.docs[uri]
	stale := !open || current.seq != seq
	if !stale {
		s.published[uri] = struct{}{}
	}
	s.mu.Unlock()
	if stale {
		return
	}
	if err := s.sendPublish(uri, &version, list); err != nil {
		s.logf("failed to publish diagnostics: %v", err)
	}
}

func (s *Server) convertDiagnostics(snap *snapshot) []lspDiagnostic {
	items := snap.comp.Diagnostics()
	out := make([]lspDiagnostic, 0, len(items))
	for _, d := range items {
		out = append(out, lspDiagnostic{
			Range:    snap.lspRange(d.Range),
			Severity: lspSeverity(d.Severity),
			Code:     d.Code.ID(),
			Source:   "sbasic",
			Message:  s.catalog.Render(d),
		})
	}
	return out
}

func lspSeverity(sev diag.Severity) int {
	switch sev {
	case diag.SevError:
		return 1
	case diag.SevWarning:
		return 2
	default:
		return 3
	}
}

func (s *Server) clearPublishedDiagnostics() {
	s.mu.Lock()
	prev := s.published
	s.published = make(map[string]struct{})
	s.mu.Unlock()
	for uri := range prev {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
}
