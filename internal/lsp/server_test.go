package lsp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"sbasic/internal/locale"
	"sbasic/internal/trace"
)

func newTestServer(t *testing.T, opts ServerOptions) (*Server, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	if opts.Debounce == 0 {
		opts.Debounce = time.Hour
	}
	if opts.Log == nil {
		opts.Log = io.Discard
	}
	return NewServer(bytes.NewReader(nil), &out, opts), &out
}

func testURI(t *testing.T) string {
	t.Helper()
	return canonicalURI(pathToURI(filepath.Join(t.TempDir(), "main.sb")))
}

func call(t *testing.T, s *Server, method string, params any) {
	t.Helper()
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.dispatch(&rpcMessage{JSONRPC: "2.0", ID: json.RawMessage("1"), Method: method, Params: payload}); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func notify(t *testing.T, s *Server, method string, params any) {
	t.Helper()
	payload, err := json.Marshal(params)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.dispatch(&rpcMessage{JSONRPC: "2.0", Method: method, Params: payload}); err != nil {
		t.Fatalf("%s: %v", method, err)
	}
}

func readAll(t *testing.T, out *bytes.Buffer) []rpcMessage {
	t.Helper()
	reader := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []rpcMessage
	for {
		payload, err := readMessage(reader)
		if errors.Is(err, io.EOF) {
			return msgs
		}
		if err != nil {
			t.Fatalf("read message: %v", err)
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			t.Fatalf("decode message: %v", err)
		}
		msgs = append(msgs, msg)
	}
}

func lastPublish(t *testing.T, out *bytes.Buffer) publishDiagnosticsParams {
	t.Helper()
	var params publishDiagnosticsParams
	found := false
	for _, msg := range readAll(t, out) {
		if msg.Method == "textDocument/publishDiagnostics" {
			if err := json.Unmarshal(msg.Params, &params); err != nil {
				t.Fatal(err)
			}
			found = true
		}
	}
	if !found {
		t.Fatalf("no publishDiagnostics in output")
	}
	return params
}

func flushDiagnostics(s *Server, uri string) {
	s.mu.Lock()
	seq := s.docs[uri].seq
	if timer := s.timers[uri]; timer != nil {
		timer.Stop()
	}
	s.mu.Unlock()
	s.runDiagnostics(uri, seq)
}

func TestPublishDiagnosticsAfterEdit(t *testing.T) {
	s, out := newTestServer(t, ServerOptions{})
	uri := testURI(t)
	notify(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "x = 1\ns = \"文\"\n"},
	})
	notify(t, s, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument: versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{
			Range: &lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 5}},
			Text:  "TextWindow.WriteLine()",
		}},
	})
	flushDiagnostics(s, uri)

	params := lastPublish(t, out)
	if params.URI != uri || params.Version == nil || *params.Version != 2 {
		t.Fatalf("unexpected publish target %+v", params)
	}
	if len(params.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", params.Diagnostics)
	}
	d := params.Diagnostics[0]
	if d.Code != "SEM3006" || d.Severity != 1 || d.Source != "sbasic" {
		t.Fatalf("unexpected diagnostic %+v", d)
	}
	if !strings.Contains(d.Message, "expecting 1 arguments") {
		t.Fatalf("message = %q", d.Message)
	}
	want := lspRange{Start: position{Line: 0, Character: 0}, End: position{Line: 0, Character: 22}}
	if d.Range != want {
		t.Fatalf("range = %+v, want %+v", d.Range, want)
	}
}

func TestPublishUsesUTF16Columns(t *testing.T) {
	s, out := newTestServer(t, ServerOptions{})
	uri := testURI(t)
	notify(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "s = \"😀\" $"},
	})
	flushDiagnostics(s, uri)
	params := lastPublish(t, out)
	if len(params.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", params.Diagnostics)
	}
	want := lspRange{Start: position{Line: 0, Character: 9}, End: position{Line: 0, Character: 10}}
	if got := params.Diagnostics[0].Range; got != want {
		t.Fatalf("range = %+v, want %+v", got, want)
	}
}

func TestPublishLocalized(t *testing.T) {
	ru, err := locale.Load("ru")
	if err != nil {
		t.Fatal(err)
	}
	s, out := newTestServer(t, ServerOptions{Catalog: ru})
	uri := testURI(t)
	notify(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "GoTo nowhere"},
	})
	flushDiagnostics(s, uri)
	params := lastPublish(t, out)
	if len(params.Diagnostics) != 1 || params.Diagnostics[0].Message != "В этом модуле нет метки с именем 'nowhere'." {
		t.Fatalf("diagnostics = %+v", params.Diagnostics)
	}
}

func TestStaleRunIsDropped(t *testing.T) {
	s, out := newTestServer(t, ServerOptions{})
	uri := testURI(t)
	notify(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "x = 1"},
	})
	s.mu.Lock()
	staleSeq := s.docs[uri].seq
	s.mu.Unlock()
	notify(t, s, "textDocument/didChange", didChangeTextDocumentParams{
		TextDocument:   versionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []textDocumentContentChangeEvent{{Text: "x = 2"}},
	})
	s.runDiagnostics(uri, staleSeq)
	for _, msg := range readAll(t, out) {
		if msg.Method == "textDocument/publishDiagnostics" {
			t.Fatalf("stale compilation published diagnostics")
		}
	}
}

func TestDebouncedPublish(t *testing.T) {
	s, out := newTestServer(t, ServerOptions{Debounce: time.Millisecond})
	uri := testURI(t)
	notify(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "GoTo x"},
	})
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		s.sendMu.Lock()
		n := out.Len()
		s.sendMu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if params := lastPublish(t, out); len(params.Diagnostics) != 1 {
		t.Fatalf("diagnostics = %+v", params.Diagnostics)
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	s, out := newTestServer(t, ServerOptions{})
	uri := testURI(t)
	notify(t, s, "textDocument/didOpen", didOpenTextDocumentParams{
		TextDocument: textDocumentItem{URI: uri, Version: 1, Text: "GoTo x"},
	})
	flushDiagnostics(s, uri)
	out.Reset()
	notify(t, s, "textDocument/didClose", didCloseTextDocumentParams{TextDocument: textDocumentIdentifier{URI: uri}})
	if params := lastPublish(t, out); len(params.Diagnostics) != 0 {
		t.Fatalf("expected empty diagnostics, got %+v", params.Diagnostics)
	}
	if s.snapshotFor(uri) != nil {
		t.Fatalf("closed document still has a snapshot")
	}
}

func TestLifecycleOverStdio(t *testing.T) {
	var in bytes.Buffer
	for _, msg := range []string{
		`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"rootUri":"file:///tmp"}}`,
		`{"jsonrpc":"2.0","method":"initialized","params":{}}`,
		`{"jsonrpc":"2.0","id":2,"method":"workspace/symbol","params":{}}`,
		`{"jsonrpc":"2.0","id":3,"method":"shutdown"}`,
		`{"jsonrpc":"2.0","method":"exit"}`,
	} {
		if err := writeMessage(&in, []byte(msg)); err != nil {
			t.Fatal(err)
		}
	}
	var out bytes.Buffer
	s := NewServer(&in, &out, ServerOptions{Log: io.Discard})
	if err := s.Run(context.Background()); !errors.Is(err, ErrExit) {
		t.Fatalf("Run = %v, want ErrExit", err)
	}
	msgs := readAll(t, &out)
	if len(msgs) != 3 {
		t.Fatalf("got %d responses, want 3", len(msgs))
	}
	var init initializeResult
	if err := json.Unmarshal(msgs[0].Result, &init); err != nil {
		t.Fatal(err)
	}
	if !init.Capabilities.HoverProvider || init.ServerInfo.Name != "sbasic" {
		t.Fatalf("initialize result = %+v", init)
	}
	if msgs[1].Error == nil || msgs[1].Error.Code != codeMethodNotFound {
		t.Fatalf("unknown method reply = %+v", msgs[1])
	}
}

func TestExitWithoutShutdown(t *testing.T) {
	var in bytes.Buffer
	_ = writeMessage(&in, []byte(`{"jsonrpc":"2.0","method":"exit"}`))
	s := NewServer(&in, io.Discard, ServerOptions{Log: io.Discard})
	if err := s.Run(context.Background()); !errors.Is(err, ErrExitWithoutShutdown) {
		t.Fatalf("Run = %v", err)
	}
}

func TestPanicInHandlerIsRecovered(t *testing.T) {
	var logs bytes.Buffer
	ring := trace.NewRingTracer(16, trace.LevelDebug)
	s, out := newTestServer(t, ServerOptions{Log: &logs, Tracer: ring})
	// документ без снапшота и с nil-компиляцией провоцирует панику в обработчике
	uri := testURI(t)
	s.mu.Lock()
	s.docs[uri] = &document{text: "x", seq: 1}
	s.snapshots[uri] = &snapshot{seq: 1}
	s.mu.Unlock()

	call(t, s, "textDocument/hover", textDocumentPositionParams{
		TextDocument: textDocumentIdentifier{URI: uri},
		Position:     position{Line: 0, Character: 0},
	})
	msgs := readAll(t, out)
	if len(msgs) != 1 || msgs[0].Error == nil || msgs[0].Error.Code != codeInternalError {
		t.Fatalf("expected internal error reply, got %+v", msgs)
	}
	if !strings.Contains(logs.String(), "panic in textDocument/hover") || !strings.Contains(logs.String(), "lsp_request") {
		t.Fatalf("panic log lacks the trace dump:\n%s", logs.String())
	}
}
