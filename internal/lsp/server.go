package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"
	"time"

	"sbasic/internal/library"
	"sbasic/internal/locale"
	"sbasic/internal/trace"
	"sbasic/internal/version"
)

var (
	// ErrExit signals a graceful shutdown after receiving "exit".
	ErrExit = errors.New("lsp exit")
	// ErrExitWithoutShutdown signals an "exit" without a preceding "shutdown".
	ErrExitWithoutShutdown = errors.New("lsp exit without shutdown")
)

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	Debounce       time.Duration
	MaxDiagnostics int
	// Catalog renders diagnostic messages; locale.Default() when nil.
	Catalog   *locale.Catalog
	Libraries *library.Registry
	Tracer    trace.Tracer
	// Log receives server messages and panic dumps; stderr when nil.
	Log io.Writer
}

type document struct {
	text    string
	version int
	// seq растёт при каждой правке; по нему отбрасываются устаревшие компиляции.
	seq uint64
}

// Server handles stdio JSON-RPC for the sbasic language server. Every open
// document is compiled on its own; there is no cross-file state.
type Server struct {
	in     *bufio.Reader
	out    *bufio.Writer
	log    io.Writer
	sendMu sync.Mutex

	mu                sync.Mutex
	docs              map[string]*document
	snapshots         map[string]*snapshot
	timers            map[string]*time.Timer
	published         map[string]struct{}
	workspaceRoot     string
	shutdownRequested bool

	debounce       time.Duration
	maxDiagnostics int
	catalog        *locale.Catalog
	libs           *library.Registry
	tracer         trace.Tracer
	baseCtx        context.Context
}

// NewServer constructs a new LSP server.
func NewServer(in io.Reader, out io.Writer, opts ServerOptions) *Server {
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	maxDiagnostics := opts.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = 100
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = locale.Default()
	}
	libs := opts.Libraries
	if libs == nil {
		libs = library.Supported()
	}
	logOut := opts.Log
	if logOut == nil {
		logOut = os.Stderr
	}
	return &Server{
		in:             bufio.NewReader(in),
		out:            bufio.NewWriter(out),
		log:            logOut,
		docs:           make(map[string]*document),
		snapshots:      make(map[string]*snapshot),
		timers:         make(map[string]*time.Timer),
		published:      make(map[string]struct{}),
		debounce:       debounce,
		maxDiagnostics: maxDiagnostics,
		catalog:        catalog,
		libs:           libs,
		tracer:         opts.Tracer,
		baseCtx:        context.Background(),
	}
}

// Run serves LSP requests until exit, EOF or ctx cancellation.
func (s *Server) Run(ctx context.Context) error {
	s.baseCtx = ctx
	defer s.stopTimers()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		payload, err := readMessage(s.in)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		var msg rpcMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			s.logf("failed to parse message: %v", err)
			if sendErr := s.sendError(json.RawMessage("null"), codeParseError, "parse error"); sendErr != nil {
				return sendErr
			}
			continue
		}
		if msg.Method == "" {
			continue
		}
		if err := s.dispatch(&msg); err != nil {
			return err
		}
	}
}

// dispatch runs one handler. A panic inside it is an internal defect: it is
// logged with the trace ring and answered with an error, and the session goes on.
func (s *Server) dispatch(msg *rpcMessage) (err error) {
	span := trace.Begin(s.tracer, trace.ScopeDriver, "lsp_request", 0).WithExtra("method", msg.Method)
	defer func() {
		if r := recover(); r != nil {
			s.reportPanic(msg.Method, r)
			if len(msg.ID) > 0 {
				err = s.sendError(msg.ID, codeInternalError, fmt.Sprintf("internal error: %v", r))
			}
		}
		span.End("")
	}()
	return s.handleMessage(msg)
}

func (s *Server) reportPanic(where string, r any) {
	trace.Point(s.tracer, trace.ScopeDriver, "lsp_panic", fmt.Sprint(r), 0)
	s.logf("panic in %s: %v\n%s", where, r, debug.Stack())
	if ring, ok := trace.RingOf(s.tracer); ok {
		s.logf("last trace events:")
		if err := ring.Dump(s.log, trace.FormatText); err != nil {
			s.logf("trace dump failed: %v", err)
		}
	}
}

func (s *Server) handleMessage(msg *rpcMessage) error {
	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		return nil
	case "shutdown":
		return s.handleShutdown(msg)
	case "exit":
		s.mu.Lock()
		requested := s.shutdownRequested
		s.mu.Unlock()
		if requested {
			return ErrExit
		}
		return ErrExitWithoutShutdown
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didSave":
		return s.handleDidSave(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/foldingRange":
		return s.handleFoldingRange(msg)
	default:
		if len(msg.ID) > 0 {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found")
		}
		return nil
	}
}

func (s *Server) handleInitialize(msg *rpcMessage) error {
	var params initializeParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, codeInvalidParams, "invalid params")
		}
	}
	root := uriToPath(params.RootURI)
	if root == "" {
		root = params.RootPath
	}
	if root == "" && len(params.WorkspaceFolders) > 0 {
		root = uriToPath(params.WorkspaceFolders[0].URI)
	}
	s.mu.Lock()
	s.workspaceRoot = root
	s.mu.Unlock()

	result := initializeResult{
		Capabilities: serverCapabilities{
			TextDocumentSync: textDocumentSyncOptions{
				OpenClose: true,
				Change:    2,
				Save:      saveOptions{IncludeText: true},
			},
			HoverProvider:        true,
			DefinitionProvider:   true,
			CompletionProvider:   &completionOptions{TriggerCharacters: []string{"."}},
			FoldingRangeProvider: true,
		},
		ServerInfo: serverInfo{Name: "sbasic", Version: version.Plain()},
	}
	return s.sendResponse(msg.ID, result)
}

func (s *Server) handleShutdown(msg *rpcMessage) error {
	s.mu.Lock()
	s.shutdownRequested = true
	s.mu.Unlock()
	s.stopTimers()
	s.clearPublishedDiagnostics()
	return s.sendResponse(msg.ID, nil)
}

func (s *Server) handleDidOpen(msg *rpcMessage) error {
	var params didOpenTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := canonicalURI(params.TextDocument.URI)
	if uri == "" {
		return nil
	}
	s.mu.Lock()
	doc := &document{text: params.TextDocument.Text, version: params.TextDocument.Version}
	if prev, ok := s.docs[uri]; ok {
		doc.seq = prev.seq
	}
	doc.seq++
	s.docs[uri] = doc
	s.mu.Unlock()
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) handleDidChange(msg *rpcMessage) error {
	var params didChangeTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	doc.text = applyChanges(doc.text, params.ContentChanges)
	doc.version = params.TextDocument.Version
	doc.seq++
	s.mu.Unlock()
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) handleDidSave(msg *rpcMessage) error {
	var params didSaveTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	doc, ok := s.docs[uri]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	if params.Text != nil && *params.Text != doc.text {
		doc.text = *params.Text
		doc.seq++
	}
	s.mu.Unlock()
	s.scheduleDiagnostics(uri)
	return nil
}

func (s *Server) handleDidClose(msg *rpcMessage) error {
	var params didCloseTextDocumentParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return s.invalidNotification(msg, err)
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	delete(s.docs, uri)
	delete(s.snapshots, uri)
	if t, ok := s.timers[uri]; ok {
		t.Stop()
		delete(s.timers, uri)
	}
	_, hadDiagnostics := s.published[uri]
	delete(s.published, uri)
	s.mu.Unlock()
	if hadDiagnostics {
		if err := s.sendPublish(uri, nil, nil); err != nil {
			s.logf("failed to clear diagnostics: %v", err)
		}
	}
	return nil
}

// invalidNotification logs malformed notification params; notifications get no reply.
func (s *Server) invalidNotification(msg *rpcMessage, err error) error {
	s.logf("%s: invalid params: %v", msg.Method, err)
	return nil
}

func (s *Server) stopTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uri, t := range s.timers {
		t.Stop()
		delete(s.timers, uri)
	}
}

func (s *Server) sendResponse(id json.RawMessage, result any) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"result":  result,
	}
	return s.send(msg)
}

func (s *Server) sendError(id json.RawMessage, code int, message string) error {
	msg := map[string]any{
		"jsonrpc": "2.0",
		"id":      id,
		"error": rpcError{
			Code:    code,
			Message: message,
		},
	}
	return s.send(msg)
}

func (s *Server) sendPublish(uri string, version *int, list []lspDiagnostic) error {
	if list == nil {
		list = []lspDiagnostic{}
	}
	msg := map[string]any{
		"jsonrpc": "2.0",
		"method":  "textDocument/publishDiagnostics",
		"params": publishDiagnosticsParams{
			URI:         uri,
			Version:     version,
			Diagnostics: list,
		},
	}
	return s.send(msg)
}

func (s *Server) send(msg any) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	s.sendMu.Lock()
	defer s.sendMu.Unlock()
	if err := writeMessage(s.out, payload); err != nil {
		return err
	}
	return s.out.Flush()
}

func (s *Server) logf(format string, args ...any) {
	fmt.Fprintf(s.log, "lsp: "+format+"\n", args...)
}
