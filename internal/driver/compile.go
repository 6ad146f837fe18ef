package driver

import (
	"fmt"
	"strconv"

	"sbasic/internal/ast"
	"sbasic/internal/binder"
	"sbasic/internal/bound"
	"sbasic/internal/diag"
	"sbasic/internal/lexer"
	"sbasic/internal/library"
	"sbasic/internal/observ"
	"sbasic/internal/parser"
	"sbasic/internal/source"
	"sbasic/internal/token"
	"sbasic/internal/trace"
)

// Options configures one compilation.
type Options struct {
	// Stage defaults to StageAll.
	Stage Stage
	// MaxDiagnostics caps the bag; 0 keeps everything.
	MaxDiagnostics int
	// Libraries defaults to library.Supported().
	Libraries  *library.Registry
	Tracer     trace.Tracer
	ParentSpan uint64
	Timings    bool
}

// Compilation is the result of running the pipeline over one program text.
// Fields of stages that did not run are nil.
type Compilation struct {
	File      *source.File // nil for in-memory text
	Text      string
	Tokens    []token.Token
	Commands  []*ast.Command
	ParseTree *ast.ParseTree
	BoundTree *bound.Tree
	Bag       *diag.Bag
	Timing    *observ.Report
}

// Diagnostics returns the findings of every stage in discovery order.
func (c *Compilation) Diagnostics() []diag.Diagnostic {
	return c.Bag.Items()
}

func (c *Compilation) HasErrors() bool {
	return c.Bag.HasErrors()
}

// ErrorCount counts error-severity diagnostics.
func (c *Compilation) ErrorCount() int {
	n := 0
	for _, d := range c.Bag.Items() {
		if d.Severity == diag.SevError {
			n++
		}
	}
	return n
}

// Path returns the file path, or "" for in-memory text.
func (c *Compilation) Path() string {
	if c.File == nil {
		return ""
	}
	return c.File.Path
}

// Compile runs the front end over text. It never fails on user input: every
// problem is a diagnostic in the result's bag. Each call owns its bag, so
// concurrent compilations do not interact.
func Compile(text string, opts Options) *Compilation {
	if opts.Stage == "" {
		opts.Stage = StageAll
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	rep := diag.BagReporter{Bag: bag}
	c := &Compilation{Text: text, Bag: bag}

	var timer *observ.Timer
	if opts.Timings {
		timer = observ.NewTimer()
	}
	root := trace.Begin(opts.Tracer, trace.ScopeDriver, "compile", opts.ParentSpan)
	defer func() {
		if timer != nil {
			report := timer.Report()
			c.Timing = &report
		}
		root.WithExtra("stage", string(opts.Stage)).
			WithExtra("diagnostics", strconv.Itoa(bag.Len())).
			End("")
	}()
	begin := func(name string) stageRun {
		return stageRun{
			span: trace.Begin(opts.Tracer, trace.ScopeStage, name, root.ID()),
			done: timer.Track(name),
		}
	}

	run := begin("scan")
	c.Tokens = lexer.Scan(text, lexer.Options{Reporter: rep})
	run.end(fmt.Sprintf("%d tokens", len(c.Tokens)))
	if !opts.Stage.runs(StageCommands) {
		return c
	}

	run = begin("commands")
	c.Commands = parser.ParseCommands(c.Tokens, parser.Options{Reporter: rep})
	run.end(fmt.Sprintf("%d commands", len(c.Commands)))
	if !opts.Stage.runs(StageStatements) {
		return c
	}

	run = begin("statements")
	c.ParseTree = parser.ParseStatements(c.Commands, parser.Options{Reporter: rep})
	run.end(fmt.Sprintf("%d submodules", len(c.ParseTree.SubModules)))
	if !opts.Stage.runs(StageBind) {
		return c
	}

	run = begin("bind")
	c.BoundTree = binder.Bind(c.ParseTree, binder.Options{
		Reporter:   rep,
		Libraries:  opts.Libraries,
		Tracer:     opts.Tracer,
		ParentSpan: run.span.ID(),
	})
	run.end(fmt.Sprintf("%d diagnostics", bag.Len()))
	return c
}

type stageRun struct {
	span *trace.Span
	done func(note string)
}

func (r stageRun) end(note string) {
	r.done(note)
	r.span.End(note)
}

// CompileFile loads path (BOM stripped, NFC normalised) and compiles it.
// The error is only about reading the file.
func CompileFile(path string, opts Options) (*Compilation, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)
	c := Compile(file.Content, opts)
	c.File = file
	return c, nil
}
