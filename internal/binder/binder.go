// Package binder resolves a parse tree into a bound tree.
//
// Binding runs in three cooperating layers: the module binder collects
// submodule names and binds every module body, a statement binder per module
// tracks labels and GoTo targets, and the expression binder resolves names,
// checks arity and classifies value/void expressions. Every diagnostic goes
// to the reporter of the current compilation; the result is always complete.
package binder

import (
	"fmt"

	"sbasic/internal/ast"
	"sbasic/internal/bound"
	"sbasic/internal/diag"
	"sbasic/internal/library"
	"sbasic/internal/trace"
)

type Options struct {
	Reporter diag.Reporter
	// Libraries defaults to library.Supported().
	Libraries *library.Registry
	Tracer    trace.Tracer
	// ParentSpan links per-module spans to the caller's span.
	ParentSpan uint64
}

// Bind binds the main module and every submodule of tree.
func Bind(tree *ast.ParseTree, opts Options) *bound.Tree {
	if opts.Libraries == nil {
		opts.Libraries = library.Supported()
	}
	mb := &moduleBinder{
		opts:     opts,
		subNames: make(map[string]struct{}, len(tree.SubModules)),
	}
	return mb.bind(tree)
}

type moduleBinder struct {
	opts     Options
	subNames map[string]struct{}
}

func (mb *moduleBinder) bind(tree *ast.ParseTree) *bound.Tree {
	for _, sub := range tree.SubModules {
		name := subModuleHeader(sub).Name
		if name.IsMissing() {
			continue
		}
		if _, dup := mb.subNames[name.Text]; dup {
			diag.ReportError(mb.opts.Reporter, diag.TwoSubModulesWithTheSameName, name.Range, name.Text)
			continue
		}
		mb.subNames[name.Text] = struct{}{}
	}

	out := &bound.Tree{
		MainModule: mb.bindModule("", nil, tree.MainModule),
		SubModules: make(map[string]*bound.Module, len(mb.subNames)),
	}
	for _, sub := range tree.SubModules {
		data := sub.Data.(ast.SubModuleData)
		name := data.Name()
		m := mb.bindModule(name, sub, data.Statements)
		// безымянный Sub уже продиагностирован парсером: тело проверяем, но не сохраняем
		if name != "" {
			out.SubModules[name] = m
		}
	}
	return out
}

func (mb *moduleBinder) bindModule(name string, syntax *ast.Stmt, body []*ast.Stmt) *bound.Module {
	span := trace.Begin(mb.opts.Tracer, trace.ScopeModule, "bind_module", mb.opts.ParentSpan)
	if name == "" {
		span.WithExtra("module", "main")
	} else {
		span.WithExtra("module", name)
	}

	sb := newStatementBinder(mb)
	stmts := sb.bindStatements(body)
	sb.checkGoTos()

	span.End(fmt.Sprintf("%d statements", len(stmts)))
	return &bound.Module{Name: name, Syntax: syntax, Statements: stmts}
}

func subModuleHeader(sub *ast.Stmt) ast.SubData {
	data, ok := sub.Data.(ast.SubModuleData)
	if !ok {
		panic(fmt.Sprintf("binder: submodule list holds a %v statement", sub.Kind))
	}
	return data.Sub.Data.(ast.SubData)
}
