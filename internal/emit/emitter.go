// Package emit walks the IR and renders Rust source text. It consults
// the type resolver for annotations and the mapping provider for API
// translations, and owns the idiom rewrites: exception handling to
// Result matching, scoped resources to lexical scopes with
// deterministic drop, comprehensions to iterator pipelines, and
// inference-driven error propagation and mutability rendering.
//
// Emission never fails. Unsupported node kinds degrade to inert
// placeholders and record a diagnostic, so a human can finish them
// rather than receive silently wrong output.
package emit

import (
	"sort"
	"strings"

	"oxidize/internal/diag"
	"oxidize/internal/ir"
	"oxidize/internal/mapping"
	"oxidize/internal/resolve"
)

// Options configures an Emitter.
type Options struct {
	// Provider supplies API mapping tables; nil means the built-in
	// table alone.
	Provider mapping.Provider
	// Resolver supplies type resolution; nil means a fresh resolver
	// seeded from the emitted module's own classes.
	Resolver *resolve.Resolver
	// LocalModules names sibling modules of the same project, used to
	// classify imports.
	LocalModules map[string]bool
	// CrateName replaces "crate" in local-import paths when emitting a
	// binary root that links against the library crate.
	CrateName string
	// MaxDiagnostics bounds the gap report; 0 uses the default.
	MaxDiagnostics int
}

// Emitter renders one module per call. An Emitter must not be shared
// between goroutines; concurrent module emission uses one Emitter per
// module (the driver arranges this).
type Emitter struct {
	resolver   *resolve.Resolver
	provider   mapping.Provider
	bag        *diag.Bag
	ctx        *context
	moduleName string
}

// New creates an Emitter.
func New(opts Options) *Emitter {
	provider := opts.Provider
	if provider == nil {
		provider = mapping.Builtin()
	}
	e := &Emitter{
		resolver: opts.Resolver,
		provider: provider,
		bag:      diag.NewBag(opts.MaxDiagnostics),
		ctx:      newContext(),
	}
	for name := range opts.LocalModules {
		e.ctx.localModules[name] = true
	}
	e.ctx.crateName = opts.CrateName
	return e
}

// Diagnostics returns the gaps recorded by the last EmitModule call.
func (e *Emitter) Diagnostics() *diag.Bag {
	return e.bag
}

// CargoDeps returns the sorted crate dependencies accumulated from
// mapping entries during emission.
func (e *Emitter) CargoDeps() []string {
	deps := make([]string, 0, len(e.ctx.cargoDeps))
	for d := range e.ctx.cargoDeps {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	return deps
}

// EmitModule renders a complete, self-contained Rust source unit:
// imports, type definitions, functions, and a synthesized main when the
// module has top-level statements.
func (e *Emitter) EmitModule(m *ir.Module) string {
	e.moduleName = m.Name
	if e.resolver == nil {
		e.resolver = resolve.ForModule(m)
	}
	e.resolver.OnUnionFallback(func(desc string) {
		e.gap(diag.ResolveUnionFallback, 0, "union "+desc+" has no generated name; emitted as UnionType")
	})

	// Registries first: sibling class names for constructor-call
	// rewriting, fallible functions for ?-insertion. Built before any
	// body is emitted and never updated after.
	for _, cls := range m.Classes {
		e.ctx.classNames[cls.Name] = true
	}
	for _, fn := range m.Funcs {
		if isResultType(fn.Return) {
			e.ctx.resultFuncs[fn.Name] = true
		}
	}
	for _, cls := range m.Classes {
		for _, method := range cls.Methods {
			if isResultType(method.Return) {
				e.ctx.resultFuncs[cls.Name+"."+method.Name] = true
				e.ctx.resultFuncs[method.Name] = true
			}
		}
	}
	e.processImports(m.Imports)

	var header, body []string

	if m.Doc != "" {
		header = append(header, "//! "+firstLine(m.Doc), "")
	}

	for _, cls := range m.Classes {
		body = append(body, e.emitClass(cls), "")
	}
	for _, fn := range m.Funcs {
		body = append(body, e.emitFunction(fn), "")
	}
	if len(m.Stmts) > 0 {
		var main []string
		main = append(main, "fn main() {")
		e.ctx.indent = 1
		for _, s := range m.Stmts {
			main = append(main, e.emitStmt(s))
		}
		e.ctx.indent = 0
		main = append(main, "}")
		body = append(body, strings.Join(main, "\n"), "")
	}

	// Imports are collected after emission so the side channels are
	// fully populated.
	if uses := e.collectImports(m); len(uses) > 0 {
		header = append(header, uses...)
		header = append(header, "")
	}

	return strings.Join(append(header, body...), "\n")
}

// processImports classifies source imports: local project modules feed
// the use-statement rendering and class-name harvest; standard library
// modules are handled by mapping lookups during emission.
func (e *Emitter) processImports(imports []*ir.Import) {
	for _, imp := range imports {
		root := imp.Module
		if i := strings.IndexByte(root, '.'); i >= 0 {
			root = root[:i]
		}
		if !e.ctx.localModules[root] {
			continue
		}
		if len(imp.Names) == 0 {
			e.ctx.localImports[root] = append(e.ctx.localImports[root], ir.ImportName{Name: root})
			continue
		}
		e.ctx.localImports[root] = append(e.ctx.localImports[root], imp.Names...)
		for _, n := range imp.Names {
			effective := n.Name
			if n.Alias != "" {
				effective = n.Alias
			}
			// Uppercase initial marks a class; harvest it so
			// cross-module constructor calls rewrite to ::new.
			if n.Name != "" && n.Name[0] >= 'A' && n.Name[0] <= 'Z' {
				e.ctx.classNames[effective] = true
			}
		}
	}
}

// collectImports assembles the sorted use statements for the module:
// collection types found in literals, resolver-detected imports, and
// mapping-entry imports recorded during emission.
func (e *Emitter) collectImports(m *ir.Module) []string {
	uses := make(map[string]struct{})

	if cols := neededCollections(m); len(cols) > 0 {
		names := make([]string, 0, len(cols))
		for c := range cols {
			names = append(names, c)
		}
		sort.Strings(names)
		uses["use std::collections::{"+strings.Join(names, ", ")+"};"] = struct{}{}
	}
	for _, u := range e.resolver.Imports() {
		uses[u] = struct{}{}
	}
	for imp := range e.ctx.stdImports {
		uses["use "+imp+";"] = struct{}{}
	}

	prefix := "crate"
	if e.ctx.crateName != "" {
		prefix = e.ctx.crateName
	}
	for mod, names := range e.ctx.localImports {
		for _, n := range names {
			if n.Alias != "" {
				uses["use "+prefix+"::"+mod+"::"+n.Name+" as "+n.Alias+";"] = struct{}{}
			} else {
				uses["use "+prefix+"::"+mod+"::"+n.Name+";"] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(uses))
	for u := range uses {
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// recordEntry tracks the imports and cargo dependencies of a consulted
// mapping entry.
func (e *Emitter) recordEntry(entry mapping.Entry) {
	for _, imp := range entry.Imports {
		e.ctx.stdImports[imp] = struct{}{}
	}
	for _, dep := range entry.CargoDeps {
		e.ctx.cargoDeps[dep] = struct{}{}
	}
}

// gap records a degradation diagnostic.
func (e *Emitter) gap(code diag.Code, line int, msg string) {
	e.bag.Add(diag.Diagnostic{
		Severity: diag.SevWarning,
		Code:     code,
		Message:  msg,
		Module:   e.moduleName,
		Line:     line,
	})
}

// isResultType reports whether an annotation is Result[T, E].
func isResultType(t ir.Type) bool {
	g, ok := t.(*ir.GenericType)
	return ok && g.Name == "Result"
}

// isStrType reports whether an annotation resolves to a string.
func isStrType(t ir.Type) bool {
	p, ok := t.(*ir.PrimType)
	return ok && p.Kind == ir.PrimStr
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// neededCollections scans a module for map and set literals so the
// collections import is present even without annotations.
func neededCollections(m *ir.Module) map[string]struct{} {
	needed := make(map[string]struct{})
	var scanExpr func(ir.Expr)
	var scanStmts func([]ir.Stmt)

	scanExpr = func(x ir.Expr) {
		switch ex := x.(type) {
		case nil:
		case *ir.DictLit:
			needed["HashMap"] = struct{}{}
			for i := range ex.Keys {
				scanExpr(ex.Keys[i])
				scanExpr(ex.Values[i])
			}
		case *ir.SetLit:
			needed["HashSet"] = struct{}{}
			for _, el := range ex.Elems {
				scanExpr(el)
			}
		case *ir.ListLit:
			for _, el := range ex.Elems {
				scanExpr(el)
			}
		case *ir.TupleLit:
			for _, el := range ex.Elems {
				scanExpr(el)
			}
		case *ir.Binary:
			scanExpr(ex.Left)
			scanExpr(ex.Right)
		case *ir.Unary:
			scanExpr(ex.Operand)
		case *ir.Call:
			scanExpr(ex.Fn)
			for _, a := range ex.Args {
				scanExpr(a)
			}
		case *ir.MethodCall:
			scanExpr(ex.Recv)
			for _, a := range ex.Args {
				scanExpr(a)
			}
		case *ir.Cond:
			scanExpr(ex.Cond)
			scanExpr(ex.Then)
			scanExpr(ex.Else)
		case *ir.ListComp:
			scanExpr(ex.Iter)
			scanExpr(ex.Elem)
		}
	}
	scanStmts = func(body []ir.Stmt) {
		for _, s := range body {
			switch st := s.(type) {
			case *ir.Assign:
				scanExpr(st.Value)
			case *ir.TupleAssign:
				scanExpr(st.Value)
			case *ir.AttrAssign:
				scanExpr(st.Value)
			case *ir.Return:
				scanExpr(st.Value)
			case *ir.ExprStmt:
				scanExpr(st.X)
			case *ir.If:
				scanExpr(st.Cond)
				scanStmts(st.Then)
				for _, el := range st.Elifs {
					scanStmts(el.Body)
				}
				scanStmts(st.Else)
			case *ir.While:
				scanStmts(st.Body)
			case *ir.For:
				scanExpr(st.Iter)
				scanStmts(st.Body)
			case *ir.With:
				scanStmts(st.Body)
			case *ir.Try:
				scanStmts(st.Body)
				for _, h := range st.Handlers {
					scanStmts(h.Body)
				}
				scanStmts(st.Finally)
			}
		}
	}

	for _, fn := range m.Funcs {
		scanStmts(fn.Body)
	}
	for _, cls := range m.Classes {
		for _, method := range cls.Methods {
			scanStmts(method.Body)
		}
	}
	scanStmts(m.Stmts)
	return needed
}
