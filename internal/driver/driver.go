// Package driver orchestrates translation: it builds the shared
// registries, fans module emission out across workers, and assembles a
// deterministic crate layout from the results.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"oxidize/internal/diag"
	"oxidize/internal/emit"
	"oxidize/internal/ir"
	"oxidize/internal/manifest"
	"oxidize/internal/mapping"
	"oxidize/internal/resolve"
)

// Request describes one translation run.
type Request struct {
	Modules []*ir.Module

	// CrateName names the generated crate; required.
	CrateName string
	// EntryModule, when set, selects the module whose main the
	// generated main.rs delegates to. Empty produces a library crate.
	EntryModule string

	// PackDirs lists directories of TOML mapping packs layered over
	// the built-in table.
	PackDirs []string

	// Jobs bounds worker parallelism; 0 uses GOMAXPROCS.
	Jobs int
	// MaxDiagnostics bounds the per-module gap report; 0 uses the
	// default.
	MaxDiagnostics int

	// Cache, when non-nil, skips emission for modules whose IR digest
	// has a stored artifact.
	Cache *DiskCache

	// ExtraDeps are appended to the generated Cargo.toml.
	ExtraDeps []manifest.Dependency
}

// ModuleResult is the artifact of one translated module.
type ModuleResult struct {
	Name   string
	Rust   string
	Digest Digest
	Cached bool
}

// Result is a complete translated crate.
type Result struct {
	// Files maps crate-relative paths (src/foo.rs, src/lib.rs,
	// Cargo.toml) to contents.
	Files map[string]string

	Modules []ModuleResult
	Bag     *diag.Bag
}

// Translate emits every module of the request concurrently and
// assembles the crate. Module order in the result is the request
// order regardless of worker scheduling.
func Translate(ctx context.Context, req *Request) (*Result, error) {
	if req.CrateName == "" {
		return nil, fmt.Errorf("translate: crate name is required")
	}

	provider, err := buildProvider(req.PackDirs)
	if err != nil {
		return nil, err
	}

	// Shared registries are built up front so every worker sees every
	// class and every local module name.
	classes := make([]string, 0)
	localModules := make(map[string]bool, len(req.Modules))
	for _, m := range req.Modules {
		localModules[m.Name] = true
		for _, cls := range m.Classes {
			classes = append(classes, cls.Name)
		}
	}

	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]ModuleResult, len(req.Modules))
	bags := make([]*diag.Bag, len(req.Modules))
	depSets := make([][]string, len(req.Modules))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, max(len(req.Modules), 1)))

	for i, m := range req.Modules {
		i, m := i, m
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			digest, err := Fingerprint(m)
			if err != nil {
				return fmt.Errorf("fingerprint %s: %w", m.Name, err)
			}

			var payload CachePayload
			if hit, err := req.Cache.Get(digest, &payload); err == nil && hit {
				results[i] = ModuleResult{Name: m.Name, Rust: payload.Rust, Digest: digest, Cached: true}
				depSets[i] = payload.CargoDeps
				return nil
			}

			// Each worker owns its resolver and emitter; only the
			// result slots are shared, and each worker writes its own.
			resolver := resolve.New()
			for _, name := range classes {
				resolver.RegisterClass(name)
			}

			em := emit.New(emit.Options{
				Provider:       provider,
				Resolver:       resolver,
				LocalModules:   localModules,
				CrateName:      req.CrateName,
				MaxDiagnostics: req.MaxDiagnostics,
			})
			rust := em.EmitModule(m)

			results[i] = ModuleResult{Name: m.Name, Rust: rust, Digest: digest}
			bags[i] = em.Diagnostics()
			depSets[i] = em.CargoDeps()

			_ = req.Cache.Put(digest, &CachePayload{
				Module:    m.Name,
				Rust:      rust,
				CargoDeps: depSets[i],
				Warnings:  em.Diagnostics().Len(),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	bag := diag.NewBag(0)
	for _, b := range bags {
		if b != nil {
			bag.Merge(b)
		}
	}
	bag.Sort()

	return assemble(req, results, depSets, bag), nil
}

func buildProvider(packDirs []string) (mapping.Provider, error) {
	chain := mapping.Chain{}
	for _, dir := range packDirs {
		packs, err := mapping.LoadPacks(dir)
		if err != nil {
			return nil, fmt.Errorf("load mapping packs from %s: %w", dir, err)
		}
		for _, p := range packs {
			chain = append(chain, p)
		}
	}
	chain = append(chain, mapping.Builtin())
	return chain, nil
}

// assemble lays the emitted modules out as a crate tree with a
// manifest, a lib.rs, and a main.rs when an entry module is named.
func assemble(req *Request, results []ModuleResult, depSets [][]string, bag *diag.Bag) *Result {
	files := make(map[string]string, len(results)+3)

	moduleNames := make([]string, 0, len(results))
	for _, r := range results {
		files["src/"+r.Name+".rs"] = r.Rust
		moduleNames = append(moduleNames, r.Name)
	}

	seen := make(map[string]bool)
	var crateDeps []string
	for _, set := range depSets {
		for _, d := range set {
			if !seen[d] {
				seen[d] = true
				crateDeps = append(crateDeps, d)
			}
		}
	}
	sort.Strings(crateDeps)

	files["Cargo.toml"] = manifest.Generate(manifest.Options{
		Name:      req.CrateName,
		Library:   req.EntryModule == "",
		CrateDeps: crateDeps,
		Modules:   req.Modules,
		Extra:     req.ExtraDeps,
	})
	files["src/lib.rs"] = manifest.LibRS(moduleNames)
	if req.EntryModule != "" {
		files["src/main.rs"] = manifest.MainRS(req.EntryModule, req.CrateName)
	}

	return &Result{Files: files, Modules: results, Bag: bag}
}
