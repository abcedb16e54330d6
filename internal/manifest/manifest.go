// Package manifest renders the Cargo.toml for a generated crate. The
// dependency set is derived from the crates the emitter touched plus a
// small always-on base, with versions pinned by a known-crate registry.
package manifest

import (
	"fmt"
	"sort"
	"strings"

	"oxidize/internal/ir"
)

// Dependency is one [dependencies] entry.
type Dependency struct {
	Name     string
	Version  string
	Features []string
	Optional bool
}

// TOML renders the entry in the short string form when only a version
// is set, and the inline-table form otherwise.
func (d Dependency) TOML() string {
	if len(d.Features) == 0 && !d.Optional {
		return fmt.Sprintf("%s = %q", d.Name, d.Version)
	}
	parts := []string{fmt.Sprintf("version = %q", d.Version)}
	if len(d.Features) > 0 {
		quoted := make([]string, len(d.Features))
		for i, f := range d.Features {
			quoted[i] = fmt.Sprintf("%q", f)
		}
		parts = append(parts, "features = ["+strings.Join(quoted, ", ")+"]")
	}
	if d.Optional {
		parts = append(parts, "optional = true")
	}
	return fmt.Sprintf("%s = { %s }", d.Name, strings.Join(parts, ", "))
}

// baseDeps ship with every generated crate.
var baseDeps = []Dependency{
	{Name: "thiserror", Version: "1.0"},
	{Name: "anyhow", Version: "1.0"},
}

// knownCrates pins versions and default features for crates the
// mapping tables can request by bare name. An unknown name falls back
// to "*".
var knownCrates = map[string]Dependency{
	"serde":      {Name: "serde", Version: "1.0", Features: []string{"derive"}},
	"serde_json": {Name: "serde_json", Version: "1.0"},
	"chrono":     {Name: "chrono", Version: "0.4"},
	"tempfile":   {Name: "tempfile", Version: "3"},
	"which":      {Name: "which", Version: "6"},
	"rand":       {Name: "rand", Version: "0.8"},
	"rand_distr": {Name: "rand_distr", Version: "0.4"},
	"indexmap":   {Name: "indexmap", Version: "2.0"},
	"glob":       {Name: "glob", Version: "0.3"},
	"log":        {Name: "log", Version: "0.4"},
	"env_logger": {Name: "env_logger", Version: "0.11"},
	"tokio":      {Name: "tokio", Version: "1", Features: []string{"full"}},
	"clap":       {Name: "clap", Version: "4", Features: []string{"derive"}},
}

// Resolve turns a bare crate name, or a name@version override, into a
// pinned dependency.
func Resolve(spec string) Dependency {
	name, version, pinned := strings.Cut(spec, "@")
	if dep, ok := knownCrates[name]; ok {
		if pinned {
			dep.Version = version
		}
		return dep
	}
	if !pinned {
		version = "*"
	}
	return Dependency{Name: name, Version: version}
}

// Options configures Generate.
type Options struct {
	Name    string
	Version string // crate version, default 0.1.0
	Edition string // default 2021
	Library bool

	// CrateDeps are the crate names (or name@version specs) the
	// emitter accumulated from mapping entries.
	CrateDeps []string
	// Modules, when set, are scanned for async functions and
	// passthrough derive attributes that imply extra crates.
	Modules []*ir.Module
	// Extra dependencies appended last; they win on name collision.
	Extra []Dependency
}

// Generate renders a complete Cargo.toml.
func Generate(opts Options) string {
	version := opts.Version
	if version == "" {
		version = "0.1.0"
	}
	edition := opts.Edition
	if edition == "" {
		edition = "2021"
	}

	deps := make(map[string]Dependency)
	for _, d := range baseDeps {
		deps[d.Name] = d
	}
	for _, spec := range opts.CrateDeps {
		d := Resolve(spec)
		deps[d.Name] = d
	}
	for _, d := range scanModules(opts.Modules) {
		deps[d.Name] = d
	}
	for _, d := range opts.Extra {
		deps[d.Name] = d
	}

	names := make([]string, 0, len(deps))
	for n := range deps {
		names = append(names, n)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("[package]\n")
	fmt.Fprintf(&b, "name = %q\n", opts.Name)
	fmt.Fprintf(&b, "version = %q\n", version)
	fmt.Fprintf(&b, "edition = %q\n", edition)
	b.WriteString("\n[dependencies]\n")
	for _, n := range names {
		b.WriteString(deps[n].TOML())
		b.WriteByte('\n')
	}

	if !opts.Library {
		b.WriteString("\n[[bin]]\n")
		fmt.Fprintf(&b, "name = %q\n", opts.Name)
		b.WriteString("path = \"src/main.rs\"\n")
	}

	// Generated code trips a handful of lints that are safe to
	// silence crate-wide.
	b.WriteString("\n[lints.rust]\n")
	b.WriteString("unused_must_use = \"allow\"\n")
	b.WriteString("\n[lints.clippy]\n")
	b.WriteString("unnecessary_cast = \"allow\"\n")
	b.WriteString("vec_init_then_push = \"allow\"\n")
	b.WriteString("unnecessary_to_owned = \"allow\"\n")
	b.WriteString("format_in_format_args = \"allow\"\n")

	return b.String()
}

// scanModules derives dependencies from module shape: tokio for async
// functions, serde for passthrough Serialize/Deserialize derives, clap
// for a passthrough Parser derive.
func scanModules(modules []*ir.Module) []Dependency {
	var out []Dependency
	async := false
	serde := false
	clapDerive := false

	for _, m := range modules {
		for _, fn := range m.Funcs {
			if fn.Async {
				async = true
			}
			serde, clapDerive = scanAttrs(fn.RustAttrs, serde, clapDerive)
		}
		for _, cls := range m.Classes {
			serde, clapDerive = scanAttrs(cls.RustAttrs, serde, clapDerive)
			for _, method := range cls.Methods {
				if method.Async {
					async = true
				}
			}
		}
	}

	if async {
		out = append(out, knownCrates["tokio"])
	}
	if serde {
		out = append(out, knownCrates["serde"], knownCrates["serde_json"])
	}
	if clapDerive {
		out = append(out, knownCrates["clap"])
	}
	return out
}

func scanAttrs(attrs []string, serde, clapDerive bool) (bool, bool) {
	for _, attr := range attrs {
		inner, ok := deriveList(attr)
		if !ok {
			continue
		}
		for _, d := range strings.Split(inner, ",") {
			switch strings.TrimSpace(d) {
			case "Serialize", "Deserialize":
				serde = true
			case "Parser":
				clapDerive = true
			}
		}
	}
	return serde, clapDerive
}

func deriveList(attr string) (string, bool) {
	_, rest, ok := strings.Cut(attr, "#[derive(")
	if !ok {
		return "", false
	}
	inner, _, ok := strings.Cut(rest, ")")
	return inner, ok
}

// LibRS renders a lib.rs re-exporting the given modules.
func LibRS(moduleNames []string) string {
	sorted := append([]string(nil), moduleNames...)
	sort.Strings(sorted)
	var b strings.Builder
	for _, name := range sorted {
		b.WriteString("pub mod " + name + ";\n")
	}
	return b.String()
}

// MainRS renders a main.rs delegating to the entry module.
func MainRS(entryModule, crateName string) string {
	if entryModule == "" {
		return "fn main() {\n    println!(\"Hello!\");\n}\n"
	}
	if crateName != "" {
		return "fn main() {\n    " + crateName + "::" + entryModule + "::main();\n}\n"
	}
	return "mod " + entryModule + ";\n\nfn main() {\n    " + entryModule + "::main();\n}\n"
}
