// Package resolve maps IR annotation types to Rust type descriptors.
package resolve

import (
	"fmt"
	"sort"
	"strings"

	"oxidize/internal/ir"
)

// RustType is a resolved Rust type descriptor. It serializes to Rust
// syntax via Rust().
type RustType struct {
	Name     string
	Generics []RustType
	Ref      bool
	Mut      bool
	Lifetime string
}

// Rust renders the descriptor in Rust type syntax.
func (t RustType) Rust() string {
	result := t.Name
	if len(t.Generics) > 0 {
		parts := make([]string, len(t.Generics))
		for i, g := range t.Generics {
			parts[i] = g.Rust()
		}
		result = fmt.Sprintf("%s<%s>", result, strings.Join(parts, ", "))
	}
	if t.Ref {
		lifetime := ""
		if t.Lifetime != "" {
			lifetime = "'" + t.Lifetime + " "
		}
		mut := ""
		if t.Mut {
			mut = "mut "
		}
		result = "&" + lifetime + mut + result
	}
	return result
}

// Unit is the Rust unit type, the degradation target for unrecognized
// or absent annotations.
var Unit = RustType{Name: "()"}

var primNames = map[ir.PrimKind]string{
	ir.PrimInt:   "i64",
	ir.PrimFloat: "f64",
	ir.PrimBool:  "bool",
	ir.PrimStr:   "String",
	ir.PrimBytes: "Vec<u8>",
	ir.PrimNone:  "()",
}

var genericNames = map[string]string{
	"List":      "Vec",
	"list":      "Vec",
	"Dict":      "HashMap",
	"dict":      "HashMap",
	"Set":       "HashSet",
	"set":       "HashSet",
	"Sequence":  "Vec",
	"Mapping":   "HashMap",
	"FrozenSet": "HashSet",
	"frozenset": "HashSet",
	"Iterable":  "Vec",
	"Iterator":  "Vec",
}

// pathClassNames are the well-known filesystem path classes that
// resolve to PathBuf.
var pathClassNames = map[string]bool{
	"Path":        true,
	"PurePath":    true,
	"PosixPath":   true,
	"WindowsPath": true,
}

// Resolver maps IR types to Rust types, accumulating required imports
// and a registry of user-defined class types. It is not safe for
// concurrent use; the driver builds one registry per run and gives each
// emitter its own seeded Resolver.
type Resolver struct {
	imports map[string]struct{}
	custom  map[string]RustType

	onUnionFallback func(desc string)
}

// New creates an empty Resolver.
func New() *Resolver {
	return &Resolver{
		imports: make(map[string]struct{}),
		custom:  make(map[string]RustType),
	}
}

// ForModule creates a Resolver with every class of the module
// registered, enabling forward references between sibling classes.
func ForModule(m *ir.Module) *Resolver {
	r := New()
	for _, cls := range m.Classes {
		r.RegisterClass(cls.Name)
	}
	return r
}

// OnUnionFallback registers a callback invoked whenever a union without
// a generated name degrades to the placeholder type. The emitter uses
// it to surface the degradation as a diagnostic.
func (r *Resolver) OnUnionFallback(fn func(desc string)) {
	r.onUnionFallback = fn
}

// RegisterClass records a user-defined class under its own name.
func (r *Resolver) RegisterClass(name string) {
	r.RegisterClassAs(name, RustType{Name: name})
}

// RegisterClassAs records a user-defined class with an explicit
// resolution target.
func (r *Resolver) RegisterClassAs(name string, rt RustType) {
	r.custom[name] = rt
}

// Resolve maps an IR type to a Rust type. It is total: a nil or
// unrecognized type degrades to the unit type so translation always
// produces valid output; real failures surface in the front end.
func (r *Resolver) Resolve(t ir.Type) RustType {
	switch ty := t.(type) {
	case nil:
		return Unit
	case *ir.PrimType:
		return r.resolvePrim(ty)
	case *ir.GenericType:
		return r.resolveGeneric(ty)
	case *ir.UnionType:
		return r.resolveUnion(ty)
	case *ir.ClassType:
		return r.resolveClass(ty)
	case *ir.FuncType:
		return r.resolveFunc(ty)
	default:
		return Unit
	}
}

func (r *Resolver) resolvePrim(t *ir.PrimType) RustType {
	if name, ok := primNames[t.Kind]; ok {
		return RustType{Name: name}
	}
	return Unit
}

func (r *Resolver) resolveGeneric(t *ir.GenericType) RustType {
	switch t.Name {
	case "Optional":
		inner := Unit
		if len(t.Args) > 0 {
			inner = r.Resolve(t.Args[0])
		}
		return RustType{Name: "Option", Generics: []RustType{inner}}
	case "Tuple", "tuple":
		if len(t.Args) == 0 {
			return Unit
		}
		parts := make([]string, len(t.Args))
		for i, a := range t.Args {
			parts[i] = r.Resolve(a).Rust()
		}
		return RustType{Name: "(" + strings.Join(parts, ", ") + ")"}
	}

	name, known := genericNames[t.Name]
	if !known {
		name = t.Name
	}
	if name == "HashMap" || name == "HashSet" {
		r.imports["std::collections"] = struct{}{}
	}
	generics := make([]RustType, len(t.Args))
	for i, a := range t.Args {
		generics[i] = r.Resolve(a)
	}
	return RustType{Name: name, Generics: generics}
}

func (r *Resolver) resolveUnion(t *ir.UnionType) RustType {
	// Union[T, None] in either order is Optional[T].
	if len(t.Variants) == 2 {
		var noneCount int
		var other ir.Type
		for _, v := range t.Variants {
			if isNone(v) {
				noneCount++
			} else {
				other = v
			}
		}
		if noneCount == 1 {
			return RustType{Name: "Option", Generics: []RustType{r.Resolve(other)}}
		}
	}
	if t.GeneratedName != "" {
		return RustType{Name: t.GeneratedName}
	}
	// Enum synthesis belongs to the front end; a deterministic
	// placeholder keeps the output renderable.
	if r.onUnionFallback != nil {
		r.onUnionFallback(ir.TypeString(t))
	}
	return RustType{Name: "UnionType"}
}

func (r *Resolver) resolveClass(t *ir.ClassType) RustType {
	if pathClassNames[t.Name] {
		r.imports["std::path"] = struct{}{}
		return RustType{Name: "PathBuf"}
	}
	if rt, ok := r.custom[t.Name]; ok {
		return rt
	}
	// Unknown class names pass through as-is; the name is assumed to be
	// a valid Rust type defined elsewhere in the crate.
	return RustType{Name: t.Name}
}

func (r *Resolver) resolveFunc(t *ir.FuncType) RustType {
	params := make([]string, len(t.Params))
	for i, pt := range t.Params {
		params[i] = r.Resolve(pt).Rust()
	}
	ret := r.Resolve(t.Return)
	name := fmt.Sprintf("fn(%s) -> %s", strings.Join(params, ", "), ret.Rust())
	return RustType{Name: name}
}

func isNone(t ir.Type) bool {
	pt, ok := t.(*ir.PrimType)
	return ok && pt.Kind == ir.PrimNone
}

// Imports returns the sorted, deduplicated use statements accumulated
// by resolution so far. Call it once per module after all resolution.
func (r *Resolver) Imports() []string {
	var uses []string
	if _, ok := r.imports["std::collections"]; ok {
		uses = append(uses, "use std::collections::{HashMap, HashSet};")
	}
	if _, ok := r.imports["std::path"]; ok {
		uses = append(uses, "use std::path::PathBuf;")
	}
	sort.Strings(uses)
	return uses
}

// Registered reports whether a class name is in the registry.
func (r *Resolver) Registered(name string) bool {
	_, ok := r.custom[name]
	return ok
}
