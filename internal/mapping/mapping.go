// Package mapping provides the lookup tables that translate source
// API references (namespace, member) into Rust code templates. Tables
// come from two places: the built-in table covering the common source
// standard library, and TOML mapping packs installed alongside the
// tool for third-party APIs.
package mapping

import (
	"strconv"
	"strings"
)

// Entry is one translation rule. Template is an opaque, pre-validated
// Rust fragment with placeholder slots; the emitter performs no syntax
// validation of it. Fallible marks calls that produce a Result and thus
// participate in error propagation. CargoDeps name crates ("serde" or
// "serde@1.0") the generated project must depend on.
type Entry struct {
	Template  string
	Imports   []string
	CargoDeps []string
	Fallible  bool
}

// Provider is the lookup interface the emitter consults.
type Provider interface {
	// Lookup translates a module-level binding such as ("os", "getcwd")
	// or ("datetime.datetime", "now").
	Lookup(namespace, member string) (Entry, bool)
	// LookupTypedMember translates an instance member of a recognized
	// value type, such as ("datetime", "strftime").
	LookupTypedMember(typeName, member string) (Entry, bool)
}

// Chain consults providers in order and returns the first hit.
type Chain []Provider

// Lookup implements Provider.
func (c Chain) Lookup(namespace, member string) (Entry, bool) {
	for _, p := range c {
		if e, ok := p.Lookup(namespace, member); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// LookupTypedMember implements Provider.
func (c Chain) LookupTypedMember(typeName, member string) (Entry, bool) {
	for _, p := range c {
		if e, ok := p.LookupTypedMember(typeName, member); ok {
			return e, true
		}
	}
	return Entry{}, false
}

// Table is a Provider backed by in-memory maps. Keys are
// "namespace.member" for bindings and "typeName.member" for typed
// members.
type Table struct {
	name    string
	entries map[string]Entry
	members map[string]Entry
}

// NewTable creates an empty named table.
func NewTable(name string) *Table {
	return &Table{
		name:    name,
		entries: make(map[string]Entry),
		members: make(map[string]Entry),
	}
}

// Name returns the table's name (for listings).
func (t *Table) Name() string { return t.name }

// Add inserts a binding rule under "namespace.member".
func (t *Table) Add(key string, e Entry) { t.entries[key] = e }

// AddMember inserts a typed-member rule under "typeName.member".
func (t *Table) AddMember(key string, e Entry) { t.members[key] = e }

// Lookup implements Provider.
func (t *Table) Lookup(namespace, member string) (Entry, bool) {
	e, ok := t.entries[namespace+"."+member]
	return e, ok
}

// LookupTypedMember implements Provider.
func (t *Table) LookupTypedMember(typeName, member string) (Entry, bool) {
	e, ok := t.members[typeName+"."+member]
	return e, ok
}

// Len returns the number of rules in the table.
func (t *Table) Len() int { return len(t.entries) + len(t.members) }

// Keys returns every rule key in unspecified order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, t.Len())
	for k := range t.entries {
		keys = append(keys, k)
	}
	for k := range t.members {
		keys = append(keys, k)
	}
	return keys
}

// Expand substitutes placeholder slots in a template. {self} receives
// the receiver text, {args} the comma-joined argument list, {argN} the
// N-th argument, and any remaining {name} placeholder the keyword
// argument of that name.
func Expand(template string, args []string, kwargs map[string]string, self string) string {
	out := template
	if self != "" {
		out = strings.ReplaceAll(out, "{self}", self)
	}
	if strings.Contains(out, "{args}") {
		out = strings.ReplaceAll(out, "{args}", strings.Join(args, ", "))
	}
	for i, a := range args {
		out = strings.ReplaceAll(out, "{arg"+strconv.Itoa(i)+"}", a)
	}
	for name, val := range kwargs {
		out = strings.ReplaceAll(out, "{"+name+"}", val)
	}
	return out
}
