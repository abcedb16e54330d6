package emit

import (
	"strings"

	"oxidize/internal/ir"
)

// rustKeywords are identifiers that need raw-identifier escaping in
// emitted code.
var rustKeywords = map[string]bool{
	"as": true, "async": true, "await": true, "break": true,
	"const": true, "continue": true, "crate": true, "dyn": true,
	"else": true, "enum": true, "extern": true, "fn": true,
	"for": true, "if": true, "impl": true, "in": true, "let": true,
	"loop": true, "match": true, "mod": true, "move": true,
	"mut": true, "pub": true, "ref": true, "return": true,
	"self": true, "static": true, "struct": true, "super": true,
	"trait": true, "type": true, "union": true, "unsafe": true,
	"use": true, "where": true, "while": true,
}

// escapeKeyword renders an identifier as a raw identifier when it
// collides with a Rust keyword.
func escapeKeyword(name string) string {
	if rustKeywords[name] {
		return "r#" + name
	}
	return name
}

// context is the emission state threaded through every recursive call.
// It is owned by exactly one Emitter instance per run and never shared.
type context struct {
	indent int

	// enclosing scope
	inImpl       bool
	currentClass string
	lastStmt     bool

	// registries built before body emission
	classNames   map[string]bool
	resultFuncs  map[string]bool
	localModules map[string]bool

	// per-function state
	inResultCtx bool

	// side channels accumulated during emission
	typeEnv      map[string]string
	stdImports   map[string]struct{}
	cargoDeps    map[string]struct{}
	localImports map[string][]ir.ImportName

	// crate name used when the emitted file is a binary root importing
	// from the library crate; empty means "crate::"
	crateName string
}

func newContext() *context {
	return &context{
		classNames:   make(map[string]bool),
		resultFuncs:  make(map[string]bool),
		localModules: make(map[string]bool),
		typeEnv:      make(map[string]string),
		stdImports:   make(map[string]struct{}),
		cargoDeps:    make(map[string]struct{}),
		localImports: make(map[string][]ir.ImportName),
	}
}

func (c *context) indentStr() string {
	return strings.Repeat("    ", c.indent)
}
