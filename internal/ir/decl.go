package ir

// Param is one function parameter in declaration order.
type Param struct {
	Name    string
	Type    Type
	Default Expr
}

// Function is a function or method definition. All flags are computed
// by the front end; MutatesSelf drives &mut self rendering, Async is
// metadata for the manifest generator only. RustAttrs are passthrough
// attribute lines emitted verbatim before the item.
type Function struct {
	Name        string
	Params      []Param
	Return      Type
	Body        []Stmt
	Method      bool
	Static      bool
	ClassMethod bool
	Async       bool
	MutatesSelf bool
	Doc         string
	Line        int
	RustAttrs   []string
}

// Field is one instance field of a Class in declaration order.
type Field struct {
	Name string
	Type Type
}

// Class is a class definition. HasEnter/HasExit record the presence of
// the scoped-resource hooks; a class with both renders a Drop impl in
// place of the hook methods.
type Class struct {
	Name      string
	Bases     []string
	Fields    []Field
	Methods   []*Function
	Dataclass bool
	Doc       string
	Line      int
	RustAttrs []string
	HasEnter  bool
	HasExit   bool
}

// ImportName is one imported binding with an optional alias.
type ImportName struct {
	Name  string
	Alias string
}

// Import is a source import statement.
type Import struct {
	Module string
	Names  []ImportName
	Line   int
}

// Module is one complete translation unit. The IR is built once by the
// front end and treated as immutable from here on; Resolver and Emitter
// hold only non-owning references while traversing.
type Module struct {
	Name    string
	Imports []*Import
	Funcs   []*Function
	Classes []*Class
	Stmts   []Stmt
	Doc     string
}
