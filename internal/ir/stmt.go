package ir

// StmtInfo carries the source line shared by statement nodes.
type StmtInfo struct {
	Line int
}

// LineOf returns the source line, 0 when unknown.
func (i StmtInfo) LineOf() int { return i.Line }

func (StmtInfo) stmtNode() {}

// Stmt is the closed set of statement nodes.
type Stmt interface {
	stmtNode()
	LineOf() int
}

// Assign is a scalar assignment. Decl distinguishes the first binding
// (let) from reassignment; both flags are computed by the front end and
// never re-derived during emission.
type Assign struct {
	StmtInfo
	Target  string
	Value   Expr
	TypeAnn Type
	Decl    bool
	Mutable bool
}

// TupleAssign is a destructuring assignment (a, b = expr). TypeAnns and
// Mutable are per-target and may be shorter than Targets.
type TupleAssign struct {
	StmtInfo
	Targets  []string
	Value    Expr
	TypeAnns []Type
	Decl     bool
	Mutable  []bool
}

// AttrAssign is assignment to an attribute (recv.attr = value).
type AttrAssign struct {
	StmtInfo
	Recv    Expr
	Attr    string
	Value   Expr
	TypeAnn Type
}

// Return is a return statement; Value may be nil.
type Return struct {
	StmtInfo
	Value Expr
}

// ElseIf is one elif clause of an If.
type ElseIf struct {
	Cond Expr
	Body []Stmt
}

// If is a conditional statement with optional elif chain and else body.
type If struct {
	StmtInfo
	Cond  Expr
	Then  []Stmt
	Elifs []ElseIf
	Else  []Stmt
}

// While is a while loop.
type While struct {
	StmtInfo
	Cond Expr
	Body []Stmt
}

// For is a for-in loop over an iterable.
type For struct {
	StmtInfo
	Target     string
	TargetType Type
	Iter       Expr
	Body       []Stmt
}

// Break is a break statement.
type Break struct {
	StmtInfo
}

// Continue is a continue statement.
type Continue struct {
	StmtInfo
}

// ExprStmt is an expression evaluated for effect.
type ExprStmt struct {
	StmtInfo
	X Expr
}

// With is a scoped-resource block; Target is the bound name ("" when
// absent).
type With struct {
	StmtInfo
	Ctx    Expr
	Target string
	Body   []Stmt
}

// Handler is one except clause of a Try. ExcType and Name may be empty.
type Handler struct {
	ExcType string
	Name    string
	Body    []Stmt
}

// Try is an exception block with handlers and an optional finally body.
type Try struct {
	StmtInfo
	Body     []Stmt
	Handlers []Handler
	Finally  []Stmt
}

// Raise is a raise statement; a nil Exc is a bare re-raise.
type Raise struct {
	StmtInfo
	Exc Expr
}

// Pass is the no-op statement.
type Pass struct {
	StmtInfo
}
