package ir

// ExprInfo carries the metadata every expression node shares: the type
// the front end resolved for it (may be nil) and the source line it was
// built from (0 when unknown). Embed it in every Expr variant.
type ExprInfo struct {
	Type Type
	Line int
}

// TypeOf returns the resolved annotation type, which may be nil.
func (i ExprInfo) TypeOf() Type { return i.Type }

// LineOf returns the source line, 0 when unknown.
func (i ExprInfo) LineOf() int { return i.Line }

func (ExprInfo) exprNode() {}

// Expr is the closed set of expression nodes.
type Expr interface {
	exprNode()
	TypeOf() Type
	LineOf() int
}

// Kwarg is one keyword argument in source order.
type Kwarg struct {
	Name  string
	Value Expr
}

// Literal is a scalar literal. Value holds int64, float64, string,
// bool, or nil for the absent value.
type Literal struct {
	ExprInfo
	Value any
}

// Name is a variable reference. Mutable reports whether the front end
// determined the binding is reassigned.
type Name struct {
	ExprInfo
	Ident   string
	Mutable bool
}

// Binary is a binary operation.
type Binary struct {
	ExprInfo
	Op    BinOp
	Left  Expr
	Right Expr
}

// Unary is a unary operation.
type Unary struct {
	ExprInfo
	Op      UnaryOp
	Operand Expr
}

// Call is a free-function (or constructor) call.
type Call struct {
	ExprInfo
	Fn     Expr
	Args   []Expr
	Kwargs []Kwarg
}

// MethodCall is a call on a receiver expression.
type MethodCall struct {
	ExprInfo
	Recv   Expr
	Method string
	Args   []Expr
	Kwargs []Kwarg
}

// Attribute is attribute access (recv.attr).
type Attribute struct {
	ExprInfo
	Recv Expr
	Attr string
}

// Subscript is index access (recv[index]). Index may be a Slice.
type Subscript struct {
	ExprInfo
	Recv  Expr
	Index Expr
}

// Slice is a range index (s[low:high:step]); any bound may be nil for
// an open end. Only valid as a Subscript index.
type Slice struct {
	ExprInfo
	Low  Expr
	High Expr
	Step Expr
}

// ListLit is a list literal.
type ListLit struct {
	ExprInfo
	Elems []Expr
}

// DictLit is a map literal; Keys and Values are parallel.
type DictLit struct {
	ExprInfo
	Keys   []Expr
	Values []Expr
}

// SetLit is a set literal.
type SetLit struct {
	ExprInfo
	Elems []Expr
}

// TupleLit is a tuple literal.
type TupleLit struct {
	ExprInfo
	Elems []Expr
}

// Cond is a conditional expression (then if cond else other).
type Cond struct {
	ExprInfo
	Cond Expr
	Then Expr
	Else Expr
}

// ListComp is a list comprehension. Conds are the guards in source
// order; Target is the bound element name.
type ListComp struct {
	ExprInfo
	Elem   Expr
	Target string
	Iter   Expr
	Conds  []Expr
}

// FormattedValue is one interpolated slot of an FString with an
// optional format spec ("x", ".2f", ...).
type FormattedValue struct {
	ExprInfo
	Value Expr
	Spec  string
}

// FString is a formatted string literal; Parts alternates string
// Literals and interpolated expressions.
type FString struct {
	ExprInfo
	Parts []Expr
}

// Await is an await expression. The emitter carries the async flag as
// metadata only; it does not render suspension itself.
type Await struct {
	ExprInfo
	Value Expr
}
