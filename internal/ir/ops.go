package ir

// BinOp enumerates binary operators as they appear in the source.
type BinOp uint8

const (
	// OpAdd is addition (+).
	OpAdd BinOp = iota
	// OpSub is subtraction (-).
	OpSub
	// OpMul is multiplication (*).
	OpMul
	// OpDiv is true division (/).
	OpDiv
	// OpFloorDiv is floor division (//).
	OpFloorDiv
	// OpMod is remainder (%).
	OpMod
	// OpPow is exponentiation (**).
	OpPow
	// OpEq is equality (==).
	OpEq
	// OpNe is inequality (!=).
	OpNe
	// OpLt is less-than (<).
	OpLt
	// OpLe is less-or-equal (<=).
	OpLe
	// OpGt is greater-than (>).
	OpGt
	// OpGe is greater-or-equal (>=).
	OpGe
	// OpAnd is logical conjunction.
	OpAnd
	// OpOr is logical disjunction.
	OpOr
	// OpBitAnd is bitwise and (&).
	OpBitAnd
	// OpBitOr is bitwise or (|).
	OpBitOr
	// OpBitXor is bitwise xor (^).
	OpBitXor
	// OpShl is left shift (<<).
	OpShl
	// OpShr is right shift (>>).
	OpShr
	// OpIn is containment (in).
	OpIn
	// OpNotIn is negated containment (not in).
	OpNotIn
	// OpIs is identity (is).
	OpIs
	// OpIsNot is negated identity (is not).
	OpIsNot
)

// String returns the source spelling of the operator.
func (op BinOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpFloorDiv:
		return "//"
	case OpMod:
		return "%"
	case OpPow:
		return "**"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	case OpAnd:
		return "and"
	case OpOr:
		return "or"
	case OpBitAnd:
		return "&"
	case OpBitOr:
		return "|"
	case OpBitXor:
		return "^"
	case OpShl:
		return "<<"
	case OpShr:
		return ">>"
	case OpIn:
		return "in"
	case OpNotIn:
		return "not in"
	case OpIs:
		return "is"
	case OpIsNot:
		return "is not"
	default:
		return "?"
	}
}

// UnaryOp enumerates unary operators.
type UnaryOp uint8

const (
	// OpNeg is arithmetic negation (-).
	OpNeg UnaryOp = iota
	// OpPos is the unary plus (+).
	OpPos
	// OpNot is logical negation (not).
	OpNot
	// OpBitNot is bitwise complement (~).
	OpBitNot
)

// String returns the source spelling of the operator.
func (op UnaryOp) String() string {
	switch op {
	case OpNeg:
		return "-"
	case OpPos:
		return "+"
	case OpNot:
		return "not"
	case OpBitNot:
		return "~"
	default:
		return "?"
	}
}
