package emit

import (
	"fmt"
	"strconv"
	"strings"

	"oxidize/internal/diag"
	"oxidize/internal/ir"
	"oxidize/internal/mapping"
)

var rustBinOps = map[ir.BinOp]string{
	ir.OpAdd:    "+",
	ir.OpSub:    "-",
	ir.OpMul:    "*",
	ir.OpDiv:    "/",
	ir.OpMod:    "%",
	ir.OpEq:     "==",
	ir.OpNe:     "!=",
	ir.OpLt:     "<",
	ir.OpLe:     "<=",
	ir.OpGt:     ">",
	ir.OpGe:     ">=",
	ir.OpAnd:    "&&",
	ir.OpOr:     "||",
	ir.OpBitAnd: "&",
	ir.OpBitOr:  "|",
	ir.OpBitXor: "^",
	ir.OpShl:    "<<",
	ir.OpShr:    ">>",
	ir.OpIs:     "==",
	ir.OpIsNot:  "!=",
}

var rustUnaryOps = map[ir.UnaryOp]string{
	ir.OpNeg:    "-",
	ir.OpPos:    "+",
	ir.OpNot:    "!",
	ir.OpBitNot: "!",
}

func (e *Emitter) emitExpr(x ir.Expr) string {
	if x == nil {
		return "()"
	}

	switch ex := x.(type) {
	case *ir.Literal:
		return emitLiteral(ex)

	case *ir.Name:
		return ex.Ident

	case *ir.Binary:
		return e.emitBinary(ex)

	case *ir.Unary:
		op, ok := rustUnaryOps[ex.Op]
		if !ok {
			op = "!"
		}
		return op + e.emitExpr(ex.Operand)

	case *ir.Call:
		return e.emitCall(ex)

	case *ir.MethodCall:
		return e.emitMethodCall(ex)

	case *ir.Attribute:
		return e.emitAttribute(ex)

	case *ir.Subscript:
		recv := e.emitExpr(ex.Recv)
		return recv + "[" + e.emitExpr(ex.Index) + "]"

	case *ir.Slice:
		return e.emitSlice(ex)

	case *ir.ListLit:
		return "vec![" + e.emitExprList(ex.Elems) + "]"

	case *ir.DictLit:
		pairs := make([]string, len(ex.Keys))
		for i := range ex.Keys {
			pairs[i] = "(" + e.emitExpr(ex.Keys[i]) + ", " + e.emitExpr(ex.Values[i]) + ")"
		}
		return "HashMap::from([" + strings.Join(pairs, ", ") + "])"

	case *ir.SetLit:
		return "HashSet::from([" + e.emitExprList(ex.Elems) + "])"

	case *ir.TupleLit:
		return "(" + e.emitExprList(ex.Elems) + ")"

	case *ir.Cond:
		return "if " + e.emitExpr(ex.Cond) + " { " + e.emitExpr(ex.Then) + " } else { " + e.emitExpr(ex.Else) + " }"

	case *ir.ListComp:
		return e.emitListComp(ex)

	case *ir.FString:
		return e.emitFString(ex)

	case *ir.FormattedValue:
		// Only meaningful inside an f-string; alone it formats to a
		// standalone String.
		return e.emitFString(&ir.FString{Parts: []ir.Expr{ex}})

	case *ir.Await:
		return e.emitExpr(ex.Value) + ".await"

	default:
		e.gap(diag.EmitUnsupportedExpr, x.LineOf(), fmt.Sprintf("expression %T has no translation", x))
		return fmt.Sprintf("/* unsupported: %T */", x)
	}
}

func (e *Emitter) emitExprList(elems []ir.Expr) string {
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = e.emitExpr(el)
	}
	return strings.Join(parts, ", ")
}

func emitLiteral(lit *ir.Literal) string {
	switch v := lit.Value.(type) {
	case nil:
		return "None"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case string:
		return strconv.Quote(v) + ".to_string()"
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		s := strconv.FormatFloat(v, 'g', -1, 64)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		return s
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (e *Emitter) emitBinary(bin *ir.Binary) string {
	left := e.emitExpr(bin.Left)
	right := e.emitExpr(bin.Right)

	// len() comparisons against zero collapse to is_empty, matching
	// clippy's len_zero lint.
	if base, ok := strings.CutSuffix(left, ".len()"); ok && right == "0" {
		switch bin.Op {
		case ir.OpGt, ir.OpNe:
			return "!" + base + ".is_empty()"
		case ir.OpEq:
			return base + ".is_empty()"
		}
	}
	if base, ok := strings.CutSuffix(right, ".len()"); ok && left == "0" {
		switch bin.Op {
		case ir.OpLt:
			return "!" + base + ".is_empty()"
		case ir.OpEq:
			return base + ".is_empty()"
		}
	}
	if base, ok := strings.CutSuffix(left, ".len()"); ok && right == "1" && bin.Op == ir.OpGe {
		return "!" + base + ".is_empty()"
	}

	if bin.Op == ir.OpFloorDiv {
		return left + " / " + right
	}

	if bin.Op == ir.OpPow {
		if _, nested := bin.Left.(*ir.Binary); nested {
			return "((" + left + ") as f64).powf(" + right + " as f64)"
		}
		return "(" + left + " as f64).powf(" + right + " as f64)"
	}

	if bin.Op == ir.OpIn {
		return right + ".contains(&" + left + ")"
	}
	if bin.Op == ir.OpNotIn {
		return "!" + right + ".contains(&" + left + ")"
	}

	// + on strings becomes format!, which accepts String and &str
	// operands alike. Resolved types decide; the textual heuristic
	// only backstops untyped operands.
	if bin.Op == ir.OpAdd {
		if isStrType(bin.Left.TypeOf()) || isStrType(bin.Right.TypeOf()) ||
			looksLikeString(left) || looksLikeString(right) {
			return `format!("{}{}", ` + left + ", " + right + ")"
		}
	}

	op, ok := rustBinOps[bin.Op]
	if !ok {
		op = "+"
	}

	if _, nested := bin.Left.(*ir.Binary); nested {
		left = "(" + left + ")"
	}
	if _, nested := bin.Right.(*ir.Binary); nested {
		right = "(" + right + ")"
	}
	return left + " " + op + " " + right
}

func looksLikeString(exprStr string) bool {
	return strings.HasSuffix(exprStr, ".to_string()")
}

func (e *Emitter) emitSlice(sl *ir.Slice) string {
	low := ""
	if sl.Low != nil {
		low = e.emitExpr(sl.Low)
	}
	high := ""
	if sl.High != nil {
		high = e.emitExpr(sl.High)
	}
	if sl.Step != nil {
		e.gap(diag.EmitUnsupportedExpr, sl.LineOf(), "slice step is ignored")
	}
	return low + ".." + high
}

// emitAttribute resolves a bare attribute access: a mapping rule for
// module attributes like sys.argv, then a typed member of a tracked
// variable, then plain field access.
func (e *Emitter) emitAttribute(attr *ir.Attribute) string {
	if name, ok := attr.Recv.(*ir.Name); ok {
		if entry, ok := e.provider.Lookup(name.Ident, attr.Attr); ok {
			e.recordEntry(entry)
			return entry.Template
		}
		if varType, ok := e.ctx.typeEnv[name.Ident]; ok {
			className := varType
			if i := strings.LastIndexByte(varType, '.'); i >= 0 {
				className = varType[i+1:]
			}
			if entry, ok := e.provider.LookupTypedMember(className, attr.Attr); ok {
				e.recordEntry(entry)
				return mapping.Expand(entry.Template, nil, nil, e.emitExpr(attr.Recv))
			}
		}
	}
	return e.emitExpr(attr.Recv) + "." + attr.Attr
}

func (e *Emitter) emitListComp(comp *ir.ListComp) string {
	var b strings.Builder
	b.WriteString(e.emitExpr(comp.Iter))
	b.WriteString(".iter()")
	for _, cond := range comp.Conds {
		b.WriteString(".filter(|" + comp.Target + "| " + e.emitExpr(cond) + ")")
	}
	b.WriteString(".map(|" + comp.Target + "| " + e.emitExpr(comp.Elem) + ")")
	b.WriteString(".collect::<Vec<_>>()")
	return b.String()
}

func (e *Emitter) emitFString(fs *ir.FString) string {
	var format strings.Builder
	var args []string

	for _, part := range fs.Parts {
		if lit, ok := part.(*ir.Literal); ok {
			if s, ok := lit.Value.(string); ok {
				escaped := strings.ReplaceAll(s, "{", "{{")
				escaped = strings.ReplaceAll(escaped, "}", "}}")
				format.WriteString(escaped)
				continue
			}
		}
		if fv, ok := part.(*ir.FormattedValue); ok {
			if fv.Spec != "" {
				format.WriteString("{:" + fv.Spec + "}")
			} else {
				format.WriteString("{}")
			}
			args = append(args, e.emitExpr(fv.Value))
			continue
		}
		format.WriteString("{}")
		args = append(args, e.emitExpr(part))
	}

	if len(args) > 0 {
		return `format!("` + format.String() + `", ` + strings.Join(args, ", ") + ")"
	}
	return `"` + format.String() + `".to_string()`
}
