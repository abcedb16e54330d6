package emit

import (
	"strings"

	"oxidize/internal/diag"
	"oxidize/internal/ir"
)

// fallibleCall reports whether the expression is a call into a
// function or method known to return Result.
func (e *Emitter) fallibleCall(x ir.Expr) bool {
	switch call := x.(type) {
	case *ir.Call:
		return e.ctx.resultFuncs[e.emitExpr(call.Fn)]
	case *ir.MethodCall:
		return e.ctx.resultFuncs[call.Method]
	default:
		return false
	}
}

// matchableTry reports whether a try block has the narrow shape that
// lowers to a match on Result: exactly one statement, at least one
// handler, and the statement is an assignment from or a bare call to a
// fallible function.
func (e *Emitter) matchableTry(st *ir.Try) bool {
	if len(st.Body) != 1 || len(st.Handlers) == 0 {
		return false
	}
	switch inner := st.Body[0].(type) {
	case *ir.Assign:
		return inner.Value != nil && e.fallibleCall(inner.Value)
	case *ir.ExprStmt:
		return e.fallibleCall(inner.X)
	default:
		return false
	}
}

func (e *Emitter) emitTry(st *ir.Try) string {
	indent := e.ctx.indentStr()

	if e.matchableTry(st) {
		switch inner := st.Body[0].(type) {
		case *ir.Assign:
			return e.emitTryAsMatch(st, e.emitExpr(inner.Value), "Ok("+inner.Target+") => {}")
		case *ir.ExprStmt:
			return e.emitTryAsMatch(st, e.emitExpr(inner.X), "Ok(_) => {}")
		}
	}

	var lines []string

	if len(st.Handlers) > 0 {
		// The loose shape catches panics instead of matching a Result.
		e.gap(diag.EmitLooseTryShape, st.LineOf(), "try block lowered to catch_unwind")

		lines = append(lines, indent+"if let Err(_panic_err) = std::panic::catch_unwind(std::panic::AssertUnwindSafe(|| {")
		lines = append(lines, e.emitBlock(st.Body)...)
		lines = append(lines, indent+"})) {")
		lines = append(lines, e.emitBlock(st.Handlers[0].Body)...)
		lines = append(lines, indent+"}")
	} else {
		lines = append(lines, indent+"{")
		lines = append(lines, e.emitBlock(st.Body)...)
		lines = append(lines, indent+"}")
	}

	lines = append(lines, e.emitFinally(st, indent)...)
	return strings.Join(lines, "\n")
}

// emitTryAsMatch lowers the narrow try shape to a match with an Ok arm
// that binds (or discards) and an Err arm running the first handler.
func (e *Emitter) emitTryAsMatch(st *ir.Try, callExpr, okArm string) string {
	var lines []string
	indent := e.ctx.indentStr()

	lines = append(lines, indent+"match "+callExpr+" {")
	e.ctx.indent++
	inner := e.ctx.indentStr()

	lines = append(lines, inner+okArm)

	handler := st.Handlers[0]
	errName := handler.Name
	if errName == "" {
		errName = "_err"
	}
	lines = append(lines, inner+"Err("+errName+") => {")
	lines = append(lines, e.emitBlock(handler.Body)...)
	lines = append(lines, inner+"}")

	e.ctx.indent--
	lines = append(lines, indent+"}")

	lines = append(lines, e.emitFinally(st, indent)...)
	return strings.Join(lines, "\n")
}

func (e *Emitter) emitFinally(st *ir.Try, indent string) []string {
	if len(st.Finally) == 0 {
		return nil
	}
	lines := []string{indent + "// finally block"}
	prev := e.ctx.lastStmt
	e.ctx.lastStmt = false
	for _, s := range st.Finally {
		lines = append(lines, e.emitStmt(s))
	}
	e.ctx.lastStmt = prev
	return lines
}
