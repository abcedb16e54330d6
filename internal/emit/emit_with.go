package emit

import (
	"strings"

	"oxidize/internal/ir"
)

// tempfileCtx reports whether the context expression builds a tempfile
// object whose entered value is a path rather than the object itself.
func tempfileCtx(x ir.Expr) bool {
	mc, ok := x.(*ir.MethodCall)
	if !ok {
		return false
	}
	recv, ok := mc.Recv.(*ir.Name)
	if !ok || recv.Ident != "tempfile" {
		return false
	}
	return mc.Method == "TemporaryDirectory" || mc.Method == "NamedTemporaryFile"
}

// emitWith lowers a with statement to a lexical block. The guard value
// is bound at the top and dropped at the closing brace.
func (e *Emitter) emitWith(st *ir.With) string {
	var lines []string
	indent := e.ctx.indentStr()

	ctxExpr := e.emitExpr(st.Ctx)

	lines = append(lines, indent+"{")
	e.ctx.indent++
	inner := e.ctx.indentStr()

	switch {
	case st.Target != "" && tempfileCtx(st.Ctx):
		// Keep the guard alive for the whole block while the target
		// binds the path it manages.
		lines = append(lines, inner+"let _temp_ctx = "+ctxExpr+";")
		lines = append(lines, inner+"let "+st.Target+" = _temp_ctx.path().to_string_lossy().to_string();")
	case st.Target != "":
		lines = append(lines, inner+"let mut "+st.Target+" = "+ctxExpr+";")
	default:
		lines = append(lines, inner+"let _ctx = "+ctxExpr+";")
	}

	prev := e.ctx.lastStmt
	e.ctx.lastStmt = false
	for _, s := range st.Body {
		lines = append(lines, e.emitStmt(s))
	}
	e.ctx.lastStmt = prev

	e.ctx.indent--
	lines = append(lines, indent+"} // drop")
	return strings.Join(lines, "\n")
}
