package emit

import (
	"strings"

	"oxidize/internal/ir"
)

// emitFunction renders a free function. A trailing expression
// statement in a value-returning function becomes the implicit
// return expression.
func (e *Emitter) emitFunction(fn *ir.Function) string {
	var lines []string
	indent := e.ctx.indentStr()

	if fn.Doc != "" {
		lines = append(lines, indent+"/// "+firstLine(fn.Doc))
	}
	for _, attr := range fn.RustAttrs {
		lines = append(lines, indent+attr)
	}

	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = escapeKeyword(p.Name) + ": " + e.resolver.Resolve(p.Type).Rust()
	}

	ret := ""
	if fn.Return != nil {
		if rt := e.resolver.Resolve(fn.Return); rt.Name != "()" {
			ret = " -> " + rt.Rust()
		}
	}

	kw := "pub fn "
	if fn.Async {
		kw = "pub async fn "
	}
	lines = append(lines, indent+kw+escapeKeyword(fn.Name)+"("+strings.Join(params, ", ")+")"+ret+" {")

	prev := e.ctx.inResultCtx
	e.ctx.inResultCtx = isResultType(fn.Return)
	e.ctx.indent++
	returnsValue := ret != ""
	for i, s := range fn.Body {
		e.ctx.lastStmt = returnsValue && i == len(fn.Body)-1
		lines = append(lines, e.emitStmt(s))
	}
	e.ctx.lastStmt = false
	e.ctx.indent--
	e.ctx.inResultCtx = prev

	lines = append(lines, indent+"}")
	return strings.Join(lines, "\n")
}
