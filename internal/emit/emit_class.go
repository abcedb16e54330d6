package emit

import (
	"strings"

	"oxidize/internal/ir"
)

// emitClass renders a class as a struct plus an impl block, and a Drop
// impl when the class carries both resource hooks.
func (e *Emitter) emitClass(cls *ir.Class) string {
	var lines []string
	indent := e.ctx.indentStr()

	if cls.Doc != "" {
		lines = append(lines, indent+"/// "+firstLine(cls.Doc))
	}
	if len(cls.RustAttrs) > 0 {
		for _, attr := range cls.RustAttrs {
			lines = append(lines, indent+attr)
		}
	} else {
		lines = append(lines, indent+"#[derive(Debug, Clone)]")
	}

	lines = append(lines, indent+"pub struct "+cls.Name+" {")
	e.ctx.indent++
	fieldIndent := e.ctx.indentStr()
	for _, f := range cls.Fields {
		ft := e.resolver.Resolve(f.Type)
		lines = append(lines, fieldIndent+"pub "+f.Name+": "+ft.Rust()+",")
	}
	e.ctx.indent--
	lines = append(lines, indent+"}", "")

	hasInit := false
	for _, m := range cls.Methods {
		if m.Name == "__init__" {
			hasInit = true
		}
	}

	if len(cls.Methods) > 0 || (cls.Dataclass && len(cls.Fields) > 0) {
		lines = append(lines, indent+"impl "+cls.Name+" {")
		e.ctx.indent++
		e.ctx.inImpl = true
		e.ctx.currentClass = cls.Name

		if cls.Dataclass && !hasInit && len(cls.Fields) > 0 {
			lines = append(lines, e.emitDataclassConstructor(cls), "")
		}
		for _, method := range cls.Methods {
			// The Drop impl subsumes the resource hooks.
			if method.Name == "__enter__" || method.Name == "__exit__" {
				continue
			}
			lines = append(lines, e.emitMethod(method), "")
		}

		e.ctx.indent--
		e.ctx.inImpl = false
		e.ctx.currentClass = ""

		// Drop trailing blank inside the impl block.
		if n := len(lines); n > 0 && lines[n-1] == "" {
			lines = lines[:n-1]
		}
		lines = append(lines, indent+"}")
	}

	if cls.HasEnter && cls.HasExit {
		lines = append(lines,
			"",
			indent+"impl Drop for "+cls.Name+" {",
			indent+"    fn drop(&mut self) {",
			indent+"        // cleanup from __exit__",
			indent+"    }",
			indent+"}")
	}

	return strings.Join(lines, "\n")
}

// emitDataclassConstructor synthesizes new() assigning fields
// positionally, in declaration order.
func (e *Emitter) emitDataclassConstructor(cls *ir.Class) string {
	var lines []string
	indent := e.ctx.indentStr()

	params := make([]string, len(cls.Fields))
	for i, f := range cls.Fields {
		params[i] = f.Name + ": " + e.resolver.Resolve(f.Type).Rust()
	}
	lines = append(lines, indent+"pub fn new("+strings.Join(params, ", ")+") -> Self {")

	e.ctx.indent++
	inner := e.ctx.indentStr()
	lines = append(lines, inner+"Self {")
	e.ctx.indent++
	fieldIndent := e.ctx.indentStr()
	for _, f := range cls.Fields {
		lines = append(lines, fieldIndent+f.Name+",")
	}
	e.ctx.indent--
	lines = append(lines, inner+"}")
	e.ctx.indent--
	lines = append(lines, indent+"}")

	return strings.Join(lines, "\n")
}

// emitMethod renders a method inside an impl block. __init__ becomes
// new() whose body is rewritten into a Self construction expression.
func (e *Emitter) emitMethod(method *ir.Function) string {
	var lines []string
	indent := e.ctx.indentStr()

	if method.Doc != "" {
		lines = append(lines, indent+"/// "+firstLine(method.Doc))
	}
	for _, attr := range method.RustAttrs {
		lines = append(lines, indent+attr)
	}

	isConstructor := method.Name == "__init__"
	name := method.Name
	if isConstructor {
		name = "new"
	}
	name = escapeKeyword(name)

	var params []string
	if !isConstructor && method.Method && !method.Static && !method.ClassMethod {
		if method.MutatesSelf {
			params = append(params, "&mut self")
		} else {
			params = append(params, "&self")
		}
	}
	for _, p := range method.Params {
		params = append(params, escapeKeyword(p.Name)+": "+e.resolver.Resolve(p.Type).Rust())
	}

	ret := ""
	switch {
	case isConstructor:
		ret = " -> Self"
	case method.Return != nil:
		if rt := e.resolver.Resolve(method.Return); rt.Name != "()" {
			ret = " -> " + rt.Rust()
		}
	}

	lines = append(lines, indent+"pub fn "+name+"("+strings.Join(params, ", ")+")"+ret+" {")

	if isConstructor {
		lines = append(lines, e.emitConstructorBody(method)...)
	} else {
		prev := e.ctx.inResultCtx
		e.ctx.inResultCtx = isResultType(method.Return)
		e.ctx.indent++
		returnsValue := ret != ""
		for i, s := range method.Body {
			e.ctx.lastStmt = returnsValue && i == len(method.Body)-1
			lines = append(lines, e.emitStmt(s))
		}
		e.ctx.lastStmt = false
		e.ctx.indent--
		e.ctx.inResultCtx = prev
	}

	lines = append(lines, indent+"}")
	return strings.Join(lines, "\n")
}

// emitConstructorBody rewrites self.field assignments into a Self
// construction, using shorthand init when the value is the field name.
func (e *Emitter) emitConstructorBody(method *ir.Function) []string {
	var lines []string
	e.ctx.indent++
	inner := e.ctx.indentStr()
	lines = append(lines, inner+"Self {")
	e.ctx.indent++
	fieldIndent := e.ctx.indentStr()
	for _, s := range method.Body {
		aa, ok := s.(*ir.AttrAssign)
		if !ok {
			continue
		}
		recv, ok := aa.Recv.(*ir.Name)
		if !ok || recv.Ident != "self" {
			continue
		}
		value := e.emitExpr(aa.Value)
		if aa.Attr == value {
			lines = append(lines, fieldIndent+aa.Attr+",")
		} else {
			lines = append(lines, fieldIndent+aa.Attr+": "+value+",")
		}
	}
	e.ctx.indent--
	lines = append(lines, inner+"}")
	e.ctx.indent--
	return lines
}
