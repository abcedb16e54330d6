package ir

import (
	"fmt"
	"io"
	"strings"
)

// Printer dumps IR to a canonical text form. The output is
// deterministic for a given tree, which makes it usable both for test
// assertions and for content fingerprinting.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new IR printer.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Dump writes the canonical form of a module to the writer.
func Dump(w io.Writer, m *Module) error {
	p := NewPrinter(w)
	p.PrintModule(m)
	return p.err
}

// PrintModule prints a complete module.
func (p *Printer) PrintModule(m *Module) {
	p.printf("module %s\n", m.Name)
	if m.Doc != "" {
		p.printf("  doc: %s\n", firstLine(m.Doc))
	}
	for _, imp := range m.Imports {
		p.printf("import %s", imp.Module)
		for _, n := range imp.Names {
			if n.Alias != "" {
				p.printf(" %s=%s", n.Alias, n.Name)
			} else {
				p.printf(" %s", n.Name)
			}
		}
		p.printf("\n")
	}
	for _, cls := range m.Classes {
		p.printClass(cls)
	}
	for _, fn := range m.Funcs {
		p.printFunc(fn)
	}
	if len(m.Stmts) > 0 {
		p.printf("top-level:\n")
		p.indent++
		for _, s := range m.Stmts {
			p.printStmt(s)
		}
		p.indent--
	}
}

func (p *Printer) printClass(cls *Class) {
	p.pad()
	p.printf("class %s", cls.Name)
	if len(cls.Bases) > 0 {
		p.printf("(%s)", strings.Join(cls.Bases, ", "))
	}
	if cls.Dataclass {
		p.printf(" dataclass")
	}
	if cls.HasEnter && cls.HasExit {
		p.printf(" resource")
	}
	p.printf("\n")
	p.indent++
	for _, f := range cls.Fields {
		p.pad()
		p.printf("field %s: %s\n", f.Name, TypeString(f.Type))
	}
	for _, m := range cls.Methods {
		p.printFunc(m)
	}
	p.indent--
}

func (p *Printer) printFunc(fn *Function) {
	kind := "fn"
	switch {
	case fn.ClassMethod:
		kind = "classmethod"
	case fn.Static:
		kind = "staticfn"
	case fn.Method:
		kind = "method"
	}
	if fn.Async {
		kind = "async " + kind
	}
	p.pad()
	p.printf("%s %s(", kind, fn.Name)
	for i, prm := range fn.Params {
		if i > 0 {
			p.printf(", ")
		}
		p.printf("%s: %s", prm.Name, TypeString(prm.Type))
		if prm.Default != nil {
			p.printf(" = ")
			p.printExpr(prm.Default)
		}
	}
	p.printf(") -> %s", TypeString(fn.Return))
	if fn.MutatesSelf {
		p.printf(" mut")
	}
	p.printf("\n")
	p.indent++
	for _, s := range fn.Body {
		p.printStmt(s)
	}
	p.indent--
}

func (p *Printer) printStmt(s Stmt) {
	switch st := s.(type) {
	case *Assign:
		head := "set"
		if st.Decl {
			head = "let"
			if st.Mutable {
				head = "let mut"
			}
		}
		p.pad()
		p.printf("%s %s", head, st.Target)
		if st.TypeAnn != nil {
			p.printf(": %s", TypeString(st.TypeAnn))
		}
		p.printf(" = ")
		p.printExpr(st.Value)
		p.printf("\n")
	case *TupleAssign:
		p.pad()
		p.printf("let (%s) = ", strings.Join(st.Targets, ", "))
		p.printExpr(st.Value)
		p.printf("\n")
	case *AttrAssign:
		p.pad()
		p.printf("setattr ")
		p.printExpr(st.Recv)
		p.printf(".%s = ", st.Attr)
		p.printExpr(st.Value)
		p.printf("\n")
	case *Return:
		p.pad()
		p.printf("return")
		if st.Value != nil {
			p.printf(" ")
			p.printExpr(st.Value)
		}
		p.printf("\n")
	case *If:
		p.pad()
		p.printf("if ")
		p.printExpr(st.Cond)
		p.printf("\n")
		p.printBody(st.Then)
		for _, e := range st.Elifs {
			p.pad()
			p.printf("elif ")
			p.printExpr(e.Cond)
			p.printf("\n")
			p.printBody(e.Body)
		}
		if len(st.Else) > 0 {
			p.pad()
			p.printf("else\n")
			p.printBody(st.Else)
		}
	case *While:
		p.pad()
		p.printf("while ")
		p.printExpr(st.Cond)
		p.printf("\n")
		p.printBody(st.Body)
	case *For:
		p.pad()
		p.printf("for %s in ", st.Target)
		p.printExpr(st.Iter)
		p.printf("\n")
		p.printBody(st.Body)
	case *Break:
		p.pad()
		p.printf("break\n")
	case *Continue:
		p.pad()
		p.printf("continue\n")
	case *ExprStmt:
		p.pad()
		p.printf("expr ")
		p.printExpr(st.X)
		p.printf("\n")
	case *With:
		p.pad()
		p.printf("with ")
		p.printExpr(st.Ctx)
		if st.Target != "" {
			p.printf(" as %s", st.Target)
		}
		p.printf("\n")
		p.printBody(st.Body)
	case *Try:
		p.pad()
		p.printf("try\n")
		p.printBody(st.Body)
		for _, h := range st.Handlers {
			p.pad()
			p.printf("except %s", h.ExcType)
			if h.Name != "" {
				p.printf(" as %s", h.Name)
			}
			p.printf("\n")
			p.printBody(h.Body)
		}
		if len(st.Finally) > 0 {
			p.pad()
			p.printf("finally\n")
			p.printBody(st.Finally)
		}
	case *Raise:
		p.pad()
		p.printf("raise")
		if st.Exc != nil {
			p.printf(" ")
			p.printExpr(st.Exc)
		}
		p.printf("\n")
	case *Pass:
		p.pad()
		p.printf("pass\n")
	default:
		p.pad()
		p.printf("<unknown stmt %T>\n", s)
	}
}

func (p *Printer) printBody(body []Stmt) {
	p.indent++
	for _, s := range body {
		p.printStmt(s)
	}
	p.indent--
}

func (p *Printer) printExpr(e Expr) {
	switch ex := e.(type) {
	case nil:
		p.printf("<nil>")
	case *Literal:
		if s, ok := ex.Value.(string); ok {
			p.printf("%q", s)
		} else {
			p.printf("%v", ex.Value)
		}
	case *Name:
		p.printf("%s", ex.Ident)
	case *Binary:
		p.printf("(")
		p.printExpr(ex.Left)
		p.printf(" %s ", ex.Op)
		p.printExpr(ex.Right)
		p.printf(")")
	case *Unary:
		p.printf("(%s ", ex.Op)
		p.printExpr(ex.Operand)
		p.printf(")")
	case *Call:
		p.printExpr(ex.Fn)
		p.printArgs(ex.Args, ex.Kwargs)
	case *MethodCall:
		p.printExpr(ex.Recv)
		p.printf(".%s", ex.Method)
		p.printArgs(ex.Args, ex.Kwargs)
	case *Attribute:
		p.printExpr(ex.Recv)
		p.printf(".%s", ex.Attr)
	case *Subscript:
		p.printExpr(ex.Recv)
		p.printf("[")
		p.printExpr(ex.Index)
		p.printf("]")
	case *Slice:
		if ex.Low != nil {
			p.printExpr(ex.Low)
		}
		p.printf(":")
		if ex.High != nil {
			p.printExpr(ex.High)
		}
		if ex.Step != nil {
			p.printf(":")
			p.printExpr(ex.Step)
		}
	case *ListLit:
		p.printf("[")
		p.printList(ex.Elems)
		p.printf("]")
	case *DictLit:
		p.printf("{")
		for i := range ex.Keys {
			if i > 0 {
				p.printf(", ")
			}
			p.printExpr(ex.Keys[i])
			p.printf(": ")
			p.printExpr(ex.Values[i])
		}
		p.printf("}")
	case *SetLit:
		p.printf("set{")
		p.printList(ex.Elems)
		p.printf("}")
	case *TupleLit:
		p.printf("tuple(")
		p.printList(ex.Elems)
		p.printf(")")
	case *Cond:
		p.printf("(")
		p.printExpr(ex.Then)
		p.printf(" if ")
		p.printExpr(ex.Cond)
		p.printf(" else ")
		p.printExpr(ex.Else)
		p.printf(")")
	case *ListComp:
		p.printf("[")
		p.printExpr(ex.Elem)
		p.printf(" for %s in ", ex.Target)
		p.printExpr(ex.Iter)
		for _, c := range ex.Conds {
			p.printf(" if ")
			p.printExpr(c)
		}
		p.printf("]")
	case *FormattedValue:
		p.printf("{")
		p.printExpr(ex.Value)
		if ex.Spec != "" {
			p.printf(":%s", ex.Spec)
		}
		p.printf("}")
	case *FString:
		p.printf("f\"")
		for _, part := range ex.Parts {
			p.printExpr(part)
		}
		p.printf("\"")
	case *Await:
		p.printf("await ")
		p.printExpr(ex.Value)
	default:
		p.printf("<unknown expr %T>", e)
	}
}

func (p *Printer) printArgs(args []Expr, kwargs []Kwarg) {
	p.printf("(")
	for i, a := range args {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(a)
	}
	for i, kw := range kwargs {
		if i > 0 || len(args) > 0 {
			p.printf(", ")
		}
		p.printf("%s=", kw.Name)
		p.printExpr(kw.Value)
	}
	p.printf(")")
}

func (p *Printer) printList(elems []Expr) {
	for i, e := range elems {
		if i > 0 {
			p.printf(", ")
		}
		p.printExpr(e)
	}
}

// firstLine returns the first line of a docstring.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// pad writes the current indentation; statement and declaration
// printers call it at the start of every output line.
func (p *Printer) pad() {
	p.printf("%s", strings.Repeat("  ", p.indent))
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// TypeString renders a type node in canonical source-ish notation.
// A nil type prints as "None".
func TypeString(t Type) string {
	switch ty := t.(type) {
	case nil:
		return "None"
	case *PrimType:
		return ty.Kind.String()
	case *GenericType:
		if len(ty.Args) == 0 {
			return ty.Name
		}
		parts := make([]string, len(ty.Args))
		for i, a := range ty.Args {
			parts[i] = TypeString(a)
		}
		return fmt.Sprintf("%s[%s]", ty.Name, strings.Join(parts, ", "))
	case *UnionType:
		parts := make([]string, len(ty.Variants))
		for i, v := range ty.Variants {
			parts[i] = TypeString(v)
		}
		s := strings.Join(parts, " | ")
		if ty.GeneratedName != "" {
			s = ty.GeneratedName + "{" + s + "}"
		}
		return s
	case *FuncType:
		parts := make([]string, len(ty.Params))
		for i, pt := range ty.Params {
			parts[i] = TypeString(pt)
		}
		return fmt.Sprintf("Callable[[%s], %s]", strings.Join(parts, ", "), TypeString(ty.Return))
	case *ClassType:
		if ty.Module != "" {
			return ty.Module + "." + ty.Name
		}
		return ty.Name
	default:
		return fmt.Sprintf("<unknown type %T>", t)
	}
}
