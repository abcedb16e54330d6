package emit_test

import (
	"strings"
	"testing"

	"oxidize/internal/diag"
	"oxidize/internal/emit"
	"oxidize/internal/ir"
)

func intType() ir.Type { return &ir.PrimType{Kind: ir.PrimInt} }
func strType() ir.Type { return &ir.PrimType{Kind: ir.PrimStr} }

func name(s string) *ir.Name           { return &ir.Name{Ident: s} }
func lit(v any) *ir.Literal            { return &ir.Literal{Value: v} }
func strLit(s string) *ir.Literal {
	return &ir.Literal{ExprInfo: ir.ExprInfo{Type: strType()}, Value: s}
}

func emitModule(t *testing.T, m *ir.Module) string {
	t.Helper()
	return emit.New(emit.Options{}).EmitModule(m)
}

func emitFunc(t *testing.T, fn *ir.Function) string {
	t.Helper()
	return emitModule(t, &ir.Module{Name: "test", Funcs: []*ir.Function{fn}})
}

func TestEmitAddFunction(t *testing.T) {
	fn := &ir.Function{
		Name: "add",
		Params: []ir.Param{
			{Name: "a", Type: intType()},
			{Name: "b", Type: intType()},
		},
		Return: intType(),
		Body: []ir.Stmt{
			&ir.Return{Value: &ir.Binary{Op: ir.OpAdd, Left: name("a"), Right: name("b")}},
		},
	}

	out := emitFunc(t, fn)
	if !strings.Contains(out, "pub fn add(a: i64, b: i64) -> i64 {") {
		t.Errorf("missing signature:\n%s", out)
	}
	// Trailing return becomes the implicit expression form.
	if !strings.Contains(out, "    a + b\n}") {
		t.Errorf("missing implicit return:\n%s", out)
	}
	if strings.Contains(out, "return a + b") {
		t.Errorf("explicit return should have been elided:\n%s", out)
	}
}

func TestUnitReturnElided(t *testing.T) {
	fn := &ir.Function{
		Name:   "noop",
		Return: &ir.PrimType{Kind: ir.PrimNone},
		Body:   []ir.Stmt{&ir.Pass{}},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "pub fn noop() {") {
		t.Errorf("unit return type should be elided:\n%s", out)
	}
}

func TestCompoundAssignRewrite(t *testing.T) {
	fn := &ir.Function{
		Name: "bump",
		Body: []ir.Stmt{
			&ir.Assign{Target: "x", Value: lit(int64(0)), Decl: true, Mutable: true},
			&ir.Assign{Target: "x", Value: &ir.Binary{Op: ir.OpAdd, Left: name("x"), Right: lit(int64(1))}},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "let mut x = 0;") {
		t.Errorf("missing mutable declaration:\n%s", out)
	}
	if !strings.Contains(out, "x += 1;") {
		t.Errorf("x = x + 1 should fold to x += 1:\n%s", out)
	}
}

func TestShiftOperators(t *testing.T) {
	fn := &ir.Function{
		Name: "pack",
		Body: []ir.Stmt{
			&ir.Assign{Target: "x", Value: &ir.Binary{Op: ir.OpShl, Left: lit(int64(1)), Right: lit(int64(4))}, Decl: true, Mutable: true},
			&ir.Assign{Target: "x", Value: &ir.Binary{Op: ir.OpShr, Left: name("x"), Right: lit(int64(2))}},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "let mut x = 1 << 4;") {
		t.Errorf("left shift should render as <<:\n%s", out)
	}
	if !strings.Contains(out, "x >>= 2;") {
		t.Errorf("x = x >> 2 should fold to >>=:\n%s", out)
	}
}

func TestSelfCompoundAssign(t *testing.T) {
	cls := &ir.Class{
		Name:   "Counter",
		Fields: []ir.Field{{Name: "count", Type: intType()}},
		Methods: []*ir.Function{{
			Name:        "tick",
			Method:      true,
			MutatesSelf: true,
			Body: []ir.Stmt{
				&ir.AttrAssign{
					Recv: name("self"),
					Attr: "count",
					Value: &ir.Binary{
						Op:    ir.OpAdd,
						Left:  &ir.Attribute{Recv: name("self"), Attr: "count"},
						Right: lit(int64(1)),
					},
				},
			},
		}},
	}
	out := emitModule(t, &ir.Module{Name: "test", Classes: []*ir.Class{cls}})
	if !strings.Contains(out, "pub fn tick(&mut self) {") {
		t.Errorf("mutating method should take &mut self:\n%s", out)
	}
	if !strings.Contains(out, "self.count += 1;") {
		t.Errorf("self field update should fold to +=:\n%s", out)
	}
}

func TestDataclassConstructor(t *testing.T) {
	cls := &ir.Class{
		Name:      "Point",
		Dataclass: true,
		Fields: []ir.Field{
			{Name: "x", Type: intType()},
			{Name: "y", Type: intType()},
		},
	}
	out := emitModule(t, &ir.Module{Name: "test", Classes: []*ir.Class{cls}})

	if !strings.Contains(out, "#[derive(Debug, Clone)]") {
		t.Errorf("missing default derive:\n%s", out)
	}
	if !strings.Contains(out, "pub struct Point {") {
		t.Errorf("missing struct:\n%s", out)
	}
	if !strings.Contains(out, "pub fn new(x: i64, y: i64) -> Self {") {
		t.Errorf("constructor parameters must follow field order:\n%s", out)
	}
	// Shorthand field init.
	if !strings.Contains(out, "Self {\n            x,\n            y,") {
		t.Errorf("missing shorthand field init:\n%s", out)
	}
}

func TestInitBecomesNew(t *testing.T) {
	cls := &ir.Class{
		Name:   "Greeter",
		Fields: []ir.Field{{Name: "prefix", Type: strType()}},
		Methods: []*ir.Function{{
			Name:   "__init__",
			Method: true,
			Params: []ir.Param{{Name: "prefix", Type: strType()}},
			Body: []ir.Stmt{
				&ir.AttrAssign{Recv: name("self"), Attr: "prefix", Value: name("prefix")},
			},
		}},
	}
	out := emitModule(t, &ir.Module{Name: "test", Classes: []*ir.Class{cls}})
	if !strings.Contains(out, "pub fn new(prefix: String) -> Self {") {
		t.Errorf("__init__ should render as new:\n%s", out)
	}
	if !strings.Contains(out, "prefix,") {
		t.Errorf("matching value should use shorthand init:\n%s", out)
	}
}

func TestRustAttrsReplaceDefaultDerive(t *testing.T) {
	cls := &ir.Class{
		Name:      "Config",
		RustAttrs: []string{"#[derive(Debug, Serialize, Deserialize)]"},
		Fields:    []ir.Field{{Name: "name", Type: strType()}},
	}
	out := emitModule(t, &ir.Module{Name: "test", Classes: []*ir.Class{cls}})
	if !strings.Contains(out, "#[derive(Debug, Serialize, Deserialize)]") {
		t.Errorf("passthrough attribute missing:\n%s", out)
	}
	if strings.Contains(out, "#[derive(Debug, Clone)]") {
		t.Errorf("default derive should be suppressed by passthrough attrs:\n%s", out)
	}
}

func TestDropImplForScopedResource(t *testing.T) {
	cls := &ir.Class{
		Name:     "TempWorkspace",
		HasEnter: true,
		HasExit:  true,
		Methods: []*ir.Function{
			{Name: "__enter__", Method: true},
			{Name: "__exit__", Method: true},
		},
	}
	out := emitModule(t, &ir.Module{Name: "test", Classes: []*ir.Class{cls}})
	if !strings.Contains(out, "impl Drop for TempWorkspace {") {
		t.Errorf("missing Drop impl:\n%s", out)
	}
	// "__exit__" alone would also match the Drop impl's comment.
	if strings.Contains(out, "fn __enter__") || strings.Contains(out, "fn __exit__") {
		t.Errorf("resource hooks should not render as methods:\n%s", out)
	}
}

func TestFloatLiteralAlwaysHasPoint(t *testing.T) {
	fn := &ir.Function{
		Name: "third",
		Body: []ir.Stmt{
			&ir.Assign{Target: "x", Value: lit(float64(3)), Decl: true},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "let x = 3.0;") {
		t.Errorf("whole float must render with .0:\n%s", out)
	}
}

func TestPrintLiteralStaysBare(t *testing.T) {
	m := &ir.Module{Name: "test", Stmts: []ir.Stmt{
		&ir.ExprStmt{X: &ir.Call{Fn: name("print"), Args: []ir.Expr{strLit("hello")}}},
	}}
	out := emitModule(t, m)
	if !strings.Contains(out, `println!("hello");`) {
		t.Errorf("literal print should avoid the {} placeholder:\n%s", out)
	}
	if strings.Contains(out, `.to_string()`) {
		t.Errorf("println argument should not carry .to_string():\n%s", out)
	}
	if !strings.Contains(out, "fn main() {") {
		t.Errorf("top-level statements should synthesize main:\n%s", out)
	}
}

func TestLenZeroBecomesIsEmpty(t *testing.T) {
	cond := &ir.Binary{
		Op:    ir.OpGt,
		Left:  &ir.Call{Fn: name("len"), Args: []ir.Expr{name("items")}},
		Right: lit(int64(0)),
	}
	fn := &ir.Function{
		Name: "check",
		Body: []ir.Stmt{&ir.If{Cond: cond, Then: []ir.Stmt{&ir.Pass{}}}},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "if !items.is_empty() {") {
		t.Errorf("len(x) > 0 should fold to !is_empty:\n%s", out)
	}
}

func TestPowBecomesPowf(t *testing.T) {
	fn := &ir.Function{
		Name: "sq",
		Body: []ir.Stmt{
			&ir.Assign{Target: "y", Value: &ir.Binary{Op: ir.OpPow, Left: name("x"), Right: lit(int64(2))}, Decl: true},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "(x as f64).powf(2 as f64)") {
		t.Errorf("** should render as powf:\n%s", out)
	}
}

func TestStringConcatUsesFormat(t *testing.T) {
	fn := &ir.Function{
		Name: "greet",
		Params: []ir.Param{{Name: "who", Type: strType()}},
		Body: []ir.Stmt{
			&ir.Assign{
				Target: "msg",
				Value: &ir.Binary{
					Op:   ir.OpAdd,
					Left: strLit("hi "),
					Right: &ir.Name{
						ExprInfo: ir.ExprInfo{Type: strType()},
						Ident:    "who",
					},
				},
				Decl: true,
			},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, `format!("{}{}", "hi ".to_string(), who)`) {
		t.Errorf("string + should render as format!:\n%s", out)
	}
}

func TestRangeForms(t *testing.T) {
	mk := func(args ...ir.Expr) string {
		fn := &ir.Function{
			Name: "loop_fn",
			Body: []ir.Stmt{&ir.For{
				Target: "i",
				Iter:   &ir.Call{Fn: name("range"), Args: args},
				Body:   []ir.Stmt{&ir.Pass{}},
			}},
		}
		return emitFunc(t, fn)
	}

	if out := mk(lit(int64(10))); !strings.Contains(out, "for i in 0..10 {") {
		t.Errorf("range(10):\n%s", out)
	}
	if out := mk(lit(int64(1)), lit(int64(5))); !strings.Contains(out, "for i in 1..5 {") {
		t.Errorf("range(1, 5):\n%s", out)
	}
	if out := mk(lit(int64(0)), lit(int64(10)), lit(int64(2))); !strings.Contains(out, "for i in (0..10).step_by(2 as usize) {") {
		t.Errorf("range(0, 10, 2):\n%s", out)
	}
}

func TestListComprehension(t *testing.T) {
	comp := &ir.ListComp{
		Elem:   &ir.Binary{Op: ir.OpMul, Left: name("x"), Right: lit(int64(2))},
		Target: "x",
		Iter:   name("nums"),
		Conds:  []ir.Expr{&ir.Binary{Op: ir.OpGt, Left: name("x"), Right: lit(int64(0))}},
	}
	fn := &ir.Function{
		Name: "doubled",
		Body: []ir.Stmt{&ir.Assign{Target: "out", Value: comp, Decl: true}},
	}
	out := emitFunc(t, fn)
	want := "nums.iter().filter(|x| x > 0).map(|x| x * 2).collect::<Vec<_>>()"
	if !strings.Contains(out, want) {
		t.Errorf("comprehension pipeline = missing %q:\n%s", want, out)
	}
}

func TestFStringWithSpec(t *testing.T) {
	fs := &ir.FString{Parts: []ir.Expr{
		lit("pi is "),
		&ir.FormattedValue{Value: name("pi"), Spec: ".2"},
	}}
	fn := &ir.Function{
		Name: "show",
		Body: []ir.Stmt{&ir.Assign{Target: "s", Value: fs, Decl: true}},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, `format!("pi is {:.2}", pi)`) {
		t.Errorf("format spec should carry over:\n%s", out)
	}
}

func TestFStringEscapesBraces(t *testing.T) {
	fs := &ir.FString{Parts: []ir.Expr{
		lit("a{b}"),
		&ir.FormattedValue{Value: name("v")},
	}}
	fn := &ir.Function{
		Name: "show",
		Body: []ir.Stmt{&ir.Assign{Target: "s", Value: fs, Decl: true}},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, `format!("a{{b}}{}", v)`) {
		t.Errorf("literal braces must be doubled:\n%s", out)
	}
}

func TestKeywordEscaped(t *testing.T) {
	fn := &ir.Function{
		Name:   "match",
		Params: []ir.Param{{Name: "type", Type: intType()}},
		Body:   []ir.Stmt{&ir.Pass{}},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "pub fn r#match(r#type: i64) {") {
		t.Errorf("keyword identifiers need r# escaping:\n%s", out)
	}
}

func TestClassConstructorCall(t *testing.T) {
	cls := &ir.Class{
		Name:      "Point",
		Dataclass: true,
		Fields:    []ir.Field{{Name: "x", Type: intType()}},
	}
	fn := &ir.Function{
		Name: "origin",
		Body: []ir.Stmt{
			&ir.Assign{
				Target: "p",
				Value:  &ir.Call{Fn: name("Point"), Args: []ir.Expr{lit(int64(0))}},
				Decl:   true,
			},
		},
	}
	out := emitModule(t, &ir.Module{Name: "test", Classes: []*ir.Class{cls}, Funcs: []*ir.Function{fn}})
	if !strings.Contains(out, "let p = Point::new(0);") {
		t.Errorf("class call should become ::new:\n%s", out)
	}
}

func TestMappedStdlibCall(t *testing.T) {
	fn := &ir.Function{
		Name: "cwd",
		Body: []ir.Stmt{
			&ir.ExprStmt{X: &ir.MethodCall{Recv: name("os"), Method: "getcwd"}},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "std::env::current_dir()") {
		t.Errorf("os.getcwd should map to std::env::current_dir:\n%s", out)
	}
}

func TestFallibleMappingGetsQuestionMark(t *testing.T) {
	fn := &ir.Function{
		Name:   "load",
		Return: &ir.GenericType{Name: "Result", Args: []ir.Type{strType(), strType()}},
		Body: []ir.Stmt{
			&ir.Return{Value: &ir.MethodCall{
				Recv:   name("json"),
				Method: "dumps",
				Args:   []ir.Expr{name("data")},
			}},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "?") {
		t.Errorf("fallible mapping inside Result fn should use ?:\n%s", out)
	}
	if strings.Contains(out, ".unwrap()") {
		t.Errorf("unwrap should be rewritten away in Result context:\n%s", out)
	}
}

func TestResultPropagation(t *testing.T) {
	resultTy := &ir.GenericType{Name: "Result", Args: []ir.Type{intType(), strType()}}
	callee := &ir.Function{Name: "fetch", Return: resultTy, Body: []ir.Stmt{
		&ir.Return{Value: &ir.Call{Fn: name("Ok"), Args: []ir.Expr{lit(int64(1))}}},
	}}
	caller := &ir.Function{Name: "run", Return: resultTy, Body: []ir.Stmt{
		&ir.Assign{Target: "v", Value: &ir.Call{Fn: name("fetch")}, Decl: true},
		&ir.Return{Value: &ir.Call{Fn: name("Ok"), Args: []ir.Expr{name("v")}}},
	}}
	out := emitModule(t, &ir.Module{Name: "test", Funcs: []*ir.Function{callee, caller}})
	if !strings.Contains(out, "let v = fetch()?;") {
		t.Errorf("fallible call in Result fn should propagate with ?:\n%s", out)
	}
}

func TestTryNarrowShapeBecomesMatch(t *testing.T) {
	resultTy := &ir.GenericType{Name: "Result", Args: []ir.Type{intType(), strType()}}
	fallible := &ir.Function{Name: "parse_num", Return: resultTy, Body: []ir.Stmt{
		&ir.Return{Value: &ir.Call{Fn: name("Ok"), Args: []ir.Expr{lit(int64(0))}}},
	}}
	try := &ir.Try{
		Body: []ir.Stmt{
			&ir.Assign{Target: "n", Value: &ir.Call{Fn: name("parse_num")}, Decl: true},
		},
		Handlers: []ir.Handler{{
			ExcType: "ValueError",
			Name:    "exc",
			Body:    []ir.Stmt{&ir.Pass{}},
		}},
	}
	user := &ir.Function{Name: "main_fn", Body: []ir.Stmt{try}}

	out := emitModule(t, &ir.Module{Name: "test", Funcs: []*ir.Function{fallible, user}})

	if !strings.Contains(out, "match parse_num() {") {
		t.Errorf("narrow try should lower to match:\n%s", out)
	}
	if !strings.Contains(out, "Ok(n) => {}") {
		t.Errorf("Ok arm should bind the assignment target:\n%s", out)
	}
	if !strings.Contains(out, "Err(exc) => {") {
		t.Errorf("Err arm should bind the handler name:\n%s", out)
	}
	if strings.Contains(out, "catch_unwind") {
		t.Errorf("narrow shape must not fall back to catch_unwind:\n%s", out)
	}
}

func TestTryLooseShapeFallsBack(t *testing.T) {
	try := &ir.Try{
		Body: []ir.Stmt{
			&ir.ExprStmt{X: &ir.Call{Fn: name("step_one")}},
			&ir.ExprStmt{X: &ir.Call{Fn: name("step_two")}},
		},
		Handlers: []ir.Handler{{Body: []ir.Stmt{&ir.Pass{}}}},
	}
	fn := &ir.Function{Name: "run", Body: []ir.Stmt{try}}

	em := emit.New(emit.Options{})
	out := em.EmitModule(&ir.Module{Name: "test", Funcs: []*ir.Function{fn}})

	if !strings.Contains(out, "std::panic::catch_unwind(std::panic::AssertUnwindSafe(|| {") {
		t.Errorf("loose try should use catch_unwind:\n%s", out)
	}

	found := false
	for _, d := range em.Diagnostics().Items() {
		if d.Code == diag.EmitLooseTryShape {
			found = true
		}
	}
	if !found {
		t.Error("loose try shape should record a diagnostic")
	}
}

func TestUnionWithoutNameDegrades(t *testing.T) {
	fn := &ir.Function{
		Name: "pick",
		Params: []ir.Param{
			{Name: "v", Type: &ir.UnionType{Variants: []ir.Type{intType(), strType()}}},
		},
	}
	em := emit.New(emit.Options{})
	out := em.EmitModule(&ir.Module{Name: "test", Funcs: []*ir.Function{fn}})

	if !strings.Contains(out, "v: UnionType") {
		t.Errorf("unnamed union should degrade to the placeholder:\n%s", out)
	}
	found := false
	for _, d := range em.Diagnostics().Items() {
		if d.Code == diag.ResolveUnionFallback {
			found = true
		}
	}
	if !found {
		t.Error("union placeholder fallback should record a diagnostic")
	}
}

func TestTryFinally(t *testing.T) {
	try := &ir.Try{
		Body:    []ir.Stmt{&ir.ExprStmt{X: &ir.Call{Fn: name("work")}}},
		Finally: []ir.Stmt{&ir.ExprStmt{X: &ir.Call{Fn: name("cleanup")}}},
	}
	fn := &ir.Function{Name: "run", Body: []ir.Stmt{try}}
	out := emitFunc(t, fn)
	if !strings.Contains(out, "// finally block") {
		t.Errorf("finally marker missing:\n%s", out)
	}
	if !strings.Contains(out, "cleanup();") {
		t.Errorf("finally body missing:\n%s", out)
	}
}

func TestWithBecomesScopedBlock(t *testing.T) {
	with := &ir.With{
		Ctx:    &ir.Call{Fn: name("Session")},
		Target: "s",
		Body:   []ir.Stmt{&ir.ExprStmt{X: &ir.MethodCall{Recv: name("s"), Method: "close"}}},
	}
	cls := &ir.Class{Name: "Session"}
	fn := &ir.Function{Name: "run", Body: []ir.Stmt{with}}
	out := emitModule(t, &ir.Module{Name: "test", Classes: []*ir.Class{cls}, Funcs: []*ir.Function{fn}})

	if !strings.Contains(out, "let mut s = Session::new();") {
		t.Errorf("with target should bind inside the block:\n%s", out)
	}
	if !strings.Contains(out, "} // drop") {
		t.Errorf("block should end with the drop marker:\n%s", out)
	}
}

func TestWithTempfileBindsPath(t *testing.T) {
	with := &ir.With{
		Ctx:    &ir.MethodCall{Recv: name("tempfile"), Method: "TemporaryDirectory"},
		Target: "tmp",
		Body:   []ir.Stmt{&ir.Pass{}},
	}
	fn := &ir.Function{Name: "run", Body: []ir.Stmt{with}}
	out := emitFunc(t, fn)

	if !strings.Contains(out, "let _temp_ctx = ") {
		t.Errorf("guard binding missing:\n%s", out)
	}
	if !strings.Contains(out, "let tmp = _temp_ctx.path().to_string_lossy().to_string();") {
		t.Errorf("target should bind the managed path:\n%s", out)
	}
}

func TestRaiseBecomesErr(t *testing.T) {
	fn := &ir.Function{
		Name:   "fail",
		Return: &ir.GenericType{Name: "Result", Args: []ir.Type{intType(), strType()}},
		Body: []ir.Stmt{
			&ir.Raise{Exc: &ir.Call{Fn: name("ValueError"), Args: []ir.Expr{strLit("bad input")}}},
		},
	}
	out := emitFunc(t, fn)
	if !strings.Contains(out, `return Err("bad input".to_string());`) {
		t.Errorf("raise should lower to return Err:\n%s", out)
	}
}

func TestEmissionIsTotal(t *testing.T) {
	// A missing value degrades to unit and emission continues.
	em := emit.New(emit.Options{})
	out := em.EmitModule(&ir.Module{Name: "test", Funcs: []*ir.Function{{
		Name: "f",
		Body: []ir.Stmt{
			&ir.Assign{Target: "x", Value: nil, Decl: true},
			&ir.Pass{},
		},
	}}})
	if !strings.Contains(out, "let x = ();") {
		t.Errorf("nil value should render as unit:\n%s", out)
	}
	if !strings.Contains(out, "// pass") {
		t.Errorf("emission should continue past degraded nodes:\n%s", out)
	}
}

func TestModuleDocAndImports(t *testing.T) {
	m := &ir.Module{
		Name: "test",
		Doc:  "Utility helpers.",
		Funcs: []*ir.Function{{
			Name: "pick",
			Body: []ir.Stmt{
				&ir.Assign{
					Target: "d",
					Value: &ir.DictLit{
						Keys:   []ir.Expr{strLit("a")},
						Values: []ir.Expr{lit(int64(1))},
					},
					Decl: true,
				},
			},
		}},
	}
	out := emitModule(t, m)
	if !strings.HasPrefix(out, "//! Utility helpers.") {
		t.Errorf("module doc should lead the file:\n%s", out)
	}
	if !strings.Contains(out, "use std::collections::{HashMap};") && !strings.Contains(out, "use std::collections::") {
		t.Errorf("dict literal should pull the collections import:\n%s", out)
	}
	if !strings.Contains(out, `HashMap::from([("a".to_string(), 1)])`) {
		t.Errorf("dict literal rendering:\n%s", out)
	}
}

func TestStringIdioms(t *testing.T) {
	tests := []struct {
		nameSuffix string
		call       ir.Expr
		want       string
	}{
		{"strip", &ir.MethodCall{Recv: name("s"), Method: "strip"}, "s.trim().to_string()"},
		{"upper", &ir.MethodCall{Recv: name("s"), Method: "upper"}, "s.to_uppercase()"},
		{"split_ws", &ir.MethodCall{Recv: name("s"), Method: "split"}, "s.split_whitespace().collect::<Vec<_>>()"},
		{"startswith", &ir.MethodCall{Recv: name("s"), Method: "startswith", Args: []ir.Expr{strLit("a")}}, `s.starts_with("a")`},
		{"append", &ir.MethodCall{Recv: name("xs"), Method: "append", Args: []ir.Expr{lit(int64(1))}}, "xs.push(1)"},
		{"isdigit", &ir.MethodCall{Recv: name("s"), Method: "isdigit"}, "s.chars().all(|c| c.is_ascii_digit())"},
	}

	for _, tt := range tests {
		t.Run(tt.nameSuffix, func(t *testing.T) {
			fn := &ir.Function{Name: "f", Body: []ir.Stmt{&ir.ExprStmt{X: tt.call}}}
			out := emitFunc(t, fn)
			if !strings.Contains(out, tt.want) {
				t.Errorf("missing %q:\n%s", tt.want, out)
			}
		})
	}
}

func TestResultCombinatorSpelling(t *testing.T) {
	call := &ir.MethodCall{
		Recv:   name("Result"),
		Method: "expect",
		Args:   []ir.Expr{name("r"), strLit("boom")},
	}
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{&ir.ExprStmt{X: call}}}
	out := emitFunc(t, fn)
	if !strings.Contains(out, `r.expect("boom")`) {
		t.Errorf("Result.expect should become method form with &str message:\n%s", out)
	}
}

func TestCargoDepsAccumulate(t *testing.T) {
	em := emit.New(emit.Options{})
	em.EmitModule(&ir.Module{Name: "test", Funcs: []*ir.Function{{
		Name: "f",
		Body: []ir.Stmt{
			&ir.ExprStmt{X: &ir.MethodCall{Recv: name("json"), Method: "dumps", Args: []ir.Expr{name("v")}}},
		},
	}}})
	deps := em.CargoDeps()
	joined := strings.Join(deps, ",")
	if !strings.Contains(joined, "serde") {
		t.Errorf("json mapping should register serde deps, got %v", deps)
	}
}
