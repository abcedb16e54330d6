package emit

import (
	"strings"

	"oxidize/internal/ir"
)

// emitMethodCall resolves recv.method(args) in order: mapping rules
// for module namespaces, typed members of tracked variables,
// Result/Option combinators spelled as static calls, the fixed idiom
// table for sequences and strings, and finally a plain method call.
func (e *Emitter) emitMethodCall(mc *ir.MethodCall) string {
	args := make([]string, len(mc.Args))
	for i, a := range mc.Args {
		args[i] = e.emitExpr(a)
	}
	kwargs := e.emitKwargs(mc.Kwargs)

	if name, ok := mc.Recv.(*ir.Name); ok {
		if entry, ok := e.provider.Lookup(name.Ident, mc.Method); ok {
			return e.applyEntry(entry, args, kwargs, "")
		}

		if varType, ok := e.ctx.typeEnv[name.Ident]; ok {
			className := varType
			if i := strings.LastIndexByte(varType, '.'); i >= 0 {
				className = varType[i+1:]
			}
			if entry, ok := e.provider.LookupTypedMember(className, mc.Method); ok {
				return e.applyEntry(entry, args, kwargs, name.Ident)
			}
		}

		if out, ok := resultCombinator(name.Ident, mc.Method, args); ok {
			return out
		}
	}

	// Nested namespaces such as os.path.
	if attr, ok := mc.Recv.(*ir.Attribute); ok {
		if base, ok := attr.Recv.(*ir.Name); ok {
			ns := base.Ident + "." + attr.Attr
			if entry, ok := e.provider.Lookup(ns, mc.Method); ok {
				return e.applyEntry(entry, args, kwargs, "")
			}
		}
	}

	recv := e.emitExpr(mc.Recv)

	if out, ok := sequenceIdiom(recv, mc.Method, args); ok {
		return out
	}

	expr := recv + "." + escapeKeyword(mc.Method) + "(" + strings.Join(args, ", ") + ")"
	if e.ctx.inResultCtx && e.ctx.resultFuncs[mc.Method] {
		expr += "?"
	}
	return expr
}

// resultCombinator rewrites Result.m(x, ...) and Option.m(x, ...)
// static spellings into x.m(...) method form.
func resultCombinator(typeName, method string, args []string) (string, bool) {
	if (typeName != "Result" && typeName != "Option") || len(args) == 0 {
		return "", false
	}
	switch method {
	case "unwrap", "unwrap_err", "is_ok", "is_err", "is_some", "is_none":
		return args[0] + "." + method + "()", true
	case "expect", "expect_err":
		if len(args) >= 2 {
			return args[0] + "." + method + "(" + strAsRef(args[1]) + ")", true
		}
	case "unwrap_or", "unwrap_or_else", "map", "map_err", "and_then", "or_else", "ok_or", "ok_or_else":
		if len(args) >= 2 {
			return args[0] + "." + method + "(" + args[1] + ")", true
		}
	case "map_or", "map_or_else":
		if len(args) >= 3 {
			return args[0] + "." + method + "(" + args[1] + ", " + args[2] + ")", true
		}
	}
	return "", false
}

// sequenceIdiom maps list, string and dict member names that have a
// direct Rust equivalent.
func sequenceIdiom(recv, method string, args []string) (string, bool) {
	switch method {
	case "append":
		if len(args) == 1 {
			return recv + ".push(" + args[0] + ")", true
		}
	case "extend":
		if len(args) == 1 {
			return recv + ".extend(" + args[0] + ")", true
		}
	case "pop":
		if len(args) == 0 {
			return recv + ".pop()", true
		}
	case "strip":
		return recv + ".trim().to_string()", true
	case "split":
		if len(args) > 0 {
			return recv + ".split(" + args[0] + ").collect::<Vec<_>>()", true
		}
		return recv + ".split_whitespace().collect::<Vec<_>>()", true
	case "join":
		if len(args) == 1 {
			return args[0] + ".join(&" + recv + ")", true
		}
	case "upper":
		return recv + ".to_uppercase()", true
	case "lower":
		return recv + ".to_lowercase()", true
	case "replace":
		if len(args) >= 2 {
			return recv + ".replace(" + strAsRef(args[0]) + ", " + strAsRef(args[1]) + ")", true
		}
	case "startswith":
		if len(args) == 1 {
			return recv + ".starts_with(" + strAsRef(args[0]) + ")", true
		}
	case "endswith":
		if len(args) == 1 {
			return recv + ".ends_with(" + strAsRef(args[0]) + ")", true
		}
	case "isdigit":
		return recv + ".chars().all(|c| c.is_ascii_digit())", true
	case "isalpha":
		return recv + ".chars().all(|c| c.is_alphabetic())", true
	case "isalnum":
		return recv + ".chars().all(|c| c.is_alphanumeric())", true
	case "isspace":
		return recv + ".chars().all(|c| c.is_whitespace())", true
	case "get":
		// Requires an argument; a bare .get() stays a user method.
		if len(args) >= 2 {
			return recv + ".get(&" + args[0] + ").cloned().unwrap_or(" + args[1] + ")", true
		}
		if len(args) == 1 {
			return recv + ".get(&" + args[0] + ").cloned()", true
		}
	case "keys":
		return recv + ".keys()", true
	case "values":
		return recv + ".values()", true
	case "items":
		return recv + ".iter()", true
	}
	return "", false
}

// strAsRef adapts a String-valued argument for a parameter that takes
// &str: a literal loses its .to_string() suffix, anything else is
// borrowed.
func strAsRef(arg string) string {
	if base, ok := strings.CutSuffix(arg, ".to_string()"); ok {
		return base
	}
	return "&" + arg
}
