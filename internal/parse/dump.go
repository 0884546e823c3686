package parse

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Dump renders a node the way CPython's ast.dump does: constructor calls
// with annotated fields, optional nil fields omitted, empty lists printed.
// The output is deterministic and position-free, which makes it convenient
// for golden comparisons.
func Dump(n Node) string {
	var b strings.Builder
	dumpNode(&b, n)
	return b.String()
}

func dumpNode(b *strings.Builder, n Node) {
	if n == nil || reflect.ValueOf(n).IsNil() {
		b.WriteString("None")
		return
	}

	switch node := n.(type) {
	case *Module:
		b.WriteString("Module(body=")
		dumpList(b, node.Body)
		b.WriteByte(')')

	case *FunctionDef:
		if node.IsAsync {
			b.WriteString("AsyncFunctionDef(")
		} else {
			b.WriteString("FunctionDef(")
		}
		fmt.Fprintf(b, "name=%s, args=", pyStr(node.Name))
		dumpArguments(b, node.Args)
		b.WriteString(", body=")
		dumpList(b, node.Body)
		b.WriteString(", decorator_list=")
		dumpList(b, node.DecoratorList)
		if node.Returns != nil {
			b.WriteString(", returns=")
			dumpNode(b, node.Returns)
		}
		b.WriteString(", type_params=")
		dumpList(b, node.TypeParams)
		b.WriteByte(')')

	case *ClassDef:
		fmt.Fprintf(b, "ClassDef(name=%s, bases=", pyStr(node.Name))
		dumpList(b, node.Bases)
		b.WriteString(", keywords=")
		dumpKeywordList(b, node.Keywords)
		b.WriteString(", body=")
		dumpList(b, node.Body)
		b.WriteString(", decorator_list=")
		dumpList(b, node.DecoratorList)
		b.WriteString(", type_params=")
		dumpList(b, node.TypeParams)
		b.WriteByte(')')

	case *Return:
		b.WriteString("Return(")
		if node.Value != nil {
			b.WriteString("value=")
			dumpNode(b, node.Value)
		}
		b.WriteByte(')')

	case *Delete:
		b.WriteString("Delete(targets=")
		dumpList(b, node.Targets)
		b.WriteByte(')')

	case *Assign:
		b.WriteString("Assign(targets=")
		dumpList(b, node.Targets)
		b.WriteString(", value=")
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *AugAssign:
		b.WriteString("AugAssign(target=")
		dumpNode(b, node.Target)
		fmt.Fprintf(b, ", op=%s(), value=", node.Op)
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *AnnAssign:
		b.WriteString("AnnAssign(target=")
		dumpNode(b, node.Target)
		b.WriteString(", annotation=")
		dumpNode(b, node.Annotation)
		if node.Value != nil {
			b.WriteString(", value=")
			dumpNode(b, node.Value)
		}
		fmt.Fprintf(b, ", simple=%d)", boolInt(node.Simple))

	case *For:
		if node.IsAsync {
			b.WriteString("AsyncFor(target=")
		} else {
			b.WriteString("For(target=")
		}
		dumpNode(b, node.Target)
		b.WriteString(", iter=")
		dumpNode(b, node.Iter)
		b.WriteString(", body=")
		dumpList(b, node.Body)
		b.WriteString(", orelse=")
		dumpList(b, node.OrElse)
		b.WriteByte(')')

	case *While:
		b.WriteString("While(test=")
		dumpNode(b, node.Test)
		b.WriteString(", body=")
		dumpList(b, node.Body)
		b.WriteString(", orelse=")
		dumpList(b, node.OrElse)
		b.WriteByte(')')

	case *If:
		b.WriteString("If(test=")
		dumpNode(b, node.Test)
		b.WriteString(", body=")
		dumpList(b, node.Body)
		b.WriteString(", orelse=")
		dumpList(b, node.OrElse)
		b.WriteByte(')')

	case *With:
		if node.IsAsync {
			b.WriteString("AsyncWith(items=[")
		} else {
			b.WriteString("With(items=[")
		}
		for i, item := range node.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("withitem(context_expr=")
			dumpNode(b, item.ContextExpr)
			if item.OptionalVars != nil {
				b.WriteString(", optional_vars=")
				dumpNode(b, item.OptionalVars)
			}
			b.WriteByte(')')
		}
		b.WriteString("], body=")
		dumpList(b, node.Body)
		b.WriteByte(')')

	case *Match:
		b.WriteString("Match(subject=")
		dumpNode(b, node.Subject)
		b.WriteString(", cases=[")
		for i, c := range node.Cases {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("match_case(pattern=")
			dumpNode(b, c.Pattern)
			if c.Guard != nil {
				b.WriteString(", guard=")
				dumpNode(b, c.Guard)
			}
			b.WriteString(", body=")
			dumpList(b, c.Body)
			b.WriteByte(')')
		}
		b.WriteString("])")

	case *Raise:
		b.WriteString("Raise(")
		sep := ""
		if node.Exc != nil {
			b.WriteString("exc=")
			dumpNode(b, node.Exc)
			sep = ", "
		}
		if node.Cause != nil {
			b.WriteString(sep)
			b.WriteString("cause=")
			dumpNode(b, node.Cause)
		}
		b.WriteByte(')')

	case *Try:
		if node.ExceptStar {
			b.WriteString("TryStar(body=")
		} else {
			b.WriteString("Try(body=")
		}
		dumpList(b, node.Body)
		b.WriteString(", handlers=[")
		for i, h := range node.Handlers {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("ExceptHandler(")
			sep := ""
			if h.Type != nil {
				b.WriteString("type=")
				dumpNode(b, h.Type)
				sep = ", "
			}
			if h.Name != "" {
				fmt.Fprintf(b, "%sname=%s", sep, pyStr(h.Name))
				sep = ", "
			}
			b.WriteString(sep)
			b.WriteString("body=")
			dumpList(b, h.Body)
			b.WriteByte(')')
		}
		b.WriteString("], orelse=")
		dumpList(b, node.OrElse)
		b.WriteString(", finalbody=")
		dumpList(b, node.FinalBody)
		b.WriteByte(')')

	case *Assert:
		b.WriteString("Assert(test=")
		dumpNode(b, node.Test)
		if node.Msg != nil {
			b.WriteString(", msg=")
			dumpNode(b, node.Msg)
		}
		b.WriteByte(')')

	case *Import:
		b.WriteString("Import(names=")
		dumpAliasList(b, node.Names)
		b.WriteByte(')')

	case *ImportFrom:
		b.WriteString("ImportFrom(")
		if node.Module != "" {
			fmt.Fprintf(b, "module=%s, ", pyStr(node.Module))
		}
		b.WriteString("names=")
		dumpAliasList(b, node.Names)
		fmt.Fprintf(b, ", level=%d)", node.Level)

	case *Global:
		fmt.Fprintf(b, "Global(names=%s)", pyStrList(node.Names))

	case *Nonlocal:
		fmt.Fprintf(b, "Nonlocal(names=%s)", pyStrList(node.Names))

	case *ExprStmt:
		b.WriteString("Expr(value=")
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *Pass:
		b.WriteString("Pass()")
	case *Break:
		b.WriteString("Break()")
	case *Continue:
		b.WriteString("Continue()")

	case *TypeAlias:
		b.WriteString("TypeAlias(name=")
		dumpNode(b, node.Name)
		b.WriteString(", type_params=")
		dumpList(b, node.TypeParams)
		b.WriteString(", value=")
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *BoolOp:
		fmt.Fprintf(b, "BoolOp(op=%s(), values=", node.Op)
		dumpList(b, node.Values)
		b.WriteByte(')')

	case *NamedExpr:
		b.WriteString("NamedExpr(target=")
		dumpNode(b, node.Target)
		b.WriteString(", value=")
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *BinOp:
		b.WriteString("BinOp(left=")
		dumpNode(b, node.Left)
		fmt.Fprintf(b, ", op=%s(), right=", node.Op)
		dumpNode(b, node.Right)
		b.WriteByte(')')

	case *UnaryOp:
		fmt.Fprintf(b, "UnaryOp(op=%s(), operand=", node.Op)
		dumpNode(b, node.Operand)
		b.WriteByte(')')

	case *Lambda:
		b.WriteString("Lambda(args=")
		dumpArguments(b, node.Args)
		b.WriteString(", body=")
		dumpNode(b, node.Body)
		b.WriteByte(')')

	case *IfExp:
		b.WriteString("IfExp(test=")
		dumpNode(b, node.Test)
		b.WriteString(", body=")
		dumpNode(b, node.Body)
		b.WriteString(", orelse=")
		dumpNode(b, node.OrElse)
		b.WriteByte(')')

	case *Dict:
		b.WriteString("Dict(keys=")
		dumpList(b, node.Keys)
		b.WriteString(", values=")
		dumpList(b, node.Values)
		b.WriteByte(')')

	case *Set:
		b.WriteString("Set(elts=")
		dumpList(b, node.Elts)
		b.WriteByte(')')

	case *ListComp:
		b.WriteString("ListComp(elt=")
		dumpNode(b, node.Elt)
		b.WriteString(", generators=")
		dumpComprehensions(b, node.Generators)
		b.WriteByte(')')

	case *SetComp:
		b.WriteString("SetComp(elt=")
		dumpNode(b, node.Elt)
		b.WriteString(", generators=")
		dumpComprehensions(b, node.Generators)
		b.WriteByte(')')

	case *DictComp:
		b.WriteString("DictComp(key=")
		dumpNode(b, node.Key)
		b.WriteString(", value=")
		dumpNode(b, node.Value)
		b.WriteString(", generators=")
		dumpComprehensions(b, node.Generators)
		b.WriteByte(')')

	case *GeneratorExp:
		b.WriteString("GeneratorExp(elt=")
		dumpNode(b, node.Elt)
		b.WriteString(", generators=")
		dumpComprehensions(b, node.Generators)
		b.WriteByte(')')

	case *Await:
		b.WriteString("Await(value=")
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *Yield:
		b.WriteString("Yield(")
		if node.Value != nil {
			b.WriteString("value=")
			dumpNode(b, node.Value)
		}
		b.WriteByte(')')

	case *YieldFrom:
		b.WriteString("YieldFrom(value=")
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *Compare:
		b.WriteString("Compare(left=")
		dumpNode(b, node.Left)
		b.WriteString(", ops=[")
		for i, op := range node.Ops {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(b, "%s()", op)
		}
		b.WriteString("], comparators=")
		dumpList(b, node.Comparators)
		b.WriteByte(')')

	case *Call:
		b.WriteString("Call(func=")
		dumpNode(b, node.Func)
		b.WriteString(", args=")
		dumpList(b, node.Args)
		b.WriteString(", keywords=")
		dumpKeywordList(b, node.Keywords)
		b.WriteByte(')')

	case *FormattedValue:
		b.WriteString("FormattedValue(value=")
		dumpNode(b, node.Value)
		fmt.Fprintf(b, ", conversion=%d", node.Conversion)
		if node.FormatSpec != nil {
			b.WriteString(", format_spec=")
			dumpNode(b, node.FormatSpec)
		}
		b.WriteByte(')')

	case *JoinedStr:
		b.WriteString("JoinedStr(values=")
		dumpList(b, node.Values)
		b.WriteByte(')')

	case *Constant:
		fmt.Fprintf(b, "Constant(value=%s)", constantRepr(node))

	case *Attribute:
		b.WriteString("Attribute(value=")
		dumpNode(b, node.Value)
		fmt.Fprintf(b, ", attr=%s, ctx=%s())", pyStr(node.Attr), node.Ctx)

	case *Subscript:
		b.WriteString("Subscript(value=")
		dumpNode(b, node.Value)
		b.WriteString(", slice=")
		dumpNode(b, node.Slice)
		fmt.Fprintf(b, ", ctx=%s())", node.Ctx)

	case *Starred:
		b.WriteString("Starred(value=")
		dumpNode(b, node.Value)
		fmt.Fprintf(b, ", ctx=%s())", node.Ctx)

	case *Name:
		fmt.Fprintf(b, "Name(id=%s, ctx=%s())", pyStr(node.Id), node.Ctx)

	case *List:
		b.WriteString("List(elts=")
		dumpList(b, node.Elts)
		fmt.Fprintf(b, ", ctx=%s())", node.Ctx)

	case *Tuple:
		b.WriteString("Tuple(elts=")
		dumpList(b, node.Elts)
		fmt.Fprintf(b, ", ctx=%s())", node.Ctx)

	case *Slice:
		b.WriteString("Slice(")
		sep := ""
		if node.Lower != nil {
			b.WriteString("lower=")
			dumpNode(b, node.Lower)
			sep = ", "
		}
		if node.Upper != nil {
			b.WriteString(sep)
			b.WriteString("upper=")
			dumpNode(b, node.Upper)
			sep = ", "
		}
		if node.Step != nil {
			b.WriteString(sep)
			b.WriteString("step=")
			dumpNode(b, node.Step)
		}
		b.WriteByte(')')

	case *MatchValue:
		b.WriteString("MatchValue(value=")
		dumpNode(b, node.Value)
		b.WriteByte(')')

	case *MatchSingleton:
		fmt.Fprintf(b, "MatchSingleton(value=%s)", node.Value)

	case *MatchSequence:
		b.WriteString("MatchSequence(patterns=")
		dumpList(b, node.Patterns)
		b.WriteByte(')')

	case *MatchMapping:
		b.WriteString("MatchMapping(keys=")
		dumpList(b, node.Keys)
		b.WriteString(", patterns=")
		dumpList(b, node.Patterns)
		if node.Rest != "" {
			fmt.Fprintf(b, ", rest=%s", pyStr(node.Rest))
		}
		b.WriteByte(')')

	case *MatchClass:
		b.WriteString("MatchClass(cls=")
		dumpNode(b, node.Cls)
		b.WriteString(", patterns=")
		dumpList(b, node.Patterns)
		fmt.Fprintf(b, ", kwd_attrs=%s, kwd_patterns=", pyStrList(node.KwdAttrs))
		dumpList(b, node.KwdPatterns)
		b.WriteByte(')')

	case *MatchStar:
		b.WriteString("MatchStar(")
		if node.Name != "" {
			fmt.Fprintf(b, "name=%s", pyStr(node.Name))
		}
		b.WriteByte(')')

	case *MatchAs:
		b.WriteString("MatchAs(")
		sep := ""
		if node.Pattern != nil {
			b.WriteString("pattern=")
			dumpNode(b, node.Pattern)
			sep = ", "
		}
		if node.Name != "" {
			fmt.Fprintf(b, "%sname=%s", sep, pyStr(node.Name))
		}
		b.WriteByte(')')

	case *MatchOr:
		b.WriteString("MatchOr(patterns=")
		dumpList(b, node.Patterns)
		b.WriteByte(')')

	case *TypeVar:
		fmt.Fprintf(b, "TypeVar(name=%s", pyStr(node.Name))
		if node.Bound != nil {
			b.WriteString(", bound=")
			dumpNode(b, node.Bound)
		}
		if node.Default != nil {
			b.WriteString(", default_value=")
			dumpNode(b, node.Default)
		}
		b.WriteByte(')')

	case *ParamSpec:
		fmt.Fprintf(b, "ParamSpec(name=%s", pyStr(node.Name))
		if node.Default != nil {
			b.WriteString(", default_value=")
			dumpNode(b, node.Default)
		}
		b.WriteByte(')')

	case *TypeVarTuple:
		fmt.Fprintf(b, "TypeVarTuple(name=%s", pyStr(node.Name))
		if node.Default != nil {
			b.WriteString(", default_value=")
			dumpNode(b, node.Default)
		}
		b.WriteByte(')')

	default:
		fmt.Fprintf(b, "<%T>", n)
	}
}

func dumpList(b *strings.Builder, nodes []Node) {
	b.WriteByte('[')
	for i, n := range nodes {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpNode(b, n)
	}
	b.WriteByte(']')
}

func dumpKeywordList(b *strings.Builder, keywords []*Keyword) {
	b.WriteByte('[')
	for i, kw := range keywords {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("keyword(")
		if kw.Arg != "" {
			fmt.Fprintf(b, "arg=%s, ", pyStr(kw.Arg))
		}
		b.WriteString("value=")
		dumpNode(b, kw.Value)
		b.WriteByte(')')
	}
	b.WriteByte(']')
}

func dumpAliasList(b *strings.Builder, aliases []*Alias) {
	b.WriteByte('[')
	for i, a := range aliases {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "alias(name=%s", pyStr(a.Name))
		if a.AsName != "" {
			fmt.Fprintf(b, ", asname=%s", pyStr(a.AsName))
		}
		b.WriteByte(')')
	}
	b.WriteByte(']')
}

func dumpComprehensions(b *strings.Builder, gens []*Comprehension) {
	b.WriteByte('[')
	for i, g := range gens {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("comprehension(target=")
		dumpNode(b, g.Target)
		b.WriteString(", iter=")
		dumpNode(b, g.Iter)
		b.WriteString(", ifs=")
		dumpList(b, g.Ifs)
		fmt.Fprintf(b, ", is_async=%d)", boolInt(g.IsAsync))
	}
	b.WriteByte(']')
}

func dumpArguments(b *strings.Builder, args *Arguments) {
	if args == nil {
		b.WriteString("arguments()")
		return
	}
	b.WriteString("arguments(posonlyargs=")
	dumpArgList(b, args.PosOnlyArgs)
	b.WriteString(", args=")
	dumpArgList(b, args.Args)
	if args.VarArg != nil {
		b.WriteString(", vararg=")
		dumpArg(b, args.VarArg)
	}
	b.WriteString(", kwonlyargs=")
	dumpArgList(b, args.KwOnlyArgs)
	b.WriteString(", kw_defaults=")
	dumpList(b, args.KwDefaults)
	if args.KwArg != nil {
		b.WriteString(", kwarg=")
		dumpArg(b, args.KwArg)
	}
	b.WriteString(", defaults=")
	dumpList(b, args.Defaults)
	b.WriteByte(')')
}

func dumpArgList(b *strings.Builder, args []*Arg) {
	b.WriteByte('[')
	for i, a := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		dumpArg(b, a)
	}
	b.WriteByte(']')
}

func dumpArg(b *strings.Builder, a *Arg) {
	fmt.Fprintf(b, "arg(arg=%s", pyStr(a.Name))
	if a.Annotation != nil {
		b.WriteString(", annotation=")
		dumpNode(b, a.Annotation)
	}
	b.WriteByte(')')
}

func constantRepr(c *Constant) string {
	switch c.Kind {
	case ConstNone:
		return "None"
	case ConstTrue:
		return "True"
	case ConstFalse:
		return "False"
	case ConstEllipsis:
		return "Ellipsis"
	case ConstInt:
		return strconv.FormatInt(c.Int, 10)
	case ConstBigInt, ConstComplex:
		return c.Str
	case ConstFloat:
		return floatRepr(c.Float)
	default:
		return pyStr(c.Str)
	}
}

// floatRepr formats a float the way Python repr does: shortest round-trip
// form, always with a decimal point or exponent.
func floatRepr(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// pyStr renders a string the way Python repr does, with single quotes.
func pyStr(s string) string {
	var b strings.Builder
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\x%02x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('\'')
	return b.String()
}

func pyStrList(names []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range names {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pyStr(name))
	}
	b.WriteByte(']')
	return b.String()
}

func boolInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// ---------------------------------------------------------------------------
// JSON form
// ---------------------------------------------------------------------------

// DumpJSON builds a plain map/slice representation of the tree, with a
// "type" key holding the node name, suitable for JSON encoding by the CLI.
func DumpJSON(n Node) any {
	if n == nil {
		return nil
	}
	return jsonValue(reflect.ValueOf(n))
}

func jsonValue(v reflect.Value) any {
	switch v.Kind() {
	case reflect.Interface, reflect.Ptr:
		if v.IsNil() {
			return nil
		}
		return jsonValue(v.Elem())

	case reflect.Struct:
		return jsonStruct(v)

	case reflect.Slice:
		if v.IsNil() {
			return []any{}
		}
		out := make([]any, v.Len())
		for i := 0; i < v.Len(); i++ {
			out[i] = jsonValue(v.Index(i))
		}
		return out

	default:
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return s.String()
		}
		return v.Interface()
	}
}

func jsonStruct(v reflect.Value) any {
	t := v.Type()
	if t == reflect.TypeOf(NodeSpan{}) {
		span := v.Interface().(NodeSpan)
		return map[string]any{"start": span.Start, "end": span.End}
	}

	out := map[string]any{"type": t.Name()}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type == reflect.TypeOf(NodeBase{}) {
			base := v.Field(i).Interface().(NodeBase)
			out["span"] = map[string]any{"start": base.Span.Start, "end": base.Span.End}
			out["line"] = base.Line
			out["column"] = base.Column
			out["endLine"] = base.EndLine
			out["endColumn"] = base.EndColumn
			continue
		}
		key := jsonFieldName(field)
		out[key] = jsonValue(v.Field(i))
	}
	return out
}

func jsonFieldName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" {
			return name
		}
	}
	return field.Name
}
