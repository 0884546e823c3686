package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func moduleDump(t *testing.T, src string) string {
	t.Helper()
	mod, err := Parse(src)
	require.NoError(t, err)
	return Dump(mod)
}

func parseError(t *testing.T, src string) *ParsingError {
	t.Helper()
	_, err := Parse(src)
	require.Error(t, err)
	perr, ok := err.(*ParsingError)
	require.True(t, ok, "expected a *ParsingError, got %T", err)
	return perr
}

func TestParseAssignments(t *testing.T) {

	t.Run("plain", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Assign(targets=[Name(id='x', ctx=Store())], value=Constant(value=1))])",
			moduleDump(t, "x = 1\n"))
	})

	t.Run("chained", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Assign(targets=[Name(id='x', ctx=Store()), Name(id='y', ctx=Store())], value=Constant(value=1))])",
			moduleDump(t, "x = y = 1\n"))
	})

	t.Run("tuple target with star", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Assign(targets=[Tuple(elts=[Name(id='a', ctx=Store()), Starred(value=Name(id='rest', ctx=Store()), ctx=Store())], ctx=Store())], value=Name(id='items', ctx=Load()))])",
			moduleDump(t, "a, *rest = items\n"))
	})

	t.Run("augmented", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[AugAssign(target=Name(id='x', ctx=Store()), op=Add(), value=Constant(value=1))])",
			moduleDump(t, "x += 1\n"))
		assert.Equal(t,
			"Module(body=[AugAssign(target=Subscript(value=Name(id='d', ctx=Load()), slice=Name(id='k', ctx=Load()), ctx=Store()), op=FloorDiv(), value=Constant(value=2))])",
			moduleDump(t, "d[k] //= 2\n"))
	})

	t.Run("annotated", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[AnnAssign(target=Name(id='x', ctx=Store()), annotation=Name(id='int', ctx=Load()), value=Constant(value=1), simple=1)])",
			moduleDump(t, "x: int = 1\n"))
		assert.Equal(t,
			"Module(body=[AnnAssign(target=Attribute(value=Name(id='self', ctx=Load()), attr='x', ctx=Store()), annotation=Name(id='int', ctx=Load()), simple=0)])",
			moduleDump(t, "self.x: int\n"))
	})

	t.Run("invalid targets", func(t *testing.T) {
		perr := parseError(t, "1 = x\n")
		assert.Equal(t, SyntaxError, perr.Kind)
		assert.Equal(t, INVALID_ASSIGN_TARGET, perr.Message)

		perr = parseError(t, "*a = 1\n")
		assert.Equal(t, STARRED_ASSIGN_TARGET_NOT_ALLOWED, perr.Message)

		perr = parseError(t, "f() += 1\n")
		assert.Equal(t, INVALID_AUG_ASSIGN_TARGET, perr.Message)
	})
}

func TestParseCompoundStatements(t *testing.T) {

	t.Run("if elif else", func(t *testing.T) {
		src := "if a:\n    x = 1\nelif b:\n    x = 2\nelse:\n    x = 3\n"
		assert.Equal(t,
			"Module(body=[If(test=Name(id='a', ctx=Load()), body=[Assign(targets=[Name(id='x', ctx=Store())], value=Constant(value=1))], orelse=[If(test=Name(id='b', ctx=Load()), body=[Assign(targets=[Name(id='x', ctx=Store())], value=Constant(value=2))], orelse=[Assign(targets=[Name(id='x', ctx=Store())], value=Constant(value=3))])])])",
			moduleDump(t, src))
	})

	t.Run("while with else", func(t *testing.T) {
		src := "while x:\n    break\nelse:\n    pass\n"
		assert.Equal(t,
			"Module(body=[While(test=Name(id='x', ctx=Load()), body=[Break()], orelse=[Pass()])])",
			moduleDump(t, src))
	})

	t.Run("for over a tuple target", func(t *testing.T) {
		src := "for k, v in items:\n    continue\n"
		assert.Equal(t,
			"Module(body=[For(target=Tuple(elts=[Name(id='k', ctx=Store()), Name(id='v', ctx=Store())], ctx=Store()), iter=Name(id='items', ctx=Load()), body=[Continue()], orelse=[])])",
			moduleDump(t, src))
	})

	t.Run("inline body on the same line", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[If(test=Name(id='x', ctx=Load()), body=[Return(), Pass()], orelse=[])])",
			moduleDump(t, "if x: return; pass\n"))
	})

	t.Run("with statement", func(t *testing.T) {
		src := "with open(p) as f, lock:\n    pass\n"
		assert.Equal(t,
			"Module(body=[With(items=[withitem(context_expr=Call(func=Name(id='open', ctx=Load()), args=[Name(id='p', ctx=Load())], keywords=[]), optional_vars=Name(id='f', ctx=Store())), withitem(context_expr=Name(id='lock', ctx=Load()))], body=[Pass()])])",
			moduleDump(t, src))
	})

	t.Run("parenthesized with items", func(t *testing.T) {
		src := "with (open(a) as f, open(b) as g):\n    pass\n"
		assert.Equal(t,
			"Module(body=[With(items=[withitem(context_expr=Call(func=Name(id='open', ctx=Load()), args=[Name(id='a', ctx=Load())], keywords=[]), optional_vars=Name(id='f', ctx=Store())), withitem(context_expr=Call(func=Name(id='open', ctx=Load()), args=[Name(id='b', ctx=Load())], keywords=[]), optional_vars=Name(id='g', ctx=Store()))], body=[Pass()])])",
			moduleDump(t, src))
	})

	t.Run("parenthesized tuple is still one context expression", func(t *testing.T) {
		src := "with (a, b) as pair:\n    pass\n"
		assert.Equal(t,
			"Module(body=[With(items=[withitem(context_expr=Tuple(elts=[Name(id='a', ctx=Load()), Name(id='b', ctx=Load())], ctx=Load()), optional_vars=Name(id='pair', ctx=Store()))], body=[Pass()])])",
			moduleDump(t, src))
	})

	t.Run("missing block", func(t *testing.T) {
		perr := parseError(t, "if x:\npass\n")
		assert.Equal(t, SyntaxError, perr.Kind)
		assert.Equal(t, EXPECTED_INDENTED_BLOCK, perr.Message)
	})
}

func TestParseFunctionDefs(t *testing.T) {

	t.Run("full parameter grammar", func(t *testing.T) {
		src := "def f(a, /, b, c=1, *args, d, e=2, **kw):\n    return a\n"
		assert.Equal(t,
			"Module(body=[FunctionDef(name='f', args=arguments(posonlyargs=[arg(arg='a')], args=[arg(arg='b'), arg(arg='c')], vararg=arg(arg='args'), kwonlyargs=[arg(arg='d'), arg(arg='e')], kw_defaults=[None, Constant(value=2)], kwarg=arg(arg='kw'), defaults=[Constant(value=1)]), body=[Return(value=Name(id='a', ctx=Load()))], decorator_list=[], type_params=[])])",
			moduleDump(t, src))
	})

	t.Run("annotations and return type", func(t *testing.T) {
		src := "def f(x: int) -> str:\n    pass\n"
		assert.Equal(t,
			"Module(body=[FunctionDef(name='f', args=arguments(posonlyargs=[], args=[arg(arg='x', annotation=Name(id='int', ctx=Load()))], kwonlyargs=[], kw_defaults=[], defaults=[]), body=[Pass()], decorator_list=[], returns=Name(id='str', ctx=Load()), type_params=[])])",
			moduleDump(t, src))
	})

	t.Run("decorators apply outermost first", func(t *testing.T) {
		src := "@cached\n@app.route('/')\ndef f():\n    pass\n"
		assert.Equal(t,
			"Module(body=[FunctionDef(name='f', args=arguments(posonlyargs=[], args=[], kwonlyargs=[], kw_defaults=[], defaults=[]), body=[Pass()], decorator_list=[Name(id='cached', ctx=Load()), Call(func=Attribute(value=Name(id='app', ctx=Load()), attr='route', ctx=Load()), args=[Constant(value='/')], keywords=[])], type_params=[])])",
			moduleDump(t, src))
	})

	t.Run("async def", func(t *testing.T) {
		src := "async def f():\n    await g()\n"
		assert.Equal(t,
			"Module(body=[AsyncFunctionDef(name='f', args=arguments(posonlyargs=[], args=[], kwonlyargs=[], kw_defaults=[], defaults=[]), body=[Expr(value=Await(value=Call(func=Name(id='g', ctx=Load()), args=[], keywords=[])))], decorator_list=[], type_params=[])])",
			moduleDump(t, src))
	})

	t.Run("generic function", func(t *testing.T) {
		src := "def first[T](xs: list[T]) -> T:\n    return xs[0]\n"
		assert.Equal(t,
			"Module(body=[FunctionDef(name='first', args=arguments(posonlyargs=[], args=[arg(arg='xs', annotation=Subscript(value=Name(id='list', ctx=Load()), slice=Name(id='T', ctx=Load()), ctx=Load()))], kwonlyargs=[], kw_defaults=[], defaults=[]), body=[Return(value=Subscript(value=Name(id='xs', ctx=Load()), slice=Constant(value=0), ctx=Load()))], decorator_list=[], returns=Name(id='T', ctx=Load()), type_params=[TypeVar(name='T')])])",
			moduleDump(t, src))
	})

	t.Run("default before non-default is rejected", func(t *testing.T) {
		perr := parseError(t, "def f(a=1, b):\n    pass\n")
		assert.Equal(t, DEFAULT_BEFORE_NON_DEFAULT_PARAM, perr.Message)
	})

	t.Run("default on vararg is rejected", func(t *testing.T) {
		perr := parseError(t, "def f(*args=1):\n    pass\n")
		assert.Equal(t, VAR_PARAM_WITH_DEFAULT, perr.Message)
	})

	t.Run("duplicate parameter name is rejected", func(t *testing.T) {
		perr := parseError(t, "def f(a, b, a):\n    pass\n")
		assert.Equal(t, fmtDuplicateParamName("a"), perr.Message)

		perr = parseError(t, "def f(a, **a):\n    pass\n")
		assert.Equal(t, fmtDuplicateParamName("a"), perr.Message)
	})
}

func TestParseClassDefs(t *testing.T) {

	t.Run("bases and keywords", func(t *testing.T) {
		src := "class C(Base, metaclass=Meta):\n    x = 1\n"
		assert.Equal(t,
			"Module(body=[ClassDef(name='C', bases=[Name(id='Base', ctx=Load())], keywords=[keyword(arg='metaclass', value=Name(id='Meta', ctx=Load()))], body=[Assign(targets=[Name(id='x', ctx=Store())], value=Constant(value=1))], decorator_list=[], type_params=[])])",
			moduleDump(t, src))
	})

	t.Run("no parentheses", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[ClassDef(name='C', bases=[], keywords=[], body=[Pass()], decorator_list=[], type_params=[])])",
			moduleDump(t, "class C:\n    pass\n"))
	})
}

func TestParseImports(t *testing.T) {

	t.Run("import with dotted names and aliases", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Import(names=[alias(name='os.path', asname='p'), alias(name='sys')])])",
			moduleDump(t, "import os.path as p, sys\n"))
	})

	t.Run("from import variants", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[ImportFrom(module='os', names=[alias(name='path'), alias(name='sep', asname='s')], level=0)])",
			moduleDump(t, "from os import path, sep as s\n"))
		assert.Equal(t,
			"Module(body=[ImportFrom(module='os', names=[alias(name='*')], level=0)])",
			moduleDump(t, "from os import *\n"))
		assert.Equal(t,
			"Module(body=[ImportFrom(module='sibling', names=[alias(name='x')], level=2)])",
			moduleDump(t, "from ..sibling import x\n"))
		assert.Equal(t,
			"Module(body=[ImportFrom(names=[alias(name='x')], level=3)])",
			moduleDump(t, "from ... import x\n"))
	})

	t.Run("relative import requires dots or a module", func(t *testing.T) {
		perr := parseError(t, "from import x\n")
		assert.Equal(t, RELATIVE_IMPORT_MISSING_MODULE, perr.Message)
	})
}

func TestParseSimpleStatements(t *testing.T) {

	t.Run("del", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Delete(targets=[Name(id='x', ctx=Del()), Subscript(value=Name(id='d', ctx=Load()), slice=Name(id='k', ctx=Load()), ctx=Del())])])",
			moduleDump(t, "del x, d[k]\n"))

		perr := parseError(t, "del 1\n")
		assert.Equal(t, INVALID_DELETE_TARGET, perr.Message)
	})

	t.Run("global and nonlocal", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Global(names=['a', 'b'])])",
			moduleDump(t, "global a, b\n"))
		assert.Equal(t,
			"Module(body=[Nonlocal(names=['x'])])",
			moduleDump(t, "nonlocal x\n"))
	})

	t.Run("raise", func(t *testing.T) {
		assert.Equal(t, "Module(body=[Raise()])", moduleDump(t, "raise\n"))
		assert.Equal(t,
			"Module(body=[Raise(exc=Call(func=Name(id='ValueError', ctx=Load()), args=[Name(id='msg', ctx=Load())], keywords=[]), cause=Name(id='err', ctx=Load()))])",
			moduleDump(t, "raise ValueError(msg) from err\n"))
	})

	t.Run("assert", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Assert(test=Name(id='ok', ctx=Load()), msg=Constant(value='nope'))])",
			moduleDump(t, "assert ok, 'nope'\n"))
	})

	t.Run("semicolons separate simple statements", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Assign(targets=[Name(id='x', ctx=Store())], value=Constant(value=1)), Assign(targets=[Name(id='y', ctx=Store())], value=Constant(value=2))])",
			moduleDump(t, "x = 1; y = 2\n"))
	})
}

func TestParseTry(t *testing.T) {

	t.Run("except else finally", func(t *testing.T) {
		src := "try:\n    f()\nexcept ValueError as e:\n    pass\nexcept Exception:\n    pass\nelse:\n    g()\nfinally:\n    h()\n"
		assert.Equal(t,
			"Module(body=[Try(body=[Expr(value=Call(func=Name(id='f', ctx=Load()), args=[], keywords=[]))], handlers=[ExceptHandler(type=Name(id='ValueError', ctx=Load()), name='e', body=[Pass()]), ExceptHandler(type=Name(id='Exception', ctx=Load()), body=[Pass()])], orelse=[Expr(value=Call(func=Name(id='g', ctx=Load()), args=[], keywords=[]))], finalbody=[Expr(value=Call(func=Name(id='h', ctx=Load()), args=[], keywords=[]))])])",
			moduleDump(t, src))
	})

	t.Run("except star", func(t *testing.T) {
		src := "try:\n    f()\nexcept* ValueError:\n    pass\n"
		assert.Equal(t,
			"Module(body=[TryStar(body=[Expr(value=Call(func=Name(id='f', ctx=Load()), args=[], keywords=[]))], handlers=[ExceptHandler(type=Name(id='ValueError', ctx=Load()), body=[Pass()])], orelse=[], finalbody=[])])",
			moduleDump(t, src))
	})

	t.Run("try finally without handlers", func(t *testing.T) {
		src := "try:\n    f()\nfinally:\n    g()\n"
		assert.Equal(t,
			"Module(body=[Try(body=[Expr(value=Call(func=Name(id='f', ctx=Load()), args=[], keywords=[]))], handlers=[], orelse=[], finalbody=[Expr(value=Call(func=Name(id='g', ctx=Load()), args=[], keywords=[]))])])",
			moduleDump(t, src))
	})

	t.Run("mixing except and except star is rejected", func(t *testing.T) {
		src := "try:\n    f()\nexcept ValueError:\n    pass\nexcept* Exception:\n    pass\n"
		perr := parseError(t, src)
		assert.Equal(t, EXCEPT_STAR_MIXED_WITH_EXCEPT, perr.Message)
	})

	t.Run("try without except or finally is rejected", func(t *testing.T) {
		perr := parseError(t, "try:\n    f()\n")
		assert.Equal(t, TRY_WITHOUT_EXCEPT_OR_FINALLY, perr.Message)
	})
}

func TestParseTypeAlias(t *testing.T) {

	t.Run("plain", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[TypeAlias(name=Name(id='Vector', ctx=Store()), type_params=[], value=Subscript(value=Name(id='list', ctx=Load()), slice=Name(id='float', ctx=Load()), ctx=Load()))])",
			moduleDump(t, "type Vector = list[float]\n"))
	})

	t.Run("generic with bound", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[TypeAlias(name=Name(id='Pair', ctx=Store()), type_params=[TypeVar(name='T', bound=Name(id='int', ctx=Load())), TypeVarTuple(name='Ts'), ParamSpec(name='P')], value=Name(id='T', ctx=Load()))])",
			moduleDump(t, "type Pair[T: int, *Ts, **P] = T\n"))
	})

	t.Run("type as a plain name still parses", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Assign(targets=[Name(id='type', ctx=Store())], value=Call(func=Name(id='type', ctx=Load()), args=[Name(id='x', ctx=Load())], keywords=[]))])",
			moduleDump(t, "type = type(x)\n"))
	})
}

func TestParseErrorPositions(t *testing.T) {

	t.Run("missing expression after equals", func(t *testing.T) {
		perr := parseError(t, "x = = 1\n")
		assert.Equal(t, SyntaxError, perr.Kind)
		assert.Equal(t, EXPECTED_EXPR, perr.Message)
		assert.Equal(t, SourcePosition{Line: 1, Column: 4}, perr.Position)
	})

	t.Run("first error wins across lines", func(t *testing.T) {
		perr := parseError(t, "x = 1\ny = )\n")
		assert.EqualValues(t, 2, perr.Position.Line)
	})

	t.Run("lex errors carry their own kind", func(t *testing.T) {
		perr := parseError(t, "x = 'abc\n")
		assert.Equal(t, LexError, perr.Kind)
		assert.Equal(t, UNTERMINATED_STRING_LIT, perr.Message)
	})
}

func TestMustParse(t *testing.T) {
	assert.NotPanics(t, func() { MustParse("x = 1\n") })
	assert.Panics(t, func() { MustParse("x = = 1\n") })
}
