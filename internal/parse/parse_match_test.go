package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// caseDump returns the dump of the single case clause of a one-case match
// statement over subject x.
func caseDump(t *testing.T, caseLine string, body ...string) string {
	t.Helper()
	src := "match x:\n    " + caseLine + "\n"
	for _, line := range body {
		src += "        " + line + "\n"
	}
	mod, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, mod.Body, 1)

	m, ok := mod.Body[0].(*Match)
	require.True(t, ok, "expected a Match statement, got %T", mod.Body[0])
	require.Len(t, m.Cases, 1)
	return Dump(m.Cases[0].Pattern)
}

func TestParseMatchPatterns(t *testing.T) {

	t.Run("literal and value patterns", func(t *testing.T) {
		assert.Equal(t,
			"MatchValue(value=Constant(value=1))",
			caseDump(t, "case 1: pass"))
		assert.Equal(t,
			"MatchValue(value=UnaryOp(op=USub(), operand=Constant(value=1)))",
			caseDump(t, "case -1: pass"))
		assert.Equal(t,
			"MatchValue(value=BinOp(left=Constant(value=3), op=Add(), right=Constant(value=4j)))",
			caseDump(t, "case 3+4j: pass"))
		assert.Equal(t,
			"MatchValue(value=Constant(value='go'))",
			caseDump(t, "case 'go': pass"))
		assert.Equal(t,
			"MatchValue(value=Attribute(value=Name(id='Color', ctx=Load()), attr='RED', ctx=Load()))",
			caseDump(t, "case Color.RED: pass"))
	})

	t.Run("singleton patterns", func(t *testing.T) {
		assert.Equal(t, "MatchSingleton(value=None)", caseDump(t, "case None: pass"))
		assert.Equal(t, "MatchSingleton(value=True)", caseDump(t, "case True: pass"))
	})

	t.Run("capture and wildcard", func(t *testing.T) {
		assert.Equal(t, "MatchAs(name='v')", caseDump(t, "case v: pass"))
		assert.Equal(t, "MatchAs()", caseDump(t, "case _: pass"))
		assert.Equal(t,
			"MatchAs(pattern=MatchValue(value=Constant(value=1)), name='one')",
			caseDump(t, "case 1 as one: pass"))
	})

	t.Run("or pattern", func(t *testing.T) {
		assert.Equal(t,
			"MatchOr(patterns=[MatchValue(value=Constant(value=1)), MatchValue(value=Constant(value=2)), MatchSingleton(value=None)])",
			caseDump(t, "case 1 | 2 | None: pass"))
	})

	t.Run("sequence patterns", func(t *testing.T) {
		assert.Equal(t,
			"MatchSequence(patterns=[MatchValue(value=Constant(value=1)), MatchStar(name='rest')])",
			caseDump(t, "case [1, *rest]: pass"))
		assert.Equal(t,
			"MatchSequence(patterns=[MatchAs(name='a'), MatchAs(name='b')])",
			caseDump(t, "case a, b: pass"))
		assert.Equal(t,
			"MatchSequence(patterns=[MatchAs(name='a'), MatchStar()])",
			caseDump(t, "case (a, *_): pass"))
		assert.Equal(t, "MatchSequence(patterns=[])", caseDump(t, "case []: pass"))
	})

	t.Run("mapping patterns", func(t *testing.T) {
		assert.Equal(t,
			"MatchMapping(keys=[Constant(value='k')], patterns=[MatchAs(name='v')])",
			caseDump(t, "case {'k': v}: pass"))
		assert.Equal(t,
			"MatchMapping(keys=[Constant(value=1)], patterns=[MatchAs()], rest='rest')",
			caseDump(t, "case {1: _, **rest}: pass"))
	})

	t.Run("class patterns", func(t *testing.T) {
		assert.Equal(t,
			"MatchClass(cls=Name(id='Point', ctx=Load()), patterns=[], kwd_attrs=['x', 'y'], kwd_patterns=[MatchValue(value=Constant(value=0)), MatchValue(value=Constant(value=0))])",
			caseDump(t, "case Point(x=0, y=0): pass"))
		assert.Equal(t,
			"MatchClass(cls=Attribute(value=Name(id='geo', ctx=Load()), attr='Point', ctx=Load()), patterns=[MatchAs(name='x'), MatchAs(name='y')], kwd_attrs=[], kwd_patterns=[])",
			caseDump(t, "case geo.Point(x, y): pass"))
	})

	t.Run("group pattern keeps the inner pattern", func(t *testing.T) {
		assert.Equal(t,
			"MatchOr(patterns=[MatchValue(value=Constant(value=1)), MatchValue(value=Constant(value=2))])",
			caseDump(t, "case (1 | 2): pass"))
	})
}

func TestParseMatchStatement(t *testing.T) {

	t.Run("guard and multiple cases", func(t *testing.T) {
		src := "match pt:\n    case (0, 0):\n        a()\n    case (x, y) if x == y:\n        b()\n    case _:\n        c()\n"
		mod, err := Parse(src)
		require.NoError(t, err)
		m := mod.Body[0].(*Match)
		require.Len(t, m.Cases, 3)
		assert.Nil(t, m.Cases[0].Guard)
		require.NotNil(t, m.Cases[1].Guard)
		assert.Equal(t,
			"Compare(left=Name(id='x', ctx=Load()), ops=[Eq()], comparators=[Name(id='y', ctx=Load())])",
			Dump(m.Cases[1].Guard))
	})

	t.Run("tuple subject", func(t *testing.T) {
		src := "match a, b:\n    case _:\n        pass\n"
		mod, err := Parse(src)
		require.NoError(t, err)
		m := mod.Body[0].(*Match)
		assert.Equal(t,
			"Tuple(elts=[Name(id='a', ctx=Load()), Name(id='b', ctx=Load())], ctx=Load())",
			Dump(m.Subject))
	})

	t.Run("match as an ordinary name", func(t *testing.T) {
		assert.Equal(t,
			"Module(body=[Expr(value=Call(func=Name(id='match', ctx=Load()), args=[Name(id='x', ctx=Load())], keywords=[]))])",
			moduleDump(t, "match(x)\n"))
		assert.Equal(t,
			"Module(body=[Assign(targets=[Name(id='match', ctx=Store())], value=Constant(value=1))])",
			moduleDump(t, "match = 1\n"))
	})

	t.Run("match without cases is rejected", func(t *testing.T) {
		perr := parseError(t, "match x:\n    pass\n")
		assert.Equal(t, EXPECTED_CASE_BLOCK, perr.Message)
	})

	t.Run("underscore cannot be a capture target", func(t *testing.T) {
		perr := parseError(t, "match x:\n    case 1 as _:\n        pass\n")
		assert.Equal(t, SyntaxError, perr.Kind)
	})
}
