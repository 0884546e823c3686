package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStringLiterals(t *testing.T) {

	t.Run("escape sequences decode", func(t *testing.T) {
		assert.Equal(t, `Constant(value='a\nb')`, exprDump(t, `'a\nb'`))
		assert.Equal(t, `Constant(value='\'')`, exprDump(t, `'\''`))
		assert.Equal(t, "Constant(value='A')", exprDump(t, `'\x41'`))
		assert.Equal(t, "Constant(value='A')", exprDump(t, `'\101'`))
		assert.Equal(t, "Constant(value='é')", exprDump(t, `'é'`))
	})

	t.Run("raw strings keep backslashes", func(t *testing.T) {
		assert.Equal(t, `Constant(value='a\\nb')`, exprDump(t, `r'a\nb'`))
	})

	t.Run("unknown escapes keep the backslash", func(t *testing.T) {
		assert.Equal(t, `Constant(value='a\\qb')`, exprDump(t, `'a\qb'`))
	})

	t.Run("triple quoted strings span lines", func(t *testing.T) {
		assert.Equal(t, `Constant(value='a\nb')`, exprDump(t, "'''a\nb'''"))
	})

	t.Run("implicit concatenation folds plain strings", func(t *testing.T) {
		assert.Equal(t, "Constant(value='ab')", exprDump(t, "'a' 'b'"))
		assert.Equal(t, "Constant(value='abc')", exprDump(t, "'a' \"b\" 'c'"))
	})
}

func TestParseFStrings(t *testing.T) {

	t.Run("literal text around a field", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[Constant(value='a'), FormattedValue(value=Name(id='x', ctx=Load()), conversion=-1), Constant(value='b')])",
			exprDump(t, "f'a{x}b'"))
	})

	t.Run("empty f-string", func(t *testing.T) {
		assert.Equal(t, "JoinedStr(values=[])", exprDump(t, "f''"))
	})

	t.Run("conversion characters", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[FormattedValue(value=Name(id='x', ctx=Load()), conversion=114)])",
			exprDump(t, "f'{x!r}'"))
		assert.Equal(t,
			"JoinedStr(values=[FormattedValue(value=Name(id='x', ctx=Load()), conversion=115)])",
			exprDump(t, "f'{x!s}'"))
	})

	t.Run("format spec with a nested field", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[Constant(value='a'), FormattedValue(value=Name(id='x', ctx=Load()), conversion=114, format_spec=JoinedStr(values=[Constant(value='>'), FormattedValue(value=Name(id='w', ctx=Load()), conversion=-1)])), Constant(value='b')])",
			exprDump(t, "f'a{x!r:>{w}}b'"))
	})

	t.Run("plain format spec", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[FormattedValue(value=Name(id='n', ctx=Load()), conversion=-1, format_spec=JoinedStr(values=[Constant(value='.2f')]))])",
			exprDump(t, "f'{n:.2f}'"))
	})

	t.Run("expression with internal braces", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[FormattedValue(value=Dict(keys=[Constant(value=1)], values=[Constant(value=2)]), conversion=-1)])",
			exprDump(t, "f'{ {1: 2} }'"))
	})

	t.Run("slice colon inside a field is not a format spec", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[FormattedValue(value=Subscript(value=Name(id='d', ctx=Load()), slice=Slice(lower=Name(id='a', ctx=Load()), upper=Name(id='b', ctx=Load())), ctx=Load()), conversion=-1)])",
			exprDump(t, "f'{d[a:b]}'"))
	})

	t.Run("doubled braces are literal text", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[Constant(value='{'), FormattedValue(value=Name(id='x', ctx=Load()), conversion=-1), Constant(value='}')])",
			exprDump(t, "f'{{{x}}}'"))
	})

	t.Run("nested f-string", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[FormattedValue(value=JoinedStr(values=[FormattedValue(value=Name(id='x', ctx=Load()), conversion=-1)]), conversion=-1)])",
			exprDump(t, `f'{f"{x}"}'`))
	})

	t.Run("mixed implicit concatenation joins into one JoinedStr", func(t *testing.T) {
		assert.Equal(t,
			"JoinedStr(values=[Constant(value='ab'), FormattedValue(value=Name(id='x', ctx=Load()), conversion=-1)])",
			exprDump(t, "'a' f'b{x}'"))
	})

	t.Run("invalid conversion character", func(t *testing.T) {
		_, err := Parse("f'{x!z}'\n")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid conversion character")
	})
}
