package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pyrite-lang/pyrite/internal/utils"
)

func tokenTypes(t *testing.T, src string) []TokenType {
	t.Helper()
	tokens, err := tokenize(src)
	require.Nil(t, err)
	return utils.MapSlice(tokens, func(tok Token) TokenType { return tok.Type })
}

func TestTokenizeBasics(t *testing.T) {

	t.Run("empty source", func(t *testing.T) {
		assert.Equal(t, []TokenType{ENDMARKER}, tokenTypes(t, ""))
	})

	t.Run("simple statement", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			NAME, EQUAL, NUMBER, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x = 1\n"))
	})

	t.Run("missing trailing newline is synthesized", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			NAME, EQUAL, NUMBER, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x = 1"))
	})

	t.Run("EOF inside an indented block", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			IF_KEYWORD, NAME, COLON, NEWLINE,
			INDENT, NAME, NEWLINE, DEDENT, ENDMARKER,
		}, tokenTypes(t, "if x:\n    y"))
	})

	t.Run("trailing blank lines", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			NAME, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x\n\n\n"))
	})

	t.Run("keywords and soft keywords", func(t *testing.T) {
		tokens, err := tokenize("if match else case\n")
		require.Nil(t, err)
		assert.Equal(t, IF_KEYWORD, tokens[0].Type)
		assert.Equal(t, NAME, tokens[1].Type)
		assert.Equal(t, "match", tokens[1].Raw)
		assert.Equal(t, ELSE_KEYWORD, tokens[2].Type)
		assert.Equal(t, NAME, tokens[3].Type)
		assert.Equal(t, "case", tokens[3].Raw)
	})

	t.Run("comments are skipped", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			NAME, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x  # a comment\n# only a comment\n"))
	})

	t.Run("deterministic", func(t *testing.T) {
		src := "def f(x):\n    return [x ** 2 for x in range(10)]\n"
		first, err := tokenize(src)
		require.Nil(t, err)
		firstCopy := utils.CopySlice(first)

		second, err := tokenize(src)
		require.Nil(t, err)
		assert.Equal(t, firstCopy, second)
	})
}

func TestTokenizePositions(t *testing.T) {

	t.Run("lines are 1-based, columns 0-based", func(t *testing.T) {
		tokens, err := tokenize("x = 1\ny\n")
		require.Nil(t, err)

		assert.Equal(t, int32(1), tokens[0].Line)
		assert.Equal(t, int32(0), tokens[0].Column)
		assert.Equal(t, int32(1), tokens[1].Line)
		assert.Equal(t, int32(2), tokens[1].Column)

		y := tokens[4]
		assert.Equal(t, NAME, y.Type)
		assert.Equal(t, int32(2), y.Line)
		assert.Equal(t, int32(0), y.Column)
	})

	t.Run("spans index runes", func(t *testing.T) {
		tokens, err := tokenize("ab + cd\n")
		require.Nil(t, err)
		assert.Equal(t, NodeSpan{0, 2}, tokens[0].Span)
		assert.Equal(t, NodeSpan{3, 4}, tokens[1].Span)
		assert.Equal(t, NodeSpan{5, 7}, tokens[2].Span)
	})
}

func TestTokenizeIndentation(t *testing.T) {

	t.Run("INDENT and DEDENT always pair", func(t *testing.T) {
		sources := []string{
			"if a:\n    b\n",
			"if a:\n    if b:\n        c\n    d\ne\n",
			"def f():\n    if a:\n        b\n",
			"if a:\n    b\n    if c:\n        d\n",
		}
		for _, src := range sources {
			indents, dedents := 0, 0
			for _, typ := range tokenTypes(t, src) {
				switch typ {
				case INDENT:
					indents++
				case DEDENT:
					dedents++
				}
			}
			assert.Equal(t, indents, dedents, "source: %q", src)
			assert.Greater(t, indents, 0, "source: %q", src)
		}
	})

	t.Run("dedent to outer level emits multiple DEDENT tokens", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			IF_KEYWORD, NAME, COLON, NEWLINE,
			INDENT, IF_KEYWORD, NAME, COLON, NEWLINE,
			INDENT, NAME, NEWLINE,
			DEDENT, DEDENT, NAME, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "if a:\n    if b:\n        c\nd\n"))
	})

	t.Run("blank and comment-only lines do not affect indentation", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			IF_KEYWORD, NAME, COLON, NEWLINE,
			INDENT, NAME, NEWLINE, NAME, NEWLINE, DEDENT, ENDMARKER,
		}, tokenTypes(t, "if a:\n    b\n\n  # comment\n    c\n"))
	})

	t.Run("tab expansion only affects indent width", func(t *testing.T) {
		//a tab counts as one column in positions but widens the indent to the
		//next multiple of eight, so "\tb" and "        b" dedent consistently
		assert.Equal(t, []TokenType{
			IF_KEYWORD, NAME, COLON, NEWLINE,
			INDENT, NAME, NEWLINE,
			NAME, NEWLINE, DEDENT, ENDMARKER,
		}, tokenTypes(t, "if a:\n\tb\n        c\n"))

		tokens, err := tokenize("if a:\n\tb\n")
		require.Nil(t, err)

		var b Token
		for _, tok := range tokens {
			if tok.Type == NAME && tok.Raw == "b" {
				b = tok
			}
		}
		assert.Equal(t, int32(1), b.Column)
	})

	t.Run("inconsistent dedent is an error", func(t *testing.T) {
		_, err := tokenize("if a:\n        b\n    c\n")
		require.NotNil(t, err)
		assert.Equal(t, LexError, err.Kind)
		assert.Equal(t, INCONSISTENT_DEDENT, err.Message)
	})

	t.Run("newlines inside brackets are suppressed", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			NAME, EQUAL, OPENING_BRACKET, NUMBER, COMMA, NUMBER, COMMA,
			NUMBER, CLOSING_BRACKET, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x = [1,\n     2,\n     3]\n"))
	})

	t.Run("backslash continues the logical line", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			NAME, EQUAL, NUMBER, PLUS, NUMBER, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x = 1 + \\\n    2\n"))
	})
}

func TestTokenizeOperators(t *testing.T) {

	t.Run("maximal munch", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			NAME, DOUBLE_STAR_EQUAL, NUMBER, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x **= 2\n"))

		assert.Equal(t, []TokenType{
			NAME, LEFT_SHIFT_EQUAL, NUMBER, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x <<= 2\n"))

		assert.Equal(t, []TokenType{
			NAME, COLON_EQUAL, NUMBER, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "x := 1\n"))

		//a space keeps the dot out of the number literal
		assert.Equal(t, []TokenType{
			NUMBER, DOT, NAME, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "1 .real\n"))

		assert.Equal(t, []TokenType{
			ELLIPSIS, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "...\n"))

		assert.Equal(t, []TokenType{
			NAME, ARROW, NAME, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "f -> int\n"))
	})

	t.Run("unknown characters become UNEXPECTED_CHAR tokens", func(t *testing.T) {
		types := tokenTypes(t, "x $ y\n")
		assert.Contains(t, types, UNEXPECTED_CHAR)
	})
}

func TestTokenizeNumbers(t *testing.T) {
	cases := []struct {
		src string
		raw string
	}{
		{"42\n", "42"},
		{"1_000_000\n", "1_000_000"},
		{"0x_FF\n", "0x_FF"},
		{"0o777\n", "0o777"},
		{"0b1010\n", "0b1010"},
		{"3.14\n", "3.14"},
		{"1e10\n", "1e10"},
		{"1.5e-3\n", "1.5e-3"},
		{"2j\n", "2j"},
		{"1.\n", "1."},
	}
	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			tokens, err := tokenize(tc.src)
			require.Nil(t, err)
			require.Equal(t, NUMBER, tokens[0].Type)
			assert.Equal(t, tc.raw, tokens[0].Raw)
		})
	}
}

func TestTokenizeStrings(t *testing.T) {

	t.Run("quotes and prefixes", func(t *testing.T) {
		for _, src := range []string{
			"'a'\n", "\"a\"\n", "'''a\nb'''\n", "\"\"\"a\"\"\"\n", "r'a\\n'\n", "R'a'\n",
		} {
			tokens, err := tokenize(src)
			require.Nil(t, err, "source: %q", src)
			assert.Equal(t, STRING, tokens[0].Type, "source: %q", src)
		}
	})

	t.Run("unterminated single-quote string", func(t *testing.T) {
		_, err := tokenize("'abc\n")
		require.NotNil(t, err)
		assert.Equal(t, LexError, err.Kind)
		assert.Equal(t, UNTERMINATED_STRING_LIT, err.Message)
	})

	t.Run("unterminated triple-quote string", func(t *testing.T) {
		_, err := tokenize("'''abc\n")
		require.NotNil(t, err)
		assert.Equal(t, UNTERMINATED_STRING_LIT, err.Message)
	})
}

func TestTokenizeFStrings(t *testing.T) {

	t.Run("literal text and one field", func(t *testing.T) {
		tokens, err := tokenize("f'a{x}b'\n")
		require.Nil(t, err)

		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE, NAME, CLOSING_BRACE,
			FSTRING_MIDDLE, FSTRING_END, NEWLINE, ENDMARKER,
		}, utils.MapSlice(tokens, func(tok Token) TokenType { return tok.Type }))

		assert.Equal(t, "a", tokens[0].Raw)
		assert.Equal(t, "x", tokens[2].Raw)
		assert.Equal(t, "b", tokens[4].Raw)
	})

	t.Run("doubled braces are literal", func(t *testing.T) {
		tokens, err := tokenize("f'{{x}}'\n")
		require.Nil(t, err)
		assert.Equal(t, FSTRING_START, tokens[0].Type)
		assert.Equal(t, "{x}", tokens[0].Raw)
		assert.Equal(t, FSTRING_END, tokens[1].Type)
	})

	t.Run("format spec after colon", func(t *testing.T) {
		tokens, err := tokenize("f'{x:>10}'\n")
		require.Nil(t, err)
		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE, NAME, COLON, FSTRING_MIDDLE,
			CLOSING_BRACE, FSTRING_END, NEWLINE, ENDMARKER,
		}, utils.MapSlice(tokens, func(tok Token) TokenType { return tok.Type }))
		assert.Equal(t, ">10", tokens[4].Raw)
	})

	t.Run("colon inside nested brackets does not start a spec", func(t *testing.T) {
		tokens, err := tokenize("f'{d[a:b]}'\n")
		require.Nil(t, err)
		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE, NAME, OPENING_BRACKET, NAME,
			COLON, NAME, CLOSING_BRACKET, CLOSING_BRACE,
			FSTRING_END, NEWLINE, ENDMARKER,
		}, utils.MapSlice(tokens, func(tok Token) TokenType { return tok.Type }))
	})

	t.Run("whitespace inside a replacement field", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE, NAME, CLOSING_BRACE,
			FSTRING_END, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "f'{ x }'\n"))
	})

	t.Run("dict display inside a replacement field", func(t *testing.T) {
		//the display's braces belong to the expression, not the field
		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE, OPENING_BRACE, NUMBER, COLON,
			NUMBER, CLOSING_BRACE, CLOSING_BRACE,
			FSTRING_END, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "f'{ {1: 2} }'\n"))
	})

	t.Run("nested replacement field in a format spec", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE, NAME, COLON, FSTRING_MIDDLE,
			OPENING_BRACE, NAME, CLOSING_BRACE, CLOSING_BRACE,
			FSTRING_END, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "f'{x:>{w}}'\n"))
	})

	t.Run("nested f-string", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE,
			FSTRING_START, OPENING_BRACE, NAME, CLOSING_BRACE, FSTRING_END,
			CLOSING_BRACE, FSTRING_END, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "f'{f\"{x}\"}'\n"))
	})

	t.Run("conversion", func(t *testing.T) {
		assert.Equal(t, []TokenType{
			FSTRING_START, OPENING_BRACE, NAME, EXCLAMATION_MARK, NAME,
			CLOSING_BRACE, FSTRING_END, NEWLINE, ENDMARKER,
		}, tokenTypes(t, "f'{x!r}'\n"))
	})

	t.Run("unterminated f-string", func(t *testing.T) {
		_, err := tokenize("f'a{x\n")
		require.NotNil(t, err)
		assert.Equal(t, LexError, err.Kind)
		assert.Equal(t, UNTERMINATED_FSTRING_LIT, err.Message)
	})
}
