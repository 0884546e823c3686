package parse

import "fmt"

// A Token is an immutable lexical unit. The token slice produced by
// tokenize covers all non-whitespace, non-comment source text; consumers
// only advance a cursor over it.
type Token struct {
	Type TokenType `json:"type"`
	// Raw is the source text of the token. For STRING tokens it includes the
	// prefix and quotes; for FSTRING_START and FSTRING_MIDDLE it holds the
	// already-decoded literal text of the segment.
	Raw  string   `json:"raw"`
	Span NodeSpan `json:"span"`

	Line      int32 `json:"line"`   //1-based
	Column    int32 `json:"column"` //0-based, rune offset in the line
	EndLine   int32 `json:"endLine"`
	EndColumn int32 `json:"endColumn"`
}

func (t Token) Str() string {
	if t.Raw != "" {
		return t.Raw
	}
	return tokenStrings[t.Type]
}

func (t Token) IsKeyword() bool {
	return t.Type >= FALSE_KEYWORD && t.Type <= YIELD_KEYWORD
}

func (t Token) IsAugmentedAssignOp() bool {
	return t.Type >= PLUS_EQUAL && t.Type <= AT_EQUAL
}

type TokenType uint8

const (
	ENDMARKER TokenType = iota
	NEWLINE
	INDENT
	DEDENT

	NAME
	NUMBER
	STRING
	FSTRING_START
	FSTRING_MIDDLE
	FSTRING_END

	//keywords
	FALSE_KEYWORD
	NONE_KEYWORD
	TRUE_KEYWORD
	AND_KEYWORD
	AS_KEYWORD
	ASSERT_KEYWORD
	ASYNC_KEYWORD
	AWAIT_KEYWORD
	BREAK_KEYWORD
	CLASS_KEYWORD
	CONTINUE_KEYWORD
	DEF_KEYWORD
	DEL_KEYWORD
	ELIF_KEYWORD
	ELSE_KEYWORD
	EXCEPT_KEYWORD
	FINALLY_KEYWORD
	FOR_KEYWORD
	FROM_KEYWORD
	GLOBAL_KEYWORD
	IF_KEYWORD
	IMPORT_KEYWORD
	IN_KEYWORD
	IS_KEYWORD
	LAMBDA_KEYWORD
	NONLOCAL_KEYWORD
	NOT_KEYWORD
	OR_KEYWORD
	PASS_KEYWORD
	RAISE_KEYWORD
	RETURN_KEYWORD
	TRY_KEYWORD
	WHILE_KEYWORD
	WITH_KEYWORD
	YIELD_KEYWORD

	//operators
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	DOUBLE_STAR
	DOUBLE_SLASH
	AT_SIGN

	LESS
	GREATER
	EQUAL_EQUAL
	NOT_EQUAL
	LESS_EQUAL
	GREATER_EQUAL

	AMPERSAND
	PIPE
	CARET
	TILDE
	LEFT_SHIFT
	RIGHT_SHIFT

	//delimiters
	OPENING_PARENTHESIS
	CLOSING_PARENTHESIS
	OPENING_BRACKET
	CLOSING_BRACKET
	OPENING_BRACE
	CLOSING_BRACE
	COLON
	COMMA
	SEMICOLON
	DOT
	ELLIPSIS
	ARROW
	COLON_EQUAL
	EQUAL
	EXCLAMATION_MARK //only appears inside f-string replacement fields

	//augmented assignment operators, contiguous so IsAugmentedAssignOp can
	//check a range
	PLUS_EQUAL
	MINUS_EQUAL
	STAR_EQUAL
	SLASH_EQUAL
	PERCENT_EQUAL
	DOUBLE_STAR_EQUAL
	DOUBLE_SLASH_EQUAL
	AMPERSAND_EQUAL
	PIPE_EQUAL
	CARET_EQUAL
	LEFT_SHIFT_EQUAL
	RIGHT_SHIFT_EQUAL
	AT_EQUAL

	UNEXPECTED_CHAR

	TOKEN_TYPE_COUNT
)

var tokenStrings = [TOKEN_TYPE_COUNT]string{
	ENDMARKER:      "<endmarker>",
	NEWLINE:        "<newline>",
	INDENT:         "<indent>",
	DEDENT:         "<dedent>",
	NAME:           "<name>",
	NUMBER:         "<number>",
	STRING:         "<string>",
	FSTRING_START:  "<fstring-start>",
	FSTRING_MIDDLE: "<fstring-middle>",
	FSTRING_END:    "<fstring-end>",

	FALSE_KEYWORD:    "False",
	NONE_KEYWORD:     "None",
	TRUE_KEYWORD:     "True",
	AND_KEYWORD:      "and",
	AS_KEYWORD:       "as",
	ASSERT_KEYWORD:   "assert",
	ASYNC_KEYWORD:    "async",
	AWAIT_KEYWORD:    "await",
	BREAK_KEYWORD:    "break",
	CLASS_KEYWORD:    "class",
	CONTINUE_KEYWORD: "continue",
	DEF_KEYWORD:      "def",
	DEL_KEYWORD:      "del",
	ELIF_KEYWORD:     "elif",
	ELSE_KEYWORD:     "else",
	EXCEPT_KEYWORD:   "except",
	FINALLY_KEYWORD:  "finally",
	FOR_KEYWORD:      "for",
	FROM_KEYWORD:     "from",
	GLOBAL_KEYWORD:   "global",
	IF_KEYWORD:       "if",
	IMPORT_KEYWORD:   "import",
	IN_KEYWORD:       "in",
	IS_KEYWORD:       "is",
	LAMBDA_KEYWORD:   "lambda",
	NONLOCAL_KEYWORD: "nonlocal",
	NOT_KEYWORD:      "not",
	OR_KEYWORD:       "or",
	PASS_KEYWORD:     "pass",
	RAISE_KEYWORD:    "raise",
	RETURN_KEYWORD:   "return",
	TRY_KEYWORD:      "try",
	WHILE_KEYWORD:    "while",
	WITH_KEYWORD:     "with",
	YIELD_KEYWORD:    "yield",

	PLUS:         "+",
	MINUS:        "-",
	STAR:         "*",
	SLASH:        "/",
	PERCENT:      "%",
	DOUBLE_STAR:  "**",
	DOUBLE_SLASH: "//",
	AT_SIGN:      "@",

	LESS:          "<",
	GREATER:       ">",
	EQUAL_EQUAL:   "==",
	NOT_EQUAL:     "!=",
	LESS_EQUAL:    "<=",
	GREATER_EQUAL: ">=",

	AMPERSAND:   "&",
	PIPE:        "|",
	CARET:       "^",
	TILDE:       "~",
	LEFT_SHIFT:  "<<",
	RIGHT_SHIFT: ">>",

	OPENING_PARENTHESIS: "(",
	CLOSING_PARENTHESIS: ")",
	OPENING_BRACKET:     "[",
	CLOSING_BRACKET:     "]",
	OPENING_BRACE:       "{",
	CLOSING_BRACE:       "}",
	COLON:               ":",
	COMMA:               ",",
	SEMICOLON:           ";",
	DOT:                 ".",
	ELLIPSIS:            "...",
	ARROW:               "->",
	COLON_EQUAL:         ":=",
	EQUAL:               "=",
	EXCLAMATION_MARK:    "!",

	PLUS_EQUAL:         "+=",
	MINUS_EQUAL:        "-=",
	STAR_EQUAL:         "*=",
	SLASH_EQUAL:        "/=",
	PERCENT_EQUAL:      "%=",
	DOUBLE_STAR_EQUAL:  "**=",
	DOUBLE_SLASH_EQUAL: "//=",
	AMPERSAND_EQUAL:    "&=",
	PIPE_EQUAL:         "|=",
	CARET_EQUAL:        "^=",
	LEFT_SHIFT_EQUAL:   "<<=",
	RIGHT_SHIFT_EQUAL:  ">>=",
	AT_EQUAL:           "@=",

	UNEXPECTED_CHAR: "<unexpected-char>",
}

func (t TokenType) String() string {
	if t >= TOKEN_TYPE_COUNT {
		return fmt.Sprintf("TokenType(%d)", uint8(t))
	}
	return tokenStrings[t]
}

// keywords maps keyword spellings to their token types. 'match', 'case' and
// 'type' are soft keywords: they tokenize as NAME and are recognized by the
// parser from context.
var keywords = map[string]TokenType{
	"False":    FALSE_KEYWORD,
	"None":     NONE_KEYWORD,
	"True":     TRUE_KEYWORD,
	"and":      AND_KEYWORD,
	"as":       AS_KEYWORD,
	"assert":   ASSERT_KEYWORD,
	"async":    ASYNC_KEYWORD,
	"await":    AWAIT_KEYWORD,
	"break":    BREAK_KEYWORD,
	"class":    CLASS_KEYWORD,
	"continue": CONTINUE_KEYWORD,
	"def":      DEF_KEYWORD,
	"del":      DEL_KEYWORD,
	"elif":     ELIF_KEYWORD,
	"else":     ELSE_KEYWORD,
	"except":   EXCEPT_KEYWORD,
	"finally":  FINALLY_KEYWORD,
	"for":      FOR_KEYWORD,
	"from":     FROM_KEYWORD,
	"global":   GLOBAL_KEYWORD,
	"if":       IF_KEYWORD,
	"import":   IMPORT_KEYWORD,
	"in":       IN_KEYWORD,
	"is":       IS_KEYWORD,
	"lambda":   LAMBDA_KEYWORD,
	"nonlocal": NONLOCAL_KEYWORD,
	"not":      NOT_KEYWORD,
	"or":       OR_KEYWORD,
	"pass":     PASS_KEYWORD,
	"raise":    RAISE_KEYWORD,
	"return":   RETURN_KEYWORD,
	"try":      TRY_KEYWORD,
	"while":    WHILE_KEYWORD,
	"with":     WITH_KEYWORD,
	"yield":    YIELD_KEYWORD,
}

func lookupKeyword(name string) (TokenType, bool) {
	t, ok := keywords[name]
	return t, ok
}
