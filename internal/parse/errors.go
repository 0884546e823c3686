package parse

import "fmt"

type ParsingErrorKind uint8

const (
	UnspecifiedParsingError ParsingErrorKind = iota
	//LexError: the tokenizer could not produce a valid token stream
	//(unterminated literal, inconsistent dedent).
	LexError
	//SyntaxError: no grammar alternative matched the token stream.
	SyntaxError
	//InternalError: an invariant of the parser itself was violated; always a
	//bug, never caused by the input.
	InternalError
)

func (k ParsingErrorKind) String() string {
	switch k {
	case LexError:
		return "lex-error"
	case SyntaxError:
		return "syntax-error"
	case InternalError:
		return "internal-error"
	default:
		return "parsing-error"
	}
}

// A SourcePosition locates a diagnostic: 1-based line, 0-based column
// (rune offset in the line, CPython's col_offset convention).
type SourcePosition struct {
	Line   int32 `json:"line"`
	Column int32 `json:"column"`
}

// A ParsingError is the single diagnostic produced by a failed parse.
// The parser does not resynchronize: the first unrecoverable failure aborts.
type ParsingError struct {
	Kind     ParsingErrorKind `json:"kind"`
	Message  string           `json:"message"`
	Position SourcePosition   `json:"position"`
}

func (err *ParsingError) Error() string {
	return fmt.Sprintf("%d:%d: %s", err.Position.Line, err.Position.Column, err.Message)
}

const (
	UNTERMINATED_STRING_LIT  = "unterminated string literal"
	UNTERMINATED_FSTRING_LIT = "unterminated f-string literal"
	INCONSISTENT_DEDENT      = "unindent does not match any outer indentation level"

	EXPECTED_INDENTED_BLOCK           = "expected an indented block"
	INVALID_ASSIGN_TARGET             = "cannot assign to this expression"
	INVALID_AUG_ASSIGN_TARGET         = "invalid target for augmented assignment"
	INVALID_ANN_ASSIGN_TARGET         = "only a name, an attribute or a subscript can be annotated"
	INVALID_DELETE_TARGET             = "cannot delete this expression"
	INVALID_NAMED_EXPR_TARGET         = "cannot use assignment expression with this target"
	STARRED_ASSIGN_TARGET_NOT_ALLOWED = "starred assignment target must be in a list or tuple"
	MULTIPLE_STARRED_IN_COMPARISON    = "can't use starred expression here"
	DEFAULT_BEFORE_NON_DEFAULT_PARAM  = "parameter without a default follows parameter with a default"
	EXPECTED_PATTERN                  = "expected a pattern"
	EXPECTED_EXPR                     = "expected an expression"
	EXPECTED_CASE_BLOCK               = "expected at least one 'case' block"
	KEYWORD_ARG_AFTER_DOUBLE_STAR     = "positional argument follows keyword argument unpacking"
	POSITIONAL_ARG_AFTER_KEYWORD_ARG  = "positional argument follows keyword argument"
	RELATIVE_IMPORT_MISSING_MODULE    = "missing module name in relative import"
	EXCEPT_STAR_MIXED_WITH_EXCEPT     = "cannot have both 'except' and 'except*' on the same 'try'"
	VAR_PARAM_WITH_DEFAULT            = "var-parameter cannot have a default value"
	TRY_WITHOUT_EXCEPT_OR_FINALLY     = "expected 'except' or 'finally' block"
)

func fmtUnexpectedToken(t Token) string {
	switch t.Type {
	case ENDMARKER:
		return "unexpected end of input"
	case NEWLINE:
		return "unexpected end of line"
	case INDENT:
		return "unexpected indent"
	case UNEXPECTED_CHAR:
		return fmt.Sprintf("invalid character %q", t.Raw)
	default:
		return fmt.Sprintf("unexpected token %q", t.Str())
	}
}

func fmtExpectedToken(expected TokenType, got Token) string {
	switch got.Type {
	case ENDMARKER:
		return fmt.Sprintf("expected %q, got end of input", tokenStrings[expected])
	case NEWLINE:
		return fmt.Sprintf("expected %q, got end of line", tokenStrings[expected])
	default:
		return fmt.Sprintf("expected %q, got %q", tokenStrings[expected], got.Str())
	}
}

func fmtDuplicateParamName(name string) string {
	return fmt.Sprintf("duplicate argument %q in function definition", name)
}

func fmtInvalidConversionChar(name string) string {
	return fmt.Sprintf("f-string: invalid conversion character %q: expected 's', 'r', or 'a'", name)
}

func fmtDuplicateKeywordMarker(marker string) string {
	return fmt.Sprintf("duplicate %q marker in parameter list", marker)
}

func fmtInvalidNumberLiteral(raw string) string {
	return fmt.Sprintf("invalid number literal %q", raw)
}
