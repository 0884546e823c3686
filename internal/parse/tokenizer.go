package parse

import (
	"strings"
	"unicode"
)

const TAB_WIDTH = 8

// fstringFrame is the per-nesting-level state of an f-string being lexed.
// Nested f-strings (f"{f'{x}'}") each push their own frame.
type fstringFrame struct {
	quote     rune
	quoteSize int32 //1 or 3
	raw       bool

	braceDepth     int32 //unclosed '{' of replacement fields
	exprStartDepth int32 //-1 when no active replacement field
	inFormatSpec   bool
	sawFormatSpec  bool

	//bracket depth of the surrounding code when the frame was pushed; a ':'
	//only starts a format spec when the depth is back to this level, so the
	//colons of slices and dict displays inside a field stay ordinary tokens
	parenDepthAtStart int32
}

// tokenizer scans source text into a token sequence. It owns indentation
// tracking and the f-string frame stack; independent instances are fully
// isolated, there is no package-level state.
type tokenizer struct {
	s   []rune
	i   int32
	len int32

	line int32 //1-based
	col  int32 //0-based rune offset in the current line

	atLineStart    bool
	parenDepth     int32
	indents        []int32
	pendingDedents int32
	fstrings       []fstringFrame
}

// tokenize scans the whole source and returns the token sequence terminated
// by an ENDMARKER, or a positioned LexError. Unrecognized characters do not
// abort the scan: they become UNEXPECTED_CHAR tokens that the parser turns
// into a fatal diagnostic.
func tokenize(source string) ([]Token, *ParsingError) {
	runes := []rune(source)
	t := &tokenizer{
		s:           runes,
		len:         int32(len(runes)),
		line:        1,
		atLineStart: true,
		indents:     []int32{0},
	}

	tokens := make([]Token, 0, len(runes)/4)
	for {
		tok, err := t.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == ENDMARKER {
			return tokens, nil
		}
	}
}

func (t *tokenizer) advance() {
	if t.i < t.len {
		if t.s[t.i] == '\n' {
			t.line++
			t.col = 0
		} else {
			t.col++
		}
		t.i++
	}
}

func (t *tokenizer) current() rune {
	if t.i < t.len {
		return t.s[t.i]
	}
	return 0
}

func (t *tokenizer) peek(offset int32) rune {
	if t.i+offset < t.len {
		return t.s[t.i+offset]
	}
	return 0
}

func (t *tokenizer) makeToken(typ TokenType, raw string, start int32, startLine, startCol int32) Token {
	return Token{
		Type:      typ,
		Raw:       raw,
		Span:      NodeSpan{start, t.i},
		Line:      startLine,
		Column:    startCol,
		EndLine:   t.line,
		EndColumn: t.col,
	}
}

func (t *tokenizer) lexError(msg string, line, col int32) *ParsingError {
	return &ParsingError{
		Kind:     LexError,
		Message:  msg,
		Position: SourcePosition{Line: line, Column: col},
	}
}

func (t *tokenizer) next() (Token, *ParsingError) {
	if t.pendingDedents > 0 {
		t.pendingDedents--
		return t.makeToken(DEDENT, "", t.i, t.line, t.col), nil
	}

	// F-string frames are inspected before any whitespace skipping: outside a
	// replacement field every character, spaces included, is literal text.
	if len(t.fstrings) > 0 {
		if tok, handled, err := t.fstringNext(); handled {
			return tok, err
		}
		//inside a replacement field: tokenize normally
	} else if t.atLineStart && t.parenDepth == 0 {
		return t.handleIndentation()
	}

	t.skipWhitespaceInline()
	t.skipComment()

	if t.i >= t.len {
		return t.handleEOF()
	}

	c := t.current()

	if c == '\n' || c == '\r' {
		return t.readNewline()
	}

	if isStringQuote(c) {
		return t.readString(0, false)
	}

	if c == 'f' || c == 'F' || c == 'r' || c == 'R' {
		if prefixLen, isFString, isRaw, ok := t.checkStringPrefix(); ok {
			if isFString {
				return t.readFStringStart(prefixLen, isRaw)
			}
			return t.readString(prefixLen, isRaw)
		}
	}

	if isDecDigit(c) || (c == '.' && isDecDigit(t.peek(1))) {
		return t.readNumber()
	}

	if isIdentStart(c) {
		return t.readNameOrKeyword()
	}

	return t.readOperator()
}

func (t *tokenizer) handleEOF() (Token, *ParsingError) {
	if len(t.fstrings) > 0 {
		return Token{}, t.lexError(UNTERMINATED_FSTRING_LIT, t.line, t.col)
	}
	//a logical line that does not end with '\n' still ends with NEWLINE
	if !t.atLineStart {
		t.atLineStart = true
		return t.makeToken(NEWLINE, "", t.i, t.line, t.col), nil
	}
	//unwind the indent stack to the base level
	if len(t.indents) > 1 {
		t.pendingDedents = int32(len(t.indents) - 1)
		t.indents = t.indents[:1]
		return t.next()
	}
	return t.makeToken(ENDMARKER, "", t.i, t.line, t.col), nil
}

// skipWhitespaceInline skips spaces, tabs, carriage returns and
// backslash-newline line continuations. Newlines themselves are tokens.
func (t *tokenizer) skipWhitespaceInline() {
	for t.i < t.len {
		switch c := t.s[t.i]; {
		case c == ' ' || c == '\t' || c == '\r' && t.peek(1) != '\n':
			t.advance()
		case c == '\\' && (t.peek(1) == '\n' || t.peek(1) == '\r' && t.peek(2) == '\n'):
			t.advance() //backslash
			if t.current() == '\r' {
				t.advance()
			}
			t.advance() //newline
		default:
			return
		}
	}
}

func (t *tokenizer) skipComment() {
	if t.i < t.len && t.s[t.i] == '#' {
		for t.i < t.len && t.s[t.i] != '\n' {
			t.advance()
		}
	}
}

// handleIndentation computes the indent width of the physical line and emits
// INDENT/DEDENT tokens against the indent stack. Blank lines and
// comment-only lines do not participate in the comparison.
func (t *tokenizer) handleIndentation() (Token, *ParsingError) {
	var indent int32
	startIdx := t.i
	startLine, startCol := t.line, t.col

	for t.i < t.len {
		switch t.s[t.i] {
		case ' ':
			indent++
			t.advance()
		case '\t':
			indent = (indent/TAB_WIDTH + 1) * TAB_WIDTH
			t.advance()
		case '\r':
			t.advance()
		case '\n':
			t.advance()
			indent = 0
			startIdx = t.i
			startLine, startCol = t.line, t.col
		case '#':
			t.skipComment()
		default:
			goto done
		}
	}
done:
	//EOF must be checked while atLineStart is still set, otherwise handleEOF
	//would synthesize a NEWLINE for a line that has no content
	if t.i >= t.len {
		return t.handleEOF()
	}
	t.atLineStart = false

	top := t.indents[len(t.indents)-1]
	switch {
	case indent > top:
		t.indents = append(t.indents, indent)
		return Token{
			Type:      INDENT,
			Span:      NodeSpan{startIdx, t.i},
			Line:      startLine,
			Column:    startCol,
			EndLine:   t.line,
			EndColumn: t.col,
		}, nil
	case indent < top:
		for len(t.indents) > 1 && indent < t.indents[len(t.indents)-1] {
			t.indents = t.indents[:len(t.indents)-1]
			t.pendingDedents++
		}
		if indent != t.indents[len(t.indents)-1] {
			return Token{}, t.lexError(INCONSISTENT_DEDENT, t.line, t.col)
		}
		return t.next()
	default:
		return t.next()
	}
}

func (t *tokenizer) readNewline() (Token, *ParsingError) {
	start := t.i
	startLine, startCol := t.line, t.col
	if t.current() == '\r' {
		t.advance()
	}
	if t.current() == '\n' {
		t.advance()
	}

	//inside brackets or an f-string replacement field the newline is a
	//logical continuation, not a statement terminator
	if t.parenDepth > 0 || len(t.fstrings) > 0 {
		return t.next()
	}

	t.atLineStart = true
	return Token{
		Type:      NEWLINE,
		Span:      NodeSpan{start, t.i},
		Line:      startLine,
		Column:    startCol,
		EndLine:   t.line,
		EndColumn: t.col,
	}, nil
}

// checkStringPrefix checks for an r/R/f/F prefix (in either order)
// immediately followed by a quote. It does not consume anything.
func (t *tokenizer) checkStringPrefix() (prefixLen int32, isFString, isRaw, ok bool) {
	j := t.i
	for j < t.len && j-t.i < 2 {
		switch t.s[j] {
		case 'r', 'R':
			if isRaw {
				return 0, false, false, false
			}
			isRaw = true
		case 'f', 'F':
			if isFString {
				return 0, false, false, false
			}
			isFString = true
		default:
			goto end
		}
		j++
	}
end:
	if j < t.len && isStringQuote(t.s[j]) && j > t.i {
		return j - t.i, isFString, isRaw, true
	}
	return 0, false, false, false
}

// readString reads a plain (possibly raw) string literal. Raw keeps the full
// source text of the literal, prefix and quotes included; decoding happens
// in the parser when the Constant node is built.
func (t *tokenizer) readString(prefixLen int32, raw bool) (Token, *ParsingError) {
	start := t.i
	startLine, startCol := t.line, t.col

	for n := int32(0); n < prefixLen; n++ {
		t.advance()
	}

	quote := t.current()
	t.advance()

	triple := false
	if t.current() == quote && t.peek(1) == quote {
		triple = true
		t.advance()
		t.advance()
	}

	for {
		if t.i >= t.len {
			return Token{}, t.lexError(UNTERMINATED_STRING_LIT, startLine, startCol)
		}
		c := t.current()

		switch {
		case c == '\\' && t.i+1 < t.len:
			//a backslash pairs with the next character even in raw strings:
			//r"\" is unterminated
			t.advance()
			t.advance()
		case c == quote:
			if !triple {
				t.advance()
				return t.makeToken(STRING, string(t.s[start:t.i]), start, startLine, startCol), nil
			}
			if t.peek(1) == quote && t.peek(2) == quote {
				t.advance()
				t.advance()
				t.advance()
				return t.makeToken(STRING, string(t.s[start:t.i]), start, startLine, startCol), nil
			}
			t.advance()
		case c == '\n' && !triple:
			return Token{}, t.lexError(UNTERMINATED_STRING_LIT, startLine, startCol)
		default:
			t.advance()
		}
	}
}

// fstringNext handles the special characters of an active f-string frame.
// handled is false when the cursor is inside a replacement field and normal
// tokenization should proceed.
func (t *tokenizer) fstringNext() (tok Token, handled bool, err *ParsingError) {
	frame := &t.fstrings[len(t.fstrings)-1]

	//inside a replacement field whitespace separates tokens instead of being
	//literal text; it must be skipped here so the frame sees a following
	//brace, otherwise readOperator would count it against parenDepth
	if frame.braceDepth > 0 && !frame.inFormatSpec {
		t.skipWhitespaceInline()
	}

	if t.i >= t.len {
		err = t.lexError(UNTERMINATED_FSTRING_LIT, t.line, t.col)
		return Token{}, true, err
	}

	c := t.current()
	startLine, startCol := t.line, t.col

	if c == frame.quote && t.atClosingQuote(frame) {
		return t.readFStringEnd(frame), true, nil
	}

	if c == '{' {
		if t.peek(1) == '{' {
			//literal brace, part of the middle text
			tok, err = t.readFStringMiddle(frame)
			return tok, true, err
		}
		if frame.inFormatSpec {
			//nested replacement field inside a format spec
			frame.inFormatSpec = false
		}
		if frame.braceDepth == 0 {
			frame.exprStartDepth = 0
		}
		frame.braceDepth++
		start := t.i
		t.advance()
		return t.makeToken(OPENING_BRACE, "", start, startLine, startCol), true, nil
	}

	if c == '}' {
		if frame.braceDepth == 0 && t.peek(1) == '}' {
			tok, err = t.readFStringMiddle(frame)
			return tok, true, err
		}
		start := t.i
		t.advance()
		if frame.braceDepth > 0 {
			frame.braceDepth--
			if frame.braceDepth == 0 {
				//the top-level replacement field is closed
				frame.inFormatSpec = false
				frame.sawFormatSpec = false
				frame.exprStartDepth = -1
			} else if frame.sawFormatSpec && frame.braceDepth-1 == frame.exprStartDepth {
				//back at the format-spec level after a nested field
				frame.inFormatSpec = true
			}
		}
		return t.makeToken(CLOSING_BRACE, "", start, startLine, startCol), true, nil
	}

	//a ':' exactly at the boundary depth of the current field starts the
	//format spec; deeper colons (lambda, slices, dict literals) do not
	if c == ':' && frame.braceDepth > 0 && frame.braceDepth-1 == frame.exprStartDepth &&
		!frame.inFormatSpec && t.parenDepth == frame.parenDepthAtStart {
		frame.inFormatSpec = true
		frame.sawFormatSpec = true
		start := t.i
		t.advance()
		return t.makeToken(COLON, "", start, startLine, startCol), true, nil
	}

	if frame.braceDepth > 0 && !frame.inFormatSpec {
		return Token{}, false, nil
	}

	tok, err = t.readFStringMiddle(frame)
	return tok, true, err
}

func (t *tokenizer) atClosingQuote(frame *fstringFrame) bool {
	for n := int32(0); n < frame.quoteSize; n++ {
		if t.i+n >= t.len || t.s[t.i+n] != frame.quote {
			return false
		}
	}
	return true
}

// readFStringStart consumes the prefix and opening quote, pushes a frame and
// reads the leading literal text up to the first replacement field or the
// closing quote.
func (t *tokenizer) readFStringStart(prefixLen int32, raw bool) (Token, *ParsingError) {
	start := t.i
	startLine, startCol := t.line, t.col

	for n := int32(0); n < prefixLen; n++ {
		t.advance()
	}

	quote := t.current()
	quoteSize := int32(1)
	t.advance()
	if t.current() == quote && t.peek(1) == quote {
		quoteSize = 3
		t.advance()
		t.advance()
	}

	t.fstrings = append(t.fstrings, fstringFrame{
		quote:             quote,
		quoteSize:         quoteSize,
		raw:               raw,
		exprStartDepth:    -1,
		parenDepthAtStart: t.parenDepth,
	})
	frame := &t.fstrings[len(t.fstrings)-1]

	text, err := t.readFStringText(frame, startLine, startCol)
	if err != nil {
		return Token{}, err
	}
	return t.makeToken(FSTRING_START, text, start, startLine, startCol), nil
}

func (t *tokenizer) readFStringMiddle(frame *fstringFrame) (Token, *ParsingError) {
	start := t.i
	startLine, startCol := t.line, t.col
	text, err := t.readFStringText(frame, startLine, startCol)
	if err != nil {
		return Token{}, err
	}
	return t.makeToken(FSTRING_MIDDLE, text, start, startLine, startCol), nil
}

// readFStringText reads literal f-string text, collapsing doubled braces and
// decoding escapes, until a replacement-field brace or the closing quote.
// Neither delimiter is consumed.
func (t *tokenizer) readFStringText(frame *fstringFrame, startLine, startCol int32) (string, *ParsingError) {
	var b strings.Builder

	for {
		if t.i >= t.len {
			return "", t.lexError(UNTERMINATED_FSTRING_LIT, startLine, startCol)
		}
		c := t.current()

		switch {
		case c == frame.quote && t.atClosingQuote(frame):
			return b.String(), nil
		case c == '{':
			if t.peek(1) == '{' {
				b.WriteRune('{')
				t.advance()
				t.advance()
				continue
			}
			return b.String(), nil
		case c == '}':
			if t.peek(1) == '}' {
				b.WriteRune('}')
				t.advance()
				t.advance()
				continue
			}
			return b.String(), nil
		case c == '\\' && t.i+1 < t.len:
			next := t.peek(1)
			if frame.raw {
				b.WriteRune('\\')
				b.WriteRune(next)
				t.advance()
				t.advance()
			} else {
				b.WriteString(decodeEscape(next, t))
			}
			continue
		case c == '\n' && frame.quoteSize == 1:
			return "", t.lexError(UNTERMINATED_FSTRING_LIT, startLine, startCol)
		default:
			b.WriteRune(c)
			t.advance()
		}
	}
}

func (t *tokenizer) readFStringEnd(frame *fstringFrame) Token {
	start := t.i
	startLine, startCol := t.line, t.col
	for n := int32(0); n < frame.quoteSize; n++ {
		t.advance()
	}
	t.fstrings = t.fstrings[:len(t.fstrings)-1]
	return t.makeToken(FSTRING_END, "", start, startLine, startCol)
}

// readNumber delimits a numeric literal: decimal, hex, octal or binary, with
// '_' digit separators, fractional part, exponent and complex 'j' suffix. It
// only marks the span; it does not validate numeric range.
func (t *tokenizer) readNumber() (Token, *ParsingError) {
	start := t.i
	startLine, startCol := t.line, t.col

	if t.current() == '0' && (t.peek(1) == 'x' || t.peek(1) == 'X') {
		t.advance()
		t.advance()
		for isHexDigit(t.current()) || t.current() == '_' {
			t.advance()
		}
	} else if t.current() == '0' && (t.peek(1) == 'o' || t.peek(1) == 'O') {
		t.advance()
		t.advance()
		for t.current() >= '0' && t.current() <= '7' || t.current() == '_' {
			t.advance()
		}
	} else if t.current() == '0' && (t.peek(1) == 'b' || t.peek(1) == 'B') {
		t.advance()
		t.advance()
		for t.current() == '0' || t.current() == '1' || t.current() == '_' {
			t.advance()
		}
	} else {
		for isDecDigit(t.current()) || t.current() == '_' {
			t.advance()
		}
		if t.current() == '.' {
			t.advance()
			for isDecDigit(t.current()) || t.current() == '_' {
				t.advance()
			}
		}
		if t.current() == 'e' || t.current() == 'E' {
			if isDecDigit(t.peek(1)) || (t.peek(1) == '+' || t.peek(1) == '-') && isDecDigit(t.peek(2)) {
				t.advance()
				if t.current() == '+' || t.current() == '-' {
					t.advance()
				}
				for isDecDigit(t.current()) || t.current() == '_' {
					t.advance()
				}
			}
		}
	}

	if t.current() == 'j' || t.current() == 'J' {
		t.advance()
	}

	return t.makeToken(NUMBER, string(t.s[start:t.i]), start, startLine, startCol), nil
}

func (t *tokenizer) readNameOrKeyword() (Token, *ParsingError) {
	start := t.i
	startLine, startCol := t.line, t.col

	for t.i < t.len && isIdentChar(t.s[t.i]) {
		t.advance()
	}

	name := string(t.s[start:t.i])
	if typ, ok := lookupKeyword(name); ok {
		return t.makeToken(typ, name, start, startLine, startCol), nil
	}
	return t.makeToken(NAME, name, start, startLine, startCol), nil
}

func (t *tokenizer) readOperator() (Token, *ParsingError) {
	start := t.i
	startLine, startCol := t.line, t.col

	emit := func(typ TokenType, size int32) (Token, *ParsingError) {
		for n := int32(0); n < size; n++ {
			t.advance()
		}
		return t.makeToken(typ, "", start, startLine, startCol), nil
	}

	c, c2, c3 := t.current(), t.peek(1), t.peek(2)

	//three-character operators
	switch {
	case c == '.' && c2 == '.' && c3 == '.':
		return emit(ELLIPSIS, 3)
	case c == '*' && c2 == '*' && c3 == '=':
		return emit(DOUBLE_STAR_EQUAL, 3)
	case c == '/' && c2 == '/' && c3 == '=':
		return emit(DOUBLE_SLASH_EQUAL, 3)
	case c == '<' && c2 == '<' && c3 == '=':
		return emit(LEFT_SHIFT_EQUAL, 3)
	case c == '>' && c2 == '>' && c3 == '=':
		return emit(RIGHT_SHIFT_EQUAL, 3)
	}

	//two-character operators
	if c2 != 0 {
		type pair struct {
			a, b rune
			typ  TokenType
		}
		pairs := [...]pair{
			{'+', '=', PLUS_EQUAL}, {'-', '=', MINUS_EQUAL}, {'-', '>', ARROW},
			{'*', '*', DOUBLE_STAR}, {'*', '=', STAR_EQUAL},
			{'/', '/', DOUBLE_SLASH}, {'/', '=', SLASH_EQUAL},
			{'%', '=', PERCENT_EQUAL}, {'@', '=', AT_EQUAL},
			{'&', '=', AMPERSAND_EQUAL}, {'|', '=', PIPE_EQUAL}, {'^', '=', CARET_EQUAL},
			{'<', '<', LEFT_SHIFT}, {'>', '>', RIGHT_SHIFT},
			{'<', '=', LESS_EQUAL}, {'>', '=', GREATER_EQUAL},
			{'=', '=', EQUAL_EQUAL}, {'!', '=', NOT_EQUAL},
			{':', '=', COLON_EQUAL},
		}
		for _, p := range pairs {
			if c == p.a && c2 == p.b {
				return emit(p.typ, 2)
			}
		}
	}

	switch c {
	case '+':
		return emit(PLUS, 1)
	case '-':
		return emit(MINUS, 1)
	case '*':
		return emit(STAR, 1)
	case '/':
		return emit(SLASH, 1)
	case '%':
		return emit(PERCENT, 1)
	case '@':
		return emit(AT_SIGN, 1)
	case '&':
		return emit(AMPERSAND, 1)
	case '|':
		return emit(PIPE, 1)
	case '^':
		return emit(CARET, 1)
	case '~':
		return emit(TILDE, 1)
	case '<':
		return emit(LESS, 1)
	case '>':
		return emit(GREATER, 1)
	case '=':
		return emit(EQUAL, 1)
	case '.':
		return emit(DOT, 1)
	case ',':
		return emit(COMMA, 1)
	case ':':
		return emit(COLON, 1)
	case ';':
		return emit(SEMICOLON, 1)
	case '!':
		return emit(EXCLAMATION_MARK, 1)
	case '(':
		t.parenDepth++
		return emit(OPENING_PARENTHESIS, 1)
	case '[':
		t.parenDepth++
		return emit(OPENING_BRACKET, 1)
	case '{':
		t.parenDepth++
		return emit(OPENING_BRACE, 1)
	case ')':
		t.parenDepth = max32(0, t.parenDepth-1)
		return emit(CLOSING_PARENTHESIS, 1)
	case ']':
		t.parenDepth = max32(0, t.parenDepth-1)
		return emit(CLOSING_BRACKET, 1)
	case '}':
		t.parenDepth = max32(0, t.parenDepth-1)
		return emit(CLOSING_BRACE, 1)
	default:
		t.advance()
		return t.makeToken(UNEXPECTED_CHAR, string(c), start, startLine, startCol), nil
	}
}

// decodeEscape decodes the escape sequence starting at the backslash under
// the cursor, advances past it and returns the decoded text. Unknown escapes
// keep the backslash, as Python does.
func decodeEscape(next rune, t *tokenizer) string {
	t.advance() //backslash
	switch next {
	case 'n':
		t.advance()
		return "\n"
	case 't':
		t.advance()
		return "\t"
	case 'r':
		t.advance()
		return "\r"
	case '\\':
		t.advance()
		return "\\"
	case '\'':
		t.advance()
		return "'"
	case '"':
		t.advance()
		return "\""
	case 'a':
		t.advance()
		return "\a"
	case 'b':
		t.advance()
		return "\b"
	case 'f':
		t.advance()
		return "\f"
	case 'v':
		t.advance()
		return "\v"
	case '0':
		t.advance()
		return "\x00"
	case '\n':
		t.advance() //escaped newline: spliced out
		return ""
	case 'x':
		t.advance()
		return decodeHexEscape(t, 2)
	case 'u':
		t.advance()
		return decodeHexEscape(t, 4)
	case 'U':
		t.advance()
		return decodeHexEscape(t, 8)
	default:
		t.advance()
		return "\\" + string(next)
	}
}

func decodeHexEscape(t *tokenizer, digits int32) string {
	var v rune
	var n int32
	for n = 0; n < digits && isHexDigit(t.current()); n++ {
		v = v*16 + hexValue(t.current())
		t.advance()
	}
	if n < digits {
		//malformed escape: keep what was consumed literally
		return "\\?"
	}
	return string(v)
}

func isStringQuote(c rune) bool {
	return c == '"' || c == '\''
}

func isDecDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c rune) bool {
	return isDecDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func hexValue(c rune) rune {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}

func isIdentStart(c rune) bool {
	return c == '_' || unicode.IsLetter(c)
}

func isIdentChar(c rune) bool {
	return c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)
}

func max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}
