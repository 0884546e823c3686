package parse

// isMatchStatement resolves the 'match' soft keyword: the line is a match
// statement only if everything up to the colon parses as a subject
// expression. Otherwise 'match' is an ordinary name.
func (p *parser) isMatchStatement() bool {
	next := p.peek(1)
	if !canStartExpression(next) && next.Type != STAR {
		return false
	}
	return p.speculate(func() {
		p.advance() //match
		if p.parseStarExpressions() == nil {
			panic(p.syntaxError(EXPECTED_EXPR))
		}
		p.expect(COLON)
		p.expect(NEWLINE)
	})
}

func (p *parser) parseMatch() Node {
	startIdx := p.i
	p.advance() //match
	subject := p.requireExpr(p.parseStarExpressions())
	p.expect(COLON)
	p.expect(NEWLINE)

	if !p.at(INDENT) {
		panic(p.syntaxError(EXPECTED_INDENTED_BLOCK))
	}
	p.advance()

	var cases []*MatchCase
	for !p.at(DEDENT) && !p.at(ENDMARKER) {
		if _, ok := p.accept(NEWLINE); ok {
			continue
		}
		if !p.atName("case") {
			panic(p.syntaxError(EXPECTED_CASE_BLOCK))
		}
		cases = append(cases, p.parseCaseBlock())
	}
	p.expect(DEDENT)

	if len(cases) == 0 {
		panic(p.syntaxError(EXPECTED_CASE_BLOCK))
	}

	return &Match{
		NodeBase: p.base(startIdx),
		Subject:  subject,
		Cases:    cases,
	}
}

func (p *parser) parseCaseBlock() *MatchCase {
	startIdx := p.i
	p.advance() //case
	pattern := p.parseCasePatterns()

	var guard Node
	if _, ok := p.accept(IF_KEYWORD); ok {
		guard = p.requireExpr(p.parseNamedExpression())
	}

	body := p.parseBlock()
	return &MatchCase{
		NodeBase: p.base(startIdx),
		Pattern:  pattern,
		Guard:    guard,
		Body:     body,
	}
}

// parseCasePatterns parses the pattern list of a case clause. A top level
// comma makes an open sequence pattern: case a, b: is a MatchSequence.
func (p *parser) parseCasePatterns() Node {
	startIdx := p.i
	firstTok := p.cur()
	first := p.parseMaybeStarPattern()

	if !p.at(COMMA) {
		if _, ok := first.(*MatchStar); ok {
			panic(p.syntaxErrorAt(firstTok, EXPECTED_PATTERN))
		}
		return first
	}

	patterns := []Node{first}
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if p.at(COLON) {
			break //trailing comma
		}
		patterns = append(patterns, p.parseMaybeStarPattern())
	}

	return &MatchSequence{
		NodeBase: p.base(startIdx),
		Patterns: patterns,
	}
}

func (p *parser) parseMaybeStarPattern() Node {
	if p.at(STAR) {
		startIdx := p.i
		p.advance()
		nameTok := p.expect(NAME)
		name := nameTok.Raw
		if name == "_" {
			name = ""
		}
		return &MatchStar{
			NodeBase: p.base(startIdx),
			Name:     name,
		}
	}
	return p.parsePattern()
}

func (p *parser) parsePattern() Node {
	startIdx := p.i
	pattern := p.parseOrPattern()

	if _, ok := p.accept(AS_KEYWORD); !ok {
		return pattern
	}
	nameTok := p.expect(NAME)
	if nameTok.Raw == "_" {
		panic(p.syntaxErrorAt(nameTok, "cannot use '_' as a capture target"))
	}
	return &MatchAs{
		NodeBase: p.base(startIdx),
		Pattern:  pattern,
		Name:     nameTok.Raw,
	}
}

func (p *parser) parseOrPattern() Node {
	startIdx := p.i
	first := p.parseClosedPattern()

	if !p.at(PIPE) {
		return first
	}

	patterns := []Node{first}
	for {
		if _, ok := p.accept(PIPE); !ok {
			break
		}
		patterns = append(patterns, p.parseClosedPattern())
	}

	return &MatchOr{
		NodeBase: p.base(startIdx),
		Patterns: patterns,
	}
}

func (p *parser) parseClosedPattern() Node {
	startIdx := p.i

	switch p.cur().Type {
	case MINUS, NUMBER, STRING:
		value := p.parseLiteralPatternValue()
		return &MatchValue{
			NodeBase: p.base(startIdx),
			Value:    value,
		}

	case NONE_KEYWORD:
		p.advance()
		return &MatchSingleton{NodeBase: p.base(startIdx), Value: ConstNone}
	case TRUE_KEYWORD:
		p.advance()
		return &MatchSingleton{NodeBase: p.base(startIdx), Value: ConstTrue}
	case FALSE_KEYWORD:
		p.advance()
		return &MatchSingleton{NodeBase: p.base(startIdx), Value: ConstFalse}

	case NAME:
		return p.parseNamePattern()

	case OPENING_PARENTHESIS:
		return p.parseGroupOrSequencePattern()

	case OPENING_BRACKET:
		return p.parseBracketSequencePattern()

	case OPENING_BRACE:
		return p.parseMappingPattern()
	}

	panic(p.syntaxError(EXPECTED_PATTERN))
}

// parseLiteralPatternValue parses a literal pattern's value expression:
// an optionally negated number, a complex literal like 3+4j, or a run of
// concatenated plain string literals. F-strings cannot appear in patterns.
func (p *parser) parseLiteralPatternValue() Node {
	startIdx := p.i

	if p.at(STRING) {
		if p.peekAfterStrings() == FSTRING_START {
			panic(p.syntaxError(EXPECTED_PATTERN))
		}
		return p.parseStrings()
	}
	if p.at(FSTRING_START) {
		panic(p.syntaxError(EXPECTED_PATTERN))
	}

	var left Node
	if p.at(MINUS) {
		p.advance()
		numTok := p.expect(NUMBER)
		operand := p.numberConstant(p.i-1, numTok)
		left = &UnaryOp{
			NodeBase: p.base(startIdx),
			Op:       USub,
			Operand:  operand,
		}
	} else {
		numTok := p.expect(NUMBER)
		left = p.numberConstant(startIdx, numTok)
	}

	//a real part may be followed by +/- and an imaginary literal
	var op Operator
	switch p.cur().Type {
	case PLUS:
		op = Add
	case MINUS:
		op = Sub
	default:
		return left
	}
	p.advance()

	imagIdx := p.i
	imagTok := p.expect(NUMBER)
	imag := p.numberConstant(imagIdx, imagTok)
	if imag.Kind != ConstComplex {
		panic(p.syntaxErrorAt(imagTok, EXPECTED_PATTERN))
	}

	return &BinOp{
		NodeBase: p.base(startIdx),
		Left:     left,
		Op:       op,
		Right:    imag,
	}
}

// peekAfterStrings returns the token type following the current run of
// STRING tokens.
func (p *parser) peekAfterStrings() TokenType {
	offset := int32(0)
	for p.peek(offset).Type == STRING {
		offset++
	}
	return p.peek(offset).Type
}

// parseNamePattern handles the NAME-led pattern forms: wildcard, capture,
// dotted value pattern and class pattern.
func (p *parser) parseNamePattern() Node {
	startIdx := p.i
	nameTok := p.expect(NAME)

	if nameTok.Raw == "_" && !p.at(DOT) && !p.at(OPENING_PARENTHESIS) {
		return &MatchAs{NodeBase: p.base(startIdx)}
	}

	var cls Node = &Name{
		NodeBase: p.base(startIdx),
		Id:       nameTok.Raw,
		Ctx:      Load,
	}

	dotted := false
	for p.at(DOT) {
		dotted = true
		p.advance()
		attr := p.expect(NAME)
		cls = &Attribute{
			NodeBase: p.base(startIdx),
			Value:    cls,
			Attr:     attr.Raw,
			Ctx:      Load,
		}
	}

	if p.at(OPENING_PARENTHESIS) {
		return p.parseClassPattern(startIdx, cls)
	}

	if dotted {
		return &MatchValue{
			NodeBase: p.base(startIdx),
			Value:    cls,
		}
	}

	return &MatchAs{
		NodeBase: p.base(startIdx),
		Name:     nameTok.Raw,
	}
}

func (p *parser) parseClassPattern(startIdx int32, cls Node) Node {
	p.expect(OPENING_PARENTHESIS)

	var patterns []Node
	var kwdAttrs []string
	var kwdPatterns []Node

	for !p.at(CLOSING_PARENTHESIS) {
		if p.at(NAME) && p.peek(1).Type == EQUAL {
			attrTok := p.advance()
			p.advance() //=
			kwdAttrs = append(kwdAttrs, attrTok.Raw)
			kwdPatterns = append(kwdPatterns, p.parsePattern())
		} else {
			posTok := p.cur()
			if len(kwdAttrs) > 0 {
				panic(p.syntaxErrorAt(posTok, POSITIONAL_ARG_AFTER_KEYWORD_ARG))
			}
			patterns = append(patterns, p.parsePattern())
		}
		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}
	p.expect(CLOSING_PARENTHESIS)

	return &MatchClass{
		NodeBase:    p.base(startIdx),
		Cls:         cls,
		Patterns:    patterns,
		KwdAttrs:    kwdAttrs,
		KwdPatterns: kwdPatterns,
	}
}

// parseGroupOrSequencePattern handles '(pattern)' grouping and '(a, b)'
// sequence patterns.
func (p *parser) parseGroupOrSequencePattern() Node {
	startIdx := p.i
	p.expect(OPENING_PARENTHESIS)

	if p.at(CLOSING_PARENTHESIS) {
		p.advance()
		return &MatchSequence{NodeBase: p.base(startIdx)}
	}

	firstTok := p.cur()
	first := p.parseMaybeStarPattern()

	if p.at(COMMA) {
		patterns := []Node{first}
		for {
			if _, ok := p.accept(COMMA); !ok {
				break
			}
			if p.at(CLOSING_PARENTHESIS) {
				break
			}
			patterns = append(patterns, p.parseMaybeStarPattern())
		}
		p.expect(CLOSING_PARENTHESIS)
		return &MatchSequence{
			NodeBase: p.base(startIdx),
			Patterns: patterns,
		}
	}

	p.expect(CLOSING_PARENTHESIS)
	if _, ok := first.(*MatchStar); ok {
		panic(p.syntaxErrorAt(firstTok, EXPECTED_PATTERN))
	}
	return first
}

func (p *parser) parseBracketSequencePattern() Node {
	startIdx := p.i
	p.expect(OPENING_BRACKET)

	var patterns []Node
	for !p.at(CLOSING_BRACKET) {
		patterns = append(patterns, p.parseMaybeStarPattern())
		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}
	p.expect(CLOSING_BRACKET)

	return &MatchSequence{
		NodeBase: p.base(startIdx),
		Patterns: patterns,
	}
}

// parseMappingPattern parses '{key: pattern, ..., **rest}'. Keys are
// literals or dotted value expressions.
func (p *parser) parseMappingPattern() Node {
	startIdx := p.i
	p.expect(OPENING_BRACE)

	var keys []Node
	var patterns []Node
	rest := ""

	for !p.at(CLOSING_BRACE) {
		if p.at(DOUBLE_STAR) {
			p.advance()
			rest = p.expect(NAME).Raw
			if _, ok := p.accept(COMMA); !ok {
				break
			}
			continue
		}

		keys = append(keys, p.parseMappingPatternKey())
		p.expect(COLON)
		patterns = append(patterns, p.parsePattern())

		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}
	p.expect(CLOSING_BRACE)

	return &MatchMapping{
		NodeBase: p.base(startIdx),
		Keys:     keys,
		Patterns: patterns,
		Rest:     rest,
	}
}

func (p *parser) parseMappingPatternKey() Node {
	switch p.cur().Type {
	case MINUS, NUMBER, STRING:
		return p.parseLiteralPatternValue()
	case NONE_KEYWORD:
		startIdx := p.i
		p.advance()
		return &Constant{NodeBase: p.base(startIdx), Kind: ConstNone}
	case TRUE_KEYWORD:
		startIdx := p.i
		p.advance()
		return &Constant{NodeBase: p.base(startIdx), Kind: ConstTrue}
	case FALSE_KEYWORD:
		startIdx := p.i
		p.advance()
		return &Constant{NodeBase: p.base(startIdx), Kind: ConstFalse}
	case NAME:
		startIdx := p.i
		nameTok := p.advance()
		var value Node = &Name{
			NodeBase: p.base(startIdx),
			Id:       nameTok.Raw,
			Ctx:      Load,
		}
		if !p.at(DOT) {
			panic(p.syntaxErrorAt(nameTok, EXPECTED_PATTERN))
		}
		for p.at(DOT) {
			p.advance()
			attr := p.expect(NAME)
			value = &Attribute{
				NodeBase: p.base(startIdx),
				Value:    value,
				Attr:     attr.Raw,
				Ctx:      Load,
			}
		}
		return value
	}
	panic(p.syntaxError(EXPECTED_PATTERN))
}
