package parse

import (
	"strconv"
	"strings"
)

// canStartExpression reports whether tok can begin an expression. Starred
// elements and yield expressions are handled explicitly by their callers.
func canStartExpression(tok Token) bool {
	switch tok.Type {
	case NAME, NUMBER, STRING, FSTRING_START, ELLIPSIS,
		TRUE_KEYWORD, FALSE_KEYWORD, NONE_KEYWORD,
		NOT_KEYWORD, LAMBDA_KEYWORD, AWAIT_KEYWORD,
		PLUS, MINUS, TILDE,
		OPENING_PARENTHESIS, OPENING_BRACKET, OPENING_BRACE:
		return true
	}
	return false
}

func (p *parser) requireExpr(n Node) Node {
	if n == nil {
		panic(p.syntaxError(EXPECTED_EXPR))
	}
	return n
}

// parseStarExpressions parses a comma separated list of (optionally starred)
// expressions, as found on the right of an assignment or in an expression
// statement. A single element without a trailing comma stays a plain
// expression; anything else becomes a Tuple.
func (p *parser) parseStarExpressions() Node {
	startIdx := p.i
	first := p.parseStarExpression()
	if first == nil {
		return nil
	}

	if !p.at(COMMA) {
		return first
	}

	elts := []Node{first}
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if !canStartExpression(p.cur()) && !p.at(STAR) {
			break //trailing comma
		}
		elts = append(elts, p.requireExpr(p.parseStarExpression()))
	}

	return &Tuple{
		NodeBase: p.base(startIdx),
		Elts:     elts,
		Ctx:      Load,
	}
}

func (p *parser) parseStarExpression() Node {
	if p.at(STAR) {
		startIdx := p.i
		p.advance()
		value := p.requireExpr(p.parseBitwiseOr())
		return &Starred{
			NodeBase: p.base(startIdx),
			Value:    value,
			Ctx:      Load,
		}
	}
	return p.parseExpression()
}

// parseStarNamedExpression is the element grammar of list, set and call
// displays: a starred bitwise_or or a (possibly walrus) expression.
func (p *parser) parseStarNamedExpression() Node {
	if p.at(STAR) {
		startIdx := p.i
		p.advance()
		value := p.requireExpr(p.parseBitwiseOr())
		return &Starred{
			NodeBase: p.base(startIdx),
			Value:    value,
			Ctx:      Load,
		}
	}
	return p.parseNamedExpression()
}

func (p *parser) parseNamedExpression() Node {
	if p.at(NAME) && p.peek(1).Type == COLON_EQUAL {
		startIdx := p.i
		nameTok := p.advance()
		target := &Name{
			NodeBase: p.base(startIdx),
			Id:       nameTok.Raw,
			Ctx:      Store,
		}
		p.advance() //:=
		value := p.requireExpr(p.parseExpression())
		return &NamedExpr{
			NodeBase: p.base(startIdx),
			Target:   target,
			Value:    value,
		}
	}
	expr := p.parseExpression()
	if expr != nil && p.at(COLON_EQUAL) {
		panic(p.syntaxError(INVALID_NAMED_EXPR_TARGET))
	}
	return expr
}

// parseExpression parses a conditional expression or a lambda.
func (p *parser) parseExpression() Node {
	return p.memoize(ruleExpression, p.parseExpressionNoMemo)
}

func (p *parser) parseExpressionNoMemo() Node {
	if p.at(LAMBDA_KEYWORD) {
		return p.parseLambda()
	}

	startIdx := p.i
	body := p.parseDisjunction()
	if body == nil {
		return nil
	}

	if _, ok := p.accept(IF_KEYWORD); !ok {
		return body
	}
	test := p.requireExpr(p.parseDisjunction())
	p.expect(ELSE_KEYWORD)
	orElse := p.requireExpr(p.parseExpression())

	return &IfExp{
		NodeBase: p.base(startIdx),
		Test:     test,
		Body:     body,
		OrElse:   orElse,
	}
}

func (p *parser) parseLambda() Node {
	startIdx := p.i
	p.expect(LAMBDA_KEYWORD)
	args := p.parseParameterList(false, COLON)
	p.expect(COLON)
	body := p.requireExpr(p.parseExpression())

	return &Lambda{
		NodeBase: p.base(startIdx),
		Args:     args,
		Body:     body,
	}
}

func (p *parser) parseDisjunction() Node {
	return p.memoize(ruleDisjunction, p.parseDisjunctionNoMemo)
}

func (p *parser) parseDisjunctionNoMemo() Node {
	startIdx := p.i
	first := p.parseConjunction()
	if first == nil || !p.at(OR_KEYWORD) {
		return first
	}

	values := []Node{first}
	for {
		if _, ok := p.accept(OR_KEYWORD); !ok {
			break
		}
		values = append(values, p.requireExpr(p.parseConjunction()))
	}

	return &BoolOp{
		NodeBase: p.base(startIdx),
		Op:       BoolOr,
		Values:   values,
	}
}

func (p *parser) parseConjunction() Node {
	startIdx := p.i
	first := p.parseInversion()
	if first == nil || !p.at(AND_KEYWORD) {
		return first
	}

	values := []Node{first}
	for {
		if _, ok := p.accept(AND_KEYWORD); !ok {
			break
		}
		values = append(values, p.requireExpr(p.parseInversion()))
	}

	return &BoolOp{
		NodeBase: p.base(startIdx),
		Op:       BoolAnd,
		Values:   values,
	}
}

func (p *parser) parseInversion() Node {
	if p.at(NOT_KEYWORD) {
		startIdx := p.i
		p.advance()
		operand := p.requireExpr(p.parseInversion())
		return &UnaryOp{
			NodeBase: p.base(startIdx),
			Op:       Not,
			Operand:  operand,
		}
	}
	return p.parseComparison()
}

// parseComparison folds an arbitrarily long chain like a < b <= c into a
// single Compare node with parallel Ops and Comparators slices.
func (p *parser) parseComparison() Node {
	startIdx := p.i
	left := p.parseBitwiseOr()
	if left == nil {
		return nil
	}

	var ops []CompareOperator
	var comparators []Node

	for {
		op, ok := p.acceptCompareOp()
		if !ok {
			break
		}
		ops = append(ops, op)
		comparators = append(comparators, p.requireExpr(p.parseBitwiseOr()))
	}

	if len(ops) == 0 {
		return left
	}
	return &Compare{
		NodeBase:    p.base(startIdx),
		Left:        left,
		Ops:         ops,
		Comparators: comparators,
	}
}

func (p *parser) acceptCompareOp() (CompareOperator, bool) {
	switch p.cur().Type {
	case EQUAL_EQUAL:
		p.advance()
		return Eq, true
	case NOT_EQUAL:
		p.advance()
		return NotEq, true
	case LESS:
		p.advance()
		return Lt, true
	case LESS_EQUAL:
		p.advance()
		return LtE, true
	case GREATER:
		p.advance()
		return Gt, true
	case GREATER_EQUAL:
		p.advance()
		return GtE, true
	case IN_KEYWORD:
		p.advance()
		return In, true
	case NOT_KEYWORD:
		if p.peek(1).Type == IN_KEYWORD {
			p.advance()
			p.advance()
			return NotIn, true
		}
		return 0, false
	case IS_KEYWORD:
		p.advance()
		if _, ok := p.accept(NOT_KEYWORD); ok {
			return IsNot, true
		}
		return Is, true
	}
	return 0, false
}

func (p *parser) parseBitwiseOr() Node {
	return p.memoize(ruleBitwiseOr, p.parseBitwiseOrNoMemo)
}

func (p *parser) parseBitwiseOrNoMemo() Node {
	return p.parseLeftAssocBinOp(p.parseBitwiseXor, map[TokenType]Operator{PIPE: BitOr})
}

func (p *parser) parseBitwiseXor() Node {
	return p.parseLeftAssocBinOp(p.parseBitwiseAnd, map[TokenType]Operator{CARET: BitXor})
}

func (p *parser) parseBitwiseAnd() Node {
	return p.parseLeftAssocBinOp(p.parseShift, map[TokenType]Operator{AMPERSAND: BitAnd})
}

func (p *parser) parseShift() Node {
	return p.parseLeftAssocBinOp(p.parseSum, map[TokenType]Operator{
		LEFT_SHIFT:  LShift,
		RIGHT_SHIFT: RShift,
	})
}

func (p *parser) parseSum() Node {
	return p.memoize(ruleSum, p.parseSumNoMemo)
}

func (p *parser) parseSumNoMemo() Node {
	return p.parseLeftAssocBinOp(p.parseTerm, map[TokenType]Operator{
		PLUS:  Add,
		MINUS: Sub,
	})
}

func (p *parser) parseTerm() Node {
	return p.memoize(ruleTerm, p.parseTermNoMemo)
}

func (p *parser) parseTermNoMemo() Node {
	return p.parseLeftAssocBinOp(p.parseFactor, map[TokenType]Operator{
		STAR:         Mult,
		SLASH:        Div,
		DOUBLE_SLASH: FloorDiv,
		PERCENT:      Mod,
		AT_SIGN:      MatMult,
	})
}

func (p *parser) parseLeftAssocBinOp(operand func() Node, ops map[TokenType]Operator) Node {
	startIdx := p.i
	left := operand()
	if left == nil {
		return nil
	}

	for {
		op, ok := ops[p.cur().Type]
		if !ok {
			return left
		}
		p.advance()
		right := p.requireExpr(operand())
		left = &BinOp{
			NodeBase: p.base(startIdx),
			Left:     left,
			Op:       op,
			Right:    right,
		}
	}
}

func (p *parser) parseFactor() Node {
	var op UnaryOperator
	switch p.cur().Type {
	case PLUS:
		op = UAdd
	case MINUS:
		op = USub
	case TILDE:
		op = Invert
	default:
		return p.parsePower()
	}

	startIdx := p.i
	p.advance()
	operand := p.requireExpr(p.parseFactor())
	return &UnaryOp{
		NodeBase: p.base(startIdx),
		Op:       op,
		Operand:  operand,
	}
}

// parsePower handles the right associative ** operator: its right operand is
// a factor, so 2 ** -3 and 2 ** 3 ** 2 == 2 ** (3 ** 2) both work out.
func (p *parser) parsePower() Node {
	startIdx := p.i
	base := p.parseAwaitPrimary()
	if base == nil {
		return nil
	}

	if _, ok := p.accept(DOUBLE_STAR); !ok {
		return base
	}
	right := p.requireExpr(p.parseFactor())
	return &BinOp{
		NodeBase: p.base(startIdx),
		Left:     base,
		Op:       Pow,
		Right:    right,
	}
}

func (p *parser) parseAwaitPrimary() Node {
	if p.at(AWAIT_KEYWORD) {
		startIdx := p.i
		p.advance()
		value := p.requireExpr(p.parsePrimary())
		return &Await{
			NodeBase: p.base(startIdx),
			Value:    value,
		}
	}
	return p.parsePrimary()
}

// parsePrimary parses an atom followed by any number of attribute accesses,
// calls and subscripts.
func (p *parser) parsePrimary() Node {
	return p.memoize(rulePrimary, p.parsePrimaryNoMemo)
}

func (p *parser) parsePrimaryNoMemo() Node {
	startIdx := p.i
	value := p.parseAtom()
	if value == nil {
		return nil
	}

	for {
		switch p.cur().Type {
		case DOT:
			p.advance()
			attr := p.expect(NAME)
			value = &Attribute{
				NodeBase: p.base(startIdx),
				Value:    value,
				Attr:     attr.Raw,
				Ctx:      Load,
			}
		case OPENING_PARENTHESIS:
			value = p.parseCall(startIdx, value)
		case OPENING_BRACKET:
			p.advance()
			slice := p.parseSlices()
			p.expect(CLOSING_BRACKET)
			value = &Subscript{
				NodeBase: p.base(startIdx),
				Value:    value,
				Slice:    slice,
				Ctx:      Load,
			}
		default:
			return value
		}
	}
}

// ---------------------------------------------------------------------------
// calls
// ---------------------------------------------------------------------------

func (p *parser) parseCall(startIdx int32, fn Node) Node {
	p.expect(OPENING_PARENTHESIS)

	var args []Node
	var keywords []*Keyword
	sawDoubleStar := false

	for !p.at(CLOSING_PARENTHESIS) {
		switch {
		case p.at(DOUBLE_STAR):
			kwStartIdx := p.i
			p.advance()
			value := p.requireExpr(p.parseExpression())
			keywords = append(keywords, &Keyword{
				NodeBase: p.base(kwStartIdx),
				Arg:      "",
				Value:    value,
			})
			sawDoubleStar = true

		case p.at(STAR):
			if sawDoubleStar {
				panic(p.syntaxError(KEYWORD_ARG_AFTER_DOUBLE_STAR))
			}
			starStartIdx := p.i
			p.advance()
			value := p.requireExpr(p.parseExpression())
			args = append(args, &Starred{
				NodeBase: p.base(starStartIdx),
				Value:    value,
				Ctx:      Load,
			})

		case p.at(NAME) && p.peek(1).Type == EQUAL:
			kwStartIdx := p.i
			nameTok := p.advance()
			p.advance() //=
			value := p.requireExpr(p.parseExpression())
			keywords = append(keywords, &Keyword{
				NodeBase: p.base(kwStartIdx),
				Arg:      nameTok.Raw,
				Value:    value,
			})

		default:
			argTok := p.cur()
			arg := p.requireExpr(p.parseNamedExpression())

			if p.atComprehensionFor() {
				//a generator expression must be the sole argument
				if len(args) > 0 || len(keywords) > 0 {
					panic(p.syntaxErrorAt(argTok, "generator expression must be parenthesized"))
				}
				gens := p.parseComprehensionClauses()
				genStartBase := arg.Base()
				genBase := p.base(startIdx)
				genBase.Span.Start = genStartBase.Span.Start
				genBase.Line = genStartBase.Line
				genBase.Column = genStartBase.Column
				args = append(args, &GeneratorExp{
					NodeBase:   genBase,
					Elt:        arg,
					Generators: gens,
				})
				p.expect(CLOSING_PARENTHESIS)
				return &Call{
					NodeBase: p.base(startIdx),
					Func:     fn,
					Args:     args,
					Keywords: keywords,
				}
			}

			if len(keywords) > 0 {
				if sawDoubleStar {
					panic(p.syntaxErrorAt(argTok, KEYWORD_ARG_AFTER_DOUBLE_STAR))
				}
				panic(p.syntaxErrorAt(argTok, POSITIONAL_ARG_AFTER_KEYWORD_ARG))
			}
			args = append(args, arg)
		}

		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}

	p.expect(CLOSING_PARENTHESIS)
	return &Call{
		NodeBase: p.base(startIdx),
		Func:     fn,
		Args:     args,
		Keywords: keywords,
	}
}

// ---------------------------------------------------------------------------
// subscripts & slices
// ---------------------------------------------------------------------------

// parseSlices parses the interior of a subscript. x[1:2] yields a Slice,
// x[1, 2] a Tuple; a comma after a slice also tuples: x[1:2, 3].
func (p *parser) parseSlices() Node {
	startIdx := p.i
	first := p.parseSlice()

	if !p.at(COMMA) {
		return first
	}

	elts := []Node{first}
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if p.at(CLOSING_BRACKET) {
			break //trailing comma
		}
		elts = append(elts, p.parseSlice())
	}

	return &Tuple{
		NodeBase: p.base(startIdx),
		Elts:     elts,
		Ctx:      Load,
	}
}

func (p *parser) parseSlice() Node {
	startIdx := p.i

	if p.at(STAR) {
		p.advance()
		value := p.requireExpr(p.parseExpression())
		return &Starred{
			NodeBase: p.base(startIdx),
			Value:    value,
			Ctx:      Load,
		}
	}

	var lower Node
	if !p.at(COLON) {
		lower = p.requireExpr(p.parseNamedExpression())
		if !p.at(COLON) {
			return lower //plain index
		}
	}

	p.expect(COLON)
	var upper, step Node
	if canStartExpression(p.cur()) {
		upper = p.requireExpr(p.parseExpression())
	}
	if _, ok := p.accept(COLON); ok {
		if canStartExpression(p.cur()) {
			step = p.requireExpr(p.parseExpression())
		}
	}

	return &Slice{
		NodeBase: p.base(startIdx),
		Lower:    lower,
		Upper:    upper,
		Step:     step,
	}
}

// ---------------------------------------------------------------------------
// atoms
// ---------------------------------------------------------------------------

func (p *parser) parseAtom() Node {
	return p.memoize(ruleAtom, p.parseAtomNoMemo)
}

func (p *parser) parseAtomNoMemo() Node {
	startIdx := p.i

	switch p.cur().Type {
	case NAME:
		tok := p.advance()
		return &Name{
			NodeBase: p.base(startIdx),
			Id:       tok.Raw,
			Ctx:      Load,
		}
	case TRUE_KEYWORD:
		p.advance()
		return &Constant{NodeBase: p.base(startIdx), Kind: ConstTrue}
	case FALSE_KEYWORD:
		p.advance()
		return &Constant{NodeBase: p.base(startIdx), Kind: ConstFalse}
	case NONE_KEYWORD:
		p.advance()
		return &Constant{NodeBase: p.base(startIdx), Kind: ConstNone}
	case ELLIPSIS:
		p.advance()
		return &Constant{NodeBase: p.base(startIdx), Kind: ConstEllipsis}
	case NUMBER:
		tok := p.advance()
		return p.numberConstant(startIdx, tok)
	case STRING, FSTRING_START:
		return p.parseStrings()
	case OPENING_PARENTHESIS:
		return p.parseParenthesizedAtom()
	case OPENING_BRACKET:
		return p.parseListDisplay()
	case OPENING_BRACE:
		return p.parseBraceDisplay()
	}
	return nil
}

func (p *parser) parseParenthesizedAtom() Node {
	startIdx := p.i
	p.expect(OPENING_PARENTHESIS)

	if p.at(CLOSING_PARENTHESIS) {
		p.advance()
		return &Tuple{
			NodeBase: p.base(startIdx),
			Ctx:      Load,
		}
	}

	if p.at(YIELD_KEYWORD) {
		y := p.parseYieldExpression()
		p.expect(CLOSING_PARENTHESIS)
		return y
	}

	firstTok := p.cur()
	first := p.requireExpr(p.parseStarNamedExpression())

	if p.atComprehensionFor() {
		if _, ok := first.(*Starred); ok {
			panic(p.syntaxErrorAt(firstTok, MULTIPLE_STARRED_IN_COMPARISON))
		}
		gens := p.parseComprehensionClauses()
		p.expect(CLOSING_PARENTHESIS)
		return &GeneratorExp{
			NodeBase:   p.base(startIdx),
			Elt:        first,
			Generators: gens,
		}
	}

	if p.at(COMMA) {
		elts := []Node{first}
		for {
			if _, ok := p.accept(COMMA); !ok {
				break
			}
			if p.at(CLOSING_PARENTHESIS) {
				break
			}
			elts = append(elts, p.requireExpr(p.parseStarNamedExpression()))
		}
		p.expect(CLOSING_PARENTHESIS)
		return &Tuple{
			NodeBase: p.base(startIdx),
			Elts:     elts,
			Ctx:      Load,
		}
	}

	p.expect(CLOSING_PARENTHESIS)
	if _, ok := first.(*Starred); ok {
		panic(p.syntaxErrorAt(firstTok, MULTIPLE_STARRED_IN_COMPARISON))
	}
	//a parenthesized expression keeps the location of the inner node
	return first
}

func (p *parser) parseListDisplay() Node {
	startIdx := p.i
	p.expect(OPENING_BRACKET)

	if p.at(CLOSING_BRACKET) {
		p.advance()
		return &List{
			NodeBase: p.base(startIdx),
			Ctx:      Load,
		}
	}

	firstTok := p.cur()
	first := p.requireExpr(p.parseStarNamedExpression())

	if p.atComprehensionFor() {
		if _, ok := first.(*Starred); ok {
			panic(p.syntaxErrorAt(firstTok, MULTIPLE_STARRED_IN_COMPARISON))
		}
		gens := p.parseComprehensionClauses()
		p.expect(CLOSING_BRACKET)
		return &ListComp{
			NodeBase:   p.base(startIdx),
			Elt:        first,
			Generators: gens,
		}
	}

	elts := []Node{first}
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if p.at(CLOSING_BRACKET) {
			break
		}
		elts = append(elts, p.requireExpr(p.parseStarNamedExpression()))
	}
	p.expect(CLOSING_BRACKET)
	return &List{
		NodeBase: p.base(startIdx),
		Elts:     elts,
		Ctx:      Load,
	}
}

// parseBraceDisplay disambiguates dict, set and their comprehension forms.
func (p *parser) parseBraceDisplay() Node {
	startIdx := p.i
	p.expect(OPENING_BRACE)

	if p.at(CLOSING_BRACE) {
		p.advance()
		return &Dict{NodeBase: p.base(startIdx)}
	}

	if p.at(DOUBLE_STAR) {
		p.advance()
		value := p.requireExpr(p.parseBitwiseOr())
		return p.parseDictTail(startIdx, []Node{nil}, []Node{value})
	}

	firstTok := p.cur()
	first := p.requireExpr(p.parseStarNamedExpression())

	if _, isStarred := first.(*Starred); !isStarred && p.at(COLON) {
		p.advance()
		value := p.requireExpr(p.parseExpression())

		if p.atComprehensionFor() {
			gens := p.parseComprehensionClauses()
			p.expect(CLOSING_BRACE)
			return &DictComp{
				NodeBase:   p.base(startIdx),
				Key:        first,
				Value:      value,
				Generators: gens,
			}
		}
		return p.parseDictTail(startIdx, []Node{first}, []Node{value})
	}

	if p.atComprehensionFor() {
		if _, ok := first.(*Starred); ok {
			panic(p.syntaxErrorAt(firstTok, MULTIPLE_STARRED_IN_COMPARISON))
		}
		gens := p.parseComprehensionClauses()
		p.expect(CLOSING_BRACE)
		return &SetComp{
			NodeBase:   p.base(startIdx),
			Elt:        first,
			Generators: gens,
		}
	}

	elts := []Node{first}
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if p.at(CLOSING_BRACE) {
			break
		}
		elts = append(elts, p.requireExpr(p.parseStarNamedExpression()))
	}
	p.expect(CLOSING_BRACE)
	return &Set{
		NodeBase: p.base(startIdx),
		Elts:     elts,
	}
}

func (p *parser) parseDictTail(startIdx int32, keys, values []Node) Node {
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if p.at(CLOSING_BRACE) {
			break
		}
		if p.at(DOUBLE_STAR) {
			p.advance()
			keys = append(keys, nil)
			values = append(values, p.requireExpr(p.parseBitwiseOr()))
			continue
		}
		key := p.requireExpr(p.parseExpression())
		p.expect(COLON)
		keys = append(keys, key)
		values = append(values, p.requireExpr(p.parseExpression()))
	}
	p.expect(CLOSING_BRACE)
	return &Dict{
		NodeBase: p.base(startIdx),
		Keys:     keys,
		Values:   values,
	}
}

// ---------------------------------------------------------------------------
// comprehensions
// ---------------------------------------------------------------------------

func (p *parser) atComprehensionFor() bool {
	if p.at(FOR_KEYWORD) {
		return true
	}
	return p.at(ASYNC_KEYWORD) && p.peek(1).Type == FOR_KEYWORD
}

// parseComprehensionClauses parses one or more 'for ... in ... [if ...]*'
// clauses. The iterable and conditions are disjunctions so a following 'if'
// or 'else' keyword is never captured as a conditional expression.
func (p *parser) parseComprehensionClauses() []*Comprehension {
	var generators []*Comprehension

	for p.atComprehensionFor() {
		startIdx := p.i
		isAsync := false
		if _, ok := p.accept(ASYNC_KEYWORD); ok {
			isAsync = true
		}
		p.expect(FOR_KEYWORD)

		target := p.parseStarTargets()
		p.expect(IN_KEYWORD)
		iter := p.requireExpr(p.parseDisjunction())

		var ifs []Node
		for {
			if _, ok := p.accept(IF_KEYWORD); !ok {
				break
			}
			ifs = append(ifs, p.requireExpr(p.parseDisjunction()))
		}

		generators = append(generators, &Comprehension{
			NodeBase: p.base(startIdx),
			Target:   target,
			Iter:     iter,
			Ifs:      ifs,
			IsAsync:  isAsync,
		})
	}
	return generators
}

// ---------------------------------------------------------------------------
// yield
// ---------------------------------------------------------------------------

func (p *parser) parseYieldExpression() Node {
	startIdx := p.i
	p.expect(YIELD_KEYWORD)

	if _, ok := p.accept(FROM_KEYWORD); ok {
		value := p.requireExpr(p.parseExpression())
		return &YieldFrom{
			NodeBase: p.base(startIdx),
			Value:    value,
		}
	}

	var value Node
	if canStartExpression(p.cur()) || p.at(STAR) {
		value = p.parseStarExpressions()
	}
	return &Yield{
		NodeBase: p.base(startIdx),
		Value:    value,
	}
}

// ---------------------------------------------------------------------------
// number literals
// ---------------------------------------------------------------------------

func (p *parser) numberConstant(startIdx int32, tok Token) *Constant {
	raw := strings.ReplaceAll(tok.Raw, "_", "")
	base := p.base(startIdx)

	if strings.HasSuffix(raw, "j") || strings.HasSuffix(raw, "J") {
		imag, err := strconv.ParseFloat(raw[:len(raw)-1], 64)
		if err != nil {
			panic(p.syntaxErrorAt(tok, fmtInvalidNumberLiteral(tok.Raw)))
		}
		return &Constant{
			NodeBase: base,
			Kind:     ConstComplex,
			Float:    imag,
			Str:      strings.ToLower(raw),
		}
	}

	if len(raw) > 1 && raw[0] == '0' {
		switch raw[1] {
		case 'x', 'X', 'o', 'O', 'b', 'B':
			v, err := strconv.ParseInt(raw, 0, 64)
			if err != nil {
				if isOutOfRange(err) {
					return &Constant{NodeBase: base, Kind: ConstBigInt, Str: raw}
				}
				panic(p.syntaxErrorAt(tok, fmtInvalidNumberLiteral(tok.Raw)))
			}
			return &Constant{NodeBase: base, Kind: ConstInt, Int: v}
		}
	}

	if strings.ContainsAny(raw, ".eE") {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			panic(p.syntaxErrorAt(tok, fmtInvalidNumberLiteral(tok.Raw)))
		}
		return &Constant{NodeBase: base, Kind: ConstFloat, Float: f}
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		if isOutOfRange(err) {
			return &Constant{NodeBase: base, Kind: ConstBigInt, Str: raw}
		}
		panic(p.syntaxErrorAt(tok, fmtInvalidNumberLiteral(tok.Raw)))
	}
	return &Constant{NodeBase: base, Kind: ConstInt, Int: v}
}

func isOutOfRange(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}
