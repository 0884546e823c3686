package parse

import (
	"golang.org/x/exp/slices"
)

// parseStatement parses one logical statement. A simple statement line can
// hold several semicolon separated statements, hence the slice result.
func (p *parser) parseStatement() []Node {
	switch p.cur().Type {
	case IF_KEYWORD:
		return []Node{p.parseIf()}
	case WHILE_KEYWORD:
		return []Node{p.parseWhile()}
	case FOR_KEYWORD:
		return []Node{p.parseFor(p.i, false)}
	case TRY_KEYWORD:
		return []Node{p.parseTry()}
	case WITH_KEYWORD:
		return []Node{p.parseWith(p.i, false)}
	case DEF_KEYWORD:
		return []Node{p.parseFunctionDef(p.i, nil, false)}
	case CLASS_KEYWORD:
		return []Node{p.parseClassDef(p.i, nil)}
	case AT_SIGN:
		return []Node{p.parseDecorated()}
	case ASYNC_KEYWORD:
		return []Node{p.parseAsyncStatement()}
	case NAME:
		//match and type are soft keywords: they only introduce a statement
		//when the rest of the line parses as one
		if p.atName("match") && p.isMatchStatement() {
			return []Node{p.parseMatch()}
		}
		if p.atName("type") && p.peek(1).Type == NAME &&
			(p.peek(2).Type == EQUAL || p.peek(2).Type == OPENING_BRACKET) {
			return []Node{p.parseTypeAliasStatement()}
		}
	}
	return p.parseSimpleStatementLine()
}

func (p *parser) parseSimpleStatementLine() []Node {
	var stmts []Node
	for {
		stmts = append(stmts, p.parseSimpleStatement())
		if _, ok := p.accept(SEMICOLON); !ok {
			break
		}
		if p.at(NEWLINE) || p.at(ENDMARKER) {
			break
		}
	}
	p.endOfStatement()
	return stmts
}

func (p *parser) endOfStatement() {
	if _, ok := p.accept(NEWLINE); ok {
		return
	}
	if p.at(ENDMARKER) {
		return
	}
	panic(p.syntaxError(fmtUnexpectedToken(p.cur())))
}

func (p *parser) parseSimpleStatement() Node {
	startIdx := p.i

	switch p.cur().Type {
	case PASS_KEYWORD:
		p.advance()
		return &Pass{NodeBase: p.base(startIdx)}
	case BREAK_KEYWORD:
		p.advance()
		return &Break{NodeBase: p.base(startIdx)}
	case CONTINUE_KEYWORD:
		p.advance()
		return &Continue{NodeBase: p.base(startIdx)}
	case RETURN_KEYWORD:
		p.advance()
		var value Node
		if canStartExpression(p.cur()) || p.at(STAR) {
			value = p.requireExpr(p.parseStarExpressions())
		}
		return &Return{NodeBase: p.base(startIdx), Value: value}
	case RAISE_KEYWORD:
		return p.parseRaise()
	case DEL_KEYWORD:
		return p.parseDelete()
	case IMPORT_KEYWORD:
		return p.parseImport()
	case FROM_KEYWORD:
		return p.parseImportFrom()
	case GLOBAL_KEYWORD:
		p.advance()
		names := p.parseNameList()
		return &Global{NodeBase: p.base(startIdx), Names: names}
	case NONLOCAL_KEYWORD:
		p.advance()
		names := p.parseNameList()
		return &Nonlocal{NodeBase: p.base(startIdx), Names: names}
	case ASSERT_KEYWORD:
		return p.parseAssert()
	case YIELD_KEYWORD:
		y := p.parseYieldExpression()
		return &ExprStmt{NodeBase: p.base(startIdx), Value: y}
	}

	return p.parseAssignmentOrExprStatement()
}

func (p *parser) parseNameList() []string {
	var names []string
	names = append(names, p.expect(NAME).Raw)
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		names = append(names, p.expect(NAME).Raw)
	}
	return names
}

// ---------------------------------------------------------------------------
// assignments
// ---------------------------------------------------------------------------

var augAssignOperators = map[TokenType]Operator{
	PLUS_EQUAL:         Add,
	MINUS_EQUAL:        Sub,
	STAR_EQUAL:         Mult,
	SLASH_EQUAL:        Div,
	PERCENT_EQUAL:      Mod,
	DOUBLE_STAR_EQUAL:  Pow,
	DOUBLE_SLASH_EQUAL: FloorDiv,
	AMPERSAND_EQUAL:    BitAnd,
	PIPE_EQUAL:         BitOr,
	CARET_EQUAL:        BitXor,
	LEFT_SHIFT_EQUAL:   LShift,
	RIGHT_SHIFT_EQUAL:  RShift,
	AT_EQUAL:           MatMult,
}

// parseAssignmentOrExprStatement parses the general left hand side first and
// only then decides between annotated assignment, augmented assignment,
// chained plain assignment and a bare expression statement.
func (p *parser) parseAssignmentOrExprStatement() Node {
	startIdx := p.i
	first := p.requireExpr(p.parseStarExpressions())

	switch {
	case p.at(COLON):
		return p.parseAnnAssign(startIdx, first)

	case p.cur().IsAugmentedAssignOp():
		opTok := p.advance()
		p.setExprContext(first, Store, INVALID_AUG_ASSIGN_TARGET)
		switch first.(type) {
		case *Name, *Attribute, *Subscript:
		default:
			panic(p.syntaxErrorAt(p.tokens[startIdx], INVALID_AUG_ASSIGN_TARGET))
		}
		value := p.parseAssignmentValue()
		return &AugAssign{
			NodeBase: p.base(startIdx),
			Target:   first,
			Op:       augAssignOperators[opTok.Type],
			Value:    value,
		}

	case p.at(EQUAL):
		exprs := []Node{first}
		for {
			if _, ok := p.accept(EQUAL); !ok {
				break
			}
			exprs = append(exprs, p.parseAssignmentValue())
		}
		value := exprs[len(exprs)-1]
		targets := exprs[:len(exprs)-1]
		for _, target := range targets {
			if _, ok := target.(*Starred); ok {
				panic(p.syntaxErrorAtNode(target, STARRED_ASSIGN_TARGET_NOT_ALLOWED))
			}
			p.setExprContext(target, Store, INVALID_ASSIGN_TARGET)
		}
		return &Assign{
			NodeBase: p.base(startIdx),
			Targets:  targets,
			Value:    value,
		}
	}

	return &ExprStmt{NodeBase: p.base(startIdx), Value: first}
}

func (p *parser) parseAssignmentValue() Node {
	if p.at(YIELD_KEYWORD) {
		return p.parseYieldExpression()
	}
	return p.requireExpr(p.parseStarExpressions())
}

func (p *parser) parseAnnAssign(startIdx int32, target Node) Node {
	switch target.(type) {
	case *Name, *Attribute, *Subscript:
	default:
		panic(p.syntaxErrorAt(p.tokens[startIdx], INVALID_ANN_ASSIGN_TARGET))
	}
	p.setExprContext(target, Store, INVALID_ANN_ASSIGN_TARGET)

	p.expect(COLON)
	annotation := p.requireExpr(p.parseExpression())

	var value Node
	if _, ok := p.accept(EQUAL); ok {
		value = p.parseAssignmentValue()
	}

	_, isName := target.(*Name)
	return &AnnAssign{
		NodeBase:   p.base(startIdx),
		Target:     target,
		Annotation: annotation,
		Value:      value,
		Simple:     isName,
	}
}

// setExprContext switches a target expression (and its sub-targets) from
// Load to Store or Del, rejecting nodes that cannot be assigned to.
func (p *parser) setExprContext(n Node, ctx ExprContext, errMsg string) {
	switch node := n.(type) {
	case *Name:
		node.Ctx = ctx
	case *Attribute:
		node.Ctx = ctx
	case *Subscript:
		node.Ctx = ctx
	case *Starred:
		if ctx == Del {
			panic(p.syntaxErrorAtNode(n, errMsg))
		}
		node.Ctx = ctx
		p.setExprContext(node.Value, ctx, errMsg)
	case *Tuple:
		node.Ctx = ctx
		for _, elt := range node.Elts {
			p.setExprContext(elt, ctx, errMsg)
		}
	case *List:
		node.Ctx = ctx
		for _, elt := range node.Elts {
			p.setExprContext(elt, ctx, errMsg)
		}
	default:
		panic(p.syntaxErrorAtNode(n, errMsg))
	}
}

func (p *parser) syntaxErrorAtNode(n Node, msg string) *ParsingError {
	base := n.Base()
	return &ParsingError{
		Kind:     SyntaxError,
		Message:  msg,
		Position: SourcePosition{Line: base.Line, Column: base.Column},
	}
}

// ---------------------------------------------------------------------------
// blocks
// ---------------------------------------------------------------------------

// parseBlock parses ':' followed by either an indented suite or an inline
// simple statement line.
func (p *parser) parseBlock() []Node {
	p.expect(COLON)

	if _, ok := p.accept(NEWLINE); !ok {
		return p.parseSimpleStatementLine()
	}

	if !p.at(INDENT) {
		panic(p.syntaxError(EXPECTED_INDENTED_BLOCK))
	}
	p.advance()

	var body []Node
	for !p.at(DEDENT) && !p.at(ENDMARKER) {
		if _, ok := p.accept(NEWLINE); ok {
			continue
		}
		body = append(body, p.parseStatement()...)
	}
	p.expect(DEDENT)
	return body
}

// ---------------------------------------------------------------------------
// compound statements
// ---------------------------------------------------------------------------

func (p *parser) parseIf() Node {
	startIdx := p.i
	p.expect(IF_KEYWORD)
	test := p.requireExpr(p.parseNamedExpression())
	body := p.parseBlock()

	var orElse []Node
	switch p.cur().Type {
	case ELIF_KEYWORD:
		//an elif chain nests: each elif becomes an If in the parent's OrElse
		elifStartIdx := p.i
		p.advance()
		elifTest := p.requireExpr(p.parseNamedExpression())
		elifBody := p.parseBlock()
		nested := &If{
			NodeBase: p.base(elifStartIdx),
			Test:     elifTest,
			Body:     elifBody,
		}
		nested.OrElse = p.parseElifTail(nested)
		orElse = []Node{nested}
	case ELSE_KEYWORD:
		p.advance()
		orElse = p.parseBlock()
	}

	return &If{
		NodeBase: p.base(startIdx),
		Test:     test,
		Body:     body,
		OrElse:   orElse,
	}
}

func (p *parser) parseElifTail(parent *If) []Node {
	switch p.cur().Type {
	case ELIF_KEYWORD:
		startIdx := p.i
		p.advance()
		test := p.requireExpr(p.parseNamedExpression())
		body := p.parseBlock()
		nested := &If{
			NodeBase: p.base(startIdx),
			Test:     test,
			Body:     body,
		}
		nested.OrElse = p.parseElifTail(nested)
		parent.NodeBase = p.extendBase(parent.NodeBase)
		return []Node{nested}
	case ELSE_KEYWORD:
		p.advance()
		orElse := p.parseBlock()
		parent.NodeBase = p.extendBase(parent.NodeBase)
		return orElse
	}
	return nil
}

func (p *parser) parseWhile() Node {
	startIdx := p.i
	p.expect(WHILE_KEYWORD)
	test := p.requireExpr(p.parseNamedExpression())
	body := p.parseBlock()

	var orElse []Node
	if _, ok := p.accept(ELSE_KEYWORD); ok {
		orElse = p.parseBlock()
	}

	return &While{
		NodeBase: p.base(startIdx),
		Test:     test,
		Body:     body,
		OrElse:   orElse,
	}
}

func (p *parser) parseFor(startIdx int32, isAsync bool) Node {
	p.expect(FOR_KEYWORD)
	target := p.parseStarTargets()
	p.expect(IN_KEYWORD)
	iter := p.requireExpr(p.parseStarExpressions())
	body := p.parseBlock()

	var orElse []Node
	if _, ok := p.accept(ELSE_KEYWORD); ok {
		orElse = p.parseBlock()
	}

	return &For{
		NodeBase: p.base(startIdx),
		Target:   target,
		Iter:     iter,
		Body:     body,
		OrElse:   orElse,
		IsAsync:  isAsync,
	}
}

// parseStarTargets parses assignment targets as they appear after 'for' or
// on the left of '=': a comma separated list of (possibly starred) primary
// expressions, folded into a Store-context Tuple when more than one.
func (p *parser) parseStarTargets() Node {
	startIdx := p.i
	first := p.parseStarTargetItem()

	if !p.at(COMMA) {
		if _, ok := first.(*Starred); ok {
			panic(p.syntaxErrorAtNode(first, STARRED_ASSIGN_TARGET_NOT_ALLOWED))
		}
		p.setExprContext(first, Store, INVALID_ASSIGN_TARGET)
		return first
	}

	elts := []Node{first}
	for {
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if p.at(IN_KEYWORD) || !canStartExpression(p.cur()) && !p.at(STAR) {
			break //trailing comma
		}
		elts = append(elts, p.parseStarTargetItem())
	}

	tuple := &Tuple{
		NodeBase: p.base(startIdx),
		Elts:     elts,
	}
	p.setExprContext(tuple, Store, INVALID_ASSIGN_TARGET)
	return tuple
}

func (p *parser) parseStarTargetItem() Node {
	if p.at(STAR) {
		startIdx := p.i
		p.advance()
		value := p.parseStarTargetItem()
		return &Starred{
			NodeBase: p.base(startIdx),
			Value:    value,
			Ctx:      Load,
		}
	}
	return p.requireExpr(p.parsePrimary())
}

func (p *parser) parseWith(startIdx int32, isAsync bool) Node {
	p.expect(WITH_KEYWORD)

	var items []*WithItem
	if p.at(OPENING_PARENTHESIS) {
		items, _ = p.tryParenthesizedWithItems()
	}
	if items == nil {
		for {
			items = append(items, p.parseWithItem())
			if _, ok := p.accept(COMMA); !ok {
				break
			}
		}
	}

	body := p.parseBlock()
	return &With{
		NodeBase: p.base(startIdx),
		Items:    items,
		Body:     body,
		IsAsync:  isAsync,
	}
}

func (p *parser) parseWithItem() *WithItem {
	itemStartIdx := p.i
	contextExpr := p.requireExpr(p.parseExpression())

	var optionalVars Node
	if _, ok := p.accept(AS_KEYWORD); ok {
		optionalVars = p.parseStarTargetItem()
		if _, isStarred := optionalVars.(*Starred); isStarred {
			panic(p.syntaxErrorAtNode(optionalVars, STARRED_ASSIGN_TARGET_NOT_ALLOWED))
		}
		p.setExprContext(optionalVars, Store, INVALID_ASSIGN_TARGET)
	}

	return &WithItem{
		NodeBase:     p.base(itemStartIdx),
		ContextExpr:  contextExpr,
		OptionalVars: optionalVars,
	}
}

// tryParenthesizedWithItems parses '(' with_item (',' with_item)* [','] ')'
// followed by ':'. An opening parenthesis after 'with' is ambiguous with a
// parenthesized context expression; on any mismatch the cursor is restored
// and the caller falls back to the plain item list.
func (p *parser) tryParenthesizedWithItems() (items []*WithItem, ok bool) {
	mark := p.mark()
	defer func() {
		if v := recover(); v != nil {
			if _, isParseErr := v.(*ParsingError); !isParseErr {
				panic(v)
			}
			ok = false
		}
		if !ok {
			items = nil
			p.resetTo(mark)
		}
	}()

	p.expect(OPENING_PARENTHESIS)
	for !p.at(CLOSING_PARENTHESIS) {
		items = append(items, p.parseWithItem())
		if _, accepted := p.accept(COMMA); !accepted {
			break
		}
	}
	p.expect(CLOSING_PARENTHESIS)

	if len(items) == 0 || !p.at(COLON) {
		return nil, false
	}
	return items, true
}

func (p *parser) parseTry() Node {
	startIdx := p.i
	p.expect(TRY_KEYWORD)
	body := p.parseBlock()

	var handlers []*ExceptHandler
	exceptStar := false
	sawPlainExcept := false

	for p.at(EXCEPT_KEYWORD) {
		handlerStartIdx := p.i
		p.advance()

		isStar := false
		if _, ok := p.accept(STAR); ok {
			isStar = true
		}
		if len(handlers) == 0 {
			exceptStar = isStar
			sawPlainExcept = !isStar
		} else if isStar == sawPlainExcept {
			panic(p.syntaxErrorAt(p.tokens[handlerStartIdx], EXCEPT_STAR_MIXED_WITH_EXCEPT))
		}

		var typ Node
		name := ""
		if !p.at(COLON) {
			typ = p.requireExpr(p.parseExpression())
			if _, ok := p.accept(AS_KEYWORD); ok {
				name = p.expect(NAME).Raw
			}
		} else if isStar {
			//except* requires an exception type
			panic(p.syntaxError(EXPECTED_EXPR))
		}

		handlerBody := p.parseBlock()
		handlers = append(handlers, &ExceptHandler{
			NodeBase: p.base(handlerStartIdx),
			Type:     typ,
			Name:     name,
			Body:     handlerBody,
		})
	}

	var orElse []Node
	if len(handlers) > 0 {
		if _, ok := p.accept(ELSE_KEYWORD); ok {
			orElse = p.parseBlock()
		}
	}

	var finalBody []Node
	if _, ok := p.accept(FINALLY_KEYWORD); ok {
		finalBody = p.parseBlock()
	}

	if len(handlers) == 0 && len(finalBody) == 0 {
		panic(p.syntaxError(TRY_WITHOUT_EXCEPT_OR_FINALLY))
	}

	return &Try{
		NodeBase:   p.base(startIdx),
		Body:       body,
		Handlers:   handlers,
		OrElse:     orElse,
		FinalBody:  finalBody,
		ExceptStar: exceptStar,
	}
}

func (p *parser) parseRaise() Node {
	startIdx := p.i
	p.expect(RAISE_KEYWORD)

	var exc, cause Node
	if canStartExpression(p.cur()) {
		exc = p.requireExpr(p.parseExpression())
		if _, ok := p.accept(FROM_KEYWORD); ok {
			cause = p.requireExpr(p.parseExpression())
		}
	}

	return &Raise{
		NodeBase: p.base(startIdx),
		Exc:      exc,
		Cause:    cause,
	}
}

func (p *parser) parseDelete() Node {
	startIdx := p.i
	p.expect(DEL_KEYWORD)

	var targets []Node
	for {
		target := p.requireExpr(p.parsePrimary())
		p.setExprContext(target, Del, INVALID_DELETE_TARGET)
		targets = append(targets, target)
		if _, ok := p.accept(COMMA); !ok {
			break
		}
		if !canStartExpression(p.cur()) {
			break //trailing comma
		}
	}

	return &Delete{
		NodeBase: p.base(startIdx),
		Targets:  targets,
	}
}

func (p *parser) parseAssert() Node {
	startIdx := p.i
	p.expect(ASSERT_KEYWORD)
	test := p.requireExpr(p.parseExpression())

	var msg Node
	if _, ok := p.accept(COMMA); ok {
		msg = p.requireExpr(p.parseExpression())
	}

	return &Assert{
		NodeBase: p.base(startIdx),
		Test:     test,
		Msg:      msg,
	}
}

// ---------------------------------------------------------------------------
// imports
// ---------------------------------------------------------------------------

func (p *parser) parseImport() Node {
	startIdx := p.i
	p.expect(IMPORT_KEYWORD)

	var names []*Alias
	for {
		names = append(names, p.parseDottedAlias())
		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}

	return &Import{
		NodeBase: p.base(startIdx),
		Names:    names,
	}
}

func (p *parser) parseDottedAlias() *Alias {
	startIdx := p.i
	name := p.parseDottedName()

	asName := ""
	if _, ok := p.accept(AS_KEYWORD); ok {
		asName = p.expect(NAME).Raw
	}

	return &Alias{
		NodeBase: p.base(startIdx),
		Name:     name,
		AsName:   asName,
	}
}

func (p *parser) parseDottedName() string {
	name := p.expect(NAME).Raw
	for {
		if _, ok := p.accept(DOT); !ok {
			return name
		}
		name += "." + p.expect(NAME).Raw
	}
}

func (p *parser) parseImportFrom() Node {
	startIdx := p.i
	p.expect(FROM_KEYWORD)

	//leading dots encode the relative import level; '...' lexes as ELLIPSIS
	level := int32(0)
	for {
		if _, ok := p.accept(DOT); ok {
			level++
			continue
		}
		if _, ok := p.accept(ELLIPSIS); ok {
			level += 3
			continue
		}
		break
	}

	module := ""
	if p.at(NAME) {
		module = p.parseDottedName()
	} else if level == 0 {
		panic(p.syntaxError(RELATIVE_IMPORT_MISSING_MODULE))
	}

	p.expect(IMPORT_KEYWORD)

	var names []*Alias
	switch {
	case p.at(STAR):
		starStartIdx := p.i
		p.advance()
		names = []*Alias{{NodeBase: p.base(starStartIdx), Name: "*"}}

	case p.at(OPENING_PARENTHESIS):
		p.advance()
		for !p.at(CLOSING_PARENTHESIS) {
			names = append(names, p.parseImportedName())
			if _, ok := p.accept(COMMA); !ok {
				break
			}
		}
		p.expect(CLOSING_PARENTHESIS)

	default:
		for {
			names = append(names, p.parseImportedName())
			if _, ok := p.accept(COMMA); !ok {
				break
			}
		}
	}

	return &ImportFrom{
		NodeBase: p.base(startIdx),
		Module:   module,
		Names:    names,
		Level:    level,
	}
}

func (p *parser) parseImportedName() *Alias {
	startIdx := p.i
	name := p.expect(NAME).Raw

	asName := ""
	if _, ok := p.accept(AS_KEYWORD); ok {
		asName = p.expect(NAME).Raw
	}

	return &Alias{
		NodeBase: p.base(startIdx),
		Name:     name,
		AsName:   asName,
	}
}

// ---------------------------------------------------------------------------
// function & class definitions
// ---------------------------------------------------------------------------

func (p *parser) parseDecorated() Node {
	startIdx := p.i

	var decorators []Node
	for p.at(AT_SIGN) {
		p.advance()
		decorators = append(decorators, p.requireExpr(p.parseNamedExpression()))
		p.expect(NEWLINE)
		for {
			if _, ok := p.accept(NEWLINE); !ok {
				break
			}
		}
	}

	switch p.cur().Type {
	case DEF_KEYWORD:
		return p.parseFunctionDef(startIdx, decorators, false)
	case CLASS_KEYWORD:
		return p.parseClassDef(startIdx, decorators)
	case ASYNC_KEYWORD:
		if p.peek(1).Type == DEF_KEYWORD {
			p.advance()
			return p.parseFunctionDef(startIdx, decorators, true)
		}
	}
	panic(p.syntaxError(fmtUnexpectedToken(p.cur())))
}

func (p *parser) parseAsyncStatement() Node {
	startIdx := p.i
	p.expect(ASYNC_KEYWORD)

	switch p.cur().Type {
	case DEF_KEYWORD:
		return p.parseFunctionDef(startIdx, nil, true)
	case FOR_KEYWORD:
		return p.parseFor(startIdx, true)
	case WITH_KEYWORD:
		return p.parseWith(startIdx, true)
	}
	panic(p.syntaxError(fmtUnexpectedToken(p.cur())))
}

func (p *parser) parseFunctionDef(startIdx int32, decorators []Node, isAsync bool) Node {
	p.expect(DEF_KEYWORD)
	name := p.expect(NAME).Raw
	typeParams := p.parseTypeParams()

	p.expect(OPENING_PARENTHESIS)
	args := p.parseParameterList(true, CLOSING_PARENTHESIS)
	p.expect(CLOSING_PARENTHESIS)

	var returns Node
	if _, ok := p.accept(ARROW); ok {
		returns = p.requireExpr(p.parseExpression())
	}

	body := p.parseBlock()
	return &FunctionDef{
		NodeBase:      p.base(startIdx),
		Name:          name,
		TypeParams:    typeParams,
		Args:          args,
		Body:          body,
		DecoratorList: decorators,
		Returns:       returns,
		IsAsync:       isAsync,
	}
}

func (p *parser) parseClassDef(startIdx int32, decorators []Node) Node {
	p.expect(CLASS_KEYWORD)
	name := p.expect(NAME).Raw
	typeParams := p.parseTypeParams()

	var bases []Node
	var keywords []*Keyword
	if _, ok := p.accept(OPENING_PARENTHESIS); ok {
		bases, keywords = p.parseClassArguments()
		p.expect(CLOSING_PARENTHESIS)
	}

	body := p.parseBlock()
	return &ClassDef{
		NodeBase:      p.base(startIdx),
		Name:          name,
		TypeParams:    typeParams,
		Bases:         bases,
		Keywords:      keywords,
		Body:          body,
		DecoratorList: decorators,
	}
}

func (p *parser) parseClassArguments() ([]Node, []*Keyword) {
	var bases []Node
	var keywords []*Keyword

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

		case p.at(STAR):
			starStartIdx := p.i
			p.advance()
			value := p.requireExpr(p.parseExpression())
			bases = append(bases, &Starred{
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
			baseTok := p.cur()
			if len(keywords) > 0 {
				panic(p.syntaxErrorAt(baseTok, POSITIONAL_ARG_AFTER_KEYWORD_ARG))
			}
			bases = append(bases, p.requireExpr(p.parseExpression()))
		}

		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}
	return bases, keywords
}

// ---------------------------------------------------------------------------
// parameters
// ---------------------------------------------------------------------------

// parseParameterList parses a def or lambda parameter list up to (but not
// consuming) the closer token: ')' for def, ':' for lambda. Lambda
// parameters cannot be annotated.
func (p *parser) parseParameterList(allowAnnotations bool, closer TokenType) *Arguments {
	startIdx := p.i
	args := &Arguments{}

	sawSlash := false
	sawStar := false
	sawDefault := false

	var seen []string
	checkName := func(arg *Arg) {
		if slices.Contains(seen, arg.Name) {
			panic(p.syntaxErrorAtNode(arg, fmtDuplicateParamName(arg.Name)))
		}
		seen = append(seen, arg.Name)
	}

	for !p.at(closer) {
		switch {
		case p.at(SLASH):
			slashTok := p.advance()
			if sawSlash || sawStar || len(args.Args) == 0 {
				panic(p.syntaxErrorAt(slashTok, fmtDuplicateKeywordMarker("/")))
			}
			sawSlash = true
			args.PosOnlyArgs = args.Args
			args.Args = nil

		case p.at(DOUBLE_STAR):
			p.advance()
			arg, hasDefault := p.parseParameter(allowAnnotations)
			if hasDefault {
				panic(p.syntaxErrorAtNode(arg, VAR_PARAM_WITH_DEFAULT))
			}
			checkName(arg)
			args.KwArg = arg

		case p.at(STAR):
			starTok := p.advance()
			if sawStar {
				panic(p.syntaxErrorAt(starTok, fmtDuplicateKeywordMarker("*")))
			}
			sawStar = true
			sawDefault = false
			if p.at(NAME) {
				arg, hasDefault := p.parseParameter(allowAnnotations)
				if hasDefault {
					panic(p.syntaxErrorAtNode(arg, VAR_PARAM_WITH_DEFAULT))
				}
				checkName(arg)
				args.VarArg = arg
			}
			//a bare star only introduces keyword-only parameters

		default:
			paramTok := p.cur()
			arg, hasDefault := p.parseParameterWithDefault(allowAnnotations, args, sawStar)
			checkName(arg)
			if sawStar {
				args.KwOnlyArgs = append(args.KwOnlyArgs, arg)
			} else {
				if sawDefault && !hasDefault {
					panic(p.syntaxErrorAt(paramTok, DEFAULT_BEFORE_NON_DEFAULT_PARAM))
				}
				args.Args = append(args.Args, arg)
			}
			if hasDefault {
				sawDefault = true
			}
		}

		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}

	args.NodeBase = p.base(startIdx)
	return args
}

func (p *parser) parseParameter(allowAnnotations bool) (*Arg, bool) {
	startIdx := p.i
	name := p.expect(NAME).Raw

	var annotation Node
	if allowAnnotations && p.at(COLON) {
		p.advance()
		annotation = p.requireExpr(p.parseExpression())
	}

	arg := &Arg{
		NodeBase:   p.base(startIdx),
		Name:       name,
		Annotation: annotation,
	}
	return arg, p.at(EQUAL)
}

func (p *parser) parseParameterWithDefault(allowAnnotations bool, args *Arguments, kwOnly bool) (*Arg, bool) {
	arg, _ := p.parseParameter(allowAnnotations)

	var def Node
	hasDefault := false
	if _, ok := p.accept(EQUAL); ok {
		def = p.requireExpr(p.parseExpression())
		hasDefault = true
	}

	if kwOnly {
		//kw_defaults stays parallel to the keyword-only parameters, with a
		//nil slot for each parameter that has no default
		args.KwDefaults = append(args.KwDefaults, def)
	} else if hasDefault {
		args.Defaults = append(args.Defaults, def)
	}
	return arg, hasDefault
}

// ---------------------------------------------------------------------------
// type statement & type parameters
// ---------------------------------------------------------------------------

func (p *parser) parseTypeAliasStatement() Node {
	startIdx := p.i
	p.advance() //'type' soft keyword

	nameStartIdx := p.i
	nameTok := p.expect(NAME)
	name := &Name{
		NodeBase: p.base(nameStartIdx),
		Id:       nameTok.Raw,
		Ctx:      Store,
	}

	typeParams := p.parseTypeParams()
	p.expect(EQUAL)
	value := p.requireExpr(p.parseExpression())
	p.endOfStatement()

	return &TypeAlias{
		NodeBase:   p.base(startIdx),
		Name:       name,
		TypeParams: typeParams,
		Value:      value,
	}
}

// parseTypeParams parses an optional '[T, *Ts, **P]' type parameter list.
func (p *parser) parseTypeParams() []Node {
	if !p.at(OPENING_BRACKET) {
		return nil
	}
	p.advance()

	var params []Node
	for !p.at(CLOSING_BRACKET) {
		params = append(params, p.parseTypeParam())
		if _, ok := p.accept(COMMA); !ok {
			break
		}
	}
	p.expect(CLOSING_BRACKET)
	return params
}

func (p *parser) parseTypeParam() Node {
	startIdx := p.i

	if _, ok := p.accept(STAR); ok {
		name := p.expect(NAME).Raw
		var def Node
		if _, ok := p.accept(EQUAL); ok {
			def = p.requireExpr(p.parseExpression())
		}
		return &TypeVarTuple{
			NodeBase: p.base(startIdx),
			Name:     name,
			Default:  def,
		}
	}

	if _, ok := p.accept(DOUBLE_STAR); ok {
		name := p.expect(NAME).Raw
		var def Node
		if _, ok := p.accept(EQUAL); ok {
			def = p.requireExpr(p.parseExpression())
		}
		return &ParamSpec{
			NodeBase: p.base(startIdx),
			Name:     name,
			Default:  def,
		}
	}

	name := p.expect(NAME).Raw
	var bound, def Node
	if _, ok := p.accept(COLON); ok {
		bound = p.requireExpr(p.parseExpression())
	}
	if _, ok := p.accept(EQUAL); ok {
		def = p.requireExpr(p.parseExpression())
	}
	return &TypeVar{
		NodeBase: p.base(startIdx),
		Name:     name,
		Bound:    bound,
		Default:  def,
	}
}
