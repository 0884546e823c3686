package parse

import (
	"fmt"

	"github.com/pyrite-lang/pyrite/internal/utils"
)

// ruleID identifies a grammar rule in the memo cache key. Only rules at risk
// of repeated re-derivation under backtracking are memoized: the
// expression-ladder entry points re-entered by the comprehension, slice and
// assignment disambiguation paths.
type ruleID uint8

const (
	ruleExpression ruleID = iota
	ruleDisjunction
	ruleBitwiseOr
	ruleSum
	ruleTerm
	rulePrimary
	ruleAtom
)

var ruleNames = [...]string{
	ruleExpression:  "expression",
	ruleDisjunction: "disjunction",
	ruleBitwiseOr:   "bitwise_or",
	ruleSum:         "sum",
	ruleTerm:        "term",
	rulePrimary:     "primary",
	ruleAtom:        "atom",
}

type memoKey struct {
	rule ruleID
	pos  int32
}

type memoEntry struct {
	node Node //nil for a cached failure
	end  int32
}

// A parser consumes a materialized token slice and produces one Module.
// It is single-shot: the memo cache is scoped to one parse call and a
// parser must not be shared between goroutines.
type parser struct {
	tokens []Token
	i      int32
	memo   map[memoKey]memoEntry
	tracer *tracer
}

func newParser(tokens []Token, opts ...Options) *parser {
	p := &parser{
		tokens: tokens,
		memo:   map[memoKey]memoEntry{},
	}
	if len(opts) > 0 && opts[0].TraceLogger != nil {
		p.tracer = &tracer{log: *opts[0].TraceLogger}
	}
	return p
}

type Options struct {
	//TraceLogger enables rule-level tracing of the parse. Tracing is for
	//debugging the parser itself and is off unless a logger is provided.
	TraceLogger *TraceLogger
}

// Parse turns one module's worth of Python source text into an AST Module.
// On failure the returned error is a *ParsingError carrying the position of
// the first unrecoverable failure; the parse does not resynchronize.
func Parse(source string, opts ...Options) (*Module, error) {
	tokens, lexErr := tokenize(source)
	if lexErr != nil {
		return nil, lexErr
	}
	return parseTokens(tokens, opts...)
}

// Tokenize exposes the token sequence of a source text, mainly for tooling;
// Parse calls the tokenizer itself.
func Tokenize(source string) ([]Token, error) {
	tokens, err := tokenize(source)
	if err != nil {
		return nil, err
	}
	return tokens, nil
}

func parseTokens(tokens []Token, opts ...Options) (mod *Module, resultErr error) {
	p := newParser(tokens, opts...)

	defer func() {
		v := recover()
		if v == nil {
			return
		}
		if err, ok := v.(*ParsingError); ok {
			mod = nil
			resultErr = err
			return
		}
		//a non-ParsingError panic is a parser bug, not bad input
		mod = nil
		resultErr = p.internalError(fmt.Sprintf(
			"parser invariant violated: %s", utils.ConvertPanicValueToError(v)))
	}()

	mod = p.parseModule()
	return mod, nil
}

// MustParse parses the source and panics on error; test helper.
func MustParse(source string) *Module {
	mod, err := Parse(source)
	if err != nil {
		panic(err)
	}
	return mod
}

// ---------------------------------------------------------------------------
// cursor
// ---------------------------------------------------------------------------

func (p *parser) cur() Token {
	if p.i < int32(len(p.tokens)) {
		return p.tokens[p.i]
	}
	return p.tokens[len(p.tokens)-1] //ENDMARKER
}

func (p *parser) peek(offset int32) Token {
	idx := p.i + offset
	if idx < int32(len(p.tokens)) {
		return p.tokens[idx]
	}
	return p.tokens[len(p.tokens)-1]
}

func (p *parser) at(typ TokenType) bool {
	return p.cur().Type == typ
}

// atName reports whether the current token is the given soft keyword.
func (p *parser) atName(name string) bool {
	t := p.cur()
	return t.Type == NAME && t.Raw == name
}

func (p *parser) advance() Token {
	t := p.cur()
	if p.i < int32(len(p.tokens)) {
		p.i++
	}
	return t
}

// accept consumes the current token if it has the given type.
func (p *parser) accept(typ TokenType) (Token, bool) {
	if p.at(typ) {
		return p.advance(), true
	}
	return Token{}, false
}

// expect consumes a token of the given type or aborts the parse. Calling
// expect rather than accept is how an alternative commits (cut): once the
// distinguishing prefix has been consumed, failure is no longer a soft
// "no match" but a hard diagnostic.
func (p *parser) expect(typ TokenType) Token {
	if p.at(typ) {
		return p.advance()
	}
	panic(p.syntaxError(fmtExpectedToken(typ, p.cur())))
}

func (p *parser) mark() int32 {
	return p.i
}

func (p *parser) resetTo(mark int32) {
	p.i = mark
}

func (p *parser) position() SourcePosition {
	t := p.cur()
	return SourcePosition{Line: t.Line, Column: t.Column}
}

// ---------------------------------------------------------------------------
// failure
// ---------------------------------------------------------------------------

func (p *parser) syntaxError(msg string) *ParsingError {
	return &ParsingError{
		Kind:     SyntaxError,
		Message:  msg,
		Position: p.position(),
	}
}

func (p *parser) syntaxErrorAt(tok Token, msg string) *ParsingError {
	return &ParsingError{
		Kind:     SyntaxError,
		Message:  msg,
		Position: SourcePosition{Line: tok.Line, Column: tok.Column},
	}
}

func (p *parser) internalError(msg string) *ParsingError {
	return &ParsingError{
		Kind:     InternalError,
		Message:  msg,
		Position: p.position(),
	}
}

// ---------------------------------------------------------------------------
// memoization & lookahead
// ---------------------------------------------------------------------------

// memoize caches the outcome of fn, failures included, keyed by
// (rule, cursor position). A hit restores the cursor to the cached end
// position without re-running the rule body.
func (p *parser) memoize(rule ruleID, fn func() Node) Node {
	key := memoKey{rule, p.i}
	if entry, ok := p.memo[key]; ok {
		p.i = entry.end
		return entry.node
	}

	start := p.i
	p.traceEnter(rule)
	node := fn()
	if node == nil {
		p.i = start
	}
	p.traceLeave(rule, node != nil)

	p.memo[key] = memoEntry{node: node, end: p.i}
	return node
}

// speculate runs fn and always restores the cursor; it reports whether fn
// completed without raising a parse error. This is how soft keywords are
// resolved: the statement interpretation is tried in full before committing.
func (p *parser) speculate(fn func()) (ok bool) {
	mark := p.mark()
	ok = true
	func() {
		defer func() {
			if v := recover(); v != nil {
				if _, isParseErr := v.(*ParsingError); !isParseErr {
					panic(v)
				}
				ok = false
			}
		}()
		fn()
	}()
	p.resetTo(mark)
	return ok
}

// ---------------------------------------------------------------------------
// node positioning
// ---------------------------------------------------------------------------

// base builds a NodeBase spanning from the token at startIdx to the last
// consumed token.
func (p *parser) base(startIdx int32) NodeBase {
	start := p.tokens[startIdx]
	endIdx := p.i - 1
	if endIdx < startIdx {
		endIdx = startIdx
	}
	end := p.tokens[endIdx]
	return NodeBase{
		Span:      NodeSpan{start.Span.Start, end.Span.End},
		Line:      start.Line,
		Column:    start.Column,
		EndLine:   end.EndLine,
		EndColumn: end.EndColumn,
	}
}

// extendBase widens a node base to end at the last consumed token.
func (p *parser) extendBase(base NodeBase) NodeBase {
	endIdx := p.i - 1
	if endIdx < 0 {
		endIdx = 0
	}
	end := p.tokens[endIdx]
	base.Span.End = end.Span.End
	base.EndLine = end.EndLine
	base.EndColumn = end.EndColumn
	return base
}

// ---------------------------------------------------------------------------
// module
// ---------------------------------------------------------------------------

func (p *parser) parseModule() *Module {
	startIdx := p.i
	var body []Node

	for !p.at(ENDMARKER) {
		if _, ok := p.accept(NEWLINE); ok {
			continue
		}
		body = append(body, p.parseStatement()...)
	}

	return &Module{
		NodeBase: p.base(startIdx),
		Body:     body,
	}
}
