package parse

import (
	"strconv"
	"strings"
)

// parseStrings parses a run of adjacent string and f-string literals.
// Implicit concatenation folds the run into a single Constant when no
// f-string takes part, and into a single JoinedStr otherwise.
func (p *parser) parseStrings() Node {
	startIdx := p.i
	var values []Node
	sawFString := false

	for {
		switch p.cur().Type {
		case STRING:
			tokStartIdx := p.i
			tok := p.advance()
			values = append(values, &Constant{
				NodeBase: p.base(tokStartIdx),
				Kind:     ConstStr,
				Str:      decodeStringLiteral(tok.Raw),
			})
			continue
		case FSTRING_START:
			sawFString = true
			values = p.parseFStringBody(values)
			continue
		}
		break
	}

	values = mergeAdjacentStringConstants(values)

	if !sawFString {
		if len(values) == 1 {
			c := values[0].(*Constant)
			c.NodeBase = p.base(startIdx)
			return c
		}
		//an empty literal produces no pieces
		return &Constant{
			NodeBase: p.base(startIdx),
			Kind:     ConstStr,
		}
	}

	return &JoinedStr{
		NodeBase: p.base(startIdx),
		Values:   values,
	}
}

// parseFStringBody consumes one f-string from FSTRING_START through
// FSTRING_END, appending its literal and replacement-field parts to values.
func (p *parser) parseFStringBody(values []Node) []Node {
	startTokIdx := p.i
	startTok := p.advance() //FSTRING_START
	if startTok.Raw != "" {
		values = append(values, &Constant{
			NodeBase: p.base(startTokIdx),
			Kind:     ConstStr,
			Str:      startTok.Raw,
		})
	}

	for {
		switch p.cur().Type {
		case FSTRING_MIDDLE:
			tokStartIdx := p.i
			tok := p.advance()
			if tok.Raw != "" {
				values = append(values, &Constant{
					NodeBase: p.base(tokStartIdx),
					Kind:     ConstStr,
					Str:      tok.Raw,
				})
			}
		case OPENING_BRACE:
			values = append(values, p.parseReplacementField())
		case FSTRING_END:
			p.advance()
			return values
		default:
			panic(p.syntaxError(fmtUnexpectedToken(p.cur())))
		}
	}
}

// parseReplacementField parses '{' expression ['!' conversion] [':' spec] '}'.
func (p *parser) parseReplacementField() Node {
	startIdx := p.i
	p.expect(OPENING_BRACE)

	var value Node
	if p.at(YIELD_KEYWORD) {
		value = p.parseYieldExpression()
	} else {
		value = p.requireExpr(p.parseStarExpressions())
	}

	conversion := int32(-1)
	if _, ok := p.accept(EXCLAMATION_MARK); ok {
		nameTok := p.expect(NAME)
		switch nameTok.Raw {
		case "s", "r", "a":
			conversion = int32(nameTok.Raw[0])
		default:
			panic(p.syntaxErrorAt(nameTok, fmtInvalidConversionChar(nameTok.Raw)))
		}
	}

	var formatSpec Node
	if _, ok := p.accept(COLON); ok {
		formatSpec = p.parseFormatSpec()
	}

	p.expect(CLOSING_BRACE)
	return &FormattedValue{
		NodeBase:   p.base(startIdx),
		Value:      value,
		Conversion: conversion,
		FormatSpec: formatSpec,
	}
}

// parseFormatSpec parses a format specification as a JoinedStr of literal
// text and nested replacement fields. The closing brace of the enclosing
// field is left for the caller.
func (p *parser) parseFormatSpec() Node {
	startIdx := p.i
	var values []Node

	for {
		switch p.cur().Type {
		case FSTRING_MIDDLE:
			tokStartIdx := p.i
			tok := p.advance()
			if tok.Raw != "" {
				values = append(values, &Constant{
					NodeBase: p.base(tokStartIdx),
					Kind:     ConstStr,
					Str:      tok.Raw,
				})
			}
		case OPENING_BRACE:
			values = append(values, p.parseReplacementField())
		case CLOSING_BRACE:
			return &JoinedStr{
				NodeBase: p.base(startIdx),
				Values:   values,
			}
		default:
			panic(p.syntaxError(fmtUnexpectedToken(p.cur())))
		}
	}
}

func mergeAdjacentStringConstants(values []Node) []Node {
	var merged []Node
	for _, v := range values {
		c, isConst := v.(*Constant)
		if !isConst || len(merged) == 0 {
			merged = append(merged, v)
			continue
		}
		prev, isPrevConst := merged[len(merged)-1].(*Constant)
		if !isPrevConst {
			merged = append(merged, v)
			continue
		}
		prev.Str += c.Str
		prev.Span.End = c.Span.End
		prev.EndLine = c.EndLine
		prev.EndColumn = c.EndColumn
	}
	return merged
}

// ---------------------------------------------------------------------------
// string literal decoding
// ---------------------------------------------------------------------------

// decodeStringLiteral turns the raw text of a STRING token, prefix and
// quotes included, into its string value.
func decodeStringLiteral(raw string) string {
	rs := []rune(raw)

	i := 0
	isRaw := false
	for i < len(rs) && (rs[i] == 'r' || rs[i] == 'R') {
		isRaw = true
		i++
	}

	quoteSize := 1
	if len(rs) >= i+6 && rs[i+1] == rs[i] && rs[i+2] == rs[i] {
		quoteSize = 3
	}
	content := rs[i+quoteSize : len(rs)-quoteSize]

	if isRaw {
		return string(content)
	}
	return decodeEscapes(content)
}

func decodeEscapes(content []rune) string {
	var b strings.Builder

	for i := 0; i < len(content); i++ {
		c := content[i]
		if c != '\\' || i+1 >= len(content) {
			b.WriteRune(c)
			continue
		}
		i++
		switch next := content[i]; next {
		case '\n':
			//escaped newline: line continuation inside the literal
		case '\\':
			b.WriteRune('\\')
		case '\'':
			b.WriteRune('\'')
		case '"':
			b.WriteRune('"')
		case 'n':
			b.WriteRune('\n')
		case 't':
			b.WriteRune('\t')
		case 'r':
			b.WriteRune('\r')
		case 'a':
			b.WriteRune('\a')
		case 'b':
			b.WriteRune('\b')
		case 'f':
			b.WriteRune('\f')
		case 'v':
			b.WriteRune('\v')
		case '0', '1', '2', '3', '4', '5', '6', '7':
			value := rune(0)
			digits := 0
			for digits < 3 && i < len(content) && content[i] >= '0' && content[i] <= '7' {
				value = value*8 + (content[i] - '0')
				digits++
				i++
			}
			i--
			b.WriteRune(value)
		case 'x':
			i += writeHexEscape(&b, content[i+1:], 2, `\x`)
		case 'u':
			i += writeHexEscape(&b, content[i+1:], 4, `\u`)
		case 'U':
			i += writeHexEscape(&b, content[i+1:], 8, `\U`)
		default:
			//an unrecognized escape keeps the backslash
			b.WriteRune('\\')
			b.WriteRune(next)
		}
	}
	return b.String()
}

// writeHexEscape decodes up to n hex digits from rest; on malformed input the
// escape is kept verbatim. It returns the number of runes consumed.
func writeHexEscape(b *strings.Builder, rest []rune, n int, intro string) int {
	if len(rest) < n {
		b.WriteString(intro)
		return 0
	}
	v, err := strconv.ParseUint(string(rest[:n]), 16, 32)
	if err != nil {
		b.WriteString(intro)
		return 0
	}
	b.WriteRune(rune(v))
	return n
}
