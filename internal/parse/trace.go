package parse

import (
	"github.com/rs/zerolog"
)

// TraceLogger is the logger used for rule-level parse tracing.
type TraceLogger = zerolog.Logger

type tracer struct {
	log   zerolog.Logger
	depth int
}

func (p *parser) traceEnter(rule ruleID) {
	if p.tracer == nil {
		return
	}
	t := p.tracer
	t.log.Trace().
		Str("rule", ruleNames[rule]).
		Int("depth", t.depth).
		Int32("pos", p.i).
		Int32("line", p.cur().Line).
		Int32("col", p.cur().Column).
		Msg("enter")
	t.depth++
}

func (p *parser) traceLeave(rule ruleID, matched bool) {
	if p.tracer == nil {
		return
	}
	t := p.tracer
	t.depth--
	t.log.Trace().
		Str("rule", ruleNames[rule]).
		Int("depth", t.depth).
		Int32("pos", p.i).
		Bool("matched", matched).
		Msg("leave")
}
