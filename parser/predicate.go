package parser

import "github.com/nihei9/javalyzer/token"

// lookaheadBudget is the number of tokens the speculative predicate may scan beyond the committed position.
const lookaheadBudget = 2

type predicateResult int

const (
	notMatched predicateResult = iota
	matched

	// matchedEarly means the scan matched as many tokens as the budget allows. The rest of the production is
	// not scanned.
	matchedEarly
)

func (r predicateResult) String() string {
	switch r {
	case matched:
		return "matched"
	case matchedEarly:
		return "matched-early"
	}
	return "not-matched"
}

// speculation scans tokens ahead of the committed position without consuming them. It walks the same
// productions as the parser does but only reports whether they match.
type speculation struct {
	c *cursor

	// scanPos is the index of the most recently scanned token, and lastPos is the index of the furthest token
	// scanned so far. They differ after a failed alternative rewinds scanPos.
	scanPos int
	lastPos int

	budget int
}

func newSpeculation(c *cursor, budget int) *speculation {
	return &speculation{
		c:       c,
		scanPos: c.pos - 1,
		lastPos: c.pos - 1,
		budget:  budget,
	}
}

type scanFunc func() predicateResult

// scan matches one terminal. The budget is charged only for tokens beyond lastPos, so rescanning tokens after a
// rewind is free.
func (s *speculation) scan(kind token.Kind) predicateResult {
	if s.scanPos == s.lastPos {
		s.budget--
		s.lastPos++
	}
	s.scanPos++
	if s.c.tokenAt(s.scanPos).Kind != kind {
		return notMatched
	}
	if s.budget <= 0 && s.scanPos == s.lastPos {
		return matchedEarly
	}
	return matched
}

func (s *speculation) terminal(kind token.Kind) scanFunc {
	return func() predicateResult {
		return s.scan(kind)
	}
}

func (s *speculation) seq(fs ...scanFunc) scanFunc {
	return func() predicateResult {
		for _, f := range fs {
			if r := f(); r != matched {
				return r
			}
		}
		return matched
	}
}

// alt tries alternatives in order, rewinding the scan position after each failed one.
func (s *speculation) alt(fs ...scanFunc) scanFunc {
	return func() predicateResult {
		start := s.scanPos
		for _, f := range fs {
			r := f()
			if r != notMatched {
				return r
			}
			s.scanPos = start
		}
		return notMatched
	}
}

// star repeats f until it fails. The failed iteration is rewound, and zero iterations is a match.
func (s *speculation) star(f scanFunc) scanFunc {
	return func() predicateResult {
		for {
			start := s.scanPos
			r := f()
			switch r {
			case notMatched:
				s.scanPos = start
				return matched
			case matchedEarly:
				return matchedEarly
			}
		}
	}
}

// logicalOrContinuation scans `EQ LogicalAnd`, the body of the LogicalOr repetition.
func (s *speculation) logicalOrContinuation() predicateResult {
	return s.seq(s.terminal(token.KindEq), s.logicalAnd)()
}

func (s *speculation) expr() predicateResult {
	return s.seq(
		s.logicalAnd,
		s.star(s.seq(s.terminal(token.KindEq), s.logicalAnd)),
	)()
}

func (s *speculation) logicalAnd() predicateResult {
	return s.seq(
		s.equality,
		s.star(s.seq(s.alt(s.terminal(token.KindLT), s.terminal(token.KindGT)), s.equality)),
	)()
}

func (s *speculation) equality() predicateResult {
	return s.seq(
		s.additive,
		s.star(s.seq(s.terminal(token.KindEq), s.additive)),
	)()
}

func (s *speculation) additive() predicateResult {
	return s.seq(
		s.multiplicative,
		s.star(s.seq(s.alt(s.terminal(token.KindPlus), s.terminal(token.KindMinus)), s.multiplicative)),
	)()
}

func (s *speculation) multiplicative() predicateResult {
	return s.seq(
		s.factor,
		s.star(s.seq(s.alt(s.terminal(token.KindTimes), s.terminal(token.KindDivide)), s.factor)),
	)()
}

func (s *speculation) factor() predicateResult {
	return s.alt(
		s.terminal(token.KindIdent),
		s.terminal(token.KindIntLiteral),
		s.seq(s.terminal(token.KindLParen), s.expr, s.terminal(token.KindRParen)),
	)()
}
