package parser

import "github.com/nihei9/javalyzer/token"

// decisionPoint identifies a place in the grammar where the parser chooses among alternatives or decides
// whether a repetition continues.
type decisionPoint int

const (
	dpStartLoop decisionPoint = iota
	dpBlockLoop
	dpStatement
	dpElse
	dpLogicalOrPredicate
	dpRelationalLoop
	dpRelationalOp
	dpEqualityLoop
	dpAdditiveLoop
	dpAdditiveOp
	dpMultiplicativeLoop
	dpMultiplicativeOp
	dpFactor

	decisionPointCount
)

type firstSet struct {
	kinds []token.Kind
}

func (s *firstSet) contains(kind token.Kind) bool {
	for _, k := range s.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

var (
	firstClassDecl = &firstSet{
		kinds: []token.Kind{token.KindClass},
	}
	firstStatement = &firstSet{
		kinds: []token.Kind{
			token.KindIf,
			token.KindWhile,
			token.KindInt,
			token.KindIdent,
			token.KindIntLiteral,
			token.KindLParen,
		},
	}
	firstElse = &firstSet{
		kinds: []token.Kind{token.KindElse},
	}
	firstEqualityOp = &firstSet{
		kinds: []token.Kind{token.KindEq},
	}
	firstRelationalOp = &firstSet{
		kinds: []token.Kind{token.KindLT, token.KindGT},
	}
	firstAdditiveOp = &firstSet{
		kinds: []token.Kind{token.KindPlus, token.KindMinus},
	}
	firstMultiplicativeOp = &firstSet{
		kinds: []token.Kind{token.KindTimes, token.KindDivide},
	}
	firstFactor = &firstSet{
		kinds: []token.Kind{token.KindIdent, token.KindIntLiteral, token.KindLParen},
	}
)

// dispatchTable maps each decision point to the kinds that select its (first) alternative.
var dispatchTable = [decisionPointCount]*firstSet{
	dpStartLoop:          firstClassDecl,
	dpBlockLoop:          firstStatement,
	dpStatement:          firstStatement,
	dpElse:               firstElse,
	dpLogicalOrPredicate: firstEqualityOp,
	dpRelationalLoop:     firstRelationalOp,
	dpRelationalOp:       firstRelationalOp,
	dpEqualityLoop:       firstEqualityOp,
	dpAdditiveLoop:       firstAdditiveOp,
	dpAdditiveOp:         firstAdditiveOp,
	dpMultiplicativeLoop: firstMultiplicativeOp,
	dpMultiplicativeOp:   firstMultiplicativeOp,
	dpFactor:             firstFactor,
}
