package parser

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nihei9/javalyzer/token"
)

// SyntaxError reports the first token the grammar could not accept. ExpectedKinds lists, in alphabet order,
// the kinds that were acceptable at that point.
type SyntaxError struct {
	Token         *token.Token
	ExpectedKinds []token.Kind
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "syntax error: unexpected token %v", e.Token.Describe())
	if len(e.ExpectedKinds) > 0 {
		fmt.Fprintf(&b, "; expected: %v", e.ExpectedKinds[0])
		for _, k := range e.ExpectedKinds[1:] {
			fmt.Fprintf(&b, ", %v", k)
		}
	}
	return b.String()
}

func (e *SyntaxError) Position() token.Position {
	return e.Token.Pos
}

// Expects reports whether kind is one of the expected kinds.
func (e *SyntaxError) Expects(kind token.Kind) bool {
	for _, k := range e.ExpectedKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// errorReporter remembers, for each decision point, the generation at which it last rejected the lookahead.
// A decision point is live when that generation equals the current one, i.e., no token has been consumed since.
type errorReporter struct {
	rejectedAt [decisionPointCount]int
}

func newErrorReporter() *errorReporter {
	r := &errorReporter{}
	for i := range r.rejectedAt {
		r.rejectedAt[i] = -1
	}
	return r
}

func (r *errorReporter) reject(dp decisionPoint, gen int) {
	r.rejectedAt[dp] = gen
}

// syntaxError builds the error for tok. demanded is the kind a terminal match asked for, or token.KindInvalid
// when the failure happened at a dispatch.
func (r *errorReporter) syntaxError(tok *token.Token, demanded token.Kind, gen int) *SyntaxError {
	expected := map[token.Kind]struct{}{}
	if demanded != token.KindInvalid {
		expected[demanded] = struct{}{}
	}
	for dp, rejectedAt := range r.rejectedAt {
		if rejectedAt != gen {
			continue
		}
		for _, k := range dispatchTable[dp].kinds {
			expected[k] = struct{}{}
		}
	}

	kinds := make([]token.Kind, 0, len(expected))
	for k := range expected {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool {
		return kinds[i] < kinds[j]
	})

	return &SyntaxError{
		Token:         tok,
		ExpectedKinds: kinds,
	}
}
