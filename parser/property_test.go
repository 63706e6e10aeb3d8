package parser

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/nihei9/javalyzer/lexer"
	"github.com/nihei9/javalyzer/token"
)

// programGenerator derives random sentences from the grammar. depth bounds the nesting of statements and
// parenthesized expressions so that every derivation terminates.
type programGenerator struct {
	r     *rand.Rand
	b     strings.Builder
	depth int
}

func newProgramGenerator(seed int64) *programGenerator {
	return &programGenerator{
		r: rand.New(rand.NewSource(seed)),
	}
}

func (g *programGenerator) generate() string {
	g.b.Reset()
	n := g.r.Intn(3)
	for i := 0; i < n; i++ {
		g.classDecl()
	}
	return g.b.String()
}

func (g *programGenerator) write(lexemes ...string) {
	for _, l := range lexemes {
		g.b.WriteString(l)
		g.b.WriteString(" ")
	}
}

func (g *programGenerator) ident() string {
	ids := []string{"a", "b", "x", "y", "count", "_tmp", "classy", "iff"}
	return ids[g.r.Intn(len(ids))]
}

func (g *programGenerator) classDecl() {
	g.write("class", g.ident())
	g.block()
}

func (g *programGenerator) block() {
	g.write("{")
	if g.depth < 3 {
		g.depth++
		n := g.r.Intn(4)
		for i := 0; i < n; i++ {
			g.statement()
		}
		g.depth--
	}
	g.write("}")
}

func (g *programGenerator) statement() {
	switch g.r.Intn(4) {
	case 0:
		g.write("int", g.ident(), "=")
		g.expr()
		g.write(";")
	case 1:
		g.write("if", "(")
		g.expr()
		g.write(")")
		g.block()
		if g.r.Intn(2) == 0 {
			g.write("else")
			g.block()
		}
	case 2:
		g.write("while", "(")
		g.expr()
		g.write(")")
		g.block()
	default:
		g.expr()
		g.write(";")
	}
}

func (g *programGenerator) expr() {
	g.binary([]string{"=="}, g.logicalAnd)
}

func (g *programGenerator) logicalAnd() {
	g.binary([]string{"<", ">"}, g.equality)
}

func (g *programGenerator) equality() {
	g.binary([]string{"=="}, g.additive)
}

func (g *programGenerator) additive() {
	g.binary([]string{"+", "-"}, g.multiplicative)
}

func (g *programGenerator) multiplicative() {
	g.binary([]string{"*", "/"}, g.factor)
}

func (g *programGenerator) binary(ops []string, operand func()) {
	operand()
	for g.r.Intn(4) == 0 {
		g.write(ops[g.r.Intn(len(ops))])
		operand()
	}
}

func (g *programGenerator) factor() {
	n := 2
	if g.depth < 4 {
		n = 3
	}
	switch g.r.Intn(n) {
	case 0:
		g.write(g.ident())
	case 1:
		g.write(fmt.Sprint(g.r.Intn(1000)))
	default:
		g.depth++
		g.write("(")
		g.expr()
		g.write(")")
		g.depth--
	}
}

const generatedProgramCount = 300

func generatedPrograms(t *testing.T) [][]*token.Token {
	t.Helper()

	g := newProgramGenerator(1)
	progs := make([][]*token.Token, 0, generatedProgramCount)
	for i := 0; i < generatedProgramCount; i++ {
		src := g.generate()
		toks, err := lexer.Tokenize(strings.NewReader(src))
		if err != nil {
			t.Fatalf("cannot tokenize a generated program: %v\n%v", err, src)
		}
		progs = append(progs, toks)
	}
	return progs
}

func TestParse_GeneratedProgramsAreAccepted(t *testing.T) {
	for _, toks := range generatedPrograms(t) {
		rec := &traceRecorder{}
		err := Parse(lexer.NewSliceSource(toks), Trace(rec))
		if err != nil {
			t.Fatalf("a generated program was rejected: %v\n%v", err, joinTokens(toks))
		}

		// Every token, including EOF, is consumed exactly once and in order, however many times the speculative
		// predicate ran.
		if len(rec.records) != len(toks) {
			t.Fatalf("unexpected trace length; want: %v, got: %v\n%v", len(toks), len(rec.records), joinTokens(toks))
		}
		for i, tok := range toks {
			r := rec.records[i]
			if r.kind != tok.Kind || r.text != tok.Text {
				t.Fatalf("unexpected trace record #%v; want: %v, got: %v %#v", i, tok.Describe(), r.kind, r.text)
			}
		}
	}
}

func TestParse_TruncatedProgramsAreRejected(t *testing.T) {
	for _, toks := range generatedPrograms(t) {
		// toks ends with EOF. Drop the last token preceding it.
		if len(toks) < 2 {
			continue
		}
		truncated := toks[:len(toks)-2]

		err := Parse(lexer.NewSliceSource(truncated))
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("a syntax error was expected; got: %v\n%v", err, joinTokens(truncated))
		}
		if len(synErr.ExpectedKinds) == 0 {
			t.Fatalf("the expected kinds must not be empty\n%v", joinTokens(truncated))
		}
		if synErr.Token.Kind != token.KindEOF {
			t.Fatalf("the error must be reported at EOF; got: %v", synErr.Token.Describe())
		}
		if !synErr.Expects(token.KindRBrace) {
			t.Fatalf("RBRACE must be expected; got: %v", synErr.ExpectedKinds)
		}
	}
}

func TestParse_IsIdempotent(t *testing.T) {
	progs := generatedPrograms(t)
	for i, toks := range progs {
		// Make half of the inputs invalid to compare rejections as well.
		if i%2 == 1 && len(toks) > 2 {
			toks = toks[:len(toks)/2]
		}

		rec1 := &traceRecorder{}
		err1 := Parse(lexer.NewSliceSource(toks), Trace(rec1))
		rec2 := &traceRecorder{}
		err2 := Parse(lexer.NewSliceSource(toks), Trace(rec2))

		if fmt.Sprint(err1) != fmt.Sprint(err2) {
			t.Fatalf("verdicts differ; first: %v, second: %v", err1, err2)
		}
		testTrace(t, rec1.records, rec2.records)
	}
}

func joinTokens(toks []*token.Token) string {
	var b strings.Builder
	for _, tok := range toks {
		if tok.Kind == token.KindEOF {
			continue
		}
		fmt.Fprintf(&b, "%v ", tok.Text)
	}
	return b.String()
}
