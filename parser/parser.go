package parser

import (
	"io"

	"github.com/nihei9/javalyzer/lexer"
	"github.com/nihei9/javalyzer/token"
)

type ParserOption func(p *parser) error

// Trace makes the parser notify sink of every consumed terminal.
func Trace(sink TraceSink) ParserOption {
	return func(p *parser) error {
		p.sink = sink
		return nil
	}
}

// Parse reads src up to and including the EOF token and reports whether it is a valid program. It returns
// a *SyntaxError when the program is rejected. Errors of src are returned as they are.
func Parse(src lexer.TokenSource, opts ...ParserOption) error {
	p := &parser{
		c:   newCursor(src),
		rep: newErrorReporter(),
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return err
		}
	}
	return p.parse()
}

// ParseReader tokenizes src with the default lexer and parses it.
func ParseReader(src io.Reader, opts ...ParserOption) error {
	lex, err := lexer.NewLexer(src)
	if err != nil {
		return err
	}
	return Parse(lex, opts...)
}

// bailout carries an error out of the recursive descent to parse.
type bailout struct {
	err error
}

func bail(err error) {
	panic(bailout{err: err})
}

type parser struct {
	c    *cursor
	rep  *errorReporter
	sink TraceSink
}

func (p *parser) parse() (retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		b, ok := v.(bailout)
		if !ok {
			panic(v)
		}
		retErr = b.err
	}()

	p.parseStart()
	return nil
}

// Start := ClassDecl* EOF
func (p *parser) parseStart() {
	for p.guard(dpStartLoop) {
		p.parseClassDecl()
	}
	p.consume(token.KindEOF)
}

// ClassDecl := CLASS IDENT LBRACE Statement* RBRACE
func (p *parser) parseClassDecl() {
	p.consume(token.KindClass)
	p.consume(token.KindIdent)
	p.parseBlock()
}

// parseBlock parses `LBRACE Statement* RBRACE`, the body shared by classes, conditionals, and loops.
func (p *parser) parseBlock() {
	p.consume(token.KindLBrace)
	for p.guard(dpBlockLoop) {
		p.parseStatement()
	}
	p.consume(token.KindRBrace)
}

// Statement := VarDecl | IfStmt | WhileStmt | ExprStmt
func (p *parser) parseStatement() {
	switch p.c.peekKind() {
	case token.KindInt:
		p.parseVarDecl()
	case token.KindIf:
		p.parseIfStmt()
	case token.KindWhile:
		p.parseWhileStmt()
	case token.KindIdent, token.KindIntLiteral, token.KindLParen:
		p.parseExprStmt()
	default:
		p.rejectDispatch(dpStatement)
	}
}

// VarDecl := INT IDENT ASSIGN Expr SEMI
func (p *parser) parseVarDecl() {
	p.consume(token.KindInt)
	p.consume(token.KindIdent)
	p.consume(token.KindAssign)
	p.parseExpr()
	p.consume(token.KindSemicolon)
}

// IfStmt := IF LPAREN Expr RPAREN LBRACE Statement* RBRACE (ELSE LBRACE Statement* RBRACE)?
func (p *parser) parseIfStmt() {
	p.consume(token.KindIf)
	p.consume(token.KindLParen)
	p.parseExpr()
	p.consume(token.KindRParen)
	p.parseBlock()
	if p.guard(dpElse) {
		p.consume(token.KindElse)
		p.parseBlock()
	}
}

// WhileStmt := WHILE LPAREN Expr RPAREN LBRACE Statement* RBRACE
func (p *parser) parseWhileStmt() {
	p.consume(token.KindWhile)
	p.consume(token.KindLParen)
	p.parseExpr()
	p.consume(token.KindRParen)
	p.parseBlock()
}

// ExprStmt := Expr SEMI
func (p *parser) parseExprStmt() {
	p.parseExpr()
	p.consume(token.KindSemicolon)
}

// Expr := LogicalOr
func (p *parser) parseExpr() {
	p.parseLogicalOr()
}

// LogicalOr := LogicalAnd ( lookahead(EQ, FactorStart) EQ LogicalAnd )*
//
// Equality consumes every EQ it sees, so the repetition is guarded by a speculative scan instead of the
// lookahead kind alone.
func (p *parser) parseLogicalOr() {
	p.parseLogicalAnd()
	for p.continuesLogicalOr() {
		p.consume(token.KindEq)
		p.parseLogicalAnd()
	}
}

func (p *parser) continuesLogicalOr() bool {
	r := newSpeculation(p.c, lookaheadBudget).logicalOrContinuation()
	if r == notMatched {
		p.rep.reject(dpLogicalOrPredicate, p.c.gen)
		return false
	}
	return true
}

// LogicalAnd := Equality ( (LT|GT) Equality )*
func (p *parser) parseLogicalAnd() {
	p.parseEquality()
	for p.guard(dpRelationalLoop) {
		p.consumeOneOf(dpRelationalOp)
		p.parseEquality()
	}
}

// Equality := Additive ( EQ Additive )*
func (p *parser) parseEquality() {
	p.parseAdditive()
	for p.guard(dpEqualityLoop) {
		p.consume(token.KindEq)
		p.parseAdditive()
	}
}

// Additive := Multiplicative ( (PLUS|MINUS) Multiplicative )*
func (p *parser) parseAdditive() {
	p.parseMultiplicative()
	for p.guard(dpAdditiveLoop) {
		p.consumeOneOf(dpAdditiveOp)
		p.parseMultiplicative()
	}
}

// Multiplicative := Factor ( (TIMES|DIVIDE) Factor )*
func (p *parser) parseMultiplicative() {
	p.parseFactor()
	for p.guard(dpMultiplicativeLoop) {
		p.consumeOneOf(dpMultiplicativeOp)
		p.parseFactor()
	}
}

// Factor := IDENT | INT_LITERAL | LPAREN Expr RPAREN
func (p *parser) parseFactor() {
	switch p.c.peekKind() {
	case token.KindIdent:
		p.consume(token.KindIdent)
	case token.KindIntLiteral:
		p.consume(token.KindIntLiteral)
	case token.KindLParen:
		p.consume(token.KindLParen)
		p.parseExpr()
		p.consume(token.KindRParen)
	default:
		p.rejectDispatch(dpFactor)
	}
}

// guard reports whether the lookahead selects the decision point's alternative. A rejection is recorded for
// error reporting.
func (p *parser) guard(dp decisionPoint) bool {
	if dispatchTable[dp].contains(p.c.peekKind()) {
		return true
	}
	p.rep.reject(dp, p.c.gen)
	return false
}

func (p *parser) consume(expected token.Kind) *token.Token {
	if p.c.peekKind() != expected {
		bail(p.rep.syntaxError(p.c.peek(), expected, p.c.gen))
	}
	tok := p.c.advance()
	if p.sink != nil {
		p.sink.Consume(tok.Kind.String(), tok)
	}
	return tok
}

// consumeOneOf consumes a terminal belonging to the decision point's first-set.
func (p *parser) consumeOneOf(dp decisionPoint) *token.Token {
	kind := p.c.peekKind()
	if !dispatchTable[dp].contains(kind) {
		p.rejectDispatch(dp)
	}
	return p.consume(kind)
}

func (p *parser) rejectDispatch(dp decisionPoint) {
	p.rep.reject(dp, p.c.gen)
	bail(p.rep.syntaxError(p.c.peek(), token.KindInvalid, p.c.gen))
}
