package lexer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/nihei9/javalyzer/token"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
)

// TokenSource produces tokens one at a time. Once it returns the EOF token, it keeps returning EOF tokens.
type TokenSource interface {
	Next() (*token.Token, error)
}

// InvalidTokenError is returned when the source contains a character sequence that matches no lexical kind.
type InvalidTokenError struct {
	Token *token.Token
}

func (e *InvalidTokenError) Error() string {
	return fmt.Sprintf("invalid token: %v", e.Token.Describe())
}

func (e *InvalidTokenError) Position() token.Position {
	return e.Token.Pos
}

type lexEntry struct {
	name    string
	pattern string
	literal bool
	kind    token.Kind
	skip    bool
}

// Keywords precede the identifier so that they win when both match the same lexeme.
var lexEntries = []*lexEntry{
	{name: "kw_class", pattern: "class", literal: true, kind: token.KindClass},
	{name: "kw_if", pattern: "if", literal: true, kind: token.KindIf},
	{name: "kw_else", pattern: "else", literal: true, kind: token.KindElse},
	{name: "kw_while", pattern: "while", literal: true, kind: token.KindWhile},
	{name: "kw_int", pattern: "int", literal: true, kind: token.KindInt},
	{name: "identifier", pattern: "[A-Za-z_][0-9A-Za-z_]*", kind: token.KindIdent},
	{name: "integer_literal", pattern: "[0-9]+", kind: token.KindIntLiteral},
	{name: "l_brace", pattern: "{", literal: true, kind: token.KindLBrace},
	{name: "r_brace", pattern: "}", literal: true, kind: token.KindRBrace},
	{name: "l_paren", pattern: "(", literal: true, kind: token.KindLParen},
	{name: "r_paren", pattern: ")", literal: true, kind: token.KindRParen},
	{name: "eq", pattern: "==", literal: true, kind: token.KindEq},
	{name: "assign", pattern: "=", literal: true, kind: token.KindAssign},
	{name: "semicolon", pattern: ";", literal: true, kind: token.KindSemicolon},
	{name: "lt", pattern: "<", literal: true, kind: token.KindLT},
	{name: "gt", pattern: ">", literal: true, kind: token.KindGT},
	{name: "plus", pattern: "+", literal: true, kind: token.KindPlus},
	{name: "minus", pattern: "-", literal: true, kind: token.KindMinus},
	{name: "times", pattern: "*", literal: true, kind: token.KindTimes},
	{name: "divide", pattern: "/", literal: true, kind: token.KindDivide},
	{name: "white_space", pattern: `[\u{0009}\u{000A}\u{000D}\u{0020}]+`, skip: true},
	{name: "line_comment", pattern: `//[^\u{000A}]*`, skip: true},
}

type compiledLexSpec struct {
	spec  *mlspec.CompiledLexSpec
	kinds []token.Kind
	skip  []bool
}

var (
	compileOnce sync.Once
	compiled    *compiledLexSpec
	compileErr  error
)

// lexSpec compiles the lexical specification on first use. The result is shared by all lexers and is never modified.
func lexSpec() (*compiledLexSpec, error) {
	compileOnce.Do(func() {
		compiled, compileErr = compileLexSpec(lexEntries)
	})
	return compiled, compileErr
}

const lexSpecName = "javalyzer"

func compileLexSpec(entries []*lexEntry) (*compiledLexSpec, error) {
	es := make([]*mlspec.LexEntry, len(entries))
	byName := map[string]*lexEntry{}
	for i, e := range entries {
		pattern := e.pattern
		if e.literal {
			pattern = mlspec.EscapePattern(e.pattern)
		}
		es[i] = &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(e.name),
			Pattern: mlspec.LexPattern(pattern),
		}
		byName[e.name] = e
	}

	s, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Name:    lexSpecName,
		Entries: es,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cerr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cerr)
			}
			return nil, fmt.Errorf("cannot compile the lexical specification: %v", b.String())
		}
		return nil, fmt.Errorf("cannot compile the lexical specification: %w", err)
	}

	kinds := make([]token.Kind, len(s.KindNames))
	skip := make([]bool, len(s.KindNames))
	for id, name := range s.KindNames {
		if name == mlspec.LexKindNameNil {
			kinds[id] = token.KindInvalid
			continue
		}
		e, ok := byName[name.String()]
		if !ok {
			return nil, fmt.Errorf("lexical kind '%v' has no corresponding token kind", name)
		}
		kinds[id] = e.kind
		skip[id] = e.skip
	}

	return &compiledLexSpec{
		spec:  s,
		kinds: kinds,
		skip:  skip,
	}, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

// Lexer is a TokenSource reading the toy language. White spaces and line comments are skipped.
type Lexer struct {
	s   *compiledLexSpec
	d   *mldriver.Lexer
	eof *token.Token
}

func NewLexer(src io.Reader) (*Lexer, error) {
	s, err := lexSpec()
	if err != nil {
		return nil, err
	}
	d, err := mldriver.NewLexer(mldriver.NewLexSpec(s.spec), src)
	if err != nil {
		return nil, err
	}
	return &Lexer{
		s: s,
		d: d,
	}, nil
}

func (l *Lexer) Next() (*token.Token, error) {
	if l.eof != nil {
		return l.eof, nil
	}

	for {
		tok, err := l.d.Next()
		if err != nil {
			return nil, err
		}
		pos := token.NewPosition(tok.Row+1, tok.Col+1)
		if tok.EOF {
			l.eof = token.NewEOF(pos)
			return l.eof, nil
		}
		if tok.Invalid {
			return nil, &InvalidTokenError{
				Token: token.New(token.KindInvalid, string(tok.Lexeme), pos),
			}
		}
		if l.s.skip[tok.KindID] {
			continue
		}

		return token.New(l.s.kinds[tok.KindID], string(tok.Lexeme), pos), nil
	}
}

// Tokenize reads all tokens of src including the trailing EOF token.
func Tokenize(src io.Reader) ([]*token.Token, error) {
	l, err := NewLexer(src)
	if err != nil {
		return nil, err
	}
	var toks []*token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Kind == token.KindEOF {
			return toks, nil
		}
	}
}
