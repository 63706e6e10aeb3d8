package parser

import (
	"github.com/nihei9/javalyzer/lexer"
	"github.com/nihei9/javalyzer/token"
)

// cursor is a lookahead pointer into a token stream. Tokens are fetched from the source lazily and cached
// so that speculative scans never request a token twice. Consumed tokens stay cached and addressable.
type cursor struct {
	src  lexer.TokenSource
	toks []*token.Token

	// pos is the index of the next token to be consumed.
	pos int

	// gen counts consumed tokens. The error reporter uses it to tell which decision points are still live.
	gen int
}

func newCursor(src lexer.TokenSource) *cursor {
	return &cursor{
		src: src,
	}
}

// tokenAt returns the token at index i, fetching tokens up to i if necessary. Indexes past the EOF token
// resolve to the EOF token.
func (c *cursor) tokenAt(i int) *token.Token {
	for len(c.toks) <= i {
		if n := len(c.toks); n > 0 && c.toks[n-1].Kind == token.KindEOF {
			return c.toks[n-1]
		}
		tok, err := c.src.Next()
		if err != nil {
			bail(err)
		}
		c.toks = append(c.toks, tok)
	}
	return c.toks[i]
}

func (c *cursor) peek() *token.Token {
	return c.tokenAt(c.pos)
}

func (c *cursor) peekKind() token.Kind {
	return c.peek().Kind
}

// advance consumes the next token and returns it.
func (c *cursor) advance() *token.Token {
	tok := c.peek()
	c.pos++
	c.gen++
	return tok
}
