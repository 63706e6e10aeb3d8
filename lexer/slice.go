package lexer

import "github.com/nihei9/javalyzer/token"

// SliceSource replays a fixed sequence of tokens. When the sequence runs out, or when it contains an EOF token,
// it returns EOF tokens from then on. A SliceSource never modifies the slice, so one slice can feed any number
// of sources.
type SliceSource struct {
	toks []*token.Token
	next int
	eof  *token.Token
}

func NewSliceSource(toks []*token.Token) *SliceSource {
	return &SliceSource{
		toks: toks,
	}
}

func (s *SliceSource) Next() (*token.Token, error) {
	if s.eof != nil {
		return s.eof, nil
	}
	if s.next >= len(s.toks) {
		var pos token.Position
		if len(s.toks) > 0 {
			pos = s.toks[len(s.toks)-1].Pos
		}
		s.eof = token.NewEOF(pos)
		return s.eof, nil
	}
	tok := s.toks[s.next]
	s.next++
	if tok.Kind == token.KindEOF {
		s.eof = tok
	}
	return tok, nil
}
