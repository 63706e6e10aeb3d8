package token

import "fmt"

// Kind is a kind of a token. The set of kinds is closed; the zero value is KindInvalid.
type Kind int

const (
	KindInvalid Kind = iota
	KindClass
	KindIdent
	KindLBrace
	KindRBrace
	KindIf
	KindElse
	KindWhile
	KindInt
	KindIntLiteral
	KindLParen
	KindRParen
	KindAssign
	KindSemicolon
	KindEq
	KindLT
	KindGT
	KindPlus
	KindMinus
	KindTimes
	KindDivide
	KindEOF

	kindCount
)

var kindNames = [kindCount]string{
	KindInvalid:    "INVALID",
	KindClass:      "CLASS",
	KindIdent:      "IDENT",
	KindLBrace:     "LBRACE",
	KindRBrace:     "RBRACE",
	KindIf:         "IF",
	KindElse:       "ELSE",
	KindWhile:      "WHILE",
	KindInt:        "INT",
	KindIntLiteral: "INT_LITERAL",
	KindLParen:     "LPAREN",
	KindRParen:     "RPAREN",
	KindAssign:     "ASSIGN",
	KindSemicolon:  "SEMICOLON",
	KindEq:         "EQ",
	KindLT:         "LT",
	KindGT:         "GT",
	KindPlus:       "PLUS",
	KindMinus:      "MINUS",
	KindTimes:      "TIMES",
	KindDivide:     "DIVIDE",
	KindEOF:        "EOF",
}

func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Kinds returns all kinds of the alphabet in declaration order, excluding KindInvalid.
func Kinds() []Kind {
	ks := make([]Kind, 0, kindCount-1)
	for k := KindInvalid + 1; k < kindCount; k++ {
		ks = append(ks, k)
	}
	return ks
}

// KindByName looks up a kind by the name returned by Kind.String.
func KindByName(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return Kind(k), true
		}
	}
	return KindInvalid, false
}

// MarshalText encodes a kind as its name so that reports show `PLUS` rather than a number.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	kind, ok := KindByName(string(text))
	if !ok {
		return fmt.Errorf("unknown token kind: %s", text)
	}
	*k = kind
	return nil
}

type Position struct {
	Row int
	Col int
}

func NewPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

func (p Position) String() string {
	return fmt.Sprintf("%v:%v", p.Row, p.Col)
}

// Token is an immutable lexeme. Pos is 1-based; the zero Position means the position is unknown.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

func New(kind Kind, text string, pos Position) *Token {
	return &Token{
		Kind: kind,
		Text: text,
		Pos:  pos,
	}
}

func NewEOF(pos Position) *Token {
	return &Token{
		Kind: KindEOF,
		Pos:  pos,
	}
}

// Describe returns a short human-readable form used in diagnostics.
func (t *Token) Describe() string {
	switch t.Kind {
	case KindEOF:
		return "<eof>"
	case KindInvalid:
		return fmt.Sprintf("'%v' (<invalid>)", t.Text)
	}
	return fmt.Sprintf("'%v' (%v)", t.Text, t.Kind)
}
