package trace

import (
	"fmt"
	"io"

	"github.com/nihei9/javalyzer/parser"
	"github.com/nihei9/javalyzer/token"
)

const (
	tableRule     = "-------------------------------------------"
	tableRowFmt   = "|  %-20s | %-15s |\n"
	eofTokenImage = "<eof>"
)

// TableWriter prints consumed tokens as a two-column table. The header is printed once, right before the
// first row, so nothing is printed for a parse that consumes no token.
type TableWriter struct {
	w             io.Writer
	headerWritten bool
	err           error
}

func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{
		w: w,
	}
}

func (t *TableWriter) Consume(role string, tok *token.Token) {
	if t.err != nil {
		return
	}
	if !t.headerWritten {
		t.printf("%v\n", tableRule)
		t.printf(tableRowFmt, "Token Type", "Token Image")
		t.printf("%v\n", tableRule)
		t.headerWritten = true
	}
	image := tok.Text
	if tok.Kind == token.KindEOF {
		image = eofTokenImage
	}
	t.printf(tableRowFmt, role, image)
}

// Close prints the bottom rule of the table when at least one row was printed. It returns the first write
// error; rows following a failed write are dropped.
func (t *TableWriter) Close() error {
	if t.headerWritten {
		t.printf("%v\n", tableRule)
	}
	return t.err
}

func (t *TableWriter) printf(format string, a ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, a...)
}

type Record struct {
	Role string     `json:"role" yaml:"role"`
	Kind token.Kind `json:"kind" yaml:"kind"`
	Text string     `json:"text" yaml:"text"`
	Row  int        `json:"row" yaml:"row"`
	Col  int        `json:"col" yaml:"col"`
}

// Recorder keeps consumed tokens in memory.
type Recorder struct {
	Records []*Record
}

func (r *Recorder) Consume(role string, tok *token.Token) {
	r.Records = append(r.Records, &Record{
		Role: role,
		Kind: tok.Kind,
		Text: tok.Text,
		Row:  tok.Pos.Row,
		Col:  tok.Pos.Col,
	})
}

type tee []parser.TraceSink

// Tee returns a sink that forwards every token to all of sinks in order.
func Tee(sinks ...parser.TraceSink) parser.TraceSink {
	return tee(sinks)
}

func (t tee) Consume(role string, tok *token.Token) {
	for _, s := range t {
		s.Consume(role, tok)
	}
}
