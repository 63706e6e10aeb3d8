package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nihei9/javalyzer/lexer"
	"github.com/nihei9/javalyzer/parser"
	"github.com/nihei9/javalyzer/token"
	"github.com/nihei9/javalyzer/trace"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatText = Format("text")
	FormatJSON = Format("json")
	FormatYAML = Format("yaml")
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	}
	return "", fmt.Errorf("unknown format: %v (available formats: %v, %v, %v)", s, FormatText, FormatJSON, FormatYAML)
}

type DiagnosticKind string

const (
	DiagnosticKindSyntax  = DiagnosticKind("syntax")
	DiagnosticKindLexical = DiagnosticKind("lexical")
)

type Diagnostic struct {
	Kind      DiagnosticKind `json:"kind" yaml:"kind"`
	Message   string         `json:"message" yaml:"message"`
	TokenKind token.Kind     `json:"token_kind" yaml:"token_kind"`
	TokenText string         `json:"token_text" yaml:"token_text"`
	Row       int            `json:"row" yaml:"row"`
	Col       int            `json:"col" yaml:"col"`
	Expected  []token.Kind   `json:"expected,omitempty" yaml:"expected,omitempty"`
}

// Report is the verdict of one validation.
type Report struct {
	Source   string          `json:"source" yaml:"source"`
	Accepted bool            `json:"accepted" yaml:"accepted"`
	Trace    []*trace.Record `json:"trace,omitempty" yaml:"trace,omitempty"`
	Error    *Diagnostic     `json:"error,omitempty" yaml:"error,omitempty"`
}

// New builds a report from the result of a parse. Syntax and lexical errors become a diagnostic of a rejecting
// report; any other error means the validation itself failed and is returned.
func New(source string, records []*trace.Record, parseErr error) (*Report, error) {
	r := &Report{
		Source: source,
		Trace:  records,
	}
	if parseErr == nil {
		r.Accepted = true
		return r, nil
	}

	var synErr *parser.SyntaxError
	var invErr *lexer.InvalidTokenError
	switch {
	case errors.As(parseErr, &synErr):
		r.Error = newDiagnostic(DiagnosticKindSyntax, parseErr, synErr.Token)
		r.Error.Expected = synErr.ExpectedKinds
	case errors.As(parseErr, &invErr):
		r.Error = newDiagnostic(DiagnosticKindLexical, parseErr, invErr.Token)
	default:
		return nil, parseErr
	}
	return r, nil
}

func newDiagnostic(kind DiagnosticKind, err error, tok *token.Token) *Diagnostic {
	return &Diagnostic{
		Kind:      kind,
		Message:   err.Error(),
		TokenKind: tok.Kind,
		TokenText: tok.Text,
		Row:       tok.Pos.Row,
		Col:       tok.Pos.Col,
	}
}

func (r *Report) Write(w io.Writer, f Format) error {
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", b)
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(r)
		if err != nil {
			return err
		}
		return enc.Close()
	case FormatText:
		return r.writeText(w)
	}
	return fmt.Errorf("unknown format: %v", f)
}

const (
	bannerFrame = "*******************************************"
	bannerWidth = len(bannerFrame) - 2
)

// writeText prints the verdict banner and the diagnostic. The trace is left out because text output streams it
// with trace.TableWriter while parsing.
func (r *Report) writeText(w io.Writer) error {
	re := lipgloss.NewRenderer(w)
	style := re.NewStyle().Width(bannerWidth).Align(lipgloss.Center).Bold(true)
	var msg string
	if r.Accepted {
		style = style.Foreground(lipgloss.Color("2"))
		msg = "Syntax validation successful."
	} else {
		style = style.Foreground(lipgloss.Color("1"))
		msg = "Syntax validation failed."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v\n", bannerFrame)
	fmt.Fprintf(&b, "*%v*\n", style.Render(msg))
	fmt.Fprintf(&b, "%v\n", bannerFrame)
	if r.Error != nil {
		fmt.Fprintf(&b, "%v\n", r.Error.Message)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
