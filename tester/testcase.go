package tester

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/nihei9/javalyzer/token"
)

// TestCase is a source and its expected verdict. A test case file consists of three parts separated by lines
// of hyphens: a description, a source, and an outcome.
//
//	a missing initializer is rejected
//	---
//	class A { int x = ; }
//	---
//	reject SEMICOLON
//	expected: IDENT, INT_LITERAL, LPAREN
//
// The outcome is either `accept` or `reject`. `reject` may name the kind of the offending token, and an
// `expected:` line may list the kinds the parser must report as acceptable.
type TestCase struct {
	Description string
	Source      []byte
	Accept      bool

	// ErrorKind is the kind of the offending token, or token.KindInvalid when the test case doesn't care.
	ErrorKind token.Kind

	// ExpectedKinds is nil when the test case doesn't care.
	ExpectedKinds []token.Kind
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just three parts: %v parts found", len(parts))
	}

	c := &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
	}
	err = parseOutcome(c, string(parts[2].buf), parts[0].lineCount+parts[1].lineCount+2)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func parseOutcome(c *TestCase, src string, lineOffset int) error {
	var lines []string
	var rows []int
	for i, l := range strings.Split(src, "\n") {
		l = strings.TrimSpace(l)
		if l == "" {
			continue
		}
		lines = append(lines, l)
		rows = append(rows, lineOffset+i+1)
	}
	if len(lines) == 0 {
		return fmt.Errorf("an outcome is missing: write `accept` or `reject`")
	}

	fields := strings.Fields(lines[0])
	switch fields[0] {
	case "accept":
		if len(fields) > 1 || len(lines) > 1 {
			return fmt.Errorf("%v: an accepting outcome takes no parameter", rows[0])
		}
		c.Accept = true
		return nil
	case "reject":
		if len(fields) > 2 {
			return fmt.Errorf("%v: too many parameters: %v", rows[0], lines[0])
		}
		if len(fields) == 2 {
			k, ok := token.KindByName(fields[1])
			if !ok {
				return fmt.Errorf("%v: unknown token kind: %v", rows[0], fields[1])
			}
			c.ErrorKind = k
		}
	default:
		return fmt.Errorf("%v: an outcome must be `accept` or `reject`: %v", rows[0], lines[0])
	}

	for i, l := range lines[1:] {
		row := rows[i+1]
		if !strings.HasPrefix(l, "expected:") {
			return fmt.Errorf("%v: unknown line: %v", row, l)
		}
		if c.ExpectedKinds != nil {
			return fmt.Errorf("%v: expected kinds are specified twice", row)
		}
		c.ExpectedKinds = []token.Kind{}
		for _, name := range strings.Split(strings.TrimPrefix(l, "expected:"), ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			k, ok := token.KindByName(name)
			if !ok {
				return fmt.Errorf("%v: unknown token kind: %v", row, name)
			}
			c.ExpectedKinds = append(c.ExpectedKinds, k)
		}
	}
	return nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	buf.Write(line)
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		buf.WriteByte('\n')
		buf.Write(line)
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}
