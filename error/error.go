package error

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nihei9/javalyzer/token"
)

// SourceError locates an error in a source file. It prints the offending line below the message with a caret
// under the column.
type SourceError struct {
	Cause      error
	FilePath   string
	SourceName string
	Row        int
	Col        int

	// Source is the content of the file. When it is nil, the offending line is read from FilePath.
	Source []byte
}

func (e *SourceError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 {
		if e.Col != 0 {
			fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
		} else {
			fmt.Fprintf(&b, "%v: ", e.Row)
		}
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)

	line := e.readLine()
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
		if e.Col > 0 {
			fmt.Fprintf(&b, "\n    %v^", caretIndent(line, e.Col))
		}
	}

	return b.String()
}

func (e *SourceError) Unwrap() error {
	return e.Cause
}

type positioned interface {
	Position() token.Position
}

// Locate wraps err in a SourceError when err carries a token position. Other errors are returned as they are.
func Locate(err error, sourceName string, filePath string, src []byte) error {
	var p positioned
	if !errors.As(err, &p) {
		return err
	}
	pos := p.Position()
	return &SourceError{
		Cause:      err,
		FilePath:   filePath,
		SourceName: sourceName,
		Row:        pos.Row,
		Col:        pos.Col,
		Source:     src,
	}
}

func (e *SourceError) readLine() string {
	if e.Row <= 0 {
		return ""
	}
	if e.Source != nil {
		return readLine(bytes.NewReader(e.Source), e.Row)
	}
	if e.FilePath == "" {
		return ""
	}

	f, err := os.Open(e.FilePath)
	if err != nil {
		return ""
	}
	defer f.Close()
	return readLine(f, e.Row)
}

func readLine(r io.Reader, row int) string {
	i := 1
	s := bufio.NewScanner(r)
	for s.Scan() {
		if i == row {
			return strings.TrimRight(s.Text(), "\r")
		}
		i++
	}

	return ""
}

// caretIndent keeps tabs preceding the column so that the caret lines up however tabs are rendered.
func caretIndent(line string, col int) string {
	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= col {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	return b.String()
}
