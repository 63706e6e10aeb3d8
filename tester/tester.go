package tester

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nihei9/javalyzer/parser"
	"github.com/nihei9/javalyzer/token"
)

// TestCaseExt is the extension of test case files. ListTestCases ignores other files in directories.
const TestCaseExt = ".case"

type TestResult struct {
	TestCasePath string
	Error        error
	Diffs        []string
}

func (r *TestResult) String() string {
	if r.Error != nil {
		const indent1 = "    "
		const indent2 = indent1 + indent1

		msgLines := strings.Split(r.Error.Error(), "\n")
		msg := fmt.Sprintf("Failed %v:\n%v%v", r.TestCasePath, indent1, strings.Join(msgLines, "\n"+indent1))
		if len(r.Diffs) == 0 {
			return msg
		}
		return fmt.Sprintf("%v\n%v%v", msg, indent2, strings.Join(r.Diffs, "\n"+indent2))
	}
	return fmt.Sprintf("Passed %v", r.TestCasePath)
}

type TestCaseWithMetadata struct {
	TestCase *TestCase
	FilePath string
	Error    error
}

// ListTestCases reads the test case at testPath, or, when testPath is a directory, all test case files under it.
func ListTestCases(testPath string) []*TestCaseWithMetadata {
	fi, err := os.Stat(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	if !fi.IsDir() {
		c, err := parseTestCase(testPath)
		return []*TestCaseWithMetadata{
			{
				TestCase: c,
				FilePath: testPath,
				Error:    err,
			},
		}
	}

	es, err := os.ReadDir(testPath)
	if err != nil {
		return []*TestCaseWithMetadata{
			{
				FilePath: testPath,
				Error:    err,
			},
		}
	}
	var cases []*TestCaseWithMetadata
	for _, e := range es {
		if !e.IsDir() && filepath.Ext(e.Name()) != TestCaseExt {
			continue
		}
		cs := ListTestCases(filepath.Join(testPath, e.Name()))
		cases = append(cases, cs...)
	}
	return cases
}

func parseTestCase(testCasePath string) (*TestCase, error) {
	f, err := os.Open(testCasePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseTestCase(f)
}

type Tester struct {
	Cases []*TestCaseWithMetadata
}

func (t *Tester) Run() []*TestResult {
	var rs []*TestResult
	for _, c := range t.Cases {
		rs = append(rs, runTest(c))
	}
	return rs
}

func runTest(c *TestCaseWithMetadata) *TestResult {
	err := parser.ParseReader(bytes.NewReader(c.TestCase.Source))
	if c.TestCase.Accept {
		if err != nil {
			return &TestResult{
				TestCasePath: c.FilePath,
				Error:        fmt.Errorf("the source was rejected: %w", err),
			}
		}
		return &TestResult{
			TestCasePath: c.FilePath,
		}
	}

	if err == nil {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        errors.New("the source was accepted"),
		}
	}
	var synErr *parser.SyntaxError
	if !errors.As(err, &synErr) {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("a syntax error was expected: %w", err),
		}
	}

	var diffs []string
	if c.TestCase.ErrorKind != token.KindInvalid && synErr.Token.Kind != c.TestCase.ErrorKind {
		diffs = append(diffs, fmt.Sprintf("offending token: expected: %v, actual: %v", c.TestCase.ErrorKind, synErr.Token.Kind))
	}
	if c.TestCase.ExpectedKinds != nil {
		missing, unexpected := diffKinds(c.TestCase.ExpectedKinds, synErr.ExpectedKinds)
		if len(missing) > 0 {
			diffs = append(diffs, fmt.Sprintf("expected kinds: missing: %v", kindsString(missing)))
		}
		if len(unexpected) > 0 {
			diffs = append(diffs, fmt.Sprintf("expected kinds: unexpected: %v", kindsString(unexpected)))
		}
	}
	if len(diffs) > 0 {
		return &TestResult{
			TestCasePath: c.FilePath,
			Error:        fmt.Errorf("syntax error mismatch: %w", err),
			Diffs:        diffs,
		}
	}
	return &TestResult{
		TestCasePath: c.FilePath,
	}
}

func diffKinds(expected, actual []token.Kind) (missing []token.Kind, unexpected []token.Kind) {
	in := func(k token.Kind, ks []token.Kind) bool {
		for _, x := range ks {
			if x == k {
				return true
			}
		}
		return false
	}
	for _, k := range expected {
		if !in(k, actual) {
			missing = append(missing, k)
		}
	}
	for _, k := range actual {
		if !in(k, expected) {
			unexpected = append(unexpected, k)
		}
	}
	return missing, unexpected
}

func kindsString(ks []token.Kind) string {
	names := make([]string, len(ks))
	for i, k := range ks {
		names[i] = k.String()
	}
	return strings.Join(names, ", ")
}
