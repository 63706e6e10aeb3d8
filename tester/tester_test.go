package tester

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nihei9/javalyzer/token"
)

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		caption  string
		src      string
		expected *TestCase
		error    bool
	}{
		{
			caption: "an accepting test case",
			src: `empty class
---
class A { }
---
accept
`,
			expected: &TestCase{
				Description: "empty class",
				Source:      []byte("class A { }"),
				Accept:      true,
			},
		},
		{
			caption: "a rejecting test case with an offending kind and expected kinds",
			src: `missing initializer
---
class A {
    int x = ;
}
---
reject SEMICOLON
expected: IDENT, INT_LITERAL, LPAREN
`,
			expected: &TestCase{
				Description:   "missing initializer",
				Source:        []byte("class A {\n    int x = ;\n}"),
				ErrorKind:     token.KindSemicolon,
				ExpectedKinds: []token.Kind{token.KindIdent, token.KindIntLiteral, token.KindLParen},
			},
		},
		{
			caption: "a bare rejecting outcome",
			src: `anything fails
---
}
---
reject
`,
			expected: &TestCase{
				Description: "anything fails",
				Source:      []byte("}"),
			},
		},
		{
			caption: "an empty source",
			src: `empty
---
---
accept
`,
			expected: &TestCase{
				Description: "empty",
				Source:      []byte{},
				Accept:      true,
			},
		},
		{
			caption: "too few parts",
			src: `no outcome
---
class A { }
`,
			error: true,
		},
		{
			caption: "too many parts",
			src: `a
---
b
---
accept
---
c
`,
			error: true,
		},
		{
			caption: "an unknown outcome",
			src: `a
---
class A { }
---
maybe
`,
			error: true,
		},
		{
			caption: "an unknown kind",
			src: `a
---
class A {
---
reject BRACE
`,
			error: true,
		},
		{
			caption: "an accepting outcome takes no parameter",
			src: `a
---
class A { }
---
accept EOF
`,
			error: true,
		},
		{
			caption: "an unknown line after the outcome",
			src: `a
---
class A {
---
reject EOF
because
`,
			error: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.error {
				if err == nil {
					t.Fatalf("an error is expected")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			testTestCase(t, tt.expected, c)
		})
	}
}

func testTestCase(t *testing.T, expected, actual *TestCase) {
	t.Helper()

	if actual.Description != expected.Description {
		t.Fatalf("unexpected description: want: %q, got: %q", expected.Description, actual.Description)
	}
	if string(actual.Source) != string(expected.Source) {
		t.Fatalf("unexpected source: want: %q, got: %q", expected.Source, actual.Source)
	}
	if actual.Accept != expected.Accept {
		t.Fatalf("unexpected verdict: want: %v, got: %v", expected.Accept, actual.Accept)
	}
	if actual.ErrorKind != expected.ErrorKind {
		t.Fatalf("unexpected error kind: want: %v, got: %v", expected.ErrorKind, actual.ErrorKind)
	}
	if (actual.ExpectedKinds == nil) != (expected.ExpectedKinds == nil) || len(actual.ExpectedKinds) != len(expected.ExpectedKinds) {
		t.Fatalf("unexpected expected kinds: want: %v, got: %v", expected.ExpectedKinds, actual.ExpectedKinds)
	}
	for i, k := range expected.ExpectedKinds {
		if actual.ExpectedKinds[i] != k {
			t.Fatalf("unexpected expected kinds: want: %v, got: %v", expected.ExpectedKinds, actual.ExpectedKinds)
		}
	}
}

func TestTester_Run(t *testing.T) {
	tests := []struct {
		caption string
		testSrc string
		error   bool
		diffs   int
	}{
		{
			caption: "an accepted source passes an accepting test case",
			testSrc: `Test
---
class A { int x = 1; while (x < 10) { x + 1; } }
---
accept
`,
		},
		{
			caption: "a rejected source fails an accepting test case",
			testSrc: `Test
---
class A { int x = ; }
---
accept
`,
			error: true,
		},
		{
			caption: "a rejected source passes a rejecting test case",
			testSrc: `Test
---
class A { int x = ; }
---
reject SEMICOLON
expected: LPAREN, IDENT, INT_LITERAL
`,
		},
		{
			caption: "an accepted source fails a rejecting test case",
			testSrc: `Test
---
class A { }
---
reject
`,
			error: true,
		},
		{
			caption: "a different offending token fails a test case",
			testSrc: `Test
---
class A { int x = ; }
---
reject RBRACE
`,
			error: true,
			diffs: 1,
		},
		{
			caption: "different expected kinds fail a test case",
			testSrc: `Test
---
class A { int x = ; }
---
reject SEMICOLON
expected: IDENT, EOF
`,
			error: true,
			diffs: 2,
		},
		{
			caption: "a lexical error fails a rejecting test case",
			testSrc: `Test
---
class A { @ }
---
reject
`,
			error: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			c, err := ParseTestCase(strings.NewReader(tt.testSrc))
			if err != nil {
				t.Fatal(err)
			}
			tester := &Tester{
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
						FilePath: "test.case",
					},
				},
			}
			rs := tester.Run()
			if len(rs) != 1 {
				t.Fatalf("unexpected result count: want: 1, got: %v", len(rs))
			}
			r := rs[0]
			if tt.error {
				if r.Error == nil {
					t.Fatalf("an error is expected")
				}
				if !strings.HasPrefix(r.String(), "Failed test.case:") {
					t.Fatalf("unexpected result: %v", r)
				}
			} else {
				if r.Error != nil {
					t.Fatalf("unexpected error: %v", r.Error)
				}
				if r.String() != "Passed test.case" {
					t.Fatalf("unexpected result: %v", r)
				}
			}
			if len(r.Diffs) != tt.diffs {
				t.Fatalf("unexpected diffs: want: %v, got: %v", tt.diffs, r.Diffs)
			}
		})
	}
}

func TestListTestCases(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		p := filepath.Join(dir, name)
		err := os.MkdirAll(filepath.Dir(p), 0755)
		if err != nil {
			t.Fatal(err)
		}
		err = os.WriteFile(p, []byte(content), 0644)
		if err != nil {
			t.Fatal(err)
		}
	}
	write("a.case", "a\n---\nclass A { }\n---\naccept\n")
	write("sub/b.case", "b\n---\n}\n---\nreject RBRACE\n")
	write("sub/broken.case", "broken\n---\n")
	write("README.md", "not a test case")

	cs := ListTestCases(dir)
	if len(cs) != 3 {
		t.Fatalf("unexpected test case count: want: 3, got: %v", len(cs))
	}
	broken := 0
	for _, c := range cs {
		if c.Error != nil {
			broken++
			if filepath.Base(c.FilePath) != "broken.case" {
				t.Fatalf("unexpected error: %v: %v", c.FilePath, c.Error)
			}
		}
	}
	if broken != 1 {
		t.Fatalf("unexpected broken test case count: want: 1, got: %v", broken)
	}

	cs = ListTestCases(filepath.Join(dir, "missing.case"))
	if len(cs) != 1 || cs[0].Error == nil {
		t.Fatalf("a missing path must yield an error")
	}
}

func TestTester_RunTestData(t *testing.T) {
	cs := ListTestCases("testdata")
	if len(cs) == 0 {
		t.Fatalf("no test cases found")
	}
	for _, c := range cs {
		if c.Error != nil {
			t.Fatalf("failed to read a test case: %v: %v", c.FilePath, c.Error)
		}
	}
	tester := &Tester{
		Cases: cs,
	}
	for _, r := range tester.Run() {
		if r.Error != nil {
			t.Error(r)
		}
	}
}
