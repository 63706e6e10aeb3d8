package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/nihei9/javalyzer/tester"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:     "test <test file path>|<test directory path>",
		Short:   "Run test cases",
		Example: `  javalyzer test testdata`,
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE:    runTest,
	}
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	return runTestCases(os.Stdout, args[0])
}

func runTestCases(w io.Writer, testPath string) error {
	var cs []*tester.TestCaseWithMetadata
	{
		cs = tester.ListTestCases(testPath)
		errOccurred := false
		for _, c := range cs {
			if c.Error != nil {
				fmt.Fprintf(os.Stderr, "Failed to read a test case or a directory: %v\n%v\n", c.FilePath, c.Error)
				errOccurred = true
			}
		}
		if errOccurred {
			return errors.New("Cannot run test")
		}
	}

	t := &tester.Tester{
		Cases: cs,
	}
	rs := t.Run()
	testFailed := false
	for _, r := range rs {
		fmt.Fprintln(w, r)
		if r.Error != nil {
			testFailed = true
		}
	}
	if testFailed {
		return errors.New("Test failed")
	}
	return nil
}
