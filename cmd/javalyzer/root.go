package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"

	verr "github.com/nihei9/javalyzer/error"
	"github.com/nihei9/javalyzer/parser"
	"github.com/nihei9/javalyzer/report"
	"github.com/nihei9/javalyzer/trace"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	noTrace *bool
	format  *string
	watch   *bool
}{}

var rootCmd = &cobra.Command{
	Use:   "javalyzer <source file path>",
	Short: "Validate the syntax of a source file",
	Long: `javalyzer checks whether a source file conforms to the grammar of a small Java-like language.
It prints every token it consumes and a verdict. On the first syntax error it reports
the offending token and the kinds of token that would have been acceptable.`,
	Example:       `  javalyzer Main.java`,
	Args:          usageArgs(cobra.ExactArgs(1)),
	RunE:          runValidate,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.noTrace = rootCmd.Flags().Bool("no-trace", false, "don't print the tokens consumed by the parser")
	rootFlags.format = rootCmd.Flags().StringP("format", "f", string(report.FormatText), "report format (text, json, or yaml)")
	rootFlags.watch = rootCmd.Flags().BoolP("watch", "w", false, "validate the source file again whenever it is written")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{
			cause:   err,
			useLine: cmd.UseLine(),
		}
	})
}

// errRejected means the verdict has already been printed, so Execute doesn't print it again.
var errRejected = errors.New("syntax validation failed")

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, errRejected) {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
		return err
	}
	return nil
}

type usageError struct {
	cause   error
	useLine string
}

func (e *usageError) Error() string {
	if e.useLine == "" {
		return e.cause.Error()
	}
	return fmt.Sprintf("%v\nUsage: %v", e.cause, e.useLine)
}

func (e *usageError) Unwrap() error {
	return e.cause
}

// usageArgs marks argument errors as usage errors so that they are distinguishable from a rejected source.
func usageArgs(args cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, as []string) error {
		err := args(cmd, as)
		if err != nil {
			return &usageError{
				cause:   err,
				useLine: cmd.UseLine(),
			}
		}
		return nil
	}
}

func runValidate(cmd *cobra.Command, args []string) (retErr error) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("an unexpected error occurred: %v", v)
		}
		fmt.Fprintf(os.Stderr, "%v:\n%v", err, string(debug.Stack()))
		retErr = err
	}()

	f, err := report.ParseFormat(*rootFlags.format)
	if err != nil {
		return &usageError{
			cause:   err,
			useLine: cmd.UseLine(),
		}
	}
	opts := &validateOptions{
		format:  f,
		noTrace: *rootFlags.noTrace,
	}

	if *rootFlags.watch {
		return watch(cmd.Context(), os.Stdout, args[0], opts)
	}
	return validate(os.Stdout, args[0], opts)
}

type validateOptions struct {
	format  report.Format
	noTrace bool
}

// validate writes a report on the source file to w. It returns errRejected when the source doesn't conform to
// the grammar.
func validate(w io.Writer, srcPath string, opts *validateOptions) error {
	src, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("Cannot read the source file %s: %w", srcPath, err)
	}

	// Text output prints the trace table as tokens are consumed. The other formats embed the recorded trace
	// in the report.
	rec := &trace.Recorder{}
	var tw *trace.TableWriter
	var pOpts []parser.ParserOption
	if !opts.noTrace {
		if opts.format == report.FormatText {
			tw = trace.NewTableWriter(w)
			pOpts = append(pOpts, parser.Trace(trace.Tee(tw, rec)))
		} else {
			pOpts = append(pOpts, parser.Trace(rec))
		}
	}
	parseErr := parser.ParseReader(bytes.NewReader(src), pOpts...)
	if tw != nil {
		err := tw.Close()
		if err != nil {
			return fmt.Errorf("Cannot write a trace: %w", err)
		}
	}
	if parseErr != nil {
		parseErr = verr.Locate(parseErr, filepath.Base(srcPath), srcPath, src)
	}

	r, err := report.New(srcPath, rec.Records, parseErr)
	if err != nil {
		return fmt.Errorf("Cannot validate the source file %s: %w", srcPath, err)
	}
	err = r.Write(w, opts.format)
	if err != nil {
		return fmt.Errorf("Cannot write a report: %w", err)
	}
	if !r.Accepted {
		return errRejected
	}
	return nil
}
