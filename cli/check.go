package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/judgenot0/judge-checker/checker"
	"github.com/judgenot0/judge-checker/testlib"
)

// exitError carries a process exit status out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <input> <output> <answer> [result-file]",
		Short: "Compare a contestant output with the answer, ignoring trailing whitespace",
		Args:  cobra.RangeArgs(3, 4),
		RunE: func(cmd *cobra.Command, args []string) error {
			resultFile := ""
			if len(args) == 4 {
				resultFile = args[3]
			}
			code := runCheck(cmd.ErrOrStderr(), args[1], args[2], resultFile)
			if code != testlib.ExitOK {
				return &exitError{code: code}
			}
			return nil
		},
	}
}

// runCheck judges outputPath against answerPath and returns the testlib
// exit status.
func runCheck(stderr io.Writer, outputPath, answerPath, resultFile string) int {
	verdict, err := checkFiles(answerPath, outputPath)
	if err != nil {
		fmt.Fprintf(stderr, "FAIL %v\n", err)
		return testlib.ExitFail
	}

	fmt.Fprintf(stderr, "%s %s\n", testlib.Status(verdict), verdict.Message)

	if resultFile != "" {
		if err := writeResult(resultFile, verdict); err != nil {
			fmt.Fprintf(stderr, "FAIL %v\n", err)
			return testlib.ExitFail
		}
	}
	return testlib.ExitCode(verdict)
}

func checkFiles(answerPath, outputPath string) (checker.Verdict, error) {
	answerFile, err := os.Open(answerPath)
	if err != nil {
		return checker.Verdict{}, fmt.Errorf("opening answer: %w", err)
	}
	defer answerFile.Close()

	outputFile, err := os.Open(outputPath)
	if err != nil {
		return checker.Verdict{}, fmt.Errorf("opening output: %w", err)
	}
	defer outputFile.Close()

	answer := checker.NewLineStream(answerFile)
	output := checker.NewLineStream(outputFile)
	verdict := checker.Compare(answer, output)

	if err := errors.Join(answer.Err(), output.Err()); err != nil {
		return checker.Verdict{}, fmt.Errorf("reading streams: %w", err)
	}
	return verdict, nil
}

func writeResult(path string, verdict checker.Verdict) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating result file: %w", err)
	}
	if err := testlib.WriteResult(f, verdict); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
