package languages

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/structs"
)

// Box is one isolate sandbox. Path is the directory mounted as the
// sandbox working directory.
type Box struct {
	Id   int
	Path string
}

func NewBox(root string, id int) Box {
	return Box{
		Id:   id,
		Path: filepath.Join(root, strconv.Itoa(id), "box"),
	}
}

// isolate and compiler are swapped out in tests.
var (
	isolate = func(box Box, args ...string) error {
		argv := append([]string{fmt.Sprintf("--box-id=%d", box.Id)}, args...)
		return exec.Command("isolate", argv...).Run()
	}
	compiler = func(name string, args ...string) ([]byte, error) {
		return exec.Command(name, args...).CombinedOutput()
	}
)

// InitBox (re)creates an empty sandbox.
func InitBox(box Box) error {
	if err := isolate(box, "--init"); err != nil {
		return fmt.Errorf("initializing sandbox %d: %w", box.Id, err)
	}
	return nil
}

// runTests executes command once per test case and stops at the first test
// that is not accepted.
func runTests(box Box, submission *structs.Submission, handler *handlers.Handler, command ...string) structs.Verdict {
	inputPath := filepath.Join(box.Path, "in.txt")
	expectedOutputPath := filepath.Join(box.Path, "expOut.txt")
	outputPath := filepath.Join(box.Path, "out.txt")
	metaPath := filepath.Join(box.Path, "meta.txt")

	res := handlers.TestResult{Result: handlers.VerdictAccepted}
	var failed *int

	for i, test := range submission.Testcases {
		if err := writeFiles(map[string]string{
			inputPath:          test.Input,
			expectedOutputPath: test.ExpectedOutput,
			outputPath:         "",
		}); err != nil {
			log.Printf("Error preparing test %d: %v", i, err)
			res.Result = handlers.VerdictInternalError
			failed = &i
			break
		}
		_ = os.Remove(metaPath)

		args := []string{
			"--stdin=in.txt",
			"--stdout=out.txt",
			fmt.Sprintf("--time=%.3f", submission.Timelimit),
			fmt.Sprintf("--wall-time=%.3f", submission.Timelimit*1.5),
			"--fsize=10240",
			fmt.Sprintf("--mem=%d", int(submission.MemoryLimit*1024)),
			fmt.Sprintf("--meta=%s", metaPath),
			"--run",
			"--",
		}
		// isolate exits non-zero whenever the program fails; meta.txt says why.
		if err := isolate(box, append(args, command...)...); err != nil {
			log.Printf("isolate exited with %v on test %d", err, i)
		}

		handler.Compare(box.Path, &res)

		if res.Result != handlers.VerdictAccepted {
			failed = &i
			break
		}
	}

	return structs.Verdict{
		Submission: submission,
		Result:     res.Result,
		Message:    res.Message,
		FailedTest: failed,
		MaxTime:    &res.MaxTime,
		MaxRSS:     &res.MaxRSS,
	}
}

func writeFiles(files map[string]string) error {
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
