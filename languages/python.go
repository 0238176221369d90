package languages

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/structs"
)

type Python struct{}

// Compile only stores the script; syntax errors surface as runtime errors.
func (Python) Compile(box Box, submission *structs.Submission) error {
	script := filepath.Join(box.Path, "main.py")
	if err := os.WriteFile(script, []byte(submission.SourceCode), 0644); err != nil {
		return fmt.Errorf("writing source: %w", err)
	}
	return nil
}

func (Python) Run(box Box, submission *structs.Submission, handler *handlers.Handler) structs.Verdict {
	return runTests(box, submission, handler, "/usr/bin/python3", "main.py")
}
