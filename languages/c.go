package languages

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/structs"
)

type C struct{}

func (C) Compile(box Box, submission *structs.Submission) error {
	source := filepath.Join(box.Path, "main.c")
	if err := os.WriteFile(source, []byte(submission.SourceCode), 0644); err != nil {
		return fmt.Errorf("writing source: %w", err)
	}

	binary := filepath.Join(box.Path, "main")
	output, err := compiler("gcc", "-std=gnu11", "-O2", "-pipe", "-s", source, "-o", binary)
	if err != nil {
		return newCompileError(output)
	}

	if _, err := os.Stat(binary); err != nil {
		return newCompileError([]byte("binary not created"))
	}
	return nil
}

func (C) Run(box Box, submission *structs.Submission, handler *handlers.Handler) structs.Verdict {
	return runTests(box, submission, handler, "./main")
}
