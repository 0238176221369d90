package languages

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/structs"
)

type CPP struct{}

func (CPP) Compile(box Box, submission *structs.Submission) error {
	source := filepath.Join(box.Path, "main.cpp")
	if err := os.WriteFile(source, []byte(submission.SourceCode), 0644); err != nil {
		return fmt.Errorf("writing source: %w", err)
	}

	output, err := compiler("g++", "-std=c++23", "-O2", "-pipe", source, "-o", filepath.Join(box.Path, "main"))
	if err != nil {
		return newCompileError(output)
	}
	return nil
}

func (CPP) Run(box Box, submission *structs.Submission, handler *handlers.Handler) structs.Verdict {
	return runTests(box, submission, handler, "./main")
}
