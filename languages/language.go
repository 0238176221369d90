// Package languages compiles submissions and runs them against their test
// cases inside isolate.
package languages

import (
	"errors"
	"fmt"
	"log"

	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/structs"
)

var ErrUnsupported = errors.New("unsupported language")

type Language interface {
	Compile(box Box, submission *structs.Submission) error
	Run(box Box, submission *structs.Submission, handler *handlers.Handler) structs.Verdict
}

// CompileError carries the compiler diagnostics of a rejected submission.
type CompileError struct {
	Output string
}

func (e *CompileError) Error() string {
	return "compilation error"
}

const maxCompileOutput = 4096

func newCompileError(output []byte) *CompileError {
	if len(output) > maxCompileOutput {
		output = output[:maxCompileOutput]
	}
	return &CompileError{Output: string(output)}
}

var registry = map[string]Language{
	"c":      C{},
	"cpp":    CPP{},
	"python": Python{},
}

func For(name string) (Language, error) {
	lang, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, name)
	}
	return lang, nil
}

// Judge compiles and runs a submission in box and returns its verdict.
func Judge(box Box, submission *structs.Submission, handler *handlers.Handler) (structs.Verdict, error) {
	lang, err := For(submission.Language)
	if err != nil {
		return structs.Verdict{}, err
	}

	if err := lang.Compile(box, submission); err != nil {
		var ce *CompileError
		if errors.As(err, &ce) {
			return structs.Verdict{
				Submission: submission,
				Result:     handlers.VerdictCompileError,
				Message:    ce.Output,
			}, nil
		}
		log.Printf("Error compiling submission: %v", err)
		return structs.Verdict{
			Submission: submission,
			Result:     handlers.VerdictInternalError,
		}, nil
	}

	return lang.Run(box, submission, handler), nil
}
