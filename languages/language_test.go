package languages

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/structs"
)

// fakeSandbox stands in for isolate: each run copies the reversed input
// to out.txt, or writes the meta of a failed run when the input asks for it.
type fakeSandbox struct {
	runs     int
	commands [][]string
}

func (f *fakeSandbox) isolate(box Box, args ...string) error {
	if !slices.Contains(args, "--run") {
		return nil
	}
	f.runs++
	f.commands = append(f.commands, args[slices.Index(args, "--")+1:])

	input, err := os.ReadFile(filepath.Join(box.Path, "in.txt"))
	if err != nil {
		return err
	}

	meta := "time:0.010\nmax-rss:" + string(rune('0'+f.runs)) + "00\nexitcode:0\n"
	output := reverseLines(string(input))
	switch strings.TrimSpace(string(input)) {
	case "crash":
		meta = "time:0.001\nstatus:RE\nexitcode:1\n"
		output = ""
	case "loop":
		meta = "time:1.000\nstatus:TO\nkilled:1\nmessage:Time limit exceeded\n"
		output = ""
	}

	if err := os.WriteFile(filepath.Join(box.Path, "out.txt"), []byte(output), 0644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(box.Path, "meta.txt"), []byte(meta), 0644); err != nil {
		return err
	}
	if strings.Contains(meta, "status:") {
		return errors.New("exit status 1")
	}
	return nil
}

func reverseLines(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	slices.Reverse(lines)
	return strings.Join(lines, "\n") + "\n"
}

func setup(t *testing.T) (*fakeSandbox, Box) {
	t.Helper()
	fake := &fakeSandbox{}

	oldIsolate, oldCompiler := isolate, compiler
	t.Cleanup(func() {
		isolate, compiler = oldIsolate, oldCompiler
	})
	isolate = fake.isolate
	compiler = func(name string, args ...string) ([]byte, error) {
		source, err := os.ReadFile(args[len(args)-3])
		if err != nil {
			return nil, err
		}
		if strings.Contains(string(source), "syntax error") {
			return []byte("main: error: expected ';'"), errors.New("exit status 1")
		}
		return nil, os.WriteFile(args[len(args)-1], []byte("binary"), 0755)
	}

	root := t.TempDir()
	box := NewBox(root, 0)
	require.NoError(t, os.MkdirAll(box.Path, 0755))
	return fake, box
}

func submission(lang, code string, tests ...structs.Testcase) *structs.Submission {
	return &structs.Submission{
		Language:    lang,
		SourceCode:  code,
		Testcases:   tests,
		Timelimit:   1,
		MemoryLimit: 256,
	}
}

func TestNewBox(t *testing.T) {
	box := NewBox("/var/local/lib/isolate", 3)
	assert.Equal(t, Box{Id: 3, Path: "/var/local/lib/isolate/3/box"}, box)
}

func TestJudgeAccepted(t *testing.T) {
	fake, box := setup(t)
	sub := submission("cpp", "int main(){}",
		structs.Testcase{Input: "1\n2\n", ExpectedOutput: "2\n1"},
		structs.Testcase{Input: "a\nb\nc\n", ExpectedOutput: "c\nb\na\n\n\n"},
	)

	verdict, err := Judge(box, sub, handlers.NewHandler(nil))
	require.NoError(t, err)

	assert.Equal(t, handlers.VerdictAccepted, verdict.Result)
	assert.Equal(t, "AC", verdict.Message)
	assert.Nil(t, verdict.FailedTest)
	assert.Equal(t, float32(0.01), *verdict.MaxTime)
	assert.Equal(t, float32(200), *verdict.MaxRSS)
	assert.Equal(t, 2, fake.runs)
	assert.Equal(t, []string{"./main"}, fake.commands[0])
}

func TestJudgeStopsAtFirstFailure(t *testing.T) {
	fake, box := setup(t)
	sub := submission("c", "int main(){}",
		structs.Testcase{Input: "x\n", ExpectedOutput: "x\n"},
		structs.Testcase{Input: "1\n2\n", ExpectedOutput: "1\n2\n"},
		structs.Testcase{Input: "never\n", ExpectedOutput: "never\n"},
	)

	verdict, err := Judge(box, sub, handlers.NewHandler(nil))
	require.NoError(t, err)

	assert.Equal(t, handlers.VerdictWrongAnswer, verdict.Result)
	assert.Equal(t, "Output differs from answer", verdict.Message)
	require.NotNil(t, verdict.FailedTest)
	assert.Equal(t, 1, *verdict.FailedTest)
	assert.Equal(t, 2, fake.runs)
}

func TestJudgeRuntimeVerdicts(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "crash\n", want: handlers.VerdictRuntimeError},
		{input: "loop\n", want: handlers.VerdictTimeLimit},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			fake, box := setup(t)
			sub := submission("python", "print()", structs.Testcase{Input: tt.input, ExpectedOutput: "ok"})

			verdict, err := Judge(box, sub, handlers.NewHandler(nil))
			require.NoError(t, err)

			assert.Equal(t, tt.want, verdict.Result)
			assert.Equal(t, []string{"/usr/bin/python3", "main.py"}, fake.commands[0])
		})
	}
}

func TestJudgeCompileError(t *testing.T) {
	fake, box := setup(t)
	sub := submission("cpp", "syntax error", structs.Testcase{Input: "1", ExpectedOutput: "1"})

	verdict, err := Judge(box, sub, handlers.NewHandler(nil))
	require.NoError(t, err)

	assert.Equal(t, handlers.VerdictCompileError, verdict.Result)
	assert.Contains(t, verdict.Message, "expected ';'")
	assert.Zero(t, fake.runs)
}

func TestJudgeUnsupported(t *testing.T) {
	_, box := setup(t)

	_, err := Judge(box, submission("brainfuck", ""), handlers.NewHandler(nil))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCompileErrorTruncated(t *testing.T) {
	ce := newCompileError([]byte(strings.Repeat("e", 2*maxCompileOutput)))
	assert.Len(t, ce.Output, maxCompileOutput)
	assert.EqualError(t, ce, "compilation error")
}
