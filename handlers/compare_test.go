package handlers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgenot0/judge-checker/structs"
)

func writeBox(t *testing.T, meta, answer, output string) string {
	t.Helper()
	box := t.TempDir()
	files := map[string]string{"meta.txt": meta, "expOut.txt": answer, "out.txt": output}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(box, name), []byte(content), 0644))
	}
	return box
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name   string
		meta   string
		answer string
		output string
		want   TestResult
	}{
		{
			name:   "accepted with trailing newline",
			meta:   "time:0.5\nmax-rss:100\nexitcode:0\n",
			answer: "42\n",
			output: "42",
			want:   TestResult{Result: "ac", Message: "AC", MaxTime: 0.5, MaxRSS: 100},
		},
		{
			name:   "wrong answer",
			meta:   "time:0.1\nmax-rss:50\n",
			answer: "1 2\n",
			output: "1  2\n",
			want:   TestResult{Result: "wa", Message: "Output differs from answer", MaxTime: 0.1, MaxRSS: 50},
		},
		{
			name:   "time limit skips output",
			meta:   "time:2.0\nstatus:TO\nkilled:1\nmessage:Time limit exceeded\n",
			answer: "1\n",
			output: "1\n",
			want:   TestResult{Result: "tle", Message: "Time limit exceeded", MaxTime: 2.0},
		},
	}

	h := NewHandler(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var res TestResult
			h.Compare(writeBox(t, tt.meta, tt.answer, tt.output), &res)
			assert.Equal(t, tt.want, res)
		})
	}
}

func TestCompareKeepsPeakUsage(t *testing.T) {
	h := NewHandler(nil)
	res := TestResult{MaxTime: 1.5, MaxRSS: 4000}

	h.Compare(writeBox(t, "time:0.2\nmax-rss:9000\n", "x", "x"), &res)

	assert.Equal(t, float32(1.5), res.MaxTime)
	assert.Equal(t, float32(9000), res.MaxRSS)
	assert.Equal(t, VerdictAccepted, res.Result)
}

func TestCompareMissingFiles(t *testing.T) {
	h := NewHandler(nil)

	var res TestResult
	h.Compare(t.TempDir(), &res)
	assert.Equal(t, VerdictInternalError, res.Result)

	box := writeBox(t, "time:0.1\n", "1", "1")
	require.NoError(t, os.Remove(filepath.Join(box, "out.txt")))
	res = TestResult{}
	h.Compare(box, &res)
	assert.Equal(t, VerdictInternalError, res.Result)
}

func TestCheck(t *testing.T) {
	h := NewHandler(nil)

	assert.Equal(t,
		structs.CheckResponse{Verdict: "ac", Message: "AC"},
		h.Check(structs.CheckRequest{Answer: "abc\n\n\n", Output: "abc"}),
	)
	assert.Equal(t,
		structs.CheckResponse{Verdict: "wa", Message: "Output differs from answer"},
		h.Check(structs.CheckRequest{Answer: "Yes", Output: "yes"}),
	)
}
