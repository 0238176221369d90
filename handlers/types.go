package handlers

// Meta is the isolate run summary written to meta.txt.
type Meta struct {
	Status        string
	Message       string
	Killed        int // set when the sandbox terminated the program
	Time          float32
	Time_Wall     float32
	Max_RSS       float32
	CG_Mem        float32
	CG_OOM_Killed int
	ExitCode      int
	ExitSig       int
	CSW_Voluntary int
	CSW_Forced    int
}

// TestResult accumulates the verdict and peak usage across the test cases
// of one submission.
type TestResult struct {
	Result  string
	Message string
	MaxTime float32
	MaxRSS  float32
}

// Verdict codes reported to the server.
const (
	VerdictAccepted      = "ac"
	VerdictWrongAnswer   = "wa"
	VerdictRuntimeError  = "re"
	VerdictTimeLimit     = "tle"
	VerdictMemoryLimit   = "mle"
	VerdictCompileError  = "ce"
	VerdictInternalError = "ie"
)
