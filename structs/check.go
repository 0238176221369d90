package structs

// CheckRequest asks for a single answer/output comparison without running
// any code.
type CheckRequest struct {
	Answer string `json:"answer"`
	Output string `json:"output"`
}

type CheckResponse struct {
	Verdict string `json:"verdict"`
	Message string `json:"message"`
}
