package handlers

import (
	"log"
	"os"
	"path/filepath"

	"github.com/judgenot0/judge-checker/checker"
	"github.com/judgenot0/judge-checker/structs"
)

// Compare judges the test case left in boxPath by the last sandbox run and
// folds it into res.
func (h *Handler) Compare(boxPath string, res *TestResult) {
	meta, err := ParseMeta(filepath.Join(boxPath, "meta.txt"))
	if err != nil {
		log.Printf("Error reading meta file: %v", err)
		res.fail(VerdictInternalError, "")
		return
	}

	res.MaxTime = max(res.MaxTime, meta.Time)
	res.MaxRSS = max(res.MaxRSS, meta.Max_RSS)

	if outcome := meta.Outcome(); outcome != "" {
		res.fail(outcome, meta.Message)
		return
	}

	verdict, err := compareFiles(
		filepath.Join(boxPath, "expOut.txt"),
		filepath.Join(boxPath, "out.txt"),
	)
	if err != nil {
		log.Printf("Error comparing output: %v", err)
		res.fail(VerdictInternalError, "")
		return
	}

	observeVerdict("box", verdict)
	res.Result = verdict.Code()
	res.Message = verdict.Message
}

// Check compares an answer and an output given in memory.
func (h *Handler) Check(req structs.CheckRequest) structs.CheckResponse {
	verdict := checker.Compare(checker.StringStream(req.Answer), checker.StringStream(req.Output))
	observeVerdict("direct", verdict)
	return structs.CheckResponse{
		Verdict: verdict.Code(),
		Message: verdict.Message,
	}
}

func compareFiles(answerPath, outputPath string) (checker.Verdict, error) {
	answerFile, err := os.Open(answerPath)
	if err != nil {
		return checker.Verdict{}, err
	}
	defer answerFile.Close()

	outputFile, err := os.Open(outputPath)
	if err != nil {
		return checker.Verdict{}, err
	}
	defer outputFile.Close()

	answer := checker.NewLineStream(answerFile)
	output := checker.NewLineStream(outputFile)
	verdict := checker.Compare(answer, output)

	if err := answer.Err(); err != nil {
		return checker.Verdict{}, err
	}
	if err := output.Err(); err != nil {
		return checker.Verdict{}, err
	}
	return verdict, nil
}

func (r *TestResult) fail(result, message string) {
	r.Result = result
	r.Message = message
	verdictsTotal.WithLabelValues("box", result).Inc()
}
