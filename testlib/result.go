// Package testlib speaks the result conventions of testlib checkers: exit
// codes and the XML result file.
package testlib

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/judgenot0/judge-checker/checker"
)

// Exit codes of a testlib checker.
const (
	ExitOK                = 0
	ExitWrongAnswer       = 1
	ExitPresentationError = 2
	ExitFail              = 3
)

type Outcome string

const (
	OutcomeAccepted          Outcome = "accepted"
	OutcomeWrongAnswer       Outcome = "wrong-answer"
	OutcomePresentationError Outcome = "presentation-error"
	OutcomeFail              Outcome = "fail"
	OutcomePartiallyCorrect  Outcome = "partially-correct"
	OutcomePoints            Outcome = "points"
)

var (
	ErrUnknownOutcome = errors.New("unknown outcome")
	ErrInvalidScore   = errors.New("invalid score")
)

// Result is a parsed testlib result file. Score is set only for the
// partially-correct and points outcomes and always lies in [0, 100].
type Result struct {
	Outcome Outcome
	Message string
	Score   float64
}

type xmlResult struct {
	XMLName xml.Name `xml:"result"`
	Outcome string   `xml:"outcome,attr"`
	PCType  *string  `xml:"pctype,attr"`
	Points  *string  `xml:"points,attr"`
	Text    string   `xml:",chardata"`
}

func ExitCode(v checker.Verdict) int {
	if v.Accepted() {
		return ExitOK
	}
	return ExitWrongAnswer
}

func OutcomeOf(v checker.Verdict) Outcome {
	if v.Accepted() {
		return OutcomeAccepted
	}
	return OutcomeWrongAnswer
}

// Status is the word testlib prints before the message on stderr.
func Status(v checker.Verdict) string {
	if v.Accepted() {
		return "ok"
	}
	return "wrong answer"
}

func WriteResult(w io.Writer, v checker.Verdict) error {
	if _, err := io.WriteString(w, `<?xml version="1.0" encoding="utf-8"?>`+"\n"); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	err := enc.Encode(xmlResult{Outcome: string(OutcomeOf(v)), Text: v.Message})
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	return enc.Close()
}

func ParseResult(data []byte) (Result, error) {
	var raw xmlResult
	if err := xml.Unmarshal([]byte(strings.TrimSpace(string(data))), &raw); err != nil {
		return Result{}, fmt.Errorf("parsing result: %w", err)
	}

	res := Result{Outcome: Outcome(raw.Outcome), Message: raw.Text}
	switch res.Outcome {
	case OutcomeAccepted, OutcomeWrongAnswer, OutcomePresentationError, OutcomeFail:
	case OutcomePartiallyCorrect:
		score, err := parseScore(raw.PCType)
		if err != nil {
			return Result{}, err
		}
		res.Score = score
	case OutcomePoints:
		score, err := parseScore(raw.Points)
		if err != nil {
			return Result{}, err
		}
		res.Score = score
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownOutcome, raw.Outcome)
	}
	return res, nil
}

func parseScore(attr *string) (float64, error) {
	if attr == nil {
		log.Println("Result has no score attribute, using 0")
		return 0, nil
	}
	v, err := strconv.ParseFloat(*attr, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing score %q: %w", *attr, err)
	}
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidScore, *attr)
	}
	return min(max(v, 0), 100), nil
}
