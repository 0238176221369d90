package checker

type Outcome int

const (
	Accepted Outcome = iota
	WrongAnswer
)

const (
	MessageAccepted    = "AC"
	MessageWrongAnswer = "Output differs from answer"
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "Accepted"
	case WrongAnswer:
		return "WrongAnswer"
	}
	return "Unknown"
}

// Verdict is the result of one comparison.
type Verdict struct {
	Outcome Outcome
	Message string
}

func (v Verdict) Accepted() bool {
	return v.Outcome == Accepted
}

// Code is the short verdict code the judge daemon reports ("ac" / "wa").
func (v Verdict) Code() string {
	if v.Accepted() {
		return "ac"
	}
	return "wa"
}

func accepted() Verdict {
	return Verdict{Outcome: Accepted, Message: MessageAccepted}
}

func wrongAnswer() Verdict {
	return Verdict{Outcome: WrongAnswer, Message: MessageWrongAnswer}
}
