package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/judgenot0/judge-checker/checker"
)

var verdictsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "judge_verdicts_total",
	Help: "Test case verdicts by source and code",
}, []string{"source", "verdict"})

func observeVerdict(source string, v checker.Verdict) {
	verdictsTotal.WithLabelValues(source, v.Code()).Inc()
}
