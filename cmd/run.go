package cmd

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/judgenot0/judge-checker/languages"
	"github.com/judgenot0/judge-checker/structs"
	"github.com/judgenot0/judge-checker/utils"
)

type runResponse struct {
	Result     string   `json:"result"`
	Message    string   `json:"message,omitempty"`
	FailedTest *int     `json:"failed_test,omitempty"`
	Time       *float32 `json:"time,omitempty"`
	Memory     *float32 `json:"memory,omitempty"`
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	var runReq structs.Submission
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&runReq); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	w.Header().Set("Access-Control-Allow-Origin", "*")

	var worker structs.Worker
	select {
	case worker = <-s.runner.Workers():
	case <-r.Context().Done():
		return
	}
	defer func() {
		s.runner.Workers() <- worker
	}()

	verdict, err := s.runner.Judge(worker, &runReq)
	if errors.Is(err, languages.ErrUnsupported) {
		utils.SendError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		utils.SendError(w, http.StatusInternalServerError, "Failed to run submission")
		return
	}

	utils.SendResponse(w, http.StatusOK, runResponse{
		Result:     verdict.Result,
		Message:    verdict.Message,
		FailedTest: verdict.FailedTest,
		Time:       verdict.MaxTime,
		Memory:     verdict.MaxRSS,
	})
}
