package cmd

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/judgenot0/judge-checker/utils"
)

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	submission, err := io.ReadAll(r.Body)
	if err != nil {
		utils.SendError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}
	if !json.Valid(submission) {
		utils.SendError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := s.manager.QueueMessage(r.Context(), submission); err != nil {
		log.Printf("Error queueing submission: %v", err)
		utils.SendError(w, http.StatusServiceUnavailable, "Failed to queue submission")
		return
	}
	utils.SendResponse(w, http.StatusAccepted, struct {
		Status string `json:"status"`
	}{
		Status: "queued",
	})
}
