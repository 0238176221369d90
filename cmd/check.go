package cmd

import (
	"encoding/json"
	"net/http"

	"github.com/judgenot0/judge-checker/structs"
	"github.com/judgenot0/judge-checker/utils"
)

// maxRequestBody bounds the JSON body of /check and /run requests.
const maxRequestBody = 64 << 20

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	var req structs.CheckRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		utils.SendError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	utils.SendResponse(w, http.StatusOK, s.handler.Check(req))
}
