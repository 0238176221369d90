package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

func SendResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func SendError(w http.ResponseWriter, statusCode int, message string) {
	SendResponse(w, statusCode, struct {
		Error string `json:"error"`
	}{
		Error: message,
	})
}
