package handlers

import (
	"net/http"
	"time"

	"github.com/judgenot0/judge-checker/config"
)

type Handler struct {
	Config *config.Config
	client *http.Client
}

func NewHandler(config *config.Config) *Handler {
	return &Handler{
		Config: config,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}
