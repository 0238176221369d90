package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/judgenot0/judge-checker/structs"
)

var ErrIncompleteVerdict = errors.New("verdict is missing submission or problem id")

type EngineData struct {
	SubmissionId    int64    `json:"submission_id"`
	ProblemId       int64    `json:"problem_id"`
	Verdict         string   `json:"verdict"`
	Message         string   `json:"message,omitempty"`
	FailedTest      *int     `json:"failed_test,omitempty"`
	ExecutionTime   *float32 `json:"execution_time"`
	ExecutionMemory *float32 `json:"execution_memory"`
	Timestamp       int64    `json:"timestamp"`
}

type EnginePayload struct {
	Data        *EngineData `json:"payload"`
	AccessToken string      `json:"access_token"`
}

// GenerateToken signs the verdict data with HMAC-SHA256 over its JSON form.
func GenerateToken(verdict *structs.Verdict, secret string, now time.Time) (*EnginePayload, error) {
	data := &EngineData{
		SubmissionId:    *verdict.Submission.SubmissionId,
		ProblemId:       *verdict.Submission.ProblemId,
		Verdict:         verdict.Result,
		Message:         verdict.Message,
		FailedTest:      verdict.FailedTest,
		ExecutionTime:   verdict.MaxTime,
		ExecutionMemory: verdict.MaxRSS,
		Timestamp:       now.Unix(),
	}

	message, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(message)

	return &EnginePayload{
		Data:        data,
		AccessToken: hex.EncodeToString(mac.Sum(nil)),
	}, nil
}

func (h *Handler) ProduceVerdict(ctx context.Context, verdict *structs.Verdict) error {
	if verdict == nil || verdict.Submission == nil ||
		verdict.Submission.SubmissionId == nil || verdict.Submission.ProblemId == nil {
		return ErrIncompleteVerdict
	}

	payload, err := GenerateToken(verdict, h.Config.EngineKey, time.Now())
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	endpoint := strings.TrimSuffix(h.Config.ServerEndpoint, "/")
	url := fmt.Sprintf("%s/api/submissions", endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("creating PUT request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending PUT request: %w", err)
	}
	defer resp.Body.Close()

	bodyResp, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("PUT request failed with status %d: %s", resp.StatusCode, bodyResp)
	}

	log.Printf("Verdict %s for submission %d accepted by server", verdict.Result, payload.Data.SubmissionId)
	return nil
}
