package handlers

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/judgenot0/judge-checker/config"
	"github.com/judgenot0/judge-checker/structs"
)

func ptr[T any](v T) *T {
	return &v
}

func testVerdict() *structs.Verdict {
	return &structs.Verdict{
		Submission: &structs.Submission{SubmissionId: ptr(int64(7)), ProblemId: ptr(int64(3))},
		Result:     VerdictWrongAnswer,
		Message:    "Output differs from answer",
		FailedTest: ptr(2),
		MaxTime:    ptr(float32(0.25)),
		MaxRSS:     ptr(float32(1024)),
	}
}

func TestGenerateToken(t *testing.T) {
	now := time.Unix(1700000000, 0)
	payload, err := GenerateToken(testVerdict(), "secret", now)
	require.NoError(t, err)

	assert.Equal(t, int64(7), payload.Data.SubmissionId)
	assert.Equal(t, int64(3), payload.Data.ProblemId)
	assert.Equal(t, "wa", payload.Data.Verdict)
	assert.Equal(t, now.Unix(), payload.Data.Timestamp)

	message, err := json.Marshal(payload.Data)
	require.NoError(t, err)
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write(message)
	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), payload.AccessToken)
}

func TestProduceVerdict(t *testing.T) {
	received := make(chan EnginePayload, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var p EnginePayload
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/submissions", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		received <- p
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	h := NewHandler(&config.Config{EngineKey: "secret", ServerEndpoint: srv.URL + "/"})
	require.NoError(t, h.ProduceVerdict(context.Background(), testVerdict()))

	got := <-received
	require.NotNil(t, got.Data)
	assert.Equal(t, int64(7), got.Data.SubmissionId)
	assert.Equal(t, "Output differs from answer", got.Data.Message)
	assert.Equal(t, 2, *got.Data.FailedTest)
	assert.NotEmpty(t, got.AccessToken)
}

func TestProduceVerdictRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad token", http.StatusUnauthorized)
	}))
	defer srv.Close()

	h := NewHandler(&config.Config{EngineKey: "secret", ServerEndpoint: srv.URL})
	err := h.ProduceVerdict(context.Background(), testVerdict())
	assert.ErrorContains(t, err, "status 401")
}

func TestProduceVerdictIncomplete(t *testing.T) {
	h := NewHandler(&config.Config{})

	assert.ErrorIs(t, h.ProduceVerdict(context.Background(), nil), ErrIncompleteVerdict)
	assert.ErrorIs(t, h.ProduceVerdict(context.Background(), &structs.Verdict{
		Submission: &structs.Submission{SubmissionId: ptr(int64(1))},
	}), ErrIncompleteVerdict)
}
