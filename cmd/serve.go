package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/judgenot0/judge-checker/config"
	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/structs"
)

// Publisher enqueues raw submission bodies.
type Publisher interface {
	QueueMessage(ctx context.Context, submission []byte) error
}

// Runner judges a submission synchronously on a pooled worker.
type Runner interface {
	Workers() chan structs.Worker
	Judge(w structs.Worker, submission *structs.Submission) (structs.Verdict, error)
}

type Server struct {
	config  *config.Config
	manager Publisher
	runner  Runner
	handler *handlers.Handler
}

func NewServer(config *config.Config, queue Publisher, runner Runner, handler *handlers.Handler) *Server {
	return &Server{
		config:  config,
		manager: queue,
		runner:  runner,
		handler: handler,
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.registerRoutes(mux)
	return mux
}

// Listen serves the judge API until ctx is done, then drains in-flight
// requests for up to 30 seconds.
func (s *Server) Listen(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              port,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
