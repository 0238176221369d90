package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/judgenot0/judge-checker/cmd"
	"github.com/judgenot0/judge-checker/config"
	"github.com/judgenot0/judge-checker/handlers"
	"github.com/judgenot0/judge-checker/queue"
	"github.com/judgenot0/judge-checker/scheduler"
)

func newServeCmd() *cobra.Command {
	var envFile string
	command := &cobra.Command{
		Use:   "serve",
		Short: "Consume submissions from RabbitMQ and serve the judge HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	command.Flags().StringVar(&envFile, "env", ".env", "dotenv file to load before reading the environment")
	return command
}

func serve(ctx context.Context, cfg *config.Config) error {
	queueManager := queue.NewQueue()
	if err := queueManager.InitQueue(cfg); err != nil {
		return fmt.Errorf("initializing queue: %w", err)
	}

	handler := handlers.NewHandler(cfg)

	sched := scheduler.NewScheduler(handler)
	if err := sched.With(cfg.WorkerCount); err != nil {
		queueManager.Close()
		return fmt.Errorf("initializing scheduler: %w", err)
	}

	server := cmd.NewServer(cfg, queueManager, sched, handler)
	server.RegisterMetrics(ctx)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Println("[*] Waiting for messages. To exit press CTRL+C")
		return queueManager.StartConsume(gctx, sched)
	})

	g.Go(func() error {
		log.Printf("[*] Server Running at %s", cfg.HttpPort)
		return server.Listen(gctx, cfg.HttpPort)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("[*] Shutting down gracefully...")
		return nil
	})

	err := g.Wait()
	if closeErr := queueManager.Close(); closeErr != nil {
		log.Printf("Error closing queue: %v", closeErr)
	}
	log.Println("[*] Shutdown complete")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
