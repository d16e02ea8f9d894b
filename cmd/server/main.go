package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/joaopedroldavid-del/finsightai-api/config"
	"github.com/joaopedroldavid-del/finsightai-api/internal/agents"
	"github.com/joaopedroldavid-del/finsightai-api/internal/server"
	"github.com/joaopedroldavid-del/finsightai-api/internal/service"
	"github.com/joaopedroldavid-del/finsightai-api/internal/storage"
	"github.com/joaopedroldavid-del/finsightai-api/internal/tools"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "finsightai",
		Short: "FinSightAI - AI-powered financial analysis API",
		Long: `FinSightAI exposes an HTTP API that routes chat messages to an
LLM-backed financial manager agent with live market data and news
sentiment tools.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("finsightai 1.0.0")
		},
	})

	return rootCmd
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Debug {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
}

func runServer(ctx context.Context) error {
	cfg := config.DefaultConfig()
	setupLogging(cfg)

	store, err := storage.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("open conversation store: %w", err)
	}
	defer store.Close()

	toolset := tools.NewToolset(cfg)
	manager := agents.NewFinancialManager(cfg, toolset)

	svc := service.NewAgentService(store, manager)
	if err := svc.InitializeAgents(ctx); err != nil {
		return fmt.Errorf("initialize agents: %w", err)
	}

	srv := server.NewServer(cfg, svc)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}
