package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vncsmyrnk/evoting/internal/adapters/auth"
	"github.com/vncsmyrnk/evoting/internal/adapters/handler/http"
	"github.com/vncsmyrnk/evoting/internal/adapters/repository"
	"github.com/vncsmyrnk/evoting/internal/adapters/telemetry"
	"github.com/vncsmyrnk/evoting/internal/config"
	"github.com/vncsmyrnk/evoting/internal/core/services"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("failed to flush traces", "error", err)
		}
	}()

	repos, err := repository.Open(cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	electionService := services.NewElectionService(repos.Elections, repos.Candidates, repos.Voters)
	voteService := services.NewVoteService(repos.Elections, repos.Voters, repos.Votes)
	candidateService := services.NewCandidateService(repos.Candidates, repos.Elections, repos.Parties, repos.Votes)
	partyService := services.NewPartyService(repos.Parties)
	voterService := services.NewVoterService(repos.Voters)
	summaryService := services.NewSummaryService(repos.Elections, repos.Results)

	handler := http.NewHandler(http.Handlers{
		Elections:  http.NewElectionHandler(electionService, summaryService),
		Votes:      http.NewVoteHandler(voteService),
		Candidates: http.NewCandidateHandler(candidateService),
		Parties:    http.NewPartyHandler(partyService),
		Voters:     http.NewVoterHandler(voterService),
	}, auth.NewJWTVerifier(cfg.JWTSecret), cfg.AllowedOrigins)

	server := &stdhttp.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.HTTPAddr, "driver", cfg.DatabaseDriver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}
	slog.Info("gracefully shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
