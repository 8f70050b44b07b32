package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/vncsmyrnk/evoting/internal/adapters/repository"
	"github.com/vncsmyrnk/evoting/internal/config"
	"github.com/vncsmyrnk/evoting/internal/core/services"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	repos, err := repository.Open(cfg)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer repos.Close()

	summaryService := services.NewSummaryService(repos.Elections, repos.Results)

	// Use a timeout for the job execution to prevent it from hanging indefinitely
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	slog.Info("starting vote summarization job")

	if err := summaryService.SummarizeAllVotes(ctx); err != nil {
		slog.Error("error summarizing votes", "error", err)
		repos.Close()
		os.Exit(1)
	}

	slog.Info("vote summarization completed")
}
