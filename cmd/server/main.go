package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/deutschhub/internal/api"
	"github.com/vytor/deutschhub/internal/config"
	"github.com/vytor/deutschhub/internal/db"
	"github.com/vytor/deutschhub/internal/logger"
	"github.com/vytor/deutschhub/internal/quiz"
	"github.com/vytor/deutschhub/internal/repository/sqlite"
	"github.com/vytor/deutschhub/internal/services"
	"github.com/vytor/deutschhub/internal/session"
	"github.com/vytor/deutschhub/internal/store"
)

func main() {
	cfg := config.Load()

	// Initialize logger
	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(1)
	}

	log.Info("===========================================")
	log.Info("DeutschHub Server Starting")
	log.Info("===========================================")
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("max_upload_bytes=%d", cfg.MaxUploadBytes)
	log.Debug("match_pairs=%d", cfg.MatchPairs)
	log.Debug("round_length=%d", cfg.RoundLength)
	log.Debug("session_ttl=%s", cfg.SessionTTL)

	// Open database
	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	ctx, cancel := context.WithCancel(logger.NewContext(context.Background(), log))
	defer cancel()

	// Initialize services
	references, err := services.NewReferenceService(ctx)
	if err != nil {
		log.Error("failed to load bundled datasets: %v", err)
		os.Exit(1)
	}

	vocabStore := store.NewVocabularyStore(sqlite.NewKeyValueRepository(database.DB))
	vocabulary := services.NewVocabularyService(vocabStore, references.DefaultVocabulary())
	if err := vocabulary.Init(ctx); err != nil {
		log.Error("failed to initialize vocabulary: %v", err)
		os.Exit(1)
	}

	sessions := services.NewSessionService(vocabulary, references, quiz.Settings{
		MatchPairs:          cfg.MatchPairs,
		RoundLength:         cfg.RoundLength,
		ChoiceAdvanceDelay:  cfg.ChoiceAdvanceDelay,
		WritingAdvanceDelay: cfg.WritingAdvanceDelay,
		GenderAdvanceDelay:  cfg.GenderAdvanceDelay,
		MismatchDelay:       cfg.MismatchDelay,
		Shuffler:            session.RandomShuffle,
		Scheduler:           session.ClockScheduler,
	}, cfg.SessionTTL)
	go sessions.RunSweeper(ctx, cfg.SessionSweepInterval)

	srv := &api.Server{
		DB:             database,
		Vocabulary:     vocabulary,
		References:     references,
		Sessions:       sessions,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	// Configure HTTP server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start HTTP server
	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("stopping session sweeper")
	cancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("ending live sessions: count=%d", sessions.Count())
	sessions.Close()

	log.Info("===========================================")
	log.Info("DeutschHub Server Stopped")
	log.Info("===========================================")
}
