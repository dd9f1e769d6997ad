package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/dispatch"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/logger"
	"github.com/jonathan/candidate-screener/internal/screening"
)

// toolkit bundles the wired dependencies an operational subcommand needs.
// Close must be called when the command finishes.
type toolkit struct {
	db       *db.DB
	screener *screening.Service
	close    func()
}

// openToolkit connects to the database and inference backend from environment
// configuration and wires the screening service the same way the server does.
func openToolkit(ctx context.Context) (*toolkit, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	log, err := logger.New(false, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), apiKey)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to create inference client: %w", err)
	}

	dispatcher := dispatch.New(
		&dispatch.DBNotifier{DB: database},
		&dispatch.LogEmailer{Log: log},
		&dispatch.DBSuggester{DB: database},
		log,
	)

	return &toolkit{
		db:       database,
		screener: screening.NewService(database, client, dispatcher, log),
		close: func() {
			client.Close()
			database.Close()
		},
	}, nil
}

// parseApplicationID parses a positional application ID argument.
func parseApplicationID(arg string) (uuid.UUID, error) {
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid application id %q: %w", arg, err)
	}
	return id, nil
}

// parseStageArg parses a positional stage number argument.
func parseStageArg(arg string) (int, error) {
	stage, err := strconv.Atoi(arg)
	if err != nil || stage < 1 || stage > 3 {
		return 0, fmt.Errorf("stage must be 1, 2, or 3, got %q", arg)
	}
	return stage, nil
}
