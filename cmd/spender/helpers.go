package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/Alice-Fowler/telegram-bot-nlp/internal/classify"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/common"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/config"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/router"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/service"
	"github.com/Alice-Fowler/telegram-bot-nlp/internal/storage"
)

// initStorage opens the database, runs migrations and registers the acting
// user.
func initStorage(ctx context.Context, cfg *config.Config) (service.Storage, error) {
	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if _, err := store.EnsureUser(ctx, currentUserID()); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	return store, nil
}

// initClassifier loads the trained model. A missing model artifact is not an
// error: the conversation degrades to manual category selection.
func initClassifier(cfg *config.Config) service.Classifier {
	m, err := classify.Load(cfg.ModelPath)
	if err != nil {
		if errors.Is(err, common.ErrClassifierUnavailable) {
			slog.Warn("classifier model not found, auto-categorization disabled",
				"path", cfg.ModelPath, "hint", "run 'spender train' first")
		} else {
			slog.Warn("failed to load classifier model", "path", cfg.ModelPath, "error", err)
		}
		return nil
	}
	return m
}

// initRouter wires the conversation router from config.
func initRouter(store service.Storage, classifier service.Classifier, cfg *config.Config) *router.Router {
	return router.New(store, classifier, router.Config{
		DefaultCategory:         cfg.DefaultCategory,
		ConfidenceThreshold:     cfg.ConfidenceThreshold,
		HighConfidenceThreshold: cfg.HighConfidenceThreshold,
	})
}

func currentUserID() int64 {
	id := viper.GetInt64("user.id")
	if id <= 0 {
		id = 1
	}
	return id
}
