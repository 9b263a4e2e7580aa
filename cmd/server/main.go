package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"shema/internal/api"
	"shema/internal/config"
	"shema/internal/generator"
	"shema/internal/infer"
	"shema/internal/pg"
	"shema/internal/reference"
	"shema/internal/schema"
)

func main() {
	cfg := config.LoadWithPath("config.json")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// 1. Словарь резолвера (не фатально: есть компилированный дефолт)
	vocab := infer.DefaultVocabulary
	if vocabs, err := reference.LoadVocabularies(cfg.VocabDir); err != nil {
		logger.Warn("vocabulary dir not loaded, using built-in defaults",
			zap.String("dir", cfg.VocabDir), zap.Error(err))
	} else if nouns := reference.Nouns(vocabs); len(nouns) > 0 {
		vocab = nouns
	}
	logger.Info("vocabulary ready", zap.Int("nouns", len(vocab)))

	// 2. Контекст схемы: из Postgres, если задан dbUrl
	defs := make(schema.Context)
	deps := api.Deps{Log: logger, DefaultTemperature: cfg.DefaultTemperature}
	if cfg.DBURL != "" {
		db, err := pg.Open(cfg.DBURL)
		if err != nil {
			logger.Fatal("postgres open", zap.Error(err))
		}
		if err := pg.EnsureSchema(db); err != nil {
			logger.Fatal("postgres schema", zap.Error(err))
		}
		loadCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defs, err = pg.LoadContext(loadCtx, db)
		cancel()
		if err != nil {
			logger.Fatal("postgres load context", zap.Error(err))
		}
		deps.DB = db
		logger.Info("schema context loaded from postgres", zap.Int("entities", len(defs)))
	}

	// 3. Внешний генератор — опционален; без ключа работаем детерминированно
	var gen infer.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := generator.NewGemini(context.Background(), generator.Config{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.GeminiModel,
			BaseURL: cfg.GeminiBaseURL,
			RPS:     cfg.GenRPS,
		}, logger)
		if err != nil {
			logger.Fatal("generator init", zap.Error(err))
		}
		gen = g
		logger.Info("generator enabled", zap.String("model", cfg.GeminiModel))
	} else {
		logger.Info("generator disabled, deterministic extraction only")
	}

	deps.Storage = api.NewStorage(defs, vocab)
	deps.Engine = infer.NewEngine(gen, time.Duration(cfg.GenTimeoutSec)*time.Second, logger)

	logger.Info("starting shema server", zap.String("port", cfg.Port))
	api.RunServer(":"+cfg.Port, deps, cfg.VocabDir)
}
