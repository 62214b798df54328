package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cashplan/internal/config"
	"cashplan/internal/database"
	apperrors "cashplan/internal/errors"
	"cashplan/internal/logger"
	"cashplan/internal/services"
	"cashplan/internal/store"
	"cashplan/internal/uuid"
)

const usage = "usage: generator <all|template <id> [days]|watch>"

func main() {
	if err := run(); err != nil {
		if errors.Is(err, apperrors.ErrBatchIncomplete) {
			logger.Get().Warnw("generation finished with failures", "error", err)
			logger.Sync()
			os.Exit(2)
		}
		logger.Get().Errorf("Generation error: %v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}

func run() error {
	if len(os.Args) < 2 {
		return errors.New(usage)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	dbManager, err := database.NewManager(database.NewConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	generator := services.NewGenerationService(
		store.New(dbManager.DB()),
		services.WithBatchMode(services.BatchMode(cfg.BatchMode)),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch command := os.Args[1]; command {
	case "all":
		started := time.Now()
		batch, err := generator.GenerateAllActive(ctx)
		if batch != nil {
			log.Infow("generation run completed",
				"mode", batch.Mode,
				"templates_processed", batch.TemplatesProcessed,
				"created", batch.Created,
				"failures", len(batch.Failures),
				"duration", time.Since(started).String(),
			)
		}
		return err

	case "template":
		if len(os.Args) < 3 {
			return errors.New(usage)
		}
		days := cfg.DaysInAdvance
		if len(os.Args) > 3 {
			days, err = strconv.Atoi(os.Args[3])
			if err != nil {
				return fmt.Errorf("invalid days in advance: %w", err)
			}
		}
		templateID, err := uuid.Parse(os.Args[2])
		if err != nil {
			return fmt.Errorf("invalid template id %q: %w", os.Args[2], err)
		}
		res, err := generator.Generate(ctx, templateID, days)
		if err != nil {
			return err
		}
		log.Infow("template generation completed",
			"template_id", res.TemplateID,
			"created", res.Created,
			"skipped", res.Skipped,
			"next_execution_date", res.NextExecutionDate.Format(time.DateOnly),
		)
		return nil

	case "watch":
		log.Infow("generation scheduler started", "interval", cfg.GenerationInterval.String())
		services.NewScheduler(generator, cfg.GenerationInterval).Start(ctx)
		return nil

	default:
		return fmt.Errorf("unknown command: %s (%s)", command, usage)
	}
}
