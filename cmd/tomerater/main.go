package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"tomerater/internal/catalog"
	"tomerater/internal/config"
	"tomerater/internal/notice"
	"tomerater/internal/report"
	"tomerater/internal/seed"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("cannot build logger: %v", err)
	}

	os.Exit(finish(logger, run(cfg, logger, os.Stdout)))
}

// finish logs a failed run, flushes the logger and returns the exit code.
func finish(logger *zap.Logger, err error) int {
	code := 0
	if err != nil {
		logger.Error("tomerater failed", zap.Error(err))
		code = 1
	}
	_ = logger.Sync()
	return code
}

func run(cfg config.Config, logger *zap.Logger, out io.Writer) error {
	svc := catalog.New(catalog.WithNotifier(notice.NewLogNotifier(logger)))

	fixture, err := loadFixture(cfg.SeedFile)
	if err != nil {
		return err
	}
	res, err := seed.Apply(svc, fixture)
	if err != nil {
		return fmt.Errorf("apply seed: %w", err)
	}
	logger.Info("catalog seeded",
		zap.String("seed_file", cfg.SeedFile),
		zap.Int("books_created", res.BooksCreated),
		zap.Int("books_rejected", res.BooksRejected),
		zap.Int("readers_added", res.ReadersAdded),
		zap.Int("readers_rejected", res.ReadersRejected),
		zap.Int("readings_recorded", res.ReadingsRecorded),
		zap.Int("readings_rejected", res.ReadingsRejected),
	)

	summary := report.Build(svc)
	if cfg.Output == "json" {
		return report.WriteJSON(out, summary)
	}

	fmt.Fprintln(out, "Catalog:")
	if err := svc.PrintCatalog(out); err != nil {
		return err
	}
	fmt.Fprintln(out, "\nReaders:")
	if err := svc.PrintReaders(out); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return report.WriteText(out, summary)
}

func loadFixture(path string) (seed.File, error) {
	if path == "" {
		return seed.Demo()
	}
	return seed.LoadFile(path)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.LogLevel, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.LogFormat == "console" {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
