package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"liontalk/seminarworker/config"
	"liontalk/seminarworker/internal/browser"
	"liontalk/seminarworker/internal/extract"
	"liontalk/seminarworker/internal/scrape"
	"liontalk/seminarworker/internal/source"
	"liontalk/seminarworker/logger"
	"liontalk/seminarworker/services/cache"
	"liontalk/seminarworker/services/pipeline"
	"liontalk/seminarworker/services/sink"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration; a missing extraction credential
	// aborts before any source is processed
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("sources", cfg.SourcesPath).
		Dur("event_window", cfg.EventWindow).
		Msg("Starting seminar harvest batch")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	// Read the source configuration once at batch start
	sources, err := source.Load(cfg.SourcesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load source configuration")
	}
	log.Info().Int("source_count", len(sources)).Msg("Loaded sources")

	// Optional request-guard cache
	var cacheSvc cache.CacheService
	if cfg.MemcacheAddr != "" {
		cacheSvc = cache.NewMemcacheService(cfg.MemcacheAddr)
		log.Info().Str("addr", cfg.MemcacheAddr).Msg("Connected to Memcache")
	}

	// Shared browser allocator; each acquisition opens and closes its own
	// session
	launcher := browser.NewLauncher(ctx, cfg.Headless, cfg.NavTimeout, cfg.WaitTimeout)
	defer launcher.Close()

	pages := scrape.PageFactory(func(ctx context.Context) (scrape.Page, error) {
		return launcher.NewPage(ctx)
	})

	// Extraction adapter
	extractor, err := extract.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ExtractMaxAttempts)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize extraction service")
	}

	// Build strategies and run the batch
	strategies := scrape.CreateStrategies(&cfg, pages, cacheSvc)
	records := pipeline.New(strategies, extractor).Run(ctx, sources)

	// Hand the output collection to the sinks
	sinks := []sink.Sink{sink.NewFileSink(cfg.OutputPath)}
	if cfg.RedisAddr != "" {
		sinks = append(sinks, sink.NewRedisSink(cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream, cfg.RedisStreamMaxLength))
		log.Info().Str("addr", cfg.RedisAddr).Str("stream", cfg.RedisStream).Msg("Publishing to Redis")
	}

	for _, s := range sinks {
		if err := s.Write(ctx, records); err != nil {
			log.Error().Err(err).Msg("Sink write failed")
		}
		if err := s.Close(); err != nil {
			log.Error().Err(err).Msg("Sink close failed")
		}
	}

	log.Info().
		Int("records", len(records)).
		Str("output", cfg.OutputPath).
		Msg("Batch finished")
}
