package main

import (
	"time"

	"github.com/xaenox/pathway-assist/internal/agent"
	"github.com/xaenox/pathway-assist/internal/audit"
	"github.com/xaenox/pathway-assist/internal/bot"
	"github.com/xaenox/pathway-assist/internal/cache"
	"github.com/xaenox/pathway-assist/internal/generator"
	"github.com/xaenox/pathway-assist/internal/intent"
	"github.com/xaenox/pathway-assist/internal/orchestrator"
	"github.com/xaenox/pathway-assist/internal/persona"
	"github.com/xaenox/pathway-assist/internal/security"
	"github.com/xaenox/pathway-assist/internal/server"
	"github.com/xaenox/pathway-assist/internal/storage"
	"github.com/xaenox/pathway-assist/internal/validator"
	"github.com/xaenox/pathway-assist/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	var auditSink audit.Sink
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
		auditSink = audit.NewLogSink(logger)
	} else {
		logger.Info("Using PostgreSQL storage")
		pg, err := storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
		store = pg
		auditSink = audit.NewDBSink(pg, logger)
	}
	defer store.Close()

	// Initialize rate-limit cache
	limiterCache, err := cache.New(cache.Config{
		Backend:  cfg.Cache.Backend,
		Address:  cfg.Cache.Address,
		Password: cfg.Cache.Password,
		Database: cfg.Cache.Database,
	})
	if err != nil {
		logger.Fatal("Failed to initialize cache", zap.Error(err))
	}
	defer limiterCache.Close()

	// Initialize security scanner
	limiter := security.NewRateLimiter(
		limiterCache,
		cfg.Security.RateLimit,
		time.Duration(cfg.Security.RateWindowSeconds)*time.Second,
		logger,
	)
	scanner := security.NewScanner(limiter, auditSink, logger)

	// Initialize persona detection
	var personaStore persona.Store
	if cfg.Personas.File != "" {
		personaStore, err = persona.NewFileStore(cfg.Personas.File)
		if err != nil {
			logger.Fatal("Failed to load personas", zap.Error(err), zap.String("path", cfg.Personas.File))
		}
	} else {
		logger.Info("No persona file configured, detection will return generic treatment")
		personaStore = persona.NewStaticStore(nil)
	}
	detector := persona.NewDetector(personaStore, persona.DefaultMinConfidence, logger)

	// Initialize intent classification and response generation
	classifier := intent.NewGPTClassifier(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)
	gen := generator.NewOpenAIGenerator(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)

	// Initialize routing
	router := agent.NewRouter(agent.FeatureFlags{
		RollbackToOriginal: cfg.Routing.RollbackToOriginal,
		UseCareerTracks:    cfg.Routing.UseCareerTracks,
		CareerTrackRollout: cfg.Routing.CareerTrackRollout,
	}, logger)

	o := orchestrator.New(
		scanner,
		classifier,
		detector,
		router,
		gen,
		validator.New(cfg.Security.StaffNames),
		store,
		personaStore,
		logger,
	)

	// Optional Telegram transport
	if cfg.Telegram.Enabled {
		b, err := bot.New(cfg.Telegram.Token, o, logger)
		if err != nil {
			logger.Fatal("Failed to create bot", zap.Error(err))
		}
		go func() {
			if err := b.Start(); err != nil {
				logger.Error("Bot error", zap.Error(err))
			}
		}()
	}

	// Start the HTTP server
	srv := server.New(o, logger)
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
