package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/nsight-ai/nsight-engine/pkg/config"
	"github.com/nsight-ai/nsight-engine/pkg/datasource"
	"github.com/nsight-ai/nsight-engine/pkg/handlers"
	"github.com/nsight-ai/nsight-engine/pkg/llm"
	"github.com/nsight-ai/nsight-engine/pkg/middleware"
	"github.com/nsight-ai/nsight-engine/pkg/services"
	"github.com/nsight-ai/nsight-engine/pkg/sqlguard"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("database", cfg.Database.Name),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("ai_model", cfg.AI.Model),
		zap.Bool("ai_configured", cfg.AI.IsConfigured()))

	generator, err := llm.NewGenerator(&cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	store := datasource.NewMySQL(&cfg.Database, logger)
	validator := sqlguard.NewValidator()
	synth := services.NewSQLSynthesizer(generator, &cfg.AI, logger)
	insight := services.NewInsightSynthesizer(generator, &cfg.AI, logger)
	pipeline := services.NewPipeline(store, synth, insight, validator, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewStatusHandler(cfg, store, logger).RegisterRoutes(mux)
	handlers.NewQueryHandler(pipeline, logger).RegisterRoutes(mux)
	handlers.NewDownloadHandler(logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.RequestLogger(logger)(
		middleware.CORS(cfg.AllowedOrigins)(
			middleware.Metrics()(mux)))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting nsight-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}

// newLogger builds a production logger, or a development logger for local runs.
func newLogger(env string) (*zap.Logger, error) {
	if env == "local" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
