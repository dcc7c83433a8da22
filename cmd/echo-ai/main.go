package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/KushalZanzari/Echo-AI/internal/api"
	"github.com/KushalZanzari/Echo-AI/internal/api/account"
	"github.com/KushalZanzari/Echo-AI/internal/api/assistant"
	"github.com/KushalZanzari/Echo-AI/internal/api/workspace"
	"github.com/KushalZanzari/Echo-AI/internal/config"
	"github.com/KushalZanzari/Echo-AI/internal/extract"
	"github.com/KushalZanzari/Echo-AI/internal/llm"
	"github.com/KushalZanzari/Echo-AI/internal/repository"
	"github.com/KushalZanzari/Echo-AI/internal/service"
	"github.com/KushalZanzari/Echo-AI/internal/session"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// .env first so GROQ_API_KEY and friends are visible to viper
	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Database holds accounts and the per-user key-value store
	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	kvRepo := repository.NewKVRepository(db)

	// Collaborators: LLM completion client and text extraction
	completer := llm.New(cfg.LLM, logger)
	extractor := extract.NewService(logger)

	authService := service.NewAuthService(userRepo, cfg.Auth, logger)

	// Session core: history store over the sqlite snapshot backend, one
	// controller per signed-in user
	historyStore := session.NewHistoryStore(repository.NewHistoryBackend(kvRepo))
	sessionManager := session.NewManager(historyStore, completer, extractor, logger)

	router := api.SetupRouter(
		account.NewHandler(authService),
		assistant.NewHandler(completer, extractor, cfg.Upload.MaxBytes),
		workspace.NewHandler(sessionManager, kvRepo),
		authService,
		api.RouterConfig{RateLimit: cfg.RateLimit},
	)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting Echo AI server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
			zap.String("model", cfg.LLM.Model),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
