package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"mechassist/internal/config"
	"mechassist/internal/db"
	"mechassist/internal/extractor"
	apihttp "mechassist/internal/http"
	"mechassist/internal/llm"
	"mechassist/internal/repository"
	"mechassist/internal/service"
	"mechassist/internal/store"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	conversations := store.NewMemoryStore(cfg.SessionCap, time.Duration(cfg.SessionIdleMinutes)*time.Minute)
	go conversations.RunJanitor(ctx, time.Minute)

	var archive repository.ExchangeArchive
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg)
		if err != nil {
			logger.Fatal("db connect", zap.Error(err))
		}
		defer pool.Close()
		archive = repository.NewPgExchangeArchive(pool)
	} else {
		logger.Warn("history archive disabled: DATABASE_URL not configured")
	}

	var limiter service.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			limiter = service.NewRedisChatRateLimiter(redisClient, time.Minute, cfg.RateLimitPerMinute)
		}
		cancel()
	}

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, time.Duration(cfg.LLMTimeoutSeconds)*time.Second, zap.NewStdLog(logger))
	recognizer := extractor.NewTesseractRecognizer()
	ext := extractor.NewExtractor(cfg.MaxUploadBytes, cfg.MaxExtractChars, recognizer)
	assembler := service.NewContextAssembler(conversations)
	chatSvc := service.NewChatService(logger, ext, assembler, llmClient, conversations, archive, cfg.HistoryTurns, cfg.HistoryCharBudget)

	chatHandler := apihttp.NewChatHandler(logger, chatSvc, conversations, archive, cfg.HistoryTurns, cfg.MaxUploadBytes, cfg.ModelName, cfg.AppVersion)
	router := apihttp.NewRouter(logger, chatHandler, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
