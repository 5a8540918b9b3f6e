package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/stresswell/stress-backend/internal/chatbot"
	"github.com/stresswell/stress-backend/internal/config"
	"github.com/stresswell/stress-backend/internal/handler"
	"github.com/stresswell/stress-backend/internal/model"
	"github.com/stresswell/stress-backend/internal/service"
	"github.com/stresswell/stress-backend/internal/storage"
	"github.com/stresswell/stress-backend/internal/ws"

	_ "github.com/stresswell/stress-backend/docs" // Swagger docs
)

// @title Stress Wellness API
// @version 1.0
// @description REST API приложения для мониторинга стресса: классификация уровня
// @description стресса обученной моделью, история предсказаний, дневник настроения,
// @description отчеты и чат поддержки.

// @contact.name API Support
// @contact.email support@stresswell.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http

func main() {
	cfg := config.Load()

	// Хранилище выбирается конфигурацией; сервис не знает, какой бэкенд внутри
	repo, err := openStorage(cfg)
	if err != nil {
		log.Fatalf("[ERROR] Failed to open storage: %v", err)
	}
	defer repo.Close()
	log.Printf("[INFO] Connected to %s storage", repo.Name())

	// Модель загружается один раз при старте. Без модели сервис продолжает
	// работать: /predict отвечает 503, остальные операции не затронуты.
	var predictor service.Predictor
	if p, err := model.LoadPredictor(cfg.ModelPath); err != nil {
		log.Printf("[WARN] Model not loaded from %s: %v", cfg.ModelPath, err)
		log.Printf("[WARN] Prediction endpoint will be unavailable")
	} else {
		predictor = p
		log.Printf("[INFO] Model loaded from %s", cfg.ModelPath)
	}

	// Redis необязателен: без него отчеты просто не кэшируются
	var cache service.Cache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			log.Printf("[WARN] Redis unavailable at %s, caching disabled: %v", cfg.RedisAddr, err)
		} else {
			cache = storage.NewRedisCache(client)
			defer client.Close()
			log.Printf("[INFO] Connected to Redis at %s", cfg.RedisAddr)
		}
	}

	// Чат: LLM при наличии ключа, иначе только словарь по ключевым словам
	var generator chatbot.Generator
	if cfg.GeminiAPIKey != "" {
		generator = chatbot.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		log.Printf("[INFO] Chat LLM enabled (%s)", cfg.GeminiModel)
	} else {
		log.Printf("[INFO] GEMINI_API_KEY not set, chat uses keyword fallback only")
	}
	bot := chatbot.NewBot(generator)

	hub := ws.NewHub()
	go hub.Run()

	wellnessService := service.NewWellnessService(repo, cache, hub, predictor, bot)
	httpHandler := handler.NewHTTPHandler(wellnessService)

	router := mux.NewRouter()
	httpHandler.RegisterRoutes(router)
	router.HandleFunc("/ws", hub.HandleWebSocket)

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	server := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      enableCORS(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("[INFO] Server starting on port %s", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[ERROR] Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("[INFO] Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("[ERROR] Server forced to shutdown: %v", err)
	}

	log.Println("[INFO] Server exited gracefully")
}

// openStorage создает репозиторий для настроенного бэкенда
func openStorage(cfg *config.Config) (service.Repository, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		return storage.NewPostgresRepository(cfg.PostgresDSN)
	case config.StorageMongoDB:
		return storage.NewMongoRepository(cfg.MongoURI, cfg.MongoDatabase)
	default:
		return storage.NewSQLiteRepository(cfg.SQLitePath)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			return
		}

		next.ServeHTTP(w, r)
	})
}
