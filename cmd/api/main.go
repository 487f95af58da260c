package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/meetmind-team/meetmind/pkg/validator"

	"github.com/meetmind-team/meetmind/internal/adapter/handler"
	"github.com/meetmind-team/meetmind/internal/adapter/repository"
	"github.com/meetmind-team/meetmind/internal/infrastructure/cache"
	"github.com/meetmind-team/meetmind/internal/infrastructure/database"
	httpmw "github.com/meetmind-team/meetmind/internal/infrastructure/http/middleware"
	"github.com/meetmind-team/meetmind/internal/infrastructure/storage"
	"github.com/meetmind-team/meetmind/internal/usecase/identity"
	"github.com/meetmind-team/meetmind/internal/usecase/ingest"
	meetinguse "github.com/meetmind-team/meetmind/internal/usecase/meeting"
	taskuse "github.com/meetmind-team/meetmind/internal/usecase/task"
	pkgai "github.com/meetmind-team/meetmind/pkg/ai"
	"github.com/meetmind-team/meetmind/pkg/config"
	"github.com/meetmind-team/meetmind/pkg/session"
)

// @title           MeetMind API
// @version         1.0
// @description     Meeting intelligence API: transcript analysis, meeting archive, task board and document storage

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "Set-Cookie", "Cookie"},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Apply migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.IsProduction() {
			log.Fatalf("DB_AUTO_MIGRATE is enabled in production. Disable it and manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations at startup (development only) ...")
		if err := database.ApplyMigrations(db); err != nil {
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping startup migrations; use cmd/migrate or CI/CD")
	}

	// Initialize cache: Redis when configured, in-memory otherwise
	var cacheStore cache.Store
	if cfg.Redis.Host != "" {
		log.Println("📦 Connecting to Redis...")
		redisStore, err := cache.NewRedisStore(cfg)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisStore.Close()
		cacheStore = redisStore
	} else {
		log.Println("📦 Redis not configured, using in-memory cache")
		cacheStore = cache.NewMemoryStore()
	}

	// Initialize object storage
	log.Println("🗄️  Connecting to object storage...")
	minioClient, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	groqClient := pkgai.NewGroqClient(&cfg.Groq)
	var transcriber ingest.Transcriber
	if cfg.Assembly.APIKey != "" {
		transcriber = pkgai.NewAssemblyAIClient(&cfg.Assembly)
	} else {
		log.Println("⚠️  AssemblyAI not configured, audio uploads will be rejected")
	}

	// Initialize services
	log.Println("✨ Initializing services...")
	identityService := identity.NewService(userRepo, cacheStore, logger)
	ingestService := ingest.NewService(meetingRepo, groqClient, transcriber, cfg.Groq.Timeout, logger)
	meetingService := meetinguse.NewService(meetingRepo, logger)
	taskService := taskuse.NewService(taskRepo, logger)

	// Initialize session verification
	log.Println("🔑 Initializing session verifier...")
	verifier := session.NewVerifier(cfg.Session.JWTSecret, cfg.Session.Issuer)
	sessionMW := httpmw.EchoSession(verifier)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	meetingHandler := handler.NewMeeting(identityService, ingestService, meetingService, minioClient, logger)
	taskHandler := handler.NewTask(identityService, taskService, logger)
	documentHandler := handler.NewDocument(identityService, minioClient, cfg.Storage.MaxUploadSize, logger)
	identityHandler := handler.NewIdentity(identityService, cfg.Identity.WebhookSecret, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, taskHandler, documentHandler, identityHandler, sessionMW)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
