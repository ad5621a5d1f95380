package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "qa-forum/internal/handler/http"
	gormpersistence "qa-forum/internal/infra/persistence/gorm"
	"qa-forum/internal/infra/setup"
	"qa-forum/internal/middleware"
	"qa-forum/internal/service"
)

// Config is loaded from the environment, optionally seeded from a .env file.
type Config struct {
	AppEnv         string
	LogLevel       string
	ServerPort     string
	DB             setup.DBOptions
	JWTSecret      string
	JWTExpiryHours int
	AllowedOrigins []string
	FrontendDir    string

	// Rate limiting is enabled only when RedisAddr is set.
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	KeyPrefix       string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// LoadConfig reads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // a missing .env file is fine

	cfg := &Config{
		AppEnv:     envOr("APP_ENV", "development"),
		LogLevel:   envOr("LOG_LEVEL", "info"),
		ServerPort: envOr("SERVER_PORT", "8000"),
		DB: setup.DBOptions{
			Driver:          envOr("DB_DRIVER", setup.DriverSQLite),
			DSN:             os.Getenv("DB_DSN"),
			Path:            envOr("DB_PATH", "qa_forum.db"),
			Host:            os.Getenv("DB_HOST"),
			Port:            os.Getenv("DB_PORT"),
			User:            os.Getenv("DB_USER"),
			Password:        os.Getenv("DB_PASSWORD"),
			Name:            os.Getenv("DB_NAME"),
			MaxOpenConns:    50,
			MaxIdleConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		JWTSecret:       os.Getenv("JWT_SECRET"),
		JWTExpiryHours:  24,
		AllowedOrigins:  splitList(envOr("CORS_ALLOWED_ORIGINS", "http://127.0.0.1:5173,http://localhost:5173")),
		FrontendDir:     os.Getenv("FRONTEND_DIR"),
		RedisAddr:       os.Getenv("REDIS_ADDR"),
		RedisPassword:   os.Getenv("REDIS_PASSWORD"),
		KeyPrefix:       envOr("REDIS_KEY_PREFIX", "qa:"),
		RateLimitMax:    100,
		RateLimitWindow: time.Second,
	}

	var err error
	if cfg.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.JWTExpiryHours, err = intEnv("JWT_EXPIRY_HOURS", cfg.JWTExpiryHours); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = intEnv("RATE_LIMIT_MAX", cfg.RateLimitMax); err != nil {
		return nil, err
	}
	if raw := os.Getenv("RATE_LIMIT_WINDOW"); raw != "" {
		if cfg.RateLimitWindow, err = time.ParseDuration(raw); err != nil {
			return nil, fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
		}
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("environment variable JWT_SECRET must be set")
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}
	return cfg, nil
}

// App holds every long-lived component of the server.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	HttpServer  *http.Server
}

// NewApp connects the infrastructure, migrates and seeds the database and
// assembles the HTTP server.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := NewLogger(cfg)
	log.Info("Configuration loaded successfully")

	db, err := setup.InitDB(cfg.DB, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}
	log.Info("Database migrated")

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient, err = setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
		log.Info("Redis client initialized")
	}

	userRepo := gormpersistence.NewGormUserRepository(db)
	questionRepo := gormpersistence.NewGormQuestionRepository(db)
	answerRepo := gormpersistence.NewGormAnswerRepository(db)
	transactor := gormpersistence.NewGormTransactor(db)

	authService, err := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiryHours)
	if err != nil {
		return nil, fmt.Errorf("failed to create AuthService: %w", err)
	}
	questionService := service.NewQuestionService(questionRepo, transactor)
	answerService := service.NewAnswerService(answerRepo, questionRepo, transactor)
	log.Info("Services initialized")

	// A failed seed is logged and does not stop the server.
	seeder := &Seeder{Users: userRepo, Questions: questionRepo, Auth: authService, QuestionService: questionService, Log: log}
	if err := seeder.Seed(context.Background()); err != nil {
		log.WithError(err).Error("Seeding test data failed")
	}

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	opts := RouterOptions{
		JWTSecret:      cfg.JWTSecret,
		AllowedOrigins: cfg.AllowedOrigins,
		FrontendDir:    cfg.FrontendDir,
		Log:            log,
	}
	if redisClient != nil {
		opts.RateLimiter = middleware.RateLimit(redisClient, cfg.KeyPrefix, cfg.RateLimitMax, cfg.RateLimitWindow)
	}
	router, err := NewRouter(Handlers{
		Auth:     httpHandler.NewAuthHandler(authService),
		Question: httpHandler.NewQuestionHandler(questionService),
		Answer:   httpHandler.NewAnswerHandler(answerService),
	}, opts)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		HttpServer:  httpServer,
	}, nil
}

// NewLogger builds the application logger: JSON in production, coloured text
// otherwise.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	// Packages log through the standard logger; keep it in line.
	logrus.SetFormatter(log.Formatter)
	logrus.SetLevel(level)
	return log
}

// Start serves HTTP in the background.
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server starting to listen on %s", a.HttpServer.Addr)
		if err := a.HttpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
		a.Log.Info("HTTP server stopped listening.")
	}()
}

// Shutdown stops the HTTP server and closes the connections.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HttpServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully.")
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	if sqlDB, err := a.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			a.Log.Errorf("Error closing database connection: %v", err)
		} else {
			a.Log.Info("Database connection closed.")
		}
	}

	a.Log.Info("Application shutdown complete.")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
