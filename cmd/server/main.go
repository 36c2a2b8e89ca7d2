package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/viper"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/tourdesk/backend/docs"
	"github.com/tourdesk/backend/internal/audit"
	"github.com/tourdesk/backend/internal/billing"
	"github.com/tourdesk/backend/internal/cache"
	"github.com/tourdesk/backend/internal/config"
	"github.com/tourdesk/backend/internal/database"
	"github.com/tourdesk/backend/internal/handlers"
	"github.com/tourdesk/backend/internal/metrics"
	mW "github.com/tourdesk/backend/internal/middleware"
	"github.com/tourdesk/backend/internal/repositories"
	"github.com/tourdesk/backend/internal/services"
)

// @title Tour Desk Payments API
// @version 1.0
// @description Payment allocation and installment engine for travel agency trips
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("[CONFIG] No .env file loaded: %v", err)
	}

	// Initialize config
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.name", "DATABASE_NAME")
	viper.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	viper.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")
	viper.BindEnv("database.max_idle_conns", "DATABASE_MAX_IDLE_CONNS")
	viper.BindEnv("database.connect_timeout", "DATABASE_CONNECT_TIMEOUT")

	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")
	viper.BindEnv("redis.db", "REDIS_DB")

	viper.BindEnv("jwt.secret_key", "JWT_SECRET_KEY")

	viper.BindEnv("billing.deadline_offset_days", "BILLING_DEADLINE_OFFSET_DAYS")
	viper.BindEnv("billing.installment_interval_days", "BILLING_INSTALLMENT_INTERVAL_DAYS")
	viper.BindEnv("billing.tolerance", "BILLING_TOLERANCE")
	viper.BindEnv("billing.overpayment_guard", "BILLING_OVERPAYMENT_GUARD")
	viper.BindEnv("billing.timezone", "BILLING_TIMEZONE")
	viper.BindEnv("billing.snapshot_ttl", "BILLING_SNAPSHOT_TTL")

	viper.BindEnv("server.port", "PORT")
	viper.SetDefault("server.port", "8080")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("[CONFIG] Config file not found, using defaults: %v", err)
	}

	if viper.GetString("jwt.secret_key") == "" {
		log.Fatal("[CONFIG] JWT_SECRET_KEY is required")
	}

	docs.SwaggerInfo.Title = "Tour Desk Payments API"
	docs.SwaggerInfo.Description = "Payment allocation and installment engine for travel agency trips"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + viper.GetString("server.port")
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http", "https"}

	// Initialize storage
	db, err := database.InitDatabase(context.Background(), database.LoadPostgresConfig())
	if err != nil {
		log.Fatalf("[DATABASE] Failed to initialize database: %v", err)
	}
	defer db.Close()

	schemaCtx, schemaCancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(schemaCtx, db); err != nil {
		schemaCancel()
		log.Fatalf("[DATABASE] Failed to ensure schema: %v", err)
	}
	schemaCancel()

	redisClient := database.InitRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	// Initialize services
	billingConfig := config.LoadBillingConfig()
	appMetrics := metrics.New(prometheus.DefaultRegisterer)
	snapshots := cache.NewSnapshotCache(redisClient, billingConfig.SnapshotTTL)
	auditLogger := audit.NewLogger()

	paymentService := services.NewPaymentService(
		repositories.NewPostgresStore(db),
		repositories.NewTourRepository(db),
		billing.SystemClock{Location: billingConfig.Location},
		billingConfig,
		snapshots,
		appMetrics,
		auditLogger,
	)

	paymentHandler := handlers.NewPaymentHandler(paymentService)
	planHandler := handlers.NewPlanHandler(paymentService)

	// Setup router
	r := chi.NewRouter()

	r.Use(mW.SecurityHeaders)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Snapshot-Stale"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(mW.AuthMiddleware)

			paymentHandler.Routes(r)
			planHandler.Routes(r)
		})
	})

	port := viper.GetString("server.port")

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("[HTTP] Server starting on :%s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[HTTP] Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[HTTP] Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("[HTTP] Server forced to shutdown:", err)
	}

	log.Println("[HTTP] Server stopped")
}
