// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alignd-app/alignd-backend/internal/auth"
	"github.com/alignd-app/alignd-backend/internal/common/database"
	"github.com/alignd-app/alignd-backend/internal/config"
	"github.com/alignd-app/alignd-backend/internal/matching"
	"github.com/alignd-app/alignd-backend/internal/profile"
)

var startTime = time.Now()

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Alignd Matching API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load and validate configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Printf("✅ Configuration loaded (scoring strategy: %s)", cfg.ScoringStrategy)

	// 3. Connect to PostgreSQL
	log.Println("\n🗄️  Step 3: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 4. Connect to Redis (optional; score caching degrades gracefully)
	log.Println("\n📮 Step 4: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClientFromURL(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without score cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping score cache")
	}

	// 5. Run database migrations
	log.Println("\n🔨 Step 5: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations:", err)
	}
	log.Println("✅ Database migrations completed")

	// 6. Auth
	log.Println("\n🔐 Step 6: Initializing auth...")
	authService := auth.NewService(&auth.Config{
		JWTSecret:          cfg.JWTSecret,
		AccessTokenExpiry:  cfg.AccessTokenExpiry,
		RefreshTokenExpiry: cfg.RefreshTokenExpiry,
	})
	authMiddleware := auth.NewMiddleware(authService)
	log.Println("✅ Auth initialized")

	// 7. Matching services
	log.Println("\n💘 Step 7: Initializing matching services...")
	scorer := matching.NewScoringStrategy(cfg.ScoringStrategy)
	scoreCache := matching.NewScoreCache(redisClient, cfg.ScoreCacheTTL)

	hub := matching.NewHub()
	go hub.Run()

	matchingRepo := matching.NewPostgresRepository(db)
	matchingService := matching.NewService(matchingRepo, scorer, scoreCache, hub, matching.Options{
		DefaultPageSize: cfg.DefaultPageSize,
		MaxPageSize:     cfg.MaxPageSize,
	})
	matchingHandler := matching.NewHandler(matchingService)
	log.Println("✅ Matching services initialized")

	// 8. Profile services
	log.Println("\n👤 Step 8: Initializing profile services...")
	profileRepo := profile.NewPostgresRepository(db)
	profileService := profile.NewService(profileRepo, scoreCache)
	profileHandler := profile.NewHandler(profileService, authService)
	log.Println("✅ Profile services initialized")

	// 9. Router
	log.Println("\n🌐 Step 9: Setting up routes...")
	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	matching.RegisterRoutes(router, matchingHandler, hub, authMiddleware)
	profile.RegisterRoutes(router, profileHandler, authMiddleware)
	log.Println("✅ Routes registered")

	// 10. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(startTime).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// runMigrations executes database migrations
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id BIGSERIAL PRIMARY KEY,
            display_name VARCHAR(100) NOT NULL,
            gender VARCHAR(2) NOT NULL,
            date_of_birth DATE NOT NULL,
            height_cm INTEGER NOT NULL,
            location_lat DOUBLE PRECISION,
            location_lng DOUBLE PRECISION,
            religion INTEGER NOT NULL DEFAULT 0,
            child_status INTEGER NOT NULL DEFAULT 0,
            deactivated BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS preferences (
            user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            sexual_preference VARCHAR(2) NOT NULL,
            age_low INTEGER NOT NULL,
            age_high INTEGER NOT NULL,
            height_low INTEGER NOT NULL,
            height_high INTEGER NOT NULL,
            values_low INTEGER NOT NULL DEFAULT 50,
            values_high INTEGER NOT NULL DEFAULT 100,
            max_distance_km DOUBLE PRECISION NOT NULL DEFAULT 50,
            like_filter INTEGER NOT NULL DEFAULT 0,
            religion INTEGER NOT NULL DEFAULT 0,
            child_status INTEGER NOT NULL DEFAULT 0,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS value_results (
            user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
            self_direction DOUBLE PRECISION NOT NULL,
            stimulation DOUBLE PRECISION NOT NULL,
            hedonism DOUBLE PRECISION NOT NULL,
            achievement DOUBLE PRECISION NOT NULL,
            power DOUBLE PRECISION NOT NULL,
            security DOUBLE PRECISION NOT NULL,
            conformity DOUBLE PRECISION NOT NULL,
            tradition DOUBLE PRECISION NOT NULL,
            benevolence DOUBLE PRECISION NOT NULL,
            universalism DOUBLE PRECISION NOT NULL,
            completed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`,

		`CREATE TABLE IF NOT EXISTS likes (
            liker_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            liked_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (liker_id, liked_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_likes_liked_id ON likes(liked_id)`,

		`CREATE TABLE IF NOT EXISTS matches (
            user1_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            user2_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            matched_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            PRIMARY KEY (user1_id, user2_id),
            CHECK (user1_id < user2_id)
        )`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user2_id ON matches(user2_id)`,

		`CREATE TABLE IF NOT EXISTS match_notifications (
            id UUID PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            other_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
            seen BOOLEAN NOT NULL DEFAULT FALSE
        )`,
		`CREATE INDEX IF NOT EXISTS idx_match_notifications_user_id ON match_notifications(user_id) WHERE NOT seen`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
