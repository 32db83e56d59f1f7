package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/auth"
	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/item"
	"github.com/Onkar-Kul/simple-inventory-management/internal/modules/user"
	"github.com/Onkar-Kul/simple-inventory-management/pkg/database"
	"github.com/Onkar-Kul/simple-inventory-management/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, reading configuration from environment")
	}

	zlog, err := logger.New()
	if err != nil {
		log.Fatal(err)
	}
	defer zlog.Sync()

	db, err := database.Connect(os.Getenv("DATABASE_URL"))
	if err != nil {
		zlog.Fatalw("database connect failed", "err", err)
	}
	defer db.Close()

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisClient := redis.NewClient(&redis.Options{Addr: redisAddr})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		zlog.Fatalw("redis connect failed", "addr", redisAddr, "err", err)
	}
	cancel()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		zlog.Fatal("JWT_SECRET is required")
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(logger.RequestLogger(zlog))

	// ── Accounts ────────────────────────────────────────────
	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)
	user.NewHandler(userService, zlog).RegisterRoutes(router)

	issuer := auth.NewTokenIssuer(secret)
	authService := auth.NewService(userRepo, issuer)
	auth.NewHandler(authService, zlog).RegisterRoutes(router)

	// ── Items ───────────────────────────────────────────────
	itemRepo := item.NewPostgresRepository(db)
	itemCache := item.NewRedisCache(redisClient)
	itemService := item.NewService(itemRepo, itemCache, zlog)
	item.NewHandler(itemService, zlog).RegisterRoutes(router, auth.RequireAuth(issuer, userRepo, zlog))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// ── Start Server ─────────────────────────────────────────
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	zlog.Infow("inventory API server starting", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		zlog.Fatalw("server closed", "err", err)
	}
}
