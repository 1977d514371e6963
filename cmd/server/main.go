package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/commhendrix/academic-portfolio/internal/auth"
	"github.com/commhendrix/academic-portfolio/internal/config"
	"github.com/commhendrix/academic-portfolio/internal/cv"
	"github.com/commhendrix/academic-portfolio/internal/meeting"
	"github.com/commhendrix/academic-portfolio/internal/middleware"
	"github.com/commhendrix/academic-portfolio/internal/store"
)

func main() {
	cfg := config.Load()
	if cfg.SessionSecret == "" {
		log.Fatal("SESSION_SECRET is required")
	}
	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	pgPool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	defer pgPool.Close()
	pgStore := store.NewPostgresStore(pgPool)
	if err := pgStore.Migrate(ctx); err != nil {
		log.Fatalf("postgres migrate: %v", err)
	}
	if err := auth.EnsureAdminExists(ctx, pgStore); err != nil {
		log.Fatalf("admin bootstrap: %v", err)
	}

	// ── MongoDB ──────────────────────────────────────────────
	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}
	defer mongoClient.Disconnect(ctx)
	cvStore := store.NewMongoCVStore(mongoClient.Database(cfg.MongoDB))
	if err := cv.EnsureSeeded(ctx, cvStore); err != nil {
		log.Fatalf("cv seed: %v", err)
	}

	// ── Redis ────────────────────────────────────────────────
	rdb, err := store.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer rdb.Close()
	sessions := auth.NewRedisSessions(rdb)
	cookies := auth.NewCookieCodec(cfg.SessionSecret, cfg.Production())

	// ── MinIO ────────────────────────────────────────────────
	minioStore, err := store.NewMinioStore(
		ctx, cfg.MinioEndpoint, cfg.MinioAccessKey,
		cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL,
	)
	if err != nil {
		log.Fatalf("minio connect: %v", err)
	}

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(pgStore, sessions, cookies)
	meetingHandler := meeting.NewHandler(pgStore)
	cvHandler := cv.NewHandler(cvStore, minioStore)

	requireAuth := middleware.RequireAuth(cookies, sessions, pgStore)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)
	r.Post("/api/logout", authHandler.Logout)
	r.Get("/api/user", authHandler.Me)

	// Meeting booking routes
	r.Route("/api/meetings", func(r chi.Router) {
		r.Get("/date/{date}", meetingHandler.BookedSlots)
		r.With(requireAuth).Get("/", meetingHandler.List)
		r.With(requireAuth).Post("/", meetingHandler.Create)
	})

	// CV routes
	r.Route("/api/cv", func(r chi.Router) {
		r.Get("/", cvHandler.Get)
		r.Get("/pdf", cvHandler.DownloadPDF)
		r.With(requireAuth, middleware.RequireAdmin).Put("/", cvHandler.Update)
		r.With(requireAuth, middleware.RequireAdmin).Put("/pdf", cvHandler.UploadPDF)
	})

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Printf("Backend listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down...")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
