package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"reminisce/internal/backend"
	"reminisce/internal/cloudinary"
	"reminisce/internal/config"
	"reminisce/internal/session"
	"reminisce/internal/web"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(cfg config.App) error {
	sessions, cleanup, err := newSessionStore(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	client := backend.New(cfg.BackendURL)

	var host *cloudinary.Client
	if cfg.CloudinaryCloudName != "" && cfg.CloudinaryUploadPreset != "" {
		host = cloudinary.New(cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset,
			cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryFolder)
		log.Println("image host configured:", cfg.CloudinaryCloudName)
	} else {
		log.Println("image host not configured (CLOUDINARY_CLOUD_NAME / CLOUDINARY_UPLOAD_PRESET not set)")
	}

	server := web.NewServer(cfg, client, host, sessions)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("starting server on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced shutdown: %v", err)
	}

	log.Println("server exited")
	return nil
}

// newSessionStore picks the session backing from config. The returned
// cleanup closes the backing when it owns a connection pool.
func newSessionStore(cfg config.App) (session.Store, func(), error) {
	switch cfg.SessionBackend {
	case "redis":
		store := session.NewRedis(cfg.RedisAddr, cfg.SessionTTL)
		if !store.Healthy(context.Background()) {
			log.Printf("warning: redis not reachable at %s", cfg.RedisAddr)
		}
		return store, func() {}, nil
	case "postgres":
		store, err := session.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return session.NewMemory(), func() {}, nil
	}
}
