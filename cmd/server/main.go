package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pointdeck/pointdeck/internal/broadcast"
	"github.com/pointdeck/pointdeck/internal/common/clock"
	"github.com/pointdeck/pointdeck/internal/common/uuid"
	"github.com/pointdeck/pointdeck/internal/handlers/ws"
	"github.com/pointdeck/pointdeck/internal/repositories/connection"
	"github.com/pointdeck/pointdeck/internal/services/estimation"
	"github.com/skip2/go-qrcode"

	sessionRepo "github.com/pointdeck/pointdeck/internal/repositories/session"
)

const (
	sweepInterval = 30 * time.Minute

	// sweepGrace spares sessions too young to have seen their first join
	sweepGrace = 10 * time.Minute
)

func main() {
	// Load optional .env overrides before reading the environment
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize repositories
	sessions, err := sessionRepo.NewMemory(&sessionRepo.Config{
		Clock: &clock.DefaultClock{},
	})
	if err != nil {
		logger.Error("failed to create session repository", "error", err)
		os.Exit(1)
	}

	registry := connection.NewMemory()

	caster, err := broadcast.New(&broadcast.Config{
		Registry: registry,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to create broadcaster", "error", err)
		os.Exit(1)
	}

	// Initialize estimation service
	service, err := estimation.New(&estimation.Config{
		SessionRepo:   sessions,
		Registry:      registry,
		Broadcaster:   caster,
		UUIDGenerator: uuid.New(),
	})
	if err != nil {
		logger.Error("failed to create estimation service", "error", err)
		os.Exit(1)
	}

	handler, err := ws.New(&ws.Config{
		Service: service,
		Logger:  logger,
	})
	if err != nil {
		logger.Error("failed to create websocket handler", "error", err)
		os.Exit(1)
	}

	// Periodic backstop for sessions that were created but never joined;
	// normal deletion happens eagerly when the last user leaves.
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		for range ticker.C {
			if count := sessions.PurgeEmpty(context.Background(), &sessionRepo.PurgeEmptyInput{
				OlderThan: sweepGrace,
			}); count > 0 {
				logger.Info("purged empty sessions", "count", count)
			}
		}
	}()

	addr := getEnv("ADDR", ":8080")
	staticDir := getEnv("STATIC_DIR", "./static")
	publicURL := getEnv("PUBLIC_URL", "http://localhost:8080")

	router := gin.Default()

	// Serve the client application
	router.Static("/static", staticDir)
	router.StaticFile("/", filepath.Join(staticDir, "index.html"))
	router.GET("/session/:code", func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "index.html"))
	})

	// QR code for sharing a session's join link
	router.GET("/api/sessions/:code/qr", func(c *gin.Context) {
		link := fmt.Sprintf("%s/session/%s", publicURL, c.Param("code"))
		png, err := qrcode.Encode(link, qrcode.Medium, 256)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	})

	// Real-time command channel
	router.GET("/ws", handler.Serve)

	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Keep serving until interrupted
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown failed", "error", err)
	}
}

// getEnv returns the environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
