package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/smartcard-app/smartcard-golang/internal/analytics"
	"github.com/smartcard-app/smartcard-golang/internal/auth"
	"github.com/smartcard-app/smartcard-golang/internal/config"
	"github.com/smartcard-app/smartcard-golang/internal/database"
	"github.com/smartcard-app/smartcard-golang/internal/handlers"
	"github.com/smartcard-app/smartcard-golang/internal/logger"
	"github.com/smartcard-app/smartcard-golang/internal/repository"
	"github.com/smartcard-app/smartcard-golang/internal/routes"
	"github.com/smartcard-app/smartcard-golang/internal/storefront"
	"github.com/smartcard-app/smartcard-golang/internal/tenanthost"
)

func main() {
	// --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Log.Level, cfg.IsDevelopment())
	defer zlog.Sync()

	// --- Database Connection ---
	db, err := database.Open(cfg.Database)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()
	zlog.Info("Database connection pool established")

	// --- Wiring ---
	repo := repository.NewMySQL(db)
	assembler := storefront.NewAssembler(repo, zlog)

	dispatcher := analytics.NewDispatcher(analytics.NewMySQLRecorder(db), zlog, 2*time.Second)
	defer dispatcher.Close()

	app := &handlers.Handlers{
		Repo:           repo,
		Storefront:     assembler,
		Analytics:      dispatcher,
		Auth:           auth.NewManager(cfg.JWT.Secret, cfg.JWT.TokenTTL),
		Log:            zlog,
		PlatformDomain: cfg.Platform.Domain,
	}

	router := routes.SetupRouter(app, cfg.CORS.AllowOrigin)

	// The tenant-host rewriter sits in front of the router so that
	// <slug>.<platform-domain> requests are folded into /:slug form
	// before any route matching happens.
	resolver := tenanthost.New(cfg.Platform.Domain)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      resolver.Rewriter(router),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// --- Start Server ---
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		zlog.Info("Starting SmartCard API server",
			zap.String("addr", srv.Addr),
			zap.String("platformDomain", cfg.Platform.Domain))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("Graceful shutdown failed", zap.Error(err))
	}
}
