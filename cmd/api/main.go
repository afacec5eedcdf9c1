package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/fitizen/fitizen-go/internal/config"
	"github.com/fitizen/fitizen-go/internal/handler"
	"github.com/fitizen/fitizen-go/internal/mailer"
	"github.com/fitizen/fitizen-go/internal/middleware"
	"github.com/fitizen/fitizen-go/internal/repository"
	"github.com/fitizen/fitizen-go/internal/service"
	"github.com/fitizen/fitizen-go/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := repository.NewDB(startupCtx, cfg.DatabaseDSN)
	cancelStartup()
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	exerciseRepo := repository.NewExerciseRepository(db)
	programRepo := repository.NewProgramRepository(db)

	var mail mailer.Mailer
	if cfg.Env == "production" {
		mail = mailer.NewSMTPMailer(mailer.SMTPConfig{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			From:     cfg.SMTPFrom,
			Password: cfg.SMTPPassword,
		})
	} else {
		mail = mailer.NewLogMailer()
	}

	sessions := session.NewManager(sessionRepo, userRepo, cfg.AuthSecret, cfg.SessionTTL, cfg.Env == "production")

	authService := service.NewAuthService(userRepo, sessions, mail, cfg.AuthSecret, cfg.MagicLinkTTL, cfg.Origin)
	authHandler := handler.NewAuthHandler(authService)

	exerciseService := service.NewExerciseService(exerciseRepo)
	exerciseHandler := handler.NewExerciseHandler(exerciseService)

	programService := service.NewProgramService(programRepo)
	programHandler := handler.NewProgramHandler(programService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
		r.Get("/validate-magic-link", authHandler.HandleValidateMagicLink)
	})

	r.Post("/api/v1/auth/setup-profile", authHandler.HandleSetupProfile)
	r.Post("/api/v1/auth/logout", authHandler.HandleLogout)
	r.Get("/api/v1/auth/me", authHandler.HandleMe)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireSession(sessions))
		r.Get("/api/v1/exercises/search", exerciseHandler.HandleSearch)
		r.Post("/api/v1/exercises/search", exerciseHandler.HandleSearch)
		r.Get("/api/v1/exercises/body-focus", exerciseHandler.HandleListByBodyFocus)
		r.Get("/api/v1/programs", programHandler.HandleProgramName)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	reaperCtx, stopReaper := context.WithCancel(context.Background())
	go reapExpiredSessions(reaperCtx, sessionRepo)

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	stopReaper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}

// reapExpiredSessions periodically drops sessions past their deadline.
// Expiry is also enforced on read; this just keeps the table small.
func reapExpiredSessions(ctx context.Context, sessions *repository.SessionRepository) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				slog.Warn("session reaper failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("expired sessions removed", "count", n)
			}
		}
	}
}
