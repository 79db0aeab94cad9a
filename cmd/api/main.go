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
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/taskfolio/taskfolio-go/internal/config"
	"github.com/taskfolio/taskfolio-go/internal/handler"
	"github.com/taskfolio/taskfolio-go/internal/middleware"
	"github.com/taskfolio/taskfolio-go/internal/repository"
	"github.com/taskfolio/taskfolio-go/internal/service"
	"github.com/taskfolio/taskfolio-go/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Error("opening database failed", "error", err)
		os.Exit(1)
	}

	// Schema setup failure is non-fatal: CRUD calls will error until the
	// setup endpoint succeeds against a reachable database.
	schemaCtx, cancelSchema := context.WithTimeout(context.Background(), 10*time.Second)
	if err := repository.EnsureSchema(schemaCtx, db); err != nil {
		slog.Warn("schema setup failed on startup", "error", err)
	}
	cancelSchema()

	userRepo := repository.NewUserRepository(db)
	todoRepo := repository.NewTodoRepository(db)

	authService := service.NewAuthService(userRepo)
	todoService := service.NewTodoService(todoRepo)

	authHandler := handler.NewAuthHandler(authService)
	todoHandler := handler.NewTodoHandler(todoService)
	setupHandler := handler.NewSetupHandler(db)

	sessions := session.NewManager(authService, todoService)
	uiHandler := handler.NewUIHandler(sessions, authService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Unauthenticated by design; see HandleSetup.
	r.Post("/api/v1/setup", setupHandler.HandleSetup)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/auth/register", authHandler.HandleRegister)
		r.Post("/api/v1/auth/login", authHandler.HandleLogin)
	})

	r.Get("/api/v1/todos/{owner_id}", todoHandler.HandleList)
	r.Post("/api/v1/todos", todoHandler.HandleCreate)
	r.Patch("/api/v1/todos/{id}", todoHandler.HandleToggle)
	r.Delete("/api/v1/todos/{id}", todoHandler.HandleDelete)

	// Server-rendered page driving the session controller.
	r.Get("/", uiHandler.HandleIndex)
	r.Get("/register", uiHandler.HandleRegisterPage)
	r.Post("/register", uiHandler.HandleRegisterForm)
	r.Post("/login", uiHandler.HandleLoginForm)
	r.Post("/logout", uiHandler.HandleLogout)
	r.Post("/tasks", uiHandler.HandleAddTask)
	r.Post("/tasks/{id}/toggle", uiHandler.HandleToggleTask)
	r.Post("/tasks/{id}/delete", uiHandler.HandleDeleteTask)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
