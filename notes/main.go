package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notes/notes/config"
	"notes/notes/controllers"
	"notes/notes/middlewares"
	"notes/notes/routes"
	"notes/notes/sources/psql"
	"notes/notes/sources/psql/dao"
	"notes/notes/sources/realtime"
	"notes/notes/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		logging.ErrorLogger.Error("notes server stopped", zap.Error(err))
		logging.AppLogger.Error("notes server stopped", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadConfig()
	if err := logging.InitLogger(cfg.LogDir); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logging:", err)
		return err
	}
	defer logging.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	db, err := psql.NewDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}

	hub := realtime.NewHub()
	defer hub.Close()

	notesCtrl := controllers.NewNotesController(dao.NewNoteDAO(db.DB), hub)
	healthCtrl := controllers.NewHealthController(sqlDB)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewares.RequestLogger(logging.RequestLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// websocket subscribers outlive the request timeout
	r.Mount("/ws", routes.RealtimeRoutes(hub))

	r.Group(func(gr chi.Router) {
		gr.Use(middleware.Timeout(60 * time.Second))
		gr.Mount("/notes", routes.NotesRoutes(notesCtrl))
		gr.Mount("/health", routes.HealthRoutes(healthCtrl))
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logging.AppLogger.Info("notes server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		return fmt.Errorf("server listen error: %w", err)
	case <-sigCh:
	}

	hub.Close()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	logging.AppLogger.Info("server shutdown complete")
	return nil
}
