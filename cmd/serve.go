package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nt-noc/comparedash/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard API locally",
	Long:  "Hosts a local JSON API over the derivation pipeline: job selection, the two independent filter views, the report model, and export downloads.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		session := store.NewSession(apiClient())
		srvState := newServeState(session)
		r := newServeRouter(srvState, cfg.Server.AllowedOrigins)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()

		zap.L().Info("dashboard API listening", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	},
}

// newServeRouter builds the dashboard API mux over the shared state.
func newServeRouter(srvState *serveState, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type", "X-Admin-Token"},
	}))

	r.Get("/health", srvState.handleHealth)
	r.Get("/api/jobs", srvState.handleJobs)
	r.Post("/api/jobs/{jobID}/select", srvState.handleSelectJob)
	r.Put("/api/filters/records", srvState.handleSetRecordFilters)
	r.Put("/api/filters/summary", srvState.handleSetSummaryFilters)
	r.Put("/api/filters/report", srvState.handleSetReportFilters)
	r.Get("/api/views/records", srvState.handleRecordsView)
	r.Get("/api/views/summary", srvState.handleSummaryView)
	r.Get("/api/views/report", srvState.handleReportView)
	r.Get("/api/lookups", srvState.handleLookups)
	r.Get("/api/export/xlsx", srvState.handleExportXLSX)
	r.Get("/api/export/png", srvState.handleExportPNG)
	r.Get("/api/export/pdf", srvState.handleExportPDF)
	return r
}

// requestLogger tags every request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)
		start := time.Now()
		next.ServeHTTP(w, r)
		zap.L().Debug("request",
			zap.String("request_id", reqID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
