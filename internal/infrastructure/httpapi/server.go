// Package httpapi exposes the agent over HTTP: query answering, session
// history and a status probe. Presentation only; all decision logic stays
// in the usecases.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/google/uuid"

	"github.com/arinjayjha/calc-research-agent/internal/application/port/input"
	"github.com/arinjayjha/calc-research-agent/internal/application/port/output"
	"github.com/arinjayjha/calc-research-agent/internal/history"
)

type Server struct {
	answerer input.QueryAnswerer
	history  *history.Store
	logger   output.LoggerPort

	searchConfigured bool
	deployment       string

	srv *http.Server
}

type Config struct {
	Addr             string
	SearchConfigured bool
	Deployment       string
}

func NewServer(cfg Config, answerer input.QueryAnswerer, hist *history.Store, logger output.LoggerPort) *Server {
	s := &Server{
		answerer:         answerer,
		history:          hist,
		logger:           logger,
		searchConfigured: cfg.SearchConfigured,
		deployment:       cfg.Deployment,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(httplog.RequestLogger(httplog.NewLogger("calc-research-agent", httplog.Options{
		JSON:    true,
		Concise: true,
	})))

	r.Route("/v1", func(r chi.Router) {
		r.Post("/query", s.handleQuery)
		r.Get("/history", s.handleHistoryList)
		r.Delete("/history", s.handleHistoryClear)
		r.Get("/history/export", s.handleHistoryExport)
		r.Get("/status", s.handleStatus)
	})

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// requestID tags every request with a fresh id for log correlation.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r)
	})
}
