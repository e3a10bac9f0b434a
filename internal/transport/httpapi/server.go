// Package httpapi exposes the advisory pipeline over HTTP for the web
// client.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/sandevgo/archie/internal/service/advisor"
	"github.com/sandevgo/archie/pkg/log"
)

type Server struct {
	advisor *advisor.Advisor
	srv     *http.Server
}

func NewServer(addr string, adv *advisor.Advisor) *Server {
	s := &Server{advisor: adv}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /structured-query", s.handleStructuredQuery)
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("POST /generate-report", s.handleGenerateReport)
	mux.HandleFunc("POST /generate-adr", s.handleGenerateADR)
	mux.HandleFunc("GET /conversations/{id}", s.handleConversation)
	mux.HandleFunc("GET /ping", s.handlePing)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      corsMiddleware(loggingMiddleware(mux)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
	}
	return s
}

func (s *Server) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("addr", s.srv.Addr).Msg("http api listening")

	// Request contexts inherit the process context, so handlers log
	// through the shared logger.
	s.srv.BaseContext = func(net.Listener) context.Context {
		return ctx
	}

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.FromCtx(r.Context()).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// The web client is served from a different origin.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			return
		}
		next.ServeHTTP(w, r)
	})
}
