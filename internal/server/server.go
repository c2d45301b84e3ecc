package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-coach/internal/coach"
	"github.com/jonathan/career-coach/internal/pipeline"
	"github.com/jonathan/career-coach/internal/session"
	"github.com/jonathan/career-coach/internal/store"
)

// Config holds server configuration
type Config struct {
	Port           int
	JWTSecret      string
	AccessCodeHash string
	AnalyzeDwell   time.Duration
}

// Server exposes the personalization engine over HTTP. One engine state per
// deployment: the store has a single logical owner, which the API preserves
// by funnelling all access through one State/Session/Pipeline trio.
type Server struct {
	httpServer     *http.Server
	state          *store.State
	pipe           *pipeline.Pipeline
	chat           *session.Session
	jwtService     *JWTService
	accessCodeHash string
}

// New creates a server over an already-constructed state and completion client
func New(cfg Config, state *store.State, client coach.Completer) (*Server, error) {
	s := &Server{
		state:          state,
		accessCodeHash: cfg.AccessCodeHash,
	}

	if cfg.AccessCodeHash != "" {
		jwtService, err := NewJWTService(cfg.JWTSecret)
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT service: %w", err)
		}
		s.jwtService = jwtService
	}

	s.pipe = pipeline.New(client, state, pipeline.Options{AnalyzeDwell: cfg.AnalyzeDwell})
	s.chat = session.New(client, state)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.HandleFunc("GET /health", s.handleHealth)

	protected := http.NewServeMux()
	protected.HandleFunc("GET /profile", s.handleGetProfile)
	protected.HandleFunc("PUT /profile", s.handlePutProfile)
	protected.HandleFunc("GET /progress", s.handleGetProgress)
	protected.HandleFunc("GET /roadmap", s.handleGetRoadmap)
	protected.HandleFunc("POST /roadmap/generate", s.handleGenerateRoadmap)
	protected.HandleFunc("POST /roadmap/confirm", s.handleConfirmRoadmap)
	protected.HandleFunc("POST /chat", s.handleChat)
	protected.HandleFunc("GET /conversation", s.handleGetConversation)
	protected.HandleFunc("GET /state/export", s.handleExportState)
	protected.HandleFunc("POST /state/import", s.handleImportState)
	protected.HandleFunc("POST /state/reset", s.handleResetState)
	mux.Handle("/", s.withAuth(protected))

	port := cfg.Port
	if port == 0 {
		port = 8080
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // generation runs inside the request
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

// Start listens for requests until an interrupt arrives, then shuts down
// gracefully.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
