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

	"github.com/jonathan/climate-careers/internal/llm"
	"github.com/jonathan/climate-careers/internal/matching"
	"github.com/jonathan/climate-careers/internal/resume"
	"github.com/jonathan/climate-careers/internal/store"
	"github.com/jonathan/climate-careers/internal/taxonomy"
)

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	store      *store.Store
	index      *taxonomy.Index
	matcher    *matching.Matcher
	llm        llm.Client
	parser     *resume.Parser
	apiKey     string
	verbose    bool
}

// Config holds server configuration
type Config struct {
	Port             int
	JobsFile         string
	KeywordIndexFile string
	CategoryFile     string
	APIKey           string
	Verbose          bool
}

// New creates a new server instance. The jobs dataset is required; taxonomy
// files are optional and fall back to an empty index. An LLM client is only
// created when an API key is configured, so job search endpoints keep working
// without one.
func New(cfg Config) (*Server, error) {
	jobStore, err := store.Load(cfg.JobsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load jobs dataset: %w", err)
	}

	index, err := taxonomy.LoadIndex(cfg.KeywordIndexFile, cfg.CategoryFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load taxonomy: %w", err)
	}

	s := &Server{
		store:   jobStore,
		index:   index,
		matcher: matching.New(jobStore.Jobs()),
		apiKey:  cfg.APIKey,
		verbose: cfg.Verbose,
	}

	if cfg.APIKey != "" {
		client, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		s.llm = client
		s.parser = resume.NewParser(client)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/category-jobs", s.handleCategoryJobs)
	mux.HandleFunc("POST /api/major-jobs", s.handleMajorJobs)
	mux.HandleFunc("POST /api/match-jobs-with-preferences", s.handleMatchJobsWithPreferences)
	mux.HandleFunc("POST /api/upload-resume", s.handleUploadResume)
	mux.HandleFunc("GET /api/health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // LLM calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s (%d jobs, %d keywords, %d categories)",
			s.httpServer.Addr, s.store.TotalJobs(), s.index.KeywordCount(), s.index.CategoryCount())
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.llm != nil {
		if err := s.llm.Close(); err != nil {
			log.Printf("Error closing LLM client: %v", err)
		}
	}

	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == "OPTIONS" {
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

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response with an optional details field
func (s *Server) errorResponse(w http.ResponseWriter, status int, message, details string) {
	body := map[string]string{"error": message}
	if details != "" {
		body["details"] = details
	}
	s.jsonResponse(w, status, body)
}
