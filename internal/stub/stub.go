// Package stub provides a self-contained stand-in for the career assistant
// service. It implements the full REST surface with deterministic canned
// responses and per-session in-memory state, for local development and
// end-to-end tests without the real backend.
package stub

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dhrumil1128/career-ai-agent/internal/observability"
)

// defaultSession keys state for clients that send no session header.
const defaultSession = "default"

// sessionMemory is one session's server-side state.
type sessionMemory struct {
	ResumeText   string
	ResumeFile   string
	HistoryCount int
}

// Server is the stub service. All state lives in memory.
type Server struct {
	engine *gin.Engine

	mu       sync.Mutex
	sessions map[string]*sessionMemory
}

// New builds a stub server with all routes registered.
func New() *Server {
	s := &Server{
		engine:   gin.New(),
		sessions: make(map[string]*sessionMemory),
	}

	s.engine.Use(gin.Recovery())
	s.engine.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Session-ID"},
		MaxAge:       12 * time.Hour,
	}))

	s.engine.GET("/api/health", s.handleHealth)

	api := s.engine.Group("/api")
	{
		api.POST("/chat", s.handleChat)
		api.POST("/upload-resume", s.handleUploadResume)
		api.POST("/analyze-match", s.handleAnalyzeMatch)
		api.POST("/skill-gaps", s.handleSkillGaps)
		api.POST("/heatmap", s.handleHeatmap)
		api.GET("/alternative-roles", s.handleAlternativeRoles)
		api.POST("/interview-questions", s.handleInterviewQuestions)
		api.GET("/jobs", s.handleJobs)
		api.GET("/memory", s.handleMemory)
		api.POST("/clear-memory", s.handleClearMemory)
		api.POST("/clear-resume", s.handleClearResume)
	}

	return s
}

// Handler exposes the stub as an http.Handler for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves the stub on addr until SIGINT or SIGTERM, then shuts down
// gracefully.
func (s *Server) Run(addr string) error {
	logger := observability.Logger()

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-quit:
	}

	logger.Info("shutting down stub service")

	// Give outstanding requests time to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func sessionID(c *gin.Context) string {
	if id := c.GetHeader("X-Session-ID"); id != "" {
		return id
	}
	return defaultSession
}

// withSession runs fn with the caller's memory bucket held under the lock,
// creating the bucket on first use.
func (s *Server) withSession(c *gin.Context, fn func(*sessionMemory)) {
	id := sessionID(c)

	s.mu.Lock()
	defer s.mu.Unlock()
	mem, ok := s.sessions[id]
	if !ok {
		mem = &sessionMemory{}
		s.sessions[id] = mem
	}
	fn(mem)
}

// snapshot returns a copy of the caller's memory bucket.
func (s *Server) snapshot(c *gin.Context) sessionMemory {
	var out sessionMemory
	s.withSession(c, func(mem *sessionMemory) {
		out = *mem
	})
	return out
}
