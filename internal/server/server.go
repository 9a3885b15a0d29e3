package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/atikulmunna/hitcount/internal/analyzer"
	"github.com/atikulmunna/hitcount/internal/log"
	"github.com/atikulmunna/hitcount/internal/model"
	"github.com/atikulmunna/hitcount/internal/output"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// Server exposes reports for a fixed set of log files over HTTP.
// Each request analyzes its files from scratch.
type Server struct {
	engine   *gin.Engine
	analyzer *analyzer.Analyzer
	paths    []string
	addr     string
	started  time.Time
}

// New creates a report server listening on addr. Only the given paths can
// be reported on; requests select them by index.
func New(a *analyzer.Analyzer, paths []string, addr string) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine:   engine,
		analyzer: a,
		paths:    paths,
		addr:     addr,
		started:  time.Now(),
	}

	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) setupRoutes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"uptime": time.Since(s.started).Truncate(time.Second).String(),
			"files":  len(s.paths),
		})
	})

	s.engine.GET("/api/reports", s.handleReports)
	s.engine.GET("/api/reports/:index", s.handleReport)
}

func (s *Server) handleReports(c *gin.Context) {
	reports := make([]model.Report, 0, len(s.paths))
	for _, p := range s.paths {
		r, err := s.analyzer.AnalyzeFile(p)
		if err != nil {
			log.Errorf("report for %s: %v", p, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		reports = append(reports, r)
	}
	c.JSON(http.StatusOK, reports)
}

// handleReport serves one file's report, as JSON or with ?format=text in
// the plain report format.
func (s *Server) handleReport(c *gin.Context) {
	idx, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be an integer"})
		return
	}
	if idx < 0 || idx >= len(s.paths) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such file"})
		return
	}

	r, err := s.analyzer.AnalyzeFile(s.paths[idx])
	if err != nil {
		log.Errorf("report for %s: %v", s.paths[idx], err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "text" {
		c.Header("Content-Type", "text/plain; charset=utf-8")
		c.Status(http.StatusOK)
		if err := output.NewTextRenderer(false).Render(c.Writer, r); err != nil {
			log.Errorf("writing text report: %v", err)
		}
		return
	}
	c.JSON(http.StatusOK, r)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.engine}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("serving reports on http://%s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
