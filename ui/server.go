// Package ui serves the rendered evaluation summary over HTTP
package ui

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"agenteval/app"
	"agenteval/domain/core"
	"agenteval/internal/render"
)

const pageShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Agent evaluation</title>
<style>
body { font-family: sans-serif; max-width: 960px; margin: 2em auto; padding: 0 1em; }
table { border-collapse: collapse; }
th, td { border: 1px solid #ccc; padding: 6px 10px; }
</style>
</head>
<body>
%s
</body>
</html>`

// Server exposes the latest evaluation run: the summary as HTML at /, the
// raw markdown at /summary.md, and per-variant result tables under
// /reports/:agentID
type Server struct {
	router *gin.Engine

	mu     sync.RWMutex
	output *app.RunOutput
}

func NewServer(mode string) *Server {
	if mode != "" {
		gin.SetMode(mode)
	}
	s := &Server{router: gin.Default()}
	s.setupRoutes()
	return s
}

// SetOutput swaps in the results of a completed run
func (s *Server) SetOutput(out *app.RunOutput) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.output = out
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleSummary)
	s.router.GET("/summary.md", s.handleMarkdown)
	s.router.GET("/reports/:agentID", s.handleReport)
	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}

func (s *Server) handleSummary(c *gin.Context) {
	s.mu.RLock()
	out := s.output
	s.mu.RUnlock()
	if out == nil {
		c.String(http.StatusServiceUnavailable, "no evaluation run available yet")
		return
	}
	body := render.ToHTML(out.Markdown)
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(fmt.Sprintf(pageShell, body)))
}

func (s *Server) handleMarkdown(c *gin.Context) {
	s.mu.RLock()
	out := s.output
	s.mu.RUnlock()
	if out == nil {
		c.String(http.StatusServiceUnavailable, "no evaluation run available yet")
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(out.Markdown))
}

// handleReport dumps one variant's raw result rows as JSON
func (s *Server) handleReport(c *gin.Context) {
	s.mu.RLock()
	out := s.output
	s.mu.RUnlock()
	if out == nil {
		c.String(http.StatusServiceUnavailable, "no evaluation run available yet")
		return
	}

	agentID := core.AgentID(c.Param("agentID"))
	res, ok := out.Results[agentID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("no results for agent %s", agentID)})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"variant":   res.Variant(),
		"row_count": res.RowCount(),
		"rows":      res.Rows(),
	})
}
