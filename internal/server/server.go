package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"equity-intel/internal/interfaces"
	"equity-intel/internal/logger"
)

// Server exposes an IntelligenceRunner over HTTP
type Server struct {
	runner interfaces.IntelligenceRunner
	engine *gin.Engine
}

// New builds the gin engine and registers every route. mode is a gin mode
// (release, debug, test); empty means release.
func New(runner interfaces.IntelligenceRunner, mode string) *Server {
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	s := &Server{runner: runner, engine: r}

	r.GET("/health", s.health)

	api := r.Group("/api/v1")
	{
		api.GET("/intelligence/:ticker", s.getIntelligence)
		api.POST("/intelligence", s.postIntelligence)
	}

	return s
}

// Handler returns the HTTP handler for use with http.Server
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger logs one line per request through the structured logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info(c.Request.Context(), "HTTP request served",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP())
	}
}
