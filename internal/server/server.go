// Package server exposes the KUDE pipeline over HTTP.
package server

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/maxdominios/go-kude/internal/generator"
	"github.com/maxdominios/go-kude/internal/model"
	"github.com/maxdominios/go-kude/pkg/logger"
)

// Config holds server configuration
type Config struct {
	Address      string
	LogoPath     string // default logo applied to every document
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	Debug        bool
}

// Server represents the HTTP API server
type Server struct {
	config *Config
	router *gin.Engine
	gen    *generator.Generator
	log    *logger.Logger
}

// NewServer creates a new API server
func NewServer(config *Config, log *logger.Logger) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		config: config,
		router: router,
		gen:    generator.New(generator.WithLogger(log)),
		log:    log,
	}

	router.Use(s.requestLogger())
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.handleHealth)

	v1 := s.router.Group("/api/v1")
	{
		v1.POST("/kude", s.handleGenerate)
		v1.POST("/extract", s.handleExtract)
	}
}

// Run starts the HTTP server
func (s *Server) Run() error {
	srv := &http.Server{
		Addr:         s.config.Address,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}
	s.log.Info().Str("address", s.config.Address).Msg("kude server listening")
	return srv.ListenAndServe()
}

// Handler returns the http.Handler for use with custom servers
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger tags each request with an id and logs its outcome.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.NewString()
		c.Header("X-Request-ID", id)

		start := time.Now()
		c.Next()

		s.log.Info().
			Str("request_id", id).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	opts, ok := s.requestOptions(c)
	if !ok {
		return
	}
	opts.ReturnBytes = true
	opts.LogoPath = s.config.LogoPath

	pdf, err := s.gen.Generate(c.Request.Context(), opts)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/pdf", pdf)
}

func (s *Server) handleExtract(c *gin.Context) {
	opts, ok := s.requestOptions(c)
	if !ok {
		return
	}

	inv, err := s.gen.Extract(c.Request.Context(), opts)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// requestOptions reads either a raw XML body or a JSON envelope.
func (s *Server) requestOptions(c *gin.Context) (generator.Options, bool) {
	contentType := c.ContentType()

	if strings.Contains(contentType, "json") {
		var req GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:    "invalid JSON body: " + err.Error(),
				Category: "config",
			})
			return generator.Options{}, false
		}
		return generator.Options{SourceXML: req.XML, Emisor: req.Emisor}, true
	}

	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:    "empty request body",
			Category: "config",
		})
		return generator.Options{}, false
	}
	return generator.Options{SourceXML: string(body)}, true
}

// writeError maps the error taxonomy onto HTTP statuses: bad call shape
// is 400, bad input shape is 422, backend failures are 500.
func (s *Server) writeError(c *gin.Context, err error) {
	var configErr *model.ConfigError
	var structErr *model.StructuralError

	switch {
	case errors.As(err, &configErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Category: "config"})
	case errors.As(err, &structErr):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Category: "structural"})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error(), Category: "render"})
	}
}
