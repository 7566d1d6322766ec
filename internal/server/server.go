// Package server exposes the viewer over HTTP: the normalized model, the
// rendered views, and a try-it proxy that executes requests on behalf of
// the browser.
package server

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"specview/internal/executor"
	"specview/internal/render"
	"specview/internal/spec"
)

type Options struct {
	Addr         string
	FetchTimeout time.Duration
}

type Server struct {
	store    *Store
	fetcher  *spec.Fetcher
	executor *executor.Executor
	logger   *zap.Logger
	engine   *gin.Engine
	opts     Options
}

func New(logger *zap.Logger, opts Options) *Server {
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		store:    NewStore(),
		fetcher:  spec.NewFetcher(opts.FetchTimeout),
		executor: executor.New(nil),
		logger:   logger,
		opts:     opts,
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())

	api := engine.Group("/api")
	api.GET("/spec", s.handleGetSpec)
	api.PUT("/spec", s.handlePutSpec)
	api.POST("/spec/fetch", s.handleFetchSpec)
	api.DELETE("/spec", s.handleResetSpec)
	api.GET("/docs", s.handleDocs)
	api.GET("/graph", s.handleGraph)
	api.POST("/try", s.handleTry)

	s.engine = engine
	return s
}

// Store exposes the model holder, mainly for tests.
func (s *Server) Store() *Store { return s.store }

// Handler returns the HTTP handler for mounting or testing.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) Run() error {
	s.logger.Info("viewer listening", zap.String("addr", s.opts.Addr))
	return s.engine.Run(s.opts.Addr)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (s *Server) handleGetSpec(c *gin.Context) {
	api := s.store.Current()
	if api == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no specification loaded"})
		return
	}
	c.JSON(http.StatusOK, api)
}

// handlePutSpec installs a specification from raw JSON/YAML text in the
// request body.
func (s *Server) handlePutSpec(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read body: " + err.Error()})
		return
	}
	api, err := s.store.Load(func() (*spec.ApiSpec, error) {
		return spec.Load(raw)
	})
	if err != nil {
		s.renderLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, api)
}

type fetchRequest struct {
	URL string `json:"url" binding:"required"`
}

func (s *Server) handleFetchSpec(c *gin.Context) {
	var req fetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	api, err := s.store.Load(func() (*spec.ApiSpec, error) {
		raw, err := s.fetcher.Fetch(c.Request.Context(), req.URL)
		if err != nil {
			return nil, err
		}
		return spec.Load(raw)
	})
	if err != nil {
		s.renderLoadError(c, err)
		return
	}
	c.JSON(http.StatusOK, api)
}

func (s *Server) handleResetSpec(c *gin.Context) {
	s.store.Reset()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleDocs(c *gin.Context) {
	api := s.store.Current()
	if api == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no specification loaded"})
		return
	}
	docs, err := render.Markdown(api)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(docs))
}

func (s *Server) handleGraph(c *gin.Context) {
	api := s.store.Current()
	if api == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no specification loaded"})
		return
	}
	c.Data(http.StatusOK, "text/vnd.graphviz; charset=utf-8", []byte(render.DOT(api)))
}

type tryRequest struct {
	EndpointID  string            `json:"endpointId" binding:"required"`
	BaseURL     string            `json:"baseUrl"`
	PathParams  map[string]string `json:"pathParams"`
	QueryParams map[string]string `json:"queryParams"`
	Headers     map[string]string `json:"headers"`
	Body        string            `json:"body"`
	ContentType string            `json:"contentType"`
}

func (s *Server) handleTry(c *gin.Context) {
	var req tryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: " + err.Error()})
		return
	}
	api, ep, ok := s.store.Endpoint(req.EndpointID)
	if api == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no specification loaded"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown endpoint " + req.EndpointID})
		return
	}
	result, err := s.executor.Execute(c.Request.Context(), api, *ep, executor.Input{
		BaseURL:     req.BaseURL,
		PathParams:  req.PathParams,
		QueryParams: req.QueryParams,
		Headers:     req.Headers,
		Body:        req.Body,
		ContentType: req.ContentType,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

// renderLoadError maps load failures to HTTP statuses: bad documents are
// client errors, upstream fetch failures are gateway errors, and a
// concurrent load is a conflict. The previously installed model, if any,
// stays in place.
func (s *Server) renderLoadError(c *gin.Context, err error) {
	s.logger.Warn("spec load failed", zap.Error(err))
	if errors.Is(err, ErrLoadInFlight) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	var specErr *spec.Error
	if errors.As(err, &specErr) && specErr.Kind == spec.KindTransport {
		c.JSON(http.StatusBadGateway, gin.H{"error": specErr.Message})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
