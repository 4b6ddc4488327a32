// Package httpapi serves maze generation and a saved session over HTTP.
package httpapi

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
)

// Controller registers a group of routes.
type Controller interface {
	Register(*gin.RouterGroup)
}

// Router owns the gin engine and its controllers.
type Router struct {
	addr        string
	baseURL     string
	controllers []Controller
	logger      *log.Logger
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Prefix for every route
	Controllers []Controller
	Logger      *log.Logger
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(cfg Config) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Router{
		addr:        cfg.Addr,
		baseURL:     cfg.BaseURL,
		controllers: cfg.Controllers,
		logger:      logger,
	}
}

// Engine builds the gin engine with every controller mounted under
// baseURL/v1.
func (r *Router) Engine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery(), r.requestLogger())

	v1 := engine.Group(r.baseURL).Group("/v1")
	for _, c := range r.controllers {
		c.Register(v1)
	}
	return engine
}

// Run starts the HTTP server and blocks.
func (r *Router) Run() error {
	r.logger.Info("starting HTTP API", "address", r.addr)
	return r.Engine().Run(r.addr)
}

func (r *Router) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		r.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
