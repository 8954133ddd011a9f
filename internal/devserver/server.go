package devserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/muurk/geoadmin/internal/discovery"
	"github.com/muurk/geoadmin/internal/logging"
	"github.com/muurk/geoadmin/internal/version"
)

// Config holds the server configuration
type Config struct {
	Host     string
	Port     int
	Seed     bool   // Load sample countries and states on startup
	Announce bool   // Register the API via mDNS
	Instance string // mDNS instance name (defaults to "geoadmin-<hostname>")
}

// Server serves the REST API from an in-memory Store
type Server struct {
	config *Config
	store  *Store
	hub    *Hub
	engine *gin.Engine
}

// New creates a server. With cfg.Seed the store starts with sample data.
func New(cfg *Config) (*Server, error) {
	store := NewStore()
	if cfg.Seed {
		if err := Seed(store); err != nil {
			return nil, fmt.Errorf("failed to seed store: %w", err)
		}
	}

	s := &Server{
		config: cfg,
		store:  store,
		hub:    NewHub(),
	}
	s.engine = s.routes()
	return s, nil
}

// Store returns the backing store
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the HTTP handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.engine
}

func (s *Server) routes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	// Browser clients load the admin screens from another origin
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", s.health)
	r.GET("/events", s.events)

	country := r.Group("/country")
	{
		country.GET("", s.listCountries)
		country.POST("", s.createCountry)
		country.PUT("/:id", s.updateCountry)
		country.DELETE("/:id", s.deleteCountry)
	}

	state := r.Group("/state")
	{
		state.GET("", s.listStates)
		state.POST("", s.createState)
		state.PUT("/:id", s.updateState)
		state.DELETE("/:id", s.deleteState)
	}

	return r
}

// requestLogger logs every request through the diagnostic logger
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logging.LogHTTPRequest(c.ClientIP(), c.Request.Method, c.Request.URL.RequestURI(),
			c.Writer.Status(), time.Since(start))
	}
}

// Run listens until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprint(s.config.Port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	countries, states := s.store.Counts()
	logging.Info("Starting geoadmin development server",
		zap.String("addr", listener.Addr().String()),
		zap.Int("countries", countries),
		zap.Int("states", states),
	)

	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.config.Announce {
		port := listener.Addr().(*net.TCPAddr).Port
		ann, err := discovery.Announce(s.instanceName(), port, []string{
			"version=" + version.Version,
			"api=/country,/state",
		})
		if err != nil {
			// The API still works without discovery
			logging.Warn("mDNS announce failed", zap.Error(err))
		} else {
			defer ann.Shutdown()
		}
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Serve(listener)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info("Shutting down server...")
	s.hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Warn("Shutdown timeout, forcing close", zap.Error(err))
		_ = srv.Close()
	}
	logging.Sync()
	return nil
}

func (s *Server) instanceName() string {
	if s.config.Instance != "" {
		return s.config.Instance
	}
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "geoadmin"
	}
	return "geoadmin-" + host
}
