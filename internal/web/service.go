package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/pagefreq/internal/chart"
	"github.com/hyperifyio/pagefreq/internal/metrics"
	"github.com/hyperifyio/pagefreq/internal/web/api"
)

// Config holds the web server settings.
type Config struct {
	ListenAddr string
	// MaxUploadBytes bounds multipart memory for stop-word uploads.
	MaxUploadBytes int64
	// ShutdownTimeout bounds graceful shutdown. Zero means 5s.
	ShutdownTimeout time.Duration
}

// Service is the browser UI and JSON API.
type Service struct {
	router  *gin.Engine
	server  *http.Server
	conf    *Config
	api     *api.API
	pages   *pages
	metrics *metrics.Metrics
}

// NewService builds the router around an analyzer.
func NewService(an api.Analyzer, renderer *chart.Renderer, conf *Config) *Service {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if conf.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = conf.MaxUploadBytes
	}
	router.SetHTMLTemplate(templates)

	m := metrics.New()
	an = m.Instrument(an)
	s := &Service{
		router:  router,
		conf:    conf,
		api:     api.NewAPI(an, renderer),
		pages:   &pages{analyzer: an},
		metrics: m,
	}
	s.setupMiddleware()
	s.setupRoutes()
	s.server = &http.Server{
		Addr:              conf.ListenAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe serves until Stop is called. It returns nil after a clean
// shutdown.
func (s *Service) ListenAndServe() error {
	log.Info().Str("addr", s.conf.ListenAddr).Msg("web server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop shuts the server down gracefully.
func (s *Service) Stop() error {
	timeout := s.conf.ShutdownTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	log.Info().Msg("web server stopped")
	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Service) Handler() http.Handler {
	return s.router
}
