package ui

import (
	"context"
	"html/template"
	"net/http"
	"time"

	"statreport/app"
	"statreport/internal"
	"statreport/ports"
	"statreport/ui/middleware"

	"github.com/gin-gonic/gin"
)

// Config holds the web settings the server needs.
type Config struct {
	GinMode     string
	MaxUploadMB int
	UploadTTL   time.Duration
}

// Server is the HTTP front end of the report pipeline.
type Server struct {
	router    *gin.Engine
	loader    ports.DatasetLoader
	reports   *app.ReportService
	uploads   *UploadStore
	templates *template.Template
	config    Config
	logger    *internal.Logger
}

// NewServer wires the routes. Uploads live in memory for cfg.UploadTTL.
func NewServer(cfg Config, loader ports.DatasetLoader, reports *app.ReportService, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.New(),
		loader:    loader,
		reports:   reports,
		uploads:   NewUploadStore(cfg.UploadTTL, logger),
		templates: tmpl,
		config:    cfg,
		logger:    logger.Named("Server"),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(middleware.RequestLogger(s.logger))
	// multipart framing needs a little headroom over the file itself
	s.router.Use(middleware.LimitBody(s.maxUploadBytes() + 1<<20))
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/uploads")
	api.POST("", s.handleUpload)
	api.GET("", s.handleListUploads)
	api.GET("/:id", s.handleGetUpload)
	api.DELETE("/:id", s.handleDeleteUpload)
	api.GET("/:id/preview", s.handlePreview)
	api.POST("/:id/analysis", s.handleAnalysis)
	api.POST("/:id/report", s.handleReport)
	api.POST("/:id/report/preview", s.handleReportPreview)
	api.GET("/:id/charts/:column/:kind", s.handleChart)
	api.GET("/:id/correlation.png", s.handleCorrelationChart)
}

func (s *Server) maxUploadBytes() int64 {
	return int64(s.config.MaxUploadMB) << 20
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// Uploads exposes the upload store.
func (s *Server) Uploads() *UploadStore { return s.uploads }

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.uploads.Run(sweepCtx, time.Minute)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on http://%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
