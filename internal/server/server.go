// Package server serves the two PDR dashboards over HTTP.
//
// Every request recomputes the whole pipeline (filter, aggregates, charts)
// from the memoised project table; filters travel in the query string so
// chart and export links render the same selection as the page.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sekarsister/pdrdash/internal/analysis"
	"github.com/sekarsister/pdrdash/internal/pdr"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Options configure a Server.
type Options struct {
	Cache     *pdr.Cache
	Pipeline  analysis.Options
	Bounds    *geom.Bounds
	Delimiter rune
	Logger    *zap.Logger
}

// Server is the dashboard HTTP server.
type Server struct {
	cache    *pdr.Cache
	pipeline analysis.Options
	bounds   *geom.Bounds
	delim    rune
	log      *zap.Logger
	engine   *gin.Engine
}

// New builds a server and its routes.
func New(opts Options) (*Server, error) {
	if opts.Cache == nil {
		return nil, errors.New("server: a project cache is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	delim := opts.Delimiter
	if delim == 0 {
		delim = pdr.DefaultDelimiter
	}

	tmpl, err := template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(log))
	engine.SetHTMLTemplate(tmpl)

	s := &Server{
		cache:    opts.Cache,
		pipeline: opts.Pipeline,
		bounds:   opts.Bounds,
		delim:    delim,
		log:      log,
		engine:   engine,
	}
	s.RegisterRoutes(engine)
	return s, nil
}

// RegisterRoutes mounts the dashboard routes on router.
func (s *Server) RegisterRoutes(router *gin.Engine) {
	router.GET("/", s.dashboard(strategic))
	router.GET("/synthese", s.dashboard(summary))
	router.GET("/charts/:name", s.chart)
	router.GET("/export.csv", s.exportCSV)
	router.GET("/export.xlsx", s.exportXLSX)
	router.GET("/carte.geojson", s.geoJSON)
	router.GET("/api/vue", s.apiView)
	router.POST("/reload", s.reload)
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("dashboard listening", zap.String("addr", addr), zap.String("source", s.cache.Path()))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("dashboard stopped")
	return nil
}
