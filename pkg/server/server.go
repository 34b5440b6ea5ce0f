// Package server отдает страницу с диаграммой и JSON API для общей сцены.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-lloyd/internal/config"
	"github.com/0x0FACED/go-lloyd/pkg/logger"
	"github.com/0x0FACED/go-lloyd/pkg/scene"
	"github.com/0x0FACED/go-lloyd/pkg/shader"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

const (
	maxSites        = config.MaxSites
	maxRelaxSteps   = config.MaxRelaxSteps
	shutdownTimeout = 5 * time.Second
)

var errBadRequest = errors.New("bad request")

// Server держит единственную сцену; все обращения к ней идут под mu.
type Server struct {
	mu    sync.Mutex
	scene *scene.Scene
	opts  shader.Options
	cfg   config.Scene

	start   time.Time
	elapsed func() time.Duration

	log *logger.ZapLogger
}

// New строит сцену по конфигу: точки, раскладка и начальная релаксация.
func New(cfg config.Config, log *logger.ZapLogger) *Server {
	bbox := voronoi.NewBoundingBox(0, float64(cfg.Scene.Width), 0, float64(cfg.Scene.Height))

	s := &Server{
		scene: scene.New(bbox, cfg.Scene.Seed, log.Named("scene")),
		opts:  cfg.Shading.Options(),
		cfg:   cfg.Scene,
		start: time.Now(),
		log:   log.Named("http"),
	}
	s.elapsed = func() time.Duration { return time.Since(s.start) }

	s.layout(cfg.Scene.Sites, cfg.Scene.Random)
	if cfg.Scene.RelaxSteps > 0 {
		s.scene.RelaxN(cfg.Scene.RelaxSteps)
	}
	return s
}

func (s *Server) layout(n int, random bool) {
	if random {
		s.scene.Randomize(n, true, s.cfg.Margin)
		return
	}
	s.scene.Grid(n)
}

func (s *Server) shaderTime() float64 {
	return shader.Time(s.elapsed(), s.opts.Speed)
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.page)
	r.Post("/", s.page)

	r.Route("/api", func(r chi.Router) {
		r.Get("/diagram", s.getDiagram)
		r.Get("/diagram.svg", s.getDiagramSVG)

		r.Route("/sites", func(r chi.Router) {
			r.Post("/", s.addSite)
			r.Delete("/", s.clearSites)
			r.Get("/at", s.findSite)
			r.Post("/random", s.randomSites)
			r.Put("/{id}", s.moveSite)
			r.Delete("/{id}", s.removeSite)
		})

		r.Put("/pointer", s.setPointer)
		r.Put("/bbox", s.setBBox)
		r.Post("/relax", s.relax)
	})

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		started := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("[http] Запрос",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("took", time.Since(started)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// Run слушает addr до отмены ctx, затем плавно останавливает сервер.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.log.Info("[http] Сервер запущен", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("[http] Остановка сервера")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
