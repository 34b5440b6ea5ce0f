package server

import (
	"fmt"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/0x0FACED/go-lloyd/pkg/logger"
	"github.com/0x0FACED/go-lloyd/pkg/render"
	"github.com/0x0FACED/go-lloyd/pkg/shader"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
	"github.com/0x0FACED/go-lloyd/static"
)

// pageForm - параметры формы на странице.
type pageForm struct {
	width, height int
	stations      int
	random        bool
	relax         int
	mode          shader.Mode
	hue           float64
}

func formInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := r.FormValue(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%w: %s=%q, want integer in [%d, %d]", errBadRequest, key, raw, lo, hi)
	}
	return v, nil
}

func (s *Server) parseForm(r *http.Request) (pageForm, error) {
	if err := r.ParseForm(); err != nil {
		return pageForm{}, fmt.Errorf("%w: %v", errBadRequest, err)
	}

	bbox := s.scene.BBox()
	f := pageForm{
		random: r.FormValue("random") == "true",
		mode:   s.opts.Mode,
		hue:    s.opts.Hue,
	}

	var err error
	if f.width, err = formInt(r, "width", int(bbox.Width()), 1, 10000); err != nil {
		return pageForm{}, err
	}
	if f.height, err = formInt(r, "height", int(bbox.Height()), 1, 10000); err != nil {
		return pageForm{}, err
	}
	if f.stations, err = formInt(r, "stations", s.scene.Len()-1, 0, maxSites); err != nil {
		return pageForm{}, err
	}
	if f.relax, err = formInt(r, "relax", 0, 0, maxRelaxSteps); err != nil {
		return pageForm{}, err
	}
	if raw := r.FormValue("mode"); raw != "" {
		if f.mode, err = shader.ParseMode(raw); err != nil {
			return pageForm{}, fmt.Errorf("%w: %v", errBadRequest, err)
		}
	}
	if raw := r.FormValue("hue"); raw != "" {
		if f.hue, err = strconv.ParseFloat(raw, 64); err != nil {
			return pageForm{}, fmt.Errorf("%w: hue=%q", errBadRequest, raw)
		}
	}
	return f, nil
}

// apply перестраивает общую сцену по форме.
func (s *Server) apply(f pageForm, log *logger.ZapLogger) {
	bbox := voronoi.NewBoundingBox(0, float64(f.width), 0, float64(f.height))
	s.scene.Resize(bbox)
	s.scene.SetPointer(bbox.Center())
	s.layout(f.stations, f.random)
	if f.relax > 0 {
		s.scene.RelaxN(f.relax)
	}
	s.opts.Mode = f.mode
	s.opts.Hue = f.hue

	log.Info("[http] Сцена перестроена",
		zap.Int("width", f.width),
		zap.Int("height", f.height),
		zap.Int("sites", f.stations),
		zap.Bool("random", f.random),
		zap.String("mode", string(f.mode)),
	)
}

// page - страница с формой, графиком, SVG и логами этого запроса.
func (s *Server) page(w http.ResponseWriter, r *http.Request) {
	reqLog := logger.New()
	defer reqLog.ClearLogs()

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.scene.SetLogger(reqLog)
	defer s.scene.SetLogger(prev)

	if r.Method == http.MethodPost {
		f, err := s.parseForm(r)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		s.apply(f, reqLog)
	}

	d, err := s.scene.Compute()
	if err != nil {
		reqLog.Warn("[http] Диаграмма построена с предупреждениями", zap.Error(err))
	}
	sites, bbox := s.scene.Sites(), s.scene.BBox()
	reqLog.Debug("[http] Отрисовка страницы",
		zap.Int("sites", len(sites)),
		zap.Int("edges", len(d.Edges)),
		zap.String("mode", string(s.opts.Mode)),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	fmt.Fprintln(w, static.Part1)

	if err := render.Chart(sites, d, bbox, s.opts).Render(w); err != nil {
		s.log.Error("[http] Ошибка рендеринга диаграммы", zap.Error(err))
	}

	fmt.Fprintln(w, static.Part2)

	err = render.SVG(w, render.Frame{
		Sites:   sites,
		Diagram: d,
		BBox:    bbox,
		Options: s.opts,
		Time:    s.shaderTime(),
	})
	if err != nil {
		reqLog.Warn("[http] SVG не построен", zap.Error(err))
	}

	fmt.Fprintln(w, static.Part3)

	// Вставляем логи в HTML
	reqLog.UpdateLogs()
	for _, log := range reqLog.Logs {
		fmt.Fprintln(w, log)
	}

	fmt.Fprintln(w, static.Part4)
}
