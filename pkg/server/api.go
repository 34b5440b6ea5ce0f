package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/0x0FACED/go-lloyd/pkg/render"
	"github.com/0x0FACED/go-lloyd/pkg/scene"
	"github.com/0x0FACED/go-lloyd/pkg/shader"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

type point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toPoint(v voronoi.Vertex) point { return point{X: v.X, Y: v.Y} }

func (p point) vertex() voronoi.Vertex { return voronoi.Vertex{X: p.X, Y: p.Y} }

func toPoints(poly voronoi.Polygon) []point {
	out := make([]point, len(poly))
	for i, v := range poly {
		out[i] = toPoint(v)
	}
	return out
}

type bboxJSON struct {
	Xl float64 `json:"xl"`
	Xr float64 `json:"xr"`
	Yt float64 `json:"yt"`
	Yb float64 `json:"yb"`
}

type siteJSON struct {
	Index int `json:"index"`
	point
	Pointer bool `json:"pointer,omitempty"`
}

type cellJSON struct {
	Index    int     `json:"index"`
	Polygon  []point `json:"polygon"`
	Area     float64 `json:"area"`
	Centroid *point  `json:"centroid,omitempty"`
	Value    float64 `json:"value"`
	Color    string  `json:"color,omitempty"`
}

type diagramJSON struct {
	BBox     bboxJSON   `json:"bbox"`
	Sites    []siteJSON `json:"sites"`
	Cells    []cellJSON `json:"cells"`
	Edges    [][2]point `json:"edges"`
	Mode     string     `json:"mode"`
	Time     float64    `json:"time"`
	Warnings []string   `json:"warnings,omitempty"`
}

func diagramToJSON(sites []voronoi.Site, d *voronoi.Diagram, bbox voronoi.BoundingBox, o shader.Options, t float64, warn error) diagramJSON {
	out := diagramJSON{
		BBox:  bboxJSON{Xl: bbox.Xl, Xr: bbox.Xr, Yt: bbox.Yt, Yb: bbox.Yb},
		Sites: make([]siteJSON, len(sites)),
		Cells: make([]cellJSON, 0, len(d.Cells)),
		Edges: make([][2]point, len(d.Edges)),
		Mode:  string(o.Mode),
		Time:  t,
	}
	for i, site := range sites {
		out.Sites[i] = siteJSON{Index: i, point: toPoint(site.Vertex), Pointer: site.Pointer}
	}

	var pointer voronoi.Vertex
	if len(sites) > 0 {
		pointer = sites[0].Vertex
	}
	fills := make(map[int]shader.Fill)
	for _, f := range shader.Shade(d, o, t, pointer, bbox) {
		fills[f.Index] = f
	}

	keys := make([]int, 0, len(d.Cells))
	for k := range d.Cells {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		cell := d.Cells[k]
		c := cellJSON{
			Index:   k,
			Polygon: toPoints(cell.Polygon),
			Area:    cell.Polygon.Area(),
		}
		if f, ok := fills[k]; ok {
			centroid := toPoint(f.Centroid)
			c.Centroid = &centroid
			c.Value = f.Value
			c.Color = f.Color.Hex()
		}
		out.Cells = append(out.Cells, c)
	}

	for i, e := range d.Edges {
		out.Edges[i] = [2]point{toPoint(e.Va), toPoint(e.Vb)}
	}
	for _, err := range multierr.Errors(warn) {
		out.Warnings = append(out.Warnings, err.Error())
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("[http] Ошибка записи ответа", zap.Error(err))
	}
}

// fail переводит ошибку в статус ответа.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, scene.ErrSiteIndex):
		status = http.StatusNotFound
	case errors.Is(err, scene.ErrPointerSite):
		status = http.StatusConflict
	}
	s.log.Warn("[http] Запрос отклонен",
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	)
	http.Error(w, err.Error(), status)
}

func decodePoint(r *http.Request) (voronoi.Vertex, error) {
	var p point
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		return voronoi.Vertex{}, fmt.Errorf("%w: decode point: %v", errBadRequest, err)
	}
	return p.vertex(), nil
}

func siteID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: site id %q", errBadRequest, raw)
	}
	return id, nil
}

// queryInt читает целый параметр запроса в пределах [lo, hi].
func queryInt(r *http.Request, key string, def, lo, hi int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%w: %s=%q, want integer in [%d, %d]", errBadRequest, key, raw, lo, hi)
	}
	return v, nil
}

func queryFloat(r *http.Request, key string, def float64) (float64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", errBadRequest, key, raw)
	}
	return v, nil
}

func (s *Server) getDiagram(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	d, warn := s.scene.Compute()
	body := diagramToJSON(s.scene.Sites(), d, s.scene.BBox(), s.opts, s.shaderTime(), warn)
	s.mu.Unlock()

	s.writeJSON(w, http.StatusOK, body)
}

func (s *Server) getDiagramSVG(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, _ := s.scene.Compute()
	w.Header().Set("Content-Type", "image/svg+xml")
	err := render.SVG(w, render.Frame{
		Sites:   s.scene.Sites(),
		Diagram: d,
		BBox:    s.scene.BBox(),
		Options: s.opts,
		Time:    s.shaderTime(),
	})
	if errors.Is(err, voronoi.ErrDegenerateBox) {
		s.fail(w, r, err)
		return
	}
	if err != nil {
		s.log.Error("[http] Ошибка рендеринга SVG", zap.Error(err))
	}
}

func (s *Server) addSite(w http.ResponseWriter, r *http.Request) {
	p, err := decodePoint(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scene.Len() > maxSites {
		s.fail(w, r, fmt.Errorf("%w: at most %d sites", errBadRequest, maxSites))
		return
	}
	idx := s.scene.AddSite(p)
	s.writeJSON(w, http.StatusCreated, map[string]int{"index": idx})
}

func (s *Server) moveSite(w http.ResponseWriter, r *http.Request) {
	id, err := siteID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	p, err := decodePoint(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scene.MoveSite(id, p); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) removeSite(w http.ResponseWriter, r *http.Request) {
	id, err := siteID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.scene.RemoveSite(id); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearSites(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.scene.Clear()
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// findSite - GET /api/sites/at?x=&y=&r=, index -1 если рядом ничего нет.
func (s *Server) findSite(w http.ResponseWriter, r *http.Request) {
	x, errX := queryFloat(r, "x", 0)
	y, errY := queryFloat(r, "y", 0)
	radius, errR := queryFloat(r, "r", 10)
	if err := multierr.Combine(errX, errY, errR); err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	idx := s.scene.FindSiteAt(voronoi.Vertex{X: x, Y: y}, radius)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, map[string]int{"index": idx})
}

func (s *Server) randomSites(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", s.cfg.Sites, 0, maxSites)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	reset := true
	if raw := r.URL.Query().Get("clear"); raw != "" {
		if reset, err = strconv.ParseBool(raw); err != nil {
			s.fail(w, r, fmt.Errorf("%w: clear=%q", errBadRequest, raw))
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !reset && s.scene.Len()+n > maxSites+1 {
		s.fail(w, r, fmt.Errorf("%w: at most %d sites", errBadRequest, maxSites))
		return
	}
	s.scene.Randomize(n, reset, s.cfg.Margin)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) setPointer(w http.ResponseWriter, r *http.Request) {
	p, err := decodePoint(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	s.scene.SetPointer(p)
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

// setBBox принимает и вырожденный прямоугольник: диаграмма тогда пустая,
// а предупреждение придет в /api/diagram.
func (s *Server) setBBox(w http.ResponseWriter, r *http.Request) {
	var b bboxJSON
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		s.fail(w, r, fmt.Errorf("%w: decode bbox: %v", errBadRequest, err))
		return
	}

	s.mu.Lock()
	s.scene.Resize(voronoi.NewBoundingBox(b.Xl, b.Xr, b.Yt, b.Yb))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) relax(w http.ResponseWriter, r *http.Request) {
	steps, err := queryInt(r, "steps", 1, 1, maxRelaxSteps)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.mu.Lock()
	done := s.scene.RelaxN(steps)
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, map[string]int{"steps": done})
}
