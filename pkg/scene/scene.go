package scene

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/0x0FACED/go-lloyd/pkg/logger"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

var (
	ErrSiteIndex   = errors.New("site index out of range")
	ErrPointerSite = errors.New("pointer site cannot be changed this way")
)

// Scene - состояние вызывающей стороны: точки, прямоугольник, последняя
// диаграмма и флаг "нужно перестроить". Точка-указатель всегда под индексом 0.
// Синхронизации нет, конкурентный доступ сериализует владелец.
type Scene struct {
	sites   []voronoi.Site
	bbox    voronoi.BoundingBox
	diagram *voronoi.Diagram
	dirty   bool

	rnd *rand.Rand
	log *logger.ZapLogger
}

// New создает сцену с точкой-указателем в центре прямоугольника.
func New(bbox voronoi.BoundingBox, seed int64, log *logger.ZapLogger) *Scene {
	return &Scene{
		sites: []voronoi.Site{{Vertex: bbox.Center(), Pointer: true}},
		bbox:  bbox,
		dirty: true,
		rnd:   rand.New(rand.NewSource(seed)),
		log:   log,
	}
}

// Sites возвращает копию точек.
func (s *Scene) Sites() []voronoi.Site {
	return append([]voronoi.Site(nil), s.sites...)
}

func (s *Scene) Len() int                  { return len(s.sites) }
func (s *Scene) BBox() voronoi.BoundingBox { return s.bbox }
func (s *Scene) Pointer() voronoi.Vertex   { return s.sites[0].Vertex }
func (s *Scene) Dirty() bool               { return s.dirty }

// SetLogger подменяет логгер сцены и возвращает прежний.
func (s *Scene) SetLogger(log *logger.ZapLogger) *logger.ZapLogger {
	prev := s.log
	s.log = log
	return prev
}

func (s *Scene) SetPointer(p voronoi.Vertex) {
	if s.sites[0].Vertex == p {
		return
	}
	s.sites[0].Vertex = p
	s.dirty = true
}

// AddSite добавляет точку и возвращает ее индекс.
func (s *Scene) AddSite(p voronoi.Vertex) int {
	s.sites = append(s.sites, voronoi.Site{Vertex: p})
	s.dirty = true
	return len(s.sites) - 1
}

func (s *Scene) checkIndex(i int) error {
	if i < 0 || i >= len(s.sites) {
		return fmt.Errorf("%w: %d of %d", ErrSiteIndex, i, len(s.sites))
	}
	if s.sites[i].Pointer {
		return fmt.Errorf("%w: %d", ErrPointerSite, i)
	}
	return nil
}

// MoveSite - перетаскивание точки.
func (s *Scene) MoveSite(i int, p voronoi.Vertex) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.sites[i].Vertex = p
	s.dirty = true
	return nil
}

// RemoveSite удаляет точку, индексы следующих точек сдвигаются.
func (s *Scene) RemoveSite(i int) error {
	if err := s.checkIndex(i); err != nil {
		return err
	}
	s.sites = append(s.sites[:i], s.sites[i+1:]...)
	s.dirty = true
	return nil
}

// FindSiteAt - ближайшая точка (кроме указателя) ближе maxDist, иначе -1.
func (s *Scene) FindSiteAt(p voronoi.Vertex, maxDist float64) int {
	return voronoi.FindSiteAt(s.sites, p, maxDist)
}

// Clear оставляет только точку-указатель.
func (s *Scene) Clear() {
	s.sites = s.sites[:1]
	s.dirty = true
}

// Randomize добавляет n случайных точек с отступом margin от краев.
func (s *Scene) Randomize(n int, clear bool, margin float64) {
	if clear {
		s.sites = s.sites[:1]
	}
	w := math.Max(s.bbox.Width()-2*margin, 0)
	h := math.Max(s.bbox.Height()-2*margin, 0)
	for i := 0; i < n; i++ {
		s.sites = append(s.sites, voronoi.Site{Vertex: voronoi.Vertex{
			X: s.bbox.Xl + margin + s.rnd.Float64()*w,
			Y: s.bbox.Yt + margin + s.rnd.Float64()*h,
		}})
	}
	s.dirty = true
}

// Grid заменяет точки на n точек по сетке (в центрах клеток).
func (s *Scene) Grid(n int) {
	s.sites = s.sites[:1]
	if n <= 0 {
		s.dirty = true
		return
	}

	rows := int(math.Sqrt(float64(n)))
	cols := (n + rows - 1) / rows

	xStep := s.bbox.Width() / float64(cols)
	yStep := s.bbox.Height() / float64(rows)

	for i := 0; i < rows && len(s.sites)-1 < n; i++ {
		for j := 0; j < cols && len(s.sites)-1 < n; j++ {
			s.sites = append(s.sites, voronoi.Site{Vertex: voronoi.Vertex{
				X: s.bbox.Xl + xStep/2 + float64(j)*xStep,
				Y: s.bbox.Yt + yStep/2 + float64(i)*yStep,
			}})
		}
	}
	s.dirty = true
}

// Resize меняет прямоугольник (например, при изменении окна).
func (s *Scene) Resize(bbox voronoi.BoundingBox) {
	if s.bbox == bbox {
		return
	}
	s.bbox = bbox
	s.dirty = true
}

// Compute перестраивает диаграмму только если что-то менялось.
// Ошибка - несмертельное предупреждение из voronoi.Check, диаграмма при этом есть.
func (s *Scene) Compute() (*voronoi.Diagram, error) {
	if s.dirty || s.diagram == nil {
		s.diagram = voronoi.CreateDiagram(s.sites, s.bbox, s.log)
		s.dirty = false
	}
	return s.diagram, voronoi.Check(s.sites, s.bbox)
}

// Relax - один шаг Ллойда. Возвращает true, если точки сдвинулись.
func (s *Scene) Relax() bool {
	d, _ := s.Compute()
	moved := voronoi.Relax(s.sites, d)
	if moved {
		s.dirty = true
	}
	return moved
}

// RelaxN делает до n шагов, останавливается раньше, если точки встали.
func (s *Scene) RelaxN(n int) int {
	steps := 0
	for ; steps < n; steps++ {
		if !s.Relax() {
			break
		}
	}
	s.log.Debug("[relax] Релаксация завершена", zap.Int("steps", steps), zap.Int("sites", len(s.sites)))
	return steps
}
