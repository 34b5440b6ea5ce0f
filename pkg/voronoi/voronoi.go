package voronoi

import (
	"github.com/0x0FACED/go-lloyd/pkg/logger"
	"go.uber.org/zap"
)

// Основная функция - база.
// Для каждой точки берем весь прямоугольник и по очереди отрезаем от него
// полуплоскости за серединными перпендикулярами ко всем остальным точкам.
// O(n^2) отсечений, для десятков точек этого достаточно.
func CreateDiagram(sites []Site, bbox BoundingBox, logger *logger.ZapLogger) *Diagram {
	d := &Diagram{
		Cells: make(map[int]Cell, len(sites)),
	}

	logger.Debug("[v] Построение запущено", zap.Int("sites", len(sites)), zap.Any("bbox", bbox))

	if err := Check(sites, bbox); err != nil {
		logger.Warn("[v] Входные данные вырождены", zap.Error(err))
	}

	// идентификаторы - индексы в текущем слайсе
	for i := range sites {
		sites[i].ID = i
	}

	base := bbox.polygon()
	if !bbox.Valid() {
		// вырожденный прямоугольник - все ячейки пустые
		base = Polygon{}
	}

	edges := newEdgeSet(len(sites) * 3)
	var empty int

	for i := range sites {
		s := sites[i].Vertex
		poly := append(Polygon(nil), base...)

		for j := range sites {
			if i == j {
				continue
			}
			t := sites[j].Vertex
			// нормаль смотрит от s к t, сторона s - "внутри"
			poly = ClipHalfPlane(poly, t.Sub(s), midpoint(s, t))
			if len(poly) == 0 {
				// пустую ячейку уже не восстановить
				break
			}
		}

		if len(poly) == 0 {
			empty++
		}

		d.Cells[i] = Cell{Polygon: poly, Site: sites[i]}
		edges.addPolygon(poly)
	}

	d.Edges = edges.edges

	logger.Debug("[v] Построение завершено",
		zap.Int("cells", len(d.Cells)),
		zap.Int("edges", len(d.Edges)),
		zap.Int("empty", empty),
	)

	return d
}
