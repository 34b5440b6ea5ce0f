package voronoi

import "math"

// Точность ключа: три знака после запятой.
const keyScale = 1000

// Соседние ячейки считают общий отрезок независимо, координаты могут
// отличаться в последних битах, поэтому сравниваем округленные ключи.
// Ключ остается float64: при больших координатах int64 переполняется.
type pointKey struct {
	x, y float64
}

type edgeKey struct {
	a, b pointKey
}

// округление половины вверх
func roundKey(v float64) float64 {
	return math.Floor(v*keyScale + 0.5)
}

func keyPoint(p Vertex) pointKey {
	return pointKey{roundKey(p.X), roundKey(p.Y)}
}

func (k pointKey) less(o pointKey) bool {
	if k.x != o.x {
		return k.x < o.x
	}
	return k.y < o.y
}

// ключ не зависит от направления отрезка
func keyEdge(a, b Vertex) edgeKey {
	ka, kb := keyPoint(a), keyPoint(b)
	if kb.less(ka) {
		ka, kb = kb, ka
	}
	return edgeKey{ka, kb}
}

type edgeSet struct {
	seen  map[edgeKey]struct{}
	edges []Edge
}

func newEdgeSet(capacity int) *edgeSet {
	return &edgeSet{
		seen:  make(map[edgeKey]struct{}, capacity),
		edges: make([]Edge, 0, capacity),
	}
}

// add добавляет отрезок, если такого еще не было. Первый записавший побеждает.
func (s *edgeSet) add(a, b Vertex) bool {
	k := keyEdge(a, b)
	if k.a == k.b {
		// отрезок нулевой длины
		return false
	}
	if _, ok := s.seen[k]; ok {
		return false
	}
	s.seen[k] = struct{}{}
	s.edges = append(s.edges, Edge{Va: a, Vb: b})
	return true
}

func (s *edgeSet) addPolygon(poly Polygon) {
	for k := range poly {
		s.add(poly[k], poly[(k+1)%len(poly)])
	}
}
