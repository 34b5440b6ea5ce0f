package voronoi

import "math"

// с какой стороны прямой лежит точка: <= 0 - внутри полуплоскости
func lineSide(p, n, m Vertex) float64 {
	return p.Sub(m).Dot(n)
}

// Пересечение отрезка ab с прямой, заданной нормалью n и точкой m.
// Для параллельного (или вырожденного) отрезка пересечения нет.
func segLineIntersection(a, b, n, m Vertex) (Vertex, bool) {
	ab := b.Sub(a)
	denom := ab.Dot(n)
	if math.Abs(denom) < eps {
		return Vertex{}, false
	}
	t := m.Sub(a).Dot(n) / denom
	return a.Add(ab.Mul(t)), true
}

// ClipHalfPlane отсекает от выпуклого многоугольника все, что лежит вне
// полуплоскости {p : dot(p-m, n) <= 0}. Возвращает новый слайс, входной не меняется.
func ClipHalfPlane(poly Polygon, n, m Vertex) Polygon {
	if len(poly) == 0 {
		return Polygon{}
	}

	res := make(Polygon, 0, len(poly)+1)
	for i := range poly {
		curr := poly[i]
		next := poly[(i+1)%len(poly)]
		currIn := lineSide(curr, n, m) <= 0
		nextIn := lineSide(next, n, m) <= 0

		switch {
		case currIn && nextIn:
			res = append(res, next)
		case currIn && !nextIn:
			// выходим из полуплоскости - только точка пересечения
			if hit, ok := segLineIntersection(curr, next, n, m); ok {
				res = append(res, hit)
			}
		case !currIn && nextIn:
			// входим обратно
			if hit, ok := segLineIntersection(curr, next, n, m); ok {
				res = append(res, hit)
			}
			res = append(res, next)
		}
	}
	return res
}
