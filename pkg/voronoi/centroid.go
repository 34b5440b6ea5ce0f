package voronoi

// Centroid - центр масс простого многоугольника.
// Для вырожденного многоугольника (площадь около нуля) возвращается
// среднее арифметическое вершин, для меньше чем трех вершин - {0, 0}.
func Centroid(poly Polygon) Vertex {
	if len(poly) < 3 {
		return Vertex{}
	}

	var area, cx, cy float64
	for i := range poly {
		p1 := poly[i]
		p2 := poly[(i+1)%len(poly)]
		cross := p1.Cross(p2)
		area += cross
		cx += (p1.X + p2.X) * cross
		cy += (p1.Y + p2.Y) * cross
	}

	// 3 * удвоенная площадь == 6 * площадь
	sixArea := 3 * area
	if sixArea < eps && sixArea > -eps {
		var mean Vertex
		for _, p := range poly {
			mean = mean.Add(p)
		}
		return mean.Mul(1 / float64(len(poly)))
	}

	return Vertex{X: cx / sixArea, Y: cy / sixArea}
}
