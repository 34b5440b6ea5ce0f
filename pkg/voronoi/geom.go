package voronoi

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
)

// Точность для проверки параллельности и вырожденной площади
const eps = 1e-7

// Vertex - точка (и вектор) на плоскости.
// Сложение, вычитание, умножение на число, скалярное и косое произведения
// берем из r2.Point.
type Vertex = r2.Point

// квадрат расстояния между точками
func distSq(a, b Vertex) float64 {
	d := a.Sub(b)
	return d.Dot(d)
}

func midpoint(a, b Vertex) Vertex {
	return a.Add(b).Mul(0.5)
}

func isFinite(v Vertex) bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Site - точка диаграммы.
// ID равен индексу точки в слайсе на момент последнего построения.
// Pointer помечает точку, которая следует за курсором: она участвует
// в построении, но никогда не сдвигается релаксацией.
type Site struct {
	Vertex
	ID      int
	Pointer bool
}

// Bounding Box
type BoundingBox struct {
	Xl, Xr, Yt, Yb float64
}

// Create new Bounding Box
func NewBoundingBox(xl, xr, yt, yb float64) BoundingBox {
	return BoundingBox{xl, xr, yt, yb}
}

// Valid сообщает, что у прямоугольника положительная площадь.
func (b BoundingBox) Valid() bool {
	return b.Xl < b.Xr && b.Yt < b.Yb
}

func (b BoundingBox) Width() float64  { return b.Xr - b.Xl }
func (b BoundingBox) Height() float64 { return b.Yb - b.Yt }

// Area возвращает площадь, для вырожденного прямоугольника 0.
func (b BoundingBox) Area() float64 {
	if !b.Valid() {
		return 0
	}
	return b.Width() * b.Height()
}

func (b BoundingBox) Center() Vertex {
	return Vertex{X: (b.Xl + b.Xr) / 2, Y: (b.Yt + b.Yb) / 2}
}

// Rect переводит прямоугольник в r2.Rect (ось Y направлена вниз, Yt - минимум).
func (b BoundingBox) Rect() r2.Rect {
	return r2.Rect{
		X: r1.Interval{Lo: b.Xl, Hi: b.Xr},
		Y: r1.Interval{Lo: b.Yt, Hi: b.Yb},
	}
}

// углы в фиксированном порядке: верхний левый, верхний правый, нижний правый, нижний левый
func (b BoundingBox) polygon() Polygon {
	return Polygon{
		{X: b.Xl, Y: b.Yt},
		{X: b.Xr, Y: b.Yt},
		{X: b.Xr, Y: b.Yb},
		{X: b.Xl, Y: b.Yb},
	}
}

// Polygon - замкнутый многоугольник, последняя вершина соединяется с первой.
type Polygon []Vertex

// Area - площадь по формуле шнурования (без знака).
func (p Polygon) Area() float64 {
	if len(p) < 3 {
		return 0
	}
	var s float64
	for i := range p {
		s += p[i].Cross(p[(i+1)%len(p)])
	}
	return math.Abs(s) / 2
}

func (p Polygon) Perimeter() float64 {
	if len(p) < 2 {
		return 0
	}
	var s float64
	for i := range p {
		s += p[(i+1)%len(p)].Sub(p[i]).Norm()
	}
	return s
}

// Edge - отрезок границы между ячейками
type Edge struct {
	Va Vertex
	Vb Vertex
}

// Cell - ячейка точки: обрезанный многоугольник и сама точка
type Cell struct {
	Polygon Polygon
	Site    Site
}

// Структура диаграммы
type Diagram struct {
	// ключ - индекс точки на момент построения
	Cells map[int]Cell
	Edges []Edge
}
