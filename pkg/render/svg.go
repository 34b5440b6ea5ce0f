package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/0x0FACED/go-lloyd/pkg/shader"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

// Frame - все, что нужно для одного кадра.
type Frame struct {
	Sites   []voronoi.Site
	Diagram *voronoi.Diagram
	BBox    voronoi.BoundingBox
	Options shader.Options
	Time    float64
}

// errWriter запоминает первую ошибку записи: svgo ошибки не возвращает.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return len(p), nil
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// Размер холста в пикселях по длинной стороне прямоугольника.
const (
	minViewport = 100
	maxViewport = 4096
)

// viewport переводит координаты прямоугольника в целые пиксели холста.
type viewport struct {
	xl, yt        float64
	scale         float64
	width, height int
}

func newViewport(b voronoi.BoundingBox) viewport {
	scale := 1.0
	if side := math.Max(b.Width(), b.Height()); side < minViewport {
		scale = minViewport / side
	} else if side > maxViewport {
		scale = maxViewport / side
	}
	return viewport{
		xl:     b.Xl,
		yt:     b.Yt,
		scale:  scale,
		width:  max(1, int(math.Round(b.Width()*scale))),
		height: max(1, int(math.Round(b.Height()*scale))),
	}
}

func (v viewport) px(p voronoi.Vertex) (int, int) {
	return int(math.Round((p.X - v.xl) * v.scale)), int(math.Round((p.Y - v.yt) * v.scale))
}

func (v viewport) polygonXY(poly voronoi.Polygon) ([]int, []int) {
	xs := make([]int, len(poly))
	ys := make([]int, len(poly))
	for i, p := range poly {
		xs[i], ys[i] = v.px(p)
	}
	return xs, ys
}

func (v viewport) line(canvas *svg.SVG, e voronoi.Edge) {
	x1, y1 := v.px(e.Va)
	x2, y2 := v.px(e.Vb)
	canvas.Line(x1, y1, x2, y2)
}

// pointer - положение точки указателя, если она есть.
func (f Frame) pointer() (voronoi.Vertex, int, bool) {
	for i, s := range f.Sites {
		if s.Pointer {
			return s.Vertex, i, true
		}
	}
	return voronoi.Vertex{}, -1, false
}

// SVG рисует кадр: фон, закрашенные ячейки, подсветку ячейки указателя,
// ребра и точки. Прямоугольник масштабируется в холст от minViewport до
// maxViewport пикселей, атрибуты data-* позволяют перевести клик обратно.
func SVG(w io.Writer, f Frame) error {
	b := f.BBox
	if !b.Valid() {
		return fmt.Errorf("render svg: %w", voronoi.ErrDegenerateBox)
	}
	ew := &errWriter{w: w}
	canvas := svg.New(ew)
	o := f.Options
	v := newViewport(b)

	canvas.Start(v.width, v.height,
		fmt.Sprintf(`viewBox="0 0 %d %d"`, v.width, v.height),
		fmt.Sprintf(`data-xl="%g" data-yt="%g" data-scale="%g"`, v.xl, v.yt, v.scale),
	)
	canvas.Title("Voronoi")
	canvas.Rect(0, 0, v.width, v.height, "fill:#ffffff")

	pointer, pointerIdx, hasPointer := f.pointer()

	for _, fill := range shader.Shade(f.Diagram, o, f.Time, pointer, b) {
		xs, ys := v.polygonXY(fill.Polygon)
		canvas.Polygon(xs, ys, fmt.Sprintf("fill:%s;stroke:%s;stroke-width:0.5", fill.Color.Hex(), fill.Color.Hex()))
	}

	if o.ShowHighlight && hasPointer && f.Diagram != nil {
		if cell, ok := f.Diagram.Cells[pointerIdx]; ok && len(cell.Polygon) > 2 {
			xs, ys := v.polygonXY(cell.Polygon)
			canvas.Polygon(xs, ys, "fill:#ffffff;fill-opacity:0.25")
		}
	}

	if o.ShowEdges && f.Diagram != nil {
		if o.Glow {
			canvas.Gstyle(fmt.Sprintf("stroke:%s;stroke-width:%g;stroke-opacity:0.4;stroke-linecap:round", shader.HSL(o.Hue, 100, 70).Hex(), o.EdgeWidth*4))
			for _, e := range f.Diagram.Edges {
				v.line(canvas, e)
			}
			canvas.Gend()
		}
		canvas.Gstyle(fmt.Sprintf("stroke:#000000;stroke-width:%g", o.EdgeWidth))
		for _, e := range f.Diagram.Edges {
			v.line(canvas, e)
		}
		canvas.Gend()
	}

	if o.ShowSites {
		r := max(1, int(math.Round(o.SiteRadius)))
		canvas.Gstyle("fill:" + shader.HSL(o.Hue-180, 80, 50).Hex())
		for _, s := range f.Sites {
			if s.Pointer {
				continue
			}
			x, y := v.px(s.Vertex)
			canvas.Circle(x, y, r)
		}
		canvas.Gend()
		if hasPointer {
			x, y := v.px(pointer)
			canvas.Circle(x, y, r*2, "fill:none;stroke:#000000;stroke-width:1")
		}
	}

	canvas.End()
	return ew.err
}
