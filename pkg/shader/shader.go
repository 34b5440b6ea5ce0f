// Package shader считает значение заливки в центроиде каждой ячейки
// и переводит его в цвет HSL-палитры.
package shader

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/0x0FACED/go-lloyd/pkg/noise"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

type Mode string

const (
	ModeOff      Mode = "off"
	ModeNoise    Mode = "noise"
	ModeDistance Mode = "distance"
	ModeSpiral   Mode = "spiral"
	ModeCellID   Mode = "cellId"
)

// простое, соседние id расходятся по палитре
const cellIDPeriod = 11

var modes = []Mode{ModeOff, ModeNoise, ModeDistance, ModeSpiral, ModeCellID}

// ParseMode принимает имя режима без учета регистра.
func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown shading mode %q", s)
}

// Options - снимок настроек отрисовки, читается один раз на кадр.
type Options struct {
	Mode       Mode
	Hue        float64 // градусы
	Spread     float64 // градусы, которые покрывает v из [0, 1]
	Saturation float64 // проценты
	Lightness  float64 // проценты
	Scale      float64 // размер узора noise и spiral в пикселях
	Speed      float64
	Octaves    int

	ShowEdges     bool
	ShowSites     bool
	ShowHighlight bool
	Glow          bool
	EdgeWidth     float64
	SiteRadius    float64
}

func DefaultOptions() Options {
	return Options{
		Mode:          ModeNoise,
		Hue:           200,
		Spread:        120,
		Saturation:    70,
		Lightness:     55,
		Scale:         120,
		Speed:         1,
		Octaves:       noise.DefaultOctaves,
		ShowEdges:     true,
		ShowSites:     true,
		ShowHighlight: true,
		EdgeWidth:     1.5,
		SiteRadius:    3,
	}
}

// Color переводит значение заливки в цвет палитры.
func (o Options) Color(v float64) colorful.Color {
	return HSL(o.Hue+v*o.Spread, o.Saturation, o.Lightness)
}

// HSL строит цвет из тона в градусах (любой диапазон) и процентов.
func HSL(h, s, l float64) colorful.Color {
	h = math.Mod(math.Mod(h, 360)+360, 360)
	return colorful.Hsl(h, noise.Clamp(s/100, 0, 1), noise.Clamp(l/100, 0, 1)).Clamped()
}

// Time переводит прошедшее время во время шейдера.
func Time(elapsed time.Duration, speed float64) float64 {
	return elapsed.Seconds() * speed
}

// Value - значение заливки ячейки с центроидом c и индексом id.
// pointer - положение точки указателя, t - время шейдера.
func Value(o Options, c voronoi.Vertex, id int, t float64, pointer voronoi.Vertex, bbox voronoi.BoundingBox) float64 {
	scale := o.Scale
	if scale <= 0 {
		scale = 1
	}
	switch o.Mode {
	case ModeNoise:
		octaves := o.Octaves
		if octaves <= 0 {
			octaves = noise.DefaultOctaves
		}
		return noise.FBM(c.X/scale+t*0.3, c.Y/scale+t*0.27, octaves)
	case ModeDistance:
		d := c.Sub(pointer).Norm()
		maxD := math.Hypot(bbox.Width(), bbox.Height())
		return 1 - noise.Smoothstep(0, maxD*0.7, d)
	case ModeSpiral:
		vec := c.Sub(bbox.Center())
		dist := vec.Norm() / (scale * 2)
		angle := math.Atan2(vec.Y, vec.X) / (math.Pi * 2)
		return noise.Fract(dist - angle*5 + t*0.5)
	case ModeCellID:
		return float64(id%cellIDPeriod) / cellIDPeriod
	}
	return 0
}

// Fill - одна залитая ячейка.
type Fill struct {
	Index    int
	Polygon  voronoi.Polygon
	Centroid voronoi.Vertex
	Value    float64
	Color    colorful.Color
}

// Shade заливает ячейки с тремя и более вершинами в порядке индексов.
// В режиме off ничего не заливается.
func Shade(d *voronoi.Diagram, o Options, t float64, pointer voronoi.Vertex, bbox voronoi.BoundingBox) []Fill {
	if d == nil || o.Mode == ModeOff || o.Mode == "" {
		return nil
	}

	keys := make([]int, 0, len(d.Cells))
	for k := range d.Cells {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	fills := make([]Fill, 0, len(keys))
	for _, k := range keys {
		cell := d.Cells[k]
		if len(cell.Polygon) < 3 {
			continue
		}
		c := voronoi.Centroid(cell.Polygon)
		v := Value(o, c, cell.Site.ID, t, pointer, bbox)
		fills = append(fills, Fill{
			Index:    k,
			Polygon:  cell.Polygon,
			Centroid: c,
			Value:    v,
			Color:    o.Color(v),
		})
	}
	return fills
}
