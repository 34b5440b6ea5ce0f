package voronoi

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/0x0FACED/go-lloyd/pkg/logger"
)

var box100 = NewBoundingBox(0, 100, 0, 100)

func randomSites(r *rand.Rand, n int, bbox BoundingBox) []Site {
	sites := make([]Site, n)
	for i := range sites {
		sites[i].Vertex = Vertex{
			X: bbox.Xl + r.Float64()*bbox.Width(),
			Y: bbox.Yt + r.Float64()*bbox.Height(),
		}
	}
	return sites
}

// signed distance p to each non-degenerate edge, orientation independent
func containsPoint(poly Polygon, p Vertex, tol float64) bool {
	if len(poly) < 3 {
		return false
	}
	sign := 1.0
	if signedArea(poly) < 0 {
		sign = -1
	}
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		ab := b.Sub(a)
		l := ab.Norm()
		if l < 1e-12 {
			continue
		}
		if sign*ab.Cross(p.Sub(a))/l < -tol {
			return false
		}
	}
	return true
}

func signedArea(poly Polygon) float64 {
	var s float64
	for i := range poly {
		s += poly[i].Cross(poly[(i+1)%len(poly)])
	}
	return s / 2
}

func TestCreateDiagram_SingleSite(t *testing.T) {
	sites := []Site{{Vertex: Vertex{X: 50, Y: 50}}}
	d := CreateDiagram(sites, box100, nil)

	poly := d.Cells[0].Polygon
	if len(poly) != 4 {
		t.Fatalf("len(polygon) = %d, want 4", len(poly))
	}
	want := Polygon{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
	if diff := cmp.Diff(want, poly); diff != "" {
		t.Errorf("single site cell mismatch (-want +got):\n%s", diff)
	}
	if len(d.Edges) != 4 {
		t.Errorf("len(Edges) = %d, want 4", len(d.Edges))
	}
}

func TestCreateDiagram_TwoSiteBisector(t *testing.T) {
	for _, scale := range []float64{1, 1e12, 1e16, 1e17} {
		t.Run(fmt.Sprintf("scale %g", scale), func(t *testing.T) {
			bbox := NewBoundingBox(0, 100*scale, 0, 100*scale)
			sites := []Site{
				{Vertex: Vertex{X: 25 * scale, Y: 50 * scale}},
				{Vertex: Vertex{X: 75 * scale, Y: 50 * scale}},
			}
			d := CreateDiagram(sites, bbox, nil)
			tol := 1e-6 * scale

			maxX := math.Inf(-1)
			for _, p := range d.Cells[0].Polygon {
				maxX = math.Max(maxX, p.X)
			}
			if maxX > 50*scale+tol {
				t.Errorf("left cell max x = %v, want <= %v", maxX, 50*scale)
			}

			minX := math.Inf(1)
			for _, p := range d.Cells[1].Polygon {
				minX = math.Min(minX, p.X)
			}
			if minX < 50*scale-tol {
				t.Errorf("right cell min x = %v, want >= %v", minX, 50*scale)
			}

			// 4 + 4 стороны, общий бисектор учитывается один раз
			if len(d.Edges) != 7 {
				t.Errorf("len(Edges) = %d, want 7", len(d.Edges))
			}
		})
	}
}

func TestCreateDiagram_AssignsIDs(t *testing.T) {
	sites := randomSites(rand.New(rand.NewSource(3)), 6, box100)
	for i := range sites {
		sites[i].ID = 100 + i
	}
	d := CreateDiagram(sites, box100, nil)

	for i := range sites {
		if sites[i].ID != i {
			t.Errorf("sites[%d].ID = %d, want %d", i, sites[i].ID, i)
		}
		if got := d.Cells[i].Site.ID; got != i {
			t.Errorf("Cells[%d].Site.ID = %d, want %d", i, got, i)
		}
	}
}

func TestCreateDiagram_Partition(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	tests := []struct {
		name  string
		sites int
	}{
		{"few", 3},
		{"dozens", 30},
		{"hundred", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bbox := NewBoundingBox(-20, 180, 10, 90)
			sites := randomSites(r, tt.sites, bbox)
			d := CreateDiagram(sites, bbox, nil)

			if len(d.Cells) != tt.sites {
				t.Fatalf("len(Cells) = %d, want %d", len(d.Cells), tt.sites)
			}

			var area float64
			for _, c := range d.Cells {
				area += c.Polygon.Area()
			}
			if math.Abs(area-bbox.Area()) > 1e-6*bbox.Area() {
				t.Errorf("sum of cell areas = %v, want %v", area, bbox.Area())
			}

			const tol = 1e-6
			for k := 0; k < 2000; k++ {
				p := Vertex{
					X: bbox.Xl + r.Float64()*bbox.Width(),
					Y: bbox.Yt + r.Float64()*bbox.Height(),
				}
				loose, strict := 0, 0
				for _, c := range d.Cells {
					if containsPoint(c.Polygon, p, tol) {
						loose++
					}
					if containsPoint(c.Polygon, p, -tol) {
						strict++
					}
				}
				if loose < 1 || strict > 1 {
					t.Fatalf("point %v: in %d cells (tolerant), %d cells (strict), want exactly one", p, loose, strict)
				}
			}
		})
	}
}

func TestCreateDiagram_CellsInsideBox(t *testing.T) {
	bbox := NewBoundingBox(0, 640, 0, 480)
	rect := bbox.Rect().ExpandedByMargin(1e-9)
	sites := randomSites(rand.New(rand.NewSource(11)), 50, bbox)
	d := CreateDiagram(sites, bbox, nil)

	for i, c := range d.Cells {
		for _, p := range c.Polygon {
			if !rect.ContainsPoint(p) {
				t.Errorf("cell %d vertex %v outside %v", i, p, bbox)
			}
		}
		if !containsPoint(c.Polygon, c.Site.Vertex, 1e-9) {
			t.Errorf("cell %d does not contain its site %v", i, c.Site.Vertex)
		}
	}
}

func TestCreateDiagram_EdgesUnique(t *testing.T) {
	sites := randomSites(rand.New(rand.NewSource(5)), 40, box100)
	d := CreateDiagram(sites, box100, nil)

	seen := make(map[edgeKey]int)
	for i, e := range d.Edges {
		k := keyEdge(e.Va, e.Vb)
		if j, ok := seen[k]; ok {
			t.Errorf("Edges[%d] duplicates Edges[%d]: %v", i, j, e)
		}
		seen[k] = i
	}

	// каждая сторона каждой ячейки присутствует в списке ребер
	for i, c := range d.Cells {
		for k := range c.Polygon {
			key := keyEdge(c.Polygon[k], c.Polygon[(k+1)%len(c.Polygon)])
			if key.a == key.b {
				continue
			}
			if _, ok := seen[key]; !ok {
				t.Errorf("cell %d side %d missing from Edges", i, k)
			}
		}
	}
}

func TestCreateDiagram_Deterministic(t *testing.T) {
	a := randomSites(rand.New(rand.NewSource(9)), 25, box100)
	b := append([]Site(nil), a...)

	d1 := CreateDiagram(a, box100, nil)
	d2 := CreateDiagram(b, box100, nil)
	if diff := cmp.Diff(d1, d2); diff != "" {
		t.Errorf("CreateDiagram not deterministic (-first +second):\n%s", diff)
	}
}

func TestCreateDiagram_Degenerate(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := logger.FromCore(core)

	sites := []Site{{Vertex: Vertex{X: 1, Y: 1}}, {Vertex: Vertex{X: 2, Y: 2}}}
	d := CreateDiagram(sites, NewBoundingBox(10, 10, 0, 5), log)

	if len(d.Cells) != 2 {
		t.Fatalf("len(Cells) = %d, want 2", len(d.Cells))
	}
	for i, c := range d.Cells {
		if len(c.Polygon) != 0 {
			t.Errorf("Cells[%d] has %d vertices, want empty", i, len(c.Polygon))
		}
	}
	if len(d.Edges) != 0 {
		t.Errorf("len(Edges) = %d, want 0", len(d.Edges))
	}
	if logs.Len() != 1 {
		t.Errorf("warnings logged = %d, want 1", logs.Len())
	}

	empty := CreateDiagram(nil, box100, nil)
	if len(empty.Cells) != 0 || len(empty.Edges) != 0 {
		t.Errorf("CreateDiagram(nil) = %d cells, %d edges, want none", len(empty.Cells), len(empty.Edges))
	}
}

func TestCreateDiagram_DuplicateSites(t *testing.T) {
	// совпадающие точки: нормаль нулевая, ячейки не должны пропадать
	sites := []Site{{Vertex: Vertex{X: 30, Y: 30}}, {Vertex: Vertex{X: 30, Y: 30}}, {Vertex: Vertex{X: 70, Y: 70}}}
	d := CreateDiagram(sites, box100, logger.Nop())
	for i := range sites {
		if len(d.Cells[i].Polygon) < 3 {
			t.Errorf("Cells[%d] has %d vertices, want a polygon", i, len(d.Cells[i].Polygon))
		}
	}
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name  string
		sites []Site
		bbox  BoundingBox
		want  []error
	}{
		{"ok", []Site{{}}, box100, nil},
		{"no sites", nil, box100, []error{ErrNoSites}},
		{"flat box", []Site{{}}, NewBoundingBox(0, 100, 5, 5), []error{ErrDegenerateBox}},
		{"inverted box", []Site{{}}, NewBoundingBox(10, 0, 0, 10), []error{ErrDegenerateBox}},
		{"both", nil, NewBoundingBox(0, 0, 0, 0), []error{ErrDegenerateBox, ErrNoSites}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Check(tt.sites, tt.bbox)
			if (err != nil) != (len(tt.want) > 0) {
				t.Fatalf("Check() = %v, want errors %v", err, tt.want)
			}
			for _, w := range tt.want {
				if !errors.Is(err, w) {
					t.Errorf("Check() = %v, want errors.Is %v", err, w)
				}
			}
		})
	}
}

func TestFindSiteAt(t *testing.T) {
	sites := []Site{
		{Vertex: Vertex{X: 10, Y: 10}, Pointer: true},
		{Vertex: Vertex{X: 12, Y: 10}},
		{Vertex: Vertex{X: 15, Y: 10}},
	}
	tests := []struct {
		name string
		p    Vertex
		want int
	}{
		{"nearest", Vertex{X: 14, Y: 10}, 2},
		{"pointer skipped", Vertex{X: 10, Y: 10}, 1},
		{"too far", Vertex{X: 50, Y: 50}, -1},
	}
	for _, tt := range tests {
		if got := FindSiteAt(sites, tt.p, 5); got != tt.want {
			t.Errorf("%s: FindSiteAt(%v) = %d, want %d", tt.name, tt.p, got, tt.want)
		}
	}
}

func TestKeyEdge(t *testing.T) {
	a := Vertex{X: 10.0001, Y: 20}
	b := Vertex{X: 30, Y: 40.0004}
	// те же точки с шумом в последних битах и в обратном порядке
	a2 := Vertex{X: 10.0001 + 1e-12, Y: 20 - 1e-12}
	b2 := Vertex{X: 30 - 1e-12, Y: 40.0004}

	if keyEdge(a, b) != keyEdge(b2, a2) {
		t.Errorf("keyEdge differs for reversed noisy segment")
	}
	if keyEdge(a, b) == keyEdge(a, Vertex{X: 30, Y: 40.002}) {
		t.Errorf("keyEdge equal for different segments")
	}
	if got := roundKey(1.23456); got != 1235 {
		t.Errorf("roundKey(1.23456) = %v, want 1235", got)
	}
	if got := roundKey(-0.25); got != -250 {
		t.Errorf("roundKey(-0.25) = %v, want -250", got)
	}
}

func TestEdgeSet_SkipsZeroLength(t *testing.T) {
	s := newEdgeSet(4)
	if s.add(Vertex{X: 1, Y: 1}, Vertex{X: 1.0000001, Y: 1}) {
		t.Errorf("add() accepted a zero-length edge")
	}
	if !s.add(Vertex{X: 1, Y: 1}, Vertex{X: 2, Y: 1}) {
		t.Errorf("add() rejected a new edge")
	}
	if s.add(Vertex{X: 2, Y: 1}, Vertex{X: 1, Y: 1}) {
		t.Errorf("add() accepted a reversed duplicate")
	}
	if len(s.edges) != 1 {
		t.Errorf("len(edges) = %d, want 1", len(s.edges))
	}
}

func TestCreateDiagram_LogsSummary(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	CreateDiagram([]Site{{Vertex: Vertex{X: 1, Y: 1}}}, box100, logger.FromCore(core))

	entries := logs.FilterField(zap.Int("edges", 4)).All()
	if len(entries) != 1 {
		t.Errorf("summary entries with edges=4: %d, want 1", len(entries))
	}
}
