package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/0x0FACED/go-lloyd/pkg/logger"
	"github.com/0x0FACED/go-lloyd/pkg/voronoi"
)

var (
	box       = voronoi.NewBoundingBox(0, 200, 0, 100)
	cmpApprox = cmpopts.EquateApprox(0, 1e-9)
)

func positions(sites []voronoi.Site) []voronoi.Vertex {
	out := make([]voronoi.Vertex, len(sites))
	for i, s := range sites {
		out[i] = s.Vertex
	}
	return out
}

func TestNew(t *testing.T) {
	s := New(box, 1, nil)
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	if got := s.Sites()[0]; !got.Pointer || got.Vertex != box.Center() {
		t.Errorf("pointer site = %+v, want Pointer at %v", got, box.Center())
	}
	if !s.Dirty() {
		t.Errorf("Dirty() = false for a new scene")
	}
}

func TestCompute_DemandGated(t *testing.T) {
	s := New(box, 1, nil)
	s.AddSite(voronoi.Vertex{X: 20, Y: 20})

	d1, err := s.Compute()
	if err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	if s.Dirty() {
		t.Errorf("Dirty() after Compute = true")
	}
	d2, _ := s.Compute()
	if d1 != d2 {
		t.Errorf("Compute() rebuilt a clean scene")
	}

	s.SetPointer(s.Pointer())
	if d3, _ := s.Compute(); d3 != d1 {
		t.Errorf("Compute() rebuilt after a no-op pointer update")
	}

	s.SetPointer(voronoi.Vertex{X: 150, Y: 50})
	if !s.Dirty() {
		t.Errorf("Dirty() after pointer move = false")
	}
	if d4, _ := s.Compute(); d4 == d1 {
		t.Errorf("Compute() reused a stale diagram")
	}
}

func TestCompute_Degenerate(t *testing.T) {
	s := New(box, 1, nil)
	s.Resize(voronoi.NewBoundingBox(0, 0, 0, 100))
	d, err := s.Compute()
	if !errors.Is(err, voronoi.ErrDegenerateBox) {
		t.Errorf("Compute() error = %v, want ErrDegenerateBox", err)
	}
	if d == nil || len(d.Cells[0].Polygon) != 0 {
		t.Errorf("Compute() on flat box = %+v, want one empty cell", d)
	}
}

func TestSiteEditing(t *testing.T) {
	s := New(box, 1, nil)
	a := s.AddSite(voronoi.Vertex{X: 10, Y: 10})
	b := s.AddSite(voronoi.Vertex{X: 90, Y: 90})
	if a != 1 || b != 2 {
		t.Fatalf("AddSite() indices = %d, %d, want 1, 2", a, b)
	}

	if err := s.MoveSite(a, voronoi.Vertex{X: 11, Y: 12}); err != nil {
		t.Fatalf("MoveSite() error = %v", err)
	}
	if got := s.FindSiteAt(voronoi.Vertex{X: 12, Y: 12}, 5); got != a {
		t.Errorf("FindSiteAt() = %d, want %d", got, a)
	}

	tests := []struct {
		name string
		idx  int
		want error
	}{
		{"pointer", 0, ErrPointerSite},
		{"negative", -1, ErrSiteIndex},
		{"past end", 3, ErrSiteIndex},
	}
	for _, tt := range tests {
		if err := s.MoveSite(tt.idx, voronoi.Vertex{}); !errors.Is(err, tt.want) {
			t.Errorf("%s: MoveSite() error = %v, want %v", tt.name, err, tt.want)
		}
		if err := s.RemoveSite(tt.idx); !errors.Is(err, tt.want) {
			t.Errorf("%s: RemoveSite() error = %v, want %v", tt.name, err, tt.want)
		}
	}

	if err := s.RemoveSite(a); err != nil {
		t.Fatalf("RemoveSite() error = %v", err)
	}
	want := []voronoi.Vertex{box.Center(), {X: 90, Y: 90}}
	if diff := cmp.Diff(want, positions(s.Sites())); diff != "" {
		t.Errorf("sites after RemoveSite mismatch (-want +got):\n%s", diff)
	}

	s.Clear()
	if s.Len() != 1 || !s.Sites()[0].Pointer {
		t.Errorf("Clear() left %d sites", s.Len())
	}
}

func TestRandomize(t *testing.T) {
	s := New(box, 7, nil)
	s.Randomize(30, true, 10)
	if s.Len() != 31 {
		t.Fatalf("Len() = %d, want 31", s.Len())
	}
	inner := voronoi.NewBoundingBox(10, 190, 10, 90).Rect()
	for i, site := range s.Sites()[1:] {
		if !inner.ContainsPoint(site.Vertex) {
			t.Errorf("site %d = %v outside margin", i+1, site.Vertex)
		}
	}

	s.Randomize(5, false, 10)
	if s.Len() != 36 {
		t.Errorf("Len() after append = %d, want 36", s.Len())
	}

	// одинаковое зерно - одинаковые точки
	o := New(box, 7, nil)
	o.Randomize(30, true, 10)
	first := New(box, 7, nil)
	first.Randomize(30, true, 10)
	if diff := cmp.Diff(positions(first.Sites()), positions(o.Sites())); diff != "" {
		t.Errorf("Randomize() not reproducible (-want +got):\n%s", diff)
	}
}

func TestGrid(t *testing.T) {
	s := New(box, 1, nil)
	s.Grid(6)
	// 2 строки по 3 столбца
	want := []voronoi.Vertex{
		box.Center(),
		{X: 200.0 / 6, Y: 25}, {X: 100, Y: 25}, {X: 500.0 / 3, Y: 25},
		{X: 200.0 / 6, Y: 75}, {X: 100, Y: 75}, {X: 500.0 / 3, Y: 75},
	}
	if diff := cmp.Diff(want, positions(s.Sites()), cmpApprox); diff != "" {
		t.Errorf("Grid(6) mismatch (-want +got):\n%s", diff)
	}

	s.Grid(5)
	if s.Len() != 6 {
		t.Errorf("Grid(5) gave %d sites, want 6 with pointer", s.Len())
	}
	s.Grid(0)
	if s.Len() != 1 {
		t.Errorf("Grid(0) gave %d sites, want only the pointer", s.Len())
	}
}

func TestRelax(t *testing.T) {
	s := New(box, 3, nil)
	s.Randomize(12, true, 5)
	pointer := s.Pointer()

	if !s.Relax() {
		t.Fatalf("Relax() on random sites = false, want true")
	}
	if !s.Dirty() {
		t.Errorf("Dirty() after moving sites = false")
	}

	steps := s.RelaxN(20)
	if steps == 0 {
		t.Fatalf("RelaxN() made no steps")
	}
	if s.Pointer() != pointer {
		t.Errorf("pointer moved to %v, want %v", s.Pointer(), pointer)
	}
}

func TestSetLogger(t *testing.T) {
	s := New(box, 1, nil)
	s.AddSite(voronoi.Vertex{X: 20, Y: 20})

	reqLog := logger.New()
	if prev := s.SetLogger(reqLog); prev != nil {
		t.Errorf("SetLogger() returned %v, want the nil logger", prev)
	}
	if _, err := s.Compute(); err != nil {
		t.Fatalf("Compute() error = %v", err)
	}
	reqLog.UpdateLogs()
	if len(reqLog.Logs) != 1 || !strings.Contains(reqLog.Logs[0], "Построение завершено") {
		t.Errorf("request logger did not see the build: %v", reqLog.Logs)
	}

	if prev := s.SetLogger(nil); prev != reqLog {
		t.Errorf("SetLogger() did not return the previous logger")
	}
}
