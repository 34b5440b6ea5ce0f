package voronoi

// Relax - один шаг релаксации Ллойда: каждая точка (кроме Pointer)
// переезжает в центр масс своей ячейки. Возвращает true, если хотя бы одна
// точка сдвинулась, тогда диаграмму нужно перестроить.
func Relax(sites []Site, d *Diagram) bool {
	if d == nil {
		return false
	}

	moved := false
	for i := range sites {
		if sites[i].Pointer {
			continue
		}

		cell, ok := d.Cells[i]
		// слайс менялся после построения - индекс ячейки уже не наш
		if !ok || cell.Site.ID != i || sites[i].ID != i || len(cell.Polygon) < 3 {
			continue
		}

		c := Centroid(cell.Polygon)
		if !isFinite(c) {
			continue
		}

		if c != sites[i].Vertex {
			sites[i].Vertex = c
			moved = true
		}
	}
	return moved
}
