package voronoi

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

var (
	ErrDegenerateBox = errors.New("bounding box has no area")
	ErrNoSites       = errors.New("no sites")
)

// Check сообщает о вырожденных, но не фатальных входных данных:
// прямоугольнике без площади (все ячейки будут пустыми) и пустом наборе точек.
func Check(sites []Site, bbox BoundingBox) error {
	var err error
	if !bbox.Valid() {
		err = multierr.Append(err, fmt.Errorf("%w: [%g, %g]x[%g, %g]", ErrDegenerateBox, bbox.Xl, bbox.Xr, bbox.Yt, bbox.Yb))
	}
	if len(sites) == 0 {
		err = multierr.Append(err, ErrNoSites)
	}
	return err
}

// FindSiteAt ищет ближайшую к p точку на расстоянии меньше maxDist.
// Точка-указатель пропускается. Если ничего не нашли - -1.
func FindSiteAt(sites []Site, p Vertex, maxDist float64) int {
	closest := -1
	minDSq := maxDist * maxDist
	for i := range sites {
		if sites[i].Pointer {
			continue
		}
		if dSq := distSq(p, sites[i].Vertex); dSq < minDSq {
			minDSq = dSq
			closest = i
		}
	}
	return closest
}
