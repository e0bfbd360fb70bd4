package isochrone

import (
	"testing"

	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

func cellOf(t *testing.T, g *GriddedData, c geo.Coord) (int, int) {
	t.Helper()
	crossings := g.Intersect(c, c)
	if len(crossings) != 1 {
		t.Fatalf("Intersect(c, c) returned %d crossings, want 1", len(crossings))
	}
	return crossings[0].Col, crossings[0].Row
}

func TestGriddedDataSetIfLessThanIsMonotone(t *testing.T) {
	center := geo.Coord{0, 0}
	g := NewGriddedData(center, graph.Drive, 600)

	g.SetIfLessThan(center, 100)
	col, row := cellOf(t, g, center)
	v, ok := g.At(col, row)
	if !ok || v != 100 {
		t.Fatalf("At() = (%v, %v), want (100, true)", v, ok)
	}

	g.SetIfLessThan(center, 200)
	v, _ = g.At(col, row)
	if v != 100 {
		t.Errorf("SetIfLessThan(200) after 100 overwrote to %v, want 100 unchanged", v)
	}

	g.SetIfLessThan(center, 50)
	v, _ = g.At(col, row)
	if v != 50 {
		t.Errorf("SetIfLessThan(50) after 100 = %v, want 50", v)
	}
}

func TestGriddedDataUnreachedCellsReportFalse(t *testing.T) {
	g := NewGriddedData(geo.Coord{0, 0}, graph.Drive, 600)
	if _, ok := g.At(0, 0); ok {
		t.Errorf("At(0,0) on a fresh grid reported reached")
	}
}

func TestGriddedDataIntersectFindsBothEndpoints(t *testing.T) {
	g := NewGriddedData(geo.Coord{0, 0}, graph.Pedestrian, 300)
	a := geo.Coord{0, 0}
	b := geo.Coord{0.001, 0.001}

	crossings := g.Intersect(a, b)
	if len(crossings) < 2 {
		t.Fatalf("Intersect returned %d crossings, want at least 2", len(crossings))
	}
	first := crossings[0]
	last := crossings[len(crossings)-1]
	if first.Fraction != 0 {
		t.Errorf("first crossing fraction = %v, want 0", first.Fraction)
	}
	if last.Fraction <= first.Fraction {
		t.Errorf("last crossing fraction %v not after first %v", last.Fraction, first.Fraction)
	}
}

func TestGriddedDataMarkEdgeInterpolatesAlongShape(t *testing.T) {
	g := NewGriddedData(geo.Coord{0, 0}, graph.Drive, 600)
	shape := geo.CoordArray{{0, 0}, {0.002, 0}}

	g.MarkEdge(shape, 0, 100)

	startCol, startRow := cellOf(t, g, geo.Coord{0, 0})
	startV, ok := g.At(startCol, startRow)
	if !ok || startV != 0 {
		t.Errorf("start of edge = (%v, %v), want (0, true)", startV, ok)
	}

	endCol, endRow := cellOf(t, g, shape[1])
	endV, ok := g.At(endCol, endRow)
	if !ok || endV > 100 {
		t.Errorf("end of edge = (%v, %v), want a value <= 100", endV, ok)
	}
}

func TestGriddedDataToFeatureCollectionOnlyIncludesReachedCells(t *testing.T) {
	g := NewGriddedData(geo.Coord{0, 0}, graph.Drive, 600)
	fc := g.ToFeatureCollection()
	if len(fc.Features) != 0 {
		t.Fatalf("fresh grid produced %d features, want 0", len(fc.Features))
	}

	g.SetIfLessThan(geo.Coord{0, 0}, 42)
	fc = g.ToFeatureCollection()
	if len(fc.Features) != 1 {
		t.Fatalf("grid with one reached cell produced %d features, want 1", len(fc.Features))
	}
	seconds, ok := fc.Features[0].Properties["seconds"].(float32)
	if !ok || seconds != 42 {
		t.Errorf("feature seconds property = %v, want 42", fc.Features[0].Properties["seconds"])
	}
}
