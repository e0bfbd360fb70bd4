package isochrone

import (
	"testing"

	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// twoNodeRoad builds a single bidirectional street segment between two
// nodes, with both directed edges registered as each other's opposing edge.
func twoNodeRoad(length uint32, speedKph byte) (*graph.MemGraphReader, graph.GraphId, graph.GraphId, graph.GraphId, graph.GraphId) {
	const (
		tile  = 0
		level = 0
	)
	a := graph.GraphId{Tile: tile, Level: level, Index: 0}
	b := graph.GraphId{Tile: tile, Level: level, Index: 1}
	aToB := graph.GraphId{Tile: tile, Level: level, Index: 0}
	bToA := graph.GraphId{Tile: tile, Level: level, Index: 1}

	t := graph.NewMemTile()
	t.Nodes[0] = graph.NodeInfo{LatLng: geo.Coord{0, 0}, EdgeIndex: 0, EdgeCount: 1}
	t.Nodes[1] = graph.NodeInfo{LatLng: geo.Coord{0.01, 0}, EdgeIndex: 1, EdgeCount: 1}

	shape := geo.CoordArray{t.Nodes[0].LatLng, t.Nodes[1].LatLng}
	t.EdgeInfos[0] = graph.EdgeInfo{Shape: shape}
	t.EdgeInfos[1] = graph.EdgeInfo{Shape: geo.ReverseShape(shape)}

	t.Edges[0] = graph.DirectedEdge{
		EndNode: b, EdgeInfoOffset: 0, Length: length, Forward: true,
		ForwardAccess: graph.AccessAuto, ReverseAccess: graph.AccessAuto, Maxspeed: speedKph,
	}
	t.Edges[1] = graph.DirectedEdge{
		EndNode: a, EdgeInfoOffset: 1, Length: length, Forward: true,
		ForwardAccess: graph.AccessAuto, ReverseAccess: graph.AccessAuto, Maxspeed: speedKph,
	}
	t.OpposingEdges[0] = bToA
	t.OpposingEdges[1] = aToB

	reader := graph.NewMemGraphReader()
	reader.AddTile(tile, level, t)
	return reader, a, b, aToB, bToA
}

func TestReverseExpanderSeedDestinationCreditsPartialCostOnOpposingEdge(t *testing.T) {
	reader, _, b, aToB, bToA := twoNodeRoad(1000, 60) // 60s full edge cost
	cost := costing.NewDriveCosting(60)
	grid := NewGriddedData(geo.Coord{0, 0}, graph.Drive, 600)

	exp := NewReverseExpander(reader, cost, graph.Drive, grid, 600)
	exp.SeedDestination(b, []graph.GraphId{aToB}, []float32{0.4})

	if len(exp.labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1", len(exp.labels))
	}
	label := exp.labels[0]
	if label.EdgeId != bToA {
		t.Errorf("seed label EdgeId = %v, want the opposing edge %v", label.EdgeId, bToA)
	}
	if label.OppEdgeId != aToB {
		t.Errorf("seed label OppEdgeId = %v, want %v", label.OppEdgeId, aToB)
	}
	if !label.Origin {
		t.Errorf("seed label Origin = false, want true")
	}
	wantSeconds := float32(60 * 0.4)
	if diff := label.Cost.Seconds - wantSeconds; diff > 0.01 || diff < -0.01 {
		t.Errorf("seed label cost = %v seconds, want %v", label.Cost.Seconds, wantSeconds)
	}

	set, idx := exp.status.Get(bToA)
	if set != EdgeTemporary {
		t.Errorf("EdgeStatus for seeded opposing edge = %v, want EdgeTemporary", set)
	}
	if idx != 0 {
		t.Errorf("EdgeStatus label index = %v, want 0", idx)
	}
}

func TestReverseExpanderSkipsSnapAtBeginNode(t *testing.T) {
	reader, _, b, aToB, _ := twoNodeRoad(1000, 60)
	cost := costing.NewDriveCosting(60)
	grid := NewGriddedData(geo.Coord{0, 0}, graph.Drive, 600)

	exp := NewReverseExpander(reader, cost, graph.Drive, grid, 600)
	// frac <= 0 means the snap point is at the begin node: nothing to credit.
	exp.SeedDestination(b, []graph.GraphId{aToB}, []float32{0})

	if len(exp.labels) != 0 {
		t.Errorf("len(labels) = %d, want 0 when snap fraction is 0", len(exp.labels))
	}
}

func TestReverseExpanderComputeReachesOrigin(t *testing.T) {
	reader, a, b, aToB, _ := twoNodeRoad(1000, 60) // 60s full edge
	cost := costing.NewDriveCosting(60)
	grid := NewGriddedData(geo.Coord{0, 0}, graph.Drive, 600)

	exp := NewReverseExpander(reader, cost, graph.Drive, grid, 600)
	exp.SeedDestination(b, []graph.GraphId{aToB}, []float32{1})
	exp.Compute()

	got, ok := cellSeconds(t, grid, exp.nodeCoord(a))
	if !ok {
		t.Fatalf("origin node a was never reached")
	}
	if diff := got - 60; diff > 0.5 || diff < -0.5 {
		t.Errorf("time to reach a = %v, want ~60", got)
	}
}
