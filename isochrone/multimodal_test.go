package isochrone

import (
	"testing"

	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// walkToTwoRides builds: a street node, a walk edge to stop S1, a transit
// line from S1 to S2 on operator O1/trip T1, and a second transit line from
// S2 to S3 on a different operator O2/trip T2 - enough to exercise a same-
// operator boarding followed by an operator-changing transfer.
func walkToTwoRides() (*graph.MemGraphReader, graph.GraphId, graph.GraphId) {
	const (
		tile  = 0
		level = 0
	)
	street := graph.GraphId{Tile: tile, Level: level, Index: 0}
	walkEdge := graph.GraphId{Tile: tile, Level: level, Index: 0}

	t := graph.NewMemTile()
	t.Nodes[0] = graph.NodeInfo{LatLng: geo.Coord{0, 0}, Type: graph.NodeStreet, EdgeIndex: 0, EdgeCount: 1}
	t.Nodes[1] = graph.NodeInfo{LatLng: geo.Coord{0.001, 0}, Type: graph.NodeMultiUseTransitStop, EdgeIndex: 1, EdgeCount: 1}
	t.Nodes[2] = graph.NodeInfo{LatLng: geo.Coord{0.002, 0}, Type: graph.NodeMultiUseTransitStop, EdgeIndex: 2, EdgeCount: 1}
	t.Nodes[3] = graph.NodeInfo{LatLng: geo.Coord{0.003, 0}, Type: graph.NodeMultiUseTransitStop, EdgeIndex: 3, EdgeCount: 0}

	t.Edges[0] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 1}, Length: 100,
		Forward: true, ForwardAccess: graph.AccessPedestrian, EdgeUse: graph.UseRoad,
	}
	t.Edges[1] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 2}, Forward: true,
		EdgeUse: graph.UseTransitLine, LineId: 1,
	}
	t.Edges[2] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 3}, Forward: true,
		EdgeUse: graph.UseTransitLine, LineId: 2,
	}

	t.Routes[10] = graph.TransitRoute{OperatorNameOffset: 1} // operator O1
	t.Routes[20] = graph.TransitRoute{OperatorNameOffset: 2} // operator O2

	t.Departures[1] = []graph.TransitDeparture{
		{TripId: 100, BlockId: 0, RouteId: 10, DepartureTime: 200, ArrivalTime: 300},
	}
	t.Departures[2] = []graph.TransitDeparture{
		{TripId: 200, BlockId: 0, RouteId: 20, DepartureTime: 400, ArrivalTime: 500},
	}

	reader := graph.NewMemGraphReader()
	reader.AddTile(tile, level, t)
	return reader, street, walkEdge
}

func TestMultiModalExpanderBoardsThenTransfersWithOperatorChange(t *testing.T) {
	reader, street, walkEdge := walkToTwoRides()
	walk := costing.NewPedestrianCosting(3.6) // 1 m/s, so seconds == meters
	transit := costing.NewTransitMMCosting(3.6, 40, false, false)
	grid := NewGriddedData(geo.Coord{0.0015, 0}, graph.Transit, 1000)

	exp := NewMultiModalExpander(reader, walk, transit, grid, 1000)
	exp.SeedOrigin(street, []graph.GraphId{walkEdge}, []float32{0})
	exp.Compute()

	if len(exp.labels) != 3 {
		t.Fatalf("len(labels) = %d, want 3 (walk leg, first ride, second ride)", len(exp.labels))
	}

	walkLabel := exp.labels[0]
	if diff := walkLabel.Cost.Seconds - 100; diff > 0.01 || diff < -0.01 {
		t.Fatalf("walk leg cost = %v, want 100", walkLabel.Cost.Seconds)
	}

	ride1 := exp.labels[1]
	if !ride1.HasTransit {
		t.Fatalf("ride1.HasTransit = false, want true")
	}
	if ride1.TripId != 100 || ride1.TransitOperator != 1 {
		t.Errorf("ride1 TripId/Operator = %v/%v, want 100/1", ride1.TripId, ride1.TransitOperator)
	}
	// Arriving on foot at S1 bumps the schedule clock by the 30s default
	// transfer before the departure lookup, so the wait seen here is 70
	// (200 - 130) rather than the naive 100 (200 - 100). The 30s itself
	// never lands in Seconds - only in WeightedCost, below.
	wantRide1Seconds := float32(100 + 70 + 100)
	if diff := ride1.Cost.Seconds - wantRide1Seconds; diff > 0.01 || diff < -0.01 {
		t.Errorf("ride1 cost.Seconds = %v, want %v", ride1.Cost.Seconds, wantRide1Seconds)
	}
	wantRide1Weighted := float32(100 + 30 + 70 + 100)
	if diff := ride1.Cost.WeightedCost - wantRide1Weighted; diff > 0.01 || diff < -0.01 {
		t.Errorf("ride1 cost.WeightedCost = %v, want %v", ride1.Cost.WeightedCost, wantRide1Weighted)
	}

	ride2 := exp.labels[2]
	if ride2.TripId != 200 || ride2.TransitOperator != 2 {
		t.Errorf("ride2 TripId/Operator = %v/%v, want 200/2", ride2.TripId, ride2.TransitOperator)
	}
	// Same fold-in: the 30s transfer penalty and the 300s operator-change
	// penalty both land in WeightedCost only, so Seconds is simply the
	// elapsed wait (400 - 270 = 130) plus the ride itself.
	wantRide2Seconds := ride1.Cost.Seconds + float32(130+100)
	if diff := ride2.Cost.Seconds - wantRide2Seconds; diff > 0.01 || diff < -0.01 {
		t.Errorf("ride2 cost.Seconds = %v, want %v", ride2.Cost.Seconds, wantRide2Seconds)
	}
	wantRide2Weighted := ride1.Cost.WeightedCost + float32(30+300+130+100)
	if diff := ride2.Cost.WeightedCost - wantRide2Weighted; diff > 0.01 || diff < -0.01 {
		t.Errorf("ride2 cost.WeightedCost = %v, want %v (transfer + operator-change penalty + wait + ride)", ride2.Cost.WeightedCost, wantRide2Weighted)
	}
}

// sharedOperatorTwoLines builds a stop running two lines under the same
// operator, one of which never has a wheelchair-accessible departure. Only
// that line's departure gets scanned when the tile is first registered, but
// the exclusion applies to the operator as a whole.
func sharedOperatorTwoLines() (*graph.MemGraphReader, graph.GraphId, graph.GraphId) {
	const (
		tile  = 0
		level = 0
	)
	street := graph.GraphId{Tile: tile, Level: level, Index: 0}
	walkEdge := graph.GraphId{Tile: tile, Level: level, Index: 0}

	t := graph.NewMemTile()
	t.Nodes[0] = graph.NodeInfo{LatLng: geo.Coord{0, 0}, Type: graph.NodeStreet, EdgeIndex: 0, EdgeCount: 1}
	t.Nodes[1] = graph.NodeInfo{LatLng: geo.Coord{0.001, 0}, Type: graph.NodeMultiUseTransitStop, EdgeIndex: 1, EdgeCount: 2}
	t.Nodes[2] = graph.NodeInfo{LatLng: geo.Coord{0.002, 0}, Type: graph.NodeStreet, EdgeIndex: 3, EdgeCount: 0}
	t.Nodes[3] = graph.NodeInfo{LatLng: geo.Coord{0.002, 0.001}, Type: graph.NodeStreet, EdgeIndex: 3, EdgeCount: 0}

	t.Edges[0] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 1}, Length: 10,
		Forward: true, ForwardAccess: graph.AccessPedestrian, EdgeUse: graph.UseRoad,
	}
	t.Edges[1] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 2}, Forward: true,
		EdgeUse: graph.UseTransitLine, LineId: 1, // never wheelchair-accessible
	}
	t.Edges[2] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 3}, Forward: true,
		EdgeUse: graph.UseTransitLine, LineId: 2, // wheelchair-accessible on its own
	}

	t.Routes[1] = graph.TransitRoute{OperatorNameOffset: 1}
	t.Routes[2] = graph.TransitRoute{OperatorNameOffset: 1} // same operator as route 1

	t.Departures[1] = []graph.TransitDeparture{
		{TripId: 1, RouteId: 1, DepartureTime: 10, ArrivalTime: 20, Wheelchair: false},
	}
	t.Departures[2] = []graph.TransitDeparture{
		{TripId: 2, RouteId: 2, DepartureTime: 50, ArrivalTime: 80, Wheelchair: true},
	}

	reader := graph.NewMemGraphReader()
	reader.AddTile(tile, level, t)
	return reader, street, walkEdge
}

func TestMultiModalExpanderExcludesWholeOperatorOnWheelchairMismatch(t *testing.T) {
	reader, street, walkEdge := sharedOperatorTwoLines()
	walk := costing.NewPedestrianCosting(3.6)
	transit := costing.NewTransitMMCosting(3.6, 40, true, false) // wheelchair required
	grid := NewGriddedData(geo.Coord{0.0015, 0}, graph.Transit, 1000)

	exp := NewMultiModalExpander(reader, walk, transit, grid, 1000)
	exp.SeedOrigin(street, []graph.GraphId{walkEdge}, []float32{0})
	exp.Compute()

	// The stop is reached (the walk leg settles), but both lines - even the
	// individually wheelchair-accessible one - are barred because they share
	// an operator with the line that failed the check first.
	if len(exp.labels) != 1 {
		t.Fatalf("len(labels) = %d, want 1 (walk leg only, stop excluded)", len(exp.labels))
	}
}

// transferAndDistanceCapFixture builds: a walk to a stop, a ride to a second
// stop, then a transit-connection egress, an ordinary street walk, and a
// second transit-connection access edge into a third stop - enough to
// exercise the disembark distance reset and the cumulative transfer-distance
// cap across more than one walking edge.
func transferAndDistanceCapFixture() (*graph.MemGraphReader, graph.GraphId, graph.GraphId) {
	const (
		tile  = 0
		level = 0
	)
	street := graph.GraphId{Tile: tile, Level: level, Index: 0}
	walkEdge := graph.GraphId{Tile: tile, Level: level, Index: 0}

	t := graph.NewMemTile()
	t.Nodes[0] = graph.NodeInfo{LatLng: geo.Coord{0, 0}, Type: graph.NodeStreet, EdgeIndex: 0, EdgeCount: 1}
	t.Nodes[1] = graph.NodeInfo{LatLng: geo.Coord{0.001, 0}, Type: graph.NodeMultiUseTransitStop, EdgeIndex: 1, EdgeCount: 1}
	t.Nodes[2] = graph.NodeInfo{LatLng: geo.Coord{0.002, 0}, Type: graph.NodeMultiUseTransitStop, EdgeIndex: 2, EdgeCount: 1}
	t.Nodes[3] = graph.NodeInfo{LatLng: geo.Coord{0.003, 0}, Type: graph.NodeStreet, EdgeIndex: 3, EdgeCount: 1}
	t.Nodes[4] = graph.NodeInfo{LatLng: geo.Coord{0.004, 0}, Type: graph.NodeStreet, EdgeIndex: 4, EdgeCount: 1}
	t.Nodes[5] = graph.NodeInfo{LatLng: geo.Coord{0.005, 0}, Type: graph.NodeMultiUseTransitStop, EdgeIndex: 5, EdgeCount: 0}

	t.Edges[0] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 1}, Length: 10,
		Forward: true, ForwardAccess: graph.AccessPedestrian, EdgeUse: graph.UseRoad,
	}
	t.Edges[1] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 2}, Forward: true,
		EdgeUse: graph.UseTransitLine, LineId: 1,
	}
	t.Edges[2] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 3}, Length: 60000,
		Forward: true, ForwardAccess: graph.AccessPedestrian, EdgeUse: graph.UseTransitConnection,
	}
	t.Edges[3] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 4}, Length: 30000,
		Forward: true, ForwardAccess: graph.AccessPedestrian, EdgeUse: graph.UseRoad,
	}
	t.Edges[4] = graph.DirectedEdge{
		EndNode: graph.GraphId{Tile: tile, Level: level, Index: 5}, Length: 20000,
		Forward: true, ForwardAccess: graph.AccessPedestrian, EdgeUse: graph.UseTransitConnection,
	}

	t.Routes[1] = graph.TransitRoute{OperatorNameOffset: 1}
	t.Departures[1] = []graph.TransitDeparture{
		{TripId: 1, RouteId: 1, DepartureTime: 50, ArrivalTime: 70},
	}

	reader := graph.NewMemGraphReader()
	reader.AddTile(tile, level, t)
	return reader, street, walkEdge
}

func TestMultiModalExpanderResetsDistanceOnDisembarkAndCapsCumulativeTransfer(t *testing.T) {
	reader, street, walkEdge := transferAndDistanceCapFixture()
	walk := costing.NewPedestrianCosting(3600) // 1000 m/s, keeps the grid small at these distances
	transit := costing.NewTransitMMCosting(3600, 3600, false, false)
	grid := NewGriddedData(geo.Coord{0, 0}, graph.Transit, 300)

	exp := NewMultiModalExpander(reader, walk, transit, grid, 300)
	exp.SeedOrigin(street, []graph.GraphId{walkEdge}, []float32{0})
	exp.Compute()

	// walk leg, ride, egress connection, street walk - the final access
	// connection edge is blocked by the cumulative transfer-distance cap
	// (60000 + 30000 + 20000 = 110000 > UseMaxMultiModalDistance).
	if len(exp.labels) != 4 {
		t.Fatalf("len(labels) = %d, want 4 (walk leg, ride, egress, street walk)", len(exp.labels))
	}

	egress := exp.labels[2]
	if egress.PathDistance != 60000 {
		t.Errorf("egress.PathDistance = %v, want 60000 (disembarking resets walking distance to 0 before adding this edge)", egress.PathDistance)
	}

	streetWalk := exp.labels[3]
	if streetWalk.PathDistance != 90000 {
		t.Errorf("streetWalk.PathDistance = %v, want 90000 (cumulative, not reset)", streetWalk.PathDistance)
	}
}
