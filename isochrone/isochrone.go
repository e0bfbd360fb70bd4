package isochrone

import (
	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// Location is a location already snapped to the graph: the node considered
// its "anchor", and the set of outbound edges leaving that node together
// with how far along each edge (0..1) the snap point sits. Snapping itself
// - matching a raw lng/lat to graph edges - is an external collaborator;
// this package only ever consumes its result.
type Location struct {
	Point        geo.Coord
	Node         graph.GraphId
	EdgeIds      []graph.GraphId
	PercentAlong []float32
}

// Isochrone drives the three expansion modes (forward, reverse, multimodal)
// over a shared GraphReader, producing one GriddedData per call. Each call
// builds a fresh expander and grid, so no state is kept across calls and a
// single instance can safely serve one request after another.
type Isochrone struct {
	reader graph.GraphReader
}

func NewIsochrone(reader graph.GraphReader) *Isochrone {
	return &Isochrone{reader: reader}
}

// Compute runs the forward expansion from origin, bounded by maxSeconds,
// and returns the resulting time-to-reach grid.
func (self *Isochrone) Compute(origin Location, cost costing.Costing, mode graph.TravelMode, maxSeconds float32) *GriddedData {
	grid := NewGriddedData(origin.Point, mode, maxSeconds)
	expander := NewForwardExpander(self.reader, cost, mode, grid, maxSeconds)
	expander.SeedOrigin(origin.Node, origin.EdgeIds, origin.PercentAlong)
	return expander.Compute()
}

// ComputeReverse runs the reverse expansion to destination, producing a
// grid of time-to-reach-the-destination rather than time-from-origin.
func (self *Isochrone) ComputeReverse(destination Location, cost costing.Costing, mode graph.TravelMode, maxSeconds float32) *GriddedData {
	grid := NewGriddedData(destination.Point, mode, maxSeconds)
	expander := NewReverseExpander(self.reader, cost, mode, grid, maxSeconds)
	expander.SeedDestination(destination.Node, destination.EdgeIds, destination.PercentAlong)
	return expander.Compute()
}

// ComputeMultiModal runs the walk+transit expansion from origin. startTime is
// the seconds-from-midnight the trip departs at, used to turn a label's
// elapsed seconds into a clock time for schedule lookups.
func (self *Isochrone) ComputeMultiModal(origin Location, walk costing.Costing, transit costing.TransitCosting, maxSeconds float32, startTime uint32) *GriddedData {
	grid := NewGriddedData(origin.Point, graph.Transit, maxSeconds)
	expander := NewMultiModalExpander(self.reader, walk, transit, grid, maxSeconds)
	expander.SetStartTime(startTime)
	expander.SeedOrigin(origin.Node, origin.EdgeIds, origin.PercentAlong)
	return expander.Compute()
}
