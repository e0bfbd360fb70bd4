package isochrone

import (
	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/graph"
)

// EdgeLabel is the settle/relax record the expanders keep for every edge
// they have reached: enough to recover the cost, re-derive the turn at the
// next node, and (for multimodal) keep the transit state machine going.
// Path reconstruction is out of scope, so no predecessor chain is walked
// back into a route - PredEdgeLabel is recorded on every label but nothing
// reads it.
type EdgeLabel struct {
	PredEdgeLabel int32 // index into the label list, -1 for the origin seed

	EdgeId    graph.GraphId
	OppEdgeId graph.GraphId
	EndNode   graph.GraphId

	Cost     costing.Cost
	SortCost float32 // Cost.WeightedCost plus any A*-style offset; equal to Cost.WeightedCost here

	Mode         graph.TravelMode
	PathDistance uint32 // meters walked/driven/ridden so far along the path; multimodal resets it to 0 on leaving a transit stop

	Use        graph.Use
	Origin     bool // true only for the label(s) seeded directly from the location

	// Transit-only fields, zero for every other mode.
	TripId         uint32
	BlockId        uint32
	PriorStopNode  graph.GraphId
	TransitOperator uint32
	HasTransit     bool
}

func MakeEdgeLabel(predIdx int32, edgeId, oppEdgeId, endNode graph.GraphId, cost costing.Cost, mode graph.TravelMode, pathDistance uint32, use graph.Use) EdgeLabel {
	return EdgeLabel{
		PredEdgeLabel: predIdx,
		EdgeId:        edgeId,
		OppEdgeId:     oppEdgeId,
		EndNode:       endNode,
		Cost:          cost,
		SortCost:      cost.WeightedCost,
		Mode:          mode,
		PathDistance:  pathDistance,
		Use:           use,
		PriorStopNode: graph.InvalidGraphId,
	}
}
