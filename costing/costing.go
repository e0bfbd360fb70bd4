package costing

import (
	"github.com/ttpr0/isochrone-core/graph"
)

// Costing is the narrow collaborator the expanders call through for every
// edge they touch. It owns access rules, turn restrictions and the actual
// cost arithmetic; the expanders themselves never branch on road class or
// mode directly.
type Costing interface {
	// UnitSize is the bucket width of the priority queue, in weighted-cost
	// units per bucket.
	UnitSize() float32

	AccessMode() graph.AccessMode

	// GetModeWeight scales a transfer/walking cost relative to the primary
	// mode, used by the multimodal expander when comparing walk vs transit.
	GetModeWeight() float32

	// Allowed reports whether edge may be traversed forward. pred is the
	// predecessor edge of the label being expanded from, and hasPred is
	// false only for the very first edge leaving the origin.
	Allowed(edge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool

	// AllowedReverse mirrors Allowed for the reverse expansion, where edge
	// is walked via its opposing edge and the predecessor relationship is
	// inverted accordingly.
	AllowedReverse(edge graph.DirectedEdge, oppEdge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool

	// Restricted reports whether the from/via/to turn implied by pred -> edge
	// is blocked by a complex (multi-edge) turn restriction.
	Restricted(pred graph.DirectedEdge, edge graph.DirectedEdge, hasPred bool) bool

	// EdgeCost returns the cost of traversing edge in its entirety.
	EdgeCost(edge graph.DirectedEdge) Cost

	// TransitionCost returns the cost of moving from pred onto edge at node,
	// covering turn cost, intersection delay and density penalties.
	TransitionCost(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost

	// TransitionCostReverse mirrors TransitionCost for the reverse expander.
	TransitionCostReverse(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost
}

// TransitCosting extends Costing with the schedule-aware operations the
// multimodal expander needs once it steps onto a transit line.
type TransitCosting interface {
	Costing

	Wheelchair() bool
	Bicycle() bool

	// IsExcluded reports whether operatorId has been barred from the search,
	// e.g. because a first pass over a tile found none of its departures
	// satisfy the wheelchair/bicycle constraint this costing is configured
	// with. AddToExcludeList records that verdict so later lookups against
	// the same operator short-circuit instead of re-querying the schedule.
	IsExcluded(operatorId uint32) bool
	AddToExcludeList(operatorId uint32)

	AllowTransitConnections() bool
	SetAllowTransitConnections(allow bool)

	// UseMaxMultiModalDistance caps how far a multimodal route may walk
	// before it must make use of transit.
	UseMaxMultiModalDistance() float32

	// TransitEdgeCost costs one ride along a transit line, from boarding at
	// departure through to arrival.
	TransitEdgeCost(edge graph.DirectedEdge, departure graph.TransitDeparture, currentTime uint32) Cost

	// DefaultTransferCost is charged when transferring with no known wait.
	DefaultTransferCost() Cost
	// TransferCost is a fixed penalty for a transfer once the wait itself is
	// already accounted for elsewhere (TransitEdgeCost costs the actual wait).
	TransferCost() Cost
	// OperatorChangeCost is added on top of TransferCost when an itinerary
	// switches transit operators mid-route.
	OperatorChangeCost() Cost
}
