package costing

import (
	"github.com/ttpr0/isochrone-core/graph"
)

// operatorChangePenalty is charged whenever a multimodal itinerary switches
// from one transit operator to another. 300 seconds mirrors the reference
// implementation's constant; it should eventually become a per-request
// option rather than a hardcoded value.
const operatorChangePenalty = 300

// transferPenaltySeconds is the fixed cost of a known transfer at a stop
// the itinerary has already been routed through once. It is a penalty
// against the weighted cost only - the actual wait is already accounted
// for by TransitEdgeCost once boarding is attempted.
const transferPenaltySeconds = 30

// maxTransferDistance bounds how far a rider may walk between stops on a
// single transfer. The reference implementation hardcodes this the same
// way; making it configurable is an open question, not a bug.
const maxTransferDistance = 99999

// TransitMMCosting implements TransitCosting, combining a walking leg
// (stop access/egress and transfers) with scheduled transit rides.
type TransitMMCosting struct {
	*PedestrianCosting

	wheelchair              bool
	bicycle                 bool
	allowTransitConnections bool
	maxMultiModalDistance   float32
	excludedOperators       map[uint32]bool
	transitSpeedKph         float32
}

func NewTransitMMCosting(walkingSpeedKph, transitSpeedKph float32, wheelchair, bicycle bool) *TransitMMCosting {
	return &TransitMMCosting{
		PedestrianCosting:       NewPedestrianCosting(walkingSpeedKph),
		wheelchair:              wheelchair,
		bicycle:                 bicycle,
		allowTransitConnections: true,
		maxMultiModalDistance:   float32(maxTransferDistance),
		excludedOperators:       make(map[uint32]bool),
		transitSpeedKph:         transitSpeedKph,
	}
}

func (self *TransitMMCosting) AccessMode() graph.AccessMode {
	return graph.AccessPedestrian | graph.AccessTransit
}

func (self *TransitMMCosting) Wheelchair() bool { return self.wheelchair }
func (self *TransitMMCosting) Bicycle() bool    { return self.bicycle }

func (self *TransitMMCosting) IsExcluded(operatorId uint32) bool {
	return self.excludedOperators[operatorId]
}
func (self *TransitMMCosting) AddToExcludeList(operatorId uint32) {
	self.excludedOperators[operatorId] = true
}

func (self *TransitMMCosting) AllowTransitConnections() bool {
	return self.allowTransitConnections
}
func (self *TransitMMCosting) SetAllowTransitConnections(allow bool) {
	self.allowTransitConnections = allow
}

func (self *TransitMMCosting) UseMaxMultiModalDistance() float32 {
	return self.maxMultiModalDistance
}

// TransitEdgeCost costs boarding at currentTime and riding to departure's
// scheduled arrival. Waiting at the stop is included in the seconds; the
// weighted cost additionally reflects the mode weight so transit rides
// compete fairly against continuing on foot.
func (self *TransitMMCosting) TransitEdgeCost(edge graph.DirectedEdge, departure graph.TransitDeparture, currentTime uint32) Cost {
	wait := int64(departure.DepartureTime) - int64(currentTime)
	if wait < 0 {
		wait += 86400
	}
	ride := int64(departure.ArrivalTime) - int64(departure.DepartureTime)
	if ride < 0 {
		ride += 86400
	}
	seconds := float32(wait + ride)
	return Cost{Seconds: seconds, WeightedCost: seconds * self.GetModeWeight()}
}

// DefaultTransferCost is the transfer cost the multimodal expander starts
// from at every settled node; processStop replaces it with TransferCost when
// the itinerary arrives on foot at a stop after already using one.
func (self *TransitMMCosting) DefaultTransferCost() Cost {
	return Cost{Seconds: 30, WeightedCost: 30}
}

// TransferCost is the fixed penalty charged for a transfer once the
// itinerary has already passed through a stop and the wait to the next
// departure is known and costed separately by TransitEdgeCost. The in-station
// re-query performed when the nominal transfer can't make a departure is
// schedule logic, not a cost, and lives in the expander instead.
func (self *TransitMMCosting) TransferCost() Cost {
	return Cost{Seconds: transferPenaltySeconds, WeightedCost: transferPenaltySeconds}
}

// OperatorChangeCost is added on top of TransferCost when the itinerary
// switches transit operators mid-route.
func (self *TransitMMCosting) OperatorChangeCost() Cost {
	return Cost{Seconds: operatorChangePenalty, WeightedCost: operatorChangePenalty}
}
