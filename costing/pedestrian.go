package costing

import (
	"github.com/ttpr0/isochrone-core/graph"
)

// PedestrianCosting implements Costing for walking, at a fixed walking
// speed; transitions between edges cost nothing.
type PedestrianCosting struct {
	WalkingSpeedKph float32
	ModeWeightFactor float32
}

func NewPedestrianCosting(walkingSpeedKph float32) *PedestrianCosting {
	return &PedestrianCosting{WalkingSpeedKph: walkingSpeedKph, ModeWeightFactor: 1.0}
}

func (self *PedestrianCosting) UnitSize() float32 {
	return self.WalkingSpeedKph / 3.6
}

func (self *PedestrianCosting) AccessMode() graph.AccessMode {
	return graph.AccessPedestrian
}

func (self *PedestrianCosting) GetModeWeight() float32 {
	return self.ModeWeightFactor
}

func (self *PedestrianCosting) Allowed(edge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool {
	if edge.IsShortcut {
		return false
	}
	return edge.ForwardAccess&graph.AccessPedestrian != 0
}

func (self *PedestrianCosting) AllowedReverse(edge graph.DirectedEdge, oppEdge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool {
	if edge.IsShortcut {
		return false
	}
	return oppEdge.ForwardAccess&graph.AccessPedestrian != 0
}

func (self *PedestrianCosting) Restricted(pred graph.DirectedEdge, edge graph.DirectedEdge, hasPred bool) bool {
	return false
}

func (self *PedestrianCosting) EdgeCost(edge graph.DirectedEdge) Cost {
	seconds := float32(edge.Length) / (self.WalkingSpeedKph / 3.6)
	return Cost{Seconds: seconds, WeightedCost: seconds}
}

func (self *PedestrianCosting) TransitionCost(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost {
	return ZeroCost
}

func (self *PedestrianCosting) TransitionCostReverse(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost {
	return ZeroCost
}
