package costing

import (
	"github.com/ttpr0/isochrone-core/graph"
)

// BicycleCosting implements Costing for cycling, at a fixed cycling speed
// with a stop penalty at every intersection not continuing the same edge.
type BicycleCosting struct {
	CyclingSpeedKph  float32
	ModeWeightFactor float32
	stopPenalty      float32
}

func NewBicycleCosting(cyclingSpeedKph float32) *BicycleCosting {
	return &BicycleCosting{CyclingSpeedKph: cyclingSpeedKph, ModeWeightFactor: 1.0, stopPenalty: 3}
}

func (self *BicycleCosting) UnitSize() float32 {
	return self.CyclingSpeedKph / 3.6
}

func (self *BicycleCosting) AccessMode() graph.AccessMode {
	return graph.AccessBicycle
}

func (self *BicycleCosting) GetModeWeight() float32 {
	return self.ModeWeightFactor
}

func (self *BicycleCosting) Allowed(edge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool {
	if edge.IsShortcut {
		return false
	}
	return edge.ForwardAccess&graph.AccessBicycle != 0
}

func (self *BicycleCosting) AllowedReverse(edge graph.DirectedEdge, oppEdge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool {
	if edge.IsShortcut {
		return false
	}
	return oppEdge.ForwardAccess&graph.AccessBicycle != 0
}

func (self *BicycleCosting) Restricted(pred graph.DirectedEdge, edge graph.DirectedEdge, hasPred bool) bool {
	return false
}

func (self *BicycleCosting) EdgeCost(edge graph.DirectedEdge) Cost {
	seconds := float32(edge.Length) / (self.CyclingSpeedKph / 3.6)
	return Cost{Seconds: seconds, WeightedCost: seconds}
}

func (self *BicycleCosting) TransitionCost(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost {
	if edge.LocalEdgeIdx == pred.LocalEdgeIdx {
		return ZeroCost
	}
	return Cost{Seconds: self.stopPenalty, WeightedCost: self.stopPenalty}
}

func (self *BicycleCosting) TransitionCostReverse(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost {
	return self.TransitionCost(edge, pred, node)
}
