package costing

import (
	"github.com/ttpr0/isochrone-core/attr"
	"github.com/ttpr0/isochrone-core/graph"
)

// roadSpeedKph is the fallback speed used when an edge carries no maxspeed
// tag, indexed by road class.
var roadSpeedKph = map[attr.RoadType]float32{
	attr.MOTORWAY:       100,
	attr.MOTORWAY_LINK:  60,
	attr.TRUNK:          90,
	attr.TRUNK_LINK:     50,
	attr.PRIMARY:        70,
	attr.PRIMARY_LINK:   50,
	attr.SECONDARY:      60,
	attr.SECONDARY_LINK: 40,
	attr.TERTIARY:       50,
	attr.TERTIARY_LINK:  30,
	attr.RESIDENTIAL:    30,
	attr.LIVING_STREET:  10,
	attr.UNCLASSIFIED:   40,
	attr.ROAD:           40,
	attr.TRACK:          20,
}

// DriveCosting implements Costing for motorized travel.
type DriveCosting struct {
	TopSpeed          float32 // km/h, caps any edge's effective speed
	ModeWeightFactor  float32
	turnCostSeconds   float32
	destOnlyPenalty   float32
}

func NewDriveCosting(topSpeed float32) *DriveCosting {
	return &DriveCosting{
		TopSpeed:         topSpeed,
		ModeWeightFactor: 1.0,
		turnCostSeconds:  2,
		destOnlyPenalty:  0,
	}
}

func (self *DriveCosting) UnitSize() float32 {
	return self.TopSpeed / 3.6 * 1
}

func (self *DriveCosting) AccessMode() graph.AccessMode {
	return graph.AccessAuto
}

func (self *DriveCosting) GetModeWeight() float32 {
	return self.ModeWeightFactor
}

func (self *DriveCosting) Allowed(edge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool {
	if edge.IsShortcut {
		return false
	}
	return edge.ForwardAccess&graph.AccessAuto != 0
}

func (self *DriveCosting) AllowedReverse(edge graph.DirectedEdge, oppEdge graph.DirectedEdge, pred graph.DirectedEdge, hasPred bool) bool {
	if edge.IsShortcut {
		return false
	}
	return oppEdge.ForwardAccess&graph.AccessAuto != 0
}

func (self *DriveCosting) Restricted(pred graph.DirectedEdge, edge graph.DirectedEdge, hasPred bool) bool {
	return false
}

func (self *DriveCosting) speedKph(edge graph.DirectedEdge) float32 {
	speed := float32(edge.Maxspeed)
	if speed == 0 {
		speed = roadSpeedKph[edge.RoadClass]
		if speed == 0 {
			speed = 30
		}
	}
	if speed > self.TopSpeed {
		speed = self.TopSpeed
	}
	return speed
}

func (self *DriveCosting) EdgeCost(edge graph.DirectedEdge) Cost {
	speed := self.speedKph(edge)
	seconds := float32(edge.Length) / (speed / 3.6)
	return Cost{Seconds: seconds, WeightedCost: seconds}
}

func (self *DriveCosting) TransitionCost(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost {
	c := self.turnCostSeconds
	if edge.LocalEdgeIdx == pred.LocalEdgeIdx {
		c = 0
	}
	return Cost{Seconds: c, WeightedCost: c}
}

func (self *DriveCosting) TransitionCostReverse(edge graph.DirectedEdge, pred graph.DirectedEdge, node graph.NodeInfo) Cost {
	return self.TransitionCost(edge, pred, node)
}
