package isochrone

import (
	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// ForwardExpander runs a time-bounded label-setting Dijkstra expansion from
// one or more origin locations, filling in a GriddedData as it settles
// edges. It never reconstructs a path: once an edge is permanently settled
// its shape is stamped into the grid and the label is otherwise done.
type ForwardExpander struct {
	*expander
}

func NewForwardExpander(reader graph.GraphReader, cost costing.Costing, mode graph.TravelMode, grid *GriddedData, maxSeconds float32) *ForwardExpander {
	return &ForwardExpander{expander: newExpander(reader, cost, mode, grid, maxSeconds)}
}

// SeedOrigin seeds the expansion from originNode, crediting every allowed
// outbound edge with its partial cost from the location's snap fraction to
// the end of the edge. Edges whose snapped point falls exactly at the end
// node are skipped, since there is nothing left to traverse along them.
func (self *ForwardExpander) SeedOrigin(originNode graph.GraphId, edgeIds []graph.GraphId, percentAlong []float32) {
	self.grid.SetIfLessThan(self.nodeCoord(originNode), 0)

	node, ok := self.reader.Node(originNode)
	if !ok {
		return
	}
	for i, edgeId := range edgeIds {
		edge, ok := self.reader.DirectedEdge(edgeId)
		if !ok {
			continue
		}
		if edge.IsShortcut {
			continue
		}
		frac := percentAlong[i]
		if frac >= 1 {
			continue
		}
		if !self.costing.Allowed(edge, graph.DirectedEdge{}, false) {
			continue
		}
		full := self.costing.EdgeCost(edge)
		partial := costing.Cost{
			Seconds:      full.Seconds * (1 - frac),
			WeightedCost: full.WeightedCost * (1 - frac),
		}
		oppId := self.reader.GetOpposingEdgeId(edgeId)
		idx, _ := self.relax(-1, edgeId, oppId, edge.EndNode, partial, edge.EdgeUse, uint32(float32(edge.Length)*(1-frac)), true)
		self.labels[idx].Origin = true
		_ = node
	}
}

// Compute drains the queue, settling labels until the queue empties or the
// horizon is exceeded, marking the grid as it goes.
func (self *ForwardExpander) Compute() *GriddedData {
	for {
		idx := self.queue.Pop()
		if idx < 0 {
			break
		}
		label := self.labels[idx]
		set, liveIdx := self.status.Get(label.EdgeId)
		if set != EdgeTemporary || liveIdx != idx {
			continue // stale entry, superseded by a cheaper relax
		}
		self.settle(idx)
		self.markSettledEdge(label)

		if self.exceedsHorizon(label.Cost.Seconds) {
			break // one settlement past the horizon still rasterizes; then the search stops
		}

		self.expandFromNode(idx, label)
	}
	return self.grid
}

func (self *ForwardExpander) markSettledEdge(label EdgeLabel) {
	if set, _ := self.status.Get(label.OppEdgeId); set == EdgePermanent {
		return // the opposing edge already marked these cells
	}
	edge, ok := self.reader.DirectedEdge(label.EdgeId)
	if !ok {
		return
	}
	shape := self.edgeShape(label.EdgeId, edge)
	startSeconds := label.Cost.Seconds - self.edgeSeconds(edge)
	self.grid.MarkEdge(shape, startSeconds, label.Cost.Seconds)
}

func (self *ForwardExpander) edgeSeconds(edge graph.DirectedEdge) float32 {
	return self.costing.EdgeCost(edge).Seconds
}

func (self *ForwardExpander) edgeShape(edgeId graph.GraphId, edge graph.DirectedEdge) geo.CoordArray {
	info := self.edgeInfo(edgeId, edge)
	if !edge.Forward {
		return geo.ReverseShape(info.Shape)
	}
	return info.Shape
}

func (self *ForwardExpander) edgeInfo(edgeId graph.GraphId, edge graph.DirectedEdge) graph.EdgeInfo {
	tile, ok := self.reader.GetGraphTile(graph.GraphId{Tile: edgeId.Tile, Level: edgeId.Level})
	if !ok {
		return graph.EdgeInfo{}
	}
	return tile.EdgeInfo(edge.EdgeInfoOffset)
}

func (self *ForwardExpander) nodeCoord(nodeId graph.GraphId) geo.Coord {
	node, ok := self.reader.Node(nodeId)
	if !ok {
		return geo.Coord{}
	}
	return node.LatLng
}

// expandFromNode walks every outbound edge of the node the settled label
// ends at, relaxing each one that costing allows. Shortcuts are always
// skipped (they bypass intermediate nodes the grid needs to see); trans_up
// and trans_down transition edges cost nothing and simply move the search
// to the edge's representation on a different hierarchy level.
func (self *ForwardExpander) expandFromNode(predIdx int32, label EdgeLabel) {
	node, ok := self.reader.Node(label.EndNode)
	if !ok {
		return
	}
	predEdge, _ := self.reader.DirectedEdge(label.EdgeId)

	base := label.EndNode.TileBase()
	for i := uint32(0); i < node.EdgeCount; i++ {
		edgeId := graph.GraphId{Tile: base.Tile, Level: base.Level, Index: node.EdgeIndex + i}
		edge, ok := self.reader.DirectedEdge(edgeId)
		if !ok {
			continue
		}
		if edge.IsShortcut {
			continue
		}
		if self.costing.Restricted(predEdge, edge, true) {
			continue
		}
		if !self.costing.Allowed(edge, predEdge, true) {
			continue
		}

		var newCost costing.Cost
		if edge.TransUp || edge.TransDown {
			newCost = label.Cost
		} else {
			transition := self.costing.TransitionCost(edge, predEdge, node)
			edgeCost := self.costing.EdgeCost(edge)
			newCost = label.Cost.Add(transition).Add(edgeCost)
		}

		oppId := self.reader.GetOpposingEdgeId(edgeId)
		self.relax(predIdx, edgeId, oppId, edge.EndNode, newCost, edge.EdgeUse, label.PathDistance+edge.Length, false)
	}
}
