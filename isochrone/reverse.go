package isochrone

import (
	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// ReverseExpander runs the symmetric expansion for a "time to reach a
// destination" query: it walks the graph backwards from the destination,
// using each edge's opposing edge to evaluate costing as if the original
// forward edge were being traversed, and labels are keyed by the opposing
// edge id so a single EdgeStatus table still works.
type ReverseExpander struct {
	*expander
}

func NewReverseExpander(reader graph.GraphReader, cost costing.Costing, mode graph.TravelMode, grid *GriddedData, maxSeconds float32) *ReverseExpander {
	return &ReverseExpander{expander: newExpander(reader, cost, mode, grid, maxSeconds)}
}

// SeedDestination seeds the expansion from destNode. edgeIds are the
// outbound edges at the snapped location; since the reverse search walks
// backwards, each is resolved to its opposing edge id and costed for the
// partial distance from the edge's begin node up to the snap fraction.
// Edges whose snapped point falls exactly at the begin node are skipped.
func (self *ReverseExpander) SeedDestination(destNode graph.GraphId, edgeIds []graph.GraphId, percentAlong []float32) {
	self.grid.SetIfLessThan(self.nodeCoord(destNode), 0)

	for i, edgeId := range edgeIds {
		edge, ok := self.reader.DirectedEdge(edgeId)
		if !ok {
			continue
		}
		if edge.IsShortcut {
			continue
		}
		frac := percentAlong[i]
		if frac <= 0 {
			continue
		}
		oppId := self.reader.GetOpposingEdgeId(edgeId)
		oppEdge, ok := self.reader.GetOpposingEdge(edgeId)
		if !ok {
			continue
		}
		if !self.costing.AllowedReverse(edge, oppEdge, graph.DirectedEdge{}, false) {
			continue
		}
		full := self.costing.EdgeCost(edge)
		partial := costing.Cost{
			Seconds:      full.Seconds * frac,
			WeightedCost: full.WeightedCost * frac,
		}
		idx, _ := self.relax(-1, oppId, edgeId, oppEdge.EndNode, partial, oppEdge.EdgeUse, uint32(float32(oppEdge.Length)*frac), true)
		self.labels[idx].Origin = true
	}
}

func (self *ReverseExpander) Compute() *GriddedData {
	for {
		idx := self.queue.Pop()
		if idx < 0 {
			break
		}
		label := self.labels[idx]
		set, liveIdx := self.status.Get(label.EdgeId)
		if set != EdgeTemporary || liveIdx != idx {
			continue
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

func (self *ReverseExpander) markSettledEdge(label EdgeLabel) {
	edge, ok := self.reader.DirectedEdge(label.OppEdgeId)
	if !ok {
		return
	}
	shape := self.edgeShape(label.OppEdgeId, edge)
	startSeconds := label.Cost.Seconds - self.costing.EdgeCost(edge).Seconds
	self.grid.MarkEdge(shape, startSeconds, label.Cost.Seconds)
}

func (self *ReverseExpander) edgeShape(edgeId graph.GraphId, edge graph.DirectedEdge) geo.CoordArray {
	info := self.edgeInfo(edgeId, edge)
	if edge.Forward {
		return geo.ReverseShape(info.Shape)
	}
	return info.Shape
}

func (self *ReverseExpander) edgeInfo(edgeId graph.GraphId, edge graph.DirectedEdge) graph.EdgeInfo {
	tile, ok := self.reader.GetGraphTile(graph.GraphId{Tile: edgeId.Tile, Level: edgeId.Level})
	if !ok {
		return graph.EdgeInfo{}
	}
	return tile.EdgeInfo(edge.EdgeInfoOffset)
}

func (self *ReverseExpander) nodeCoord(nodeId graph.GraphId) geo.Coord {
	node, ok := self.reader.Node(nodeId)
	if !ok {
		return geo.Coord{}
	}
	return node.LatLng
}

// expandFromNode walks the node the reverse-settled label ends at
// (label.EndNode: in forward terms, the node its edge of travel begins at),
// using AllowedReverse and each candidate's own opposing edge so costing
// always evaluates the forward direction of travel. New labels are keyed by
// the outbound edge, with its opposing edge as OppEdgeId, as in
// SeedDestination.
func (self *ReverseExpander) expandFromNode(predIdx int32, label EdgeLabel) {
	oppEdge, ok := self.reader.DirectedEdge(label.OppEdgeId)
	if !ok {
		return
	}
	node, ok := self.reader.Node(label.EndNode)
	if !ok {
		return
	}
	predEdge := oppEdge

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
		candidateOppId := self.reader.GetOpposingEdgeId(edgeId)
		candidateOpp, ok := self.reader.GetOpposingEdge(edgeId)
		if !ok {
			continue
		}
		if self.costing.Restricted(predEdge, candidateOpp, true) {
			continue
		}
		if !self.costing.AllowedReverse(edge, candidateOpp, predEdge, true) {
			continue
		}

		var newCost costing.Cost
		if edge.TransUp || edge.TransDown {
			newCost = label.Cost
		} else {
			transition := self.costing.TransitionCostReverse(candidateOpp, predEdge, node)
			edgeCost := self.costing.EdgeCost(candidateOpp)
			newCost = label.Cost.Add(transition).Add(edgeCost)
		}

		self.relax(predIdx, edgeId, candidateOppId, edge.EndNode, newCost, candidateOpp.EdgeUse, label.PathDistance+edge.Length, false)
	}
}
