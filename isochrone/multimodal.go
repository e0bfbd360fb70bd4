package isochrone

import (
	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// operatorRegistry maps a tile's operator name offset to a small integer id
// so EdgeLabel can carry the operator as a uint32 instead of a string. Id 0
// always means "unknown operator"; ids are handed out lazily the first time
// an operator is seen.
type operatorRegistry struct {
	ids  map[uint32]uint32
	next uint32
}

func newOperatorRegistry() *operatorRegistry {
	return &operatorRegistry{ids: make(map[uint32]uint32), next: 1}
}

func (self *operatorRegistry) idFor(nameOffset uint32) uint32 {
	if nameOffset == 0 {
		return 0
	}
	if id, ok := self.ids[nameOffset]; ok {
		return id
	}
	id := self.next
	self.next++
	self.ids[nameOffset] = id
	return id
}

// MultiModalExpander runs the time-bounded expansion that mixes walking
// with scheduled transit. It keeps enough extra state per-label (trip,
// block, prior stop, operator) to decide free continuations versus
// transfer costs, without ever needing the label's full predecessor chain.
type MultiModalExpander struct {
	*expander

	transit   costing.TransitCosting
	walk      costing.Costing
	operators *operatorRegistry

	startTime uint32 // seconds from midnight the itinerary departs at

	processedTiles map[graph.GraphId]bool

	dateCreated    uint32
	dateComputed   bool
	day, dow       uint32
	dateBeforeTile bool
}

func NewMultiModalExpander(reader graph.GraphReader, walk costing.Costing, transit costing.TransitCosting, grid *GriddedData, maxSeconds float32) *MultiModalExpander {
	return &MultiModalExpander{
		expander:       newExpander(reader, walk, graph.Transit, grid, maxSeconds),
		transit:        transit,
		walk:           walk,
		operators:      newOperatorRegistry(),
		processedTiles: make(map[graph.GraphId]bool),
	}
}

// SetStartTime sets the seconds-from-midnight the itinerary departs at, used
// to turn a label's elapsed seconds into a clock time for schedule lookups.
func (self *MultiModalExpander) SetStartTime(seconds uint32) {
	self.startTime = seconds
}

// SeedOrigin mirrors ForwardExpander.SeedOrigin for the walking legs that
// begin a multimodal trip. There is no transit state to carry yet.
func (self *MultiModalExpander) SeedOrigin(originNode graph.GraphId, edgeIds []graph.GraphId, percentAlong []float32) {
	self.grid.SetIfLessThan(self.nodeCoord(originNode), 0)

	for i, edgeId := range edgeIds {
		edge, ok := self.reader.DirectedEdge(edgeId)
		if !ok || edge.IsShortcut {
			continue
		}
		frac := percentAlong[i]
		if frac >= 1 {
			continue
		}
		if !self.walk.Allowed(edge, graph.DirectedEdge{}, false) {
			continue
		}
		full := self.walk.EdgeCost(edge)
		partial := costing.Cost{
			Seconds:      full.Seconds * (1 - frac),
			WeightedCost: full.WeightedCost * (1 - frac),
		}
		oppId := self.reader.GetOpposingEdgeId(edgeId)
		idx, _ := self.relax(-1, edgeId, oppId, edge.EndNode, partial, edge.EdgeUse, uint32(float32(edge.Length)*(1-frac)), true)
		self.labels[idx].Origin = true
	}
}

func (self *MultiModalExpander) nodeCoord(nodeId graph.GraphId) geo.Coord {
	node, ok := self.reader.Node(nodeId)
	if !ok {
		return geo.Coord{}
	}
	return node.LatLng
}

func (self *MultiModalExpander) Compute() *GriddedData {
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
			continue // other branches may still be within horizon
		}

		node, ok := self.reader.Node(label.EndNode)
		if !ok {
			continue
		}

		localtime := self.startTime + uint32(label.Cost.Seconds)
		transferCost := self.transit.DefaultTransferCost()

		if node.Type == graph.NodeMultiUseTransitStop {
			var skip bool
			label, localtime, transferCost, skip = self.processStop(label, node, localtime, transferCost)
			if skip {
				continue
			}
		}

		self.expandFromNode(idx, label, localtime, transferCost)
	}
	return self.grid
}

// processStop implements the per-node behavior the expander performs the
// moment it settles a label ending at a multi-use transit stop: register the
// stop's tile against the exclusion list once, bail out of this node if the
// stop turns out to be entirely excluded, switch to the known-wait transfer
// cost when arriving on foot from a stop already used, and remember this
// node as the itinerary's prior stop.
func (self *MultiModalExpander) processStop(label EdgeLabel, node graph.NodeInfo, localtime uint32, transferCost costing.Cost) (EdgeLabel, uint32, costing.Cost, bool) {
	tileBase := label.EndNode.TileBase()
	tile, ok := self.reader.GetGraphTile(tileBase)
	if !ok {
		return label, localtime, transferCost, false
	}
	self.ensureDate(tile)

	self.registerTileOnce(tile, tileBase, label.EndNode, node)
	if self.stopExcluded(tile, label.EndNode, node) {
		return label, localtime, transferCost, true
	}

	predEdge, _ := self.reader.DirectedEdge(label.EdgeId)
	pedestrian := predEdge.EdgeUse != graph.UseTransitLine

	if pedestrian && label.PriorStopNode.Valid() && label.HasTransit {
		transferCost = self.transit.TransferCost()
	}
	if pedestrian {
		localtime += uint32(transferCost.Seconds)
	}

	label.PriorStopNode = label.EndNode
	return label, localtime, transferCost, false
}

// transitLineEdges collects the transit-line edges leaving node, the only
// ones registerTileOnce/stopExcluded need to reason about.
func (self *MultiModalExpander) transitLineEdges(nodeId graph.GraphId, node graph.NodeInfo) []graph.DirectedEdge {
	base := nodeId.TileBase()
	var edges []graph.DirectedEdge
	for i := uint32(0); i < node.EdgeCount; i++ {
		edgeId := graph.GraphId{Tile: base.Tile, Level: base.Level, Index: node.EdgeIndex + i}
		edge, ok := self.reader.DirectedEdge(edgeId)
		if !ok || edge.EdgeUse != graph.UseTransitLine {
			continue
		}
		edges = append(edges, edge)
	}
	return edges
}

// registerTileOnce scans a stop's transit lines the first time any node in
// its tile is reached, and bars any operator whose line never has a
// departure satisfying the wheelchair/bicycle constraint this search is
// running under.
func (self *MultiModalExpander) registerTileOnce(tile graph.Tile, tileBase, nodeId graph.GraphId, node graph.NodeInfo) {
	if self.processedTiles[tileBase] {
		return
	}
	self.processedTiles[tileBase] = true

	if !self.transit.Wheelchair() && !self.transit.Bicycle() {
		return
	}
	for _, edge := range self.transitLineEdges(nodeId, node) {
		any, ok := tile.GetNextDeparture(edge.LineId, 0, self.day, self.dow, self.dateBeforeTile, false, false)
		if !ok {
			continue
		}
		if _, ok := tile.GetNextDeparture(edge.LineId, 0, self.day, self.dow, self.dateBeforeTile, self.transit.Wheelchair(), self.transit.Bicycle()); ok {
			continue
		}
		route, ok := tile.GetTransitRoute(any.RouteId)
		if !ok {
			continue
		}
		self.transit.AddToExcludeList(self.operators.idFor(route.OperatorNameOffset))
	}
}

// stopExcluded reports whether every transit line leaving the stop belongs
// to an excluded operator, meaning nothing usable can be boarded here.
func (self *MultiModalExpander) stopExcluded(tile graph.Tile, nodeId graph.GraphId, node graph.NodeInfo) bool {
	lines := self.transitLineEdges(nodeId, node)
	if len(lines) == 0 {
		return false
	}
	for _, edge := range lines {
		departure, ok := tile.GetNextDeparture(edge.LineId, 0, self.day, self.dow, self.dateBeforeTile, false, false)
		if !ok {
			continue
		}
		route, ok := tile.GetTransitRoute(departure.RouteId)
		if !ok {
			continue
		}
		if !self.transit.IsExcluded(self.operators.idFor(route.OperatorNameOffset)) {
			return false
		}
	}
	return true
}

func (self *MultiModalExpander) markSettledEdge(label EdgeLabel) {
	if set, _ := self.status.Get(label.OppEdgeId); set == EdgePermanent {
		return // the opposing edge already marked these cells
	}
	edge, ok := self.reader.DirectedEdge(label.EdgeId)
	if !ok || edge.IsTransitLine() {
		return // a ride does not reach the cells between its stops
	}
	tile, ok := self.reader.GetGraphTile(graph.GraphId{Tile: label.EdgeId.Tile, Level: label.EdgeId.Level})
	if !ok {
		return
	}
	info := tile.EdgeInfo(edge.EdgeInfoOffset)
	shape := info.Shape
	if !edge.Forward {
		shape = geo.ReverseShape(shape)
	}
	startSeconds := label.Cost.Seconds - self.lastLegSeconds(edge)
	self.grid.MarkEdge(shape, startSeconds, label.Cost.Seconds)
}

func (self *MultiModalExpander) lastLegSeconds(edge graph.DirectedEdge) float32 {
	if edge.EdgeUse == graph.UseTransitLine {
		return 0 // the ride's seconds were already booked as wait+ride at relax time
	}
	return self.walk.EdgeCost(edge).Seconds
}

// expandFromNode is the multimodal core: it walks every outbound edge of
// the node the settled label ends at, branching on whether the candidate
// edge is an ordinary street, a transit connection (street <-> station) or
// a transit line (a scheduled ride).
func (self *MultiModalExpander) expandFromNode(predIdx int32, label EdgeLabel, localtime uint32, transferCost costing.Cost) {
	node, ok := self.reader.Node(label.EndNode)
	if !ok {
		return
	}
	predEdge, _ := self.reader.DirectedEdge(label.EdgeId)

	base := label.EndNode.TileBase()
	for i := uint32(0); i < node.EdgeCount; i++ {
		edgeId := graph.GraphId{Tile: base.Tile, Level: base.Level, Index: node.EdgeIndex + i}
		edge, ok := self.reader.DirectedEdge(edgeId)
		if !ok || edge.IsShortcut {
			continue
		}

		// Never bounce straight back through a station via two consecutive
		// transit-connection edges, and never re-enter the station just left.
		if edge.EdgeUse == graph.UseTransitConnection && predEdge.EdgeUse == graph.UseTransitConnection {
			continue
		}
		if edge.EdgeUse == graph.UseTransitConnection && edge.EndNode == label.PriorStopNode {
			continue
		}

		switch edge.EdgeUse {
		case graph.UseTransitLine:
			self.expandTransitLine(predIdx, label, edgeId, edge, node, localtime, transferCost)
		case graph.UseTransitConnection:
			if !self.transit.AllowTransitConnections() {
				continue
			}
			self.expandWalk(predIdx, label, edgeId, edge, predEdge, node)
		default:
			self.expandWalk(predIdx, label, edgeId, edge, predEdge, node)
		}
	}
}

func (self *MultiModalExpander) expandWalk(predIdx int32, label EdgeLabel, edgeId graph.GraphId, edge, predEdge graph.DirectedEdge, node graph.NodeInfo) {
	if !self.walk.Allowed(edge, predEdge, true) {
		return
	}

	// Disembarking resets walking distance: a transfer's distance budget
	// only tracks the walk since leaving the last vehicle.
	walkingDistance := label.PathDistance
	if predEdge.EdgeUse == graph.UseTransitLine {
		walkingDistance = 0
	}
	walkingDistance += edge.Length

	// The cumulative-distance cap only applies to the street<->platform
	// connection edges, and only once the itinerary has passed a transit stop.
	if edge.EdgeUse == graph.UseTransitConnection && label.PriorStopNode.Valid() &&
		float32(walkingDistance) > self.transit.UseMaxMultiModalDistance() {
		return
	}

	transition := self.walk.TransitionCost(edge, predEdge, node)
	edgeCost := self.walk.EdgeCost(edge)
	edgeCost.WeightedCost *= self.walk.GetModeWeight()
	newCost := label.Cost.Add(transition).Add(edgeCost)

	oppId := self.reader.GetOpposingEdgeId(edgeId)
	idx, created := self.relax(predIdx, edgeId, oppId, edge.EndNode, newCost, edge.EdgeUse, walkingDistance, false)
	if created {
		l := self.labels[idx]
		l.HasTransit = label.HasTransit
		l.TripId = 0
		l.BlockId = 0
		l.TransitOperator = label.TransitOperator
		l.PriorStopNode = label.PriorStopNode
		self.labels[idx] = l
	}
}

// expandTransitLine looks up the next usable departure on edge's line at or
// after localtime, applying free continuation on the same trip/block, a
// transfer cost otherwise, and an additional operator-change penalty when
// the operator differs from the one the label already used. The transfer
// and operator-change penalties land on the weighted cost only: the actual
// wait is already fully accounted for by TransitEdgeCost against localtime.
func (self *MultiModalExpander) expandTransitLine(predIdx int32, label EdgeLabel, edgeId graph.GraphId, edge graph.DirectedEdge, node graph.NodeInfo, localtime uint32, transferCost costing.Cost) {
	tile, ok := self.reader.GetGraphTile(graph.GraphId{Tile: edgeId.Tile, Level: edgeId.Level})
	if !ok {
		return
	}
	self.ensureDate(tile)

	departure, ok := tile.GetNextDeparture(edge.LineId, localtime, self.day, self.dow, self.dateBeforeTile, self.transit.Wheelchair(), self.transit.Bicycle())
	if !ok {
		return
	}

	route, ok := tile.GetTransitRoute(departure.RouteId)
	if !ok {
		return
	}
	operatorId := self.operators.idFor(route.OperatorNameOffset)
	if self.transit.IsExcluded(operatorId) {
		return
	}

	predEdge, _ := self.reader.DirectedEdge(label.EdgeId)
	sameTripOrBlock := label.HasTransit && (departure.TripId == label.TripId || (departure.BlockId != 0 && departure.BlockId == label.BlockId))

	newCost := label.Cost
	if !sameTripOrBlock {
		// An in-station transfer straight from one ride to the next: if the
		// nominal +30s can't make this departure, re-query the schedule
		// 30s later rather than silently rounding the transfer away.
		if predEdge.EdgeUse == graph.UseTransitLine && localtime+30 > departure.DepartureTime {
			departure, ok = tile.GetNextDeparture(edge.LineId, localtime+30, self.day, self.dow, self.dateBeforeTile, self.transit.Wheelchair(), self.transit.Bicycle())
			if !ok {
				return
			}
			route, ok = tile.GetTransitRoute(departure.RouteId)
			if !ok {
				return
			}
			operatorId = self.operators.idFor(route.OperatorNameOffset)
			if self.transit.IsExcluded(operatorId) {
				return
			}
		}

		newCost.WeightedCost += transferCost.WeightedCost
		if label.TransitOperator != 0 && label.TransitOperator != operatorId {
			newCost.WeightedCost += self.transit.OperatorChangeCost().WeightedCost
		}
	}

	ride := self.transit.TransitEdgeCost(edge, departure, localtime)
	newCost = newCost.Add(ride)

	oppId := self.reader.GetOpposingEdgeId(edgeId)
	idx, created := self.relax(predIdx, edgeId, oppId, edge.EndNode, newCost, edge.EdgeUse, label.PathDistance, false)
	if created {
		l := self.labels[idx]
		l.HasTransit = true
		l.TripId = departure.TripId
		l.BlockId = departure.BlockId
		l.TransitOperator = operatorId
		l.PriorStopNode = label.PriorStopNode
		self.labels[idx] = l
	}
}

// ensureDate computes the day/day-of-week/date_before_tile triple the first
// time the expansion touches a transit stop, from the tile's creation date
// rather than re-deriving it on every departure lookup.
func (self *MultiModalExpander) ensureDate(tile graph.Tile) {
	if self.dateComputed {
		return
	}
	header := tile.Header()
	self.dateCreated = header.DateCreated
	self.day = 0
	self.dow = header.DateCreated % 7
	self.dateBeforeTile = false
	self.dateComputed = true
}
