package isochrone

import (
	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/graph"
)

// expander holds the state shared by every direction of expansion: the
// label list, the edge status table, the bucket queue ordering unsettled
// labels, the grid being filled in, and the graph/costing collaborators.
// It has no Compute method of its own - forwardExpander, reverseExpander
// and multiModalExpander each drive it differently.
type expander struct {
	reader  graph.GraphReader
	costing costing.Costing
	mode    graph.TravelMode

	labels []EdgeLabel
	status *EdgeStatus
	queue  *DoubleBucketQueue

	grid           *GriddedData
	maxSeconds     float32
	shapeInterval  float32
}

func newExpander(reader graph.GraphReader, cost costing.Costing, mode graph.TravelMode, grid *GriddedData, maxSeconds float32) *expander {
	e := &expander{
		reader:        reader,
		costing:       cost,
		mode:          mode,
		status:        NewEdgeStatus(),
		grid:          grid,
		maxSeconds:    maxSeconds,
		shapeInterval: ShapeInterval(mode),
	}
	unitSize := cost.UnitSize()
	if unitSize <= 0 {
		unitSize = 1
	}
	e.queue = NewDoubleBucketQueue(0, unitSize, func(idx int32) float32 {
		return e.labels[idx].SortCost
	})
	return e
}

// relax inserts or improves the label for edgeId. It returns the label's
// index and whether it was newly created (false means either improved or
// rejected as not-cheaper).
func (self *expander) relax(predIdx int32, edgeId, oppEdgeId, endNode graph.GraphId, newCost costing.Cost, use graph.Use, pathDistance uint32, origin bool) (int32, bool) {
	set, labelIdx := self.status.Get(edgeId)
	if set == EdgePermanent {
		return labelIdx, false
	}
	if set == EdgeTemporary {
		existing := self.labels[labelIdx]
		delta := existing.Cost.WeightedCost - newCost.WeightedCost
		if delta <= 0 {
			return labelIdx, false
		}
		existing.Cost = newCost
		existing.SortCost = newCost.WeightedCost
		existing.PredEdgeLabel = predIdx
		existing.PathDistance = pathDistance
		self.labels[labelIdx] = existing
		self.queue.Decrease(labelIdx)
		return labelIdx, false
	}

	label := MakeEdgeLabel(predIdx, edgeId, oppEdgeId, endNode, newCost, self.mode, pathDistance, use)
	label.Origin = origin
	idx := int32(len(self.labels))
	self.labels = append(self.labels, label)
	self.status.Set(edgeId, EdgeTemporary, idx)
	self.queue.Add(idx)
	return idx, true
}

func (self *expander) settle(labelIdx int32) {
	self.status.Update(self.labels[labelIdx].EdgeId, EdgePermanent)
}

// exceedsHorizon reports whether seconds is already past the time bound
// the caller is expanding to, the common cutoff check every expander makes
// right after popping a label.
func (self *expander) exceedsHorizon(seconds float32) bool {
	return seconds > self.maxSeconds
}
