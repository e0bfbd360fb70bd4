package isochrone

import (
	"github.com/ttpr0/isochrone-core/graph"
)

type EdgeSet byte

const (
	EdgeUnreached EdgeSet = iota
	EdgeTemporary
	EdgePermanent
)

type edgeStatusInfo struct {
	set        EdgeSet
	labelIndex int32
}

// EdgeStatus tracks, for every edge the expansion has touched, whether it is
// unreached, holds a temporary (still-relaxable) label, or has been settled
// permanently - and which label index to look the edge up by.
type EdgeStatus struct {
	status map[graph.GraphId]edgeStatusInfo
}

func NewEdgeStatus() *EdgeStatus {
	return &EdgeStatus{status: make(map[graph.GraphId]edgeStatusInfo)}
}

func (self *EdgeStatus) Get(edgeId graph.GraphId) (EdgeSet, int32) {
	info, ok := self.status[edgeId]
	if !ok {
		return EdgeUnreached, 0
	}
	return info.set, info.labelIndex
}

func (self *EdgeStatus) Set(edgeId graph.GraphId, set EdgeSet, labelIndex int32) {
	self.status[edgeId] = edgeStatusInfo{set: set, labelIndex: labelIndex}
}

func (self *EdgeStatus) Update(edgeId graph.GraphId, set EdgeSet) {
	info := self.status[edgeId]
	info.set = set
	self.status[edgeId] = info
}

func (self *EdgeStatus) Clear() {
	self.status = make(map[graph.GraphId]edgeStatusInfo)
}
