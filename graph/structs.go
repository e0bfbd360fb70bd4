package graph

import (
	"github.com/ttpr0/isochrone-core/attr"
	"github.com/ttpr0/isochrone-core/geo"
)

// NodeInfo is the per-node record a tile stores: location, the offset of
// its first outbound edge, how many it has, and the handful of flags the
// expanders branch on.
type NodeInfo struct {
	LatLng    geo.Coord
	EdgeIndex uint32
	EdgeCount uint32
	Type      NodeType
	Timezone  uint16
}

// DirectedEdge is one direction of travel along a street segment (or a
// transit line / transit connection). EndNode, the opposing edge id and the
// edge's shape are resolved through the tile that owns it.
type DirectedEdge struct {
	EndNode        GraphId
	EdgeInfoOffset uint32
	Length         uint32 // meters
	IsShortcut     bool
	TransUp        bool
	TransDown      bool
	LeavesTile     bool
	Forward        bool // shape stored in the direction of travel
	ReverseAccess  AccessMode
	ForwardAccess  AccessMode
	LocalEdgeIdx   byte
	EdgeUse        Use
	LineId         uint32 // valid when EdgeUse == UseTransitLine
	RoadClass      attr.RoadType
	Maxspeed       byte // km/h, 0 if unknown
	Density        byte // 0-15 relative road density, used by a few costing models
}

func (self *DirectedEdge) IsTransitLine() bool {
	return self.EdgeUse == UseTransitLine
}

// EdgeInfo holds the (potentially large, tile-shared) geometry and naming
// data referenced by edgeinfo_offset.
type EdgeInfo struct {
	Shape geo.CoordArray
	Name  string
}

// TransitRoute names the operator that runs a transit line.
type TransitRoute struct {
	OperatorNameOffset uint32
}

// TransitDeparture is one scheduled departure of a transit line.
type TransitDeparture struct {
	TripId        uint32
	BlockId       uint32
	RouteId       uint32
	DepartureTime uint32 // seconds from midnight
	ArrivalTime   uint32 // seconds from midnight, at the edge's end node
	Wheelchair    bool
	Bicycle       bool
}

// TileHeader carries the tile-level metadata the multimodal expander needs
// to reconcile a query date against the schedules baked into the tile.
type TileHeader struct {
	DateCreated uint32 // days since the schedule pivot date
}
