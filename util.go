package main

import (
	"github.com/ttpr0/isochrone-core/costing"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
	"github.com/ttpr0/isochrone-core/isochrone"
)

// BuildCosting turns a configured profile into the costing.Costing the
// isochrone package actually expands with.
func BuildCosting(opts ICostingOptions) (costing.Costing, graph.TravelMode, error) {
	switch o := opts.(type) {
	case DrivingOptions:
		speed := o.TopSpeed
		if speed == 0 {
			speed = 100
		}
		return costing.NewDriveCosting(speed), graph.Drive, nil
	case WalkingOptions:
		speed := o.WalkingSpeed
		if speed == 0 {
			speed = 5
		}
		return costing.NewPedestrianCosting(speed), graph.Pedestrian, nil
	case CyclingOptions:
		speed := o.CyclingSpeed
		if speed == 0 {
			speed = 20
		}
		return costing.NewBicycleCosting(speed), graph.Bicycle, nil
	default:
		return nil, graph.Drive, errInvalidProfile
	}
}

// BuildTransitCosting is the multimodal counterpart of BuildCosting: it
// returns a single TransitCosting; the walking costing is built by the
// caller.
func BuildTransitCosting(opts TransitOptions) costing.TransitCosting {
	walkSpeed := opts.WalkingSpeed
	if walkSpeed == 0 {
		walkSpeed = 5
	}
	transitSpeed := opts.TransitSpeed
	if transitSpeed == 0 {
		transitSpeed = 40
	}
	return costing.NewTransitMMCosting(walkSpeed, transitSpeed, opts.Wheelchair, opts.Bicycle)
}

var errInvalidProfile = &profileError{"unsupported costing profile"}

type profileError struct{ msg string }

func (e *profileError) Error() string { return e.msg }

// SnapLocation finds the nearest node to pt and returns it as a
// Location seeded against every one of that node's outbound edges at
// percent-along zero. A real deployment would snap to the closest point on
// the closest edge instead of jumping straight to a node; this is the
// narrowest stand-in that exercises the same Location contract.
func SnapLocation(reader *graph.MemGraphReader, pt geo.Coord) (isochrone.Location, bool) {
	var best graph.GraphId
	bestDist := -1.0
	found := false

	reader.ForEachNode(func(id graph.GraphId, n graph.NodeInfo) {
		d := geo.Distance(pt, n.LatLng)
		if !found || d < bestDist {
			best = id
			bestDist = d
			found = true
		}
	})
	if !found {
		return isochrone.Location{}, false
	}

	node, _ := reader.Node(best)
	base := best.TileBase()
	edgeIds := make([]graph.GraphId, 0, node.EdgeCount)
	percent := make([]float32, 0, node.EdgeCount)
	for i := uint32(0); i < node.EdgeCount; i++ {
		edgeIds = append(edgeIds, graph.GraphId{Tile: base.Tile, Level: base.Level, Index: node.EdgeIndex + i})
		percent = append(percent, 0)
	}
	return isochrone.Location{
		Point:        node.LatLng,
		Node:         best,
		EdgeIds:      edgeIds,
		PercentAlong: percent,
	}, true
}
