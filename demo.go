package main

import (
	"github.com/ttpr0/isochrone-core/attr"
	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// LoadDemoGraph stands in for the real tile-loading collaborator: it builds
// a small single-tile grid-shaped street network directly in memory so the
// server has something to answer isochrone requests against without a
// packed tile store on disk. tileDir is accepted for interface symmetry
// with a real deployment and is otherwise unused here.
//
// A real tile packs every node's outbound edges as one contiguous run in
// the tile's edge array (NodeInfo.EdgeIndex, EdgeCount); this builder
// reproduces that layout by collecting edges per node before flattening
// them, rather than writing them in discovery order.
func LoadDemoGraph(tileDir string) *graph.MemGraphReader {
	const (
		tile  = 0
		level = 0
		size  = 6 // size x size node grid
		step  = 0.01
	)

	nodeId := func(row, col int) uint32 { return uint32(row*size + col) }

	t := graph.NewMemTile()
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			t.Nodes[nodeId(row, col)] = graph.NodeInfo{
				LatLng: geo.Coord{float64(col) * step, float64(row) * step},
				Type:   graph.NodeStreet,
			}
		}
	}

	type entry struct {
		node, target uint32
		offset       uint32
		forward      bool
	}
	var entries []entry
	type pair struct{ fwd, bwd int }
	var pairs []pair
	perNode := make(map[uint32][]int)
	var nextOffset uint32

	addPair := func(a, b uint32) {
		aInfo, bInfo := t.Nodes[a], t.Nodes[b]
		shape := geo.CoordArray{aInfo.LatLng, bInfo.LatLng}
		offset := nextOffset
		nextOffset++
		t.EdgeInfos[offset] = graph.EdgeInfo{Shape: shape}

		fwdIdx := len(entries)
		entries = append(entries, entry{node: a, target: b, offset: offset, forward: true})
		bwdIdx := len(entries)
		entries = append(entries, entry{node: b, target: a, offset: offset, forward: false})
		pairs = append(pairs, pair{fwd: fwdIdx, bwd: bwdIdx})

		perNode[a] = append(perNode[a], fwdIdx)
		perNode[b] = append(perNode[b], bwdIdx)
	}

	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			id := nodeId(row, col)
			if col+1 < size {
				addPair(id, nodeId(row, col+1))
			}
			if row+1 < size {
				addPair(id, nodeId(row+1, col))
			}
		}
	}

	var finalOrder []int
	finalPos := make(map[int]uint32, len(entries))
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			node := nodeId(row, col)
			info := t.Nodes[node]
			info.EdgeIndex = uint32(len(finalOrder))
			info.EdgeCount = uint32(len(perNode[node]))
			t.Nodes[node] = info
			for _, entryIdx := range perNode[node] {
				finalPos[entryIdx] = uint32(len(finalOrder))
				finalOrder = append(finalOrder, entryIdx)
			}
		}
	}

	for _, entryIdx := range finalOrder {
		e := entries[entryIdx]
		edgeId := finalPos[entryIdx]
		fromInfo := t.Nodes[e.node]
		_ = fromInfo
		toInfo := t.Nodes[e.target]
		t.Edges[edgeId] = graph.DirectedEdge{
			EndNode:        graph.GraphId{Tile: tile, Level: level, Index: e.target},
			EdgeInfoOffset: e.offset,
			Length:         approxLengthMeters(t.Nodes[e.node].LatLng, toInfo.LatLng),
			Forward:        e.forward,
			ForwardAccess:  graph.AccessAuto | graph.AccessPedestrian | graph.AccessBicycle,
			ReverseAccess:  graph.AccessAuto | graph.AccessPedestrian | graph.AccessBicycle,
			RoadClass:      attr.RESIDENTIAL,
			Maxspeed:       30,
		}
	}
	for _, p := range pairs {
		fwdPos := finalPos[p.fwd]
		bwdPos := finalPos[p.bwd]
		t.OpposingEdges[fwdPos] = graph.GraphId{Tile: tile, Level: level, Index: bwdPos}
		t.OpposingEdges[bwdPos] = graph.GraphId{Tile: tile, Level: level, Index: fwdPos}
	}

	reader := graph.NewMemGraphReader()
	reader.AddTile(tile, level, t)
	return reader
}

func approxLengthMeters(a, b geo.Coord) uint32 {
	d := geo.Distance(a, b) // degrees, small enough here to scale linearly
	return uint32(d * 111320)
}
