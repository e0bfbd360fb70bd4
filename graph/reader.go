package graph

// GraphReader is the sole gateway the isochrone core uses to reach graph
// data. Every tile fetch, cache eviction policy and on-disk format lives
// behind this interface; the expanders never see a tile file.
type GraphReader interface {
	GetGraphTile(id GraphId) (Tile, bool)

	// GetOpposingEdgeId resolves the opposing directed edge of any edge,
	// fetching the end-node's tile if it differs from the edge's own tile.
	GetOpposingEdgeId(id GraphId) GraphId
	GetOpposingEdge(id GraphId) (DirectedEdge, bool)

	Node(id GraphId) (NodeInfo, bool)
	DirectedEdge(id GraphId) (DirectedEdge, bool)
}

// MemGraphReader is a plain in-memory GraphReader over a fixed set of tiles,
// addressed by (tile, level). It is the reference implementation exercised
// by the package's tests and by the demo server; a production deployment
// would instead back GraphReader with a packed-tile cache.
type MemGraphReader struct {
	tiles map[tileKey]*MemTile
}

type tileKey struct {
	Tile  uint32
	Level uint8
}

func NewMemGraphReader() *MemGraphReader {
	return &MemGraphReader{tiles: make(map[tileKey]*MemTile)}
}

// AddTile registers (or replaces) the tile at (tile, level).
func (self *MemGraphReader) AddTile(tile uint32, level uint8, t *MemTile) {
	self.tiles[tileKey{Tile: tile, Level: level}] = t
}

func (self *MemGraphReader) GetGraphTile(id GraphId) (Tile, bool) {
	t, ok := self.tiles[tileKey{Tile: id.Tile, Level: id.Level}]
	return t, ok
}

func (self *MemGraphReader) Node(id GraphId) (NodeInfo, bool) {
	t, ok := self.tiles[tileKey{Tile: id.Tile, Level: id.Level}]
	if !ok {
		return NodeInfo{}, false
	}
	return t.Node(id)
}

func (self *MemGraphReader) DirectedEdge(id GraphId) (DirectedEdge, bool) {
	t, ok := self.tiles[tileKey{Tile: id.Tile, Level: id.Level}]
	if !ok {
		return DirectedEdge{}, false
	}
	return t.DirectedEdge(id)
}

func (self *MemGraphReader) GetOpposingEdgeId(id GraphId) GraphId {
	t, ok := self.tiles[tileKey{Tile: id.Tile, Level: id.Level}]
	if !ok {
		return InvalidGraphId
	}
	return t.GetOpposingEdgeId(id.Index)
}

func (self *MemGraphReader) GetOpposingEdge(id GraphId) (DirectedEdge, bool) {
	opp := self.GetOpposingEdgeId(id)
	if !opp.Valid() {
		return DirectedEdge{}, false
	}
	return self.DirectedEdge(opp)
}

// ForEachNode visits every node across every registered tile. It exists for
// small in-process deployments (and tests) that need to snap a raw
// lng/lat to the graph without a real spatial index; production location
// search is expected to come from a proper collaborator instead.
func (self *MemGraphReader) ForEachNode(fn func(GraphId, NodeInfo)) {
	for key, tile := range self.tiles {
		for idx, n := range tile.Nodes {
			fn(GraphId{Tile: key.Tile, Level: key.Level, Index: idx}, n)
		}
	}
}
