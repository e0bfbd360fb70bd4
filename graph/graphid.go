package graph

import "fmt"

// GraphId is the opaque (tile, level, index) triple that names every node
// and directed edge in the hierarchical graph. It partitions the graph by
// tile and level; a level transition is a directed edge flagged up or down
// between two representations of the same node.
type GraphId struct {
	Tile  uint32
	Level uint8
	Index uint32
}

var InvalidGraphId = GraphId{Tile: ^uint32(0), Level: 0, Index: 0}

func NewGraphId(tile uint32, level uint8, index uint32) GraphId {
	return GraphId{Tile: tile, Level: level, Index: index}
}

func (self GraphId) Valid() bool {
	return self != InvalidGraphId
}

// TileBase returns the id of the tile itself, dropping the edge/node index,
// so two ids from the same tile compare equal regardless of which feature
// within the tile they name.
func (self GraphId) TileBase() GraphId {
	return GraphId{Tile: self.Tile, Level: self.Level, Index: 0}
}

// Next returns the id of the following feature in the same tile, mirroring
// the pointer-increment idiom used when walking a node's edge array.
func (self GraphId) Next() GraphId {
	return GraphId{Tile: self.Tile, Level: self.Level, Index: self.Index + 1}
}

func (self GraphId) String() string {
	return fmt.Sprintf("%d/%d/%d", self.Tile, self.Level, self.Index)
}
