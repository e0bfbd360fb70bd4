package isochrone

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
)

// modeGridParams gives the cell size and the maximum speed the expansion
// should ever credit a mode with, used only to size the grid so that a
// bucket of labels reaching the horizon can't jump past neighboring cells
// without marking them.
type modeGridParams struct {
	CellSizeMeters  float32
	MaxReachSpeedKph float32
}

var gridParamsByMode = map[graph.TravelMode]modeGridParams{
	graph.Pedestrian: {CellSizeMeters: 200, MaxReachSpeedKph: 5 * 1.60934},
	graph.Bicycle:    {CellSizeMeters: 200, MaxReachSpeedKph: 20 * 1.60934},
	graph.Transit:    {CellSizeMeters: 200, MaxReachSpeedKph: 70 * 1.60934},
	graph.Drive:      {CellSizeMeters: 400, MaxReachSpeedKph: 70 * 1.60934},
}

// ShapeInterval returns a quarter of the mode's cell size. The expander
// records it, but no shape is resampled with it; Intersect picks its own
// sample spacing of about a quarter cell.
func ShapeInterval(mode graph.TravelMode) float32 {
	return gridParamsByMode[mode].CellSizeMeters * 0.25
}

// GriddedData is a fixed rectangular grid over the query's bounding box,
// each cell holding the minimum time (seconds) at which it was reached.
// Cells never reached keep their initial "unreached" sentinel.
type GriddedData struct {
	proj geo.WebMercatorProjection

	originX, originY float64
	cellSizeMeters   float32
	nx, ny           int

	data []float32
}

const unreached = float32(-1)

// NewGriddedData builds a grid centered on center, wide enough to reach
// maxSeconds at the mode's maximum credited reach speed in every direction.
func NewGriddedData(center geo.Coord, mode graph.TravelMode, maxSeconds float32) *GriddedData {
	params := gridParamsByMode[mode]
	maxDistance := maxSeconds * (params.MaxReachSpeedKph / 3.6)
	halfExtent := maxDistance + params.CellSizeMeters

	proj := geo.WebMercatorProjection{}
	projected := proj.Proj(center)
	cx, cy := projected[0], projected[1]

	nx := int(math.Ceil(float64(2*halfExtent/params.CellSizeMeters))) + 1
	ny := nx

	g := &GriddedData{
		proj:           proj,
		originX:        cx - float64(halfExtent),
		originY:        cy - float64(halfExtent),
		cellSizeMeters: params.CellSizeMeters,
		nx:             nx,
		ny:             ny,
		data:           make([]float32, nx*ny),
	}
	for i := range g.data {
		g.data[i] = unreached
	}
	return g
}

func (self *GriddedData) cellIndex(x, y float64) (int, int, bool) {
	col := int((x - self.originX) / float64(self.cellSizeMeters))
	row := int((y - self.originY) / float64(self.cellSizeMeters))
	if col < 0 || col >= self.nx || row < 0 || row >= self.ny {
		return 0, 0, false
	}
	return col, row, true
}

// SetIfLessThan writes seconds into the cell containing coord, but only if
// no cheaper time has already been recorded there - the grid is monotone,
// never regressing a cell once it has a value.
func (self *GriddedData) SetIfLessThan(coord geo.Coord, seconds float32) {
	p := self.proj.Proj(coord)
	col, row, ok := self.cellIndex(p[0], p[1])
	if !ok {
		return
	}
	idx := row*self.nx + col
	cur := self.data[idx]
	if cur == unreached || seconds < cur {
		self.data[idx] = seconds
	}
}

// Intersect samples the segment from a to b at evenly spaced points no more
// than a quarter cell apart (both endpoints included) and returns each cell
// a sample lands in, once, tagged with the fractional distance along the
// segment of the first sample that landed there (used to interpolate the
// time credited to that cell). A cell the segment only clips between two
// samples, such as at a corner, is not returned.
func (self *GriddedData) Intersect(a, b geo.Coord) []CellCrossing {
	pa := self.proj.Proj(a)
	pb := self.proj.Proj(b)
	ax, ay := pa[0], pa[1]
	bx, by := pb[0], pb[1]

	dx := bx - ax
	dy := by - ay
	length := math.Hypot(dx, dy)
	if length == 0 {
		col, row, ok := self.cellIndex(ax, ay)
		if !ok {
			return nil
		}
		return []CellCrossing{{Col: col, Row: row, Fraction: 0}}
	}

	steps := int(length/float64(self.cellSizeMeters)*4) + 1
	seen := make(map[[2]int]bool)
	var crossings []CellCrossing
	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		x := ax + dx*frac
		y := ay + dy*frac
		col, row, ok := self.cellIndex(x, y)
		if !ok {
			continue
		}
		key := [2]int{col, row}
		if seen[key] {
			continue
		}
		seen[key] = true
		crossings = append(crossings, CellCrossing{Col: col, Row: row, Fraction: frac})
	}
	return crossings
}

type CellCrossing struct {
	Col, Row int
	Fraction float64
}

func (self *GriddedData) SetCellIfLessThan(col, row int, seconds float32) {
	if col < 0 || col >= self.nx || row < 0 || row >= self.ny {
		return
	}
	idx := row*self.nx + col
	cur := self.data[idx]
	if cur == unreached || seconds < cur {
		self.data[idx] = seconds
	}
}

// MarkEdge walks shape segment by segment, crediting every grid cell the
// edge passes through with the time interpolated along the edge's total
// length between startSeconds (at shape[0]) and endSeconds (at the last
// vertex).
func (self *GriddedData) MarkEdge(shape geo.CoordArray, startSeconds, endSeconds float32) {
	if len(shape) == 0 {
		return
	}
	if len(shape) == 1 {
		self.SetIfLessThan(shape[0], startSeconds)
		return
	}

	total := 0.0
	segLens := make([]float64, len(shape)-1)
	for i := 0; i < len(shape)-1; i++ {
		segLens[i] = geo.Distance(shape[i], shape[i+1])
		total += segLens[i]
	}
	if total == 0 {
		self.SetIfLessThan(shape[0], startSeconds)
		return
	}

	cumulative := 0.0
	for i := 0; i < len(shape)-1; i++ {
		a, b := shape[i], shape[i+1]
		segStart := cumulative
		cumulative += segLens[i]
		segEnd := cumulative

		timeAt := func(fracAlongSeg float64) float32 {
			distAlong := segStart + fracAlongSeg*(segEnd-segStart)
			frac := distAlong / total
			return startSeconds + float32(frac)*(endSeconds-startSeconds)
		}

		for _, cr := range self.Intersect(a, b) {
			self.SetCellIfLessThan(cr.Col, cr.Row, timeAt(cr.Fraction))
		}
	}
}

func (self *GriddedData) At(col, row int) (float32, bool) {
	if col < 0 || col >= self.nx || row < 0 || row >= self.ny {
		return 0, false
	}
	v := self.data[row*self.nx+col]
	return v, v != unreached
}

func (self *GriddedData) Dimensions() (int, int) {
	return self.nx, self.ny
}

// ToFeatureCollection emits every reached cell as its own rectangular
// polygon feature carrying its time-to-reach in seconds. This is the grid
// itself, cell by cell - not a contour: no marching squares, no merging
// of neighboring cells, no simplification.
func (self *GriddedData) ToFeatureCollection() *geojson.FeatureCollection {
	var features []*geojson.Feature
	for row := 0; row < self.ny; row++ {
		for col := 0; col < self.nx; col++ {
			seconds, ok := self.At(col, row)
			if !ok {
				continue
			}
			ring := self.cellRing(col, row)
			f := geo.NewPolygonFeature([]orb.Ring{ring}, geojson.Properties{
				"seconds": seconds,
			})
			features = append(features, f)
		}
	}
	return geo.NewFeatureCollection(features)
}

func (self *GriddedData) cellRing(col, row int) orb.Ring {
	x0 := self.originX + float64(col)*float64(self.cellSizeMeters)
	y0 := self.originY + float64(row)*float64(self.cellSizeMeters)
	x1 := x0 + float64(self.cellSizeMeters)
	y1 := y0 + float64(self.cellSizeMeters)

	corners := [][2]float64{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}, {x0, y0}}
	ring := make(orb.Ring, len(corners))
	for i, c := range corners {
		ring[i] = self.proj.ReProj(geo.Coord{c[0], c[1]})
	}
	return ring
}
