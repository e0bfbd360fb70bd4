// Package geo carries the small geometry surface the isochrone core needs:
// coordinates, polylines and the GeoJSON grid product. Real geometry types
// come from github.com/paulmach/orb; this package only adds the
// domain-specific helpers (resampling, projection, distance) that Valhalla's
// midgard library provides in the original implementation.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Coord is a WGS84 (lon, lat) point. It is an alias of orb.Point, not a
// distinct type; the name only makes call sites read as geographic
// coordinates rather than bare planar points.
type Coord = orb.Point

type CoordArray = orb.LineString

func NewFeatureCollection(features []*geojson.Feature) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		fc.Append(f)
	}
	return fc
}

func NewPolygonFeature(rings []orb.Ring, properties geojson.Properties) *geojson.Feature {
	poly := make(orb.Polygon, len(rings))
	copy(poly, rings)
	f := geojson.NewFeature(poly)
	f.Properties = properties
	return f
}
