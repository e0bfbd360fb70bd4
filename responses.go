package main

import (
	"github.com/paulmach/orb/geojson"
)

type ErrorResponse struct {
	Request string `json:"request"`
	Error   any    `json:"error"`
}

func NewErrorResponse(request string, error any) ErrorResponse {
	return ErrorResponse{
		Request: request,
		Error:   error,
	}
}

// IsochroneResponse carries one grid per requested location, each grid
// serialized as a FeatureCollection of the cells it reached.
type IsochroneResponse struct {
	Costing string                        `json:"costing"`
	Grids   []*geojson.FeatureCollection `json:"grids"`
}
