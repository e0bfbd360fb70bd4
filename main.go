package main

import (
	"net/http"
	"os"
	"time"

	"github.com/paulmach/orb/geojson"
	"golang.org/x/exp/slog"

	"github.com/ttpr0/isochrone-core/geo"
	"github.com/ttpr0/isochrone-core/graph"
	"github.com/ttpr0/isochrone-core/isochrone"
)

var (
	CONFIG Config
	READER *graph.MemGraphReader
	CORE   *isochrone.Isochrone
)

func main() {
	slog.SetDefault(slog.New(NewLogHandler(os.Stdout, nil)))

	CONFIG = ReadConfig("./config.yaml")
	READER = LoadDemoGraph(CONFIG.Graphs.TileDir)
	CORE = isochrone.NewIsochrone(READER)

	app := http.DefaultServeMux
	MapPost(app, "/v1/isochrone", HandleIsochroneRequest)

	addr := CONFIG.Server.Address
	if addr == "" {
		addr = ":5002"
	}
	slog.Info("listening on " + addr)
	http.ListenAndServe(addr, nil)
}

// departureSeconds turns req's date_time_value into seconds from midnight
// for a depart_at or arrive_by request; both are read the same way, as the
// start time. It is a plain clock-time input, not a calendar
// facility: date_time_type == current, a missing value, or one that doesn't
// parse as HH:MM[:SS] all fall back to 0 rather than resolving today's date.
func departureSeconds(req IsochroneRequestParams) uint32 {
	if req.DateTimeType != dateTimeDepartAt && req.DateTimeType != dateTimeArriveBy {
		return 0
	}
	t, err := time.Parse("15:04:05", req.DateTimeValue)
	if err != nil {
		t, err = time.Parse("15:04", req.DateTimeValue)
		if err != nil {
			return 0
		}
	}
	return uint32(t.Hour()*3600 + t.Minute()*60 + t.Second())
}

func HandleIsochroneRequest(req IsochroneRequestParams) Result {
	profOpts, ok := CONFIG.Profiles[req.Costing]
	if !ok {
		return BadRequest("unknown costing profile: " + req.Costing)
	}

	maxSeconds := float32(0)
	for _, c := range req.ContourMinutes {
		if c*60 > maxSeconds {
			maxSeconds = c * 60
		}
	}
	if maxSeconds == 0 {
		return BadRequest("at least one contour is required")
	}

	var grids []*geojson.FeatureCollection

	if profOpts.Value.Type() == TRANSIT {
		transitOpts, ok := profOpts.Value.(TransitOptions)
		if !ok {
			return BadRequest("invalid transit profile configuration")
		}
		transit := BuildTransitCosting(transitOpts)
		walkSpeed := transitOpts.WalkingSpeed
		if walkSpeed == 0 {
			walkSpeed = 5
		}
		walk, _, _ := BuildCosting(WalkingOptions{WalkingSpeed: walkSpeed})
		for _, locParam := range req.Locations {
			loc, ok := SnapLocation(READER, geo.Coord{locParam.Lon, locParam.Lat})
			if !ok {
				return BadRequest("could not snap location to graph")
			}
			grid := CORE.ComputeMultiModal(loc, walk, transit, maxSeconds, departureSeconds(req))
			grids = append(grids, grid.ToFeatureCollection())
		}
		return OK(IsochroneResponse{Costing: req.Costing, Grids: grids})
	}

	cost, mode, err := BuildCosting(profOpts.Value)
	if err != nil {
		return BadRequest(err.Error())
	}
	for _, locParam := range req.Locations {
		loc, ok := SnapLocation(READER, geo.Coord{locParam.Lon, locParam.Lat})
		if !ok {
			return BadRequest("could not snap location to graph")
		}
		var grid *isochrone.GriddedData
		if req.Reverse {
			grid = CORE.ComputeReverse(loc, cost, mode, maxSeconds)
		} else {
			grid = CORE.Compute(loc, cost, mode, maxSeconds)
		}
		grids = append(grids, grid.ToFeatureCollection())
	}
	return OK(IsochroneResponse{Costing: req.Costing, Grids: grids})
}
