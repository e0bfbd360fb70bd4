package geo

// ResampleSphericalPolyline mirrors valhalla::midgard::resample_spherical_polyline:
// it walks each segment of shape at a fixed interval (already in the same
// planar units as shape) and returns the points it steps to, plus the first
// and last vertex of the original line. Spacing is even only within a
// segment, and the interior vertices of the original line are not emitted.
func ResampleSphericalPolyline(shape CoordArray, interval float32) CoordArray {
	if len(shape) == 0 {
		return nil
	}
	if len(shape) == 1 {
		return CoordArray{shape[0]}
	}
	resampled := make(CoordArray, 0, len(shape))
	resampled = append(resampled, shape[0])
	for i := 0; i < len(shape)-1; i++ {
		start := shape[i]
		end := shape[i+1]
		segLen := Distance(start, end)
		if segLen == 0 {
			continue
		}
		remaining := float32(segLen)
		for remaining > interval {
			frac := interval / remaining
			start = pointInFraction(start, end, frac)
			resampled = append(resampled, start)
			remaining = float32(Distance(start, end))
		}
	}
	resampled = append(resampled, shape[len(shape)-1])
	return resampled
}

func pointInFraction(start, end Coord, frac float32) Coord {
	return Coord{
		start[0] + (end[0]-start[0])*float64(frac),
		start[1] + (end[1]-start[1])*float64(frac),
	}
}

// ReverseShape reverses a copy of shape without mutating the caller's slice
// (the tile cache may hand out the same backing array to concurrent readers).
func ReverseShape(shape CoordArray) CoordArray {
	rev := make(CoordArray, len(shape))
	for i, p := range shape {
		rev[len(shape)-1-i] = p
	}
	return rev
}
