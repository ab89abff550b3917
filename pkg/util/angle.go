package util

import "math"

// Norm360 wraps an angle into [0, 360).
func Norm360(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// SignedDelta returns a-b normalized to [-180, +180).
func SignedDelta(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < -180 {
		d += 360
	}
	if d >= 180 {
		d -= 360
	}
	return d
}

// ArcDistance returns the unsigned minimum arc between two longitudes, 0..180.
func ArcDistance(a, b float64) float64 {
	return math.Abs(SignedDelta(a, b))
}

// ArcMinutes converts degrees to the 600-units-per-degree integer grid the
// dasha and nakshatra arithmetic runs on, avoiding float drift at boundaries.
func ArcMinutes(deg float64) int64 {
	return int64(math.Round(Norm360(deg) * 600))
}

// DegFromArcMinutes converts back from the 600-unit grid.
func DegFromArcMinutes(am int64) float64 {
	return float64(am) / 600
}

// Deg2Rad and Rad2Deg are the usual conversions.
func Deg2Rad(d float64) float64 { return d * math.Pi / 180 }
func Rad2Deg(r float64) float64 { return r * 180 / math.Pi }
