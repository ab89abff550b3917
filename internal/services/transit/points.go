package transit

import (
	"Jyotish/internal/domain/models"
	"Jyotish/pkg/util"
)

// mrityuBhaga holds the fatal degree of each planet per sign, from the
// Jataka Parijata table. Indexed [planet][sign].
var mrityuBhaga = map[models.Planet][12]float64{
	models.Sun:     {20, 9, 12, 6, 8, 24, 16, 17, 22, 2, 3, 23},
	models.Moon:    {8, 25, 22, 22, 21, 1, 4, 23, 18, 20, 20, 10},
	models.Mars:    {19, 28, 25, 23, 29, 28, 14, 21, 2, 15, 11, 6},
	models.Mercury: {15, 14, 13, 12, 8, 18, 20, 10, 21, 22, 7, 5},
	models.Jupiter: {19, 29, 12, 27, 6, 4, 13, 10, 17, 11, 15, 28},
	models.Venus:   {28, 15, 11, 17, 10, 13, 4, 6, 27, 12, 29, 19},
	models.Saturn:  {10, 4, 7, 9, 12, 16, 3, 18, 28, 14, 13, 15},
	models.Rahu:    {14, 13, 12, 11, 24, 23, 22, 21, 10, 20, 18, 8},
	models.Ketu:    {8, 18, 20, 10, 21, 22, 23, 24, 11, 12, 13, 14},
}

// MrityuBhagaLongitude returns the absolute fatal longitude for a planet
// given the sign it occupies.
func MrityuBhagaLongitude(p models.Planet, s models.Sign) (float64, bool) {
	row, ok := mrityuBhaga[p]
	if !ok {
		return 0, false
	}
	return float64(int(s.Norm()))*30 + row[s.Norm()], true
}

// BhriguBindu is the midpoint of the Moon-Rahu axis, taken on the shorter
// arc from Rahu toward the Moon.
func BhriguBindu(c *models.BirthChart) (float64, bool) {
	moon, okM := c.Planets[models.Moon]
	rahu, okR := c.Planets[models.Rahu]
	if !okM || !okR {
		return 0, false
	}
	return util.Norm360(rahu.Longitude + util.SignedDelta(moon.Longitude, rahu.Longitude)/2), true
}

// Point is one natal sensitive longitude a transit can strike.
type Point struct {
	Label     string
	Longitude float64
	House     int
}

// SensitivePoints enumerates the natal targets: each planet, the lagna,
// each planet's Mrityu Bhaga degree, and the Bhrigu Bindu.
func SensitivePoints(c *models.BirthChart) []Point {
	pts := make([]Point, 0, 2*len(c.Planets)+2)
	for _, p := range models.AllPlanets() {
		pos, ok := c.Planets[p]
		if !ok {
			continue
		}
		pts = append(pts, Point{Label: p.String(), Longitude: pos.Longitude, House: pos.House})
		if mb, ok := MrityuBhagaLongitude(p, pos.Sign); ok {
			pts = append(pts, Point{Label: "MrityuBhaga:" + p.String(), Longitude: mb, House: pos.House})
		}
	}
	pts = append(pts, Point{Label: "Lagna", Longitude: c.Ascendant, House: 1})
	if bb, ok := BhriguBindu(c); ok {
		pts = append(pts, Point{Label: "BhriguBindu", Longitude: bb, House: c.HouseOfLongitude(bb)})
	}
	return pts
}
