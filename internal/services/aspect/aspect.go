package aspect

import (
	"Jyotish/internal/domain/models"
	"Jyotish/pkg/util"
)

// Vedic house aspects are discrete: every planet aspects its 7th; Mars adds
// the 4th and 8th, Jupiter the 5th and 9th, Saturn the 3rd and 10th, and
// the nodes the 5th and 9th.
var specialOffsets = map[models.Planet][]int{
	models.Mars:    {3, 7}, // 4th and 8th as 0-based sign offsets
	models.Jupiter: {4, 8},
	models.Saturn:  {2, 9},
	models.Rahu:    {4, 8},
	models.Ketu:    {4, 8},
}

// SignAspects reports whether a planet in fromSign aspects toSign.
func SignAspects(p models.Planet, fromSign, toSign models.Sign) bool {
	d := ((int(toSign)-int(fromSign))%12 + 12) % 12
	if d == 6 {
		return true
	}
	for _, o := range specialOffsets[p] {
		if d == o {
			return true
		}
	}
	return false
}

// PlanetAspectsHouse reports whether a natal planet aspects a whole-sign
// house of its chart.
func PlanetAspectsHouse(c *models.BirthChart, p models.Planet, house int) bool {
	pos, ok := c.Planets[p]
	if !ok {
		return false
	}
	return SignAspects(p, pos.Sign, c.SignOfHouse(house))
}

// HouseAspects enumerates every discrete aspect a chart's planets throw.
func HouseAspects(c *models.BirthChart) []models.HouseAspect {
	var out []models.HouseAspect
	for _, p := range models.AllPlanets() {
		for h := 1; h <= 12; h++ {
			if PlanetAspectsHouse(c, p, h) {
				out = append(out, models.HouseAspect{Planet: p, House: h})
			}
		}
	}
	return out
}

// Classical per-planet orbs (deeptamsa); a pair's orb is the mean of the two.
var planetOrb = map[models.Planet]float64{
	models.Sun: 15, models.Moon: 12, models.Mars: 8, models.Mercury: 7,
	models.Jupiter: 9, models.Venus: 7, models.Saturn: 9,
	models.Rahu: 8, models.Ketu: 8,
}

// PairOrb is the Tajik orb for a planet pair.
func PairOrb(a, b models.Planet) float64 {
	return (planetOrb[a] + planetOrb[b]) / 2
}

var tajikKinds = []models.TajikKind{
	models.TajikConjunction, models.TajikSextile, models.TajikSquare,
	models.TajikTrine, models.TajikOpposition,
}

// Tajik resolves the orb aspect between two positions, classifying it as
// Ithasala (applying: the faster planet behind the slower within orb) or
// Easarpha (separating). Returns nil when no aspect is within orb.
func Tajik(a, b models.PlanetPosition) *models.TajikAspect {
	fast, slow := a, b
	if absf(b.Speed) > absf(a.Speed) {
		fast, slow = b, a
	}
	orb := PairOrb(a.Planet, b.Planet)
	delta := util.SignedDelta(slow.Longitude, fast.Longitude)
	sep := absf(delta)
	// Rate of change of the separation; sign tells whether the gap closes.
	sepRate := slow.Speed - fast.Speed
	if delta < 0 {
		sepRate = -sepRate
	}

	var best *models.TajikAspect
	for _, k := range tajikKinds {
		dev := sep - k.Angle()
		if absf(dev) > orb {
			continue
		}
		// Ithasala when the separation is moving toward the exact angle.
		applying := dev*sepRate < 0 || (dev == 0 && sepRate != 0)
		cand := &models.TajikAspect{
			Kind:     k,
			From:     fast.Planet,
			To:       slow.Planet,
			Gap:      dev,
			Orb:      orb,
			Applying: applying,
		}
		if best == nil || absf(cand.Gap) < absf(best.Gap) {
			best = cand
		}
	}
	return best
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
