package strength

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/aspect"
	"Jyotish/internal/services/varga"
	"Jyotish/pkg/util"
)

// NeechaBhanga evaluates every cancellation condition for a debilitated
// planet. Each carries a weight; the summed weight yields the tier.
func NeechaBhanga(c *models.BirthChart, p models.Planet) *models.NeechaBhanga {
	pos, ok := c.Planets[p]
	if !ok || Dignity(p, pos.Longitude) != models.Debilitated {
		return nil
	}
	nb := &models.NeechaBhanga{Planet: p}
	add := func(cond string, w int) {
		nb.Conditions = append(nb.Conditions, cond)
		nb.Weight += w
	}

	kendraFrom := func(anchor models.Sign, s models.Sign) bool {
		d := ((int(s)-int(anchor))%12 + 12) % 12
		return d == 0 || d == 3 || d == 6 || d == 9
	}
	lagna := c.AscSign()
	moonSign := c.Planets[models.Moon].Sign

	signLord := pos.Sign.Lord()
	if lp, ok := c.Planets[signLord]; ok {
		if kendraFrom(lagna, lp.Sign) {
			add("sign lord in kendra from lagna", 3)
		}
		if kendraFrom(moonSign, lp.Sign) {
			add("sign lord in kendra from Moon", 2)
		}
		// aspected by its own sign-lord (house aspect)
		if aspectsLongitude(lp, pos.Longitude) {
			add("aspected by own sign lord", 2)
		}
	}

	exaltLord := models.Sign(int(ExaltationPoint(p) / 30)).Norm().Lord()
	if ep, ok := c.Planets[exaltLord]; ok && kendraFrom(lagna, ep.Sign) {
		add("exaltation sign lord in kendra from lagna", 2)
	}

	if d9, err := varga.SignIn(pos.Longitude, 9); err == nil {
		d9Dig := Dignity(p, float64(int(d9))*30+15)
		if d9Dig == models.Exalted || d9Dig == models.OwnSign || d9Dig == models.Moolatrikona {
			add("exalted or own sign in navamsa", 2)
		}
	}

	for _, o := range models.AllPlanets() {
		if o == p {
			continue
		}
		op, ok := c.Planets[o]
		if !ok || op.Sign != pos.Sign {
			continue
		}
		if Dignity(o, op.Longitude) == models.Exalted {
			add("conjunct an exalted planet", 3)
			break
		}
	}

	switch {
	case nb.Weight == 0:
		nb.Tier = "none"
	case nb.Weight <= 2:
		nb.Tier = "weak"
	case nb.Weight <= 4:
		nb.Tier = "partial"
	case nb.Weight <= 6:
		nb.Tier = "strong"
	default:
		nb.Tier = "complete"
	}
	return nb
}

// aspectsLongitude applies the whole-sign Vedic aspects of the aspecting
// planet's position onto a target longitude.
func aspectsLongitude(from models.PlanetPosition, targetLon float64) bool {
	targetSign := models.Sign(int(util.Norm360(targetLon) / 30)).Norm()
	return aspect.SignAspects(from.Planet, from.Sign, targetSign)
}

// Wars detects graha yuddha: two non-luminary true planets within one
// degree. The more northerly planet wins; ties go to the lower longitude.
func Wars(c *models.BirthChart) []models.PlanetaryWar {
	combatants := []models.Planet{models.Mars, models.Mercury, models.Jupiter, models.Venus, models.Saturn}
	var out []models.PlanetaryWar
	for i := 0; i < len(combatants); i++ {
		for j := i + 1; j < len(combatants); j++ {
			a, okA := c.Planets[combatants[i]]
			b, okB := c.Planets[combatants[j]]
			if !okA || !okB {
				continue
			}
			gap := util.ArcDistance(a.Longitude, b.Longitude)
			if gap > 1 {
				continue
			}
			w, l := a, b
			if b.Latitude > a.Latitude || (b.Latitude == a.Latitude && b.Longitude < a.Longitude) {
				w, l = b, a
			}
			out = append(out, models.PlanetaryWar{Winner: w.Planet, Loser: l.Planet, Gap: gap})
		}
	}
	return out
}
