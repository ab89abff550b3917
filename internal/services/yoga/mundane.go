package yoga

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/aspect"
	"Jyotish/internal/services/strength"
	"Jyotish/pkg/util"
)

// DetectMundane applies the world-chart table to an ingress or event chart.
// The same predicate machinery as the natal table, with significators
// chosen for collective affairs: Mars and Saturn for conflict, the Moon
// and 4th house for food and the populace, Jupiter and the 2nd for money.
func (d *Detector) DetectMundane(c *models.BirthChart) []models.YogaMatch {
	var out []models.YogaMatch
	for _, def := range mundaneDefs {
		for _, m := range def.detect(c) {
			m.Name = def.name
			m.Class = models.YogaMundane
			out = append(out, m)
		}
	}
	return out
}

var mundaneDefs = []definition{
	{name: "War Yoga", detect: warYoga},
	{name: "Famine Yoga", detect: famineYoga},
	{name: "Inflation Yoga", detect: inflationYoga},
	{name: "Revolution Yoga", detect: revolutionYoga},
}

var cardinalSigns = map[models.Sign]bool{
	models.Aries: true, models.Cancer: true, models.Libra: true, models.Capricorn: true,
}

// warYoga: Mars and Saturn in hard contact (conjunction or opposition
// within 8 degrees), sharpened when either sits in a cardinal sign.
func warYoga(c *models.BirthChart) []models.YogaMatch {
	mars, okM := c.Planets[models.Mars]
	sat, okS := c.Planets[models.Saturn]
	if !okM || !okS {
		return nil
	}
	sep := util.ArcDistance(mars.Longitude, sat.Longitude)
	dev := sep
	if absf(sep-180) < dev {
		dev = absf(sep - 180)
	}
	if dev > 8 {
		return nil
	}
	s := 1 - dev/8
	if cardinalSigns[mars.Sign] || cardinalSigns[sat.Sign] {
		s = s*0.7 + 0.3
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Mars, models.Saturn},
		Strength: s,
	}}
}

// famineYoga: the Moon afflicted by both classical malefic aspects while
// the 4th house (crops, land) holds a malefic.
func famineYoga(c *models.BirthChart) []models.YogaMatch {
	moon, ok := c.Planets[models.Moon]
	if !ok {
		return nil
	}
	afflictions := 0
	for _, m := range []models.Planet{models.Saturn, models.Mars, models.Rahu, models.Ketu} {
		pos, ok := c.Planets[m]
		if !ok {
			continue
		}
		if pos.Sign == moon.Sign || aspect.SignAspects(m, pos.Sign, moon.Sign) {
			afflictions++
		}
	}
	maleficIn4 := false
	for _, p := range c.PlanetsInHouse(4) {
		if !strength.NaturalBenefic(p) {
			maleficIn4 = true
		}
	}
	if afflictions < 2 || !maleficIn4 {
		return nil
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Moon},
		Houses:   []int{4},
		Strength: 0.4 + 0.15*float64(afflictions),
	}}
}

// inflationYoga: Jupiter, significator of money supply, in the 2nd house
// under malefic aspect with no benefic support.
func inflationYoga(c *models.BirthChart) []models.YogaMatch {
	jup, ok := c.Planets[models.Jupiter]
	if !ok || c.HouseOfPlanet(models.Jupiter) != 2 {
		return nil
	}
	hit, helped := false, false
	for p, pos := range c.Planets {
		if p == models.Jupiter {
			continue
		}
		if !aspect.SignAspects(p, pos.Sign, jup.Sign) && pos.Sign != jup.Sign {
			continue
		}
		switch p {
		case models.Saturn, models.Mars, models.Rahu, models.Ketu:
			hit = true
		case models.Venus, models.Mercury, models.Moon:
			helped = true
		}
	}
	if !hit || helped {
		return nil
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Jupiter},
		Houses:   []int{2},
		Strength: 0.6,
	}}
}

// revolutionYoga: Rahu with the Sun (authority eclipsed) in the 10th, or
// Sun-Saturn conjunction in the 10th.
func revolutionYoga(c *models.BirthChart) []models.YogaMatch {
	sun, ok := c.Planets[models.Sun]
	if !ok || c.HouseOfPlanet(models.Sun) != 10 {
		return nil
	}
	for _, p := range []models.Planet{models.Rahu, models.Saturn} {
		pos, ok := c.Planets[p]
		if !ok || pos.Sign != sun.Sign {
			continue
		}
		return []models.YogaMatch{{
			Planets:  []models.Planet{models.Sun, p},
			Houses:   []int{10},
			Strength: 0.7,
		}}
	}
	return nil
}
