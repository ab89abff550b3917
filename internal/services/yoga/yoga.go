package yoga

import (
	"sort"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/aspect"
	"Jyotish/internal/services/strength"
)

// definition is one named configuration: a predicate over the chart that
// emits zero or more matches with a computed strength.
type definition struct {
	name   string
	class  models.YogaClass
	detect func(c *models.BirthChart) []models.YogaMatch
}

// Detector evaluates the yoga table against a chart.
type Detector struct {
	defs []definition
}

func NewDetector() *Detector {
	return &Detector{defs: natalDefs()}
}

// Detect runs every natal definition and returns matches sorted by
// descending strength, name as tiebreak.
func (d *Detector) Detect(c *models.BirthChart) []models.YogaMatch {
	var out []models.YogaMatch
	for _, def := range d.defs {
		for _, m := range def.detect(c) {
			m.Name = def.name
			m.Class = def.class
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Strength != out[j].Strength {
			return out[i].Strength > out[j].Strength
		}
		return out[i].Name < out[j].Name
	})
	return out
}

var kendras = map[int]bool{1: true, 4: true, 7: true, 10: true}
var trikonas = map[int]bool{1: true, 5: true, 9: true}
var dusthanas = map[int]bool{6: true, 8: true, 12: true}

// kendraWeight ranks angular houses for Mahapurusha strength.
var kendraWeight = map[int]float64{1: 1.0, 4: 0.9, 7: 0.9, 10: 0.8}

var mahapurusha = map[models.Planet]string{
	models.Mars:    "Ruchaka",
	models.Mercury: "Bhadra",
	models.Jupiter: "Hamsa",
	models.Venus:   "Malavya",
	models.Saturn:  "Shasha",
}

func natalDefs() []definition {
	defs := []definition{
		{name: "Gaja Kesari", class: models.YogaNatal, detect: gajaKesari},
		{name: "Budhaditya", class: models.YogaNatal, detect: budhaditya},
		{name: "Chandra Mangala", class: models.YogaNatal, detect: chandraMangala},
		{name: "Raja Yoga", class: models.YogaNatal, detect: rajaYoga},
		{name: "Dhana Yoga", class: models.YogaNatal, detect: dhanaYoga},
		{name: "Viparita Raja Yoga", class: models.YogaNatal, detect: viparita},
		{name: "Neecha Bhanga Raja Yoga", class: models.YogaNatal, detect: neechaBhangaRaja},
		{name: "Adhi Yoga", class: models.YogaNatal, detect: adhiYoga},
		{name: "Kemadruma", class: models.YogaNatal, detect: kemadruma},
		{name: "Shakata", class: models.YogaNatal, detect: shakata},
		{name: "Sunapha", class: models.YogaNatal, detect: moonFlank(2, "Sunapha")},
		{name: "Anapha", class: models.YogaNatal, detect: moonFlank(12, "Anapha")},
		{name: "Vesi", class: models.YogaNatal, detect: sunFlank(2)},
		{name: "Vosi", class: models.YogaNatal, detect: sunFlank(12)},
	}
	for p, name := range mahapurusha {
		p, name := p, name
		defs = append(defs, definition{
			name:  name,
			class: models.YogaNatal,
			detect: func(c *models.BirthChart) []models.YogaMatch {
				return panchaMahapurusha(c, p)
			},
		})
	}
	return defs
}

// panchaMahapurusha: the planet in own or exalted sign and in a kendra
// from the lagna. Exaltation outranks own sign; the 1st house outranks
// the other angles.
func panchaMahapurusha(c *models.BirthChart, p models.Planet) []models.YogaMatch {
	pos, ok := c.Planets[p]
	if !ok {
		return nil
	}
	h := c.HouseOfPlanet(p)
	if !kendras[h] {
		return nil
	}
	var signFactor float64
	switch strength.Dignity(p, pos.Longitude) {
	case models.Exalted:
		signFactor = 1.0
	case models.Moolatrikona, models.OwnSign:
		signFactor = 0.8
	default:
		return nil
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{p},
		Houses:   []int{h},
		Strength: signFactor * kendraWeight[h],
	}}
}

// gajaKesari: Jupiter in a kendra counted from the Moon.
func gajaKesari(c *models.BirthChart) []models.YogaMatch {
	moon, okM := c.Planets[models.Moon]
	jup, okJ := c.Planets[models.Jupiter]
	if !okM || !okJ {
		return nil
	}
	d := ((int(jup.Sign)-int(moon.Sign))%12 + 12) % 12
	if d != 0 && d != 3 && d != 6 && d != 9 {
		return nil
	}
	s := 0.6
	switch strength.Dignity(models.Jupiter, jup.Longitude) {
	case models.Exalted, models.Moolatrikona, models.OwnSign:
		s = 0.9
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Jupiter, models.Moon},
		Houses:   []int{c.HouseOfPlanet(models.Jupiter)},
		Strength: s,
	}}
}

// budhaditya: Sun and Mercury in one sign; combustion distance thins it.
func budhaditya(c *models.BirthChart) []models.YogaMatch {
	sun, okS := c.Planets[models.Sun]
	mer, okM := c.Planets[models.Mercury]
	if !okS || !okM || sun.Sign != mer.Sign {
		return nil
	}
	gap := absf(sun.Longitude - mer.Longitude)
	if gap > 180 {
		gap = 360 - gap
	}
	s := 0.7
	if gap < 3 {
		s = 0.4
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Sun, models.Mercury},
		Houses:   []int{c.HouseOfPlanet(models.Sun)},
		Strength: s,
	}}
}

func chandraMangala(c *models.BirthChart) []models.YogaMatch {
	moon, okM := c.Planets[models.Moon]
	mars, okR := c.Planets[models.Mars]
	if !okM || !okR {
		return nil
	}
	d := ((int(mars.Sign)-int(moon.Sign))%12 + 12) % 12
	if d != 0 && d != 6 {
		return nil
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Moon, models.Mars},
		Houses:   []int{c.HouseOfPlanet(models.Moon)},
		Strength: 0.6,
	}}
}

// rajaYoga: a kendra lord and a trikona lord joined by conjunction,
// mutual aspect, or sign exchange. The lagna counts once as kendra.
func rajaYoga(c *models.BirthChart) []models.YogaMatch {
	var out []models.YogaMatch
	seen := map[[2]models.Planet]bool{}
	for kh := range kendras {
		for th := range trikonas {
			if kh == 1 && th == 1 {
				continue
			}
			kl, tl := c.HouseLord(kh), c.HouseLord(th)
			if kl == tl {
				continue
			}
			key := [2]models.Planet{minP(kl, tl), maxP(kl, tl)}
			if seen[key] {
				continue
			}
			link, s := planetLink(c, kl, tl)
			if link == "" {
				continue
			}
			seen[key] = true
			out = append(out, models.YogaMatch{
				Planets:  []models.Planet{kl, tl},
				Houses:   []int{kh, th},
				Strength: s,
				Note:     link,
			})
		}
	}
	return out
}

// dhanaYoga: wealth-house lords (2nd and 11th) linked with each other or
// with a trikona lord.
func dhanaYoga(c *models.BirthChart) []models.YogaMatch {
	wealth := []int{2, 11}
	partners := []int{1, 2, 5, 9, 11}
	var out []models.YogaMatch
	seen := map[[2]models.Planet]bool{}
	for _, wh := range wealth {
		wl := c.HouseLord(wh)
		for _, ph := range partners {
			if ph == wh {
				continue
			}
			pl := c.HouseLord(ph)
			if pl == wl {
				continue
			}
			key := [2]models.Planet{minP(wl, pl), maxP(wl, pl)}
			if seen[key] {
				continue
			}
			link, s := planetLink(c, wl, pl)
			if link == "" {
				continue
			}
			seen[key] = true
			out = append(out, models.YogaMatch{
				Planets:  []models.Planet{wl, pl},
				Houses:   []int{wh, ph},
				Strength: s * 0.9,
				Note:     link,
			})
		}
	}
	return out
}

// viparita: a dusthana lord placed in another dusthana.
func viparita(c *models.BirthChart) []models.YogaMatch {
	var out []models.YogaMatch
	for dh := range dusthanas {
		lord := c.HouseLord(dh)
		ph := c.HouseOfPlanet(lord)
		if ph == 0 || ph == dh || !dusthanas[ph] {
			continue
		}
		out = append(out, models.YogaMatch{
			Planets:  []models.Planet{lord},
			Houses:   []int{dh, ph},
			Strength: 0.5,
		})
	}
	return out
}

func neechaBhangaRaja(c *models.BirthChart) []models.YogaMatch {
	var out []models.YogaMatch
	for _, p := range models.SevenPlanets() {
		nb := strength.NeechaBhanga(c, p)
		if nb == nil || nb.Weight < 4 {
			continue
		}
		s := float64(nb.Weight) / 12
		if s > 1 {
			s = 1
		}
		out = append(out, models.YogaMatch{
			Planets:  []models.Planet{p},
			Houses:   []int{c.HouseOfPlanet(p)},
			Strength: s,
			Note:     nb.Tier,
		})
	}
	return out
}

// adhiYoga: natural benefics occupying the 6th, 7th, or 8th from the Moon.
func adhiYoga(c *models.BirthChart) []models.YogaMatch {
	moon, ok := c.Planets[models.Moon]
	if !ok {
		return nil
	}
	var found []models.Planet
	for _, p := range []models.Planet{models.Mercury, models.Jupiter, models.Venus} {
		pos, ok := c.Planets[p]
		if !ok {
			continue
		}
		d := ((int(pos.Sign)-int(moon.Sign))%12 + 12) % 12
		if d == 5 || d == 6 || d == 7 {
			found = append(found, p)
		}
	}
	if len(found) < 2 {
		return nil
	}
	return []models.YogaMatch{{
		Planets:  found,
		Strength: float64(len(found)) / 3,
	}}
}

// kemadruma: no planet other than Sun and the nodes in the 2nd or 12th
// from the Moon, nor with the Moon itself.
func kemadruma(c *models.BirthChart) []models.YogaMatch {
	moon, ok := c.Planets[models.Moon]
	if !ok {
		return nil
	}
	for p, pos := range c.Planets {
		if p == models.Moon || p == models.Sun || p == models.Rahu || p == models.Ketu {
			continue
		}
		d := ((int(pos.Sign)-int(moon.Sign))%12 + 12) % 12
		if d == 0 || d == 1 || d == 11 {
			return nil
		}
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Moon},
		Houses:   []int{c.HouseOfPlanet(models.Moon)},
		Strength: 0.7,
	}}
}

// shakata: Moon in the 6th, 8th, or 12th from Jupiter.
func shakata(c *models.BirthChart) []models.YogaMatch {
	moon, okM := c.Planets[models.Moon]
	jup, okJ := c.Planets[models.Jupiter]
	if !okM || !okJ {
		return nil
	}
	d := ((int(moon.Sign)-int(jup.Sign))%12 + 12) % 12
	if d != 5 && d != 7 && d != 11 {
		return nil
	}
	return []models.YogaMatch{{
		Planets:  []models.Planet{models.Moon, models.Jupiter},
		Strength: 0.5,
	}}
}

// moonFlank builds Sunapha (2nd from Moon) and Anapha (12th from Moon):
// a true planet other than Sun in the flanking sign.
func moonFlank(offset int, _ string) func(*models.BirthChart) []models.YogaMatch {
	return func(c *models.BirthChart) []models.YogaMatch {
		moon, ok := c.Planets[models.Moon]
		if !ok {
			return nil
		}
		var found []models.Planet
		for _, p := range []models.Planet{models.Mars, models.Mercury, models.Jupiter, models.Venus, models.Saturn} {
			pos, ok := c.Planets[p]
			if !ok {
				continue
			}
			d := ((int(pos.Sign)-int(moon.Sign))%12 + 12) % 12
			if d == offset-1 {
				found = append(found, p)
			}
		}
		if len(found) == 0 {
			return nil
		}
		return []models.YogaMatch{{Planets: found, Strength: 0.4 + 0.1*float64(len(found))}}
	}
}

// sunFlank builds Vesi (2nd from Sun) and Vosi (12th from Sun) with the
// same planet set, excluding the Moon.
func sunFlank(offset int) func(*models.BirthChart) []models.YogaMatch {
	return func(c *models.BirthChart) []models.YogaMatch {
		sun, ok := c.Planets[models.Sun]
		if !ok {
			return nil
		}
		var found []models.Planet
		for _, p := range []models.Planet{models.Mars, models.Mercury, models.Jupiter, models.Venus, models.Saturn} {
			pos, ok := c.Planets[p]
			if !ok {
				continue
			}
			d := ((int(pos.Sign)-int(sun.Sign))%12 + 12) % 12
			if d == offset-1 {
				found = append(found, p)
			}
		}
		if len(found) == 0 {
			return nil
		}
		return []models.YogaMatch{{Planets: found, Strength: 0.4 + 0.1*float64(len(found))}}
	}
}

// planetLink classifies how two planets connect: same sign, sign
// exchange, or mutual aspect. Conjunction and exchange score higher than
// a one-way aspect pair.
func planetLink(c *models.BirthChart, a, b models.Planet) (string, float64) {
	pa, okA := c.Planets[a]
	pb, okB := c.Planets[b]
	if !okA || !okB {
		return "", 0
	}
	if pa.Sign == pb.Sign {
		return "conjunction", 0.9
	}
	if pa.Sign.Lord() == b && pb.Sign.Lord() == a {
		return "exchange", 0.85
	}
	if aspect.SignAspects(a, pa.Sign, pb.Sign) && aspect.SignAspects(b, pb.Sign, pa.Sign) {
		return "mutual aspect", 0.7
	}
	return "", 0
}

func minP(a, b models.Planet) models.Planet {
	if a < b {
		return a
	}
	return b
}

func maxP(a, b models.Planet) models.Planet {
	if a < b {
		return b
	}
	return a
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
