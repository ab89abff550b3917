package strength

import (
	"math"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/varga"
	"Jyotish/pkg/util"
)

// Calculator evaluates the six-fold strength with continuous (arc-based)
// formulas throughout; nothing in here is a step function.
type Calculator struct{}

func NewCalculator() *Calculator { return &Calculator{} }

// Naisargika constants, descending by natural luminosity.
var naisargika = map[models.Planet]float64{
	models.Sun:     60,
	models.Moon:    51.43,
	models.Venus:   42.85,
	models.Jupiter: 34.28,
	models.Mercury: 25.70,
	models.Mars:    17.14,
	models.Saturn:  8.57,
}

// Direction of strength: the house whose cusp the planet peaks on.
var digHouse = map[models.Planet]int{
	models.Jupiter: 1, models.Mercury: 1,
	models.Moon: 4, models.Venus: 4,
	models.Saturn: 7,
	models.Sun:    10, models.Mars: 10,
}

// Mean daily motion in degrees, used by the Cheshta speed ratio.
var meanSpeed = map[models.Planet]float64{
	models.Mars: 0.524, models.Mercury: 1.383, models.Jupiter: 0.083,
	models.Venus: 1.2, models.Saturn: 0.034,
}

// All computes Shadbala for the seven classical planets (the nodes do not
// receive Shadbala).
func (sc *Calculator) All(c *models.BirthChart) []models.ShadbalaResult {
	out := make([]models.ShadbalaResult, 0, 7)
	for _, p := range models.SevenPlanets() {
		out = append(out, sc.One(c, p))
	}
	return out
}

// One computes the six components for a single planet.
func (sc *Calculator) One(c *models.BirthChart, p models.Planet) models.ShadbalaResult {
	pos := c.Planets[p]
	r := models.ShadbalaResult{
		Planet:              p,
		Sthana:              sc.sthana(c, p, pos),
		Dig:                 sc.dig(c, p, pos),
		Kala:                sc.kala(c, p, pos),
		Cheshta:             sc.cheshta(p, pos),
		Naisargika:          naisargika[p],
		Drik:                sc.drik(c, p, pos),
		SaptavargajaPartial: true,
		RetroMax:            true,
	}
	r.Total = r.Sthana + r.Dig + r.Kala + r.Cheshta + r.Naisargika + r.Drik
	r.Rupas = math.Round(r.Total/60*100) / 100
	switch {
	case r.Rupas >= 6:
		r.Grade = "excellent"
	case r.Rupas >= 5:
		r.Grade = "good"
	case r.Rupas >= 4:
		r.Grade = "average"
	default:
		r.Grade = "weak"
	}
	return r
}

// UcchaBala is 60 at the exact exaltation point falling linearly to 0 at the
// exact debilitation point.
func UcchaBala(p models.Planet, lon float64) float64 {
	d := util.ArcDistance(lon, ExaltationPoint(p))
	return 60 * (1 - d/180)
}

// sthana = uccha + saptavargaja + ojayugma + kendradi + drekkana.
func (sc *Calculator) sthana(c *models.BirthChart, p models.Planet, pos models.PlanetPosition) float64 {
	total := UcchaBala(p, pos.Longitude)
	total += sc.saptavargaja(pos.Longitude, p)
	total += sc.ojayugma(pos.Longitude, p)

	// kendradi: angular houses full, succedent half, cadent quarter
	switch (pos.House - 1) % 3 {
	case 0:
		total += 60
	case 1:
		total += 30
	default:
		total += 15
	}

	// drekkana: male planets in the first decanate, neutral second, female third
	dk := int(pos.Degree / 10)
	switch p {
	case models.Sun, models.Mars, models.Jupiter:
		if dk == 0 {
			total += 15
		}
	case models.Mercury, models.Saturn:
		if dk == 1 {
			total += 15
		}
	case models.Moon, models.Venus:
		if dk == 2 {
			total += 15
		}
	}
	return total
}

// saptavargajaVargas: the dignities actually evaluated. The remaining three
// of the classical seven carry the explicit average placeholder; the result
// is flagged SaptavargajaPartial so consumers do not over-interpret.
var saptavargajaVargas = []int{1, 2, 3, 9}

const saptavargajaAverage = 15.0

func (sc *Calculator) saptavargaja(lon float64, p models.Planet) float64 {
	points := func(d models.Dignity) float64 {
		switch d {
		case models.Moolatrikona:
			return 45
		case models.Exalted, models.OwnSign:
			return 30
		case models.GreatFriend:
			return 22.5
		case models.Friend:
			return 15
		case models.NeutralSign:
			return 7.5
		case models.Enemy:
			return 3.75
		default:
			return 1.875
		}
	}
	total := 0.0
	for _, n := range saptavargajaVargas {
		s, err := varga.SignIn(lon, n)
		if err != nil {
			continue
		}
		// dignity evaluated at the varga sign's midpoint longitude
		total += points(Dignity(p, float64(int(s))*30+15))
	}
	total += 3 * saptavargajaAverage
	return total / 7
}

// ojayugma: Moon and Venus gain in even signs, the rest in odd, checked in
// both rasi and navamsa for 15 each.
func (sc *Calculator) ojayugma(lon float64, p models.Planet) float64 {
	female := p == models.Moon || p == models.Venus
	score := 0.0
	check := func(s models.Sign) {
		if s.Odd() != female {
			score += 15
		}
	}
	check(models.Sign(int(util.Norm360(lon) / 30)).Norm())
	if s, err := varga.SignIn(lon, 9); err == nil {
		check(s)
	}
	return score
}

// dig: linear in the arc from the zero point (the cusp opposite the
// direction of strength), peaking at 60 on the strength cusp itself.
func (sc *Calculator) dig(c *models.BirthChart, p models.Planet, pos models.PlanetPosition) float64 {
	h, ok := digHouse[p]
	if !ok {
		return 0
	}
	strengthCusp := util.Norm360(c.Ascendant + float64(h-1)*30)
	zeroPoint := util.Norm360(strengthCusp + 180)
	return 60 * util.ArcDistance(pos.Longitude, zeroPoint) / 180
}

// kala: natonnata (day/night suitability, continuous in the local hour
// angle) plus paksha (lunar phase proportion).
func (sc *Calculator) kala(c *models.BirthChart, p models.Planet, pos models.PlanetPosition) float64 {
	// angle from local midnight, degrees 0..180
	localFrac := math.Mod(c.JD-0.5+c.Longitude/360, 1)
	if localFrac < 0 {
		localFrac++
	}
	ang := localFrac * 360
	distMidnight := math.Min(ang, 360-ang)

	var natonnata float64
	switch p {
	case models.Mercury:
		natonnata = 60
	case models.Moon, models.Mars, models.Saturn: // night-strong
		natonnata = 60 * (1 - distMidnight/180)
	default: // Sun, Jupiter, Venus day-strong
		natonnata = 60 * distMidnight / 180
	}

	phase := util.ArcDistance(c.Planets[models.Moon].Longitude, c.Planets[models.Sun].Longitude)
	var paksha float64
	if NaturalBenefic(p) {
		paksha = 60 * phase / 180
	} else {
		paksha = 60 * (1 - phase/180)
	}
	return natonnata + paksha
}

// cheshta: luminaries fixed at 60; the rest scale inversely with speed
// against their mean motion. Retrograde receives the maximum under the
// convention this engine holds (RetroMax), constant per process.
func (sc *Calculator) cheshta(p models.Planet, pos models.PlanetPosition) float64 {
	if p == models.Sun || p == models.Moon {
		return 60
	}
	if pos.Retrograde {
		return 60
	}
	mean, ok := meanSpeed[p]
	if !ok || mean == 0 {
		return 30
	}
	ratio := pos.Speed / mean
	score := 60 * (1 - ratio/2)
	if score < 0 {
		return 0
	}
	if score > 60 {
		return 60
	}
	return score
}

// drik: signed aspectual sum. Benefics add, malefics subtract, each scaled
// by the continuous drishti curve divided by four.
func (sc *Calculator) drik(c *models.BirthChart, p models.Planet, pos models.PlanetPosition) float64 {
	total := 0.0
	for _, o := range models.SevenPlanets() {
		if o == p {
			continue
		}
		op, ok := c.Planets[o]
		if !ok {
			continue
		}
		v := DrishtiValue(o, util.Norm360(pos.Longitude-op.Longitude))
		if NaturalBenefic(o) {
			total += v
		} else {
			total -= v
		}
	}
	return total / 4
}

// DrishtiValue is the classical sputa-drishti curve: zero inside 30°,
// rising to the full 60 at the opposition, with the planet-specific full
// aspects (Mars 4/8, Jupiter 5/9, Saturn 3/10) overlaid as local maxima.
func DrishtiValue(aspecting models.Planet, sep float64) float64 {
	var base float64
	switch {
	case sep < 30:
		base = 0
	case sep < 60:
		base = (sep - 30) / 2
	case sep < 90:
		base = (sep - 60) + 15
	case sep < 120:
		base = 45 - (sep-90)/2
	case sep < 150:
		base = 30 - (sep - 120)
	case sep < 180:
		base = (sep - 150) * 2
	case sep < 300:
		base = 60 - (sep-180)/2
	default:
		base = 0
	}

	special := map[models.Planet][]float64{
		models.Mars:    {90, 210},  // 4th and 8th
		models.Jupiter: {120, 240}, // 5th and 9th
		models.Saturn:  {60, 270},  // 3rd and 10th
	}
	for _, peak := range special[aspecting] {
		if d := math.Abs(sep - peak); d < 15 {
			if v := 60 * (1 - d/15); v > base {
				base = v
			}
		}
	}
	return base
}
