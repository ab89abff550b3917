package models

// Planet identifies one of the nine classical bodies (grahas).
type Planet int

const (
	Sun Planet = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
)

var planetNames = [...]string{"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu"}

func (p Planet) String() string {
	if p < Sun || p > Ketu {
		return "unknown"
	}
	return planetNames[p]
}

// Valid reports whether p is one of the nine grahas.
func (p Planet) Valid() bool { return p >= Sun && p <= Ketu }

// AllPlanets lists the nine grahas in canonical index order.
func AllPlanets() []Planet {
	return []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn, Rahu, Ketu}
}

// SevenPlanets lists the bodies that cast Shadbala/Ashtakavarga contributions
// (the nodes are excluded by the classical rules).
func SevenPlanets() []Planet {
	return []Planet{Sun, Moon, Mars, Mercury, Jupiter, Venus, Saturn}
}

// Sign is a zodiac sign, 0 = Aries .. 11 = Pisces.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

var signNames = [...]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < Aries || s > Pisces {
		return "unknown"
	}
	return signNames[s]
}

// Norm wraps a sign offset into 0..11.
func (s Sign) Norm() Sign { return Sign(((int(s) % 12) + 12) % 12) }

// Lord returns the classical sign ruler.
func (s Sign) Lord() Planet {
	return signLords[s.Norm()]
}

var signLords = [12]Planet{
	Mars, Venus, Mercury, Moon, Sun, Mercury,
	Venus, Mars, Jupiter, Saturn, Saturn, Jupiter,
}

// Movable/Fixed/Dual classification used by several varga and dasha rules.
func (s Sign) Movable() bool { return int(s.Norm())%3 == 0 }
func (s Sign) Fixed() bool   { return int(s.Norm())%3 == 1 }
func (s Sign) Dual() bool    { return int(s.Norm())%3 == 2 }

// Odd reports male/odd signs (Aries, Gemini, ...).
func (s Sign) Odd() bool { return int(s.Norm())%2 == 0 }

// NakshatraRef carries the lunar-mansion placement of a position.
type NakshatraRef struct {
	Index int    `json:"index"` // 1..27 (or 1..28 in Abhijit mode)
	Name  string `json:"name"`
	Pada  int    `json:"pada"` // 1..4
	Lord  Planet `json:"-"`
}

// PlanetPosition is a fully resolved sidereal placement at one instant.
type PlanetPosition struct {
	Planet      Planet
	Longitude   float64 // sidereal, [0,360)
	Latitude    float64 // ecliptic latitude, degrees
	Speed       float64 // degrees/day, negative when retrograde
	Declination float64 // degrees
	Retrograde  bool
	Sign        Sign
	House       int     // 1..12, whole-sign from the ascendant
	Degree      float64 // degree within sign, [0,30)
	Nakshatra   NakshatraRef
}

// BirthChart is the aggregate root every derived view hangs off.
// It is immutable after construction.
type BirthChart struct {
	JD        float64 // birth instant, Julian Day UT
	Latitude  float64
	Longitude float64
	Ascendant float64     // sidereal longitude of the lagna
	Cusps     [12]float64 // whole-sign cusps: sign boundaries from the lagna sign
	Planets   map[Planet]PlanetPosition
	Ayanamsa  float64
}

// AscSign returns the lagna sign.
func (c *BirthChart) AscSign() Sign { return Sign(int(c.Ascendant/30)) % 12 }

// HouseOf maps a sign to its whole-sign house for this chart.
func (c *BirthChart) HouseOf(s Sign) int {
	return ((int(s)-int(c.AscSign()))%12+12)%12 + 1
}

// HouseOfPlanet is the whole-sign house a graha occupies, 0 when absent.
// Positions built without house numbers fall back to the sign.
func (c *BirthChart) HouseOfPlanet(p Planet) int {
	pos, ok := c.Planets[p]
	if !ok {
		return 0
	}
	if pos.House != 0 {
		return pos.House
	}
	return c.HouseOf(pos.Sign)
}

// HouseOfLongitude maps any sidereal longitude to its whole-sign house.
func (c *BirthChart) HouseOfLongitude(lon float64) int {
	s := Sign(int(lon/30)) % 12
	return c.HouseOf(s)
}

// SignOfHouse is the inverse of HouseOf.
func (c *BirthChart) SignOfHouse(house int) Sign {
	return Sign((int(c.AscSign()) + house - 1) % 12)
}

// HouseLord returns the ruler of the sign occupying the given house.
func (c *BirthChart) HouseLord(house int) Planet {
	return c.SignOfHouse(house).Lord()
}

// PlanetsInHouse lists the grahas occupying a whole-sign house.
func (c *BirthChart) PlanetsInHouse(house int) []Planet {
	var out []Planet
	for _, p := range AllPlanets() {
		if pos, ok := c.Planets[p]; ok && pos.House == house {
			out = append(out, p)
		}
	}
	return out
}

// DivisionalChart is a varga (D-n) derived from a BirthChart.
type DivisionalChart struct {
	N         int
	Ascendant Sign
	Signs     map[Planet]Sign
}
