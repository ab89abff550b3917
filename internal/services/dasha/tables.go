package dasha

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/nakshatra"
)

// Yogini: eight yoginis over a 36-year cycle. The starting yogini counts
// from the Moon's nakshatra plus three, modulo eight.
type yogini struct {
	name   string
	planet models.Planet
	years  float64
}

var yoginis = [8]yogini{
	{"Mangala", models.Moon, 1},
	{"Pingala", models.Sun, 2},
	{"Dhanya", models.Jupiter, 3},
	{"Bhramari", models.Mars, 4},
	{"Bhadrika", models.Mercury, 5},
	{"Ulka", models.Saturn, 6},
	{"Siddha", models.Venus, 7},
	{"Sankata", models.Rahu, 8},
}

// YoginiMahadashas returns two full 36-year cycles from birth, the first
// period truncated by balance of the birth nakshatra.
func YoginiMahadashas(birthJD, moonLon float64) []models.DashaNode {
	ref := nakshatra.Resolve(moonLon)
	// classical rule: yogini number = (nakshatra + 3) mod 8 with 1-based
	// remainders, so Ashwini begins from Bhramari; shift to the 0-based row
	start := (ref.Index + 2) % 8

	within := float64(int64(moonLon*600) % nakSpanUnits)
	remaining := 1 - within/float64(nakSpanUnits)

	out := make([]models.DashaNode, 0, 17)
	cur := birthJD
	for i := 0; i < 17; i++ {
		y := yoginis[(start+i)%8]
		years := y.years
		if i == 0 {
			years *= remaining
		}
		d := years * DaysPerYear
		out = append(out, models.DashaNode{Level: models.Maha, Planet: y.planet, StartJD: cur, EndJD: cur + d})
		cur += d
	}
	return out
}

// Shoola: sign periods of nine years each, running forward from the lagna
// sign. Used for longevity-style timing; the payload reports the sign lord.
func ShoolaPeriods(birthJD float64, lagna models.Sign) []models.SignPeriod {
	out := make([]models.SignPeriod, 0, 12)
	cur := birthJD
	for i := 0; i < 12; i++ {
		s := (lagna + models.Sign(i)).Norm()
		d := 9 * DaysPerYear
		out = append(out, models.SignPeriod{Sign: s, Lord: s.Lord(), StartJD: cur, EndJD: cur + d})
		cur += d
	}
	return out
}

// Sudarshana: the annual house clock, one year per sign from the lagna,
// repeating. Returns enough cycles to cover 120 years.
func SudarshanaPeriods(birthJD float64, lagna models.Sign) []models.SignPeriod {
	out := make([]models.SignPeriod, 0, 120)
	cur := birthJD
	for i := 0; i < 120; i++ {
		s := (lagna + models.Sign(i)).Norm()
		d := DaysPerYear
		out = append(out, models.SignPeriod{Sign: s, Lord: s.Lord(), StartJD: cur, EndJD: cur + d})
		cur += d
	}
	return out
}
