package varga

import (
	"fmt"
	"math"

	"Jyotish/internal/domain/models"
	"Jyotish/pkg/util"
)

// Divisors the calculator supports. D2 is included because the
// Saptavargaja strength looks at the Hora chart.
var Divisors = []int{1, 2, 3, 4, 7, 9, 10, 12, 16, 20, 24, 27, 30, 40, 45, 60}

// Supported reports whether n is a known varga divisor.
func Supported(n int) bool {
	for _, d := range Divisors {
		if d == n {
			return true
		}
	}
	return false
}

// SignIn returns the varga sign a sidereal longitude maps to in D-n.
// Each classical varga has its own starting-sign rule; D2 and D30 do not
// follow the generic equal-part scheme.
func SignIn(lon float64, n int) (models.Sign, error) {
	lon = util.Norm360(lon)
	sign := models.Sign(int(lon / 30)).Norm()
	deg := lon - float64(int(sign))*30
	part := int(deg / (30 / float64(n)))
	if part >= n {
		part = n - 1
	}

	switch n {
	case 1:
		return sign, nil
	case 2: // Hora: halves belong to the Sun (Leo) and Moon (Cancer)
		if sign.Odd() {
			if part == 0 {
				return models.Leo, nil
			}
			return models.Cancer, nil
		}
		if part == 0 {
			return models.Cancer, nil
		}
		return models.Leo, nil
	case 3: // Drekkana: self, 5th, 9th
		return (sign + models.Sign(4*part)).Norm(), nil
	case 4: // Chaturthamsa: self, 4th, 7th, 10th
		return (sign + models.Sign(3*part)).Norm(), nil
	case 7: // Saptamsa: odd from self, even from the 7th
		start := sign
		if !sign.Odd() {
			start = (sign + 6).Norm()
		}
		return (start + models.Sign(part)).Norm(), nil
	case 9: // Navamsa: fiery from Aries, earthy from Capricorn, airy from Libra, watery from Cancer
		start := models.Sign((int(sign) % 4) * 9).Norm()
		return (start + models.Sign(part)).Norm(), nil
	case 10: // Dasamsa: odd from self, even from the 9th
		start := sign
		if !sign.Odd() {
			start = (sign + 8).Norm()
		}
		return (start + models.Sign(part)).Norm(), nil
	case 12: // Dwadasamsa: from self
		return (sign + models.Sign(part)).Norm(), nil
	case 16: // Shodasamsa: movable Aries, fixed Leo, dual Sagittarius
		return (mfdStart(sign, models.Aries, models.Leo, models.Sagittarius) + models.Sign(part)).Norm(), nil
	case 20: // Vimsamsa: movable Aries, fixed Sagittarius, dual Leo
		return (mfdStart(sign, models.Aries, models.Sagittarius, models.Leo) + models.Sign(part)).Norm(), nil
	case 24: // Chaturvimsamsa: odd from Leo, even from Cancer
		start := models.Leo
		if !sign.Odd() {
			start = models.Cancer
		}
		return (start + models.Sign(part)).Norm(), nil
	case 27: // Bhamsa: fiery Aries, earthy Cancer, airy Libra, watery Capricorn
		start := models.Sign((int(sign) % 4) * 3).Norm()
		return (start + models.Sign(part)).Norm(), nil
	case 30:
		return trimsamsa(sign, deg), nil
	case 40: // Khavedamsa: odd from Aries, even from Libra
		start := models.Aries
		if !sign.Odd() {
			start = models.Libra
		}
		return (start + models.Sign(part)).Norm(), nil
	case 45: // Akshavedamsa: movable Aries, fixed Leo, dual Sagittarius
		return (mfdStart(sign, models.Aries, models.Leo, models.Sagittarius) + models.Sign(part)).Norm(), nil
	case 60: // Shashtiamsa: from self
		return (sign + models.Sign(part)).Norm(), nil
	}
	return 0, fmt.Errorf("varga: unsupported divisor D%d", n)
}

func mfdStart(s models.Sign, movable, fixed, dual models.Sign) models.Sign {
	switch {
	case s.Movable():
		return movable
	case s.Fixed():
		return fixed
	default:
		return dual
	}
}

// trimsamsa implements the unequal classical D30 bands. Odd signs run
// Mars 5°, Saturn 5°, Jupiter 8°, Mercury 7°, Venus 5°; even signs reverse.
func trimsamsa(sign models.Sign, deg float64) models.Sign {
	odd := sign.Odd()
	type band struct {
		width float64
		sign  models.Sign
	}
	oddBands := []band{
		{5, models.Aries}, {5, models.Aquarius}, {8, models.Sagittarius}, {7, models.Gemini}, {5, models.Libra},
	}
	evenBands := []band{
		{5, models.Taurus}, {7, models.Virgo}, {8, models.Pisces}, {5, models.Capricorn}, {5, models.Scorpio},
	}
	bands := oddBands
	if !odd {
		bands = evenBands
	}
	acc := 0.0
	for _, b := range bands {
		acc += b.width
		if deg < acc {
			return b.sign
		}
	}
	return bands[len(bands)-1].sign
}

// Divisional derives the whole D-n chart from the natal chart. Each varga is
// independent: only the D1 longitudes feed it.
func Divisional(c *models.BirthChart, n int) (*models.DivisionalChart, error) {
	if !Supported(n) {
		return nil, fmt.Errorf("varga: unsupported divisor D%d", n)
	}
	asc, err := SignIn(c.Ascendant, n)
	if err != nil {
		return nil, err
	}
	dc := &models.DivisionalChart{N: n, Ascendant: asc, Signs: make(map[models.Planet]models.Sign, len(c.Planets))}
	for p, pos := range c.Planets {
		s, err := SignIn(pos.Longitude, n)
		if err != nil {
			return nil, err
		}
		dc.Signs[p] = s
	}
	return dc, nil
}

// Vargottama reports planets occupying the same sign in D1 and D9.
func Vargottama(c *models.BirthChart) []models.Planet {
	var out []models.Planet
	for _, p := range models.AllPlanets() {
		pos, ok := c.Planets[p]
		if !ok {
			continue
		}
		d9, err := SignIn(pos.Longitude, 9)
		if err == nil && d9 == pos.Sign {
			out = append(out, p)
		}
	}
	return out
}

// D60Deity names the Shashtiamsa deity for a longitude. Even signs count the
// sixty names in reverse, per the classical rule.
func D60Deity(lon float64) string {
	lon = util.Norm360(lon)
	sign := models.Sign(int(lon / 30)).Norm()
	deg := lon - float64(int(sign))*30
	part := int(math.Floor(deg * 2))
	if part > 59 {
		part = 59
	}
	if !sign.Odd() {
		part = 59 - part
	}
	return d60Names[part]
}

var d60Names = [60]string{
	"Ghora", "Rakshasa", "Deva", "Kubera", "Yaksha", "Kinnara", "Bhrashta", "Kulaghna", "Garala", "Vahni",
	"Maya", "Purishaka", "Apampathi", "Marut", "Kaala", "Sarpa", "Amrita", "Indu", "Mridu", "Komala",
	"Heramba", "Brahma", "Vishnu", "Maheshwara", "Deva", "Ardra", "Kalinasa", "Kshiteesa", "Kamalakara", "Gulika",
	"Mrityu", "Kaala", "Davagni", "Ghora", "Yama", "Kantaka", "Sudha", "Amrita", "Poornachandra", "Vishadagdha",
	"Kulanasa", "Vamshakshaya", "Utpata", "Kaala", "Saumya", "Komala", "Sheetala", "Karaladamshtra", "Chandramukhi", "Praveena",
	"Kaalapavaka", "Dandayudha", "Nirmala", "Saumya", "Kroora", "Atisheetala", "Amrita", "Payodhi", "Bhramana", "Chandrarekha",
}
