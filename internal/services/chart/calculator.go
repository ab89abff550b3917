package chart

import (
	"fmt"

	"Jyotish/internal/domain/models"
	domsvc "Jyotish/internal/domain/service"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/internal/services/timeloc"
)

// Calculator turns a birth instant and location into the canonical
// BirthChart every derived view consumes.
type Calculator struct {
	eph domsvc.Ephemeris
	tl  *timeloc.Service
}

func NewCalculator(eph domsvc.Ephemeris, tl *timeloc.Service) *Calculator {
	return &Calculator{eph: eph, tl: tl}
}

// Chart resolves a BirthSpec end to end.
func (c *Calculator) Chart(spec models.BirthSpec) (*models.BirthChart, error) {
	jd, _, err := c.tl.BirthJD(spec)
	if err != nil {
		return nil, err
	}
	return c.ChartAt(jd, spec.Latitude, spec.Longitude)
}

// ChartAt builds the chart for an arbitrary instant, also used for transit
// and prashna (question-time) charts.
func (c *Calculator) ChartAt(jd, lat, lon float64) (*models.BirthChart, error) {
	asc, err := c.eph.Ascendant(jd, lat, lon)
	if err != nil {
		return nil, err
	}
	ch := &models.BirthChart{
		JD:        jd,
		Latitude:  lat,
		Longitude: lon,
		Ascendant: asc,
		Planets:   make(map[models.Planet]models.PlanetPosition, 9),
		Ayanamsa:  c.eph.Ayanamsa(jd),
	}
	ascSign := ch.AscSign()
	for i := 0; i < 12; i++ {
		ch.Cusps[i] = float64((int(ascSign)+i)%12) * 30
	}
	for _, p := range models.AllPlanets() {
		bp, err := c.eph.Position(jd, int(p))
		if err != nil {
			return nil, fmt.Errorf("chart: %s: %w", p, err)
		}
		sign := models.Sign(int(bp.Longitude / 30)).Norm()
		ch.Planets[p] = models.PlanetPosition{
			Planet:      p,
			Longitude:   bp.Longitude,
			Latitude:    bp.Latitude,
			Speed:       bp.Speed,
			Declination: bp.Declination,
			Retrograde:  bp.Retrograde,
			Sign:        sign,
			House:       ((int(sign)-int(ascSign))%12+12)%12 + 1,
			Degree:      bp.Longitude - float64(int(sign))*30,
			Nakshatra:   nakshatra.Resolve(bp.Longitude),
		}
	}
	return ch, nil
}
