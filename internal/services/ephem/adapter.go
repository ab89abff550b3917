package ephem

import (
	"fmt"
	"math"

	"Jyotish/internal/domain/models"
	domsvc "Jyotish/internal/domain/service"
	"Jyotish/pkg/util"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	pp "github.com/soniakeys/meeus/v3/planetposition"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"
)

// Sentinel errors; callers match with errors.Is.
var (
	ErrEphemerisRange     = models.NewCodedError(models.CodeEphemerisRange, "date outside ephemeris range")
	ErrAscendantUndefined = models.NewCodedError(models.CodeAscendantUndefined, "ascendant undefined at this latitude")
	ErrUnknownBody        = fmt.Errorf("ephem: unknown body")
)

// Lahiri anchor: ayanamsa 23.85675° at J2000, advancing at the general
// precession rate. Fixed for the life of the process.
const (
	lahiriJ2000   = 23.85675
	precessionSec = 50.2388475 // arcsec per solar year
	daysPerYear   = 365.242199
	j2000         = 2451545.0
)

// Config bounds the adapter. Dates outside [MinYear, MaxYear] return
// ErrEphemerisRange rather than an extrapolated answer.
type Config struct {
	MinYear int
	MaxYear int
	// AyanamsaJ2000 overrides the J2000 epoch offset in degrees.
	// Zero selects the Lahiri value.
	AyanamsaJ2000 float64
}

// Adapter is the single gateway to astronomical positions. One instance per
// process; the ayanamsa convention is fixed at construction and there is no
// setter, per the process-wide sidereal frame rule.
type Adapter struct {
	cfg     Config
	planets map[models.Planet]*pp.V87Planet
	earth   *pp.V87Planet
}

// New loads the VSOP87 series for the five visible planets plus Earth.
// Missing ephemeris data is a configuration error and aborts initialization.
func New(cfg Config) (*Adapter, error) {
	if cfg.MinYear == 0 {
		cfg.MinYear = 1800
	}
	if cfg.MaxYear == 0 {
		cfg.MaxYear = 2200
	}
	if cfg.AyanamsaJ2000 == 0 {
		cfg.AyanamsaJ2000 = lahiriJ2000
	}
	a := &Adapter{cfg: cfg, planets: make(map[models.Planet]*pp.V87Planet)}

	load := func(ib int) (*pp.V87Planet, error) {
		v, err := pp.LoadPlanet(ib)
		if err != nil {
			return nil, fmt.Errorf("ephem: load VSOP87 series %d: %w", ib, err)
		}
		return v, nil
	}
	var err error
	if a.earth, err = load(pp.Earth); err != nil {
		return nil, err
	}
	for p, ib := range map[models.Planet]int{
		models.Mars:    pp.Mars,
		models.Mercury: pp.Mercury,
		models.Jupiter: pp.Jupiter,
		models.Venus:   pp.Venus,
		models.Saturn:  pp.Saturn,
	} {
		if a.planets[p], err = load(ib); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Ayanamsa returns the sidereal offset in degrees at a Julian Day UT.
// The convention defaults to Lahiri and is fixed at construction.
func (a *Adapter) Ayanamsa(jdUT float64) float64 {
	return a.cfg.AyanamsaJ2000 + (jdUT-j2000)/daysPerYear*(precessionSec/3600)
}

// Position implements service.Ephemeris.
func (a *Adapter) Position(jdUT float64, body int) (domsvc.BodyPosition, error) {
	if err := a.checkRange(jdUT); err != nil {
		return domsvc.BodyPosition{}, err
	}
	p := models.Planet(body)
	if !p.Valid() {
		return domsvc.BodyPosition{}, ErrUnknownBody
	}

	// Central difference over half a day gives arc-second-stable speeds for
	// every body including the Moon.
	const h = 0.25
	l0, _, err := a.tropical(jdUT-h, p)
	if err != nil {
		return domsvc.BodyPosition{}, err
	}
	l1, b1, err := a.tropical(jdUT, p)
	if err != nil {
		return domsvc.BodyPosition{}, err
	}
	l2, _, err := a.tropical(jdUT+h, p)
	if err != nil {
		return domsvc.BodyPosition{}, err
	}
	speed := util.SignedDelta(l2, l0) / (2 * h)

	ayan := a.Ayanamsa(jdUT)
	jde := jdUT + deltaTDays(jdUT)
	eps := nutation.MeanObliquity(jde).Deg()
	decl := declination(l1, b1, eps)

	return domsvc.BodyPosition{
		Longitude:   util.Norm360(l1 - ayan),
		Latitude:    b1,
		Speed:       speed,
		Declination: decl,
		Retrograde:  speed < 0,
	}, nil
}

// Ascendant implements service.Ephemeris. The tropical ascendant comes from
// the standard horizon formula on the local apparent sidereal time; the
// sidereal value subtracts the ayanamsa.
func (a *Adapter) Ascendant(jdUT, lat, lon float64) (float64, error) {
	if err := a.checkRange(jdUT); err != nil {
		return 0, err
	}
	if math.Abs(lat) >= 89.9 {
		return 0, ErrAscendantUndefined
	}
	jde := jdUT + deltaTDays(jdUT)
	gst := sidereal.Apparent(jdUT).Sec() / 240 // seconds of time -> degrees
	ramc := util.Norm360(gst + lon)
	eps := util.Deg2Rad(nutation.MeanObliquity(jde).Deg())
	phi := util.Deg2Rad(lat)
	th := util.Deg2Rad(ramc)

	y := math.Cos(th)
	x := -(math.Sin(th)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps))
	asc := util.Rad2Deg(math.Atan2(y, x))
	if math.IsNaN(asc) || math.IsInf(asc, 0) {
		return 0, ErrAscendantUndefined
	}
	return util.Norm360(asc - a.Ayanamsa(jdUT)), nil
}

// tropical returns the geocentric apparent tropical longitude and ecliptic
// latitude of a body.
func (a *Adapter) tropical(jdUT float64, p models.Planet) (lon, lat float64, err error) {
	jde := jdUT + deltaTDays(jdUT)
	switch p {
	case models.Sun:
		lam := solar.ApparentLongitude(base.J2000Century(jde))
		return util.Norm360(lam.Deg()), 0, nil
	case models.Moon:
		lam, beta, _ := moonposition.Position(jde)
		return util.Norm360(lam.Deg()), beta.Deg(), nil
	case models.Rahu:
		return meanNode(jde), 0, nil
	case models.Ketu:
		return util.Norm360(meanNode(jde) + 180), 0, nil
	default:
		v, ok := a.planets[p]
		if !ok {
			return 0, 0, ErrUnknownBody
		}
		return a.geocentric(v, jde)
	}
}

// geocentric converts VSOP87 heliocentric coordinates of a planet to
// geocentric ecliptic longitude/latitude by vector subtraction of Earth.
func (a *Adapter) geocentric(v *pp.V87Planet, jde float64) (lon, lat float64, err error) {
	l, b, r := v.Position(jde)
	l0, b0, r0 := a.earth.Position(jde)

	x := r*math.Cos(b.Rad())*math.Cos(l.Rad()) - r0*math.Cos(b0.Rad())*math.Cos(l0.Rad())
	y := r*math.Cos(b.Rad())*math.Sin(l.Rad()) - r0*math.Cos(b0.Rad())*math.Sin(l0.Rad())
	z := r*math.Sin(b.Rad()) - r0*math.Sin(b0.Rad())

	lon = util.Norm360(util.Rad2Deg(math.Atan2(y, x)))
	lat = util.Rad2Deg(math.Atan2(z, math.Hypot(x, y)))
	return lon, lat, nil
}

// meanNode returns the tropical longitude of the mean ascending lunar node.
func meanNode(jde float64) float64 {
	t := base.J2000Century(jde)
	om := 125.0445479 - 1934.1362891*t + 0.0020754*t*t + t*t*t/467441 - t*t*t*t/60616000
	return util.Norm360(om)
}

// declination from ecliptic coordinates and the obliquity, degrees in/out.
func declination(lonTrop, lat, eps float64) float64 {
	lr, br, er := util.Deg2Rad(lonTrop), util.Deg2Rad(lat), util.Deg2Rad(eps)
	return util.Rad2Deg(math.Asin(math.Sin(br)*math.Cos(er) + math.Cos(br)*math.Sin(er)*math.Sin(lr)))
}

// deltaTDays estimates TT-UT in days. The piecewise polynomials follow the
// Espenak/Meeus fits; sub-second accuracy is not needed at arc-minute output
// precision.
func deltaTDays(jdUT float64) float64 {
	y := 2000 + (jdUT-j2000)/daysPerYear
	var dt float64 // seconds
	switch {
	case y < 1900:
		t := y - 1860
		dt = 7.62 + 0.5737*t - 0.251754*t*t + 0.01680668*t*t*t
	case y < 1986:
		t := y - 1920
		dt = 21.20 + 0.84493*t - 0.076100*t*t + 0.0020936*t*t*t
	case y < 2005:
		t := y - 2000
		dt = 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t
	case y < 2050:
		t := y - 2000
		dt = 62.92 + 0.32217*t + 0.005589*t*t
	default:
		dt = -20 + 32*((y-1820)/100)*((y-1820)/100)
	}
	return dt / 86400
}

func (a *Adapter) checkRange(jdUT float64) error {
	y := 2000 + (jdUT-j2000)/daysPerYear
	if y < float64(a.cfg.MinYear) || y > float64(a.cfg.MaxYear) {
		return ErrEphemerisRange
	}
	return nil
}

var _ domsvc.Ephemeris = (*Adapter)(nil)
