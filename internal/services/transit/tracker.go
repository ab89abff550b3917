package transit

import (
	"context"
	"math"
	"sort"

	"Jyotish/internal/domain/models"
	domsvc "Jyotish/internal/domain/service"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/internal/services/strength"
	"Jyotish/pkg/util"
)

// Config bounds a scan and sets the orb convention.
type Config struct {
	FastOrbDeg float64 // aspects by Sun..Venus
	SlowOrbDeg float64 // aspects by Jupiter, Saturn, Rahu, Ketu
	MaxDays    float64 // scan budget; larger ranges are rejected
}

func DefaultConfig() Config {
	return Config{FastOrbDeg: 1, SlowOrbDeg: 3, MaxDays: 18263}
}

// Filter selects which activation kinds a scan emits. Empty means all.
type Filter map[models.ActivationKind]bool

func (f Filter) allow(k models.ActivationKind) bool {
	return len(f) == 0 || f[k]
}

// Tracker walks a JD range against a natal chart and emits the ordered
// activation stream.
type Tracker struct {
	eph domsvc.Ephemeris
	cfg Config
}

func NewTracker(eph domsvc.Ephemeris, cfg Config) *Tracker {
	return &Tracker{eph: eph, cfg: cfg}
}

var slowPlanets = map[models.Planet]bool{
	models.Jupiter: true, models.Saturn: true, models.Rahu: true, models.Ketu: true,
}

// stationCandidates are the true planets that can change direction.
var stationCandidates = []models.Planet{
	models.Mars, models.Mercury, models.Jupiter, models.Venus, models.Saturn,
}

const (
	stepDays       = 1.0
	bisectTolDays  = 1.0 / 1440 // one minute
	eclipseOrbDeg  = 18
	syzygyStepDays = 0.5
)

// Scan emits every activation in [startJD, endJD] sorted by (JD, kind
// priority, planet index). On cancellation the partial stream is returned
// with Cancelled set.
func (t *Tracker) Scan(ctx context.Context, natal *models.BirthChart, startJD, endJD float64, f Filter) (models.ScanResult, error) {
	if endJD < startJD {
		startJD, endJD = endJD, startJD
	}
	if endJD-startJD > t.cfg.MaxDays {
		return models.ScanResult{}, models.NewCodedError(models.CodeRangeTooLarge, "scan range exceeds budget")
	}

	points := SensitivePoints(natal)
	var acts []models.Activation
	cancelled := false

	emit := func(a models.Activation) {
		if a.JD >= startJD && a.JD <= endJD && f.allow(a.Kind) {
			acts = append(acts, a)
		}
	}

	// One pass per transiting body. Per-body state tracks sign, nakshatra,
	// speed direction and the per-point aspect deviations so crossings are
	// caught between samples and refined by bisection.
	for _, p := range models.AllPlanets() {
		select {
		case <-ctx.Done():
			cancelled = true
		default:
		}
		if cancelled {
			break
		}
		if err := t.scanBody(ctx, natal, p, points, startJD, endJD, emit, &cancelled); err != nil {
			return models.ScanResult{}, err
		}
	}
	if !cancelled {
		if err := t.scanEclipses(ctx, natal, startJD, endJD, emit, &cancelled); err != nil {
			return models.ScanResult{}, err
		}
	}

	sort.SliceStable(acts, func(i, j int) bool { return acts[i].Before(acts[j]) })
	return models.ScanResult{Activations: acts, Cancelled: cancelled}, nil
}

func (t *Tracker) orbFor(p models.Planet) float64 {
	if slowPlanets[p] {
		return t.cfg.SlowOrbDeg
	}
	return t.cfg.FastOrbDeg
}

// aspectAngles are the degree offsets at which a planet strikes a target:
// conjunction and opposition for all, plus the special Vedic aspects.
func aspectAngles(p models.Planet) []float64 {
	base := []float64{0, 180}
	switch p {
	case models.Mars:
		return append(base, 90, 210)
	case models.Jupiter:
		return append(base, 120, 240)
	case models.Saturn:
		return append(base, 60, 270)
	case models.Rahu, models.Ketu:
		return append(base, 120, 240)
	}
	return base
}

type bodyState struct {
	lon   float64
	speed float64
	sign  models.Sign
	nak   int
	// dev[pointIdx][angleIdx]: signed deviation from exact, degrees
	dev [][]float64
}

func (t *Tracker) sample(jd float64, p models.Planet, points []Point, angles []float64) (bodyState, error) {
	bp, err := t.eph.Position(jd, int(p))
	if err != nil {
		return bodyState{}, err
	}
	st := bodyState{
		lon:   bp.Longitude,
		speed: bp.Speed,
		sign:  models.Sign(int(bp.Longitude/30)) % 12,
		nak:   nakshatra.IndexAt(bp.Longitude),
		dev:   make([][]float64, len(points)),
	}
	for i, pt := range points {
		st.dev[i] = make([]float64, len(angles))
		for j, ang := range angles {
			st.dev[i][j] = util.SignedDelta(util.Norm360(pt.Longitude+ang), bp.Longitude)
		}
	}
	return st, nil
}

func (t *Tracker) scanBody(ctx context.Context, natal *models.BirthChart, p models.Planet, points []Point, startJD, endJD float64, emit func(models.Activation), cancelled *bool) error {
	angles := aspectAngles(p)
	orb := t.orbFor(p)
	canStation := false
	for _, s := range stationCandidates {
		if s == p {
			canStation = true
		}
	}

	prevJD := startJD
	prev, err := t.sample(prevJD, p, points, angles)
	if err != nil {
		return err
	}
	// Emit in-orb onsets active at range start? The stream begins clean:
	// only transitions inside the range are reported.
	for jd := startJD + stepDays; ; jd += stepDays {
		select {
		case <-ctx.Done():
			*cancelled = true
			return nil
		default:
		}
		if jd > endJD {
			jd = endJD
		}
		cur, err := t.sample(jd, p, points, angles)
		if err != nil {
			return err
		}

		if slowPlanets[p] {
			if cur.sign != prev.sign {
				cj := t.bisectSignChange(p, prevJD, jd, prev.sign)
				emit(models.Activation{
					JD: cj, Kind: models.KindIngress, Planet: p,
					Sign: cur.sign, TargetHouse: natal.HouseOf(cur.sign),
					Strength: 0.8, Impact: impactOf(p, natal.HouseOf(cur.sign)),
				})
			}
			if cur.nak != prev.nak {
				cj := t.bisectNakChange(p, prevJD, jd, prev.nak)
				emit(models.Activation{
					JD: cj, Kind: models.KindNakCross, Planet: p,
					Sign: cur.sign, Nakshatra: cur.nak + 1,
					Strength: 0.6, Impact: impactOf(p, natal.HouseOf(cur.sign)),
				})
			}
		}

		if canStation && math.Signbit(cur.speed) != math.Signbit(prev.speed) {
			sj := t.bisectStation(p, prevJD, jd, prev.speed)
			emit(models.Activation{
				JD: sj, Kind: models.KindRetroStation, Planet: p,
				Sign: cur.sign, Strength: 0.7, Impact: models.ImpactNeutral,
			})
		}

		for i := range points {
			for j := range angles {
				pd, cd := prev.dev[i][j], cur.dev[i][j]
				t.aspectPhases(natal, p, points[i], angles[j], orb, prevJD, jd, pd, cd, emit)
			}
		}

		prev, prevJD = cur, jd
		if jd >= endJD {
			break
		}
	}
	return nil
}

// aspectPhases detects orb-entry, exactness, and orb-exit between two
// samples of one (planet, point, angle) deviation track.
func (t *Tracker) aspectPhases(natal *models.BirthChart, p models.Planet, pt Point, angle, orb, jd0, jd1, d0, d1 float64, emit func(models.Activation)) {
	// Ignore sample pairs that wrap the far side of the circle.
	if math.Abs(d1-d0) > 180 {
		return
	}
	mk := func(kind models.ActivationKind, jd, gap float64) models.Activation {
		s := 1 - math.Abs(gap)/orb
		if kind == models.KindAspectPeak {
			s = 1
		}
		return models.Activation{
			JD: jd, Kind: kind, Planet: p,
			NatalTarget: pt.Label, TargetHouse: pt.House,
			Gap: gap, Strength: s, Impact: impactOf(p, pt.House),
		}
	}
	in0, in1 := math.Abs(d0) <= orb, math.Abs(d1) <= orb
	edge := func(a, b float64) float64 {
		return bisect(a, b, func(jd float64) float64 {
			return math.Abs(t.devAt(jd, p, pt, angle)) - orb
		})
	}
	if !in0 && in1 {
		emit(mk(models.KindAspectOnset, edge(jd0, jd1), signOf(d1)*orb))
	}
	if (d0 < 0 && d1 >= 0) || (d0 > 0 && d1 <= 0) {
		cj := bisect(jd0, jd1, func(jd float64) float64 {
			return t.devAt(jd, p, pt, angle)
		})
		// The Moon covers a one-degree orb in hours, so a daily step can
		// straddle the whole window. Recover the edges from the peak.
		if !in0 && !in1 {
			emit(mk(models.KindAspectOnset, edge(jd0, cj), signOf(d0)*orb))
		}
		emit(mk(models.KindAspectPeak, cj, 0))
		if !in0 && !in1 {
			emit(mk(models.KindAspectOff, edge(cj, jd1), signOf(d1)*orb))
		}
	}
	if in0 && !in1 {
		emit(mk(models.KindAspectOff, edge(jd0, jd1), signOf(d1)*orb))
	}
}

func (t *Tracker) devAt(jd float64, p models.Planet, pt Point, angle float64) float64 {
	bp, err := t.eph.Position(jd, int(p))
	if err != nil {
		return math.NaN()
	}
	return util.SignedDelta(util.Norm360(pt.Longitude+angle), bp.Longitude)
}

func (t *Tracker) bisectSignChange(p models.Planet, jd0, jd1 float64, oldSign models.Sign) float64 {
	return bisectBool(jd0, jd1, func(jd float64) bool {
		bp, err := t.eph.Position(jd, int(p))
		if err != nil {
			return false
		}
		return models.Sign(int(bp.Longitude/30))%12 != oldSign
	})
}

func (t *Tracker) bisectNakChange(p models.Planet, jd0, jd1 float64, oldNak int) float64 {
	return bisectBool(jd0, jd1, func(jd float64) bool {
		bp, err := t.eph.Position(jd, int(p))
		if err != nil {
			return false
		}
		return nakshatra.IndexAt(bp.Longitude) != oldNak
	})
}

func (t *Tracker) bisectStation(p models.Planet, jd0, jd1, speed0 float64) float64 {
	return bisectBool(jd0, jd1, func(jd float64) bool {
		bp, err := t.eph.Position(jd, int(p))
		if err != nil {
			return false
		}
		return math.Signbit(bp.Speed) != math.Signbit(speed0)
	})
}

// scanEclipses finds syzygies (new/full moons) where the Sun sits within
// the eclipse orb of the nodal axis.
func (t *Tracker) scanEclipses(ctx context.Context, natal *models.BirthChart, startJD, endJD float64, emit func(models.Activation), cancelled *bool) error {
	phase := func(jd float64) (float64, error) {
		sun, err := t.eph.Position(jd, int(models.Sun))
		if err != nil {
			return 0, err
		}
		moon, err := t.eph.Position(jd, int(models.Moon))
		if err != nil {
			return 0, err
		}
		// Distance to the nearest syzygy, signed.
		d := util.SignedDelta(sun.Longitude, moon.Longitude)
		if d > 90 {
			d -= 180
		} else if d < -90 {
			d += 180
		}
		return d, nil
	}
	prev, err := phase(startJD)
	if err != nil {
		return err
	}
	prevJD := startJD
	for jd := startJD + syzygyStepDays; ; jd += syzygyStepDays {
		select {
		case <-ctx.Done():
			*cancelled = true
			return nil
		default:
		}
		if jd > endJD {
			jd = endJD
		}
		cur, err := phase(jd)
		if err != nil {
			return err
		}
		if (prev < 0 && cur >= 0) || (prev > 0 && cur <= 0) {
			sj := bisect(prevJD, jd, func(j float64) float64 {
				v, err := phase(j)
				if err != nil {
					return math.NaN()
				}
				return v
			})
			sun, err := t.eph.Position(sj, int(models.Sun))
			if err != nil {
				return err
			}
			rahu, err := t.eph.Position(sj, int(models.Rahu))
			if err != nil {
				return err
			}
			axisDist := util.ArcDistance(sun.Longitude, rahu.Longitude)
			if axisDist > 90 {
				axisDist = 180 - axisDist
			}
			if axisDist <= eclipseOrbDeg {
				s := models.Sign(int(sun.Longitude/30)) % 12
				emit(models.Activation{
					JD: sj, Kind: models.KindEclipseNear, Planet: models.Sun,
					Sign: s, TargetHouse: natal.HouseOf(s),
					Gap: axisDist, Strength: 1 - axisDist/eclipseOrbDeg,
					Impact: models.ImpactMalefic,
				})
			}
		}
		prev, prevJD = cur, jd
		if jd >= endJD {
			break
		}
	}
	return nil
}

// impactOf derives the classical tag from the transiting planet's nature
// and the struck natal house. Malefics lose their edge in upachaya
// houses; benefics are muted in dusthanas.
func impactOf(p models.Planet, house int) models.Impact {
	upachaya := house == 3 || house == 6 || house == 10 || house == 11
	dusthana := house == 6 || house == 8 || house == 12
	if strength.NaturalBenefic(p) {
		if dusthana {
			return models.ImpactNeutral
		}
		return models.ImpactBenefic
	}
	if upachaya {
		return models.ImpactNeutral
	}
	return models.ImpactMalefic
}

func signOf(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

// bisect finds a zero crossing of f inside [a,b] to minute resolution.
func bisect(a, b float64, f func(float64) float64) float64 {
	fa := f(a)
	for b-a > bisectTolDays {
		m := (a + b) / 2
		fm := f(m)
		if math.IsNaN(fm) {
			return m
		}
		if (fa < 0) == (fm < 0) {
			a, fa = m, fm
		} else {
			b = m
		}
	}
	return (a + b) / 2
}

// bisectBool narrows on a predicate that flips once from false to true.
func bisectBool(a, b float64, flipped func(float64) bool) float64 {
	for b-a > bisectTolDays {
		m := (a + b) / 2
		if flipped(m) {
			b = m
		} else {
			a = m
		}
	}
	return (a + b) / 2
}
