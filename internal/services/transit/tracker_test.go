package transit

import (
	"context"
	"errors"
	"math"
	"testing"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/domain/service"
	"Jyotish/pkg/util"
)

const epoch = 2451545.0

// fakeEph moves each body linearly, with an optional constant acceleration
// so stations can be staged.
type fakeEph struct {
	base  [9]float64
	speed [9]float64
	accel [9]float64
}

func (f *fakeEph) Position(jd float64, body int) (service.BodyPosition, error) {
	dt := jd - epoch
	sp := f.speed[body] + f.accel[body]*dt
	lon := util.Norm360(f.base[body] + f.speed[body]*dt + 0.5*f.accel[body]*dt*dt)
	return service.BodyPosition{Longitude: lon, Speed: sp, Retrograde: sp < 0}, nil
}

func (f *fakeEph) Ayanamsa(float64) float64 { return 24 }

func (f *fakeEph) Ascendant(jd, lat, lon float64) (float64, error) { return 0, nil }

// parked spreads the bodies away from every natal target so only the body
// under test produces events.
func parked() *fakeEph {
	return &fakeEph{
		base: [9]float64{140, 140, 140, 140, 150, 140, 50, 66, 30},
	}
}

func natalChart() *models.BirthChart {
	// a single natal Sun keeps the sensitive-point set small: the Sun at
	// 100, its Mrityu Bhaga degree at 96 (Cancer row), and the lagna at 0
	return &models.BirthChart{
		Ascendant: 0,
		Planets: map[models.Planet]models.PlanetPosition{
			models.Sun: {Planet: models.Sun, Longitude: 100, Sign: models.Cancer, House: 4},
		},
	}
}

func TestScanAspectPhases(t *testing.T) {
	eph := parked()
	eph.base[int(models.Mars)] = 90
	eph.speed[int(models.Mars)] = 1

	tr := NewTracker(eph, DefaultConfig())
	res, err := tr.Scan(context.Background(), natalChart(), epoch, epoch+15, nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Cancelled {
		t.Fatal("uncancelled scan reported cancelled")
	}

	var peaks []models.Activation
	for _, a := range res.Activations {
		if a.Kind == models.KindAspectPeak {
			peaks = append(peaks, a)
		}
	}
	if len(peaks) != 2 {
		t.Fatalf("peaks = %d, want 2 (Mrityu Bhaga then Sun)", len(peaks))
	}
	if peaks[0].NatalTarget != "MrityuBhaga:Sun" || math.Abs(peaks[0].JD-(epoch+6)) > 0.01 {
		t.Fatalf("first peak %+v, want MrityuBhaga:Sun near +6d", peaks[0])
	}
	if peaks[1].NatalTarget != "Sun" || math.Abs(peaks[1].JD-(epoch+10)) > 0.01 {
		t.Fatalf("second peak %+v, want Sun near +10d", peaks[1])
	}
	if peaks[0].Strength != 1 {
		t.Fatalf("peak strength = %v, want 1", peaks[0].Strength)
	}

	for i := 1; i < len(res.Activations); i++ {
		if res.Activations[i].Before(res.Activations[i-1]) {
			t.Fatalf("stream out of order at %d", i)
		}
	}
	// each peak is bracketed by its onset and release
	var onsets, offs int
	for _, a := range res.Activations {
		switch a.Kind {
		case models.KindAspectOnset:
			onsets++
			if a.Strength != 0 {
				t.Fatalf("onset strength = %v, want 0 at the orb edge", a.Strength)
			}
		case models.KindAspectOff:
			offs++
		}
	}
	if onsets != 2 {
		t.Fatalf("onsets = %d, want 2", onsets)
	}
	if offs < 2 {
		t.Fatalf("offs = %d, want at least 2", offs)
	}
}

func TestScanFastBodyOrbEdges(t *testing.T) {
	// at lunar speed the whole one-degree orb window fits between two
	// daily samples; every peak must still carry its onset and release
	eph := parked()
	eph.base[int(models.Moon)] = 90
	eph.speed[int(models.Moon)] = 13.18

	tr := NewTracker(eph, DefaultConfig())
	res, err := tr.Scan(context.Background(), natalChart(), epoch, epoch+2, nil)
	if err != nil {
		t.Fatal(err)
	}

	counts := map[models.ActivationKind]int{}
	for _, a := range res.Activations {
		if a.Planet == models.Moon {
			counts[a.Kind]++
		}
	}
	// the Moon crosses the Mrityu Bhaga degree and the natal Sun
	if counts[models.KindAspectPeak] != 2 {
		t.Fatalf("peaks = %d, want 2", counts[models.KindAspectPeak])
	}
	if counts[models.KindAspectOnset] != 2 || counts[models.KindAspectOff] != 2 {
		t.Fatalf("onsets = %d offs = %d, want 2 each",
			counts[models.KindAspectOnset], counts[models.KindAspectOff])
	}

	// each bracket stays ordered onset < peak < off around the same target
	var sun []models.Activation
	for _, a := range res.Activations {
		if a.Planet == models.Moon && a.NatalTarget == "Sun" {
			sun = append(sun, a)
		}
	}
	if len(sun) != 3 || sun[0].Kind != models.KindAspectOnset ||
		sun[1].Kind != models.KindAspectPeak || sun[2].Kind != models.KindAspectOff {
		t.Fatalf("Sun bracket = %+v, want onset/peak/off", sun)
	}
	if sun[2].JD-sun[0].JD > 0.5 {
		t.Fatalf("orb window spans %v days, want a few hours", sun[2].JD-sun[0].JD)
	}
}

func TestScanFilter(t *testing.T) {
	eph := parked()
	eph.base[int(models.Mars)] = 90
	eph.speed[int(models.Mars)] = 1

	tr := NewTracker(eph, DefaultConfig())
	res, err := tr.Scan(context.Background(), natalChart(), epoch, epoch+15,
		Filter{models.KindAspectPeak: true})
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range res.Activations {
		if a.Kind != models.KindAspectPeak {
			t.Fatalf("filter leaked %v", a.Kind)
		}
	}
	if len(res.Activations) != 2 {
		t.Fatalf("filtered = %d, want 2", len(res.Activations))
	}
}

func TestScanIngressAndNakCross(t *testing.T) {
	eph := parked()
	eph.base[int(models.Jupiter)] = 89
	eph.speed[int(models.Jupiter)] = 0.5

	tr := NewTracker(eph, DefaultConfig())
	res, err := tr.Scan(context.Background(), natalChart(), epoch, epoch+12,
		Filter{models.KindIngress: true, models.KindNakCross: true})
	if err != nil {
		t.Fatal(err)
	}
	var ing, nak *models.Activation
	for i := range res.Activations {
		switch res.Activations[i].Kind {
		case models.KindIngress:
			ing = &res.Activations[i]
		case models.KindNakCross:
			nak = &res.Activations[i]
		}
	}
	if ing == nil {
		t.Fatal("Cancer ingress not found")
	}
	if ing.Sign != models.Cancer || math.Abs(ing.JD-(epoch+2)) > 0.01 {
		t.Fatalf("ingress %+v, want Cancer near +2d", ing)
	}
	if nak == nil {
		t.Fatal("nakshatra crossing not found")
	}
	if nak.Nakshatra != 8 {
		t.Fatalf("crossed into nakshatra %d, want 8 (Pushya)", nak.Nakshatra)
	}
}

func TestScanStation(t *testing.T) {
	eph := parked()
	eph.speed[int(models.Mercury)] = -1
	eph.accel[int(models.Mercury)] = 0.2 // direct again five days in

	tr := NewTracker(eph, DefaultConfig())
	res, err := tr.Scan(context.Background(), natalChart(), epoch, epoch+10,
		Filter{models.KindRetroStation: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Activations) != 1 {
		t.Fatalf("stations = %d, want 1", len(res.Activations))
	}
	st := res.Activations[0]
	if st.Planet != models.Mercury || math.Abs(st.JD-(epoch+5)) > 0.01 {
		t.Fatalf("station %+v, want Mercury near +5d", st)
	}
}

func TestScanRangeBudget(t *testing.T) {
	tr := NewTracker(parked(), Config{FastOrbDeg: 1, SlowOrbDeg: 3, MaxDays: 100})
	_, err := tr.Scan(context.Background(), natalChart(), epoch, epoch+101, nil)
	var coded *models.CodedError
	if !errors.As(err, &coded) || coded.Code != models.CodeRangeTooLarge {
		t.Fatalf("err = %v, want %s", err, models.CodeRangeTooLarge)
	}
}

func TestScanReversedRange(t *testing.T) {
	eph := parked()
	eph.base[int(models.Mars)] = 90
	eph.speed[int(models.Mars)] = 1
	tr := NewTracker(eph, DefaultConfig())
	res, err := tr.Scan(context.Background(), natalChart(), epoch+15, epoch, Filter{models.KindAspectPeak: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Activations) != 2 {
		t.Fatalf("reversed range peaks = %d, want 2", len(res.Activations))
	}
}

func TestScanCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	tr := NewTracker(parked(), DefaultConfig())
	res, err := tr.Scan(ctx, natalChart(), epoch, epoch+30, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Cancelled {
		t.Fatal("cancelled scan must report Cancelled")
	}
}

func TestBhriguBindu(t *testing.T) {
	c := &models.BirthChart{
		Planets: map[models.Planet]models.PlanetPosition{
			models.Moon: {Planet: models.Moon, Longitude: 160},
			models.Rahu: {Planet: models.Rahu, Longitude: 100},
		},
	}
	bb, ok := BhriguBindu(c)
	if !ok || bb != 130 {
		t.Fatalf("bindu = %v %v, want 130", bb, ok)
	}
	// the midpoint follows the shorter arc across 0
	c.Planets[models.Moon] = models.PlanetPosition{Planet: models.Moon, Longitude: 20}
	c.Planets[models.Rahu] = models.PlanetPosition{Planet: models.Rahu, Longitude: 340}
	bb, _ = BhriguBindu(c)
	if bb != 0 {
		t.Fatalf("bindu = %v, want 0", bb)
	}
	if _, ok := BhriguBindu(&models.BirthChart{Planets: map[models.Planet]models.PlanetPosition{}}); ok {
		t.Fatal("missing nodes cannot form a bindu")
	}
}

func TestMrityuBhagaLongitude(t *testing.T) {
	mb, ok := MrityuBhagaLongitude(models.Sun, models.Cancer)
	if !ok || mb != 96 {
		t.Fatalf("Sun in Cancer = %v, want 96", mb)
	}
	if _, ok := MrityuBhagaLongitude(models.Planet(42), models.Aries); ok {
		t.Fatal("unknown body has no row")
	}
}

func TestSensitivePoints(t *testing.T) {
	pts := SensitivePoints(natalChart())
	// natal Sun, its Mrityu Bhaga, and the lagna
	if len(pts) != 3 {
		t.Fatalf("points = %d, want 3", len(pts))
	}
	labels := map[string]bool{}
	for _, p := range pts {
		labels[p.Label] = true
	}
	for _, want := range []string{"Sun", "MrityuBhaga:Sun", "Lagna"} {
		if !labels[want] {
			t.Fatalf("missing point %q", want)
		}
	}
}
