package dasha

import (
	"math"
	"testing"

	"Jyotish/internal/domain/models"
)

func TestYoginiCycleLength(t *testing.T) {
	mds := YoginiMahadashas(birthJD, 0)
	if len(mds) != 17 {
		t.Fatalf("periods = %d, want 17", len(mds))
	}
	// Moon at 0°: Ashwini (1), yogini number (1+3) mod 8 = 4 => Bhramari (Mars)
	if mds[0].Planet != models.Mars {
		t.Fatalf("first yogini planet = %v, want Mars", mds[0].Planet)
	}
	for i := 1; i < len(mds); i++ {
		if mds[i].StartJD != mds[i-1].EndJD {
			t.Fatalf("gap at %d", i)
		}
	}
	// zero elapsed arc: first full period, so 16 periods = two 36-year cycles
	// plus the repeated start
	total := (mds[16].EndJD - mds[0].StartJD) / DaysPerYear
	want := 36.0*2 + 4 // 4 = Bhramari repeated at index 16
	if math.Abs(total-want) > 1e-6 {
		t.Fatalf("total years = %v, want %v", total, want)
	}
}

func TestYoginiWrapsToSankata(t *testing.T) {
	// Mrigashira (5): yogini number (5+3) mod 8 = 8 => Sankata (Rahu)
	mds := YoginiMahadashas(birthJD, 4*360.0/27+1)
	if mds[0].Planet != models.Rahu {
		t.Fatalf("first yogini planet = %v, want Rahu", mds[0].Planet)
	}
}

func TestShoolaPeriods(t *testing.T) {
	ps := ShoolaPeriods(birthJD, models.Leo)
	if len(ps) != 12 {
		t.Fatalf("periods = %d, want 12", len(ps))
	}
	if ps[0].Sign != models.Leo || ps[1].Sign != models.Virgo {
		t.Fatal("Shoola runs forward from the lagna")
	}
	if got := ps[0].EndJD - ps[0].StartJD; math.Abs(got-9*DaysPerYear) > 1e-9 {
		t.Fatalf("period length = %v days, want 9 years", got)
	}
	if ps[0].Lord != models.Sun {
		t.Fatalf("Leo lord = %v, want Sun", ps[0].Lord)
	}
}

func TestSudarshanaAnnualClock(t *testing.T) {
	ps := SudarshanaPeriods(birthJD, models.Aries)
	if len(ps) != 120 {
		t.Fatalf("periods = %d, want 120", len(ps))
	}
	if ps[12].Sign != models.Aries {
		t.Fatal("the clock wraps every 12 years")
	}
	if got := ps[0].EndJD - ps[0].StartJD; math.Abs(got-DaysPerYear) > 1e-9 {
		t.Fatalf("period length = %v, want one year", got)
	}
}

func charaChart(asc float64, placements map[models.Planet]models.Sign) *models.BirthChart {
	c := &models.BirthChart{Ascendant: asc, Planets: map[models.Planet]models.PlanetPosition{}}
	for p, s := range placements {
		lon := float64(int(s))*30 + 15
		c.Planets[p] = models.PlanetPosition{Planet: p, Longitude: lon, Sign: s, Degree: 15, House: c.HouseOf(s)}
	}
	return c
}

func TestCharaLordDualSigns(t *testing.T) {
	c := charaChart(0, map[models.Planet]models.Sign{
		models.Mars: models.Gemini,
		models.Ketu: models.Libra,
	})
	// equal degrees: Mars wins the tie
	if got := CharaLord(c, models.Scorpio); got != models.Mars {
		t.Fatalf("Scorpio lord = %v, want Mars on tie", got)
	}
	// deeper degree wins
	pos := c.Planets[models.Ketu]
	pos.Degree = 25
	c.Planets[models.Ketu] = pos
	if got := CharaLord(c, models.Scorpio); got != models.Ketu {
		t.Fatalf("Scorpio lord = %v, want the deeper Ketu", got)
	}
}

func TestCharaPeriodsDirection(t *testing.T) {
	// Aries lagna is odd-footed: forward
	c := charaChart(5, map[models.Planet]models.Sign{models.Mars: models.Aries})
	ps := CharaPeriods(c, birthJD)
	if ps[0].Sign != models.Aries || ps[1].Sign != models.Taurus {
		t.Fatal("odd lagna must run forward")
	}
	// lord in its own sign: full twelve years
	if got := (ps[0].EndJD - ps[0].StartJD) / DaysPerYear; math.Abs(got-12) > 1e-9 {
		t.Fatalf("own-sign period = %v years, want 12", got)
	}

	// Taurus lagna is even-footed: backward
	c2 := charaChart(35, map[models.Planet]models.Sign{models.Venus: models.Virgo})
	ps2 := CharaPeriods(c2, birthJD)
	if ps2[0].Sign != models.Taurus || ps2[1].Sign != models.Aries {
		t.Fatal("even lagna must run backward")
	}
}

func TestServiceSystems(t *testing.T) {
	svc := NewService(ManushyaPada)
	c := charaChart(100, map[models.Planet]models.Sign{
		models.Moon: models.Taurus, models.Sun: models.Leo, models.Mars: models.Aries,
		models.Venus: models.Libra, models.Saturn: models.Capricorn,
	})
	c.JD = birthJD
	for _, sys := range []models.DashaSystem{
		models.Vimshottari, models.Kalachakra, models.Yogini,
		models.Chara, models.Shoola, models.Sudarshana,
	} {
		p, err := svc.Result(sys, c, birthJD+10*DaysPerYear)
		if err != nil {
			t.Fatalf("%s: %v", sys, err)
		}
		if p == nil || p.System != string(sys) {
			t.Fatalf("%s: bad payload %+v", sys, p)
		}
	}
	if _, err := svc.Result("Nonsense", c, birthJD); err == nil {
		t.Fatal("unknown system must error")
	}
}
