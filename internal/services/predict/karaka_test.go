package predict

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func chartWithDegrees(asc float64, degs map[models.Planet]float64, signs map[models.Planet]models.Sign) *models.BirthChart {
	c := &models.BirthChart{Ascendant: asc, Planets: map[models.Planet]models.PlanetPosition{}}
	for p, d := range degs {
		s := signs[p]
		lon := float64(int(s))*30 + d
		c.Planets[p] = models.PlanetPosition{Planet: p, Longitude: lon, Sign: s, Degree: d, House: c.HouseOf(s)}
	}
	return c
}

func TestCharaKarakas(t *testing.T) {
	degs := map[models.Planet]float64{
		models.Sun: 20, models.Moon: 5, models.Mars: 28, models.Mercury: 10,
		models.Jupiter: 15, models.Venus: 25, models.Saturn: 2, models.Rahu: 3,
	}
	signs := map[models.Planet]models.Sign{}
	for p := range degs {
		signs[p] = models.Sign(int(p)) // spread, exact sign irrelevant here
	}
	ks := CharaKarakas(chartWithDegrees(5, degs, signs))

	// Rahu at 3 degrees counts as 27, slotting second behind Mars at 28
	wants := map[models.KarakaRole]models.Planet{
		models.Atmakaraka:   models.Mars,
		models.Amatyakaraka: models.Rahu,
		models.Bhratrikara:  models.Venus,
		models.Matrikaraka:  models.Sun,
		models.Pitrikaraka:  models.Jupiter,
		models.Putrakaraka:  models.Mercury,
		models.Gnatikaraka:  models.Moon,
		models.Darakaraka:   models.Saturn,
	}
	for role, want := range wants {
		if ks[role] != want {
			t.Fatalf("%s = %v, want %v", role, ks[role], want)
		}
	}
}

func TestCharaKarakasTieBreak(t *testing.T) {
	degs := map[models.Planet]float64{models.Sun: 10, models.Moon: 10}
	signs := map[models.Planet]models.Sign{models.Sun: models.Leo, models.Moon: models.Cancer}
	ks := CharaKarakas(chartWithDegrees(0, degs, signs))
	if ks[models.Atmakaraka] != models.Sun {
		t.Fatalf("AK = %v, the lower index wins a degree tie", ks[models.Atmakaraka])
	}
}

func TestArudha(t *testing.T) {
	// Aries lagna, Mars in Gemini: two signs on, two more gives Leo
	c := chartWithDegrees(5,
		map[models.Planet]float64{models.Mars: 10},
		map[models.Planet]models.Sign{models.Mars: models.Gemini})
	if got := ArudhaLagna(c); got != models.Leo {
		t.Fatalf("AL = %v, want Leo", got)
	}
	// lord in its own house: the pada would fall on the house, pushed to
	// the 10th from it
	c2 := chartWithDegrees(5,
		map[models.Planet]float64{models.Mars: 10},
		map[models.Planet]models.Sign{models.Mars: models.Aries})
	if got := ArudhaLagna(c2); got != models.Capricorn {
		t.Fatalf("AL = %v, want Capricorn", got)
	}
	// lord in the 7th lands the pada on the house again: same push
	c3 := chartWithDegrees(5,
		map[models.Planet]float64{models.Mars: 10},
		map[models.Planet]models.Sign{models.Mars: models.Libra})
	if got := ArudhaLagna(c3); got != models.Capricorn {
		t.Fatalf("AL = %v, want Capricorn", got)
	}
}

func TestFunctionalBenefic(t *testing.T) {
	// Aries lagna lordships
	c := chartWithDegrees(5,
		map[models.Planet]float64{models.Rahu: 10},
		map[models.Planet]models.Sign{models.Rahu: models.Leo})
	cases := []struct {
		p    models.Planet
		want models.Impact
	}{
		{models.Mars, models.ImpactBenefic},    // 1st and 8th
		{models.Jupiter, models.ImpactBenefic}, // 9th and 12th
		{models.Sun, models.ImpactBenefic},     // 5th
		{models.Mercury, models.ImpactMalefic}, // 3rd and 6th
		{models.Saturn, models.ImpactMalefic},  // 10th and 11th
		{models.Venus, models.ImpactNeutral},   // 2nd and 7th
		{models.Moon, models.ImpactNeutral},    // 4th
		{models.Rahu, models.ImpactBenefic},    // stands in Leo, votes as the Sun
	}
	for _, tc := range cases {
		if got := FunctionalBenefic(c, tc.p); got != tc.want {
			t.Fatalf("%v = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestCapacity(t *testing.T) {
	// Aries lagna; Saturn owns and occupies the 10th
	c := chartWithDegrees(5,
		map[models.Planet]float64{models.Saturn: 10},
		map[models.Planet]models.Sign{models.Saturn: models.Capricorn})
	if got := Capacity(c, models.Saturn, 10); got != 6 {
		t.Fatalf("owner-occupant capacity = %d, want 6", got)
	}
	// Mars occupying the 10th, trine to its lord
	c2 := chartWithDegrees(5,
		map[models.Planet]float64{models.Mars: 10, models.Saturn: 10},
		map[models.Planet]models.Sign{models.Mars: models.Capricorn, models.Saturn: models.Aries})
	if got := Capacity(c2, models.Mars, 10); got != 5 {
		t.Fatalf("occupant capacity = %d, want 5", got)
	}
	if got := Capacity(c, models.Moon, 10); got != 0 {
		t.Fatalf("unplaced lord capacity = %d, want 0", got)
	}
}

func TestProbabilityBands(t *testing.T) {
	single := models.PredictedEvent{Tier: models.SingleLock, Auth: models.Authorization{Combined: 15}}
	if p := probability(single); p < 75 || p > 85 {
		t.Fatalf("single band = %d", p)
	}
	double := models.PredictedEvent{
		Tier: models.DoubleLock, Auth: models.Authorization{Combined: 20},
		Jaimini: &models.StageValidation{Score: 0.8},
	}
	if p := probability(double); p < 85 || p > 95 {
		t.Fatalf("double band = %d", p)
	}
	triple := models.PredictedEvent{
		Tier: models.TripleLock, Auth: models.Authorization{Combined: 30},
		Nadi: &models.StageValidation{Score: 1},
	}
	if p := probability(triple); p != 98 {
		t.Fatalf("full triple = %d, want 98", p)
	}
}

func TestPickTrigger(t *testing.T) {
	pr := &Predictor{}
	acts := []models.Activation{
		{JD: 10, Kind: models.KindAspectOnset, Planet: models.Saturn, TargetHouse: 10},
		{JD: 12, Kind: models.KindAspectPeak, Planet: models.Jupiter, TargetHouse: 10},
		{JD: 11, Kind: models.KindAspectPeak, Planet: models.Mars, TargetHouse: 4},
	}
	trig, ok := pr.pickTrigger(nil, acts, 10)
	if !ok {
		t.Fatal("expected a trigger")
	}
	if trig.Transiting != models.Jupiter {
		t.Fatalf("trigger = %v, a peak outranks an earlier onset", trig.Transiting)
	}
	if _, ok := pr.pickTrigger(nil, acts, 7); ok {
		t.Fatal("no activation strikes the 7th")
	}
}

func TestNadiStage(t *testing.T) {
	pr := NewPredictor(nil, nil, DefaultConfig())
	acts := []models.Activation{
		{JD: 5, Kind: models.KindAspectPeak, Planet: models.Saturn, NatalTarget: "BhriguBindu", Gap: 0.1},
		{JD: 6, Kind: models.KindAspectPeak, Planet: models.Venus, NatalTarget: "Sun", Gap: 0.05, TargetHouse: 2},
	}
	// Saturn is a dasha lord striking the Bhrigu Bindu inside the orb
	v := pr.nadiStage(acts, 10, models.Saturn, models.Moon, models.Sun)
	if !v.Validated {
		t.Fatalf("want validated, got %+v", v)
	}
	// same strike by a planet holding no office fails
	v2 := pr.nadiStage(acts[:1], 10, models.Moon, models.Sun, models.Mercury)
	if v2.Validated {
		t.Fatal("non-lord strike must not validate")
	}
	// a wide gap fails even for a lord
	wide := []models.Activation{{Kind: models.KindAspectPeak, Planet: models.Saturn, NatalTarget: "BhriguBindu", Gap: 0.5}}
	if pr.nadiStage(wide, 10, models.Saturn, models.Moon, models.Sun).Validated {
		t.Fatal("gap beyond the sniper orb must not validate")
	}
}
