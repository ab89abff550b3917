package yoga

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func chartWith(asc float64, lons map[models.Planet]float64) *models.BirthChart {
	c := &models.BirthChart{Ascendant: asc, Planets: map[models.Planet]models.PlanetPosition{}}
	for p, lon := range lons {
		s := models.Sign(int(lon / 30)).Norm()
		c.Planets[p] = models.PlanetPosition{Planet: p, Longitude: lon, Sign: s, Degree: lon - float64(int(s))*30}
	}
	for p, pos := range c.Planets {
		pos.House = c.HouseOf(pos.Sign)
		c.Planets[p] = pos
	}
	return c
}

func find(ms []models.YogaMatch, name string) *models.YogaMatch {
	for i := range ms {
		if ms[i].Name == name {
			return &ms[i]
		}
	}
	return nil
}

func TestHamsa(t *testing.T) {
	// exalted Jupiter rising from a Cancer lagna
	c := chartWith(100, map[models.Planet]float64{models.Jupiter: 95})
	ms := NewDetector().Detect(c)
	m := find(ms, "Hamsa")
	if m == nil {
		t.Fatal("Hamsa not detected")
	}
	if m.Strength != 1.0 {
		t.Fatalf("strength = %v, want 1.0 for exalted in the 1st", m.Strength)
	}
	if find(ms, "Ruchaka") != nil {
		t.Fatal("no Mars, no Ruchaka")
	}
}

func TestGajaKesari(t *testing.T) {
	// Jupiter in the 10th from the Moon
	c := chartWith(10, map[models.Planet]float64{models.Moon: 40, models.Jupiter: 310})
	m := find(NewDetector().Detect(c), "Gaja Kesari")
	if m == nil {
		t.Fatal("Gaja Kesari not detected")
	}
	if m.Strength != 0.6 {
		t.Fatalf("strength = %v, want the undignified 0.6", m.Strength)
	}
	// shift Jupiter one sign off the kendra
	c2 := chartWith(10, map[models.Planet]float64{models.Moon: 40, models.Jupiter: 340})
	if find(NewDetector().Detect(c2), "Gaja Kesari") != nil {
		t.Fatal("12th from the Moon is no Gaja Kesari")
	}
}

func TestBudhadityaCombustion(t *testing.T) {
	c := chartWith(10, map[models.Planet]float64{models.Sun: 125, models.Mercury: 131})
	m := find(NewDetector().Detect(c), "Budhaditya")
	if m == nil || m.Strength != 0.7 {
		t.Fatalf("wide Budhaditya = %+v, want strength 0.7", m)
	}
	// deep combustion thins the yoga
	c2 := chartWith(10, map[models.Planet]float64{models.Sun: 125, models.Mercury: 126})
	m2 := find(NewDetector().Detect(c2), "Budhaditya")
	if m2 == nil || m2.Strength != 0.4 {
		t.Fatalf("combust Budhaditya = %+v, want strength 0.4", m2)
	}
}

func TestRajaYogaExchange(t *testing.T) {
	// Cancer lagna: the 1st lord Moon and 9th lord Jupiter swap signs
	c := chartWith(100, map[models.Planet]float64{models.Moon: 340, models.Jupiter: 95})
	m := find(NewDetector().Detect(c), "Raja Yoga")
	if m == nil {
		t.Fatal("exchange Raja Yoga not detected")
	}
	if m.Note != "exchange" || m.Strength != 0.85 {
		t.Fatalf("link = %q strength %v, want exchange 0.85", m.Note, m.Strength)
	}
}

func TestViparita(t *testing.T) {
	// Aries lagna, 6th lord Mercury placed in the 8th
	c := chartWith(5, map[models.Planet]float64{models.Mercury: 220})
	m := find(NewDetector().Detect(c), "Viparita Raja Yoga")
	if m == nil {
		t.Fatal("Viparita not detected")
	}
	if len(m.Houses) != 2 || m.Houses[0] != 6 || m.Houses[1] != 8 {
		t.Fatalf("houses = %v, want [6 8]", m.Houses)
	}
}

func TestAdhiYoga(t *testing.T) {
	// all three benefics in the 6th, 7th and 8th from the Moon
	c := chartWith(35, map[models.Planet]float64{
		models.Moon: 10, models.Mercury: 165, models.Venus: 190, models.Jupiter: 220,
	})
	m := find(NewDetector().Detect(c), "Adhi Yoga")
	if m == nil {
		t.Fatal("Adhi Yoga not detected")
	}
	if len(m.Planets) != 3 || m.Strength != 1.0 {
		t.Fatalf("planets %v strength %v, want all three at 1.0", m.Planets, m.Strength)
	}
}

func TestKemadruma(t *testing.T) {
	// Moon with only the Sun nearby and Saturn far away
	c := chartWith(10, map[models.Planet]float64{
		models.Moon: 40, models.Sun: 45, models.Saturn: 220,
	})
	if find(NewDetector().Detect(c), "Kemadruma") == nil {
		t.Fatal("isolated Moon must raise Kemadruma")
	}
	// a true planet in the 2nd from the Moon cancels it
	c2 := chartWith(10, map[models.Planet]float64{
		models.Moon: 40, models.Sun: 45, models.Saturn: 70,
	})
	if find(NewDetector().Detect(c2), "Kemadruma") != nil {
		t.Fatal("flanked Moon is not Kemadruma")
	}
}

func TestDetectSorted(t *testing.T) {
	c := chartWith(100, map[models.Planet]float64{
		models.Moon: 340, models.Jupiter: 95, models.Sun: 125, models.Mercury: 131,
	})
	ms := NewDetector().Detect(c)
	for i := 1; i < len(ms); i++ {
		if ms[i].Strength > ms[i-1].Strength {
			t.Fatalf("matches not sorted by strength at %d: %v after %v", i, ms[i].Strength, ms[i-1].Strength)
		}
	}
}
