package ashtakavarga

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func testChart() *models.BirthChart {
	// all contributors in distinct signs, Moon included for completeness
	c := &models.BirthChart{Ascendant: 15, Planets: map[models.Planet]models.PlanetPosition{}}
	signs := map[models.Planet]models.Sign{
		models.Sun: models.Leo, models.Moon: models.Taurus, models.Mars: models.Capricorn,
		models.Mercury: models.Virgo, models.Jupiter: models.Pisces, models.Venus: models.Libra,
		models.Saturn: models.Aquarius,
	}
	for p, s := range signs {
		c.Planets[p] = models.PlanetPosition{Planet: p, Longitude: float64(int(s))*30 + 10, Sign: s}
	}
	return c
}

func TestBAVRowTotals(t *testing.T) {
	c := testChart()
	wants := map[models.Planet]int{
		models.Sun: 48, models.Moon: 49, models.Mars: 39, models.Mercury: 54,
		models.Jupiter: 56, models.Venus: 52, models.Saturn: 39,
	}
	for p, want := range wants {
		b := BAV(c, p)
		total := 0
		for _, n := range b {
			total += n
		}
		if total != want {
			t.Fatalf("%v row total = %d, want %d", p, total, want)
		}
	}
}

func TestSAVGrandTotal(t *testing.T) {
	res := SAV(testChart())
	total := 0
	for _, n := range res.SAV {
		total += n
	}
	if total != 337 {
		t.Fatalf("SAV total = %d, want 337", total)
	}
	if len(res.BAV) != 7 {
		t.Fatalf("BAV rows = %d, want 7", len(res.BAV))
	}
}

func TestLagnaRowTotal(t *testing.T) {
	b := LagnaBAV(testChart())
	total := 0
	for _, n := range b {
		total += n
	}
	if total != 49 {
		t.Fatalf("lagna row total = %d, want 49", total)
	}
	// lagna bindus must not leak into the SAV sum
	res := SAV(testChart())
	savTotal := 0
	for _, n := range res.SAV {
		savTotal += n
	}
	if savTotal != 337 {
		t.Fatalf("SAV with lagna computed = %d, want 337", savTotal)
	}
}

func TestRowTotalsChartInvariant(t *testing.T) {
	// totals do not depend on where the contributors sit
	c := testChart()
	for p := range c.Planets {
		pos := c.Planets[p]
		pos.Sign = models.Gemini
		c.Planets[p] = pos
	}
	res := SAV(c)
	total := 0
	for _, n := range res.SAV {
		total += n
	}
	if total != 337 {
		t.Fatalf("SAV total = %d, want 337", total)
	}
}

func TestNodesDoNotContribute(t *testing.T) {
	// the lagna contributor key must never collide with a node placement
	c := testChart()
	c.Planets[models.Rahu] = models.PlanetPosition{Planet: models.Rahu, Longitude: 200, Sign: models.Libra}
	c.Planets[models.Ketu] = models.PlanetPosition{Planet: models.Ketu, Longitude: 20, Sign: models.Aries}
	res := SAV(c)
	total := 0
	for _, n := range res.SAV {
		total += n
	}
	if total != 337 {
		t.Fatalf("SAV with nodes placed = %d, want 337", total)
	}
	base := SAV(testChart())
	for s := range res.SAV {
		if res.SAV[s] != base.SAV[s] {
			t.Fatalf("sign %d bindus changed when nodes were added", s)
		}
	}
}

func TestTransitScore(t *testing.T) {
	res := SAV(testChart())
	b := res.BAV[models.Jupiter]
	var hi, lo models.Sign
	found := false
	for s, n := range b {
		if n >= 4 {
			hi, found = models.Sign(s), true
			break
		}
	}
	if !found {
		t.Fatal("Jupiter's 56 bindus must put at least one sign at 4 or more")
	}
	for s, n := range b {
		if n < 4 {
			lo = models.Sign(s)
			break
		}
	}
	if n, fav := TransitScore(res, models.Jupiter, hi); !fav || n < 4 {
		t.Fatalf("sign %v with %d bindus must be favorable", hi, n)
	}
	if _, fav := TransitScore(res, models.Jupiter, lo); fav && b[lo] < 4 {
		t.Fatal("sparse sign must not be favorable")
	}
	if _, fav := TransitScore(res, models.Rahu, models.Aries); fav {
		t.Fatal("Rahu has no BAV row")
	}
}
