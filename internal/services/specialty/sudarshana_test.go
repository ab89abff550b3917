package specialty

import (
	"math"
	"testing"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/dasha"
)

func sudarshanaNatal() *models.BirthChart {
	return &models.BirthChart{
		JD:        2448000.5,
		Ascendant: 0,
		Planets: map[models.Planet]models.PlanetPosition{
			models.Moon:  {Planet: models.Moon, Longitude: 40},
			models.Sun:   {Planet: models.Sun, Longitude: 100},
			models.Mars:  {Planet: models.Mars, Longitude: 10},
			models.Venus: {Planet: models.Venus, Longitude: 50},
		},
	}
}

func TestSudarshanaConfirmation(t *testing.T) {
	c := sudarshanaNatal()
	from := c.JD + 1
	to := c.JD + 11*dasha.DaysPerYear
	res := Sudarshana(c, from, to)

	// the Lagna clock strikes Mars and the Moon clock strikes Venus at
	// age ten, two anchors on the same day
	var lagnaMars, moonVenus *models.SudarshanaTrigger
	for i := range res.Triggers {
		tr := &res.Triggers[i]
		if tr.Anchor == "Lagna" && tr.Planet == models.Mars {
			lagnaMars = tr
		}
		if tr.Anchor == "Moon" && tr.Planet == models.Venus {
			moonVenus = tr
		}
	}
	if lagnaMars == nil || moonVenus == nil {
		t.Fatalf("triggers = %+v, want Lagna/Mars and Moon/Venus", res.Triggers)
	}
	if lagnaMars.AgeYears != 10 {
		t.Fatalf("age = %v, want 10", lagnaMars.AgeYears)
	}
	if math.Abs(lagnaMars.JD-moonVenus.JD) > 1e-6 {
		t.Fatal("both clocks must strike the same day")
	}
	if res.Level != "confirmed" {
		t.Fatalf("level = %q, want confirmed", res.Level)
	}
	if len(res.Confirmed) == 0 {
		t.Fatal("the double strike must appear in the confirmed groups")
	}
}

func TestSudarshanaQuiet(t *testing.T) {
	c := sudarshanaNatal()
	// a window between strikes
	from := c.JD + 2*dasha.DaysPerYear
	to := c.JD + 4*dasha.DaysPerYear
	res := Sudarshana(c, from, to)
	if len(res.Triggers) != 0 || res.Level != "none" {
		t.Fatalf("quiet window produced %+v", res)
	}
}

func TestSudarshanaOrdering(t *testing.T) {
	c := sudarshanaNatal()
	res := Sudarshana(c, c.JD+1, c.JD+120*dasha.DaysPerYear)
	for i := 1; i < len(res.Triggers); i++ {
		if res.Triggers[i].JD < res.Triggers[i-1].JD {
			t.Fatalf("triggers out of order at %d", i)
		}
	}
}
