package specialty

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func TestKarmaContext(t *testing.T) {
	c := &models.BirthChart{
		Ascendant: 5,
		Planets: map[models.Planet]models.PlanetPosition{
			models.Mars:   {Planet: models.Mars, Longitude: 0.5, Sign: models.Aries, Degree: 0.5},
			models.Sun:    {Planet: models.Sun, Longitude: 130, Sign: models.Leo, Degree: 10},
			models.Moon:   {Planet: models.Moon, Longitude: 40, Sign: models.Taurus, Degree: 10},
			models.Saturn: {Planet: models.Saturn, Longitude: 135, Sign: models.Leo, Degree: 15, Retrograde: true},
			models.Rahu:   {Planet: models.Rahu, Longitude: 310, Sign: models.Aquarius, Degree: 10},
		},
	}
	ctx := KarmaContext(c)

	// Rahu counts 20 from the end of its sign, the highest stake
	if ctx.Atmakaraka != models.Rahu {
		t.Fatalf("AK = %v, want Rahu", ctx.Atmakaraka)
	}
	if ctx.AKHouse != 11 || ctx.RahuHouse != 11 {
		t.Fatalf("AK house %d Rahu house %d, want 11", ctx.AKHouse, ctx.RahuHouse)
	}
	if ctx.KetuHouse != 0 {
		t.Fatalf("absent Ketu house = %d, want 0", ctx.KetuHouse)
	}
	if len(ctx.Retrogrades) != 1 || ctx.Retrogrades[0] != models.Saturn {
		t.Fatalf("retrogrades = %v, want [Saturn]", ctx.Retrogrades)
	}
	if len(ctx.Gandanta) != 1 || ctx.Gandanta[0] != models.Mars {
		t.Fatalf("gandanta = %v, want [Mars]", ctx.Gandanta)
	}
	// Mars at half a degree of Aries repeats its sign in the ninth harmonic
	found := false
	for _, p := range ctx.Vargottama {
		if p == models.Mars {
			found = true
		}
	}
	if !found {
		t.Fatalf("vargottama = %v, want Mars included", ctx.Vargottama)
	}
	if len(ctx.D60Deities) != 5 {
		t.Fatalf("deities = %d, want one per placed planet", len(ctx.D60Deities))
	}
	// Saturn sits with the Sun and throws its tenth onto the Moon
	if !ctx.PitruDosha {
		t.Fatal("Saturn conjunct the Sun must flag pitru dosha")
	}
	if !ctx.MatruDosha {
		t.Fatal("Saturn's aspect on the Moon must flag matru dosha")
	}
}

func TestParentalDoshaClean(t *testing.T) {
	// luminaries untouched by Saturn or the nodes
	c := &models.BirthChart{
		Ascendant: 5,
		Planets: map[models.Planet]models.PlanetPosition{
			models.Sun:  {Planet: models.Sun, Longitude: 130, Sign: models.Leo},
			models.Moon: {Planet: models.Moon, Longitude: 40, Sign: models.Taurus},
		},
	}
	if parentalDosha(c, models.Sun, 9) {
		t.Fatal("no afflictor present, no dosha")
	}
}
