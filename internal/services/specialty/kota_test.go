package specialty

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func TestKotaSiege(t *testing.T) {
	natal := &models.BirthChart{
		Planets: map[models.Planet]models.PlanetPosition{
			models.Moon: {Planet: models.Moon, Longitude: 0, Sign: models.Aries},
		},
	}
	// retrograde Saturn on the Stambha, Mars (the fortress lord) direct on
	// the outer wall
	transit := &models.BirthChart{
		Planets: map[models.Planet]models.PlanetPosition{
			models.Saturn: {Planet: models.Saturn, Longitude: 45, Retrograde: true},
			models.Mars:   {Planet: models.Mars, Longitude: 5},
		},
	}
	res := Kota(natal, transit)
	if res.Swami != models.Mars {
		t.Fatalf("swami = %v, want Mars for an Aries Moon", res.Swami)
	}
	if res.Paala != models.Ketu {
		t.Fatalf("paala = %v, want Ketu for Ashwini", res.Paala)
	}
	if len(res.Placements) != 2 {
		t.Fatalf("placements = %d, want 2", len(res.Placements))
	}
	for _, pl := range res.Placements {
		switch pl.Planet {
		case models.Saturn:
			if pl.Section != models.KotaStambha || !pl.Inward {
				t.Fatalf("Saturn placement %+v, want inward on the Stambha", pl)
			}
		case models.Mars:
			if pl.Section != models.KotaBahya {
				t.Fatalf("Mars placement %+v, want Bahya", pl)
			}
		}
	}
	// Saturn 3*2 plus Mars 0.5, minus the defending lord
	if res.Score != 4.5 {
		t.Fatalf("score = %v, want 4.5", res.Score)
	}
	if res.Alert != "watch" {
		t.Fatalf("alert = %q, want watch", res.Alert)
	}
}

func TestKotaSectionPath(t *testing.T) {
	wants := []models.KotaSection{
		models.KotaBahya, models.KotaPrakaara, models.KotaMadhya, models.KotaStambha,
		models.KotaMadhya, models.KotaPrakaara, models.KotaBahya,
	}
	for i, want := range wants {
		if got := kotaSection(i + 1); got != want {
			t.Fatalf("count %d = %v, want %v", i+1, got, want)
		}
	}
	// the walk repeats each quadrant
	if kotaSection(8) != models.KotaBahya || kotaSection(11) != models.KotaStambha {
		t.Fatal("path must repeat every seven mansions")
	}
}

func TestKotaCalmWithoutMalefics(t *testing.T) {
	natal := &models.BirthChart{
		Planets: map[models.Planet]models.PlanetPosition{
			models.Moon: {Planet: models.Moon, Longitude: 0, Sign: models.Aries},
		},
	}
	transit := &models.BirthChart{
		Planets: map[models.Planet]models.PlanetPosition{
			models.Jupiter: {Planet: models.Jupiter, Longitude: 45},
		},
	}
	res := Kota(natal, transit)
	if res.Score != 0 || res.Alert != "calm" {
		t.Fatalf("benefic-only siege = %v %q, want 0 calm", res.Score, res.Alert)
	}
}
