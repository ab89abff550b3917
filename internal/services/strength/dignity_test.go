package strength

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func TestDignityClassification(t *testing.T) {
	cases := []struct {
		p    models.Planet
		lon  float64
		want models.Dignity
	}{
		{models.Sun, 10, models.Exalted},        // Aries
		{models.Sun, 190, models.Debilitated},   // Libra
		{models.Sun, 125, models.Moolatrikona},  // Leo 5
		{models.Sun, 145, models.OwnSign},       // Leo 25, past the moolatrikona band
		{models.Moon, 34, models.Moolatrikona},  // Taurus 4, exaltation sign but band wins
		{models.Mars, 290, models.Exalted},      // Capricorn
		{models.Mars, 220, models.OwnSign},      // Scorpio
		{models.Jupiter, 100, models.Exalted},   // Cancer
		{models.Saturn, 195, models.Exalted},    // Libra
		{models.Saturn, 15, models.Debilitated}, // Aries
		{models.Venus, 170, models.Debilitated}, // Virgo
		{models.Jupiter, 130, models.Friend},    // Leo, lord Sun is a friend
		{models.Venus, 125, models.Enemy},       // Leo, Sun is Venus's enemy
		{models.Sun, 75, models.NeutralSign},    // Gemini, Mercury neutral
	}
	for _, tc := range cases {
		if got := Dignity(tc.p, tc.lon); got != tc.want {
			t.Fatalf("Dignity(%v, %v) = %v, want %v", tc.p, tc.lon, got, tc.want)
		}
	}
}

func TestDebilitationPoint(t *testing.T) {
	if got := DebilitationPoint(models.Sun); got != 190 {
		t.Fatalf("Sun debilitation = %v, want 190", got)
	}
	if got := DebilitationPoint(models.Venus); got != 177 {
		t.Fatalf("Venus debilitation = %v, want 177", got)
	}
}

func TestCompoundDignity(t *testing.T) {
	// Jupiter in Leo; Sun (Leo's lord) two signs ahead: natural friend plus
	// temporal friend makes a great friend
	c := &models.BirthChart{
		Ascendant: 0,
		Planets: map[models.Planet]models.PlanetPosition{
			models.Jupiter: {Planet: models.Jupiter, Longitude: 130, Sign: models.Leo},
			models.Sun:     {Planet: models.Sun, Longitude: 190, Sign: models.Libra},
		},
	}
	if got := CompoundDignity(c, models.Jupiter); got != models.GreatFriend {
		t.Fatalf("compound = %v, want GreatFriend", got)
	}
	// move the Sun into the 7th from Jupiter: temporal enemy neutralizes
	c.Planets[models.Sun] = models.PlanetPosition{Planet: models.Sun, Longitude: 310, Sign: models.Aquarius}
	if got := CompoundDignity(c, models.Jupiter); got != models.NeutralSign {
		t.Fatalf("compound = %v, want NeutralSign", got)
	}
	// exaltation short-circuits the relation logic
	c.Planets[models.Jupiter] = models.PlanetPosition{Planet: models.Jupiter, Longitude: 95, Sign: models.Cancer}
	if got := CompoundDignity(c, models.Jupiter); got != models.Exalted {
		t.Fatalf("compound = %v, want Exalted", got)
	}
}

func TestNeechaBhanga(t *testing.T) {
	// Saturn debilitated in Aries. Mars, its sign lord, sits in Cancer,
	// a kendra from both the Aries lagna and the Moon. An exalted Sun
	// joins Saturn in Aries.
	c := &models.BirthChart{
		Ascendant: 5,
		Planets: map[models.Planet]models.PlanetPosition{
			models.Saturn: {Planet: models.Saturn, Longitude: 15, Sign: models.Aries},
			models.Mars:   {Planet: models.Mars, Longitude: 100, Sign: models.Cancer},
			models.Moon:   {Planet: models.Moon, Longitude: 100, Sign: models.Cancer},
			models.Sun:    {Planet: models.Sun, Longitude: 10, Sign: models.Aries},
		},
	}
	nb := NeechaBhanga(c, models.Saturn)
	if nb == nil {
		t.Fatal("debilitated Saturn must be evaluated")
	}
	if nb.Weight < 5 {
		t.Fatalf("weight = %d, want at least 5 (lord in double kendra plus exalted conjunct)", nb.Weight)
	}
	if nb.Tier == "none" || nb.Tier == "weak" {
		t.Fatalf("tier = %q, want a strong cancellation", nb.Tier)
	}
	// a planet not debilitated yields nil
	if NeechaBhanga(c, models.Sun) != nil {
		t.Fatal("exalted Sun has nothing to cancel")
	}
}

func TestWars(t *testing.T) {
	c := &models.BirthChart{
		Planets: map[models.Planet]models.PlanetPosition{
			models.Mars:    {Planet: models.Mars, Longitude: 100.2, Latitude: 0.5},
			models.Jupiter: {Planet: models.Jupiter, Longitude: 100.8, Latitude: 1.2},
			models.Venus:   {Planet: models.Venus, Longitude: 250, Latitude: 0},
		},
	}
	wars := Wars(c)
	if len(wars) != 1 {
		t.Fatalf("wars = %d, want 1", len(wars))
	}
	if wars[0].Winner != models.Jupiter || wars[0].Loser != models.Mars {
		t.Fatalf("winner %v over %v, want Jupiter over Mars", wars[0].Winner, wars[0].Loser)
	}
}
