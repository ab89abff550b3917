package models

import "testing"

func TestHouseOfPlanetFallsBackToSign(t *testing.T) {
	c := &BirthChart{
		Ascendant: 5, // Aries lagna
		Planets: map[Planet]PlanetPosition{
			Rahu:    {Planet: Rahu, Longitude: 310, Sign: Aquarius},
			Jupiter: {Planet: Jupiter, Longitude: 95, Sign: Cancer, House: 4},
		},
	}
	if got := c.HouseOfPlanet(Rahu); got != 11 {
		t.Fatalf("house without explicit number = %d, want 11", got)
	}
	if got := c.HouseOfPlanet(Jupiter); got != 4 {
		t.Fatalf("explicit house = %d, want 4", got)
	}
	if got := c.HouseOfPlanet(Ketu); got != 0 {
		t.Fatalf("absent planet house = %d, want 0", got)
	}
}
