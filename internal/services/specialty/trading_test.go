package specialty

import (
	"testing"

	"Jyotish/internal/domain/models"
)

func tradingNatal() *models.BirthChart {
	return &models.BirthChart{
		Ascendant: 5, // Aries lagna: gains sign is Aquarius
		Planets: map[models.Planet]models.PlanetPosition{
			models.Moon: {Planet: models.Moon, Longitude: 40, Sign: models.Taurus},
		},
	}
}

func TestTradingFavorable(t *testing.T) {
	var av models.AshtakavargaResult
	av.SAV[int(models.Aquarius)] = 35

	// transit Moon one mansion on (Sampat) in the natal Moon sign, a
	// functional-benefic dasha lord, strong gains SAV
	ts := Trading(tradingNatal(), 55, models.Jupiter, av)
	if !ts.Tara.Favorable || !ts.Chandra.Favorable {
		t.Fatalf("lunar factors %+v %+v, want both favorable", ts.Tara, ts.Chandra)
	}
	if ts.LordNature != models.ImpactBenefic {
		t.Fatalf("Jupiter for Aries = %v, want benefic", ts.LordNature)
	}
	if ts.GainsSAV != 35 {
		t.Fatalf("gains SAV = %d, want 35", ts.GainsSAV)
	}
	if ts.Score != 100 || ts.Recommendation != "favorable" {
		t.Fatalf("score %d %q, want 100 favorable", ts.Score, ts.Recommendation)
	}
}

func TestTradingAvoid(t *testing.T) {
	var av models.AshtakavargaResult
	av.SAV[int(models.Aquarius)] = 20

	// Vipat tara, second sign from the natal Moon, malefic lord, weak SAV
	ts := Trading(tradingNatal(), 70, models.Mercury, av)
	if ts.Score != 0 || ts.Recommendation != "avoid" {
		t.Fatalf("score %d %q, want 0 avoid", ts.Score, ts.Recommendation)
	}
}

func TestTradingNeutralBand(t *testing.T) {
	var av models.AshtakavargaResult
	av.SAV[int(models.Aquarius)] = 27

	// favorable lunar factors plus mid SAV land in the neutral band
	ts := Trading(tradingNatal(), 55, models.Mercury, av)
	if ts.Score != 25+15+15 {
		t.Fatalf("score = %d, want 55", ts.Score)
	}
	if ts.Recommendation != "neutral" {
		t.Fatalf("recommendation = %q, want neutral", ts.Recommendation)
	}
}
