package specialty

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/predict"
)

// Trading composes the lunar favourability measures, the running dasha
// lord's functional nature, and the 11th-house SAV into a 0..100 score.
func Trading(natal *models.BirthChart, transitMoonLon float64, dashaLord models.Planet, av models.AshtakavargaResult) models.TradingScore {
	natalMoonLon := natal.Planets[models.Moon].Longitude
	ts := models.TradingScore{
		Tara:      Tara(natalMoonLon, transitMoonLon),
		Chandra:   Chandra(natalMoonLon, transitMoonLon),
		DashaLord: dashaLord,
	}
	ts.LordNature = predict.FunctionalBenefic(natal, dashaLord)
	gainsSign := natal.SignOfHouse(11)
	ts.GainsSAV = av.SAV[gainsSign.Norm()]

	score := 0
	if ts.Tara.Favorable {
		score += 25
	}
	if ts.Chandra.Favorable {
		score += 15
	}
	switch ts.LordNature {
	case models.ImpactBenefic:
		score += 30
	case models.ImpactNeutral:
		score += 15
	}
	switch {
	case ts.GainsSAV > 30:
		score += 30
	case ts.GainsSAV >= 25:
		score += 15
	}
	ts.Score = score
	switch {
	case score >= 70:
		ts.Recommendation = "favorable"
	case score >= 40:
		ts.Recommendation = "neutral"
	default:
		ts.Recommendation = "avoid"
	}
	return ts
}
