package specialty

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/internal/services/strength"
)

// kotaSection maps a nakshatra's position along the fortress path. Each
// quadrant of seven walks in through the rings and back out:
// Bahya, Prakaara, Madhya, Stambha, Madhya, Prakaara, Bahya.
func kotaSection(countFromJanma int) models.KotaSection {
	switch (countFromJanma - 1) % 7 {
	case 0, 6:
		return models.KotaBahya
	case 1, 5:
		return models.KotaPrakaara
	case 2, 4:
		return models.KotaMadhya
	default:
		return models.KotaStambha
	}
}

var kotaWeight = map[models.KotaSection]float64{
	models.KotaStambha:  3,
	models.KotaMadhya:   2,
	models.KotaPrakaara: 1,
	models.KotaBahya:    0.5,
}

// Kota lays the 28-nakshatra fortress from the natal Moon's mansion and
// places every transiting planet in it. Retrograde motion counts as
// inward, toward the Stambha.
func Kota(natal, transit *models.BirthChart) models.KotaResult {
	moon := natal.Planets[models.Moon]
	janma := nakshatra.Resolve28(moon.Longitude)

	res := models.KotaResult{
		Swami: moon.Sign.Lord(),
		Paala: janma.Lord,
	}
	var siege float64
	for _, p := range models.AllPlanets() {
		pos, ok := transit.Planets[p]
		if !ok {
			continue
		}
		ref := nakshatra.Resolve28(pos.Longitude)
		count := ((ref.Index-janma.Index)%28+28)%28 + 1
		pl := models.KotaPlacement{
			Planet:    p,
			Section:   kotaSection(count),
			Nakshatra: ref.Index,
			Inward:    pos.Retrograde,
			Malefic:   !strength.NaturalBenefic(p),
		}
		res.Placements = append(res.Placements, pl)
		if pl.Malefic {
			w := kotaWeight[pl.Section]
			if pl.Inward {
				w *= 2
			}
			siege += w
		}
	}

	// The fortress lord and guard defend when free and direct.
	for _, guard := range []models.Planet{res.Swami, res.Paala} {
		pos, ok := transit.Planets[guard]
		if !ok || pos.Retrograde {
			continue
		}
		ref := nakshatra.Resolve28(pos.Longitude)
		count := ((ref.Index-janma.Index)%28+28)%28 + 1
		s := kotaSection(count)
		if s != models.KotaStambha && s != models.KotaMadhya {
			siege -= 2
		}
	}
	if siege < 0 {
		siege = 0
	}
	res.Score = siege
	switch {
	case siege < 2:
		res.Alert = "calm"
	case siege < 5:
		res.Alert = "watch"
	case siege < 8:
		res.Alert = "siege"
	default:
		res.Alert = "critical"
	}
	return res
}
