package specialty

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/nakshatra"
)

var taraNames = [9]string{
	"Janma", "Sampat", "Vipat", "Kshema", "Pratyari",
	"Sadhaka", "Vadha", "Mitra", "Ati Mitra",
}

// taraFavorable marks Sampat, Kshema, Sadhaka, Mitra and Ati Mitra as
// supportive; Janma, Vipat, Pratyari and Vadha as not.
var taraFavorable = [9]bool{false, true, false, true, false, true, false, true, true}

// Tara counts mansions from the natal Moon's nakshatra to the transit
// Moon's, modulo nine.
func Tara(natalMoonLon, transitMoonLon float64) models.TaraBala {
	n := nakshatra.IndexAt(natalMoonLon)
	t := nakshatra.IndexAt(transitMoonLon)
	count := ((t-n)%27+27)%27 + 1
	tara := (count-1)%9 + 1
	return models.TaraBala{
		Tara:      tara,
		Name:      taraNames[tara-1],
		Favorable: taraFavorable[tara-1],
	}
}

// chandraFavorable marks the classical good Moon positions: 1, 3, 6, 7,
// 10, 11 from the natal Moon.
var chandraFavorable = map[int]bool{1: true, 3: true, 6: true, 7: true, 10: true, 11: true}

// Chandra counts signs from the natal Moon to the transit Moon.
func Chandra(natalMoonLon, transitMoonLon float64) models.ChandraBala {
	n := int(natalMoonLon/30) % 12
	t := int(transitMoonLon/30) % 12
	count := ((t-n)%12+12)%12 + 1
	return models.ChandraBala{Count: count, Favorable: chandraFavorable[count]}
}
