package predict

import (
	"sort"

	"Jyotish/internal/domain/models"
)

// karakaOrder lists the eight Jaimini offices from highest degree to
// lowest.
var karakaOrder = []models.KarakaRole{
	models.Atmakaraka, models.Amatyakaraka, models.Bhratrikara, models.Matrikaraka,
	models.Pitrikaraka, models.Putrakaraka, models.Gnatikaraka, models.Darakaraka,
}

// CharaKarakas ranks the seven planets plus Rahu by degree within sign,
// highest first. Rahu counts backwards from the end of its sign.
func CharaKarakas(c *models.BirthChart) models.KarakaSet {
	type entry struct {
		p   models.Planet
		deg float64
	}
	var entries []entry
	for _, p := range models.SevenPlanets() {
		if pos, ok := c.Planets[p]; ok {
			entries = append(entries, entry{p, pos.Degree})
		}
	}
	if pos, ok := c.Planets[models.Rahu]; ok {
		entries = append(entries, entry{models.Rahu, 30 - pos.Degree})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].deg != entries[j].deg {
			return entries[i].deg > entries[j].deg
		}
		return entries[i].p < entries[j].p
	})
	set := make(models.KarakaSet, len(karakaOrder))
	for i, role := range karakaOrder {
		if i < len(entries) {
			set[role] = entries[i].p
		}
	}
	return set
}

// Arudha computes the arudha pada of a house: advance from the house
// lord by the lord's distance from the house, with the classical
// exception that a result falling on the house itself or its 7th is
// pushed to the 10th from there.
func Arudha(c *models.BirthChart, house int) models.Sign {
	hs := c.SignOfHouse(house)
	lord := hs.Lord()
	ls := c.Planets[lord].Sign
	dist := ((int(ls)-int(hs))%12 + 12) % 12
	res := models.Sign((int(ls) + dist) % 12)
	off := ((int(res)-int(hs))%12 + 12) % 12
	if off == 0 || off == 6 {
		res = models.Sign((int(res) + 9) % 12)
	}
	return res
}

// ArudhaLagna is the arudha of the 1st house.
func ArudhaLagna(c *models.BirthChart) models.Sign { return Arudha(c, 1) }

// Upapada is the arudha of the 12th house, read for marriage.
func Upapada(c *models.BirthChart) models.Sign { return Arudha(c, 12) }

// FunctionalBenefic classifies a planet for a given lagna by the houses
// it rules: trikona lordship makes a benefic, lordship of the 3rd, 6th,
// or 11th a malefic, anything else neutral. The nodes follow the sign
// they occupy.
func FunctionalBenefic(c *models.BirthChart, p models.Planet) models.Impact {
	ruler := p
	if p == models.Rahu || p == models.Ketu {
		if pos, ok := c.Planets[p]; ok {
			ruler = pos.Sign.Lord()
		}
	}
	benefic, malefic := false, false
	for h := 1; h <= 12; h++ {
		if c.HouseLord(h) != ruler {
			continue
		}
		switch h {
		case 1, 5, 9:
			benefic = true
		case 3, 6, 11:
			malefic = true
		}
	}
	switch {
	case benefic && !malefic:
		return models.ImpactBenefic
	case malefic && !benefic:
		return models.ImpactMalefic
	}
	return models.ImpactNeutral
}
