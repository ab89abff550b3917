package specialty

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/aspect"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/internal/services/predict"
	"Jyotish/internal/services/varga"
)

// KarmaContext gathers the karmic markers of a chart into one payload:
// Shashtiamsa deities, the Atmakaraka, retrograde planets, the nodal
// axis, Gandanta and Vargottama placements, and the parental doshas.
func KarmaContext(c *models.BirthChart) models.KarmaContext {
	ctx := models.KarmaContext{
		D60Deities: make(map[models.Planet]string, len(c.Planets)),
	}
	for _, p := range models.AllPlanets() {
		pos, ok := c.Planets[p]
		if !ok {
			continue
		}
		ctx.D60Deities[p] = varga.D60Deity(pos.Longitude)
		if pos.Retrograde && p != models.Rahu && p != models.Ketu {
			ctx.Retrogrades = append(ctx.Retrogrades, p)
		}
		if nakshatra.Gandanta(pos.Longitude) {
			ctx.Gandanta = append(ctx.Gandanta, p)
		}
	}
	karakas := predict.CharaKarakas(c)
	ctx.Atmakaraka = karakas[models.Atmakaraka]
	ctx.AKHouse = c.HouseOfPlanet(ctx.Atmakaraka)
	ctx.RahuHouse = c.HouseOfPlanet(models.Rahu)
	ctx.KetuHouse = c.HouseOfPlanet(models.Ketu)
	ctx.Vargottama = varga.Vargottama(c)
	ctx.PitruDosha = parentalDosha(c, models.Sun, 9)
	ctx.MatruDosha = parentalDosha(c, models.Moon, 4)
	return ctx
}

// parentalDosha flags affliction of a luminary or its house by the nodes
// or Saturn: conjunction with the significator, occupation of the house,
// or aspect on either.
func parentalDosha(c *models.BirthChart, significator models.Planet, house int) bool {
	sig, ok := c.Planets[significator]
	if !ok {
		return false
	}
	houseSign := c.SignOfHouse(house)
	for _, m := range []models.Planet{models.Rahu, models.Ketu, models.Saturn} {
		pos, ok := c.Planets[m]
		if !ok {
			continue
		}
		if pos.Sign == sig.Sign || pos.Sign == houseSign {
			return true
		}
		if aspect.SignAspects(m, pos.Sign, sig.Sign) || aspect.SignAspects(m, pos.Sign, houseSign) {
			return true
		}
	}
	return false
}
