package strength

import (
	"Jyotish/internal/domain/models"
	"Jyotish/pkg/util"
)

// Exact exaltation points in absolute sidereal longitude; debilitation is
// the opposite point.
var exaltationPoint = map[models.Planet]float64{
	models.Sun:     10,  // 10° Aries
	models.Moon:    33,  // 3° Taurus
	models.Mars:    298, // 28° Capricorn
	models.Mercury: 165, // 15° Virgo
	models.Jupiter: 95,  // 5° Cancer
	models.Venus:   357, // 27° Pisces
	models.Saturn:  200, // 20° Libra
	models.Rahu:    50,  // 20° Taurus
	models.Ketu:    230, // 20° Scorpio
}

// ExaltationPoint returns the exact exaltation longitude for a planet.
func ExaltationPoint(p models.Planet) float64 { return exaltationPoint[p] }

// DebilitationPoint is the opposite of the exaltation point.
func DebilitationPoint(p models.Planet) float64 {
	return util.Norm360(exaltationPoint[p] + 180)
}

type degRange struct {
	sign     models.Sign
	from, to float64
}

// Moolatrikona ranges.
var moolatrikona = map[models.Planet]degRange{
	models.Sun:     {models.Leo, 0, 20},
	models.Moon:    {models.Taurus, 3, 30},
	models.Mars:    {models.Aries, 0, 12},
	models.Mercury: {models.Virgo, 15, 20},
	models.Jupiter: {models.Sagittarius, 0, 10},
	models.Venus:   {models.Libra, 0, 15},
	models.Saturn:  {models.Aquarius, 0, 20},
}

// Own signs; the nodes co-rule by the common convention.
var ownSigns = map[models.Planet][]models.Sign{
	models.Sun:     {models.Leo},
	models.Moon:    {models.Cancer},
	models.Mars:    {models.Aries, models.Scorpio},
	models.Mercury: {models.Gemini, models.Virgo},
	models.Jupiter: {models.Sagittarius, models.Pisces},
	models.Venus:   {models.Taurus, models.Libra},
	models.Saturn:  {models.Capricorn, models.Aquarius},
	models.Rahu:    {models.Aquarius},
	models.Ketu:    {models.Scorpio},
}

type relation int

const (
	relFriend relation = iota
	relNeutral
	relEnemy
)

// Naisargika maitri, the classical natural-relationship table.
var naturalRelations = map[models.Planet]map[models.Planet]relation{
	models.Sun: {
		models.Moon: relFriend, models.Mars: relFriend, models.Jupiter: relFriend,
		models.Mercury: relNeutral,
		models.Venus:   relEnemy, models.Saturn: relEnemy, models.Rahu: relEnemy, models.Ketu: relEnemy,
	},
	models.Moon: {
		models.Sun: relFriend, models.Mercury: relFriend,
		models.Mars: relNeutral, models.Jupiter: relNeutral, models.Venus: relNeutral, models.Saturn: relNeutral,
		models.Rahu: relEnemy, models.Ketu: relEnemy,
	},
	models.Mars: {
		models.Sun: relFriend, models.Moon: relFriend, models.Jupiter: relFriend,
		models.Venus: relNeutral, models.Saturn: relNeutral, models.Ketu: relNeutral,
		models.Mercury: relEnemy, models.Rahu: relEnemy,
	},
	models.Mercury: {
		models.Sun: relFriend, models.Venus: relFriend, models.Rahu: relFriend,
		models.Mars: relNeutral, models.Jupiter: relNeutral, models.Saturn: relNeutral, models.Ketu: relNeutral,
		models.Moon: relEnemy,
	},
	models.Jupiter: {
		models.Sun: relFriend, models.Moon: relFriend, models.Mars: relFriend, models.Ketu: relFriend,
		models.Saturn: relNeutral, models.Rahu: relNeutral,
		models.Mercury: relEnemy, models.Venus: relEnemy,
	},
	models.Venus: {
		models.Mercury: relFriend, models.Saturn: relFriend, models.Rahu: relFriend,
		models.Mars: relNeutral, models.Jupiter: relNeutral, models.Ketu: relNeutral,
		models.Sun: relEnemy, models.Moon: relEnemy,
	},
	models.Saturn: {
		models.Mercury: relFriend, models.Venus: relFriend, models.Rahu: relFriend,
		models.Jupiter: relNeutral, models.Ketu: relNeutral,
		models.Sun: relEnemy, models.Moon: relEnemy, models.Mars: relEnemy,
	},
	models.Rahu: {
		models.Venus: relFriend, models.Saturn: relFriend, models.Mercury: relFriend,
		models.Jupiter: relNeutral, models.Ketu: relNeutral,
		models.Sun: relEnemy, models.Moon: relEnemy, models.Mars: relEnemy,
	},
	models.Ketu: {
		models.Mars: relFriend, models.Venus: relFriend, models.Saturn: relFriend,
		models.Mercury: relNeutral, models.Jupiter: relNeutral, models.Rahu: relNeutral,
		models.Sun: relEnemy, models.Moon: relEnemy,
	},
}

// Dignity classifies a planet by its sidereal longitude alone; a total
// function over every (planet, longitude) pair. Exaltation and debilitation
// are sign-wide; moolatrikona and own-sign carve out their ranges first.
func Dignity(p models.Planet, lon float64) models.Dignity {
	lon = util.Norm360(lon)
	sign := models.Sign(int(lon / 30)).Norm()
	deg := lon - float64(int(sign))*30

	if mt, ok := moolatrikona[p]; ok && sign == mt.sign && deg >= mt.from && deg < mt.to {
		return models.Moolatrikona
	}
	for _, s := range ownSigns[p] {
		if s == sign {
			return models.OwnSign
		}
	}
	if models.Sign(int(ExaltationPoint(p)/30)).Norm() == sign {
		return models.Exalted
	}
	if models.Sign(int(DebilitationPoint(p)/30)).Norm() == sign {
		return models.Debilitated
	}
	switch naturalRelations[p][sign.Lord()] {
	case relFriend:
		return models.Friend
	case relEnemy:
		return models.Enemy
	default:
		return models.NeutralSign
	}
}

// CompoundDignity refines Friend/Enemy with the temporal (tatkalika)
// relationship: occupants of the 2nd, 3rd, 4th, 10th, 11th and 12th signs
// from the planet are temporal friends.
func CompoundDignity(c *models.BirthChart, p models.Planet) models.Dignity {
	pos, ok := c.Planets[p]
	if !ok {
		return models.NeutralSign
	}
	base := Dignity(p, pos.Longitude)
	if base != models.Friend && base != models.Enemy && base != models.NeutralSign {
		return base
	}
	lordPos, ok := c.Planets[pos.Sign.Lord()]
	if !ok {
		return base
	}
	diff := ((int(lordPos.Sign)-int(pos.Sign))%12 + 12) % 12
	temporalFriend := diff == 1 || diff == 2 || diff == 3 || diff == 9 || diff == 10 || diff == 11
	switch {
	case base == models.Friend && temporalFriend:
		return models.GreatFriend
	case base == models.Friend:
		return models.NeutralSign
	case base == models.Enemy && temporalFriend:
		return models.NeutralSign
	case base == models.Enemy:
		return models.GreatEnemy
	case temporalFriend:
		return models.Friend
	default:
		return models.Enemy
	}
}

// NaturalBenefic reports the classical nature used for Kala/Drik weighting.
// The waxing/waning Moon nuance is handled by Paksha Bala itself.
func NaturalBenefic(p models.Planet) bool {
	switch p {
	case models.Jupiter, models.Venus, models.Mercury, models.Moon:
		return true
	}
	return false
}
