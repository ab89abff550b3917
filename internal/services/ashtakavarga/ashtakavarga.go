package ashtakavarga

import (
	"Jyotish/internal/domain/models"
)

// ascContributor stands in for the lagna among the eight contributors.
// Deliberately outside the Planet range so it can never alias a node key.
const ascContributor = models.Planet(99)

var contributors = []models.Planet{
	models.Sun, models.Moon, models.Mars, models.Mercury,
	models.Jupiter, models.Venus, models.Saturn, ascContributor,
}

// mask packs benefic house offsets (counted from the contributor's sign,
// 1-based) into a bitmask.
func mask(houses ...int) uint16 {
	var m uint16
	for _, h := range houses {
		m |= 1 << uint(h-1)
	}
	return m
}

// Parashara's bindu tables. beneficHouses[planet][contributor] holds the
// offsets from the contributor's sign where planet gains a bindu. The row
// totals are Sun 48, Moon 49, Mars 39, Mercury 54, Jupiter 56, Venus 52,
// Saturn 39, and the grand total 337.
var beneficHouses = map[models.Planet]map[models.Planet]uint16{
	models.Sun: {
		models.Sun:     mask(1, 2, 4, 7, 8, 9, 10, 11),
		models.Moon:    mask(3, 6, 10, 11),
		models.Mars:    mask(1, 2, 4, 7, 8, 9, 10, 11),
		models.Mercury: mask(3, 5, 6, 9, 10, 11, 12),
		models.Jupiter: mask(5, 6, 9, 11),
		models.Venus:   mask(6, 7, 12),
		models.Saturn:  mask(1, 2, 4, 7, 8, 9, 10, 11),
		ascContributor: mask(3, 4, 6, 10, 11, 12),
	},
	models.Moon: {
		models.Sun:     mask(3, 6, 7, 8, 10, 11),
		models.Moon:    mask(1, 3, 6, 7, 10, 11),
		models.Mars:    mask(2, 3, 5, 6, 9, 10, 11),
		models.Mercury: mask(1, 3, 4, 5, 7, 8, 10, 11),
		models.Jupiter: mask(1, 4, 7, 8, 10, 11, 12),
		models.Venus:   mask(3, 4, 5, 7, 9, 10, 11),
		models.Saturn:  mask(3, 5, 6, 11),
		ascContributor: mask(3, 6, 10, 11),
	},
	models.Mars: {
		models.Sun:     mask(3, 5, 6, 10, 11),
		models.Moon:    mask(3, 6, 11),
		models.Mars:    mask(1, 2, 4, 7, 8, 10, 11),
		models.Mercury: mask(3, 5, 6, 11),
		models.Jupiter: mask(6, 10, 11, 12),
		models.Venus:   mask(6, 8, 11, 12),
		models.Saturn:  mask(1, 4, 7, 8, 9, 10, 11),
		ascContributor: mask(1, 3, 6, 10, 11),
	},
	models.Mercury: {
		models.Sun:     mask(5, 6, 9, 11, 12),
		models.Moon:    mask(2, 4, 6, 8, 10, 11),
		models.Mars:    mask(1, 2, 4, 7, 8, 9, 10, 11),
		models.Mercury: mask(1, 3, 5, 6, 9, 10, 11, 12),
		models.Jupiter: mask(6, 8, 11, 12),
		models.Venus:   mask(1, 2, 3, 4, 5, 8, 9, 11),
		models.Saturn:  mask(1, 2, 4, 7, 8, 9, 10, 11),
		ascContributor: mask(1, 2, 4, 6, 8, 10, 11),
	},
	models.Jupiter: {
		models.Sun:     mask(1, 2, 3, 4, 7, 8, 9, 10, 11),
		models.Moon:    mask(2, 5, 7, 9, 11),
		models.Mars:    mask(1, 2, 4, 7, 8, 10, 11),
		models.Mercury: mask(1, 2, 4, 5, 6, 9, 10, 11),
		models.Jupiter: mask(1, 2, 3, 4, 7, 8, 10, 11),
		models.Venus:   mask(2, 5, 6, 9, 10, 11),
		models.Saturn:  mask(3, 5, 6, 12),
		ascContributor: mask(1, 2, 4, 5, 6, 7, 9, 10, 11),
	},
	models.Venus: {
		models.Sun:     mask(8, 11, 12),
		models.Moon:    mask(1, 2, 3, 4, 5, 8, 9, 11, 12),
		models.Mars:    mask(3, 5, 6, 9, 11, 12),
		models.Mercury: mask(3, 5, 6, 9, 11),
		models.Jupiter: mask(5, 8, 9, 10, 11),
		models.Venus:   mask(1, 2, 3, 4, 5, 8, 9, 10, 11),
		models.Saturn:  mask(3, 4, 5, 8, 9, 10, 11),
		ascContributor: mask(1, 2, 3, 4, 5, 8, 9, 11),
	},
	models.Saturn: {
		models.Sun:     mask(1, 2, 4, 7, 8, 10, 11),
		models.Moon:    mask(3, 6, 11),
		models.Mars:    mask(3, 5, 6, 10, 11, 12),
		models.Mercury: mask(6, 8, 9, 10, 11, 12),
		models.Jupiter: mask(5, 6, 11, 12),
		models.Venus:   mask(6, 11, 12),
		models.Saturn:  mask(3, 5, 6, 11),
		ascContributor: mask(1, 3, 4, 6, 10, 11),
	},
}

// Lagna Ashtakavarga row; its 49 bindus stay outside the SAV sum.
var lagnaBenefic = map[models.Planet]uint16{
	models.Sun:     mask(3, 4, 6, 10, 11, 12),
	models.Moon:    mask(3, 6, 10, 11, 12),
	models.Mars:    mask(1, 3, 6, 10, 11),
	models.Mercury: mask(1, 2, 4, 6, 8, 10, 11),
	models.Jupiter: mask(1, 2, 4, 5, 6, 7, 9, 10, 11),
	models.Venus:   mask(1, 2, 3, 4, 5, 8, 9),
	models.Saturn:  mask(1, 3, 4, 6, 10, 11),
	ascContributor: mask(3, 6, 10, 11),
}

// AVPlanets are the seven bindu-receiving planets, in row order.
var AVPlanets = []models.Planet{
	models.Sun, models.Moon, models.Mars, models.Mercury,
	models.Jupiter, models.Venus, models.Saturn,
}

func contributorSign(c *models.BirthChart, contrib models.Planet) models.Sign {
	if contrib == ascContributor {
		return c.AscSign()
	}
	return c.Planets[contrib].Sign
}

// BAV computes the Bhinnashtakavarga of one planet: bindus per sign,
// indexed by Sign.
func BAV(c *models.BirthChart, p models.Planet) [12]int {
	var out [12]int
	rows := beneficHouses[p]
	for _, contrib := range contributors {
		base := contributorSign(c, contrib)
		m := rows[contrib]
		for off := 1; off <= 12; off++ {
			if m&(1<<uint(off-1)) == 0 {
				continue
			}
			s := (int(base) + off - 1) % 12
			out[s]++
		}
	}
	return out
}

// SAV sums the seven BAVs into the Sarvashtakavarga. The grand total is
// always 337.
func SAV(c *models.BirthChart) models.AshtakavargaResult {
	res := models.AshtakavargaResult{BAV: make(map[models.Planet][12]int, len(AVPlanets))}
	for _, p := range AVPlanets {
		b := BAV(c, p)
		res.BAV[p] = b
		for s, n := range b {
			res.SAV[s] += n
		}
	}
	res.Lagna = LagnaBAV(c)
	return res
}

// LagnaBAV computes the ascendant's own bindu row.
func LagnaBAV(c *models.BirthChart) [12]int {
	var out [12]int
	for _, contrib := range contributors {
		base := contributorSign(c, contrib)
		m := lagnaBenefic[contrib]
		for off := 1; off <= 12; off++ {
			if m&(1<<uint(off-1)) == 0 {
				continue
			}
			out[(int(base)+off-1)%12]++
		}
	}
	return out
}

// TransitScore reads the natal BAV bindus for a transiting planet in a sign.
// Four or more bindus mark a supportive transit.
func TransitScore(res models.AshtakavargaResult, p models.Planet, s models.Sign) (bindus int, favorable bool) {
	b, ok := res.BAV[p]
	if !ok {
		return 0, false
	}
	bindus = b[s.Norm()]
	return bindus, bindus >= 4
}
