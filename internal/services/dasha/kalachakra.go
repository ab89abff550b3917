package dasha

import (
	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/pkg/util"
)

// ManushyaRule selects the disputed direction convention for Manushya-class
// nakshatras; the classical texts disagree, so it is caller configuration.
type ManushyaRule string

const (
	ManushyaPada    ManushyaRule = "pada"    // odd pada forward, even pada reverse
	ManushyaReverse ManushyaRule = "reverse" // always reverse
)

// Kalachakra allotments: the cycle still sums to 120 years.
var (
	kcOrder = [9]models.Planet{
		models.Sun, models.Moon, models.Mars, models.Mercury, models.Jupiter,
		models.Venus, models.Saturn, models.Rahu, models.Ketu,
	}
	kcYears = map[models.Planet]float64{
		models.Sun: 6, models.Moon: 10, models.Mars: 7, models.Mercury: 17,
		models.Jupiter: 16, models.Venus: 20, models.Saturn: 19, models.Rahu: 18,
		models.Ketu: 7,
	}
)

// KalachakraEngine runs the 108-cell (nakshatra × pada) system.
type KalachakraEngine struct {
	Manushya ManushyaRule
}

func NewKalachakra(rule ManushyaRule) *KalachakraEngine {
	if rule == "" {
		rule = ManushyaPada
	}
	return &KalachakraEngine{Manushya: rule}
}

// startCell maps the birth (nakshatra, pada) cell to the first-period planet.
func (k *KalachakraEngine) startCell(nakIdx, pada int) models.Planet {
	cell := (nakIdx-1)*4 + (pada - 1) // 0..107
	return kcOrder[cell%9]
}

// forward resolves the run direction for the birth nakshatra.
func (k *KalachakraEngine) forward(nakIdx, pada int) bool {
	switch nakshatra.ClassOf(nakIdx) {
	case nakshatra.Deva:
		return true
	case nakshatra.Rakshasa:
		return false
	default: // Manushya
		if k.Manushya == ManushyaReverse {
			return false
		}
		return pada%2 == 1
	}
}

// Mahadashas returns the Kalachakra period list covering 120 years, the
// first period truncated by the arc remaining in the birth nakshatra.
func (k *KalachakraEngine) Mahadashas(birthJD, moonLon float64) []models.DashaNode {
	ref := nakshatra.Resolve(moonLon)
	start := k.startCell(ref.Index, ref.Pada)
	fwd := k.forward(ref.Index, ref.Pada)

	units := util.ArcMinutes(moonLon)
	within := units % nakSpanUnits
	remaining := float64(nakSpanUnits-within) / float64(nakSpanUnits)

	idx := 0
	for i, p := range kcOrder {
		if p == start {
			idx = i
			break
		}
	}
	stepAt := func(i int) models.Planet {
		if fwd {
			return kcOrder[(idx+i)%9]
		}
		return kcOrder[((idx-i)%9+9)%9]
	}

	out := make([]models.DashaNode, 0, 10)
	cur := birthJD
	first := kcYears[start] * remaining * DaysPerYear
	out = append(out, models.DashaNode{Level: models.Maha, Planet: start, StartJD: cur, EndJD: cur + first})
	cur += first
	for i := 1; i <= 9; i++ {
		p := stepAt(i)
		d := kcYears[p] * DaysPerYear
		out = append(out, models.DashaNode{Level: models.Maha, Planet: p, StartJD: cur, EndJD: cur + d})
		cur += d
	}
	return out
}
