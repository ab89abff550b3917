package specialty

import (
	"math"
	"strings"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/aspect"
)

// topicHouses maps a question topic to the house that answers it.
var topicHouses = map[string]int{
	"self":           1,
	"wealth":         2,
	"siblings":       3,
	"property":       4,
	"children":       5,
	"progeny":        5,
	"health":         6,
	"disease":        6,
	"litigation":     6,
	"marriage":       7,
	"partner":        7,
	"longevity":      8,
	"fortune":        9,
	"travel":         9,
	"career":         10,
	"job":            10,
	"gains":          11,
	"loss":           12,
	"foreign":        12,
	"foreign_travel": 12,
}

// Prashna answers a horary question from its question-time chart. The
// querent is the lagna lord, the objective the topic house's lord; an
// applying Tajik aspect between them says YES.
func Prashna(q *models.BirthChart, topic string) models.PrashnaVerdict {
	house, ok := topicHouses[strings.ToLower(strings.TrimSpace(topic))]
	if !ok {
		house = 1
	}
	verdict := models.PrashnaVerdict{Topic: topic, House: house, Answer: "NO", Confidence: "Low"}

	querent := q.HouseLord(1)
	objective := q.HouseLord(house)
	if querent == objective {
		// One planet rules both: the matter is in the querent's own hands.
		verdict.Answer = "YES"
		verdict.Confidence = "Medium"
		return verdict
	}
	qp, okQ := q.Planets[querent]
	op, okO := q.Planets[objective]
	if !okQ || !okO {
		return verdict
	}

	ta := aspect.Tajik(qp, op)
	verdict.Aspect = ta
	if ta != nil {
		verdict.TimingDeg = math.Abs(ta.Gap)
	}
	verdict.MoonHelps = moonTranslates(q, querent, objective)

	if ta != nil && ta.Applying {
		verdict.Answer = "YES"
		switch tight := math.Abs(ta.Gap) / ta.Orb; {
		case tight < 1.0/3:
			verdict.Confidence = "High"
		case tight < 2.0/3:
			verdict.Confidence = "Medium"
		default:
			verdict.Confidence = "Low"
		}
		if verdict.MoonHelps && verdict.Confidence == "Medium" {
			verdict.Confidence = "High"
		}
	} else if verdict.MoonHelps {
		// The Moon carrying light between the significators can salvage a
		// denied matter.
		verdict.Answer = "YES"
		verdict.Confidence = "Low"
	}
	return verdict
}

// moonTranslates reports whether the Moon applies to either significator,
// carrying the matter between them.
func moonTranslates(q *models.BirthChart, querent, objective models.Planet) bool {
	moon, ok := q.Planets[models.Moon]
	if !ok || querent == models.Moon || objective == models.Moon {
		return false
	}
	for _, sig := range []models.Planet{querent, objective} {
		if ta := aspect.Tajik(moon, q.Planets[sig]); ta != nil && ta.Applying {
			return true
		}
	}
	return false
}
