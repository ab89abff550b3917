package specialty

import (
	"math"
	"sort"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/dasha"
	"Jyotish/pkg/util"
)

const confirmWindowDays = 7

// Sudarshana runs the three year-clocks (Lagna, Moon, Sun anchors) at one
// degree per year and collects conjunctions with natal planets inside the
// JD range. Triggers from two anchors within seven days confirm each
// other; all three mark a guaranteed event.
func Sudarshana(natal *models.BirthChart, fromJD, toJD float64) models.SudarshanaResult {
	anchors := []struct {
		name string
		lon  float64
	}{
		{"Lagna", natal.Ascendant},
		{"Moon", natal.Planets[models.Moon].Longitude},
		{"Sun", natal.Planets[models.Sun].Longitude},
	}

	var res models.SudarshanaResult
	for _, a := range anchors {
		for _, p := range models.AllPlanets() {
			pos, ok := natal.Planets[p]
			if !ok {
				continue
			}
			// First clock strike at diff degrees of age, repeating every
			// 360 years.
			diff := util.Norm360(pos.Longitude - a.lon)
			for k := 0; ; k++ {
				age := diff + 360*float64(k)
				jd := natal.JD + age*dasha.DaysPerYear
				if jd > toJD {
					break
				}
				if jd < fromJD {
					continue
				}
				res.Triggers = append(res.Triggers, models.SudarshanaTrigger{
					Anchor: a.name, Planet: p, JD: jd, AgeYears: age,
				})
			}
		}
	}
	sort.SliceStable(res.Triggers, func(i, j int) bool {
		if res.Triggers[i].JD != res.Triggers[j].JD {
			return res.Triggers[i].JD < res.Triggers[j].JD
		}
		return res.Triggers[i].Anchor < res.Triggers[j].Anchor
	})

	res.Level = "none"
	if len(res.Triggers) > 0 {
		res.Level = "possible"
	}
	// Cluster by a sliding seven-day window over distinct anchors.
	for i := range res.Triggers {
		group := []models.SudarshanaTrigger{res.Triggers[i]}
		anchorsSeen := map[string]bool{res.Triggers[i].Anchor: true}
		for j := i + 1; j < len(res.Triggers); j++ {
			if math.Abs(res.Triggers[j].JD-res.Triggers[i].JD) > confirmWindowDays {
				break
			}
			if !anchorsSeen[res.Triggers[j].Anchor] {
				anchorsSeen[res.Triggers[j].Anchor] = true
				group = append(group, res.Triggers[j])
			}
		}
		if len(anchorsSeen) >= 2 {
			res.Confirmed = append(res.Confirmed, group)
			if len(anchorsSeen) == 3 {
				res.Level = "guaranteed"
			} else if res.Level != "guaranteed" {
				res.Level = "confirmed"
			}
		}
	}
	return res
}
