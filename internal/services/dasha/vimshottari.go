package dasha

import (
	"fmt"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/nakshatra"
	"Jyotish/pkg/util"
)

// DaysPerYear is the single solar-year convention used by every dasha
// computation in the engine. Chosen once; external panchang tables using the
// Julian (365.25) or Gregorian (365.2425) year will drift by hours per
// decade against these boundaries.
const DaysPerYear = 365.242199

// Vimshottari cycle: fixed planet order and year allotments, summing to 120.
var (
	vimOrder = [9]models.Planet{
		models.Ketu, models.Venus, models.Sun, models.Moon, models.Mars,
		models.Rahu, models.Jupiter, models.Saturn, models.Mercury,
	}
	vimYears = map[models.Planet]float64{
		models.Ketu: 7, models.Venus: 20, models.Sun: 6, models.Moon: 10,
		models.Mars: 7, models.Rahu: 18, models.Jupiter: 16, models.Saturn: 19,
		models.Mercury: 17,
	}
	vimIndex = map[models.Planet]int{}
)

func init() {
	for i, p := range vimOrder {
		vimIndex[p] = i
	}
}

// nakshatra span on the 600-units-per-degree integer grid.
const nakSpanUnits = int64(8000) // 13°20' × 600

// Engine computes Vimshottari trees. The five-level tree is materialized
// lazily: children are derived on demand from a parent window, never stored.
type Engine struct{}

func NewEngine() *Engine { return &Engine{} }

// Mahadashas returns the balance-of-birth first period plus full periods
// covering at least 120 years from birth. The first window is truncated by
// the arc remaining in the Moon's nakshatra at birth.
func (e *Engine) Mahadashas(birthJD, moonLon float64) []models.DashaNode {
	ref := nakshatra.Resolve(moonLon)
	lord := ref.Lord

	units := util.ArcMinutes(moonLon)
	within := units % nakSpanUnits
	remaining := float64(nakSpanUnits-within) / float64(nakSpanUnits)

	out := make([]models.DashaNode, 0, 10)
	start := birthJD
	idx := vimIndex[lord]
	first := vimYears[lord] * remaining * DaysPerYear
	out = append(out, models.DashaNode{Level: models.Maha, Planet: lord, StartJD: start, EndJD: start + first})
	start += first
	// nine further full periods always cross the 120-year mark
	for i := 1; i <= 9; i++ {
		p := vimOrder[(idx+i)%9]
		d := vimYears[p] * DaysPerYear
		out = append(out, models.DashaNode{Level: models.Maha, Planet: p, StartJD: start, EndJD: start + d})
		start += d
	}
	return out
}

// Children partitions a parent window among the nine planets starting at the
// parent's own planet. The child durations are proportional shares, so they
// sum to the parent duration exactly up to float addition.
func (e *Engine) Children(parent models.DashaNode) []models.DashaNode {
	if parent.Level >= models.Prana {
		return nil
	}
	dur := parent.EndJD - parent.StartJD
	out := make([]models.DashaNode, 0, 9)
	start := parent.StartJD
	idx := vimIndex[parent.Planet]
	for i := 0; i < 9; i++ {
		p := vimOrder[(idx+i)%9]
		d := dur * vimYears[p] / 120
		end := start + d
		if i == 8 {
			end = parent.EndJD // close the window exactly
		}
		out = append(out, models.DashaNode{Level: parent.Level + 1, Planet: p, StartJD: start, EndJD: end})
		start = end
	}
	return out
}

// Current returns the active node at each of the five levels for an instant.
func (e *Engine) Current(birthJD, moonLon, atJD float64) (models.CurrentDashas, error) {
	var cur models.CurrentDashas
	mds := e.Mahadashas(birthJD, moonLon)
	node, ok := e.extend(mds, atJD)
	if !ok {
		return cur, fmt.Errorf("dasha: instant %f before birth", atJD)
	}
	cur[models.Maha] = node
	for lvl := models.Antara; lvl <= models.Prana; lvl++ {
		found := false
		for _, ch := range e.Children(node) {
			if ch.Contains(atJD) || (atJD == ch.EndJD && ch.EndJD == node.EndJD) {
				node = ch
				found = true
				break
			}
		}
		if !found {
			return cur, fmt.Errorf("dasha: level %s window not found", lvl)
		}
		cur[lvl] = node
	}
	return cur, nil
}

// extend finds (or cyclically extends to) the mahadasha containing atJD.
func (e *Engine) extend(mds []models.DashaNode, atJD float64) (models.DashaNode, bool) {
	if atJD < mds[0].StartJD {
		return models.DashaNode{}, false
	}
	for _, md := range mds {
		if md.Contains(atJD) {
			return md, true
		}
	}
	// beyond the materialized list: keep cycling
	last := mds[len(mds)-1]
	idx := vimIndex[last.Planet]
	start := last.EndJD
	for i := 1; ; i++ {
		p := vimOrder[(idx+i)%9]
		d := vimYears[p] * DaysPerYear
		n := models.DashaNode{Level: models.Maha, Planet: p, StartJD: start, EndJD: start + d}
		if n.Contains(atJD) {
			return n, true
		}
		start += d
	}
}

// ChangePoints lists every JD in [fromJD, toJD] where any of the five levels
// transitions, ascending. Used by the transit window scanner.
func (e *Engine) ChangePoints(birthJD, moonLon, fromJD, toJD float64) []float64 {
	var out []float64
	var walk func(n models.DashaNode)
	walk = func(n models.DashaNode) {
		if n.EndJD < fromJD || n.StartJD > toJD {
			return
		}
		if n.EndJD >= fromJD && n.EndJD <= toJD {
			out = append(out, n.EndJD)
		}
		for _, ch := range e.Children(n) {
			walk(ch)
		}
	}
	for _, md := range e.Mahadashas(birthJD, moonLon) {
		walk(md)
	}
	dedupSortFloats(&out)
	return out
}

func dedupSortFloats(xs *[]float64) {
	s := *xs
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j] < s[j-1]; j-- {
			s[j], s[j-1] = s[j-1], s[j]
		}
	}
	out := s[:0]
	for i, v := range s {
		if i == 0 || v != s[i-1] {
			out = append(out, v)
		}
	}
	*xs = out
}
