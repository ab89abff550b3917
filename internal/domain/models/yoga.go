package models

// YogaClass separates natal chart yogas from mundane (world-chart) yogas.
type YogaClass string

const (
	YogaNatal   YogaClass = "natal"
	YogaMundane YogaClass = "mundane"
)

// YogaMatch is one detected named configuration with its strength.
type YogaMatch struct {
	Name     string    `json:"name"`
	Class    YogaClass `json:"class"`
	Planets  []Planet  `json:"planets"`
	Houses   []int     `json:"houses,omitempty"`
	Strength float64   `json:"strength"` // 0..1
	Note     string    `json:"note,omitempty"`
}

// AshtakavargaResult carries the per-planet bindu rows and the aggregate.
type AshtakavargaResult struct {
	BAV   map[Planet][12]int `json:"bav"`
	Lagna [12]int            `json:"lagna_bav"`
	SAV   [12]int            `json:"sav"`
}

// SAVTotal sums the aggregate grid; 337 for a well-formed mask set.
func (a AshtakavargaResult) SAVTotal() int {
	t := 0
	for _, v := range a.SAV {
		t += v
	}
	return t
}

// SAVGrade thresholds a sign's aggregate bindus.
func SAVGrade(bindus int) string {
	switch {
	case bindus > 30:
		return "strong"
	case bindus < 25:
		return "weak"
	default:
		return "average"
	}
}
