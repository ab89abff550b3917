package models

// TajikKind is one of the five Tajik orb aspects used in horary work.
type TajikKind string

const (
	TajikConjunction TajikKind = "conjunction"
	TajikSextile     TajikKind = "sextile"
	TajikSquare      TajikKind = "square"
	TajikTrine       TajikKind = "trine"
	TajikOpposition  TajikKind = "opposition"
)

// Angle returns the exact aspect angle in degrees.
func (k TajikKind) Angle() float64 {
	switch k {
	case TajikSextile:
		return 60
	case TajikSquare:
		return 90
	case TajikTrine:
		return 120
	case TajikOpposition:
		return 180
	}
	return 0
}

// TajikAspect is an orb aspect between two planets with its applying or
// separating (Ithasala / Easarpha) classification.
type TajikAspect struct {
	Kind     TajikKind `json:"kind"`
	From     Planet    `json:"from"` // the faster planet
	To       Planet    `json:"to"`
	Gap      float64   `json:"gap_degrees"` // deviation from exact, signed toward application
	Orb      float64   `json:"orb_degrees"`
	Applying bool      `json:"applying"` // true = Ithasala, false = Easarpha
}

// HouseAspect is a discrete Vedic aspect from a planet onto a house.
type HouseAspect struct {
	Planet Planet `json:"planet"`
	House  int    `json:"house"` // aspected house, 1..12
}

// PrashnaVerdict is the horary outcome for one question chart.
type PrashnaVerdict struct {
	Topic      string       `json:"topic"`
	House      int          `json:"house"`
	Answer     string       `json:"answer"`     // YES / NO
	Confidence string       `json:"confidence"` // Low / Medium / High
	Aspect     *TajikAspect `json:"aspect,omitempty"`
	TimingDeg  float64      `json:"timing_degrees"` // gap in degrees ≈ timing units
	MoonHelps  bool         `json:"moon_translation"`
}
