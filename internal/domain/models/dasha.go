package models

// DashaSystem names a period system the engine can run.
type DashaSystem string

const (
	Vimshottari DashaSystem = "Vimshottari"
	Kalachakra  DashaSystem = "Kalachakra"
	Yogini      DashaSystem = "Yogini"
	Chara       DashaSystem = "Chara"
	Shoola      DashaSystem = "Shoola"
	Sudarshana  DashaSystem = "Sudarshana"
)

// DashaLevel is one of the five nested Vimshottari levels.
type DashaLevel int

const (
	Maha DashaLevel = iota
	Antara
	Pratyantara
	Sukshma
	Prana
)

var dashaLevelNames = [...]string{"MD", "AD", "PD", "SD", "PrD"}

func (l DashaLevel) String() string {
	if l < Maha || l > Prana {
		return "?"
	}
	return dashaLevelNames[l]
}

// DashaNode is one period window at one level. Children of a node partition
// its window exactly; the tree is materialized lazily by the engine.
type DashaNode struct {
	Level   DashaLevel
	Planet  Planet
	StartJD float64
	EndJD   float64
}

// Years returns the window length in the engine's solar-year convention.
func (n DashaNode) Years(daysPerYear float64) float64 {
	return (n.EndJD - n.StartJD) / daysPerYear
}

// Contains reports whether jd falls inside [StartJD, EndJD).
func (n DashaNode) Contains(jd float64) bool {
	return jd >= n.StartJD && jd < n.EndJD
}

// CurrentDashas is the stack of active periods at one instant, Maha..Prana.
type CurrentDashas [5]DashaNode

// SignPeriod is a Chara (Jaimini) sign-based period.
type SignPeriod struct {
	Sign    Sign
	Lord    Planet
	StartJD float64
	EndJD   float64
}
