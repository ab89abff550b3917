package models

// LockTier is the Triple-Lock certainty ladder. Each tier implies the one
// below it: triple ⇒ double ⇒ single.
type LockTier string

const (
	SingleLock LockTier = "single"
	DoubleLock LockTier = "double"
	TripleLock LockTier = "triple"
)

// Rank orders tiers for the implication checks.
func (t LockTier) Rank() int {
	switch t {
	case TripleLock:
		return 3
	case DoubleLock:
		return 2
	case SingleLock:
		return 1
	}
	return 0
}

// EventQuality tags the expected texture of a predicted event.
type EventQuality string

const (
	QualitySuccess  EventQuality = "success"
	QualityStruggle EventQuality = "struggle"
	QualityNeutral  EventQuality = "neutral"
)

// EventType names a predictable life event; each maps to a target house and
// a Jaimini karaka.
type EventType string

const (
	EventCareer   EventType = "career"
	EventMarriage EventType = "marriage"
	EventHealth   EventType = "health"
	EventProgeny  EventType = "progeny"
	EventWealth   EventType = "wealth"
	EventForeign  EventType = "foreign_travel"
	EventProperty EventType = "property"
	EventLitigant EventType = "litigation"
)

// Authorization records the Parashari stage: which dasha lords capacitate
// the target house and by how much.
type Authorization struct {
	MD         Planet `json:"md"`
	AD         Planet `json:"ad"`
	PD         Planet `json:"pd"`
	House      int    `json:"house"`
	MDCapacity int    `json:"md_capacity"` // 0..10
	ADCapacity int    `json:"ad_capacity"`
	PDCapacity int    `json:"pd_capacity"`
	Combined   int    `json:"combined"`
}

// Trigger records the transit that fires the authorized window.
type Trigger struct {
	Activation Activation `json:"activation"`
	Transiting Planet     `json:"transiting"`
}

// StageValidation is one predictor stage outcome (Jaimini or Nadi).
type StageValidation struct {
	Validated bool    `json:"validated"`
	Score     float64 `json:"score"`
	Details   string  `json:"details"`
}

// PredictedEvent is the Triple-Lock output unit.
type PredictedEvent struct {
	Type        EventType        `json:"type"`
	House       int              `json:"house"`
	StartJD     float64          `json:"start_jd"`
	PeakJD      float64          `json:"peak_jd"`
	EndJD       float64          `json:"end_jd"`
	Probability int              `json:"probability"` // 0..100
	Tier        LockTier         `json:"certainty_tier"`
	Quality     EventQuality     `json:"quality"`
	Auth        Authorization    `json:"authorization"`
	Trig        Trigger          `json:"trigger"`
	Jaimini     *StageValidation `json:"jaimini,omitempty"`
	Nadi        *StageValidation `json:"nadi,omitempty"`
}

// KarakaRole is a Jaimini Chara Karaka office, assigned by degree ranking.
type KarakaRole string

const (
	Atmakaraka   KarakaRole = "AK"
	Amatyakaraka KarakaRole = "AmK"
	Bhratrikara  KarakaRole = "BK"
	Matrikaraka  KarakaRole = "MK"
	Pitrikaraka  KarakaRole = "PiK"
	Putrakaraka  KarakaRole = "PuK"
	Gnatikaraka  KarakaRole = "GK"
	Darakaraka   KarakaRole = "DK"
)

// KarakaSet maps each role to its planet for one chart.
type KarakaSet map[KarakaRole]Planet
