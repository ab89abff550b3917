package models

// ActivationKind classifies a transit tracker emission.
type ActivationKind string

const (
	KindIngress      ActivationKind = "ingress"
	KindAspectOnset  ActivationKind = "aspect_onset"
	KindAspectPeak   ActivationKind = "aspect_peak"
	KindAspectOff    ActivationKind = "aspect_off"
	KindNakCross     ActivationKind = "nak_cross"
	KindRetroStation ActivationKind = "retro_station"
	KindEclipseNear  ActivationKind = "eclipse_near"
)

// kindPriority orders activations sharing a timestamp so the stream is
// deterministic: ingresses first, then aspect phases, then the rest.
var kindPriority = map[ActivationKind]int{
	KindIngress:      0,
	KindAspectOnset:  1,
	KindAspectPeak:   2,
	KindAspectOff:    3,
	KindNakCross:     4,
	KindRetroStation: 5,
	KindEclipseNear:  6,
}

// Priority returns the tie-break rank of the kind.
func (k ActivationKind) Priority() int { return kindPriority[k] }

// Impact is the classical benefic/malefic/neutral tag of an activation.
type Impact string

const (
	ImpactBenefic Impact = "benefic"
	ImpactMalefic Impact = "malefic"
	ImpactNeutral Impact = "neutral"
)

// Activation is a single timestamped transit trigger against a natal chart.
type Activation struct {
	JD          float64        `json:"jd"`
	Kind        ActivationKind `json:"kind"`
	Planet      Planet         `json:"planet"`
	NatalTarget string         `json:"natal_target,omitempty"` // natal planet name, "Lagna", "MrityuBhaga:<p>", "BhriguBindu"
	TargetHouse int            `json:"target_house,omitempty"` // 1..12, when house-scoped
	Sign        Sign           `json:"sign,omitempty"`         // for ingress/nak_cross
	Nakshatra   int            `json:"nakshatra,omitempty"`    // for nak_cross
	Gap         float64        `json:"gap_degrees,omitempty"`  // aspect gap at emission
	Strength    float64        `json:"strength"`               // 0..1
	Impact      Impact         `json:"impact"`
}

// Before orders activations by JD, then kind priority, then planet index,
// giving the deterministic stream the scanner guarantees.
func (a Activation) Before(b Activation) bool {
	if a.JD != b.JD {
		return a.JD < b.JD
	}
	if pa, pb := a.Kind.Priority(), b.Kind.Priority(); pa != pb {
		return pa < pb
	}
	return a.Planet < b.Planet
}

// ScanResult is a transit scan outcome. Cancelled scans return the partial
// stream with Cancelled set instead of failing outright.
type ScanResult struct {
	Activations []Activation `json:"activations"`
	Cancelled   bool         `json:"cancelled,omitempty"`
}
