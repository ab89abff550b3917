package models

// Dignity is the classical standing of a planet in a sign.
type Dignity string

const (
	Exalted      Dignity = "exalted"
	Moolatrikona Dignity = "moolatrikona"
	OwnSign      Dignity = "own"
	GreatFriend  Dignity = "great_friend"
	Friend       Dignity = "friend"
	NeutralSign  Dignity = "neutral"
	Enemy        Dignity = "enemy"
	GreatEnemy   Dignity = "great_enemy"
	Debilitated  Dignity = "debilitated"
)

// ShadbalaResult holds the six continuous strength components for one planet.
// All components are in shashtiamsa points; only Drik may go negative.
type ShadbalaResult struct {
	Planet     Planet  `json:"planet"`
	Sthana     float64 `json:"sthana_bala"`
	Dig        float64 `json:"dig_bala"`
	Kala       float64 `json:"kala_bala"`
	Cheshta    float64 `json:"cheshta_bala"`
	Naisargika float64 `json:"naisargika_bala"`
	Drik       float64 `json:"drik_bala"`
	Total      float64 `json:"total_points"`
	Rupas      float64 `json:"total_rupas"`
	Grade      string  `json:"grade"`
	// Saptavargaja sub-score of Sthana is computed over D1/D2/D3/D9 only;
	// the remaining vargas carry the classical "average" placeholder.
	SaptavargajaPartial bool `json:"saptavargaja_partial"`
	// RetroMax records the Cheshta convention in force: retrograde planets
	// receive maximum motional strength.
	RetroMax bool `json:"cheshta_retro_max"`
}

// NeechaBhanga describes a debilitation cancellation, when present.
type NeechaBhanga struct {
	Planet     Planet   `json:"planet"`
	Conditions []string `json:"conditions"`
	Weight     int      `json:"weight"`
	Tier       string   `json:"tier"` // none, weak, partial, strong, complete
}

// PlanetaryWar is a graha yuddha between two non-luminary planets within 1°.
type PlanetaryWar struct {
	Winner Planet  `json:"winner"`
	Loser  Planet  `json:"loser"`
	Gap    float64 `json:"gap_degrees"`
}
