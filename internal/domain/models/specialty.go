package models

// KotaSection is one of the four concentric rings of the Kota Chakra.
type KotaSection string

const (
	KotaStambha  KotaSection = "stambha"
	KotaMadhya   KotaSection = "madhya"
	KotaPrakaara KotaSection = "prakaara"
	KotaBahya    KotaSection = "bahya"
)

// KotaPlacement locates one transit planet inside the fortress.
type KotaPlacement struct {
	Planet    Planet      `json:"planet"`
	Section   KotaSection `json:"section"`
	Nakshatra int         `json:"nakshatra"`
	Inward    bool        `json:"inward"` // retrograde = moving toward the Stambha
	Malefic   bool        `json:"malefic"`
}

// KotaResult is the fortress-siege assessment.
type KotaResult struct {
	Swami      Planet          `json:"kota_swami"` // lord of the Moon's sign
	Paala      Planet          `json:"kota_paala"` // lord of the Moon's nakshatra
	Placements []KotaPlacement `json:"placements"`
	Score      float64         `json:"score"` // higher = heavier siege
	Alert      string          `json:"alert"` // calm, watch, siege, critical
}

// SudarshanaTrigger is a year-clock conjunction from one of the three anchors.
type SudarshanaTrigger struct {
	Anchor   string  `json:"anchor"` // Lagna, Moon, Sun
	Planet   Planet  `json:"planet"`
	JD       float64 `json:"jd"`
	AgeYears float64 `json:"age_years"`
}

// SudarshanaResult groups triggers and their confirmation level.
type SudarshanaResult struct {
	Triggers  []SudarshanaTrigger   `json:"triggers"`
	Confirmed [][]SudarshanaTrigger `json:"confirmed,omitempty"` // ≥2 anchors within 7 days
	Level     string                `json:"level"`               // none, possible, confirmed, guaranteed
}

// SadeSatiPhase is one contiguous window of Saturn in the 12th/1st/2nd from
// the natal Moon.
type SadeSatiPhase struct {
	Phase   string  `json:"phase"` // rising, peak, setting
	Sign    Sign    `json:"sign"`
	StartJD float64 `json:"start_jd"`
	EndJD   float64 `json:"end_jd"`
}

// TaraBala is the nakshatra count from natal Moon to transit Moon mod 9.
type TaraBala struct {
	Tara      int    `json:"tara"` // 1..9
	Name      string `json:"name"` // Janma, Sampat, ...
	Favorable bool   `json:"favorable"`
}

// ChandraBala is the sign count from natal Moon to transit Moon.
type ChandraBala struct {
	Count     int  `json:"count"` // 1..12
	Favorable bool `json:"favorable"`
}

// TradingScore composes the lunar favourability measures with the running
// dasha lord and the 11th-house SAV into one 0..100 luck score.
type TradingScore struct {
	Score          int         `json:"score"`
	Tara           TaraBala    `json:"tara_bala"`
	Chandra        ChandraBala `json:"chandra_bala"`
	DashaLord      Planet      `json:"dasha_lord"`
	LordNature     Impact      `json:"dasha_lord_nature"`
	GainsSAV       int         `json:"gains_sav"` // SAV bindus of the 11th sign
	Recommendation string      `json:"recommendation"`
}

// KarmaContext is the structured payload the karma narrative consumes.
type KarmaContext struct {
	D60Deities  map[Planet]string `json:"d60_deities"`
	Atmakaraka  Planet            `json:"atmakaraka"`
	AKHouse     int               `json:"atmakaraka_house"`
	Retrogrades []Planet          `json:"retrogrades"`
	RahuHouse   int               `json:"rahu_house"`
	KetuHouse   int               `json:"ketu_house"`
	Gandanta    []Planet          `json:"gandanta_planets"`
	Vargottama  []Planet          `json:"vargottama_planets"`
	PitruDosha  bool              `json:"pitru_dosha"`
	MatruDosha  bool              `json:"matru_dosha"`
}
