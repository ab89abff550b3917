package models

// External JSON payload shapes; all degrees are decimal.
// These are the only serialization forms the core owns.

type NakshatraPayload struct {
	Name string `json:"name"`
	Pada int    `json:"pada"`
	Lord string `json:"lord"`
}

type PlanetPayload struct {
	Longitude  float64          `json:"longitude"`
	Sign       int              `json:"sign"`
	SignName   string           `json:"sign_name"`
	House      int              `json:"house"`
	Degree     float64          `json:"degree"`
	Retrograde bool             `json:"retrograde"`
	Nakshatra  NakshatraPayload `json:"nakshatra"`
}

type AscendantPayload struct {
	Sign         int     `json:"sign"`
	SignName     string  `json:"sign_name"`
	DegreeInSign float64 `json:"degree_in_sign"`
}

type HousePayload struct {
	Sign     int    `json:"sign"`
	SignName string `json:"sign_name"`
	Lord     string `json:"lord"`
}

type ChartPayload struct {
	Ascendant AscendantPayload         `json:"ascendant"`
	Planets   map[string]PlanetPayload `json:"planets"`
	Houses    []HousePayload           `json:"houses"`
	Ayanamsa  float64                  `json:"ayanamsa"`
}

// ChartPayloadOf serializes a BirthChart to the stable external shape.
func ChartPayloadOf(c *BirthChart) ChartPayload {
	asc := c.AscSign()
	out := ChartPayload{
		Ascendant: AscendantPayload{
			Sign:         int(asc),
			SignName:     asc.String(),
			DegreeInSign: c.Ascendant - float64(int(asc))*30,
		},
		Planets:  make(map[string]PlanetPayload, len(c.Planets)),
		Houses:   make([]HousePayload, 12),
		Ayanamsa: c.Ayanamsa,
	}
	for p, pos := range c.Planets {
		out.Planets[p.String()] = PlanetPayload{
			Longitude:  pos.Longitude,
			Sign:       int(pos.Sign),
			SignName:   pos.Sign.String(),
			House:      pos.House,
			Degree:     pos.Degree,
			Retrograde: pos.Retrograde,
			Nakshatra: NakshatraPayload{
				Name: pos.Nakshatra.Name,
				Pada: pos.Nakshatra.Pada,
				Lord: pos.Nakshatra.Lord.String(),
			},
		}
	}
	for h := 1; h <= 12; h++ {
		s := c.SignOfHouse(h)
		out.Houses[h-1] = HousePayload{Sign: int(s), SignName: s.String(), Lord: s.Lord().String()}
	}
	return out
}

type DashaWindowPayload struct {
	Planet   string  `json:"planet"`
	StartISO string  `json:"start_iso_utc"`
	EndISO   string  `json:"end_iso_utc"`
	Years    float64 `json:"years,omitempty"`
}

type DashaPayload struct {
	System     string                        `json:"system"`
	Current    map[string]DashaWindowPayload `json:"current"`
	Mahadashas []DashaWindowPayload          `json:"mahadashas"`
}
