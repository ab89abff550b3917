package models

// Requests for the astrology HTTP endpoints. Defined in domain for
// consistency and reuse; binding/validation happens in pkg/http.

// BirthRequest is the shared birth-input block most endpoints take.
type BirthRequest struct {
	Date     string   `query:"date" json:"date" validate:"required,datetime=2006-01-02"`
	Time     string   `query:"time" json:"time" validate:"required"`
	Lat      float64  `query:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon      float64  `query:"lon" json:"lon" validate:"gte=-180,lte=180"`
	TZ       *float64 `query:"tz" json:"tz,omitempty" validate:"omitempty,gte=-14,lte=14"`
	Place    string   `query:"place" json:"place,omitempty"`
	Language string   `query:"lang" json:"lang,omitempty"` // passed through, never interpreted
}

// Spec converts the request into the immutable domain input.
func (r BirthRequest) Spec() BirthSpec {
	return BirthSpec{
		Date:      r.Date,
		Time:      r.Time,
		Latitude:  r.Lat,
		Longitude: r.Lon,
		TZOffset:  r.TZ,
		Place:     r.Place,
	}
}

type ChartRequest struct {
	BirthRequest
	Varga int `query:"varga" json:"varga" default:"1" validate:"oneof=1 3 4 7 9 10 12 16 20 24 27 30 40 45 60"`
}

type DashaRequest struct {
	BirthRequest
	System string `query:"system" json:"system" default:"Vimshottari" validate:"oneof=Vimshottari Kalachakra Yogini Chara Shoola Sudarshana"`
	At     string `query:"at" json:"at,omitempty"` // ISO datetime or JD; empty = now
}

type CalendarRequest struct {
	Year  int      `query:"year" json:"year" validate:"gte=1900,lte=2100"`
	Lat   float64  `query:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon   float64  `query:"lon" json:"lon" validate:"gte=-180,lte=180"`
	TZ    *float64 `query:"tz" json:"tz,omitempty" validate:"omitempty,gte=-14,lte=14"`
	Place string   `query:"place" json:"place,omitempty"`
}

type YogasRequest struct {
	BirthRequest
	Mundane bool `query:"mundane" json:"mundane" default:"false"`
}

// InstantRequest is a birth plus an optional observation instant.
type InstantRequest struct {
	BirthRequest
	At string `query:"at" json:"at,omitempty"` // ISO datetime or JD; empty = now
}

type TransitRequest struct {
	BirthRequest
	From  string   `query:"from" json:"from" validate:"required"`
	To    string   `query:"to" json:"to" validate:"required"`
	Kinds []string `query:"kinds" json:"kinds,omitempty"`
}

type PredictRequest struct {
	BirthRequest
	From   string   `query:"from" json:"from" validate:"required"`
	To     string   `query:"to" json:"to" validate:"required"`
	Events []string `query:"events" json:"events,omitempty"`
	Strict bool     `query:"strict" json:"strict" default:"false"` // strict = short-circuit AND of the three stages
}

type PrashnaRequest struct {
	Topic string   `query:"topic" json:"topic" validate:"required,oneof=career marriage health progeny wealth foreign_travel property litigation"`
	At    string   `query:"at" json:"at,omitempty"` // question time; empty = now
	Lat   float64  `query:"lat" json:"lat" validate:"gte=-90,lte=90"`
	Lon   float64  `query:"lon" json:"lon" validate:"gte=-180,lte=180"`
	TZ    *float64 `query:"tz" json:"tz,omitempty" validate:"omitempty,gte=-14,lte=14"`
}

type RangeRequest struct {
	BirthRequest
	From string `query:"from" json:"from" validate:"required"`
	To   string `query:"to" json:"to" validate:"required"`
}

type TradingRequest struct {
	BirthRequest
	At string `query:"at" json:"at,omitempty"`
}
