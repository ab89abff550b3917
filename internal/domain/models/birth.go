package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// BirthSpec is the immutable birth input: local civil date/time plus
// geographic coordinates and an optional explicit UTC offset.
type BirthSpec struct {
	Date      string // ISO 8601 calendar date, e.g. "1990-01-01"
	Time      string // "HH:MM" or "HH:MM:SS", 24-hour local clock
	Latitude  float64
	Longitude float64
	TZOffset  *float64 // hours east of UTC; nil means "infer from coordinates"
	Place     string   // opaque display label, never used in computation
}

// Hash keys chart/dasha/calendar caches. The digest covers only the fields
// that change the computation; Place is deliberately excluded.
func (b BirthSpec) Hash() string {
	lat := strconv.FormatFloat(b.Latitude, 'f', -1, 64)
	lon := strconv.FormatFloat(b.Longitude, 'f', -1, 64)
	tz := "auto"
	if b.TZOffset != nil {
		tz = strconv.FormatFloat(*b.TZOffset, 'f', -1, 64)
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s_%s_%s_%s_%s", b.Date, b.Time, lat, lon, tz)))
	return hex.EncodeToString(sum[:])
}
