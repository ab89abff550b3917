package timeloc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"Jyotish/internal/domain/models"

	"github.com/soniakeys/meeus/v3/julian"
)

var (
	ErrInvalidDate        = models.NewCodedError(models.CodeInvalidDate, "malformed or impossible calendar date")
	ErrInvalidTime        = models.NewCodedError(models.CodeInvalidTime, "malformed or impossible clock time")
	ErrInvalidCoordinates = models.NewCodedError(models.CodeInvalidCoordinates, "coordinates out of range")
	ErrAmbiguousTimezone  = models.NewCodedError(models.CodeAmbiguousTimezone, "timezone inference yielded multiple candidates")
)

// Service converts civil birth input into Julian Day UT and resolves
// timezone offsets from coordinates when the caller supplied none.
// It never silently corrects input: every call returns a JD or an error.
type Service struct{}

func New() *Service { return &Service{} }

// ToJulianDay parses an ISO date plus 24-hour clock time in the given UTC
// offset and returns the Julian Day UT.
func (s *Service) ToJulianDay(date, clock string, tzOffsetHours float64) (float64, error) {
	y, m, d, err := parseDate(date)
	if err != nil {
		return 0, err
	}
	hh, mm, ss, err := parseClock(clock)
	if err != nil {
		return 0, err
	}
	dayFrac := (float64(hh) + float64(mm)/60 + float64(ss)/3600 - tzOffsetHours) / 24
	return julian.CalendarGregorianToJD(y, m, float64(d)+dayFrac), nil
}

// BirthJD resolves a full BirthSpec, inferring the offset when absent.
func (s *Service) BirthJD(b models.BirthSpec) (jd float64, tz float64, err error) {
	if b.Latitude < -90 || b.Latitude > 90 || b.Longitude < -180 || b.Longitude > 180 {
		return 0, 0, ErrInvalidCoordinates
	}
	if b.TZOffset != nil {
		tz = *b.TZOffset
	} else {
		tz, err = s.InferTZOffset(b.Latitude, b.Longitude)
		if err != nil {
			return 0, 0, err
		}
	}
	jd, err = s.ToJulianDay(b.Date, b.Time, tz)
	return jd, tz, err
}

// zoneBand is a coordinate box with a known civil offset, covering the
// half- and quarter-hour zones a pure lon/15 rule gets wrong.
type zoneBand struct {
	minLat, maxLat, minLon, maxLon float64
	offset                         float64
}

var zoneBands = []zoneBand{
	{6, 37, 68, 97.5, 5.5},      // India, Sri Lanka
	{26, 31, 80, 88.3, 5.75},    // Nepal
	{25, 40, 44, 64, 3.5},       // Iran
	{46, 52, -60, -52, -3.5},    // Newfoundland
	{-39, -10, 129, 141, 9.5},   // central Australia
	{9.5, 28.6, 92.2, 101, 6.5}, // Myanmar
}

// InferTZOffset falls back from the band table to a whole-hour zone from
// longitude. Points within a degree of a whole-hour boundary are ambiguous
// when the caller provided no offset.
func (s *Service) InferTZOffset(lat, lon float64) (float64, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return 0, ErrInvalidCoordinates
	}
	var hits []float64
	for _, zb := range zoneBands {
		if lat >= zb.minLat && lat <= zb.maxLat && lon >= zb.minLon && lon <= zb.maxLon {
			hits = append(hits, zb.offset)
		}
	}
	if len(hits) == 1 {
		return hits[0], nil
	}
	if len(hits) > 1 {
		return 0, ErrAmbiguousTimezone
	}
	zone := math.Round(lon / 15)
	// distance to the nearest zone meridian boundary
	if math.Abs(lon-(zone*15-7.5)) < 1 || math.Abs(lon-(zone*15+7.5)) < 1 {
		return 0, ErrAmbiguousTimezone
	}
	return zone, nil
}

// ParseInstant accepts an ISO datetime (assumed UTC when no offset), an ISO
// date, or a numeric Julian Day.
func (s *Service) ParseInstant(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, ErrInvalidDate
	}
	if jd, err := strconv.ParseFloat(v, 64); err == nil && jd > 100000 {
		return jd, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return julian.TimeToJD(t.UTC()), nil
		}
	}
	return 0, ErrInvalidDate
}

// JDToUTC converts a Julian Day UT to a civil UTC time.
func JDToUTC(jd float64) time.Time { return julian.JDToTime(jd).UTC() }

// UTCToJD converts a civil time to Julian Day UT.
func UTCToJD(t time.Time) float64 { return julian.TimeToJD(t.UTC()) }

// FormatLocal renders a JD in the 12-hour local clock the calendar payload
// uses, for the given fixed offset. JD arithmetic lands a hair under the
// intended second, so the time is rounded to the minute before formatting.
func FormatLocal(jd, tzOffsetHours float64) (date, clock string) {
	t := JDToUTC(jd).Add(time.Duration(tzOffsetHours * float64(time.Hour))).Round(time.Minute)
	return t.Format("2006-01-02"), t.Format("03:04 PM")
}

func parseDate(date string) (y, m, d int, err error) {
	t, perr := time.Parse("2006-01-02", date)
	if perr != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t.Year(), int(t.Month()), t.Day(), nil
}

func parseClock(clock string) (hh, mm, ss int, err error) {
	parts := strings.Split(clock, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	nums := make([]int, len(parts))
	for i, p := range parts {
		n, perr := strconv.Atoi(p)
		if perr != nil {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
		}
		nums[i] = n
	}
	hh, mm = nums[0], nums[1]
	if len(nums) == 3 {
		ss = nums[2]
	}
	if hh < 0 || hh > 23 || mm < 0 || mm > 59 || ss < 0 || ss > 59 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTime, clock)
	}
	return hh, mm, ss, nil
}
