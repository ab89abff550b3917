package models

// NakshatraPeriod is one continuous window during which the Moon (or a slow
// transit body) occupies a single nakshatra. Adjacent periods in a calendar
// scan abut exactly: EndJD[i] == StartJD[i+1].
type NakshatraPeriod struct {
	Nakshatra int // 1-based index
	Name      string
	Lord      Planet
	StartJD   float64
	EndJD     float64
	StartDeg  float64 // sidereal longitude at entry
	EndDeg    float64 // sidereal longitude at exit
}

// CalendarRow is the external row shape of the nakshatra calendar
// (local-clock formatting is applied at the boundary).
type CalendarRow struct {
	Nakshatra string `json:"nakshatra"`
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
}

// NakshatraCalendar is the year calendar payload, grouped by month "1".."12".
type NakshatraCalendar struct {
	Year     int                      `json:"year"`
	Location string                   `json:"location"`
	Months   map[string][]CalendarRow `json:"months"`
}
