package nakshatra

import (
	"context"
	"fmt"
	"sort"
	"time"

	"Jyotish/internal/domain/models"
	domsvc "Jyotish/internal/domain/service"
	"Jyotish/internal/services/timeloc"
	"Jyotish/pkg/util"
)

// CalendarScanner produces the continuous Moon nakshatra-period calendar:
// a gap-free, overlap-free sequence of windows covering a date range.
type CalendarScanner struct {
	eph domsvc.Ephemeris
	// CorrectionDeg shifts every crossing; used only to reproduce a specific
	// external panchang reference, zero otherwise.
	CorrectionDeg float64
}

func NewCalendarScanner(eph domsvc.Ephemeris) *CalendarScanner {
	return &CalendarScanner{eph: eph}
}

// crossing resolution: about one second of time.
const jdResolution = 1.0 / 86400

func (s *CalendarScanner) moonLon(jd float64) (float64, error) {
	p, err := s.eph.Position(jd, int(models.Moon))
	if err != nil {
		return 0, err
	}
	return util.Norm360(p.Longitude + s.CorrectionDeg), nil
}

// Scan returns the NakshatraPeriods covering [fromJD, toJD]. Adjacent
// periods abut exactly: End[i] == Start[i+1].
func (s *CalendarScanner) Scan(ctx context.Context, fromJD, toJD float64) ([]models.NakshatraPeriod, error) {
	if toJD <= fromJD {
		return nil, fmt.Errorf("calendar scan: empty range")
	}
	var out []models.NakshatraPeriod

	cur := fromJD
	lon, err := s.moonLon(cur)
	if err != nil {
		return nil, err
	}
	idx := IndexAt(lon)
	start := cur
	startDeg := lon

	// The Moon never spends more than about 27 hours in one mansion, so a
	// one-hour candidate step can never skip a whole nakshatra.
	const step = 1.0 / 24
	for cur < toJD {
		if err := ctx.Err(); err != nil {
			return out, models.WrapCoded(models.CodeCancelled, "calendar scan cancelled", err)
		}
		next := cur + step
		if next > toJD {
			next = toJD
		}
		lonNext, err := s.moonLon(next)
		if err != nil {
			return nil, err
		}
		idxNext := IndexAt(lonNext)
		if idxNext != idx {
			crossJD, crossDeg, err := s.bisect(cur, next, idx)
			if err != nil {
				return nil, err
			}
			out = append(out, models.NakshatraPeriod{
				Nakshatra: idx + 1,
				Name:      Name(idx + 1),
				Lord:      Lord(idx + 1),
				StartJD:   start,
				EndJD:     crossJD,
				StartDeg:  startDeg,
				EndDeg:    crossDeg,
			})
			idx = idxNext
			start = crossJD
			startDeg = crossDeg
		}
		cur = next
	}
	out = append(out, models.NakshatraPeriod{
		Nakshatra: idx + 1,
		Name:      Name(idx + 1),
		Lord:      Lord(idx + 1),
		StartJD:   start,
		EndJD:     toJD,
		StartDeg:  startDeg,
		EndDeg:    lonAtOrZero(s, toJD),
	})
	return out, nil
}

func hoursDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}

func lonAtOrZero(s *CalendarScanner, jd float64) float64 {
	l, err := s.moonLon(jd)
	if err != nil {
		return 0
	}
	return l
}

// bisect brackets the instant the Moon leaves nakshatra index lowIdx between
// lo and hi, to sub-second resolution.
func (s *CalendarScanner) bisect(lo, hi float64, lowIdx int) (jd, deg float64, err error) {
	for hi-lo > jdResolution {
		mid := (lo + hi) / 2
		lon, err := s.moonLon(mid)
		if err != nil {
			return 0, 0, err
		}
		if IndexAt(lon) == lowIdx {
			lo = mid
		} else {
			hi = mid
		}
	}
	lon, err := s.moonLon(hi)
	if err != nil {
		return 0, 0, err
	}
	return hi, lon, nil
}

// YearCalendar builds the external payload for a calendar year at a location,
// grouped by month with local 12-hour clock formatting. Deduplication keeps
// at most one row per (nakshatra, start-date) per month, guarding against
// near-boundary recomputations from the root-finder.
func (s *CalendarScanner) YearCalendar(ctx context.Context, year int, tzOffset float64, place string) (*models.NakshatraCalendar, error) {
	tl := timeloc.New()
	fromJD, err := tl.ToJulianDay(fmt.Sprintf("%04d-01-01", year), "00:00", tzOffset)
	if err != nil {
		return nil, err
	}
	toJD, err := tl.ToJulianDay(fmt.Sprintf("%04d-01-01", year+1), "00:00", tzOffset)
	if err != nil {
		return nil, err
	}
	periods, err := s.Scan(ctx, fromJD, toJD)
	if err != nil {
		return nil, err
	}

	cal := &models.NakshatraCalendar{
		Year:     year,
		Location: place,
		Months:   make(map[string][]models.CalendarRow, 12),
	}
	seen := make(map[string]bool)
	for _, p := range periods {
		sd, st := timeloc.FormatLocal(p.StartJD, tzOffset)
		ed, et := timeloc.FormatLocal(p.EndJD, tzOffset)
		key := fmt.Sprintf("%s|%s", p.Name, sd)
		if seen[key] {
			continue
		}
		seen[key] = true
		month := fmt.Sprintf("%d", int(timeloc.JDToUTC(p.StartJD).Add(hoursDuration(tzOffset)).Month()))
		cal.Months[month] = append(cal.Months[month], models.CalendarRow{
			Nakshatra: p.Name,
			StartDate: sd,
			StartTime: st,
			EndDate:   ed,
			EndTime:   et,
		})
	}
	for m := range cal.Months {
		rows := cal.Months[m]
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].StartDate < rows[j].StartDate })
		cal.Months[m] = rows
	}
	return cal, nil
}
