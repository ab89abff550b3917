package specialty

import (
	"context"

	"Jyotish/internal/domain/models"
	domsvc "Jyotish/internal/domain/service"
)

// sade sati phases keyed by the offset of Saturn's sign from the natal
// Moon's sign.
var sadeSatiPhase = map[int]string{11: "rising", 0: "peak", 1: "setting"}

// SadeSatiScanner enumerates the windows when transit Saturn sits in the
// 12th, 1st, or 2nd sign from the natal Moon.
type SadeSatiScanner struct {
	eph domsvc.Ephemeris
}

func NewSadeSatiScanner(eph domsvc.Ephemeris) *SadeSatiScanner {
	return &SadeSatiScanner{eph: eph}
}

const (
	monthStep = 30.0
	dayStep   = 1.0
)

// Scan walks the range month by month and refines each phase boundary to
// the day. Boundaries outside the range are clamped to it.
func (s *SadeSatiScanner) Scan(ctx context.Context, natal *models.BirthChart, fromJD, toJD float64) ([]models.SadeSatiPhase, error) {
	moonSign := natal.Planets[models.Moon].Sign

	phaseAt := func(jd float64) (string, models.Sign, error) {
		bp, err := s.eph.Position(jd, int(models.Saturn))
		if err != nil {
			return "", 0, err
		}
		sign := models.Sign(int(bp.Longitude/30)) % 12
		off := ((int(sign)-int(moonSign))%12 + 12) % 12
		return sadeSatiPhase[off], sign, nil
	}

	var out []models.SadeSatiPhase
	var open *models.SadeSatiPhase

	prevPhase, prevSign, err := phaseAt(fromJD)
	if err != nil {
		return nil, err
	}
	if prevPhase != "" {
		open = &models.SadeSatiPhase{Phase: prevPhase, Sign: prevSign, StartJD: fromJD}
	}
	prevJD := fromJD
	for jd := fromJD + monthStep; ; jd += monthStep {
		select {
		case <-ctx.Done():
			if open != nil {
				open.EndJD = prevJD
				out = append(out, *open)
			}
			return out, models.WrapCoded(models.CodeCancelled, "sade sati scan cancelled", ctx.Err())
		default:
		}
		if jd > toJD {
			jd = toJD
		}
		phase, sign, err := phaseAt(jd)
		if err != nil {
			return nil, err
		}
		if phase != prevPhase || sign != prevSign {
			boundary, err := s.refine(prevJD, jd, prevPhase, prevSign, moonSign)
			if err != nil {
				return nil, err
			}
			if open != nil {
				open.EndJD = boundary
				out = append(out, *open)
				open = nil
			}
			if phase != "" {
				open = &models.SadeSatiPhase{Phase: phase, Sign: sign, StartJD: boundary}
			}
		}
		prevPhase, prevSign, prevJD = phase, sign, jd
		if jd >= toJD {
			break
		}
	}
	if open != nil {
		open.EndJD = toJD
		out = append(out, *open)
	}
	return out, nil
}

// refine narrows a phase boundary found between two monthly samples down
// to one day.
func (s *SadeSatiScanner) refine(jd0, jd1 float64, phase0 string, sign0, moonSign models.Sign) (float64, error) {
	for jd1-jd0 > dayStep {
		m := (jd0 + jd1) / 2
		bp, err := s.eph.Position(m, int(models.Saturn))
		if err != nil {
			return 0, err
		}
		sign := models.Sign(int(bp.Longitude/30)) % 12
		off := ((int(sign)-int(moonSign))%12 + 12) % 12
		if sadeSatiPhase[off] == phase0 && sign == sign0 {
			jd0 = m
		} else {
			jd1 = m
		}
	}
	return jd1, nil
}
