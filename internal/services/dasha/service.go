package dasha

import (
	"fmt"
	"time"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/timeloc"
)

// Service is the query surface over all supported period systems.
type Service struct {
	vim *Engine
	kc  *KalachakraEngine
}

func NewService(manushya ManushyaRule) *Service {
	return &Service{vim: NewEngine(), kc: NewKalachakra(manushya)}
}

// Vimshottari exposes the canonical engine for callers that walk the tree.
func (s *Service) Vimshottari() *Engine { return s.vim }

// Result builds the external DashaPayload for one system at one instant.
// Sign-based systems (Chara, Shoola, Sudarshana) report the active sign's
// lord as the period planet.
func (s *Service) Result(system models.DashaSystem, c *models.BirthChart, atJD float64) (*models.DashaPayload, error) {
	moon, ok := c.Planets[models.Moon]
	if !ok {
		return nil, fmt.Errorf("dasha: chart has no Moon")
	}
	payload := &models.DashaPayload{
		System:  string(system),
		Current: make(map[string]models.DashaWindowPayload, 5),
	}

	switch system {
	case models.Vimshottari:
		cur, err := s.vim.Current(c.JD, moon.Longitude, atJD)
		if err != nil {
			return nil, err
		}
		for lvl := models.Maha; lvl <= models.Prana; lvl++ {
			payload.Current[lvl.String()] = windowPayload(cur[lvl])
		}
		for _, md := range s.vim.Mahadashas(c.JD, moon.Longitude) {
			payload.Mahadashas = append(payload.Mahadashas, windowPayload(md))
		}
	case models.Kalachakra:
		mds := s.kc.Mahadashas(c.JD, moon.Longitude)
		for _, md := range mds {
			payload.Mahadashas = append(payload.Mahadashas, windowPayload(md))
			if md.Contains(atJD) {
				payload.Current["MD"] = windowPayload(md)
			}
		}
	case models.Yogini:
		for _, md := range YoginiMahadashas(c.JD, moon.Longitude) {
			payload.Mahadashas = append(payload.Mahadashas, windowPayload(md))
			if md.Contains(atJD) {
				payload.Current["MD"] = windowPayload(md)
			}
		}
	case models.Chara:
		for _, sp := range CharaPeriods(c, c.JD) {
			payload.Mahadashas = append(payload.Mahadashas, signWindowPayload(sp))
			if atJD >= sp.StartJD && atJD < sp.EndJD {
				payload.Current["MD"] = signWindowPayload(sp)
			}
		}
	case models.Shoola:
		for _, sp := range ShoolaPeriods(c.JD, c.AscSign()) {
			payload.Mahadashas = append(payload.Mahadashas, signWindowPayload(sp))
			if atJD >= sp.StartJD && atJD < sp.EndJD {
				payload.Current["MD"] = signWindowPayload(sp)
			}
		}
	case models.Sudarshana:
		for _, sp := range SudarshanaPeriods(c.JD, c.AscSign()) {
			if atJD >= sp.StartJD && atJD < sp.EndJD {
				payload.Current["MD"] = signWindowPayload(sp)
				payload.Mahadashas = append(payload.Mahadashas, signWindowPayload(sp))
			}
		}
	default:
		return nil, fmt.Errorf("dasha: unknown system %q", system)
	}
	return payload, nil
}

func windowPayload(n models.DashaNode) models.DashaWindowPayload {
	return models.DashaWindowPayload{
		Planet:   n.Planet.String(),
		StartISO: iso(n.StartJD),
		EndISO:   iso(n.EndJD),
		Years:    n.Years(DaysPerYear),
	}
}

func signWindowPayload(sp models.SignPeriod) models.DashaWindowPayload {
	return models.DashaWindowPayload{
		Planet:   sp.Lord.String(),
		StartISO: iso(sp.StartJD),
		EndISO:   iso(sp.EndJD),
		Years:    (sp.EndJD - sp.StartJD) / DaysPerYear,
	}
}

func iso(jd float64) string {
	return timeloc.JDToUTC(jd).Truncate(time.Second).Format(time.RFC3339)
}
