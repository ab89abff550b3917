package dasha

import (
	"Jyotish/internal/domain/models"
)

// CharaLord resolves the Jaimini lord of a sign against a chart. Scorpio and
// Aquarius have two lords; whichever sits deeper into its sign by degree
// rules, the standard Jaimini strength tie-break.
func CharaLord(c *models.BirthChart, s models.Sign) models.Planet {
	pick := func(a, b models.Planet) models.Planet {
		pa, oka := c.Planets[a]
		pb, okb := c.Planets[b]
		switch {
		case oka && okb:
			if pa.Degree >= pb.Degree {
				return a
			}
			return b
		case oka:
			return a
		default:
			return b
		}
	}
	switch s.Norm() {
	case models.Scorpio:
		return pick(models.Mars, models.Ketu)
	case models.Aquarius:
		return pick(models.Saturn, models.Rahu)
	default:
		return s.Lord()
	}
}

// charaYears counts signs from s to the sign its Chara lord occupies, minus
// one; a lord in its own sign yields the full twelve. Odd-footed signs count
// forward, even-footed backward.
func charaYears(c *models.BirthChart, s models.Sign) float64 {
	lord := CharaLord(c, s)
	pos, ok := c.Planets[lord]
	if !ok {
		return 1
	}
	var n int
	if s.Odd() {
		n = ((int(pos.Sign)-int(s))%12 + 12) % 12
	} else {
		n = ((int(s)-int(pos.Sign))%12 + 12) % 12
	}
	if n == 0 {
		return 12
	}
	return float64(n)
}

// CharaPeriods runs the Jaimini sign dasha from the lagna sign. Odd-footed
// lagna groups run forward, even-footed backward, covering one full cycle.
func CharaPeriods(c *models.BirthChart, birthJD float64) []models.SignPeriod {
	lagna := c.AscSign()
	forward := lagna.Odd()
	out := make([]models.SignPeriod, 0, 12)
	cur := birthJD
	for i := 0; i < 12; i++ {
		var s models.Sign
		if forward {
			s = (lagna + models.Sign(i)).Norm()
		} else {
			s = (lagna - models.Sign(i)).Norm()
		}
		d := charaYears(c, s) * DaysPerYear
		out = append(out, models.SignPeriod{Sign: s, Lord: CharaLord(c, s), StartJD: cur, EndJD: cur + d})
		cur += d
	}
	return out
}

// CharaActiveSign returns the running Chara sign period at an instant,
// cycling past the first round when needed.
func CharaActiveSign(c *models.BirthChart, birthJD, atJD float64) models.SignPeriod {
	ps := CharaPeriods(c, birthJD)
	for {
		for _, p := range ps {
			if atJD >= p.StartJD && atJD < p.EndJD {
				return p
			}
		}
		last := ps[len(ps)-1].EndJD
		if atJD < ps[0].StartJD {
			return ps[0]
		}
		shift := last - ps[0].StartJD
		for i := range ps {
			ps[i].StartJD += shift
			ps[i].EndJD += shift
		}
	}
}
