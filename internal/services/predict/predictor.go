package predict

import (
	"context"
	"math"
	"sort"

	"Jyotish/internal/domain/models"
	"Jyotish/internal/services/aspect"
	"Jyotish/internal/services/dasha"
	"Jyotish/internal/services/transit"
)

// eventTable maps each predictable event to its target house and the
// Jaimini karaka that must co-sign it.
var eventTable = map[models.EventType]struct {
	House  int
	Karaka models.KarakaRole
}{
	models.EventCareer:   {10, models.Amatyakaraka},
	models.EventMarriage: {7, models.Darakaraka},
	models.EventHealth:   {6, models.Gnatikaraka},
	models.EventProgeny:  {5, models.Putrakaraka},
	models.EventWealth:   {2, models.Atmakaraka},
	models.EventForeign:  {12, models.Atmakaraka},
	models.EventProperty: {4, models.Matrikaraka},
	models.EventLitigant: {6, models.Gnatikaraka},
}

// Config tunes the lock thresholds.
type Config struct {
	AuthThreshold int     // combined MD+AD+PD capacity needed for a single lock
	SniperOrbDeg  float64 // Nadi stage exactness bound
	Strict        bool    // emit only triple locks when set
}

func DefaultConfig() Config {
	return Config{AuthThreshold: 15, SniperOrbDeg: 0.20}
}

// Predictor runs the three-stage lock pipeline over a future range.
type Predictor struct {
	vim     *dasha.Engine
	tracker *transit.Tracker
	cfg     Config
}

func NewPredictor(vim *dasha.Engine, tracker *transit.Tracker, cfg Config) *Predictor {
	return &Predictor{vim: vim, tracker: tracker, cfg: cfg}
}

// Capacity scores a dasha lord's hold on a house, 0..10: ownership,
// occupancy, aspect, and angular relation to the house lord each add.
func Capacity(c *models.BirthChart, lord models.Planet, house int) int {
	score := 0
	pos, ok := c.Planets[lord]
	if !ok {
		return 0
	}
	if c.SignOfHouse(house).Lord() == lord {
		score += 3
	}
	if pos.House == house {
		score += 3
	}
	if aspect.SignAspects(lord, pos.Sign, c.SignOfHouse(house)) {
		score += 2
	}
	hl := c.HouseLord(house)
	if hlPos, ok := c.Planets[hl]; ok && hl != lord {
		d := ((int(pos.Sign)-int(hlPos.Sign))%12 + 12) % 12
		switch d {
		case 0, 3, 4, 6, 8, 9:
			score += 2
		}
	}
	if score > 10 {
		score = 10
	}
	return score
}

// Predict scans [startJD, endJD] for the requested event types. Windows
// follow Pratyantara boundaries; each window is authorized, cross-checked
// and sniped independently.
func (pr *Predictor) Predict(ctx context.Context, c *models.BirthChart, types []models.EventType, startJD, endJD float64) ([]models.PredictedEvent, error) {
	if len(types) == 0 {
		for t := range eventTable {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	}
	moonLon := c.Planets[models.Moon].Longitude
	karakas := CharaKarakas(c)

	var events []models.PredictedEvent
	for _, win := range pr.pdWindows(c.JD, moonLon, startJD, endJD) {
		select {
		case <-ctx.Done():
			return events, models.WrapCoded(models.CodeCancelled, "prediction scan cancelled", ctx.Err())
		default:
		}
		cur, err := pr.vim.Current(c.JD, moonLon, (win.start+win.end)/2)
		if err != nil {
			return nil, err
		}
		md, ad, pd := cur[models.Maha].Planet, cur[models.Antara].Planet, cur[models.Pratyantara].Planet

		// One transit pass per window feeds every event type.
		scan, err := pr.tracker.Scan(ctx, c, win.start, win.end, transit.Filter{
			models.KindAspectPeak: true, models.KindAspectOnset: true, models.KindAspectOff: true,
		})
		if err != nil {
			return events, err
		}

		for _, typ := range types {
			spec, ok := eventTable[typ]
			if !ok {
				continue
			}
			auth := models.Authorization{
				MD: md, AD: ad, PD: pd, House: spec.House,
				MDCapacity: Capacity(c, md, spec.House),
				ADCapacity: Capacity(c, ad, spec.House),
				PDCapacity: Capacity(c, pd, spec.House),
			}
			auth.Combined = auth.MDCapacity + auth.ADCapacity + auth.PDCapacity
			if auth.Combined < pr.cfg.AuthThreshold {
				continue
			}

			trig, ok := pr.pickTrigger(c, scan.Activations, spec.House)
			if !ok {
				continue
			}

			ev := models.PredictedEvent{
				Type: typ, House: spec.House,
				StartJD: win.start, PeakJD: trig.Activation.JD, EndJD: win.end,
				Tier: models.SingleLock, Auth: auth, Trig: trig,
			}

			jaimini := pr.jaiminiStage(c, karakas[spec.Karaka], md, ad, pd, win)
			ev.Jaimini = &jaimini
			if jaimini.Validated {
				ev.Tier = models.DoubleLock
			}

			if ev.Tier == models.DoubleLock {
				nadi := pr.nadiStage(scan.Activations, spec.House, md, ad, pd)
				ev.Nadi = &nadi
				if nadi.Validated {
					ev.Tier = models.TripleLock
				}
			}

			if pr.cfg.Strict && ev.Tier != models.TripleLock {
				continue
			}
			ev.Probability = probability(ev)
			ev.Quality = pr.quality(c, md, ad, pd, trig.Transiting)
			events = append(events, ev)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].PeakJD != events[j].PeakJD {
			return events[i].PeakJD < events[j].PeakJD
		}
		return events[i].Type < events[j].Type
	})
	return events, nil
}

type window struct{ start, end float64 }

// pdWindows slices a range along Pratyantara boundaries.
func (pr *Predictor) pdWindows(birthJD, moonLon, fromJD, toJD float64) []window {
	var out []window
	at := fromJD
	for at < toJD {
		cur, err := pr.vim.Current(birthJD, moonLon, at)
		if err != nil {
			break
		}
		pd := cur[models.Pratyantara]
		end := pd.EndJD
		if end > toJD {
			end = toJD
		}
		start := pd.StartJD
		if start < fromJD {
			start = fromJD
		}
		out = append(out, window{start: start, end: end})
		at = pd.EndJD + 1e-6
	}
	return out
}

// pickTrigger selects the tightest activation striking the target house:
// peaks outrank onsets, then earlier JD wins.
func (pr *Predictor) pickTrigger(c *models.BirthChart, acts []models.Activation, house int) (models.Trigger, bool) {
	var best *models.Activation
	for i := range acts {
		a := acts[i]
		if a.TargetHouse != house {
			continue
		}
		if best == nil {
			best = &acts[i]
			continue
		}
		bestPeak := best.Kind == models.KindAspectPeak
		curPeak := a.Kind == models.KindAspectPeak
		if curPeak != bestPeak {
			if curPeak {
				best = &acts[i]
			}
			continue
		}
		if a.JD < best.JD {
			best = &acts[i]
		}
	}
	if best == nil {
		return models.Trigger{}, false
	}
	return models.Trigger{Activation: *best, Transiting: best.Planet}, true
}

// jaiminiStage checks the event karaka: active through the Chara dasha
// sign, holding a current Vimshottari office, or angular to the MD lord.
func (pr *Predictor) jaiminiStage(c *models.BirthChart, karaka, md, ad, pd models.Planet, win window) models.StageValidation {
	kp, ok := c.Planets[karaka]
	if !ok {
		return models.StageValidation{Details: "karaka unplaced"}
	}
	active := dasha.CharaActiveSign(c, c.JD, (win.start+win.end)/2)
	if active.Sign == kp.Sign || active.Sign.Lord() == karaka {
		return models.StageValidation{Validated: true, Score: 1, Details: "karaka active in Chara dasha"}
	}
	if karaka == md || karaka == ad || karaka == pd {
		return models.StageValidation{Validated: true, Score: 0.8, Details: "karaka holds a Vimshottari office"}
	}
	if mdPos, ok := c.Planets[md]; ok {
		d := ((int(kp.Sign)-int(mdPos.Sign))%12 + 12) % 12
		switch d {
		case 0, 3, 4, 6, 8, 9:
			return models.StageValidation{Validated: true, Score: 0.6, Details: "karaka angular or trinal to MD lord"}
		}
	}
	return models.StageValidation{Score: 0.2, Details: "karaka unsupported"}
}

// nadiStage demands an exact strike: an activation by a dasha lord within
// the sniper orb of a natal point tied to the target house, the Bhrigu
// Bindu, or a Mrityu Bhaga degree.
func (pr *Predictor) nadiStage(acts []models.Activation, house int, md, ad, pd models.Planet) models.StageValidation {
	for _, a := range acts {
		if a.Kind != models.KindAspectPeak || math.Abs(a.Gap) > pr.cfg.SniperOrbDeg {
			continue
		}
		if a.Planet != md && a.Planet != ad && a.Planet != pd {
			continue
		}
		houseHit := a.TargetHouse == house
		nadiPoint := a.NatalTarget == "BhriguBindu" || len(a.NatalTarget) > 11 && a.NatalTarget[:11] == "MrityuBhaga"
		if houseHit || nadiPoint {
			return models.StageValidation{Validated: true, Score: 1 - math.Abs(a.Gap)/pr.cfg.SniperOrbDeg, Details: "exact strike on " + a.NatalTarget}
		}
	}
	return models.StageValidation{Score: 0, Details: "no sniper-orb strike"}
}

// probability maps tier plus stage scores into the published bands:
// single 75-85, double 85-95, triple 90-98.
func probability(ev models.PredictedEvent) int {
	frac := float64(ev.Auth.Combined) / 30
	switch ev.Tier {
	case models.TripleLock:
		s := frac
		if ev.Nadi != nil {
			s = (s + ev.Nadi.Score) / 2
		}
		return 90 + int(math.Round(8*s))
	case models.DoubleLock:
		s := frac
		if ev.Jaimini != nil {
			s = (s + ev.Jaimini.Score) / 2
		}
		return 85 + int(math.Round(10*s))
	default:
		return 75 + int(math.Round(10*frac))
	}
}

// quality votes the functional nature of the authorizing lords and the
// triggering planet.
func (pr *Predictor) quality(c *models.BirthChart, md, ad, pd, trig models.Planet) models.EventQuality {
	ben, mal := 0, 0
	for _, p := range []models.Planet{md, ad, pd, trig} {
		switch FunctionalBenefic(c, p) {
		case models.ImpactBenefic:
			ben++
		case models.ImpactMalefic:
			mal++
		}
	}
	switch {
	case ben > mal:
		return models.QualitySuccess
	case mal > ben:
		return models.QualityStruggle
	}
	return models.QualityNeutral
}
