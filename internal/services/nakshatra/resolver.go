package nakshatra

import (
	"math"

	"Jyotish/internal/domain/models"
	"Jyotish/pkg/util"
)

// Span of one nakshatra and one pada in degrees.
const (
	Span     = 360.0 / 27.0
	PadaSpan = Span / 4
)

var names = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// Vimshottari lord cycle, repeating three times across the 27 mansions.
var lordCycle = [9]models.Planet{
	models.Ketu, models.Venus, models.Sun, models.Moon, models.Mars,
	models.Rahu, models.Jupiter, models.Saturn, models.Mercury,
}

// DeityClass groups nakshatras for the Kalachakra direction rule.
type DeityClass int

const (
	Deva DeityClass = iota
	Manushya
	Rakshasa
)

// Classical gana assignment, indexed by nakshatra-1.
var deityClasses = [27]DeityClass{
	Deva, Manushya, Rakshasa, Manushya, Deva, Manushya,
	Deva, Deva, Rakshasa, Rakshasa, Manushya, Manushya,
	Deva, Rakshasa, Deva, Rakshasa, Deva, Rakshasa,
	Rakshasa, Manushya, Manushya, Deva, Rakshasa, Rakshasa,
	Manushya, Manushya, Deva,
}

// Name returns the 27-mode name for a 1-based index.
func Name(idx int) string {
	if idx < 1 || idx > 27 {
		return "unknown"
	}
	return names[idx-1]
}

// Lord returns the Vimshottari lord for a 1-based 27-mode index.
func Lord(idx int) models.Planet {
	return lordCycle[(idx-1)%9]
}

// ClassOf returns the deity class for a 1-based 27-mode index.
func ClassOf(idx int) DeityClass {
	return deityClasses[(idx-1)%27]
}

// Resolve maps a sidereal longitude to its 27-mode nakshatra reference.
// A longitude exactly on a boundary belongs to the lower-index nakshatra,
// the deterministic tie-break policy for degenerate inputs.
func Resolve(lon float64) models.NakshatraRef {
	lon = util.Norm360(lon)
	idx := int(lon / Span)
	if idx > 0 && math.Mod(lon, Span) == 0 {
		idx--
	}
	if idx > 26 {
		idx = 26
	}
	within := lon - float64(idx)*Span
	pada := int(within/PadaSpan) + 1
	if pada > 4 {
		pada = 4
	}
	return models.NakshatraRef{
		Index: idx + 1,
		Name:  names[idx],
		Pada:  pada,
		Lord:  lordCycle[idx%9],
	}
}

// IndexAt returns just the 0-based 27-mode index for a longitude, with the
// same boundary policy as Resolve.
func IndexAt(lon float64) int { return Resolve(lon).Index - 1 }

// Abhijit occupies 276°40' .. 280°53'20" in the 28-mansion scheme,
// compressing Uttara Ashadha before it and Shravana after it.
const (
	abhijitStart = 276 + 40.0/60
	abhijitEnd   = 280 + 53.0/60 + 20.0/3600
)

// Resolve28 maps a longitude in the 28-nakshatra variant. Indices 1..21
// match the 27 scheme, 22 is Abhijit, 23..28 shift the remainder up by one.
// Modes must not be mixed inside one computation; callers pick one.
func Resolve28(lon float64) models.NakshatraRef {
	lon = util.Norm360(lon)
	if lon >= abhijitStart && lon < abhijitEnd {
		return models.NakshatraRef{Index: 22, Name: "Abhijit", Pada: padaOf(lon, abhijitStart, abhijitEnd-abhijitStart), Lord: models.Ketu}
	}
	r := Resolve(lon)
	if r.Index >= 22 { // Shravana onward shifts past Abhijit
		r.Index++
	}
	return r
}

func padaOf(lon, start, span float64) int {
	p := int((lon-start)/(span/4)) + 1
	if p < 1 {
		p = 1
	}
	if p > 4 {
		p = 4
	}
	return p
}

// Gandanta reports whether a longitude sits within one degree of a
// water-fire sign junction (Pisces-Aries, Cancer-Leo, Scorpio-Sagittarius).
func Gandanta(lon float64) bool {
	lon = util.Norm360(lon)
	for _, b := range []float64{0, 120, 240} {
		if util.ArcDistance(lon, b) <= 1 {
			return true
		}
	}
	return false
}
