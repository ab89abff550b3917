package service

// Ephemeris is the single gateway to astronomical positions. The sidereal
// frame (ayanamsa) is fixed when the implementation is constructed and must
// never change afterwards; every computation in the engine assumes one
// consistent frame per process.
type Ephemeris interface {
	// Position returns the sidereal longitude, ecliptic latitude, daily
	// speed, declination and retrograde flag for a body at a Julian Day UT.
	// Body indices follow models.Planet; Ketu is derived as Rahu + 180°.
	Position(jdUT float64, body int) (BodyPosition, error)

	// Ayanamsa returns the frame offset in degrees at a Julian Day UT.
	Ayanamsa(jdUT float64) float64

	// Ascendant returns the sidereal longitude rising at the geodetic
	// location. Fails when the horizon trigonometry degenerates at extreme
	// latitudes.
	Ascendant(jdUT, lat, lon float64) (float64, error)
}

// BodyPosition is the raw ephemeris sample before chart-level resolution.
type BodyPosition struct {
	Longitude   float64 // sidereal, [0,360)
	Latitude    float64
	Speed       float64 // degrees/day, signed
	Declination float64
	Retrograde  bool
}
