package nmea

import (
	"errors"
	"math"
)

// earthRadiusM is the mean spherical-earth radius used by the haversine
// distance.
const earthRadiusM = 6371000.0

// ErrOutOfRange reports a latitude outside [-90, 90] or a longitude
// outside [-180, 180].
var ErrOutOfRange = errors.New("nmea: coordinate out of range")

// Point is a position in signed decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (p Point) inRange() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// Distance returns the great-circle distance between a and b in meters on
// a spherical earth, rounded to 0.1 m.
func Distance(a, b Point) (float64, error) {
	if !a.inRange() || !b.inRange() {
		return 0, ErrOutOfRange
	}
	return round1(haversine(a, b)), nil
}

func haversine(a, b Point) float64 {
	const degToRad = math.Pi / 180.0
	lat1 := a.Lat * degToRad
	lat2 := b.Lat * degToRad
	dlat := (b.Lat - a.Lat) * degToRad
	dlon := (b.Lon - a.Lon) * degToRad

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	return earthRadiusM * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// DistanceTo returns the distance from the tracker's current position to
// p. ok is false when the tracker has no established coordinates yet;
// that is not an error, just "no result".
func (t *Tracker) DistanceTo(p Point) (meters float64, ok bool, err error) {
	if math.IsNaN(t.st.lat) || math.IsNaN(t.st.lon) {
		return 0, false, nil
	}
	d, err := Distance(Point{Lat: t.st.lat, Lon: t.st.lon}, p)
	if err != nil {
		return 0, false, err
	}
	return d, true, nil
}
