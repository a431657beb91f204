package gps

import (
	"time"

	"github.com/golang/geo/s2"
)

// defaultMaxSpeedMS is generous enough for any road or marine vehicle;
// anything faster between consecutive fixes is treated as a receiver
// glitch, multipath jump or cold-start artifact.
const defaultMaxSpeedMS = 150.0

const earthRadiusM = 6371000.0

// jumpDetector flags physically implausible moves between consecutive
// fixes. It observes only: the merge rules in internal/nmea are never
// altered by its verdict.
type jumpDetector struct {
	maxSpeedMS float64

	has bool
	lat float64
	lon float64
	at  time.Time
}

func newJumpDetector(maxSpeedMS float64) *jumpDetector {
	if maxSpeedMS <= 0 {
		maxSpeedMS = defaultMaxSpeedMS
	}
	return &jumpDetector{maxSpeedMS: maxSpeedMS}
}

// observe records a position and reports whether reaching it from the
// previous one would require an implausible speed.
func (d *jumpDetector) observe(now time.Time, lat, lon float64) bool {
	if !d.has {
		d.has = true
		d.lat, d.lon, d.at = lat, lon, now
		return false
	}

	prev := s2.LatLngFromDegrees(d.lat, d.lon)
	cur := s2.LatLngFromDegrees(lat, lon)
	meters := prev.Distance(cur).Radians() * earthRadiusM

	dt := now.Sub(d.at).Seconds()
	d.lat, d.lon, d.at = lat, lon, now
	if dt <= 0 {
		return false
	}
	return meters/dt > d.maxSpeedMS
}

func (d *jumpDetector) reset() {
	d.has = false
}
