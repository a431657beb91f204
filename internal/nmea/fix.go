package nmea

import (
	"fmt"
	"math"
	"strconv"
)

// knotsToMS converts speed over ground from knots to meters/second.
const knotsToMS = 0.514444

// fix is the mutable record accumulating data across sentences. Numeric
// fields use NaN as the "absent" sentinel; counts carry explicit presence
// flags because 0 is a valid count. The has* flags are monotonic until a
// reset.
type fix struct {
	lat float64
	lon float64
	alt float64

	speed  float64
	course float64

	satsUsed       int
	satsVisible    int
	hasSatsUsed    bool
	hasSatsVisible bool

	fixType int
	hdop    float64
	vdop    float64
	pdop    float64

	accuracy    float64
	hasAccuracy bool

	year, month, day     int
	hour, minute, second int
	timestamp            string

	valid bool

	hasGGA bool
	hasGSA bool
	hasGSV bool
	hasVTG bool
}

func newFix() fix {
	n := math.NaN()
	return fix{
		lat: n, lon: n, alt: n,
		speed: n, course: n,
		hdop: n, vdop: n, pdop: n,
		accuracy: n,
	}
}

// setClock parses an hhmmss[.sss] time-of-day field.
func (st *fix) setClock(raw string) {
	if len(raw) < 6 {
		return
	}
	h, err1 := strconv.Atoi(raw[0:2])
	m, err2 := strconv.Atoi(raw[2:4])
	s, err3 := strconv.Atoi(raw[4:6])
	if err1 != nil || err2 != nil || err3 != nil {
		return
	}
	st.hour, st.minute, st.second = h, m, s
}

// GGA: Global Positioning System Fix Data.
//
//	1: time (hhmmss.sss)
//	2: latitude (ddmm.mmmm)   3: N/S
//	4: longitude (dddmm.mmmm) 5: E/W
//	6: fix quality (0=no fix, 1=GPS, 2=DGPS, ...)
//	7: satellites used
//	8: HDOP
//	9: altitude (meters)
//
// GGA is authoritative for position, fix quality, satellite count, HDOP
// and altitude.
func (st *fix) applyGGA(f []string) {
	st.setClock(field(f, 1))

	if raw, hemi := field(f, 2), field(f, 3); raw != "" && hemi != "" {
		st.lat = decodeCoordinate(raw, hemi)
	}
	if raw, hemi := field(f, 4), field(f, 5); raw != "" && hemi != "" {
		st.lon = decodeCoordinate(raw, hemi)
	}

	if q, err := strconv.Atoi(field(f, 6)); err == nil {
		st.fixType = q
	}
	if n, err := strconv.Atoi(field(f, 7)); err == nil {
		st.satsUsed = n
		st.hasSatsUsed = true
	}
	if v, ok := parseFloat(field(f, 8)); ok {
		st.hdop = round1(v)
	}
	if v, ok := parseFloat(field(f, 9)); ok {
		st.alt = round1(v)
	}

	st.hasGGA = true
	st.updateAccuracy()
	st.updateTimestamp()
}

// RMC: Recommended Minimum Specific GNSS Data.
//
//	1: time (hhmmss.sss)
//	2: status (A=active, V=void)
//	3: latitude  4: N/S  5: longitude  6: E/W
//	7: speed over ground (knots)
//	8: course over ground (deg)
//	9: date (ddmmyy)
//
// RMC owns validity, speed, course and the date. Its coordinates are
// fallback only: once a GGA sentence has been seen, GGA position stays
// authoritative and RMC coordinates are ignored from then on. The
// authority never reverts, even if a later GGA carries no usable position
// (see coordAuthorityLatched).
func (st *fix) applyRMC(f []string) {
	st.setClock(field(f, 1))

	status := field(f, 2)
	st.valid = status != "" && status[0] == 'A'

	if raw, hemi := field(f, 3), field(f, 4); raw != "" && hemi != "" && st.acceptFallbackCoord(st.lat) {
		st.lat = decodeCoordinate(raw, hemi)
	}
	if raw, hemi := field(f, 5), field(f, 6); raw != "" && hemi != "" && st.acceptFallbackCoord(st.lon) {
		st.lon = decodeCoordinate(raw, hemi)
	}

	if kt, ok := parseFloat(field(f, 7)); ok {
		st.speed = round1(kt * knotsToMS)
	}
	if crs, ok := parseFloat(field(f, 8)); ok {
		st.course = round1(crs)
	}

	if d := field(f, 9); len(d) >= 6 {
		day, err1 := strconv.Atoi(d[0:2])
		mon, err2 := strconv.Atoi(d[2:4])
		yy, err3 := strconv.Atoi(d[4:6])
		if err1 == nil && err2 == nil && err3 == nil {
			st.day, st.month, st.year = day, mon, 2000+yy
		}
	}

	st.updateTimestamp()
}

// coordAuthorityLatched is the coordinate precedence policy: once GGA has
// supplied a coordinate, it stays authoritative and RMC can only ever fill
// a still-absent value. The alternative ("most recent sentence wins")
// would let RMC refresh a stale position after a failed GGA fix; receivers
// this code was written against interleave GGA and RMC every cycle, so the
// latch is kept. Note the staleness consequence: a GGA coordinate is never
// displaced by RMC, no matter how old it is.
const coordAuthorityLatched = true

// acceptFallbackCoord reports whether an RMC coordinate may be written
// over the current value.
func (st *fix) acceptFallbackCoord(cur float64) bool {
	if !coordAuthorityLatched {
		return true
	}
	return math.IsNaN(cur) || !st.hasGGA
}

// GSA: DOP and active satellites.
//
//	15: PDOP  16: HDOP  17: VDOP
//
// GSA's DOPs override the coarser HDOP reported by GGA.
func (st *fix) applyGSA(f []string) {
	if v, ok := parseFloat(field(f, 15)); ok {
		st.pdop = round1(v)
	}
	if v, ok := parseFloat(field(f, 16)); ok {
		st.hdop = round1(v)
	}
	if v, ok := parseFloat(field(f, 17)); ok {
		st.vdop = round1(v)
	}
	st.hasGSA = true
	st.updateAccuracy()
}

// GSV: Satellites in view.
//
//	1: total GSV messages in set  2: message number
//	3: total satellites visible
//
// Only the total visible count is tracked; the per-message satellite
// slots are not.
func (st *fix) applyGSV(f []string) {
	if n, err := strconv.Atoi(field(f, 3)); err == nil {
		st.satsVisible = n
		st.hasSatsVisible = true
		st.hasGSV = true
	}
}

// VTG: Course and speed over ground.
//
//	1: course, true north (deg)
//	7: speed (km/h)
//
// Both values are fallback only: RMC owns them when it supplies them.
// Speed below the 0.1 m/s noise floor may still be replaced by the km/h
// reading.
func (st *fix) applyVTG(f []string) {
	if crs, ok := parseFloat(field(f, 1)); ok && math.IsNaN(st.course) {
		st.course = round1(crs)
	}
	if kmh, ok := parseFloat(field(f, 7)); ok && (math.IsNaN(st.speed) || st.speed < 0.1) {
		st.speed = round1(kmh / 3.6)
	}
	st.hasVTG = true
}

// updateAccuracy runs after every write to HDOP or the used-satellite
// count so the derived value is never stale relative to its inputs.
func (st *fix) updateAccuracy() {
	if !math.IsNaN(st.hdop) && st.hasSatsUsed {
		st.accuracy = estimateAccuracy(st.hdop, st.satsUsed)
		st.hasAccuracy = true
	} else {
		st.accuracy = math.NaN()
		st.hasAccuracy = false
	}
}

// updateTimestamp runs after every write to the date or time fields. The
// timestamp stays empty until a full date (year, month and day all
// nonzero) is known.
func (st *fix) updateTimestamp() {
	if st.year > 0 && st.month > 0 && st.day > 0 {
		st.timestamp = fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02dZ",
			st.year, st.month, st.day, st.hour, st.minute, st.second)
	} else {
		st.timestamp = ""
	}
}
