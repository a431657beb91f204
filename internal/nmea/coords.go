package nmea

import (
	"math"
	"strconv"
	"strings"
)

// decodeCoordinate converts an NMEA DDDMM.MMMM coordinate to signed
// decimal degrees. The number of degree digits is inferred from the
// position of the decimal point; u-blox receivers emit 2 for latitude and
// 3 for longitude, but 1- and 4-digit variants exist in the wild.
//
// hemisphere 'S' or 'W' negates the value. Returns NaN when the encoding
// is not recognized.
func decodeCoordinate(raw, hemisphere string) float64 {
	if len(raw) < 7 {
		return math.NaN()
	}

	var degDigits int
	switch strings.IndexByte(raw, '.') {
	case 2:
		degDigits = 1
	case 3, 4:
		degDigits = 2
	case 5:
		degDigits = 3
	case 6:
		degDigits = 4
	default:
		return math.NaN()
	}

	deg, err := strconv.ParseFloat(raw[:degDigits], 64)
	if err != nil {
		return math.NaN()
	}
	min, err := strconv.ParseFloat(raw[degDigits:], 64)
	if err != nil {
		return math.NaN()
	}

	v := deg + min/60.0
	if hemisphere != "" && (hemisphere[0] == 'S' || hemisphere[0] == 'W') {
		v = -v
	}
	return v
}
