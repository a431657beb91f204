package nmea

// estimateAccuracy derives a horizontal accuracy estimate in meters from
// HDOP and the number of satellites used in the fix. The 4.9 m base is
// the nominal GPS user range error; the multiplier tightens or loosens
// the estimate with the satellite count. Rounded to 0.1 m.
func estimateAccuracy(hdop float64, satsUsed int) float64 {
	acc := hdop * 4.9
	switch {
	case satsUsed >= 8:
		acc *= 0.7
	case satsUsed >= 5:
		acc *= 0.9
	case satsUsed <= 3:
		acc *= 1.5
	}
	return round1(acc)
}
