package nmea

import (
	"fmt"
	"math"
	"testing"
)

func TestDecodeCoordinate_Latitude(t *testing.T) {
	v := decodeCoordinate("4807.038", "N")
	if math.Abs(v-48.1173) > 1e-4 {
		t.Fatalf("v=%v want ~48.1173", v)
	}
}

func TestDecodeCoordinate_Longitude(t *testing.T) {
	v := decodeCoordinate("01131.000", "E")
	if math.Abs(v-11.5167) > 1e-4 {
		t.Fatalf("v=%v want ~11.5167", v)
	}
}

func TestDecodeCoordinate_SouthWestNegate(t *testing.T) {
	if v := decodeCoordinate("4807.038", "S"); v >= 0 {
		t.Fatalf("S should negate, got %v", v)
	}
	if v := decodeCoordinate("01131.000", "W"); v >= 0 {
		t.Fatalf("W should negate, got %v", v)
	}
	if v := decodeCoordinate("4807.038", "X"); v <= 0 {
		t.Fatalf("unknown hemisphere should stay positive, got %v", v)
	}
}

func TestDecodeCoordinate_DegreeWidthFromDot(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"90.30000", 9.005},       // 1 degree digit
		{"805.0000", 80.0833333},  // 2 digits, short minutes
		{"4807.038", 48.1173},     // 2 digits (latitude form)
		{"17045.50", 170.7583333}, // 3 digits (longitude form)
		{"117045.5", 1170.7583},   // 4 digits (extended)
	}
	for _, tc := range cases {
		v := decodeCoordinate(tc.raw, "N")
		if math.Abs(v-tc.want) > 1e-3 {
			t.Fatalf("decodeCoordinate(%q)=%v want ~%v", tc.raw, v, tc.want)
		}
	}
}

func TestDecodeCoordinate_Unrecognized(t *testing.T) {
	for _, raw := range []string{
		"4807038",    // no decimal point
		"4807.0",     // too short
		"",           // empty
		"1234567.89", // dot too far right
	} {
		if v := decodeCoordinate(raw, "N"); !math.IsNaN(v) {
			t.Fatalf("decodeCoordinate(%q)=%v want NaN", raw, v)
		}
	}
}

func TestDecodeCoordinate_RoundTrip(t *testing.T) {
	// Encode decimal degrees into ddmm.mmmm and decode back.
	encode := func(deg float64) string {
		d := math.Floor(deg)
		m := (deg - d) * 60
		return fmt.Sprintf("%02d%07.4f", int(d), m)
	}
	for _, deg := range []float64{0.0001, 12.3456, 48.1173, 89.9999} {
		raw := encode(deg)
		got := decodeCoordinate(raw, "N")
		if math.Abs(got-deg) > 1e-4 {
			t.Fatalf("round trip %v -> %q -> %v", deg, raw, got)
		}
	}
}
