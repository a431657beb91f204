package nmea

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// fieldCap is the per-field size limit. Receivers never legitimately emit
// fields this long; an oversized field becomes empty instead of being
// silently truncated to a plausible-looking value.
const fieldCap = 15

var (
	errNoStart    = fmt.Errorf("nmea: missing '$'")
	errNoChecksum = fmt.Errorf("nmea: missing checksum")
	errChecksum   = fmt.Errorf("nmea: checksum mismatch")
)

// tokenize verifies the checksum of a raw sentence and splits its payload
// into comma-delimited fields. Field 0 is the talker+type token. Empty
// fields are preserved because field position is meaningful.
func tokenize(line string) ([]string, error) {
	if !strings.HasPrefix(line, "$") {
		return nil, errNoStart
	}
	star := strings.IndexByte(line, '*')
	if star == -1 {
		return nil, errNoChecksum
	}
	ck := line[star+1:]
	if len(ck) < 2 {
		return nil, errNoChecksum
	}
	want, err := hex.DecodeString(ck[:2])
	if err != nil || len(want) != 1 {
		return nil, errChecksum
	}

	payload := line[1:star]
	got := byte(0)
	for i := 0; i < len(payload); i++ {
		got ^= payload[i]
	}
	if got != want[0] {
		return nil, errChecksum
	}

	fields := strings.Split(payload, ",")
	for i, f := range fields {
		if len(f) > fieldCap {
			fields[i] = ""
		}
	}
	return fields, nil
}

// field returns f[i], or "" when the sentence is too short to carry it.
func field(f []string, i int) string {
	if i < 0 || i >= len(f) {
		return ""
	}
	return f[i]
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
