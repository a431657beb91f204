package nmea

import "strings"

// sentenceKind is the closed set of sentence types this package decodes.
type sentenceKind int

const (
	kindGGA sentenceKind = iota
	kindRMC
	kindGSA
	kindGSV
	kindVTG
)

type sentenceDecoder struct {
	kind sentenceKind
	// minFields is the field count (including the talker+type token)
	// below which the sentence is ignored entirely. A short sentence must
	// never partially mutate the fix.
	minFields int
	apply     func(st *fix, f []string)
}

// decoders maps the raw talker+type token to its decoder. GPS, GLONASS,
// BeiDou and combined-GNSS talker variants of the same type are
// equivalent.
var decoders = map[string]sentenceDecoder{
	"GPGGA": {kindGGA, 14, (*fix).applyGGA},
	"GNGGA": {kindGGA, 14, (*fix).applyGGA},
	"GPRMC": {kindRMC, 12, (*fix).applyRMC},
	"GNRMC": {kindRMC, 12, (*fix).applyRMC},
	"GPGSA": {kindGSA, 17, (*fix).applyGSA},
	"GNGSA": {kindGSA, 17, (*fix).applyGSA},
	"GPGSV": {kindGSV, 4, (*fix).applyGSV},
	"GLGSV": {kindGSV, 4, (*fix).applyGSV},
	"GNGSV": {kindGSV, 4, (*fix).applyGSV},
	"GBGSV": {kindGSV, 4, (*fix).applyGSV},
	"GPVTG": {kindVTG, 8, (*fix).applyVTG},
	"GNVTG": {kindVTG, 8, (*fix).applyVTG},
}

// Tracker merges decoded sentences into a single fix. Each Tracker is an
// independent receiver session owned by its caller; it is not safe for
// concurrent use, so callers must serialize Decode/Reset against reads.
type Tracker struct {
	st fix
}

func NewTracker() *Tracker {
	return &Tracker{st: newFix()}
}

// Decode feeds one raw sentence line into the tracker.
//
// It reports false, with no state change, when the line is too short to
// be a sentence or fails checksum verification. Otherwise it returns a
// snapshot of the merged fix whether or not the sentence type was
// recognized; unknown types and known types with too few fields change
// nothing. Corrupt lines in a continuous stream are therefore skipped
// without ever surfacing as hard errors.
func (t *Tracker) Decode(line string) (Snapshot, bool) {
	line = strings.TrimSpace(line)
	if len(line) < 6 {
		return Snapshot{}, false
	}
	f, err := tokenize(line)
	if err != nil {
		return Snapshot{}, false
	}
	if d, ok := decoders[field(f, 0)]; ok && len(f) >= d.minFields {
		d.apply(&t.st, f)
	}
	return t.st.snapshot(), true
}

// Current returns the live fix snapshot. Before any sentence has been
// decoded, the snapshot carries only valid=false.
func (t *Tracker) Current() Snapshot {
	return t.st.snapshot()
}

// Reset replaces the fix with a fresh, all-absent one.
func (t *Tracker) Reset() {
	t.st = newFix()
}
