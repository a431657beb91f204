package nmea

import "math"

// Snapshot is a point-in-time copy of the merged fix. Optional fields are
// nil until the corresponding data has been observed; zero is a legal
// value for most of them, so absence is always explicit.
type Snapshot struct {
	Valid bool `json:"valid"`

	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Altitude  *float64 `json:"altitude,omitempty"`

	Speed  *float64 `json:"speed,omitempty"`
	Course *float64 `json:"course,omitempty"`

	SatellitesUsed    *int `json:"satellites_used,omitempty"`
	SatellitesVisible *int `json:"satellites_visible,omitempty"`

	FixType *int `json:"fix_type,omitempty"`

	HDOP *float64 `json:"hdop,omitempty"`
	VDOP *float64 `json:"vdop,omitempty"`
	PDOP *float64 `json:"pdop,omitempty"`

	Accuracy *float64 `json:"accuracy,omitempty"`

	Date *Date      `json:"date,omitempty"`
	Time *TimeOfDay `json:"time,omitempty"`

	// Timestamp is the synthesized ISO-8601 form (YYYY-MM-DDThh:mm:ssZ);
	// empty until a full date is known.
	Timestamp string `json:"timestamp,omitempty"`
}

// Date is the UTC date reported by RMC.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// TimeOfDay is the UTC time of day reported by GGA/RMC.
type TimeOfDay struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

func (st *fix) snapshot() Snapshot {
	out := Snapshot{Valid: st.valid}

	if !math.IsNaN(st.lat) {
		v := st.lat
		out.Latitude = &v
	}
	if !math.IsNaN(st.lon) {
		v := st.lon
		out.Longitude = &v
	}
	// Altitude comes from GGA only.
	if st.hasGGA && !math.IsNaN(st.alt) {
		v := st.alt
		out.Altitude = &v
	}
	if !math.IsNaN(st.speed) {
		v := st.speed
		out.Speed = &v
	}
	if !math.IsNaN(st.course) {
		v := st.course
		out.Course = &v
	}
	if st.hasSatsUsed {
		v := st.satsUsed
		out.SatellitesUsed = &v
	}
	if st.hasSatsVisible {
		v := st.satsVisible
		out.SatellitesVisible = &v
	}
	// fix_type is meaningless until a GGA has been seen.
	if st.hasGGA {
		v := st.fixType
		out.FixType = &v
	}
	if st.hasGSA && !math.IsNaN(st.hdop) {
		v := st.hdop
		out.HDOP = &v
	}
	if st.hasGSA && !math.IsNaN(st.vdop) {
		v := st.vdop
		out.VDOP = &v
	}
	if st.hasGSA && !math.IsNaN(st.pdop) {
		v := st.pdop
		out.PDOP = &v
	}
	if st.hasAccuracy && !math.IsNaN(st.accuracy) {
		v := st.accuracy
		out.Accuracy = &v
	}
	if st.year > 0 && st.month > 0 && st.day > 0 {
		out.Date = &Date{Day: st.day, Month: st.month, Year: st.year}
		out.Time = &TimeOfDay{Hour: st.hour, Minute: st.minute, Second: st.second}
	}
	out.Timestamp = st.timestamp
	return out
}
