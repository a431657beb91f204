// Package nmea decodes NMEA-0183 sentences from u-blox (and compatible)
// GNSS receivers and merges them into a single incrementally updated fix.
//
// The interesting part is the merge: position, velocity, satellite
// geometry and ground track arrive fragmented across GGA/RMC/GSA/GSV/VTG
// sentences with overlapping fields. Each decoder owns some fields
// outright and may only fall back into others, so a later sentence never
// clobbers better data from an earlier one. Absent values are tracked
// explicitly (NaN sentinels plus presence flags) because 0 is a legal
// value for almost everything here.
package nmea
