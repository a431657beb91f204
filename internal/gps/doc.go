// Package gps runs a receiver session: it reads raw NMEA lines from a
// serial u-blox receiver (or a recorded log file), feeds them through a
// single nmea.Tracker, and publishes merged fix snapshots.
//
// The tracker is not concurrency-safe; this service is its one writer and
// serializes every decode behind a mutex.
package gps
