package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"gnssfix/internal/nmea"
)

func nmeaLine(payload string) string {
	var ck byte
	for i := 0; i < len(payload); i++ {
		ck ^= payload[i]
	}
	return fmt.Sprintf("$%s*%02X", payload, ck)
}

const sampleLog = `GPGGA,123519,4807.038,N,01131.000,E,1,08,0.9,545.4,M,46.9,M,,
GPRMC,123519,A,4807.038,N,01131.000,E,022.4,084.4,230394,003.1,W
garbage
`

func buildLog() string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSpace(sampleLog), "\n") {
		if line == "garbage" {
			b.WriteString(line + "\n")
			continue
		}
		b.WriteString(nmeaLine(line) + "\n")
	}
	return b.String()
}

func TestDecodeStreaming(t *testing.T) {
	var out bytes.Buffer
	if err := decode(strings.NewReader(buildLog()), &out, false); err != nil {
		t.Fatalf("decode: %v", err)
	}

	var snaps []nmea.Snapshot
	sc := bufio.NewScanner(&out)
	for sc.Scan() {
		var s nmea.Snapshot
		if err := json.Unmarshal(sc.Bytes(), &s); err != nil {
			t.Fatalf("unmarshal %q: %v", sc.Text(), err)
		}
		snaps = append(snaps, s)
	}
	// Two valid sentences, garbage skipped.
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if snaps[0].Latitude == nil {
		t.Fatal("first snapshot has no latitude")
	}
	if snaps[1].Speed == nil {
		t.Fatal("second snapshot has no speed")
	}
}

func TestDecodeFinal(t *testing.T) {
	var out bytes.Buffer
	if err := decode(strings.NewReader(buildLog()), &out, true); err != nil {
		t.Fatalf("decode: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	var snap nmea.Snapshot
	if err := json.Unmarshal([]byte(lines[0]), &snap); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !snap.Valid {
		t.Fatalf("final fix not valid: %+v", snap)
	}
	if snap.Latitude == nil || *snap.Latitude < 48.11 || *snap.Latitude > 48.13 {
		t.Fatalf("latitude = %v", snap.Latitude)
	}
}

func TestDistanceCommand(t *testing.T) {
	cmd := distanceCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"0", "0", "1", "0"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	got := strings.TrimSpace(out.String())
	if got != "111194.9" {
		t.Fatalf("output = %q, want 111194.9", got)
	}
}

func TestDistanceCommandRejectsOutOfRange(t *testing.T) {
	cmd := distanceCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"91", "0", "0", "0"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestDistanceCommandRejectsBadNumber(t *testing.T) {
	cmd := distanceCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"a", "0", "0", "0"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected parse error")
	}
}
