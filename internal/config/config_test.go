package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	p := filepath.Join(dir, "dev.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestLoad_Defaults(t *testing.T) {
	p := writeConfig(t, "gps:\n  enable: true\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GPS.Baud != 9600 {
		t.Fatalf("baud=%d want 9600", cfg.GPS.Baud)
	}
	if cfg.Web.Addr != ":8080" {
		t.Fatalf("web.addr=%q want :8080", cfg.Web.Addr)
	}
	if cfg.UDP.Interval.Std() != 1*time.Second {
		t.Fatalf("udp.interval=%v want 1s", cfg.UDP.Interval.Std())
	}
	if cfg.MQTT.Broker != "tcp://localhost:1883" || cfg.MQTT.Topic != "gnssfix/fix" {
		t.Fatalf("mqtt defaults wrong: %+v", cfg.MQTT)
	}
}

func TestLoad_RejectsUnknownSource(t *testing.T) {
	p := writeConfig(t, "gps:\n  enable: true\n  source: carrier-pigeon\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_FileSourceRequiresPath(t *testing.T) {
	p := writeConfig(t, "gps:\n  enable: true\n  source: file\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_UDPRequiresDest(t *testing.T) {
	p := writeConfig(t, "udp:\n  enable: true\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_RejectsMalformedDuration(t *testing.T) {
	p := writeConfig(t, "udp:\n  enable: true\n  dest: \"127.0.0.1:4000\"\n  interval: fast\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_LEDRequiresPin(t *testing.T) {
	p := writeConfig(t, "led:\n  enable: true\n")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLoad_FullConfig(t *testing.T) {
	p := writeConfig(t, `
gps:
  enable: true
  source: file
  path: /var/log/session.nmea
  loop: true
  line_delay: 100ms
web:
  enable: true
  addr: ":9000"
udp:
  enable: true
  dest: "192.168.10.255:4000"
  interval: 2s
mqtt:
  enable: true
  broker: "tcp://broker:1883"
  topic: "fleet/gps"
led:
  enable: true
  pin: 17
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GPS.LineDelay.Std() != 100*time.Millisecond {
		t.Fatalf("line_delay=%v", cfg.GPS.LineDelay.Std())
	}
	if cfg.UDP.Dest != "192.168.10.255:4000" || cfg.UDP.Interval.Std() != 2*time.Second {
		t.Fatalf("udp=%+v", cfg.UDP)
	}
	if cfg.MQTT.Topic != "fleet/gps" {
		t.Fatalf("mqtt.topic=%q", cfg.MQTT.Topic)
	}
	if cfg.LED.Pin != 17 {
		t.Fatalf("led.pin=%d", cfg.LED.Pin)
	}
}
