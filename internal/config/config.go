package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from yaml scalars like
// "250ms" or "2s". Plain integers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		v, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("invalid duration %q: %w", s, err)
		}
		*d = Duration(v)
		return nil
	}
	var n int64
	if err := value.Decode(&n); err == nil {
		*d = Duration(n)
		return nil
	}
	return fmt.Errorf("invalid duration %q", value.Value)
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type Config struct {
	GPS  GPSConfig  `yaml:"gps"`
	Web  WebConfig  `yaml:"web"`
	UDP  UDPConfig  `yaml:"udp"`
	MQTT MQTTConfig `yaml:"mqtt"`
	LED  LEDConfig  `yaml:"led"`
}

type GPSConfig struct {
	Enable bool   `yaml:"enable"`
	Source string `yaml:"source"`
	Device string `yaml:"device"`
	Baud   int    `yaml:"baud"`

	// Path/Loop/LineDelay apply to source "file".
	Path      string   `yaml:"path"`
	Loop      bool     `yaml:"loop"`
	LineDelay Duration `yaml:"line_delay"`

	MaxSpeedMS float64 `yaml:"max_speed_ms"`
}

type WebConfig struct {
	Enable bool   `yaml:"enable"`
	Addr   string `yaml:"addr"`
}

type UDPConfig struct {
	Enable   bool     `yaml:"enable"`
	Dest     string   `yaml:"dest"`
	Interval Duration `yaml:"interval"`
}

type MQTTConfig struct {
	Enable   bool     `yaml:"enable"`
	Broker   string   `yaml:"broker"`
	ClientID string   `yaml:"client_id"`
	Topic    string   `yaml:"topic"`
	Interval Duration `yaml:"interval"`
}

type LEDConfig struct {
	Enable bool `yaml:"enable"`
	// Pin is BCM GPIO numbering.
	Pin int `yaml:"pin"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	switch cfg.GPS.Source {
	case "", "serial", "file":
	default:
		return Config{}, fmt.Errorf("gps.source must be \"serial\" or \"file\", got %q", cfg.GPS.Source)
	}
	if cfg.GPS.Source == "file" && cfg.GPS.Path == "" {
		return Config{}, fmt.Errorf("gps.path is required when gps.source is \"file\"")
	}
	if cfg.GPS.Baud == 0 {
		cfg.GPS.Baud = 9600
	}
	if cfg.GPS.LineDelay < 0 {
		return Config{}, fmt.Errorf("gps.line_delay must be >= 0")
	}

	if cfg.Web.Addr == "" {
		cfg.Web.Addr = ":8080"
	}

	if cfg.UDP.Enable && cfg.UDP.Dest == "" {
		return Config{}, fmt.Errorf("udp.dest is required when udp.enable is true")
	}
	if cfg.UDP.Interval <= 0 {
		cfg.UDP.Interval = Duration(1 * time.Second)
	}

	if cfg.MQTT.Broker == "" {
		cfg.MQTT.Broker = "tcp://localhost:1883"
	}
	if cfg.MQTT.ClientID == "" {
		cfg.MQTT.ClientID = "gnssfixd"
	}
	if cfg.MQTT.Topic == "" {
		cfg.MQTT.Topic = "gnssfix/fix"
	}
	if cfg.MQTT.Interval <= 0 {
		cfg.MQTT.Interval = Duration(1 * time.Second)
	}

	if cfg.LED.Enable && cfg.LED.Pin <= 0 {
		return Config{}, fmt.Errorf("led.pin is required when led.enable is true")
	}

	return cfg, nil
}
