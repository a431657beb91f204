// Package mqtt publishes fix snapshots to an MQTT broker.
package mqtt

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

const publishTimeout = 3 * time.Second

// token and client cover the slice of the paho API the publisher uses,
// so tests can substitute a fake broker connection.
type token interface {
	WaitTimeout(time.Duration) bool
	Error() error
}

type client interface {
	Connect() token
	Publish(topic string, qos byte, retained bool, payload any) token
	Disconnect(quiesceMS uint)
}

type pahoClient struct {
	c paho.Client
}

func (p pahoClient) Connect() token { return p.c.Connect() }

func (p pahoClient) Publish(topic string, qos byte, retained bool, payload any) token {
	return p.c.Publish(topic, qos, retained, payload)
}

func (p pahoClient) Disconnect(quiesceMS uint) { p.c.Disconnect(quiesceMS) }

// newClientFn is a var so tests can inject a fake client.
var newClientFn = func(broker, clientID string) client {
	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetKeepAlive(30 * time.Second).
		SetConnectRetryInterval(10 * time.Second)
	return pahoClient{c: paho.NewClient(opts)}
}

type Config struct {
	Broker   string
	ClientID string
	Topic    string
	Interval time.Duration
}

type Publisher struct {
	cfg    Config
	client client
	last   []byte
}

func NewPublisher(cfg Config) (*Publisher, error) {
	c := newClientFn(cfg.Broker, cfg.ClientID)
	tk := c.Connect()
	if !tk.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("connect to %s: timeout", cfg.Broker)
	}
	if err := tk.Error(); err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Broker, err)
	}
	return &Publisher{cfg: cfg, client: c}, nil
}

// Run polls payload once per interval and publishes it retained
// whenever it changed since the last publish. Empty payloads are
// skipped so nothing goes out before the first fix.
func (p *Publisher) Run(ctx context.Context, payload func() []byte) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishIfChanged(payload())
		}
	}
}

func (p *Publisher) publishIfChanged(msg []byte) {
	if len(msg) == 0 || bytes.Equal(msg, p.last) {
		return
	}
	tk := p.client.Publish(p.cfg.Topic, 0, true, msg)
	if !tk.WaitTimeout(publishTimeout) {
		log.Printf("mqtt: publish to %s: timeout", p.cfg.Topic)
		return
	}
	if err := tk.Error(); err != nil {
		log.Printf("mqtt: publish to %s: %v", p.cfg.Topic, err)
		return
	}
	p.last = append(p.last[:0], msg...)
}

func (p *Publisher) Close() {
	p.client.Disconnect(600)
}
