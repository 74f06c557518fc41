// Package mqtt pushes finished schedules to the site display boards. The
// engine itself never depends on it; the app wires a publisher in when the
// configuration enables one.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/ouestbat/chantier/core/plan"
	"github.com/ouestbat/chantier/infra/logger"
)

// Config defines the connection parameters for the Paho MQTT publisher.
type Config struct {
	Enabled    bool   `json:"enabled"`
	Broker     string `json:"broker"`
	ClientID   string `json:"client_id"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	Topic      string `json:"topic"`
	QoS        byte   `json:"qos"`
	MaxRetries int    `json:"max_retries"`
	BackoffMS  int    `json:"backoff_ms"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "chantier-" + uuid.NewString()[:8]
	}
	if c.Topic == "" {
		c.Topic = "chantier/schedule"
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.BackoffMS <= 0 {
		c.BackoffMS = 500
	}
}

// Publisher pushes a finished schedule to the presentation layer.
type Publisher interface {
	PublishSchedule(runID string, items []plan.ScheduledItem) error
	Close()
}

// wireItem is the published JSON shape of one scheduled item.
type wireItem struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	Zone     string    `json:"zone,omitempty"`
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Duration int       `json:"duration_min"`
	Workers  []string  `json:"workers,omitempty"`
	Required int       `json:"required"`
}

type scheduleMessage struct {
	RunID string     `json:"run_id"`
	Items []wireItem `json:"items"`
}

// PahoPublisher implements Publisher over Eclipse Paho.
type PahoPublisher struct {
	cli        paho.Client
	topic      string
	qos        byte
	maxRetries int
	backoff    time.Duration
	log        logger.Logger
}

var newMQTTClient = func(opts *paho.ClientOptions) paho.Client {
	return paho.NewClient(opts)
}

// NewPahoPublisher connects to the broker described by cfg.
func NewPahoPublisher(cfg Config) (*PahoPublisher, error) {
	cfg.SetDefaults()
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetAutoReconnect(true)

	cli := newMQTTClient(opts)
	tok := cli.Connect()
	if !tok.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect timeout to %s", cfg.Broker)
	}
	if err := tok.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect: %w", err)
	}
	return &PahoPublisher{
		cli:        cli,
		topic:      cfg.Topic,
		qos:        cfg.QoS,
		maxRetries: cfg.MaxRetries,
		backoff:    time.Duration(cfg.BackoffMS) * time.Millisecond,
		log:        logger.New("mqtt-publisher"),
	}, nil
}

// PublishSchedule sends the schedule as a single retained JSON message so a
// late-joining display receives the current plan.
func (p *PahoPublisher) PublishSchedule(runID string, items []plan.ScheduledItem) error {
	msg := scheduleMessage{RunID: runID, Items: make([]wireItem, 0, len(items))}
	for _, si := range items {
		msg.Items = append(msg.Items, wireItem{
			ID:       si.ID,
			Name:     si.Name,
			Kind:     string(si.Kind),
			Zone:     si.Zone,
			Start:    si.Start,
			End:      si.End,
			Duration: si.Duration,
			Workers:  si.Workers,
			Required: si.Crew,
		})
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < p.maxRetries; attempt++ {
		tok := p.cli.Publish(p.topic, p.qos, true, payload)
		tok.Wait()
		if lastErr = tok.Error(); lastErr == nil {
			return nil
		}
		p.log.Warnf("publish attempt %d failed: %v", attempt+1, lastErr)
		time.Sleep(p.backoff)
	}
	return fmt.Errorf("publish schedule: %w", lastErr)
}

// Close disconnects from the broker.
func (p *PahoPublisher) Close() {
	p.cli.Disconnect(250)
}
