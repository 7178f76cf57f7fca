package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"sslab_simulator/internal/config"
	"sslab_simulator/internal/logger"
	"sslab_simulator/internal/models"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	disconnectWait = 250 // ms

	topicStatus  = "status"
	topicControl = "control"
)

var errNotConnected = errors.New("mqtt client not connected")

// MQTT publishes status samples and control events as JSON.
type MQTT struct {
	client mqtt.Client
	prefix string
	log    *logger.Logger
}

// NewMQTT builds a client from config. Call Connect before publishing.
func NewMQTT(cfg config.MQTTConfig, log *logger.Logger) (*MQTT, error) {
	if cfg.Broker == "" {
		return nil, fmt.Errorf("MQTT broker address cannot be empty")
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)

	if cfg.ClientID == "" {
		cfg.ClientID = fmt.Sprintf("sslab-simulator-%d", time.Now().Unix())
	}
	opts.SetClientID(cfg.ClientID)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}

	opts.SetAutoReconnect(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		if log != nil {
			log.Errorw("mqtt_connection_lost", "err", err)
		}
	})
	opts.SetReconnectingHandler(func(_ mqtt.Client, _ *mqtt.ClientOptions) {
		if log != nil {
			log.Infow("mqtt_reconnecting", "broker", cfg.Broker)
		}
	})

	return newWithClient(mqtt.NewClient(opts), cfg.TopicPrefix, log), nil
}

func newWithClient(c mqtt.Client, prefix string, log *logger.Logger) *MQTT {
	if prefix == "" {
		prefix = "sslab"
	}
	return &MQTT{client: c, prefix: prefix, log: log}
}

// Connect connects to the broker, waiting up to connectTimeout.
func (p *MQTT) Connect() error {
	token := p.client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return fmt.Errorf("connection to MQTT broker timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("connect MQTT broker: %w", err)
	}
	if p.log != nil {
		p.log.Infow("mqtt_connected", "prefix", p.prefix)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTT) Close() {
	p.client.Disconnect(disconnectWait)
}

// Topic returns the full topic for a suffix, e.g. "sslab/status".
func (p *MQTT) Topic(suffix string) string {
	return p.prefix + "/" + suffix
}

func (p *MQTT) PublishStatus(ctx context.Context, st models.DeviceStatus) error {
	return p.publish(ctx, p.Topic(topicStatus), st)
}

func (p *MQTT) PublishControl(ctx context.Context, ev models.ControlEvent) error {
	return p.publish(ctx, p.Topic(topicControl), ev)
}

func (p *MQTT) publish(ctx context.Context, topic string, v any) error {
	if !p.client.IsConnected() {
		return errNotConnected
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}

	token := p.client.Publish(topic, 0, false, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
