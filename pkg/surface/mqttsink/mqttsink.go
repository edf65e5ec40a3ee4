// Package mqttsink publishes applied frames to an MQTT broker, one message
// per frame on a per-element topic.
package mqttsink

import (
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/surface"
)

// DefaultTimeout bounds how long a publish waits for the broker.
const DefaultTimeout = 2 * time.Second

// ErrTimeout is returned when the broker does not acknowledge in time.
var ErrTimeout = errors.New("mqtt publish timed out")

// Publisher sends one message.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	Disconnect()
}

// ClientPublisher adapts a paho client to Publisher.
type ClientPublisher struct {
	Client  mqtt.Client
	Timeout time.Duration
}

// Publish publishes and waits for the token.
func (c ClientPublisher) Publish(topic string, qos byte, retained bool, payload []byte) error {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	token := c.Client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(timeout) {
		return ErrTimeout
	}
	return token.Error()
}

// Disconnect closes the connection, giving in-flight work 250ms.
func (c ClientPublisher) Disconnect() {
	c.Client.Disconnect(250)
}

// Sink is a surface.Sink over MQTT. Frames for element "card" go to
// "<topic>/card".
type Sink struct {
	pub      Publisher
	topic    string
	qos      byte
	retained bool
	codec    surface.Codec
}

// New returns a sink publishing through pub.
func New(pub Publisher, cfg config.MQTTSink) *Sink {
	topic := strings.TrimSuffix(cfg.Topic, "/")
	if topic == "" {
		topic = "motion/frames"
	}
	return &Sink{
		pub:      pub,
		topic:    topic,
		qos:      cfg.QoS,
		retained: cfg.Retained,
		codec:    surface.DefaultCodec,
	}
}

// Dial connects to the broker named by cfg.
func Dial(cfg config.MQTTSink) (*Sink, error) {
	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "motion"
	}
	options := mqtt.NewClientOptions().
		AddBroker(cfg.URL).
		SetClientID(clientID).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	client := mqtt.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(DefaultTimeout) {
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, ErrTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
	}
	return New(ClientPublisher{Client: client}, cfg), nil
}

// WithCodec sets the frame encoding.
func (s *Sink) WithCodec(c surface.Codec) *Sink {
	s.codec = c
	return s
}

// Topic returns the topic frames for element are published on.
func (s *Sink) Topic(element string) string {
	return s.topic + "/" + element
}

// Publish implements surface.Sink.
func (s *Sink) Publish(f surface.Frame) error {
	payload, err := s.codec.Encode(f)
	if err != nil {
		return err
	}
	if err := s.pub.Publish(s.Topic(f.Element), s.qos, s.retained, payload); err != nil {
		return fmt.Errorf("publish %s: %w", s.Topic(f.Element), err)
	}
	return nil
}

// Close disconnects from the broker.
func (s *Sink) Close() error {
	s.pub.Disconnect()
	return nil
}
