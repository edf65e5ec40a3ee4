package mqttsink_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/surface"
	"github.com/go-drift/motion/pkg/surface/mqttsink"
)

type message struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

type fakePublisher struct {
	sent         []message
	err          error
	disconnected bool
}

func (p *fakePublisher) Publish(topic string, qos byte, retained bool, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.sent = append(p.sent, message{topic, qos, retained, payload})
	return nil
}

func (p *fakePublisher) Disconnect() { p.disconnected = true }

var _ surface.Sink = (*mqttsink.Sink)(nil)

func TestPublishEncodesFrame(t *testing.T) {
	pub := &fakePublisher{}
	sink := mqttsink.New(pub, config.MQTTSink{Topic: "studio/frames/", QoS: 1, Retained: true})

	require.NoError(t, sink.Publish(surface.Frame{Element: "card", Seq: 3, Values: map[string]string{"x": "10"}}))

	require.Len(t, pub.sent, 1)
	msg := pub.sent[0]
	assert.Equal(t, "studio/frames/card", msg.topic)
	assert.Equal(t, byte(1), msg.qos)
	assert.True(t, msg.retained)

	f, err := surface.JSONCodec{}.Decode(msg.payload)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), f.Seq)
	assert.Equal(t, "10", f.Values["x"])

	require.NoError(t, sink.Close())
	assert.True(t, pub.disconnected)
}

func TestPublishDefaultsAndCodec(t *testing.T) {
	pub := &fakePublisher{}
	sink := mqttsink.New(pub, config.MQTTSink{}).WithCodec(surface.YAMLCodec{})
	assert.Equal(t, "motion/frames/card", sink.Topic("card"))

	require.NoError(t, sink.Publish(surface.Frame{Element: "card"}))
	assert.Contains(t, string(pub.sent[0].payload), "element: card")
}

func TestPublishError(t *testing.T) {
	pub := &fakePublisher{err: mqttsink.ErrTimeout}
	sink := mqttsink.New(pub, config.MQTTSink{Topic: "t"})

	err := sink.Publish(surface.Frame{Element: "card"})
	assert.True(t, errors.Is(err, mqttsink.ErrTimeout))
	assert.Contains(t, err.Error(), "t/card")
}
