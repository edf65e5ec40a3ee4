package surface_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/surface"
)

type closeCounter struct {
	surface.SinkFunc
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestFanoutPublishesToEverySink(t *testing.T) {
	boom := errors.New("offline")
	var got []string
	ok := surface.SinkFunc(func(f surface.Frame) error {
		got = append(got, f.Element)
		return nil
	})
	failing := surface.SinkFunc(func(surface.Frame) error { return boom })
	counter := &closeCounter{SinkFunc: ok}

	fan := surface.NewFanout(failing, nil, ok, counter)
	assert.Equal(t, 3, fan.Len())

	err := fan.Publish(surface.Frame{Element: "card"})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"card", "card"}, got, "a failing sink does not stop the rest")

	require.NoError(t, fan.Close())
	assert.Equal(t, 1, counter.closed)
	assert.Equal(t, 0, fan.Len())
}

func TestCodecs(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	frame := surface.NewFrame("card", 7, at, map[animation.Property]animation.Value{
		animation.X:       animation.Scalar(12),
		animation.Opacity: animation.Scalar(0.5),
	})

	for _, name := range []string{"json", "yaml"} {
		codec, ok := surface.CodecByName(name)
		require.True(t, ok, name)
		data, err := codec.Encode(frame)
		require.NoError(t, err, name)
		back, err := codec.Decode(data)
		require.NoError(t, err, name)
		assert.Equal(t, frame.Element, back.Element, name)
		assert.Equal(t, frame.Seq, back.Seq, name)
		assert.True(t, frame.Time.Equal(back.Time), name)
		assert.Equal(t, frame.Values, back.Values, name)
		assert.Equal(t, "translate3d(12px, 0px, 0px)", back.Style["transform"], name)
	}

	codec, ok := surface.CodecByName("xml")
	assert.False(t, ok)
	assert.Equal(t, surface.DefaultCodec, codec)
}

func TestJSONFrameShape(t *testing.T) {
	data, err := surface.JSONCodec{}.Encode(surface.Frame{
		Element: "card",
		Seq:     1,
		Time:    time.Unix(0, 0).UTC(),
		Values:  map[string]string{"x": "1"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"element":"card","seq":1,"t":"1970-01-01T00:00:00Z","values":{"x":"1"}}`, string(data))
}
