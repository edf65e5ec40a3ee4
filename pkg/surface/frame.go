package surface

import (
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// Frame is one applied update of an element, as published to sinks.
type Frame struct {
	Element string            `json:"element" yaml:"element"`
	Seq     uint64            `json:"seq" yaml:"seq"`
	Time    time.Time         `json:"t" yaml:"t"`
	Values  map[string]string `json:"values" yaml:"values"`
	Style   map[string]string `json:"style,omitempty" yaml:"style,omitempty"`
}

// NewFrame captures values for element.
func NewFrame(element string, seq uint64, at time.Time, values map[animation.Property]animation.Value) Frame {
	out := make(map[string]string, len(values))
	for p, v := range values {
		out[string(p)] = v.String()
	}
	return Frame{
		Element: element,
		Seq:     seq,
		Time:    at,
		Values:  out,
		Style:   Style(values),
	}
}
