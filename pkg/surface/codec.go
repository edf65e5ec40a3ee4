package surface

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Codec encodes frames for transmission to sinks.
type Codec interface {
	Encode(f Frame) ([]byte, error)
	Decode(data []byte) (Frame, error)
}

// JSONCodec encodes frames as JSON. It is what browsers and most MQTT
// consumers expect.
type JSONCodec struct{}

// Encode serializes f to JSON.
func (JSONCodec) Encode(f Frame) ([]byte, error) {
	return json.Marshal(f)
}

// Decode deserializes a JSON frame.
func (JSONCodec) Decode(data []byte) (Frame, error) {
	var f Frame
	err := json.Unmarshal(data, &f)
	return f, err
}

// YAMLCodec encodes frames as YAML documents.
type YAMLCodec struct{}

// Encode serializes f to YAML.
func (YAMLCodec) Encode(f Frame) ([]byte, error) {
	return yaml.Marshal(f)
}

// Decode deserializes a YAML frame.
func (YAMLCodec) Decode(data []byte) (Frame, error) {
	var f Frame
	err := yaml.Unmarshal(data, &f)
	return f, err
}

// DefaultCodec is used by sinks that are not given one.
var DefaultCodec Codec = JSONCodec{}

// CodecByName returns "json" or "yaml"; anything else yields DefaultCodec
// and false.
func CodecByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSONCodec{}, true
	case "yaml":
		return YAMLCodec{}, true
	}
	return DefaultCodec, false
}
