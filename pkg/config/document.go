// Package config loads declarative animation documents from YAML and turns
// them into animations, sequences, groups and transitions.
//
// A document names its animations once and refers to them by name from
// sequences, groups and transitions:
//
//	animations:
//	  card:
//	    target: {x: 200, opacity: 1, background-color: "#ff8800"}
//	    timing: {curve: smooth}
//	    duration: 400ms
//	sequences:
//	  intro: {steps: [{animation: card}]}
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/transition"
)

// DefaultFile is the document name looked up by LoadOptional.
const DefaultFile = "motion.yaml"

// DefaultDuration applies to animations that do not set one.
const DefaultDuration = Duration(400 * time.Millisecond)

// Document is a parsed motion.yaml.
type Document struct {
	Animations  map[string]AnimationSpec  `yaml:"animations"`
	Sequences   map[string]SequenceSpec   `yaml:"sequences,omitempty"`
	Groups      map[string][]string       `yaml:"groups,omitempty"`
	Transitions map[string]TransitionSpec `yaml:"transitions,omitempty"`
	Sinks       Sinks                     `yaml:"sinks,omitempty"`
}

// AnimationSpec describes one animation.
type AnimationSpec struct {
	// Element names the surface element the animation drives. Empty means
	// the animation's own name.
	Element string `yaml:"element,omitempty"`

	// Target maps property names to end values.
	Target map[string]any `yaml:"target,omitempty"`

	Timing      Timing             `yaml:"timing,omitempty"`
	Duration    Duration           `yaml:"duration,omitempty"`
	Delay       Duration           `yaml:"delay,omitempty"`
	Repeat      int                `yaml:"repeat,omitempty"`
	AutoReverse bool               `yaml:"auto_reverse,omitempty"`
	Additive    bool               `yaml:"additive,omitempty"`
	Continue    bool               `yaml:"continue,omitempty"`
	Velocity    map[string]float64 `yaml:"velocity,omitempty"`
	Keyframes   []KeyframeSpec     `yaml:"keyframes,omitempty"`
}

// KeyframeSpec is one keyframe. Time is clamped to [0,1].
type KeyframeSpec struct {
	Time   float64        `yaml:"time"`
	Values map[string]any `yaml:"values"`
}

// SequenceSpec lays animations out on one timeline.
type SequenceSpec struct {
	Steps []StepSpec `yaml:"steps"`
}

// StepSpec places a named animation. Overlap is the fraction of the
// previous step it starts early by.
type StepSpec struct {
	Animation string  `yaml:"animation"`
	Overlap   float64 `yaml:"overlap,omitempty"`
}

// TransitionSpec groups animations under a transition context.
type TransitionSpec struct {
	Context    string   `yaml:"context"`
	Animations []string `yaml:"animations"`
}

// Sinks configures where applied frames are published.
type Sinks struct {
	MQTT      *MQTTSink      `yaml:"mqtt,omitempty"`
	WebSocket *WebSocketSink `yaml:"websocket,omitempty"`
	Store     *StoreSink     `yaml:"store,omitempty"`
	Terminal  *TerminalSink  `yaml:"terminal,omitempty"`
}

// MQTTSink publishes frames to a broker.
type MQTTSink struct {
	URL      string `yaml:"url"`
	Topic    string `yaml:"topic"`
	ClientID string `yaml:"client_id,omitempty"`
	QoS      byte   `yaml:"qos,omitempty"`
	Retained bool   `yaml:"retained,omitempty"`
}

// WebSocketSink serves frames to websocket clients.
type WebSocketSink struct {
	Addr string `yaml:"addr"`
	Path string `yaml:"path,omitempty"`
}

// StoreSink persists final values between runs.
type StoreSink struct {
	App string `yaml:"app,omitempty"`
}

// TerminalSink renders a preview in the terminal.
type TerminalSink struct {
	Enabled bool `yaml:"enabled"`
}

// Parse decodes and validates a document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Config("config.Parse", err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Load reads and parses the document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("config.Load", fmt.Errorf("read %s: %w", path, err))
	}
	return Parse(data)
}

// LoadOptional reads motion.yaml from dir if present. A missing file
// yields an empty document.
func LoadOptional(dir string) (*Document, error) {
	path := filepath.Join(dir, DefaultFile)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return &Document{}, nil
	}
	return Load(path)
}

// Validate checks every animation builds and every reference resolves.
// Problems are joined so that one pass reports all of them.
func (d *Document) Validate() error {
	var errs []error
	for _, name := range sortedKeys(d.Animations) {
		if _, err := d.Build(name, Env{}); err != nil {
			errs = append(errs, fmt.Errorf("animation %q: %w", name, err))
		}
	}
	for _, name := range sortedKeys(d.Sequences) {
		for _, st := range d.Sequences[name].Steps {
			if err := d.checkRef("config.Validate", st.Animation); err != nil {
				errs = append(errs, fmt.Errorf("sequence %q: %w", name, err))
			}
		}
	}
	for _, name := range sortedKeys(d.Groups) {
		for _, ref := range d.Groups[name] {
			if err := d.checkRef("config.Validate", ref); err != nil {
				errs = append(errs, fmt.Errorf("group %q: %w", name, err))
			}
		}
	}
	for _, name := range sortedKeys(d.Transitions) {
		tr := d.Transitions[name]
		if _, err := transition.ParseContext(tr.Context); err != nil {
			errs = append(errs, fmt.Errorf("transition %q: %w", name, err))
		}
		for _, ref := range tr.Animations {
			if err := d.checkRef("config.Validate", ref); err != nil {
				errs = append(errs, fmt.Errorf("transition %q: %w", name, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Document) checkRef(op, name string) error {
	if _, ok := d.Animations[name]; !ok {
		return errors.Config(op, fmt.Errorf("%w: %q", ErrUnknownAnimation, name))
	}
	return nil
}

// AnimationNames returns the animation names in sorted order.
func (d *Document) AnimationNames() []string {
	return sortedKeys(d.Animations)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
