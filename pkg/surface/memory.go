// Package surface holds the presentation side of motion: where applied
// track values land and where they are published from.
//
// [Memory] is a surface that keeps the last value of every property per
// element and doubles as the continuation [animation.Query]. Every apply
// produces a [Frame] that is handed to a [Sink]; the subpackages provide
// sinks for MQTT, WebSocket clients, the terminal and persistent storage.
package surface

import (
	"maps"
	"slices"
	"sync"

	"github.com/go-drift/motion/pkg/animation"
)

// Memory is an in-memory surface of named elements.
type Memory struct {
	mu       sync.RWMutex
	elements map[string]map[animation.Property]animation.Value
	seq      uint64
	sink     Sink
}

// NewMemory returns an empty surface publishing to sink, which may be nil.
func NewMemory(sink Sink) *Memory {
	return &Memory{
		elements: make(map[string]map[animation.Property]animation.Value),
		sink:     sink,
	}
}

// Apply stores the current value of every track on element and publishes
// the resulting frame.
func (m *Memory) Apply(element string, tracks []animation.Track) error {
	m.mu.Lock()
	values := m.element(element)
	for _, tr := range tracks {
		if tr.Current != nil {
			values[tr.Property] = tr.Current
		}
	}
	m.seq++
	frame := NewFrame(element, m.seq, animation.Now(), values)
	sink := m.sink
	m.mu.Unlock()

	if sink == nil {
		return nil
	}
	return sink.Publish(frame)
}

// Set stores a value without publishing, e.g. to restore persisted state.
func (m *Memory) Set(element string, p animation.Property, v animation.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.element(element)[p] = v
}

func (m *Memory) element(name string) map[animation.Property]animation.Value {
	values, ok := m.elements[name]
	if !ok {
		values = make(map[animation.Property]animation.Value)
		m.elements[name] = values
	}
	return values
}

// Value returns the stored value of p on element.
func (m *Memory) Value(element string, p animation.Property) (animation.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.elements[element][p]
	return v, ok
}

// Values returns a copy of everything stored for element.
func (m *Memory) Values(element string) map[animation.Property]animation.Value {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.elements[element])
}

// Elements returns the element names in sorted order.
func (m *Memory) Elements() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Sorted(maps.Keys(m.elements))
}

// Snapshot returns the element's current frame without publishing it.
func (m *Memory) Snapshot(element string) Frame {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return NewFrame(element, m.seq, animation.Now(), m.elements[element])
}

// Applier returns the apply collaborator for element.
func (m *Memory) Applier(element string) animation.Applier {
	return animation.ApplierFunc(func(tracks []animation.Track) error {
		return m.Apply(element, tracks)
	})
}

// Query returns the continuation query for element.
func (m *Memory) Query(element string) animation.Query {
	return elementQuery{m: m, element: element}
}

type elementQuery struct {
	m       *Memory
	element string
}

func (q elementQuery) CurrentValue(p animation.Property) (animation.Value, bool) {
	return q.m.Value(q.element, p)
}
