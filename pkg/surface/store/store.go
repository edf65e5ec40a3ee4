// Package store persists the final values of animated elements between
// runs so that a later animation can continue from where the last one
// stopped.
//
// Values are kept per element as a YAML document of property literals in
// a gdata data directory.
package store

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/config"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/surface"
)

// valuesProp is the gdata property every element's values live under.
const valuesProp = "values"

// Backend is the subset of *gdata.Manager the store needs.
type Backend interface {
	SaveObjectProp(objectKey, propKey string, data []byte) error
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	ObjectPropExists(objectKey, propKey string) bool
}

// Store reads and writes element values.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

// Open opens the gdata directory for app.
func Open(app string) (*Store, error) {
	m, err := gdata.Open(gdata.Config{AppName: app})
	if err != nil {
		return nil, fmt.Errorf("open store %q: %w", app, err)
	}
	return New(m), nil
}

// New returns a store over backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

type document struct {
	Values map[string]string `yaml:"values"`
}

// Save replaces the stored values of element.
func (s *Store) Save(element string, values map[animation.Property]animation.Value) error {
	doc := document{Values: make(map[string]string, len(values))}
	for p, v := range values {
		doc.Values[string(p)] = literal(v)
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.backend.SaveObjectProp(element, valuesProp, data); err != nil {
		return fmt.Errorf("save %s: %w", element, err)
	}
	return nil
}

// literal writes v in the form config.ParseValue reads back.
func literal(v animation.Value) string {
	if e, ok := v.(animation.EnumState); ok {
		return e.Visibility().String()
	}
	if c, ok := v.(animation.Color); ok {
		return fmt.Sprintf("rgba(%g, %g, %g, %g)", c.R, c.G, c.B, c.A)
	}
	return v.String()
}

// SaveTracks stores the end values of tracks, merged over what element
// already has stored.
func (s *Store) SaveTracks(element string, tracks []animation.Track) error {
	values, err := s.Load(element)
	if err != nil {
		return err
	}
	for _, tr := range tracks {
		if tr.Current != nil {
			values[tr.Property] = tr.Current
		}
	}
	return s.Save(element, values)
}

// Load returns the stored values of element. An element that was never
// saved has no values. Entries that no longer parse are skipped.
func (s *Store) Load(element string) (map[animation.Property]animation.Value, error) {
	s.mu.Lock()
	if !s.backend.ObjectPropExists(element, valuesProp) {
		s.mu.Unlock()
		return map[animation.Property]animation.Value{}, nil
	}
	data, err := s.backend.LoadObjectProp(element, valuesProp)
	s.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", element, err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", element, err)
	}

	values := make(map[animation.Property]animation.Value, len(doc.Values))
	for name, raw := range doc.Values {
		p, ok := animation.ParseProperty(name)
		if !ok {
			continue
		}
		v, err := config.ParseValue(p, raw)
		if err != nil {
			errors.Report(&errors.Error{
				Op:       "store.Load",
				Kind:     errors.KindConfig,
				Err:      err,
				Property: name,
			})
			continue
		}
		values[p] = v
	}
	return values, nil
}

// Restore seeds m with the stored values of each element.
func (s *Store) Restore(m *surface.Memory, elements ...string) error {
	for _, el := range elements {
		values, err := s.Load(el)
		if err != nil {
			return err
		}
		for p, v := range values {
			m.Set(el, p, v)
		}
	}
	return nil
}

// Query returns a continuation query over element's stored values. The
// values are read once, when Query is called.
func (s *Store) Query(element string) (animation.Query, error) {
	values, err := s.Load(element)
	if err != nil {
		return nil, err
	}
	return valuesQuery(values), nil
}

type valuesQuery map[animation.Property]animation.Value

func (q valuesQuery) CurrentValue(p animation.Property) (animation.Value, bool) {
	v, ok := q[p]
	return v, ok
}

// Persist returns an OnComplete callback for config.Env that saves the
// final tracks of every completed animation under its element.
func (s *Store) Persist(doc *config.Document) func(name string, a *animation.Animation) {
	return func(name string, a *animation.Animation) {
		element := name
		if spec, ok := doc.Animations[name]; ok {
			element = spec.ElementName(name)
		}
		if err := s.SaveTracks(element, a.Tracks()); err != nil {
			errors.Report(&errors.Error{Op: "store.Persist", Kind: errors.KindApply, Err: err})
		}
	}
}
