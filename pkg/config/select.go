package config

import (
	"maps"

	"github.com/go-drift/motion/pkg/animation"
)

// Select returns a when cond holds and b otherwise.
func Select(cond bool, a, b AnimationSpec) AnimationSpec {
	if cond {
		return a
	}
	return b
}

// Match returns the case keyed by value. With no matching case it returns
// base unchanged, which animates nothing new.
func Match(value string, cases map[string]AnimationSpec, base AnimationSpec) AnimationSpec {
	if spec, ok := cases[value]; ok {
		return spec
	}
	return base
}

// Ternary returns spec with property targeting ifTrue when cond holds and
// ifFalse otherwise. The property must be a known scalar.
func Ternary(spec AnimationSpec, cond bool, property string, ifTrue, ifFalse float64) (AnimationSpec, error) {
	p, ok := animation.ParseProperty(property)
	if !ok || p.Kind() != animation.KindScalar {
		return spec, propertyError("config.Ternary", property, ErrUnknownProperty)
	}
	v := ifFalse
	if cond {
		v = ifTrue
	}
	target := make(map[string]any, len(spec.Target)+1)
	maps.Copy(target, spec.Target)
	target[string(p)] = v
	spec.Target = target
	return spec, nil
}
