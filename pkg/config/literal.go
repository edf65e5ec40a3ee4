package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/motion/pkg/animation"
)

// ParseValue converts a raw YAML scalar into the value kind p carries.
// raw is whatever yaml.v3 decoded into an interface: an int, a float64 or
// a string.
func ParseValue(p animation.Property, raw any) (animation.Value, error) {
	switch p.Kind() {
	case animation.KindLength:
		if n, ok := number(raw); ok {
			return animation.Length{Value: n, Unit: animation.Px}, nil
		}
		if s, ok := raw.(string); ok {
			return ParseLength(s)
		}
	case animation.KindColor:
		if s, ok := raw.(string); ok {
			return ParseColor(s)
		}
	case animation.KindEnum:
		if n, ok := number(raw); ok {
			return animation.EnumState{Ordinal: n}, nil
		}
		if s, ok := raw.(string); ok {
			v, err := ParseVisibility(s)
			if err != nil {
				return nil, err
			}
			return v.State(), nil
		}
	default:
		if n, ok := number(raw); ok {
			return animation.Scalar(n), nil
		}
		if s, ok := raw.(string); ok {
			n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", ErrBadLiteral, s)
			}
			return animation.Scalar(n), nil
		}
	}
	return nil, fmt.Errorf("%w: %v is not a %s", ErrBadLiteral, raw, p.Kind())
}

func number(raw any) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case float32:
		return float64(n), true
	}
	return 0, false
}

// ParseLength parses "<number><unit>". A bare number is in pixels.
func ParseLength(s string) (animation.Length, error) {
	s = strings.TrimSpace(s)
	unit := animation.Px
	num := s
	// Longest suffix first so "rem" is not read as "em".
	for _, u := range []animation.Unit{animation.Rem, animation.Em, animation.Px, animation.Percent, animation.VW, animation.VH} {
		if strings.HasSuffix(strings.ToLower(s), string(u)) {
			unit = u
			num = strings.TrimSpace(s[:len(s)-len(u)])
			break
		}
	}
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return animation.Length{}, fmt.Errorf("%w: length %q", ErrBadLiteral, s)
	}
	return animation.Length{Value: n, Unit: unit}, nil
}

// ParseColor accepts "#rgb", "#rrggbb", "rgb(r, g, b)", "rgba(r, g, b, a)",
// "hsl(h, s%, l%)" and "transparent".
func ParseColor(s string) (animation.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	bad := fmt.Errorf("%w: color %q", ErrBadLiteral, s)

	switch {
	case s == "transparent":
		return animation.Color{}, nil
	case strings.HasPrefix(s, "#"):
		c, err := colorful.Hex(s)
		if err != nil {
			return animation.Color{}, bad
		}
		return animation.ColorFromColorful(c, 1), nil
	}

	name, args, ok := splitCall(s)
	if !ok {
		return animation.Color{}, bad
	}
	nums := make([]float64, len(args))
	for i, a := range args {
		n, err := strconv.ParseFloat(strings.TrimSuffix(a, "%"), 64)
		if err != nil {
			return animation.Color{}, bad
		}
		nums[i] = n
	}

	switch {
	case name == "rgb" && len(nums) == 3:
		return animation.Color{R: nums[0], G: nums[1], B: nums[2], A: 1}, nil
	case name == "rgba" && len(nums) == 4:
		return animation.Color{R: nums[0], G: nums[1], B: nums[2], A: nums[3]}, nil
	case name == "hsl" && len(nums) == 3:
		return animation.ColorFromColorful(colorful.Hsl(nums[0], nums[1]/100, nums[2]/100), 1), nil
	}
	return animation.Color{}, bad
}

// splitCall splits "name(a, b, c)" into its name and trimmed arguments.
func splitCall(s string) (string, []string, bool) {
	open := strings.IndexByte(s, '(')
	if open <= 0 || !strings.HasSuffix(s, ")") {
		return "", nil, false
	}
	parts := strings.Split(s[open+1:len(s)-1], ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return strings.TrimSpace(s[:open]), parts, true
}

// ParseVisibility parses a CSS visibility keyword.
func ParseVisibility(s string) (animation.Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "visible":
		return animation.Visible, nil
	case "hidden":
		return animation.Hidden, nil
	case "collapse":
		return animation.Collapse, nil
	}
	return 0, fmt.Errorf("%w: visibility %q", ErrBadLiteral, s)
}

// Duration is a time.Duration that reads "400ms" style strings or a bare
// number of milliseconds from YAML.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if n, ok := number(raw); ok {
		*d = Duration(time.Duration(n * float64(time.Millisecond)))
		return nil
	}
	s, ok := raw.(string)
	if !ok {
		return fmt.Errorf("%w: duration %v", ErrBadLiteral, raw)
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: duration %q", ErrBadLiteral, s)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes the duration in time.Duration notation.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }
