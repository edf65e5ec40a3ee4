package animation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// Value is an animatable property value. The concrete types are [Scalar],
// [Length], [Color] and [EnumState]; the set is closed.
type Value interface {
	fmt.Stringer
	isValue()
}

// Scalar is a plain number (translation, scale, opacity, angle...).
type Scalar float64

// Unit is the unit of a [Length].
type Unit string

// Length units.
const (
	Px      Unit = "px"
	Percent Unit = "%"
	VW      Unit = "vw"
	VH      Unit = "vh"
	Em      Unit = "em"
	Rem     Unit = "rem"
)

// Units lists every supported length unit.
var Units = []Unit{Px, Percent, VW, VH, Em, Rem}

// Length is a magnitude with a unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Color is an RGBA colour. R, G and B are conventionally in [0,255] and A in
// [0,1]; channels are not clamped during interpolation.
type Color struct {
	R, G, B, A float64
}

// EnumState is a discrete state carried as a numeric ordinal so that it can
// be interpolated. [EnumState.Index] decodes it back to a discrete state.
type EnumState struct {
	Ordinal float64
}

// Visibility is the discrete state of the visibility property.
type Visibility int

const (
	Visible Visibility = iota
	Hidden
	Collapse
)

// String returns the CSS keyword for v.
func (v Visibility) String() string {
	switch v {
	case Hidden:
		return "hidden"
	case Collapse:
		return "collapse"
	default:
		return "visible"
	}
}

func (Scalar) isValue()    {}
func (Length) isValue()    {}
func (Color) isValue()     {}
func (EnumState) isValue() {}

func (s Scalar) String() string {
	return strconv.FormatFloat(float64(s), 'g', -1, 64)
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + string(l.Unit)
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)",
		int(math.Round(c.R)), int(math.Round(c.G)), int(math.Round(c.B)),
		strconv.FormatFloat(c.A, 'g', -1, 64))
}

func (e EnumState) String() string {
	return strconv.Itoa(e.Index())
}

// State returns the EnumState for a visibility value.
func (v Visibility) State() EnumState {
	return EnumState{Ordinal: float64(v)}
}

// Index decodes the ordinal by thresholding halfway between states.
func (e EnumState) Index() int {
	idx := int(math.Floor(e.Ordinal + 0.5))
	if idx < 0 {
		return 0
	}
	return idx
}

// Visibility decodes e as a visibility state.
func (e EnumState) Visibility() Visibility {
	switch idx := e.Index(); {
	case idx <= int(Visible):
		return Visible
	case idx >= int(Collapse):
		return Collapse
	default:
		return Hidden
	}
}

// RGBA returns an opaque-or-translucent colour from 8-bit channels.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: float64(r), G: float64(g), B: float64(b), A: a}
}

// Colorful converts c to a go-colorful colour, dropping alpha.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R / 255, G: c.G / 255, B: c.B / 255}
}

// ColorFromColorful converts a go-colorful colour with the given alpha.
func ColorFromColorful(c colorful.Color, alpha float64) Color {
	return Color{R: c.R * 255, G: c.G * 255, B: c.B * 255, A: alpha}
}

// Lerp linearly interpolates between two numbers.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Interpolate returns the value a fraction t of the way from start to end.
// Values of the same kind interpolate component-wise; a Length keeps the
// unit of start and an EnumState is decoded to the nearest state. When the
// kinds differ the result is start, unchanged, for every t.
//
// t is not clamped.
func Interpolate(start, end Value, t float64) Value {
	switch s := start.(type) {
	case Scalar:
		if e, ok := end.(Scalar); ok {
			return Scalar(Lerp(float64(s), float64(e), t))
		}
	case Length:
		if e, ok := end.(Length); ok {
			return Length{Value: Lerp(s.Value, e.Value, t), Unit: s.Unit}
		}
	case Color:
		if e, ok := end.(Color); ok {
			return Color{
				R: Lerp(s.R, e.R, t),
				G: Lerp(s.G, e.G, t),
				B: Lerp(s.B, e.B, t),
				A: Lerp(s.A, e.A, t),
			}
		}
	case EnumState:
		if e, ok := end.(EnumState); ok {
			return EnumState{Ordinal: float64(EnumState{Ordinal: Lerp(s.Ordinal, e.Ordinal, t)}.Index())}
		}
	}
	return start
}

// ExtractNumber returns the numeric payload of v. For a Color it returns the
// red channel, which is not generally meaningful.
func ExtractNumber(v Value) float64 {
	switch v := v.(type) {
	case Scalar:
		return float64(v)
	case Length:
		return v.Value
	case EnumState:
		return v.Ordinal
	case Color:
		return v.R
	default:
		return 0
	}
}

// WithNumber rebuilds a value of the same kind as template carrying n as its
// payload. For a Color, n replaces the red channel.
func WithNumber(template Value, n float64) Value {
	switch v := template.(type) {
	case Scalar:
		return Scalar(n)
	case Length:
		return Length{Value: n, Unit: v.Unit}
	case EnumState:
		return EnumState{Ordinal: n}
	case Color:
		v.R = n
		return v
	default:
		return Scalar(n)
	}
}

// SameKind reports whether a and b are the same value kind.
func SameKind(a, b Value) bool {
	switch a.(type) {
	case Scalar:
		_, ok := b.(Scalar)
		return ok
	case Length:
		_, ok := b.(Length)
		return ok
	case Color:
		_, ok := b.(Color)
		return ok
	case EnumState:
		_, ok := b.(EnumState)
		return ok
	}
	return false
}
