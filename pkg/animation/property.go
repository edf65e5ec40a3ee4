package animation

import "strings"

// Property identifies an animatable property.
type Property string

// Transform properties.
const (
	X       Property = "x"
	Y       Property = "y"
	Z       Property = "z"
	Scale   Property = "scale"
	ScaleX  Property = "scale-x"
	ScaleY  Property = "scale-y"
	Rotate  Property = "rotate"
	RotateX Property = "rotate-x"
	RotateY Property = "rotate-y"
	RotateZ Property = "rotate-z"
	SkewX   Property = "skew-x"
	SkewY   Property = "skew-y"
)

// Size and box properties.
const (
	Width        Property = "width"
	Height       Property = "height"
	MinWidth     Property = "min-width"
	MinHeight    Property = "min-height"
	MaxWidth     Property = "max-width"
	MaxHeight    Property = "max-height"
	BorderRadius Property = "border-radius"
	BorderWidth  Property = "border-width"
)

// Visual properties.
const (
	Opacity         Property = "opacity"
	VisibilityProp  Property = "visibility"
	BackgroundColor Property = "background-color"
	TextColor       Property = "color"
	BorderColor     Property = "border-color"
	ShadowOffsetX   Property = "shadow-offset-x"
	ShadowOffsetY   Property = "shadow-offset-y"
	ShadowBlur      Property = "shadow-blur"
	ShadowSpread    Property = "shadow-spread"
	ShadowColor     Property = "shadow-color"
)

// Filter properties.
const (
	Blur       Property = "blur"
	Brightness Property = "brightness"
	Contrast   Property = "contrast"
	Saturate   Property = "saturate"
	Hue        Property = "hue"
	Grayscale  Property = "grayscale"
	Invert     Property = "invert"
	Sepia      Property = "sepia"
)

// Vector graphics and 3D properties.
const (
	StrokeDashOffset   Property = "stroke-dashoffset"
	StrokeWidth        Property = "stroke-width"
	FillOpacity        Property = "fill-opacity"
	StrokeOpacity      Property = "stroke-opacity"
	TransformOriginX   Property = "transform-origin-x"
	TransformOriginY   Property = "transform-origin-y"
	TransformOriginZ   Property = "transform-origin-z"
	Perspective        Property = "perspective"
	PerspectiveOriginX Property = "perspective-origin-x"
	PerspectiveOriginY Property = "perspective-origin-y"
)

// Kind is the value kind a property carries.
type Kind int

const (
	KindScalar Kind = iota
	KindLength
	KindColor
	KindEnum
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindLength:
		return "length"
	case KindColor:
		return "color"
	case KindEnum:
		return "enum"
	default:
		return "scalar"
	}
}

type propertyInfo struct {
	kind Kind
	zero Value
}

var (
	scalarZero   = propertyInfo{kind: KindScalar, zero: Scalar(0)}
	scalarOne    = propertyInfo{kind: KindScalar, zero: Scalar(1)}
	lengthZero   = propertyInfo{kind: KindLength, zero: Length{Unit: Px}}
	colorBlack   = propertyInfo{kind: KindColor, zero: Color{A: 1}}
	lengthCenter = propertyInfo{kind: KindLength, zero: Length{Value: 50, Unit: Percent}}
)

var properties = map[Property]propertyInfo{
	X:       scalarZero,
	Y:       scalarZero,
	Z:       scalarZero,
	Scale:   scalarOne,
	ScaleX:  scalarOne,
	ScaleY:  scalarOne,
	Rotate:  scalarZero,
	RotateX: scalarZero,
	RotateY: scalarZero,
	RotateZ: scalarZero,
	SkewX:   scalarZero,
	SkewY:   scalarZero,

	Width:        lengthZero,
	Height:       lengthZero,
	MinWidth:     lengthZero,
	MinHeight:    lengthZero,
	MaxWidth:     lengthZero,
	MaxHeight:    lengthZero,
	BorderRadius: lengthZero,
	BorderWidth:  lengthZero,

	Opacity:         scalarOne,
	VisibilityProp:  {kind: KindEnum, zero: Visible.State()},
	BackgroundColor: {kind: KindColor, zero: Color{}},
	TextColor:       colorBlack,
	BorderColor:     colorBlack,
	ShadowOffsetX:   scalarZero,
	ShadowOffsetY:   scalarZero,
	ShadowBlur:      scalarZero,
	ShadowSpread:    scalarZero,
	ShadowColor:     colorBlack,

	Blur:       scalarZero,
	Brightness: scalarOne,
	Contrast:   scalarOne,
	Saturate:   scalarOne,
	Hue:        scalarZero,
	Grayscale:  scalarZero,
	Invert:     scalarZero,
	Sepia:      scalarZero,

	StrokeDashOffset:   scalarZero,
	StrokeWidth:        scalarZero,
	FillOpacity:        scalarOne,
	StrokeOpacity:      scalarOne,
	TransformOriginX:   lengthCenter,
	TransformOriginY:   lengthCenter,
	TransformOriginZ:   lengthZero,
	Perspective:        scalarZero,
	PerspectiveOriginX: lengthCenter,
	PerspectiveOriginY: lengthCenter,
}

// ParseProperty resolves a property identifier. Matching is
// case-insensitive and accepts underscores for hyphens.
func ParseProperty(name string) (Property, bool) {
	p := Property(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-"))
	_, ok := properties[p]
	return p, ok
}

// Kind returns the value kind of p. Unknown properties are scalars.
func (p Property) Kind() Kind {
	return properties[p].kind
}

// Known reports whether p is a registered property.
func (p Property) Known() bool {
	_, ok := properties[p]
	return ok
}

// Default returns the resting value of p: 1 for multiplicative properties
// such as scale and opacity, 0 for offsets, transparent for background
// colours.
func (p Property) Default() Value {
	if info, ok := properties[p]; ok {
		return info.zero
	}
	return Scalar(0)
}

// IsTransform reports whether p is part of the element transform.
func (p Property) IsTransform() bool {
	switch p {
	case X, Y, Z, Scale, ScaleX, ScaleY, Rotate, RotateX, RotateY, RotateZ, SkewX, SkewY:
		return true
	}
	return false
}
