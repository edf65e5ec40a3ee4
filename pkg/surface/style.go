package surface

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-drift/motion/pkg/animation"
)

type part struct {
	p      animation.Property
	format func(float64) string
}

func fn(name, unit string) func(float64) string {
	return func(v float64) string { return name + "(" + num(v) + unit + ")" }
}

func percent(name string) func(float64) string {
	return func(v float64) string { return fmt.Sprintf("%s(%d%%)", name, int(math.Round(v*100))) }
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Composition order follows CSS: translate, scale, rotate, skew, perspective.
var transformParts = []part{
	{animation.Scale, fn("scale", "")},
	{animation.ScaleX, fn("scaleX", "")},
	{animation.ScaleY, fn("scaleY", "")},
	{animation.Rotate, fn("rotate", "deg")},
	{animation.RotateX, fn("rotateX", "deg")},
	{animation.RotateY, fn("rotateY", "deg")},
	{animation.RotateZ, fn("rotateZ", "deg")},
	{animation.SkewX, fn("skewX", "deg")},
	{animation.SkewY, fn("skewY", "deg")},
	{animation.Perspective, fn("perspective", "px")},
}

var filterParts = []part{
	{animation.Blur, fn("blur", "px")},
	{animation.Brightness, fn("brightness", "")},
	{animation.Contrast, fn("contrast", "")},
	{animation.Saturate, fn("saturate", "")},
	{animation.Hue, fn("hue-rotate", "deg")},
	{animation.Grayscale, percent("grayscale")},
	{animation.Invert, percent("invert")},
	{animation.Sepia, percent("sepia")},
}

// Style renders element values as CSS declarations. Transform and filter
// components are folded into "transform" and "filter"; the rest keep their
// property name.
func Style(values map[animation.Property]animation.Value) map[string]string {
	style := make(map[string]string, len(values))
	folded := make(map[animation.Property]bool)

	var transform []string
	if t := translate(values); t != "" {
		transform = append(transform, t)
	}
	folded[animation.X], folded[animation.Y], folded[animation.Z] = true, true, true
	transform = appendParts(transform, transformParts, values, folded)
	if len(transform) > 0 {
		style["transform"] = strings.Join(transform, " ")
	}

	if filter := appendParts(nil, filterParts, values, folded); len(filter) > 0 {
		style["filter"] = strings.Join(filter, " ")
	}

	for p, v := range values {
		if folded[p] {
			continue
		}
		if p == animation.VisibilityProp {
			if e, ok := v.(animation.EnumState); ok {
				style[string(p)] = e.Visibility().String()
				continue
			}
		}
		style[string(p)] = v.String()
	}
	return style
}

// translate rounds to whole pixels and is omitted at the origin.
func translate(values map[animation.Property]animation.Value) string {
	x := math.Round(number(values, animation.X))
	y := math.Round(number(values, animation.Y))
	z := math.Round(number(values, animation.Z))
	if x == 0 && y == 0 && z == 0 {
		return ""
	}
	return fmt.Sprintf("translate3d(%dpx, %dpx, %dpx)", int(x), int(y), int(z))
}

func appendParts(dst []string, parts []part, values map[animation.Property]animation.Value, folded map[animation.Property]bool) []string {
	for _, pt := range parts {
		folded[pt.p] = true
		v, ok := values[pt.p]
		if !ok {
			continue
		}
		dst = append(dst, pt.format(animation.ExtractNumber(v)))
	}
	return dst
}

func number(values map[animation.Property]animation.Value, p animation.Property) float64 {
	if v, ok := values[p]; ok {
		return animation.ExtractNumber(v)
	}
	return 0
}
