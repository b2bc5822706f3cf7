// Package render paints a board snapshot onto a drawing surface.
package render

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Surface is a 2D drawing target measured in logical pixels.
// Text is centred on (x, y) both horizontally and vertically.
type Surface interface {
	FillRect(x, y, w, h float64, c color.Color)
	StrokeLine(x1, y1, x2, y2, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	FillStone(cx, cy, r float64, g Gradient)
	StrokeCircle(cx, cy, r, width float64, c color.Color)
	FillText(text string, x, y, size float64, c color.Color)
}

// Stop is one colour stop of a radial gradient, Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient describes a shaded stone: a radial gradient starting at a
// highlight offset from the centre, plus a drop shadow.
type Gradient struct {
	Stops      []Stop
	HighlightX float64 // highlight offset as a fraction of the radius
	HighlightY float64
	Shadow     color.NRGBA
	ShadowDX   float64
	ShadowDY   float64
}

// At returns the gradient colour at t in [0, 1], 0 being the highlight
// and 1 the rim.
func (g Gradient) At(t float64) color.NRGBA {
	if len(g.Stops) == 0 {
		return color.NRGBA{}
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return blend(a.Color, b.Color, (t-a.Offset)/span)
	}
	return g.Stops[len(g.Stops)-1].Color
}

func blend(a, b color.NRGBA, t float64) color.NRGBA {
	ca, _ := colorful.MakeColor(opaque(a))
	cb, _ := colorful.MakeColor(opaque(b))
	r, gr, bl := ca.BlendRgb(cb, t).Clamped().RGB255()
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return color.NRGBA{R: r, G: gr, B: bl, A: uint8(alpha + 0.5)}
}

func opaque(c color.NRGBA) color.NRGBA {
	c.A = 0xff
	return c
}

// hex parses a #rrggbb colour. Only used on compile-time constants.
func hex(s string) color.NRGBA {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
