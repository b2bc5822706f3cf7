package render

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"termsuji-spectate/geometry"
	"termsuji-spectate/types"
)

// RasterSurface draws onto an RGBA image. Coordinates are logical pixels,
// scaled by the device pixel ratio into the backing image.
type RasterSurface struct {
	img *image.RGBA
	gc  *draw2dimg.GraphicContext
	dpr float64
	w   float64
	h   float64
}

// NewRasterSurface creates a w x h logical pixel surface.
func NewRasterSurface(w, h, dpr float64) *RasterSurface {
	if dpr <= 0 {
		dpr = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w*dpr)), int(math.Ceil(h*dpr))))
	gc := draw2dimg.NewGraphicContext(img)
	gc.Scale(dpr, dpr)
	return &RasterSurface{img: img, gc: gc, dpr: dpr, w: w, h: h}
}

// Image returns the backing image.
func (s *RasterSurface) Image() *image.RGBA {
	return s.img
}

// Size returns the logical size of the surface.
func (s *RasterSurface) Size() (float64, float64) {
	return s.w, s.h
}

func (s *RasterSurface) FillRect(x, y, w, h float64, c color.Color) {
	s.gc.SetFillColor(c)
	s.gc.BeginPath()
	draw2dkit.Rectangle(s.gc, x, y, x+w, y+h)
	s.gc.Fill()
}

func (s *RasterSurface) StrokeLine(x1, y1, x2, y2, width float64, c color.Color) {
	s.gc.SetStrokeColor(c)
	s.gc.SetLineWidth(width)
	s.gc.BeginPath()
	s.gc.MoveTo(x1, y1)
	s.gc.LineTo(x2, y2)
	s.gc.Stroke()
}

func (s *RasterSurface) FillCircle(cx, cy, r float64, c color.Color) {
	s.gc.SetFillColor(c)
	s.gc.BeginPath()
	draw2dkit.Circle(s.gc, cx, cy, r)
	s.gc.Fill()
}

// FillStone paints the shadow first, then approximates the radial gradient
// with concentric discs shrinking towards the highlight point.
func (s *RasterSurface) FillStone(cx, cy, r float64, g Gradient) {
	if r <= 0 {
		return
	}
	if g.Shadow.A > 0 {
		s.FillCircle(cx+g.ShadowDX, cy+g.ShadowDY, r, g.Shadow)
	}
	hx, hy := cx+g.HighlightX*r, cy+g.HighlightY*r
	steps := int(math.Max(12, r*s.dpr))
	for i := steps; i >= 1; i-- {
		f := float64(i) / float64(steps)
		s.FillCircle(hx+(cx-hx)*f, hy+(cy-hy)*f, r*f, g.At(f))
	}
}

func (s *RasterSurface) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	s.gc.SetStrokeColor(c)
	s.gc.SetLineWidth(width)
	s.gc.BeginPath()
	draw2dkit.Circle(s.gc, cx, cy, r)
	s.gc.Stroke()
}

// FillText draws text centred on (x, y). Text bypasses the draw2d
// transform and is placed in device pixels directly.
func (s *RasterSurface) FillText(text string, x, y, size float64, c color.Color) {
	face := faceForSize(size * s.dpr)
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
	}
	m := face.Metrics()
	width := d.MeasureString(text)
	d.Dot = fixed.Point26_6{
		X: fixed.Int26_6(x*s.dpr*64) - width/2,
		Y: fixed.Int26_6(y*s.dpr*64) + (m.Ascent-m.Descent)/2,
	}
	d.DrawString(text)
}

// WritePNG saves the surface to path.
func (s *RasterSurface) WritePNG(path string) error {
	if err := draw2dimg.SaveToPngFile(path, s.img); err != nil {
		return fmt.Errorf("write png %s: %w", path, err)
	}
	return nil
}

// Frame renders board into a fresh w x h surface, the way a canvas would
// be redrawn after a resize.
func Frame(board *types.BoardSnapshot, w, h, dpr float64) *RasterSurface {
	s := NewRasterSurface(w, h, dpr)
	if board == nil {
		return s
	}
	Render(s, board, geometry.ComputeLayout(board.Size, w, h))
	return s
}

var (
	fontOnce  sync.Once
	goRegular *opentype.Font
	facesMu   sync.Mutex
	faces     = map[int]font.Face{}
)

// faceForSize returns a Go Regular face rounded to the nearest pixel size,
// falling back to the fixed 7x13 bitmap face if the font cannot be parsed.
func faceForSize(px float64) font.Face {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err == nil {
			goRegular = f
		}
	})
	if goRegular == nil {
		return basicfont.Face7x13
	}
	key := int(math.Round(px))
	if key < 1 {
		key = 1
	}
	facesMu.Lock()
	defer facesMu.Unlock()
	if f, ok := faces[key]; ok {
		return f
	}
	f, err := opentype.NewFace(goRegular, &opentype.FaceOptions{Size: float64(key), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	faces[key] = f
	return f
}
