package microlens

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

var (
	colorBackground = color.NRGBA{0, 0, 0, 255}
	colorHit        = color.NRGBA{255, 255, 255, 255}
	colorCritical   = color.NRGBA{40, 70, 160, 255}
	colorSource     = color.NRGBA{220, 30, 30, 255}
	colorLens       = color.NRGBA{240, 220, 40, 255}
	colorGrid       = color.NRGBA{90, 90, 90, 255}
	colorLabel      = color.NRGBA{160, 160, 160, 255}
)

// Renderer draws a frame of the image plane: the regions reported as images
// of the source, critical-curve regions at the resolution floor, the source
// disk outline and the lenses. Y points up.
type Renderer struct {
	Window    Region
	Size      int // square image, pixels per side
	Lenses    []Lens
	DebugGrid bool // outline every terminal, label shallow ones with their level
}

func (r *Renderer) scale() Real { return Real(r.Size) / r.Window.Size }

// toPixel maps a plane position to image coordinates (flipped Y).
func (r *Renderer) toPixel(p Point) (float32, float32) {
	s := r.scale()
	return float32((p.X - r.Window.X) * s), float32(Real(r.Size) - (p.Y-r.Window.Y)*s)
}

// Render returns a new image of one frame.
func (r *Renderer) Render(src Source, terms []Terminal) *image.NRGBA {
	n := r.Size
	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	draw.Draw(img, img.Bounds(), image.NewUniform(colorBackground), image.Point{}, draw.Src)

	hits := vector.NewRasterizer(n, n)
	crit := vector.NewRasterizer(n, n)
	for _, t := range terms {
		switch {
		case t.Hit:
			r.addRect(hits, t.Region)
		case t.Reason == Critical:
			r.addRect(crit, t.Region)
		}
	}
	crit.Draw(img, img.Bounds(), image.NewUniform(colorCritical), image.Point{})
	hits.Draw(img, img.Bounds(), image.NewUniform(colorHit), image.Point{})

	if r.DebugGrid {
		r.drawGrid(img, terms)
	}

	// Source outline as a ring: outer circle one way, inner the other.
	px := 1 / r.scale()
	ring := vector.NewRasterizer(n, n)
	r.addCircle(ring, src.Origin, src.Radius+px, false)
	if inner := src.Radius - px; inner > 0 {
		r.addCircle(ring, src.Origin, inner, true)
	}
	ring.Draw(img, img.Bounds(), image.NewUniform(colorSource), image.Point{})

	dots := vector.NewRasterizer(n, n)
	for _, l := range r.Lenses {
		r.addCircle(dots, l.Origin, 3*px, false)
	}
	dots.Draw(img, img.Bounds(), image.NewUniform(colorLens), image.Point{})
	return img
}

func (r *Renderer) addRect(z *vector.Rasterizer, reg Region) {
	x0, y0 := r.toPixel(reg.Corner(BottomLeft))
	x1, y1 := r.toPixel(reg.Corner(TopRight))
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

func (r *Renderer) addCircle(z *vector.Rasterizer, c Point, radius Real, reverse bool) {
	for i := 0; i <= CirclePoints; i++ {
		a := 2 * math.Pi * Real(i) / CirclePoints
		if reverse {
			a = -a
		}
		x, y := r.toPixel(Point{c.X + radius*math.Cos(a), c.Y + radius*math.Sin(a)})
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}

func (r *Renderer) drawGrid(img *image.NRGBA, terms []Terminal) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(colorLabel),
		Face: basicfont.Face7x13,
	}
	for _, t := range terms {
		x0f, y1f := r.toPixel(t.Region.Corner(BottomLeft))
		x1f, y0f := r.toPixel(t.Region.Corner(TopRight))
		x0, y0 := int(x0f), int(y0f)
		x1, y1 := int(x1f), int(y1f)
		for x := x0; x <= x1; x++ {
			img.SetNRGBA(x, y0, colorGrid)
			img.SetNRGBA(x, y1, colorGrid)
		}
		for y := y0; y <= y1; y++ {
			img.SetNRGBA(x0, y, colorGrid)
			img.SetNRGBA(x1, y, colorGrid)
		}

		if t.Hit || t.Reason != Classified || t.Level >= DebugLabelLevels {
			continue
		}
		label := strconv.Itoa(t.Level)
		w := d.MeasureString(label).Ceil()
		d.Dot = fixed.P((x0+x1-w)/2, (y0+y1+basicfont.Face7x13.Ascent)/2)
		d.DrawString(label)
	}
}
