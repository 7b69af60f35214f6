package citation

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Surface is a canvas that drops every write falling outside it.
type Surface struct {
	img *image.NRGBA
}

// NewSurface returns a w×h surface filled with bg.
func NewSurface(w, h int, bg color.NRGBA) *Surface {
	return &Surface{img: imaging.New(w, h, bg)}
}

// Image returns the backing image.
func (s *Surface) Image() *image.NRGBA { return s.img }

// FillRect replaces the pixels of r with c.
func (s *Surface) FillRect(r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(s.img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			s.img.SetNRGBA(x, y, c)
		}
	}
}

// Overlay composites src over the surface with its top-left corner at at.
func (s *Surface) Overlay(src image.Image, at image.Point) {
	sb := src.Bounds()
	r := image.Rectangle{Min: at, Max: at.Add(sb.Size())}
	draw.Draw(s.img, r, src, sb.Min, draw.Over)
}

// Text draws str with face so that at is the top-left of its line box.
func (s *Surface) Text(face font.Face, at image.Point, str string, c color.NRGBA) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I(at.X),
			Y: fixed.I(at.Y) + face.Metrics().Ascent,
		},
	}
	d.DrawString(str)
}

// DottedRow draws size×size squares on rows y..y+size-1, one every size+gap
// pixels from x0 for as long as the square's left edge is <= x1.
func DottedRow(s *Surface, c color.NRGBA, y, x0, x1, size, gap int) {
	step := size + gap
	if size <= 0 || step <= 0 {
		return
	}
	for x := x0; x <= x1; x += step {
		s.FillRect(image.Rect(x, y, x+size, y+size), c)
	}
}

// DottedColumn is DottedRow turned on its side: squares start at column x
// and step down from y0 while their top edge is <= y1.
func DottedColumn(s *Surface, c color.NRGBA, x, y0, y1, size, gap int) {
	step := size + gap
	if size <= 0 || step <= 0 {
		return
	}
	for y := y0; y <= y1; y += step {
		s.FillRect(image.Rect(x, y, x+size, y+size), c)
	}
}
