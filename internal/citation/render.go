// Package citation draws citation cards and their slide-in animation.
//
// The layout is fixed. Data only chooses colours, text, font size and the
// canvas size; every decoration sits at a constant offset.
package citation

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/citationgen/internal/assets"
)

// Layout offsets.
const (
	dotSize = 2
	dotGap  = 2

	separatorX0      = 16
	separatorX1      = 344
	headerSeparatorY = 34
	crimeSeparatorY  = 114

	sideDotSize = 6
	sideDotGap  = 12
	sideLeftX   = 4
	sideRightX  = 352
	sideY0      = 6
	sideY1      = 150

	textX          = 22
	headerY        = 8
	violationY     = 44
	violationPitch = 18
	punishmentX    = 66
	punishmentY    = 130

	// punishmentMeasureSize is the size the punishment line is measured at
	// for centering unless Data.CenterAtFontSize is set.
	punishmentMeasureSize = 2.0
)

var (
	stampAt   = image.Pt(150, 88)
	barcodeAt = image.Pt(316, 6)
)

// Renderer draws citations using a shared asset store.
type Renderer struct {
	assets *assets.Store
}

// NewRenderer returns a renderer drawing with store's masks and font.
func NewRenderer(store *assets.Store) *Renderer {
	return &Renderer{assets: store}
}

// Render draws d. It never fails: drawing that falls off the canvas is
// clipped.
func (r *Renderer) Render(d *Data) *image.NRGBA {
	s := NewSurface(d.Width, d.Height, d.Background)

	// borders
	DottedRow(s, d.Decoration, 0, 0, d.Width-2, dotSize, dotGap)
	DottedRow(s, d.Decoration, d.Height-2, 2, d.Width-2, dotSize, dotGap)
	s.FillRect(image.Rect(d.Width-2, 0, d.Width, d.Height), d.Decoration)

	DottedRow(s, d.Foreground, headerSeparatorY, separatorX0, separatorX1, dotSize, dotGap)

	s.Overlay(TintMask(r.assets.Stamp(), d.Decoration), stampAt)

	DottedColumn(s, d.Decoration, sideLeftX, sideY0, sideY1, sideDotSize, sideDotGap)
	DottedColumn(s, d.Decoration, sideRightX, sideY0, sideY1, sideDotSize, sideDotGap)

	s.Overlay(TintMask(r.assets.Barcode(), d.Foreground), barcodeAt)

	DottedRow(s, d.Foreground, crimeSeparatorY, separatorX0, separatorX1, dotSize, dotGap)

	face := r.face(d, d.FontSize)
	if face == nil {
		return s.Image()
	}
	defer face.Close()

	s.Text(face, image.Pt(textX, headerY), d.Header, d.Foreground)
	for i, line := range d.Violations {
		if line == nil {
			continue
		}
		s.Text(face, image.Pt(textX, violationY+violationPitch*i), *line, d.Foreground)
	}
	s.Text(face, image.Pt(r.centerPunishment(d), punishmentY), d.Punishment, d.Foreground)

	return s.Image()
}

// centerPunishment centres the punishment line around punishmentX.
func (r *Renderer) centerPunishment(d *Data) int {
	size := punishmentMeasureSize
	if d.CenterAtFontSize {
		size = d.FontSize
	}
	face := r.face(d, size)
	if face == nil {
		return punishmentX
	}
	defer face.Close()
	width := font.MeasureString(face, d.Punishment).Ceil()
	return punishmentX - width>>1
}

// face returns d's font at size, or nil if the font can't be sized.
func (r *Renderer) face(d *Data, size float64) font.Face {
	f := d.Font
	if f == nil {
		f = r.assets.Font()
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil
	}
	return face
}
