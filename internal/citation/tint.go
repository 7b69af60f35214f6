package citation

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Tint recolours one mask sample: RGB comes from c, alpha is c's alpha
// scaled by intensity/255 and rounded.
func Tint(intensity uint8, c color.NRGBA) color.NRGBA {
	c.A = uint8((uint32(c.A)*uint32(intensity) + 127) / 255)
	return c
}

// TintMask returns a copy of mask recoloured with c. The result has the
// mask's size with its origin at (0, 0).
func TintMask(mask *image.Gray, c color.NRGBA) *image.NRGBA {
	// A gray sample reads back as R == G == B == Y.
	return imaging.AdjustFunc(mask, func(p color.NRGBA) color.NRGBA {
		return Tint(p.R, c)
	})
}
