package server

import (
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
)

const (
	ESC   = "\x1b"
	CSI   = ESC + "["
	Reset = CSI + "0m"

	// upperHalf shows the top pixel in the foreground colour and the bottom
	// pixel in the background colour, so one cell holds two pixel rows.
	upperHalf = '▀'
)

// writeCellSGR writes one half-block cell with 24-bit colours.
func writeCellSGR(sb *strings.Builder, top, bottom color.NRGBA) {
	sb.WriteString("\x1b[0;38;2;")
	sb.WriteString(strconv.Itoa(int(top.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(top.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(top.B)))
	sb.WriteString(";48;2;")
	sb.WriteString(strconv.Itoa(int(bottom.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bottom.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(bottom.B)))
	sb.WriteByte('m')
	sb.WriteRune(upperHalf)
}

// HalfBlocks draws img in at most cols×rows terminal cells. The image is
// shrunk to fit, never enlarged. Rows end with CRLF for raw PTYs.
func HalfBlocks(img image.Image, cols, rows int) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	fit := imaging.Fit(img, cols, rows*2, imaging.Box)
	b := fit.Bounds()

	var sb strings.Builder
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := fit.NRGBAAt(x, y)
			bottom := color.NRGBA{}
			if y+1 < b.Max.Y {
				bottom = fit.NRGBAAt(x, y+1)
			}
			writeCellSGR(&sb, top, bottom)
		}
		sb.WriteString(Reset)
		sb.WriteString("\r\n")
	}
	return sb.String()
}
