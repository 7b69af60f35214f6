package params

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ErrBadColour is returned for colour strings ParseColour can't read.
var ErrBadColour = errors.New("bad colour")

var channelNames = [4]string{"red", "green", "blue", "alpha"}

// ParseColour reads "r,g,b" or "r,g,b,a", optionally wrapped in [] or ().
// Alpha defaults to 255.
func ParseColour(s string) (color.NRGBA, error) {
	trimmed := strings.Trim(strings.TrimSpace(s), "[]()")
	parts := strings.Split(trimmed, ",")
	if len(parts) < 3 || len(parts) > 4 {
		return color.NRGBA{}, fmt.Errorf("%w %q: want 3 or 4 channels", ErrBadColour, s)
	}
	ch := [4]uint8{3: 255}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("%w %q: %s channel: %v", ErrBadColour, s, channelNames[i], err)
		}
		ch[i] = uint8(v)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// FormatColour prints c in the form ParseColour reads.
func FormatColour(c color.NRGBA) string {
	return fmt.Sprintf("[%d, %d, %d, %d]", c.R, c.G, c.B, c.A)
}
