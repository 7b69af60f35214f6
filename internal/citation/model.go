package citation

import (
	"image/color"

	"golang.org/x/image/font/opentype"
)

// MaxViolations is the number of violation slots on a citation.
const MaxViolations = 4

// Violations holds the violation lines. A nil slot draws nothing but still
// owns its row, so later lines never move up.
type Violations [MaxViolations]*string

// Lines fills slots in order. Empty strings leave their slot nil and lines
// past MaxViolations are dropped.
func Lines(lines ...string) Violations {
	var v Violations
	for i := 0; i < len(lines) && i < MaxViolations; i++ {
		if lines[i] == "" {
			continue
		}
		s := lines[i]
		v[i] = &s
	}
	return v
}

// Count returns the number of non-nil slots.
func (v Violations) Count() int {
	n := 0
	for _, s := range v {
		if s != nil {
			n++
		}
	}
	return n
}

// Data describes one citation. Width and Height are not validated; the
// fixed layout needs roughly the default size to look right.
type Data struct {
	Width      int
	Height     int
	Background color.NRGBA
	Foreground color.NRGBA
	Decoration color.NRGBA

	// Font is the face source for all text. Nil means the renderer's
	// bundled font.
	Font     *opentype.Font
	FontSize float64

	Header     string
	Violations Violations
	Punishment string

	// CenterAtFontSize measures the punishment line at FontSize when
	// centering it. The default measures at a fixed size of 2, which keeps
	// output identical to earlier citations but puts the line off center.
	CenterAtFontSize bool
}

// Default colours.
var (
	DefaultBackground = color.NRGBA{R: 243, G: 215, B: 230, A: 255}
	DefaultForeground = color.NRGBA{R: 90, G: 85, B: 89, A: 255}
	DefaultDecoration = color.NRGBA{R: 191, G: 168, B: 168, A: 255}
)

// Default text.
const (
	DefaultWidth      = 366
	DefaultHeight     = 160
	DefaultFontSize   = 16.0
	DefaultHeader     = "M.O.A. CITATION"
	DefaultPunishment = "LAST WARNING - NO PENALTY"
)

// DefaultViolations returns the violation lines of the default citation.
func DefaultViolations() Violations {
	return Lines("Protocol Violated", "Entry Permit: Invalid Name")
}

// DefaultData returns the stock citation drawn with f.
func DefaultData(f *opentype.Font) *Data {
	return &Data{
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Background: DefaultBackground,
		Foreground: DefaultForeground,
		Decoration: DefaultDecoration,
		Font:       f,
		FontSize:   DefaultFontSize,
		Header:     DefaultHeader,
		Violations: DefaultViolations(),
		Punishment: DefaultPunishment,
	}
}
