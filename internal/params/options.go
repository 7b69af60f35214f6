// Package params turns user supplied citation options (query strings, JSON
// bodies, command-line flags) into citation.Data.
package params

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"math"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/image/font/opentype"

	"github.com/youruser/citationgen/internal/citation"
)

// Bounds on caller-supplied sizes.
const (
	MaxDimension = 2048
	MaxFontSize  = 256
)

var (
	ErrTooManyViolations = errors.New("too many violations")
	ErrBadSize           = errors.New("bad size")
)

// Options is the user-facing form of a citation. Zero fields take the
// default citation's value. An empty entry in Violations leaves its slot
// blank.
type Options struct {
	// Preset names a preset whose values fill the empty fields. Resolving it
	// is up to the caller; Data ignores it.
	Preset     string   `json:"preset" form:"preset"`
	Header     string   `json:"header" form:"header"`
	Violations []string `json:"violations" form:"violations"`
	Punishment string   `json:"punishment" form:"punishment"`
	Background string   `json:"bg" form:"bg"`
	Foreground string   `json:"fg" form:"fg"`
	Decoration string   `json:"decoration" form:"decoration"`
	Width      int      `json:"width" form:"width"`
	Height     int      `json:"height" form:"height"`
	FontSize   float64  `json:"font_size" form:"font_size"`
	GIF        bool     `json:"gif" form:"gif"`
}

// splitList splits comma separated violation values. Empty entries are kept
// so they can hold a slot open.
func splitList(values []string) []string {
	out := []string{}
	for _, v := range values {
		for _, p := range strings.Split(v, ",") {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

// Data builds the citation described by o, drawn with f.
func (o Options) Data(f *opentype.Font) (*citation.Data, error) {
	d := citation.DefaultData(f)

	if o.Header != "" {
		d.Header = o.Header
	}
	if o.Punishment != "" {
		d.Punishment = o.Punishment
	}
	if o.Violations != nil {
		lines := splitList(o.Violations)
		if len(lines) > citation.MaxViolations {
			return nil, fmt.Errorf("%w: got %d, max %d", ErrTooManyViolations, len(lines), citation.MaxViolations)
		}
		d.Violations = citation.Lines(lines...)
	}

	for _, c := range []struct {
		name string
		in   string
		out  *color.NRGBA
	}{
		{"bg", o.Background, &d.Background},
		{"fg", o.Foreground, &d.Foreground},
		{"decoration", o.Decoration, &d.Decoration},
	} {
		if c.in == "" {
			continue
		}
		v, err := ParseColour(c.in)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", c.name, err)
		}
		*c.out = v
	}

	if o.Width < 0 || o.Width > MaxDimension || o.Height < 0 || o.Height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d, max %d", ErrBadSize, o.Width, o.Height, MaxDimension)
	}
	if o.Width > 0 {
		d.Width = o.Width
	}
	if o.Height > 0 {
		d.Height = o.Height
	}
	if o.FontSize < 0 || o.FontSize > MaxFontSize || math.IsNaN(o.FontSize) {
		return nil, fmt.Errorf("%w: font size %g, max %d", ErrBadSize, o.FontSize, MaxFontSize)
	}
	if o.FontSize > 0 {
		d.FontSize = o.FontSize
	}
	return d, nil
}

// Query encodes o as URL query parameters, omitting zero fields.
func (o Options) Query() url.Values {
	q := url.Values{}
	set := func(k, v string) {
		if v != "" {
			q.Set(k, v)
		}
	}
	set("preset", o.Preset)
	set("header", o.Header)
	set("punishment", o.Punishment)
	set("bg", o.Background)
	set("fg", o.Foreground)
	set("decoration", o.Decoration)
	if o.Violations != nil {
		q.Set("violations", strings.Join(splitList(o.Violations), ","))
	}
	if o.Width > 0 {
		q.Set("width", strconv.Itoa(o.Width))
	}
	if o.Height > 0 {
		q.Set("height", strconv.Itoa(o.Height))
	}
	if o.FontSize > 0 {
		q.Set("font_size", strconv.FormatFloat(o.FontSize, 'g', -1, 64))
	}
	return q
}

// BindFlags registers flags for every option on fs.
func BindFlags(fs *flag.FlagSet, o *Options) {
	fs.StringVar(&o.Preset, "preset", "", "start from a named preset")
	fs.StringVar(&o.Header, "header", "", "citation header (default "+strconv.Quote(citation.DefaultHeader)+")")
	fs.Func("violations", "comma separated violation lines, up to 4; repeatable", func(s string) error {
		o.Violations = append(o.Violations, s)
		return nil
	})
	fs.StringVar(&o.Punishment, "punishment", "", "punishment line (default "+strconv.Quote(citation.DefaultPunishment)+")")
	fs.StringVar(&o.Background, "bg", "", "background colour r,g,b[,a] (default "+FormatColour(citation.DefaultBackground)+")")
	fs.StringVar(&o.Foreground, "fg", "", "text colour r,g,b[,a] (default "+FormatColour(citation.DefaultForeground)+")")
	fs.StringVar(&o.Decoration, "decoration", "", "decoration colour r,g,b[,a] (default "+FormatColour(citation.DefaultDecoration)+")")
	fs.IntVar(&o.Width, "width", 0, "canvas width in pixels (default "+strconv.Itoa(citation.DefaultWidth)+")")
	fs.IntVar(&o.Height, "height", 0, "canvas height in pixels (default "+strconv.Itoa(citation.DefaultHeight)+")")
	fs.Float64Var(&o.FontSize, "font-size", 0, "font size (default 16)")
	fs.BoolVar(&o.GIF, "gif", false, "render the slide-in animation instead of a still")
}
