// Package presets loads named citation presets from CSV.
package presets

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/youruser/citationgen/internal/params"
)

//go:embed data/presets.csv
var builtinCSV []byte

var ErrUnknownPreset = errors.New("unknown preset")

// Preset is one row of a preset file.
type Preset struct {
	Name       string   `json:"name"`
	Header     string   `json:"header"`
	Violations []string `json:"violations"`
	Punishment string   `json:"punishment"`
	Background string   `json:"bg"`
	Foreground string   `json:"fg"`
	Decoration string   `json:"decoration"`
}

// Catalogue maps lower-cased preset names to presets.
type Catalogue map[string]Preset

// parseListCell splits a "/" separated cell. "-" marks a blank slot.
func parseListCell(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "／", "/")
	out := []string{}
	for _, p := range strings.Split(s, "/") {
		t := strings.TrimSpace(p)
		if t == "-" {
			t = ""
		}
		out = append(out, t)
	}
	return out
}

// Load reads a preset CSV. The first row names the columns; "name" is
// required, the others (header, violations, punishment, bg, fg, decoration)
// are optional.
func Load(r io.Reader) (Catalogue, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 1 {
		return nil, errors.New("preset csv has no header")
	}
	cols := map[string]int{}
	for i, h := range rows[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := cols["name"]; !ok {
		return nil, errors.New("preset csv has no name column")
	}

	get := func(row []string, name string) string {
		if idx, ok := cols[name]; ok && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	c := Catalogue{}
	for n, row := range rows[1:] {
		p := Preset{
			Name:       get(row, "name"),
			Header:     get(row, "header"),
			Violations: parseListCell(get(row, "violations")),
			Punishment: get(row, "punishment"),
			Background: get(row, "bg"),
			Foreground: get(row, "fg"),
			Decoration: get(row, "decoration"),
		}
		if p.Name == "" {
			return nil, fmt.Errorf("row %d: empty name", n+2)
		}
		// Reject bad presets at load time rather than on every render.
		if _, err := p.apply(params.Options{}).Data(nil); err != nil {
			return nil, fmt.Errorf("preset %q: %w", p.Name, err)
		}
		c[strings.ToLower(p.Name)] = p
	}
	return c, nil
}

// Builtin returns the presets bundled with the binary.
func Builtin() (Catalogue, error) {
	c, err := Load(bytes.NewReader(builtinCSV))
	if err != nil {
		return nil, fmt.Errorf("builtin presets: %w", err)
	}
	return c, nil
}

// Names returns the preset names in sorted order.
func (c Catalogue) Names() []string {
	out := make([]string, 0, len(c))
	for _, p := range c {
		out = append(out, p.Name)
	}
	sort.Strings(out)
	return out
}

// Apply fills the fields o leaves empty from the preset o names. Options
// without a preset are returned unchanged.
func (c Catalogue) Apply(o params.Options) (params.Options, error) {
	if o.Preset == "" {
		return o, nil
	}
	p, ok := c[strings.ToLower(o.Preset)]
	if !ok {
		return o, fmt.Errorf("%w %q", ErrUnknownPreset, o.Preset)
	}
	return p.apply(o), nil
}

func (p Preset) apply(o params.Options) params.Options {
	fill := func(dst *string, v string) {
		if *dst == "" {
			*dst = v
		}
	}
	fill(&o.Header, p.Header)
	fill(&o.Punishment, p.Punishment)
	fill(&o.Background, p.Background)
	fill(&o.Foreground, p.Foreground)
	fill(&o.Decoration, p.Decoration)
	if o.Violations == nil {
		o.Violations = p.Violations
		if o.Violations == nil {
			o.Violations = []string{}
		}
	}
	return o
}
