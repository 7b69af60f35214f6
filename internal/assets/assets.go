// Package assets holds the fixed resources every citation is drawn with:
// the stamp and barcode masks and the text font.
package assets

import (
	_ "embed"
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"

	imagepkg "github.com/youruser/citationgen/internal/image"
)

var (
	//go:embed data/stamp.png
	stampPNG []byte
	//go:embed data/barcode.png
	barcodePNG []byte
)

// Store is a read-only set of decoded assets. It is safe to share between
// goroutines; nothing in it is mutated after Load returns.
type Store struct {
	stamp   *image.Gray
	barcode *image.Gray
	font    *opentype.Font
}

// Load decodes the bundled masks and parses the bundled font.
func Load() (*Store, error) {
	stamp, err := imagepkg.DecodeMask(stampPNG)
	if err != nil {
		return nil, fmt.Errorf("stamp: %w", err)
	}
	barcode, err := imagepkg.DecodeMask(barcodePNG)
	if err != nil {
		return nil, fmt.Errorf("barcode: %w", err)
	}
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("font: %w", err)
	}
	return &Store{stamp: stamp, barcode: barcode, font: f}, nil
}

var loadOnce = sync.OnceValues(Load)

// Default returns the process-wide store, loading it on first use.
func Default() (*Store, error) {
	return loadOnce()
}

// MustDefault is like Default but panics if the bundled assets are broken.
func MustDefault() *Store {
	s, err := Default()
	if err != nil {
		panic("assets: " + err.Error())
	}
	return s
}

// Stamp returns the stamp mask.
func (s *Store) Stamp() *image.Gray { return s.stamp }

// Barcode returns the barcode mask.
func (s *Store) Barcode() *image.Gray { return s.barcode }

// Font returns the text font.
func (s *Store) Font() *opentype.Font { return s.font }
