package citation

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"math"
	"time"

	"github.com/disintegration/imaging"
	"github.com/ericpauley/go-quantize/quantize"
)

const (
	// FrameCount is the number of frames in every reveal animation.
	FrameCount = 153
	// FrameDelay is how long each frame is shown.
	FrameDelay = 30 * time.Millisecond

	revealStart = 30
	// revealSpan is the frame index at which the whole card is visible.
	revealSpan = 152.0 - 60.0
)

var (
	// ErrNoFrames is returned when encoding an empty frame list.
	ErrNoFrames = errors.New("citation: no frames")
	// ErrFrameSize is returned when a frame's size differs from the first.
	ErrFrameSize = errors.New("citation: frame size mismatch")
)

// Frame is one picture of an animation.
type Frame struct {
	Image  *image.NRGBA
	Offset image.Point
	Delay  time.Duration
}

// RevealHeight returns how many rows of a fullHeight card frame i shows.
func RevealHeight(i, fullHeight int) int {
	ratio := float64(i) / revealSpan
	h := int(math.Round(revealStart + ratio*float64(fullHeight-revealStart)))
	return min(max(h, 1), fullHeight)
}

// RevealFrames cuts img into FrameCount frames. Each frame is transparent
// except for its bottom RevealHeight rows, which hold img's bottom rows.
func RevealFrames(img *image.NRGBA) []Frame {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	frames := make([]Frame, 0, FrameCount)
	for i := 0; i < FrameCount; i++ {
		frame := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := h - RevealHeight(i, h); y < h; y++ {
			src := img.PixOffset(b.Min.X, b.Min.Y+y)
			copy(frame.Pix[y*frame.Stride:y*frame.Stride+w*4], img.Pix[src:src+w*4])
		}
		frames = append(frames, Frame{Image: frame, Delay: FrameDelay})
	}
	return frames
}

// Palette returns a GIF palette for img. Index 0 is fully transparent. The
// palette is exact when img has at most 255 distinct visible colours and a
// median-cut reduction otherwise.
func Palette(img image.Image) color.Palette {
	pal := color.Palette{color.NRGBA{}}
	seen := make(map[color.NRGBA]struct{})
	nrgba, ok := img.(*image.NRGBA)
	if !ok {
		nrgba = imaging.Clone(img)
	}
	b := nrgba.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := nrgba.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			if _, ok := seen[c]; ok {
				continue
			}
			if len(pal) == 256 {
				q := quantize.MedianCutQuantizer{}
				return append(color.Palette{color.NRGBA{}}, q.Quantize(make(color.Palette, 0, 255), img)...)
			}
			seen[c] = struct{}{}
			pal = append(pal, c)
		}
	}
	return pal
}

// EncodeGIF encodes frames as an endlessly looping GIF using pal. All
// frames must share one size; any failure discards the whole animation.
func EncodeGIF(frames []Frame, pal color.Palette) ([]byte, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	size := frames[0].Image.Bounds().Size()
	images := make([]*image.Paletted, 0, len(frames))
	delays := make([]time.Duration, 0, len(frames))
	idx := newIndexer(pal)
	for i, f := range frames {
		if fb := f.Image.Bounds(); fb.Size() != size {
			return nil, fmt.Errorf("frame %d is %v, want %v: %w", i, fb.Size(), size, ErrFrameSize)
		}
		images = append(images, idx.paletted(f.Image, f.Offset))
		delays = append(delays, f.Delay)
	}
	return writeGIF(size, pal, images, delays)
}

// revealGIF encodes the reveal animation of img without materialising
// FrameCount full-size frames: img is indexed once and frame i is the
// bottom RevealHeight(i) rows of that index buffer, placed at their own
// rows. Background disposal leaves everything above the strip transparent,
// so the result shows the same pictures as RevealFrames.
func revealGIF(img *image.NRGBA, pal color.Palette) ([]byte, error) {
	still := newIndexer(pal).paletted(img, image.Point{})
	w, h := still.Rect.Dx(), still.Rect.Dy()
	images := make([]*image.Paletted, 0, FrameCount)
	delays := make([]time.Duration, 0, FrameCount)
	for i := 0; i < FrameCount; i++ {
		strip := image.Rect(0, h-RevealHeight(i, h), w, h)
		images = append(images, still.SubImage(strip).(*image.Paletted))
		delays = append(delays, FrameDelay)
	}
	return writeGIF(image.Pt(w, h), pal, images, delays)
}

func writeGIF(size image.Point, pal color.Palette, images []*image.Paletted, delays []time.Duration) ([]byte, error) {
	g := &gif.GIF{
		Image:    images,
		Delay:    make([]int, len(images)),
		Disposal: make([]byte, len(images)),
		Config:   image.Config{ColorModel: pal, Width: size.X, Height: size.Y},
	}
	for i, d := range delays {
		g.Delay[i] = int(d / (10 * time.Millisecond))
		g.Disposal[i] = gif.DisposalBackground
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		return nil, fmt.Errorf("encode gif: %w", err)
	}
	return buf.Bytes(), nil
}

// indexer maps colours to palette indices, remembering every lookup.
type indexer struct {
	pal   color.Palette
	cache map[color.NRGBA]uint8
}

func newIndexer(pal color.Palette) *indexer {
	return &indexer{pal: pal, cache: make(map[color.NRGBA]uint8, len(pal))}
}

func (x *indexer) index(c color.NRGBA) uint8 {
	if c.A == 0 {
		c = color.NRGBA{}
	}
	i, ok := x.cache[c]
	if !ok {
		i = uint8(x.pal.Index(c))
		x.cache[c] = i
	}
	return i
}

// paletted converts img to a paletted image placed at offset.
func (x *indexer) paletted(img *image.NRGBA, offset image.Point) *image.Paletted {
	b := img.Bounds()
	p := image.NewPaletted(image.Rectangle{Min: offset, Max: offset.Add(b.Size())}, x.pal)
	for y := 0; y < b.Dy(); y++ {
		for px := 0; px < b.Dx(); px++ {
			p.Pix[y*p.Stride+px] = x.index(img.NRGBAAt(b.Min.X+px, b.Min.Y+y))
		}
	}
	return p
}

// RenderGIF draws d and returns its reveal animation as GIF bytes.
func (r *Renderer) RenderGIF(d *Data) ([]byte, error) {
	img := r.Render(d)
	return revealGIF(img, Palette(img))
}
