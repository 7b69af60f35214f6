package citation

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/citationgen/internal/assets"
)

func newTestRenderer(t *testing.T) (*Renderer, *assets.Store) {
	t.Helper()
	store, err := assets.Default()
	if err != nil {
		t.Fatalf("load assets: %v", err)
	}
	return NewRenderer(store), store
}

func TestRenderDefaultSize(t *testing.T) {
	r, store := newTestRenderer(t)
	img := r.Render(DefaultData(store.Font()))

	if b := img.Bounds(); b != image.Rect(0, 0, DefaultWidth, DefaultHeight) {
		t.Fatalf("bounds = %v", b)
	}
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			t.Fatalf("pixel %d not opaque", i/4)
		}
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	r, store := newTestRenderer(t)
	a := r.Render(DefaultData(store.Font()))
	b := r.Render(DefaultData(store.Font()))
	if !bytes.Equal(a.Pix, b.Pix) {
		t.Fatal("two renders of the same data differ")
	}
}

func TestRenderNilFontUsesBundled(t *testing.T) {
	r, store := newTestRenderer(t)
	withFont := r.Render(DefaultData(store.Font()))
	d := DefaultData(nil)
	withoutFont := r.Render(d)
	if !bytes.Equal(withFont.Pix, withoutFont.Pix) {
		t.Fatal("nil font renders differently from the bundled font")
	}
}

func TestRenderBorders(t *testing.T) {
	r, store := newTestRenderer(t)
	d := DefaultData(store.Font())
	img := r.Render(d)
	w, h := d.Width, d.Height

	for y := 0; y < h; y++ {
		for _, x := range []int{w - 1, w - 2} {
			if got := img.NRGBAAt(x, y); got != d.Decoration {
				t.Fatalf("right border (%d,%d) = %v", x, y, got)
			}
		}
	}

	corners := []image.Point{{0, 0}, {w - 1, 0}, {w - 1, h - 1}}
	for _, p := range corners {
		if got := img.NRGBAAt(p.X, p.Y); got != d.Decoration {
			t.Errorf("corner %v = %v, want decoration", p, got)
		}
	}
	// The bottom row starts two pixels in.
	if got := img.NRGBAAt(0, h-1); got != d.Background {
		t.Errorf("bottom-left corner = %v, want background", got)
	}

	for x := 0; x < w-2; x++ {
		want := d.Background
		if x%4 < 2 {
			want = d.Decoration
		}
		for _, y := range []int{0, 1} {
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("top row (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	for x := 2; x < w-2; x++ {
		want := d.Background
		if (x-2)%4 < 2 {
			want = d.Decoration
		}
		if x >= 150 && x < 214 {
			// stamp may cover the bottom row
			continue
		}
		if got := img.NRGBAAt(x, h-1); got != want {
			t.Fatalf("bottom row (%d,%d) = %v, want %v", x, h-1, got, want)
		}
	}
}

func TestRenderSeparatorsAndSides(t *testing.T) {
	r, store := newTestRenderer(t)
	d := DefaultData(store.Font())
	d.Header, d.Punishment, d.Violations = "", "", Violations{}
	img := r.Render(d)

	for _, y := range []int{headerSeparatorY, crimeSeparatorY} {
		for x := separatorX0; x <= separatorX1+1; x++ {
			want := d.Background
			if (x-separatorX0)%4 < 2 {
				want = d.Foreground
			}
			underStamp := x >= stampAt.X && x < stampAt.X+64 && y > stampAt.Y
			underBarcode := x >= barcodeAt.X && y < barcodeAt.Y+100
			if underStamp || underBarcode {
				continue
			}
			if got := img.NRGBAAt(x, y); got != want {
				t.Fatalf("separator (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	for _, x := range []int{sideLeftX, sideRightX} {
		if got := img.NRGBAAt(x, 6); got != d.Decoration {
			t.Errorf("side dot at (%d,6) = %v", x, got)
		}
		if got := img.NRGBAAt(x, 12); got != d.Background {
			t.Errorf("side gap at (%d,12) = %v", x, got)
		}
	}
}

func TestRenderStampAndBarcodeTinted(t *testing.T) {
	r, store := newTestRenderer(t)
	d := DefaultData(store.Font())
	d.Header, d.Punishment, d.Violations = "", "", Violations{}
	img := r.Render(d)

	check := func(name string, mask *image.Gray, at image.Point, c color.NRGBA) {
		b := mask.Bounds()
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				if mask.GrayAt(b.Min.X+x, b.Min.Y+y).Y != 255 {
					continue
				}
				p := at.Add(image.Pt(x, y))
				if !p.In(img.Bounds()) {
					continue
				}
				if got := img.NRGBAAt(p.X, p.Y); got != c {
					t.Fatalf("%s pixel %v = %v, want %v", name, p, got, c)
				}
			}
		}
	}
	check("barcode", store.Barcode(), barcodeAt, d.Foreground)

	// The stamp is drawn under the side columns and the crime separator.
	stamp := image.NewGray(store.Stamp().Bounds())
	copy(stamp.Pix, store.Stamp().Pix)
	for y := crimeSeparatorY - stampAt.Y; y < crimeSeparatorY-stampAt.Y+dotSize; y++ {
		for x := 0; x < stamp.Rect.Dx(); x++ {
			stamp.SetGray(x, y, color.Gray{})
		}
	}
	check("stamp", stamp, stampAt, d.Decoration)
}

// ink returns the bounding box of pixels that differ between a and b.
func ink(a, b *image.NRGBA) image.Rectangle {
	var r image.Rectangle
	bounds := a.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if a.NRGBAAt(x, y) != b.NRGBAAt(x, y) {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestRenderViolationSlots(t *testing.T) {
	r, store := newTestRenderer(t)
	base := DefaultData(store.Font())
	base.Violations = Violations{}
	empty := r.Render(base)

	var first image.Rectangle
	for k := 0; k < MaxViolations; k++ {
		d := DefaultData(store.Font())
		var v Violations
		line := "HX"
		v[k] = &line
		d.Violations = v
		got := ink(r.Render(d), empty)
		if got.Empty() {
			t.Fatalf("slot %d drew nothing", k)
		}
		if k == 0 {
			first = got
			if first.Min.Y < violationY || first.Min.Y > violationY+int(d.FontSize) {
				t.Fatalf("slot 0 ink starts at row %d", first.Min.Y)
			}
			continue
		}
		if want := first.Add(image.Pt(0, violationPitch*k)); got != want {
			t.Errorf("slot %d ink = %v, want %v", k, got, want)
		}
	}
}

func TestRenderSkippedSlotKeepsRow(t *testing.T) {
	r, store := newTestRenderer(t)
	d := DefaultData(store.Font())
	d.Violations = Lines("", "", "HX")
	packed := DefaultData(store.Font())
	packed.Violations = Lines("HX")

	base := DefaultData(store.Font())
	base.Violations = Violations{}
	empty := r.Render(base)

	gap := ink(r.Render(d), empty)
	top := ink(r.Render(packed), empty)
	if gap != top.Add(image.Pt(0, 2*violationPitch)) {
		t.Errorf("third slot ink = %v, first slot ink = %v", gap, top)
	}
}

func TestRenderWithoutViolations(t *testing.T) {
	r, store := newTestRenderer(t)
	d := DefaultData(store.Font())
	d.Violations = Violations{}
	img := r.Render(d)

	// Between the separators and left of the stamp nothing is drawn.
	for y := headerSeparatorY + dotSize; y < crimeSeparatorY; y++ {
		for x := separatorX0; x < stampAt.X; x++ {
			if got := img.NRGBAAt(x, y); got != d.Background {
				t.Fatalf("(%d,%d) = %v, want background", x, y, got)
			}
		}
	}

	noText := DefaultData(store.Font())
	noText.Header, noText.Punishment, noText.Violations = "", "", Violations{}
	blank := r.Render(noText)

	header := ink(img, blank).Intersect(image.Rect(0, 0, d.Width, headerSeparatorY))
	if header.Empty() || header.Min.X < textX {
		t.Errorf("header ink = %v", header)
	}
	punish := ink(img, blank).Intersect(image.Rect(0, punishmentY, d.Width, d.Height))
	if punish.Empty() {
		t.Error("punishment text missing")
	}
}

func TestPunishmentCentering(t *testing.T) {
	r, store := newTestRenderer(t)
	d := DefaultData(store.Font())

	face, err := opentype.NewFace(store.Font(), &opentype.FaceOptions{Size: 2, DPI: 72})
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	defer face.Close()
	w := font.MeasureString(face, d.Punishment).Ceil()
	if got, want := r.centerPunishment(d), punishmentX-w/2; got != want {
		t.Errorf("centerPunishment = %d, want %d", got, want)
	}

	d.CenterAtFontSize = true
	if got := r.centerPunishment(d); got >= punishmentX-w/2 {
		t.Errorf("measuring at font size gave x = %d, want left of %d", got, punishmentX-w/2)
	}
}

func TestRenderTinyCanvasDoesNotPanic(t *testing.T) {
	r, store := newTestRenderer(t)
	for _, size := range []image.Point{{1, 1}, {10, 3}, {0, 0}} {
		d := DefaultData(store.Font())
		d.Width, d.Height = size.X, size.Y
		d.Header = "a very long header that runs far past the right edge of any canvas"
		img := r.Render(d)
		if img.Bounds().Dx() != max(size.X, 0) {
			t.Errorf("%v: width = %d", size, img.Bounds().Dx())
		}
	}
}

func TestLines(t *testing.T) {
	v := Lines("a", "", "c", "d", "e")
	if v.Count() != 3 {
		t.Fatalf("Count = %d, want 3", v.Count())
	}
	if v[1] != nil {
		t.Error("empty line should leave slot nil")
	}
	if *v[3] != "d" {
		t.Errorf("slot 3 = %q", *v[3])
	}
}
