package editor

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	imx "github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

func newTestSession(t *testing.T, src *imx.ImageSource, targetW, targetH int) *Session {
	t.Helper()
	s, err := NewSession(src, targetW, targetH, nil)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return s
}

func TestNewSession_Validation(t *testing.T) {
	src := newSolidSource(100, 100, color.RGBA{0, 0, 0, 255})

	tests := []struct {
		name    string
		src     *imx.ImageSource
		targetW int
		targetH int
	}{
		{"zero target width", src, 0, 100},
		{"negative target height", src, 100, -5},
		{"nil source", nil, 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSession(tt.src, tt.targetW, tt.targetH, nil); err == nil {
				t.Error("NewSession succeeded, want error")
			}
		})
	}
}

func TestNewSession_Defaults(t *testing.T) {
	src := newSolidSource(500, 500, color.RGBA{10, 20, 30, 255})
	s := newTestSession(t, src, 200, 250)

	if got := s.Filters(); !got.IsDefault() {
		t.Errorf("initial filters = %+v, want defaults", got)
	}
	if got := s.Replace(); got.Enabled {
		t.Error("color replacement enabled on open")
	}

	// Display area defaults to the target size, so the crop frame fills it.
	crop := s.CropFrame()
	if crop.Width != 200 || crop.Height != 250 {
		t.Errorf("initial crop frame = %+v, want 200x250", crop)
	}

	// The viewport opens at the minimum covering zoom.
	vp := s.Viewport()
	if vp.Zoom != vp.MinZoom {
		t.Errorf("initial zoom = %v, want minimum %v", vp.Zoom, vp.MinZoom)
	}
	if vp.OffsetX != 0 || vp.OffsetY != 0 {
		t.Errorf("initial offset = (%v, %v), want origin", vp.OffsetX, vp.OffsetY)
	}
}

func TestOpen_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.png")
	img := newSolidSource(64, 80, color.RGBA{200, 100, 50, 255}).Image
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create temp image: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode temp image: %v", err)
	}
	f.Close()

	s, err := Open(path, 32, 40, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if crop := s.CropFrame(); crop.Width != 32 || crop.Height != 40 {
		t.Errorf("crop frame = %+v, want 32x40", crop)
	}
}

func TestOpen_LoadFailureIsFatal(t *testing.T) {
	if _, err := Open("/nonexistent/image.png", 100, 100, nil); err == nil {
		t.Error("Open succeeded on a missing file, want error")
	}
}

func TestSession_SetDisplayArea(t *testing.T) {
	src := newSolidSource(1600, 2000, color.RGBA{0, 0, 0, 255})
	s := newTestSession(t, src, 400, 500)

	if err := s.SetDisplayArea(600, 600); err != nil {
		t.Fatalf("SetDisplayArea: %v", err)
	}

	// The crop frame keeps the target aspect ratio inside the new area.
	crop := s.CropFrame()
	if crop.Width != 480 || crop.Height != 600 {
		t.Errorf("crop frame = %+v, want 480x600", crop)
	}

	if err := s.SetDisplayArea(0, 300); err == nil {
		t.Error("SetDisplayArea(0, 300) succeeded, want error")
	}
}

func TestSession_SetDisplayAreaKeepsView(t *testing.T) {
	src := newSolidSource(1600, 2000, color.RGBA{0, 0, 0, 255})
	s := newTestSession(t, src, 400, 500)

	if err := s.SetZoom(1.5); err != nil {
		t.Fatalf("SetZoom: %v", err)
	}
	if err := s.SetDisplayArea(600, 600); err != nil {
		t.Fatalf("SetDisplayArea: %v", err)
	}
	if got := s.Viewport().Zoom; got != 1.5 {
		t.Errorf("zoom after resize = %v, want 1.5 preserved", got)
	}
}

func TestSession_PickColorAtReadsFilteredPixels(t *testing.T) {
	src := newSolidSource(200, 200, color.RGBA{200, 200, 200, 255})
	s := newTestSession(t, src, 200, 200)

	filters := DefaultFilters()
	filters.Brightness = 50
	if err := s.SetFilters(filters); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}

	// No preview was rendered since the filter change; the pick renders
	// one internally.
	c, err := s.PickColorAt(100, 100)
	if err != nil {
		t.Fatalf("PickColorAt: %v", err)
	}
	want := imx.RGBColor{R: 100, G: 100, B: 100}
	if c != want {
		t.Errorf("picked color = %+v, want %+v", c, want)
	}

	r := s.Replace()
	if r.From != want {
		t.Errorf("replacement From = %+v, want picked color", r.From)
	}
	if !r.Enabled {
		t.Error("picking a color did not enable replacement")
	}
}

func TestSession_PickColorAtOutOfBounds(t *testing.T) {
	src := newSolidSource(100, 100, color.RGBA{0, 0, 0, 255})
	s := newTestSession(t, src, 100, 100)
	if _, err := s.PickColorAt(-1, 5000); err == nil {
		t.Error("PickColorAt outside the surface succeeded, want error")
	}
}

func TestSession_SnapshotRoundTrip(t *testing.T) {
	img := newSplitSource(800, 800, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})
	a := newTestSession(t, img, 200, 200)

	if err := a.SetZoom(0.5); err != nil {
		t.Fatalf("SetZoom: %v", err)
	}
	if err := a.Pan(13, -7); err != nil {
		t.Fatalf("Pan: %v", err)
	}
	filters := FilterState{Brightness: 110, Contrast: 95, Saturate: 120, Grayscale: 25, Sepia: 10}
	if err := a.SetFilters(filters); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	if err := a.SetReplace(ColorReplaceState{
		From:      imx.RGBColor{R: 255},
		To:        imx.RGBColor{G: 255},
		Tolerance: 40,
		Enabled:   true,
	}); err != nil {
		t.Fatalf("SetReplace: %v", err)
	}

	wantPreview, err := a.Preview()
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}

	raw, err := json.Marshal(a.Snapshot())
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	b, err := NewSession(img, 200, 200, &snap)
	if err != nil {
		t.Fatalf("NewSession with snapshot: %v", err)
	}
	gotPreview, err := b.Preview()
	if err != nil {
		t.Fatalf("Preview after restore: %v", err)
	}

	if !bytes.Equal(wantPreview.Pix, gotPreview.Pix) {
		t.Error("restored session rendered different pixels")
	}
}

func TestSession_RestoreReclampsState(t *testing.T) {
	src := newSolidSource(400, 400, color.RGBA{0, 0, 0, 255})
	s := newTestSession(t, src, 200, 200)

	// Zoom below the covering minimum and a wild offset both snap back.
	err := s.Restore(Snapshot{
		Viewport: ViewportState{Zoom: 0.01, OffsetX: 9999, OffsetY: -9999},
		Filters:  DefaultFilters(),
	})
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}

	vp := s.Viewport()
	if vp.Zoom < vp.MinZoom {
		t.Errorf("restored zoom %v below minimum %v", vp.Zoom, vp.MinZoom)
	}
	crop := s.CropFrame()
	maxX := math.Max(0, (float64(src.Width)*vp.Zoom-crop.Width)/2/vp.Zoom)
	maxY := math.Max(0, (float64(src.Height)*vp.Zoom-crop.Height)/2/vp.Zoom)
	if math.Abs(vp.OffsetX) > maxX+1e-9 || math.Abs(vp.OffsetY) > maxY+1e-9 {
		t.Errorf("restored offset (%v, %v) exceeds bounds (%v, %v)", vp.OffsetX, vp.OffsetY, maxX, maxY)
	}
}

func TestSession_ResetFilters(t *testing.T) {
	src := newSolidSource(100, 100, color.RGBA{0, 0, 0, 255})
	s := newTestSession(t, src, 100, 100)

	if err := s.SetFilters(FilterState{Brightness: 10, Contrast: 10, Saturate: 10, Grayscale: 90, Sepia: 90}); err != nil {
		t.Fatalf("SetFilters: %v", err)
	}
	if err := s.ResetFilters(); err != nil {
		t.Fatalf("ResetFilters: %v", err)
	}
	if got := s.Filters(); !got.IsDefault() {
		t.Errorf("filters after reset = %+v, want defaults", got)
	}
}

func TestSession_Export(t *testing.T) {
	src := newSolidSource(800, 1000, color.RGBA{120, 60, 30, 255})
	s := newTestSession(t, src, 400, 500)

	res, err := s.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if res.Image.Width != 400 || res.Image.Height != 500 {
		t.Errorf("export size = %dx%d, want 400x500", res.Image.Width, res.Image.Height)
	}
	if res.Image.MimeType != "image/png" {
		t.Errorf("export mime = %q, want image/png", res.Image.MimeType)
	}
	if res.Snapshot != s.Snapshot() {
		t.Error("export snapshot does not match session state")
	}

	// Export does not end the session.
	if err := s.Pan(1, 1); err != nil {
		t.Errorf("Pan after export: %v", err)
	}
}

func TestSession_ClosedOperationsFail(t *testing.T) {
	src := newSolidSource(100, 100, color.RGBA{0, 0, 0, 255})
	s := newTestSession(t, src, 100, 100)
	s.Close()

	ops := map[string]func() error{
		"Pan":            func() error { return s.Pan(1, 1) },
		"SetZoom":        func() error { return s.SetZoom(2) },
		"ZoomAt":         func() error { return s.ZoomAt(10, 10, 2) },
		"SetFilters":     func() error { return s.SetFilters(DefaultFilters()) },
		"SetReplace":     func() error { return s.SetReplace(ColorReplaceState{}) },
		"SetDisplayArea": func() error { return s.SetDisplayArea(100, 100) },
		"Restore":        func() error { return s.Restore(Snapshot{}) },
		"Preview": func() error {
			_, err := s.Preview()
			return err
		},
		"Export": func() error {
			_, err := s.Export()
			return err
		},
		"PickColorAt": func() error {
			_, err := s.PickColorAt(0, 0)
			return err
		},
	}
	for name, op := range ops {
		if err := op(); !errors.Is(err, ErrSessionClosed) {
			t.Errorf("%s on closed session: err = %v, want ErrSessionClosed", name, err)
		}
	}
}
