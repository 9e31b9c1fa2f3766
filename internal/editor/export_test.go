package editor

import (
	"image/color"
	"testing"

	imx "github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

func TestRenderExport_TargetDimensions(t *testing.T) {
	src := newSolidSource(800, 1000, color.RGBA{40, 80, 120, 255})
	vp := ViewportState{Zoom: 0.4, MinZoom: 0.4}
	crop := CropFrame{Width: 320, Height: 400}

	buf := renderExport(src, vp, DefaultFilters(), ColorReplaceState{}, crop, 400, 500)

	if got := buf.Bounds(); got.Dx() != 400 || got.Dy() != 500 {
		t.Fatalf("export bounds = %v, want 400x500", got)
	}
	if got := buf.RGBAAt(200, 250); got != (color.RGBA{40, 80, 120, 255}) {
		t.Errorf("export center = %+v, want image color", got)
	}
}

func TestRenderExport_MatchesPreviewCrop(t *testing.T) {
	// A 320x400 crop frame exported at 400x500 gives finalScale 1.25; a
	// preview pixel at crop-relative (x, y) corresponds to the exported
	// pixel at (1.25x, 1.25y). Samples stay clear of the color boundary
	// where resampling blends.
	src := newSplitSource(800, 1000, color.RGBA{255, 0, 0, 255}, color.RGBA{0, 0, 255, 255})
	vp := ViewportState{Zoom: 0.8, OffsetX: 16, OffsetY: -20, MinZoom: 0.4}
	filters := DefaultFilters()
	replace := ColorReplaceState{}
	crop := CropFrame{Width: 320, Height: 400}

	// The crop frame fills the display surface here, so surface
	// coordinates are crop-relative.
	preview := renderComposite(src, vp, filters, replace, 320, 400)
	export := renderExport(src, vp, filters, replace, crop, 400, 500)

	samples := []struct{ x, y int }{
		{100, 150}, // left of the split
		{250, 150}, // right of the split
		{100, 320},
		{250, 320},
	}
	for _, p := range samples {
		want := preview.RGBAAt(p.x, p.y)
		got := export.RGBAAt(p.x*5/4, p.y*5/4)
		if got != want {
			t.Errorf("export(%d,%d) = %+v, preview(%d,%d) = %+v",
				p.x*5/4, p.y*5/4, got, p.x, p.y, want)
		}
	}
}

func TestRenderExport_FiltersAndReplaceApply(t *testing.T) {
	src := newSolidSource(640, 800, color.RGBA{200, 200, 200, 255})
	vp := ViewportState{Zoom: 0.5, MinZoom: 0.5}
	filters := DefaultFilters()
	filters.Brightness = 50
	replace := ColorReplaceState{
		From:      imx.RGBColor{R: 100, G: 100, B: 100},
		To:        imx.RGBColor{G: 200, B: 50},
		Tolerance: 5,
		Enabled:   true,
	}
	crop := CropFrame{Width: 320, Height: 400}

	buf := renderExport(src, vp, filters, replace, crop, 320, 400)

	if got := buf.RGBAAt(160, 200); got != (color.RGBA{0, 200, 50, 255}) {
		t.Errorf("export center = %+v, want filtered then replaced color", got)
	}
}

func TestEncodeExport_Formats(t *testing.T) {
	buf := renderComposite(newSolidSource(10, 10, color.RGBA{1, 2, 3, 255}),
		ViewportState{Zoom: 1, MinZoom: 1}, DefaultFilters(), ColorReplaceState{}, 20, 20)

	tests := []struct {
		format   string
		wantMime string
	}{
		{"", "image/png"},
		{"png", "image/png"},
		{"jpeg", "image/jpeg"},
		{"jpg", "image/jpeg"},
	}
	for _, tt := range tests {
		enc, err := encodeExport(buf, tt.format, 85)
		if err != nil {
			t.Errorf("encodeExport(%q): %v", tt.format, err)
			continue
		}
		if enc.MimeType != tt.wantMime {
			t.Errorf("encodeExport(%q) mime = %q, want %q", tt.format, enc.MimeType, tt.wantMime)
		}
		if enc.Width != 20 || enc.Height != 20 {
			t.Errorf("encodeExport(%q) size = %dx%d, want 20x20", tt.format, enc.Width, enc.Height)
		}
		if enc.ImageBase64 == "" {
			t.Errorf("encodeExport(%q) returned empty payload", tt.format)
		}
	}

	if _, err := encodeExport(buf, "bmp", 0); err == nil {
		t.Error("encodeExport(bmp) succeeded, want error")
	}
}
