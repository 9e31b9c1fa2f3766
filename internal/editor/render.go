package editor

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blend"
	"github.com/disintegration/imaging"

	imx "github.com/mlafefon/Ihulan-cover-sub001/internal/imaging"
)

// Surface background and crop overlay colors.
var (
	backgroundColor = color.NRGBA{255, 255, 255, 255}
	maskColor       = color.NRGBA{0, 0, 0, 128}
	frameColor      = color.NRGBA{255, 255, 255, 255}
)

// renderComposite executes the shared composition steps at the given
// surface size: fill the background, draw the viewport-transformed and
// filtered image, then run color replacement over the full surface buffer.
//
// Both the interactive preview and the export compositor call this with
// identical logic; only the surface size and the viewport scaling differ.
// Rendering is synchronous and idempotent: identical state produces
// identical pixels.
func renderComposite(src *imx.ImageSource, vp ViewportState, filters FilterState, replace ColorReplaceState, surfW, surfH int) *image.RGBA {
	base := image.NewRGBA(image.Rect(0, 0, surfW, surfH))
	draw.Draw(base, base.Bounds(), image.NewUniform(backgroundColor), image.Point{}, draw.Src)

	scaledW := int(math.Round(float64(src.Width) * vp.Zoom))
	scaledH := int(math.Round(float64(src.Height) * vp.Zoom))
	if scaledW > 0 && scaledH > 0 {
		scaled := imaging.Resize(src.Image, scaledW, scaledH, imaging.Lanczos)

		// The filter transform is active for this draw only; the
		// background stays unfiltered.
		ApplyFilters(scaled, filters)

		// The image is centered on the surface, displaced by the pan
		// offset: top-left = center + offset - scaledSize/2.
		x := int(math.Round(float64(surfW)/2 + vp.OffsetX - float64(scaledW)/2))
		y := int(math.Round(float64(surfH)/2 + vp.OffsetY - float64(scaledH)/2))
		rect := image.Rect(x, y, x+scaledW, y+scaledH)
		draw.Draw(base, rect, scaled, image.Point{}, draw.Over)
	}

	ApplyColorReplace(base, replace)
	return base
}

// overlayCropFrame composites the crop-frame mask over a rendered preview:
// a semi-transparent layer covers the whole surface except a hole exactly
// the size and position of the crop frame, and the frame border is
// stroked, so the user sees unambiguously what will be exported.
//
// The input buffer is not modified; color picking keeps reading it.
func overlayCropFrame(base *image.RGBA, crop CropFrame) *image.RGBA {
	bounds := base.Bounds()
	surfW := bounds.Dx()
	surfH := bounds.Dy()
	hole := cropRect(surfW, surfH, crop)

	overlay := image.NewNRGBA(bounds)
	draw.Draw(overlay, bounds, image.NewUniform(maskColor), image.Point{}, draw.Src)
	draw.Draw(overlay, hole, image.NewUniform(color.NRGBA{}), image.Point{}, draw.Src)
	strokeRect(overlay, hole, frameColor)

	return blend.Normal(base, overlay)
}

// cropRect returns the crop frame rectangle centered on a surface of the
// given size.
func cropRect(surfW, surfH int, crop CropFrame) image.Rectangle {
	x0 := int(math.Round((float64(surfW) - crop.Width) / 2))
	y0 := int(math.Round((float64(surfH) - crop.Height) / 2))
	x1 := x0 + int(math.Round(crop.Width))
	y1 := y0 + int(math.Round(crop.Height))
	return image.Rect(x0, y0, x1, y1)
}

// strokeRect draws a 1px border just inside the rectangle, clipped to the
// image bounds.
func strokeRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.SetNRGBA(x, r.Min.Y, c)
		img.SetNRGBA(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.SetNRGBA(r.Min.X, y, c)
		img.SetNRGBA(r.Max.X-1, y, c)
	}
}
